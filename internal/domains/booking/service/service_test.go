package service_test

import (
	"hotelres/internal/domains/booking/model"
	"hotelres/internal/domains/booking/service"
	catalogModel "hotelres/internal/domains/catalog/model"
	catalogService "hotelres/internal/domains/catalog/service"
	"hotelres/shared/failure"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(value string) time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}

	return t
}

func newCatalog(t *testing.T, wifiEnabled bool) catalogService.Catalog {
	t.Helper()

	catalog, err := catalogService.New(
		catalogModel.Hotel{Name: "LuxuryStay Hotel", Currency: catalogModel.Currency{Symbol: "₱", Code: "PHP"}},
		[]catalogModel.RoomType{
			{Key: "standard", Name: "Standard", Price: 6800, MaxGuests: 2},
			{Key: "deluxe", Name: "Deluxe", Price: 10200, MaxGuests: 3},
			{Key: "suite", Name: "Suite", Price: 15800, MaxGuests: 4},
		},
		[]catalogModel.Service{
			{Key: "breakfast", Name: "Breakfast", Price: 1400, Enabled: true},
			{Key: "wifi", Name: "Premium WiFi", Price: 560, Enabled: wifiEnabled},
			{Key: "spa", Name: "Spa Access", Price: 4200, Enabled: true},
		},
	)
	require.NoError(t, err)

	return catalog
}

func draftWith(checkIn, checkOut string, rooms map[string]int, services ...string) model.Draft {
	draft := model.NewDraft()
	if checkIn != "" {
		draft.CheckIn = date(checkIn)
	}

	if checkOut != "" {
		draft.CheckOut = date(checkOut)
	}

	for key, qty := range rooms {
		draft.RoomQuantities[key] = qty
	}

	for _, key := range services {
		draft.SelectedServices[key] = struct{}{}
	}

	return draft
}

func TestComputeBreakdown_Scenario(t *testing.T) {
	catalog := newCatalog(t, true)
	draft := draftWith("2024-06-01", "2024-06-03", map[string]int{"deluxe": 2}, "wifi")

	breakdown := service.ComputeBreakdown(catalog, draft)

	assert.Equal(t, []model.PriceLineItem{
		{Description: "Deluxe ×2 × 2 nights", Amount: 40800},
		{Description: "Premium WiFi (2 nights)", Amount: 1120},
	}, breakdown.Items)
	assert.Equal(t, int64(41920), breakdown.Total)
}

func TestComputeBreakdown_Ordering(t *testing.T) {
	catalog := newCatalog(t, true)
	draft := draftWith("2024-06-01", "2024-06-02",
		map[string]int{"suite": 1, "standard": 3},
		"spa", "breakfast",
	)

	breakdown := service.ComputeBreakdown(catalog, draft)

	require.Len(t, breakdown.Items, 4)
	assert.Equal(t, "Standard ×3 × 1 night", breakdown.Items[0].Description)
	assert.Equal(t, "Suite ×1 × 1 night", breakdown.Items[1].Description)
	assert.Equal(t, "Breakfast (1 night)", breakdown.Items[2].Description)
	assert.Equal(t, "Spa Access (1 night)", breakdown.Items[3].Description)
	assert.Equal(t, int64(3*6800+15800+1400+4200), breakdown.Total)
}

func TestComputeBreakdown_IncompleteStay(t *testing.T) {
	catalog := newCatalog(t, true)
	rooms := map[string]int{"deluxe": 2}

	tests := []struct {
		name     string
		checkIn  string
		checkOut string
	}{
		{name: "no dates", checkIn: "", checkOut: ""},
		{name: "only check-in", checkIn: "2024-06-01", checkOut: ""},
		{name: "only check-out", checkIn: "", checkOut: "2024-06-03"},
		{name: "same day", checkIn: "2024-06-01", checkOut: "2024-06-01"},
		{name: "inverted", checkIn: "2024-06-03", checkOut: "2024-06-01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			breakdown := service.ComputeBreakdown(catalog, draftWith(tt.checkIn, tt.checkOut, rooms, "wifi", "spa"))

			assert.True(t, breakdown.IsEmpty())
			assert.NotNil(t, breakdown.Items)
			assert.Zero(t, breakdown.Total)
		})
	}
}

func TestComputeBreakdown_DisabledServiceIsNotPriced(t *testing.T) {
	enabled := service.ComputeBreakdown(newCatalog(t, true), draftWith("2024-06-01", "2024-06-03", map[string]int{"deluxe": 1}, "wifi"))
	disabled := service.ComputeBreakdown(newCatalog(t, false), draftWith("2024-06-01", "2024-06-03", map[string]int{"deluxe": 1}, "wifi"))

	assert.Len(t, enabled.Items, 2)
	assert.Len(t, disabled.Items, 1)
	assert.Equal(t, int64(20400), disabled.Total)
	assert.Equal(t, disabled.Total+1120, enabled.Total)
}

func TestComputeBreakdown_TotalProperty(t *testing.T) {
	catalog := newCatalog(t, true)
	rng := rand.New(rand.NewPCG(2024, 6))
	start := date("2024-06-01")

	for range 200 {
		nights := 1 + rng.IntN(30)
		draft := model.NewDraft()
		draft.CheckIn = start
		draft.CheckOut = start.AddDate(0, 0, nights)

		var expected int64

		for _, room := range catalog.RoomTypes() {
			if qty := rng.IntN(4); qty > 0 {
				draft.RoomQuantities[room.Key] = qty
				expected += room.Price * int64(nights) * int64(qty)
			}
		}

		for _, svc := range catalog.EnabledServices() {
			if rng.IntN(2) == 1 {
				draft.SelectedServices[svc.Key] = struct{}{}
				expected += svc.Price * int64(nights)
			}
		}

		breakdown := service.ComputeBreakdown(catalog, draft)

		var sum int64
		for _, item := range breakdown.Items {
			sum += item.Amount
		}

		require.Equal(t, expected, breakdown.Total)
		require.Equal(t, sum, breakdown.Total)
	}
}

func TestComputeBreakdown_LargestSelectionStaysExact(t *testing.T) {
	catalog, err := catalogService.New(
		catalogModel.Hotel{Name: "LuxuryStay Hotel", Currency: catalogModel.Currency{Symbol: "₱", Code: "PHP"}},
		[]catalogModel.RoomType{{Key: "presidential", Name: "Presidential", Price: catalogModel.MaxPrice, MaxGuests: 6}},
		[]catalogModel.Service{{Key: "butler", Name: "Butler", Price: catalogModel.MaxPrice, Enabled: true}},
	)
	require.NoError(t, err)

	draft := draftWith("2024-06-01", "9999-12-31", map[string]int{"presidential": model.MaxRoomQuantity}, "butler")
	nights := int64(draft.Nights())

	breakdown := service.ComputeBreakdown(catalog, draft)

	require.Len(t, breakdown.Items, 2)
	assert.Equal(t, catalogModel.MaxPrice*nights*model.MaxRoomQuantity, breakdown.Items[0].Amount)
	assert.Equal(t, catalogModel.MaxPrice*nights*(model.MaxRoomQuantity+1), breakdown.Total)
	assert.Positive(t, breakdown.Total)
}

func TestComputeBreakdown_UnknownRoomPanics(t *testing.T) {
	catalog := newCatalog(t, true)
	draft := draftWith("2024-06-01", "2024-06-03", map[string]int{"penthouse": 1})

	assert.Panics(t, func() {
		service.ComputeBreakdown(catalog, draft)
	})
}

func TestCanProceedToCheckout(t *testing.T) {
	tests := []struct {
		name     string
		draft    model.Draft
		expected bool
	}{
		{
			name:     "valid selection",
			draft:    draftWith("2024-06-01", "2024-06-03", map[string]int{"deluxe": 2}),
			expected: true,
		},
		{
			name:     "no rooms with valid dates",
			draft:    draftWith("2024-06-01", "2024-06-03", nil, "wifi"),
			expected: false,
		},
		{
			name:     "no dates",
			draft:    draftWith("", "", map[string]int{"deluxe": 1}),
			expected: false,
		},
		{
			name:     "check-out equals check-in",
			draft:    draftWith("2024-06-01", "2024-06-01", map[string]int{"deluxe": 1}),
			expected: false,
		},
		{
			name:     "inverted dates",
			draft:    draftWith("2024-06-03", "2024-06-01", map[string]int{"deluxe": 1}),
			expected: false,
		},
		{
			name: "more guests than capacity is not checked",
			draft: func() model.Draft {
				d := draftWith("2024-06-01", "2024-06-02", map[string]int{"standard": 1})
				d.GuestCount = 9

				return d
			}(),
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, service.CanProceedToCheckout(tt.draft))

			err := service.ValidateSelection(tt.draft)
			if tt.expected {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, failure.IncompleteSelection)
			}
		})
	}
}

func TestNewBooking(t *testing.T) {
	catalog := newCatalog(t, true)
	draft := draftWith("2024-06-01", "2024-06-03", map[string]int{"suite": 1, "deluxe": 2}, "spa", "wifi")
	draft.GuestCount = 4
	draft.SpecialRequests = "Late check-in"
	breakdown := service.ComputeBreakdown(catalog, draft)
	now := time.Date(2024, 5, 20, 8, 30, 0, 0, time.UTC)
	guest := model.Guest{FirstName: "Juan", LastName: "Dela Cruz", Email: "juan@example.com", Phone: "09171234567"}

	booking := service.NewBooking(catalog, draft, breakdown, guest, now)

	assert.NotEmpty(t, booking.ID)
	assert.Equal(t, guest, booking.Guest)
	assert.Equal(t, 2, booking.Nights)
	assert.Equal(t, 4, booking.GuestCount)
	assert.Equal(t, "Sat, Jun 1, 2024", booking.CheckInDisplay)
	assert.Equal(t, "Mon, Jun 3, 2024", booking.CheckOutDisplay)
	assert.Equal(t, []string{"2 × Deluxe", "1 × Suite"}, booking.Rooms)
	assert.Equal(t, []string{"wifi", "spa"}, booking.Services)
	assert.Equal(t, "Late check-in", booking.SpecialRequests)
	assert.Equal(t, breakdown, booking.Breakdown)
	assert.Equal(t, breakdown.Total, booking.Total())
	assert.Equal(t, "PHP", booking.Currency.Code)
	assert.Equal(t, now, booking.CreatedAt)

	t.Run("snapshot is detached from the draft", func(t *testing.T) {
		draft.RoomQuantities["deluxe"] = 5
		delete(draft.SelectedServices, "spa")
		breakdown.Items[0].Amount = 0

		assert.Equal(t, 2, booking.RoomQuantities["deluxe"])
		assert.Equal(t, int64(40800), booking.Breakdown.Items[0].Amount)
	})

	t.Run("clone is detached from the booking", func(t *testing.T) {
		clone := booking.Clone()
		clone.Rooms[0] = "changed"
		clone.RoomQuantities["suite"] = 9
		clone.Breakdown.Items[0].Description = "changed"

		assert.Equal(t, "2 × Deluxe", booking.Rooms[0])
		assert.Equal(t, 1, booking.RoomQuantities["suite"])
		assert.Equal(t, "Deluxe ×2 × 2 nights", booking.Breakdown.Items[0].Description)
	})
}
