package model

import (
	catalogModel "hotelres/internal/domains/catalog/model"
	"hotelres/shared/timezone"
	"maps"
	"slices"
	"time"
)

const (
	DefaultGuestCount = 1
	// MaxRoomQuantity bounds one room line. With catalog prices capped at
	// catalogModel.MaxPrice no line amount can overflow.
	MaxRoomQuantity = 10
)

// Draft is the guest's in-progress selection. Zero CheckIn or CheckOut means unset.
// RoomQuantities never holds a zero or negative count: absent means not selected.
type Draft struct {
	CheckIn          time.Time
	CheckOut         time.Time
	RoomQuantities   map[string]int
	GuestCount       int
	SelectedServices map[string]struct{}
	SpecialRequests  string
}

func NewDraft() Draft {
	return Draft{
		RoomQuantities:   map[string]int{},
		GuestCount:       DefaultGuestCount,
		SelectedServices: map[string]struct{}{},
	}
}

func (d Draft) Clone() Draft {
	clone := d
	clone.RoomQuantities = maps.Clone(d.RoomQuantities)
	clone.SelectedServices = maps.Clone(d.SelectedServices)

	if clone.RoomQuantities == nil {
		clone.RoomQuantities = map[string]int{}
	}

	if clone.SelectedServices == nil {
		clone.SelectedServices = map[string]struct{}{}
	}

	return clone
}

func (d Draft) Quantity(roomKey string) int {
	return d.RoomQuantities[roomKey]
}

func (d Draft) TotalRooms() int {
	total := 0
	for _, qty := range d.RoomQuantities {
		total += max(qty, 0)
	}

	return total
}

func (d Draft) IsSelected(serviceKey string) bool {
	_, ok := d.SelectedServices[serviceKey]

	return ok
}

// SelectedServiceKeys is sorted so callers get a stable order without a catalog.
func (d Draft) SelectedServiceKeys() []string {
	return slices.Sorted(maps.Keys(d.SelectedServices))
}

func (d Draft) HasDates() bool {
	return !d.CheckIn.IsZero() && !d.CheckOut.IsZero()
}

// Nights is zero while either date is unset and negative for inverted dates.
func (d Draft) Nights() int {
	if !d.HasDates() {
		return 0
	}

	return timezone.DaysBetween(d.CheckIn, d.CheckOut)
}

type PriceLineItem struct {
	Description string
	Amount      int64
}

// PriceBreakdown lists room lines then service lines, each in catalog order.
type PriceBreakdown struct {
	Items []PriceLineItem
	Total int64
}

func (b PriceBreakdown) IsEmpty() bool {
	return len(b.Items) == 0
}

func (b PriceBreakdown) Clone() PriceBreakdown {
	return PriceBreakdown{Items: slices.Clone(b.Items), Total: b.Total}
}

type Guest struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
}

func (g Guest) FullName() string {
	switch {
	case g.FirstName == "":
		return g.LastName
	case g.LastName == "":
		return g.FirstName
	default:
		return g.FirstName + " " + g.LastName
	}
}

// Booking is the snapshot handed to payment. It is built once per checkout
// attempt and never changed afterwards; use Clone to hand out copies.
type Booking struct {
	ID              string
	Guest           Guest
	CheckIn         time.Time
	CheckOut        time.Time
	CheckInDisplay  string
	CheckOutDisplay string
	Nights          int
	GuestCount      int
	RoomQuantities  map[string]int
	Services        []string
	SpecialRequests string
	Rooms           []string
	Breakdown       PriceBreakdown
	Currency        catalogModel.Currency
	CreatedAt       time.Time
}

func (b Booking) Total() int64 {
	return b.Breakdown.Total
}

func (b Booking) Clone() Booking {
	clone := b
	clone.RoomQuantities = maps.Clone(b.RoomQuantities)
	clone.Services = slices.Clone(b.Services)
	clone.Rooms = slices.Clone(b.Rooms)
	clone.Breakdown = b.Breakdown.Clone()

	return clone
}
