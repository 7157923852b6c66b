package service

import (
	"fmt"
	"hotelres/internal/domains/booking/model"
	catalogService "hotelres/internal/domains/catalog/service"
	"hotelres/shared/constant"
	"time"

	"github.com/google/uuid"
)

// NewBooking snapshots a validated draft and its breakdown. Rooms and services
// follow catalog order and the breakdown is copied, not recomputed.
func NewBooking(catalog catalogService.Catalog, draft model.Draft, breakdown model.PriceBreakdown, guest model.Guest, now time.Time) model.Booking {
	draft = draft.Clone()

	rooms := []string{}
	for _, room := range catalog.RoomTypes() {
		if qty := draft.Quantity(room.Key); qty > 0 {
			rooms = append(rooms, fmt.Sprintf("%d × %s", qty, room.Name))
		}
	}

	services := []string{}
	for _, svc := range catalog.EnabledServices() {
		if draft.IsSelected(svc.Key) {
			services = append(services, svc.Key)
		}
	}

	return model.Booking{
		ID:              uuid.NewString(),
		Guest:           guest,
		CheckIn:         draft.CheckIn,
		CheckOut:        draft.CheckOut,
		CheckInDisplay:  draft.CheckIn.Format(constant.DisplayDateFormat),
		CheckOutDisplay: draft.CheckOut.Format(constant.DisplayDateFormat),
		Nights:          draft.Nights(),
		GuestCount:      draft.GuestCount,
		RoomQuantities:  draft.RoomQuantities,
		Services:        services,
		SpecialRequests: draft.SpecialRequests,
		Rooms:           rooms,
		Breakdown:       breakdown.Clone(),
		Currency:        catalog.Hotel().Currency,
		CreatedAt:       now,
	}
}
