package service

import (
	"fmt"
	bookingModel "hotelres/internal/domains/booking/model"
	catalogService "hotelres/internal/domains/catalog/service"
	"hotelres/shared/failure"
	"hotelres/shared/timezone"
	"time"
)

// DraftEditor changes a working copy of the draft inside Machine.Edit.
// Keys must come from the catalog and services must be enabled.
type DraftEditor struct {
	catalog catalogService.Catalog
	draft   bookingModel.Draft
}

// SetDates keeps the calendar date of each value. Either may be zero to unset it.
func (d *DraftEditor) SetDates(checkIn, checkOut time.Time) {
	d.SetCheckIn(checkIn)
	d.SetCheckOut(checkOut)
}

func (d *DraftEditor) SetCheckIn(checkIn time.Time) {
	d.draft.CheckIn = timezone.TruncateDate(checkIn)
}

func (d *DraftEditor) SetCheckOut(checkOut time.Time) {
	d.draft.CheckOut = timezone.TruncateDate(checkOut)
}

func (d *DraftEditor) ClearDates() {
	d.SetDates(time.Time{}, time.Time{})
}

// SetRoomQuantity sets the count for a room type. Zero deselects it.
func (d *DraftEditor) SetRoomQuantity(roomKey string, quantity int) error {
	if _, err := d.catalog.RoomType(roomKey); err != nil {
		return err
	}

	if quantity < 0 {
		return failure.BadRequestFromString("room quantity cannot be negative")
	}

	if quantity > bookingModel.MaxRoomQuantity {
		return failure.BadRequestFromString(fmt.Sprintf("room quantity cannot exceed %d", bookingModel.MaxRoomQuantity))
	}

	if quantity == 0 {
		delete(d.draft.RoomQuantities, roomKey)

		return nil
	}

	d.draft.RoomQuantities[roomKey] = quantity

	return nil
}

func (d *DraftEditor) SetGuestCount(count int) error {
	if count < 1 {
		return failure.BadRequestFromString("guest count must be at least 1")
	}

	d.draft.GuestCount = count

	return nil
}

func (d *DraftEditor) SetService(serviceKey string, selected bool) error {
	svc, err := d.catalog.Service(serviceKey)
	if err != nil {
		return err
	}

	if !svc.Enabled {
		return failure.BadRequestFromString(fmt.Sprintf("service %s is not available", serviceKey))
	}

	if selected {
		d.draft.SelectedServices[serviceKey] = struct{}{}
	} else {
		delete(d.draft.SelectedServices, serviceKey)
	}

	return nil
}

func (d *DraftEditor) SetSpecialRequests(text string) {
	d.draft.SpecialRequests = text
}
