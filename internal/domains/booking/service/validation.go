package service

import (
	"hotelres/internal/domains/booking/model"
	"hotelres/shared/failure"
)

// CanProceedToCheckout needs both dates, check-out after check-in and at least
// one room. Guest count is not checked against room capacity.
func CanProceedToCheckout(draft model.Draft) bool {
	return draft.HasDates() && draft.Nights() > 0 && draft.TotalRooms() > 0
}

// ValidateSelection is CanProceedToCheckout as an error.
func ValidateSelection(draft model.Draft) error {
	if !CanProceedToCheckout(draft) {
		return failure.IncompleteSelection
	}

	return nil
}
