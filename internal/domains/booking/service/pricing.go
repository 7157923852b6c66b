package service

import (
	"fmt"
	"hotelres/internal/domains/booking/model"
	catalogService "hotelres/internal/domains/catalog/service"
	"hotelres/shared"
)

func nightsPhrase(nights int) string {
	return shared.CountOf(nights, "night", "nights")
}

// ComputeBreakdown prices a draft from scratch. Missing or non-positive stays
// give an empty breakdown. A positive quantity for a room type the catalog
// does not list panics: draft editing never lets one in.
func ComputeBreakdown(catalog catalogService.Catalog, draft model.Draft) model.PriceBreakdown {
	breakdown := model.PriceBreakdown{Items: []model.PriceLineItem{}}

	nights := draft.Nights()
	if nights <= 0 {
		return breakdown
	}

	for key, qty := range draft.RoomQuantities {
		if qty <= 0 {
			continue
		}

		if _, err := catalog.RoomType(key); err != nil {
			panic(fmt.Sprintf("pricing draft with unknown room type %q: %v", key, err))
		}
	}

	for _, room := range catalog.RoomTypes() {
		qty := draft.Quantity(room.Key)
		if qty <= 0 {
			continue
		}

		breakdown.Items = append(breakdown.Items, model.PriceLineItem{
			Description: fmt.Sprintf("%s ×%d × %s", room.Name, qty, nightsPhrase(nights)),
			Amount:      room.Price * int64(nights) * int64(qty),
		})
	}

	for _, svc := range catalog.EnabledServices() {
		if !draft.IsSelected(svc.Key) {
			continue
		}

		breakdown.Items = append(breakdown.Items, model.PriceLineItem{
			Description: fmt.Sprintf("%s (%s)", svc.Name, nightsPhrase(nights)),
			Amount:      svc.Price * int64(nights),
		})
	}

	for _, item := range breakdown.Items {
		breakdown.Total += item.Amount
	}

	return breakdown
}
