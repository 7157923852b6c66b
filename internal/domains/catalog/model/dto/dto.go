package dto

import "hotelres/internal/domains/catalog/model"

// CatalogResponse lists room types and enabled services in catalog order.
type CatalogResponse struct {
	Hotel    model.Hotel      `json:"hotel"`
	Rooms    []model.RoomType `json:"rooms"`
	Services []model.Service  `json:"services"`
}

func (r *CatalogResponse) FromCatalog(hotel model.Hotel, rooms []model.RoomType, services []model.Service) {
	r.Hotel = hotel
	r.Rooms = rooms
	r.Services = services
}
