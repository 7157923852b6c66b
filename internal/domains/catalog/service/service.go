package service

import (
	"fmt"
	"hotelres/internal/domains/catalog/model"
	"hotelres/shared/failure"
	"slices"
)

// Catalog is the immutable room and service reference data. Lookups return copies.
type Catalog interface {
	Hotel() model.Hotel
	RoomType(key string) (model.RoomType, error)
	RoomTypes() []model.RoomType
	Service(key string) (model.Service, error)
	Services() []model.Service
	EnabledServices() []model.Service
}

type catalogImpl struct {
	hotel        model.Hotel
	rooms        []model.RoomType
	roomIndex    map[string]int
	services     []model.Service
	serviceIndex map[string]int
}

// New builds a catalog from entries already in declaration order.
func New(hotel model.Hotel, rooms []model.RoomType, services []model.Service) (Catalog, error) {
	if len(rooms) == 0 {
		return nil, fmt.Errorf("catalog has no room types")
	}

	catalog := &catalogImpl{
		hotel:        hotel,
		rooms:        make([]model.RoomType, 0, len(rooms)),
		roomIndex:    make(map[string]int, len(rooms)),
		services:     make([]model.Service, 0, len(services)),
		serviceIndex: make(map[string]int, len(services)),
	}

	for _, room := range rooms {
		if room.Key == "" {
			return nil, fmt.Errorf("room type %q has an empty key", room.Name)
		}

		if _, ok := catalog.roomIndex[room.Key]; ok {
			return nil, fmt.Errorf("duplicate room type %q", room.Key)
		}

		catalog.roomIndex[room.Key] = len(catalog.rooms)
		catalog.rooms = append(catalog.rooms, copyRoom(room))
	}

	for _, svc := range services {
		if svc.Key == "" {
			return nil, fmt.Errorf("service %q has an empty key", svc.Name)
		}

		if _, ok := catalog.serviceIndex[svc.Key]; ok {
			return nil, fmt.Errorf("duplicate service %q", svc.Key)
		}

		catalog.serviceIndex[svc.Key] = len(catalog.services)
		catalog.services = append(catalog.services, svc)
	}

	return catalog, nil
}

func copyRoom(room model.RoomType) model.RoomType {
	room.Features = slices.Clone(room.Features)

	return room
}

func (c *catalogImpl) Hotel() model.Hotel {
	return c.hotel
}

// RoomType fails with NotFound for keys the catalog never listed.
func (c *catalogImpl) RoomType(key string) (model.RoomType, error) {
	idx, ok := c.roomIndex[key]
	if !ok {
		return model.RoomType{}, failure.NotFound(fmt.Sprintf("room type %q is not in the catalog", key))
	}

	return copyRoom(c.rooms[idx]), nil
}

func (c *catalogImpl) RoomTypes() []model.RoomType {
	rooms := make([]model.RoomType, 0, len(c.rooms))
	for _, room := range c.rooms {
		rooms = append(rooms, copyRoom(room))
	}

	return rooms
}

func (c *catalogImpl) Service(key string) (model.Service, error) {
	idx, ok := c.serviceIndex[key]
	if !ok {
		return model.Service{}, failure.NotFound(fmt.Sprintf("service %q is not in the catalog", key))
	}

	return c.services[idx], nil
}

func (c *catalogImpl) Services() []model.Service {
	return slices.Clone(c.services)
}

func (c *catalogImpl) EnabledServices() []model.Service {
	enabled := make([]model.Service, 0, len(c.services))

	for _, svc := range c.services {
		if svc.Enabled {
			enabled = append(enabled, svc)
		}
	}

	return enabled
}
