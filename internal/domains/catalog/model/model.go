package model

// MaxPrice caps every nightly price in the catalog.
const MaxPrice = 1_000_000_000

// Currency is display-only. Amounts everywhere are whole units of it.
type Currency struct {
	Symbol string `json:"symbol" yaml:"symbol" validate:"required"`
	Code   string `json:"code"   yaml:"code"   validate:"required,len=3"`
}

type Hotel struct {
	Name     string   `json:"name"     yaml:"name"     validate:"required"`
	Tagline  string   `json:"tagline"  yaml:"tagline"`
	Icon     string   `json:"icon"     yaml:"icon"`
	Currency Currency `json:"currency" yaml:"currency" validate:"required"`
}

// RoomType is a bookable room. Every room type in the catalog is offered.
type RoomType struct {
	Key         string   `json:"key"          yaml:"-"`
	Name        string   `json:"name"         yaml:"name"        validate:"required"`
	Description string   `json:"description"  yaml:"description"`
	Price       int64    `json:"price"        yaml:"price"       validate:"gt=0,lte=1000000000"`
	MaxGuests   int      `json:"max_guests"   yaml:"maxGuests"   validate:"gt=0"`
	Image       string   `json:"image"        yaml:"image"`
	Features    []string `json:"features"     yaml:"features"`
}

// Service is a per-night add-on. Disabled services can be neither selected nor priced.
type Service struct {
	Key     string `json:"key"     yaml:"-"`
	Name    string `json:"name"    yaml:"name"    validate:"required"`
	Icon    string `json:"icon"    yaml:"icon"`
	Price   int64  `json:"price"   yaml:"price"   validate:"gte=0,lte=1000000000"`
	Enabled bool   `json:"enabled" yaml:"enabled"`
}
