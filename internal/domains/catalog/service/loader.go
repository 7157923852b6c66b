package service

import (
	"embed"
	"errors"
	"fmt"
	"hotelres/config"
	"hotelres/internal/domains/catalog/model"
	"hotelres/shared/validator"
	"os"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

//go:embed defaults/*.yaml
var defaults embed.FS

const (
	defaultHotelPath    = "defaults/hotel.yaml"
	defaultRoomsPath    = "defaults/rooms.yaml"
	defaultServicesPath = "defaults/services.yaml"
)

var errEmptyDocument = errors.New("document is empty")

// Load parses the hotel, rooms and services documents. YAML and JSON are both
// accepted. Mapping order in the rooms and services documents is the catalog order.
func Load(hotelDoc, roomsDoc, servicesDoc []byte) (Catalog, error) {
	var hotel model.Hotel
	if err := yaml.Unmarshal(hotelDoc, &hotel); err != nil {
		return nil, fmt.Errorf("failed to parse hotel document: %w", err)
	}

	if err := validator.ValidateStruct(&hotel); err != nil {
		return nil, fmt.Errorf("invalid hotel document: %w", err)
	}

	rooms, err := decodeOrdered(roomsDoc, func(key string, room *model.RoomType) { room.Key = key })
	if err != nil {
		return nil, fmt.Errorf("failed to parse rooms document: %w", err)
	}

	services, err := decodeOrdered(servicesDoc, func(key string, svc *model.Service) { svc.Key = key })
	if err != nil && !errors.Is(err, errEmptyDocument) {
		return nil, fmt.Errorf("failed to parse services document: %w", err)
	}

	return New(hotel, rooms, services)
}

// decodeOrdered walks a top-level mapping node so entries keep their document order.
func decodeOrdered[T any](doc []byte, setKey func(key string, entry *T)) ([]T, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(doc, &root); err != nil {
		return nil, err
	}

	if root.Kind == 0 || len(root.Content) == 0 {
		return nil, errEmptyDocument
	}

	mapping := root.Content[0]
	if mapping.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: expected a mapping of key to entry", mapping.Line)
	}

	entries := make([]T, 0, len(mapping.Content)/2)
	seen := make(map[string]struct{}, len(mapping.Content)/2)

	for i := 0; i+1 < len(mapping.Content); i += 2 {
		keyNode, valueNode := mapping.Content[i], mapping.Content[i+1]

		if _, ok := seen[keyNode.Value]; ok {
			return nil, fmt.Errorf("line %d: duplicate key %q", keyNode.Line, keyNode.Value)
		}

		seen[keyNode.Value] = struct{}{}

		var entry T
		if err := valueNode.Decode(&entry); err != nil {
			return nil, fmt.Errorf("%q: %w", keyNode.Value, err)
		}

		if err := validator.ValidateStruct(&entry); err != nil {
			return nil, fmt.Errorf("%q: %w", keyNode.Value, err)
		}

		setKey(keyNode.Value, &entry)
		entries = append(entries, entry)
	}

	return entries, nil
}

// LoadFiles reads the configured catalog documents, using the embedded
// defaults for any path left empty.
func LoadFiles(cfg *config.Config) (Catalog, error) {
	hotelDoc, err := readDocument(cfg.Catalog.HotelPath, defaultHotelPath)
	if err != nil {
		return nil, err
	}

	roomsDoc, err := readDocument(cfg.Catalog.RoomsPath, defaultRoomsPath)
	if err != nil {
		return nil, err
	}

	servicesDoc, err := readDocument(cfg.Catalog.ServicesPath, defaultServicesPath)
	if err != nil {
		return nil, err
	}

	return Load(hotelDoc, roomsDoc, servicesDoc)
}

func readDocument(path, fallback string) ([]byte, error) {
	if path == "" {
		return defaults.ReadFile(fallback) //nolint:wrapcheck
	}

	doc, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog document %s: %w", path, err)
	}

	return doc, nil
}

// Provide loads the catalog once at startup. A broken catalog stops the process.
func Provide(cfg *config.Config) Catalog {
	catalog, err := LoadFiles(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load catalog")
	}

	log.Info().
		Str("hotel", catalog.Hotel().Name).
		Int("room_types", len(catalog.RoomTypes())).
		Int("services", len(catalog.Services())).
		Msg("Catalog loaded")

	return catalog
}
