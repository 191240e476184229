package services

import (
	"strings"

	"github.com/azurestay/booking-backend/internal/database"
	"github.com/azurestay/booking-backend/internal/models"
	"github.com/sirupsen/logrus"
)

// SearchService handles room search and filtering. Structured predicates
// (type, price, occupancy, availability) push down to SQL; amenity subset
// and free-text matching run in memory over the narrowed result. All
// criteria combine with AND semantics.
type SearchService struct {
	roomRepo *database.RoomRepository
	logger   *logrus.Logger
}

// NewSearchService creates a new search service
func NewSearchService(roomRepo *database.RoomRepository, logger *logrus.Logger) *SearchService {
	return &SearchService{
		roomRepo: roomRepo,
		logger:   logger,
	}
}

// Search runs a validated availability search
func (s *SearchService) Search(criteria *models.SearchCriteria) ([]models.Room, error) {
	if err := criteria.Validate(); err != nil {
		return nil, err
	}

	rooms, err := s.roomRepo.QueryRooms(database.RoomQuery{
		Type:          criteria.RoomType,
		MinPrice:      criteria.MinPrice,
		MaxPrice:      criteria.MaxPrice,
		MinOccupancy:  criteria.Guests,
		OnlyAvailable: true,
	})
	if err != nil {
		return nil, err
	}

	filtered := make([]models.Room, 0, len(rooms))
	for _, room := range rooms {
		if !hasAllAmenities(&room, criteria.Amenities) {
			continue
		}
		filtered = append(filtered, room)
	}

	s.logger.WithFields(logrus.Fields{
		"location": criteria.Location,
		"guests":   criteria.Guests,
		"results":  len(filtered),
	}).Debug("Room search executed")

	return filtered, nil
}

// Filter applies catalog filters without requiring the search form fields.
// Used by the room listing page where location and dates are optional.
func (s *SearchService) Filter(roomType string, minPrice, maxPrice float64, guests int, amenities []string, text string) ([]models.Room, error) {
	rooms, err := s.roomRepo.QueryRooms(database.RoomQuery{
		Type:          roomType,
		MinPrice:      minPrice,
		MaxPrice:      maxPrice,
		MinOccupancy:  guests,
		OnlyAvailable: true,
	})
	if err != nil {
		return nil, err
	}

	filtered := make([]models.Room, 0, len(rooms))
	for _, room := range rooms {
		if !hasAllAmenities(&room, amenities) {
			continue
		}
		if !matchesText(&room, text) {
			continue
		}
		filtered = append(filtered, room)
	}

	return filtered, nil
}

// FeaturedRooms returns the highest rated available rooms for the home page
func (s *SearchService) FeaturedRooms(limit int) ([]models.Room, error) {
	if limit < 1 {
		limit = 4
	}
	return s.roomRepo.GetFeaturedRooms(limit)
}

// hasAllAmenities reports whether the room carries every requested amenity.
// Matching is case-insensitive; an empty request matches everything.
func hasAllAmenities(room *models.Room, amenities []string) bool {
	for _, want := range amenities {
		if want == "" {
			continue
		}
		found := false
		for _, have := range room.Amenities {
			if strings.EqualFold(have, want) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// matchesText does a case-insensitive substring match over name and
// description. Empty queries match everything.
func matchesText(room *models.Room, text string) bool {
	query := strings.ToLower(strings.TrimSpace(text))
	if query == "" {
		return true
	}
	return strings.Contains(strings.ToLower(room.Name), query) ||
		strings.Contains(strings.ToLower(room.Description), query)
}
