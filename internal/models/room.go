package models

import (
	"fmt"
	"time"
)

// RoomType represents the category of a room
type RoomType string

const (
	RoomTypeSingle    RoomType = "single"
	RoomTypeDouble    RoomType = "double"
	RoomTypeSuite     RoomType = "suite"
	RoomTypeDeluxe    RoomType = "deluxe"
	RoomTypePenthouse RoomType = "penthouse"
)

// ValidRoomTypes lists every accepted room type
var ValidRoomTypes = []RoomType{RoomTypeSingle, RoomTypeDouble, RoomTypeSuite, RoomTypeDeluxe, RoomTypePenthouse}

// IsValidRoomType checks whether a room type string is known
func IsValidRoomType(t string) bool {
	for _, rt := range ValidRoomTypes {
		if string(rt) == t {
			return true
		}
	}
	return false
}

// Room represents a bookable room type in the catalog
type Room struct {
	ID           string      `json:"id" db:"id"`
	Name         string      `json:"name" db:"name"`
	Type         RoomType    `json:"type" db:"type"`
	Description  string      `json:"description" db:"description"`
	Price        float64     `json:"price" db:"price"`
	MaxOccupancy int         `json:"max_occupancy" db:"max_occupancy"`
	Size         float64     `json:"size" db:"size"`
	Images       StringArray `json:"images" db:"images"`
	Amenities    StringArray `json:"amenities" db:"amenities"`
	Features     StringArray `json:"features" db:"features"`
	Available    bool        `json:"available" db:"available"`
	Inventory    int         `json:"inventory" db:"inventory"`
	Rating       float64     `json:"rating" db:"rating"`
	ReviewCount  int         `json:"review_count" db:"review_count"`
	CreatedAt    time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at" db:"updated_at"`
}

// ValidateOccupancy checks a requested guest count against the room's limit
func (r *Room) ValidateOccupancy(guests int) error {
	if guests > r.MaxOccupancy {
		return &ValidationError{
			Field:   "guests",
			Message: fmt.Sprintf("This room can accommodate maximum %d guests", r.MaxOccupancy),
		}
	}
	return nil
}

// RoomRequest represents an admin create/update of a room
type RoomRequest struct {
	Name         string   `json:"name" binding:"required"`
	Type         string   `json:"type" binding:"required"`
	Description  string   `json:"description" binding:"required"`
	Price        float64  `json:"price" binding:"required"`
	MaxOccupancy int      `json:"max_occupancy" binding:"required"`
	Size         float64  `json:"size" binding:"required"`
	Images       []string `json:"images,omitempty"`
	Amenities    []string `json:"amenities" binding:"required"`
	Features     []string `json:"features" binding:"required"`
	Available    *bool    `json:"available,omitempty"`
	Inventory    int      `json:"inventory" binding:"required"`
}

// Validate validates a room create/update request
func (r *RoomRequest) Validate() error {
	if len(r.Name) < 3 {
		return &ValidationError{Field: "name", Message: "Room name must be at least 3 characters"}
	}
	if !IsValidRoomType(r.Type) {
		return &ValidationError{Field: "type", Message: "Invalid room type"}
	}
	if len(r.Description) < 20 {
		return &ValidationError{Field: "description", Message: "Description must be at least 20 characters"}
	}
	if r.Price < 1 {
		return &ValidationError{Field: "price", Message: "Price must be greater than 0"}
	}
	if r.MaxOccupancy < 1 {
		return &ValidationError{Field: "max_occupancy", Message: "Maximum occupancy must be at least 1"}
	}
	if r.Size < 1 {
		return &ValidationError{Field: "size", Message: "Size must be greater than 0"}
	}
	if len(r.Amenities) == 0 {
		return &ValidationError{Field: "amenities", Message: "At least one amenity is required"}
	}
	if len(r.Features) == 0 {
		return &ValidationError{Field: "features", Message: "At least one feature is required"}
	}
	if r.Inventory < 1 {
		return &ValidationError{Field: "inventory", Message: "Inventory must be at least 1"}
	}
	return nil
}

// Extra represents an optional paid add-on (e.g. breakfast package)
type Extra struct {
	ID          string  `json:"id" db:"id"`
	Name        string  `json:"name" db:"name"`
	Description string  `json:"description" db:"description"`
	Price       float64 `json:"price" db:"price"`
	Category    string  `json:"category" db:"category"`
	Available   bool    `json:"available" db:"available"`
}
