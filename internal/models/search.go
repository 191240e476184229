package models

import "time"

// Date layout used for check-in/check-out values throughout the API
const DateLayout = "2006-01-02"

// SearchCriteria carries the user-supplied room search filters. All active
// criteria are combined with AND semantics.
type SearchCriteria struct {
	Location  string   `json:"location" form:"location"`
	CheckIn   string   `json:"check_in" form:"check_in"`
	CheckOut  string   `json:"check_out" form:"check_out"`
	Guests    int      `json:"guests" form:"guests"`
	RoomType  string   `json:"room_type" form:"room_type"`
	MinPrice  float64  `json:"min_price" form:"min_price"`
	MaxPrice  float64  `json:"max_price" form:"max_price"`
	Amenities []string `json:"amenities" form:"amenities"`
}

// Validate validates the search criteria. Date errors carry the exact
// messages surfaced to the search form.
func (c *SearchCriteria) Validate() error {
	if c.Location == "" {
		return &ValidationError{Field: "location", Message: "Please enter a location"}
	}
	if c.CheckIn == "" {
		return &ValidationError{Field: "check_in", Message: "Please select check-in date"}
	}
	if c.CheckOut == "" {
		return &ValidationError{Field: "check_out", Message: "Please select check-out date"}
	}
	if c.Guests < 1 {
		return &ValidationError{Field: "guests", Message: "At least 1 guest is required"}
	}
	if c.Guests > 10 {
		return &ValidationError{Field: "guests", Message: "Maximum 10 guests allowed"}
	}
	return ValidateStayDates(c.CheckIn, c.CheckOut)
}

// ValidateStayDates enforces the core date-range rules: well-formed dates,
// check-out strictly after check-in, check-in not in the past.
func ValidateStayDates(checkIn, checkOut string) error {
	in, err := time.Parse(DateLayout, checkIn)
	if err != nil {
		return &ValidationError{Field: "check_in", Message: "Please select check-in date"}
	}
	out, err := time.Parse(DateLayout, checkOut)
	if err != nil {
		return &ValidationError{Field: "check_out", Message: "Please select check-out date"}
	}
	if !out.After(in) {
		return &ValidationError{Field: "check_out", Message: "Check-out date must be after check-in date"}
	}
	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if in.Before(today) {
		return &ValidationError{Field: "check_in", Message: "Check-in date cannot be in the past"}
	}
	return nil
}
