package models

import (
	"errors"
	"fmt"
)

var ErrInvalidSelection = errors.New("invalid selection")

// Selection is the district/year/month (and optional house type) a user is
// looking at. It lives for a single rendering pass.
type Selection struct {
	District  string    `json:"district"`
	Year      int       `json:"year"`
	Month     int       `json:"month"`
	HouseType HouseType `json:"house_type,omitempty"`
}

// Validate reports whether the selection can be applied to a dataset.
func (s Selection) Validate() error {
	if s.District == "" {
		return fmt.Errorf("%w: district is required", ErrInvalidSelection)
	}
	if s.Year <= 0 {
		return fmt.Errorf("%w: year must be positive, got %d", ErrInvalidSelection, s.Year)
	}
	if s.Month < 1 || s.Month > 12 {
		return fmt.Errorf("%w: month must be between 1 and 12, got %d", ErrInvalidSelection, s.Month)
	}
	return nil
}

func (s Selection) String() string {
	if s.HouseType == AnyHouseType {
		return fmt.Sprintf("%s %d.%d", s.District, s.Month, s.Year)
	}
	return fmt.Sprintf("%s %d.%d (%s)", s.District, s.Month, s.Year, s.HouseType.Label())
}
