package model

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidInput marks malformed birth data. Surfaced to the caller
// immediately, never retried.
var ErrInvalidInput = errors.New("invalid input")

// BirthInput is the raw birth data a chart computation starts from.
// Validation happens here, at the boundary, so calculators can assume
// well-formed values.
type BirthInput struct {
	Name string  `json:"name,omitempty"`
	Date string  `json:"date"`           // YYYY-MM-DD
	Time string  `json:"time,omitempty"` // HH:MM, defaults to 12:00
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

// Validate checks ranges and formats without parsing side effects.
func (b BirthInput) Validate() error {
	if _, err := b.Timestamp(); err != nil {
		return err
	}
	if b.Lat < -90 || b.Lat > 90 {
		return fmt.Errorf("%w: latitude %.4f out of range [-90, 90]", ErrInvalidInput, b.Lat)
	}
	if b.Lon < -180 || b.Lon > 180 {
		return fmt.Errorf("%w: longitude %.4f out of range [-180, 180]", ErrInvalidInput, b.Lon)
	}
	return nil
}

// Timestamp parses the date and time fields into a UTC timestamp.
func (b BirthInput) Timestamp() (time.Time, error) {
	if b.Date == "" {
		return time.Time{}, fmt.Errorf("%w: birth date is required", ErrInvalidInput)
	}
	clock := b.Time
	if clock == "" {
		clock = "12:00"
	}
	ts, err := time.Parse("2006-01-02 15:04", b.Date+" "+clock)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return ts.UTC(), nil
}
