package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidGridConfig is returned for grid parameters that cannot produce a layout
var ErrInvalidGridConfig = errors.New("invalid grid config")

// MaxHourSpan caps the grid at one day: a wall-clock start time maps to exactly one row
const MaxHourSpan = 24

// Default grid configuration: 9 bays, 06:00 through 01:00
const (
	DefaultBayCount          = 9
	DefaultStartHour         = 6
	DefaultHourSpan          = 19
	DefaultRowHeightPx       = 60
	DefaultHeaderHeightPx    = 40
	DefaultTimeColumnWidthPx = 80
	DefaultBayColumnWidthPx  = 100
	DefaultMinBoxHeightPx    = 20
	DefaultBoxGapPx          = 2
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// GridConfig describes the fixed geometry of the timetable grid
type GridConfig struct {
	BayCount  int // number of bay columns
	StartHour int // first displayed hour, 0-23
	HourSpan  int // number of hour rows, 1-24; StartHour+HourSpan may exceed 24

	RowHeightPx       float64
	HeaderHeightPx    float64
	TimeColumnWidthPx float64
	BayColumnWidthPx  float64
	MinBoxHeightPx    float64 // floor for box height so short bookings stay clickable
	BoxGapPx          float64 // gap between boxes of adjacent bays
}

// DefaultGridConfig returns the default grid
func DefaultGridConfig() GridConfig {
	return GridConfig{
		BayCount:          DefaultBayCount,
		StartHour:         DefaultStartHour,
		HourSpan:          DefaultHourSpan,
		RowHeightPx:       DefaultRowHeightPx,
		HeaderHeightPx:    DefaultHeaderHeightPx,
		TimeColumnWidthPx: DefaultTimeColumnWidthPx,
		BayColumnWidthPx:  DefaultBayColumnWidthPx,
		MinBoxHeightPx:    DefaultMinBoxHeightPx,
		BoxGapPx:          DefaultBoxGapPx,
	}
}

// Validate checks the grid parameters
func (c GridConfig) Validate() error {
	if c.BayCount < 1 {
		return fmt.Errorf("%w: bay count must be at least 1, got %d", ErrInvalidGridConfig, c.BayCount)
	}
	if c.HourSpan < 1 || c.HourSpan > MaxHourSpan {
		return fmt.Errorf("%w: hour span must be in [1, %d], got %d", ErrInvalidGridConfig, MaxHourSpan, c.HourSpan)
	}
	if c.StartHour < 0 || c.StartHour > 23 {
		return fmt.Errorf("%w: start hour must be in [0, 23], got %d", ErrInvalidGridConfig, c.StartHour)
	}
	if c.RowHeightPx <= 0 {
		return fmt.Errorf("%w: row height must be positive", ErrInvalidGridConfig)
	}
	if c.BayColumnWidthPx <= 0 {
		return fmt.Errorf("%w: bay column width must be positive", ErrInvalidGridConfig)
	}
	if c.HeaderHeightPx < 0 || c.TimeColumnWidthPx < 0 || c.MinBoxHeightPx < 0 || c.BoxGapPx < 0 {
		return fmt.Errorf("%w: pixel sizes must not be negative", ErrInvalidGridConfig)
	}
	if c.BoxGapPx >= c.BayColumnWidthPx {
		return fmt.Errorf("%w: box gap must be smaller than bay column width", ErrInvalidGridConfig)
	}
	if c.MinBoxHeightPx > c.RowHeightPx*float64(c.HourSpan) {
		return fmt.Errorf("%w: min box height must fit into the grid", ErrInvalidGridConfig)
	}
	return nil
}

// BodyTopPx returns the y coordinate of the first hour row
func (c GridConfig) BodyTopPx() float64 {
	return c.HeaderHeightPx
}

// BodyBottomPx returns the y coordinate of the bottom edge of the last hour row
func (c GridConfig) BodyBottomPx() float64 {
	return c.HeaderHeightPx + float64(c.HourSpan)*c.RowHeightPx
}

// EndHour returns the unwrapped hour right after the last row (may exceed 24)
func (c GridConfig) EndHour() int {
	return c.StartHour + c.HourSpan
}
