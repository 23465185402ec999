package entity

import (
	"strings"
	"time"
)

// DayHours is one weekday entry of a space's opening hours as stored in the
// opening_hours JSONB column.
type DayHours struct {
	Closed bool   `json:"closed,omitempty"`
	Open   string `json:"open,omitempty"`
	Close  string `json:"close,omitempty"`
}

// OpeningHours maps lowercase weekday names ("monday") to their hours.
type OpeningHours map[string]DayHours

// For returns the entry for weekday and whether one exists.
func (o OpeningHours) For(day time.Weekday) (DayHours, bool) {
	h, ok := o[strings.ToLower(day.String())]
	return h, ok
}

type Space struct {
	Base
	Name          string       `db:"name"`
	Location      string       `db:"location"`
	Capacity      int          `db:"capacity"`
	PricePerHour  float64      `db:"price_per_hour"`
	PricePerDay   float64      `db:"price_per_day"`
	PricePerWeek  float64      `db:"price_per_week"`
	PricePerMonth float64      `db:"price_per_month"`
	Features      []string     `db:"features"`
	OpeningHours  OpeningHours `db:"opening_hours"`
}
