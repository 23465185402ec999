package wizard

import (
	"testing"
	"time"

	"cowork-booking/internal/data/entity"

	"github.com/google/uuid"
)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

// 2026-10-19 is a Monday.
func calendarAt(t *testing.T, hhmm string) Calendar {
	t.Helper()
	c, err := ParseClock(hhmm)
	if err != nil {
		t.Fatalf("parse clock: %v", err)
	}
	now := c.On(time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC))
	return NewCalendar(fixedClock{now}, time.UTC, DefaultLeadTime)
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func placesSpace() *entity.Space {
	return &entity.Space{
		Base:          entity.Base{ID: uuid.MustParse("7d0c0f6e-2f0a-4c1e-9b54-0e3f3c1f6a11")},
		Name:          "Places",
		Location:      "Ground floor",
		Capacity:      12,
		PricePerHour:  8,
		PricePerDay:   50,
		PricePerWeek:  220,
		PricePerMonth: 700,
		OpeningHours: entity.OpeningHours{
			"monday":    {Open: "08:00", Close: "20:00"},
			"tuesday":   {Open: "08:00", Close: "20:00"},
			"wednesday": {Open: "08:00", Close: "20:00"},
			"thursday":  {Open: "08:00", Close: "20:00"},
			"friday":    {Open: "08:00", Close: "20:00"},
			"saturday":  {Open: "10:00", Close: "16:00"},
			"sunday":    {Closed: true},
		},
	}
}
