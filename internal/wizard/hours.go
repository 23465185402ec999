package wizard

import (
	"time"

	"cowork-booking/internal/data/entity"
)

// DaySchedule is either closed or open between Open (inclusive) and Close
// (exclusive). The zero value is closed.
type DaySchedule struct {
	IsOpen bool
	Open   ClockTime
	Close  ClockTime
}

var (
	Closed = DaySchedule{}

	// DefaultSchedule applies to any day whose hours are unknown or
	// malformed. Its slots run 09:00 to 18:30.
	DefaultSchedule = OpenBetween(MustParseClock("09:00"), MustParseClock("19:00"))
)

func OpenBetween(open, closeAt ClockTime) DaySchedule {
	return DaySchedule{IsOpen: true, Open: open, Close: closeAt}
}

// WeeklyHours is a total mapping from weekday to schedule.
type WeeklyHours [7]DaySchedule

// On returns the schedule of date's weekday.
func (w WeeklyHours) On(date time.Time) DaySchedule {
	return w[date.Weekday()]
}

// DefaultWeek is open every day with DefaultSchedule.
func DefaultWeek() WeeklyHours {
	var w WeeklyHours
	for i := range w {
		w[i] = DefaultSchedule
	}
	return w
}

// HoursOf normalizes a space's stored opening hours. Missing, unparsable or
// empty days fall back to DefaultSchedule; a nil space yields DefaultWeek.
// A close time of 00:00 means midnight.
func HoursOf(space *entity.Space) WeeklyHours {
	w := DefaultWeek()
	if space == nil {
		return w
	}

	for day := time.Sunday; day <= time.Saturday; day++ {
		h, ok := space.OpeningHours.For(day)
		if !ok {
			continue
		}
		if h.Closed {
			w[day] = Closed
			continue
		}

		open, err := ParseClock(h.Open)
		if err != nil {
			continue
		}
		closeAt, err := ParseClock(h.Close)
		if err != nil {
			continue
		}
		if closeAt == 0 {
			closeAt = minutesPerDay
		}
		if closeAt <= open {
			continue
		}
		w[day] = OpenBetween(open, closeAt)
	}

	return w
}
