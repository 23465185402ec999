package wizard

import (
	"time"

	"cowork-booking/internal/data/entity"
)

const (
	SlotStep        = 30 * time.Minute
	DefaultLeadTime = 60 * time.Minute
)

const (
	msgClosedDay    = "The space is closed on this day"
	msgOutsideHours = "Start time must be within opening hours"
	msgLeadTime     = "Same-day bookings need at least 1 hour notice"
)

var popularTimes = map[ClockTime]bool{
	MustParseClock("10:00"): true,
	MustParseClock("14:00"): true,
	MustParseClock("16:00"): true,
}

type TimeSlot struct {
	Time      string `json:"time"`
	Available bool   `json:"available"`
	IsPopular bool   `json:"is_popular"`
}

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock reads the wall clock.
var SystemClock Clock = systemClock{}

// ComputeAvailableSlots lists the start times for date in 30-minute steps
// from the day's opening up to, but not including, its closing. A closed day
// has no slots. The Available flag is left false; see Calendar.Slots.
func ComputeAvailableSlots(date time.Time, space *entity.Space) []TimeSlot {
	sched := HoursOf(space).On(date)
	if !sched.IsOpen {
		return []TimeSlot{}
	}

	step := ClockTime(SlotStep / time.Minute)
	slots := make([]TimeSlot, 0, int(sched.Close-sched.Open)/int(step)+1)
	for t := sched.Open; t < sched.Close; t += step {
		slots = append(slots, TimeSlot{
			Time:      t.String(),
			IsPopular: popularTimes[t],
		})
	}
	return slots
}

// IsTimeSlotAvailable reports whether slot may be booked on date given the
// current time. Only same-day slots are restricted: they need at least lead
// between now and the slot start. Days are compared in now's location.
func IsTimeSlotAvailable(slot string, date, now time.Time, lead time.Duration) bool {
	loc := now.Location()
	if !SameDay(date, now, loc) {
		return true
	}

	t, err := ParseClock(slot)
	if err != nil {
		return false
	}

	start := t.On(StartOfDay(now, loc))
	return !start.Before(now.Add(lead))
}

// Calendar evaluates slot rules against a clock in the booking time zone.
type Calendar struct {
	Clock    Clock
	Location *time.Location
	LeadTime time.Duration
}

func NewCalendar(clock Clock, loc *time.Location, lead time.Duration) Calendar {
	if clock == nil {
		clock = SystemClock
	}
	if loc == nil {
		loc = time.Local
	}
	if lead <= 0 {
		lead = DefaultLeadTime
	}
	return Calendar{Clock: clock, Location: loc, LeadTime: lead}
}

func (c Calendar) Now() time.Time {
	return c.Clock.Now().In(c.Location)
}

// Today is midnight of the current day.
func (c Calendar) Today() time.Time {
	return StartOfDay(c.Now(), c.Location)
}

// Day normalizes date to midnight in the booking time zone.
func (c Calendar) Day(date time.Time) time.Time {
	return StartOfDay(date, c.Location)
}

// IsPast reports whether date is before today.
func (c Calendar) IsPast(date time.Time) bool {
	return c.Day(date).Before(c.Today())
}

func (c Calendar) IsTimeSlotAvailable(slot string, date time.Time) bool {
	return IsTimeSlotAvailable(slot, c.Day(date), c.Now(), c.LeadTime)
}

// Slots is ComputeAvailableSlots with the Available flag filled in.
func (c Calendar) Slots(date time.Time, space *entity.Space) []TimeSlot {
	day := c.Day(date)
	slots := ComputeAvailableSlots(day, space)
	for i := range slots {
		slots[i].Available = c.IsTimeSlotAvailable(slots[i].Time, day)
	}
	return slots
}

// IsOpen reports whether space has any slots on date.
func (c Calendar) IsOpen(date time.Time, space *entity.Space) bool {
	return HoursOf(space).On(c.Day(date)).IsOpen
}

// CheckStart explains why slot cannot start a booking at space on date. It
// returns "" when slot is one of the day's slots and clears the lead time.
func (c Calendar) CheckStart(slot string, date time.Time, space *entity.Space) string {
	if !c.IsOpen(date, space) {
		return msgClosedDay
	}
	t, err := ParseClock(slot)
	if err != nil {
		return msgOutsideHours
	}
	day := c.Day(date)
	for _, s := range ComputeAvailableSlots(day, space) {
		if s.Time != t.String() {
			continue
		}
		if !c.IsTimeSlotAvailable(s.Time, day) {
			return msgLeadTime
		}
		return ""
	}
	return msgOutsideHours
}

// FirstAvailableTime returns the earliest bookable slot on date, or "" when
// none is left.
func (c Calendar) FirstAvailableTime(date time.Time, space *entity.Space) string {
	for _, s := range c.Slots(date, space) {
		if s.Available {
			return s.Time
		}
	}
	return ""
}
