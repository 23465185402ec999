package wizard

import (
	"fmt"
	"time"

	"cowork-booking/internal/data/entity"
)

// Action is one user edit to the booking data.
type Action interface {
	// Field names the data field the action edits.
	Field() string
}

type SelectSpace struct{ Space *entity.Space }
type SetDate struct{ Date time.Time }
type SetDuration struct {
	Type  DurationType
	Count int
}
type SetStartTime struct{ Time string }
type SetEndTime struct{ Time string }
type SetGuests struct{ Guests int }
type SetContact struct{ Contact Contact }
type SelectPayment struct{ Method string }

func (SelectSpace) Field() string   { return "space" }
func (SetDate) Field() string       { return "date" }
func (SetDuration) Field() string   { return "duration" }
func (SetStartTime) Field() string  { return "start_time" }
func (SetEndTime) Field() string    { return "end_time" }
func (SetGuests) Field() string     { return "guests" }
func (SetContact) Field() string    { return "contact" }
func (SelectPayment) Field() string { return "payment_method" }

// Reduce applies a to s. A rejected action returns s with the field error
// set, together with that error.
func Reduce(s State, a Action, cal Calendar) (State, error) {
	d := s.Data

	reject := func(msg string) (State, error) {
		return s.WithError(a.Field(), msg), fmt.Errorf("%s: %w", a.Field(), fieldError(a.Field(), msg))
	}

	switch a := a.(type) {
	case SelectSpace:
		if a.Space == nil {
			return reject("Please select a space")
		}
		d.Space = a.Space
		d.Guests = clampGuests(d.Guests, a.Space)
		d = dropStaleTimes(d, cal)

	case SetDate:
		day := cal.Day(a.Date)
		if cal.IsPast(day) {
			return reject("Date cannot be in the past")
		}
		d.Date = &day
		d = dropStaleTimes(d, cal)

	case SetDuration:
		if !a.Type.Valid() {
			return reject(fmt.Sprintf("Unknown duration type %q", a.Type))
		}
		if a.Count < 1 {
			return reject("Duration must be at least 1")
		}
		d.DurationType = a.Type
		d.Duration = a.Count

	case SetStartTime:
		start, err := ParseClock(a.Time)
		if err != nil {
			return reject("Invalid time format, expected HH:MM")
		}
		if d.Date != nil {
			if msg := cal.CheckStart(start.String(), *d.Date, d.Space); msg != "" {
				return reject(msg)
			}
		}
		d.StartTime = start.String()
		if d.EndTime != "" {
			if end, err := ParseClock(d.EndTime); err != nil || end <= start {
				d.EndTime = ""
			}
		}

	case SetEndTime:
		end, err := ParseClock(a.Time)
		if err != nil {
			return reject("Invalid time format, expected HH:MM")
		}
		d.EndTime = end.String()

	case SetGuests:
		d.Guests = clampGuests(a.Guests, d.Space)

	case SetContact:
		d.Contact = a.Contact

	case SelectPayment:
		m, ok := LookupPaymentMethod(a.Method)
		if !ok {
			return reject(fmt.Sprintf("Unknown payment method %q", a.Method))
		}
		if !m.Available {
			return reject(fmt.Sprintf("%s is not available", m.Name))
		}
		d.PaymentMethod = m.ID

	default:
		return s, fmt.Errorf("%T: %w", a, ErrInvalidAction)
	}

	d.TotalPrice = CalculatePrice(d)
	s.Data = d
	return s.WithoutErrors(a.Field(), FieldAvailability, FieldGeneral), nil
}

// dropStaleTimes clears times that are no longer bookable on the current
// date and space: outside the day's slots or inside the lead time. A stale
// start takes the end with it; an end after a valid start is always valid.
func dropStaleTimes(d Data, cal Calendar) Data {
	if d.Date == nil {
		return d
	}
	switch {
	case d.StartTime != "":
		if cal.CheckStart(d.StartTime, *d.Date, d.Space) != "" {
			d.StartTime = ""
			d.EndTime = ""
		}
	case d.EndTime != "":
		if !cal.IsTimeSlotAvailable(d.EndTime, *d.Date) {
			d.EndTime = ""
		}
	}
	return d
}

func clampGuests(n int, space *entity.Space) int {
	if space != nil && space.Capacity > 0 && n > space.Capacity {
		n = space.Capacity
	}
	return max(n, 1)
}
