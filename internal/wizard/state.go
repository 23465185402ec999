// Package wizard holds the booking wizard: the four-step state machine, its
// reducer and the slot, duration and price rules it derives from a space.
// Nothing here performs I/O; the usecase layer drives the external calls
// around Validate and Commit.
package wizard

import (
	"fmt"
	"strings"

	"cowork-booking/internal/data/entity"
	"cowork-booking/pkg/utils"
)

type State struct {
	Step   Step
	Data   Data
	Errors FieldErrors
}

// New starts a wizard on today's date. A pre-selected space skips the space
// step and pre-fills the first bookable start time.
func New(cal Calendar, space *entity.Space) State {
	s := State{
		Step: StepSpaceSelection,
		Data: NewData(cal.Today()),
	}
	if space != nil {
		s.Data.Space = space
		s.Data.Guests = clampGuests(s.Data.Guests, space)
		s.Step = StepDateAndDuration
		s.Data.StartTime = cal.FirstAvailableTime(*s.Data.Date, space)
	}
	s.Data.TotalPrice = CalculatePrice(s.Data)
	return s
}

// NeedsAvailabilityCheck reports whether leaving step requires asking the
// availability service first.
func NeedsAvailabilityCheck(step Step) bool {
	return step == StepDateAndDuration
}

// Validate runs the guard for leaving step. A nil result means it passes.
func Validate(step Step, d Data, cal Calendar) FieldErrors {
	errs := FieldErrors{}

	switch step {
	case StepSpaceSelection:
		if d.Space == nil {
			errs["space"] = "Please select a space"
		}

	case StepDateAndDuration:
		validateSchedule(d, cal, errs)

	case StepGuestAndContactDetails:
		if d.Guests < 1 {
			errs["guests"] = "At least 1 guest is required"
		} else if d.Space != nil && d.Guests > d.Space.Capacity {
			errs["guests"] = fmt.Sprintf("This space holds at most %d guests", d.Space.Capacity)
		}
		for field, msg := range utils.ValidateStruct(d.Contact) {
			errs["contact_"+strings.ToLower(field)] = msg
		}

	case StepReviewAndPayment:
		if d.PaymentMethod == "" {
			errs["payment_method"] = "Please select a payment method"
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

func validateSchedule(d Data, cal Calendar, errs FieldErrors) {
	if d.Space == nil {
		errs["space"] = "Please select a space"
		return
	}
	if d.Date == nil {
		errs["date"] = "Please select a date"
		return
	}
	if cal.IsPast(*d.Date) {
		errs["date"] = "Date cannot be in the past"
		return
	}
	if !cal.IsOpen(*d.Date, d.Space) {
		errs["date"] = msgClosedDay
		return
	}

	if d.DurationType != DurationHour {
		if d.Duration < 1 {
			errs["duration"] = "Duration must be at least 1"
		}
		if d.StartTime != "" {
			if msg := cal.CheckStart(d.StartTime, *d.Date, d.Space); msg != "" {
				errs["start_time"] = msg
			}
		}
		return
	}

	if d.StartTime == "" {
		errs["start_time"] = "Please select a start time"
	}
	if d.EndTime == "" {
		errs["end_time"] = "Please select an end time"
	}
	if len(errs) > 0 {
		return
	}

	if d.StartTime == d.EndTime {
		errs["end_time"] = "End time must differ from start time"
		return
	}
	hours, err := DurationHours(d.StartTime, d.EndTime)
	if err != nil {
		errs["end_time"] = "Invalid time format"
		return
	}
	if hours < 1 {
		errs["end_time"] = "Minimum booking is 1 hour"
	}
	if msg := cal.CheckStart(d.StartTime, *d.Date, d.Space); msg != "" {
		errs["start_time"] = msg
	}
}

// Commit moves to the next step after its guard (and any availability check)
// passed. The total price is recomputed on every transition.
func Commit(s State, cal Calendar) State {
	s.Data.TotalPrice = CalculatePrice(s.Data)
	s.Errors = nil
	if s.Step.Last() {
		return s
	}

	s.Step++
	if s.Step == StepDateAndDuration && s.Data.StartTime == "" && s.Data.Date != nil {
		s.Data.StartTime = cal.FirstAvailableTime(*s.Data.Date, s.Data.Space)
	}
	return s
}

// Advance validates and commits in one go for steps that need no external
// check. On failure the returned state carries the errors.
func Advance(s State, cal Calendar) (State, error) {
	if s.Step.Last() {
		return s, fmt.Errorf("advance from %s: %w", s.Step, ErrWrongStep)
	}
	if errs := Validate(s.Step, s.Data, cal); errs != nil {
		s.Errors = errs
		return s, errs
	}
	return Commit(s, cal), nil
}

// Retreat goes back one step and drops all errors. It is a no-op on the
// first step.
func Retreat(s State) State {
	if s.Step.First() {
		return s
	}
	s.Step--
	s.Errors = nil
	return s
}

// WithError returns s with one more field error set.
func (s State) WithError(field, msg string) State {
	errs := s.Errors.clone()
	if errs == nil {
		errs = FieldErrors{}
	}
	errs[field] = msg
	s.Errors = errs
	return s
}

// WithoutErrors returns s with the given fields' errors removed.
func (s State) WithoutErrors(fields ...string) State {
	errs := s.Errors.clone()
	for _, f := range fields {
		delete(errs, f)
	}
	if len(errs) == 0 {
		errs = nil
	}
	s.Errors = errs
	return s
}
