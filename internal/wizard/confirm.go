package wizard

import (
	"fmt"
	"net/url"
	"strconv"
	"time"
)

// HealSpan is the end time offset used when confirmation has to fill in
// missing times.
const HealSpan = 2 * time.Hour

// Missing lists the fields confirmation cannot do without.
func Missing(d Data) FieldErrors {
	errs := FieldErrors{}
	if d.Space == nil {
		errs["space"] = "Please select a space"
	}
	if d.Date == nil {
		errs["date"] = "Please select a date"
	}
	if d.StartTime == "" {
		errs["start_time"] = "Please select a start time"
	}
	if d.EndTime == "" {
		errs["end_time"] = "Please select an end time"
	}
	if d.PaymentMethod == "" {
		errs["payment_method"] = "Please select a payment method"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Heal fills in missing start and end times with the first bookable slot and
// a two hour span. It leaves d untouched when there is nothing to pick from.
func Heal(d Data, cal Calendar) Data {
	if d.Date == nil || (d.StartTime != "" && d.EndTime != "") {
		return d
	}

	start := d.StartTime
	if start == "" || cal.CheckStart(start, *d.Date, d.Space) != "" {
		start = cal.FirstAvailableTime(*d.Date, d.Space)
	}
	if start == "" {
		return d
	}

	c, err := ParseClock(start)
	if err != nil {
		return d
	}
	d.StartTime = start
	d.EndTime = c.Add(HealSpan).String()
	d.TotalPrice = CalculatePrice(d)
	return d
}

// Submission is the booking creation request sent to the booking service.
type Submission struct {
	SpaceID       string       `json:"spaceId"`
	Date          string       `json:"date"`
	StartTime     string       `json:"startTime"`
	EndTime       string       `json:"endTime"`
	Duration      float64      `json:"duration"`
	DurationType  DurationType `json:"durationType"`
	Guests        int          `json:"guests"`
	PaymentMethod string       `json:"paymentMethod"`
	Contact       *Contact     `json:"contact,omitempty"`
}

// NewSubmission builds the request for d. For hourly bookings the duration
// is the computed span in hours.
func NewSubmission(d Data) Submission {
	sub := Submission{
		StartTime:     d.StartTime,
		EndTime:       d.EndTime,
		Duration:      float64(d.Duration),
		DurationType:  d.DurationType,
		Guests:        d.Guests,
		PaymentMethod: d.PaymentMethod,
	}
	if d.Space != nil {
		sub.SpaceID = d.Space.ID.String()
	}
	if d.Date != nil {
		sub.Date = d.Date.Format(time.DateOnly)
	}
	if d.DurationType == DurationHour {
		sub.Duration = d.Hours()
	}
	if d.Contact != (Contact{}) {
		c := d.Contact
		sub.Contact = &c
	}
	return sub
}

// Receipt is what the booking service answered.
type Receipt struct {
	PaymentURL string
	BookingID  string
	Amount     float64
}

type OutcomeKind string

const (
	OutcomeLogin            OutcomeKind = "login"
	OutcomeExternalRedirect OutcomeKind = "external_redirect"
	OutcomeCardForm         OutcomeKind = "card_form"
	OutcomeOnsiteSuccess    OutcomeKind = "onsite_success"
)

// Outcome is where the client goes once the wizard exits.
type Outcome struct {
	Kind      OutcomeKind `json:"kind"`
	URL       string      `json:"url"`
	BookingID string      `json:"booking_id,omitempty"`
}

// Routes are the navigation targets outcomes point at.
type Routes struct {
	Login          string
	CardPayment    string
	PaymentSuccess string
}

// LoginOutcome sends an anonymous user to log in, returning to callback.
func LoginOutcome(r Routes, callback string) Outcome {
	q := url.Values{}
	if callback != "" {
		q.Set("callbackUrl", callback)
	}
	return Outcome{Kind: OutcomeLogin, URL: withQuery(r.Login, q)}
}

// ResolveOutcome maps a receipt to the next page: the external payment page
// when the service returned one, the card form for card payments, and the
// on-site success page otherwise. A receipt with neither a payment URL nor a
// booking is a failed submission.
func ResolveOutcome(rc Receipt, d Data, r Routes) (Outcome, error) {
	if rc.PaymentURL != "" {
		return Outcome{Kind: OutcomeExternalRedirect, URL: rc.PaymentURL, BookingID: rc.BookingID}, nil
	}
	if rc.BookingID == "" {
		return Outcome{}, fmt.Errorf("%w: no booking in response", ErrSubmissionFailed)
	}

	if d.PaymentMethod == PaymentCard {
		amount := rc.Amount
		if amount == 0 {
			amount = d.TotalPrice
		}
		q := url.Values{}
		q.Set("booking_id", rc.BookingID)
		q.Set("amount", strconv.FormatFloat(amount, 'f', 2, 64))
		if d.Space != nil {
			q.Set("space", d.Space.Name)
		}
		if d.Date != nil {
			q.Set("date", d.Date.Format(time.DateOnly))
		}
		q.Set("time", d.StartTime+"-"+d.EndTime)
		return Outcome{Kind: OutcomeCardForm, URL: withQuery(r.CardPayment, q), BookingID: rc.BookingID}, nil
	}

	q := url.Values{}
	q.Set("booking_id", rc.BookingID)
	q.Set("payment_method", PaymentOnsite)
	return Outcome{Kind: OutcomeOnsiteSuccess, URL: withQuery(r.PaymentSuccess, q), BookingID: rc.BookingID}, nil
}

// withQuery merges q into the query of base, keeping any parameters base
// already carries.
func withQuery(base string, q url.Values) string {
	if len(q) == 0 {
		return base
	}
	u, err := url.Parse(base)
	if err != nil {
		return base + "?" + q.Encode()
	}
	merged := u.Query()
	for k, vs := range q {
		merged[k] = vs
	}
	u.RawQuery = merged.Encode()
	return u.String()
}
