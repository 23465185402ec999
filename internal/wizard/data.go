package wizard

import (
	"time"

	"cowork-booking/internal/data/entity"
)

type DurationType string

const (
	DurationHour  DurationType = "hour"
	DurationDay   DurationType = "day"
	DurationWeek  DurationType = "week"
	DurationMonth DurationType = "month"
)

func (d DurationType) Valid() bool {
	switch d {
	case DurationHour, DurationDay, DurationWeek, DurationMonth:
		return true
	}
	return false
}

type Contact struct {
	Name  string `json:"name,omitempty" validate:"omitempty,max=120"`
	Email string `json:"email,omitempty" validate:"omitempty,email"`
	Phone string `json:"phone,omitempty" validate:"omitempty,max=32"`
	Notes string `json:"notes,omitempty" validate:"omitempty,max=1000"`
}

// Data is the booking being assembled. It lives only as long as its wizard.
type Data struct {
	Space         *entity.Space
	Date          *time.Time
	StartTime     string
	EndTime       string
	Duration      int
	DurationType  DurationType
	Guests        int
	Contact       Contact
	TotalPrice    float64
	PaymentMethod string
}

// NewData returns the defaults a wizard starts with: today, one hour, one guest.
func NewData(today time.Time) Data {
	return Data{
		Date:         &today,
		Duration:     1,
		DurationType: DurationHour,
		Guests:       1,
	}
}

// Hours is the billable span in hours for an hourly booking: the span between
// start and end when both are set, otherwise the duration count.
func (d Data) Hours() float64 {
	if d.StartTime != "" && d.EndTime != "" {
		if h, err := DurationHours(d.StartTime, d.EndTime); err == nil {
			return h
		}
	}
	return float64(d.Duration)
}

type PaymentMethod struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   bool   `json:"available"`
	Popular     bool   `json:"popular,omitempty"`
}

const (
	PaymentOnsite       = "onsite"
	PaymentCard         = "card"
	PaymentPaypal       = "paypal"
	PaymentBankTransfer = "bank_transfer"
)

var paymentMethods = []PaymentMethod{
	{ID: PaymentOnsite, Name: "Pay on site", Description: "Pay at the café when you arrive", Available: true, Popular: true},
	{ID: PaymentCard, Name: "Credit card", Description: "Visa, Mastercard, American Express", Available: true},
	{ID: PaymentPaypal, Name: "PayPal", Description: "You will be redirected to PayPal", Available: true},
	{ID: PaymentBankTransfer, Name: "Bank transfer", Description: "Coming soon", Available: false},
}

// PaymentMethods returns a copy of the payment method catalogue.
func PaymentMethods() []PaymentMethod {
	out := make([]PaymentMethod, len(paymentMethods))
	copy(out, paymentMethods)
	return out
}

// LookupPaymentMethod finds a method by id.
func LookupPaymentMethod(id string) (PaymentMethod, bool) {
	for _, m := range paymentMethods {
		if m.ID == id {
			return m, true
		}
	}
	return PaymentMethod{}, false
}
