package response

import (
	"time"

	"cowork-booking/internal/wizard"
)

type WizardResponse struct {
	ID                   string              `json:"id"`
	Step                 int                 `json:"step"`
	StepName             string              `json:"step_name"`
	Booking              BookingDataResponse `json:"booking"`
	Errors               map[string]string   `json:"errors,omitempty"`
	CheckingAvailability bool                `json:"checking_availability"`
	Submitting           bool                `json:"submitting"`
	Outcome              *wizard.Outcome     `json:"outcome,omitempty"`
	ExpiresAt            time.Time           `json:"expires_at"`
}

type BookingDataResponse struct {
	Space         *SpaceResponse      `json:"space,omitempty"`
	Date          string              `json:"date,omitempty"`
	StartTime     string              `json:"start_time,omitempty"`
	EndTime       string              `json:"end_time,omitempty"`
	Duration      int                 `json:"duration"`
	DurationType  wizard.DurationType `json:"duration_type"`
	Hours         float64             `json:"hours,omitempty"`
	Guests        int                 `json:"guests"`
	Contact       wizard.Contact      `json:"contact"`
	TotalPrice    float64             `json:"total_price"`
	PaymentMethod string              `json:"payment_method,omitempty"`
}

func BookingDataToResponse(d wizard.Data) BookingDataResponse {
	resp := BookingDataResponse{
		StartTime:     d.StartTime,
		EndTime:       d.EndTime,
		Duration:      d.Duration,
		DurationType:  d.DurationType,
		Guests:        d.Guests,
		Contact:       d.Contact,
		TotalPrice:    d.TotalPrice,
		PaymentMethod: d.PaymentMethod,
	}
	if d.Space != nil {
		space := SpaceToResponse(d.Space)
		resp.Space = &space
	}
	if d.Date != nil {
		resp.Date = d.Date.Format(time.DateOnly)
	}
	if d.DurationType == wizard.DurationHour {
		resp.Hours = d.Hours()
	}
	return resp
}
