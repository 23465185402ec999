package request

import "cowork-booking/internal/wizard"

// Action types accepted by POST /api/wizards/{id}/actions
const (
	ActionSelectSpace   = "select_space"
	ActionSetDate       = "set_date"
	ActionSetDuration   = "set_duration"
	ActionSetStartTime  = "set_start_time"
	ActionSetEndTime    = "set_end_time"
	ActionSetGuests     = "set_guests"
	ActionSetContact    = "set_contact"
	ActionSelectPayment = "select_payment"
)

type StartWizardRequest struct {
	SpaceID string `json:"space_id,omitempty" validate:"omitempty,uuid"`
}

type WizardActionRequest struct {
	Type          string          `json:"type" validate:"required,oneof=select_space set_date set_duration set_start_time set_end_time set_guests set_contact select_payment"`
	SpaceID       string          `json:"space_id,omitempty" validate:"required_if=Type select_space,omitempty,uuid"`
	Date          string          `json:"date,omitempty" validate:"required_if=Type set_date,omitempty,datetime=2006-01-02"`
	DurationType  string          `json:"duration_type,omitempty" validate:"required_if=Type set_duration,omitempty,oneof=hour day week month"`
	Duration      int             `json:"duration,omitempty"`
	Time          string          `json:"time,omitempty" validate:"omitempty,datetime=15:04"`
	Guests        int             `json:"guests,omitempty"`
	Contact       *wizard.Contact `json:"contact,omitempty"`
	PaymentMethod string          `json:"payment_method,omitempty" validate:"required_if=Type select_payment"`
}

type ConfirmRequest struct {
	CallbackURL string `json:"callback_url,omitempty"`
}
