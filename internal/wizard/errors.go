package wizard

import (
	"errors"
	"fmt"
	"maps"
	"sort"
	"strings"
)

var (
	ErrValidation         = errors.New("validation failed")
	ErrInvalidAction      = errors.New("invalid action")
	ErrUnavailable        = errors.New("selected time is not available")
	ErrStaleResponse      = errors.New("response superseded by a newer request")
	ErrSubmissionInFlight = errors.New("booking submission already in progress")
	ErrSubmissionFailed   = errors.New("booking submission failed")
	ErrIncomplete         = errors.New("booking details incomplete")
	ErrWizardCompleted    = errors.New("booking already completed")
	ErrWrongStep          = errors.New("operation not allowed at this step")
)

// Field keys used in FieldErrors beyond plain data fields.
const (
	FieldAvailability = "availability"
	FieldGeneral      = "general"
)

// FieldErrors maps a field name to a user-facing message.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	msgs := make([]string, 0, len(keys))
	for _, k := range keys {
		msgs = append(msgs, fmt.Sprintf("%s: %s", k, e[k]))
	}
	return strings.Join(msgs, "; ")
}

// Is lets errors.Is(err, ErrValidation) match any FieldErrors.
func (e FieldErrors) Is(target error) bool {
	return target == ErrValidation
}

func (e FieldErrors) clone() FieldErrors {
	if len(e) == 0 {
		return nil
	}
	return maps.Clone(e)
}

func fieldError(field, msg string) FieldErrors {
	return FieldErrors{field: msg}
}
