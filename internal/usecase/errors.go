package usecase

import "errors"

var (
	ErrSpaceNotFound  = errors.New("space not found")
	ErrWizardNotFound = errors.New("wizard not found")
	ErrInvalidInput   = errors.New("invalid input")
	ErrUpstream       = errors.New("upstream service unavailable")
)
