package adaptor

import (
	"cowork-booking/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Space  *SpaceHandler
	Wizard *WizardHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Space:  NewSpaceHandler(service.Space, log),
		Wizard: NewWizardHandler(service.Wizard, log),
	}
}
