package wire

import (
	"cowork-booking/internal/adaptor"
	"cowork-booking/internal/data/repository"
	"cowork-booking/pkg/middleware"
	"cowork-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireWizard(
	r chi.Router,
	wizardHandler *adaptor.WizardHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	r.Route("/api/wizards", func(r chi.Router) {
		r.Use(middleware.RateLimit(config.RateLimit.RPS, config.RateLimit.Burst, log))

		// Anonymous visitors may fill in the wizard; identity only matters
		// at confirmation.
		r.Post("/", wizardHandler.Start)
		r.Get("/{id}", wizardHandler.Get)
		r.Delete("/{id}", wizardHandler.Discard)
		r.Post("/{id}/actions", wizardHandler.Apply)
		r.Post("/{id}/advance", wizardHandler.Advance)
		r.Post("/{id}/retreat", wizardHandler.Retreat)
		r.Get("/{id}/slots", wizardHandler.Slots)

		// POST /api/wizards/{id}/confirm - Submit booking, login outcome if anonymous
		r.With(middleware.Session(repo.Session, log)).Post("/{id}/confirm", wizardHandler.Confirm)
	})
}
