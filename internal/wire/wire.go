// internal/wire/wire.go
package wire

import (
	"net/http"

	"cowork-booking/internal/adaptor"
	"cowork-booking/internal/data/repository"
	"cowork-booking/internal/integrations"
	"cowork-booking/internal/usecase"
	"cowork-booking/pkg/middleware"
	"cowork-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// App holds the wired router.
type App struct {
	Router *chi.Mux
}

// Wiring builds clients, services and handlers and mounts every route.
func Wiring(repo *repository.Repository, store *usecase.WizardStore, config *utils.Config, logger *zap.Logger) *App {
	availability := integrations.NewAvailabilityClient(config.Services.AvailabilityURL, config.Services.Timeout, logger)
	bookings := integrations.NewBookingClient(config.Services.BookingURL, config.Services.Timeout, logger)

	service := usecase.NewService(repo, store, availability, bookings, config, logger)
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, repo, config, logger)

	return &App{
		Router: router,
	}
}

func setupRouter(handler *adaptor.Handler, repo *repository.Repository, config *utils.Config, logger *zap.Logger) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))

	wireSpace(r, handler.Space)
	wireWizard(r, handler.Wizard, repo, config, logger)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
