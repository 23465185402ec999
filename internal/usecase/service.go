package usecase

import (
	"context"
	"time"

	"cowork-booking/internal/data/repository"
	"cowork-booking/internal/wizard"
	"cowork-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AvailabilityChecker asks the availability service whether a slot is free.
type AvailabilityChecker interface {
	Check(ctx context.Context, spaceID uuid.UUID, date time.Time, startTime string) (bool, error)
}

// BookingCreator submits a completed wizard to the booking service.
type BookingCreator interface {
	Create(ctx context.Context, sub wizard.Submission, idempotencyKey string, userID uuid.UUID) (wizard.Receipt, error)
}

type Service struct {
	Space  SpaceService
	Wizard WizardService
}

func NewService(
	repo *repository.Repository,
	store *WizardStore,
	availability AvailabilityChecker,
	bookings BookingCreator,
	config *utils.Config,
	log *zap.Logger,
) *Service {
	cal := wizard.NewCalendar(wizard.SystemClock, config.Booking.Location(), config.Booking.LeadTime)
	routes := wizard.Routes{
		Login:          config.Booking.LoginURL,
		CardPayment:    config.Booking.CardPaymentURL,
		PaymentSuccess: config.Booking.PaymentSuccessURL,
	}

	return &Service{
		Space:  NewSpaceService(repo, cal, log),
		Wizard: NewWizardService(repo, store, availability, bookings, cal, routes, log),
	}
}
