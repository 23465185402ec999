package usecase

import (
	"context"
	"testing"
	"time"

	"cowork-booking/internal/data/entity"
	"cowork-booking/internal/data/repository"
	"cowork-booking/internal/wizard"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

var placesID = uuid.MustParse("7d0c0f6e-2f0a-4c1e-9b54-0e3f3c1f6a11")

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

// testCalendar is pinned to Monday 2026-10-19 09:10 UTC.
func testCalendar() wizard.Calendar {
	now := time.Date(2026, 10, 19, 9, 10, 0, 0, time.UTC)
	return wizard.NewCalendar(fixedClock{now}, time.UTC, wizard.DefaultLeadTime)
}

var testRoutes = wizard.Routes{
	Login:          "/login",
	CardPayment:    "/payment/card",
	PaymentSuccess: "/payment/success",
}

func placesSpace() *entity.Space {
	return &entity.Space{
		Base:          entity.Base{ID: placesID},
		Name:          "Places",
		Location:      "Ground floor",
		Capacity:      12,
		PricePerHour:  8,
		PricePerDay:   50,
		PricePerWeek:  220,
		PricePerMonth: 700,
		Features:      []string{"wifi", "coffee"},
		OpeningHours: entity.OpeningHours{
			"monday":    {Open: "08:00", Close: "20:00"},
			"tuesday":   {Open: "08:00", Close: "20:00"},
			"wednesday": {Open: "08:00", Close: "20:00"},
			"thursday":  {Open: "08:00", Close: "20:00"},
			"friday":    {Open: "08:00", Close: "20:00"},
			"saturday":  {Open: "10:00", Close: "16:00"},
			"sunday":    {Closed: true},
		},
	}
}

type mockSpaceRepository struct {
	mock.Mock
}

func (m *mockSpaceRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Space, error) {
	args := m.Called(ctx, id)
	space, _ := args.Get(0).(*entity.Space)
	return space, args.Error(1)
}

func (m *mockSpaceRepository) FindAll(ctx context.Context, limit, offset int, locationFilter *string) ([]*entity.Space, error) {
	args := m.Called(ctx, limit, offset, locationFilter)
	spaces, _ := args.Get(0).([]*entity.Space)
	return spaces, args.Error(1)
}

func (m *mockSpaceRepository) CountAll(ctx context.Context, locationFilter *string) (int64, error) {
	args := m.Called(ctx, locationFilter)
	return args.Get(0).(int64), args.Error(1)
}

type mockAvailability struct {
	mock.Mock
}

func (m *mockAvailability) Check(ctx context.Context, spaceID uuid.UUID, date time.Time, startTime string) (bool, error) {
	args := m.Called(ctx, spaceID, date, startTime)
	return args.Bool(0), args.Error(1)
}

type mockBookings struct {
	mock.Mock
}

func (m *mockBookings) Create(ctx context.Context, sub wizard.Submission, idempotencyKey string, userID uuid.UUID) (wizard.Receipt, error) {
	args := m.Called(ctx, sub, idempotencyKey, userID)
	return args.Get(0).(wizard.Receipt), args.Error(1)
}

type wizardFixture struct {
	spaces       *mockSpaceRepository
	availability *mockAvailability
	bookings     *mockBookings
	store        *WizardStore
	svc          WizardService
}

func newWizardFixture(t *testing.T) *wizardFixture {
	t.Helper()

	f := &wizardFixture{
		spaces:       &mockSpaceRepository{},
		availability: &mockAvailability{},
		bookings:     &mockBookings{},
		store:        NewWizardStore(time.Hour, zap.NewNop()),
	}
	repo := &repository.Repository{Space: f.spaces}
	f.svc = NewWizardService(repo, f.store, f.availability, f.bookings, testCalendar(), testRoutes, zap.NewNop())

	t.Cleanup(func() {
		f.spaces.AssertExpectations(t)
		f.availability.AssertExpectations(t)
		f.bookings.AssertExpectations(t)
	})
	return f
}

func onDate(date string) interface{} {
	return mock.MatchedBy(func(d time.Time) bool {
		return d.Format(time.DateOnly) == date
	})
}
