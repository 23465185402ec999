package usecase

import (
	"context"
	"fmt"
	"maps"
	"time"

	"cowork-booking/internal/data/entity"
	"cowork-booking/internal/data/repository"
	"cowork-booking/internal/dto/request"
	"cowork-booking/internal/dto/response"
	"cowork-booking/internal/wizard"
	"cowork-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	msgAvailabilityTaken  = "This time slot is no longer available. Please choose another time."
	msgAvailabilityFailed = "We could not check availability right now. Please try again."
	msgIncomplete         = "Some booking details are missing. Please go back and complete them."
	msgSubmissionFailed   = "We could not complete your booking. Please try again."
)

type WizardService interface {
	Start(ctx context.Context, req *request.StartWizardRequest) (*response.WizardResponse, error)
	Get(ctx context.Context, wizardID string) (*response.WizardResponse, error)
	Discard(ctx context.Context, wizardID string) error

	Apply(ctx context.Context, wizardID string, req *request.WizardActionRequest) (*response.WizardResponse, error)
	Advance(ctx context.Context, wizardID string) (*response.WizardResponse, error)
	Retreat(ctx context.Context, wizardID string) (*response.WizardResponse, error)
	Slots(ctx context.Context, wizardID, dateStr string) (*response.SlotsResponse, error)

	// Confirm submits the booking for userID. uuid.Nil means the caller is
	// not signed in and gets a login outcome instead.
	Confirm(ctx context.Context, wizardID string, userID uuid.UUID, callbackURL string) (*response.WizardResponse, error)
}

type wizardService struct {
	repo         *repository.Repository
	store        *WizardStore
	availability AvailabilityChecker
	bookings     BookingCreator
	cal          wizard.Calendar
	routes       wizard.Routes
	log          *zap.Logger
}

func NewWizardService(
	repo *repository.Repository,
	store *WizardStore,
	availability AvailabilityChecker,
	bookings BookingCreator,
	cal wizard.Calendar,
	routes wizard.Routes,
	log *zap.Logger,
) WizardService {
	return &wizardService{
		repo:         repo,
		store:        store,
		availability: availability,
		bookings:     bookings,
		cal:          cal,
		routes:       routes,
		log:          log.With(zap.String("service", "wizard")),
	}
}

func (s *wizardService) Start(ctx context.Context, req *request.StartWizardRequest) (*response.WizardResponse, error) {
	state := wizard.New(s.cal, nil)
	if req.SpaceID != "" {
		space, err := s.findSpace(ctx, req.SpaceID)
		if err != nil {
			return nil, err
		}
		state = wizard.New(s.cal, space)
	}

	sess := s.store.create(state)

	sess.mu.Lock()
	defer sess.mu.Unlock()

	s.log.Info("Wizard started",
		zap.String("wizard_id", sess.id.String()),
		zap.String("step", sess.state.Step.String()),
	)

	return buildWizardResponse(sess), nil
}

func (s *wizardService) Get(ctx context.Context, wizardID string) (*response.WizardResponse, error) {
	sess, err := s.session(wizardID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	return buildWizardResponse(sess), nil
}

func (s *wizardService) Discard(ctx context.Context, wizardID string) error {
	id, err := uuid.Parse(wizardID)
	if err != nil {
		return fmt.Errorf("%w: wizard ID %s", ErrInvalidInput, wizardID)
	}
	if !s.store.delete(id) {
		return fmt.Errorf("wizard %s: %w", wizardID, ErrWizardNotFound)
	}

	s.log.Info("Wizard discarded", zap.String("wizard_id", wizardID))
	return nil
}

func (s *wizardService) Apply(ctx context.Context, wizardID string, req *request.WizardActionRequest) (*response.WizardResponse, error) {
	sess, err := s.session(wizardID)
	if err != nil {
		return nil, err
	}

	// Resolve the action before locking; it may hit the space catalog.
	action, err := s.toAction(ctx, req)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.completed() {
		return buildWizardResponse(sess), wizard.ErrWizardCompleted
	}
	if sess.submitting {
		return buildWizardResponse(sess), wizard.ErrSubmissionInFlight
	}

	next, err := wizard.Reduce(sess.state, action, s.cal)
	sess.state = next
	if err != nil {
		s.log.Debug("Wizard action rejected",
			zap.String("wizard_id", wizardID),
			zap.String("action", req.Type),
			zap.Error(err),
		)
		return buildWizardResponse(sess), err
	}

	sess.bump()
	sess.checking = false
	// The payload changed, so the next confirmation is a new request.
	sess.idempotencyKey = ""
	if sess.state.Step == wizard.StepReviewAndPayment {
		sess.idempotencyKey = uuid.NewString()
	}

	return buildWizardResponse(sess), nil
}

func (s *wizardService) Advance(ctx context.Context, wizardID string) (*response.WizardResponse, error) {
	sess, err := s.session(wizardID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()

	if sess.completed() {
		defer sess.mu.Unlock()
		return buildWizardResponse(sess), wizard.ErrWizardCompleted
	}
	if sess.state.Step.Last() {
		defer sess.mu.Unlock()
		return buildWizardResponse(sess), fmt.Errorf("advance from %s: %w", sess.state.Step, wizard.ErrWrongStep)
	}

	if errs := wizard.Validate(sess.state.Step, sess.state.Data, s.cal); errs != nil {
		defer sess.mu.Unlock()
		sess.state.Errors = errs
		return buildWizardResponse(sess), errs
	}

	if !wizard.NeedsAvailabilityCheck(sess.state.Step) {
		defer sess.mu.Unlock()
		s.commit(sess)
		return buildWizardResponse(sess), nil
	}

	gen := sess.bump()
	sess.checking = true
	sess.state = sess.state.WithoutErrors(wizard.FieldAvailability)
	data := sess.state.Data
	sess.mu.Unlock()

	// A client hanging up must not abort the check; the client's own timeout
	// still bounds it.
	available, checkErr := s.availability.Check(context.WithoutCancel(ctx), data.Space.ID, *data.Date, data.StartTime)

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.generation != gen {
		s.log.Info("Discarding superseded availability result",
			zap.String("wizard_id", wizardID),
			zap.Uint64("generation", gen),
			zap.Uint64("current", sess.generation),
		)
		return buildWizardResponse(sess), wizard.ErrStaleResponse
	}
	sess.checking = false

	if checkErr != nil {
		s.log.Error("Availability check failed",
			zap.Error(checkErr),
			zap.String("wizard_id", wizardID),
			zap.String("space_id", data.Space.ID.String()),
		)
		sess.state = sess.state.WithError(wizard.FieldAvailability, msgAvailabilityFailed)
		return buildWizardResponse(sess), fmt.Errorf("check availability: %w: %w", ErrUpstream, checkErr)
	}

	if !available {
		s.log.Info("Requested slot unavailable",
			zap.String("wizard_id", wizardID),
			zap.String("space_id", data.Space.ID.String()),
			zap.String("start_time", data.StartTime),
		)
		sess.state = sess.state.WithError(wizard.FieldAvailability, msgAvailabilityTaken)
		return buildWizardResponse(sess), wizard.ErrUnavailable
	}

	s.commit(sess)
	return buildWizardResponse(sess), nil
}

// commit moves sess one step forward. Caller holds sess.mu.
func (s *wizardService) commit(sess *wizardSession) {
	sess.state = wizard.Commit(sess.state, s.cal)
	sess.bump()
	if sess.state.Step == wizard.StepReviewAndPayment && sess.idempotencyKey == "" {
		sess.idempotencyKey = uuid.NewString()
	}

	s.log.Debug("Wizard advanced",
		zap.String("wizard_id", sess.id.String()),
		zap.String("step", sess.state.Step.String()),
	)
}

func (s *wizardService) Retreat(ctx context.Context, wizardID string) (*response.WizardResponse, error) {
	sess, err := s.session(wizardID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.completed() {
		return buildWizardResponse(sess), wizard.ErrWizardCompleted
	}

	sess.state = wizard.Retreat(sess.state)
	sess.bump()
	sess.checking = false

	return buildWizardResponse(sess), nil
}

func (s *wizardService) Slots(ctx context.Context, wizardID, dateStr string) (*response.SlotsResponse, error) {
	sess, err := s.session(wizardID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	data := sess.state.Data
	sess.mu.Unlock()

	date := data.Date
	if dateStr != "" {
		parsed, err := utils.ParseDate(dateStr, s.cal.Location)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
		date = &parsed
	}
	if date == nil {
		return nil, fmt.Errorf("%w: no date selected", ErrInvalidInput)
	}

	return buildSlotsResponse(s.cal, *date, data.Space), nil
}

func (s *wizardService) Confirm(ctx context.Context, wizardID string, userID uuid.UUID, callbackURL string) (*response.WizardResponse, error) {
	sess, err := s.session(wizardID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()

	if sess.completed() {
		defer sess.mu.Unlock()
		s.log.Info("Replaying completed booking",
			zap.String("wizard_id", wizardID),
			zap.String("booking_id", sess.outcome.BookingID),
		)
		return buildWizardResponse(sess), nil
	}

	if userID == uuid.Nil {
		defer sess.mu.Unlock()
		login := wizard.LoginOutcome(s.routes, callbackURL)
		resp := buildWizardResponse(sess)
		resp.Outcome = &login
		return resp, nil
	}

	if sess.submitting {
		defer sess.mu.Unlock()
		return buildWizardResponse(sess), wizard.ErrSubmissionInFlight
	}
	if sess.state.Step != wizard.StepReviewAndPayment {
		defer sess.mu.Unlock()
		return buildWizardResponse(sess), fmt.Errorf("confirm at %s: %w", sess.state.Step, wizard.ErrWrongStep)
	}

	if wizard.Missing(sess.state.Data) != nil {
		sess.state.Data = wizard.Heal(sess.state.Data, s.cal)
		if missing := wizard.Missing(sess.state.Data); missing != nil {
			defer sess.mu.Unlock()
			s.log.Warn("Booking incomplete after self-heal",
				zap.String("wizard_id", wizardID),
				zap.String("missing", missing.Error()),
			)
			sess.state = sess.state.WithError(wizard.FieldGeneral, msgIncomplete)
			return buildWizardResponse(sess), fmt.Errorf("%w: %w", wizard.ErrIncomplete, missing)
		}
		s.log.Info("Filled in missing booking times",
			zap.String("wizard_id", wizardID),
			zap.String("start_time", sess.state.Data.StartTime),
			zap.String("end_time", sess.state.Data.EndTime),
		)
	}

	if sess.idempotencyKey == "" {
		sess.idempotencyKey = uuid.NewString()
	}

	gen := sess.bump()
	sess.submitting = true
	sess.state = sess.state.WithoutErrors(wizard.FieldGeneral)
	data := sess.state.Data
	key := sess.idempotencyKey
	sess.mu.Unlock()

	// The booking may commit upstream even if the client disconnects, so the
	// call outlives the request.
	receipt, submitErr := s.bookings.Create(context.WithoutCancel(ctx), wizard.NewSubmission(data), key, userID)

	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.submitting = false

	if submitErr != nil {
		s.log.Error("Booking submission failed",
			zap.Error(submitErr),
			zap.String("wizard_id", wizardID),
			zap.String("user_id", userID.String()),
		)
		if sess.generation == gen {
			sess.state = sess.state.WithError(wizard.FieldGeneral, msgSubmissionFailed)
		}
		return buildWizardResponse(sess), fmt.Errorf("%w: %w", wizard.ErrSubmissionFailed, submitErr)
	}

	if sess.generation != gen {
		s.log.Warn("Discarding superseded booking result",
			zap.String("wizard_id", wizardID),
			zap.String("booking_id", receipt.BookingID),
		)
		return buildWizardResponse(sess), wizard.ErrStaleResponse
	}

	outcome, err := wizard.ResolveOutcome(receipt, data, s.routes)
	if err != nil {
		s.log.Error("Booking service returned no booking",
			zap.Error(err),
			zap.String("wizard_id", wizardID),
			zap.String("user_id", userID.String()),
		)
		sess.state = sess.state.WithError(wizard.FieldGeneral, msgSubmissionFailed)
		return buildWizardResponse(sess), err
	}
	sess.outcome = &outcome

	s.log.Info("Booking confirmed",
		zap.String("wizard_id", wizardID),
		zap.String("user_id", userID.String()),
		zap.String("booking_id", receipt.BookingID),
		zap.String("outcome", string(outcome.Kind)),
		zap.Float64("total_price", data.TotalPrice),
	)

	return buildWizardResponse(sess), nil
}

func (s *wizardService) session(wizardID string) (*wizardSession, error) {
	id, err := uuid.Parse(wizardID)
	if err != nil {
		return nil, fmt.Errorf("%w: wizard ID %s", ErrInvalidInput, wizardID)
	}
	sess, ok := s.store.get(id)
	if !ok {
		return nil, fmt.Errorf("wizard %s: %w", wizardID, ErrWizardNotFound)
	}
	return sess, nil
}

func (s *wizardService) findSpace(ctx context.Context, spaceID string) (*entity.Space, error) {
	id, err := uuid.Parse(spaceID)
	if err != nil {
		return nil, fmt.Errorf("%w: space ID %s", ErrInvalidInput, spaceID)
	}

	space, err := s.repo.Space.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get space %s: %w", spaceID, err)
	}
	if space == nil {
		return nil, fmt.Errorf("space %s: %w", spaceID, ErrSpaceNotFound)
	}
	return space, nil
}

func (s *wizardService) toAction(ctx context.Context, req *request.WizardActionRequest) (wizard.Action, error) {
	switch req.Type {
	case request.ActionSelectSpace:
		space, err := s.findSpace(ctx, req.SpaceID)
		if err != nil {
			return nil, err
		}
		return wizard.SelectSpace{Space: space}, nil

	case request.ActionSetDate:
		date, err := utils.ParseDate(req.Date, s.cal.Location)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
		return wizard.SetDate{Date: date}, nil

	case request.ActionSetDuration:
		return wizard.SetDuration{Type: wizard.DurationType(req.DurationType), Count: req.Duration}, nil

	case request.ActionSetStartTime:
		return wizard.SetStartTime{Time: req.Time}, nil

	case request.ActionSetEndTime:
		return wizard.SetEndTime{Time: req.Time}, nil

	case request.ActionSetGuests:
		return wizard.SetGuests{Guests: req.Guests}, nil

	case request.ActionSetContact:
		var contact wizard.Contact
		if req.Contact != nil {
			contact = *req.Contact
		}
		return wizard.SetContact{Contact: contact}, nil

	case request.ActionSelectPayment:
		return wizard.SelectPayment{Method: req.PaymentMethod}, nil
	}

	return nil, fmt.Errorf("%q: %w", req.Type, wizard.ErrInvalidAction)
}

// buildWizardResponse snapshots sess. Caller holds sess.mu.
func buildWizardResponse(sess *wizardSession) *response.WizardResponse {
	resp := &response.WizardResponse{
		ID:                   sess.id.String(),
		Step:                 int(sess.state.Step),
		StepName:             sess.state.Step.String(),
		Booking:              response.BookingDataToResponse(sess.state.Data),
		CheckingAvailability: sess.checking,
		Submitting:           sess.submitting,
		ExpiresAt:            sess.expiresAt,
	}
	if len(sess.state.Errors) > 0 {
		resp.Errors = maps.Clone(map[string]string(sess.state.Errors))
	}
	if sess.outcome != nil {
		outcome := *sess.outcome
		resp.Outcome = &outcome
	}
	return resp
}

func buildSlotsResponse(cal wizard.Calendar, date time.Time, space *entity.Space) *response.SlotsResponse {
	day := cal.Day(date)
	slots := cal.Slots(day, space)

	resp := &response.SlotsResponse{
		Date:               day.Format(time.DateOnly),
		Closed:             len(slots) == 0,
		Slots:              slots,
		FirstAvailableTime: cal.FirstAvailableTime(day, space),
	}
	if space != nil {
		resp.SpaceID = space.ID.String()
	}
	return resp
}
