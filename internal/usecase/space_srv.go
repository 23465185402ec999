package usecase

import (
	"context"
	"fmt"

	"cowork-booking/internal/data/repository"
	"cowork-booking/internal/dto/request"
	"cowork-booking/internal/dto/response"
	"cowork-booking/internal/wizard"
	"cowork-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type SpaceService interface {
	GetSpaces(ctx context.Context, req *request.PaginatedRequest, locationFilter *string) (*response.PaginatedResponse[response.SpaceResponse], error)
	GetSpaceByID(ctx context.Context, spaceID string) (*response.SpaceResponse, error)
	GetSpaceSlots(ctx context.Context, spaceID, dateStr string) (*response.SlotsResponse, error)
	GetPaymentMethods(ctx context.Context) []wizard.PaymentMethod
}

type spaceService struct {
	repo *repository.Repository
	cal  wizard.Calendar
	log  *zap.Logger
}

func NewSpaceService(repo *repository.Repository, cal wizard.Calendar, log *zap.Logger) SpaceService {
	return &spaceService{
		repo: repo,
		cal:  cal,
		log:  log.With(zap.String("service", "space")),
	}
}

func (s *spaceService) GetSpaces(ctx context.Context, req *request.PaginatedRequest, locationFilter *string) (*response.PaginatedResponse[response.SpaceResponse], error) {
	limit := req.Limit()
	offset := req.Offset()

	spaces, err := s.repo.Space.FindAll(ctx, limit, offset, locationFilter)
	if err != nil {
		s.log.Error("Failed to get spaces from repository",
			zap.Error(err),
			zap.Int("page", req.Page),
			zap.Int("per_page", req.PerPage),
			zap.Stringp("location_filter", locationFilter),
		)
		return nil, fmt.Errorf("get spaces: %w", err)
	}

	total, err := s.repo.Space.CountAll(ctx, locationFilter)
	if err != nil {
		s.log.Error("Failed to count spaces",
			zap.Error(err),
			zap.Stringp("location_filter", locationFilter),
		)
		return nil, fmt.Errorf("count spaces: %w", err)
	}

	spaceResponses := make([]response.SpaceResponse, len(spaces))
	for i, space := range spaces {
		spaceResponses[i] = response.SpaceToResponse(space)
	}

	s.log.Debug("Spaces retrieved",
		zap.Int("count", len(spaces)),
		zap.Int64("total", total),
		zap.Int("page", req.Page),
	)

	return response.NewPaginatedResponse(spaceResponses, req.Page, limit, total), nil
}

func (s *spaceService) GetSpaceByID(ctx context.Context, spaceID string) (*response.SpaceResponse, error) {
	id, err := uuid.Parse(spaceID)
	if err != nil {
		s.log.Warn("Invalid space ID format",
			zap.String("space_id", spaceID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: space ID %s", ErrInvalidInput, spaceID)
	}

	space, err := s.repo.Space.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get space %s: %w", spaceID, err)
	}
	if space == nil {
		return nil, fmt.Errorf("space %s: %w", spaceID, ErrSpaceNotFound)
	}

	resp := response.SpaceToResponse(space)
	return &resp, nil
}

// GetSpaceSlots lists the start times for a space on a date, today when
// dateStr is empty.
func (s *spaceService) GetSpaceSlots(ctx context.Context, spaceID, dateStr string) (*response.SlotsResponse, error) {
	id, err := uuid.Parse(spaceID)
	if err != nil {
		return nil, fmt.Errorf("%w: space ID %s", ErrInvalidInput, spaceID)
	}

	date := s.cal.Today()
	if dateStr != "" {
		date, err = utils.ParseDate(dateStr, s.cal.Location)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
	}

	space, err := s.repo.Space.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get space %s: %w", spaceID, err)
	}
	if space == nil {
		return nil, fmt.Errorf("space %s: %w", spaceID, ErrSpaceNotFound)
	}

	return buildSlotsResponse(s.cal, date, space), nil
}

func (s *spaceService) GetPaymentMethods(ctx context.Context) []wizard.PaymentMethod {
	return wizard.PaymentMethods()
}
