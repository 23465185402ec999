package adaptor

import (
	"errors"
	"net/http"

	"cowork-booking/internal/dto/request"
	"cowork-booking/internal/usecase"
	"cowork-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type SpaceHandler struct {
	service usecase.SpaceService
	log     *zap.Logger
}

func NewSpaceHandler(service usecase.SpaceService, log *zap.Logger) *SpaceHandler {
	return &SpaceHandler{
		service: service,
		log:     log.With(zap.String("handler", "space")),
	}
}

// GetSpaces handles GET /api/spaces
func (h *SpaceHandler) GetSpaces(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 10),
	}

	// Filter by location (optional)
	var locationFilter *string
	if location := query.Get("location"); location != "" {
		locationFilter = &location
	}

	spaces, err := h.service.GetSpaces(r.Context(), req, locationFilter)
	if err != nil {
		h.handleServiceError(w, err, "get spaces")
		return
	}

	utils.ResponseSuccess(w, "success", spaces)
}

// GetSpaceByID handles GET /api/spaces/{id}
func (h *SpaceHandler) GetSpaceByID(w http.ResponseWriter, r *http.Request) {
	space, err := h.service.GetSpaceByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.handleServiceError(w, err, "get space by ID")
		return
	}

	utils.ResponseSuccess(w, "success", space)
}

// GetSpaceSlots handles GET /api/spaces/{id}/slots?date=YYYY-MM-DD
func (h *SpaceHandler) GetSpaceSlots(w http.ResponseWriter, r *http.Request) {
	slots, err := h.service.GetSpaceSlots(r.Context(), chi.URLParam(r, "id"), r.URL.Query().Get("date"))
	if err != nil {
		h.handleServiceError(w, err, "get space slots")
		return
	}

	utils.ResponseSuccess(w, "success", slots)
}

// GetPaymentMethods handles GET /api/payment-methods
func (h *SpaceHandler) GetPaymentMethods(w http.ResponseWriter, r *http.Request) {
	utils.ResponseSuccess(w, "success", h.service.GetPaymentMethods(r.Context()))
}

func (h *SpaceHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	switch {
	case errors.Is(err, usecase.ErrSpaceNotFound):
		h.log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, err.Error())

	case errors.Is(err, usecase.ErrInvalidInput):
		h.log.Warn("Invalid input for "+operation, zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	default:
		h.log.Error("Failed to "+operation, zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
