package adaptor

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"cowork-booking/internal/dto/request"
	"cowork-booking/internal/dto/response"
	"cowork-booking/internal/usecase"
	"cowork-booking/internal/wizard"
	"cowork-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type WizardHandler struct {
	service usecase.WizardService
	log     *zap.Logger
}

func NewWizardHandler(service usecase.WizardService, log *zap.Logger) *WizardHandler {
	return &WizardHandler{
		service: service,
		log:     log.With(zap.String("handler", "wizard")),
	}
}

// Start handles POST /api/wizards. The body is optional.
func (h *WizardHandler) Start(w http.ResponseWriter, r *http.Request) {
	var req request.StartWizardRequest
	if !decodeOptional(w, r, &req) {
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	resp, err := h.service.Start(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, resp, err, "start wizard")
		return
	}

	utils.ResponseCreated(w, "success", resp)
}

// Get handles GET /api/wizards/{id}
func (h *WizardHandler) Get(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.handleServiceError(w, resp, err, "get wizard")
		return
	}

	utils.ResponseSuccess(w, "success", resp)
}

// Discard handles DELETE /api/wizards/{id}
func (h *WizardHandler) Discard(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Discard(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.handleServiceError(w, nil, err, "discard wizard")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// Apply handles POST /api/wizards/{id}/actions
func (h *WizardHandler) Apply(w http.ResponseWriter, r *http.Request) {
	var req request.WizardActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	resp, err := h.service.Apply(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		h.handleServiceError(w, resp, err, "apply wizard action")
		return
	}

	utils.ResponseSuccess(w, "success", resp)
}

// Advance handles POST /api/wizards/{id}/advance
func (h *WizardHandler) Advance(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.Advance(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.handleServiceError(w, resp, err, "advance wizard")
		return
	}

	utils.ResponseSuccess(w, "success", resp)
}

// Retreat handles POST /api/wizards/{id}/retreat
func (h *WizardHandler) Retreat(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.Retreat(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.handleServiceError(w, resp, err, "retreat wizard")
		return
	}

	utils.ResponseSuccess(w, "success", resp)
}

// Slots handles GET /api/wizards/{id}/slots?date=YYYY-MM-DD
func (h *WizardHandler) Slots(w http.ResponseWriter, r *http.Request) {
	slots, err := h.service.Slots(r.Context(), chi.URLParam(r, "id"), r.URL.Query().Get("date"))
	if err != nil {
		h.handleServiceError(w, nil, err, "get wizard slots")
		return
	}

	utils.ResponseSuccess(w, "success", slots)
}

// Confirm handles POST /api/wizards/{id}/confirm. Anonymous callers get a
// login outcome back instead of a booking.
func (h *WizardHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	var req request.ConfirmRequest
	if !decodeOptional(w, r, &req) {
		return
	}

	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		userID = uuid.Nil
	}

	resp, err := h.service.Confirm(r.Context(), chi.URLParam(r, "id"), userID, req.CallbackURL)
	if err != nil {
		h.handleServiceError(w, resp, err, "confirm booking")
		return
	}

	utils.ResponseSuccess(w, "success", resp)
}

// decodeOptional decodes a JSON body into dst, accepting an empty body.
func decodeOptional(w http.ResponseWriter, r *http.Request, dst any) bool {
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil || errors.Is(err, io.EOF) {
		return true
	}
	utils.ResponseBadRequest(w, "Invalid request body", nil)
	return false
}

// handleServiceError maps wizard errors to status codes. The wizard state is
// sent along so the client can render field errors in place.
func (h *WizardHandler) handleServiceError(w http.ResponseWriter, resp *response.WizardResponse, err error, operation string) {
	var data any
	var fieldErrors map[string]string
	if resp != nil {
		data = resp
		fieldErrors = resp.Errors
	}

	switch {
	case errors.Is(err, usecase.ErrWizardNotFound), errors.Is(err, usecase.ErrSpaceNotFound):
		h.log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, err.Error())

	case errors.Is(err, usecase.ErrInvalidInput),
		errors.Is(err, wizard.ErrInvalidAction),
		errors.Is(err, wizard.ErrValidation),
		errors.Is(err, wizard.ErrIncomplete):
		h.log.Debug(operation+" rejected", zap.Error(err))
		utils.ResponseJSON(w, http.StatusBadRequest, false, err.Error(), data, fieldErrors)

	case errors.Is(err, wizard.ErrUnavailable),
		errors.Is(err, wizard.ErrStaleResponse),
		errors.Is(err, wizard.ErrSubmissionInFlight),
		errors.Is(err, wizard.ErrWizardCompleted),
		errors.Is(err, wizard.ErrWrongStep):
		h.log.Info(operation+" conflict", zap.Error(err))
		utils.ResponseJSON(w, http.StatusConflict, false, err.Error(), data, fieldErrors)

	case errors.Is(err, usecase.ErrUpstream), errors.Is(err, wizard.ErrSubmissionFailed):
		h.log.Error(operation+" failed upstream", zap.Error(err))
		utils.ResponseJSON(w, http.StatusBadGateway, false, "Upstream service error", data, fieldErrors)

	default:
		h.log.Error("Failed to "+operation, zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
