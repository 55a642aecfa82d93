package update_business_hours

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/api/handlers"
	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/api/middleware"
	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/service/businesshours"
	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/service/businesshours/models"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgForbidden          = "access denied"
	msgInvalidData        = "invalid business hours"
)

type Handler struct {
	service BusinessHoursService
	logger  Logger
}

func NewHandler(service BusinessHoursService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle обрабатывает PUT /api/v1/providers/{providerId}/business-hours
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	providerID := mux.Vars(r)["providerId"]
	caller := middleware.GetIdentity(r.Context())

	var req models.UpsertRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /providers/{id}/business-hours - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.ProviderID = providerID

	week, err := h.service.Upsert(r.Context(), caller, &req)
	if err != nil {
		switch {
		case errors.Is(err, businesshours.ErrAccessDenied):
			h.logger.Warn("PUT /providers/{id}/business-hours - Access denied: provider=%s caller=%s", providerID, caller.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, businesshours.ErrInvalidInput):
			h.logger.Warn("PUT /providers/{id}/business-hours - Invalid data: provider=%s error=%v", providerID, err)
			handlers.RespondBadRequest(w, msgInvalidData+": "+err.Error())

		default:
			h.logger.Error("PUT /providers/{id}/business-hours - Failed to update hours: provider=%s error=%v", providerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /providers/{id}/business-hours - Hours updated: provider=%s days=%d", providerID, len(req.Days))
	handlers.RespondJSON(w, http.StatusOK, week)
}
