package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/api/handlers"
	getAvailableSlots "github.com/MarcelSpeerschneider/beautybookingsystem/internal/usecase/get_available_slots"
)

const (
	msgMissingDate           = "date is required"
	msgInvalidDate           = "invalid date, expected YYYY-MM-DD"
	msgInvalidParams         = "invalid request parameters"
	msgServiceNotFound       = "service not found"
	msgBusinessHoursNotFound = "business hours not found"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle обрабатывает GET /api/v1/providers/{providerId}/available-slots
// Query параметры: date (обязательный, YYYY-MM-DD), serviceId (повторяемый)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	providerID := mux.Vars(r)["providerId"]

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /providers/{id}/available-slots - Missing date: provider=%s", providerID)
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	useCaseReq, err := ToUseCaseRequest(providerID, dateStr, r.URL.Query()["serviceId"])
	if err != nil {
		h.logger.Warn("GET /providers/{id}/available-slots - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrServiceNotFound):
			h.logger.Warn("GET /providers/{id}/available-slots - Service not found: provider=%s services=%v",
				providerID, useCaseReq.ServiceIDs)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getAvailableSlots.ErrBusinessHoursNotFound):
			h.logger.Warn("GET /providers/{id}/available-slots - Business hours not found: provider=%s date=%s",
				providerID, dateStr)
			handlers.RespondNotFound(w, msgBusinessHoursNotFound)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /providers/{id}/available-slots - Invalid parameters: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /providers/{id}/available-slots - Failed to get slots: provider=%s date=%s error=%v",
				providerID, dateStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /providers/{id}/available-slots - Slots retrieved: provider=%s date=%s slots=%d",
		providerID, dateStr, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
