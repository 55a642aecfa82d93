package get_business_hours

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/api/handlers"
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

// Handle обрабатывает GET /api/v1/providers/{providerId}/business-hours
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	providerID := mux.Vars(r)["providerId"]

	week, err := h.service.GetWeek(r.Context(), providerID)
	if err != nil {
		h.logger.Error("GET /providers/{id}/business-hours - Failed to get hours: provider=%s error=%v", providerID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /providers/{id}/business-hours - Hours retrieved: provider=%s days=%d", providerID, len(week.Days))
	handlers.RespondJSON(w, http.StatusOK, week)
}
