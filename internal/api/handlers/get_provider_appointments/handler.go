package get_provider_appointments

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/api/handlers"
	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/api/middleware"
)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle обрабатывает GET /api/v1/providers/{providerId}/appointments
// Остальные пользователи получают пустой список.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	providerID := mux.Vars(r)["providerId"]
	caller := middleware.GetIdentity(r.Context())

	result, err := h.service.GetByProvider(r.Context(), caller, providerID)
	if err != nil {
		h.logger.Error("GET /providers/{id}/appointments - Failed to get appointments: provider=%s error=%v", providerID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /providers/{id}/appointments - Appointments retrieved: provider=%s caller=%s count=%d",
		providerID, caller.UserID, len(result.Appointments))
	handlers.RespondJSON(w, http.StatusOK, result)
}
