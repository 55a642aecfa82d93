package get_customer_appointments

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

// Handle обрабатывает GET /api/v1/customers/{customerId}/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	customerID := mux.Vars(r)["customerId"]
	caller := middleware.GetIdentity(r.Context())

	result, err := h.service.GetByCustomer(r.Context(), caller, customerID)
	if err != nil {
		h.logger.Error("GET /customers/{id}/appointments - Failed to get appointments: customer=%s error=%v", customerID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /customers/{id}/appointments - Appointments retrieved: customer=%s caller=%s count=%d",
		customerID, caller.UserID, len(result.Appointments))
	handlers.RespondJSON(w, http.StatusOK, result)
}
