package delete_appointment

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/api/handlers"
	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/api/middleware"
	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/service/appointments"
)

const (
	msgNotFound  = "appointment not found"
	msgForbidden = "access denied"
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

// Handle обрабатывает DELETE /api/v1/appointments/{appointmentId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	appointmentID := mux.Vars(r)["appointmentId"]
	caller := middleware.GetIdentity(r.Context())

	if err := h.service.Delete(r.Context(), caller, appointmentID); err != nil {
		switch {
		case errors.Is(err, appointments.ErrAppointmentNotFound):
			h.logger.Warn("DELETE /appointments/{id} - Appointment not found: id=%s", appointmentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, appointments.ErrAccessDenied):
			h.logger.Warn("DELETE /appointments/{id} - Access denied: id=%s caller=%s", appointmentID, caller.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("DELETE /appointments/{id} - Failed to delete appointment: id=%s error=%v", appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /appointments/{id} - Appointment deleted: id=%s caller=%s", appointmentID, caller.UserID)
	w.WriteHeader(http.StatusNoContent)
}
