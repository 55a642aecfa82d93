package update_appointment

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/api/handlers"
	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/api/middleware"
	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/service/appointments"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidTime        = "invalid startTime or endTime, expected YYYY-MM-DDTHH:MM"
	msgNotFound           = "appointment not found"
	msgForbidden          = "access denied"
	msgNotEditable        = "the appointment can no longer be changed"
	msgSlotNotAvailable   = "the selected time slot is not available"
	msgServiceNotFound    = "service not found"
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

// Handle обрабатывает PUT /api/v1/appointments/{appointmentId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	appointmentID := mux.Vars(r)["appointmentId"]
	caller := middleware.GetIdentity(r.Context())

	var req UpdateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /appointments/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest()
	if err != nil {
		h.logger.Warn("PUT /appointments/{id} - Invalid time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	appt, err := h.service.UpdateAppointment(r.Context(), caller, appointmentID, serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrAppointmentNotFound):
			h.logger.Warn("PUT /appointments/{id} - Appointment not found: id=%s", appointmentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, appointments.ErrAccessDenied):
			h.logger.Warn("PUT /appointments/{id} - Access denied: id=%s caller=%s", appointmentID, caller.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, appointments.ErrInvalidTransition):
			h.logger.Warn("PUT /appointments/{id} - Not editable: id=%s", appointmentID)
			handlers.RespondConflict(w, msgNotEditable)

		case errors.Is(err, appointments.ErrSlotNotAvailable):
			h.logger.Warn("PUT /appointments/{id} - Slot not available: id=%s", appointmentID)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, appointments.ErrServiceNotFound):
			h.logger.Warn("PUT /appointments/{id} - Service not found: id=%s services=%v", appointmentID, req.ServiceIDs)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("PUT /appointments/{id} - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("PUT /appointments/{id} - Failed to update appointment: id=%s error=%v", appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /appointments/{id} - Appointment updated: id=%s caller=%s", appointmentID, caller.UserID)
	handlers.RespondJSON(w, http.StatusOK, appt)
}
