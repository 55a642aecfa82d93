package create_appointment

import (
	"errors"
	"net/http"

	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/api/handlers"
	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/api/middleware"
	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/service/appointments/models"
	createAppointment "github.com/MarcelSpeerschneider/beautybookingsystem/internal/usecase/create_appointment"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidTime        = "invalid startTime or endTime, expected YYYY-MM-DDTHH:MM"
	msgSlotNotAvailable   = "the selected time slot is not available"
	msgServiceNotFound    = "service not found"
	msgCustomerNotFound   = "customer not found"
	msgDurationMismatch   = "appointment length does not match the selected services"
	msgForbidden          = "access denied"
)

type Handler struct {
	useCase CreateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase CreateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle обрабатывает POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	caller := middleware.GetIdentity(r.Context())

	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(caller)
	if err != nil {
		h.logger.Warn("POST /appointments - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createAppointment.ErrSlotNotAvailable):
			h.logger.Warn("POST /appointments - Slot not available: provider=%s start=%s", req.ProviderID, req.StartTime)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, createAppointment.ErrAccessDenied):
			h.logger.Warn("POST /appointments - Access denied: caller=%s provider=%s customer=%s",
				caller.UserID, req.ProviderID, req.CustomerID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, createAppointment.ErrServiceNotFound):
			h.logger.Warn("POST /appointments - Service not found: provider=%s services=%v", req.ProviderID, req.ServiceIDs)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createAppointment.ErrCustomerNotFound):
			h.logger.Warn("POST /appointments - Customer not found: customer=%s", req.CustomerID)
			handlers.RespondNotFound(w, msgCustomerNotFound)

		case errors.Is(err, createAppointment.ErrDurationMismatch):
			h.logger.Warn("POST /appointments - Duration mismatch: %v", err)
			handlers.RespondBadRequest(w, msgDurationMismatch)

		case errors.Is(err, createAppointment.ErrInvalidInput):
			h.logger.Warn("POST /appointments - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /appointments - Failed to create appointment: provider=%s customer=%s error=%v",
				req.ProviderID, req.CustomerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments - Appointment created: id=%s provider=%s customer=%s",
		result.Appointment.ID, result.Appointment.ProviderID, result.Appointment.CustomerID)
	handlers.RespondJSON(w, http.StatusCreated, models.FromDomainAppointment(result.Appointment))
}
