package booking_session

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/api/handlers"
	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/api/handlers/get_available_slots"
	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/api/middleware"
	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/service/appointments/models"
	bookingSession "github.com/MarcelSpeerschneider/beautybookingsystem/internal/usecase/booking_session"
	createAppointment "github.com/MarcelSpeerschneider/beautybookingsystem/internal/usecase/create_appointment"
	getAvailableSlots "github.com/MarcelSpeerschneider/beautybookingsystem/internal/usecase/get_available_slots"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidTime        = "invalid startTime, expected YYYY-MM-DDTHH:MM"
	msgInvalidDate        = "invalid date, expected YYYY-MM-DD"
	msgSessionNotFound    = "booking session not found or expired"
	msgIncomplete         = "choose services and a time slot first"
	msgSlotNotAvailable   = "the selected time slot is not available"
	msgServiceNotFound    = "service not found"
	msgCustomerNotFound   = "customer not found"
	msgHoursNotFound      = "business hours not found"
	msgForbidden          = "access denied"
)

// Handler эндпоинты процесса бронирования /api/v1/booking-sessions
type Handler struct {
	useCase BookingSessionUseCase
	logger  Logger
}

func NewHandler(useCase BookingSessionUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Start обрабатывает POST /api/v1/booking-sessions
func (h *Handler) Start(w http.ResponseWriter, r *http.Request) {
	var req StartRequest
	if r.ContentLength != 0 {
		if err := handlers.DecodeJSON(r, &req); err != nil {
			h.logger.Warn("POST /booking-sessions - Invalid request body: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)
			return
		}
	}

	session, err := h.useCase.Start(r.Context(), middleware.GetIdentity(r.Context()),
		&bookingSession.StartRequest{CustomerID: req.CustomerID})
	if err != nil {
		h.respondError(w, "POST /booking-sessions", err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, FromDomainSession(session))
}

// SelectServices обрабатывает PUT /api/v1/booking-sessions/{sessionId}/services
func (h *Handler) SelectServices(w http.ResponseWriter, r *http.Request) {
	var req SelectServicesRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /booking-sessions/{id}/services - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	session, err := h.useCase.SelectServices(r.Context(), middleware.GetIdentity(r.Context()), mux.Vars(r)["sessionId"],
		&bookingSession.SelectServicesRequest{ProviderID: req.ProviderID, ServiceIDs: req.ServiceIDs})
	if err != nil {
		h.respondError(w, "PUT /booking-sessions/{id}/services", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromDomainSession(session))
}

// SelectSlot обрабатывает PUT /api/v1/booking-sessions/{sessionId}/slot
func (h *Handler) SelectSlot(w http.ResponseWriter, r *http.Request) {
	var req SelectSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /booking-sessions/{id}/slot - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	start, err := handlers.ParseWallClock(req.StartTime)
	if err != nil {
		h.logger.Warn("PUT /booking-sessions/{id}/slot - Invalid time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	session, err := h.useCase.SelectSlot(r.Context(), middleware.GetIdentity(r.Context()), mux.Vars(r)["sessionId"],
		&bookingSession.SelectSlotRequest{Start: start, Notes: req.Notes})
	if err != nil {
		h.respondError(w, "PUT /booking-sessions/{id}/slot", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromDomainSession(session))
}

// Slots обрабатывает GET /api/v1/booking-sessions/{sessionId}/slots?date=YYYY-MM-DD
func (h *Handler) Slots(w http.ResponseWriter, r *http.Request) {
	date, err := handlers.ParseDate(r.URL.Query().Get("date"))
	if err != nil {
		h.logger.Warn("GET /booking-sessions/{id}/slots - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Slots(r.Context(), middleware.GetIdentity(r.Context()), mux.Vars(r)["sessionId"], date)
	if err != nil {
		h.respondError(w, "GET /booking-sessions/{id}/slots", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, &SlotsResponse{
		Session: FromDomainSession(result.Session),
		Slots:   get_available_slots.FromDomainSlots(result.Slots),
	})
}

// Confirm обрабатывает POST /api/v1/booking-sessions/{sessionId}/confirm
func (h *Handler) Confirm(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	appt, err := h.useCase.Confirm(r.Context(), middleware.GetIdentity(r.Context()), sessionID)
	if err != nil {
		h.respondError(w, "POST /booking-sessions/{id}/confirm", err)
		return
	}

	h.logger.Info("POST /booking-sessions/{id}/confirm - Appointment booked: session=%s appointment=%s", sessionID, appt.ID)
	handlers.RespondJSON(w, http.StatusCreated, models.FromDomainAppointment(appt))
}

// Cancel обрабатывает DELETE /api/v1/booking-sessions/{sessionId}
func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	if err := h.useCase.Cancel(r.Context(), middleware.GetIdentity(r.Context()), mux.Vars(r)["sessionId"]); err != nil {
		h.respondError(w, "DELETE /booking-sessions/{id}", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) respondError(w http.ResponseWriter, route string, err error) {
	switch {
	case errors.Is(err, bookingSession.ErrSessionNotFound):
		h.logger.Warn("%s - Session not found", route)
		handlers.RespondNotFound(w, msgSessionNotFound)

	case errors.Is(err, bookingSession.ErrIncomplete):
		handlers.RespondBadRequest(w, msgIncomplete)

	case errors.Is(err, bookingSession.ErrSlotNotAvailable),
		errors.Is(err, createAppointment.ErrSlotNotAvailable):
		h.logger.Warn("%s - Slot not available: %v", route, err)
		handlers.RespondConflict(w, msgSlotNotAvailable)

	case errors.Is(err, bookingSession.ErrAccessDenied):
		handlers.RespondUnauthorized(w, msgForbidden)

	case errors.Is(err, createAppointment.ErrAccessDenied):
		handlers.RespondForbidden(w, msgForbidden)

	case errors.Is(err, bookingSession.ErrCustomerNotFound),
		errors.Is(err, createAppointment.ErrCustomerNotFound):
		handlers.RespondNotFound(w, msgCustomerNotFound)

	case errors.Is(err, getAvailableSlots.ErrServiceNotFound),
		errors.Is(err, createAppointment.ErrServiceNotFound):
		handlers.RespondNotFound(w, msgServiceNotFound)

	case errors.Is(err, getAvailableSlots.ErrBusinessHoursNotFound):
		handlers.RespondNotFound(w, msgHoursNotFound)

	case errors.Is(err, bookingSession.ErrInvalidInput),
		errors.Is(err, createAppointment.ErrInvalidInput),
		errors.Is(err, createAppointment.ErrDurationMismatch),
		errors.Is(err, getAvailableSlots.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: %v", route, err)
		handlers.RespondBadRequest(w, err.Error())

	default:
		h.logger.Error("%s - Request failed: %v", route, err)
		handlers.RespondInternalError(w)
	}
}
