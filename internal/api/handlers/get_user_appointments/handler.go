package get_user_appointments

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/api/handlers"
	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/api/middleware"
	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/service/appointments"
	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/service/appointments/models"
)

const (
	msgInvalidDate   = "invalid date, expected YYYY-MM-DD"
	msgInvalidParams = "invalid request parameters"
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

// Handle обрабатывает GET /api/v1/users/{userId}/appointments
// Query параметры: date (обязательный, YYYY-MM-DD), asProvider (опциональный, по умолчанию false)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]
	caller := middleware.GetIdentity(r.Context())

	date, err := handlers.ParseDate(r.URL.Query().Get("date"))
	if err != nil {
		h.logger.Warn("GET /users/{id}/appointments - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	asProvider := false
	if v := r.URL.Query().Get("asProvider"); v != "" {
		asProvider, err = strconv.ParseBool(v)
		if err != nil {
			h.logger.Warn("GET /users/{id}/appointments - Invalid asProvider=%q", v)
			handlers.RespondBadRequest(w, msgInvalidParams)
			return
		}
	}

	result, err := h.service.GetByUserAndDate(r.Context(), caller, &models.UserAppointmentsRequest{
		UserID:     userID,
		Date:       date,
		AsProvider: asProvider,
	})
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("GET /users/{id}/appointments - Invalid parameters: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /users/{id}/appointments - Failed to get appointments: user=%s error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /users/{id}/appointments - Appointments retrieved: user=%s asProvider=%t count=%d",
		userID, asProvider, len(result.Appointments))
	handlers.RespondJSON(w, http.StatusOK, result)
}
