package get_relationship

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/api/handlers"
	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/api/middleware"
	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/service/relationships"
)

const (
	msgNotFound  = "no visits recorded for this customer"
	msgForbidden = "access denied"
)

type Handler struct {
	service RelationshipService
	logger  Logger
}

func NewHandler(service RelationshipService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle обрабатывает GET /api/v1/providers/{providerId}/customers/{customerId}/relationship
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	providerID, customerID := vars["providerId"], vars["customerId"]
	caller := middleware.GetIdentity(r.Context())

	rel, err := h.service.Get(r.Context(), caller, providerID, customerID)
	if err != nil {
		switch {
		case errors.Is(err, relationships.ErrAccessDenied):
			h.logger.Warn("GET /providers/{id}/customers/{id}/relationship - Access denied: provider=%s caller=%s",
				providerID, caller.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, relationships.ErrRelationshipNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /providers/{id}/customers/{id}/relationship - Failed to get relationship: provider=%s customer=%s error=%v",
				providerID, customerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromDomain(rel))
}
