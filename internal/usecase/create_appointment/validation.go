package create_appointment

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/domain"
)

func validateRequest(req *Request) error {
	if req.ProviderID == "" {
		return fmt.Errorf("%w: providerId is required", ErrInvalidInput)
	}
	if req.CustomerID == "" {
		return fmt.Errorf("%w: customerId is required", ErrInvalidInput)
	}
	if len(req.ServiceIDs) == 0 {
		return fmt.Errorf("%w: at least one service is required", ErrInvalidInput)
	}
	if len(req.ServiceIDs) > domain.MaxServicesPerAppointment {
		return fmt.Errorf("%w: at most %d services per appointment", ErrInvalidInput, domain.MaxServicesPerAppointment)
	}
	for _, id := range req.ServiceIDs {
		if id == "" {
			return fmt.Errorf("%w: empty service id", ErrInvalidInput)
		}
	}
	if req.StartTime.IsZero() || req.EndTime.IsZero() {
		return fmt.Errorf("%w: startTime and endTime are required", ErrInvalidInput)
	}
	if !req.EndTime.After(req.StartTime) {
		return fmt.Errorf("%w: endTime must be after startTime", ErrInvalidInput)
	}
	if utf8.RuneCountInString(req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}
	return nil
}

// authorize: мастер записывает к себе, клиент записывает себя
func authorize(caller domain.Identity, req *Request) error {
	switch {
	case caller.IsProvider() && caller.UserID == req.ProviderID:
		return nil
	case caller.IsCustomer() && caller.UserID == req.CustomerID:
		return nil
	default:
		return ErrAccessDenied
	}
}

// validateServices проверяет владельца услуг и длительность
func validateServices(services []*domain.Service, providerID string, start, end time.Time) error {
	minutes := 0
	for _, s := range services {
		if s.ProviderID != providerID {
			return fmt.Errorf("%w: service=%s", ErrServiceNotFound, s.ID)
		}
		if s.DurationMinutes <= 0 {
			return fmt.Errorf("%w: service=%s has no positive duration", ErrInvalidInput, s.ID)
		}
		minutes += s.DurationMinutes
	}

	expected := time.Duration(minutes) * time.Minute
	if actual := end.Sub(start); actual != expected {
		return fmt.Errorf("%w: expected %s, got %s", ErrDurationMismatch, expected, actual)
	}
	return nil
}

func serviceNames(services []*domain.Service) string {
	names := make([]string, len(services))
	for i, s := range services {
		names[i] = s.Name
	}
	return strings.Join(names, ", ")
}

func totalPrice(services []*domain.Service) float64 {
	var sum float64
	for _, s := range services {
		sum += s.Price
	}
	return sum
}
