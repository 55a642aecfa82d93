package get_available_slots

import (
	"fmt"
)

func validateRequest(req *Request) error {
	if req.ProviderID == "" {
		return fmt.Errorf("%w: providerId is required", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	return nil
}
