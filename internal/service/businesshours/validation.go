package businesshours

import (
	"fmt"

	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/service/businesshours/models"
	"github.com/MarcelSpeerschneider/beautybookingsystem/pkg/types"
)

func validateDays(days []models.DayHours) error {
	if len(days) == 0 {
		return fmt.Errorf("%w: at least one day is required", ErrInvalidInput)
	}

	seen := make(map[int]bool, len(days))
	for _, d := range days {
		if d.DayOfWeek < 0 || d.DayOfWeek > 6 {
			return fmt.Errorf("%w: dayOfWeek must be between 0 and 6, got %d", ErrInvalidInput, d.DayOfWeek)
		}
		if seen[d.DayOfWeek] {
			return fmt.Errorf("%w: dayOfWeek %d listed twice", ErrInvalidInput, d.DayOfWeek)
		}
		seen[d.DayOfWeek] = true

		opening, err := types.NewTimeStringFromString(d.OpeningTime)
		if err != nil {
			return fmt.Errorf("%w: openingTime: %v", ErrInvalidInput, err)
		}
		closing, err := types.NewTimeStringFromString(d.ClosingTime)
		if err != nil {
			return fmt.Errorf("%w: closingTime: %v", ErrInvalidInput, err)
		}

		// одинаковое время означает выходной
		if closing.IsBefore(opening) {
			return fmt.Errorf("%w: closingTime %s is before openingTime %s", ErrInvalidInput, closing, opening)
		}
	}
	return nil
}
