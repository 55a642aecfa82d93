package businesshours

import (
	"errors"

	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/infra/storage"
)

var (
	// ErrBusinessHoursNotFound возвращается если у мастера нет часов работы на этот день
	ErrBusinessHoursNotFound = storage.ErrBusinessHoursNotFound

	// ErrBuildQuery возвращается при ошибке построения SQL
	ErrBuildQuery = errors.New("businesshours.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL
	ErrExecQuery = errors.New("businesshours.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке чтения строки результата
	ErrScanRow = errors.New("businesshours.repository: failed to scan row")
)
