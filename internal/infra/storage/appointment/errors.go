package appointment

import (
	"errors"

	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/infra/storage"
)

var (
	// ErrAppointmentNotFound возвращается если запись не найдена
	ErrAppointmentNotFound = storage.ErrAppointmentNotFound

	// ErrStatusMismatch возвращается если строка не в ожидаемом статусе
	ErrStatusMismatch = storage.ErrStatusMismatch

	// ErrBuildQuery возвращается при ошибке построения SQL
	ErrBuildQuery = errors.New("appointment.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL
	ErrExecQuery = errors.New("appointment.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке чтения строки результата
	ErrScanRow = errors.New("appointment.repository: failed to scan row")
)
