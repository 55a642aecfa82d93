package catalog

import (
	"errors"

	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/infra/storage"
)

var (
	// ErrServiceNotFound возвращается если услуга не найдена
	ErrServiceNotFound = storage.ErrServiceNotFound

	// ErrBuildQuery возвращается при ошибке построения SQL
	ErrBuildQuery = errors.New("catalog.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL
	ErrExecQuery = errors.New("catalog.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке чтения строки результата
	ErrScanRow = errors.New("catalog.repository: failed to scan row")
)
