package relationship

import (
	"errors"

	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/infra/storage"
)

var (
	// ErrRelationshipNotFound возвращается если связи мастера и клиента нет
	ErrRelationshipNotFound = storage.ErrRelationshipNotFound

	// ErrBuildQuery возвращается при ошибке построения SQL
	ErrBuildQuery = errors.New("relationship.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL
	ErrExecQuery = errors.New("relationship.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке чтения строки результата
	ErrScanRow = errors.New("relationship.repository: failed to scan row")
)
