package identity

import (
	"errors"

	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/infra/storage"
)

var (
	// ErrProfileNotFound возвращается если нет профиля с таким id и ролью
	ErrProfileNotFound = storage.ErrProfileNotFound

	// ErrBuildQuery возвращается при ошибке построения SQL
	ErrBuildQuery = errors.New("identity.repository: failed to build query")

	// ErrScanRow возвращается при ошибке чтения строки результата
	ErrScanRow = errors.New("identity.repository: failed to scan row")
)
