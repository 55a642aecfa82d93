package identity

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/domain"
	"github.com/MarcelSpeerschneider/beautybookingsystem/pkg/dbmetrics"
	"github.com/MarcelSpeerschneider/beautybookingsystem/pkg/psqlbuilder"
)

// Repository поиск профилей мастеров и клиентов, по таблице на роль
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый репозиторий профилей
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetProvider возвращает профиль мастера по id
func (r *Repository) GetProvider(ctx context.Context, id string) (*domain.Profile, error) {
	return r.get(ctx, "providers", id, domain.RoleProvider)
}

// GetCustomer возвращает профиль клиента по id
func (r *Repository) GetCustomer(ctx context.Context, id string) (*domain.Profile, error) {
	return r.get(ctx, "customers", id, domain.RoleCustomer)
}

func (r *Repository) get(ctx context.Context, table, id string, role domain.Role) (*domain.Profile, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "role", "name").
		From(table).
		Where(squirrel.Eq{"id": id, "role": string(role)}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: get %s - build select query: %w", ErrBuildQuery, table, err)
	}

	var profile domain.Profile
	err = executor.QueryRowContext(ctx, query, args...).Scan(&profile.ID, &profile.Role, &profile.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: get %s - scan profile: %w", ErrScanRow, table, err)
	}

	return &profile, nil
}
