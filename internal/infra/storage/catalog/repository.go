package catalog

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/domain"
	"github.com/MarcelSpeerschneider/beautybookingsystem/pkg/dbmetrics"
	"github.com/MarcelSpeerschneider/beautybookingsystem/pkg/psqlbuilder"
)

const table = "services"

// Repository доступ на чтение к каталогу услуг мастеров
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый репозиторий каталога
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByIDs возвращает услуги в порядке ids.
// Если какой-то id не найден, возвращается ErrServiceNotFound.
func (r *Repository) GetByIDs(ctx context.Context, ids []string) ([]*domain.Service, error) {
	if len(ids) == 0 {
		return []*domain.Service{}, nil
	}

	found, err := r.query(ctx, "GetByIDs", squirrel.Eq{"id": ids})
	if err != nil {
		return nil, err
	}

	byID := make(map[string]*domain.Service, len(found))
	for _, svc := range found {
		byID[svc.ID] = svc
	}

	result := make([]*domain.Service, 0, len(ids))
	for _, id := range ids {
		svc, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("%w: id=%s", ErrServiceNotFound, id)
		}
		result = append(result, svc)
	}

	return result, nil
}

// GetByProvider возвращает каталог услуг мастера
func (r *Repository) GetByProvider(ctx context.Context, providerID string) ([]*domain.Service, error) {
	return r.query(ctx, "GetByProvider", squirrel.Eq{"provider_id": providerID})
}

func (r *Repository) query(ctx context.Context, op string, where squirrel.Sqlizer) ([]*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "provider_id", "name", "price", "duration_minutes").
		From(table).
		Where(where).
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %w", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %w", ErrExecQuery, op, err)
	}
	defer rows.Close()

	services := make([]*domain.Service, 0)
	for rows.Next() {
		var svc domain.Service
		if err := rows.Scan(&svc.ID, &svc.ProviderID, &svc.Name, &svc.Price, &svc.DurationMinutes); err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %w", ErrScanRow, op, err)
		}
		services = append(services, &svc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %w", ErrScanRow, op, err)
	}

	return services, nil
}
