package businesshours

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/domain"
	"github.com/MarcelSpeerschneider/beautybookingsystem/pkg/dbmetrics"
	"github.com/MarcelSpeerschneider/beautybookingsystem/pkg/psqlbuilder"
)

const table = "business_hours"

// Repository PostgreSQL хранилище часов работы мастеров
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый репозиторий часов работы
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetForDay возвращает часы работы мастера на день недели
func (r *Repository) GetForDay(ctx context.Context, providerID string, day time.Weekday) (*domain.BusinessHours, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("provider_id", "day_of_week", "opening_time", "closing_time", "updated_at").
		From(table).
		Where(squirrel.Eq{"provider_id": providerID, "day_of_week": int(day)}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetForDay - build select query: %w", ErrBuildQuery, err)
	}

	hours, err := scanHours(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBusinessHoursNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetForDay - scan hours: %w", ErrScanRow, err)
	}

	return hours, nil
}

// GetWeek возвращает все настроенные дни мастера, начиная с воскресенья
func (r *Repository) GetWeek(ctx context.Context, providerID string) ([]*domain.BusinessHours, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("provider_id", "day_of_week", "opening_time", "closing_time", "updated_at").
		From(table).
		Where(squirrel.Eq{"provider_id": providerID}).
		OrderBy("day_of_week ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetWeek - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetWeek - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	week := make([]*domain.BusinessHours, 0, 7)
	for rows.Next() {
		hours, err := scanHours(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetWeek - scan row: %w", ErrScanRow, err)
		}
		week = append(week, hours)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetWeek - rows error: %w", ErrScanRow, err)
	}

	return week, nil
}

// Upsert создает или заменяет часы работы дня недели
func (r *Repository) Upsert(ctx context.Context, hours *domain.BusinessHours) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns("provider_id", "day_of_week", "opening_time", "closing_time", "updated_at").
		Values(hours.ProviderID, int(hours.DayOfWeek), hours.OpeningTime, hours.ClosingTime, hours.UpdatedAt).
		Suffix("ON CONFLICT (provider_id, day_of_week) DO UPDATE SET " +
			"opening_time = EXCLUDED.opening_time, " +
			"closing_time = EXCLUDED.closing_time, " +
			"updated_at = EXCLUDED.updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Upsert - build insert query: %w", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Upsert - execute insert: %w", ErrExecQuery, err)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanHours(row rowScanner) (*domain.BusinessHours, error) {
	var (
		hours     domain.BusinessHours
		day       int
		updatedAt sql.NullTime
	)

	if err := row.Scan(&hours.ProviderID, &day, &hours.OpeningTime, &hours.ClosingTime, &updatedAt); err != nil {
		return nil, err
	}

	hours.DayOfWeek = time.Weekday(day)
	hours.UpdatedAt = updatedAt.Time
	return &hours, nil
}
