package relationship

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/domain"
	"github.com/MarcelSpeerschneider/beautybookingsystem/pkg/dbmetrics"
	"github.com/MarcelSpeerschneider/beautybookingsystem/pkg/psqlbuilder"
)

const table = "provider_customer_relationships"

// Repository PostgreSQL хранилище связей мастер-клиент
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый репозиторий связей
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Get возвращает связь мастера и клиента
func (r *Repository) Get(ctx context.Context, providerID, customerID string) (*domain.Relationship, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"provider_id",
		"customer_id",
		"visit_count",
		"total_spent",
		"last_visit",
		"created_at",
		"updated_at",
	).
		From(table).
		Where(squirrel.Eq{"provider_id": providerID, "customer_id": customerID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %w", ErrBuildQuery, err)
	}

	var (
		rel                             domain.Relationship
		lastVisit, createdAt, updatedAt sql.NullTime
	)
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&rel.ID,
		&rel.ProviderID,
		&rel.CustomerID,
		&rel.VisitCount,
		&rel.TotalSpent,
		&lastVisit,
		&createdAt,
		&updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRelationshipNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan relationship: %w", ErrScanRow, err)
	}

	rel.LastVisit = lastVisit.Time
	rel.CreatedAt = createdAt.Time
	rel.UpdatedAt = updatedAt.Time
	return &rel, nil
}

// RecordVisit создает связь или обновляет ее одним запросом:
// визит +1, amount добавляется к сумме, последний визит = visitAt
func (r *Repository) RecordVisit(ctx context.Context, providerID, customerID string, amount float64, visitAt, now time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns("id", "provider_id", "customer_id", "visit_count", "total_spent", "last_visit", "created_at", "updated_at").
		Values(uuid.NewString(), providerID, customerID, 1, amount, visitAt, now, now).
		Suffix("ON CONFLICT (provider_id, customer_id) DO UPDATE SET " +
			"visit_count = " + table + ".visit_count + 1, " +
			"total_spent = " + table + ".total_spent + EXCLUDED.total_spent, " +
			"last_visit = EXCLUDED.last_visit, " +
			"updated_at = EXCLUDED.updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: RecordVisit - build upsert query: %w", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: RecordVisit - execute upsert: %w", ErrExecQuery, err)
	}

	return nil
}
