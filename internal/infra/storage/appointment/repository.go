package appointment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/domain"
	"github.com/MarcelSpeerschneider/beautybookingsystem/pkg/dbmetrics"
	"github.com/MarcelSpeerschneider/beautybookingsystem/pkg/psqlbuilder"
)

const table = "appointments"

var columns = []string{
	"id",
	"provider_id",
	"customer_id",
	"service_ids",
	"service_name",
	"customer_name",
	"price",
	"start_time",
	"end_time",
	"status",
	"notes",
	"cleaning_time_minutes",
	"created_at",
	"updated_at",
}

// Repository PostgreSQL хранилище записей
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый репозиторий записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create вставляет новую запись, генерируя id если он пустой.
// Если в контексте есть транзакция, вставка выполняется в ней.
func (r *Repository) Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if appt.ID == "" {
		appt.ID = uuid.NewString()
	}
	if appt.UpdatedAt.IsZero() {
		appt.UpdatedAt = appt.CreatedAt
	}

	query, args, err := psqlbuilder.Insert(table).
		Columns(columns...).
		Values(
			appt.ID,
			appt.ProviderID,
			appt.CustomerID,
			pq.Array(appt.ServiceIDs),
			appt.ServiceName,
			appt.CustomerName,
			appt.Price,
			appt.StartTime,
			appt.EndTime,
			appt.Status,
			appt.Notes,
			appt.CleaningTimeMinutes,
			appt.CreatedAt,
			appt.UpdatedAt,
		).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return appt, nil
}

// GetByID возвращает запись по id
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrAppointmentNotFound
	}

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	appt, err := scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan appointment: %w", ErrScanRow, err)
	}

	return appt, nil
}

// GetByProvider возвращает все записи мастера, новые первыми
func (r *Repository) GetByProvider(ctx context.Context, providerID string) ([]*domain.Appointment, error) {
	return r.list(ctx, "GetByProvider", squirrel.Eq{"provider_id": providerID}, "start_time DESC", false)
}

// GetByCustomer возвращает все записи клиента, новые первыми
func (r *Repository) GetByCustomer(ctx context.Context, customerID string) ([]*domain.Appointment, error) {
	return r.list(ctx, "GetByCustomer", squirrel.Eq{"customer_id": customerID}, "start_time DESC", false)
}

// GetByProviderForDay возвращает записи мастера, начинающиеся в day, в указанных статусах,
// по времени начала. Внутри транзакции строки блокируются через FOR UPDATE.
func (r *Repository) GetByProviderForDay(
	ctx context.Context,
	providerID string,
	day time.Time,
	statuses []domain.AppointmentStatus,
) ([]*domain.Appointment, error) {
	where := squirrel.And{
		squirrel.Eq{"provider_id": providerID},
		dayRange(day),
	}
	if len(statuses) > 0 {
		where = append(where, squirrel.Eq{"status": statusStrings(statuses)})
	}
	return r.list(ctx, "GetByProviderForDay", where, "start_time ASC", dbmetrics.IsInTransaction(ctx))
}

// GetByCustomerForDay возвращает записи клиента, начинающиеся в day, по времени начала
func (r *Repository) GetByCustomerForDay(ctx context.Context, customerID string, day time.Time) ([]*domain.Appointment, error) {
	where := squirrel.And{
		squirrel.Eq{"customer_id": customerID},
		dayRange(day),
	}
	return r.list(ctx, "GetByCustomerForDay", where, "start_time ASC", false)
}

// Update сохраняет изменяемые поля записи, пока она в статусе pending или confirmed
func (r *Repository) Update(ctx context.Context, appt *domain.Appointment) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("service_ids", pq.Array(appt.ServiceIDs)).
		Set("service_name", appt.ServiceName).
		Set("price", appt.Price).
		Set("start_time", appt.StartTime).
		Set("end_time", appt.EndTime).
		Set("notes", appt.Notes).
		Set("updated_at", appt.UpdatedAt).
		Where(squirrel.Eq{"id": appt.ID}).
		Where(squirrel.Eq{"status": statusStrings(domain.ActiveStatuses)}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %w", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, "Update", query, args)
}

// UpdateStatus переводит запись из одного статуса в другой.
// Запись применяется только если строка все еще в from, иначе возвращается ErrStatusMismatch.
func (r *Repository) UpdateStatus(ctx context.Context, id string, from, to domain.AppointmentStatus, updatedAt time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("status", to).
		Set("updated_at", updatedAt).
		Where(squirrel.Eq{"id": id, "status": from}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %w", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, "UpdateStatus", query, args)
}

// Delete удаляет запись навсегда
func (r *Repository) Delete(ctx context.Context, id string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %w", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrAppointmentNotFound
	}

	return nil
}

func (r *Repository) list(
	ctx context.Context,
	op string,
	where squirrel.Sqlizer,
	orderBy string,
	forUpdate bool,
) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(columns...).
		From(table).
		Where(where).
		OrderBy(orderBy)
	if forUpdate {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %w", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %w", ErrExecQuery, op, err)
	}
	defer rows.Close()

	appointments := make([]*domain.Appointment, 0)
	for rows.Next() {
		appt, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %w", ErrScanRow, op, err)
		}
		appointments = append(appointments, appt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %w", ErrScanRow, op, err)
	}

	return appointments, nil
}

func (r *Repository) execExpectingRow(ctx context.Context, executor DBExecutor, op, query string, args []interface{}) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %w", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %w", ErrExecQuery, op, err)
	}
	if rowsAffected == 0 {
		return ErrStatusMismatch
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAppointment(row rowScanner) (*domain.Appointment, error) {
	var (
		appt      domain.Appointment
		createdAt sql.NullTime
		updatedAt sql.NullTime
	)

	err := row.Scan(
		&appt.ID,
		&appt.ProviderID,
		&appt.CustomerID,
		pq.Array(&appt.ServiceIDs),
		&appt.ServiceName,
		&appt.CustomerName,
		&appt.Price,
		&appt.StartTime,
		&appt.EndTime,
		&appt.Status,
		&appt.Notes,
		&appt.CleaningTimeMinutes,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	// колонки timestamp without time zone, храним локальное время в UTC
	appt.StartTime = asWallClock(appt.StartTime)
	appt.EndTime = asWallClock(appt.EndTime)
	appt.CreatedAt = asWallClock(createdAt.Time)
	appt.UpdatedAt = asWallClock(updatedAt.Time)

	return &appt, nil
}

func asWallClock(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}

func dayRange(day time.Time) squirrel.Sqlizer {
	start := domain.TruncateToDay(day)
	return squirrel.And{
		squirrel.GtOrEq{"start_time": start},
		squirrel.Lt{"start_time": start.AddDate(0, 0, 1)},
	}
}

func statusStrings(statuses []domain.AppointmentStatus) []string {
	result := make([]string, len(statuses))
	for i, s := range statuses {
		result[i] = string(s)
	}
	return result
}
