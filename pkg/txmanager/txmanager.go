package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/MarcelSpeerschneider/beautybookingsystem/pkg/dbmetrics"
)

const (
	// serializationFailure SQLSTATE 40001
	serializationFailure = "40001"

	defaultMaxAttempts = 3
)

var (
	// ErrSerialization возвращается если serializable транзакция так и не прошла из-за параллельных записей
	ErrSerialization = errors.New("txmanager: serialization failure")

	// ErrTransaction оборачивает ошибки begin/commit
	ErrTransaction = errors.New("txmanager: transaction error")
)

// TxBeginner запускает транзакции, реализуется *dbmetrics.DB
type TxBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error)
}

// TransactionManager выполняет функции внутри транзакций БД.
// Транзакция передается в контексте, репозитории получают ее через dbmetrics.GetExecutor.
type TransactionManager struct {
	db          TxBeginner
	maxAttempts int
}

// NewTransactionManager создает новый менеджер транзакций
func NewTransactionManager(db TxBeginner) *TransactionManager {
	return &TransactionManager{db: db, maxAttempts: defaultMaxAttempts}
}

// DoSerializable выполняет fn в SERIALIZABLE транзакции с повтором при ошибках сериализации.
// SQLSTATE 40001 может прийти и от запроса, и от commit, он ищется по цепочке ошибок.
func (m *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	var err error
	for attempt := 1; attempt <= m.maxAttempts; attempt++ {
		err = m.run(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable}, fn)
		if !isSerializationFailure(err) {
			return err
		}
	}
	return fmt.Errorf("%w: gave up after %d attempts: %w", ErrSerialization, m.maxAttempts, err)
}

// WithLock сериализует fn через SERIALIZABLE транзакцию. Ключ не используется,
// границы блокировки задают строки, прочитанные с FOR UPDATE внутри fn.
func (m *TransactionManager) WithLock(ctx context.Context, _ string, fn func(ctx context.Context) error) error {
	return m.DoSerializable(ctx, fn)
}

func (m *TransactionManager) run(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context) error) (err error) {
	// уже внутри транзакции, используем ее
	if dbmetrics.IsInTransaction(ctx) {
		return fn(ctx)
	}

	tx, err := m.db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("%w: begin: %w", ErrTransaction, err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err = fn(dbmetrics.WithTx(ctx, tx)); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err = tx.Commit(); err != nil {
		if isSerializationFailure(err) {
			return err
		}
		return fmt.Errorf("%w: commit: %w", ErrTransaction, err)
	}
	return nil
}

func isSerializationFailure(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == serializationFailure
	}
	return false
}
