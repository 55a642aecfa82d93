package dbmetrics

import "context"

type txKey struct{}

// WithTx сохраняет активную транзакцию в контексте
func WithTx(ctx context.Context, tx TxExecutor) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

// GetExecutor возвращает транзакцию из ctx или fallback, если транзакции нет.
// Репозитории вызывают его, чтобы один метод работал и в транзакции, и без нее.
func GetExecutor(ctx context.Context, fallback DBExecutor) DBExecutor {
	if tx, ok := ctx.Value(txKey{}).(TxExecutor); ok && tx != nil {
		return tx
	}
	return fallback
}

// IsInTransaction проверяет, есть ли транзакция в ctx
func IsInTransaction(ctx context.Context) bool {
	tx, ok := ctx.Value(txKey{}).(TxExecutor)
	return ok && tx != nil
}
