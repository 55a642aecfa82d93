package bookingsession

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/domain"
)

const keyPrefix = "booking_session:"

// RedisStore хранит сессии как JSON строки, истекающие вместе с сессией
type RedisStore struct {
	client redis.UniversalClient
	now    func() time.Time
}

// NewRedisStore создает хранилище поверх client
func NewRedisStore(client redis.UniversalClient) *RedisStore {
	return &RedisStore{client: client, now: time.Now}
}

// Save сохраняет сессию с TTL до ExpiresAt
func (s *RedisStore) Save(ctx context.Context, session *domain.BookingSession) error {
	ttl := session.ExpiresAt.Sub(s.now())
	if ttl <= 0 {
		return fmt.Errorf("%w: Save - session id=%s already expired", ErrSessionNotFound, session.ID)
	}

	data, err := json.Marshal(toDocument(session))
	if err != nil {
		return fmt.Errorf("%w: Save - encode session: %v", ErrMarshal, err)
	}

	if err := s.client.Set(ctx, keyPrefix+session.ID, data, ttl).Err(); err != nil {
		return fmt.Errorf("%w: Save - set session id=%s: %v", ErrStore, session.ID, err)
	}
	return nil
}

// Get возвращает сессию по id
func (s *RedisStore) Get(ctx context.Context, id string) (*domain.BookingSession, error) {
	data, err := s.client.Get(ctx, keyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - get session id=%s: %v", ErrStore, id, err)
	}

	var doc sessionDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: Get - decode session id=%s: %v", ErrMarshal, id, err)
	}
	return doc.toDomain(), nil
}

// Delete удаляет сессию, отсутствие сессии не ошибка
func (s *RedisStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, keyPrefix+id).Err(); err != nil {
		return fmt.Errorf("%w: Delete - delete session id=%s: %v", ErrStore, id, err)
	}
	return nil
}
