package identity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/domain"
	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/infra/storage"
)

// Service определяет роль пользователя
type Service struct {
	repo    ProfileRepository
	timeout time.Duration
	logger  Logger
}

// NewService создает сервис с таймаутом, ноль означает 5 секунд по умолчанию
func NewService(repo ProfileRepository, timeout time.Duration, logger Logger) *Service {
	if timeout <= 0 {
		timeout = domain.DefaultIdentityTimeoutSeconds * time.Second
	}
	return &Service{
		repo:    repo,
		timeout: timeout,
		logger:  logger,
	}
}

// Resolve определяет роль callerID.
// Пустой id означает анонимного пользователя. Профиль мастера важнее профиля клиента с тем же id.
// При таймауте или ошибке поиска возвращается ErrIdentityUnavailable.
func (s *Service) Resolve(ctx context.Context, callerID string) (domain.Identity, error) {
	if callerID == "" {
		return domain.Anonymous(), nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	// 1. Ищем среди мастеров
	_, err := s.repo.GetProvider(ctx, callerID)
	switch {
	case err == nil:
		return domain.ProviderIdentity(callerID), nil
	case !errors.Is(err, storage.ErrProfileNotFound):
		return domain.Anonymous(), s.unavailable(ctx, callerID, err)
	}

	// 2. Ищем среди клиентов
	_, err = s.repo.GetCustomer(ctx, callerID)
	switch {
	case err == nil:
		return domain.CustomerIdentity(callerID), nil
	case !errors.Is(err, storage.ErrProfileNotFound):
		return domain.Anonymous(), s.unavailable(ctx, callerID, err)
	}

	s.logger.Warn("Resolve: caller=%s is neither provider nor customer", callerID)
	return domain.Anonymous(), ErrUnknownCaller
}

func (s *Service) unavailable(ctx context.Context, callerID string, err error) error {
	if ctx.Err() != nil {
		s.logger.Warn("Resolve: lookup of caller=%s timed out after %s", callerID, s.timeout)
		return fmt.Errorf("%w: Resolve - timeout: %v", ErrIdentityUnavailable, ctx.Err())
	}
	s.logger.Error("Resolve: lookup of caller=%s failed: %v", callerID, err)
	return fmt.Errorf("%w: Resolve - lookup failed: %v", ErrIdentityUnavailable, err)
}
