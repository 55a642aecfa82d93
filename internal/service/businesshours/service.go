package businesshours

import (
	"context"
	"fmt"

	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/domain"
	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/service/businesshours/models"
)

// Service сервис для работы с часами работы мастера
type Service struct {
	repo         BusinessHoursRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый сервис часов работы
func NewService(repo BusinessHoursRepository, logger Logger) *Service {
	return &Service{
		repo:         repo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// GetWeek возвращает сохраненные часы работы мастера.
// Публичный метод, дни без записи пропускаются.
func (s *Service) GetWeek(ctx context.Context, providerID string) (*models.WeekResponse, error) {
	week, err := s.repo.GetWeek(ctx, providerID)
	if err != nil {
		s.logger.Error("GetWeek: repository error provider=%s: %v", providerID, err)
		return nil, fmt.Errorf("%w: GetWeek - repository error: %v", ErrInternal, err)
	}
	return models.FromDomain(providerID, week), nil
}

// Upsert сохраняет часы работы каждого перечисленного дня.
// Доступно только мастеру, которому принадлежат часы.
func (s *Service) Upsert(ctx context.Context, caller domain.Identity, req *models.UpsertRequest) (*models.WeekResponse, error) {
	s.logger.Info("Upsert: provider=%s days=%d by caller=%s", req.ProviderID, len(req.Days), caller.UserID)

	// 1. Проверяем права доступа
	if !caller.IsProvider() || caller.UserID != req.ProviderID {
		s.logger.Warn("Upsert: caller=%s is not provider=%s", caller.UserID, req.ProviderID)
		return nil, ErrAccessDenied
	}

	// 2. Валидируем все дни до записи
	if err := validateDays(req.Days); err != nil {
		s.logger.Warn("Upsert: validation failed: %v", err)
		return nil, err
	}

	// 3. Сохраняем
	now := s.timeProvider.Now()
	for _, day := range req.Days {
		if err := s.repo.Upsert(ctx, day.ToDomain(req.ProviderID, now)); err != nil {
			s.logger.Error("Upsert: repository error provider=%s day=%d: %v", req.ProviderID, day.DayOfWeek, err)
			return nil, fmt.Errorf("%w: Upsert - repository error: %v", ErrInternal, err)
		}
	}

	return s.GetWeek(ctx, req.ProviderID)
}
