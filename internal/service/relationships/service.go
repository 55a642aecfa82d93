package relationships

import (
	"context"
	"errors"
	"fmt"

	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/domain"
	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/events"
	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/infra/storage"
)

// Service сервис для работы с денормализованной историей мастер-клиент
type Service struct {
	repo         RelationshipRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый сервис связей
func NewService(repo RelationshipRepository, logger Logger) *Service {
	return &Service{
		repo:         repo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Handle реализует events.Handler.
// Созданная и завершенная запись считаются визитом каждая.
func (s *Service) Handle(ctx context.Context, event events.Event) error {
	switch event.Type {
	case events.AppointmentCreated:
	case events.AppointmentStatusChanged:
		if event.Appointment.Status != domain.StatusCompleted {
			return nil
		}
	default:
		return nil
	}

	return s.RecordVisit(ctx, &event.Appointment)
}

// RecordVisit добавляет визит клиента записи к ее мастеру
func (s *Service) RecordVisit(ctx context.Context, appt *domain.Appointment) error {
	err := s.repo.RecordVisit(ctx, appt.ProviderID, appt.CustomerID, appt.Price, appt.StartTime, s.timeProvider.Now())
	if err != nil {
		return fmt.Errorf("%w: RecordVisit - provider=%s customer=%s: %v", ErrInternal, appt.ProviderID, appt.CustomerID, err)
	}

	s.logger.Info("RecordVisit: provider=%s customer=%s appointment=%s amount=%.2f",
		appt.ProviderID, appt.CustomerID, appt.ID, appt.Price)
	return nil
}

// Get возвращает связь любой из двух ее сторон
func (s *Service) Get(ctx context.Context, caller domain.Identity, providerID, customerID string) (*domain.Relationship, error) {
	isParty := (caller.IsProvider() && caller.UserID == providerID) ||
		(caller.IsCustomer() && caller.UserID == customerID)
	if !isParty {
		s.logger.Warn("Get: access denied for caller=%s to provider=%s customer=%s", caller.UserID, providerID, customerID)
		return nil, ErrAccessDenied
	}

	rel, err := s.repo.Get(ctx, providerID, customerID)
	if err != nil {
		if errors.Is(err, storage.ErrRelationshipNotFound) {
			return nil, ErrRelationshipNotFound
		}
		s.logger.Error("Get: repository error provider=%s customer=%s: %v", providerID, customerID, err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}

	return rel, nil
}
