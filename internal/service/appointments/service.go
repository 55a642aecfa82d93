package appointments

import (
	"context"
	"errors"
	"fmt"

	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/domain"
	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/infra/storage"
	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/service/appointments/models"
)

// Service сервис для работы с существующими записями
type Service struct {
	appointmentRepo AppointmentRepository
	catalogRepo     CatalogRepository
	locker          SlotLocker
	publisher       EventPublisher
	metrics         Metrics
	timeProvider    TimeProvider
	logger          Logger
}

// NewService создает новый сервис записей
func NewService(
	appointmentRepo AppointmentRepository,
	catalogRepo CatalogRepository,
	locker SlotLocker,
	publisher EventPublisher,
	metrics Metrics,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		catalogRepo:     catalogRepo,
		locker:          locker,
		publisher:       publisher,
		metrics:         metrics,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// GetByID возвращает запись ее мастеру или клиенту.
// Остальные получают ErrAppointmentNotFound, существование записи не раскрывается.
func (s *Service) GetByID(ctx context.Context, caller domain.Identity, id string) (*models.AppointmentResponse, error) {
	appt, err := s.load(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	if !caller.IsParty(appt) {
		s.logger.Warn("GetByID: caller=%s is not a party of appointment id=%s", caller.UserID, id)
		return nil, ErrAppointmentNotFound
	}

	return models.FromDomainAppointment(appt), nil
}

// GetByProvider возвращает все записи мастера, доступно только самому мастеру
func (s *Service) GetByProvider(ctx context.Context, caller domain.Identity, providerID string) (*models.AppointmentListResponse, error) {
	if !caller.IsProvider() || caller.UserID != providerID {
		s.logger.Warn("GetByProvider: caller=%s role=%s may not list provider=%s", caller.UserID, caller.Role, providerID)
		return models.FromDomainAppointmentList(nil), nil
	}

	list, err := s.appointmentRepo.GetByProvider(ctx, providerID)
	if err != nil {
		s.logger.Error("GetByProvider: repository error for provider=%s: %v", providerID, err)
		return nil, fmt.Errorf("%w: GetByProvider - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetByProvider: fetched %d appointments for provider=%s", len(list), providerID)
	return models.FromDomainAppointmentList(list), nil
}

// GetByCustomer возвращает записи клиента.
// Клиент видит все, мастер только записи к себе.
func (s *Service) GetByCustomer(ctx context.Context, caller domain.Identity, customerID string) (*models.AppointmentListResponse, error) {
	if !caller.IsAuthenticated() || (caller.IsCustomer() && caller.UserID != customerID) {
		s.logger.Warn("GetByCustomer: caller=%s role=%s may not list customer=%s", caller.UserID, caller.Role, customerID)
		return models.FromDomainAppointmentList(nil), nil
	}

	list, err := s.appointmentRepo.GetByCustomer(ctx, customerID)
	if err != nil {
		s.logger.Error("GetByCustomer: repository error for customer=%s: %v", customerID, err)
		return nil, fmt.Errorf("%w: GetByCustomer - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainAppointmentList(visibleTo(caller, list)), nil
}

// GetByUserAndDate возвращает записи пользователя на один день,
// как мастера или как клиента в зависимости от AsProvider
func (s *Service) GetByUserAndDate(ctx context.Context, caller domain.Identity, req *models.UserAppointmentsRequest) (*models.AppointmentListResponse, error) {
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	entitled := caller.UserID == req.UserID &&
		((req.AsProvider && caller.IsProvider()) || (!req.AsProvider && caller.IsCustomer()))
	if !entitled {
		s.logger.Warn("GetByUserAndDate: caller=%s role=%s may not list user=%s asProvider=%t",
			caller.UserID, caller.Role, req.UserID, req.AsProvider)
		return models.FromDomainAppointmentList(nil), nil
	}

	var (
		list []*domain.Appointment
		err  error
	)
	if req.AsProvider {
		list, err = s.appointmentRepo.GetByProviderForDay(ctx, req.UserID, req.Date, nil)
	} else {
		list, err = s.appointmentRepo.GetByCustomerForDay(ctx, req.UserID, req.Date)
	}
	if err != nil {
		s.logger.Error("GetByUserAndDate: repository error for user=%s date=%s: %v",
			req.UserID, req.Date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: GetByUserAndDate - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainAppointmentList(list), nil
}

func (s *Service) load(ctx context.Context, op, id string) (*domain.Appointment, error) {
	appt, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrAppointmentNotFound) {
			s.logger.Warn("%s: appointment id=%s not found", op, id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("%s: repository error for appointment id=%s: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return appt, nil
}

func visibleTo(caller domain.Identity, list []*domain.Appointment) []*domain.Appointment {
	result := make([]*domain.Appointment, 0, len(list))
	for _, a := range list {
		if caller.IsParty(a) {
			result = append(result, a)
		}
	}
	return result
}
