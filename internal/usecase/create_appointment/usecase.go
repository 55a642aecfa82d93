package create_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/domain"
	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/events"
	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/infra/slotlock"
	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/infra/storage"
)

// UseCase создает записи без двойного бронирования мастера
type UseCase struct {
	appointmentRepo AppointmentRepository
	catalogRepo     CatalogRepository
	profileRepo     ProfileRepository
	locker          SlotLocker
	publisher       EventPublisher
	metrics         Metrics
	cleaningTime    int
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	catalogRepo CatalogRepository,
	profileRepo ProfileRepository,
	locker SlotLocker,
	publisher EventPublisher,
	metrics Metrics,
	cleaningTimeMinutes int,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		catalogRepo:     catalogRepo,
		profileRepo:     profileRepo,
		locker:          locker,
		publisher:       publisher,
		metrics:         metrics,
		cleaningTime:    cleaningTimeMinutes,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute валидирует и сохраняет запись в статусе pending.
// Проверка пересечений и вставка выполняются под блокировкой дня мастера.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: caller=%s role=%s provider=%s customer=%s services=%v start=%s end=%s",
		req.Caller.UserID, req.Caller.Role, req.ProviderID, req.CustomerID, req.ServiceIDs,
		req.StartTime.Format("2006-01-02 15:04"), req.EndTime.Format("15:04"))

	// 1. Проверяем права доступа
	if err := authorize(req.Caller, req); err != nil {
		uc.logger.Warn("CreateAppointment: caller=%s may not book for provider=%s customer=%s",
			req.Caller.UserID, req.ProviderID, req.CustomerID)
		return nil, err
	}

	// 2. Валидируем входные данные
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	// 3. Проверяем услуги, их владельца и длительность
	services, err := uc.catalogRepo.GetByIDs(ctx, req.ServiceIDs)
	if err != nil {
		if errors.Is(err, storage.ErrServiceNotFound) {
			uc.logger.Warn("CreateAppointment: %v", err)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get services: %v", err)
		return nil, fmt.Errorf("%w: failed to get services: %v", ErrInternal, err)
	}
	if err := validateServices(services, req.ProviderID, req.StartTime, req.EndTime); err != nil {
		uc.logger.Warn("CreateAppointment: %v", err)
		return nil, err
	}

	// 4. Получаем имя клиента для отображения
	customer, err := uc.profileRepo.GetCustomer(ctx, req.CustomerID)
	if err != nil {
		if errors.Is(err, storage.ErrProfileNotFound) {
			uc.logger.Warn("CreateAppointment: customer=%s not found", req.CustomerID)
			return nil, ErrCustomerNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get customer=%s: %v", req.CustomerID, err)
		return nil, fmt.Errorf("%w: failed to get customer: %v", ErrInternal, err)
	}

	now := uc.timeProvider.Now()
	appt := &domain.Appointment{
		ProviderID:          req.ProviderID,
		CustomerID:          req.CustomerID,
		ServiceIDs:          append([]string(nil), req.ServiceIDs...),
		ServiceName:         serviceNames(services),
		CustomerName:        customer.Name,
		Price:               totalPrice(services),
		StartTime:           req.StartTime,
		EndTime:             req.EndTime,
		Status:              domain.StatusPending,
		Notes:               req.Notes,
		CleaningTimeMinutes: uc.cleaningTime,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	// 5. Проверяем пересечения и сохраняем запись
	var created *domain.Appointment
	lockKey := domain.DayLockKey(req.ProviderID, req.StartTime)
	err = uc.locker.WithLock(ctx, lockKey, func(lockCtx context.Context) error {
		existing, err := uc.appointmentRepo.GetByProviderForDay(lockCtx, req.ProviderID, req.StartTime, domain.ActiveStatuses)
		if err != nil {
			return fmt.Errorf("%w: failed to get appointments: %w", ErrInternal, err)
		}

		if conflict := domain.FindConflict(appt.Interval(), existing, ""); conflict != nil {
			uc.logger.Warn("CreateAppointment: requested %s-%s overlaps appointment=%s %s-%s",
				appt.StartTime.Format(domain.TimeFormat), appt.EndTime.Format(domain.TimeFormat),
				conflict.ID, conflict.StartTime.Format(domain.TimeFormat), conflict.EndTime.Format(domain.TimeFormat))
			return ErrSlotNotAvailable
		}

		created, err = uc.appointmentRepo.Create(lockCtx, appt)
		if err != nil {
			return fmt.Errorf("%w: failed to create appointment: %w", ErrInternal, err)
		}
		return nil
	})

	switch {
	case err == nil:
	case errors.Is(err, ErrSlotNotAvailable):
		uc.metrics.IncAppointmentConflicts("create")
		return nil, err
	case errors.Is(err, slotlock.ErrContended):
		uc.logger.Warn("CreateAppointment: concurrent booking won the slot: %v", err)
		uc.metrics.IncAppointmentConflicts("create")
		return nil, ErrSlotNotAvailable
	case errors.Is(err, ErrInternal):
		uc.logger.Error("CreateAppointment: %v", err)
		return nil, err
	default:
		uc.logger.Error("CreateAppointment: lock key=%s failed: %v", lockKey, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	uc.logger.Info("CreateAppointment: created appointment id=%s", created.ID)
	uc.metrics.IncAppointmentsCreated(string(req.Caller.Role))

	// 6. Публикуем событие, ошибки логирует диспетчер
	uc.publisher.Publish(ctx, events.New(events.AppointmentCreated, created, now))

	return &Response{Appointment: created}, nil
}
