package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/domain"
	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/infra/storage"
)

// UseCase вычисляет доступные слоты мастера на один день
type UseCase struct {
	appointmentRepo AppointmentRepository
	hoursRepo       BusinessHoursRepository
	catalogRepo     CatalogRepository
	granularity     time.Duration
	logger          Logger
}

// NewUseCase создает калькулятор доступности, нулевой шаг означает 15 минут
func NewUseCase(
	appointmentRepo AppointmentRepository,
	hoursRepo BusinessHoursRepository,
	catalogRepo CatalogRepository,
	granularityMinutes int,
	logger Logger,
) *UseCase {
	if granularityMinutes <= 0 {
		granularityMinutes = domain.DefaultSlotGranularityMinutes
	}
	return &UseCase{
		appointmentRepo: appointmentRepo,
		hoursRepo:       hoursRepo,
		catalogRepo:     catalogRepo,
		granularity:     time.Duration(granularityMinutes) * time.Minute,
		logger:          logger,
	}
}

// Execute возвращает все возможные времена начала за день с признаком доступности.
// Результат носит справочный характер, при создании пересечения проверяются заново.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	day := domain.TruncateToDay(req.Date)
	resp := &Response{
		ProviderID: req.ProviderID,
		Date:       day,
		Slots:      []domain.TimeSlot{},
	}

	// 1. Без услуг нет длительности для записи
	if len(req.ServiceIDs) == 0 {
		return resp, nil
	}

	uc.logger.Info("GetAvailableSlots: provider=%s services=%v date=%s",
		req.ProviderID, req.ServiceIDs, day.Format(domain.DateFormat))

	// 2. Получаем услуги и считаем длительность
	services, err := uc.catalogRepo.GetByIDs(ctx, req.ServiceIDs)
	if err != nil {
		if errors.Is(err, storage.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableSlots: %v", err)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get services: %v", err)
		return nil, fmt.Errorf("%w: failed to get services: %v", ErrInternal, err)
	}
	for _, s := range services {
		if s.ProviderID != req.ProviderID {
			uc.logger.Warn("GetAvailableSlots: service=%s belongs to provider=%s", s.ID, s.ProviderID)
			return nil, ErrServiceNotFound
		}
	}

	duration, ok := totalDuration(services)
	if !ok {
		uc.logger.Warn("GetAvailableSlots: a service without positive duration in services=%v", req.ServiceIDs)
		return resp, nil
	}
	resp.DurationMinutes = int(duration / time.Minute)

	// 3. Получаем часы работы на день недели
	hours, err := uc.hoursRepo.GetForDay(ctx, req.ProviderID, day.Weekday())
	if err != nil {
		if errors.Is(err, storage.ErrBusinessHoursNotFound) {
			uc.logger.Warn("GetAvailableSlots: no business hours for provider=%s on %s", req.ProviderID, day.Weekday())
			return nil, ErrBusinessHoursNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get business hours: %v", err)
		return nil, fmt.Errorf("%w: failed to get business hours: %v", ErrInternal, err)
	}
	if hours.IsClosed() {
		return resp, nil
	}

	window, err := hours.Window(day)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: stored hours of provider=%s are malformed: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: malformed business hours: %v", ErrInternal, err)
	}

	// 4. Генерируем слоты
	slots := generateSlots(window, duration, uc.granularity)
	if len(slots) == 0 {
		return resp, nil
	}

	// 5. Активные записи дня блокируют пересекающиеся слоты
	appointments, err := uc.appointmentRepo.GetByProviderForDay(ctx, req.ProviderID, day, domain.ActiveStatuses)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	markOccupied(slots, duration, appointments)
	markSelected(slots, req.SelectedStart)

	resp.Slots = slots
	return resp, nil
}
