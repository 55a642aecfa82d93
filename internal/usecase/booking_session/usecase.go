package booking_session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/domain"
	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/infra/cache/bookingsession"
	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/infra/storage"
	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/usecase/create_appointment"
	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/usecase/get_available_slots"
)

// UseCase процесс бронирования: выбор услуг, выбор слота, подтверждение.
// Выбор хранится в сессии до успешного подтверждения, при ошибке подтверждения сессия сохраняется.
type UseCase struct {
	store        SessionStore
	slots        SlotCalculator
	creator      AppointmentCreator
	profileRepo  ProfileRepository
	catalogRepo  CatalogRepository
	ttl          time.Duration
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает процесс бронирования, нулевой ttl означает 30 минут
func NewUseCase(
	store SessionStore,
	slots SlotCalculator,
	creator AppointmentCreator,
	profileRepo ProfileRepository,
	catalogRepo CatalogRepository,
	ttl time.Duration,
	logger Logger,
) *UseCase {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &UseCase{
		store:        store,
		slots:        slots,
		creator:      creator,
		profileRepo:  profileRepo,
		catalogRepo:  catalogRepo,
		ttl:          ttl,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Start открывает сессию для пользователя
func (uc *UseCase) Start(ctx context.Context, caller domain.Identity, req *StartRequest) (*domain.BookingSession, error) {
	// 1. Определяем, кто кого записывает
	var customerID string
	switch {
	case caller.IsCustomer():
		customerID = caller.UserID
	case caller.IsProvider():
		if req.CustomerID == "" {
			return nil, fmt.Errorf("%w: customerId is required when a provider books", ErrInvalidInput)
		}
		customerID = req.CustomerID
	default:
		uc.logger.Warn("StartSession: anonymous caller")
		return nil, ErrAccessDenied
	}

	// 2. Получаем имя клиента для экрана подтверждения
	customer, err := uc.profileRepo.GetCustomer(ctx, customerID)
	if err != nil {
		if errors.Is(err, storage.ErrProfileNotFound) {
			uc.logger.Warn("StartSession: customer=%s not found", customerID)
			return nil, ErrCustomerNotFound
		}
		uc.logger.Error("StartSession: failed to get customer=%s: %v", customerID, err)
		return nil, fmt.Errorf("%w: failed to get customer: %v", ErrInternal, err)
	}

	session := &domain.BookingSession{
		ID:           uuid.NewString(),
		CallerID:     caller.UserID,
		CallerRole:   caller.Role,
		CustomerID:   customerID,
		CustomerName: customer.Name,
		ExpiresAt:    uc.timeProvider.Now().Add(uc.ttl),
	}

	if err := uc.save(ctx, "StartSession", session); err != nil {
		return nil, err
	}

	uc.logger.Info("StartSession: session id=%s caller=%s customer=%s", session.ID, caller.UserID, customerID)
	return session, nil
}

// SelectServices сохраняет мастера и услуги и сбрасывает выбранный ранее слот
func (uc *UseCase) SelectServices(ctx context.Context, caller domain.Identity, id string, req *SelectServicesRequest) (*domain.BookingSession, error) {
	session, err := uc.load(ctx, "SelectServices", caller, id)
	if err != nil {
		return nil, err
	}

	if req.ProviderID == "" || len(req.ServiceIDs) == 0 {
		return nil, fmt.Errorf("%w: providerId and serviceIds are required", ErrInvalidInput)
	}
	if caller.IsProvider() && req.ProviderID != caller.UserID {
		return nil, fmt.Errorf("%w: providers book only for themselves", ErrInvalidInput)
	}

	session.SelectedProviderID = req.ProviderID
	session.SelectedServiceIDs = append([]string(nil), req.ServiceIDs...)
	session.SelectedSlot = nil

	if err := uc.save(ctx, "SelectServices", session); err != nil {
		return nil, err
	}
	return session, nil
}

// Slots возвращает доступность даты для выбора в сессии
func (uc *UseCase) Slots(ctx context.Context, caller domain.Identity, id string, date time.Time) (*SlotsResponse, error) {
	session, err := uc.load(ctx, "Slots", caller, id)
	if err != nil {
		return nil, err
	}
	if session.SelectedProviderID == "" {
		return nil, fmt.Errorf("%w: select services first", ErrIncomplete)
	}

	resp, err := uc.slots.Execute(ctx, &get_available_slots.Request{
		ProviderID:    session.SelectedProviderID,
		ServiceIDs:    session.SelectedServiceIDs,
		Date:          date,
		SelectedStart: session.SelectedSlot,
	})
	if err != nil {
		return nil, err
	}
	return &SlotsResponse{Session: session, Slots: resp.Slots}, nil
}

// SelectSlot сохраняет выбранное время, если оно сейчас доступно
func (uc *UseCase) SelectSlot(ctx context.Context, caller domain.Identity, id string, req *SelectSlotRequest) (*domain.BookingSession, error) {
	session, err := uc.load(ctx, "SelectSlot", caller, id)
	if err != nil {
		return nil, err
	}
	if session.SelectedProviderID == "" {
		return nil, fmt.Errorf("%w: select services first", ErrIncomplete)
	}
	if req.Start.IsZero() {
		return nil, fmt.Errorf("%w: start is required", ErrInvalidInput)
	}

	resp, err := uc.slots.Execute(ctx, &get_available_slots.Request{
		ProviderID: session.SelectedProviderID,
		ServiceIDs: session.SelectedServiceIDs,
		Date:       req.Start,
	})
	if err != nil {
		return nil, err
	}
	if !containsAvailable(resp.Slots, req.Start) {
		uc.logger.Warn("SelectSlot: session id=%s start=%s is not an available slot", id, req.Start.Format("2006-01-02 15:04"))
		return nil, ErrSlotNotAvailable
	}

	start := req.Start
	session.SelectedSlot = &start
	session.Notes = req.Notes

	if err := uc.save(ctx, "SelectSlot", session); err != nil {
		return nil, err
	}
	return session, nil
}

// Confirm создает запись по выбору. Сессия удаляется только при успешной записи.
func (uc *UseCase) Confirm(ctx context.Context, caller domain.Identity, id string) (*domain.Appointment, error) {
	session, err := uc.load(ctx, "Confirm", caller, id)
	if err != nil {
		return nil, err
	}
	if !session.IsReadyToConfirm() {
		return nil, ErrIncomplete
	}

	services, err := uc.catalogRepo.GetByIDs(ctx, session.SelectedServiceIDs)
	if err != nil {
		if errors.Is(err, storage.ErrServiceNotFound) {
			return nil, fmt.Errorf("%w: %v", create_appointment.ErrServiceNotFound, err)
		}
		return nil, fmt.Errorf("%w: failed to get services: %v", ErrInternal, err)
	}
	minutes := 0
	for _, s := range services {
		minutes += s.DurationMinutes
	}

	start := *session.SelectedSlot
	resp, err := uc.creator.Execute(ctx, &create_appointment.Request{
		Caller:     caller,
		ProviderID: session.SelectedProviderID,
		CustomerID: session.CustomerID,
		ServiceIDs: session.SelectedServiceIDs,
		StartTime:  start,
		EndTime:    start.Add(time.Duration(minutes) * time.Minute),
		Notes:      session.Notes,
	})
	if err != nil {
		uc.logger.Warn("Confirm: session id=%s kept after failed booking: %v", id, err)
		return nil, err
	}

	if err := uc.store.Delete(ctx, id); err != nil {
		uc.logger.Error("Confirm: failed to delete session id=%s: %v", id, err)
	}

	uc.logger.Info("Confirm: session id=%s booked appointment id=%s", id, resp.Appointment.ID)
	return resp.Appointment, nil
}

// Cancel удаляет сессию
func (uc *UseCase) Cancel(ctx context.Context, caller domain.Identity, id string) error {
	if _, err := uc.load(ctx, "Cancel", caller, id); err != nil {
		return err
	}
	if err := uc.store.Delete(ctx, id); err != nil {
		uc.logger.Error("Cancel: failed to delete session id=%s: %v", id, err)
		return fmt.Errorf("%w: failed to delete session: %v", ErrInternal, err)
	}
	return nil
}

// load возвращает сессию пользователя, чужие сессии выглядят как отсутствующие
func (uc *UseCase) load(ctx context.Context, op string, caller domain.Identity, id string) (*domain.BookingSession, error) {
	session, err := uc.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, bookingsession.ErrSessionNotFound) {
			return nil, ErrSessionNotFound
		}
		uc.logger.Error("%s: failed to get session id=%s: %v", op, id, err)
		return nil, fmt.Errorf("%w: failed to get session: %v", ErrInternal, err)
	}

	if !caller.IsAuthenticated() || session.CallerID != caller.UserID || session.CallerRole != caller.Role {
		uc.logger.Warn("%s: caller=%s does not own session id=%s", op, caller.UserID, id)
		return nil, ErrSessionNotFound
	}
	return session, nil
}

func (uc *UseCase) save(ctx context.Context, op string, session *domain.BookingSession) error {
	if err := uc.store.Save(ctx, session); err != nil {
		if errors.Is(err, bookingsession.ErrSessionNotFound) {
			return ErrSessionNotFound
		}
		uc.logger.Error("%s: failed to save session id=%s: %v", op, session.ID, err)
		return fmt.Errorf("%w: failed to save session: %v", ErrInternal, err)
	}
	return nil
}

func containsAvailable(slots []domain.TimeSlot, start time.Time) bool {
	for _, s := range slots {
		if s.Start.Equal(start) {
			return s.Available
		}
	}
	return false
}
