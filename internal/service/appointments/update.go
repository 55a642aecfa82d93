package appointments

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/domain"
	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/events"
	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/infra/slotlock"
	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/infra/storage"
	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/service/appointments/models"
)

// UpdateAppointment меняет время, услуги или заметки записи в статусе pending или confirmed.
// Новый интервал проверяется на пересечения как новая запись, без учета самой записи.
func (s *Service) UpdateAppointment(
	ctx context.Context,
	caller domain.Identity,
	id string,
	req *models.UpdateAppointmentRequest,
) (*models.AppointmentResponse, error) {
	s.logger.Info("UpdateAppointment: appointment id=%s by caller=%s", id, caller.UserID)

	// 1. Получаем запись и проверяем владельца
	appt, err := s.load(ctx, "UpdateAppointment", id)
	if err != nil {
		return nil, err
	}
	if !caller.IsParty(appt) {
		s.logger.Warn("UpdateAppointment: caller=%s is not a party of appointment id=%s", caller.UserID, id)
		return nil, ErrAccessDenied
	}
	if !appt.CanBeEdited() {
		s.logger.Warn("UpdateAppointment: appointment id=%s is %s", id, appt.Status)
		return nil, fmt.Errorf("%w: %s appointments cannot be edited", ErrInvalidTransition, appt.Status)
	}
	if req.Status != nil && *req.Status != string(appt.Status) {
		s.logger.Warn("UpdateAppointment: ignoring status=%s in edit of appointment id=%s", *req.Status, id)
	}

	// 2. Применяем изменения к копии
	updated, err := s.applyEdit(ctx, appt, req)
	if err != nil {
		s.logger.Warn("UpdateAppointment: %v", err)
		return nil, err
	}
	updated.UpdatedAt = s.timeProvider.Now()

	// 3. Проверяем пересечения без самой записи и сохраняем
	lockKey := domain.DayLockKey(updated.ProviderID, updated.StartTime)
	err = s.locker.WithLock(ctx, lockKey, func(lockCtx context.Context) error {
		existing, err := s.appointmentRepo.GetByProviderForDay(lockCtx, updated.ProviderID, updated.StartTime, domain.ActiveStatuses)
		if err != nil {
			return fmt.Errorf("%w: failed to get appointments: %w", ErrInternal, err)
		}
		if conflict := domain.FindConflict(updated.Interval(), existing, updated.ID); conflict != nil {
			s.logger.Warn("UpdateAppointment: appointment id=%s would overlap appointment=%s", id, conflict.ID)
			return ErrSlotNotAvailable
		}

		if err := s.appointmentRepo.Update(lockCtx, updated); err != nil {
			if errors.Is(err, storage.ErrStatusMismatch) {
				return fmt.Errorf("%w: appointment is no longer editable", ErrInvalidTransition)
			}
			return fmt.Errorf("%w: failed to update appointment: %w", ErrInternal, err)
		}
		return nil
	})

	switch {
	case err == nil:
	case errors.Is(err, ErrSlotNotAvailable):
		s.metrics.IncAppointmentConflicts("update")
		return nil, err
	case errors.Is(err, slotlock.ErrContended):
		s.metrics.IncAppointmentConflicts("update")
		return nil, ErrSlotNotAvailable
	case errors.Is(err, ErrInvalidTransition), errors.Is(err, ErrInternal):
		s.logger.Warn("UpdateAppointment: %v", err)
		return nil, err
	default:
		s.logger.Error("UpdateAppointment: lock key=%s failed: %v", lockKey, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateAppointment: updated appointment id=%s", id)
	s.publisher.Publish(ctx, events.New(events.AppointmentUpdated, updated, updated.UpdatedAt))

	return models.FromDomainAppointment(updated), nil
}

// applyEdit возвращает копию appt с примененными и проверенными полями.
// Мастер, клиент и статус не меняются.
func (s *Service) applyEdit(ctx context.Context, appt *domain.Appointment, req *models.UpdateAppointmentRequest) (*domain.Appointment, error) {
	updated := *appt
	updated.ServiceIDs = append([]string(nil), appt.ServiceIDs...)

	duration := appt.Duration()
	if len(req.ServiceIDs) > 0 {
		if len(req.ServiceIDs) > domain.MaxServicesPerAppointment {
			return nil, fmt.Errorf("%w: at most %d services per appointment", ErrInvalidInput, domain.MaxServicesPerAppointment)
		}

		services, err := s.catalogRepo.GetByIDs(ctx, req.ServiceIDs)
		if err != nil {
			if errors.Is(err, storage.ErrServiceNotFound) {
				return nil, fmt.Errorf("%w: %v", ErrServiceNotFound, err)
			}
			return nil, fmt.Errorf("%w: failed to get services: %v", ErrInternal, err)
		}

		names := make([]string, len(services))
		var (
			minutes int
			price   float64
		)
		for i, svc := range services {
			if svc.ProviderID != appt.ProviderID {
				return nil, fmt.Errorf("%w: service=%s", ErrServiceNotFound, svc.ID)
			}
			if svc.DurationMinutes <= 0 {
				return nil, fmt.Errorf("%w: service=%s has no positive duration", ErrInvalidInput, svc.ID)
			}
			names[i] = svc.Name
			minutes += svc.DurationMinutes
			price += svc.Price
		}

		updated.ServiceIDs = append([]string(nil), req.ServiceIDs...)
		updated.ServiceName = strings.Join(names, ", ")
		updated.Price = price
		duration = time.Duration(minutes) * time.Minute
	}

	if req.StartTime != nil {
		updated.StartTime = *req.StartTime
	}
	updated.EndTime = updated.StartTime.Add(duration)
	if req.EndTime != nil {
		updated.EndTime = *req.EndTime
	}

	if !updated.EndTime.After(updated.StartTime) {
		return nil, fmt.Errorf("%w: endTime must be after startTime", ErrInvalidInput)
	}
	if updated.Duration() != duration {
		return nil, fmt.Errorf("%w: duration %s does not match services (%s)", ErrInvalidInput, updated.Duration(), duration)
	}

	if req.Notes != nil {
		if utf8.RuneCountInString(*req.Notes) > domain.MaxNotesLength {
			return nil, fmt.Errorf("%w: notes exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
		}
		updated.Notes = *req.Notes
	}

	return &updated, nil
}
