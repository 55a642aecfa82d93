package appointments

import (
	"context"
	"errors"
	"fmt"

	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/domain"
	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/events"
	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/infra/storage"
	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/service/appointments/models"
)

// UpdateStatus переводит запись в новый статус по машине состояний.
// Подтверждение и завершение доступны мастеру, отмена любой из сторон.
// Запись выполняется только при прочитанном здесь статусе, параллельное изменение дает ErrInvalidTransition.
func (s *Service) UpdateStatus(
	ctx context.Context,
	caller domain.Identity,
	id string,
	req *models.UpdateStatusRequest,
) (*models.AppointmentResponse, error) {
	s.logger.Info("UpdateStatus: appointment id=%s to status=%s by caller=%s", id, req.Status, caller.UserID)

	// 1. Разбираем целевой статус
	to, err := domain.ParseStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%q", req.Status)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 2. Получаем текущее состояние
	appt, err := s.load(ctx, "UpdateStatus", id)
	if err != nil {
		return nil, err
	}
	from := appt.Status

	// 3. Проверяем права доступа
	if !caller.CanSetStatus(appt, to) {
		s.logger.Warn("UpdateStatus: caller=%s role=%s may not set status=%s on appointment id=%s",
			caller.UserID, caller.Role, to, id)
		return nil, ErrAccessDenied
	}

	// 4. Проверяем переход
	if !domain.CanTransition(from, to) {
		s.logger.Warn("UpdateStatus: transition %s -> %s not allowed for appointment id=%s", from, to, id)
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}

	// 5. Условная запись
	now := s.timeProvider.Now()
	if err := s.appointmentRepo.UpdateStatus(ctx, id, from, to, now); err != nil {
		if errors.Is(err, storage.ErrStatusMismatch) {
			s.logger.Warn("UpdateStatus: appointment id=%s left status=%s concurrently", id, from)
			return nil, fmt.Errorf("%w: appointment is no longer %s", ErrInvalidTransition, from)
		}
		s.logger.Error("UpdateStatus: repository error for appointment id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	appt.Status = to
	appt.UpdatedAt = now

	s.logger.Info("UpdateStatus: appointment id=%s %s -> %s", id, from, to)
	s.metrics.IncAppointmentTransitions(string(to))
	s.publisher.Publish(ctx, events.StatusChanged(appt, from, now))

	return models.FromDomainAppointment(appt), nil
}

// Delete удаляет запись навсегда. Административный метод, доступен только мастеру записи.
func (s *Service) Delete(ctx context.Context, caller domain.Identity, id string) error {
	s.logger.Info("Delete: appointment id=%s by caller=%s", id, caller.UserID)

	appt, err := s.load(ctx, "Delete", id)
	if err != nil {
		return err
	}

	if !caller.IsOwningProvider(appt) {
		s.logger.Warn("Delete: caller=%s is not the provider of appointment id=%s", caller.UserID, id)
		return ErrAccessDenied
	}

	if err := s.appointmentRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, storage.ErrAppointmentNotFound) {
			return ErrAppointmentNotFound
		}
		s.logger.Error("Delete: repository error for appointment id=%s: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: deleted appointment id=%s", id)
	s.publisher.Publish(ctx, events.New(events.AppointmentDeleted, appt, s.timeProvider.Now()))
	return nil
}
