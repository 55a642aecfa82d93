package booking_session

import (
	"context"
	"time"

	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/domain"
	bookingSession "github.com/MarcelSpeerschneider/beautybookingsystem/internal/usecase/booking_session"
)

type BookingSessionUseCase interface {
	Start(ctx context.Context, caller domain.Identity, req *bookingSession.StartRequest) (*domain.BookingSession, error)
	SelectServices(ctx context.Context, caller domain.Identity, id string, req *bookingSession.SelectServicesRequest) (*domain.BookingSession, error)
	SelectSlot(ctx context.Context, caller domain.Identity, id string, req *bookingSession.SelectSlotRequest) (*domain.BookingSession, error)
	Slots(ctx context.Context, caller domain.Identity, id string, date time.Time) (*bookingSession.SlotsResponse, error)
	Confirm(ctx context.Context, caller domain.Identity, id string) (*domain.Appointment, error)
	Cancel(ctx context.Context, caller domain.Identity, id string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
