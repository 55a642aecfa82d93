package models

import (
	"time"

	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/domain"
)

// UpdateStatusRequest целевой статус перехода
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateAppointmentRequest изменение записи в статусе pending или confirmed.
// Все поля опциональны - обновляются только переданные, время окончания без значения вычисляется по началу и услугам.
// Мастер, клиент и статус здесь не меняются.
type UpdateAppointmentRequest struct {
	ServiceIDs []string
	StartTime  *time.Time
	EndTime    *time.Time
	Notes      *string
	Status     *string
}

// UserAppointmentsRequest записи пользователя на один день
type UserAppointmentsRequest struct {
	UserID     string
	Date       time.Time
	AsProvider bool
}

// AppointmentResponse запись в ответе клиенту
type AppointmentResponse struct {
	ID                  string    `json:"id"`
	ProviderID          string    `json:"providerId"`
	CustomerID          string    `json:"customerId"`
	ServiceIDs          []string  `json:"serviceIds"`
	ServiceName         string    `json:"serviceName"`
	CustomerName        string    `json:"customerName"`
	Price               float64   `json:"price"`
	StartTime           time.Time `json:"startTime"`
	EndTime             time.Time `json:"endTime"`
	Status              string    `json:"status"`
	Notes               string    `json:"notes,omitempty"`
	CleaningTimeMinutes int       `json:"cleaningTimeMinutes"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

// AppointmentListResponse список записей
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
}

// FromDomainAppointment конвертирует domain модель в DTO
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	if a == nil {
		return nil
	}

	serviceIDs := a.ServiceIDs
	if serviceIDs == nil {
		serviceIDs = []string{}
	}

	return &AppointmentResponse{
		ID:                  a.ID,
		ProviderID:          a.ProviderID,
		CustomerID:          a.CustomerID,
		ServiceIDs:          serviceIDs,
		ServiceName:         a.ServiceName,
		CustomerName:        a.CustomerName,
		Price:               a.Price,
		StartTime:           a.StartTime,
		EndTime:             a.EndTime,
		Status:              string(a.Status),
		Notes:               a.Notes,
		CleaningTimeMinutes: a.CleaningTimeMinutes,
		CreatedAt:           a.CreatedAt,
		UpdatedAt:           a.UpdatedAt,
	}
}

// FromDomainAppointmentList конвертирует список, никогда не возвращает nil
func FromDomainAppointmentList(list []*domain.Appointment) *AppointmentListResponse {
	result := make([]AppointmentResponse, 0, len(list))
	for _, a := range list {
		result = append(result, *FromDomainAppointment(a))
	}
	return &AppointmentListResponse{Appointments: result}
}
