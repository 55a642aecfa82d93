package mongostore

import (
	"time"

	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/domain"
	"github.com/MarcelSpeerschneider/beautybookingsystem/pkg/types"
)

type appointmentDocument struct {
	ID                  string    `bson:"_id"`
	ProviderID          string    `bson:"providerId"`
	CustomerID          string    `bson:"customerId"`
	ServiceIDs          []string  `bson:"serviceIds"`
	ServiceName         string    `bson:"serviceName"`
	CustomerName        string    `bson:"customerName"`
	Price               float64   `bson:"price"`
	StartTime           time.Time `bson:"startTime"`
	EndTime             time.Time `bson:"endTime"`
	Status              string    `bson:"status"`
	Notes               string    `bson:"notes"`
	CleaningTimeMinutes int       `bson:"cleaningTime"`
	CreatedAt           time.Time `bson:"createdAt"`
	UpdatedAt           time.Time `bson:"updatedAt"`
}

func toAppointmentDocument(a *domain.Appointment) appointmentDocument {
	return appointmentDocument{
		ID:                  a.ID,
		ProviderID:          a.ProviderID,
		CustomerID:          a.CustomerID,
		ServiceIDs:          a.ServiceIDs,
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

func (d appointmentDocument) toDomain() *domain.Appointment {
	return &domain.Appointment{
		ID:                  d.ID,
		ProviderID:          d.ProviderID,
		CustomerID:          d.CustomerID,
		ServiceIDs:          d.ServiceIDs,
		ServiceName:         d.ServiceName,
		CustomerName:        d.CustomerName,
		Price:               d.Price,
		StartTime:           d.StartTime.UTC(),
		EndTime:             d.EndTime.UTC(),
		Status:              domain.AppointmentStatus(d.Status),
		Notes:               d.Notes,
		CleaningTimeMinutes: d.CleaningTimeMinutes,
		CreatedAt:           d.CreatedAt.UTC(),
		UpdatedAt:           d.UpdatedAt.UTC(),
	}
}

type businessHoursDocument struct {
	ProviderID  string    `bson:"providerId"`
	DayOfWeek   int       `bson:"dayOfWeek"`
	OpeningTime string    `bson:"openingTime"`
	ClosingTime string    `bson:"closingTime"`
	UpdatedAt   time.Time `bson:"updatedAt"`
}

func (d businessHoursDocument) toDomain() *domain.BusinessHours {
	return &domain.BusinessHours{
		ProviderID:  d.ProviderID,
		DayOfWeek:   time.Weekday(d.DayOfWeek),
		OpeningTime: types.TimeString(d.OpeningTime),
		ClosingTime: types.TimeString(d.ClosingTime),
		UpdatedAt:   d.UpdatedAt.UTC(),
	}
}

type serviceDocument struct {
	ID              string  `bson:"_id"`
	ProviderID      string  `bson:"providerId"`
	Name            string  `bson:"name"`
	Price           float64 `bson:"price"`
	DurationMinutes int     `bson:"duration"`
}

func (d serviceDocument) toDomain() *domain.Service {
	return &domain.Service{
		ID:              d.ID,
		ProviderID:      d.ProviderID,
		Name:            d.Name,
		Price:           d.Price,
		DurationMinutes: d.DurationMinutes,
	}
}

type relationshipDocument struct {
	ID         string    `bson:"_id"`
	ProviderID string    `bson:"providerId"`
	CustomerID string    `bson:"customerId"`
	VisitCount int       `bson:"visitCount"`
	TotalSpent float64   `bson:"totalSpent"`
	LastVisit  time.Time `bson:"lastVisit"`
	CreatedAt  time.Time `bson:"createdAt"`
	UpdatedAt  time.Time `bson:"updatedAt"`
}

func (d relationshipDocument) toDomain() *domain.Relationship {
	return &domain.Relationship{
		ID:         d.ID,
		ProviderID: d.ProviderID,
		CustomerID: d.CustomerID,
		VisitCount: d.VisitCount,
		TotalSpent: d.TotalSpent,
		LastVisit:  d.LastVisit.UTC(),
		CreatedAt:  d.CreatedAt.UTC(),
		UpdatedAt:  d.UpdatedAt.UTC(),
	}
}

type profileDocument struct {
	ID   string `bson:"_id"`
	Role string `bson:"role"`
	Name string `bson:"name"`
}
