package domain

import "time"

// Service услуга мастера
type Service struct {
	ID              string
	ProviderID      string
	Name            string
	Price           float64
	DurationMinutes int
}

// Relationship агрегированная история мастера и клиента
type Relationship struct {
	ID         string
	ProviderID string
	CustomerID string
	VisitCount int
	TotalSpent float64
	LastVisit  time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
