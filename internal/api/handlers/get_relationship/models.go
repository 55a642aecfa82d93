package get_relationship

import (
	"time"

	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/domain"
)

// RelationshipResponse история визитов клиента к мастеру
type RelationshipResponse struct {
	ProviderID string    `json:"providerId"`
	CustomerID string    `json:"customerId"`
	VisitCount int       `json:"visitCount"`
	TotalSpent float64   `json:"totalSpent"`
	LastVisit  time.Time `json:"lastVisit"`
}

func FromDomain(rel *domain.Relationship) *RelationshipResponse {
	return &RelationshipResponse{
		ProviderID: rel.ProviderID,
		CustomerID: rel.CustomerID,
		VisitCount: rel.VisitCount,
		TotalSpent: rel.TotalSpent,
		LastVisit:  rel.LastVisit,
	}
}
