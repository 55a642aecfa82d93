package get_relationship

import (
	"context"

	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/domain"
)

type RelationshipService interface {
	Get(ctx context.Context, caller domain.Identity, providerID, customerID string) (*domain.Relationship, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
