package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/config"
	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/domain"
	appointmentRepo "github.com/MarcelSpeerschneider/beautybookingsystem/internal/infra/storage/appointment"
	businessHoursRepo "github.com/MarcelSpeerschneider/beautybookingsystem/internal/infra/storage/businesshours"
	catalogRepo "github.com/MarcelSpeerschneider/beautybookingsystem/internal/infra/storage/catalog"
	identityRepo "github.com/MarcelSpeerschneider/beautybookingsystem/internal/infra/storage/identity"
	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/infra/storage/memory"
	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/infra/storage/mongostore"
	relationshipRepo "github.com/MarcelSpeerschneider/beautybookingsystem/internal/infra/storage/relationship"
	"github.com/MarcelSpeerschneider/beautybookingsystem/pkg/dbmetrics"
	"github.com/MarcelSpeerschneider/beautybookingsystem/pkg/logger"
	"github.com/MarcelSpeerschneider/beautybookingsystem/pkg/metrics"
	"github.com/MarcelSpeerschneider/beautybookingsystem/pkg/txmanager"
)

// appointmentStore реализуется каждым драйвером
type appointmentStore interface {
	Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error)
	GetByID(ctx context.Context, id string) (*domain.Appointment, error)
	GetByProvider(ctx context.Context, providerID string) ([]*domain.Appointment, error)
	GetByCustomer(ctx context.Context, customerID string) ([]*domain.Appointment, error)
	GetByProviderForDay(ctx context.Context, providerID string, day time.Time, statuses []domain.AppointmentStatus) ([]*domain.Appointment, error)
	GetByCustomerForDay(ctx context.Context, customerID string, day time.Time) ([]*domain.Appointment, error)
	Update(ctx context.Context, appt *domain.Appointment) error
	UpdateStatus(ctx context.Context, id string, from, to domain.AppointmentStatus, updatedAt time.Time) error
	Delete(ctx context.Context, id string) error
}

type businessHoursStore interface {
	GetForDay(ctx context.Context, providerID string, day time.Weekday) (*domain.BusinessHours, error)
	GetWeek(ctx context.Context, providerID string) ([]*domain.BusinessHours, error)
	Upsert(ctx context.Context, hours *domain.BusinessHours) error
}

type catalogStore interface {
	GetByIDs(ctx context.Context, ids []string) ([]*domain.Service, error)
}

type profileStore interface {
	GetProvider(ctx context.Context, id string) (*domain.Profile, error)
	GetCustomer(ctx context.Context, id string) (*domain.Profile, error)
}

type relationshipStore interface {
	Get(ctx context.Context, providerID, customerID string) (*domain.Relationship, error)
	RecordVisit(ctx context.Context, providerID, customerID string, amount float64, visitAt, now time.Time) error
}

// stores репозитории выбранного драйвера
type stores struct {
	appointments  appointmentStore
	hours         businessHoursStore
	catalog       catalogStore
	profiles      profileStore
	relationships relationshipStore

	// только для драйвера postgres
	txManager *txmanager.TransactionManager

	close func()
}

func openStores(ctx context.Context, cfg *config.Config, m *metrics.Metrics, stopMetricsCh <-chan struct{}, log *logger.Logger) (*stores, error) {
	switch cfg.Storage.Driver {
	case config.DriverPostgres:
		return openPostgres(cfg, m, stopMetricsCh, log)
	case config.DriverMongo:
		return openMongo(ctx, cfg, log)
	default:
		log.Warn("Using in-memory storage, data is lost on restart")
		return &stores{
			appointments:  memory.NewAppointmentRepository(),
			hours:         memory.NewBusinessHoursRepository(),
			catalog:       memory.NewCatalogRepository(),
			profiles:      memory.NewProfileRepository(),
			relationships: memory.NewRelationshipRepository(),
			close:         func() {},
		}, nil
	}
}

func openPostgres(cfg *config.Config, m *metrics.Metrics, stopMetricsCh <-chan struct{}, log *logger.Logger) (*stores, error) {
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// m может быть nil, тогда запросы не измеряются
	wrapped := dbmetrics.WrapWithDefault(db, m, cfg.Database.DBName, stopMetricsCh)

	return &stores{
		appointments:  appointmentRepo.NewRepository(wrapped),
		hours:         businessHoursRepo.NewRepository(wrapped),
		catalog:       catalogRepo.NewRepository(wrapped),
		profiles:      identityRepo.NewRepository(wrapped),
		relationships: relationshipRepo.NewRepository(wrapped),
		txManager:     txmanager.NewTransactionManager(wrapped),
		close:         func() { _ = db.Close() },
	}, nil
}

func openMongo(ctx context.Context, cfg *config.Config, log *logger.Logger) (*stores, error) {
	client, err := mongostore.Connect(ctx, cfg.Mongo.URI, time.Duration(cfg.Mongo.Timeout)*time.Second)
	if err != nil {
		return nil, err
	}
	log.Info("Successfully connected to MongoDB (db=%s)", cfg.Mongo.Database)

	db := client.Database(cfg.Mongo.Database)
	return &stores{
		appointments:  mongostore.NewAppointmentRepository(db),
		hours:         mongostore.NewBusinessHoursRepository(db),
		catalog:       mongostore.NewCatalogRepository(db),
		profiles:      mongostore.NewProfileRepository(db),
		relationships: mongostore.NewRelationshipRepository(db),
		close: func() {
			_ = client.Disconnect(context.Background())
		},
	}, nil
}
