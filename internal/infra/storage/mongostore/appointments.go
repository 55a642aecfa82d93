package mongostore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/domain"
	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/infra/storage"
)

// AppointmentRepository записи в виде документов
type AppointmentRepository struct {
	coll *mongo.Collection
}

// NewAppointmentRepository создает репозиторий над коллекцией appointments
func NewAppointmentRepository(db *mongo.Database) *AppointmentRepository {
	return &AppointmentRepository{coll: db.Collection(CollectionAppointments)}
}

// Create вставляет запись, генерируя id если он пустой
func (r *AppointmentRepository) Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	if appt.ID == "" {
		appt.ID = uuid.NewString()
	}
	if appt.UpdatedAt.IsZero() {
		appt.UpdatedAt = appt.CreatedAt
	}

	if _, err := r.coll.InsertOne(ctx, toAppointmentDocument(appt)); err != nil {
		return nil, fmt.Errorf("%w: Create - insert appointment: %v", ErrQuery, err)
	}
	return appt, nil
}

// GetByID возвращает запись по id
func (r *AppointmentRepository) GetByID(ctx context.Context, id string) (*domain.Appointment, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var doc appointmentDocument
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, storage.ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - find appointment: %v", ErrQuery, err)
	}
	return doc.toDomain(), nil
}

// GetByProvider возвращает все записи мастера, новые первыми
func (r *AppointmentRepository) GetByProvider(ctx context.Context, providerID string) ([]*domain.Appointment, error) {
	return r.find(ctx, "GetByProvider", bson.M{"providerId": providerID}, -1)
}

// GetByCustomer возвращает все записи клиента, новые первыми
func (r *AppointmentRepository) GetByCustomer(ctx context.Context, customerID string) ([]*domain.Appointment, error) {
	return r.find(ctx, "GetByCustomer", bson.M{"customerId": customerID}, -1)
}

// GetByProviderForDay возвращает записи мастера, начинающиеся в day, в указанных статусах
func (r *AppointmentRepository) GetByProviderForDay(
	ctx context.Context,
	providerID string,
	day time.Time,
	statuses []domain.AppointmentStatus,
) ([]*domain.Appointment, error) {
	filter := bson.M{
		"providerId": providerID,
		"startTime":  dayFilter(day),
	}
	if len(statuses) > 0 {
		values := make([]string, len(statuses))
		for i, s := range statuses {
			values[i] = string(s)
		}
		filter["status"] = bson.M{"$in": values}
	}
	return r.find(ctx, "GetByProviderForDay", filter, 1)
}

// GetByCustomerForDay возвращает записи клиента, начинающиеся в day
func (r *AppointmentRepository) GetByCustomerForDay(ctx context.Context, customerID string, day time.Time) ([]*domain.Appointment, error) {
	filter := bson.M{
		"customerId": customerID,
		"startTime":  dayFilter(day),
	}
	return r.find(ctx, "GetByCustomerForDay", filter, 1)
}

// Update сохраняет изменяемые поля, пока запись в статусе pending или confirmed
func (r *AppointmentRepository) Update(ctx context.Context, appt *domain.Appointment) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	filter := bson.M{
		"_id":    appt.ID,
		"status": bson.M{"$in": []string{string(domain.StatusPending), string(domain.StatusConfirmed)}},
	}
	update := bson.M{"$set": bson.M{
		"serviceIds":  appt.ServiceIDs,
		"serviceName": appt.ServiceName,
		"price":       appt.Price,
		"startTime":   appt.StartTime,
		"endTime":     appt.EndTime,
		"notes":       appt.Notes,
		"updatedAt":   appt.UpdatedAt,
	}}

	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("%w: Update - update appointment: %v", ErrQuery, err)
	}
	if res.MatchedCount == 0 {
		return storage.ErrStatusMismatch
	}
	return nil
}

// UpdateStatus переводит запись из статуса from в to, если она все еще в from
func (r *AppointmentRepository) UpdateStatus(ctx context.Context, id string, from, to domain.AppointmentStatus, updatedAt time.Time) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": id, "status": string(from)},
		bson.M{"$set": bson.M{"status": string(to), "updatedAt": updatedAt}},
	)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - update appointment: %v", ErrQuery, err)
	}
	if res.MatchedCount == 0 {
		return storage.ErrStatusMismatch
	}
	return nil
}

// Delete удаляет запись навсегда
func (r *AppointmentRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("%w: Delete - delete appointment: %v", ErrQuery, err)
	}
	if res.DeletedCount == 0 {
		return storage.ErrAppointmentNotFound
	}
	return nil
}

func (r *AppointmentRepository) find(ctx context.Context, op string, filter bson.M, order int) ([]*domain.Appointment, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "startTime", Value: order}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - find appointments: %v", ErrQuery, op, err)
	}
	defer cursor.Close(ctx)

	var docs []appointmentDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("%w: %s - decode appointments: %v", ErrDecode, op, err)
	}

	appointments := make([]*domain.Appointment, 0, len(docs))
	for _, doc := range docs {
		appointments = append(appointments, doc.toDomain())
	}
	return appointments, nil
}

func dayFilter(day time.Time) bson.M {
	start := domain.TruncateToDay(day)
	return bson.M{"$gte": start, "$lt": start.AddDate(0, 0, 1)}
}
