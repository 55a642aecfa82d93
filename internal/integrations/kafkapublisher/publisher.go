package kafkapublisher

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/events"
)

// MessageWriter реализуется *kafka.Writer
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Publisher пишет события записей в топик Kafka для внешних потребителей
// (сервисы напоминаний и уведомлений)
type Publisher struct {
	writer MessageWriter
	logger Logger
}

// NewPublisher создает publisher с hash балансировкой, все события
// одной записи попадают в одну партицию
func NewPublisher(brokers []string, topic string, writeTimeout time.Duration, logger Logger) *Publisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		WriteTimeout: writeTimeout,
	}
	return NewPublisherWithWriter(writer, logger)
}

// NewPublisherWithWriter создает publisher поверх существующего writer
func NewPublisherWithWriter(writer MessageWriter, logger Logger) *Publisher {
	return &Publisher{writer: writer, logger: logger}
}

// Handle реализует events.Handler
func (p *Publisher) Handle(ctx context.Context, event events.Event) error {
	value, err := json.Marshal(toPayload(event))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMarshal, err)
	}

	msg := kafka.Message{
		Key:   []byte(event.Appointment.ID),
		Value: value,
		Time:  event.OccurredAt,
		Headers: []kafka.Header{
			{Key: "event_id", Value: []byte(event.ID)},
			{Key: "event_type", Value: []byte(event.Type)},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("%w: event=%s: %v", ErrWrite, event.ID, err)
	}

	p.logger.Info("Publish: event=%s type=%s appointment=%s", event.ID, event.Type, event.Appointment.ID)
	return nil
}

// Close отправляет накопленные сообщения и закрывает writer
func (p *Publisher) Close() error {
	return p.writer.Close()
}
