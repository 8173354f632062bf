package kafka

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/yuzvak/stockdecay-service/internal/config"
	"github.com/yuzvak/stockdecay-service/internal/domain/simulation"
	"github.com/yuzvak/stockdecay-service/internal/infrastructure/monitoring"
	"github.com/yuzvak/stockdecay-service/internal/pkg/logger"
)

const eventTypeDayAdvanced = "inventory.day_advanced"

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type Publisher struct {
	writer messageWriter
	topic  string
	log    *logger.Logger
}

func NewPublisher(cfg config.KafkaConfig, log *logger.Logger) *Publisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		BatchSize:    10,
		BatchTimeout: 50 * time.Millisecond,
		WriteTimeout: 10 * time.Second,
	}

	return &Publisher{
		writer: writer,
		topic:  cfg.Topic,
		log:    log,
	}
}

type envelope struct {
	EventID   string                      `json:"event_id"`
	EventType string                      `json:"event_type"`
	Timestamp time.Time                   `json:"timestamp"`
	Payload   simulation.DayAdvancedEvent `json:"payload"`
}

func encodeDayAdvanced(event simulation.DayAdvancedEvent) (kafka.Message, error) {
	value, err := json.Marshal(envelope{
		EventID:   uuid.NewString(),
		EventType: eventTypeDayAdvanced,
		Timestamp: event.AdvancedAt,
		Payload:   event,
	})
	if err != nil {
		return kafka.Message{}, err
	}

	return kafka.Message{
		Key:   []byte(strconv.Itoa(event.ToDay)),
		Value: value,
		Time:  event.AdvancedAt,
	}, nil
}

func (p *Publisher) PublishDayAdvanced(ctx context.Context, event simulation.DayAdvancedEvent) error {
	msg, err := encodeDayAdvanced(event)
	if err != nil {
		return err
	}

	err = p.writer.WriteMessages(ctx, msg)
	monitoring.RecordPublish(p.topic, err)
	if err != nil {
		return err
	}

	p.log.Debug("Published day advanced event", "topic", p.topic, "to_day", event.ToDay)
	return nil
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

// NoopPublisher stands in when no brokers are configured.
type NoopPublisher struct{}

func (NoopPublisher) PublishDayAdvanced(context.Context, simulation.DayAdvancedEvent) error {
	return nil
}

func (NoopPublisher) Close() error {
	return nil
}
