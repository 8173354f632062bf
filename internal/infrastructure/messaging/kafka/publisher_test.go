package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/yuzvak/stockdecay-service/internal/domain/inventory"
	"github.com/yuzvak/stockdecay-service/internal/domain/simulation"
	"github.com/yuzvak/stockdecay-service/internal/pkg/logger"
)

type recordingWriter struct {
	messages []kafka.Message
	err      error
}

func (w *recordingWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *recordingWriter) Close() error { return nil }

func testEvent() simulation.DayAdvancedEvent {
	return simulation.DayAdvancedEvent{
		FromDay:    4,
		ToDay:      5,
		AdvancedAt: time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC),
		Trigger:    simulation.TriggerScheduler,
		Summary:    inventory.Summary{Total: 3, Expired: 1},
	}
}

func TestPublishDayAdvanced(t *testing.T) {
	writer := &recordingWriter{}
	p := &Publisher{writer: writer, topic: "inventory.day_advanced", log: logger.NewLoggerWithOutput(io.Discard)}

	if err := p.PublishDayAdvanced(context.Background(), testEvent()); err != nil {
		t.Fatalf("publish: %v", err)
	}

	if len(writer.messages) != 1 {
		t.Fatalf("expected 1 message, got %d", len(writer.messages))
	}
	msg := writer.messages[0]
	if string(msg.Key) != "5" {
		t.Fatalf("expected key 5, got %q", msg.Key)
	}

	var env envelope
	if err := json.Unmarshal(msg.Value, &env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if env.EventType != eventTypeDayAdvanced || env.EventID == "" {
		t.Fatalf("unexpected envelope: %+v", env)
	}
	if env.Payload.ToDay != 5 || env.Payload.Summary.Expired != 1 || env.Payload.Trigger != simulation.TriggerScheduler {
		t.Fatalf("unexpected payload: %+v", env.Payload)
	}
}

func TestPublishDayAdvancedWriteError(t *testing.T) {
	writer := &recordingWriter{err: errors.New("broker unavailable")}
	p := &Publisher{writer: writer, topic: "t", log: logger.NewLoggerWithOutput(io.Discard)}

	if err := p.PublishDayAdvanced(context.Background(), testEvent()); err == nil {
		t.Fatal("expected error")
	}
}

func TestNoopPublisher(t *testing.T) {
	var p NoopPublisher
	if err := p.PublishDayAdvanced(context.Background(), testEvent()); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
}
