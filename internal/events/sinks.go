package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-redis/redis/v8"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-booking/internal/logger"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// --------------------------------------------------
// Log
// --------------------------------------------------

type LogSink struct {
	log *zap.Logger
}

func NewLogSink(log *zap.Logger) *LogSink {
	return &LogSink{log: logger.OrNop(log)}
}

func (s *LogSink) Name() string { return "log" }

func (s *LogSink) Publish(ctx context.Context, ev Event) error {
	s.log.Info("event",
		zap.String("event_id", ev.ID),
		zap.String("event_type", string(ev.Type)),
		zap.Uint("barber_id", ev.BarberID),
		zap.String("aggregate", ev.Aggregate),
		zap.Uint("aggregate_id", ev.AggregateID),
		zap.Any("payload", ev.Payload),
	)
	return nil
}

// --------------------------------------------------
// Audit (event_logs table)
// --------------------------------------------------

type EventLogStore interface {
	AppendEventLog(ctx context.Context, entry *models.EventLog) error
}

type AuditSink struct {
	store EventLogStore
}

func NewAuditSink(store EventLogStore) *AuditSink {
	return &AuditSink{store: store}
}

func (s *AuditSink) Name() string { return "audit" }

func (s *AuditSink) Publish(ctx context.Context, ev Event) error {
	var payload string
	if ev.Payload != nil {
		b, err := json.Marshal(ev.Payload)
		if err != nil {
			return fmt.Errorf("audit: marshal payload: %w", err)
		}
		payload = string(b)
	}

	return s.store.AppendEventLog(ctx, &models.EventLog{
		EventID:     ev.ID,
		Type:        string(ev.Type),
		BarberID:    ev.BarberID,
		Aggregate:   ev.Aggregate,
		AggregateID: ev.AggregateID,
		Payload:     payload,
	})
}

// --------------------------------------------------
// Redis stream
// --------------------------------------------------

type StreamAdder interface {
	XAdd(ctx context.Context, a *redis.XAddArgs) *redis.StringCmd
}

type RedisSink struct {
	client StreamAdder
	stream string
	maxLen int64
}

func NewRedisSink(client StreamAdder, stream string, maxLen int64) *RedisSink {
	return &RedisSink{client: client, stream: stream, maxLen: maxLen}
}

func (s *RedisSink) Name() string { return "redis" }

func (s *RedisSink) Publish(ctx context.Context, ev Event) error {
	body, err := ev.Marshal()
	if err != nil {
		return err
	}

	return s.client.XAdd(ctx, &redis.XAddArgs{
		Stream: s.stream,
		MaxLen: s.maxLen,
		Approx: true,
		Values: map[string]interface{}{
			"event_id":   ev.ID,
			"event_type": string(ev.Type),
			"body":       body,
		},
	}).Err()
}

func (s *RedisSink) Close() error {
	if c, ok := s.client.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}

// --------------------------------------------------
// Kafka
// --------------------------------------------------

type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaSink publishes each event to the topic named after its type, keyed by
// aggregate so one booking's events stay ordered within a partition.
type KafkaSink struct {
	writer MessageWriter
}

func NewKafkaWriter(brokers []string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
	}
}

func NewKafkaSink(w MessageWriter) *KafkaSink {
	return &KafkaSink{writer: w}
}

func (s *KafkaSink) Name() string { return "kafka" }

func (s *KafkaSink) Publish(ctx context.Context, ev Event) error {
	body, err := ev.Marshal()
	if err != nil {
		return err
	}

	return s.writer.WriteMessages(ctx, kafka.Message{
		Topic: string(ev.Type),
		Key:   []byte(fmt.Sprintf("%s-%d", ev.Aggregate, ev.AggregateID)),
		Value: body,
		Headers: []kafka.Header{
			{Key: "event_id", Value: []byte(ev.ID)},
			{Key: "event_type", Value: []byte(ev.Type)},
		},
	})
}

func (s *KafkaSink) Close() error {
	return s.writer.Close()
}
