// Package events publishes booking lifecycle events.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/yatra/backend/internal/domain"
)

// messageWriter is the part of *kafka.Writer the producer uses.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes booking events to a single topic, keyed by booking
// ID so every event of one booking lands on the same partition.
type KafkaPublisher struct {
	topic  string
	writer messageWriter
}

// NewKafkaPublisher creates an asynchronous producer for topic. Publish only
// enqueues; delivery failures surface through logCompletion.
func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		BatchTimeout:           50 * time.Millisecond,
		WriteTimeout:           5 * time.Second,
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
		Async:                  true,
		Completion:             logCompletion,
	}
	return &KafkaPublisher{topic: topic, writer: writer}
}

func logCompletion(messages []kafka.Message, err error) {
	if err == nil {
		return
	}
	for _, m := range messages {
		log.Printf("⚠️  Failed to deliver event for booking %s to %s: %v", m.Key, m.Topic, err)
	}
}

// Publish serialises event as JSON and writes it.
func (p *KafkaPublisher) Publish(ctx context.Context, event domain.BookingEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(event.BookingID),
		Value: data,
		Time:  event.OccurredAt,
		Headers: []kafka.Header{
			{Key: "type", Value: []byte(event.Type)},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to write message to kafka: %w", err)
	}

	log.Printf("📨 Queued %s for booking %s to %s", event.Type, event.BookingID, p.topic)
	return nil
}

// Close flushes and closes the underlying writer.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NopPublisher drops every event. It is used when no brokers are configured.
type NopPublisher struct{}

// Publish implements the publisher interface and does nothing.
func (NopPublisher) Publish(context.Context, domain.BookingEvent) error { return nil }

// Close does nothing.
func (NopPublisher) Close() error { return nil }
