package events

import (
	"context"
	"encoding/json"
	"time"

	"uploader/internal/models"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
)

const Topic = "catalog-sync-events"

// BatchEvent is emitted once per completed batch upload, success or not.
type BatchEvent struct {
	ID        string              `json:"id"`
	Entity    string              `json:"entity"`
	Total     int                 `json:"total"`
	Failed    int                 `json:"failed"`
	Results   []models.ItemResult `json:"results"`
	Timestamp time.Time           `json:"timestamp"`
}

// Publisher writes batch events to Kafka. Publishing is best effort: a
// broker outage must never fail an upload that already went through.
type Publisher struct {
	writer *kafka.Writer
	log    *logrus.Entry
}

// New returns a disabled publisher when no brokers are configured.
func New(brokers string, log *logrus.Logger) *Publisher {
	p := &Publisher{log: log.WithField("component", "events")}
	if brokers == "" {
		return p
	}
	p.writer = &kafka.Writer{
		Addr:     kafka.TCP(brokers),
		Topic:    Topic,
		Balancer: &kafka.LeastBytes{},
	}
	return p
}

func (p *Publisher) BatchCompleted(ctx context.Context, entity string, batch *models.BatchResult) {
	if p.writer == nil {
		return
	}

	event := BatchEvent{
		ID:        uuid.NewString(),
		Entity:    entity,
		Total:     len(batch.Items),
		Failed:    batch.Failed(),
		Results:   batch.Items,
		Timestamp: time.Now().UTC(),
	}
	value, err := json.Marshal(event)
	if err != nil {
		p.log.WithError(err).Error("Failed to encode batch event")
		return
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(entity),
		Value: value,
	})
	if err != nil {
		p.log.WithError(err).WithField("entity", entity).Error("Failed to publish batch event")
	}
}

func (p *Publisher) Close() error {
	if p.writer == nil {
		return nil
	}
	return p.writer.Close()
}
