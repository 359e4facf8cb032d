package worker

import (
	"context"
	"encoding/json"
	"time"

	"uploader/internal/config"
	"uploader/internal/events"
	"uploader/internal/models"
	"uploader/internal/store"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
)

// Worker consumes batch events and records every failed item in the store
// so operators can review and re-submit them.
type Worker struct {
	config *config.Config
	log    *logrus.Entry
	reader *kafka.Reader
	store  *store.Store
}

func New(cfg *config.Config, st *store.Store, log *logrus.Logger) *Worker {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        []string{cfg.KafkaBrokers},
		GroupID:        "uploader-worker",
		Topic:          events.Topic,
		MinBytes:       10e3, // 10KB
		MaxBytes:       10e6, // 10MB
		CommitInterval: time.Second,
	})

	return &Worker{
		config: cfg,
		log:    log.WithField("component", "worker"),
		reader: reader,
		store:  st,
	}
}

func (w *Worker) Start() {
	w.log.Info("Worker started, listening for batch events...")

	for {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		message, err := w.reader.ReadMessage(ctx)
		cancel()

		if err != nil {
			w.log.WithError(err).Error("Failed to read message")
			continue
		}

		var event events.BatchEvent
		if err := json.Unmarshal(message.Value, &event); err != nil {
			w.log.WithError(err).Error("Failed to parse batch event")
			continue
		}

		if err := w.process(&event); err != nil {
			w.log.WithError(err).WithField("event", event.ID).Error("Failed to process batch event")
			continue
		}
	}
}

func (w *Worker) process(event *events.BatchEvent) error {
	for _, r := range event.Results {
		if r.Status != models.StatusError {
			continue
		}
		failure := models.SyncFailure{
			ID:         uuid.NewString(),
			Entity:     event.Entity,
			NaturalKey: r.Key,
			Message:    r.Message,
			CreatedAt:  event.Timestamp,
		}
		if err := w.store.RecordSyncFailure(&failure); err != nil {
			return err
		}
	}
	if event.Failed > 0 {
		w.log.WithFields(logrus.Fields{
			"entity": event.Entity,
			"failed": event.Failed,
			"total":  event.Total,
		}).Warn("Recorded failed batch items")
	}
	return nil
}

func (w *Worker) Stop() {
	w.log.Info("Stopping worker...")
	w.reader.Close()
}
