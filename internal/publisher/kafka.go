package publisher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"

	"ugc_tracker/internal/domain"
)

type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// Kafka writes video events to a single topic, keyed by video URL so every
// event for one video lands on the same partition.
type Kafka struct {
	writer *kafka.Writer
	logger *slog.Logger
}

func NewKafka(cfg KafkaConfig, logger *slog.Logger) (*Kafka, error) {
	if len(cfg.Brokers) == 0 {
		return nil, errors.New("kafka publisher requires at least one broker")
	}
	if cfg.Topic == "" {
		return nil, errors.New("kafka publisher requires a topic")
	}

	logger.Info("kafka publisher configured",
		"brokers", cfg.Brokers,
		"topic", cfg.Topic,
	)

	return &Kafka{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(cfg.Brokers...),
			Topic:                  cfg.Topic,
			RequiredAcks:           kafka.RequireAll,
			Balancer:               &kafka.Hash{},
			AllowAutoTopicCreation: true,
		},
		logger: logger.With("component", "publisher", "kind", "kafka"),
	}, nil
}

func (k *Kafka) Publish(ctx context.Context, video *domain.Video, action domain.EventAction) error {
	body, err := newMessage(video, action)
	if err != nil {
		return err
	}

	err = k.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(video.URL),
		Value: body,
		Headers: []kafka.Header{
			{Key: "action", Value: []byte(action)},
			{Key: "content-type", Value: []byte("application/json")},
		},
		Time: time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("write message: %w", err)
	}

	k.logger.Debug("published video event",
		"video_id", video.ID,
		"action", action,
	)
	return nil
}

func (k *Kafka) Close() error {
	return k.writer.Close()
}
