package sales

import (
	"context"
	"fmt"
	"time"

	"clubly/internal/shared/constants"
	"clubly/pkg/logger"

	"github.com/IBM/sarama"
)

type Publisher interface {
	PublishAvailabilityChanged(ctx context.Context, change *AvailabilityChanged) error
	Close() error
}

type PublisherConfig struct {
	Brokers          []string
	Topic            string
	RetryMax         int
	Timeout          time.Duration
	RequiredAcks     sarama.RequiredAcks
	Compression      sarama.CompressionCodec
	IdempotentWrites bool
}

func DefaultPublisherConfig() *PublisherConfig {
	return &PublisherConfig{
		Brokers:          []string{"localhost:9092"},
		Topic:            "event-availability",
		RetryMax:         3,
		Timeout:          10 * time.Second,
		RequiredAcks:     sarama.WaitForAll,
		Compression:      sarama.CompressionSnappy,
		IdempotentWrites: true,
	}
}

// KafkaPublisher publishes availability changes keyed by event id so every
// change of an event lands on the same partition in order.
type KafkaPublisher struct {
	producer sarama.SyncProducer
	topic    string
	log      *logger.Logger
}

func NewKafkaPublisher(config *PublisherConfig) (*KafkaPublisher, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Producer.Return.Successes = true
	saramaConfig.Producer.Return.Errors = true
	saramaConfig.Producer.RequiredAcks = config.RequiredAcks
	saramaConfig.Producer.Compression = config.Compression
	saramaConfig.Producer.Retry.Max = config.RetryMax
	saramaConfig.Producer.Timeout = config.Timeout
	saramaConfig.Producer.Idempotent = config.IdempotentWrites
	if config.IdempotentWrites {
		saramaConfig.Net.MaxOpenRequests = 1
	}
	saramaConfig.Producer.Partitioner = sarama.NewHashPartitioner

	producer, err := sarama.NewSyncProducer(config.Brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	return NewPublisherWithProducer(producer, config.Topic), nil
}

// NewPublisherWithProducer wraps an existing producer
func NewPublisherWithProducer(producer sarama.SyncProducer, topic string) *KafkaPublisher {
	return &KafkaPublisher{producer: producer, topic: topic, log: logger.GetDefault()}
}

func (p *KafkaPublisher) PublishAvailabilityChanged(ctx context.Context, change *AvailabilityChanged) error {
	payload, err := change.ToJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal availability change: %w", err)
	}

	message := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(change.EventID),
		Value: sarama.ByteEncoder(payload),
		Headers: []sarama.RecordHeader{
			{Key: []byte(constants.HeaderMessageType), Value: []byte(constants.MessageTypeAvailabilityChanged)},
			{Key: []byte(constants.HeaderEventID), Value: []byte(change.EventID)},
			{Key: []byte(constants.HeaderSource), Value: []byte(constants.MessageSource)},
		},
		Timestamp: change.OccurredAt,
	}

	partition, offset, err := p.producer.SendMessage(message)
	if err != nil {
		return fmt.Errorf("failed to send availability change: %w", err)
	}

	p.log.DebugWithContext(ctx, "Availability change published", map[string]interface{}{
		"topic":     p.topic,
		"partition": partition,
		"offset":    offset,
		"event_id":  change.EventID,
	})
	return nil
}

func (p *KafkaPublisher) Close() error {
	if p.producer == nil {
		return nil
	}
	if err := p.producer.Close(); err != nil {
		return fmt.Errorf("failed to close Kafka producer: %w", err)
	}
	return nil
}
