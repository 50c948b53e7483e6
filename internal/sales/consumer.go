package sales

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"clubly/pkg/logger"

	"github.com/IBM/sarama"
)

type ConsumerConfig struct {
	Brokers           []string
	GroupID           string
	Topics            []string
	SessionTimeout    time.Duration
	Heartbeat         time.Duration
	MaxProcessingTime time.Duration
	OffsetOldest      bool
	MaxRetries        int
	RetryBackoff      time.Duration
}

func DefaultConsumerConfig() *ConsumerConfig {
	return &ConsumerConfig{
		Brokers:           []string{"localhost:9092"},
		GroupID:           "clubly-sales-workers",
		Topics:            []string{"ticket-purchases"},
		SessionTimeout:    30 * time.Second,
		Heartbeat:         3 * time.Second,
		MaxProcessingTime: time.Minute,
		MaxRetries:        3,
		RetryBackoff:      time.Second,
	}
}

// PurchaseConsumer feeds completed purchases from Kafka into the sales service
type PurchaseConsumer struct {
	consumerGroup sarama.ConsumerGroup
	config        *ConsumerConfig
	service       Service
	log           *logger.Logger
	ctx           context.Context
	cancel        context.CancelFunc
	wg            sync.WaitGroup
}

func NewPurchaseConsumer(config *ConsumerConfig, service Service) (*PurchaseConsumer, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Consumer.Group.Session.Timeout = config.SessionTimeout
	saramaConfig.Consumer.Group.Heartbeat.Interval = config.Heartbeat
	saramaConfig.Consumer.MaxProcessingTime = config.MaxProcessingTime
	saramaConfig.Consumer.Return.Errors = true
	saramaConfig.Consumer.Offsets.AutoCommit.Enable = true
	saramaConfig.Consumer.Offsets.AutoCommit.Interval = time.Second

	if config.OffsetOldest {
		saramaConfig.Consumer.Offsets.Initial = sarama.OffsetOldest
	} else {
		saramaConfig.Consumer.Offsets.Initial = sarama.OffsetNewest
	}

	consumerGroup, err := sarama.NewConsumerGroup(config.Brokers, config.GroupID, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create consumer group: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &PurchaseConsumer{
		consumerGroup: consumerGroup,
		config:        config,
		service:       service,
		log:           logger.GetDefault(),
		ctx:           ctx,
		cancel:        cancel,
	}, nil
}

// Start launches numWorkers group members. They run until Stop is called.
func (pc *PurchaseConsumer) Start(numWorkers int) {
	if numWorkers <= 0 {
		numWorkers = 1
	}

	pc.log.Info("Starting purchase consumers", "workers", numWorkers, "topics", pc.config.Topics, "group", pc.config.GroupID)

	go pc.handleErrors()

	for i := 0; i < numWorkers; i++ {
		pc.wg.Add(1)
		go func(workerID int) {
			defer pc.wg.Done()
			pc.runWorker(workerID)
		}(i)
	}
}

func (pc *PurchaseConsumer) runWorker(workerID int) {
	handler := newPurchaseHandler(pc.service, pc.config, workerID)

	for {
		if err := pc.consumerGroup.Consume(pc.ctx, pc.config.Topics, handler); err != nil {
			if errors.Is(err, sarama.ErrClosedConsumerGroup) {
				return
			}
			pc.log.Error("Purchase consumer error", "worker", workerID, "error", err)
			select {
			case <-time.After(time.Second):
			case <-pc.ctx.Done():
				return
			}
		}
		if pc.ctx.Err() != nil {
			return
		}
	}
}

func (pc *PurchaseConsumer) handleErrors() {
	for err := range pc.consumerGroup.Errors() {
		pc.log.Error("Consumer group error", "error", err)
	}
}

func (pc *PurchaseConsumer) Stop() error {
	pc.log.Info("Stopping purchase consumers")
	pc.cancel()
	pc.wg.Wait()

	if err := pc.consumerGroup.Close(); err != nil {
		return fmt.Errorf("failed to close consumer group: %w", err)
	}
	return nil
}

func (pc *PurchaseConsumer) HealthCheck(ctx context.Context) error {
	select {
	case <-pc.ctx.Done():
		return fmt.Errorf("consumer context is cancelled")
	default:
		return nil
	}
}

// purchaseHandler implements sarama.ConsumerGroupHandler
type purchaseHandler struct {
	service Service
	config  *ConsumerConfig
	log     *logger.Logger
}

func newPurchaseHandler(service Service, config *ConsumerConfig, workerID int) *purchaseHandler {
	return &purchaseHandler{
		service: service,
		config:  config,
		log:     logger.GetDefault().WithFields(map[string]interface{}{"worker": workerID, "group": config.GroupID}),
	}
}

func (h *purchaseHandler) Setup(sarama.ConsumerGroupSession) error {
	h.log.Debug("Consumer group session started")
	return nil
}

func (h *purchaseHandler) Cleanup(sarama.ConsumerGroupSession) error {
	h.log.Debug("Consumer group session ended")
	return nil
}

func (h *purchaseHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message, ok := <-claim.Messages():
			if !ok || message == nil {
				return nil
			}
			// Returning ends the session without marking, so the group
			// resumes from this offset once it rejoins.
			if err := h.processMessage(session.Context(), message); err != nil {
				h.log.WithError(err).Error("Releasing claim after failed purchase",
					"topic", message.Topic, "partition", message.Partition, "offset", message.Offset)
				return fmt.Errorf("partition %d offset %d: %w", message.Partition, message.Offset, err)
			}
			session.MarkMessage(message, "")

		case <-session.Context().Done():
			return nil
		}
	}
}

// processMessage returns nil for messages that should be committed. Invalid
// payloads are committed as well.
func (h *purchaseHandler) processMessage(ctx context.Context, message *sarama.ConsumerMessage) error {
	purchase, err := DecodePurchase(message.Value)
	if err != nil {
		h.log.Warn("Skipping invalid purchase message",
			"partition", message.Partition, "offset", message.Offset, "error", err)
		return nil
	}

	return h.executeWithRetry(ctx, purchase)
}

func (h *purchaseHandler) executeWithRetry(ctx context.Context, purchase *PurchaseCompleted) error {
	maxRetries := h.config.MaxRetries
	backoff := h.config.RetryBackoff

	for attempt := 0; ; attempt++ {
		_, err := h.service.RecordPurchase(ctx, purchase)
		if err == nil {
			if attempt > 0 {
				h.log.Info("Purchase recorded after retry", "purchase_id", purchase.PurchaseID, "attempts", attempt+1)
			}
			return nil
		}
		if errors.Is(err, ErrInvalidPurchase) {
			return nil
		}
		if attempt >= maxRetries {
			return fmt.Errorf("purchase %s failed after %d attempts: %w", purchase.PurchaseID, attempt+1, err)
		}

		delay := backoff * time.Duration(1<<attempt)
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
