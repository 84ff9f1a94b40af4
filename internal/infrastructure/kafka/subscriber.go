package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/IBM/sarama"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-kafka/v3/pkg/kafka"
	"github.com/ThreeDotsLabs/watermill/message"
)

// ConsumerGroupSwiftEx is the consumer group for the command gateway.
const ConsumerGroupSwiftEx = "swiftex"

// CommandHandler dispatches a decoded command envelope and produces its
// result. Implemented by services.Gateway; declared here, narrowly, so this
// package never imports internal/domain/services.
type CommandHandler interface {
	Handle(ctx context.Context, envelope CommandEnvelope) CommandResult
}

// CommandSubscriberConfig holds configuration for the command subscriber.
type CommandSubscriberConfig struct {
	Brokers       []string
	ConsumerGroup string
}

// DefaultCommandSubscriberConfig returns default configuration.
func DefaultCommandSubscriberConfig() CommandSubscriberConfig {
	return CommandSubscriberConfig{
		Brokers:       []string{"localhost:9092"},
		ConsumerGroup: ConsumerGroupSwiftEx,
	}
}

// CommandSubscriber subscribes to TopicCommandIssued, dispatches each
// envelope to a CommandHandler, and publishes the result.
type CommandSubscriber struct {
	subscriber message.Subscriber
	handler    CommandHandler
	results    *ResultPublisher
	logger     watermill.LoggerAdapter
	stopCh     chan struct{}
}

// NewCommandSubscriber creates a new Kafka command subscriber.
func NewCommandSubscriber(
	config CommandSubscriberConfig,
	handler CommandHandler,
	results *ResultPublisher,
	logger watermill.LoggerAdapter,
) (*CommandSubscriber, error) {
	if logger == nil {
		logger = watermill.NewStdLogger(false, false)
	}

	saramaConfig := kafka.DefaultSaramaSubscriberConfig()
	saramaConfig.Consumer.Offsets.Initial = sarama.OffsetNewest

	subscriber, err := kafka.NewSubscriber(
		kafka.SubscriberConfig{
			Brokers:               config.Brokers,
			Unmarshaler:           kafka.DefaultMarshaler{},
			ConsumerGroup:         config.ConsumerGroup,
			OverwriteSaramaConfig: saramaConfig,
		},
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("new kafka subscriber: %w", err)
	}

	return &CommandSubscriber{
		subscriber: subscriber,
		handler:    handler,
		results:    results,
		logger:     logger,
		stopCh:     make(chan struct{}),
	}, nil
}

// Start begins consuming command envelopes from TopicCommandIssued.
func (s *CommandSubscriber) Start(ctx context.Context) error {
	messages, err := s.subscriber.Subscribe(ctx, TopicCommandIssued)
	if err != nil {
		return fmt.Errorf("subscribe to %s: %w", TopicCommandIssued, err)
	}

	go s.processMessages(ctx, messages)

	return nil
}

func (s *CommandSubscriber) processMessages(ctx context.Context, messages <-chan *message.Message) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-s.stopCh:
			return
		case msg := <-messages:
			if msg == nil {
				continue
			}

			s.handleSafely(ctx, msg)
		}
	}
}

// handleSafely decodes and dispatches one envelope, recovering any panic
// raised by the handler (spec §7: a malformed command must never bring the
// gateway down) and always Ack-ing so a bad message is never redelivered in
// a tight loop.
func (s *CommandSubscriber) handleSafely(ctx context.Context, msg *message.Message) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("command handler panicked", fmt.Errorf("%v", r), nil)
		}
		msg.Ack()
	}()

	var envelope CommandEnvelope
	if err := json.Unmarshal(msg.Payload, &envelope); err != nil {
		s.logger.Error("failed to unmarshal command envelope", err, nil)

		return
	}

	result := s.handler.Handle(ctx, envelope)

	if s.results == nil {
		return
	}
	if err := s.results.PublishResult(ctx, result); err != nil {
		s.logger.Error("failed to publish command result", err, nil)
	}
}

// Stop stops the subscriber.
func (s *CommandSubscriber) Stop() error {
	close(s.stopCh)

	if err := s.subscriber.Close(); err != nil {
		return fmt.Errorf("subscriber close: %w", err)
	}

	return nil
}
