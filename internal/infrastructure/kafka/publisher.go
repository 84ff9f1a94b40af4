package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

// ResultPublisher publishes one CommandResult per processed command
// envelope onto a single reply channel shared by every command.
type ResultPublisher struct {
	publisher message.Publisher
}

// NewResultPublisher wraps an already-configured watermill publisher.
func NewResultPublisher(publisher message.Publisher) *ResultPublisher {
	return &ResultPublisher{publisher: publisher}
}

// PublishResult marshals and publishes result, partitioned by CorrelationID
// so a collaborator reading results in order sees its own replies in order.
func (p *ResultPublisher) PublishResult(_ context.Context, result CommandResult) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshal command result: %w", err)
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set(metadataKeyPartitionKey, result.CorrelationID)

	if err := p.publisher.Publish(TopicCommandResult, msg); err != nil {
		return fmt.Errorf("publish command result: %w", err)
	}

	return nil
}

// Close closes the underlying publisher.
func (p *ResultPublisher) Close() error {
	if err := p.publisher.Close(); err != nil {
		return fmt.Errorf("result publisher close: %w", err)
	}

	return nil
}

// LifecyclePublisher publishes one ParcelLifecycleEvent per parcel history
// append — covering every history transition a parcel can make, not just
// pickup and delivery.
type LifecyclePublisher struct {
	publisher message.Publisher
}

// NewLifecyclePublisher wraps an already-configured watermill publisher.
func NewLifecyclePublisher(publisher message.Publisher) *LifecyclePublisher {
	return &LifecyclePublisher{publisher: publisher}
}

// PublishLifecycle marshals and publishes event, partitioned by parcel id so
// a given parcel's events are always delivered in append order.
func (p *LifecyclePublisher) PublishLifecycle(_ context.Context, event ParcelLifecycleEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal parcel lifecycle event: %w", err)
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set(metadataKeyPartitionKey, strconv.Itoa(event.ParcelID))

	if err := p.publisher.Publish(TopicParcelLifecycle, msg); err != nil {
		return fmt.Errorf("publish parcel lifecycle event: %w", err)
	}

	return nil
}

// Close closes the underlying publisher.
func (p *LifecyclePublisher) Close() error {
	if err := p.publisher.Close(); err != nil {
		return fmt.Errorf("lifecycle publisher close: %w", err)
	}

	return nil
}

// AsLifecycleSink adapts PublishLifecycle to the bare function signature
// services.Engine.SetLifecycleSink expects, so the DI layer can wire a
// publisher into the engine without this package importing the domain layer
// (services already imports kafka for the command envelope types; the
// reverse import would cycle).
func (p *LifecyclePublisher) AsLifecycleSink() func(parcelID int, status, message string, at time.Time) {
	return func(parcelID int, status, message string, at time.Time) {
		_ = p.PublishLifecycle(context.Background(), NewParcelLifecycleEvent(parcelID, status, message, at))
	}
}
