//go:build integration

package integration

import (
	"context"
	"testing"

	"github.com/testcontainers/testcontainers-go/modules/kafka"
)

const (
	kafkaImage = "confluentinc/confluent-local:7.5.0"
)

// KafkaContainer holds a Kafka testcontainer and its broker list.
type KafkaContainer struct {
	kc      *kafka.KafkaContainer
	Brokers []string
}

// SetupKafkaContainer starts a Kafka container and returns brokers.
func SetupKafkaContainer(t *testing.T) *KafkaContainer {
	t.Helper()
	ctx := context.Background()

	kc, err := kafka.Run(ctx, kafkaImage)
	if err != nil {
		t.Fatalf("failed to start kafka container: %v", err)
	}

	brokers, err := kc.Brokers(ctx)
	if err != nil {
		_ = kc.Terminate(ctx)
		t.Fatalf("failed to get kafka brokers: %v", err)
	}

	c := &KafkaContainer{kc: kc, Brokers: brokers}
	t.Cleanup(func() {
		if err := kc.Terminate(ctx); err != nil {
			t.Logf("failed to terminate kafka container: %v", err)
		}
	})
	return c
}
