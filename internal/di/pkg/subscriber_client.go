package pkg_di

import (
	"context"
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/spf13/viper"

	"github.com/shortlink-org/go-sdk/config"
	"github.com/shortlink-org/go-sdk/logger"

	"github.com/swiftex-sim/swiftex/internal/domain/services"
	"github.com/swiftex-sim/swiftex/internal/infrastructure/kafka"
)

// watermillLoggerAdapter adapts shortlink logger to Watermill logger interface.
type watermillLoggerAdapter struct {
	log logger.Logger
}

func (w *watermillLoggerAdapter) Error(msg string, err error, fields watermill.LogFields) {
	w.log.Error(fmt.Sprintf("%s: %v", msg, err))
}

func (w *watermillLoggerAdapter) Info(msg string, fields watermill.LogFields) {
	w.log.Info(msg)
}

func (w *watermillLoggerAdapter) Debug(msg string, fields watermill.LogFields) {
	w.log.Debug(msg)
}

func (w *watermillLoggerAdapter) Trace(msg string, fields watermill.LogFields) {
	w.log.Debug(msg)
}

func (w *watermillLoggerAdapter) With(fields watermill.LogFields) watermill.LoggerAdapter {
	return w
}

// NewCommandSubscriber creates the Kafka command subscriber, wrapping engine
// in a services.Gateway as its handler (SPEC_FULL §4 "Command Gateway") and
// starting consumption of TopicCommandIssued immediately.
func NewCommandSubscriber(
	cfg *config.Config,
	log logger.Logger,
	engine *services.Engine,
	results *kafka.ResultPublisher,
) (*kafka.CommandSubscriber, func(), error) {
	viper.SetDefault("WATERMILL_KAFKA_BROKERS", []string{"localhost:9092"})

	brokers := cfg.GetStringSlice("WATERMILL_KAFKA_BROKERS")
	if len(brokers) == 0 {
		brokers = []string{"localhost:9092"}
	}

	subscriberConfig := kafka.CommandSubscriberConfig{
		Brokers:       brokers,
		ConsumerGroup: kafka.ConsumerGroupSwiftEx,
	}

	// Create the gateway that dispatches decoded command envelopes to engine.
	gateway := services.NewGateway(engine)

	// Create Watermill logger adapter
	wmLogger := &watermillLoggerAdapter{log: log}

	subscriber, err := kafka.NewCommandSubscriber(subscriberConfig, gateway, results, wmLogger)
	if err != nil {
		log.Warn("Failed to create Kafka subscriber, running without event consumption")
		return nil, func() {}, nil //nolint:nilerr // intentionally returning nil to continue without Kafka
	}

	if err := subscriber.Start(context.Background()); err != nil {
		log.Warn("Failed to start Kafka subscriber, running without event consumption")
		return nil, func() {}, nil //nolint:nilerr // intentionally returning nil to continue without Kafka
	}

	cleanup := func() {
		if subscriber != nil {
			_ = subscriber.Stop()
		}
	}

	return subscriber, cleanup, nil
}
