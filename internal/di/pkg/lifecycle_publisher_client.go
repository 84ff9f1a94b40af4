package pkg_di

import (
	"github.com/spf13/viper"

	"github.com/shortlink-org/go-sdk/config"
	"github.com/shortlink-org/go-sdk/logger"
	sdkkafka "github.com/shortlink-org/go-sdk/watermill/backends/kafka"

	"github.com/swiftex-sim/swiftex/internal/domain/services"
	"github.com/swiftex-sim/swiftex/internal/infrastructure/kafka"
)

// NewLifecyclePublisher creates the Kafka parcel-lifecycle publisher using
// go-sdk/watermill and wires it into engine so every history append is
// published on TopicParcelLifecycle (SPEC_FULL §4 "Command Gateway").
func NewLifecyclePublisher(cfg *config.Config, log logger.Logger, engine *services.Engine) (*kafka.LifecyclePublisher, func(), error) {
	viper.SetDefault("WATERMILL_KAFKA_BROKERS", []string{"localhost:9092"})

	publisher, err := sdkkafka.NewPublisherFromConfig(log, cfg)
	if err != nil {
		log.Warn("Failed to create Kafka lifecycle publisher, running without Kafka")
		return nil, func() {}, nil //nolint:nilerr // intentionally returning nil to continue without Kafka
	}

	lifecycle := kafka.NewLifecyclePublisher(publisher)
	engine.SetLifecycleSink(lifecycle.AsLifecycleSink())

	cleanup := func() {
		if publisher != nil {
			_ = publisher.Close()
		}
	}

	return lifecycle, cleanup, nil
}
