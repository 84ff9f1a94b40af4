//go:generate go tool wire
//go:build wireinject

// The build tag makes sure the stub is not built in the final build.

/*
SwiftEx DI-package
*/
package swiftex_di

import (
	"time"

	"github.com/google/wire"
	"go.opentelemetry.io/otel/trace"

	"github.com/shortlink-org/go-sdk/config"
	sdkctx "github.com/shortlink-org/go-sdk/context"
	"github.com/shortlink-org/go-sdk/flags"
	"github.com/shortlink-org/go-sdk/logger"
	"github.com/shortlink-org/go-sdk/observability/metrics"
	"github.com/shortlink-org/go-sdk/observability/profiling"
	"github.com/shortlink-org/go-sdk/observability/tracing"

	"github.com/swiftex-sim/swiftex/internal/domain/services"
	"github.com/swiftex-sim/swiftex/internal/infrastructure/kafka"

	pkg_di "github.com/swiftex-sim/swiftex/internal/di/pkg"
)

// SwiftExService is the fully wired process: the logistics Engine plus the
// Kafka command gateway and background ticker that drive it in a live
// deployment (SPEC_FULL §4).
type SwiftExService struct {
	// Common
	Log    logger.Logger
	Config *config.Config

	// Observability
	Tracer        trace.TracerProvider
	Monitoring    *metrics.Monitoring
	PprofEndpoint profiling.PprofEndpoint

	// Domain
	Engine        *services.Engine
	TickScheduler *services.TickScheduler

	// Infrastructure
	ResultPublisher    *kafka.ResultPublisher
	LifecyclePublisher *kafka.LifecyclePublisher
	CommandSubscriber  *kafka.CommandSubscriber
}

// DefaultSet ==========================================================================================================
var DefaultSet = wire.NewSet(
	sdkctx.New,
	flags.New,
	config.New,
	logger.NewDefault,
	tracing.New,
	metrics.New,
	profiling.New,
)

// SwiftExSet ==========================================================================================================
var SwiftExSet = wire.NewSet(
	// Common
	DefaultSet,

	// Domain
	newEngine,
	newTickScheduler,

	// Infrastructure — delegate to the hand-written pkg_di providers rather
	// than re-implementing publisher/subscriber construction here.
	pkg_di.NewResultPublisher,
	pkg_di.NewLifecyclePublisher,
	pkg_di.NewCommandSubscriber,

	NewSwiftExService,
)

// newEngine constructs the Engine against the real wall clock.
func newEngine() (*services.Engine, error) {
	return services.NewEngine(time.Now)
}

// newTickScheduler creates the background tick loop driving Engine.Tick on a
// fixed cadence.
func newTickScheduler(cfg *config.Config, engine *services.Engine) *services.TickScheduler {
	defaultCfg := services.DefaultTickSchedulerConfig()

	interval := cfg.GetDuration("SWIFTEX_TICK_INTERVAL")
	if interval == 0 {
		interval = defaultCfg.Interval
	}

	return services.NewTickScheduler(services.TickSchedulerConfig{Interval: interval}, engine)
}

func NewSwiftExService(
	// Common
	log logger.Logger,
	cfg *config.Config,

	// Observability
	monitoring *metrics.Monitoring,
	tracer trace.TracerProvider,
	pprofHTTP profiling.PprofEndpoint,

	// Domain
	engine *services.Engine,
	tickScheduler *services.TickScheduler,

	// Infrastructure
	resultPub *kafka.ResultPublisher,
	lifecyclePub *kafka.LifecyclePublisher,
	subscriber *kafka.CommandSubscriber,
) (*SwiftExService, func(), error) {
	tickScheduler.Start()

	cleanup := func() {
		log.Info("Shutting down SwiftEx engine...")

		tickScheduler.Stop()

		if subscriber != nil {
			if err := subscriber.Stop(); err != nil {
				log.Error(err.Error())
			}
		}
		if resultPub != nil {
			if err := resultPub.Close(); err != nil {
				log.Error(err.Error())
			}
		}
		if lifecyclePub != nil {
			if err := lifecyclePub.Close(); err != nil {
				log.Error(err.Error())
			}
		}
	}

	return &SwiftExService{
		// Common
		Log:    log,
		Config: cfg,

		// Observability
		Tracer:        tracer,
		Monitoring:    monitoring,
		PprofEndpoint: pprofHTTP,

		// Domain
		Engine:        engine,
		TickScheduler: tickScheduler,

		// Infrastructure
		ResultPublisher:    resultPub,
		LifecyclePublisher: lifecyclePub,
		CommandSubscriber:  subscriber,
	}, cleanup, nil
}

func InitializeSwiftExService() (*SwiftExService, func(), error) {
	panic(wire.Build(SwiftExSet))
}
