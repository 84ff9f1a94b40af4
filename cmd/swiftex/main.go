/*
SwiftEx parcel logistics simulator

Command gateway + background tick scheduler entrypoint.
*/
package main

import (
	"log/slog"
	"os"

	"github.com/shortlink-org/go-sdk/graceful_shutdown"
	"github.com/spf13/viper"

	swiftex_di "github.com/swiftex-sim/swiftex/internal/di"
)

func main() {
	viper.SetDefault("SERVICE_NAME", "swiftex")

	service, cleanup, err := swiftex_di.InitializeSwiftExService()
	if err != nil {
		panic(err)
	}

	service.Log.Info("SwiftEx service initialized")

	defer func() {
		if r := recover(); r != nil {
			service.Log.Error(r.(string)) //nolint:forcetypeassert,errcheck // simple type assertion
		}
	}()

	if service.CommandSubscriber != nil {
		service.Log.Info("Command subscriber started, listening for issued commands")
	} else {
		service.Log.Warn("Command subscriber not available, running without event consumption")
	}

	service.Log.Info("SwiftEx service running")

	// Handle SIGINT, SIGQUIT and SIGTERM - blocks until signal received
	signal := graceful_shutdown.GracefulShutdown()

	// Run cleanup (stops the tick scheduler and closes publishers/subscriber)
	cleanup()

	service.Log.Info("SwiftEx service stopped", slog.String("signal", signal.String()))

	// Exit Code 143: Graceful Termination (SIGTERM)
	os.Exit(143) //nolint:gocritic // exit code 143 is used to indicate graceful termination
}
