package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"go.uber.org/zap"

	"github.com/eugenenazirov/summit-pack/internal/application"
	"github.com/eugenenazirov/summit-pack/internal/config"
	"github.com/eugenenazirov/summit-pack/internal/logging"
)

var signalNotify = signal.Notify

func main() {
	cfg, err := config.Load(parseFlags(os.Args[1:]))
	if err != nil {
		panic(fmt.Sprintf("failed to load configuration: %v", err))
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer func() {
		_ = logger.Sync()
	}()

	app, err := application.New(cfg, logger)
	if err != nil {
		logger.Fatal("failed to initialize application", zap.Error(err))
	}

	if err := app.Start(); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}

	shutdown(app, cfg.ShutdownGracePeriod, logger)
}

// parseFlags turns command-line arguments into configuration overrides.
// Unset flags leave the lower-precedence sources in charge.
func parseFlags(args []string) *config.CLIOverrides {
	kingpinApp := kingpin.New("summit-pack", "Summit Pack - pack a hiking backpack for the day's mountain conditions")
	configFile := kingpinApp.Flag("config", "Path to YAML configuration file").String()
	port := kingpinApp.Flag("port", "HTTP port exposed by the service").String()
	logLevel := kingpinApp.Flag("log-level", "Log level (debug, info, warn, error)").String()
	capacity := kingpinApp.Flag("capacity", "Default backpack capacity in litres for new sessions").Int()
	seed := kingpinApp.Flag("seed", "Seed for the condition generator (0 seeds from the clock)").Uint64()
	catalogFile := kingpinApp.Flag("catalog", "Path to a YAML equipment catalog replacing the built-in one").String()
	rateLimitRPSFlag := kingpinApp.Flag("rate-limit-rps", "Requests per second allowed (set 0 to disable)").Default("-1").Float64()
	rateLimitBurstFlag := kingpinApp.Flag("rate-limit-burst", "Burst capacity for rate limiter (set 0 to disable)").Default("-1").Int()

	kingpin.MustParse(kingpinApp.Parse(args))

	overrides := &config.CLIOverrides{
		ConfigFile: *configFile,
	}

	if *port != "" {
		overrides.Port = port
	}

	if *logLevel != "" {
		overrides.LogLevel = logLevel
	}

	if *capacity != 0 {
		overrides.DefaultCapacity = capacity
	}

	if *seed != 0 {
		overrides.ConditionSeed = seed
	}

	if *catalogFile != "" {
		overrides.CatalogFile = catalogFile
	}

	if *rateLimitRPSFlag >= 0 {
		overrides.RateLimitRPS = rateLimitRPSFlag
	}

	if *rateLimitBurstFlag >= 0 {
		overrides.RateLimitBurst = rateLimitBurstFlag
	}

	return overrides
}

// shutdown blocks until an interrupt or termination signal arrives, then
// drains the application within timeout.
func shutdown(app *application.App, timeout time.Duration, logger *zap.Logger) {
	quit := make(chan os.Signal, 1)
	signalNotify(quit, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	sig := <-quit
	logger.Info("signal received", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := app.Shutdown(ctx); err != nil {
		logger.Error("shutdown failed", zap.Error(err))
	}
}
