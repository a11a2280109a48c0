package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"

	equipmentmemory "github.com/Apurer/equipment-lending-api/internal/domains/equipment/adapters/memory"
	equipmentobs "github.com/Apurer/equipment-lending-api/internal/domains/equipment/adapters/observability"
	equipmentpostgres "github.com/Apurer/equipment-lending-api/internal/domains/equipment/adapters/persistence/postgres"
	equipmentapp "github.com/Apurer/equipment-lending-api/internal/domains/equipment/application"
	equipmentports "github.com/Apurer/equipment-lending-api/internal/domains/equipment/ports"
	"github.com/Apurer/equipment-lending-api/internal/platform/migrations"
	platformobservability "github.com/Apurer/equipment-lending-api/internal/platform/observability"
	platformpostgres "github.com/Apurer/equipment-lending-api/internal/platform/postgres"
	"github.com/Apurer/equipment-lending-api/internal/shared/clock"
	"github.com/Apurer/equipment-lending-api/internal/shared/ids"
)

// InitObservability starts telemetry for one process using the shared config.
func InitObservability(ctx context.Context, serviceName string, cfg Config) (*platformobservability.Instruments, func(context.Context) error, error) {
	return platformobservability.Init(ctx, platformobservability.Options{
		ServiceName: serviceName,
		Environment: cfg.Environment,
		Release:     cfg.Release,
		SentryDSN:   cfg.SentryDSN,
		LogLevel:    cfg.LogLevel,
	})
}

// BuildEquipmentService wires the equipment service with Postgres when reachable
// and in-memory adapters otherwise. The result is wrapped with logging,
// tracing, metrics and error reporting.
func BuildEquipmentService(ctx context.Context, cfg Config, instruments *platformobservability.Instruments) (equipmentports.Service, func(), error) {
	logger := effectiveLogger(instruments)
	today, err := clock.LoadLocation(cfg.TimeZone)
	if err != nil {
		return nil, func() {}, fmt.Errorf("load time zone: %w", err)
	}
	generator := ids.NewULIDGenerator()

	repo, store, cleanup, err := buildEquipmentAdapters(ctx, cfg, generator, logger)
	if err != nil {
		return nil, func() {}, err
	}
	core := equipmentapp.NewService(repo, today, generator, equipmentapp.WithIdempotencyStore(store))

	service := equipmentobs.New(
		core,
		equipmentobs.WithLogger(logger),
		equipmentobs.WithTracer(instruments.Tracer("internal.equipment.application")),
		equipmentobs.WithMeter(instruments.Meter("internal.equipment.application")),
		equipmentobs.WithErrorReporter(instruments.Reporter()),
	)
	return service, cleanup, nil
}

func buildEquipmentAdapters(ctx context.Context, cfg Config, generator equipmentports.IDGenerator, logger *slog.Logger) (equipmentports.Repository, equipmentports.IdempotencyStore, func(), error) {
	db, cleanup := platformpostgres.ConnectWithFallback(ctx, cfg.PostgresDSN, logger)
	if db == nil {
		return equipmentmemory.NewRepository(generator), equipmentmemory.NewIdempotencyStore(), cleanup, nil
	}
	if err := migrations.Run(db); err != nil {
		cleanup()
		return nil, nil, func() {}, fmt.Errorf("migrate equipment schema: %w", err)
	}
	logger.Info("equipment repository configured with postgres")
	return equipmentpostgres.NewRepository(db, generator), equipmentpostgres.NewIdempotencyStore(db), cleanup, nil
}

// ConnectTemporalClient dials Temporal with tracing and slog-backed logging.
func ConnectTemporalClient(cfg Config, instruments *platformobservability.Instruments, tracerName string) (client.Client, error) {
	if cfg.TemporalDisabled {
		return nil, errors.New("temporal disabled via TEMPORAL_DISABLED env")
	}
	tracerOptions := temporalotel.TracerOptions{}
	if instruments != nil {
		tracerOptions.Tracer = instruments.Tracer(tracerName)
	}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		return nil, err
	}
	options := client.Options{
		HostPort:  cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Logger:    workerlog.NewStructuredLogger(effectiveLogger(instruments)),
	}
	options.Interceptors = append(options.Interceptors, tracingInterceptor)
	return client.Dial(options)
}

func effectiveLogger(instruments *platformobservability.Instruments) *slog.Logger {
	if instruments != nil && instruments.Logger != nil {
		return instruments.Logger
	}
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}
