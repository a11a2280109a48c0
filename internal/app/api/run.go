package api

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	lendingserver "github.com/Apurer/equipment-lending-api/go"
	equipmentworkflows "github.com/Apurer/equipment-lending-api/internal/domains/equipment/adapters/workflows"
	equipmentports "github.com/Apurer/equipment-lending-api/internal/domains/equipment/ports"
)

const serviceName = "equipment-lending-api"

// Run boots the equipment lending HTTP API with observability, repositories, and workflows wired.
func Run(ctx context.Context) error {
	cfg, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	instruments, shutdown, err := InitObservability(ctx, serviceName, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	service, cleanup, err := BuildEquipmentService(ctx, cfg, instruments)
	if err != nil {
		return err
	}
	defer cleanup()

	var workflows equipmentports.WorkflowOrchestrator = equipmentworkflows.NewInlineEquipmentWorkflows(service)
	if temporalClient, err := ConnectTemporalClient(cfg, instruments, "temporal-client"); err != nil {
		logger.Warn("Temporal workflows unavailable, running inline RegisterEquipment", slog.String("error", err.Error()))
	} else {
		defer temporalClient.Close()
		workflows = equipmentworkflows.NewTemporalEquipmentWorkflows(temporalClient)
		logger.Info("Temporal workflows enabled", slog.String("namespace", cfg.TemporalNamespace))
	}

	handlers := lendingserver.ApiHandleFunctions{
		EquipmentAPI: lendingserver.NewEquipmentAPI(service, workflows),
		EmployeeAPI:  lendingserver.NewEmployeeAPI(service),
	}
	router := lendingserver.NewRouter(handlers,
		otelgin.Middleware(serviceName),
		lendingserver.CORS(cfg.CORSAllowedOrigins),
	)

	addr := cfg.Addr()
	logger.Info("equipment lending API listening", slog.String("addr", addr), slog.String("timeZone", cfg.TimeZone))
	if err := router.Run(addr); err != nil {
		logger.Error("equipment lending API server exited", slog.String("addr", addr), slog.String("error", err.Error()))
		return err
	}
	return nil
}
