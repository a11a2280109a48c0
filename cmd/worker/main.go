package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	"github.com/Apurer/equipment-lending-api/internal/app/api"
	equipmentactivities "github.com/Apurer/equipment-lending-api/internal/platform/temporal/activities/equipment"
	equipmentworkflows "github.com/Apurer/equipment-lending-api/internal/platform/temporal/workflows/equipment"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf(".env not loaded: %v", err)
	}
	ctx := context.Background()
	const serviceName = "equipment-lending-worker"
	cfg, err := api.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	instruments, shutdown, err := api.InitObservability(ctx, serviceName, cfg)
	if err != nil {
		log.Fatalf("failed to initialize observability: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	service, cleanup, err := api.BuildEquipmentService(ctx, cfg, instruments)
	if err != nil {
		logger.Error("failed to build equipment service", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer cleanup()
	activities := equipmentactivities.NewActivities(service)

	temporalClient, err := api.ConnectTemporalClient(cfg, instruments, "temporal-worker")
	if err != nil {
		logger.Error("failed to create Temporal client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer temporalClient.Close()

	w := worker.New(temporalClient, equipmentworkflows.TaskQueue, worker.Options{})
	w.RegisterWorkflowWithOptions(equipmentworkflows.RegistrationWorkflow, workflow.RegisterOptions{Name: equipmentworkflows.RegistrationWorkflowName})
	w.RegisterWorkflowWithOptions(equipmentworkflows.StatusRefreshWorkflow, workflow.RegisterOptions{Name: equipmentworkflows.StatusRefreshWorkflowName})
	w.RegisterActivityWithOptions(activities.RegisterEquipment, activity.RegisterOptions{Name: equipmentactivities.RegisterEquipmentActivityName})
	w.RegisterActivityWithOptions(activities.RefreshStatuses, activity.RegisterOptions{Name: equipmentactivities.RefreshStatusesActivityName})

	logger.Info("worker listening", slog.String("taskQueue", equipmentworkflows.TaskQueue), slog.String("namespace", cfg.TemporalNamespace))
	if err := w.Run(worker.InterruptCh()); err != nil {
		logger.Error("Temporal worker exited with error", slog.String("error", err.Error()))
		return
	}
	logger.Info("Temporal worker stopped")
}
