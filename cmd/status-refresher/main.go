package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/Apurer/equipment-lending-api/internal/app/api"
	equipmentports "github.com/Apurer/equipment-lending-api/internal/domains/equipment/ports"
	"github.com/Apurer/equipment-lending-api/internal/platform/metrics"
)

const jobName = "status_refresh"

// The refresher recomputes equipment statuses for today. It runs once unless
// STATUS_REFRESH_INTERVAL_MINUTES is set, in which case it repeats until interrupted.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf(".env not loaded: %v", err)
	}
	if err := run(); err != nil {
		log.Fatalf("status refresher failed: %v", err)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := api.LoadConfig()
	if err != nil {
		return err
	}
	instruments, shutdown, err := api.InitObservability(ctx, "equipment-lending-status-refresher", cfg)
	if err != nil {
		return err
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
		return err
	}
	defer cleanup()

	job := refreshJob{service: service, logger: logger, gatewayURL: cfg.PushgatewayURL}
	interval := cfg.StatusRefreshInterval()
	if interval == 0 {
		return job.run(ctx)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	logger.Info("status refresher running", slog.Duration("interval", interval))
	for {
		_ = job.run(ctx)
		select {
		case <-ctx.Done():
			logger.Info("status refresher stopped")
			return nil
		case <-ticker.C:
		}
	}
}

type refreshJob struct {
	service    equipmentports.Service
	logger     *slog.Logger
	gatewayURL string
}

func (j refreshJob) run(ctx context.Context) error {
	runCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	changed, err := j.service.RefreshStatuses(runCtx)
	metrics.ObserveJob(jobName, err)
	metrics.AddStatusChanges(changed)
	j.push(ctx)
	if err != nil {
		j.logger.Error("status refresh failed", slog.Int("changed", changed), slog.String("error", err.Error()))
		return err
	}
	j.logger.Info("status refresh completed", slog.Int("changed", changed))
	return nil
}

// push is skipped without a configured Pushgateway.
func (j refreshJob) push(ctx context.Context) {
	if j.gatewayURL == "" {
		return
	}
	pushCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := metrics.PushJobMetrics(pushCtx, j.gatewayURL, jobName); err != nil {
		j.logger.Warn("failed to push job metrics", slog.String("error", err.Error()))
	}
}
