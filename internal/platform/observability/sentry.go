package observability

import (
	"context"
	"time"

	"github.com/getsentry/sentry-go"
)

// ErrorReporter receives errors nobody upstream knows how to handle.
type ErrorReporter interface {
	Capture(ctx context.Context, err error)
}

// InitSentry configures the global Sentry hub. An empty DSN disables reporting.
func InitSentry(dsn, env, release string) (ErrorReporter, func(), error) {
	if dsn == "" {
		return noopReporter{}, func() {}, nil
	}
	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         dsn,
		Environment: env,
		Release:     release,
	}); err != nil {
		return noopReporter{}, func() {}, err
	}
	return sentryReporter{}, func() { sentry.Flush(2 * time.Second) }, nil
}

type sentryReporter struct{}

func (sentryReporter) Capture(ctx context.Context, err error) {
	if err == nil {
		return
	}
	hub := sentry.GetHubFromContext(ctx)
	if hub == nil {
		hub = sentry.CurrentHub()
	}
	hub.CaptureException(err)
}

type noopReporter struct{}

func (noopReporter) Capture(context.Context, error) {}
