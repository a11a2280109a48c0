package observability

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/Apurer/equipment-lending-api/internal/domains/equipment/application"
	types "github.com/Apurer/equipment-lending-api/internal/domains/equipment/application/types"
	"github.com/Apurer/equipment-lending-api/internal/domains/equipment/ports"
	platformobs "github.com/Apurer/equipment-lending-api/internal/platform/observability"
)

const tracerName = "github.com/Apurer/equipment-lending-api/internal/domains/equipment/adapters/observability/service"

// ErrorReporter receives errors outside the expected validation, conflict and lookup classes.
type ErrorReporter interface {
	Capture(ctx context.Context, err error)
}

// Service decorates the equipment service with tracing, logging, metrics and error reporting.
type Service struct {
	inner    ports.Service
	tracer   trace.Tracer
	logger   *slog.Logger
	metrics  serviceMetrics
	reporter ErrorReporter
}

type Option func(*Service)

// WithLogger injects a slog logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

// WithMeter injects the meter used to create service metrics instruments.
func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

func WithErrorReporter(r ErrorReporter) Option {
	return func(s *Service) {
		s.reporter = r
	}
}

// New wires a decorator around the core service.
func New(inner ports.Service, opts ...Option) ports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  defaultLogger(),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	if s.logger == nil {
		s.logger = defaultLogger()
	}
	return s
}

func (s *Service) RegisterEquipment(ctx context.Context, cmd types.RegisterEquipmentCommand) (*types.EquipmentDTO, error) {
	ctx, span := s.startSpan(ctx, "EquipmentService.RegisterEquipment",
		attribute.Bool("idempotency.key_present", cmd.IdempotencyKey != ""))
	defer span.End()

	s.logInfo(ctx, "registering equipment")
	result, err := s.inner.RegisterEquipment(ctx, cmd)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to register equipment")
	}
	span.SetAttributes(attribute.String("equipment.id", result.ID))
	s.metrics.recordRegistered(ctx)
	s.logInfo(ctx, "equipment registered", slog.String("equipment.id", result.ID))
	return result, nil
}

func (s *Service) GetEquipment(ctx context.Context, equipmentID string) (*types.EquipmentDTO, error) {
	ctx, span := s.startSpan(ctx, "EquipmentService.GetEquipment", attribute.String("equipment.id", equipmentID))
	defer span.End()

	result, err := s.inner.GetEquipment(ctx, equipmentID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load equipment", slog.String("equipment.id", equipmentID))
	}
	return result, nil
}

func (s *Service) ListEquipment(ctx context.Context) ([]*types.EquipmentDTO, error) {
	ctx, span := s.startSpan(ctx, "EquipmentService.ListEquipment")
	defer span.End()

	result, err := s.inner.ListEquipment(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list equipment")
	}
	span.SetAttributes(attribute.Int("equipment.count", len(result)))
	return result, nil
}

func (s *Service) BorrowEquipment(ctx context.Context, cmd types.BorrowEquipmentCommand) (*types.BorrowEquipmentResult, error) {
	attrs := []slog.Attr{slog.String("equipment.id", deref(cmd.EquipmentID)), slog.String("employee.id", deref(cmd.EmployeeID))}
	ctx, span := s.startSpan(ctx, "EquipmentService.BorrowEquipment",
		attribute.String("equipment.id", deref(cmd.EquipmentID)), attribute.String("employee.id", deref(cmd.EmployeeID)))
	defer span.End()

	s.logInfo(ctx, "borrowing equipment", attrs...)
	result, err := s.inner.BorrowEquipment(ctx, cmd)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to borrow equipment", attrs...)
	}
	span.SetAttributes(attribute.String("borrowing.id", result.Borrowing.ID))
	s.metrics.recordBorrowed(ctx, result.Equipment.Status)
	s.logInfo(ctx, "equipment borrowed", append(attrs,
		slog.String("borrowing.id", result.Borrowing.ID), slog.String("status", result.Equipment.Status))...)
	return result, nil
}

func (s *Service) ReturnBorrowing(ctx context.Context, cmd types.ReturnBorrowingCommand) (*types.EquipmentDTO, error) {
	attrs := []slog.Attr{slog.String("equipment.id", deref(cmd.EquipmentID)), slog.String("borrowing.id", deref(cmd.BorrowingID))}
	ctx, span := s.startSpan(ctx, "EquipmentService.ReturnBorrowing",
		attribute.String("equipment.id", deref(cmd.EquipmentID)), attribute.String("borrowing.id", deref(cmd.BorrowingID)))
	defer span.End()

	s.logInfo(ctx, "returning borrowing", attrs...)
	result, err := s.inner.ReturnBorrowing(ctx, cmd)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to return borrowing", attrs...)
	}
	s.metrics.recordReturned(ctx)
	s.logInfo(ctx, "borrowing returned", append(attrs, slog.String("status", result.Status))...)
	return result, nil
}

func (s *Service) DisposeEquipment(ctx context.Context, cmd types.DisposeEquipmentCommand) (*types.EquipmentDTO, error) {
	ctx, span := s.startSpan(ctx, "EquipmentService.DisposeEquipment", attribute.String("equipment.id", deref(cmd.EquipmentID)))
	defer span.End()

	s.logInfo(ctx, "disposing equipment", slog.String("equipment.id", deref(cmd.EquipmentID)))
	result, err := s.inner.DisposeEquipment(ctx, cmd)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to dispose equipment", slog.String("equipment.id", deref(cmd.EquipmentID)))
	}
	s.metrics.recordDisposed(ctx)
	s.logInfo(ctx, "equipment disposed", slog.String("equipment.id", result.ID))
	return result, nil
}

func (s *Service) ListBorrowingsByEmployee(ctx context.Context, employeeID string) ([]types.BorrowingDTO, error) {
	ctx, span := s.startSpan(ctx, "EquipmentService.ListBorrowingsByEmployee", attribute.String("employee.id", employeeID))
	defer span.End()

	result, err := s.inner.ListBorrowingsByEmployee(ctx, employeeID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list borrowings", slog.String("employee.id", employeeID))
	}
	span.SetAttributes(attribute.Int("borrowing.count", len(result)))
	return result, nil
}

func (s *Service) RefreshStatuses(ctx context.Context) (int, error) {
	ctx, span := s.startSpan(ctx, "EquipmentService.RefreshStatuses")
	defer span.End()

	s.logInfo(ctx, "refreshing equipment statuses")
	changed, err := s.inner.RefreshStatuses(ctx)
	if err != nil {
		return changed, s.handleError(ctx, span, err, "failed to refresh statuses", slog.Int("changed", changed))
	}
	span.SetAttributes(attribute.Int("equipment.changed", changed))
	s.logInfo(ctx, "equipment statuses refreshed", slog.Int("changed", changed))
	return changed, nil
}

func (s *Service) startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	if id := platformobs.RequestIDFromContext(ctx); id != "" {
		attrs = append(attrs, attribute.String("request.id", id))
	}
	return s.tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, withRequestID(ctx, attrs)...)
}

func (s *Service) logError(ctx context.Context, level slog.Level, msg string, err error, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	s.logger.LogAttrs(ctx, level, msg, withRequestID(ctx, attrs)...)
}

func withRequestID(ctx context.Context, attrs []slog.Attr) []slog.Attr {
	if id := platformobs.RequestIDFromContext(ctx); id != "" {
		return append(attrs, slog.String("request.id", id))
	}
	return attrs
}

// handleError records err on the span. Rejections caused by the caller are
// logged at warn; anything else is logged at error and reported.
func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	if isExpected(err) {
		if errors.Is(err, application.ErrConflict) {
			s.metrics.recordConflict(ctx)
		}
		s.logError(ctx, slog.LevelWarn, msg, err, attrs...)
		return err
	}
	s.logError(ctx, slog.LevelError, msg, err, attrs...)
	if s.reporter != nil {
		s.reporter.Capture(ctx, err)
	}
	return err
}

func isExpected(err error) bool {
	return errors.Is(err, application.ErrInvalidInput) ||
		errors.Is(err, application.ErrConflict) ||
		errors.Is(err, ports.ErrNotFound)
}

func deref(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func defaultLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type serviceMetrics struct {
	registered metric.Int64Counter
	borrowed   metric.Int64Counter
	returned   metric.Int64Counter
	disposed   metric.Int64Counter
	conflicts  metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	registered, _ := m.Int64Counter("equipment.service.registered", metric.WithDescription("Number of equipment items registered"))
	borrowed, _ := m.Int64Counter("equipment.service.borrowed", metric.WithDescription("Number of borrowings created"))
	returned, _ := m.Int64Counter("equipment.service.returned", metric.WithDescription("Number of borrowings returned"))
	disposed, _ := m.Int64Counter("equipment.service.disposed", metric.WithDescription("Number of equipment items disposed"))
	conflicts, _ := m.Int64Counter("equipment.service.conflicts", metric.WithDescription("Number of requests rejected by aggregate state"))
	return serviceMetrics{registered: registered, borrowed: borrowed, returned: returned, disposed: disposed, conflicts: conflicts}
}

func (m serviceMetrics) recordRegistered(ctx context.Context) { addCounter(ctx, m.registered, 1) }

func (m serviceMetrics) recordBorrowed(ctx context.Context, status string) {
	addCounter(ctx, m.borrowed, 1, attribute.String("equipment.status", status))
}

func (m serviceMetrics) recordReturned(ctx context.Context) { addCounter(ctx, m.returned, 1) }
func (m serviceMetrics) recordDisposed(ctx context.Context) { addCounter(ctx, m.disposed, 1) }
func (m serviceMetrics) recordConflict(ctx context.Context) { addCounter(ctx, m.conflicts, 1) }

func addCounter(ctx context.Context, counter metric.Int64Counter, value int64, attrs ...attribute.KeyValue) {
	if counter == nil {
		return
	}
	counter.Add(ctx, value, metric.WithAttributes(attrs...))
}

var _ ports.Service = (*Service)(nil)
