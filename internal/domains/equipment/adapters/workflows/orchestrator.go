package workflows

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	oteltrace "go.opentelemetry.io/otel/trace"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/temporal"

	"github.com/Apurer/equipment-lending-api/internal/domains/equipment/application"
	types "github.com/Apurer/equipment-lending-api/internal/domains/equipment/application/types"
	"github.com/Apurer/equipment-lending-api/internal/domains/equipment/ports"
	equipmentactivities "github.com/Apurer/equipment-lending-api/internal/platform/temporal/activities/equipment"
	equipmentworkflows "github.com/Apurer/equipment-lending-api/internal/platform/temporal/workflows/equipment"
)

var (
	_ ports.WorkflowOrchestrator = (*TemporalEquipmentWorkflows)(nil)
	_ ports.WorkflowOrchestrator = (*InlineEquipmentWorkflows)(nil)
)

// TemporalEquipmentWorkflows starts equipment workflows on a Temporal cluster.
type TemporalEquipmentWorkflows struct {
	client    client.Client
	taskQueue string
}

// NewTemporalEquipmentWorkflows wires a Temporal client into the orchestrator.
func NewTemporalEquipmentWorkflows(c client.Client) *TemporalEquipmentWorkflows {
	return &TemporalEquipmentWorkflows{client: c, taskQueue: equipmentworkflows.TaskQueue}
}

// RegisterEquipment starts the Temporal workflow that persists a new equipment item.
func (o *TemporalEquipmentWorkflows) RegisterEquipment(ctx context.Context, cmd types.RegisterEquipmentCommand) (*types.EquipmentDTO, error) {
	if o == nil || o.client == nil {
		return nil, errors.New("temporal equipment workflows not configured")
	}
	traceComponent := workflowTraceComponent(ctx)
	workflowID := buildRegistrationWorkflowID(cmd, traceComponent)
	options := client.StartWorkflowOptions{
		ID:        workflowID,
		TaskQueue: o.taskQueue,
	}
	run, err := o.client.ExecuteWorkflow(
		ctx,
		options,
		equipmentworkflows.RegistrationWorkflow,
		equipmentworkflows.RegistrationWorkflowInput{Command: cmd, TraceID: traceComponent},
	)
	if err != nil {
		var alreadyStarted *serviceerror.WorkflowExecutionAlreadyStarted
		if errors.As(err, &alreadyStarted) && strings.TrimSpace(cmd.IdempotencyKey) != "" {
			run = o.client.GetWorkflow(ctx, workflowID, alreadyStarted.RunId)
		} else {
			return nil, err
		}
	}
	var dto types.EquipmentDTO
	if err := run.Get(ctx, &dto); err != nil {
		return nil, fromWorkflowError(err)
	}
	return &dto, nil
}

// InlineEquipmentWorkflows executes the service directly without Temporal, useful for tests or dev fallbacks.
type InlineEquipmentWorkflows struct {
	service ports.Service
}

// NewInlineEquipmentWorkflows wraps the equipment service for synchronous execution.
func NewInlineEquipmentWorkflows(service ports.Service) *InlineEquipmentWorkflows {
	return &InlineEquipmentWorkflows{service: service}
}

// RegisterEquipment delegates to the application service without durable orchestration.
func (o *InlineEquipmentWorkflows) RegisterEquipment(ctx context.Context, cmd types.RegisterEquipmentCommand) (*types.EquipmentDTO, error) {
	if o == nil || o.service == nil {
		return nil, errors.New("inline equipment workflows not configured")
	}
	return o.service.RegisterEquipment(ctx, cmd)
}

// fromWorkflowError restores the application error families lost in serialization.
func fromWorkflowError(err error) error {
	var appErr *temporal.ApplicationError
	if !errors.As(err, &appErr) {
		return err
	}
	switch appErr.Type() {
	case equipmentactivities.ErrTypeInvalidInput:
		return fmt.Errorf("%w: %s", application.ErrInvalidInput, appErr.Message())
	case equipmentactivities.ErrTypeConflict:
		return fmt.Errorf("%w: %s", application.ErrConflict, appErr.Message())
	}
	return err
}

func buildRegistrationWorkflowID(cmd types.RegisterEquipmentCommand, traceComponent string) string {
	if key := strings.TrimSpace(cmd.IdempotencyKey); key != "" {
		return fmt.Sprintf("equipment-registration-idem-%s", hashIdempotencyKey(key))
	}
	return fmt.Sprintf("equipment-registration-%d-%s", time.Now().UnixNano(), traceComponent)
}

func hashIdempotencyKey(key string) string {
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:8])
}

func workflowTraceComponent(ctx context.Context) string {
	if traceID := workflowTraceID(ctx); traceID != "" {
		return traceID
	}
	return fmt.Sprintf("fallback-%d", time.Now().UnixNano())
}

func workflowTraceID(ctx context.Context) string {
	spanCtx := oteltrace.SpanContextFromContext(ctx)
	if !spanCtx.IsValid() {
		return ""
	}
	return spanCtx.TraceID().String()
}
