package ports

import (
	"context"
	"errors"
	"time"
)

// ErrIdempotencyConflict indicates the same key was used with a different payload or target.
var ErrIdempotencyConflict = errors.New("idempotency conflict")

// IdempotencyRecord links a client supplied key to the equipment it registered.
type IdempotencyRecord struct {
	Key         string
	RequestHash string
	EquipmentID string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IdempotencyStore persists idempotency keys so registration retries can be replayed safely.
type IdempotencyStore interface {
	// Get returns the stored record for the key, or nil when unknown.
	Get(ctx context.Context, key string) (*IdempotencyRecord, error)
	// Save persists the record. A key already bound to another request hash or
	// equipment yields ErrIdempotencyConflict together with the stored record.
	Save(ctx context.Context, record IdempotencyRecord) (*IdempotencyRecord, error)
	// Delete releases a key whose registration could not be completed.
	Delete(ctx context.Context, key string) error
}
