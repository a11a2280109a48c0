package ids

import (
	"crypto/rand"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// ULIDGenerator issues lexically sortable identifiers prefixed with a type tag.
type ULIDGenerator struct {
	mu      sync.Mutex
	now     func() time.Time
	entropy io.Reader
}

func NewULIDGenerator() *ULIDGenerator {
	return &ULIDGenerator{
		now:     time.Now,
		entropy: ulid.Monotonic(rand.Reader, 0),
	}
}

// WithClock overrides the timestamp source for deterministic testing.
func (g *ULIDGenerator) WithClock(now func() time.Time) *ULIDGenerator {
	if now != nil {
		g.now = now
	}
	return g
}

// Next returns prefix followed by a lowercase ULID, e.g. "eq-01jc3...".
func (g *ULIDGenerator) Next(prefix string) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	id := ulid.MustNew(ulid.Timestamp(g.now()), g.entropy)
	return prefix + strings.ToLower(id.String())
}
