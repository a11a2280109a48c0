package clock

import (
	"sync"
	"time"

	"github.com/Apurer/equipment-lending-api/internal/domains/equipment/domain"
)

// Location derives the calendar day from the wall clock of a configured time zone.
type Location struct {
	loc *time.Location
	now func() time.Time
}

// NewLocation falls back to UTC when loc is nil.
func NewLocation(loc *time.Location) *Location {
	if loc == nil {
		loc = time.UTC
	}
	return &Location{loc: loc, now: time.Now}
}

// LoadLocation resolves an IANA zone name such as "Asia/Tokyo". Empty means UTC.
func LoadLocation(name string) (*Location, error) {
	if name == "" {
		return NewLocation(time.UTC), nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, err
	}
	return NewLocation(loc), nil
}

func (c *Location) Today() time.Time {
	return domain.Day(c.now().In(c.loc))
}

// Fixed always reports the same day. Set moves it.
type Fixed struct {
	mu  sync.RWMutex
	day time.Time
}

func NewFixed(day time.Time) *Fixed {
	return &Fixed{day: domain.Day(day)}
}

func (c *Fixed) Today() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.day
}

func (c *Fixed) Set(day time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.day = domain.Day(day)
}
