package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLocation_UsesZoneCalendarDay(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	c := NewLocation(tokyo)
	c.now = func() time.Time { return time.Date(2025, time.October, 19, 20, 0, 0, 0, time.UTC) }

	require.Equal(t, time.Date(2025, time.October, 20, 0, 0, 0, 0, time.UTC), c.Today())
}

func TestLoadLocation(t *testing.T) {
	c, err := LoadLocation("")
	require.NoError(t, err)
	require.Equal(t, time.UTC, c.loc)

	_, err = LoadLocation("Nowhere/City")
	require.Error(t, err)
}

func TestFixed(t *testing.T) {
	c := NewFixed(time.Date(2025, time.October, 20, 15, 30, 0, 0, time.UTC))
	require.Equal(t, time.Date(2025, time.October, 20, 0, 0, 0, 0, time.UTC), c.Today())

	c.Set(time.Date(2025, time.October, 21, 0, 0, 0, 0, time.UTC))
	require.Equal(t, 21, c.Today().Day())
}
