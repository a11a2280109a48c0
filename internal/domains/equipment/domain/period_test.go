package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var today = Date(2025, time.October, 20)

func TestNewPeriod_ValidationOrder(t *testing.T) {
	cases := []struct {
		name string
		from time.Time
		to   time.Time
		want error
	}{
		{"missing from wins over everything", time.Time{}, time.Time{}, ErrFromIsNull},
		{"missing to", Date(2025, time.October, 21), time.Time{}, ErrToIsNull},
		{"equal bounds", Date(2025, time.October, 21), Date(2025, time.October, 21), ErrInvalidRange},
		{"reversed bounds in the past", Date(2025, time.October, 10), Date(2025, time.October, 5), ErrInvalidRange},
		{"start before today", Date(2025, time.October, 19), Date(2025, time.October, 25), ErrPastDate},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewPeriod(tc.from, tc.to, today)
			require.ErrorIs(t, err, tc.want)
			require.ErrorIs(t, err, ErrPeriod)
		})
	}
}

func TestNewPeriod_ErrorsCarryPayload(t *testing.T) {
	_, err := NewPeriod(Date(2025, time.October, 25), Date(2025, time.October, 22), today)
	var rangeErr *InvalidRangeError
	require.True(t, errors.As(err, &rangeErr))
	require.Equal(t, Date(2025, time.October, 25), rangeErr.From)
	require.Equal(t, Date(2025, time.October, 22), rangeErr.To)

	_, err = NewPeriod(Date(2025, time.October, 1), Date(2025, time.October, 22), today)
	var pastErr *PastDateError
	require.True(t, errors.As(err, &pastErr))
	require.Equal(t, Date(2025, time.October, 1), pastErr.From)
	require.Equal(t, today, pastErr.Today)
}

func TestNewPeriod_StartingTodayIsAccepted(t *testing.T) {
	p, err := NewPeriod(today, Date(2025, time.October, 21), today)
	require.NoError(t, err)
	require.Equal(t, today, p.From())
	require.Equal(t, Date(2025, time.October, 21), p.To())
}

func TestNewPeriod_IgnoresTimeOfDay(t *testing.T) {
	from := time.Date(2025, time.October, 20, 23, 59, 0, 0, time.UTC)
	now := time.Date(2025, time.October, 20, 8, 0, 0, 0, time.UTC)
	p, err := NewPeriod(from, Date(2025, time.October, 22), now)
	require.NoError(t, err)
	require.Equal(t, today, p.From())
}

func TestPeriod_OverlapIsInclusive(t *testing.T) {
	first := mustPeriod(t, Date(2025, time.October, 20), Date(2025, time.October, 25))
	touching := mustPeriod(t, Date(2025, time.October, 25), Date(2025, time.October, 30))
	adjacent := mustPeriod(t, Date(2025, time.October, 26), Date(2025, time.October, 30))

	require.True(t, first.Overlaps(touching))
	require.True(t, touching.Overlaps(first))
	require.False(t, first.Overlaps(adjacent))
	require.False(t, adjacent.Overlaps(first))
}

func TestPeriod_ContainsAndOngoing(t *testing.T) {
	p := mustPeriod(t, Date(2025, time.October, 20), Date(2025, time.October, 25))

	require.True(t, p.Contains(Date(2025, time.October, 20)))
	require.True(t, p.Contains(Date(2025, time.October, 25)))
	require.False(t, p.Contains(Date(2025, time.October, 26)))

	require.True(t, p.IsOngoingOrFuture(Date(2025, time.October, 25)))
	require.False(t, p.IsOngoingOrFuture(Date(2025, time.October, 26)))
}

func TestRestorePeriod_AllowsPastRanges(t *testing.T) {
	p, err := RestorePeriod(Date(2025, time.October, 1), Date(2025, time.October, 5))
	require.NoError(t, err)
	require.Equal(t, "[2025-10-01, 2025-10-05]", p.String())

	_, err = RestorePeriod(Date(2025, time.October, 5), Date(2025, time.October, 1))
	require.ErrorIs(t, err, ErrInvalidRange)
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-10-20")
	require.NoError(t, err)
	require.Equal(t, today, d)

	_, err = ParseDate("20/10/2025")
	require.Error(t, err)
}

func mustPeriod(t *testing.T, from, to time.Time) Period {
	t.Helper()
	p, err := RestorePeriod(from, to)
	require.NoError(t, err)
	return p
}
