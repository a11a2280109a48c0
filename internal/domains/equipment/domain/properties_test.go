package domain

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

var epoch = Date(2025, time.January, 1)

func dayGen(label string) *rapid.Generator[time.Time] {
	return rapid.Custom(func(t *rapid.T) time.Time {
		return epoch.AddDate(0, 0, rapid.IntRange(0, 120).Draw(t, label))
	})
}

func periodGen() *rapid.Generator[Period] {
	return rapid.Custom(func(t *rapid.T) Period {
		from := dayGen("from").Draw(t, "from")
		length := rapid.IntRange(1, 20).Draw(t, "length")
		p, err := RestorePeriod(from, from.AddDate(0, 0, length))
		if err != nil {
			t.Fatalf("generated invalid period: %v", err)
		}
		return p
	})
}

func TestProperty_PeriodValidity(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		from := dayGen("from").Draw(t, "from")
		to := dayGen("to").Draw(t, "to")
		now := dayGen("today").Draw(t, "today")

		_, err := NewPeriod(from, to, now)
		switch {
		case !from.Before(to):
			require.ErrorIs(t, err, ErrInvalidRange)
		case from.Before(now):
			require.ErrorIs(t, err, ErrPastDate)
		default:
			require.NoError(t, err)
		}
	})
}

func TestProperty_OverlapSymmetry(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a := periodGen().Draw(t, "a")
		b := periodGen().Draw(t, "b")
		require.Equal(t, a.Overlaps(b), b.Overlaps(a))
	})
}

func TestProperty_OverlapInclusivity(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a := periodGen().Draw(t, "a")
		length := rapid.IntRange(1, 10).Draw(t, "length")

		touching, err := RestorePeriod(a.To(), a.To().AddDate(0, 0, length))
		require.NoError(t, err)
		adjacent, err := RestorePeriod(a.To().AddDate(0, 0, 1), a.To().AddDate(0, 0, 1+length))
		require.NoError(t, err)

		require.True(t, a.Overlaps(touching))
		require.False(t, a.Overlaps(adjacent))
	})
}

func TestProperty_NoDoubleBookingAndStatusDerivation(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		now := dayGen("today").Draw(t, "today")
		eq := NewEquipment(EquipmentID{value: "eq-prop"}, EquipmentName{value: "Projector"})
		emp := EmployeeID{value: "emp-prop"}

		attempts := rapid.IntRange(1, 15).Draw(t, "attempts")
		for i := 0; i < attempts; i++ {
			period := periodGen().Draw(t, "period")
			b := NewBorrowing(BorrowingID{value: fmt.Sprintf("brw-%d", i)}, emp, eq.ID(), period)

			next, err := eq.Borrow(b, now)
			if err != nil {
				require.ErrorIs(t, err, ErrPeriodOverlap)
				continue
			}
			eq = next
		}

		borrowings := eq.Borrowings()
		for i := range borrowings {
			for j := i + 1; j < len(borrowings); j++ {
				require.False(t, borrowings[i].Overlaps(borrowings[j]))
			}
		}

		refreshed := eq.RefreshStatus(now)
		want := StatusAvailable
		for _, b := range borrowings {
			if b.Contains(now) {
				want = StatusBorrowed
			}
		}
		require.Equal(t, want, eq.Status())
		require.Equal(t, want, refreshed.Status())
	})
}

func TestProperty_DisposalGating(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		now := dayGen("today").Draw(t, "today")
		count := rapid.IntRange(0, 5).Draw(t, "count")

		var borrowings []Borrowing
		cursor := epoch
		for i := 0; i < count; i++ {
			cursor = cursor.AddDate(0, 0, rapid.IntRange(1, 15).Draw(t, "gap"))
			end := cursor.AddDate(0, 0, rapid.IntRange(1, 10).Draw(t, "length"))
			p, err := RestorePeriod(cursor, end)
			require.NoError(t, err)
			borrowings = append(borrowings, NewBorrowing(BorrowingID{value: fmt.Sprintf("brw-%d", i)}, EmployeeID{value: "emp-prop"}, EquipmentID{value: "eq-prop"}, p))
			cursor = end
		}
		eq, err := Reconstitute(EquipmentID{value: "eq-prop"}, EquipmentName{value: "Projector"}, StatusAvailable, borrowings)
		require.NoError(t, err)

		blocked := false
		for _, b := range borrowings {
			if !b.Period().To().Before(now) {
				blocked = true
			}
		}

		disposed, err := eq.Dispose(now)
		if blocked {
			require.ErrorIs(t, err, ErrCannotDisposeWhileBorrowed)
			return
		}
		require.NoError(t, err)
		require.Equal(t, StatusDisposed, disposed.Status())

		_, err = disposed.Dispose(now)
		require.ErrorIs(t, err, ErrAlreadyDisposed)
		_, err = disposed.Borrow(NewBorrowing(BorrowingID{value: "brw-late"}, EmployeeID{value: "emp-prop"}, eq.ID(), periodGen().Draw(t, "late")), now)
		require.ErrorIs(t, err, ErrAlreadyDisposed)
	})
}
