package book

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBook(t *testing.T, totalCopies int) *Book {
	b, err := NewBook("The Go Programming Language", "Donovan", "Addison-Wesley", "978-0134190440", totalCopies)
	require.NoError(t, err)
	return b
}

func TestNewBook(t *testing.T) {
	t.Run("creates book with all copies available", func(t *testing.T) {
		b := newTestBook(t, 3)

		assert.Equal(t, 3, b.TotalCopies())
		assert.Equal(t, 3, b.AvailableCopies())
		assert.True(t, b.IsAvailable())
		assert.Equal(t, "available", b.Status())
	})

	t.Run("requires title", func(t *testing.T) {
		_, err := NewBook("", "Author", "", "", 1)
		assert.Error(t, err)
	})

	t.Run("requires author", func(t *testing.T) {
		_, err := NewBook("Title", "", "", "", 1)
		assert.Error(t, err)
	})

	t.Run("rejects zero copies", func(t *testing.T) {
		_, err := NewBook("Title", "Author", "", "", 0)
		assert.Error(t, err)
	})
}

func TestReconstructBook(t *testing.T) {
	now := time.Now()

	t.Run("rejects available above total", func(t *testing.T) {
		_, err := ReconstructBook(1, "Title", "Author", "", "", "", nil, 2, 3, now, now)
		assert.Error(t, err)
	})

	t.Run("rejects negative available", func(t *testing.T) {
		_, err := ReconstructBook(1, "Title", "Author", "", "", "", nil, 2, -1, now, now)
		assert.Error(t, err)
	})

	t.Run("accepts zero available", func(t *testing.T) {
		b, err := ReconstructBook(1, "Title", "Author", "", "", "", nil, 2, 0, now, now)
		require.NoError(t, err)
		assert.False(t, b.IsAvailable())
		assert.Equal(t, "borrowed", b.Status())
	})
}

func TestBook_BorrowCopies(t *testing.T) {
	t.Run("decrements available counter", func(t *testing.T) {
		b := newTestBook(t, 3)

		require.NoError(t, b.BorrowCopies(2))
		assert.Equal(t, 1, b.AvailableCopies())
		assert.Equal(t, 3, b.TotalCopies())
	})

	t.Run("fails when not enough copies", func(t *testing.T) {
		b := newTestBook(t, 2)

		err := b.BorrowCopies(3)
		assert.Error(t, err)
		assert.Equal(t, 2, b.AvailableCopies())
	})

	t.Run("rejects non-positive count", func(t *testing.T) {
		b := newTestBook(t, 2)

		assert.Error(t, b.BorrowCopies(0))
		assert.Error(t, b.BorrowCopies(-1))
	})

	t.Run("can take the last copy", func(t *testing.T) {
		b := newTestBook(t, 1)

		require.NoError(t, b.BorrowCopies(1))
		assert.False(t, b.IsAvailable())
		assert.False(t, b.CanBorrowCopies(1))
	})
}

func TestBook_ReturnCopy(t *testing.T) {
	t.Run("increments available counter", func(t *testing.T) {
		b := newTestBook(t, 2)
		require.NoError(t, b.BorrowCopies(2))

		require.NoError(t, b.ReturnCopy())
		assert.Equal(t, 1, b.AvailableCopies())
	})

	t.Run("never exceeds total copies", func(t *testing.T) {
		b := newTestBook(t, 2)

		err := b.ReturnCopy()
		assert.ErrorIs(t, err, ErrCounterDrift)
		assert.Equal(t, 2, b.AvailableCopies())
	})
}

func TestBook_AdjustTotalCopies(t *testing.T) {
	t.Run("growing stock adds available copies", func(t *testing.T) {
		b := newTestBook(t, 2)
		require.NoError(t, b.BorrowCopies(1))

		require.NoError(t, b.AdjustTotalCopies(5))
		assert.Equal(t, 5, b.TotalCopies())
		assert.Equal(t, 4, b.AvailableCopies())
	})

	t.Run("shrinking below copies out clamps available at zero", func(t *testing.T) {
		b := newTestBook(t, 5)
		require.NoError(t, b.BorrowCopies(4))

		require.NoError(t, b.AdjustTotalCopies(2))
		assert.Equal(t, 2, b.TotalCopies())
		assert.Equal(t, 0, b.AvailableCopies())
	})

	t.Run("rejects totals below one", func(t *testing.T) {
		b := newTestBook(t, 2)
		assert.Error(t, b.AdjustTotalCopies(0))
	})
}

func TestBook_Repair(t *testing.T) {
	t.Run("reports no drift when counter matches ledger", func(t *testing.T) {
		b := newTestBook(t, 3)
		require.NoError(t, b.BorrowCopies(2))

		previous, drifted := b.Repair(2)
		assert.False(t, drifted)
		assert.Equal(t, 1, previous)
		assert.Equal(t, 1, b.AvailableCopies())
	})

	t.Run("overwrites drifted counter from ledger count", func(t *testing.T) {
		b := newTestBook(t, 3)

		previous, drifted := b.Repair(2)
		assert.True(t, drifted)
		assert.Equal(t, 3, previous)
		assert.Equal(t, 1, b.AvailableCopies())
	})

	t.Run("clamps when ledger exceeds stock", func(t *testing.T) {
		b := newTestBook(t, 2)

		_, drifted := b.Repair(5)
		assert.True(t, drifted)
		assert.Equal(t, 0, b.AvailableCopies())
	})
}

func TestBook_ComputeAvailability(t *testing.T) {
	b := newTestBook(t, 3)

	assert.Equal(t, 3, b.ComputeAvailability(0))
	assert.Equal(t, 1, b.ComputeAvailability(2))
	assert.Equal(t, 0, b.ComputeAvailability(7))
}

func TestBook_UpdateDetails(t *testing.T) {
	b := newTestBook(t, 1)

	require.NoError(t, b.UpdateDetails("New Title", "New Author", "Pub", "isbn", "desc", []string{"go"}))
	assert.Equal(t, "New Title", b.Title())
	assert.Equal(t, []string{"go"}, b.Tags())

	assert.Error(t, b.UpdateDetails("", "Author", "", "", "", nil))
}

func TestBook_SetID(t *testing.T) {
	b := newTestBook(t, 1)

	require.NoError(t, b.SetID(7))
	assert.Equal(t, uint(7), b.ID())
	assert.Error(t, b.SetID(8))
}
