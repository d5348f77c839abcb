package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLateFine_OnOrBeforeDueDate(t *testing.T) {
	due := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, int64(0), LateFine(due, due, 10), "returning exactly on the due date costs nothing")
	assert.Equal(t, int64(0), LateFine(due, due.Add(-48*time.Hour), 10))
	assert.Equal(t, int64(0), LateFine(due, due.Add(-time.Second), 10))
}

func TestLateFine_WholeDaysLate(t *testing.T) {
	due := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, int64(30), LateFine(due, due.Add(3*24*time.Hour), 10))
	assert.Equal(t, int64(10), LateFine(due, due.Add(24*time.Hour), 10))
}

func TestLateFine_PartialDaysRoundUp(t *testing.T) {
	due := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, int64(10), LateFine(due, due.Add(time.Minute), 10))
	assert.Equal(t, int64(40), LateFine(due, due.Add(3*24*time.Hour+time.Second), 10))
}

func TestLateFine_RateApplied(t *testing.T) {
	due := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, int64(75), LateFine(due, due.Add(3*24*time.Hour), 25))
}

func TestLateFine_Monotonic(t *testing.T) {
	due := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	prev := int64(0)
	for hours := 0; hours <= 14*24; hours += 7 {
		fine := LateFine(due, due.Add(time.Duration(hours)*time.Hour), 10)
		assert.GreaterOrEqual(t, fine, prev, "fine must never decrease as the return gets later")
		prev = fine
	}
}
