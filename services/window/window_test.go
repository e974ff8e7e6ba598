package window_test

import (
	"testing"
	"time"

	"rentwatch/services/window"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, time.March, 1, 9, 30, 0, 0, time.UTC)

func TestCompute_ForwardIncludesBothEnds(t *testing.T) {
	w := window.Compute(now, 15, window.Forward)
	require.NotNil(t, w.Lower)
	require.NotNil(t, w.Upper)

	assert.True(t, w.Lower.Inclusive)
	assert.True(t, w.Upper.Inclusive)
	assert.True(t, w.Contains(now))
	assert.True(t, w.Contains(now.Add(15*window.Day)))
	assert.False(t, w.Contains(now.Add(15*window.Day+time.Millisecond)))
	assert.False(t, w.Contains(now.Add(16*window.Day)))
	assert.False(t, w.Contains(now.Add(-time.Millisecond)))
}

func TestCompute_BackwardIsStrictlyBeforeCutoff(t *testing.T) {
	w := window.Compute(now, 30, window.Backward)
	require.Nil(t, w.Lower)
	require.NotNil(t, w.Upper)

	cutoff := now.Add(-30 * window.Day)
	assert.Equal(t, cutoff, w.Upper.At)
	assert.False(t, w.Upper.Inclusive)
	assert.False(t, w.Contains(cutoff))
	assert.True(t, w.Contains(cutoff.Add(-time.Millisecond)))
	assert.True(t, w.Contains(time.Time{}))
}

func TestMonth_HalfOpen(t *testing.T) {
	w := window.Month(2024, time.February, time.UTC)

	assert.Equal(t, time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC), w.Lower.At)
	assert.Equal(t, time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), w.Upper.At)
	assert.True(t, w.Contains(w.Lower.At))
	assert.False(t, w.Contains(w.Upper.At))
	assert.Equal(t, time.Date(2024, time.February, 29, 23, 59, 59, int(999*time.Millisecond), time.UTC), w.LastInstant())
}

func TestMonth_DecemberRollsIntoNextYear(t *testing.T) {
	w := window.Month(2023, time.December, nil)

	assert.Equal(t, time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), w.Upper.At)
}

func TestMonth_InLocation(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	w := window.Month(2024, time.March, tokyo)

	assert.Equal(t, time.Date(2024, time.February, 29, 15, 0, 0, 0, time.UTC), w.Lower.At.UTC())
}

func TestDaysUntil_RoundsUp(t *testing.T) {
	assert.Equal(t, 15, window.DaysUntil(now, now.Add(15*window.Day)))
	assert.Equal(t, 15, window.DaysUntil(now, now.Add(14*window.Day+time.Hour)))
	assert.Equal(t, 1, window.DaysUntil(now, now.Add(time.Minute)))
	assert.Equal(t, 0, window.DaysUntil(now, now))
}
