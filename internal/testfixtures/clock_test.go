package testfixtures

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClock_Advance(t *testing.T) {
	start := time.Date(2025, 7, 15, 12, 0, 0, 0, time.UTC)
	c := NewClock(start)

	assert.Equal(t, start, c.Now())
	assert.Equal(t, start.Add(time.Minute), c.Advance(time.Minute))
	assert.Equal(t, start.Add(time.Minute), c.Now())
}

func TestLogger_Contains(t *testing.T) {
	l := NewLogger()
	l.Warn("skipped record %d", 3)

	assert.True(t, l.Contains("WARN", "skipped record 3"))
	assert.False(t, l.Contains("ERROR", "skipped record 3"))
}
