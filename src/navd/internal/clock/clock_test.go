package clock

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	assert.NotNil(t, New())
}

func TestSleep(t *testing.T) {
	c := New()

	t.Run("zero duration returns immediately", func(t *testing.T) {
		assert.NoError(t, c.Sleep(context.Background(), 0))
	})

	t.Run("short sleep completes", func(t *testing.T) {
		assert.NoError(t, c.Sleep(context.Background(), time.Microsecond))
	})

	t.Run("cancelled context cuts the wait short", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := c.Sleep(ctx, time.Minute)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestNow(t *testing.T) {
	before := time.Now()
	now := New().Now()
	assert.False(t, now.Before(before))
}
