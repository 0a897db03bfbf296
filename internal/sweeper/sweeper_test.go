package sweeper

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"courtside/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingExpirer struct {
	calls int64
}

func (c *countingExpirer) ExpireOverdue(ctx context.Context) (int64, error) {
	atomic.AddInt64(&c.calls, 1)
	return 0, nil
}

func TestSweeper_TicksOnSchedule(t *testing.T) {
	expirer := &countingExpirer{}
	s := New(expirer, logger.GetDefault(), "@every 100ms")

	require.NoError(t, s.Start())
	time.Sleep(350 * time.Millisecond)
	s.Stop()

	ticked := atomic.LoadInt64(&expirer.calls)
	assert.GreaterOrEqual(t, ticked, int64(1))

	// No further ticks after Stop returns.
	time.Sleep(250 * time.Millisecond)
	assert.Equal(t, ticked, atomic.LoadInt64(&expirer.calls))
}

func TestSweeper_BadSchedule(t *testing.T) {
	s := New(&countingExpirer{}, logger.GetDefault(), "not a schedule")
	assert.Error(t, s.Start())
}
