package async_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openjwt/jwtvalidator/core/async"
)

func TestScheduler_RunsImmediatelyThenOnInterval(t *testing.T) {
	t.Parallel()

	var calls atomic.Int64
	s := async.NewScheduler(10*time.Millisecond, func(context.Context) {
		calls.Add(1)
	})

	s.Start(context.Background())
	defer s.Stop()

	require.Equal(t, int64(1), calls.Load(), "Start should run fn synchronously once")

	require.Eventually(t, func() bool {
		return calls.Load() >= int64(3)
	}, time.Second, time.Millisecond)
}

func TestScheduler_StopHaltsFurtherRuns(t *testing.T) {
	t.Parallel()

	var calls atomic.Int64
	s := async.NewScheduler(5*time.Millisecond, func(context.Context) {
		calls.Add(1)
	})

	s.Start(context.Background())
	time.Sleep(20 * time.Millisecond)
	s.Stop()

	after := calls.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, after, calls.Load())
}

func TestScheduler_StopBeforeStartIsNoop(t *testing.T) {
	t.Parallel()

	s := async.NewScheduler(time.Second, func(context.Context) {})
	s.Stop()
}
