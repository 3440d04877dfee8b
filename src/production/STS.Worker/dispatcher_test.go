package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	logger "gitlab.com/stratosense1/sts.iot_server/src/production/STS.Logger"
)

func testLogger() *logger.Logger {
	nop := zerolog.Nop()
	return &logger.Logger{Logger: &nop}
}

func TestDispatchRunsTask(t *testing.T) {
	d := NewDispatcher(testLogger(), 2, 8, 1, 0)
	d.Start()

	var ran int32
	d.Dispatch("probe", func(ctx context.Context) error {
		atomic.AddInt32(&ran, 1)
		return nil
	})
	d.Stop()

	require.Equal(t, int32(1), atomic.LoadInt32(&ran))
}

func TestDispatchRetriesUntilSuccess(t *testing.T) {
	d := NewDispatcher(testLogger(), 1, 8, 3, time.Millisecond)
	d.Start()

	var attempts int32
	d.Dispatch("flaky", func(ctx context.Context) error {
		if atomic.AddInt32(&attempts, 1) < 3 {
			return errors.New("transient")
		}
		return nil
	})
	d.Stop()

	require.Equal(t, int32(3), atomic.LoadInt32(&attempts))
}

func TestDispatchGivesUpAfterAttempts(t *testing.T) {
	d := NewDispatcher(testLogger(), 1, 8, 2, time.Millisecond)
	d.Start()

	var attempts int32
	d.Dispatch("doomed", func(ctx context.Context) error {
		atomic.AddInt32(&attempts, 1)
		return errors.New("permanent")
	})
	d.Stop()

	require.Equal(t, int32(2), atomic.LoadInt32(&attempts))
}

func TestDispatchFullQueueStillRuns(t *testing.T) {
	// One worker, queue of one, and a task that blocks the worker:
	// further submissions overflow onto their own goroutines instead
	// of being dropped.
	d := NewDispatcher(testLogger(), 1, 1, 1, 0)
	d.Start()

	release := make(chan struct{})
	d.Dispatch("blocker", func(ctx context.Context) error {
		<-release
		return nil
	})

	var ran int32
	for i := 0; i < 5; i++ {
		d.Dispatch("overflow", func(ctx context.Context) error {
			atomic.AddInt32(&ran, 1)
			return nil
		})
	}

	close(release)
	d.Stop()

	require.Equal(t, int32(5), atomic.LoadInt32(&ran))
}

func TestDispatchAfterStopIsDropped(t *testing.T) {
	d := NewDispatcher(testLogger(), 1, 8, 1, 0)
	d.Start()
	d.Stop()

	var ran int32
	d.Dispatch("late", func(ctx context.Context) error {
		atomic.AddInt32(&ran, 1)
		return nil
	})

	require.Equal(t, int32(0), atomic.LoadInt32(&ran))
}

func TestTasksRunOnBackgroundContext(t *testing.T) {
	d := NewDispatcher(testLogger(), 1, 8, 1, 0)
	d.Start()

	var sawDeadline int32
	d.Dispatch("ctx-probe", func(ctx context.Context) error {
		if _, ok := ctx.Deadline(); ok {
			atomic.AddInt32(&sawDeadline, 1)
		}
		return ctx.Err()
	})
	d.Stop()

	require.Equal(t, int32(0), atomic.LoadInt32(&sawDeadline))
}
