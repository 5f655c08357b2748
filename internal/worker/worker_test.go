package worker_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EgehanKilicarslan/notekeeper/internal/testutil"
	"github.com/EgehanKilicarslan/notekeeper/internal/worker"
)

func TestNewPool(t *testing.T) {
	pool := worker.NewPool(testutil.NewTestLogger())

	require.NotNil(t, pool)
	require.NotNil(t, pool.Context())
}

func TestPoolSubmit(t *testing.T) {
	pool := worker.NewPool(testutil.NewTestLogger())

	var counter int32
	for i := 0; i < 10; i++ {
		pool.Submit(func(ctx context.Context) {
			atomic.AddInt32(&counter, 1)
		})
	}

	pool.Shutdown(5 * time.Second)

	assert.Equal(t, int32(10), atomic.LoadInt32(&counter))
}

func TestPoolContext(t *testing.T) {
	pool := worker.NewPool(testutil.NewTestLogger())
	ctx := pool.Context()

	select {
	case <-ctx.Done():
		t.Fatal("context should not be done")
	default:
	}

	pool.Shutdown(time.Second)

	select {
	case <-ctx.Done():
	default:
		t.Fatal("context should be done after shutdown")
	}
}

func TestPoolEvery(t *testing.T) {
	pool := worker.NewPool(testutil.NewTestLogger())

	var runs int32
	pool.Every("counter", 10*time.Millisecond, time.Second, func(ctx context.Context) error {
		atomic.AddInt32(&runs, 1)
		return nil
	})

	assert.Eventually(t, func() bool {
		return atomic.LoadInt32(&runs) >= 3
	}, time.Second, 5*time.Millisecond)

	pool.Shutdown(time.Second)

	stopped := atomic.LoadInt32(&runs)
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, stopped, atomic.LoadInt32(&runs), "task should not run after shutdown")
}

func TestPoolEvery_FailureKeepsRunning(t *testing.T) {
	pool := worker.NewPool(testutil.NewTestLogger())

	var runs int32
	pool.Every("failing", 10*time.Millisecond, time.Second, func(ctx context.Context) error {
		atomic.AddInt32(&runs, 1)
		return errors.New("boom")
	})

	assert.Eventually(t, func() bool {
		return atomic.LoadInt32(&runs) >= 2
	}, time.Second, 5*time.Millisecond)

	pool.Shutdown(time.Second)
}

func TestPoolEvery_RunTimeout(t *testing.T) {
	pool := worker.NewPool(testutil.NewTestLogger())

	deadlines := make(chan bool, 1)
	pool.Every("deadline", 10*time.Millisecond, 20*time.Millisecond, func(ctx context.Context) error {
		_, ok := ctx.Deadline()
		select {
		case deadlines <- ok:
		default:
		}
		<-ctx.Done()
		return ctx.Err()
	})

	select {
	case ok := <-deadlines:
		assert.True(t, ok)
	case <-time.After(time.Second):
		t.Fatal("periodic task never ran")
	}

	pool.Shutdown(time.Second)
}

func TestPoolShutdown_Timeout(t *testing.T) {
	pool := worker.NewPool(testutil.NewTestLogger())

	release := make(chan struct{})
	pool.Submit(func(ctx context.Context) {
		<-release
	})

	start := time.Now()
	pool.Shutdown(50 * time.Millisecond)
	assert.Less(t, time.Since(start), time.Second)

	close(release)
}
