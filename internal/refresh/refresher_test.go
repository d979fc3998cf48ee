package refresh

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartCallsImmediately(t *testing.T) {
	called := make(chan struct{}, 1)
	r := NewRefresher(time.Hour, func(context.Context) {
		select {
		case called <- struct{}{}:
		default:
		}
	}, nil)

	r.Start()
	defer r.Stop()

	select {
	case <-called:
	case <-time.After(2 * time.Second):
		t.Fatal("первый вызов не случился сразу после Start")
	}
	assert.True(t, r.IsActive())
}

func TestTicksUntilStopped(t *testing.T) {
	var calls int64
	r := NewRefresher(5*time.Millisecond, func(context.Context) {
		atomic.AddInt64(&calls, 1)
	}, nil)

	r.Start()
	require.Eventually(t, func() bool {
		return atomic.LoadInt64(&calls) >= 3
	}, 2*time.Second, time.Millisecond)

	r.Stop()
	assert.False(t, r.IsActive())

	// После Stop вызовов больше нет.
	after := atomic.LoadInt64(&calls)
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, after, atomic.LoadInt64(&calls))
}

// Stop дожидается завершения текущего вызова fn.
func TestStopWaitsForInflightCall(t *testing.T) {
	release := make(chan struct{})
	var finished atomic.Bool

	r := NewRefresher(time.Hour, func(context.Context) {
		<-release
		finished.Store(true)
	}, nil)

	r.Start()
	go func() {
		time.Sleep(10 * time.Millisecond)
		close(release)
	}()
	r.Stop()
	assert.True(t, finished.Load())
}

func TestStopIsIdempotent(t *testing.T) {
	r := NewRefresher(time.Hour, func(context.Context) {}, nil)

	r.Stop() // до Start тоже безопасно
	r.Start()
	r.Stop()
	r.Stop()
	assert.False(t, r.IsActive())
}

func TestConcurrentStartStop(t *testing.T) {
	r := NewRefresher(time.Millisecond, func(context.Context) {}, nil)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.Start()
			r.Stop()
		}()
	}
	wg.Wait()
	assert.False(t, r.IsActive())
}

// Повторный Start при живом цикле не плодит второй goroutine:
// частота вызовов соответствует одному циклу.
func TestDoubleStartNoop(t *testing.T) {
	var calls int64
	r := NewRefresher(time.Hour, func(context.Context) {
		atomic.AddInt64(&calls, 1)
	}, nil)

	r.Start()
	r.Start()
	defer r.Stop()

	require.Eventually(t, func() bool {
		return atomic.LoadInt64(&calls) >= 1
	}, 2*time.Second, time.Millisecond)
	// Интервал час, повторный Start должен был вызвать fn ещё раз,
	// будь он не no-op.
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, int64(1), atomic.LoadInt64(&calls))
}

func TestRestartAfterStop(t *testing.T) {
	var calls int64
	r := NewRefresher(time.Hour, func(context.Context) {
		atomic.AddInt64(&calls, 1)
	}, nil)

	r.Start()
	r.Stop()
	r.Start()
	defer r.Stop()

	require.Eventually(t, func() bool {
		return atomic.LoadInt64(&calls) == 2
	}, 2*time.Second, time.Millisecond)
}
