// Package refresh — один отменяемый планировщик периодических задач
// вместо таймеров, размазанных по страницам.
package refresh

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Refresher раз в interval зовёт fn, пока его не остановят.
type Refresher struct {
	interval time.Duration
	fn       func(context.Context)
	log      *zap.Logger

	mu      sync.Mutex
	cancel  context.CancelFunc
	done    chan struct{}
	running bool
}

func NewRefresher(interval time.Duration, fn func(context.Context), log *zap.Logger) *Refresher {
	if log == nil {
		log = zap.NewNop()
	}
	return &Refresher{interval: interval, fn: fn, log: log}
}

// Start запускает цикл. Повторный Start при работающем цикле — no-op.
// Первый вызов fn происходит сразу, не дожидаясь первого тика.
func (r *Refresher) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.running {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	r.cancel = cancel
	r.done = make(chan struct{})
	r.running = true

	go r.loop(ctx, r.done)
}

func (r *Refresher) loop(ctx context.Context, done chan struct{}) {
	defer close(done)

	r.fn(ctx)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.fn(ctx)
		}
	}
}

// Stop останавливает цикл и дожидается его завершения. Идемпотентен:
// страницу сносят и навигацией, и остановкой сервера.
func (r *Refresher) Stop() {
	r.mu.Lock()
	if !r.running {
		r.mu.Unlock()
		return
	}
	r.running = false
	cancel := r.cancel
	done := r.done
	r.mu.Unlock()

	cancel()
	<-done
	r.log.Debug("refresher stopped")
}

func (r *Refresher) IsActive() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.running
}
