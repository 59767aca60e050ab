package services

import (
	"context"
	"sync"
	"time"

	"canvas_shop_backend/pkg/utils"
)

// backgroundTasks runs fire-and-forget side effects detached from the request context.
type backgroundTasks struct {
	wg sync.WaitGroup
}

// Go runs fn with its own timeout. A returned error is logged and otherwise dropped.
func (b *backgroundTasks) Go(name string, timeout time.Duration, fn func(ctx context.Context) error) {
	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if err := fn(ctx); err != nil {
			utils.LogError(err, "Background task failed", map[string]interface{}{"task": name})
		}
	}()
}

// Wait blocks until every started task has returned.
func (b *backgroundTasks) Wait() {
	b.wg.Wait()
}
