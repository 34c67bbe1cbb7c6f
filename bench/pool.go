package bench

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// PoolEngine runs one goroutine per chunk inside the current process.
// Each worker owns its chunk exclusively and writes exactly one result
// into its own slice slot; the slots are disjoint by worker id, so the
// slice itself needs no lock. Completion is a full barrier: every
// worker must report before results are handed back.
type PoolEngine struct {
	// JoinTimeout bounds the barrier wait; zero means
	// DefaultJoinTimeout.
	JoinTimeout time.Duration
}

func (p *PoolEngine) Run(ctx context.Context, chunks []WorkItemSet, transform Transform) ([]WorkerResult, error) {
	results := make([]WorkerResult, len(chunks))

	var wg sync.WaitGroup
	for i := range chunks {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			results[id] = runChunk(ctx, id, chunks[id], transform)
		}(i)
	}

	if err := joinBarrier(&wg, p.JoinTimeout); err != nil {
		return nil, err
	}
	return results, nil
}

// joinBarrier waits for every worker to signal completion, bounded by
// timeout. Expiry means at least one worker never reported, which is a
// broken benchmark rather than a broken item.
func joinBarrier(wg *sync.WaitGroup, timeout time.Duration) error {
	if timeout <= 0 {
		timeout = DefaultJoinTimeout
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-time.After(timeout):
		return &AggregationError{
			Reason: fmt.Sprintf("join barrier expired after %s; a worker never reported", timeout),
		}
	}
}
