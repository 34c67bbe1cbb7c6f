package bench

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// DefaultJoinTimeout bounds the wait at the join barrier. A worker
// that has not reported by then is treated as failed instead of
// blocking the coordinator forever.
const DefaultJoinTimeout = 10 * time.Minute

// Engine runs one concurrent pass over a partitioned work set and
// returns exactly one result per worker, indexed by worker id.
type Engine interface {
	Run(ctx context.Context, chunks []WorkItemSet, transform Transform) ([]WorkerResult, error)
}

// Executor owns the effective configuration for a benchmark run and
// coordinates the sequential baseline and the concurrent pass.
type Executor struct {
	Mode      Mode
	Transform Transform
	Engine    Engine
	Reporter  Reporter
}

// NewExecutor wires the engine for the requested mode. The transform
// is injected so tests can substitute the image leaf.
func NewExecutor(mode Mode, transform Transform) (*Executor, error) {
	e := &Executor{
		Mode:      mode,
		Transform: transform,
		Reporter:  &SilentReporter{},
	}
	switch mode {
	case ModeSequential:
		e.Engine = SequentialEngine{}
	case ModePool:
		e.Engine = &PoolEngine{}
	case ModeNode:
		e.Engine = &NodeEngine{}
	default:
		return nil, fmt.Errorf("unknown execution mode %q", mode)
	}
	return e, nil
}

// Run executes one benchmark configuration: a zero-concurrency
// baseline over the entire set, then the same set partitioned across
// the requested workers. Both passes apply the same transform to the
// same items, so the derived ratio is meaningful.
//
// Efficiency is SequentialTime / ParallelTime, computed once after the
// join barrier. An empty item set reports 1.0 by convention; a zero
// parallel span or a missing worker result is an AggregationError.
func (e *Executor) Run(ctx context.Context, items WorkItemSet, workers int) (*RunSummary, error) {
	if workers < 1 {
		return nil, ErrInvalidWorkers
	}

	sum := &RunSummary{
		RunID:      uuid.NewString(),
		Mode:       e.Mode,
		Workers:    workers,
		Discovered: len(items),
	}

	// Baseline: the whole set on the calling goroutine.
	seqStart := time.Now()
	baseline := runChunk(ctx, 0, items, e.Transform)
	sum.SequentialTime = time.Since(seqStart)
	log.Debug().Str("run", sum.RunID).Int("items", baseline.Count).
		Int("failed", baseline.Failed).Dur("elapsed", sum.SequentialTime).
		Msg("Sequential baseline complete")

	chunks, err := Split(items, workers)
	if err != nil {
		return nil, err
	}

	parStart := time.Now()
	results, err := e.Engine.Run(ctx, chunks, e.Transform)
	if err != nil {
		return nil, err
	}
	sum.ParallelTime = time.Since(parStart)

	if len(results) != workers {
		return nil, &AggregationError{
			Reason: fmt.Sprintf("expected %d worker results, collected %d", workers, len(results)),
		}
	}
	for i := range results {
		if results[i].WorkerID != i {
			return nil, &AggregationError{
				Reason: fmt.Sprintf("result slot %d reported by worker %d", i, results[i].WorkerID),
			}
		}
	}
	sum.Results = results

	if len(items) == 0 {
		// Nothing was measured; define the ratio instead of dividing
		// near-zero spans.
		sum.Efficiency = 1.0
		return sum, nil
	}
	if sum.ParallelTime <= 0 {
		return nil, &AggregationError{Reason: "parallel span measured as zero"}
	}
	sum.Efficiency = sum.SequentialTime.Seconds() / sum.ParallelTime.Seconds()
	return sum, nil
}

// Sweep runs the coordinator once per requested worker count and
// collects the summaries for the speedup table. Each run measures its
// own baseline so every summary satisfies the Run contract on its own.
func (e *Executor) Sweep(ctx context.Context, items WorkItemSet, workerCounts []int) ([]*RunSummary, error) {
	if len(workerCounts) == 0 {
		return nil, ErrInvalidWorkers
	}

	summaries := make([]*RunSummary, 0, len(workerCounts))
	for _, n := range workerCounts {
		e.Reporter.Printf("--- Testing with %d worker(s) ---\n", n)
		s, err := e.Run(ctx, items, n)
		if err != nil {
			return nil, err
		}
		e.Reporter.Printf("Time taken: %.2f seconds\n", s.ParallelTime.Seconds())
		summaries = append(summaries, s)
	}
	return summaries, nil
}
