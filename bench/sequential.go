package bench

import "context"

// SequentialEngine satisfies the engine contract with no concurrency
// at all: chunks run back to back on the calling goroutine. It is the
// reference behavior the concurrent engines are measured against and
// doubles as the degenerate single-worker case.
type SequentialEngine struct{}

func (SequentialEngine) Run(ctx context.Context, chunks []WorkItemSet, transform Transform) ([]WorkerResult, error) {
	results := make([]WorkerResult, len(chunks))
	for i, chunk := range chunks {
		results[i] = runChunk(ctx, i, chunk, transform)
	}
	return results, nil
}
