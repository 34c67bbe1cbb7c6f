package bench

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// Transform applies the configured image operation to one item.
// Implementations contain their own failures: an error return is
// recorded against the item and never escalated past the worker.
type Transform func(inputPath, outputPath string) error

// runChunk processes one chunk in assignment order and produces the
// worker's single result. An item failure is logged and counted but
// never aborts the chunk. The elapsed span wraps only the item loop.
//
// Cancellation stops the loop between items, so a cancelled worker
// reports the partial count of items it actually ran.
func runChunk(ctx context.Context, id int, chunk WorkItemSet, transform Transform) WorkerResult {
	res := WorkerResult{WorkerID: id}

	start := time.Now()
	for _, item := range chunk {
		if ctx.Err() != nil {
			log.Warn().Int("worker", id).Int("processed", res.Count).
				Msg("Cancelled, reporting partial count")
			break
		}
		if err := transform(item.InputPath, item.OutputPath); err != nil {
			res.Failed++
			log.Warn().Err(err).Int("worker", id).Str("input", item.InputPath).
				Msg("Item failed, continuing")
		}
		res.Count++
	}
	res.Elapsed = time.Since(start)
	return res
}
