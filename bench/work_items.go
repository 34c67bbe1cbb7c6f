package bench

import (
	"time"

	"github.com/dgryski/go-farm"
)

// WorkItem is one image to transform: where to read it and where to
// write the result. Immutable once discovered.
type WorkItem struct {
	InputPath  string
	OutputPath string
}

// WorkItemSet is the ordered sequence of items produced by Discover.
// The order is a stable traversal of (class folder, then file), so
// discovering an unchanged tree twice yields an identical sequence.
type WorkItemSet []WorkItem

// Fingerprint hashes the ordered path pairs of the set. Two
// discoveries over the same tree produce the same fingerprint, and a
// chunk streamed to a node process carries its fingerprint so the
// child can verify it received the assignment the parent computed.
func (s WorkItemSet) Fingerprint() uint64 {
	buf := make([]byte, 0, len(s)*64)
	for _, item := range s {
		buf = append(buf, item.InputPath...)
		buf = append(buf, 0)
		buf = append(buf, item.OutputPath...)
		buf = append(buf, 0)
	}
	return farm.Hash64(buf)
}

// WorkerResult is the single report a worker publishes for its chunk.
// Count is the number of items the worker ran the transform over;
// item-level failures increment Failed without shrinking Count, so a
// fully processed chunk always reports its assigned length.
type WorkerResult struct {
	WorkerID int
	Count    int
	Failed   int
	Elapsed  time.Duration
}

// RunSummary aggregates one benchmark run: the sequential baseline
// span, the parallel wall-clock span from first dispatch to last
// observed completion, and one WorkerResult per worker, sorted by
// worker id.
type RunSummary struct {
	RunID          string
	Mode           Mode
	Workers        int
	Discovered     int
	SequentialTime time.Duration
	ParallelTime   time.Duration
	Efficiency     float64
	Results        []WorkerResult
}

// Mode selects the concurrent execution strategy. Both concurrent
// modes honor the same coordinator contract; the choice is pure
// configuration.
type Mode string

const (
	// ModeSequential runs the chunks back to back with no concurrency.
	ModeSequential Mode = "sequential"
	// ModePool runs one goroutine per worker in this process.
	ModePool Mode = "pool"
	// ModeNode runs one isolated OS process per worker, simulating a
	// fixed set of machines splitting the batch.
	ModeNode Mode = "node"
)
