package bench

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shamaton/msgpack/v2"

	"github.com/ZaimalOp/image-processing-performance-analysis/imgx"
)

// nodeAssignment is the unit streamed to a child process: the chunk it
// owns, the fingerprint the parent computed for it, and the transform
// parameters so the child needs no spec file of its own.
type nodeAssignment struct {
	WorkerID    int
	Items       []WorkItem
	Fingerprint uint64
	Frame       FrameSpec
	Watermark   WatermarkSpec
}

// NodeEngine runs one isolated OS process per worker, mimicking a
// fixed set of machines splitting the batch. The parent re-invokes its
// own binary with the node subcommand, streams the msgpack-encoded
// assignment on stdin, and reads one msgpack-encoded WorkerResult back
// from stdout. There is no shared memory; the result stream is the
// only channel between parent and child.
type NodeEngine struct {
	JoinTimeout time.Duration
	Frame       FrameSpec
	Watermark   WatermarkSpec
}

func (n *NodeEngine) Run(ctx context.Context, chunks []WorkItemSet, transform Transform) ([]WorkerResult, error) {
	bin, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("locating own binary for node workers: %w", err)
	}

	results := make([]WorkerResult, len(chunks))
	errs := make([]error, len(chunks))

	var wg sync.WaitGroup
	for i := range chunks {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			results[id], errs[id] = n.spawn(ctx, bin, id, chunks[id])
		}(i)
	}

	if err := joinBarrier(&wg, n.JoinTimeout); err != nil {
		return nil, err
	}

	for id, err := range errs {
		if err != nil {
			// A dead or misbehaving node is a missing result slot,
			// not an item failure.
			return nil, &AggregationError{Reason: fmt.Sprintf("node %d: %v", id, err)}
		}
	}
	return results, nil
}

func (n *NodeEngine) spawn(ctx context.Context, bin string, id int, chunk WorkItemSet) (WorkerResult, error) {
	payload, err := msgpack.Marshal(nodeAssignment{
		WorkerID:    id,
		Items:       chunk,
		Fingerprint: chunk.Fingerprint(),
		Frame:       n.Frame,
		Watermark:   n.Watermark,
	})
	if err != nil {
		return WorkerResult{}, fmt.Errorf("encoding assignment: %w", err)
	}

	log.Debug().Int("node", id).Int("items", len(chunk)).Msg("Starting node process")

	cmd := exec.CommandContext(ctx, bin, "node")
	cmd.Stdin = bytes.NewReader(payload)
	cmd.Stderr = os.Stderr
	out, err := cmd.Output()
	if err != nil {
		return WorkerResult{}, fmt.Errorf("node process: %w", err)
	}

	var res WorkerResult
	if err := msgpack.Unmarshal(out, &res); err != nil {
		return WorkerResult{}, fmt.Errorf("decoding node result: %w", err)
	}
	if res.WorkerID != id {
		return WorkerResult{}, fmt.Errorf("node %d answered for worker %d", id, res.WorkerID)
	}

	log.Debug().Int("node", id).Int("count", res.Count).Dur("elapsed", res.Elapsed).
		Msg("Node finished")
	return res, nil
}

// RunNode is the child side of the node engine: it decodes one
// assignment from r, verifies the chunk fingerprint, processes the
// items, and writes its single WorkerResult to w. The hidden node
// subcommand calls it with stdin/stdout; tests call it with in-memory
// streams. A nil transform builds the image transform from the
// parameters carried in the assignment.
func RunNode(ctx context.Context, r io.Reader, w io.Writer, transform Transform) error {
	payload, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("reading assignment: %w", err)
	}

	var a nodeAssignment
	if err := msgpack.Unmarshal(payload, &a); err != nil {
		return fmt.Errorf("decoding assignment: %w", err)
	}
	if got := WorkItemSet(a.Items).Fingerprint(); got != a.Fingerprint {
		return fmt.Errorf("node %d: assignment fingerprint mismatch (got %x, want %x)",
			a.WorkerID, got, a.Fingerprint)
	}

	if transform == nil {
		transform = imgx.New(imgx.Config{
			FrameWidth:  a.Frame.Width,
			FrameHeight: a.Frame.Height,
			Text:        a.Watermark.Text,
		}).Apply
	}

	res := runChunk(ctx, a.WorkerID, a.Items, transform)

	out, err := msgpack.Marshal(res)
	if err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}
	if _, err := w.Write(out); err != nil {
		return fmt.Errorf("writing result: %w", err)
	}
	return nil
}
