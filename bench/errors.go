package bench

import (
	"errors"
	"fmt"
)

// ErrInvalidWorkers rejects a run before any work is dispatched.
var ErrInvalidWorkers = errors.New("worker count must be at least 1")

// DiscoveryError reports a fatal problem enumerating the input tree or
// creating the mirrored output tree. It aborts the run before any
// timing starts.
type DiscoveryError struct {
	Path string
	Err  error
}

func (e *DiscoveryError) Error() string {
	return fmt.Sprintf("discovery: %s: %v", e.Path, e.Err)
}

func (e *DiscoveryError) Unwrap() error { return e.Err }

// AggregationError reports a broken benchmark, as opposed to broken
// items: a zero parallel span, a missing result slot after the join
// barrier, or workers that never reported before the join timeout.
// It is always fatal and is surfaced distinctly from item failures.
type AggregationError struct {
	Reason string
}

func (e *AggregationError) Error() string {
	return "aggregation: " + e.Reason
}
