package bench

import (
	"fmt"
	"strings"

	"github.com/gookit/color"
)

// FormatRunSummary renders one run for display: per-worker rows in
// worker-id order, the measured spans, and the derived efficiency.
func FormatRunSummary(s *RunSummary) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(color.Cyan.Sprintf("=== %s run, %d worker(s) ===", s.Mode, s.Workers))
	b.WriteString("\n")
	b.WriteString(color.Bold.Sprint("Images discovered: "))
	b.WriteString(fmt.Sprintf("%d\n", s.Discovered))

	for _, r := range s.Results {
		line := fmt.Sprintf("Worker %d processed %d images in %.2fs", r.WorkerID, r.Count, r.Elapsed.Seconds())
		if r.Failed > 0 {
			line += color.Yellow.Sprintf(" (%d failed)", r.Failed)
		}
		b.WriteString("  " + line + "\n")
	}

	b.WriteString(color.Bold.Sprint("Sequential time: "))
	b.WriteString(fmt.Sprintf("%.2fs\n", s.SequentialTime.Seconds()))
	b.WriteString(color.Bold.Sprint("Parallel time:   "))
	b.WriteString(fmt.Sprintf("%.2fs\n", s.ParallelTime.Seconds()))

	b.WriteString(color.Bold.Sprint("Efficiency:      "))
	if s.Efficiency >= 1.0 {
		b.WriteString(color.Green.Sprintf("%.2fx over sequential\n", s.Efficiency))
	} else {
		b.WriteString(color.Red.Sprintf("%.2fx over sequential\n", s.Efficiency))
	}
	return b.String()
}

// FormatSweepTable renders the workers/time/speedup table for a sweep.
// Speedup is relative to the first configuration's parallel span, so a
// sweep that starts at one worker reads as speedup over that baseline.
func FormatSweepTable(summaries []*RunSummary) string {
	if len(summaries) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(color.Cyan.Sprint("=== Speedup table ==="))
	b.WriteString("\n")
	b.WriteString("Workers  | Time (s) | Speedup\n")
	b.WriteString("-------- | -------- | -------\n")

	baseline := summaries[0].ParallelTime.Seconds()
	for _, s := range summaries {
		elapsed := s.ParallelTime.Seconds()
		speedup := 0.0
		if elapsed > 0 {
			speedup = baseline / elapsed
		}
		b.WriteString(fmt.Sprintf("%-8d | %-8.2f | %.2fx\n", s.Workers, elapsed, speedup))
	}
	return b.String()
}
