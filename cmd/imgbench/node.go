package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/ZaimalOp/image-processing-performance-analysis/bench"
)

// nodeCmd is the child-process entrypoint for the node execution mode.
// The parent streams a msgpack-encoded chunk assignment on stdin and
// reads the worker's single result from stdout.
var nodeCmd = &cobra.Command{
	Use:    "node",
	Short:  "Internal: process one chunk assignment streamed on stdin",
	Hidden: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return bench.RunNode(cmd.Context(), os.Stdin, os.Stdout, nil)
	},
}
