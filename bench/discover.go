package bench

import (
	"os"
	"path/filepath"
)

// Discover walks the two-level input tree (class folders containing
// image files) and returns the ordered WorkItemSet. As a side effect
// it creates the mirrored output class folders, which is idempotent.
//
// Every entry inside a class folder becomes an item regardless of
// extension; the transform itself rejects anything it cannot decode.
// Non-directory entries directly under the input root are ignored.
// A missing or unreadable input root is a fatal DiscoveryError rather
// than a silently empty run.
func Discover(inputRoot, outputRoot string) (WorkItemSet, error) {
	classes, err := os.ReadDir(inputRoot)
	if err != nil {
		return nil, &DiscoveryError{Path: inputRoot, Err: err}
	}
	if err := os.MkdirAll(outputRoot, 0o755); err != nil {
		return nil, &DiscoveryError{Path: outputRoot, Err: err}
	}

	var items WorkItemSet
	for _, class := range classes {
		if !class.IsDir() {
			continue
		}
		inDir := filepath.Join(inputRoot, class.Name())
		outDir := filepath.Join(outputRoot, class.Name())
		if err := os.MkdirAll(outDir, 0o755); err != nil {
			return nil, &DiscoveryError{Path: outDir, Err: err}
		}

		// os.ReadDir sorts by name, which keeps the traversal stable
		// across runs.
		files, err := os.ReadDir(inDir)
		if err != nil {
			return nil, &DiscoveryError{Path: inDir, Err: err}
		}
		for _, f := range files {
			items = append(items, WorkItem{
				InputPath:  filepath.Join(inDir, f.Name()),
				OutputPath: filepath.Join(outDir, f.Name()),
			})
		}
	}
	return items, nil
}
