package bench

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildTree writes a small class-folder hierarchy and returns the two
// roots. Files carry throwaway content; discovery never reads them.
func buildTree(t *testing.T, classes map[string][]string) (string, string) {
	t.Helper()
	inputRoot := t.TempDir()
	outputRoot := filepath.Join(t.TempDir(), "output")
	for class, files := range classes {
		dir := filepath.Join(inputRoot, class)
		require.NoError(t, os.MkdirAll(dir, 0o755))
		for _, name := range files {
			require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
		}
	}
	return inputRoot, outputRoot
}

func TestDiscoverOrdering(t *testing.T) {
	inputRoot, outputRoot := buildTree(t, map[string][]string{
		"dogs": {"b.jpg", "a.jpg"},
		"cats": {"2.png", "1.png"},
	})

	items, err := Discover(inputRoot, outputRoot)
	require.NoError(t, err)
	require.Len(t, items, 4)

	// Sorted class folders, then sorted file names within each.
	want := []string{
		filepath.Join(inputRoot, "cats", "1.png"),
		filepath.Join(inputRoot, "cats", "2.png"),
		filepath.Join(inputRoot, "dogs", "a.jpg"),
		filepath.Join(inputRoot, "dogs", "b.jpg"),
	}
	for i, item := range items {
		assert.Equal(t, want[i], item.InputPath)
	}
}

func TestDiscoverMirrorsOutputTree(t *testing.T) {
	inputRoot, outputRoot := buildTree(t, map[string][]string{
		"cats": {"1.png"},
		"dogs": {"a.jpg"},
	})

	items, err := Discover(inputRoot, outputRoot)
	require.NoError(t, err)

	for _, class := range []string{"cats", "dogs"} {
		info, err := os.Stat(filepath.Join(outputRoot, class))
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}
	for _, item := range items {
		assert.Equal(t, outputRoot, filepath.Dir(filepath.Dir(item.OutputPath)))
	}
}

func TestDiscoverIdempotent(t *testing.T) {
	inputRoot, outputRoot := buildTree(t, map[string][]string{
		"cats": {"1.png", "2.png", "3.png"},
		"dogs": {"a.jpg"},
	})

	first, err := Discover(inputRoot, outputRoot)
	require.NoError(t, err)
	// Second run also re-creates the already-present output folders.
	second, err := Discover(inputRoot, outputRoot)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, first.Fingerprint(), second.Fingerprint())
}

func TestDiscoverFingerprintTracksContent(t *testing.T) {
	inputRoot, outputRoot := buildTree(t, map[string][]string{
		"cats": {"1.png"},
	})
	before, err := Discover(inputRoot, outputRoot)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(inputRoot, "cats", "2.png"), []byte("x"), 0o644))
	after, err := Discover(inputRoot, outputRoot)
	require.NoError(t, err)

	assert.NotEqual(t, before.Fingerprint(), after.Fingerprint())
}

func TestDiscoverMissingRoot(t *testing.T) {
	_, err := Discover(filepath.Join(t.TempDir(), "does-not-exist"), t.TempDir())
	require.Error(t, err)

	var de *DiscoveryError
	require.ErrorAs(t, err, &de)
	assert.Contains(t, de.Path, "does-not-exist")
}

func TestDiscoverEmptyRoot(t *testing.T) {
	items, err := Discover(t.TempDir(), filepath.Join(t.TempDir(), "output"))
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestDiscoverSkipsRootFilesKeepsAllClassEntries(t *testing.T) {
	inputRoot, outputRoot := buildTree(t, map[string][]string{
		"cats": {"1.png", "notes.txt"},
	})
	// A loose file directly under the root is not a class folder.
	require.NoError(t, os.WriteFile(filepath.Join(inputRoot, "stray.jpg"), []byte("x"), 0o644))

	items, err := Discover(inputRoot, outputRoot)
	require.NoError(t, err)

	// No type filtering inside class folders: notes.txt is an item and
	// will surface later as a decode failure, not be silently dropped.
	require.Len(t, items, 2)
	assert.Equal(t, filepath.Join(inputRoot, "cats", "1.png"), items[0].InputPath)
	assert.Equal(t, filepath.Join(inputRoot, "cats", "notes.txt"), items[1].InputPath)
}
