package bench

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSpecDefaults(t *testing.T) {
	spec, err := parseSpec(strings.NewReader(`
[bench]
input = "data_set"
`))
	require.NoError(t, err)
	spec.applyDefaults()

	assert.Equal(t, string(ModePool), spec.Bench.Mode)
	assert.Equal(t, []int{1, 2, 4, 8}, spec.Bench.Workers)
	assert.Equal(t, "output", spec.Bench.Output)
	assert.Equal(t, 128, spec.Frame.Width)
	assert.Equal(t, 128, spec.Frame.Height)
	assert.Equal(t, "Processed", spec.Watermark.Text)
}

func TestLoadSpecFromFileResolvesPaths(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bench.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[bench]
input   = "data_set"
output  = "processed"
mode    = "node"
workers = [2]

[frame]
width  = 64
height = 64

[watermark]
text = "sample"
`), 0o644))

	spec, err := LoadSpecFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "data_set"), spec.Bench.Input)
	assert.Equal(t, filepath.Join(dir, "processed"), spec.Bench.Output)
	assert.Equal(t, "node", spec.Bench.Mode)
	assert.Equal(t, []int{2}, spec.Bench.Workers)
	assert.Equal(t, 64, spec.Frame.Width)
	assert.Equal(t, "sample", spec.Watermark.Text)
}

func TestBuildExecutorModes(t *testing.T) {
	base := func() *Spec {
		s := &Spec{Bench: BenchSpec{Input: "in"}}
		s.applyDefaults()
		return s
	}

	t.Run("pool", func(t *testing.T) {
		s := base()
		s.Bench.JoinTimeout = "30s"
		exec, err := s.BuildExecutor()
		require.NoError(t, err)
		engine, ok := exec.Engine.(*PoolEngine)
		require.True(t, ok)
		assert.Equal(t, 30*time.Second, engine.JoinTimeout)
	})

	t.Run("node carries transform parameters", func(t *testing.T) {
		s := base()
		s.Bench.Mode = string(ModeNode)
		s.Watermark.Text = "stamped"
		exec, err := s.BuildExecutor()
		require.NoError(t, err)
		engine, ok := exec.Engine.(*NodeEngine)
		require.True(t, ok)
		assert.Equal(t, "stamped", engine.Watermark.Text)
		assert.Equal(t, 128, engine.Frame.Width)
	})

	t.Run("sequential", func(t *testing.T) {
		s := base()
		s.Bench.Mode = string(ModeSequential)
		exec, err := s.BuildExecutor()
		require.NoError(t, err)
		assert.IsType(t, SequentialEngine{}, exec.Engine)
	})

	t.Run("unknown mode", func(t *testing.T) {
		s := base()
		s.Bench.Mode = "warp"
		_, err := s.BuildExecutor()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown execution mode")
	})

	t.Run("missing input", func(t *testing.T) {
		s := &Spec{}
		s.applyDefaults()
		_, err := s.BuildExecutor()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "bench.input")
	})

	t.Run("bad join timeout", func(t *testing.T) {
		s := base()
		s.Bench.JoinTimeout = "soon"
		_, err := s.BuildExecutor()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "join_timeout")
	})
}
