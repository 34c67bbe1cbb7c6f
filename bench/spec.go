package bench

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/ZaimalOp/image-processing-performance-analysis/imgx"
)

// Spec is the TOML description of one benchmark run: where the images
// live, how to transform them, and which worker counts to sweep.
type Spec struct {
	Bench     BenchSpec     `toml:"bench"`
	Frame     FrameSpec     `toml:"frame,omitempty"`
	Watermark WatermarkSpec `toml:"watermark,omitempty"`
}

type BenchSpec struct {
	Input       string `toml:"input"`
	Output      string `toml:"output"`
	Mode        string `toml:",omitempty"`
	Workers     []int  `toml:",omitempty"`
	JoinTimeout string `toml:"join_timeout,omitempty"`
}

type FrameSpec struct {
	Width  int `toml:",omitempty"`
	Height int `toml:",omitempty"`
}

type WatermarkSpec struct {
	Text string `toml:",omitempty"`
}

func parseSpec(f io.Reader) (*Spec, error) {
	var out Spec
	_, err := toml.NewDecoder(f).Decode(&out)
	return &out, err
}

// LoadSpecFromFile reads a spec, resolves the input and output roots
// relative to the spec file's directory, and fills in defaults.
func LoadSpecFromFile(path string) (*Spec, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	s, err := parseSpec(f)
	if err != nil {
		return nil, err
	}
	s.applyDefaults()

	filedir := filepath.Dir(path)
	if !filepath.IsAbs(s.Bench.Input) {
		s.Bench.Input = filepath.Clean(filepath.Join(filedir, s.Bench.Input))
	}
	if !filepath.IsAbs(s.Bench.Output) {
		s.Bench.Output = filepath.Clean(filepath.Join(filedir, s.Bench.Output))
	}
	return s, nil
}

func (s *Spec) applyDefaults() {
	if s.Bench.Mode == "" {
		s.Bench.Mode = string(ModePool)
	}
	if len(s.Bench.Workers) == 0 {
		s.Bench.Workers = []int{1, 2, 4, 8}
	}
	if s.Bench.Output == "" {
		s.Bench.Output = "output"
	}
	if s.Frame.Width == 0 {
		s.Frame.Width = 128
	}
	if s.Frame.Height == 0 {
		s.Frame.Height = 128
	}
	if s.Watermark.Text == "" {
		s.Watermark.Text = "Processed"
	}
}

// BuildExecutor constructs the configured Executor, wiring the image
// transform and the engine for the requested mode.
func (s *Spec) BuildExecutor() (*Executor, error) {
	if s.Bench.Input == "" {
		return nil, fmt.Errorf("spec is missing bench.input")
	}

	joinTimeout := time.Duration(0)
	if s.Bench.JoinTimeout != "" {
		d, err := time.ParseDuration(s.Bench.JoinTimeout)
		if err != nil {
			return nil, fmt.Errorf("bench.join_timeout: %w", err)
		}
		joinTimeout = d
	}

	transformer := imgx.New(imgx.Config{
		FrameWidth:  s.Frame.Width,
		FrameHeight: s.Frame.Height,
		Text:        s.Watermark.Text,
	})

	exec, err := NewExecutor(Mode(s.Bench.Mode), transformer.Apply)
	if err != nil {
		return nil, err
	}
	switch engine := exec.Engine.(type) {
	case *PoolEngine:
		engine.JoinTimeout = joinTimeout
	case *NodeEngine:
		engine.JoinTimeout = joinTimeout
		engine.Frame = s.Frame
		engine.Watermark = s.Watermark
	}
	return exec, nil
}
