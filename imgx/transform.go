// Package imgx is the per-image leaf operation of the benchmark:
// decode, resize to a fixed frame, draw a watermark string near the
// bottom-left corner, and write the encoded result. It is stateless
// and side-effecting; every failure comes back as a *TransformError
// naming the stage, nothing panics past the package boundary.
package imgx

import (
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	_ "image/gif" // register the GIF decoder; inputs are not filtered by type

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Config carries the transform parameters explicitly so multiple
// configurations can run in one process without shared state.
// Zero values fall back to the defaults below.
type Config struct {
	FrameWidth  int
	FrameHeight int
	Text        string
	TextColor   color.Color
	JPEGQuality int
}

const (
	defaultFrameWidth  = 128
	defaultFrameHeight = 128
	defaultText        = "Processed"
	defaultJPEGQuality = 95
)

func (c Config) withDefaults() Config {
	if c.FrameWidth <= 0 {
		c.FrameWidth = defaultFrameWidth
	}
	if c.FrameHeight <= 0 {
		c.FrameHeight = defaultFrameHeight
	}
	if c.Text == "" {
		c.Text = defaultText
	}
	if c.TextColor == nil {
		c.TextColor = color.White
	}
	if c.JPEGQuality <= 0 {
		c.JPEGQuality = defaultJPEGQuality
	}
	return c
}

// Transformer applies one fixed configuration to any number of items.
// Safe for concurrent use; it holds no mutable state.
type Transformer struct {
	cfg Config
}

func New(cfg Config) *Transformer {
	return &Transformer{cfg: cfg.withDefaults()}
}

// TransformError reports a failed item and the stage that failed
// (read, decode, encode, or write). Item errors are consumed by the
// worker, logged, and never abort a chunk.
type TransformError struct {
	Stage string
	Path  string
	Err   error
}

func (e *TransformError) Error() string {
	return fmt.Sprintf("transform %s: %s: %v", e.Stage, e.Path, e.Err)
}

func (e *TransformError) Unwrap() error { return e.Err }

// Apply reads the image at inputPath, resizes it to the configured
// frame, draws the watermark, and writes the encoded result to
// outputPath. The output format follows the output extension; anything
// that is not .png is encoded as JPEG, matching the common case of
// mirrored file names.
func (t *Transformer) Apply(inputPath, outputPath string) error {
	f, err := os.Open(inputPath)
	if err != nil {
		return &TransformError{Stage: "read", Path: inputPath, Err: err}
	}
	src, _, err := image.Decode(f)
	f.Close()
	if err != nil {
		return &TransformError{Stage: "decode", Path: inputPath, Err: err}
	}

	frame := image.NewRGBA(image.Rect(0, 0, t.cfg.FrameWidth, t.cfg.FrameHeight))
	xdraw.ApproxBiLinear.Scale(frame, frame.Bounds(), src, src.Bounds(), xdraw.Src, nil)

	drawer := font.Drawer{
		Dst:  frame,
		Src:  image.NewUniform(t.cfg.TextColor),
		Face: basicfont.Face7x13,
		// Anchor near the bottom-left corner of the frame.
		Dot: fixed.P(10, t.cfg.FrameHeight-10),
	}
	drawer.DrawString(t.cfg.Text)

	out, err := os.Create(outputPath)
	if err != nil {
		return &TransformError{Stage: "write", Path: outputPath, Err: err}
	}
	switch strings.ToLower(filepath.Ext(outputPath)) {
	case ".png":
		err = png.Encode(out, frame)
	default:
		err = jpeg.Encode(out, frame, &jpeg.Options{Quality: t.cfg.JPEGQuality})
	}
	if err != nil {
		out.Close()
		return &TransformError{Stage: "encode", Path: outputPath, Err: err}
	}
	if err := out.Close(); err != nil {
		return &TransformError{Stage: "write", Path: outputPath, Err: err}
	}
	return nil
}
