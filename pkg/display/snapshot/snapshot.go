// Package snapshot writes presented frames to disk as PNG files.
package snapshot

import (
	"fmt"
	"image/png"
	"os"
	"path/filepath"

	"github.com/silatcha/gboy/internal/ppu"
	"github.com/silatcha/gboy/pkg/display"
	"github.com/silatcha/gboy/pkg/log"
)

// Writer saves every Nth presented frame as dir/frame_%05d.png. It
// implements ppu.Video; errors are kept rather than returned, see Err.
type Writer struct {
	dir   string
	every int
	scale int
	log   log.Logger

	frame   int
	written []string
	err     error
}

// Opt configures a Writer.
type Opt func(w *Writer)

// Every saves one frame out of n.
func Every(n int) Opt {
	return func(w *Writer) {
		w.every = max(n, 1)
	}
}

// Scale enlarges saved frames by factor.
func Scale(factor int) Opt {
	return func(w *Writer) {
		w.scale = max(factor, 1)
	}
}

// WithLogger sets the logger saved paths are reported to.
func WithLogger(l log.Logger) Opt {
	return func(w *Writer) {
		w.log = l
	}
}

// New returns a Writer saving into dir, creating it if needed.
func New(dir string, opts ...Opt) (*Writer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("snapshot: %w", err)
	}
	w := &Writer{dir: dir, every: 1, scale: 1, log: log.NewNullLogger()}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// DrawVideo saves f when it is due. Once a save fails, later frames are
// ignored.
func (w *Writer) DrawVideo(f *ppu.Frame) {
	n := w.frame
	w.frame++
	if w.err != nil || n%w.every != 0 {
		return
	}

	path := filepath.Join(w.dir, fmt.Sprintf("frame_%05d.png", n))
	if err := w.save(path, f); err != nil {
		w.err = fmt.Errorf("snapshot: %w", err)
		w.log.Errorf("snapshot: saving %s: %v", path, err)
		return
	}
	w.written = append(w.written, path)
	w.log.Debugf("snapshot: saved %s", path)
}

func (w *Writer) save(path string, f *ppu.Frame) error {
	img := display.ToImage(f)
	if w.scale > 1 {
		img = display.Scale(img, w.scale)
	}

	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(out, img); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// Written returns the paths saved so far.
func (w *Writer) Written() []string {
	return w.written
}

// Err returns the first error met while saving.
func (w *Writer) Err() error {
	return w.err
}
