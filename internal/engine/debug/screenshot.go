// Package debug holds developer aids: wireframe overlays and frame capture.
package debug

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"time"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/anthonynsimon/bild/transform"
)

// Screenshots writes framebuffer read-backs to PNG files named
// <prefix>_<timestamp>.png inside Dir.
type Screenshots struct {
	Dir    string
	Prefix string
	Clock  func() time.Time

	last string
	seq  int
}

// NewScreenshots returns a writer using the wall clock.
func NewScreenshots(dir, prefix string) *Screenshots {
	return &Screenshots{Dir: dir, Prefix: prefix, Clock: time.Now}
}

// Save writes bottom-up RGBA rows, as returned by glReadPixels, and
// returns the file written.
func (s *Screenshots) Save(pixels []byte, width, height int) (string, error) {
	if want := width * height * 4; len(pixels) != want {
		return "", fmt.Errorf("screenshot: got %d bytes for %dx%d, want %d", len(pixels), width, height, want)
	}
	img := &image.RGBA{Pix: pixels, Stride: width * 4, Rect: image.Rect(0, 0, width, height)}
	return s.SaveImage(transform.FlipV(img))
}

// SaveImage writes img unchanged.
func (s *Screenshots) SaveImage(img image.Image) (string, error) {
	if err := os.MkdirAll(s.dir(), 0o755); err != nil {
		return "", fmt.Errorf("creating screenshot dir: %w", err)
	}
	path := s.next()
	if err := imgio.Save(path, img, imgio.PNGEncoder()); err != nil {
		return "", fmt.Errorf("saving screenshot: %w", err)
	}
	return path, nil
}

func (s *Screenshots) dir() string {
	if s.Dir == "" {
		return "."
	}
	return s.Dir
}

// next names the following capture. Captures within the same millisecond
// get a numeric suffix.
func (s *Screenshots) next() string {
	stamp := s.Clock().Format("2006-01-02_15-04-05.000")
	name := s.Prefix + "_" + stamp
	if stamp == s.last {
		s.seq++
		name = fmt.Sprintf("%s-%d", name, s.seq)
	} else {
		s.last, s.seq = stamp, 0
	}
	return filepath.Join(s.dir(), name+".png")
}
