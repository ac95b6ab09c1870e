package debug

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func fixedClock() time.Time { return time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC) }

func TestSaveFlipsRows(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "shots")
	s := NewScreenshots(dir, "showroom")
	s.Clock = fixedClock

	// 1x2 read-back: bottom row red, top row blue
	pixels := []byte{
		255, 0, 0, 255,
		0, 0, 255, 255,
	}
	name, err := s.Save(pixels, 1, 2)
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(dir, "showroom_2024-05-01_12-30-00.000.png"); name != want {
		t.Errorf("filename = %q, want %q", name, want)
	}

	f, err := os.Open(name)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	r, _, b, _ := img.At(0, 0).RGBA()
	if b>>8 != 255 || r != 0 {
		t.Errorf("top pixel should be blue, got r=%d b=%d", r>>8, b>>8)
	}
}

func TestSaveSameMillisecond(t *testing.T) {
	dir := t.TempDir()
	s := NewScreenshots(dir, "x")
	s.Clock = fixedClock

	px := []byte{1, 2, 3, 255}
	first, err := s.Save(px, 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	second, err := s.Save(px, 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	if first == second {
		t.Fatalf("both captures wrote %s", first)
	}
	if want := filepath.Join(dir, "x_2024-05-01_12-30-00.000-1.png"); second != want {
		t.Errorf("second = %q, want %q", second, want)
	}
}

func TestSaveSizeMismatch(t *testing.T) {
	s := NewScreenshots(t.TempDir(), "x")
	if _, err := s.Save(make([]byte, 3), 1, 1); err == nil {
		t.Error("expected size mismatch error")
	}
}
