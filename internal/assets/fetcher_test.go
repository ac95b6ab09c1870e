package assets

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"testing"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		base, path, want string
	}{
		{"http://localhost:5173/", "src/3d/Omoda.glb", "http://localhost:5173/src/3d/Omoda.glb"},
		{"http://localhost:5173", "/src/hdri/2.hdr", "http://localhost:5173/src/hdri/2.hdr"},
		{"https://cdn.example.com/app/", "/src/3d/Omoda.glb", "https://cdn.example.com/app/src/3d/Omoda.glb"},
		{"./", "src/3d/Omoda.glb", filepath.Join(".", "src", "3d", "Omoda.glb")},
		{"./", "https://cdn.example.com/car.glb", "https://cdn.example.com/car.glb"},
		{"assets", "/abs/car.glb", "/abs/car.glb"},
	}
	for _, tt := range tests {
		f := NewFetcher(tt.base, nil)
		if got := f.Resolve(tt.path); got != tt.want {
			t.Errorf("Resolve(%q, %q) = %q, want %q", tt.base, tt.path, got, tt.want)
		}
	}
}

func TestFetchFile(t *testing.T) {
	dir := t.TempDir()
	payload := bytes.Repeat([]byte("x"), 3*readChunk+17)
	if err := os.MkdirAll(filepath.Join(dir, "src", "3d"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "src", "3d", "car.glb"), payload, 0644); err != nil {
		t.Fatal(err)
	}

	cache := NewCache(0)
	f := NewFetcher(dir, cache)

	var reports []Progress
	data, err := f.Fetch(context.Background(), "src/3d/car.glb", func(p Progress) { reports = append(reports, p) })
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if !bytes.Equal(data, payload) {
		t.Fatalf("got %d bytes, want %d", len(data), len(payload))
	}
	if len(reports) < 4 {
		t.Errorf("expected chunked progress, got %d reports", len(reports))
	}
	last := reports[len(reports)-1]
	if last.Loaded != int64(len(payload)) || last.Total != int64(len(payload)) {
		t.Errorf("final progress = %+v", last)
	}

	size, err := f.Stat(context.Background(), "src/3d/car.glb")
	if err != nil || size != int64(len(payload)) {
		t.Errorf("Stat = %d, %v", size, err)
	}

	// Second read is served from cache.
	if _, err := f.Fetch(context.Background(), "src/3d/car.glb", nil); err != nil {
		t.Fatalf("cached Fetch: %v", err)
	}
	if hits, misses := cache.Stats(); hits != 1 || misses != 1 {
		t.Errorf("cache stats = %d hits, %d misses", hits, misses)
	}
}

func TestFetchFileMissing(t *testing.T) {
	f := NewFetcher(t.TempDir(), nil)
	if _, err := f.Fetch(context.Background(), "nope.glb", nil); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Fetch missing file error = %v, want ErrNotExist", err)
	}
	if _, err := f.Stat(context.Background(), "nope.glb"); err == nil {
		t.Error("Stat on missing file should fail")
	}
}

func TestFetchHTTP(t *testing.T) {
	payload := bytes.Repeat([]byte("hdr"), 50000)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/src/hdri/2.hdr":
			w.Header().Set("Content-Length", strconv.Itoa(len(payload)))
			if r.Method == http.MethodHead {
				return
			}
			w.Write(payload)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	f := NewFetcher(srv.URL+"/", nil)

	var last Progress
	data, err := f.Fetch(context.Background(), "src/hdri/2.hdr", func(p Progress) { last = p })
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if !bytes.Equal(data, payload) {
		t.Errorf("got %d bytes, want %d", len(data), len(payload))
	}
	if last.Percent() != 100 {
		t.Errorf("final progress = %d%%", last.Percent())
	}

	size, err := f.Stat(context.Background(), "src/hdri/2.hdr")
	if err != nil || size != int64(len(payload)) {
		t.Errorf("Stat = %d, %v", size, err)
	}

	if _, err := f.Fetch(context.Background(), "missing.glb", nil); !errors.Is(err, ErrHTTPStatus) {
		t.Errorf("404 error = %v, want ErrHTTPStatus", err)
	}
}

func TestFetchCancelled(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.bin"), []byte("abc"), 0644); err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f := NewFetcher(dir, nil)
	if _, err := f.Fetch(ctx, "a.bin", nil); !errors.Is(err, context.Canceled) {
		t.Errorf("Fetch with cancelled ctx = %v, want context.Canceled", err)
	}
}

func TestCacheEviction(t *testing.T) {
	c := NewCache(10)
	c.Set("a", make([]byte, 4))
	c.Set("b", make([]byte, 4))
	c.Set("c", make([]byte, 4)) // evicts a

	if _, ok := c.Get("a"); ok {
		t.Error("oldest entry should have been evicted")
	}
	if _, ok := c.Get("c"); !ok {
		t.Error("newest entry missing")
	}
	if c.Size() != 8 {
		t.Errorf("Size() = %d, want 8", c.Size())
	}

	c.Set("huge", make([]byte, 11))
	if _, ok := c.Get("huge"); ok {
		t.Error("entry larger than budget should not be cached")
	}

	c.Set("b", make([]byte, 2)) // replace in place
	if c.Size() != 6 {
		t.Errorf("Size() after replace = %d, want 6", c.Size())
	}

	c.Clear()
	if hits, misses := c.Stats(); hits != 0 || misses != 0 || c.Size() != 0 {
		t.Error("Clear should reset contents and stats")
	}
}

func TestCacheEvictionReusesOrder(t *testing.T) {
	c := NewCache(8)
	for i := range 1000 {
		c.Set(strconv.Itoa(i), make([]byte, 4))
	}
	if len(c.order) != 2 {
		t.Fatalf("len(order) = %d, want 2", len(c.order))
	}
	if cap(c.order) > 8 {
		t.Errorf("cap(order) = %d after churn, want it bounded", cap(c.order))
	}
	if _, ok := c.Get("999"); !ok {
		t.Error("newest entry missing")
	}
}

func TestSniff(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want Kind
	}{
		{"glb", append([]byte("glTF"), 2, 0, 0, 0), KindGLB},
		{"radiance", []byte("#?RADIANCE\nFORMAT=32-bit_rle_rgbe\n"), KindRadiance},
		{"rgbe", []byte("#?RGBE\n"), KindRadiance},
		{"png", []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0}, KindPNG},
		{"html error page", []byte("<!doctype html><html>"), KindUnknown},
		{"empty", nil, KindUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Sniff(tt.data); got != tt.want {
				t.Errorf("Sniff() = %q, want %q", got, tt.want)
			}
		})
	}

	if err := Expect([]byte("<html>"), KindGLB); err == nil {
		t.Error("Expect should reject html served in place of a model")
	}
	if err := Expect([]byte("glTF...."), KindGLB); err != nil {
		t.Errorf("Expect(glb) = %v", err)
	}
}
