package assets

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/showroom/internal/logger"
)

// ErrHTTPStatus is wrapped around non-2xx responses.
var ErrHTTPStatus = errors.New("unexpected HTTP status")

const readChunk = 64 << 10

// Fetcher reads asset bytes from the local filesystem or over HTTP,
// resolving relative paths against a base that is either a directory or
// a URL prefix.
type Fetcher struct {
	Base   string
	Client *http.Client
	Cache  *Cache

	log *zap.Logger
}

// NewFetcher creates a fetcher. cache may be nil.
func NewFetcher(base string, cache *Cache) *Fetcher {
	return &Fetcher{
		Base:   base,
		Client: &http.Client{Timeout: 30 * time.Second},
		Cache:  cache,
		log:    logger.Named("fetch"),
	}
}

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// Resolve returns the location path refers to. Against a URL base every
// path, rooted or not, is served by that base.
func (f *Fetcher) Resolve(path string) string {
	if isURL(path) {
		return path
	}
	if isURL(f.Base) {
		u, err := url.JoinPath(f.Base, path)
		if err == nil {
			return u
		}
		return strings.TrimSuffix(f.Base, "/") + "/" + strings.TrimPrefix(path, "/")
	}
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(f.Base, filepath.FromSlash(path))
}

// Fetch reads the whole asset, reporting progress as bytes arrive.
func (f *Fetcher) Fetch(ctx context.Context, path string, report ReportFunc) ([]byte, error) {
	loc := f.Resolve(path)
	if f.Cache != nil {
		if data, ok := f.Cache.Get(loc); ok {
			f.log.Debug("cache hit", zap.String("location", loc))
			if report != nil {
				n := int64(len(data))
				report(Progress{Loaded: n, Total: n})
			}
			return data, nil
		}
	}

	var (
		data []byte
		err  error
	)
	if isURL(loc) {
		data, err = f.fetchHTTP(ctx, loc, report)
	} else {
		data, err = f.fetchFile(ctx, loc, report)
	}
	if err != nil {
		return nil, err
	}

	f.log.Debug("fetched", zap.String("location", loc), zap.Int("bytes", len(data)))
	if f.Cache != nil {
		f.Cache.Set(loc, data)
	}
	return data, nil
}

// Stat returns the size of the asset without reading it. Size is -1 when
// the server does not advertise it.
func (f *Fetcher) Stat(ctx context.Context, path string) (int64, error) {
	loc := f.Resolve(path)
	if !isURL(loc) {
		fi, err := os.Stat(loc)
		if err != nil {
			return 0, fmt.Errorf("stat %s: %w", loc, err)
		}
		if fi.IsDir() {
			return 0, fmt.Errorf("stat %s: is a directory", loc)
		}
		return fi.Size(), nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, loc, nil)
	if err != nil {
		return 0, fmt.Errorf("building request: %w", err)
	}
	resp, err := f.Client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("HEAD %s: %w", loc, err)
	}
	resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return 0, fmt.Errorf("HEAD %s: %w %d", loc, ErrHTTPStatus, resp.StatusCode)
	}
	return resp.ContentLength, nil
}

func (f *Fetcher) fetchHTTP(ctx context.Context, loc string, report ReportFunc) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, loc, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", loc, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("GET %s: %w %d", loc, ErrHTTPStatus, resp.StatusCode)
	}

	total := resp.ContentLength
	if total < 0 {
		total = 0
	}
	return readAll(ctx, resp.Body, total, report)
}

func (f *Fetcher) fetchFile(ctx context.Context, loc string, report ReportFunc) ([]byte, error) {
	file, err := os.Open(loc)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", loc, err)
	}
	defer file.Close()

	var total int64
	if fi, err := file.Stat(); err == nil {
		total = fi.Size()
	}
	return readAll(ctx, file, total, report)
}

// readAll copies r in chunks, checking ctx and reporting progress between
// chunks.
func readAll(ctx context.Context, r io.Reader, total int64, report ReportFunc) ([]byte, error) {
	var buf bytes.Buffer
	if total > 0 {
		buf.Grow(int(total))
	}

	chunk := make([]byte, readChunk)
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		n, err := r.Read(chunk)
		if n > 0 {
			buf.Write(chunk[:n])
			if report != nil {
				report(Progress{Loaded: int64(buf.Len()), Total: total})
			}
		}
		if err == io.EOF {
			return buf.Bytes(), nil
		}
		if err != nil {
			return nil, fmt.Errorf("reading: %w", err)
		}
	}
}
