package overlay

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/Faultbox/showroom/internal/logger"
)

//go:embed snippet.go.txt
var defaultSnippet string

// Editor holds the highlighted snippet shown in the overlay window. When
// the snippet comes from a file, Watch reloads it on change.
//
// Lines and Reload must be called from the frame loop; only the watcher
// goroutine runs elsewhere and it communicates through a channel.
type Editor struct {
	Title    string
	Path     string
	Language string
	Style    string

	lines []Line
	theme Theme

	changed chan struct{}
	watcher *fsnotify.Watcher
	once    sync.Once
	log     *zap.Logger
}

// NewEditor loads and highlights the snippet at path, or the embedded
// snippet when path is empty.
func NewEditor(path, language, style string) (*Editor, error) {
	e := &Editor{
		Title:    "snippet.go",
		Path:     path,
		Language: language,
		Style:    style,
		theme:    LookupTheme(style),
		changed:  make(chan struct{}, 1),
		log:      logger.Named("overlay"),
	}
	if path != "" {
		e.Title = filepath.Base(path)
	}
	if err := e.Reload(); err != nil {
		return nil, err
	}
	return e, nil
}

// Reload re-reads and re-highlights the snippet.
func (e *Editor) Reload() error {
	src := defaultSnippet
	if e.Path != "" {
		data, err := os.ReadFile(e.Path)
		if err != nil {
			return fmt.Errorf("reading snippet: %w", err)
		}
		src = string(data)
	}

	lang := e.Language
	if lang == "" {
		lang = e.Title
	}
	lines, err := Highlight(src, lang, e.Style)
	if err != nil {
		return err
	}
	e.lines = lines
	return nil
}

// Lines returns the highlighted snippet.
func (e *Editor) Lines() []Line { return e.lines }

// Theme returns the window colors.
func (e *Editor) Theme() Theme { return e.theme }

// Watch starts watching the snippet's directory. Changes are coalesced
// and picked up by Poll. The watcher stops when ctx ends.
func (e *Editor) Watch(ctx context.Context) error {
	if e.Path == "" {
		return errors.New("embedded snippet cannot be watched")
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	// Editors replace files on save, so watch the directory.
	dir := filepath.Dir(e.Path)
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return fmt.Errorf("watching %s: %w", dir, err)
	}
	e.watcher = watcher
	target := filepath.Clean(e.Path)

	go func() {
		for {
			select {
			case <-ctx.Done():
				e.Close()
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != target {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				select {
				case e.changed <- struct{}{}:
				default:
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				e.log.Warn("snippet watcher error", zap.Error(err))
			}
		}
	}()

	e.log.Info("watching snippet", zap.String("path", e.Path))
	return nil
}

// Poll reloads the snippet if a change is pending. It reports whether the
// lines were replaced. A failed reload keeps the previous lines.
func (e *Editor) Poll() bool {
	select {
	case <-e.changed:
	default:
		return false
	}
	if err := e.Reload(); err != nil {
		e.log.Warn("snippet reload failed", zap.Error(err))
		return false
	}
	e.log.Debug("snippet reloaded", zap.Int("lines", len(e.lines)))
	return true
}

// Close stops the watcher.
func (e *Editor) Close() {
	e.once.Do(func() {
		if e.watcher != nil {
			e.watcher.Close()
		}
	})
}
