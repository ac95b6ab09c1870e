package overlay

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const goSrc = "package main\n\nfunc main() {\n\tprintln(\"hi\")\n}\n"

func TestHighlightPreservesText(t *testing.T) {
	lines, err := Highlight(goSrc, "go", "monokai")
	if err != nil {
		t.Fatal(err)
	}
	want := strings.Split(strings.TrimSuffix(goSrc, "\n"), "\n")
	if len(lines) != len(want) {
		t.Fatalf("got %d lines, want %d", len(lines), len(want))
	}
	for i, w := range want {
		if got := lines[i].Text(); got != expandTabs(w) {
			t.Errorf("line %d = %q, want %q", i, got, expandTabs(w))
		}
	}
}

func TestHighlightColorsKeywords(t *testing.T) {
	lines, err := Highlight(goSrc, "go", "monokai")
	if err != nil {
		t.Fatal(err)
	}
	var kw, ident *Span
	for i := range lines[2] {
		s := &lines[2][i]
		switch strings.TrimSpace(s.Text) {
		case "func":
			kw = s
		case "main":
			ident = s
		}
	}
	if kw == nil || ident == nil {
		t.Fatalf("spans not found in %+v", lines[2])
	}
	if kw.Color == ident.Color {
		t.Errorf("keyword and identifier share color %v", kw.Color)
	}
}

func TestHighlightUnknownLanguage(t *testing.T) {
	lines, err := Highlight("just text\nmore", "no-such-language", "no-such-style")
	if err != nil {
		t.Fatal(err)
	}
	if len(lines) != 2 || lines[1].Text() != "more" {
		t.Errorf("lines = %+v", lines)
	}
}

func TestLookupTheme(t *testing.T) {
	th := LookupTheme("monokai")
	if th.Background.A != 0xff || th.Foreground.A != 0xff {
		t.Errorf("theme not opaque: %+v", th)
	}
	if th.Background == th.Foreground {
		t.Error("background equals foreground")
	}
}

func TestEditorEmbedded(t *testing.T) {
	e, err := NewEditor("", "go", "monokai")
	if err != nil {
		t.Fatal(err)
	}
	if len(e.Lines()) == 0 {
		t.Fatal("embedded snippet is empty")
	}
	if !strings.HasPrefix(e.Lines()[0].Text(), "package") {
		t.Errorf("first line = %q", e.Lines()[0].Text())
	}
	if err := e.Watch(context.Background()); err == nil {
		t.Error("watching the embedded snippet should fail")
	}
	if e.Poll() {
		t.Error("Poll without changes reported a reload")
	}
}

func TestEditorMissingFile(t *testing.T) {
	if _, err := NewEditor(filepath.Join(t.TempDir(), "nope.go"), "go", "monokai"); err == nil {
		t.Error("expected error for missing snippet")
	}
}

func TestEditorWatchReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "demo.go")
	if err := os.WriteFile(path, []byte("package a\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	e, err := NewEditor(path, "", "monokai")
	if err != nil {
		t.Fatal(err)
	}
	if e.Title != "demo.go" {
		t.Errorf("Title = %q", e.Title)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := e.Watch(ctx); err != nil {
		t.Fatal(err)
	}
	defer e.Close()

	if err := os.WriteFile(path, []byte("package b\n\nvar x = 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	deadline := time.After(5 * time.Second)
	for {
		if e.Poll() && len(e.Lines()) > 0 && e.Lines()[0].Text() == "package b" {
			break
		}
		select {
		case <-deadline:
			t.Fatal("no reload after write")
		case <-time.After(10 * time.Millisecond):
		}
	}
	if len(e.Lines()) != 3 {
		t.Errorf("got %d lines after reload, want 3", len(e.Lines()))
	}
}
