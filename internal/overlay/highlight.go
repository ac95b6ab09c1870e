// Package overlay renders a syntax-highlighted code snippet in a floating
// editor-style window above the plexus background.
package overlay

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// Span is a run of text drawn in one style.
type Span struct {
	Text   string
	Color  color.RGBA
	Bold   bool
	Italic bool
}

// Line is one source line. Spans never contain newlines.
type Line []Span

// Text returns the plain text of the line.
func (l Line) Text() string {
	var b strings.Builder
	for _, s := range l {
		b.WriteString(s.Text)
	}
	return b.String()
}

// Theme holds the window colors of a chroma style.
type Theme struct {
	Background color.RGBA
	Foreground color.RGBA
}

// LookupTheme returns the colors of the named style, falling back to
// chroma's default style for unknown names.
func LookupTheme(style string) Theme {
	s := styles.Get(style)
	bg := s.Get(chroma.Background)
	th := Theme{
		Background: color.RGBA{R: 0x1e, G: 0x1e, B: 0x1e, A: 0xff},
		Foreground: color.RGBA{R: 0xd4, G: 0xd4, B: 0xd4, A: 0xff},
	}
	if bg.Background.IsSet() {
		th.Background = rgba(bg.Background)
	}
	if bg.Colour.IsSet() {
		th.Foreground = rgba(bg.Colour)
	}
	return th
}

func rgba(c chroma.Colour) color.RGBA {
	return color.RGBA{R: c.Red(), G: c.Green(), B: c.Blue(), A: 0xff}
}

// Highlight tokenises src with the lexer for language (a name or a file
// name) and colors it with the named chroma style.
func Highlight(src, language, style string) ([]Line, error) {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Match(language)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	iterator, err := lexer.Tokenise(nil, src)
	if err != nil {
		return nil, fmt.Errorf("tokenising %s source: %w", language, err)
	}

	st := styles.Get(style)
	fg := LookupTheme(style).Foreground

	var lines []Line
	for _, toks := range chroma.SplitTokensIntoLines(iterator.Tokens()) {
		var line Line
		for _, tok := range toks {
			text := strings.TrimRight(tok.Value, "\r\n")
			if text == "" {
				continue
			}
			entry := st.Get(tok.Type)
			span := Span{
				Text:   expandTabs(text),
				Color:  fg,
				Bold:   entry.Bold == chroma.Yes,
				Italic: entry.Italic == chroma.Yes,
			}
			if entry.Colour.IsSet() {
				span.Color = rgba(entry.Colour)
			}
			line = append(line, span)
		}
		lines = append(lines, line)
	}
	return lines, nil
}

const tabWidth = 4

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", tabWidth))
}
