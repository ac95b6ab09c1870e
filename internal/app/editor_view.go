package app

import (
	"github.com/Faultbox/showroom/internal/engine/ui2d"
	"github.com/Faultbox/showroom/internal/overlay"
)

const (
	editorTitleH  = 24
	editorPadding = 10
	editorLineH   = 15
	editorCharW   = 7
)

var (
	editorBg     = ui2d.RGBA(0, 20, 30, 242)
	editorBorder = ui2d.Hex("#00ffff")
)

// editorRect centers a w x h panel, shrunk to fit the screen.
func editorRect(screenW, screenH, w, h float32) ui2d.Rect {
	w = min(w, screenW-2*hudMargin)
	h = min(h, screenH-2*hudMargin)
	return ui2d.Rect{W: screenW, H: screenH}.Centered(max(w, 0), max(h, 0))
}

// visibleLines returns how many code lines fit in a panel of height h.
func visibleLines(h float32) int {
	n := int((h - editorTitleH - 2*editorPadding) / editorLineH)
	return max(n, 0)
}

// clipLine cuts a highlighted line to at most cols characters.
func clipLine(line overlay.Line, cols int) overlay.Line {
	var out overlay.Line
	left := cols
	for _, span := range line {
		if left <= 0 {
			break
		}
		r := []rune(span.Text)
		if len(r) > left {
			span.Text = string(r[:left])
		}
		left -= len(r)
		out = append(out, span)
	}
	return out
}

// drawEditor renders the snippet as a read-only code window.
func drawEditor(ui *ui2d.Context, e *overlay.Editor, w, h float32) {
	sw, sh := ui.GetScreenSize()
	r := editorRect(sw, sh, w, h)

	ui.Rect(r, editorBg)
	ui.Renderer().DrawRectOutline(r.X, r.Y, r.W, r.H, 1, editorBorder)

	title := ui2d.Rect{X: r.X, Y: r.Y, W: r.W, H: editorTitleH}
	ui.Rect(title, editorBorder.WithAlpha(0.15))
	ui.Text(r.X+editorPadding, r.Y+(editorTitleH-13)/2, e.Title, editorBorder)

	fg := ui2d.FromColor(e.Theme().Foreground)
	cols := int((r.W - 2*editorPadding) / editorCharW)
	lines := e.Lines()
	if n := visibleLines(r.H); len(lines) > n {
		lines = lines[:n]
	}

	y := r.Y + editorTitleH + editorPadding
	for _, line := range lines {
		x := r.X + editorPadding
		for _, span := range clipLine(line, cols) {
			c := fg
			if span.Color.A > 0 {
				c = ui2d.FromColor(span.Color)
			}
			ui.Text(x, y, span.Text, c)
			x += float32(len([]rune(span.Text))) * editorCharW
		}
		y += editorLineH
	}
}
