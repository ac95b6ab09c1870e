package app

import (
	"fmt"

	"github.com/Faultbox/showroom/internal/assets"
	"github.com/Faultbox/showroom/internal/engine/ui2d"
	"github.com/Faultbox/showroom/internal/viewer"
)

const (
	doorButtonW   = 140
	doorButtonH   = 28
	doorButtonGap = 8
	hudMargin     = 16
)

// doorButtons places the eight door buttons bottom-center: one column per
// door, open above close.
func doorButtons(screenW, screenH float32) [len(viewer.Actions)]ui2d.Rect {
	const cols = len(viewer.Slots)
	totalW := float32(cols)*doorButtonW + float32(cols-1)*doorButtonGap
	x0 := (screenW - totalW) / 2
	y0 := screenH - hudMargin - 2*doorButtonH - doorButtonGap

	var rects [len(viewer.Actions)]ui2d.Rect
	for i, a := range viewer.Actions {
		col := float32(a.Slot())
		row := float32(0)
		if !a.Opens() {
			row = 1
		}
		rects[i] = ui2d.Rect{
			X: x0 + col*(doorButtonW+doorButtonGap),
			Y: y0 + row*(doorButtonH+doorButtonGap),
			W: doorButtonW,
			H: doorButtonH,
		}
	}
	return rects
}

// loadingLabel formats the overlay caption, with an integer percent when
// the download size is known.
func loadingLabel(p assets.Progress, ok bool) string {
	if !ok || !p.Known() {
		return "Loading 3D model..."
	}
	return fmt.Sprintf("Loading 3D model... %d%%", p.Percent())
}

// drawLoading shows a centered panel with the model download progress.
func drawLoading(ui *ui2d.Context, p assets.Progress, ok bool) {
	sw, sh := ui.GetScreenSize()
	panel := ui2d.Rect{W: sw, H: sh}.Centered(320, 72)
	ui.Rect(panel, ui2d.ColorPanelBg)

	label := loadingLabel(p, ok)
	lw, _ := ui.Renderer().MeasureText(label, 1)
	ui.Text(panel.X+(panel.W-lw)/2, panel.Y+14, label, ui2d.ColorText)

	bar := ui2d.Rect{X: panel.X + 16, Y: panel.Y + 38, W: panel.W - 32, H: 18}
	fraction := float32(0)
	if ok {
		fraction = float32(p.Fraction())
	}
	ui.ProgressBarAt(bar, fraction, "")
}

// drawDoorButtons lays out the door controls and returns the action whose
// button was clicked.
func drawDoorButtons(ui *ui2d.Context) (viewer.Action, bool) {
	sw, sh := ui.GetScreenSize()
	rects := doorButtons(sw, sh)

	var (
		hit     viewer.Action
		clicked bool
	)
	for i, a := range viewer.Actions {
		if ui.ButtonAt(a.ButtonID(), rects[i], a.Label()) && !clicked {
			hit, clicked = a, true
		}
	}
	return hit, clicked
}

const (
	helpW     = 280
	helpH     = 228
	helpLineH = 15
)

var helpLines = [...]string{
	"left drag     orbit",
	"right drag    pan",
	"wheel         zoom",
	"click door    toggle",
	"1-8           door buttons",
	"F1 / F3       help / bounds",
}

func sourceColor(s assets.Source) ui2d.Color {
	if s == assets.SourceFetched {
		return ui2d.ColorTextDim
	}
	return ui2d.ColorWarning
}

// drawHelp shows the controls panel with where each asset came from. It
// returns false once the panel's close button is clicked.
func drawHelp(ui *ui2d.Context, car, env assets.Source) bool {
	sw, _ := ui.GetScreenSize()
	if !ui.BeginWindow("help", sw-helpW-hudMargin, 48, helpW, helpH, "Controls") {
		return true
	}
	defer ui.EndWindow()

	for _, line := range helpLines {
		ui.Row(helpLineH)
		ui.Label(line)
	}
	ui.Row(helpLineH)
	ui.LabelColored("model: "+car.String(), sourceColor(car))
	ui.Row(helpLineH)
	ui.LabelColored("environment: "+env.String(), sourceColor(env))
	ui.Row(24)
	return !ui.Button("close", 0, "Close")
}
