package ui2d

import "fmt"

const (
	textScale = 1.0
	titleBarH = 24
	padding   = 8
	rowGap    = 4
	buttonH   = 28
	bannerH   = 32
)

// Context lays out widgets and routes mouse input for one frame.
type Context struct {
	renderer *Renderer
	input    *InputState

	hotWidget    string
	activeWidget string

	windows       map[string]*WindowState
	currentWindow *WindowState

	// Mouse-over-UI flags for the current and previous frame.
	overUI     bool
	prevOverUI bool

	cursorX float32
	cursorY float32
	rowH    float32
}

// WindowState persists a window across frames.
type WindowState struct {
	ID     string
	X, Y   float32
	W, H   float32
	Open   bool
	Moving bool

	// Dragged windows stop following the caller's layout.
	dragged bool
}

// NewContext creates a UI context with its renderer. Requires GL.
func NewContext(width, height int) (*Context, error) {
	r, err := New(width, height)
	if err != nil {
		return nil, fmt.Errorf("create renderer: %w", err)
	}
	return newContext(r), nil
}

func newContext(r *Renderer) *Context {
	return &Context{
		renderer: r,
		input:    &InputState{},
		windows:  make(map[string]*WindowState),
	}
}

// Close releases resources.
func (c *Context) Close() {
	if c.renderer != nil {
		c.renderer.Close()
	}
}

// Renderer returns the underlying renderer.
func (c *Context) Renderer() *Renderer {
	return c.renderer
}

// Resize updates the screen size.
func (c *Context) Resize(width, height int) {
	c.renderer.Resize(width, height)
}

// Input returns the input state for the caller to feed.
func (c *Context) Input() *InputState {
	return c.input
}

// Begin starts a new UI frame.
func (c *Context) Begin() {
	c.input.Update()
	c.renderer.Begin()
	c.overUI = false
	c.hotWidget = ""
}

// End draws the frame.
func (c *Context) End() {
	c.renderer.End()
	c.finish()
}

func (c *Context) finish() {
	c.input.EndFrame()
	c.prevOverUI = c.overUI
}

// WantsMouse reports whether the pointer was over a UI element last frame or
// a widget is being held. Camera controls should ignore the mouse when true.
func (c *Context) WantsMouse() bool {
	return c.prevOverUI || c.overUI || c.activeWidget != ""
}

func (c *Context) claim(r Rect) bool {
	if r.Contains(c.input.MouseX, c.input.MouseY) {
		c.overUI = true
		return true
	}
	return false
}

// BeginWindow starts a window with a draggable title bar.
// Returns false if the window is closed.
func (c *Context) BeginWindow(id string, x, y, w, h float32, title string) bool {
	ws, ok := c.windows[id]
	if !ok {
		ws = &WindowState{ID: id, X: x, Y: y, W: w, H: h, Open: true}
		c.windows[id] = ws
	} else if !ws.dragged {
		ws.X, ws.Y, ws.W, ws.H = x, y, w, h
	}
	if !ws.Open {
		return false
	}
	c.currentWindow = ws

	titleID := id + "_titlebar"
	titleBar := Rect{ws.X, ws.Y, ws.W, titleBarH}
	if c.input.MouseLeftPressed && titleBar.Contains(c.input.MouseX, c.input.MouseY) {
		ws.Moving = true
		ws.dragged = true
		c.activeWidget = titleID
	}
	if ws.Moving && c.input.MouseLeftDown {
		ws.X += c.input.MouseDeltaX
		ws.Y += c.input.MouseDeltaY
	}
	if c.input.MouseLeftReleased && ws.Moving {
		ws.Moving = false
		if c.activeWidget == titleID {
			c.activeWidget = ""
		}
	}
	c.claim(Rect{ws.X, ws.Y, ws.W, ws.H})

	c.renderer.DrawPanel(ws.X, ws.Y, ws.W, ws.H, ColorPanelBg, ColorPanelBorder)
	c.renderer.DrawRect(ws.X+1, ws.Y+1, ws.W-2, titleBarH-1, ColorTitleBar)

	_, textH := c.renderer.MeasureText(title, textScale)
	c.renderer.DrawText(ws.X+padding, ws.Y+(titleBarH-textH)/2, title, textScale, ColorText)

	c.cursorX = ws.X + padding
	c.cursorY = ws.Y + titleBarH + padding
	c.rowH = 0
	return true
}

// EndWindow ends the current window.
func (c *Context) EndWindow() {
	c.currentWindow = nil
}

// Window returns the persisted state of a window, or nil.
func (c *Context) Window(id string) *WindowState {
	return c.windows[id]
}

// Row starts a new row with the given height.
func (c *Context) Row(height float32) {
	if c.currentWindow == nil {
		return
	}
	c.cursorX = c.currentWindow.X + padding
	c.cursorY += c.rowH + rowGap
	c.rowH = height
}

// Button draws a button at the layout cursor and returns true if clicked.
func (c *Context) Button(id string, width float32, label string) bool {
	if c.currentWindow == nil {
		return false
	}
	h := c.rowH
	if h == 0 {
		h = buttonH
	}
	if width == 0 {
		width = c.currentWindow.W - 2*padding
	}
	clicked := c.button(c.currentWindow.ID+"_"+id, Rect{c.cursorX, c.cursorY, width, h}, label)
	c.cursorX += width + rowGap
	return clicked
}

// ButtonAt draws a free-standing button outside any window.
func (c *Context) ButtonAt(id string, r Rect, label string) bool {
	return c.button(id, r, label)
}

func (c *Context) button(fullID string, rect Rect, label string) bool {
	hovered := c.claim(rect)
	clicked := false

	if hovered {
		c.hotWidget = fullID
		// Fire on press; the event flag covers press and release in one frame.
		if c.input.MouseLeftPressed || c.input.MouseLeftClicked {
			c.activeWidget = fullID
			clicked = true
			c.input.MouseLeftClicked = false
			c.input.MouseLeftPressed = false
		}
	}
	if c.activeWidget == fullID && (c.input.MouseLeftReleased || !c.input.MouseLeftDown) && !clicked {
		c.activeWidget = ""
	}

	color := ColorButtonNormal
	switch {
	case c.activeWidget == fullID:
		color = ColorButtonActive
	case hovered:
		color = ColorButtonHover
	}
	c.renderer.DrawRect(rect.X, rect.Y, rect.W, rect.H, color)
	c.renderer.DrawRectOutline(rect.X, rect.Y, rect.W, rect.H, 1, ColorPanelBorder)

	textW, textH := c.renderer.MeasureText(label, textScale)
	c.renderer.DrawText(rect.X+(rect.W-textW)/2, rect.Y+(rect.H-textH)/2, label, textScale, ColorText)
	return clicked
}

// Label draws a text label.
func (c *Context) Label(text string) {
	c.LabelColored(text, ColorText)
}

// LabelColored draws a text label in color.
func (c *Context) LabelColored(text string, color Color) {
	if c.currentWindow == nil {
		return
	}
	c.renderer.DrawText(c.cursorX, c.cursorY, text, textScale, color)
	w, _ := c.renderer.MeasureText(text, textScale)
	c.cursorX += w + rowGap
}

// ProgressBarAt draws a free-standing progress bar.
func (c *Context) ProgressBarAt(r Rect, fraction float32, label string) {
	c.drawProgress(r, fraction, label)
}

func (c *Context) drawProgress(r Rect, fraction float32, label string) {
	fraction = clamp01(fraction)
	c.renderer.DrawRect(r.X, r.Y, r.W, r.H, ColorTrack)
	c.renderer.DrawRectOutline(r.X, r.Y, r.W, r.H, 1, ColorPanelBorder)
	if fill := (r.W - 2) * fraction; fill > 0 {
		c.renderer.DrawRect(r.X+1, r.Y+1, fill, r.H-2, ColorHighlight)
	}
	if label != "" {
		textW, textH := c.renderer.MeasureText(label, textScale)
		c.renderer.DrawText(r.X+(r.W-textW)/2, r.Y+(r.H-textH)/2, label, textScale, ColorText)
	}
}

func clamp01(v float32) float32 {
	return min(max(v, 0), 1)
}

// Banner draws a full-width strip at the top of the screen.
func (c *Context) Banner(text string, bg Color) {
	sw, _ := c.renderer.GetScreenSize()
	r := Rect{0, 0, float32(sw), bannerH}
	c.claim(r)
	c.renderer.DrawRect(r.X, r.Y, r.W, r.H, bg)
	textW, textH := c.renderer.MeasureText(text, textScale)
	c.renderer.DrawText((r.W-textW)/2, (r.H-textH)/2, text, textScale, ColorText)
}

// Text draws free-standing text in screen space.
func (c *Context) Text(x, y float32, text string, color Color) {
	c.renderer.DrawText(x, y, text, textScale, color)
}

// Rect draws a free-standing filled rectangle.
func (c *Context) Rect(r Rect, color Color) {
	c.renderer.DrawRect(r.X, r.Y, r.W, r.H, color)
}

// GetScreenSize returns the current screen dimensions.
func (c *Context) GetScreenSize() (float32, float32) {
	w, h := c.renderer.GetScreenSize()
	return float32(w), float32(h)
}

// Rect is an axis-aligned screen rectangle.
type Rect struct {
	X, Y, W, H float32
}

// Contains reports whether the point lies inside the rectangle.
func (r Rect) Contains(x, y float32) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Centered returns a w x h rectangle centered in r.
func (r Rect) Centered(w, h float32) Rect {
	return Rect{r.X + (r.W-w)/2, r.Y + (r.H-h)/2, w, h}
}
