// Package app runs the showroom frame loop and its pages.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/showroom/internal/config"
	"github.com/Faultbox/showroom/internal/engine/debug"
	"github.com/Faultbox/showroom/internal/engine/input"
	"github.com/Faultbox/showroom/internal/engine/postfx"
	"github.com/Faultbox/showroom/internal/engine/renderer"
	"github.com/Faultbox/showroom/internal/engine/ui2d"
	"github.com/Faultbox/showroom/internal/engine/window"
	"github.com/Faultbox/showroom/internal/logger"
)

// App owns the window, the GL context and everything drawn into it.
type App struct {
	cfg     *config.Config
	running bool

	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	ui     *ui2d.Context
	bloom  *postfx.Bloom
	pages  *Manager
	shots  *debug.Screenshots

	surface Surface
	banner  string
	capture bool

	frames   int
	fps      int
	fpsTimer time.Time

	log *zap.Logger
}

// New creates the window and the shared renderers.
func New(cfg *config.Config, title string) (*App, error) {
	a := &App{
		cfg:   cfg,
		pages: NewManager(),
		shots: debug.NewScreenshots("screenshots", "showroom"),
		log:   logger.Named("app"),
	}

	a.log.Info("initializing",
		zap.String("title", title),
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height))

	var err error
	a.window, err = window.New(window.Config{
		Title:      title,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
		Samples:    4,
	})
	if err != nil {
		return nil, fmt.Errorf("creating window: %w", err)
	}

	dw, dh := a.window.DrawableSize()
	a.surface = Surface{Width: int32(dw), Height: int32(dh)}

	a.renderer, err = renderer.New(a.surface.Width, a.surface.Height)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("creating renderer: %w", err)
	}

	a.bloom, err = postfx.New(a.surface.Width, a.surface.Height, bloomSettings(cfg.Bloom))
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("creating bloom: %w", err)
	}
	a.surface.Bloom = a.bloom

	ww, wh := a.window.Size()
	a.surface.PointWidth, a.surface.PointHeight = float32(ww), float32(wh)
	a.ui, err = ui2d.NewContext(ww, wh)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("creating ui: %w", err)
	}

	a.input = input.New()
	return a, nil
}

func bloomSettings(c config.BloomConfig) postfx.Settings {
	s := postfx.DefaultSettings()
	s.Enabled = c.Enabled
	s.Strength = c.Strength
	s.Radius = c.Radius
	s.Threshold = c.Threshold
	return s
}

// Run drives first until the window closes, Escape is pressed or ctx is
// cancelled.
func (a *App) Run(ctx context.Context, first Page) error {
	a.pages.Change(first)
	a.running = true
	a.fpsTimer = time.Now()
	last := time.Now()

	a.log.Info("starting frame loop")
	for a.running {
		now := time.Now()
		dt := now.Sub(last)
		last = now

		if a.input.Update() {
			break
		}
		for _, ev := range a.input.Events() {
			a.handleEvent(ev)
		}

		if err := a.pages.Update(ctx, &a.surface, dt); err != nil {
			a.fail(err)
		}

		a.render()
		a.window.SwapBuffers()
		a.countFrame(now)

		if ctx.Err() != nil {
			a.running = false
		}
	}

	a.log.Info("frame loop stopped")
	return nil
}

// fail shows err in the banner and keeps the loop alive.
func (a *App) fail(err error) {
	a.log.Error("page failed", zap.Error(err))
	a.banner = err.Error()
}

func (a *App) handleEvent(ev input.Event) {
	feedUI(a.ui.Input(), ev)

	switch ev.Type {
	case input.EventWindowResize:
		a.resize()
	case input.EventKeyDown:
		switch ev.Key {
		case sdl.SCANCODE_ESCAPE:
			a.running = false
			return
		case sdl.SCANCODE_F12:
			a.capture = true
			return
		}
	case input.EventMouseDown, input.EventMouseWheel:
		// Presses and scrolls over a widget stay with the UI.
		if a.ui.WantsMouse() {
			return
		}
	}

	if p := a.pages.Current(); p != nil {
		p.HandleEvent(ev)
	}
}

// feedUI mirrors a window event into the immediate-mode input state.
func feedUI(in *ui2d.InputState, ev input.Event) {
	x, y := float32(ev.MouseX), float32(ev.MouseY)
	button := ui2d.ButtonLeft
	if ev.Button == sdl.BUTTON_RIGHT {
		button = ui2d.ButtonRight
	} else if ev.Button != sdl.BUTTON_LEFT {
		button = -1
	}

	switch ev.Type {
	case input.EventMouseMove:
		in.Move(x, y)
	case input.EventMouseDown:
		in.Press(button, x, y)
	case input.EventMouseUp:
		in.Release(button, x, y)
	case input.EventMouseWheel:
		in.Scroll(ev.Wheel)
	}
}

func (a *App) resize() {
	dw, dh := a.window.DrawableSize()
	a.surface.Width, a.surface.Height = int32(dw), int32(dh)
	a.renderer.Resize(a.surface.Width, a.surface.Height)
	a.bloom.Resize(a.surface.Width, a.surface.Height)

	ww, wh := a.window.Size()
	a.surface.PointWidth, a.surface.PointHeight = float32(ww), float32(wh)
	a.ui.Resize(ww, wh)

	if p := a.pages.Current(); p != nil {
		p.Resize(a.surface.Width, a.surface.Height)
	}
	a.log.Debug("resized", zap.Int("width", dw), zap.Int("height", dh))
}

func (a *App) render() {
	a.renderer.BeginFrame()

	page := a.pages.Current()
	if page != nil {
		page.Render(&a.surface)
	}

	a.ui.Begin()
	if page != nil {
		page.DrawUI(a.ui)
	}
	if a.banner != "" {
		a.ui.Banner(a.banner, ui2d.ColorError)
	}
	if a.cfg.Graphics.ShowFPS {
		sw, _ := a.ui.GetScreenSize()
		a.ui.Text(sw-80, 40, fmt.Sprintf("%d fps", a.fps), ui2d.ColorTextDim)
	}
	a.ui.End()

	if a.capture {
		a.capture = false
		a.screenshot()
	}
}

func (a *App) screenshot() {
	w, h := a.renderer.Size()
	path, err := a.shots.Save(a.renderer.ReadPixels(), int(w), int(h))
	if err != nil {
		a.log.Warn("screenshot failed", zap.Error(err))
		return
	}
	a.log.Info("screenshot saved", zap.String("path", path))
}

func (a *App) countFrame(now time.Time) {
	a.frames++
	if now.Sub(a.fpsTimer) >= time.Second {
		a.fps = a.frames
		a.frames = 0
		a.fpsTimer = now
		a.log.Debug("fps", zap.Int("count", a.fps))
	}
}

// Close exits the active page and releases the window.
func (a *App) Close() {
	a.log.Info("closing")

	if a.pages != nil {
		a.pages.Close()
	}
	if a.ui != nil {
		a.ui.Close()
	}
	if a.bloom != nil {
		a.bloom.Destroy()
	}
	if a.window != nil {
		a.window.Close()
	}
}
