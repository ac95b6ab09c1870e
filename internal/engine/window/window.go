// Package window opens the SDL2 window and its OpenGL 4.1 core context.
package window

import (
	"fmt"
	"runtime"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/showroom/internal/logger"
)

func init() {
	// GL and SDL video calls are only valid on the main thread.
	runtime.LockOSThread()
}

// Config describes the window to open.
type Config struct {
	Title      string
	Width      int
	Height     int
	Fullscreen bool
	VSync      bool
	Samples    int // MSAA samples on the default framebuffer, 0 for none
}

// Window is an SDL window with a current GL context.
type Window struct {
	win *sdl.Window
	ctx sdl.GLContext
	log *zap.Logger
}

type glAttr struct {
	attr  sdl.GLattr
	value int
}

// contextAttrs requests 4.1 core, the newest profile macOS offers.
func contextAttrs(samples int) []glAttr {
	attrs := []glAttr{
		{sdl.GL_CONTEXT_MAJOR_VERSION, 4},
		{sdl.GL_CONTEXT_MINOR_VERSION, 1},
		{sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_CORE},
		{sdl.GL_DOUBLEBUFFER, 1},
		{sdl.GL_DEPTH_SIZE, 24},
	}
	if samples > 0 {
		attrs = append(attrs,
			glAttr{sdl.GL_MULTISAMPLEBUFFERS, 1},
			glAttr{sdl.GL_MULTISAMPLESAMPLES, samples},
		)
	}
	return attrs
}

// New initializes SDL video, opens the window and makes its context current.
// On failure everything acquired so far is released.
func New(cfg Config) (*Window, error) {
	log := logger.Named("window")
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return nil, fmt.Errorf("initializing SDL: %w", err)
	}
	w := &Window{log: log}
	if err := w.open(cfg); err != nil {
		w.Close()
		return nil, err
	}

	pw, ph := w.Size()
	dw, dh := w.DrawableSize()
	log.Info("window open",
		zap.String("title", cfg.Title),
		zap.Int("width", pw), zap.Int("height", ph),
		zap.Int("drawableWidth", dw), zap.Int("drawableHeight", dh),
		zap.Bool("fullscreen", cfg.Fullscreen),
		zap.Int("samples", cfg.Samples),
	)
	return w, nil
}

func (w *Window) open(cfg Config) error {
	log := w.log

	for _, a := range contextAttrs(cfg.Samples) {
		if err := sdl.GLSetAttribute(a.attr, a.value); err != nil {
			log.Warn("GL attribute rejected", zap.Int("attr", int(a.attr)), zap.Error(err))
		}
	}

	flags := uint32(sdl.WINDOW_OPENGL | sdl.WINDOW_RESIZABLE | sdl.WINDOW_ALLOW_HIGHDPI)
	if cfg.Fullscreen {
		flags |= sdl.WINDOW_FULLSCREEN_DESKTOP
	}
	var err error
	w.win, err = sdl.CreateWindow(cfg.Title, sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED,
		int32(cfg.Width), int32(cfg.Height), flags)
	if err != nil {
		return fmt.Errorf("creating window: %w", err)
	}
	if w.ctx, err = w.win.GLCreateContext(); err != nil {
		return fmt.Errorf("creating GL context: %w", err)
	}

	interval := 0
	if cfg.VSync {
		interval = 1
	}
	if err := sdl.GLSetSwapInterval(interval); err != nil {
		log.Warn("swap interval not applied", zap.Int("interval", interval), zap.Error(err))
	}
	return nil
}

// Close releases the context and window and shuts SDL down.
func (w *Window) Close() {
	if w.ctx != nil {
		sdl.GLDeleteContext(w.ctx)
		w.ctx = nil
	}
	if w.win != nil {
		w.win.Destroy()
		w.win = nil
	}
	sdl.Quit()
	w.log.Info("window closed")
}

// SwapBuffers presents the back buffer.
func (w *Window) SwapBuffers() { w.win.GLSwap() }

// Size is the window size in screen points, the unit of mouse events.
func (w *Window) Size() (int, int) {
	pw, ph := w.win.GetSize()
	return int(pw), int(ph)
}

// DrawableSize is the framebuffer size in pixels. It exceeds Size on
// high-DPI displays.
func (w *Window) DrawableSize() (int, int) {
	dw, dh := w.win.GLGetDrawableSize()
	return int(dw), int(dh)
}
