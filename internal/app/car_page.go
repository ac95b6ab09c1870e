package app

import (
	"context"
	"fmt"
	"time"

	"github.com/chewxy/math32"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/showroom/internal/assets"
	"github.com/Faultbox/showroom/internal/config"
	"github.com/Faultbox/showroom/internal/engine/camera"
	"github.com/Faultbox/showroom/internal/engine/debug"
	"github.com/Faultbox/showroom/internal/engine/input"
	"github.com/Faultbox/showroom/internal/engine/picking"
	"github.com/Faultbox/showroom/internal/engine/scene"
	"github.com/Faultbox/showroom/internal/engine/ui2d"
	"github.com/Faultbox/showroom/internal/logger"
	"github.com/Faultbox/showroom/internal/model"
	"github.com/Faultbox/showroom/internal/viewer"
	"github.com/Faultbox/showroom/pkg/math"
)

// clickSlop is how far, in points, a press may travel and still count
// as a click on a door.
const clickSlop = 4

// CarPage shows the car viewer: orbit controls, door buttons and a
// loading overlay while the model downloads.
type CarPage struct {
	cfg     *config.Config
	fetcher *assets.Fetcher

	viewer *viewer.Viewer
	scene  *scene.Scene
	cam    *camera.OrbitCamera
	cancel context.CancelFunc

	surface  *Surface
	shownEnv *viewer.Environment
	shownCar *model.Node

	showBounds bool
	showHelp   bool

	rotating  bool
	panning   bool
	travel    float32
	dismissed int

	log *zap.Logger
}

// NewCarPage creates the page. Assets resolve against fetcher.
func NewCarPage(cfg *config.Config, fetcher *assets.Fetcher) *CarPage {
	return &CarPage{
		cfg:     cfg,
		fetcher: fetcher,
		log:     logger.Named("car"),
	}
}

func (p *CarPage) Enter(ctx context.Context, s *Surface) error {
	p.surface = s
	sc := scene.DefaultConfig()
	sc.Width, sc.Height = s.Width, s.Height
	sc.ShadowResolution = int32(p.cfg.Graphics.ShadowMapSize)

	var err error
	p.scene, err = scene.New(sc)
	if err != nil {
		return fmt.Errorf("car page: %w", err)
	}

	p.cam = camera.NewOrbitCamera(math.V3(0, 0.4, 4), math.V3(0, 0.2, 0))
	p.cam.SetAspect(int(s.Width), int(s.Height))

	s.Bloom.Enabled = false
	s.Bloom.ToneMap = true
	s.Bloom.Exposure = p.cfg.Viewer.Exposure

	lctx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.viewer = viewer.New(p.cfg, p.fetcher)
	p.viewer.OnScroll = func(delta float32) {
		p.log.Debug("scroll", zap.Float32("delta", delta))
	}
	p.viewer.Start(lctx)
	return nil
}

func (p *CarPage) Exit() {
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	if p.scene != nil {
		p.scene.Destroy()
		p.scene = nil
	}
	p.shownEnv, p.shownCar = nil, nil
}

func (p *CarPage) HandleEvent(ev input.Event) {
	switch ev.Type {
	case input.EventKeyDown:
		if ev.Repeat {
			return
		}
		switch ev.Key {
		case sdl.SCANCODE_F1:
			p.showHelp = !p.showHelp
			return
		case sdl.SCANCODE_F3:
			p.showBounds = !p.showBounds
			return
		}
		if r, ok := input.Digit(ev.Key); ok {
			if a, ok := viewer.ActionForKey(r); ok {
				p.viewer.Perform(a)
			}
		}
	case input.EventMouseDown:
		switch ev.Button {
		case sdl.BUTTON_LEFT:
			p.rotating = true
			p.travel = 0
		case sdl.BUTTON_RIGHT:
			p.panning = true
		}
	case input.EventMouseUp:
		switch ev.Button {
		case sdl.BUTTON_LEFT:
			if p.rotating && p.travel < clickSlop {
				p.pick(float32(ev.MouseX), float32(ev.MouseY))
			}
			p.rotating = false
		case sdl.BUTTON_RIGHT:
			p.panning = false
		}
	case input.EventMouseMove:
		dx, dy := float32(ev.RelX), float32(ev.RelY)
		if p.rotating {
			p.travel += math32.Abs(dx) + math32.Abs(dy)
			p.cam.HandleDrag(dx, dy)
		} else if p.panning {
			p.cam.HandlePan(dx, dy)
		}
	case input.EventMouseWheel:
		p.cam.HandleZoom(ev.Wheel)
		p.viewer.Scroll(ev.Wheel)
	}
}

// pick toggles the door under the cursor.
func (p *CarPage) pick(x, y float32) {
	if p.viewer.Loading() || p.surface.PointWidth <= 0 || p.surface.PointHeight <= 0 {
		return
	}
	inv := p.cam.ProjectionMatrix().Mul(p.cam.ViewMatrix()).Inverse()
	ray := picking.ScreenToRay(x, y, p.surface.PointWidth, p.surface.PointHeight, inv)
	if slot, ok := p.viewer.DoorAt(ray); ok {
		p.log.Debug("door picked", zap.Stringer("slot", slot))
		p.viewer.ToggleDoor(slot)
	}
}

func (p *CarPage) Update(dt time.Duration) {
	p.viewer.Update()
	p.cam.Update()
}

func (p *CarPage) Resize(width, height int32) {
	p.cam.SetAspect(int(width), int(height))
	p.scene.Resize(width, height)
}

// sync uploads a newly installed environment and drops meshes of a
// replaced car.
func (p *CarPage) sync() {
	if env := p.viewer.Environment(); env != nil && env != p.shownEnv {
		p.scene.SetPanorama(env.Background, env.Reflection)
		p.shownEnv = env
	}
	if car := p.viewer.Car(); car != p.shownCar {
		p.scene.Forget(p.viewer.Root())
		p.shownCar = car
	}
}

func (p *CarPage) Render(s *Surface) {
	p.sync()
	if p.showBounds {
		doors := p.viewer.Doors()
		p.scene.SetDebugLines(debug.NodeWireframes(doors[:], debug.DefaultBBoxPadding))
	} else {
		p.scene.SetDebugLines(nil)
	}
	tex := p.scene.Render(p.viewer.Root(), p.cam)
	s.Bloom.Apply(tex, s.Width, s.Height)
}

func (p *CarPage) DrawUI(ui *ui2d.Context) {
	if p.viewer.Loading() {
		prog, ok := p.viewer.Progress()
		drawLoading(ui, prog, ok)
	} else if a, ok := drawDoorButtons(ui); ok {
		p.viewer.Perform(a)
	}
	if p.showHelp {
		car, env := p.viewer.Sources()
		p.showHelp = drawHelp(ui, car, env)
	}

	notices := p.viewer.Notices()
	if p.dismissed < len(notices) {
		ui.Banner(notices[p.dismissed], ui2d.ColorWarning)
		sw, _ := ui.GetScreenSize()
		if ui.ButtonAt("dismissNotice", ui2d.Rect{X: sw - 76, Y: 4, W: 68, H: 24}, "Dismiss") {
			p.dismissed++
		}
	}
}
