package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/showroom/internal/config"
	"github.com/Faultbox/showroom/internal/engine/camera"
	"github.com/Faultbox/showroom/internal/engine/input"
	"github.com/Faultbox/showroom/internal/engine/scene"
	"github.com/Faultbox/showroom/internal/engine/ui2d"
	"github.com/Faultbox/showroom/internal/logger"
	"github.com/Faultbox/showroom/internal/overlay"
	"github.com/Faultbox/showroom/internal/plexus"
	"github.com/Faultbox/showroom/pkg/math"
)

// PlexusPage shows the rotating particle network behind the code window.
type PlexusPage struct {
	cfg *config.Config

	system *plexus.System
	cam    *camera.FixedCamera
	scene  *scene.PlexusScene
	editor *overlay.Editor
	cancel context.CancelFunc

	log *zap.Logger
}

// NewPlexusPage creates the page; GPU work waits for Enter.
func NewPlexusPage(cfg *config.Config) *PlexusPage {
	return &PlexusPage{
		cfg: cfg,
		log: logger.Named("plexus"),
	}
}

func plexusConfig(c config.PlexusConfig) plexus.Config {
	return plexus.Config{
		Particles:   c.Particles,
		Spread:      c.Spread,
		MaxDistance: c.MaxDistance,
		Interval:    c.RebuildInterval,
		SpinX:       c.SpinX,
		SpinY:       c.SpinY,
		Seed:        c.Seed,
	}
}

func plexusStyle(c config.PlexusConfig) scene.PlexusStyle {
	return scene.PlexusStyle{
		PointSize:    c.PointSize,
		PointColor:   rgb(c.PointColor),
		PointOpacity: c.PointOpacity,
		LineColor:    rgb(c.LineColor),
		LineOpacity:  c.LineOpacity,
	}
}

func rgb(hex string) [3]float32 {
	c := ui2d.Hex(hex)
	return [3]float32{c.R, c.G, c.B}
}

func (p *PlexusPage) Enter(ctx context.Context, s *Surface) error {
	p.system = plexus.NewSystem(plexusConfig(p.cfg.Plexus))

	p.cam = camera.NewFixedCamera(math.V3(0, 0, p.cfg.Plexus.CameraZ), math.Vec3{})
	p.cam.FOV = p.cfg.Plexus.FOV
	p.cam.SetAspect(int(s.Width), int(s.Height))

	var err error
	p.scene, err = scene.NewPlexusScene(s.Width, s.Height, plexusStyle(p.cfg.Plexus))
	if err != nil {
		return fmt.Errorf("plexus page: %w", err)
	}

	s.Bloom.Enabled = p.cfg.Bloom.Enabled
	s.Bloom.ToneMap = false
	s.Bloom.Exposure = 1

	if p.cfg.Overlay.Enabled {
		p.openEditor(ctx)
	}

	p.log.Info("plexus ready",
		zap.Int("particles", p.system.Field().Len()),
		zap.Int("edges", p.system.Graph().Len()))
	return nil
}

// openEditor loads the snippet. A broken snippet only hides the window.
func (p *PlexusPage) openEditor(ctx context.Context) {
	o := p.cfg.Overlay
	e, err := overlay.NewEditor(o.Snippet, o.Language, o.Style)
	if err != nil {
		p.log.Warn("code overlay disabled", zap.Error(err))
		return
	}
	p.editor = e

	if o.Watch && o.Snippet != "" {
		wctx, cancel := context.WithCancel(ctx)
		if err := e.Watch(wctx); err != nil {
			cancel()
			p.log.Warn("snippet watch failed", zap.Error(err))
			return
		}
		p.cancel = cancel
	}
}

func (p *PlexusPage) Exit() {
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	if p.editor != nil {
		p.editor.Close()
		p.editor = nil
	}
	if p.scene != nil {
		p.scene.Destroy()
		p.scene = nil
	}
}

func (p *PlexusPage) HandleEvent(ev input.Event) {}

func (p *PlexusPage) Update(dt time.Duration) {
	if p.system.Tick(dt) {
		p.log.Debug("graph rebuilt", zap.Int("edges", p.system.Graph().Len()))
	}
	if p.editor != nil && p.editor.Poll() {
		p.log.Info("snippet reloaded", zap.String("path", p.editor.Path))
	}
}

func (p *PlexusPage) Resize(width, height int32) {
	p.cam.SetAspect(int(width), int(height))
	p.scene.Resize(width, height)
}

func (p *PlexusPage) Render(s *Surface) {
	tex := p.scene.Render(p.system, p.cam)
	s.Bloom.Apply(tex, s.Width, s.Height)
}

func (p *PlexusPage) DrawUI(ui *ui2d.Context) {
	if p.editor == nil {
		return
	}
	drawEditor(ui, p.editor, float32(p.cfg.Overlay.Width), float32(p.cfg.Overlay.Height))
}
