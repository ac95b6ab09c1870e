package viewer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/showroom/internal/assets"
	"github.com/Faultbox/showroom/internal/config"
	"github.com/Faultbox/showroom/internal/engine/picking"
	"github.com/Faultbox/showroom/internal/logger"
	"github.com/Faultbox/showroom/internal/model"
	"github.com/Faultbox/showroom/pkg/formats"
	"github.com/Faultbox/showroom/pkg/math"
)

var errViewerNotStarted = errors.New("viewer not started")

// Viewer owns the car scene: the loaded (or substitute) model, its doors,
// the running door animations and the environment panorama.
//
// All methods except Start's background loads must be called from the
// frame loop goroutine.
type Viewer struct {
	// Clock returns the current time. Tests replace it.
	Clock func() time.Time
	// OnScroll receives wheel input. Nil ignores it.
	OnScroll func(delta float32)

	cfg     config.ViewerConfig
	assets  config.AssetsConfig
	fetcher *assets.Fetcher
	table   DoorTable
	log     *zap.Logger

	root  *model.Node
	car   *model.Node
	doors Doors
	anim  Animator
	open  [slotCount]bool
	env   *Environment

	carLoad *assets.Pending[*model.Node]
	envLoad *assets.Pending[*Environment]

	carSource assets.Source
	envSource assets.Source
	notices   []string
}

// New creates a viewer. Nothing is loaded until Start.
func New(cfg *config.Config, fetcher *assets.Fetcher) *Viewer {
	return &Viewer{
		Clock:   time.Now,
		cfg:     cfg.Viewer,
		assets:  cfg.Assets,
		fetcher: fetcher,
		table:   DefaultDoorTable(),
		log:     logger.Named("viewer"),
		root:    model.NewNode("scene"),
	}
}

// Start issues the model and environment loads. Each one resolves to the
// real asset or to its substitute; neither can fail.
func (v *Viewer) Start(ctx context.Context) {
	carLoader := &assets.Loader[*model.Node]{
		Name:       v.assets.ModelPath,
		Timeout:    v.assets.LoadTimeout,
		RetryDelay: v.assets.RetryDelay,
		Strategies: fetchStrategies(v.fetcher, v.assets.ModelPath, decodeModel),
		Fallback:   model.PlaceholderCar,
	}
	v.carLoad = carLoader.Start(ctx)

	exposure := v.cfg.Exposure
	envLoader := &assets.Loader[*Environment]{
		Name:       v.assets.HDRIPath,
		Timeout:    v.assets.LoadTimeout,
		RetryDelay: v.assets.RetryDelay,
		Strategies: fetchStrategies(v.fetcher, v.assets.HDRIPath, func(data []byte) (*Environment, error) {
			return decodeEnvironment(data, exposure)
		}),
		Fallback: func() *Environment {
			return FallbackEnvironment(v.cfg.GradientWidth, v.cfg.GradientHeight, v.cfg.SkyStops)
		},
	}
	v.envLoad = envLoader.Start(ctx)
}

// fetchStrategies returns the two acquisition strategies used for every
// asset: a direct read, and a read preceded by an existence check.
func fetchStrategies[T any](f *assets.Fetcher, path string, decode func([]byte) (T, error)) []assets.Strategy[T] {
	direct := func(ctx context.Context, report assets.ReportFunc) (T, error) {
		data, err := f.Fetch(ctx, path, report)
		if err != nil {
			var zero T
			return zero, err
		}
		return decode(data)
	}
	verified := func(ctx context.Context, report assets.ReportFunc) (T, error) {
		if _, err := f.Stat(ctx, path); err != nil {
			var zero T
			return zero, fmt.Errorf("verify %s: %w", path, err)
		}
		return direct(ctx, report)
	}
	return []assets.Strategy[T]{
		{Name: "direct", Load: direct},
		{Name: "verify-then-load", Load: verified},
	}
}

func decodeModel(data []byte) (*model.Node, error) {
	if err := assets.Expect(data, assets.KindGLB); err != nil {
		return nil, err
	}
	return formats.ParseGLB(data)
}

func decodeEnvironment(data []byte, exposure float32) (*Environment, error) {
	if err := assets.Expect(data, assets.KindRadiance); err != nil {
		return nil, err
	}
	img, err := formats.ParseRadiance(data)
	if err != nil {
		return nil, err
	}
	return FromHDR(img, exposure), nil
}

// Update installs finished loads and advances door animations.
func (v *Viewer) Update() {
	if v.car == nil && v.carLoad != nil {
		if r, ok := v.carLoad.Poll(); ok {
			v.installCar(r)
		}
	}
	if v.env == nil && v.envLoad != nil {
		if r, ok := v.envLoad.Poll(); ok {
			v.installEnvironment(r)
		}
	}
	v.anim.Advance(v.Clock())
}

func (v *Viewer) installCar(r assets.Result[*model.Node]) {
	car := r.Asset
	if car == nil {
		car = model.PlaceholderCar()
	}
	car.Translation = math.V3(0, v.cfg.ModelOffsetY, 0)
	car.Rotation.Y = v.cfg.ModelYaw
	v.root.Add(car)
	v.car = car
	v.carSource = r.Source
	v.doors = Classify(car, v.table, v.log)

	nodes, meshes, tris := car.Stats()
	v.log.Info("model installed",
		zap.Stringer("source", r.Source),
		zap.Int("nodes", nodes),
		zap.Int("meshes", meshes),
		zap.Int("triangles", tris),
		zap.Int("doors", v.doors.Bound()))
	if r.Fallback() {
		v.notices = append(v.notices, fmt.Sprintf("Model unavailable (%s), showing placeholder", r.Source))
	}
}

func (v *Viewer) installEnvironment(r assets.Result[*Environment]) {
	env := r.Asset
	if env == nil {
		env = FallbackEnvironment(v.cfg.GradientWidth, v.cfg.GradientHeight, v.cfg.SkyStops)
	}
	v.env = env
	v.envSource = r.Source
	v.log.Info("environment installed", zap.Stringer("source", r.Source))
	if r.Fallback() {
		v.notices = append(v.notices, fmt.Sprintf("Environment unavailable (%s), using gradient sky", r.Source))
	}
}

// Perform runs a door action. Actions on unbound slots log a warning and
// change nothing.
func (v *Viewer) Perform(a Action) {
	if a.Opens() {
		v.OpenDoor(a.Slot())
	} else {
		v.CloseDoor(a.Slot())
	}
}

// OpenDoor swings slot's door to its open angle. On the y axis the
// rotation is negated so both hinge sides open outward.
func (v *Viewer) OpenDoor(slot Slot) bool {
	rule, node, ok := v.door(slot)
	if !ok {
		return false
	}
	target := rule.OpenAngle
	if rule.Axis == model.AxisY {
		target = -target
	}
	v.anim.Start(node, rule.Axis, target, v.Clock(), v.doorDuration())
	v.open[slot] = true
	v.log.Debug("door opening", zap.Stringer("slot", slot), zap.Float32("target", target))
	return true
}

// CloseDoor swings slot's door back to its closed angle.
func (v *Viewer) CloseDoor(slot Slot) bool {
	rule, node, ok := v.door(slot)
	if !ok {
		return false
	}
	v.anim.Start(node, rule.Axis, rule.CloseAngle, v.Clock(), v.doorDuration())
	v.open[slot] = false
	v.log.Debug("door closing", zap.Stringer("slot", slot))
	return true
}

func (v *Viewer) door(slot Slot) (DoorRule, *model.Node, bool) {
	node := v.doors.Get(slot)
	if node == nil {
		v.log.Warn("door action ignored, slot unbound", zap.Stringer("slot", slot))
		return DoorRule{}, nil, false
	}
	rule, ok := v.table.Rule(slot)
	if !ok {
		v.log.Warn("door action ignored, no rule for slot", zap.Stringer("slot", slot))
		return DoorRule{}, nil, false
	}
	return rule, node, true
}

func (v *Viewer) doorDuration() time.Duration {
	if v.cfg.DoorDuration > 0 {
		return v.cfg.DoorDuration
	}
	return 500 * time.Millisecond
}

// IsOpen reports whether slot's door was last told to open.
func (v *Viewer) IsOpen(slot Slot) bool {
	return slot >= 0 && slot < slotCount && v.open[slot]
}

// ToggleDoor opens a closed door and closes an open one.
func (v *Viewer) ToggleDoor(slot Slot) bool {
	if v.IsOpen(slot) {
		return v.CloseDoor(slot)
	}
	return v.OpenDoor(slot)
}

// DoorAt returns the bound door whose world bounds r hits first.
func (v *Viewer) DoorAt(r picking.Ray) (Slot, bool) {
	var (
		slots []Slot
		boxes []picking.AABB
	)
	for _, s := range Slots {
		node := v.doors.Get(s)
		if node == nil {
			continue
		}
		b := node.Bounds()
		if !b.Valid() {
			continue
		}
		slots = append(slots, s)
		boxes = append(boxes, picking.AABB{Min: b.Min, Max: b.Max})
	}
	i, _, ok := r.Nearest(boxes)
	if !ok {
		return 0, false
	}
	return slots[i], true
}

// Scroll forwards wheel input to OnScroll. The viewer itself has no
// scroll behavior.
func (v *Viewer) Scroll(delta float32) {
	if v.OnScroll != nil {
		v.OnScroll(delta)
	}
}

// Loading reports whether the model has not been installed yet.
func (v *Viewer) Loading() bool {
	return v.car == nil
}

// Progress returns the model download progress, if the size is known.
func (v *Viewer) Progress() (assets.Progress, bool) {
	if v.carLoad == nil {
		return assets.Progress{}, false
	}
	return v.carLoad.Progress()
}

// Wait blocks until both loads resolved, then installs them.
func (v *Viewer) Wait(ctx context.Context) error {
	if v.carLoad == nil || v.envLoad == nil {
		return errViewerNotStarted
	}
	if _, err := v.carLoad.Wait(ctx); err != nil {
		return err
	}
	if _, err := v.envLoad.Wait(ctx); err != nil {
		return err
	}
	v.Update()
	return nil
}

// Root returns the scene root. The car is attached once installed.
func (v *Viewer) Root() *model.Node { return v.root }

// Car returns the installed car, or nil while loading.
func (v *Viewer) Car() *model.Node { return v.car }

// Doors returns the bound doors.
func (v *Viewer) Doors() Doors { return v.doors }

// Environment returns the installed environment, or nil while loading.
func (v *Viewer) Environment() *Environment { return v.env }

// Sources returns how the model and environment were obtained.
func (v *Viewer) Sources() (car, env assets.Source) { return v.carSource, v.envSource }

// Animating reports whether any door is moving.
func (v *Viewer) Animating() bool { return v.anim.Active() > 0 }

// Notices returns user-facing messages about substituted assets.
func (v *Viewer) Notices() []string { return v.notices }
