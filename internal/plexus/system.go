package plexus

import (
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/showroom/internal/logger"
	"github.com/Faultbox/showroom/pkg/math"
)

// Config holds the plexus simulation parameters.
type Config struct {
	Particles   int
	Spread      float32
	MaxDistance float32
	Interval    time.Duration
	SpinX       float32 // rad/s
	SpinY       float32 // rad/s
	Seed        int64
}

// DefaultConfig returns the standard background settings.
func DefaultConfig() Config {
	return Config{
		Particles:   120,
		Spread:      12,
		MaxDistance: 2.5,
		Interval:    500 * time.Millisecond,
		SpinX:       0.03,
		SpinY:       0.06,
		Seed:        1,
	}
}

// System couples the rotating field with its periodically rebuilt graph.
type System struct {
	field       *Field
	graph       Graph
	cadence     *Cadence
	maxDistance float32

	version int
	log     *zap.Logger
}

// NewSystem creates a system from cfg.
func NewSystem(cfg Config) *System {
	f := NewField(cfg.Particles, cfg.Spread, cfg.Seed)
	f.Spin = math.V3(cfg.SpinX, cfg.SpinY, 0)
	return newSystem(f, cfg)
}

func newSystem(f *Field, cfg Config) *System {
	return &System{
		field:       f,
		cadence:     NewCadence(cfg.Interval),
		maxDistance: cfg.MaxDistance,
		log:         logger.Named("plexus"),
	}
}

// Tick rotates the field and, when the cadence fires or no graph has been
// built yet, rebuilds the graph from the freshly rotated positions.
// It reports whether the graph changed.
func (s *System) Tick(dt time.Duration) bool {
	s.field.Rotate(float32(dt.Seconds()))

	due := s.cadence.Advance(dt)
	if !due && s.version > 0 {
		return false
	}

	s.graph.Rebuild(s.field.Positions(), s.maxDistance)
	s.version++
	s.log.Debug("graph rebuilt",
		zap.Int("points", s.field.Len()),
		zap.Int("edges", s.graph.Len()),
		zap.Int("version", s.version))
	return true
}

// Field returns the point field.
func (s *System) Field() *Field {
	return s.field
}

// Graph returns the latest graph snapshot.
func (s *System) Graph() *Graph {
	return &s.graph
}

// Version increments on every rebuild; renderers compare it to decide
// whether to re-upload the segment buffer.
func (s *System) Version() int {
	return s.version
}

// MaxDistance returns the connection threshold.
func (s *System) MaxDistance() float32 {
	return s.maxDistance
}
