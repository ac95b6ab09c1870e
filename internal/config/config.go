// Package config handles showroom configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"time"
)

// Config holds all application settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Plexus   PlexusConfig   `yaml:"plexus"`
	Bloom    BloomConfig    `yaml:"bloom"`
	Assets   AssetsConfig   `yaml:"assets"`
	Viewer   ViewerConfig   `yaml:"viewer"`
	Overlay  OverlayConfig  `yaml:"overlay"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width         int  `yaml:"width"`
	Height        int  `yaml:"height"`
	Fullscreen    bool `yaml:"fullscreen"`
	VSync         bool `yaml:"vsync"`
	FPSLimit      int  `yaml:"fps_limit"`
	ShadowMapSize int  `yaml:"shadow_map_size"`
	ShowFPS       bool `yaml:"show_fps"`
}

// PlexusConfig holds the particle field and proximity graph settings.
type PlexusConfig struct {
	Particles       int           `yaml:"particles"`
	Spread          float32       `yaml:"spread"`
	MaxDistance     float32       `yaml:"max_distance"`
	RebuildInterval time.Duration `yaml:"rebuild_interval"`
	SpinX           float32       `yaml:"spin_x"` // rad/s
	SpinY           float32       `yaml:"spin_y"` // rad/s
	Seed            int64         `yaml:"seed"`
	PointSize       float32       `yaml:"point_size"`
	PointColor      string        `yaml:"point_color"`
	PointOpacity    float32       `yaml:"point_opacity"`
	LineColor       string        `yaml:"line_color"`
	LineOpacity     float32       `yaml:"line_opacity"`
	FOV             float32       `yaml:"fov"` // degrees
	CameraZ         float32       `yaml:"camera_z"`
}

// BloomConfig holds the HDR bloom post-processing settings.
type BloomConfig struct {
	Enabled   bool    `yaml:"enabled"`
	Strength  float32 `yaml:"strength"`
	Radius    float32 `yaml:"radius"`
	Threshold float32 `yaml:"threshold"`
}

// AssetsConfig holds asset locations and load policy.
type AssetsConfig struct {
	Dev         bool          `yaml:"dev"`
	BasePath    string        `yaml:"base_path"`
	DevBasePath string        `yaml:"dev_base_path"`
	ModelPath   string        `yaml:"model_path"`
	HDRIPath    string        `yaml:"hdri_path"`
	LoadTimeout time.Duration `yaml:"load_timeout"`
	RetryDelay  time.Duration `yaml:"retry_delay"`
	CacheSizeMB int           `yaml:"cache_size_mb"`
}

// ViewerConfig holds car viewer settings.
type ViewerConfig struct {
	DoorDuration   time.Duration `yaml:"door_duration"`
	Exposure       float32       `yaml:"exposure"`
	ModelOffsetY   float32       `yaml:"model_offset_y"`
	ModelYaw       float32       `yaml:"model_yaw"` // radians
	GradientWidth  int           `yaml:"gradient_width"`
	GradientHeight int           `yaml:"gradient_height"`
	SkyStops       []string      `yaml:"sky_stops"`
}

// OverlayConfig holds the code-editor overlay settings.
type OverlayConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Snippet  string `yaml:"snippet"` // empty uses the embedded snippet
	Language string `yaml:"language"`
	Style    string `yaml:"style"`
	Width    int    `yaml:"width"`
	Height   int    `yaml:"height"`
	Watch    bool   `yaml:"watch"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:         1280,
			Height:        720,
			VSync:         true,
			ShadowMapSize: 2048,
		},
		Plexus: PlexusConfig{
			Particles:       120,
			Spread:          12,
			MaxDistance:     2.5,
			RebuildInterval: 500 * time.Millisecond,
			SpinX:           0.03,
			SpinY:           0.06,
			Seed:            1,
			PointSize:       0.05,
			PointColor:      "#00ffff",
			PointOpacity:    0.8,
			LineColor:       "#0088ff",
			LineOpacity:     0.2,
			FOV:             75,
			CameraZ:         5,
		},
		Bloom: BloomConfig{
			Enabled:   true,
			Strength:  1.2,
			Radius:    0.2,
			Threshold: 0.8,
		},
		Assets: AssetsConfig{
			BasePath:    "./",
			DevBasePath: "http://localhost:5173/",
			ModelPath:   "src/3d/Omoda.glb",
			HDRIPath:    "src/hdri/2.hdr",
			LoadTimeout: 5 * time.Second,
			RetryDelay:  500 * time.Millisecond,
			CacheSizeMB: 256,
		},
		Viewer: ViewerConfig{
			DoorDuration:   500 * time.Millisecond,
			Exposure:       0.8,
			ModelOffsetY:   -0.8,
			ModelYaw:       0.5235988, // pi/6
			GradientWidth:  2048,
			GradientHeight: 1024,
			SkyStops:       []string{"#87CEEB", "#B0E0E6", "#F5F5DC"},
		},
		Overlay: OverlayConfig{
			Enabled:  true,
			Language: "go",
			Style:    "monokai",
			Width:    700,
			Height:   550,
			Watch:    true,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate reports settings that would break the renderers or the loader.
func (c *Config) Validate() error {
	var errs []error
	if c.Graphics.Width <= 0 || c.Graphics.Height <= 0 {
		errs = append(errs, fmt.Errorf("graphics: invalid size %dx%d", c.Graphics.Width, c.Graphics.Height))
	}
	if c.Plexus.Particles <= 0 {
		errs = append(errs, fmt.Errorf("plexus: particles must be positive, got %d", c.Plexus.Particles))
	}
	if c.Plexus.MaxDistance <= 0 {
		errs = append(errs, fmt.Errorf("plexus: max_distance must be positive, got %g", c.Plexus.MaxDistance))
	}
	if c.Plexus.RebuildInterval <= 0 {
		errs = append(errs, errors.New("plexus: rebuild_interval must be positive"))
	}
	if c.Assets.LoadTimeout <= 0 {
		errs = append(errs, errors.New("assets: load_timeout must be positive"))
	}
	if len(c.Viewer.SkyStops) < 2 {
		errs = append(errs, errors.New("viewer: sky_stops needs at least two colors"))
	}
	return errors.Join(errs...)
}

// AssetBase returns the base path assets are resolved against.
func (a AssetsConfig) AssetBase() string {
	if a.Dev {
		return a.DevBasePath
	}
	return a.BasePath
}
