package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagDev        = flag.Bool("dev", false, "Resolve assets against the development server")
	flagWindowed   = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth      = flag.Int("width", 0, "Window width")
	flagHeight     = flag.Int("height", 0, "Window height")
	flagParticles  = flag.Int("particles", 0, "Plexus particle count")
	flagNoBloom    = flag.Bool("no-bloom", false, "Disable bloom post-processing")
	flagModel      = flag.String("model", "", "Car model path (relative to the asset base)")
	flagHDRI       = flag.String("hdri", "", "Environment panorama path (relative to the asset base)")
	flagSnippet    = flag.String("snippet", "", "Source file shown in the code-editor overlay")
	flagSave       = flag.Bool("save-config", false, "Write the effective config to the user config file and exit")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// SaveRequested reports whether --save-config was given.
func SaveRequested() bool {
	return *flagSave
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
		cfg.Graphics.ShowFPS = true
	}
	if *flagDev {
		cfg.Assets.Dev = true
	}
	if *flagWindowed {
		cfg.Graphics.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Graphics.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Graphics.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Graphics.Height = *flagHeight
	}
	if *flagParticles > 0 {
		cfg.Plexus.Particles = *flagParticles
	}
	if *flagNoBloom {
		cfg.Bloom.Enabled = false
	}
	if *flagModel != "" {
		cfg.Assets.ModelPath = *flagModel
	}
	if *flagHDRI != "" {
		cfg.Assets.HDRIPath = *flagHDRI
	}
	if *flagSnippet != "" {
		cfg.Overlay.Snippet = *flagSnippet
	}
}
