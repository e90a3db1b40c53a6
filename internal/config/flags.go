package config

import "flag"

var (
	flagConfig = flag.String("config", "", "Path to config file")
	flagDebug  = flag.Bool("debug", false, "Enable debug logging")
	flagAsset  = flag.String("asset", "", "Path to a .gltf or .glb file")
	flagClip   = flag.String("clip", "", "Clip to play")
	flagFPS    = flag.Int("fps", 0, "Sampling rate")
	flagNoLoop = flag.Bool("no-loop", false, "Clamp playback at the clip end")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// Args returns the positional arguments left after flag parsing.
func Args() []string {
	return flag.Args()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagAsset != "" {
		cfg.Asset.Path = *flagAsset
	}
	if *flagClip != "" {
		cfg.Playback.Clip = *flagClip
	}
	if *flagFPS > 0 {
		cfg.Playback.FPS = *flagFPS
	}
	if *flagNoLoop {
		cfg.Playback.Looping = false
	}
}
