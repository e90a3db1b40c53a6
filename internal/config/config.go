// Package config loads animtool settings from YAML and command-line flags.
package config

// Config holds all animtool settings.
type Config struct {
	Asset    AssetConfig    `yaml:"asset"`
	Playback PlaybackConfig `yaml:"playback"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// AssetConfig points at the glTF file to read.
type AssetConfig struct {
	Path string `yaml:"path"` // .gltf or .glb
}

// PlaybackConfig drives the headless player.
type PlaybackConfig struct {
	Clip     string  `yaml:"clip"`     // Empty selects the first clip
	Looping  bool    `yaml:"looping"`  // Overrides every clip's looping flag
	Speed    float32 `yaml:"speed"`    // Time scale applied to each step
	FPS      int     `yaml:"fps"`      // Sampling rate for the sample command
	Duration float32 `yaml:"duration"` // Seconds to sample; 0 means one clip length
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Playback: PlaybackConfig{
			Looping: true,
			Speed:   1,
			FPS:     30,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// StepSeconds is the time between two samples at the configured rate.
func (p PlaybackConfig) StepSeconds() float32 {
	if p.FPS <= 0 {
		return 0
	}
	return 1 / float32(p.FPS)
}
