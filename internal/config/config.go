// Package config handles application configuration loading and management.
package config

// Config holds all application settings.
type Config struct {
	Window  WindowConfig  `yaml:"window"`
	Input   InputConfig   `yaml:"input"`
	Logging LoggingConfig `yaml:"logging"`
}

// WindowConfig holds display settings for the demo window.
type WindowConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	VSync      bool   `yaml:"vsync"`
}

// InputConfig holds input layer settings.
type InputConfig struct {
	BindingsFile string `yaml:"bindings_file"` // Key/value file holding the keybindings
	MaxGamepads  int    `yaml:"max_gamepads"`  // Number of gamepad slots polled by the "any device" queries
	TextPriority int    `yaml:"text_priority"` // Router priority of the text input handler
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// DefaultBindingsFile is the keybindings file name used when none is configured.
const DefaultBindingsFile = "keybindings.cfg"

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:      "Midgard Input",
			Width:      960,
			Height:     540,
			Fullscreen: false,
			VSync:      true,
		},
		Input: InputConfig{
			BindingsFile: DefaultBindingsFile,
			MaxGamepads:  4,
			TextPriority: 100,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
