package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// configFileName is the app config file looked up in ConfigDir.
const configFileName = "config.yaml"

// UserPath returns the config file in the user's config directory.
func UserPath() string {
	return filepath.Join(ConfigDir(), configFileName)
}

// Save writes the config to UserPath.
func (c *Config) Save() error {
	return c.SaveTo(UserPath())
}

// SaveTo writes the config to path, creating parent directories. The file
// starts with a comment naming the keybindings file.
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	var node yaml.Node
	if err := node.Encode(c); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	node.HeadComment = "Midgard Input settings. Keybindings are stored in " + c.Input.BindingsFile

	data, err := yaml.Marshal(&node)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
