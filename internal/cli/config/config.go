package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const ConfigFileName = "surfacectl.json"

// Server represents a gateway configuration entry
type Server struct {
	URL   string `json:"url"`
	Alias string `json:"alias"`
}

// Config represents the surfacectl.json configuration file
type Config struct {
	Servers []Server `json:"servers"`
}

// LoadFromCurrentDir loads surfacectl.json from the working directory
func LoadFromCurrentDir() (*Config, error) {
	return LoadFromPath(ConfigFileName)
}

// LoadFromPath loads a configuration file from the given path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	return &cfg, nil
}

// Save writes the configuration to the working directory
func (c *Config) Save() error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filepath.Clean(ConfigFileName), data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", ConfigFileName, err)
	}

	return nil
}

// GetDefaultServer returns the first configured server
func (c *Config) GetDefaultServer() (*Server, error) {
	if len(c.Servers) == 0 {
		return nil, fmt.Errorf("no servers configured in %s", ConfigFileName)
	}
	return &c.Servers[0], nil
}

// GetServerByAlias returns the server with the given alias
func (c *Config) GetServerByAlias(alias string) (*Server, error) {
	for i := range c.Servers {
		if c.Servers[i].Alias == alias {
			return &c.Servers[i], nil
		}
	}
	return nil, fmt.Errorf("no server with alias %q in %s", alias, ConfigFileName)
}
