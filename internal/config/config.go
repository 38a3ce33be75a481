package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	PickerNative   = "native"
	PickerTerminal = "terminal"
)

type Config struct {
	Schema      int    `json:"schema" yaml:"schema"`
	DataDir     string `json:"data_dir" yaml:"data_dir"`
	Picker      string `json:"picker,omitempty" yaml:"picker,omitempty"`
	StartDir    string `json:"start_dir,omitempty" yaml:"start_dir,omitempty"`
	DialogTitle string `json:"dialog_title,omitempty" yaml:"dialog_title,omitempty"`
	Timezone    string `json:"timezone,omitempty" yaml:"timezone,omitempty"`
	LogLevel    string `json:"log_level,omitempty" yaml:"log_level,omitempty"`
	LogFormat   string `json:"log_format,omitempty" yaml:"log_format,omitempty"`
}

const CurrentConfigSchema = 1

const DefaultDialogTitle = "Select ROCETS Model Directory"

func DefaultConfig() *Config {
	return &Config{
		Schema:      CurrentConfigSchema,
		DataDir:     defaultDataDir(),
		Picker:      PickerNative,
		DialogTitle: DefaultDialogTitle,
		LogLevel:    "info",
		LogFormat:   "json",
	}
}

// Load reads the first config file found in the lookup order. An explicit path
// that does not exist is an error; missing default locations fall back to
// DefaultConfig.
func Load(configPath string) (*Config, error) {
	if configPath != "" {
		if _, err := os.Stat(configPath); err != nil {
			return nil, fmt.Errorf("config file %s: %w", configPath, err)
		}
	}

	for _, path := range getConfigPaths(configPath) {
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, err
		}

		cfg, err := parse(path, data)
		if err != nil {
			return nil, fmt.Errorf("invalid config %s: %w", path, err)
		}

		cfg.applyDefaults()
		cfg.expandPaths()
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("invalid config %s: %w", path, err)
		}
		return cfg, nil
	}

	return DefaultConfig(), nil
}

func parse(path string, data []byte) (*Config, error) {
	if strings.TrimSpace(string(data)) == "" {
		return nil, fmt.Errorf("file is empty")
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, err
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, err
		}
	}
	return &cfg, nil
}

func getConfigPaths(explicit string) []string {
	var paths []string

	if explicit != "" {
		paths = append(paths, explicit)
	}

	dir := configDir()
	paths = append(paths,
		filepath.Join(dir, "rocout", "config.json"),
		filepath.Join(dir, "rocout", "config.yaml"),
	)

	return paths
}

func configDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return xdg
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config")
}

func defaultDataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "rocout")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "rocout")
}

func (c *Config) applyDefaults() {
	def := DefaultConfig()
	if c.Schema == 0 {
		c.Schema = def.Schema
	}
	if c.DataDir == "" {
		c.DataDir = def.DataDir
	}
	if c.Picker == "" {
		c.Picker = def.Picker
	}
	if c.DialogTitle == "" {
		c.DialogTitle = def.DialogTitle
	}
	if c.LogLevel == "" {
		c.LogLevel = def.LogLevel
	}
	if c.LogFormat == "" {
		c.LogFormat = def.LogFormat
	}
}

func (c *Config) expandPaths() {
	c.DataDir = expandHome(c.DataDir)
	c.StartDir = expandHome(c.StartDir)
}

func expandHome(path string) string {
	if len(path) > 0 && path[0] == '~' {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[1:])
	}
	return path
}

func (c *Config) Validate() error {
	switch c.Picker {
	case PickerNative, PickerTerminal:
	default:
		return fmt.Errorf("unknown picker %q (want %q or %q)", c.Picker, PickerNative, PickerTerminal)
	}

	switch c.LogFormat {
	case "json", "console":
	default:
		return fmt.Errorf("unknown log_format %q (want json or console)", c.LogFormat)
	}

	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location is the time zone project timestamps are displayed in.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

func (c *Config) RegistryPath() string {
	return filepath.Join(c.DataDir, "projects.db")
}

func (c *Config) LogsDir() string {
	return filepath.Join(c.DataDir, "logs")
}

func (c *Config) LogPath() string {
	return filepath.Join(c.LogsDir(), "rocout.log")
}
