package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/goccy/go-yaml"
)

const (
	DefaultAPIURL          = "http://localhost:3001"
	DefaultTimeout         = 30 * time.Second
	DefaultNotificationTTL = 5000 * time.Millisecond

	EnvAPIURL   = "NOTES_API_URL"
	EnvStateDir = "NOTES_STATE_DIR"
)

type Config struct {
	APIURL          string        `yaml:"api_url"          json:"api_url"`
	StateDir        string        `yaml:"state_dir"        json:"state_dir"`
	Timeout         time.Duration `yaml:"timeout"          json:"timeout"`
	NotificationTTL time.Duration `yaml:"notification_ttl" json:"notification_ttl"`
}

// UnmarshalJSON accepts durations as strings ("10s") the same way the YAML
// form does. Bare numbers are nanoseconds.
func (c *Config) UnmarshalJSON(data []byte) error {
	type plain Config
	aux := struct {
		*plain
		Timeout         jsonDuration `json:"timeout"`
		NotificationTTL jsonDuration `json:"notification_ttl"`
	}{
		plain:           (*plain)(c),
		Timeout:         jsonDuration(c.Timeout),
		NotificationTTL: jsonDuration(c.NotificationTTL),
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	c.Timeout = time.Duration(aux.Timeout)
	c.NotificationTTL = time.Duration(aux.NotificationTTL)
	return nil
}

type jsonDuration time.Duration

func (d *jsonDuration) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch value := v.(type) {
	case string:
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", value, err)
		}
		*d = jsonDuration(parsed)
	case float64:
		*d = jsonDuration(int64(value))
	case nil:
	default:
		return fmt.Errorf("invalid duration %s", data)
	}
	return nil
}

// DefaultPath is $XDG_CONFIG_HOME/notes/config.yaml (or the platform
// equivalent).
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config directory: %w", err)
	}
	return filepath.Join(dir, "notes", "config.yaml"), nil
}

func Default() (Config, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return Config{}, fmt.Errorf("failed to get user config directory: %w", err)
	}
	return Config{
		APIURL:          DefaultAPIURL,
		StateDir:        filepath.Join(dir, "notes"),
		Timeout:         DefaultTimeout,
		NotificationTTL: DefaultNotificationTTL,
	}, nil
}

// Load builds the configuration from defaults, then the file at path, then
// the environment. A missing file is not an error when path is the default
// one; an explicitly named file must exist.
func Load(path string) (Config, error) {
	cfg, err := Default()
	if err != nil {
		return Config{}, err
	}

	explicit := path != ""
	if !explicit {
		if path, err = DefaultPath(); err != nil {
			return Config{}, err
		}
	}

	fileCfg, err := LoadFile(path)
	switch {
	case err == nil:
		cfg = merge(cfg, fileCfg)
	case os.IsNotExist(err) && !explicit:
	default:
		return Config{}, err
	}

	if v := os.Getenv(EnvAPIURL); v != "" {
		cfg.APIURL = v
	}
	if v := os.Getenv(EnvStateDir); v != "" {
		cfg.StateDir = v
	}

	return cfg, nil
}

// LoadFile reads a config file. It tries YAML first, then falls back to
// JSON parsing.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, err
		}
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		if jsonErr := json.Unmarshal(data, &cfg); jsonErr != nil {
			return Config{}, fmt.Errorf("failed to parse config file as YAML or JSON: YAML error: %v, JSON error: %v", err, jsonErr)
		}
	}

	return cfg, nil
}

func merge(base, override Config) Config {
	if override.APIURL != "" {
		base.APIURL = override.APIURL
	}
	if override.StateDir != "" {
		base.StateDir = override.StateDir
	}
	if override.Timeout > 0 {
		base.Timeout = override.Timeout
	}
	if override.NotificationTTL > 0 {
		base.NotificationTTL = override.NotificationTTL
	}
	return base
}
