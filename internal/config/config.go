// Package config provides persistent defaults for the prayer dashboard.
//
// Configuration is stored as JSON at $XDG_CONFIG_HOME/prayer-dashboard/config.json.
// Values can be overridden per key through PRAYER_DASHBOARD_<KEY> variables,
// taken from the process environment or a .env file. The merge priority is:
// CLI flags > environment > config file > defaults.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"

	"github.com/smokyabdulrahman/prayer-dashboard/internal/geo"
	"github.com/smokyabdulrahman/prayer-dashboard/internal/logging"
	"github.com/smokyabdulrahman/prayer-dashboard/internal/prayer"
)

const (
	configDirName  = "prayer-dashboard"
	configFileName = "config.json"

	// EnvPrefix prefixes the upper-cased key in environment overrides.
	EnvPrefix = "PRAYER_DASHBOARD_"
)

// ValidKeys lists all config keys that can be set via `config set`.
var ValidKeys = []string{
	"city", "country",
	"latitude", "longitude",
	"method", "school",
	"time_format",
	"log_level",
}

// Config holds all user-configurable settings.
// Zero values mean "not set" (use defaults or auto-detect).
type Config struct {
	City       string  `json:"city,omitempty"`
	Country    string  `json:"country,omitempty"`
	Latitude   float64 `json:"latitude,omitempty"`
	Longitude  float64 `json:"longitude,omitempty"`
	Method     *int    `json:"method,omitempty"`      // pointer so we can distinguish "not set" from 0
	School     string  `json:"school,omitempty"`      // "standard" or "hanafi"
	TimeFormat string  `json:"time_format,omitempty"` // "12h" or "24h"
	LogLevel   string  `json:"log_level,omitempty"`
}

// Defaults returns a Config with all default values applied.
func Defaults() Config {
	method := prayer.DefaultMethod
	return Config{
		Method:     &method,
		School:     prayer.SchoolStandard.String(),
		TimeFormat: "24h",
		LogLevel:   logging.DefaultLevel.String(),
	}
}

// Dir returns the config directory path under the XDG config home.
func Dir() string {
	return filepath.Join(xdg.ConfigHome, configDirName)
}

// Path returns the full path to the config file.
func Path() string {
	return filepath.Join(Dir(), configFileName)
}

// Load reads the config file from disk.
// If the file does not exist, it returns an empty Config (not an error).
// If the file exists but is invalid JSON, it returns an error.
func Load() (*Config, error) {
	return LoadFrom(Path())
}

// LoadFrom reads the config from a specific file path.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg := Config{}
			return &cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}

	return &cfg, nil
}

// Save writes the config to disk, creating the directory if needed.
func (c *Config) Save() error {
	return c.SaveTo(Path())
}

// SaveTo writes the config to a specific file path.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("cannot create config directory %s: %w", dir, err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Reset deletes the config file.
func Reset() error {
	return ResetAt(Path())
}

// ResetAt deletes the config file at a specific path.
func ResetAt(path string) error {
	err := os.Remove(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete config file: %w", err)
	}
	return nil
}

// Set sets a config key to the given value.
// It validates the key name and parses the value into the correct type.
func (c *Config) Set(key, value string) error {
	switch key {
	case "city":
		c.City = value
	case "country":
		c.Country = value
	case "latitude":
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid latitude %q: must be a number", value)
		}
		if v < -90 || v > 90 {
			return fmt.Errorf("invalid latitude %q: must be between -90 and 90", value)
		}
		c.Latitude = v
	case "longitude":
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid longitude %q: must be a number", value)
		}
		if v < -180 || v > 180 {
			return fmt.Errorf("invalid longitude %q: must be between -180 and 180", value)
		}
		c.Longitude = v
	case "method":
		v, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid method %q: must be an integer", value)
		}
		if _, ok := prayer.MethodName(v); !ok {
			return fmt.Errorf("invalid method %q: run `prayer-dashboard methods` for the list", value)
		}
		c.Method = &v
	case "school":
		s, err := prayer.ParseSchool(value)
		if err != nil {
			return err
		}
		c.School = s.String()
	case "time_format":
		if value != "12h" && value != "24h" {
			return fmt.Errorf("invalid time_format %q: must be \"12h\" or \"24h\"", value)
		}
		c.TimeFormat = value
	case "log_level":
		l, err := logging.ParseLevel(value)
		if err != nil {
			return err
		}
		c.LogLevel = l.String()
	default:
		return fmt.Errorf("unknown config key %q; valid keys: %s", key, strings.Join(ValidKeys, ", "))
	}

	return nil
}

// Get returns the string value of a config key.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "city":
		return c.City, nil
	case "country":
		return c.Country, nil
	case "latitude":
		if c.Latitude == 0 {
			return "", nil
		}
		return strconv.FormatFloat(c.Latitude, 'f', -1, 64), nil
	case "longitude":
		if c.Longitude == 0 {
			return "", nil
		}
		return strconv.FormatFloat(c.Longitude, 'f', -1, 64), nil
	case "method":
		if c.Method == nil {
			return "", nil
		}
		return strconv.Itoa(*c.Method), nil
	case "school":
		return c.School, nil
	case "time_format":
		return c.TimeFormat, nil
	case "log_level":
		return c.LogLevel, nil
	default:
		return "", fmt.Errorf("unknown config key %q", key)
	}
}

// EnvKey returns the environment variable that overrides key.
func EnvKey(key string) string {
	return EnvPrefix + strings.ToUpper(key)
}

// Environ collects the override variables from the .env file at dotenv
// (skipped when absent) and the process environment, which wins.
func Environ(dotenv string) (map[string]string, error) {
	env := map[string]string{}
	if dotenv != "" {
		vars, err := godotenv.Read(dotenv)
		switch {
		case err == nil:
			for k, v := range vars {
				if strings.HasPrefix(k, EnvPrefix) {
					env[k] = v
				}
			}
		case !errors.Is(err, os.ErrNotExist):
			return nil, fmt.Errorf("failed to read %s: %w", dotenv, err)
		}
	}

	for _, key := range ValidKeys {
		if v, ok := os.LookupEnv(EnvKey(key)); ok {
			env[EnvKey(key)] = v
		}
	}
	return env, nil
}

// ApplyEnv overlays non-empty override variables onto c.
func (c *Config) ApplyEnv(env map[string]string) error {
	for _, key := range ValidKeys {
		v := strings.TrimSpace(env[EnvKey(key)])
		if v == "" {
			continue
		}
		if err := c.Set(key, v); err != nil {
			return fmt.Errorf("%s: %w", EnvKey(key), err)
		}
	}
	return nil
}

// MethodOrDefault returns the method value, falling back to the given default.
func (c *Config) MethodOrDefault(def int) int {
	if c.Method != nil {
		return *c.Method
	}
	return def
}

// Settings returns the calculation settings, with defaults for anything
// unset or unreadable.
func (c *Config) Settings() prayer.Settings {
	s := prayer.DefaultSettings()
	s.CalculationMethod = c.MethodOrDefault(s.CalculationMethod)
	if c.School != "" {
		if school, err := prayer.ParseSchool(c.School); err == nil {
			s.School = school
		}
	}
	return s
}

// Location returns the configured position. ok is false when no
// coordinates are set.
func (c *Config) Location() (loc geo.Location, ok bool) {
	if c.Latitude == 0 && c.Longitude == 0 {
		return geo.Location{}, false
	}
	return geo.Location{
		Latitude:  c.Latitude,
		Longitude: c.Longitude,
		City:      c.City,
		Country:   c.Country,
	}, true
}

// TimeLayout returns the Go time layout for the configured format.
func (c *Config) TimeLayout() string {
	if c.TimeFormat == "12h" {
		return "3:04 PM"
	}
	return "15:04"
}
