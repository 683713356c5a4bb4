// ABOUTME: Payback configuration management with backend selection.
// ABOUTME: Holds the body profile and the storage backend factory.

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/harperreed/payback/internal/charm"
	"github.com/harperreed/payback/internal/models"
	"github.com/harperreed/payback/internal/storage"
)

// Config stores payback tool configuration.
type Config struct {
	// Backend selects the storage backend: "sqlite" (default) or "charm".
	Backend string `json:"backend,omitempty"`

	// DataDir is the root directory for the SQLite backend. payback.db
	// lives here. Supports ~ expansion for home directory. Defaults to
	// ~/.local/share/payback.
	DataDir string `json:"data_dir,omitempty"`

	// Profile is the body profile driving kcal/minute conversions.
	// Absent fields fall back to the defaults.
	Profile *models.Profile `json:"profile,omitempty"`
}

// GetBackend returns the configured backend, defaulting to "sqlite".
func (c *Config) GetBackend() string {
	if c.Backend == "" {
		return "sqlite"
	}
	return c.Backend
}

// GetDataDir returns the configured data directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return storage.DataDir()
	}
	return ExpandPath(c.DataDir)
}

// GetProfile returns the configured body profile, filling unset fields
// from the defaults.
func (c *Config) GetProfile() models.Profile {
	def := models.DefaultProfile()
	if c.Profile == nil {
		return def
	}
	p := *c.Profile
	if p.WeightKg <= 0 {
		p.WeightKg = def.WeightKg
	}
	if p.HeightCm <= 0 {
		p.HeightCm = def.HeightCm
	}
	if p.AgeYears <= 0 {
		p.AgeYears = def.AgeYears
	}
	if p.Sex == "" {
		p.Sex = def.Sex
	}
	if p.ReferenceExercise == "" {
		p.ReferenceExercise = def.ReferenceExercise
	}
	if p.DefaultExercise == "" {
		p.DefaultExercise = def.DefaultExercise
	}
	return p
}

// SetProfile stores the profile to be saved with the config.
func (c *Config) SetProfile(p models.Profile) {
	c.Profile = &p
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// OpenStorage creates a Repository implementation based on the configured backend.
func (c *Config) OpenStorage() (storage.Repository, error) {
	switch backend := c.GetBackend(); backend {
	case "sqlite":
		dbPath := filepath.Join(c.GetDataDir(), "payback.db")
		return storage.Open(dbPath)
	case "charm":
		return charm.GetClient()
	default:
		return nil, fmt.Errorf("unknown backend: %q", backend)
	}
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "payback", "config.json")
}

// Load reads config from disk.
func Load() (*Config, error) {
	path := GetConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	path := GetConfigPath()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
