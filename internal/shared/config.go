package shared

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Store  StoreConfig  `toml:"store"`
	Export ExportConfig `toml:"export"`
	Editor EditorConfig `toml:"editor"`
	Server ServerConfig `toml:"server"`
	Log    LogConfig    `toml:"log"`
}

// StoreConfig selects the key-value backend that holds the configuration document.
type StoreConfig struct {
	Backend string       `toml:"backend"` // sqlite, redis or memory
	Key     string       `toml:"key"`
	SQLite  SQLiteConfig `toml:"sqlite"`
	Redis   RedisConfig  `toml:"redis"`
}

// SQLiteConfig contains database connection settings.
type SQLiteConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// RedisConfig contains Redis connection settings.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Username string `toml:"username"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// ExportConfig controls where exported config.json files are written.
type ExportConfig struct {
	Directory string `toml:"directory"`
}

// EditorConfig controls record reconciliation behaviour per record kind.
type EditorConfig struct {
	PlaylistUpdate string `toml:"playlist_update"` // overwrite or fallback
	ScheduleUpdate string `toml:"schedule_update"` // overwrite or fallback
	UniqueNames    bool   `toml:"unique_names"`
}

// ServerConfig contains local HTTP server settings.
type ServerConfig struct {
	Host      string  `toml:"host"`
	Port      int     `toml:"port"`
	RateLimit float64 `toml:"rate_limit"`
	Burst     int     `toml:"burst"`
}

// LogConfig sets the logger level (debug, info, warn, error).
type LogConfig struct {
	Level string `toml:"level"`
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
//
// Values missing from the file keep the embedded defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read config file: %w", ErrMissingConfig, err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("%w: failed to parse config: %v", ErrInvalidConfig, err)
	}

	return config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ResolveConfig loads the file at path when it exists, falling back to [DefaultConfig].
func ResolveConfig(path string) (*Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}
	if _, err := os.Stat(path); err != nil {
		return DefaultConfig(), nil
	}
	return LoadConfig(path)
}
