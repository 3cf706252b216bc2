package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

const (
	BackendFile   = "file"
	BackendLibSQL = "libsql"
	BackendMemory = "memory"

	ProviderStatic = "static"
	ProviderIPInfo = "ipinfo"
)

type Config struct {
	Storage     StorageConfig     `toml:"storage"`
	Map         MapConfig         `toml:"map"`
	Geolocation GeolocationConfig `toml:"geolocation"`
	Log         LogConfig         `toml:"log"`
}

type StorageConfig struct {
	Backend       string `toml:"backend"`         // file, libsql or memory (in-process only, lost on exit).
	Dir           string `toml:"dir"`             // Used by the file backend.
	DatabaseURL   string `toml:"database_url"`    // Used by the libsql backend.
	MemoryQuotaMB int    `toml:"memory_quota_mb"` // Used by the memory backend.
}

type MapConfig struct {
	Zoom int `toml:"zoom"`
}

type GeolocationConfig struct {
	Provider    string        `toml:"provider"` // static or ipinfo.
	Latitude    float64       `toml:"latitude"`
	Longitude   float64       `toml:"longitude"`
	Timeout     time.Duration `toml:"timeout"`
	IPInfoToken string        `toml:"ipinfo_token"`
}

type LogConfig struct {
	Level  string `toml:"level"`
	File   string `toml:"file"`
	Stdout bool   `toml:"stdout"`
	JSON   bool   `toml:"json"`
}

// Returns the directory holding the config file and the default store.
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "mapty"), nil
}

// Returns the path to the config file.
func GetConfigPath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	dir, err := GetConfigDir()
	if err != nil {
		dir = ".mapty"
	}

	return &Config{
		Storage: StorageConfig{
			Backend:       BackendFile,
			Dir:           dir,
			MemoryQuotaMB: 5,
		},
		Map: MapConfig{Zoom: 13},
		Geolocation: GeolocationConfig{
			Provider:  ProviderStatic,
			Latitude:  38.7223,
			Longitude: -9.1393,
			Timeout:   10 * time.Second,
		},
		Log: LogConfig{Level: "warn"},
	}
}

// Reads the configuration from the config file
func LoadConfig() (*Config, error) {
	path, err := GetConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadConfigFrom(path)
}

// LoadConfigFrom decodes path over the defaults, then applies .env and
// environment overrides. A missing file is not an error.
func LoadConfigFrom(path string) (*Config, error) {
	cfg := Default()

	if _, err := toml.DecodeFile(path, cfg); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	// The .env file is optional.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if url := os.Getenv("TURSO_DATABASE_URL"); url != "" {
		cfg.Storage.DatabaseURL = url
	}
	if token := os.Getenv("IPINFO_TOKEN"); token != "" {
		cfg.Geolocation.IPInfoToken = token
	}
	if level := os.Getenv("MAPTY_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if os.Getenv("DEV_MODE") == "true" {
		cfg.Storage.Backend = BackendFile
		cfg.Storage.Dir = ".mapty"
	}
}

func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case BackendFile:
		if c.Storage.Dir == "" {
			return fmt.Errorf("storage.dir must be set for the %s backend", BackendFile)
		}
	case BackendLibSQL:
		if c.Storage.DatabaseURL == "" {
			return fmt.Errorf("TURSO_DATABASE_URL not set in the environment")
		}
	case BackendMemory:
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}

	switch strings.ToLower(c.Geolocation.Provider) {
	case ProviderStatic, ProviderIPInfo:
	default:
		return fmt.Errorf("unknown geolocation provider %q", c.Geolocation.Provider)
	}

	if c.Map.Zoom < 0 || c.Map.Zoom > 19 {
		return fmt.Errorf("map zoom %d out of range", c.Map.Zoom)
	}
	return nil
}

// Persistent reports whether the backend keeps data after the process exits.
func (c StorageConfig) Persistent() bool {
	return c.Backend != BackendMemory
}

// Write encodes cfg to path, creating the parent directory.
func Write(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}
