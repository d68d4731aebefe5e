package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/k1LoW/duration"
)

const (
	DefaultAPIURL        = "http://127.0.0.1:7433"
	DefaultDBFileName    = "filebin.db"
	DefaultBlobDirName   = "blobs"
	DefaultRetention     = "15min"
	DefaultSweepInterval = "1hour"

	configFileName  = "filebin.toml"
	configDirEnvKey = "FILEBIN_CONFIG_DIR"
)

// Config defines runtime configuration for filebin.
type Config struct {
	APIURL        string `toml:"api_url"`
	DBPath        string `toml:"db_path"`
	BlobRoot      string `toml:"blob_root"`
	Retention     string `toml:"retention"`
	SweepInterval string `toml:"sweep_interval"`
	APITokenHash  string `toml:"api_token_hash"`
	LogLevel      string `toml:"log_level"`
}

// Default returns default configuration values.
func Default() Config {
	return Config{
		APIURL:        DefaultAPIURL,
		DBPath:        "",
		BlobRoot:      "",
		Retention:     DefaultRetention,
		SweepInterval: DefaultSweepInterval,
	}
}

// RetentionWindow parses the configured trash retention window.
func (c *Config) RetentionWindow() (time.Duration, error) {
	d, err := duration.Parse(c.Retention)
	if err != nil {
		return 0, fmt.Errorf("invalid retention %q: %w", c.Retention, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("retention must be positive, got %q", c.Retention)
	}
	return d, nil
}

// SweepEvery parses the configured sweep interval.
func (c *Config) SweepEvery() (time.Duration, error) {
	d, err := duration.Parse(c.SweepInterval)
	if err != nil {
		return 0, fmt.Errorf("invalid sweep_interval %q: %w", c.SweepInterval, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("sweep_interval must be positive, got %q", c.SweepInterval)
	}
	return d, nil
}

func loadFile(path string, cfg *Config) error {
	_, err := loadFileIfExists(path, cfg)
	return err
}

func loadFileIfExists(path string, cfg *Config) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	if info.IsDir() {
		return false, nil
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return false, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return true, nil
}

func overrideConfigPath() (string, bool) {
	dir := strings.TrimSpace(os.Getenv(configDirEnvKey))
	if dir == "" {
		return "", false
	}
	return filepath.Join(dir, configFileName), true
}

var allowedKeys = []string{
	"api_url",
	"db_path",
	"blob_root",
	"retention",
	"sweep_interval",
	"api_token_hash",
	"log_level",
}

// AllowedKeys returns the set of valid config keys.
func AllowedKeys() []string {
	return allowedKeys
}

// IsAllowedKey checks if a key is a valid config key.
func IsAllowedKey(key string) bool {
	for _, k := range allowedKeys {
		if k == key {
			return true
		}
	}
	return false
}

// Get returns the value of a config key.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "api_url":
		return c.APIURL, nil
	case "db_path":
		return c.DBPath, nil
	case "blob_root":
		return c.BlobRoot, nil
	case "retention":
		return c.Retention, nil
	case "sweep_interval":
		return c.SweepInterval, nil
	case "api_token_hash":
		return c.APITokenHash, nil
	case "log_level":
		return c.LogLevel, nil
	default:
		return "", fmt.Errorf("unknown key: %s", key)
	}
}

// Path returns the path to the config file.
func Path() (string, error) {
	if path, ok := overrideConfigPath(); ok {
		return path, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "filebin", configFileName), nil
}

// DataDir returns the default directory for the database and blob store.
func DataDir() (string, error) {
	if dir := strings.TrimSpace(os.Getenv(configDirEnvKey)); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share", "filebin"), nil
}

// SetKey reads the TOML file at path, sets key=value, and writes it back.
func SetKey(path, key, value string) error {
	if !IsAllowedKey(key) {
		return fmt.Errorf("unknown key: %s", key)
	}

	parsedValue, err := parseSetValue(key, value)
	if err != nil {
		return err
	}

	data := make(map[string]any)
	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, &data); err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
	}
	data[key] = parsedValue

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(data)
}

func parseSetValue(key, value string) (string, error) {
	value = strings.TrimSpace(value)
	switch key {
	case "retention", "sweep_interval":
		d, err := duration.Parse(value)
		if err != nil || d <= 0 {
			return "", fmt.Errorf("%s must be a positive duration", key)
		}
		return value, nil
	default:
		return value, nil
	}
}

// Load reads config from the config file and applies env overrides.
func Load() (*Config, error) {
	cfg := Default()

	if overridePath, ok := overrideConfigPath(); ok {
		if err := loadFile(overridePath, &cfg); err != nil {
			return nil, err
		}
	} else if path, err := Path(); err == nil {
		if err := loadFile(path, &cfg); err != nil {
			return nil, err
		}
	}

	dataDir, err := DataDir()
	if err == nil {
		if cfg.DBPath == "" {
			cfg.DBPath = filepath.Join(dataDir, DefaultDBFileName)
		}
		if cfg.BlobRoot == "" {
			cfg.BlobRoot = filepath.Join(dataDir, DefaultBlobDirName)
		}
	}

	if apiURL := os.Getenv("FILEBIN_API_URL"); apiURL != "" {
		cfg.APIURL = apiURL
	}
	if dbPath := os.Getenv("FILEBIN_DB"); dbPath != "" {
		cfg.DBPath = dbPath
	}
	if blobRoot := os.Getenv("FILEBIN_BLOB_ROOT"); blobRoot != "" {
		cfg.BlobRoot = blobRoot
	}
	if retention := strings.TrimSpace(os.Getenv("FILEBIN_RETENTION")); retention != "" {
		cfg.Retention = retention
	}
	if interval := strings.TrimSpace(os.Getenv("FILEBIN_SWEEP_INTERVAL")); interval != "" {
		cfg.SweepInterval = interval
	}

	if _, err := cfg.RetentionWindow(); err != nil {
		return nil, err
	}
	if _, err := cfg.SweepEvery(); err != nil {
		return nil, err
	}

	return &cfg, nil
}
