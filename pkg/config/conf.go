package config

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	configFileName = "config.yaml"
	dirMode        = 0700
	fileMode       = 0600

	defaultProviderTimeoutSec = 5
	defaultCacheTTLMinutes    = 15
	defaultDBFileName         = "assessments.db"
	defaultLogLevel           = "info"
)

// Config represents app config object.
type Config struct {
	// StressProviderURL is the endpoint serving economic stress indicators.
	// Empty means no provider is configured and scoring uses the neutral
	// default multiplier.
	StressProviderURL string `yaml:"stress_provider_url"`
	// ProviderTimeoutSec bounds each stress indicator fetch.
	ProviderTimeoutSec int `yaml:"provider_timeout_sec"`
	// CacheTTLMinutes controls how long fetched indicators are reused.
	CacheTTLMinutes int    `yaml:"cache_ttl_min"`
	DBFileName      string `yaml:"db_file"`
	LogLevel        string `yaml:"log_level"`
}

func getDefaultConfig() *Config {
	return &Config{
		ProviderTimeoutSec: defaultProviderTimeoutSec,
		CacheTTLMinutes:    defaultCacheTTLMinutes,
		DBFileName:         defaultDBFileName,
		LogLevel:           defaultLogLevel,
	}
}

func Save(dirPath string, c *Config) error {
	if dirPath == "" {
		return errors.New("config directory required")
	}
	if c == nil {
		return errors.New("config required")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "failed to marshal config")
	}
	path := filepath.Join(dirPath, configFileName)
	if err := os.WriteFile(path, b, fileMode); err != nil {
		return errors.Wrapf(err, "failed to write config file: %s", configFileName)
	}
	return nil
}

// ReadOrCreate reads app config from directory or creates a new one.
// Missing fields in an existing file fall back to defaults.
func ReadOrCreate(dirPath string) (*Config, error) {
	if dirPath == "" {
		return nil, errors.New("config directory required")
	}

	if _, err := os.Stat(dirPath); errors.Is(err, os.ErrNotExist) {
		if err := os.Mkdir(dirPath, dirMode); err != nil {
			return nil, errors.Wrapf(err, "failed to create dir: %s", dirPath)
		}
	}

	path := filepath.Join(dirPath, configFileName)

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := Save(dirPath, getDefaultConfig()); err != nil {
			return nil, errors.Wrap(err, "failed to create default config")
		}
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "error opening config file: %s", path)
	}
	defer f.Close()

	b, err := io.ReadAll(f)
	if err != nil {
		return nil, errors.Wrapf(err, "error reading config file: %s", path)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, errors.Wrapf(err, "error unmarshalling config file: %s", path)
	}
	c.applyDefaults()
	return &c, nil
}

func (c *Config) applyDefaults() {
	if c.ProviderTimeoutSec <= 0 {
		c.ProviderTimeoutSec = defaultProviderTimeoutSec
	}
	if c.CacheTTLMinutes <= 0 {
		c.CacheTTLMinutes = defaultCacheTTLMinutes
	}
	if c.DBFileName == "" {
		c.DBFileName = defaultDBFileName
	}
	if c.LogLevel == "" {
		c.LogLevel = defaultLogLevel
	}
}

// GetOrCreateHomeDir returns the app directory under the user's home.
// The create flag is set to true if the directory was created.
func GetOrCreateHomeDir(name string) (path string, created bool, err error) {
	if name == "" {
		return "", false, errors.New("name cannot be empty")
	}

	if !strings.HasPrefix(name, ".") {
		name = "." + name
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", false, errors.Wrap(err, "failed to get user home dir")
	}

	dir := filepath.Join(home, name)
	if _, err := os.Stat(dir); errors.Is(err, os.ErrNotExist) {
		slog.Debug("creating app dir", "path", dir)
		if err := os.Mkdir(dir, dirMode); err != nil {
			return "", false, errors.Wrapf(err, "failed to create dir: %s", dir)
		}
		created = true
	}
	return dir, created, nil
}
