package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/prabalesh/proctop/internal/collector"
	"gopkg.in/yaml.v3"
)

type Config struct {
	// Sources
	ProcDir   string `yaml:"proc_dir"`
	OSRelease string `yaml:"os_release"`
	Passwd    string `yaml:"passwd"`

	// Display
	RefreshInterval time.Duration `yaml:"refresh_interval"`
	MaxProcesses    int           `yaml:"max_processes"`

	// Logging
	LogLevel string `yaml:"log_level"`
	LogFile  string `yaml:"log_file"`

	// Exporter
	ListenAddr string `yaml:"listen_addr"`
}

func Default() *Config {
	paths := collector.DefaultPaths()
	return &Config{
		ProcDir:         paths.ProcDir,
		OSRelease:       paths.OSRelease,
		Passwd:          paths.Passwd,
		RefreshInterval: time.Second,
		MaxProcesses:    0,
		LogLevel:        "info",
		ListenAddr:      ":9100",
	}
}

// Load builds a Config from defaults, then the YAML file at path (if path is
// non-empty), then PROCTOP_* environment variables.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.ProcDir = getEnv("PROCTOP_PROC_DIR", cfg.ProcDir)
	cfg.OSRelease = getEnv("PROCTOP_OS_RELEASE", cfg.OSRelease)
	cfg.Passwd = getEnv("PROCTOP_PASSWD", cfg.Passwd)
	cfg.LogLevel = getEnv("PROCTOP_LOG_LEVEL", cfg.LogLevel)
	cfg.LogFile = getEnv("PROCTOP_LOG_FILE", cfg.LogFile)
	cfg.ListenAddr = getEnv("PROCTOP_LISTEN_ADDR", cfg.ListenAddr)

	if v := os.Getenv("PROCTOP_REFRESH_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("PROCTOP_REFRESH_INTERVAL: %w", err)
		}
		cfg.RefreshInterval = d
	}
	if v := os.Getenv("PROCTOP_MAX_PROCESSES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("PROCTOP_MAX_PROCESSES: %w", err)
		}
		cfg.MaxProcesses = n
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.RefreshInterval <= 0 {
		return errors.New("refresh_interval must be > 0")
	}
	if c.MaxProcesses < 0 {
		return errors.New("max_processes must be >= 0")
	}
	if c.ProcDir == "" {
		return errors.New("proc_dir must not be empty")
	}
	return nil
}

func (c *Config) Paths() collector.Paths {
	return collector.Paths{
		ProcDir:   c.ProcDir,
		OSRelease: c.OSRelease,
		Passwd:    c.Passwd,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
