// Package config handles configuration loading from YAML files, environment
// variables and command-line flags.
// Configuration precedence: CLI flags > environment variables > config file > defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"gopkg.in/yaml.v3"
)

// Config holds all exporter configuration. It is built once by the command
// and passed explicitly to the components that need it.
type Config struct {
	Exporter  ExporterConfig  `yaml:"exporter"`
	Transport TransportConfig `yaml:"transport"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// ExporterConfig holds metric naming and selection settings.
type ExporterConfig struct {
	Prefix         string `yaml:"prefix"`
	FilesystemType string `yaml:"filesystem_type"`
}

// TransportConfig holds response framing settings.
type TransportConfig struct {
	SuppressHTTPHeader bool `yaml:"suppress_http_header"`
}

// LoggingConfig holds logging settings. Syslog selects structured logging
// to the system log; otherwise logs go to stderr.
type LoggingConfig struct {
	Syslog bool   `yaml:"syslog"`
	Level  string `yaml:"level"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Exporter: ExporterConfig{
			Prefix:         "netbsd",
			FilesystemType: "ffs",
		},
		Transport: TransportConfig{
			SuppressHTTPHeader: false,
		},
		Logging: LoggingConfig{
			Syslog: true,
			Level:  "info",
		},
	}
}

// Load reads configuration from a YAML file and merges with defaults.
// If path is empty or the file does not exist, only defaults and environment
// variables are used.
func Load(path string) (*Config, error) {
	return LoadLayered(CLIOverrides{}, path)
}

// CLIOverrides holds values from command-line flags.
// Empty strings and false values are treated as "not set" and skipped.
type CLIOverrides struct {
	NoHTTPHeader bool
	NoSyslog     bool
	Prefix       string
	LogLevel     string
}

// Locate searches standard config file paths and returns the first one found.
// Returns empty string if no config file exists.
func Locate() string {
	for _, p := range configSearchPaths() {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// LoadLayered loads configuration with the full precedence chain:
// CLI flags > env vars > YAML file > defaults.
//
// An optional configPath argument controls file discovery:
//   - omitted: auto-discover via Locate()
//   - explicit value: use that path ("" means no file)
//
// An explicitly named file that does not exist is not an error.
func LoadLayered(cli CLIOverrides, configPath ...string) (*Config, error) {
	cfg := DefaultConfig()

	var filePath string
	if len(configPath) > 0 {
		filePath = configPath[0]
	} else {
		filePath = Locate()
	}
	if filePath != "" {
		data, err := os.ReadFile(filePath)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing config file %s: %w", filePath, err)
			}
		case !os.IsNotExist(err):
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	applyEnvOverrides(cfg)

	if cli.NoHTTPHeader {
		cfg.Transport.SuppressHTTPHeader = true
	}
	if cli.NoSyslog {
		cfg.Logging.Syslog = false
	}
	if cli.Prefix != "" {
		cfg.Exporter.Prefix = cli.Prefix
	}
	if cli.LogLevel != "" {
		cfg.Logging.Level = cli.LogLevel
	}

	return cfg, nil
}

// WriteConfig serializes the config to a YAML file at the given path.
// Creates parent directories if needed.
func WriteConfig(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// applyEnvOverrides applies environment variable overrides to the configuration.
func applyEnvOverrides(cfg *Config) {
	if prefix := os.Getenv("VITALIS_EXPORTER_PREFIX"); prefix != "" {
		cfg.Exporter.Prefix = prefix
	}
	if fsType := os.Getenv("VITALIS_EXPORTER_FSTYPE"); fsType != "" {
		cfg.Exporter.FilesystemType = fsType
	}
	if level := os.Getenv("VITALIS_EXPORTER_LOG_LEVEL"); level != "" {
		cfg.Logging.Level = level
	}
}

var prefixPattern = regexp.MustCompile(`^[a-zA-Z_:][a-zA-Z0-9_:]*$`)

// Validate checks that the configuration produces well-formed metric names.
func (c *Config) Validate() error {
	if !prefixPattern.MatchString(c.Exporter.Prefix) {
		return fmt.Errorf("invalid metric prefix %q", c.Exporter.Prefix)
	}
	if c.Exporter.FilesystemType == "" {
		return fmt.Errorf("filesystem type is required")
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.Logging.Level)
	}
	return nil
}
