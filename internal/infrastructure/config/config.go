// Package config provides centralized configuration management.
//
// Configuration can be loaded from:
//  1. YAML file (ledgersync.yaml)
//  2. Environment variables (fallback)
//
// Example usage:
//
//	cfg := config.LoadOrEnv()
//	dir := cfg.Workspace.Dir
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the entire application configuration.
type Config struct {
	Workspace     WorkspaceConfig     `yaml:"workspace"`
	Output        OutputConfig        `yaml:"output"`
	Storage       StorageConfig       `yaml:"storage"`
	Server        ServerConfig        `yaml:"server"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// WorkspaceConfig describes where the input files live and how they are
// recognized by filename.
type WorkspaceConfig struct {
	Dir          string `yaml:"dir"`
	LedgerPrefix string `yaml:"ledger_prefix"`
	ExportPrefix string `yaml:"export_prefix"`
	RulesFile    string `yaml:"rules_file"`
}

// OutputConfig holds the pipeline's output file names, resolved relative to
// the workspace dir.
type OutputConfig struct {
	SnapshotFile string `yaml:"snapshot_file"`
	RunLogFile   string `yaml:"run_log_file"`
}

// StorageConfig holds the run-history database path. An empty path disables
// run-history recording.
type StorageConfig struct {
	DatabasePath string `yaml:"database_path"`
}

// ServerConfig holds the snapshot API server settings.
type ServerConfig struct {
	Port           int      `yaml:"port"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// ObservabilityConfig holds observability settings.
type ObservabilityConfig struct {
	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Load reads and parses the config file. Values absent from the file keep
// their environment/default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := LoadFromEnv()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadFromEnv builds configuration from environment variables with defaults.
func LoadFromEnv() *Config {
	return &Config{
		Workspace: WorkspaceConfig{
			Dir:          getEnv("LEDGERSYNC_DIR", "."),
			LedgerPrefix: getEnv("LEDGERSYNC_LEDGER_PREFIX", "家庭账本"),
			ExportPrefix: getEnv("LEDGERSYNC_EXPORT_PREFIX", "wechat_bill"),
			RulesFile:    getEnv("LEDGERSYNC_RULES", "rules.json"),
		},
		Output: OutputConfig{
			SnapshotFile: getEnv("LEDGERSYNC_SNAPSHOT", "ledger_data.json"),
			RunLogFile:   getEnv("LEDGERSYNC_RUN_LOG", "chatlog.md"),
		},
		Storage: StorageConfig{
			DatabasePath: getEnv("LEDGERSYNC_DB_PATH", "ledgersync.db"),
		},
		Server: ServerConfig{
			Port:           getEnvInt("LEDGERSYNC_PORT", 8080),
			AllowedOrigins: []string{"http://localhost:3000", "http://localhost:5173"},
		},
		Observability: ObservabilityConfig{
			Logging: LoggingConfig{
				Level:  getEnv("LOG_LEVEL", "info"),
				Format: getEnv("LOG_FORMAT", "text"),
			},
		},
	}
}

// LoadOrEnv tries to load from ledgersync.yaml, falls back to environment
// variables.
func LoadOrEnv() *Config {
	return LoadOrEnvWithPath("ledgersync.yaml")
}

// LoadOrEnvWithPath tries to load from the specified path, falls back to
// environment variables.
func LoadOrEnvWithPath(path string) *Config {
	if cfg, err := Load(path); err == nil {
		return cfg
	}
	return LoadFromEnv()
}

// getEnv retrieves an environment variable with a fallback default.
func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

// getEnvInt retrieves an integer environment variable with a fallback default.
func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		var result int
		if _, err := fmt.Sscanf(val, "%d", &result); err == nil {
			return result
		}
	}
	return fallback
}
