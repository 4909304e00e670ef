// Package config provides configuration loading and structs for the concierge server.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application.
type Config struct {
	Debug     bool            `yaml:"debug"`
	Server    ServerConfig    `yaml:"server"`
	Storage   StorageConfig   `yaml:"storage"`
	Embedding EmbeddingConfig `yaml:"embedding"`
	Intent    IntentConfig    `yaml:"intent"`
	Reply     ReplyConfig     `yaml:"reply"`
	Solana    SolanaConfig    `yaml:"solana"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host              string `yaml:"host"`
	Port              int    `yaml:"port"`
	ChatRatePerMinute int    `yaml:"chat_rate_per_minute"`
}

// StorageConfig holds the path for the interaction log database.
type StorageConfig struct {
	DatabasePath string `yaml:"database_path"`
}

// EmbeddingConfig holds ONNX embedder settings.
type EmbeddingConfig struct {
	ModelPath  string `yaml:"model_path"`
	Dimensions int    `yaml:"dimensions"`
	MaxTokens  int    `yaml:"max_tokens"`
	CacheSize  int    `yaml:"cache_size"`
}

// IntentConfig holds intent resolution settings. Prototypes overrides the
// text embedded for individual labels on the semantic path.
type IntentConfig struct {
	Threshold  float64           `yaml:"threshold"`
	Prototypes map[string]string `yaml:"prototypes"`
}

// ReplyConfig holds the account identity used in greetings.
type ReplyConfig struct {
	AccountName string  `yaml:"account_name"`
	Balance     float64 `yaml:"balance"`
}

// SolanaConfig holds the transaction verification RPC settings.
type SolanaConfig struct {
	RPCURL         string `yaml:"rpc_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// Load reads and parses the config file at path, expands paths, and applies defaults.
// Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	ApplyDefaults(&cfg)

	configDir := filepath.Dir(path)
	cfg.Storage.DatabasePath = expandPath(cfg.Storage.DatabasePath, configDir)
	cfg.Embedding.ModelPath = expandPath(cfg.Embedding.ModelPath, configDir)

	return &cfg, nil
}

// expandPath converts a path to absolute. Paths starting with "./" are relative to configDir;
// other relative paths are relative to the home directory.
func expandPath(path string, configDir string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "./") || path == "." {
		return filepath.Join(configDir, path)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, path)
	}
	return path
}
