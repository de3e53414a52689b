package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// TrainingConfig locates the reference documents and controls loading.
type TrainingConfig struct {
	Dir        string   `yaml:"dir"`
	Workers    int      `yaml:"workers"`
	Extensions []string `yaml:"extensions"`
}

// QueryConfig locates the documents to match and how many matches to keep.
type QueryConfig struct {
	Dir  string `yaml:"dir"`
	TopN int    `yaml:"top_n"`
}

// TokenizerConfig tunes term extraction.
type TokenizerConfig struct {
	Stem           bool     `yaml:"stem"`
	ExtraStopwords []string `yaml:"extra_stopwords,omitempty"`
}

// LoggingConfig controls structured logging level and output format.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// MetricsConfig controls the Prometheus metrics endpoint.
type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
	Port    int  `yaml:"port"`
}

// SQLiteConfig points at the results database.
type SQLiteConfig struct {
	Path string `yaml:"path"`
}

// StoreConfig selects where match runs are recorded.
type StoreConfig struct {
	Type   string        `yaml:"type"`
	SQLite *SQLiteConfig `yaml:"sqlite,omitempty"`
}

// SummarizerConfig configures document previews in the browser.
type SummarizerConfig struct {
	MaxSentences int `yaml:"max_sentences"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Training   TrainingConfig   `yaml:"training"`
	Query      QueryConfig      `yaml:"query"`
	Tokenizer  TokenizerConfig  `yaml:"tokenizer"`
	Logging    LoggingConfig    `yaml:"logging"`
	Metrics    MetricsConfig    `yaml:"metrics"`
	Store      StoreConfig      `yaml:"store"`
	Summarizer SummarizerConfig `yaml:"summarizer"`
}

// Load reads a config from a specified path. If the file does not exist, returns defaults.
// Environment overrides are applied in both cases.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg := defaultConfig()
			applyEnvOverrides(cfg)
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}
	cfg := defaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	applyConfigDefaults(cfg)
	applyEnvOverrides(cfg)
	return cfg, nil
}

// LoadDefault tries ./docmatch.yaml first, then ~/.config/docmatch/config.yaml.
// If neither exists, it writes defaults to ~/.config/docmatch/config.yaml and returns them.
func LoadDefault() (*AppConfig, string, error) {
	cwdPath := "docmatch.yaml"
	if _, err := os.Stat(cwdPath); err == nil {
		cfg, err := Load(cwdPath)
		return cfg, cwdPath, err
	}
	userPath, err := defaultUserConfigPath()
	if err != nil {
		return nil, "", err
	}
	if _, err := os.Stat(userPath); err == nil {
		cfg, err := Load(userPath)
		return cfg, userPath, err
	}
	cfg := defaultConfig()
	if err := Save(userPath, cfg); err != nil {
		return nil, "", err
	}
	applyEnvOverrides(cfg)
	return cfg, userPath, nil
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Validate checks values that would otherwise fail deep inside a run.
func (c *AppConfig) Validate() error {
	if c.Query.TopN < 1 {
		return fmt.Errorf("%w: query.top_n must be >= 1, got %d", ErrInvalid, c.Query.TopN)
	}
	if c.Training.Workers < 1 {
		return fmt.Errorf("%w: training.workers must be >= 1, got %d", ErrInvalid, c.Training.Workers)
	}
	switch c.Store.Type {
	case "", "none":
	case "sqlite":
		if c.Store.SQLite == nil || c.Store.SQLite.Path == "" {
			return fmt.Errorf("%w: store.sqlite.path is required", ErrInvalid)
		}
	default:
		return fmt.Errorf("%w: unknown store type %q", ErrInvalid, c.Store.Type)
	}
	if c.Metrics.Enabled && (c.Metrics.Port <= 0 || c.Metrics.Port > 65535) {
		return fmt.Errorf("%w: metrics.port out of range: %d", ErrInvalid, c.Metrics.Port)
	}
	return nil
}

func defaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "docmatch", "config.yaml"), nil
}

func defaultConfig() *AppConfig {
	return &AppConfig{
		Training:   TrainingConfig{Dir: "train", Workers: 4, Extensions: []string{".pdf", ".txt"}},
		Query:      QueryConfig{Dir: "test", TopN: 5},
		Logging:    LoggingConfig{Level: "info", Format: "text"},
		Metrics:    MetricsConfig{Enabled: false, Port: 9090},
		Store:      StoreConfig{Type: "none"},
		Summarizer: SummarizerConfig{MaxSentences: 3},
	}
}

func applyConfigDefaults(cfg *AppConfig) {
	if cfg.Query.TopN == 0 {
		cfg.Query.TopN = 5
	}
	if cfg.Training.Workers == 0 {
		cfg.Training.Workers = 4
	}
	if len(cfg.Training.Extensions) == 0 {
		cfg.Training.Extensions = []string{".pdf", ".txt"}
	}
	if cfg.Summarizer.MaxSentences == 0 {
		cfg.Summarizer.MaxSentences = 3
	}
	if cfg.Store.Type == "sqlite" && cfg.Store.SQLite == nil {
		cfg.Store.SQLite = &SQLiteConfig{Path: "docmatch.db"}
	}
}

// applyEnvOverrides reads DOCMATCH_* environment variables.
func applyEnvOverrides(cfg *AppConfig) {
	if v := os.Getenv("DOCMATCH_TRAIN_DIR"); v != "" {
		cfg.Training.Dir = v
	}
	if v := os.Getenv("DOCMATCH_TEST_DIR"); v != "" {
		cfg.Query.Dir = v
	}
	if v := os.Getenv("DOCMATCH_TOP_N"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Query.TopN = n
		}
	}
	if v := os.Getenv("DOCMATCH_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Training.Workers = n
		}
	}
	if v := os.Getenv("DOCMATCH_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
	if v := os.Getenv("DOCMATCH_LOG_FORMAT"); v != "" {
		cfg.Logging.Format = strings.ToLower(v)
	}
	if v := os.Getenv("DOCMATCH_SQLITE_PATH"); v != "" {
		cfg.Store.Type = "sqlite"
		cfg.Store.SQLite = &SQLiteConfig{Path: v}
	}
}
