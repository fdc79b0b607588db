package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"filewords/internal/labeler"
	"filewords/internal/report"
	"filewords/internal/tagmatrix"
)

// ReducerConfig configures the dimensionality reduction.
type ReducerConfig struct {
	Components int `yaml:"components"`
}

// SelectorConfig selects and configures the label selection policy.
type SelectorConfig struct {
	Policy    string  `yaml:"policy"`
	Threshold float64 `yaml:"threshold"`
	OnMissing string  `yaml:"on_missing"`
}

// VocabularyConfig controls column ordering of the tag vocabulary.
type VocabularyConfig struct {
	Order string `yaml:"order"`
}

// CorpusConfig configures how image/caption pairs are discovered.
type CorpusConfig struct {
	CaptionExt string `yaml:"caption_ext"`
	Separator  string `yaml:"separator"`
}

// OutputConfig configures the optional copy step.
type OutputConfig struct {
	Dir       string `yaml:"dir"`
	Separator string `yaml:"separator"`
	NameFrom  string `yaml:"name_from"`
}

// ReportConfig configures terminal output.
type ReportConfig struct {
	Style   string `yaml:"style"`
	TopTags int    `yaml:"top_tags"`
}

// LogConfig configures structured logging.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Reducer    ReducerConfig    `yaml:"reducer"`
	Selector   SelectorConfig   `yaml:"selector"`
	Vocabulary VocabularyConfig `yaml:"vocabulary"`
	Corpus     CorpusConfig     `yaml:"corpus"`
	Output     OutputConfig     `yaml:"output"`
	Report     ReportConfig     `yaml:"report"`
	Log        LogConfig        `yaml:"log"`
}

const (
	NameFromLabels = "labels"
	NameFromTags   = "tags"
)

// Load reads a config from a specified path. If the file does not exist, returns defaults.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return defaultConfig(), nil
		}
		return nil, err
	}
	cfg := defaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	applyConfigDefaults(cfg)
	return cfg, nil
}

// LoadDefault tries ./filewords.yaml first, then ~/.config/filewords/config.yaml.
// If neither exists, it writes defaults to ~/.config/filewords/config.yaml and returns them.
func LoadDefault() (*AppConfig, string, error) {
	cwdPath := "filewords.yaml"
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

// ApplyEnv overrides logging and output settings from FILEWORDS_* variables.
func (c *AppConfig) ApplyEnv() {
	c.Log.Level = getEnv("FILEWORDS_LOG_LEVEL", c.Log.Level)
	c.Log.Format = getEnv("FILEWORDS_LOG_FORMAT", c.Log.Format)
	c.Output.Dir = getEnv("FILEWORDS_OUTPUT_DIR", c.Output.Dir)
	c.Reducer.Components = getEnvInt("FILEWORDS_COMPONENTS", c.Reducer.Components)
	c.Selector.Threshold = getEnvFloat("FILEWORDS_THRESHOLD", c.Selector.Threshold)
}

// Validate checks value ranges and enumerations.
func (c *AppConfig) Validate() error {
	if c.Reducer.Components < 1 {
		return fmt.Errorf("reducer.components must be at least 1, got %d", c.Reducer.Components)
	}
	if _, err := labeler.ParsePolicy(c.Selector.Policy); err != nil {
		return fmt.Errorf("selector.policy: %w", err)
	}
	if _, err := labeler.ParseOnMissing(c.Selector.OnMissing); err != nil {
		return fmt.Errorf("selector.on_missing: %w", err)
	}
	if _, err := tagmatrix.ParseOrder(c.Vocabulary.Order); err != nil {
		return fmt.Errorf("vocabulary.order: %w", err)
	}
	switch c.Report.Style {
	case report.StylePlain, report.StylePretty:
	default:
		return fmt.Errorf("report.style: unknown style %q", c.Report.Style)
	}
	switch c.Output.NameFrom {
	case NameFromLabels, NameFromTags:
	default:
		return fmt.Errorf("output.name_from: unknown source %q", c.Output.NameFrom)
	}
	return nil
}

func defaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "filewords", "config.yaml"), nil
}

func defaultConfig() *AppConfig {
	return &AppConfig{
		Reducer:    ReducerConfig{Components: 5},
		Selector:   SelectorConfig{Policy: string(labeler.PolicyThreshold), Threshold: 0.5, OnMissing: string(labeler.SkipMissing)},
		Vocabulary: VocabularyConfig{Order: string(tagmatrix.OrderFirstSeen)},
		Corpus:     CorpusConfig{CaptionExt: ".txt", Separator: ","},
		Output:     OutputConfig{Separator: "-", NameFrom: NameFromLabels},
		Report:     ReportConfig{Style: report.StylePlain, TopTags: report.DefaultTopTags},
		Log:        LogConfig{Level: "info", Format: "text"},
	}
}

func applyConfigDefaults(cfg *AppConfig) {
	def := defaultConfig()
	if cfg.Reducer.Components == 0 {
		cfg.Reducer.Components = def.Reducer.Components
	}
	if cfg.Selector.Policy == "" {
		cfg.Selector.Policy = def.Selector.Policy
	}
	if cfg.Selector.OnMissing == "" {
		cfg.Selector.OnMissing = def.Selector.OnMissing
	}
	if cfg.Vocabulary.Order == "" {
		cfg.Vocabulary.Order = def.Vocabulary.Order
	}
	if cfg.Corpus.CaptionExt == "" {
		cfg.Corpus.CaptionExt = def.Corpus.CaptionExt
	}
	if cfg.Corpus.Separator == "" {
		cfg.Corpus.Separator = def.Corpus.Separator
	}
	if cfg.Output.Separator == "" {
		cfg.Output.Separator = def.Output.Separator
	}
	if cfg.Output.NameFrom == "" {
		cfg.Output.NameFrom = def.Output.NameFrom
	}
	if cfg.Report.Style == "" {
		cfg.Report.Style = def.Report.Style
	}
	if cfg.Report.TopTags == 0 {
		cfg.Report.TopTags = def.Report.TopTags
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = def.Log.Level
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = def.Log.Format
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}
