package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/randalmurphal/tokenkit/cost"
	"github.com/randalmurphal/tokenkit/tokens"
)

const (
	// EnvPrefix prefixes environment overrides, e.g. TOKENKIT_DEFAULT_MODEL
	// or TOKENKIT_CHUNKING_DEFAULT_MAX_TOKENS.
	EnvPrefix = "TOKENKIT"

	// FileName is the config file searched for when no path is given,
	// with a .yaml, .toml or .json extension.
	FileName = ".tokenkit"
)

// ErrInvalidConfig indicates the configuration failed validation.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds tokenkit settings. Fields carry mapstructure tags for viper.
type Config struct {
	// DefaultModel is used when no model is given. Must exist in the model table.
	DefaultModel string `json:"default_model" yaml:"default_model" mapstructure:"default_model" validate:"required"`

	// ModelsFile replaces the builtin model table when set (.yaml, .toml or .json).
	ModelsFile string `json:"models_file" yaml:"models_file" mapstructure:"models_file"`

	Tokenizer  TokenizerConfig  `json:"tokenizer" yaml:"tokenizer" mapstructure:"tokenizer"`
	Estimation EstimationConfig `json:"estimation" yaml:"estimation" mapstructure:"estimation"`
	Chunking   ChunkingConfig   `json:"chunking" yaml:"chunking" mapstructure:"chunking"`
	Costs      CostConfig       `json:"costs" yaml:"costs" mapstructure:"costs"`
	Logging    LoggingConfig    `json:"logging" yaml:"logging" mapstructure:"logging"`

	// Output is the CLI output format: "text" or "json".
	Output string `json:"output" yaml:"output" mapstructure:"output" validate:"oneof=text json"`
}

// TokenizerConfig selects the encoder backend.
type TokenizerConfig struct {
	// Backend is "embedded" (offline, default) or "tiktoken".
	Backend string `json:"backend" yaml:"backend" mapstructure:"backend" validate:"oneof=embedded tiktoken"`

	// CacheDir is exported as TIKTOKEN_CACHE_DIR for the tiktoken backend.
	CacheDir string `json:"cache_dir" yaml:"cache_dir" mapstructure:"cache_dir"`
}

// EstimationConfig holds the heuristic ratios.
type EstimationConfig struct {
	Text      float64 `json:"text" yaml:"text" mapstructure:"text" validate:"gt=0"`
	Code      float64 `json:"code" yaml:"code" mapstructure:"code" validate:"gt=0"`
	Technical float64 `json:"technical" yaml:"technical" mapstructure:"technical" validate:"gt=0"`
}

// Estimator converts the ratios to a tokens.Estimator.
func (e EstimationConfig) Estimator() tokens.Estimator {
	return tokens.Estimator{
		TextPerWord:      e.Text,
		CodePerChar:      e.Code,
		TechnicalPerWord: e.Technical,
	}
}

// ChunkingConfig holds chunking defaults.
type ChunkingConfig struct {
	DefaultMaxTokens int `json:"default_max_tokens" yaml:"default_max_tokens" mapstructure:"default_max_tokens" validate:"gt=0"`
	OverlapTokens    int `json:"overlap_tokens" yaml:"overlap_tokens" mapstructure:"overlap_tokens" validate:"gte=0,ltfield=DefaultMaxTokens"`
}

// CostConfig holds the cost warning thresholds.
type CostConfig struct {
	Warning  float64 `json:"warning" yaml:"warning" mapstructure:"warning" validate:"gte=0"`
	Critical float64 `json:"critical" yaml:"critical" mapstructure:"critical" validate:"gte=0"`
	MaxDaily float64 `json:"max_daily" yaml:"max_daily" mapstructure:"max_daily" validate:"gte=0"`
}

// Thresholds converts the settings to cost.Thresholds.
func (c CostConfig) Thresholds() cost.Thresholds {
	return cost.Thresholds{Warning: c.Warning, Critical: c.Critical, MaxDaily: c.MaxDaily}
}

// LoggingConfig configures the slog logger.
type LoggingConfig struct {
	Level  string `json:"level" yaml:"level" mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `json:"format" yaml:"format" mapstructure:"format" validate:"oneof=text json"`
}

// Default returns the default configuration.
func Default() Config {
	th := cost.DefaultThresholds()
	return Config{
		DefaultModel: "gpt-3.5-turbo",
		Tokenizer: TokenizerConfig{
			Backend: "embedded",
		},
		Estimation: EstimationConfig{
			Text:      tokens.DefaultTextPerWord,
			Code:      tokens.DefaultCodePerChar,
			Technical: tokens.DefaultTechnicalPerWord,
		},
		Chunking: ChunkingConfig{
			DefaultMaxTokens: 1000,
		},
		Costs: CostConfig{
			Warning:  th.Warning,
			Critical: th.Critical,
			MaxDaily: th.MaxDaily,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Output: "text",
	}
}

// New returns a viper instance primed with defaults and environment
// overrides. Callers may bind flags to it before calling Decode.
func New() *viper.Viper {
	v := viper.New()

	d := Default()
	v.SetDefault("default_model", d.DefaultModel)
	v.SetDefault("models_file", d.ModelsFile)
	v.SetDefault("tokenizer.backend", d.Tokenizer.Backend)
	v.SetDefault("tokenizer.cache_dir", d.Tokenizer.CacheDir)
	v.SetDefault("estimation.text", d.Estimation.Text)
	v.SetDefault("estimation.code", d.Estimation.Code)
	v.SetDefault("estimation.technical", d.Estimation.Technical)
	v.SetDefault("chunking.default_max_tokens", d.Chunking.DefaultMaxTokens)
	v.SetDefault("chunking.overlap_tokens", d.Chunking.OverlapTokens)
	v.SetDefault("costs.warning", d.Costs.Warning)
	v.SetDefault("costs.critical", d.Costs.Critical)
	v.SetDefault("costs.max_daily", d.Costs.MaxDaily)
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
	v.SetDefault("output", d.Output)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// ReadFile reads path into v. With an empty path it looks for FileName in
// the working directory and then the home directory; a missing file is not
// an error in that case.
func ReadFile(v *viper.Viper, path string) error {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config %s: %w", path, err)
		}
		return nil
	}

	v.SetConfigName(FileName)
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(home)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

// Decode unmarshals v into a Config and validates it.
func Decode(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load reads defaults, the config file at path (or the searched default
// file) and TOKENKIT_* environment variables, in increasing precedence.
func Load(path string) (Config, error) {
	v := New()
	if err := ReadFile(v, path); err != nil {
		return Config{}, err
	}
	return Decode(v)
}

// validate caches struct metadata between calls.
var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks field constraints.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s fails %q (got %v)", fe.Namespace(), fe.ActualTag(), fe.Value()))
	}
	return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(msgs, "; "))
}
