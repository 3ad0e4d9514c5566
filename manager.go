package tokenkit

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/randalmurphal/tokenkit/chunk"
	"github.com/randalmurphal/tokenkit/config"
	"github.com/randalmurphal/tokenkit/cost"
	"github.com/randalmurphal/tokenkit/registry"
	"github.com/randalmurphal/tokenkit/tokenizer"
	"github.com/randalmurphal/tokenkit/tokens"
	"github.com/randalmurphal/tokenkit/truncate"
)

// Manager is the entry point for token accounting. It is built once and is
// read-only afterwards.
type Manager struct {
	registry   *registry.Registry
	adapter    *tokenizer.Adapter
	accountant *tokens.Accountant
	chunker    *chunk.Chunker
	optimizer  *truncate.Optimizer
	thresholds cost.Thresholds
}

type options struct {
	registry   *registry.Registry
	factory    tokenizer.Factory
	backend    string
	logger     *slog.Logger
	estimator  *tokens.Estimator
	overlap    int
	thresholds cost.Thresholds
}

// Option configures a Manager.
type Option func(*options)

// WithRegistry replaces the builtin model table.
func WithRegistry(r *registry.Registry) Option {
	return func(o *options) {
		o.registry = r
	}
}

// WithFactory sets the encoder factory. It takes precedence over WithBackend.
func WithFactory(f tokenizer.Factory) Option {
	return func(o *options) {
		o.factory = f
	}
}

// WithBackend selects a named encoder backend ("embedded" or "tiktoken").
func WithBackend(name string) Option {
	return func(o *options) {
		o.backend = name
	}
}

// WithLogger sets the logger for initialization warnings.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithEstimator overrides the heuristic ratios used by EstimateTokens.
func WithEstimator(e tokens.Estimator) Option {
	return func(o *options) {
		o.estimator = &e
	}
}

// WithChunkOverlap carries up to n tokens of trailing sentences into each
// following chunk.
func WithChunkOverlap(n int) Option {
	return func(o *options) {
		o.overlap = n
	}
}

// WithThresholds sets the cost levels reported by CostLevel.
func WithThresholds(t cost.Thresholds) Option {
	return func(o *options) {
		o.thresholds = t
	}
}

// New builds a Manager. Without options it uses the builtin model table and
// the embedded encoder backend.
//
// Encodings that fail to initialize are logged and leave their models
// unsupported; New itself fails only on an invalid registry or backend.
func New(opts ...Option) (*Manager, error) {
	o := options{
		logger:     slog.Default(),
		thresholds: cost.DefaultThresholds(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	if o.registry == nil {
		reg, err := registry.Builtin()
		if err != nil {
			return nil, fmt.Errorf("load builtin models: %w", err)
		}
		o.registry = reg
	}

	if o.factory == nil {
		f, err := tokenizer.FactoryFor(o.backend)
		if err != nil {
			return nil, err
		}
		o.factory = f
	}

	adapter := tokenizer.New(o.registry,
		tokenizer.WithFactory(o.factory),
		tokenizer.WithLogger(o.logger))

	var acctOpts []tokens.AccountantOption
	if o.estimator != nil {
		acctOpts = append(acctOpts, tokens.WithEstimator(*o.estimator))
	}

	return &Manager{
		registry:   o.registry,
		adapter:    adapter,
		accountant: tokens.NewAccountant(o.registry, adapter, acctOpts...),
		chunker:    chunk.New(adapter, chunk.WithOverlap(o.overlap)),
		optimizer:  truncate.NewOptimizer(adapter),
		thresholds: o.thresholds,
	}, nil
}

// NewFromConfig builds a Manager from loaded settings. The configured default
// model must exist in the model table. opts are applied after the settings.
func NewFromConfig(cfg config.Config, logger *slog.Logger, opts ...Option) (*Manager, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var (
		reg *registry.Registry
		err error
	)
	if cfg.ModelsFile != "" {
		reg, err = registry.LoadFile(cfg.ModelsFile)
	} else {
		reg, err = registry.Builtin()
	}
	if err != nil {
		return nil, fmt.Errorf("load models: %w", err)
	}

	if !reg.Has(cfg.DefaultModel) {
		return nil, fmt.Errorf("%w: default_model %q not in model table", config.ErrInvalidConfig, cfg.DefaultModel)
	}
	if cfg.DefaultModel != reg.DefaultModel() {
		reg, err = registry.New(reg.Profiles(), registry.WithDefaultModel(cfg.DefaultModel))
		if err != nil {
			return nil, err
		}
	}

	if cfg.Tokenizer.CacheDir != "" {
		// Read by the tiktoken backend when it downloads encodings.
		if err := os.Setenv("TIKTOKEN_CACHE_DIR", cfg.Tokenizer.CacheDir); err != nil {
			return nil, fmt.Errorf("set tokenizer cache dir: %w", err)
		}
	}

	return New(append([]Option{
		WithRegistry(reg),
		WithBackend(cfg.Tokenizer.Backend),
		WithLogger(logger),
		WithEstimator(cfg.Estimation.Estimator()),
		WithChunkOverlap(cfg.Chunking.OverlapTokens),
		WithThresholds(cfg.Costs.Thresholds()),
	}, opts...)...)
}

// CountTokens returns the exact token count of text for model. An empty
// model means the default model.
func (m *Manager) CountTokens(text, model string) (int, error) {
	return m.accountant.CountTokens(text, model)
}

// EstimateTokens approximates the token count of text from its content type.
func (m *Manager) EstimateTokens(text string, ct tokens.ContentType) (int, error) {
	return m.accountant.EstimateTokens(text, ct)
}

// AnalyzeText returns token, word and character counts with the input cost.
func (m *Manager) AnalyzeText(text, model string) (tokens.TextAnalysis, error) {
	return m.accountant.AnalyzeText(text, model)
}

// CheckContextLimit reports whether text fits the context window of model.
func (m *Manager) CheckContextLimit(text, model string) (tokens.ContextCheck, error) {
	return m.accountant.CheckContextLimit(text, model)
}

// ChunkText splits text into sentence-aligned chunks of at most maxTokens.
func (m *Manager) ChunkText(text string, maxTokens int, model string) ([]string, error) {
	return m.chunker.Split(text, maxTokens, m.registry.Resolve(model))
}

// OptimizePrompt trims prompt to a whole-word prefix of at most maxTokens.
func (m *Manager) OptimizePrompt(prompt string, maxTokens int, model string) (string, error) {
	return m.optimizer.Optimize(prompt, maxTokens, m.registry.Resolve(model))
}

// OptimizeReport is OptimizePrompt with before and after counts.
func (m *Manager) OptimizeReport(prompt string, maxTokens int, model string) (truncate.Result, error) {
	return m.optimizer.Report(prompt, maxTokens, m.registry.Resolve(model))
}

// CalculateConversationTokens tallies tokens and cost over a conversation.
func (m *Manager) CalculateConversationTokens(turns []tokens.Turn, model string) (tokens.ConversationTally, error) {
	return m.accountant.CalculateConversationTokens(turns, model)
}

// GetModelInfo returns the profile of model as a map, or an empty map when
// the model is unknown.
func (m *Manager) GetModelInfo(model string) map[string]any {
	return m.registry.Info(model)
}

// ListModels returns the models the tokenizer can count, in table order.
func (m *Manager) ListModels() []string {
	return m.adapter.Models()
}

// Budget splits the context window of model into prompt parts.
func (m *Manager) Budget(model string) *tokens.Budget {
	return m.accountant.Budget(model)
}

// CostLevel classifies a cost against the configured thresholds.
func (m *Manager) CostLevel(c float64) cost.Level {
	return m.thresholds.Classify(c)
}

// Thresholds returns the configured cost thresholds.
func (m *Manager) Thresholds() cost.Thresholds {
	return m.thresholds
}

// Registry returns the model table.
func (m *Manager) Registry() *registry.Registry {
	return m.registry
}

// Tokenizer returns the underlying exact counter.
func (m *Manager) Tokenizer() *tokenizer.Adapter {
	return m.adapter
}
