package tokenizer

import (
	"fmt"
	"log/slog"

	"github.com/randalmurphal/tokenkit/registry"
)

// Adapter resolves model names to exact token counters.
//
// Encoders are built eagerly at construction, one per distinct encoding in the
// registry, and shared by every model using that encoding. The adapter is
// read-only afterwards and safe for concurrent use as long as the encoders are.
type Adapter struct {
	registry *registry.Registry
	encoders map[string]Encoder // keyed by model name
	failed   map[string]error   // keyed by encoding
	factory  Factory
	logger   *slog.Logger
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithFactory sets the encoder factory. Default is Embedded.
func WithFactory(f Factory) Option {
	return func(a *Adapter) {
		if f != nil {
			a.factory = f
		}
	}
}

// WithLogger sets the logger used for initialization warnings.
func WithLogger(l *slog.Logger) Option {
	return func(a *Adapter) {
		if l != nil {
			a.logger = l
		}
	}
}

// New builds an adapter for every model in reg.
//
// An encoding whose factory fails does not abort construction: a warning is
// logged once for that encoding and the models using it stay unsupported.
func New(reg *registry.Registry, opts ...Option) *Adapter {
	a := &Adapter{
		registry: reg,
		encoders: make(map[string]Encoder, reg.Len()),
		failed:   make(map[string]error),
		factory:  Embedded,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}

	byEncoding := make(map[string]Encoder)
	for _, p := range reg.Profiles() {
		encoding := p.EncodingName()
		if _, bad := a.failed[encoding]; bad {
			continue
		}

		enc, ok := byEncoding[encoding]
		if !ok {
			var err error
			enc, err = a.factory(encoding)
			if err != nil {
				a.failed[encoding] = err
				a.logger.Warn("tokenizer initialization failed",
					slog.String("encoding", encoding),
					slog.String("model", p.Name),
					slog.String("error", err.Error()))
				continue
			}
			byEncoding[encoding] = enc
		}
		a.encoders[p.Name] = enc
	}

	return a
}

// CountTokens returns the exact token count of text for model.
// An empty model name means the registry default. Empty text counts as 0.
// Models without an initialized encoder fail with *UnsupportedModelError.
func (a *Adapter) CountTokens(text, model string) (int, error) {
	model = a.registry.Resolve(model)
	enc, ok := a.encoders[model]
	if !ok {
		return 0, &UnsupportedModelError{Model: model}
	}
	if text == "" {
		return 0, nil
	}

	ids, err := enc.Encode(text)
	if err != nil {
		return 0, fmt.Errorf("encode for %s: %w", model, err)
	}
	return len(ids), nil
}

// Supports reports whether model has an initialized encoder.
func (a *Adapter) Supports(model string) bool {
	_, ok := a.encoders[a.registry.Resolve(model)]
	return ok
}

// Models returns the models with an initialized encoder, in registry order.
func (a *Adapter) Models() []string {
	var names []string
	for _, name := range a.registry.List() {
		if _, ok := a.encoders[name]; ok {
			names = append(names, name)
		}
	}
	return names
}

// FailedEncodings returns the initialization error for each encoding that
// could not be loaded.
func (a *Adapter) FailedEncodings() map[string]error {
	out := make(map[string]error, len(a.failed))
	for k, v := range a.failed {
		out[k] = v
	}
	return out
}
