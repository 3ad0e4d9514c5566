package registry

import (
	"fmt"
)

// Registry is an immutable set of model profiles.
// It is built once and shared by reference; nothing mutates it afterwards,
// so concurrent readers need no locking.
type Registry struct {
	profiles     map[string]ModelProfile
	order        []string
	defaultModel string
}

// Option configures a Registry at construction.
type Option func(*Registry)

// WithDefaultModel sets the model used when callers pass an empty model name.
// The name must be one of the registered profiles.
func WithDefaultModel(name string) Option {
	return func(r *Registry) {
		r.defaultModel = name
	}
}

// New builds a registry from profiles, keeping their order.
// Without WithDefaultModel the first profile is the default.
func New(profiles []ModelProfile, opts ...Option) (*Registry, error) {
	if len(profiles) == 0 {
		return nil, fmt.Errorf("%w: at least one model is required", ErrInvalidProfile)
	}

	r := &Registry{
		profiles: make(map[string]ModelProfile, len(profiles)),
		order:    make([]string, 0, len(profiles)),
	}
	for _, p := range profiles {
		if err := p.Validate(); err != nil {
			return nil, err
		}
		if _, exists := r.profiles[p.Name]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateModel, p.Name)
		}
		r.profiles[p.Name] = p
		r.order = append(r.order, p.Name)
	}

	for _, opt := range opts {
		opt(r)
	}
	if r.defaultModel == "" {
		r.defaultModel = r.order[0]
	}
	if _, ok := r.profiles[r.defaultModel]; !ok {
		return nil, fmt.Errorf("%w: default model %q is not registered", ErrInvalidProfile, r.defaultModel)
	}
	return r, nil
}

// Get returns the profile for name.
func (r *Registry) Get(name string) (ModelProfile, bool) {
	p, ok := r.profiles[name]
	return p, ok
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.profiles[name]
	return ok
}

// List returns model names in registration order.
func (r *Registry) List() []string {
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// Profiles returns all profiles in registration order.
func (r *Registry) Profiles() []ModelProfile {
	out := make([]ModelProfile, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.profiles[name])
	}
	return out
}

// Info returns the profile fields for name, or an empty map if name is unknown.
// Unlike token counting, an unknown model is not an error here.
func (r *Registry) Info(name string) map[string]any {
	p, ok := r.profiles[name]
	if !ok {
		return map[string]any{}
	}
	return p.Info()
}

// DefaultModel returns the name of the default model.
func (r *Registry) DefaultModel() string {
	return r.defaultModel
}

// Resolve maps an empty model name to the default model.
func (r *Registry) Resolve(name string) string {
	if name == "" {
		return r.defaultModel
	}
	return name
}

// Len returns the number of registered models.
func (r *Registry) Len() int {
	return len(r.order)
}
