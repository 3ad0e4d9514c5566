package registry

import (
	"errors"
	"fmt"
)

// DefaultEncoding is the tokenizer family used when a profile does not name one.
const DefaultEncoding = "cl100k_base"

// Sentinel errors for registry construction.
var (
	// ErrInvalidProfile indicates a profile violates the registry invariants.
	ErrInvalidProfile = errors.New("invalid model profile")

	// ErrDuplicateModel indicates two profiles share a name.
	ErrDuplicateModel = errors.New("duplicate model")

	// ErrUnknownFormat indicates a model table in an unsupported format.
	ErrUnknownFormat = errors.New("unknown model table format")
)

// ModelProfile holds pricing and context-window metadata for one model.
type ModelProfile struct {
	// Name is the unique model identifier, e.g. "gpt-4".
	Name string `json:"name" yaml:"name" toml:"name"`

	// ContextWindow is the maximum number of tokens the model accepts.
	ContextWindow int `json:"context_window" yaml:"context_window" toml:"context_window"`

	// InputCostPer1K is the price per 1000 input tokens.
	InputCostPer1K float64 `json:"input_cost_per_1k" yaml:"input_cost_per_1k" toml:"input_cost_per_1k"`

	// OutputCostPer1K is the price per 1000 output tokens.
	OutputCostPer1K float64 `json:"output_cost_per_1k" yaml:"output_cost_per_1k" toml:"output_cost_per_1k"`

	// Encoding names the tokenizer family. Empty means DefaultEncoding.
	Encoding string `json:"encoding,omitempty" yaml:"encoding,omitempty" toml:"encoding,omitempty"`

	// Description is free-form and informational only.
	Description string `json:"description,omitempty" yaml:"description,omitempty" toml:"description,omitempty"`
}

// Validate checks the profile invariants.
func (p ModelProfile) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidProfile)
	}
	if p.ContextWindow <= 0 {
		return fmt.Errorf("%w: %s: context_window must be > 0, got %d", ErrInvalidProfile, p.Name, p.ContextWindow)
	}
	if p.InputCostPer1K < 0 {
		return fmt.Errorf("%w: %s: input_cost_per_1k must be >= 0, got %f", ErrInvalidProfile, p.Name, p.InputCostPer1K)
	}
	if p.OutputCostPer1K < 0 {
		return fmt.Errorf("%w: %s: output_cost_per_1k must be >= 0, got %f", ErrInvalidProfile, p.Name, p.OutputCostPer1K)
	}
	return nil
}

// EncodingName returns the profile's tokenizer family, defaulting to DefaultEncoding.
func (p ModelProfile) EncodingName() string {
	if p.Encoding == "" {
		return DefaultEncoding
	}
	return p.Encoding
}

// Info returns the profile as a field map keyed by the external field names.
func (p ModelProfile) Info() map[string]any {
	info := map[string]any{
		"context_window":     p.ContextWindow,
		"input_cost_per_1k":  p.InputCostPer1K,
		"output_cost_per_1k": p.OutputCostPer1K,
		"encoding":           p.EncodingName(),
	}
	if p.Description != "" {
		info["description"] = p.Description
	}
	return info
}
