// Package tokenizer counts exact tokens for the models in a registry.
//
// Tokenization itself is delegated to an Encoder per tokenizer family.
// Two backends are provided:
//
//   - Embedded: github.com/tiktoken-go/tokenizer, ranks compiled in (default)
//   - Tiktoken: github.com/pkoukk/tiktoken-go, ranks downloaded and cached
//
// Usage:
//
//	reg := registry.MustBuiltin()
//	a := tokenizer.New(reg)
//	n, err := a.CountTokens("Hello world", "gpt-4")
//
// Counting for a model that is not in the registry, or whose encoding failed
// to load, returns *UnsupportedModelError. There is no fallback estimate:
//
//	if errors.Is(err, tokenizer.ErrUnsupportedModel) { ... }
package tokenizer
