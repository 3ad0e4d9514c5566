// Package tokenkit counts, estimates, prices, chunks and trims text by LLM
// tokens.
//
// The root package wires the subpackages into a single Manager. Each
// subpackage can also be used on its own:
//
//   - registry: immutable table of model profiles (context window, costs, encoding)
//   - tokenizer: exact token counts per model over a BPE encoder backend
//   - tokens: analysis, context checks, conversation tallies and budgets
//   - cost: cost computation, thresholds and session tracking
//   - chunk: sentence-based splitting under a token budget
//   - truncate: greedy word-prefix prompt trimming
//   - config: viper-backed settings and the slog logger
//   - schema: JSON Schemas of the result types
//   - watch: re-run a callback when a file changes
//
// # Quick Start
//
//	mgr, err := tokenkit.New()
//	if err != nil {
//	    return err
//	}
//	n, err := mgr.CountTokens("Hello, World!", "gpt-4")
//
// Analysis and context checks:
//
//	a, _ := mgr.AnalyzeText(prompt, "gpt-3.5-turbo")
//	fmt.Println(a.TokenCount, a.EstimatedCost)
//
//	c, _ := mgr.CheckContextLimit(prompt, "gpt-4")
//	if !c.Fits {
//	    chunks, _ := mgr.ChunkText(prompt, 1000, "gpt-4")
//	    ...
//	}
//
// # Unsupported Models
//
// A model counts exactly only if the registry lists it and its encoding
// initialized. Anything else fails with *tokenizer.UnsupportedModelError;
// there is no silent fallback to an estimate:
//
//	_, err := mgr.CountTokens("Hello", "unknown-model")
//	if tokenizer.IsUnsupportedModel(err) {
//	    ...
//	}
//
// # Configuration
//
// NewFromConfig builds a Manager from config.Config, which is loaded from
// defaults, an optional .tokenkit.{yaml,toml,json} file and TOKENKIT_*
// environment variables.
package tokenkit
