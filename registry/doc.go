// Package registry holds the static table of model profiles: context window,
// per-1k input/output pricing and tokenizer family for each model.
//
// A Registry is built once and never mutated. Pass it by reference to the
// components that need it instead of keeping a package-level table.
//
// # Builtin Table
//
//	reg := registry.MustBuiltin()
//	p, ok := reg.Get("gpt-4")        // ModelProfile, true
//	names := reg.List()              // registration order
//	info := reg.Info("unknown")      // empty map, not an error
//
// # Custom Tables
//
// Tables can be loaded from YAML, TOML or JSON. Adding a model needs only a
// new entry:
//
//	reg, err := registry.LoadFile("models.toml")
//
//	default_model = "gpt-4"
//
//	[[models]]
//	name = "gpt-4"
//	context_window = 8192
//	input_cost_per_1k = 0.03
//	output_cost_per_1k = 0.06
package registry
