// Package config loads tokenkit settings.
//
// Sources, in increasing precedence:
//
//   - Built-in defaults (Default)
//   - A config file: the given path, or .tokenkit.{yaml,toml,json} in the
//     working directory or home directory
//   - Environment variables with the TOKENKIT_ prefix, dots replaced by
//     underscores (TOKENKIT_TOKENIZER_BACKEND=tiktoken)
//
// Example file:
//
//	default_model: gpt-4
//	tokenizer:
//	  backend: embedded
//	chunking:
//	  default_max_tokens: 800
//	  overlap_tokens: 50
//	costs:
//	  warning: 0.01
//	  critical: 0.10
//	  max_daily: 1.00
//	logging:
//	  level: debug
package config
