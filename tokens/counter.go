package tokens

import (
	"math"
	"strings"
	"unicode/utf8"
)

// Counter counts exact tokens of text for a model.
// *tokenizer.Adapter implements it.
type Counter interface {
	// CountTokens returns the exact token count. An empty model means the
	// default model of the counter's registry.
	CountTokens(text, model string) (int, error)
}

// CounterFunc adapts a function to the Counter interface.
type CounterFunc func(text, model string) (int, error)

// CountTokens calls f(text, model).
func (f CounterFunc) CountTokens(text, model string) (int, error) {
	return f(text, model)
}

// ContentType selects the heuristic used by EstimateTokens.
type ContentType string

// Content types understood by Estimator. Any other value, including
// ContentConversation, is counted exactly.
const (
	ContentText         ContentType = "text"
	ContentCode         ContentType = "code"
	ContentTechnical    ContentType = "technical"
	ContentConversation ContentType = "conversation"
)

// Default heuristic ratios.
const (
	// DefaultTextPerWord is tokens per word for prose (1 token ≈ 0.75 words).
	DefaultTextPerWord = 1.33

	// DefaultCodePerChar is tokens per character for source code.
	DefaultCodePerChar = 0.67

	// DefaultTechnicalPerWord is tokens per word for technical prose.
	DefaultTechnicalPerWord = 2.0
)

// Estimator holds the ratios for heuristic token estimates.
type Estimator struct {
	TextPerWord      float64
	CodePerChar      float64
	TechnicalPerWord float64
}

// DefaultEstimator returns an Estimator with the default ratios.
func DefaultEstimator() Estimator {
	return Estimator{
		TextPerWord:      DefaultTextPerWord,
		CodePerChar:      DefaultCodePerChar,
		TechnicalPerWord: DefaultTechnicalPerWord,
	}
}

// Estimate returns the heuristic count for text and whether ct has a
// heuristic at all. ok is false for content types that need an exact count.
func (e Estimator) Estimate(text string, ct ContentType) (n int, ok bool) {
	switch ct {
	case ContentText:
		return int(math.Floor(float64(WordCount(text)) * e.TextPerWord)), true
	case ContentCode:
		return int(math.Floor(float64(CharacterCount(text)) * e.CodePerChar)), true
	case ContentTechnical:
		return int(math.Floor(float64(WordCount(text)) * e.TechnicalPerWord)), true
	default:
		return 0, false
	}
}

// WordCount returns the number of whitespace-delimited words in text.
func WordCount(text string) int {
	return len(strings.Fields(text))
}

// CharacterCount returns the length of text in runes.
func CharacterCount(text string) int {
	return utf8.RuneCountInString(text)
}
