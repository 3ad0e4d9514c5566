package truncate

import (
	"strings"

	"github.com/randalmurphal/tokenkit/tokens"
)

// Optimizer trims prompts to a token budget by dropping trailing words.
type Optimizer struct {
	counter tokens.Counter
}

// NewOptimizer creates an optimizer counting tokens with counter.
func NewOptimizer(counter tokens.Counter) *Optimizer {
	return &Optimizer{counter: counter}
}

// Result describes one optimization.
type Result struct {
	OriginalText    string `json:"original_text"`
	OptimizedText   string `json:"optimized_text"`
	OriginalTokens  int    `json:"original_tokens"`
	OptimizedTokens int    `json:"optimized_tokens"`
	TokensSaved     int    `json:"tokens_saved"`
	TargetTokens    int    `json:"target_tokens"`
	Model           string `json:"model"`
}

// Truncated reports whether any words were dropped.
func (r Result) Truncated() bool {
	return r.OptimizedText != r.OriginalText
}

// Optimize returns prompt unchanged when it already fits targetTokens.
// Otherwise it rebuilds the prompt word by word, joined by single spaces,
// and returns the longest prefix whose exact count is still within
// targetTokens. If the first word alone is too large the result is "".
//
// The result keeps word order but not whitespace, punctuation or meaning.
func (o *Optimizer) Optimize(prompt string, targetTokens int, model string) (string, error) {
	n, err := o.counter.CountTokens(prompt, model)
	if err != nil {
		return "", err
	}
	if n <= targetTokens {
		return prompt, nil
	}
	return o.trim(prompt, targetTokens, model)
}

// Report optimizes prompt and returns the before/after token counts.
func (o *Optimizer) Report(prompt string, targetTokens int, model string) (Result, error) {
	original, err := o.counter.CountTokens(prompt, model)
	if err != nil {
		return Result{}, err
	}

	res := Result{
		OriginalText:    prompt,
		OptimizedText:   prompt,
		OriginalTokens:  original,
		OptimizedTokens: original,
		TargetTokens:    targetTokens,
		Model:           model,
	}
	if original <= targetTokens {
		return res, nil
	}

	res.OptimizedText, err = o.trim(prompt, targetTokens, model)
	if err != nil {
		return Result{}, err
	}
	res.OptimizedTokens, err = o.counter.CountTokens(res.OptimizedText, model)
	if err != nil {
		return Result{}, err
	}
	res.TokensSaved = res.OriginalTokens - res.OptimizedTokens
	return res, nil
}

// trim grows a candidate one word at a time until the next word would push
// it over targetTokens.
func (o *Optimizer) trim(prompt string, targetTokens int, model string) (string, error) {
	var (
		sb       strings.Builder
		accepted string
	)
	for i, word := range strings.Fields(prompt) {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(word)

		candidate := sb.String()
		n, err := o.counter.CountTokens(candidate, model)
		if err != nil {
			return "", err
		}
		if n > targetTokens {
			break
		}
		accepted = candidate
	}
	return accepted, nil
}
