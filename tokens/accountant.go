package tokens

import (
	"github.com/randalmurphal/tokenkit/cost"
	"github.com/randalmurphal/tokenkit/registry"
)

// TextAnalysis is the result of analyzing one text for one model.
type TextAnalysis struct {
	Text           string  `json:"text"`
	TokenCount     int     `json:"token_count"`
	WordCount      int     `json:"word_count"`
	CharacterCount int     `json:"character_count"`
	EstimatedCost  float64 `json:"estimated_cost"`
	Model          string  `json:"model"`
}

// ContextCheck reports whether a text fits a model's context window.
type ContextCheck struct {
	Fits               bool    `json:"fits"`
	TokenCount         int     `json:"token_count"`
	ContextWindow      int     `json:"context_window"`
	RemainingTokens    int     `json:"remaining_tokens"`
	OverflowPercentage float64 `json:"overflow_percentage"`
}

// Role is the speaker of a conversation turn.
type Role string

// Roles that contribute to a conversation tally. Other roles are ignored.
const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one message of a conversation.
type Turn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// ConversationTally aggregates token usage and cost over a conversation.
// User turns count as input and assistant turns as output.
type ConversationTally struct {
	TotalTokens  int     `json:"total_tokens"`
	InputTokens  int     `json:"input_tokens"`
	OutputTokens int     `json:"output_tokens"`
	InputCost    float64 `json:"input_cost"`
	OutputCost   float64 `json:"output_cost"`
	TotalCost    float64 `json:"total_cost"`
	FitsContext  bool    `json:"fits_context"`
}

// Accountant computes token counts, costs and context fit for the models of
// a registry. It holds no mutable state.
type Accountant struct {
	registry  *registry.Registry
	counter   Counter
	estimator Estimator
}

// AccountantOption configures an Accountant.
type AccountantOption func(*Accountant)

// WithEstimator overrides the heuristic ratios used by EstimateTokens.
func WithEstimator(e Estimator) AccountantOption {
	return func(a *Accountant) {
		a.estimator = e
	}
}

// NewAccountant creates an Accountant pricing models from reg and counting
// tokens with counter.
func NewAccountant(reg *registry.Registry, counter Counter, opts ...AccountantOption) *Accountant {
	a := &Accountant{
		registry:  reg,
		counter:   counter,
		estimator: DefaultEstimator(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// CountTokens returns the exact token count of text for model.
func (a *Accountant) CountTokens(text, model string) (int, error) {
	return a.counter.CountTokens(text, a.registry.Resolve(model))
}

// EstimateTokens estimates tokens by content type without a tokenizer.
// Content types without a heuristic fall back to an exact count on the
// default model.
func (a *Accountant) EstimateTokens(text string, ct ContentType) (int, error) {
	if n, ok := a.estimator.Estimate(text, ct); ok {
		return n, nil
	}
	return a.counter.CountTokens(text, a.registry.DefaultModel())
}

// AnalyzeText counts tokens, words and characters of text and prices the
// tokens as input for model.
func (a *Accountant) AnalyzeText(text, model string) (TextAnalysis, error) {
	model = a.registry.Resolve(model)
	n, err := a.counter.CountTokens(text, model)
	if err != nil {
		return TextAnalysis{}, err
	}

	return TextAnalysis{
		Text:           text,
		TokenCount:     n,
		WordCount:      WordCount(text),
		CharacterCount: CharacterCount(text),
		EstimatedCost:  cost.Compute(n, a.pricing(model).InputCostPer1K),
		Model:          model,
	}, nil
}

// CheckContextLimit reports whether text fits the context window of model.
func (a *Accountant) CheckContextLimit(text, model string) (ContextCheck, error) {
	model = a.registry.Resolve(model)
	n, err := a.counter.CountTokens(text, model)
	if err != nil {
		return ContextCheck{}, err
	}

	window := a.pricing(model).ContextWindow
	check := ContextCheck{
		Fits:          n <= window,
		TokenCount:    n,
		ContextWindow: window,
	}
	if window > n {
		check.RemainingTokens = window - n
	}
	if window > 0 {
		check.OverflowPercentage = float64(n) / float64(window) * 100
	}
	return check, nil
}

// CalculateConversationTokens tallies tokens and cost over turns in order.
// Turns with a role other than user or assistant contribute nothing.
// The first counting error aborts the tally.
func (a *Accountant) CalculateConversationTokens(turns []Turn, model string) (ConversationTally, error) {
	model = a.registry.Resolve(model)

	var tally ConversationTally
	for _, turn := range turns {
		switch turn.Role {
		case RoleUser, RoleAssistant:
		default:
			continue
		}

		n, err := a.counter.CountTokens(turn.Content, model)
		if err != nil {
			return ConversationTally{}, err
		}
		if turn.Role == RoleUser {
			tally.InputTokens += n
		} else {
			tally.OutputTokens += n
		}
		tally.TotalTokens += n
	}

	p := a.pricing(model)
	tally.InputCost = cost.Compute(tally.InputTokens, p.InputCostPer1K)
	tally.OutputCost = cost.Compute(tally.OutputTokens, p.OutputCostPer1K)
	tally.TotalCost = tally.InputCost + tally.OutputCost
	tally.FitsContext = tally.TotalTokens <= p.ContextWindow
	return tally, nil
}

// Budget returns a budget splitting the context window of model with the
// default allocation.
func (a *Accountant) Budget(model string) *Budget {
	model = a.registry.Resolve(model)
	return NewBudget(a.pricing(model).ContextWindow, a.counter, model)
}

// pricing returns the profile of model, or a zero-cost profile with the
// default model's context window when the registry does not know it.
func (a *Accountant) pricing(model string) registry.ModelProfile {
	if p, ok := a.registry.Get(model); ok {
		return p
	}
	def, _ := a.registry.Get(a.registry.DefaultModel())
	return registry.ModelProfile{
		Name:          model,
		ContextWindow: def.ContextWindow,
	}
}
