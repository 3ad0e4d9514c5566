// Package tokens does the token accounting for LLM prompts: exact counts,
// heuristic estimates, cost, context-window fit and conversation totals.
//
// Exact counts come from a Counter, normally a *tokenizer.Adapter. Pricing
// and context windows come from a *registry.Registry.
//
// # Accountant
//
//	acct := tokens.NewAccountant(reg, adapter)
//	a, err := acct.AnalyzeText("Hello world", "gpt-3.5-turbo")
//	// a.TokenCount, a.WordCount, a.CharacterCount, a.EstimatedCost
//
//	check, err := acct.CheckContextLimit(text, "gpt-4")
//	// check.Fits, check.RemainingTokens, check.OverflowPercentage
//
//	tally, err := acct.CalculateConversationTokens([]tokens.Turn{
//	    {Role: tokens.RoleUser, Content: "Hello"},
//	    {Role: tokens.RoleAssistant, Content: "Hi there"},
//	}, "gpt-4")
//
// An empty model name means the registry default. A model the counter cannot
// serve fails with the counter's error (tokenizer.ErrUnsupportedModel); no
// partial result is returned.
//
// # Estimates
//
// EstimateTokens needs no tokenizer for "text" (words × 1.33), "code"
// (characters × 0.67) and "technical" (words × 2.0). Any other content type
// is counted exactly with the default model.
//
// # Budget
//
//	b := acct.Budget("gpt-4") // 20% system, 40% context, 30% user, 10% reserved
//	ok, err := b.Fits(tokens.PartSystem, systemPrompt)
//	left := b.Remaining(tokens.PartContext, used)
package tokens
