// Package truncate trims prompts to fit a token budget.
//
// Truncation is lossy: the Optimizer keeps the longest prefix of whole words
// whose exact token count fits the target, and drops the rest.
//
// # Basic Usage
//
//	o := truncate.NewOptimizer(adapter)
//	short, err := o.Optimize(prompt, 100, "gpt-4")
//
// A prompt already within the target is returned unchanged, so optimizing an
// optimized prompt again is a no-op. If not even the first word fits, the
// result is the empty string.
//
// # Reports
//
// Report returns the optimized text together with the token counts before
// and after:
//
//	res, err := o.Report(prompt, 100, "gpt-4")
//	fmt.Println(res.TokensSaved)
package truncate
