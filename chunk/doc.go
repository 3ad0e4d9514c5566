// Package chunk splits long text into pieces that fit a token budget.
//
// Text is cut into sentences on runs of '.', '!' and '?', then sentences are
// packed greedily into chunks whose exact token count stays within the
// budget:
//
//	c := chunk.New(adapter)
//	chunks, err := c.Split(text, 1000, "gpt-4")
//
// Each sentence in a chunk is rendered with a trailing ". ", so "Hi! Bye?"
// comes back as "Hi. Bye.". A sentence that alone exceeds the budget is
// emitted as its own oversized chunk; callers must tolerate that.
//
// WithOverlap repeats the tail of one chunk at the head of the next, which
// helps retrieval pipelines keep context across chunk boundaries:
//
//	c := chunk.New(adapter, chunk.WithOverlap(50))
package chunk
