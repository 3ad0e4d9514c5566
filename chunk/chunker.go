package chunk

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/randalmurphal/tokenkit/tokens"
)

// ErrInvalidBudget indicates a non-positive token budget.
var ErrInvalidBudget = errors.New("max tokens must be > 0")

// sentenceBoundary matches runs of sentence-ending punctuation. Abbreviations
// such as "e.g." are split too.
var sentenceBoundary = regexp.MustCompile(`[.!?]+`)

// sentenceSep is appended after every sentence placed in a chunk.
const sentenceSep = ". "

// Sentences splits text on runs of '.', '!' and '?'. The punctuation is
// dropped, each fragment is trimmed and empty fragments are skipped.
func Sentences(text string) []string {
	var out []string
	for _, s := range sentenceBoundary.Split(text, -1) {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Chunker splits text into chunks bounded by an exact token budget,
// breaking only between sentences. It holds no state between calls.
type Chunker struct {
	counter tokens.Counter
	overlap int
}

// Option configures a Chunker.
type Option func(*Chunker)

// WithOverlap repeats trailing sentences of a chunk, up to n tokens, at the
// start of the next chunk. Zero (the default) disables overlap.
func WithOverlap(n int) Option {
	return func(c *Chunker) {
		if n > 0 {
			c.overlap = n
		}
	}
}

// New creates a chunker counting tokens with counter.
func New(counter tokens.Counter, opts ...Option) *Chunker {
	c := &Chunker{counter: counter}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// sentence is a sentence with its token count.
type sentence struct {
	text   string
	tokens int
}

// Split divides text into chunks of at most maxTokens tokens for model.
//
// Sentences are added to the current chunk while the running total stays
// within maxTokens; the sentence that would overflow starts a new chunk.
// A single sentence larger than maxTokens becomes its own oversized chunk:
// sentences are never split internally. Empty text yields no chunks.
func (c *Chunker) Split(text string, maxTokens int, model string) ([]string, error) {
	if maxTokens <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidBudget, maxTokens)
	}

	var (
		chunks  []string
		current []sentence
		total   int
	)

	for _, s := range Sentences(text) {
		n, err := c.counter.CountTokens(s, model)
		if err != nil {
			return nil, err
		}

		if total+n <= maxTokens {
			current = append(current, sentence{text: s, tokens: n})
			total += n
			continue
		}

		if len(current) > 0 {
			chunks = append(chunks, join(current))
		}
		current = c.carry(current, n, maxTokens)
		total = n
		for _, prev := range current {
			total += prev.tokens
		}
		current = append(current, sentence{text: s, tokens: n})
	}

	if len(current) > 0 {
		chunks = append(chunks, join(current))
	}
	return chunks, nil
}

// carry returns the trailing sentences of prev that fit in the overlap and
// still leave room for a next sentence of n tokens.
func (c *Chunker) carry(prev []sentence, n, maxTokens int) []sentence {
	if c.overlap == 0 {
		return nil
	}

	room := min(c.overlap, maxTokens-n)
	used := 0
	start := len(prev)
	for start > 0 && used+prev[start-1].tokens <= room {
		start--
		used += prev[start].tokens
	}
	if start == len(prev) {
		return nil
	}
	out := make([]sentence, len(prev)-start)
	copy(out, prev[start:])
	return out
}

// join renders sentences as "A. B. C." with the trailing space trimmed.
func join(sentences []sentence) string {
	var sb strings.Builder
	for _, s := range sentences {
		sb.WriteString(s.text)
		sb.WriteString(sentenceSep)
	}
	return strings.TrimSpace(sb.String())
}
