package truncate

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/tokenkit/tokens"
)

// wordCounter counts one token per whitespace-delimited word.
var wordCounter = tokens.CounterFunc(func(text, model string) (int, error) {
	return len(strings.Fields(text)), nil
})

// charCounter counts one token per byte, so long words cost more.
var charCounter = tokens.CounterFunc(func(text, model string) (int, error) {
	return len(text), nil
})

func TestOptimizer_Optimize(t *testing.T) {
	tests := []struct {
		name     string
		counter  tokens.Counter
		prompt   string
		target   int
		expected string
	}{
		{
			name:     "already fits is unchanged",
			counter:  wordCounter,
			prompt:   "  keep   my\nspacing  ",
			target:   3,
			expected: "  keep   my\nspacing  ",
		},
		{
			name:     "trims to word prefix",
			counter:  wordCounter,
			prompt:   "one two three four five",
			target:   3,
			expected: "one two three",
		},
		{
			name:     "normalizes whitespace when trimming",
			counter:  wordCounter,
			prompt:   "one\n\ntwo   three four",
			target:   2,
			expected: "one two",
		},
		{
			name:     "stops at first overflow",
			counter:  charCounter,
			prompt:   "aa bb cccccccc d",
			target:   8,
			expected: "aa bb",
		},
		{
			name:     "first word too large",
			counter:  charCounter,
			prompt:   "enormous words here",
			target:   3,
			expected: "",
		},
		{
			name:     "zero target",
			counter:  wordCounter,
			prompt:   "a b",
			target:   0,
			expected: "",
		},
		{
			name:     "empty prompt",
			counter:  wordCounter,
			prompt:   "",
			target:   5,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewOptimizer(tt.counter).Optimize(tt.prompt, tt.target, "m")
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestOptimizer_Optimize_Idempotent(t *testing.T) {
	o := NewOptimizer(charCounter)
	prompt := "the quick brown fox jumps over the lazy dog"

	once, err := o.Optimize(prompt, 20, "m")
	require.NoError(t, err)
	twice, err := o.Optimize(once, 20, "m")
	require.NoError(t, err)

	assert.Equal(t, once, twice)
	assert.LessOrEqual(t, len(once), 20)
	assert.True(t, strings.HasPrefix(prompt, once))
}

func TestOptimizer_Optimize_EmptyPromptWithFixedCounter(t *testing.T) {
	// A counter that reports five tokens even for "" still yields "".
	five := tokens.CounterFunc(func(string, string) (int, error) { return 5, nil })

	got, err := NewOptimizer(five).Optimize("", 2, "m")
	require.NoError(t, err)
	assert.Equal(t, "", got)
}

func TestOptimizer_Optimize_PropagatesErrors(t *testing.T) {
	boom := errors.New("unsupported model")
	calls := 0
	failLater := tokens.CounterFunc(func(text, model string) (int, error) {
		calls++
		if calls > 1 {
			return 0, boom
		}
		return 100, nil
	})

	_, err := NewOptimizer(failLater).Optimize("a b c d", 1, "m")
	assert.ErrorIs(t, err, boom)
}

func TestOptimizer_Report(t *testing.T) {
	o := NewOptimizer(wordCounter)

	res, err := o.Report("one two three four five", 2, "gpt-4")
	require.NoError(t, err)

	assert.Equal(t, Result{
		OriginalText:    "one two three four five",
		OptimizedText:   "one two",
		OriginalTokens:  5,
		OptimizedTokens: 2,
		TokensSaved:     3,
		TargetTokens:    2,
		Model:           "gpt-4",
	}, res)
	assert.True(t, res.Truncated())
}

func TestOptimizer_Report_NoChange(t *testing.T) {
	res, err := NewOptimizer(wordCounter).Report("short prompt", 10, "m")
	require.NoError(t, err)

	assert.False(t, res.Truncated())
	assert.Equal(t, 0, res.TokensSaved)
	assert.Equal(t, 2, res.OptimizedTokens)
}
