package chunk

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

// fiveCounter counts five tokens for any non-empty text.
var fiveCounter = tokens.CounterFunc(func(text, model string) (int, error) {
	if text == "" {
		return 0, nil
	}
	return 5, nil
})

func TestSentences(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected []string
	}{
		{name: "empty", text: "", expected: nil},
		{name: "only punctuation", text: "...!?", expected: nil},
		{name: "no punctuation", text: "  just words  ", expected: []string{"just words"}},
		{
			name:     "mixed terminators",
			text:     "One. Two! Three? Four",
			expected: []string{"One", "Two", "Three", "Four"},
		},
		{
			name:     "runs collapse",
			text:     "Wait... What?! Yes.",
			expected: []string{"Wait", "What", "Yes"},
		},
		{
			name:     "abbreviations split naively",
			text:     "Use tools, e.g. a hammer.",
			expected: []string{"Use tools, e", "g", "a hammer"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Sentences(tt.text))
		})
	}
}

func TestChunker_Split_FourSentences(t *testing.T) {
	c := New(fiveCounter)
	text := "First sentence. Second sentence. Third sentence. Fourth sentence."

	chunks, err := c.Split(text, 10, "gpt-3.5-turbo")
	require.NoError(t, err)

	assert.Greater(t, len(chunks), 1)
	assert.Equal(t, []string{
		"First sentence. Second sentence.",
		"Third sentence. Fourth sentence.",
	}, chunks)
	for _, chunk := range chunks {
		n, err := fiveCounter.CountTokens(chunk, "gpt-3.5-turbo")
		require.NoError(t, err)
		assert.LessOrEqual(t, n, 10)
	}
}

func TestChunker_Split_Empty(t *testing.T) {
	chunks, err := New(wordCounter).Split("", 10, "")
	require.NoError(t, err)
	assert.Empty(t, chunks)
}

func TestChunker_Split_RespectsBudget(t *testing.T) {
	c := New(wordCounter)
	text := "a b c. d e. f g h i. j. k l m n o p. q r."

	chunks, err := c.Split(text, 6, "")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"a b c. d e.",
		"f g h i. j.",
		"k l m n o p.",
		"q r.",
	}, chunks)
	for _, chunk := range chunks {
		assert.LessOrEqual(t, len(strings.Fields(chunk)), 6, chunk)
	}
}

func TestChunker_Split_OversizedSentence(t *testing.T) {
	c := New(wordCounter)
	text := "short one. this sentence is far too long for the budget. tail"

	chunks, err := c.Split(text, 3, "")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"short one.",
		"this sentence is far too long for the budget.",
		"tail.",
	}, chunks)
}

func TestChunker_Split_OversizedFirstSentence(t *testing.T) {
	chunks, err := New(wordCounter).Split("one two three four. five", 2, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"one two three four.", "five."}, chunks)
}

func TestChunker_Split_Coverage(t *testing.T) {
	c := New(wordCounter)
	text := "Alpha beta gamma! Delta epsilon? Zeta eta theta iota. Kappa... Lambda mu"

	chunks, err := c.Split(text, 4, "")
	require.NoError(t, err)

	joined := strings.Join(chunks, " ")
	var want []string
	for _, s := range Sentences(text) {
		want = append(want, s+".")
	}
	assert.Equal(t, strings.Join(want, " "), joined)
}

func TestChunker_Split_Repeatable(t *testing.T) {
	c := New(wordCounter)
	text := strings.Repeat("The quick brown fox jumps. ", 20)

	first, err := c.Split(text, 12, "")
	require.NoError(t, err)
	second, err := c.Split(text, 12, "")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestChunker_Split_InvalidBudget(t *testing.T) {
	_, err := New(wordCounter).Split("text.", 0, "")
	assert.ErrorIs(t, err, ErrInvalidBudget)
}

func TestChunker_Split_PropagatesCounterError(t *testing.T) {
	boom := errors.New("unsupported")
	failing := tokens.CounterFunc(func(string, string) (int, error) { return 0, boom })

	chunks, err := New(failing).Split("One. Two.", 10, "x")
	assert.ErrorIs(t, err, boom)
	assert.Nil(t, chunks)
}

func TestChunker_Split_Overlap(t *testing.T) {
	c := New(wordCounter, WithOverlap(2))
	text := "a b. c d. e f. g h."

	chunks, err := c.Split(text, 4, "")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"a b. c d.",
		"c d. e f.",
		"e f. g h.",
	}, chunks)
	for _, chunk := range chunks {
		assert.LessOrEqual(t, len(strings.Fields(chunk)), 4, chunk)
	}
}

func TestChunker_Split_OverlapSkippedWhenNoRoom(t *testing.T) {
	c := New(wordCounter, WithOverlap(5))
	text := "a b. c d e f."

	chunks, err := c.Split(text, 4, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"a b.", "c d e f."}, chunks)
}
