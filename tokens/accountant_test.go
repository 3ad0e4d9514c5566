package tokens

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/tokenkit/registry"
	"github.com/randalmurphal/tokenkit/tokenizer"
)

// fiveTokens encodes every text as five token ids.
func fiveTokens(string) (tokenizer.Encoder, error) {
	return tokenizer.EncoderFunc(func(string) ([]int, error) {
		return []int{1, 2, 3, 4, 5}, nil
	}), nil
}

// wordTokens encodes one token id per whitespace-delimited word.
func wordTokens(string) (tokenizer.Encoder, error) {
	return tokenizer.EncoderFunc(func(text string) ([]int, error) {
		return make([]int, len(strings.Fields(text))), nil
	}), nil
}

func newAccountant(t *testing.T, factory tokenizer.Factory) *Accountant {
	t.Helper()
	reg := registry.MustBuiltin()
	return NewAccountant(reg, tokenizer.New(reg, tokenizer.WithFactory(factory)))
}

func TestAccountant_AnalyzeText(t *testing.T) {
	acct := newAccountant(t, fiveTokens)

	a, err := acct.AnalyzeText("Hello world", "gpt-3.5-turbo")
	require.NoError(t, err)

	assert.Equal(t, "Hello world", a.Text)
	assert.Equal(t, 5, a.TokenCount)
	assert.Equal(t, 2, a.WordCount)
	assert.Equal(t, 11, a.CharacterCount)
	assert.InDelta(t, 0.0000075, a.EstimatedCost, 1e-15)
	assert.Equal(t, "gpt-3.5-turbo", a.Model)
}

func TestAccountant_AnalyzeText_DefaultModel(t *testing.T) {
	acct := newAccountant(t, fiveTokens)

	a, err := acct.AnalyzeText("Hello world", "")
	require.NoError(t, err)
	assert.Equal(t, "gpt-3.5-turbo", a.Model)
}

func TestAccountant_AnalyzeText_CostMatchesProfile(t *testing.T) {
	acct := newAccountant(t, wordTokens)
	reg := registry.MustBuiltin()
	text := "one two three four five six seven"

	for _, model := range reg.List() {
		t.Run(model, func(t *testing.T) {
			a, err := acct.AnalyzeText(text, model)
			require.NoError(t, err)

			n, err := acct.CountTokens(text, model)
			require.NoError(t, err)
			p, _ := reg.Get(model)

			assert.Equal(t, (float64(n)/1000)*p.InputCostPer1K, a.EstimatedCost)
		})
	}
}

func TestAccountant_AnalyzeText_Empty(t *testing.T) {
	acct := newAccountant(t, fiveTokens)

	a, err := acct.AnalyzeText("", "gpt-4")
	require.NoError(t, err)
	assert.Equal(t, 0, a.TokenCount)
	assert.Equal(t, 0, a.WordCount)
	assert.Equal(t, 0, a.CharacterCount)
	assert.Equal(t, 0.0, a.EstimatedCost)
}

func TestAccountant_AnalyzeText_CountsRunes(t *testing.T) {
	acct := newAccountant(t, fiveTokens)

	a, err := acct.AnalyzeText("héllo wörld", "gpt-4")
	require.NoError(t, err)
	assert.Equal(t, 11, a.CharacterCount)
}

func TestAccountant_UnsupportedModel(t *testing.T) {
	acct := newAccountant(t, fiveTokens)

	_, err := acct.CountTokens("Hello", "unsupported-model")
	assert.ErrorIs(t, err, tokenizer.ErrUnsupportedModel)

	_, err = acct.AnalyzeText("Hello", "unsupported-model")
	assert.ErrorIs(t, err, tokenizer.ErrUnsupportedModel)

	_, err = acct.CheckContextLimit("Hello", "unsupported-model")
	assert.ErrorIs(t, err, tokenizer.ErrUnsupportedModel)

	_, err = acct.CalculateConversationTokens([]Turn{{Role: RoleUser, Content: "Hi"}}, "unsupported-model")
	assert.ErrorIs(t, err, tokenizer.ErrUnsupportedModel)
}

func TestAccountant_UnpricedModelFallsBackToZeroCost(t *testing.T) {
	// A counter that serves a model the registry has never heard of.
	counter := CounterFunc(func(text, model string) (int, error) {
		return 500, nil
	})
	acct := NewAccountant(registry.MustBuiltin(), counter)

	a, err := acct.AnalyzeText("anything", "local-llama")
	require.NoError(t, err)
	assert.Equal(t, 500, a.TokenCount)
	assert.Equal(t, 0.0, a.EstimatedCost)

	check, err := acct.CheckContextLimit("anything", "local-llama")
	require.NoError(t, err)
	assert.Equal(t, 4096, check.ContextWindow, "default model's window")
}

func TestAccountant_EstimateTokens(t *testing.T) {
	acct := newAccountant(t, fiveTokens)

	tests := []struct {
		name     string
		text     string
		ct       ContentType
		expected int
	}{
		{
			name:     "text",
			text:     "Hello world this is a test",
			ct:       ContentText,
			expected: 7, // floor(6 * 1.33)
		},
		{
			name:     "code",
			text:     "def hello(): return 'world'",
			ct:       ContentCode,
			expected: 18, // floor(27 * 0.67)
		},
		{
			name:     "technical",
			text:     "This is technical documentation with complex terminology",
			ct:       ContentTechnical,
			expected: 16, // 8 * 2
		},
		{
			name:     "conversation is counted exactly",
			text:     "Hello there",
			ct:       ContentConversation,
			expected: 5,
		},
		{
			name:     "unknown type is counted exactly",
			text:     "Hello there",
			ct:       ContentType("poetry"),
			expected: 5,
		},
		{
			name:     "empty text",
			text:     "",
			ct:       ContentText,
			expected: 0,
		},
		{
			name:     "whitespace only",
			text:     "  \n\t ",
			ct:       ContentTechnical,
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := acct.EstimateTokens(tt.text, tt.ct)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, n)
		})
	}
}

func TestAccountant_EstimateTokens_CustomRatios(t *testing.T) {
	reg := registry.MustBuiltin()
	acct := NewAccountant(reg, tokenizer.New(reg, tokenizer.WithFactory(fiveTokens)),
		WithEstimator(Estimator{TextPerWord: 1, CodePerChar: 1, TechnicalPerWord: 3}))

	n, err := acct.EstimateTokens("a b c", ContentTechnical)
	require.NoError(t, err)
	assert.Equal(t, 9, n)
}

func TestAccountant_CheckContextLimit(t *testing.T) {
	acct := newAccountant(t, wordTokens)

	tests := []struct {
		name      string
		words     int
		model     string
		fits      bool
		remaining int
		overflow  float64
	}{
		{name: "empty", words: 0, model: "gpt-3.5-turbo", fits: true, remaining: 4096, overflow: 0},
		{name: "half", words: 2048, model: "gpt-3.5-turbo", fits: true, remaining: 2048, overflow: 50},
		{name: "exact", words: 4096, model: "gpt-3.5-turbo", fits: true, remaining: 0, overflow: 100},
		{name: "over", words: 5120, model: "gpt-3.5-turbo", fits: false, remaining: 0, overflow: 125},
		{name: "bigger window", words: 5120, model: "gpt-4", fits: true, remaining: 3072, overflow: 62.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text := strings.Repeat("w ", tt.words)
			check, err := acct.CheckContextLimit(text, tt.model)
			require.NoError(t, err)

			assert.Equal(t, tt.words, check.TokenCount)
			assert.Equal(t, tt.fits, check.Fits)
			assert.Equal(t, tt.remaining, check.RemainingTokens)
			assert.Equal(t, max(0, check.ContextWindow-check.TokenCount), check.RemainingTokens)
			assert.Equal(t, check.TokenCount <= check.ContextWindow, check.Fits)
			assert.InDelta(t, tt.overflow, check.OverflowPercentage, 1e-9)
		})
	}
}

func TestAccountant_CalculateConversationTokens(t *testing.T) {
	acct := newAccountant(t, fiveTokens)

	turns := []Turn{
		{Role: RoleUser, Content: "Hello"},
		{Role: RoleAssistant, Content: "Hi there"},
		{Role: RoleUser, Content: "How are you?"},
	}

	tally, err := acct.CalculateConversationTokens(turns, "gpt-3.5-turbo")
	require.NoError(t, err)

	assert.Equal(t, 15, tally.TotalTokens)
	assert.Equal(t, 10, tally.InputTokens)
	assert.Equal(t, 5, tally.OutputTokens)
	assert.InDelta(t, 0.000015, tally.InputCost, 1e-15)
	assert.InDelta(t, 0.00001, tally.OutputCost, 1e-15)
	assert.InDelta(t, 0.000025, tally.TotalCost, 1e-15)
	assert.True(t, tally.FitsContext)
}

func TestAccountant_CalculateConversationTokens_IgnoresOtherRoles(t *testing.T) {
	acct := newAccountant(t, fiveTokens)

	turns := []Turn{
		{Role: "system", Content: "You are helpful."},
		{Role: RoleUser, Content: "Hello"},
		{Role: "tool", Content: "{}"},
	}

	tally, err := acct.CalculateConversationTokens(turns, "")
	require.NoError(t, err)
	assert.Equal(t, 5, tally.TotalTokens)
	assert.Equal(t, 5, tally.InputTokens)
	assert.Equal(t, 0, tally.OutputTokens)
}

func TestAccountant_CalculateConversationTokens_Overflow(t *testing.T) {
	acct := newAccountant(t, wordTokens)

	turns := []Turn{
		{Role: RoleUser, Content: strings.Repeat("w ", 3000)},
		{Role: RoleAssistant, Content: strings.Repeat("w ", 2000)},
	}

	tally, err := acct.CalculateConversationTokens(turns, "gpt-3.5-turbo")
	require.NoError(t, err)
	assert.Equal(t, 5000, tally.TotalTokens)
	assert.False(t, tally.FitsContext)

	tally, err = acct.CalculateConversationTokens(turns, "gpt-4")
	require.NoError(t, err)
	assert.True(t, tally.FitsContext)
}

func TestAccountant_CalculateConversationTokens_NoPartialResult(t *testing.T) {
	boom := errors.New("encoder exploded")
	calls := 0
	counter := CounterFunc(func(text, model string) (int, error) {
		calls++
		if calls == 2 {
			return 0, boom
		}
		return 5, nil
	})
	acct := NewAccountant(registry.MustBuiltin(), counter)

	tally, err := acct.CalculateConversationTokens([]Turn{
		{Role: RoleUser, Content: "a"},
		{Role: RoleAssistant, Content: "b"},
		{Role: RoleUser, Content: "c"},
	}, "")
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, ConversationTally{}, tally)
}
