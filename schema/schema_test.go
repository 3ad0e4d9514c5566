package schema

import (
	"encoding/json"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// propertyNames renders the schema and returns its top-level property names.
func propertyNames(t *testing.T, name string) []string {
	t.Helper()
	s, err := For(name)
	require.NoError(t, err)

	data, err := json.Marshal(s)
	require.NoError(t, err)

	var doc struct {
		ID         string                     `json:"$id"`
		Properties map[string]json.RawMessage `json:"properties"`
	}
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, BaseID+name+".json", doc.ID)

	names := make([]string, 0, len(doc.Properties))
	for k := range doc.Properties {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

func TestOutputShapes(t *testing.T) {
	tests := []struct {
		name     string
		expected []string
	}{
		{
			name:     "context_check",
			expected: []string{"context_window", "fits", "overflow_percentage", "remaining_tokens", "token_count"},
		},
		{
			name: "conversation_tally",
			expected: []string{
				"fits_context", "input_cost", "input_tokens", "output_cost",
				"output_tokens", "total_cost", "total_tokens",
			},
		},
		{
			name:     "text_analysis",
			expected: []string{"character_count", "estimated_cost", "model", "text", "token_count", "word_count"},
		},
		{
			name: "optimize_result",
			expected: []string{
				"model", "optimized_text", "optimized_tokens", "original_text",
				"original_tokens", "target_tokens", "tokens_saved",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, propertyNames(t, tt.name))
		})
	}
}

func TestFor_Unknown(t *testing.T) {
	_, err := For("nope")
	assert.Error(t, err)
}

func TestAll(t *testing.T) {
	all := All()
	assert.Len(t, all, len(Names()))
	for _, name := range Names() {
		assert.NotNil(t, all[name], name)
	}
}
