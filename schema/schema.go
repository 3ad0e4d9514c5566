// Package schema publishes JSON Schemas for tokenkit's output shapes so that
// external tooling can depend on the field names.
package schema

import (
	"fmt"
	"sort"

	"github.com/invopop/jsonschema"

	"github.com/randalmurphal/tokenkit/registry"
	"github.com/randalmurphal/tokenkit/tokens"
	"github.com/randalmurphal/tokenkit/truncate"
)

// BaseID prefixes the $id of every published schema.
const BaseID = "https://github.com/randalmurphal/tokenkit/schema/"

var shapes = map[string]any{
	"text_analysis":      tokens.TextAnalysis{},
	"context_check":      tokens.ContextCheck{},
	"conversation_tally": tokens.ConversationTally{},
	"turn":               tokens.Turn{},
	"optimize_result":    truncate.Result{},
	"model_profile":      registry.ModelProfile{},
}

// Names returns the published shape names, sorted.
func Names() []string {
	names := make([]string, 0, len(shapes))
	for name := range shapes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// For returns the schema of the named shape.
func For(name string) (*jsonschema.Schema, error) {
	v, ok := shapes[name]
	if !ok {
		return nil, fmt.Errorf("unknown schema %q (known: %v)", name, Names())
	}

	r := &jsonschema.Reflector{ExpandedStruct: true}
	s := r.Reflect(v)
	s.ID = jsonschema.ID(BaseID + name + ".json")
	return s, nil
}

// All returns the schema of every published shape keyed by name.
func All() map[string]*jsonschema.Schema {
	out := make(map[string]*jsonschema.Schema, len(shapes))
	for _, name := range Names() {
		s, _ := For(name)
		out[name] = s
	}
	return out
}
