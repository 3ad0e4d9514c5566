package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/tokenkit/cost"
	"github.com/randalmurphal/tokenkit/tokens"
)

func (a *app) conversationCmd() *cobra.Command {
	var in input
	cmd := &cobra.Command{
		Use:   "conversation",
		Short: "Tally tokens and cost over a conversation",
		Long: `Tally a conversation given as a JSON array of turns:

  [{"role": "user", "content": "Hello"}, {"role": "assistant", "content": "Hi"}]

User turns are priced as input and assistant turns as output. Other roles
are ignored.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			raw, err := in.read(cmd)
			if err != nil {
				return err
			}
			var turns []tokens.Turn
			if err := json.Unmarshal([]byte(raw), &turns); err != nil {
				return fmt.Errorf("parse conversation: %w", err)
			}

			model := a.modelName()
			tally, err := a.mgr.CalculateConversationTokens(turns, model)
			if err != nil {
				return err
			}

			p := a.printer(cmd)
			level := a.mgr.CostLevel(tally.TotalCost)
			out := struct {
				tokens.ConversationTally
				Model     string     `json:"model"`
				CostLevel cost.Level `json:"cost_level"`
			}{tally, model, level}
			return p.print(out, []field{
				{"total_tokens", tally.TotalTokens},
				{"input_tokens", tally.InputTokens},
				{"output_tokens", tally.OutputTokens},
				{"input_cost", tally.InputCost},
				{"output_cost", tally.OutputCost},
				{"total_cost", tally.TotalCost},
				{"fits_context", tally.FitsContext},
				{"model", model},
				{"cost_level", p.level(level)},
			})
		},
	}
	in.register(cmd)
	return cmd
}
