package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/tokenkit/cost"
	"github.com/randalmurphal/tokenkit/watch"
)

func (a *app) watchCmd() *cobra.Command {
	var (
		file     string
		debounce time.Duration
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-analyze a file every time it changes",
		Long: `Print the token count, cost and context fit of a file, then again after
every save, until interrupted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			model := a.modelName()
			p := a.printer(cmd)
			w := watch.New(file, watch.WithDebounce(debounce), watch.WithLogger(a.logger))
			return w.Run(cmd.Context(), func(content string) error {
				an, err := a.mgr.AnalyzeText(content, model)
				if err != nil {
					return err
				}
				c, err := a.mgr.CheckContextLimit(content, model)
				if err != nil {
					return err
				}

				level := a.mgr.CostLevel(an.EstimatedCost)
				out := struct {
					File               string     `json:"file"`
					Model              string     `json:"model"`
					TokenCount         int        `json:"token_count"`
					EstimatedCost      float64    `json:"estimated_cost"`
					CostLevel          cost.Level `json:"cost_level"`
					Fits               bool       `json:"fits"`
					RemainingTokens    int        `json:"remaining_tokens"`
					OverflowPercentage float64    `json:"overflow_percentage"`
				}{file, model, an.TokenCount, an.EstimatedCost, level, c.Fits, c.RemainingTokens, c.OverflowPercentage}

				return p.print(out, []field{
					{"file", file},
					{"tokens", an.TokenCount},
					{"cost", an.EstimatedCost},
					{"cost_level", p.level(level)},
					{"fits", c.Fits},
					{"context_used", fmt.Sprintf("%.2f%%", c.OverflowPercentage)},
				})
			})
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "file to watch")
	cmd.Flags().DurationVar(&debounce, "debounce", watch.DefaultDebounce, "quiet period before re-analyzing")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
