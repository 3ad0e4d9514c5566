package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/randalmurphal/tokenkit/cost"
	"github.com/randalmurphal/tokenkit/tokens"
)

func (a *app) countCmd() *cobra.Command {
	var in input
	cmd := &cobra.Command{
		Use:   "count",
		Short: "Count the exact tokens of a text",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			text, err := in.read(cmd)
			if err != nil {
				return err
			}
			model := a.modelName()
			n, err := a.mgr.CountTokens(text, model)
			if err != nil {
				return err
			}

			out := struct {
				Tokens int    `json:"tokens"`
				Model  string `json:"model"`
			}{n, model}
			return a.printer(cmd).print(out, []field{
				{"tokens", n},
				{"model", model},
			})
		},
	}
	in.register(cmd)
	return cmd
}

func (a *app) estimateCmd() *cobra.Command {
	var (
		in          input
		contentType string
	)
	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Estimate tokens from word or character counts",
		Long: `Estimate tokens without a tokenizer:

  text        words x estimation.text
  code        characters x estimation.code
  technical   words x estimation.technical
  conversation is counted exactly on the default model.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ct := tokens.ContentType(contentType)
			switch ct {
			case tokens.ContentText, tokens.ContentCode, tokens.ContentTechnical, tokens.ContentConversation:
			default:
				return fmt.Errorf("unknown content type %q (text, code, technical, conversation)", contentType)
			}

			text, err := in.read(cmd)
			if err != nil {
				return err
			}
			n, err := a.mgr.EstimateTokens(text, ct)
			if err != nil {
				return err
			}

			out := struct {
				Tokens      int                `json:"tokens"`
				ContentType tokens.ContentType `json:"content_type"`
			}{n, ct}
			return a.printer(cmd).print(out, []field{
				{"tokens", n},
				{"content_type", ct},
			})
		},
	}
	in.register(cmd)
	cmd.Flags().StringVar(&contentType, "type", string(tokens.ContentText), "content type: text, code, technical or conversation")
	return cmd
}

// analysisOutput is a single-text analysis with its cost level.
type analysisOutput struct {
	tokens.TextAnalysis
	CostLevel cost.Level `json:"cost_level"`
}

// fileAnalysis is one file of a multi-file analysis.
type fileAnalysis struct {
	File           string  `json:"file"`
	TokenCount     int     `json:"token_count"`
	WordCount      int     `json:"word_count"`
	CharacterCount int     `json:"character_count"`
	EstimatedCost  float64 `json:"estimated_cost"`
}

type multiAnalysisOutput struct {
	Model       string         `json:"model"`
	Files       []fileAnalysis `json:"files"`
	TotalTokens int            `json:"total_tokens"`
	TotalCost   float64        `json:"total_cost"`
	CostLevel   cost.Level     `json:"cost_level"`
	OverDaily   bool           `json:"over_daily"`
}

func (a *app) analyzeCmd() *cobra.Command {
	var (
		text  string
		files []string
	)
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Count tokens, words and characters and estimate input cost",
		Long: `Analyze a text, or several files at once with repeated --file flags.
Multiple files are analyzed concurrently and their costs totalled against the
configured thresholds.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if len(files) > 1 {
				return a.analyzeFiles(cmd, files)
			}

			in := input{text: text}
			if len(files) == 1 {
				in.file = files[0]
			}
			content, err := in.read(cmd)
			if err != nil {
				return err
			}
			an, err := a.mgr.AnalyzeText(content, a.modelName())
			if err != nil {
				return err
			}

			p := a.printer(cmd)
			level := a.mgr.CostLevel(an.EstimatedCost)
			return p.print(analysisOutput{TextAnalysis: an, CostLevel: level}, []field{
				{"tokens", an.TokenCount},
				{"words", an.WordCount},
				{"characters", an.CharacterCount},
				{"cost", an.EstimatedCost},
				{"model", an.Model},
				{"cost_level", p.level(level)},
			})
		},
	}
	cmd.Flags().StringVarP(&text, "text", "t", "", "text to process")
	cmd.Flags().StringArrayVarP(&files, "file", "f", nil, "file to process, repeatable")
	return cmd
}

func (a *app) analyzeFiles(cmd *cobra.Command, files []string) error {
	model := a.modelName()
	tracker := cost.NewTracker(a.mgr.Thresholds())
	results := make([]fileAnalysis, len(files))

	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read %s: %w", path, err)
			}
			an, err := a.mgr.AnalyzeText(string(data), model)
			if err != nil {
				return fmt.Errorf("analyze %s: %w", path, err)
			}

			results[i] = fileAnalysis{
				File:           path,
				TokenCount:     an.TokenCount,
				WordCount:      an.WordCount,
				CharacterCount: an.CharacterCount,
				EstimatedCost:  an.EstimatedCost,
			}
			tracker.Record(model, cost.Usage{InputTokens: an.TokenCount, Cost: an.EstimatedCost})
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	total := tracker.Total()
	out := multiAnalysisOutput{
		Model:       model,
		Files:       results,
		TotalTokens: total.TotalTokens(),
		TotalCost:   total.Cost,
		CostLevel:   tracker.Level(),
		OverDaily:   tracker.OverDaily(),
	}
	a.logger.Debug("analyzed files", "count", len(files), "tokens", out.TotalTokens)

	p := a.printer(cmd)
	fields := make([]field, 0, len(results)+5)
	for _, r := range results {
		fields = append(fields, field{r.File, fmt.Sprintf("%d tokens, %d words, %d characters, cost %g",
			r.TokenCount, r.WordCount, r.CharacterCount, r.EstimatedCost)})
	}
	fields = append(fields,
		field{"model", model},
		field{"total_tokens", out.TotalTokens},
		field{"total_cost", out.TotalCost},
		field{"cost_level", p.level(out.CostLevel)},
		field{"over_daily", out.OverDaily},
	)
	return p.print(out, fields)
}

func (a *app) checkCmd() *cobra.Command {
	var in input
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check whether a text fits the model's context window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			text, err := in.read(cmd)
			if err != nil {
				return err
			}
			model := a.modelName()
			c, err := a.mgr.CheckContextLimit(text, model)
			if err != nil {
				return err
			}

			out := struct {
				tokens.ContextCheck
				Model string `json:"model"`
			}{c, model}
			return a.printer(cmd).print(out, []field{
				{"fits", c.Fits},
				{"token_count", c.TokenCount},
				{"context_window", c.ContextWindow},
				{"remaining_tokens", c.RemainingTokens},
				{"overflow_percentage", fmt.Sprintf("%.2f", c.OverflowPercentage)},
				{"model", model},
			})
		},
	}
	in.register(cmd)
	return cmd
}
