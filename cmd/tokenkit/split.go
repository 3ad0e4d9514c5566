package main

import (
	"github.com/spf13/cobra"
)

func (a *app) chunkCmd() *cobra.Command {
	var (
		in        input
		maxTokens int
	)
	cmd := &cobra.Command{
		Use:   "chunk",
		Short: "Split a text into sentence-aligned chunks under a token budget",
		Long: `Split a text at sentence boundaries (".", "!", "?") into chunks of at most
--max-tokens tokens. A single sentence longer than the budget is emitted as
its own chunk. The budget defaults to chunking.default_max_tokens.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("max-tokens") {
				maxTokens = a.cfg.Chunking.DefaultMaxTokens
			}
			text, err := in.read(cmd)
			if err != nil {
				return err
			}
			model := a.modelName()
			chunks, err := a.mgr.ChunkText(text, maxTokens, model)
			if err != nil {
				return err
			}
			if chunks == nil {
				chunks = []string{}
			}

			out := struct {
				Chunks            []string `json:"chunks"`
				ChunkCount        int      `json:"chunk_count"`
				MaxTokensPerChunk int      `json:"max_tokens_per_chunk"`
				Model             string   `json:"model"`
			}{chunks, len(chunks), maxTokens, model}
			return a.printer(cmd).print(out, []field{
				{"chunks", chunks},
				{"chunk_count", len(chunks)},
				{"max_tokens_per_chunk", maxTokens},
				{"model", model},
			})
		},
	}
	in.register(cmd)
	cmd.Flags().IntVar(&maxTokens, "max-tokens", 0, "maximum tokens per chunk")
	return cmd
}

func (a *app) optimizeCmd() *cobra.Command {
	var (
		in        input
		maxTokens int
	)
	cmd := &cobra.Command{
		Use:   "optimize",
		Short: "Trim a prompt to a whole-word prefix within a token budget",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			text, err := in.read(cmd)
			if err != nil {
				return err
			}
			r, err := a.mgr.OptimizeReport(text, maxTokens, a.modelName())
			if err != nil {
				return err
			}

			return a.printer(cmd).print(r, []field{
				{"original_tokens", r.OriginalTokens},
				{"optimized_tokens", r.OptimizedTokens},
				{"tokens_saved", r.TokensSaved},
				{"target_tokens", r.TargetTokens},
				{"model", r.Model},
				{"optimized_text", r.OptimizedText},
			})
		},
	}
	in.register(cmd)
	cmd.Flags().IntVar(&maxTokens, "max-tokens", 0, "token budget for the prompt")
	_ = cmd.MarkFlagRequired("max-tokens")
	return cmd
}
