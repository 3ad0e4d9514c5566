package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/tokenkit/schema"
)

func (a *app) modelsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List the supported models with context windows and costs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			names := a.mgr.ListModels()
			def := a.mgr.Registry().DefaultModel()

			out := make(map[string]map[string]any, len(names))
			fields := make([]field, 0, len(names))
			for _, name := range names {
				info := a.mgr.GetModelInfo(name)
				out[name] = info

				line := fmt.Sprintf("context_window=%v input_cost_per_1k=%v output_cost_per_1k=%v encoding=%v",
					info["context_window"], info["input_cost_per_1k"], info["output_cost_per_1k"], info["encoding"])
				if name == def {
					line += " (default)"
				}
				fields = append(fields, field{name, line})
			}
			return a.printer(cmd).print(out, fields)
		},
	}
}

func (a *app) schemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "schema [name]",
		Short:     "Print the JSON Schema of the JSON output shapes",
		Long:      "Print the JSON Schema of one output shape, or of all of them keyed by name.",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: schema.Names(),
		RunE: func(cmd *cobra.Command, args []string) error {
			var v any
			if len(args) == 0 {
				v = schema.All()
			} else {
				s, err := schema.For(args[0])
				if err != nil {
					return err
				}
				v = s
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(v)
		},
	}
}
