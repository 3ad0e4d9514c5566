package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/randalmurphal/tokenkit"
	"github.com/randalmurphal/tokenkit/config"
)

// app carries the state shared by all subcommands. It is populated by the
// root command's PersistentPreRunE.
type app struct {
	cfgFile string
	model   string
	verbose bool

	// opts are appended to the config-derived Manager options.
	opts []tokenkit.Option

	v      *viper.Viper
	cfg    config.Config
	logger *slog.Logger
	mgr    *tokenkit.Manager
}

// newRootCmd builds the command tree. opts are passed through to the Manager.
func newRootCmd(opts ...tokenkit.Option) *cobra.Command {
	a := &app{v: config.New(), opts: opts}

	root := &cobra.Command{
		Use:   "tokenkit",
		Short: "Count, price, chunk and trim text by LLM tokens",
		Long: `tokenkit counts tokens exactly for known models, estimates costs, checks
context windows, splits long text into token-bounded chunks and trims
prompts to a token budget.

Text is read from --text, --file or standard input.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&a.cfgFile, "config", "c", "", "config file (default is ./.tokenkit.yaml or $HOME/.tokenkit.yaml)")
	pf.StringVarP(&a.model, "model", "m", "", "model name (default from config)")
	pf.StringP("output", "o", "text", "output format: text or json")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")

	_ = a.v.BindPFlag("output", pf.Lookup("output"))

	root.AddCommand(
		a.countCmd(),
		a.estimateCmd(),
		a.analyzeCmd(),
		a.checkCmd(),
		a.chunkCmd(),
		a.optimizeCmd(),
		a.conversationCmd(),
		a.modelsCmd(),
		a.schemaCmd(),
		a.watchCmd(),
	)
	return root
}

// setup loads .env, the config file and the environment, then builds the
// logger and the Manager.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}

	if err := config.ReadFile(a.v, a.cfgFile); err != nil {
		return err
	}
	cfg, err := config.Decode(a.v)
	if err != nil {
		return err
	}
	if a.verbose {
		cfg.Logging.Level = "debug"
	}
	a.cfg = cfg
	a.logger = config.NewLogger(cfg.Logging, cmd.ErrOrStderr())

	mgr, err := tokenkit.NewFromConfig(cfg, a.logger, a.opts...)
	if err != nil {
		return err
	}
	a.mgr = mgr

	a.logger.Debug("tokenkit ready",
		slog.String("default_model", mgr.Registry().DefaultModel()),
		slog.String("backend", cfg.Tokenizer.Backend),
		slog.Int("models", len(mgr.ListModels())))
	return nil
}

// modelName returns the --model flag resolved against the default model.
func (a *app) modelName() string {
	return a.mgr.Registry().Resolve(a.model)
}

func (a *app) printer(cmd *cobra.Command) *printer {
	return newPrinter(cmd.OutOrStdout(), a.cfg.Output)
}
