package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ironsheep/textsynth/internal/config"
	"github.com/ironsheep/textsynth/internal/rng"
	"github.com/ironsheep/textsynth/internal/synth"
)

type generateOpts struct {
	config string
	seed   uint64
	count  int
	out    string
}

// newGenerateCmd creates the generate command for batch synthesis.
func newGenerateCmd() *cobra.Command {
	var opts generateOpts

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a batch of samples",
		Long: `Generate draws texts from the configured word lists, renders each with a
random font and writes the augmented samples to the configured sink.

Flags override the matching [base] keys of the configuration file.`,
		Example: `  textsynth generate --config configs/textsynth.toml
  textsynth generate --config configs/textsynth.toml --seed 42 --count 1000 --out samples/`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts.config)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("seed") {
				cfg.Base.Seed = opts.seed
			}
			if cmd.Flags().Changed("count") {
				cfg.Base.NumUniqueText = opts.count
			}
			if opts.out != "" {
				cfg.Base.Root = opts.out
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return runGenerate(cmd, cfg)
		},
	}

	cmd.Flags().StringVarP(&opts.config, "config", "c", "", "configuration file (TOML)")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "random seed (overrides base.seed)")
	cmd.Flags().IntVarP(&opts.count, "count", "n", 0, "number of texts (overrides base.num_unique_text)")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "output directory (overrides base.root)")
	_ = cmd.MarkFlagRequired("config")

	return cmd
}

func runGenerate(cmd *cobra.Command, cfg config.Config) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	gen, err := synth.Build(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := gen.Writer.Close(); err != nil {
			logger.Warn("failed to close writer", "err", err)
		}
	}()

	logger.Info("Generating", "texts", cfg.Base.NumUniqueText, "samples_per_text", cfg.Base.Samples[0]*cfg.Base.Samples[1]*cfg.Base.Samples[2], "seed", cfg.Base.Seed, "sink", cfg.Base.Sink)
	stats, err := gen.Run(ctx, rng.New(cfg.Base.Seed))
	if err != nil {
		return fmt.Errorf("generation stopped after %d texts: %w", stats.Texts, err)
	}
	prog.done(fmt.Sprintf("Generated %d samples for %d texts", stats.Samples, stats.Texts), "failed", stats.Failed)
	return nil
}

// loadConfig reads path, or returns the defaults when path is empty.
func loadConfig(path string) (config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}
