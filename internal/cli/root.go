// Package cli implements the gsea command line.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/gsea/gsea/cipher"
	"github.com/gsea/gsea/codec"
	"github.com/gsea/gsea/internal/config"
	"github.com/gsea/gsea/internal/pipeline"
)

// Execute is the single entry point for the CLI.
func Execute(version, commit string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return NewRootCommand(version, commit).ExecuteContext(ctx)
}

// options holds the values bound to the root command's flags. They are
// applied over the loaded configuration only when set on the command line.
type options struct {
	configFile string
	verbose    bool
	cfg        config.Config
}

// NewRootCommand builds the gsea command tree.
func NewRootCommand(version, commit string) *cobra.Command {
	opts := &options{cfg: config.Default()}

	root := &cobra.Command{
		Use:   "gsea -c|-d|-e|-u [flags] -i INPUT -o OUTPUT",
		Short: "Compress, decompress, encrypt and decrypt files and directories",
		Long: `gsea applies a chain of operations to a file, or to every file in a
directory. Operations run in the order decrypt, decompress, compress,
encrypt, and may be combined, as in -ce or -ud.

Defaults for the algorithms, level, workers and key are read from
~/.gsea.yaml when it exists.`,
		Version:      fmt.Sprintf("%s (%s)", version, commit),
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().NFlag() == 0 {
				return cmd.Help()
			}
			return runPipeline(cmd, opts)
		},
	}

	flags := root.Flags()
	flags.BoolVarP(&opts.cfg.Compress, "compress", "c", false, "compress")
	flags.BoolVarP(&opts.cfg.Decompress, "decompress", "d", false, "decompress")
	flags.BoolVarP(&opts.cfg.Encrypt, "encrypt", "e", false, "encrypt")
	flags.BoolVarP(&opts.cfg.Decrypt, "decrypt", "u", false, "decrypt")
	flags.StringVarP(&opts.cfg.InputPath, "input", "i", "", "input file or directory")
	flags.StringVarP(&opts.cfg.OutputPath, "output", "o", "", "output file or directory")
	flags.StringVarP(&opts.cfg.Key, "key", "k", "", "encryption key (prompted for when missing and stdin is a terminal)")
	flags.StringVar(&opts.cfg.CompAlg, "comp-alg", opts.cfg.CompAlg,
		"compression algorithm ("+strings.Join(codec.Names(), ", ")+")")
	flags.StringVar(&opts.cfg.EncAlg, "enc-alg", opts.cfg.EncAlg,
		"encryption algorithm ("+strings.Join(cipher.Names(), ", ")+")")
	flags.IntVar(&opts.cfg.Level, "level", 0, "compression level, 0 for the algorithm's default")
	flags.IntVarP(&opts.cfg.Workers, "workers", "j", opts.cfg.Workers, "number of files processed at once")
	flags.BoolVar(&opts.cfg.Verify, "verify", false, "check that compressed output decompresses to the input")

	root.PersistentFlags().StringVar(&opts.configFile, "config", "", "config file (default is "+config.DefaultPath+")")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log every file processed")

	root.AddCommand(
		newTokensCommand(),
		newExplainCommand(),
		newAlgorithmsCommand(),
	)
	return root
}

func runPipeline(cmd *cobra.Command, opts *options) error {
	cfg, err := config.Load(opts.configFile)
	if err != nil {
		return err
	}
	applyFlags(cmd.Flags(), &cfg, opts.cfg)

	if (cfg.Encrypt || cfg.Decrypt) && cfg.Key == "" {
		key, err := promptKey(cmd.InOrStdin(), cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		cfg.Key = key
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := newLogger(cmd.ErrOrStderr(), opts.verbose)
	tasks, err := pipeline.Plan(cfg)
	if err != nil {
		return err
	}
	report, err := pipeline.Run(cmd.Context(), cfg, tasks, logger)
	if err != nil {
		return err
	}
	return report.Err()
}

// applyFlags copies the flags set on the command line from set into cfg.
func applyFlags(flags *pflag.FlagSet, cfg *config.Config, set config.Config) {
	flags.Visit(func(f *pflag.Flag) {
		switch f.Name {
		case "compress":
			cfg.Compress = set.Compress
		case "decompress":
			cfg.Decompress = set.Decompress
		case "encrypt":
			cfg.Encrypt = set.Encrypt
		case "decrypt":
			cfg.Decrypt = set.Decrypt
		case "input":
			cfg.InputPath = set.InputPath
		case "output":
			cfg.OutputPath = set.OutputPath
		case "key":
			cfg.Key = set.Key
		case "comp-alg":
			cfg.CompAlg = set.CompAlg
		case "enc-alg":
			cfg.EncAlg = set.EncAlg
		case "level":
			cfg.Level = set.Level
		case "workers":
			cfg.Workers = set.Workers
		case "verify":
			cfg.Verify = set.Verify
		}
	})
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
