package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/onsi/ginkgo/v2/formatter"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"solhello/internal/app"
	"solhello/internal/prompt"
	"solhello/internal/sequencer"
	"solhello/internal/store"
	"solhello/internal/util/console"
)

const envPrefix = "SOLHELLO"

// Streams are the process's standard streams.
type Streams struct {
	In  *os.File
	Out io.Writer
	Err io.Writer
	// Color enables ANSI colour in narration.
	Color bool
}

// Stdio returns the process streams, with colour when stdout is a terminal.
func Stdio() Streams {
	return Streams{
		In:    os.Stdin,
		Out:   formatter.ColorableStdOut,
		Err:   formatter.ColorableStdErr,
		Color: isatty.IsTerminal(os.Stdout.Fd()),
	}
}

// cli is the state shared by the root command and its subcommands.
type cli struct {
	variant app.Variant
	streams Streams
	v       *viper.Viper
	cfgFile string

	out *console.Console
	log *zap.Logger
	app *app.App
}

// Execute runs the CLI for variant and returns the process exit status.
func Execute(variant app.Variant) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return run(ctx, variant, Stdio(), os.Args[1:])
}

func run(ctx context.Context, variant app.Variant, streams Streams, args []string) int {
	root := newRootCmd(variant, streams)
	root.SetArgs(args)
	root.SetOut(streams.Out)
	root.SetErr(streams.Err)
	if err := root.ExecuteContext(ctx); err != nil {
		console.New(streams.Out, streams.Err, streams.Color).Errf("{{red}}Error:{{/}} %v\n", err)
		return sequencer.ExitFailure
	}
	return sequencer.ExitSuccess
}

func newRootCmd(variant app.Variant, streams Streams) *cobra.Command {
	c := &cli{variant: variant, streams: streams, v: viper.New()}

	root := &cobra.Command{
		Use:               string(variant),
		Short:             shortDescription(variant),
		Args:              cobra.NoArgs,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if c.log != nil {
				_ = c.log.Sync()
			}
		},
		RunE: c.runPipeline,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&c.cfgFile, "config", "", "config file (yaml, toml or json)")
	pf.String("url", "", "cluster RPC URL (default from the Solana CLI config, else http://127.0.0.1:8899)")
	pf.String("keypair", "", "payer keypair file (default from the Solana CLI config, else ~/.config/solana/id.json)")
	pf.StringP("passphrase", "p", "", "passphrase of an encrypted payer keypair")
	pf.String("program-keypair", "", "program keypair file used to find the program id")
	pf.String("program-id", "", "program id; overrides --program-keypair")
	pf.String("seed", "", "seed deriving the data account (default \"hello\")")
	pf.Uint64("account-space", 0, "data account size in bytes (default depends on the program)")
	pf.String("solana-config", "", "Solana CLI config file (default ~/.config/solana/cli/config.yml)")
	pf.String("commitment", "", "commitment level: processed, confirmed or finalized")
	pf.Duration("confirm-timeout", 60*time.Second, "how long to wait for transaction confirmation")
	pf.String("log-level", defaultLogLevel, "log level: debug, info, warn or error")
	pf.Bool("no-color", false, "disable coloured output")

	f := root.Flags()
	f.StringSlice("enable", nil, "stages to enable in addition to the defaults")
	f.StringSlice("disable", nil, "stages to disable")
	f.String("number", "", "answer numeric prompts with this value instead of asking")

	root.AddCommand(c.keygenCmd(), c.addressCmd(), c.reportCmd())
	return root
}

func shortDescription(variant app.Variant) string {
	if variant == app.Mech {
		return "Execute an impact with the mech program"
	}
	return "Store a number with the hello world program"
}

// setup builds the logger, configuration and app for the command about to run.
func (c *cli) setup(cmd *cobra.Command, _ []string) error {
	if err := c.bindFlags(cmd); err != nil {
		return err
	}
	c.v.SetEnvPrefix(envPrefix)
	c.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.v.AutomaticEnv()

	if c.cfgFile != "" {
		c.v.SetConfigFile(c.cfgFile)
		if err := c.v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config: %w", err)
		}
	}

	log, err := newLogger(c.v.GetString("log-level"))
	if err != nil {
		return err
	}
	c.log = log

	cfg, err := app.LoadConfig(c.v, c.variant)
	if err != nil {
		return err
	}
	if err := cfg.ResolveCluster(store.NewClusterConfigFileStore()); err != nil {
		return err
	}
	c.log.Debug("configuration resolved",
		zap.String("variant", string(c.variant)),
		zap.String("url", cfg.URL),
		zap.String("keypair", cfg.Keypair),
		zap.String("commitment", cfg.Commitment),
	)

	c.out = console.New(c.streams.Out, c.streams.Err, c.streams.Color && !cfg.NoColor)
	c.app, err = app.New(c.variant, cfg, c.out, c.log)
	return err
}

func (c *cli) bindFlags(cmd *cobra.Command) error {
	var err error
	bind := func(fl *pflag.Flag) {
		if err == nil && fl.Name != "config" {
			err = c.v.BindPFlag(fl.Name, fl)
		}
	}
	cmd.Flags().VisitAll(bind)
	cmd.InheritedFlags().VisitAll(bind)
	return err
}

func (c *cli) input() prompt.NumberProvider {
	if c.app.Config.HasNumber {
		return prompt.Fixed(c.app.Config.Number)
	}
	if c.streams.In == nil {
		return prompt.Fixed("")
	}
	return prompt.Auto(c.streams.In, c.streams.Out)
}

func (c *cli) runPipeline(cmd *cobra.Command, _ []string) error {
	res, err := c.app.Run(cmd.Context(), c.input())
	if err != nil {
		return err
	}
	// res.Err is a *sequencer.StageError naming the failed stage.
	return res.Err
}
