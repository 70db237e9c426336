package cmd

import (
	"fmt"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/spacemeshos/bitint/config"
)

var (
	Version = "0.0.0"
	Commit  = ""
)

// app holds the state shared by every subcommand of one invocation.
type app struct {
	cfg         *config.Config
	configFile  string
	logLevel    string
	printConfig bool

	logger *zap.Logger
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// NewRootCmd builds a fresh command tree with default configuration.
func NewRootCmd() *cobra.Command {
	a := &app{
		cfg:    config.DefaultConfig(),
		logger: zap.NewNop(),
	}

	rootCmd := &cobra.Command{
		Use:   "bitcalc",
		Short: "Fixed-width integer arithmetic over explicit bit arrays",
		Long: `bitcalc builds signed or unsigned integers of a fixed bit width from native
integers and combines them with a bit-by-bit ripple-carry adder.
Overflow and underflow are reported as errors, never wrapped.

Negative operands must follow "--", e.g. bitcalc add -- -5 3`,
		Version:           fmt.Sprintf("%s (%s)", Version, Commit),
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	a.addPersistentFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(
		a.addCmd(),
		a.subCmd(),
		a.negCmd(),
		a.cmpCmd(),
		a.dumpCmd(),
		a.encodeCmd(),
		a.decodeCmd(),
		a.infoCmd(),
		a.verifyCmd(),
	)
	return rootCmd
}

func (a *app) addPersistentFlags(flags *pflag.FlagSet) {
	flags.StringVar(&a.configFile, "config", config.DefaultConfigFile, "path to configuration file")
	flags.StringVar(&a.logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	flags.BoolVar(&a.printConfig, "print-config", false, "print the used config to stderr")
	flags.UintVar(&a.cfg.Width, "width", a.cfg.Width, "bit width of every operand")
	flags.BoolVar(&a.cfg.Unsigned, "unsigned", a.cfg.Unsigned, "use unsigned integers")
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if err := a.loadConfig(cmd); err != nil {
		return err
	}
	if err := a.cfg.Validate(); err != nil {
		return err
	}

	logger, err := newLogger(a.logLevel)
	if err != nil {
		return err
	}
	a.logger = logger

	if a.printConfig {
		spew.Fdump(cmd.ErrOrStderr(), a.cfg)
	}
	return nil
}
