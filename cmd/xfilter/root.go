package main

import (
	"github.com/go-logr/logr"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/cwbudde/algo-xfilter/internal/config"
	"github.com/cwbudde/algo-xfilter/internal/logging"
)

// rootOptions is shared by all subcommands. cfg and log are set before any
// subcommand runs.
type rootOptions struct {
	v          *viper.Viper
	configPath string
	// bindings maps a command's flag names to config keys. They are bound
	// only for the command that runs.
	bindings map[*cobra.Command]map[string]string

	cfg config.Config
	zap *zap.Logger
	log logr.Logger
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{
		v:        config.NewViper(),
		bindings: map[*cobra.Command]map[string]string{},
		log:      logr.Discard(),
	}

	cmd := &cobra.Command{
		Use:           "xfilter",
		Short:         "X-ray spectral filtration",
		Long:          "Computes the transmission of layered material filters and applies it to photon energy spectra.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if opts.zap != nil {
				_ = opts.zap.Sync()
			}
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "", "YAML configuration file")
	pf.String("log-level", "info", "log level (trace|debug|info|warn|error)")
	pf.String("log-format", logging.FormatConsole, "log encoding (console|json)")
	_ = opts.v.BindPFlag(config.KeyLogLevel, pf.Lookup("log-level"))
	_ = opts.v.BindPFlag(config.KeyLogFormat, pf.Lookup("log-format"))

	cmd.AddCommand(newApplyCommand(opts))
	cmd.AddCommand(newTransmissionCommand(opts))
	cmd.AddCommand(newLibraryCommand(opts))
	return cmd
}

func (o *rootOptions) bind(cmd *cobra.Command, flagKeys map[string]string) {
	o.bindings[cmd] = flagKeys
}

func (o *rootOptions) setup(cmd *cobra.Command) error {
	for name, key := range o.bindings[cmd] {
		if err := o.v.BindPFlag(key, cmd.Flags().Lookup(name)); err != nil {
			return commandError("bind --"+name, err)
		}
	}

	cfg, err := config.Load(o.v, o.configPath)
	if err != nil {
		return commandError("load configuration", err)
	}
	if err := cfg.Validate(); err != nil {
		return commandError("configuration", err)
	}
	o.cfg = cfg

	z, err := logging.NewWithWriter(cmd.ErrOrStderr(), cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return commandError("logger", err)
	}
	o.zap = z
	o.log = logging.Logr(z).WithName("xfilter")
	return nil
}
