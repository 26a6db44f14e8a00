package cmd

import (
	"fmt"
	"os"

	"github.com/OpenTraceLab/kbpost/internal/config"
	"github.com/OpenTraceLab/kbpost/pkg/annotate"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const version = "0.3.0"

// rootOptions carries flag values and the logger shared by all commands
type rootOptions struct {
	verbose    bool
	configPath string
	flags      config.Config // values bound to flags; applied only when set
	logger     *zap.Logger
}

func newRootCmd() *cobra.Command {
	o := &rootOptions{flags: config.Default()}

	cmd := &cobra.Command{
		Use:   "kbpost",
		Short: "Post process kbpcb outputs to prevent reannotation",
		Long: `kbpost rewrites the schematic and board generated by kbpcb so that KiCad's
annotator keeps the generated key switch and diode references.

<input>.sch and <input>.kicad_pcb are read; <output>.sch and
<output>.kicad_pcb are written.

Examples:
  kbpost                                  # keyboard-layout -> keyboard-layout-out
  kbpost -i board -o board-annotated      # custom base names
  kbpost --led --led_sym                  # LED footprints and LED symbols
  kbpost check board-annotated.kicad_pcb  # list references still unannotated
  kbpost refs K_A1 "K_↑"                  # preview new names`,
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return o.initLogger()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if o.logger != nil {
				_ = o.logger.Sync()
			}
		},
		RunE: o.runAnnotate,
	}

	pf := cmd.PersistentFlags()
	pf.BoolVarP(&o.verbose, "verbose", "v", false, "verbose output")

	f := cmd.Flags()
	f.StringVarP(&o.configPath, "config", "c", "", "YAML config file")
	f.StringVarP(&o.flags.Input, "input", "i", config.DefaultInput, "input filename with no extension")
	f.StringVarP(&o.flags.Output, "output", "o", config.DefaultOutput, "output filename with no extension")
	f.BoolVar(&o.flags.LED, "led", false, "use footprint with LED pads")
	f.BoolVar(&o.flags.LEDSymbols, "led_sym", false,
		"add LED symbols to schematic (requires custom kicad_lib_tmk, see https://github.com/Gigahawk/kicad_lib_tmk)")
	f.IntVar(&o.flags.LEDOffset, "led-offset", 0, "extra vertical offset for LED symbols, in mils")
	f.StringVar(&o.flags.Mode, "mode", string(annotate.ModeBlocks), "schematic scan mode: blocks or lines")
	f.BoolVar(&o.flags.Verify, "verify", false, "re-read the written board and fail on unannotated references")

	cmd.AddCommand(newCheckCmd(), newRefsCmd())
	return cmd
}

// Execute runs the root command
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func (o *rootOptions) initLogger() error {
	zc := zap.NewProductionConfig()
	zc.Encoding = "console"
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zc.DisableStacktrace = true
	if o.verbose {
		zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	logger, err := zc.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	o.logger = logger
	return nil
}

// resolveConfig layers defaults, the config file and explicitly set flags
func (o *rootOptions) resolveConfig(cmd *cobra.Command) (config.Config, error) {
	cfg := config.Default()
	if o.configPath != "" {
		var err error
		if cfg, err = config.Load(o.configPath); err != nil {
			return cfg, err
		}
	}

	set := cmd.Flags().Changed
	if set("input") {
		cfg.Input = o.flags.Input
	}
	if set("output") {
		cfg.Output = o.flags.Output
	}
	if set("led") {
		cfg.LED = o.flags.LED
	}
	if set("led_sym") {
		cfg.LEDSymbols = o.flags.LEDSymbols
	}
	if set("led-offset") {
		cfg.LEDOffset = o.flags.LEDOffset
	}
	if set("mode") {
		cfg.Mode = o.flags.Mode
	}
	if set("verify") {
		cfg.Verify = o.flags.Verify
	}
	return cfg, nil
}
