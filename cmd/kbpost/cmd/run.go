package cmd

import (
	"fmt"

	"github.com/OpenTraceLab/kbpost/pkg/annotate"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func (o *rootOptions) runAnnotate(cmd *cobra.Command, args []string) error {
	cfg, err := o.resolveConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	job := cfg.Job()
	o.logger.Debug("Resolved configuration",
		zap.String("input", cfg.Input),
		zap.String("output", cfg.Output),
		zap.Bool("led", cfg.LED),
		zap.Bool("led_sym", cfg.LEDSymbols),
		zap.Int("led_offset", cfg.LEDOffset),
		zap.String("mode", cfg.Mode))

	rep, err := annotate.NewRunner(o.logger).Run(job)
	if err != nil {
		return err
	}

	for _, p := range rep.Names.Pairs() {
		o.logger.Debug("Renamed", zap.String("old", p[0]), zap.String("new", p[1]))
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Schematic: %s\n", job.SchematicOut)
	fmt.Fprintf(out, "  Components renamed: %d\n", rep.Components)
	if cfg.LEDSymbols {
		fmt.Fprintf(out, "  LED symbols added: %d\n", rep.Companions)
	}
	fmt.Fprintf(out, "Board: %s\n", job.BoardOut)
	fmt.Fprintf(out, "  Lines updated: %d of %d\n", rep.BoardRewritten, rep.BoardLines)
	if c := rep.Names.Collisions(); len(c) > 0 {
		fmt.Fprintf(out, "Warning: %d new name(s) shared by distinct references\n", len(c))
	}
	return nil
}
