package cmd

import (
	"fmt"

	"github.com/OpenTraceLab/kbpost/pkg/refname"
	"github.com/spf13/cobra"
)

func newRefsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "refs <reference>...",
		Short: "Show the annotated name for each reference",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			names := refname.NewMap()
			for _, ref := range args {
				fmt.Fprintf(cmd.OutOrStdout(), "%q -> %s\n", ref, names.Rename(ref))
			}
			for _, c := range names.Collisions() {
				fmt.Fprintf(cmd.OutOrStdout(), "Warning: %s is produced by %q\n", c.New, c.Olds)
			}
			return nil
		},
	}
}
