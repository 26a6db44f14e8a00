package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/OpenTraceLab/kbpost/internal/config"
	"github.com/OpenTraceLab/kbpost/pkg/annotate"
	"github.com/OpenTraceLab/kbpost/pkg/kicad/legacy"
	"github.com/OpenTraceLab/kbpost/pkg/kicad/pcb"
	"github.com/OpenTraceLab/kbpost/pkg/refname"
	"github.com/spf13/cobra"
)

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <file.sch|file.kicad_pcb>",
		Short: "List generated references the annotator would renumber",
		Long: `Reads a schematic or board without modifying it and lists every kbpcb
key switch or diode reference that has no annotation suffix.

Exits with an error when any such reference is found.`,
		Args: cobra.ExactArgs(1),
		RunE: runCheck,
	}
}

func runCheck(cmd *cobra.Command, args []string) error {
	filename := args[0]
	out := cmd.OutOrStdout()

	switch filepath.Ext(filename) {
	case config.BoardExt:
		return checkBoard(out, filename)
	case config.SchematicExt:
		return checkSchematic(out, filename)
	default:
		return fmt.Errorf("unsupported file type %q (want %s or %s)", filepath.Ext(filename), config.SchematicExt, config.BoardExt)
	}
}

func checkBoard(out io.Writer, filename string) error {
	board, err := pcb.ParseFile(filename)
	if err != nil {
		return fmt.Errorf("error parsing board: %w", err)
	}

	fmt.Fprintf(out, "Board: %s\n", filename)
	fmt.Fprintf(out, "  Footprints: %d\n", len(board.Footprints))
	fmt.Fprintf(out, "  Nets: %d\n", len(board.Nets))

	bad := board.Unannotated()
	if len(bad) == 0 {
		fmt.Fprintln(out, "All generated references are annotated")
		return nil
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "%-6s %-10s %s\n", "Line", "Source", "Reference")
	for _, u := range bad {
		fmt.Fprintf(out, "%-6d %-10s %s\n", u.Line, u.Source, u.Reference)
	}
	return fmt.Errorf("%s: %d %w", filename, len(bad), pcb.ErrUnannotated)
}

func checkSchematic(out io.Writer, filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("error reading schematic: %w", err)
	}
	comps, err := legacy.ParseComponents(annotate.SplitLines(string(data)))
	if err != nil {
		return fmt.Errorf("error parsing schematic: %w", err)
	}

	fmt.Fprintf(out, "Schematic: %s\n", filename)
	fmt.Fprintf(out, "  Components: %d\n", len(comps))
	fmt.Fprintln(out)
	fmt.Fprintf(out, "%-6s %-12s %-8s %-10s %s\n", "Line", "Reference", "Value", "Position", "Footprint")

	unannotated := 0
	for _, c := range comps {
		value := ""
		if f, ok := c.Field(1); ok {
			value = f.Text
		}
		mark := ""
		if !refname.IsAnnotated(c.Reference) {
			mark = "  (unannotated)"
			unannotated++
		}
		fmt.Fprintf(out, "%-6d %-12s %-8s %-10s %s%s\n",
			c.Start+1, c.Reference, value, fmt.Sprintf("%d,%d", c.X, c.Y), c.Footprint, mark)
	}

	if unannotated > 0 {
		return fmt.Errorf("%s: %d %w", filename, unannotated, pcb.ErrUnannotated)
	}
	return nil
}
