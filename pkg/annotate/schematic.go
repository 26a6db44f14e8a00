package annotate

import (
	"fmt"

	"github.com/OpenTraceLab/kbpost/pkg/kicad/legacy"
	"github.com/OpenTraceLab/kbpost/pkg/refname"
)

// SchematicResult is a rewritten schematic
type SchematicResult struct {
	Lines      []string
	Components int // components (or part lines, in line mode) renamed
	Companions int // LED companion blocks added
}

// RewriteSchematic renames every kbpcb reference in a legacy schematic.
// lines keep their terminators (see SplitLines). Renames are recorded in names.
func RewriteSchematic(lines []string, opts Options, names *refname.Map) (*SchematicResult, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if opts.mode() == ModeLines {
		return rewriteLines(lines, names), nil
	}
	return rewriteBlocks(lines, opts, names)
}

// rewriteBlocks builds the output in one pass over component spans and the
// text between them
func rewriteBlocks(lines []string, opts Options, names *refname.Map) (*SchematicResult, error) {
	comps, err := legacy.ParseComponents(lines)
	if err != nil {
		return nil, fmt.Errorf("read components: %w", err)
	}

	shift := legacy.MaxY(comps) + opts.LEDOffset
	res := &SchematicResult{Lines: make([]string, 0, len(lines))}

	next := 0
	for _, c := range comps {
		res.Lines = append(res.Lines, lines[next:c.Start]...)
		block, added := rewriteComponent(lines, c, opts, names, shift)
		res.Lines = append(res.Lines, block...)
		res.Components++
		if added {
			res.Companions++
		}
		next = c.End + 1
	}
	res.Lines = append(res.Lines, lines[next:]...)

	return res, nil
}

// rewriteComponent returns the rewritten block for c, followed by its LED
// companion when one is requested
func rewriteComponent(lines []string, c *legacy.Component, opts Options, names *refname.Map, shift int) ([]string, bool) {
	block := make([]string, c.Len())
	copy(block, lines[c.Start:c.End+1])
	at := func(abs int) *string { return &block[abs-c.Start] }

	newPart := names.Rename(c.PartRef)
	*at(c.PartLine) = replaceTail(*at(c.PartLine), c.PartRef, newPart)

	newRef := names.Rename(c.Reference)
	*at(c.ReferenceLine) = replaceQuoted(*at(c.ReferenceLine), c.Reference, newRef)

	if !c.HasFootprint() {
		return block, false
	}

	footprint := c.Footprint
	if opts.LED {
		footprint = legacy.LEDFootprint(footprint)
		*at(c.FootprintLine) = replaceQuoted(*at(c.FootprintLine), c.Footprint, footprint)
	}

	if !opts.LEDSymbols {
		return block, false
	}

	eol := lineEnding(block[len(block)-1])
	last := eol
	if eol == "" {
		// block ends the file without a newline
		eol = "\n"
		block[len(block)-1] += eol
	}

	companion := legacy.Companion(newRef, footprint, c.X, c.Y+shift)
	for i, l := range companion {
		if i == len(companion)-1 {
			block = append(block, l+last)
		} else {
			block = append(block, l+eol)
		}
	}
	return block, true
}

// rewriteLines renames part and field 0 lines independently of any block
// structure
func rewriteLines(lines []string, names *refname.Map) *SchematicResult {
	res := &SchematicResult{Lines: make([]string, len(lines))}
	for i, l := range lines {
		if ref, ok := legacy.MatchPart(l); ok {
			l = replaceTail(l, ref, names.Rename(ref))
			res.Components++
		} else if f, ok := legacy.MatchReference(l); ok {
			l = replaceQuoted(l, f.Ref, names.Rename(f.Ref))
		}
		res.Lines[i] = l
	}
	return res
}
