package legacy

import (
	"errors"
	"fmt"
	"strings"
)

// Block markers
const (
	StartMarker = "$Comp"
	EndMarker   = "$EndComp"
)

var (
	// ErrNoPartLine is returned for a block without an L line naming a kbpcb part
	ErrNoPartLine = errors.New("no key switch or diode part line")
	// ErrNoReference is returned for a block without a field 0 reference
	ErrNoReference = errors.New("no reference field")
	// ErrNoPosition is returned for a block without a P line
	ErrNoPosition = errors.New("no position line")
	// ErrOverlap is returned when marker pairing yields a block that starts
	// inside the previous one
	ErrOverlap = errors.New("block overlaps previous block")
)

// BlockError reports a component block that could not be read
type BlockError struct {
	Line int // 1-based line number of the block's start marker
	Err  error
}

func (e *BlockError) Error() string {
	return fmt.Sprintf("component at line %d: %v", e.Line, e.Err)
}

func (e *BlockError) Unwrap() error { return e.Err }

// Span is an inclusive range of line indices
type Span struct {
	Start int
	End   int
}

// Len returns the number of lines in the span
func (s Span) Len() int { return s.End - s.Start + 1 }

// Spans locates component blocks. The n-th start marker is paired with the
// n-th end marker; markers are not treated as nesting.
func Spans(lines []string) []Span {
	var starts, ends []int
	for i, l := range lines {
		switch strings.TrimRight(l, " \t\r\n") {
		case StartMarker:
			starts = append(starts, i)
		case EndMarker:
			ends = append(ends, i)
		}
	}

	n := min(len(starts), len(ends))
	spans := make([]Span, 0, n)
	for i := 0; i < n; i++ {
		spans = append(spans, Span{Start: starts[i], End: ends[i]})
	}
	return spans
}

// Component is one kbpcb key switch or diode placed in the schematic
type Component struct {
	Span

	PartRef   string // reference on the L line
	Reference string // reference in field 0
	X, Y      int    // from the P line
	Footprint string // switch footprint from field 2, empty if absent

	// Absolute line indices; FootprintLine is -1 when Footprint is empty
	PartLine      int
	ReferenceLine int
	FootprintLine int

	// Fields holds every F line that parsed cleanly, in block order
	Fields []Field
}

// HasFootprint reports whether the component carries a swappable switch footprint
func (c *Component) HasFootprint() bool {
	return c.FootprintLine >= 0
}

// Field returns the field with the given number
func (c *Component) Field(n int) (Field, bool) {
	for _, f := range c.Fields {
		if f.Number == n {
			return f, true
		}
	}
	return Field{}, false
}

// ParseComponent extracts a Component from the lines of one block
func ParseComponent(lines []string, span Span) (*Component, error) {
	c := &Component{
		Span:          span,
		PartLine:      -1,
		ReferenceLine: -1,
		FootprintLine: -1,
	}
	hasPos := false

	for i := span.Start; i <= span.End && i < len(lines); i++ {
		line := lines[i]

		if c.PartLine < 0 {
			if ref, ok := MatchPart(line); ok {
				c.PartRef, c.PartLine = ref, i
				continue
			}
		}
		if c.ReferenceLine < 0 {
			if f, ok := MatchReference(line); ok {
				c.Reference, c.ReferenceLine = f.Ref, i
			}
		}
		if c.FootprintLine < 0 {
			if fp, ok := MatchFootprint(line); ok {
				c.Footprint, c.FootprintLine = fp, i
			}
		}
		if !hasPos {
			if x, y, ok := MatchPosition(line); ok {
				c.X, c.Y, hasPos = x, y, true
			}
		}
		if f, err := ParseField(line); err == nil {
			c.Fields = append(c.Fields, *f)
		}
	}

	switch {
	case c.PartLine < 0:
		return nil, &BlockError{Line: span.Start + 1, Err: ErrNoPartLine}
	case c.ReferenceLine < 0:
		return nil, &BlockError{Line: span.Start + 1, Err: ErrNoReference}
	case !hasPos:
		return nil, &BlockError{Line: span.Start + 1, Err: ErrNoPosition}
	}

	return c, nil
}

// ParseComponents extracts every component block in the schematic
func ParseComponents(lines []string) ([]*Component, error) {
	spans := Spans(lines)
	comps := make([]*Component, 0, len(spans))
	prevEnd := -1
	for _, s := range spans {
		if s.Start <= prevEnd {
			return nil, &BlockError{Line: s.Start + 1, Err: ErrOverlap}
		}
		prevEnd = s.End

		c, err := ParseComponent(lines, s)
		if err != nil {
			return nil, err
		}
		comps = append(comps, c)
	}
	return comps, nil
}

// MaxY returns the largest Y position among comps, or 0 if there are none
func MaxY(comps []*Component) int {
	if len(comps) == 0 {
		return 0
	}
	maxY := comps[0].Y
	for _, c := range comps[1:] {
		maxY = max(maxY, c.Y)
	}
	return maxY
}
