// Package annotate rewrites kbpcb schematic and board files so that every
// generated key switch and diode reference carries an annotation suffix.
package annotate

import (
	"errors"
	"fmt"
)

// Mode selects how the schematic is scanned
type Mode string

const (
	// ModeBlocks parses $Comp blocks. Needed for footprint swapping and
	// LED companion symbols.
	ModeBlocks Mode = "blocks"
	// ModeLines renames part and reference lines wherever they appear
	ModeLines Mode = "lines"
)

var (
	// ErrUnknownMode is returned for a Mode other than blocks or lines
	ErrUnknownMode = errors.New("unknown schematic mode")
	// ErrModeConflict is returned when LED options are combined with ModeLines
	ErrModeConflict = errors.New("LED options require block mode")
)

// Options controls the schematic rewrite
type Options struct {
	Mode Mode

	// LED swaps -NoLED switch footprints for their LED-pad variant
	LED bool

	// LEDSymbols appends an LED companion unit after each switch
	LEDSymbols bool

	// LEDOffset is added to the largest component Y to get the vertical
	// shift applied to companions
	LEDOffset int
}

// Validate checks that the options can be applied together
func (o Options) Validate() error {
	switch o.mode() {
	case ModeBlocks:
		return nil
	case ModeLines:
		if o.LED || o.LEDSymbols {
			return ErrModeConflict
		}
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownMode, o.Mode)
	}
}

func (o Options) mode() Mode {
	if o.Mode == "" {
		return ModeBlocks
	}
	return o.Mode
}
