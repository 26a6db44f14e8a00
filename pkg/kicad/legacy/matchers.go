// Package legacy reads the line-oriented KiCad 5 schematic format (.sch).
//
// Only the pieces needed to find and rename kbpcb components are understood:
// component blocks, their part line, reference and footprint fields, and
// their position. Each line shape has its own matcher so a failure points at
// exactly one kind of line.
package legacy

import (
	"regexp"
	"strconv"
	"strings"
)

// Line shapes inside a $Comp block. Lines are matched without their line
// ending.
var (
	// L keyboard_parts:KEYSW K_A1
	partRe = regexp.MustCompile(`^\s*L (?:keyboard_parts:KEYSW|Device:D) ((?:K|D)_.*)$`)

	// F 0 "K_A1" H 1000 1131 60  0000 C CNN
	referenceRe = regexp.MustCompile(`^\s*F 0 "((?:K|D)_.*)" (?:H|V)\s+(-?\d+)\s+(-?\d+)\s+\d+\s+\d+ (?:R|C) CNN`)

	// F 2 "MX_Alps_Hybrid:MX-1.0U-NoLED" H 1000 1000 60  0001 C CNN
	footprintRe = regexp.MustCompile(`^\s*F\s+2\s+"(MX_Alps_Hybrid:MX-[0-9.]+U(?:-NoLED)?)"\s+H\s+\d+\s+\d+\s+\d+\s+\d+\s+C\s+CNN`)

	// P 1000 1000
	positionRe = regexp.MustCompile(`^\s*P\s+(-?\d+)\s+(-?\d+)`)
)

// NoLEDSuffix marks footprints without LED pads
const NoLEDSuffix = "-NoLED"

// MatchPart returns the reference on a part declaration line
func MatchPart(line string) (string, bool) {
	m := partRe.FindStringSubmatch(trimEOL(line))
	if m == nil {
		return "", false
	}
	return m[1], true
}

// ReferenceField is the display reference (field 0) of a component
type ReferenceField struct {
	Ref  string
	X, Y int
}

// MatchReference returns the field 0 reference and its text position
func MatchReference(line string) (ReferenceField, bool) {
	m := referenceRe.FindStringSubmatch(trimEOL(line))
	if m == nil {
		return ReferenceField{}, false
	}
	x, _ := strconv.Atoi(m[2])
	y, _ := strconv.Atoi(m[3])
	return ReferenceField{Ref: m[1], X: x, Y: y}, true
}

// MatchFootprint returns the switch footprint identifier from field 2
func MatchFootprint(line string) (string, bool) {
	m := footprintRe.FindStringSubmatch(trimEOL(line))
	if m == nil {
		return "", false
	}
	return m[1], true
}

// MatchPosition returns the component position from a P line
func MatchPosition(line string) (x, y int, ok bool) {
	m := positionRe.FindStringSubmatch(trimEOL(line))
	if m == nil {
		return 0, 0, false
	}
	x, errX := strconv.Atoi(m[1])
	y, errY := strconv.Atoi(m[2])
	if errX != nil || errY != nil {
		return 0, 0, false
	}
	return x, y, true
}

// LEDFootprint returns the LED-pad variant of a switch footprint
func LEDFootprint(footprint string) string {
	return strings.ReplaceAll(footprint, NoLEDSuffix, "")
}

func trimEOL(line string) string {
	return strings.TrimRight(line, "\r\n")
}
