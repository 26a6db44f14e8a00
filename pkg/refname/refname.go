// Package refname derives the annotated reference names written back into
// kbpcb schematics and boards.
//
// kbpcb emits references such as "K_A1" or "D_↑" that KiCad's annotator
// considers unannotated. Appending a numeric suffix makes the annotator treat
// them as final, so the generated layout survives re-annotation.
package refname

import (
	"regexp"
	"strings"
)

// Suffix is appended to every generated reference
const Suffix = "_0"

// spaceTag replaces the trailing space of the space-bar switch
const spaceTag = "SPC"

// glyphs maps the arrow characters kbpcb uses for cursor keys to ASCII words
var glyphs = strings.NewReplacer(
	"↑", "UP",
	"↓", "DOWN",
	"←", "LEFT",
	"→", "RIGHT",
)

var generatedRe = regexp.MustCompile(`^(?:K|D)_`)

// annotatedRe matches a reference that already carries a numeric suffix
var annotatedRe = regexp.MustCompile(`_\d+$`)

// New returns the annotated form of a kbpcb reference.
//
// The space bar is generated as "K_ " (or "K_" once KiCad has stripped the
// space); both become "K_SPC_0".
func New(name string) string {
	base := strings.TrimRight(name, " ")

	var b strings.Builder
	b.Grow(len(base) + len(spaceTag) + len(Suffix))
	b.WriteString(base)
	if base != name || strings.HasSuffix(base, "_") {
		b.WriteString(spaceTag)
	}
	b.WriteString(Suffix)

	return ASCII(b.String())
}

// ASCII replaces arrow glyphs with their spelled-out names
func ASCII(s string) string {
	return glyphs.Replace(s)
}

// IsGenerated reports whether ref looks like a kbpcb key switch or diode reference
func IsGenerated(ref string) bool {
	return generatedRe.MatchString(ref)
}

// IsAnnotated reports whether ref ends in a numeric suffix that the
// annotator leaves untouched
func IsAnnotated(ref string) bool {
	return annotatedRe.MatchString(ref)
}
