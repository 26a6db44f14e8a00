package annotate

import (
	"strings"

	"github.com/OpenTraceLab/kbpost/pkg/kicad/pcb"
	"github.com/OpenTraceLab/kbpost/pkg/refname"
)

// RewriteBoard renames references in net declarations and fp_text reference
// lines. It returns the new lines and how many of them changed; the line
// count never changes.
//
// Each matching line mentions exactly one reference, so only its first
// occurrence is replaced.
func RewriteBoard(lines []string, names *refname.Map) ([]string, int) {
	out := make([]string, len(lines))
	changed := 0
	for i, l := range lines {
		ref, ok := pcb.MatchLine(l)
		if !ok {
			out[i] = l
			continue
		}
		out[i] = strings.Replace(l, ref, names.Rename(ref), 1)
		changed++
	}
	return out, changed
}
