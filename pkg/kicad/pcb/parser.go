package pcb

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/OpenTraceLab/kbpost/pkg/kicad/sexp/kicadsexp"
	"github.com/OpenTraceLab/kbpost/pkg/refname"
)

// ErrUnannotated is returned when a board still carries generated references
// without an annotation suffix
var ErrUnannotated = errors.New("unannotated references")

// ParseFile reads and parses a KiCad board file
func ParseFile(filename string) (*Board, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return Parse(file)
}

// Parse reads a KiCad board from r. Both the KiCad 5 (module/fp_text) and
// KiCad 6+ (footprint/property) layouts are understood.
func Parse(r io.Reader) (*Board, error) {
	sexps, err := kicadsexp.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse s-expression: %w", err)
	}
	if len(sexps) == 0 {
		return nil, fmt.Errorf("empty file or no valid s-expressions found")
	}

	root, ok := sexps[0].(*kicadsexp.List)
	if !ok || root.Name() != "kicad_pcb" {
		return nil, fmt.Errorf("not a KiCad PCB file: expected 'kicad_pcb', got %q", sexps[0].String())
	}

	board := &Board{}
	if v, ok := root.Child("version"); ok {
		s, _ := v.AtomAt(1)
		board.Version, err = strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Errorf("failed to parse version %q: %w", s, err)
		}
	}
	if g, ok := root.Child("generator"); ok {
		board.Generator, _ = g.AtomAt(1)
	} else if h, ok := root.Child("host"); ok {
		board.Generator, _ = h.AtomAt(1)
	}

	board.Nets, err = parseNets(root)
	if err != nil {
		return nil, fmt.Errorf("failed to parse nets: %w", err)
	}
	board.Footprints = parseFootprints(root)

	return board, nil
}

// parseNets reads the top-level (net <number> "<name>") declarations
func parseNets(root *kicadsexp.List) ([]Net, error) {
	var nets []Net
	for _, n := range root.Children("net") {
		s, _ := n.AtomAt(1)
		number, err := strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Errorf("line %d: bad net number %q", n.Line(), s)
		}
		// net 0 has an empty name
		name, _ := n.AtomAt(2)
		nets = append(nets, Net{Number: number, Name: name, Line: n.Line()})
	}
	return nets, nil
}

func parseFootprints(root *kicadsexp.List) []Footprint {
	var fps []Footprint
	for _, item := range root.Items {
		node, ok := item.(*kicadsexp.List)
		if !ok || (node.Name() != "module" && node.Name() != "footprint") {
			continue
		}

		fp := Footprint{Line: node.Line()}
		id, _ := node.AtomAt(1)
		if lib, name, found := strings.Cut(id, ":"); found {
			fp.Library, fp.Name = lib, name
		} else {
			fp.Name = id
		}

		if ref, line, ok := footprintReference(node); ok {
			fp.Reference, fp.Line = ref, line
		}
		fps = append(fps, fp)
	}
	return fps
}

// footprintReference finds (fp_text reference X ...) or (property "Reference" "X" ...)
func footprintReference(node *kicadsexp.List) (string, int, bool) {
	for _, t := range node.Children("fp_text") {
		if kind, _ := t.AtomAt(1); kind == "reference" {
			ref, ok := t.AtomAt(2)
			return ref, t.Line(), ok
		}
	}
	for _, p := range node.Children("property") {
		if key, _ := p.AtomAt(1); key == "Reference" {
			ref, ok := p.AtomAt(2)
			return ref, p.Line(), ok
		}
	}
	return "", 0, false
}

// Unannotated lists generated references the annotator would renumber, in
// file order: footprints first, then nets
func (b *Board) Unannotated() []Unannotated {
	var out []Unannotated
	for _, fp := range b.Footprints {
		if refname.IsGenerated(fp.Reference) && !refname.IsAnnotated(fp.Reference) {
			out = append(out, Unannotated{Reference: fp.Reference, Line: fp.Line, Source: "footprint"})
		}
	}
	for _, n := range b.Nets {
		if ref, ok := NetReference(n.Name); ok && !refname.IsAnnotated(ref) {
			out = append(out, Unannotated{Reference: ref, Line: n.Line, Source: "net"})
		}
	}
	return out
}

// References returns every footprint reference on the board
func (b *Board) References() []string {
	refs := make([]string, 0, len(b.Footprints))
	for _, fp := range b.Footprints {
		if fp.Reference != "" {
			refs = append(refs, fp.Reference)
		}
	}
	return refs
}
