package pcb

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const kicad5Board = `(kicad_pcb (version 20171130) (host pcbnew 5.1.5)
  (net 0 "")
  (net 1 "Net-(D_A1-Pad2)")
  (net 2 "Net-(K_A1_0-Pad1)")
  (net 3 row0)
  (net_class Default "This is the default net class."
    (add_net "Net-(D_A1-Pad2)")
  )
  (module MX_Alps_Hybrid:MX-1.0U-NoLED (layer F.Cu) (tedit 5A9F3A9A) (tstamp 5E751ADB)
    (at 100 100)
    (fp_text reference K_A1_0 (at 0 3.175) (layer Dwgs.User)
      (effects (font (size 1 1) (thickness 0.15)))
    )
    (fp_text value KEYSW (at 0 -7.9375) (layer Dwgs.User))
    (pad 1 thru_hole circle (at -3.81 -2.54) (size 2.25 2.25) (drill 1.47) (layers *.Cu B.Mask) (net 2 "Net-(K_A1_0-Pad1)"))
  )
  (module Diode_SMD:D_SOD-123 (layer B.Cu) (tedit 58645DC7) (tstamp 5E751AE0)
    (at 100 110 90)
    (fp_text reference D_A1 (at 0 -2) (layer B.SilkS) hide
      (effects (font (size 1 1) (thickness 0.15)) (justify mirror))
    )
  )
)
`

const kicad6Board = `(kicad_pcb (version 20221018) (generator pcbnew)
  (net 0 "")
  (net 1 "Net-(K_B2_0-Pad1)")
  (footprint "MX_Alps_Hybrid:MX-1.0U" (layer "F.Cu")
    (at 120 100)
    (property "Reference" "K_B2_0" (at 0 3.175 0) (layer "Dwgs.User"))
    (property "Value" "KEYSW" (at 0 -7.9 0) (layer "Dwgs.User"))
  )
)
`

func TestParseKiCad5(t *testing.T) {
	board, err := Parse(strings.NewReader(kicad5Board))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if board.Version != 20171130 {
		t.Errorf("Version = %d", board.Version)
	}
	if board.Generator != "pcbnew" {
		t.Errorf("Generator = %q", board.Generator)
	}
	if len(board.Nets) != 4 {
		t.Fatalf("got %d nets, want 4", len(board.Nets))
	}
	if n := board.GetNet("row0"); n == nil || n.Number != 3 || n.Line != 5 {
		t.Errorf("GetNet(row0) = %+v", n)
	}

	want := []Footprint{
		{Library: "MX_Alps_Hybrid", Name: "MX-1.0U-NoLED", Reference: "K_A1_0", Line: 11},
		{Library: "Diode_SMD", Name: "D_SOD-123", Reference: "D_A1", Line: 19},
	}
	if diff := cmp.Diff(want, board.Footprints); diff != "" {
		t.Errorf("Footprints mismatch (-want +got):\n%s", diff)
	}

	if fp := board.GetFootprint("D_A1"); fp == nil || fp.Library != "Diode_SMD" {
		t.Errorf("GetFootprint(D_A1) = %+v", fp)
	}
	if diff := cmp.Diff([]string{"K_A1_0", "D_A1"}, board.References()); diff != "" {
		t.Errorf("References mismatch (-want +got):\n%s", diff)
	}
}

func TestParseKiCad6(t *testing.T) {
	board, err := Parse(strings.NewReader(kicad6Board))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if board.Generator != "pcbnew" || board.Version != 20221018 {
		t.Errorf("header = %d %q", board.Version, board.Generator)
	}
	want := []Footprint{{Library: "MX_Alps_Hybrid", Name: "MX-1.0U", Reference: "K_B2_0", Line: 6}}
	if diff := cmp.Diff(want, board.Footprints); diff != "" {
		t.Errorf("Footprints mismatch (-want +got):\n%s", diff)
	}
	if u := board.Unannotated(); len(u) != 0 {
		t.Errorf("Unannotated() = %+v, want none", u)
	}
}

func TestUnannotated(t *testing.T) {
	board, err := Parse(strings.NewReader(kicad5Board))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := []Unannotated{
		{Reference: "D_A1", Line: 19, Source: "footprint"},
		{Reference: "D_A1", Line: 3, Source: "net"},
	}
	if diff := cmp.Diff(want, board.Unannotated()); diff != "" {
		t.Errorf("Unannotated mismatch (-want +got):\n%s", diff)
	}
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"wrong root", "(kicad_sch (version 1))"},
		{"unbalanced", "(kicad_pcb (version 1)"},
		{"bad version", "(kicad_pcb (version abc))"},
		{"bad net", "(kicad_pcb (net x \"GND\"))"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse(strings.NewReader(tt.input)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestMatchLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		want string
		ok   bool
	}{
		{"net", `  (net 3 "Net-(K_B2-Pad1)")`, "K_B2", true},
		{"add_net", `    (add_net "Net-(D_A1-Pad2)")` + "\r\n", "D_A1", true},
		{"reference", `    (fp_text reference K_A1 (at 0 3.175) (layer Dwgs.User)`, "K_A1", true},
		{"reference with angle", `    (fp_text reference D_↑ (at 0 -2 90) (layer B.SilkS) hide`, "D_↑", true},
		{"space reference", `    (fp_text reference "K_ " (at 0 3.175) (layer Dwgs.User)`, "", false},
		{"pad net", `    (pad 1 thru_hole circle (at -3.81 -2.54) (net 3 "Net-(K_B2-Pad1)"))`, "", false},
		{"value", `    (fp_text value KEYSW (at 0 -7.9375) (layer Dwgs.User))`, "", false},
		{"other net", `  (net 4 "Net-(U1-Pad1)")`, "", false},
		{"plain net", `  (net 5 row0)`, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := MatchLine(tt.line)
			if ok != tt.ok || got != tt.want {
				t.Errorf("MatchLine(%q) = %q, %v; want %q, %v", tt.line, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestNetReference(t *testing.T) {
	if ref, ok := NetReference("Net-(K_B2-Pad1)"); !ok || ref != "K_B2" {
		t.Errorf("got %q, %v", ref, ok)
	}
	if _, ok := NetReference("GND"); ok {
		t.Error("GND should not match")
	}
}
