package annotate

import (
	"errors"
	"strings"
	"testing"

	"github.com/OpenTraceLab/kbpost/pkg/kicad/legacy"
	"github.com/OpenTraceLab/kbpost/pkg/refname"
	"github.com/google/go-cmp/cmp"
)

const oneSwitch = `EESchema Schematic File Version 4
$Comp
L keyboard_parts:KEYSW K_A1
U 1 1 5E751ADB
P 1000 1000
F 0 "K_A1" H 1000 1131 60  0000 C CNN
F 1 "KEYSW" H 1000 850 60  0001 C CNN
F 2 "MX_Alps_Hybrid:MX-1.0U-NoLED" H 1000 1000 60  0001 C CNN
F 3 "" H 1000 1000 60  0000 C CNN
	1    1000 1000
	1    0    0    -1
$EndComp
$EndSCHEMATC
`

func rewrite(t *testing.T, sch string, opts Options) (*SchematicResult, *refname.Map) {
	t.Helper()
	names := refname.NewMap()
	res, err := RewriteSchematic(SplitLines(sch), opts, names)
	if err != nil {
		t.Fatalf("RewriteSchematic: %v", err)
	}
	return res, names
}

func TestRewriteSchematicPlain(t *testing.T) {
	res, names := rewrite(t, oneSwitch, Options{})

	want := strings.NewReplacer(
		"KEYSW K_A1\n", "KEYSW K_A1_0\n",
		`"K_A1"`, `"K_A1_0"`,
	).Replace(oneSwitch)
	if diff := cmp.Diff(want, JoinLines(res.Lines)); diff != "" {
		t.Errorf("schematic mismatch (-want +got):\n%s", diff)
	}
	if res.Components != 1 || res.Companions != 0 {
		t.Errorf("components = %d, companions = %d", res.Components, res.Companions)
	}
	if n, _ := names.Lookup("K_A1"); n != "K_A1_0" {
		t.Errorf("rename map K_A1 -> %q", n)
	}
	if !strings.Contains(JoinLines(res.Lines), "MX_Alps_Hybrid:MX-1.0U-NoLED") {
		t.Error("footprint should be unchanged without LED option")
	}
}

func TestRewriteSchematicLED(t *testing.T) {
	res, _ := rewrite(t, oneSwitch, Options{LED: true})
	out := JoinLines(res.Lines)

	if strings.Contains(out, "-NoLED") {
		t.Error("NoLED suffix should be stripped")
	}
	if !strings.Contains(out, `F 2 "MX_Alps_Hybrid:MX-1.0U" H 1000 1000`) {
		t.Errorf("LED footprint missing:\n%s", out)
	}
	if len(res.Lines) != len(SplitLines(oneSwitch)) {
		t.Errorf("line count changed: %d", len(res.Lines))
	}
}

func TestRewriteSchematicCompanion(t *testing.T) {
	res, _ := rewrite(t, oneSwitch, Options{LEDSymbols: true, LEDOffset: 500})

	if res.Companions != 1 {
		t.Fatalf("companions = %d, want 1", res.Companions)
	}
	if got, want := len(res.Lines), len(SplitLines(oneSwitch))+11; got != want {
		t.Fatalf("got %d lines, want %d", got, want)
	}

	comps, err := legacy.ParseComponents(res.Lines)
	if err != nil {
		t.Fatalf("output does not parse: %v", err)
	}
	if len(comps) != 2 {
		t.Fatalf("got %d components, want 2", len(comps))
	}
	for _, c := range comps {
		if c.Reference != "K_A1_0" || c.PartRef != "K_A1_0" {
			t.Errorf("component at line %d has refs %q/%q", c.Start+1, c.PartRef, c.Reference)
		}
	}

	// y + (max y + offset) = 1000 + 1000 + 500
	if comps[1].Y != 2500 || comps[1].X != 1000 {
		t.Errorf("companion at %d,%d; want 1000,2500", comps[1].X, comps[1].Y)
	}
	if comps[1].Footprint != "MX_Alps_Hybrid:MX-1.0U-NoLED" {
		t.Errorf("companion footprint = %q", comps[1].Footprint)
	}
	if comps[1].Start != comps[0].End+1 {
		t.Errorf("companion should follow its switch directly")
	}
}

func TestRewriteSchematicCompanionLEDFootprint(t *testing.T) {
	res, _ := rewrite(t, oneSwitch, Options{LED: true, LEDSymbols: true})
	comps, err := legacy.ParseComponents(res.Lines)
	if err != nil {
		t.Fatalf("output does not parse: %v", err)
	}
	if comps[1].Footprint != "MX_Alps_Hybrid:MX-1.0U" {
		t.Errorf("companion footprint = %q", comps[1].Footprint)
	}
	if comps[1].Y != 2000 {
		t.Errorf("companion Y = %d, want 2000", comps[1].Y)
	}
}

func TestRewriteSchematicMaxYAcrossBlocks(t *testing.T) {
	sch := oneSwitch + `$Comp
L Device:D D_A1
U 1 1 5E751AE0
P 1250 4000
F 0 "D_A1" V 1300 4000 50  0000 R CNN
	1    1250 4000
$EndComp
`
	res, _ := rewrite(t, sch, Options{LEDSymbols: true})
	comps, err := legacy.ParseComponents(res.Lines)
	if err != nil {
		t.Fatalf("output does not parse: %v", err)
	}
	// switch, companion, diode
	if len(comps) != 3 {
		t.Fatalf("got %d components", len(comps))
	}
	if comps[1].Y != 5000 {
		t.Errorf("companion Y = %d, want 5000", comps[1].Y)
	}
	if comps[2].Reference != "D_A1_0" {
		t.Errorf("diode reference = %q", comps[2].Reference)
	}
}

func TestRewriteSchematicNoTrailingNewline(t *testing.T) {
	sch := strings.TrimSuffix(oneSwitch, "$EndSCHEMATC\n")
	sch = strings.TrimSuffix(sch, "\n")
	res, _ := rewrite(t, sch, Options{LEDSymbols: true})
	out := JoinLines(res.Lines)
	if !strings.Contains(out, "$EndComp\n$Comp\n") {
		t.Error("companion should start on its own line")
	}
	if !strings.HasSuffix(out, "\t0    -1    -1    0\n$EndComp") {
		t.Errorf("output should still end without a newline: %q", out[len(out)-30:])
	}
	if _, err := legacy.ParseComponents(res.Lines); err != nil {
		t.Errorf("output does not parse: %v", err)
	}
}

func TestRewriteSchematicCRLF(t *testing.T) {
	sch := strings.ReplaceAll(oneSwitch, "\n", "\r\n")
	res, _ := rewrite(t, sch, Options{LEDSymbols: true})
	for i, l := range res.Lines {
		if !strings.HasSuffix(l, "\r\n") {
			t.Errorf("line %d lost CRLF: %q", i+1, l)
		}
	}
	if !strings.Contains(JoinLines(res.Lines), "L keyboard_parts:KEYSW K_A1_0\r\n") {
		t.Error("part line not renamed")
	}
}

func TestRewriteSchematicSpaceAndArrows(t *testing.T) {
	sch := strings.NewReplacer(
		"KEYSW K_A1\n", "KEYSW K_ \n",
		`"K_A1"`, `"K_ "`,
	).Replace(oneSwitch)
	res, _ := rewrite(t, sch, Options{})
	out := JoinLines(res.Lines)
	if !strings.Contains(out, "L keyboard_parts:KEYSW K_SPC_0\n") || !strings.Contains(out, `F 0 "K_SPC_0" H`) {
		t.Errorf("space key not renamed:\n%s", out)
	}

	sch = strings.ReplaceAll(oneSwitch, "K_A1", "K_↑")
	res, _ = rewrite(t, sch, Options{})
	out = JoinLines(res.Lines)
	if !strings.Contains(out, "KEYSW K_UP_0\n") || !strings.Contains(out, `"K_UP_0"`) {
		t.Errorf("arrow key not renamed:\n%s", out)
	}
}

func TestRewriteSchematicMalformed(t *testing.T) {
	sch := strings.Replace(oneSwitch, "L keyboard_parts:KEYSW K_A1\n", "L Device:R R1\n", 1)
	_, err := RewriteSchematic(SplitLines(sch), Options{}, refname.NewMap())
	if !errors.Is(err, legacy.ErrNoPartLine) {
		t.Fatalf("err = %v, want ErrNoPartLine", err)
	}
	var be *legacy.BlockError
	if !errors.As(err, &be) || be.Line != 2 {
		t.Errorf("block error = %v", err)
	}
}

func TestRewriteSchematicLines(t *testing.T) {
	sch := oneSwitch + "L keyboard_parts:KEYSW K_B1\nF 0 \"D_B1\" H 1 2 60  0000 C CNN\n"
	res, _ := rewrite(t, sch, Options{Mode: ModeLines})
	out := JoinLines(res.Lines)

	for _, want := range []string{
		"L keyboard_parts:KEYSW K_A1_0\n",
		`F 0 "K_A1_0" H 1000 1131`,
		"L keyboard_parts:KEYSW K_B1_0\n",
		`F 0 "D_B1_0" H 1 2`,
		"MX_Alps_Hybrid:MX-1.0U-NoLED",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
	if res.Components != 2 || res.Companions != 0 {
		t.Errorf("components = %d, companions = %d", res.Components, res.Companions)
	}
	if len(res.Lines) != len(SplitLines(sch)) {
		t.Error("line mode must not change the line count")
	}
}

func TestRewriteSchematicLinesIgnoresBlockErrors(t *testing.T) {
	sch := "$Comp\nL Device:R R1\n$EndComp\n"
	res, _ := rewrite(t, sch, Options{Mode: ModeLines})
	if JoinLines(res.Lines) != sch {
		t.Error("line mode should pass unrelated blocks through")
	}
}

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		want error
	}{
		{"default", Options{}, nil},
		{"blocks with LED", Options{Mode: ModeBlocks, LED: true, LEDSymbols: true}, nil},
		{"lines", Options{Mode: ModeLines}, nil},
		{"lines with LED", Options{Mode: ModeLines, LED: true}, ErrModeConflict},
		{"lines with symbols", Options{Mode: ModeLines, LEDSymbols: true}, ErrModeConflict},
		{"unknown", Options{Mode: "tree"}, ErrUnknownMode},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate()
			if !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}
