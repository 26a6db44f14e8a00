package legacy

import "fmt"

// CompanionLib is the library symbol used for LED companions. It needs the
// two-unit KEYSW symbol from the Gigahawk fork of kicad_lib_tmk.
const CompanionLib = "keyboard_parts:KEYSW"

// CompanionTimestamp is the fixed timestamp written into companion blocks
const CompanionTimestamp = "5E751ADB"

// Companion returns the block for the second (LED) unit of a key switch,
// without line endings. The symbol is placed at (x, y) and shares ref with
// the switch it belongs to.
func Companion(ref, footprint string, x, y int) []string {
	return []string{
		StartMarker,
		fmt.Sprintf("L %s %s", CompanionLib, ref),
		fmt.Sprintf("U 2 1 %s", CompanionTimestamp),
		fmt.Sprintf("P %d %d", x, y),
		fmt.Sprintf(`F 0 "%s" H %d %d 60  0000 C CNN`, ref, x, y+131),
		fmt.Sprintf(`F 1 "KEYSW" H %d %d 60  0001 C CNN`, x, y-150),
		fmt.Sprintf(`F 2 "%s" H %d %d 60  0001 C CNN`, footprint, x, y),
		fmt.Sprintf(`F 3 "" H %d %d 60  0000 C CNN`, x, y),
		fmt.Sprintf("\t2    %d %d", x, y),
		"\t0    -1    -1    0",
		EndMarker,
	}
}
