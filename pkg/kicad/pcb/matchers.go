package pcb

import (
	"regexp"
	"strings"
)

var (
	// (net 3 "Net-(K_B2-Pad1)") or (add_net "Net-(K_B2-Pad1)")
	netLineRe = regexp.MustCompile(`^\s*\((?:net \d+|add_net) "Net-\(((?:K|D)_.*)-Pad\d+\)"\)`)

	// (fp_text reference K_B2 (at 0 3.175) (layer F.SilkS) ...
	refLineRe = regexp.MustCompile(`^\s*\(fp_text reference ((?:K|D)_.*) \(at [0-9.\-]+ [0-9.\-]+\s*[0-9.\-]*\) \(layer [A-Z].*\)`)

	// Net-(K_B2-Pad1)
	netNameRe = regexp.MustCompile(`^Net-\(((?:K|D)_.*)-Pad\d+\)$`)
)

// MatchNetLine returns the component reference embedded in a net
// declaration line
func MatchNetLine(line string) (string, bool) {
	return submatch(netLineRe, line)
}

// MatchReferenceLine returns the reference declared by an fp_text reference line
func MatchReferenceLine(line string) (string, bool) {
	return submatch(refLineRe, line)
}

// MatchLine tries the net shape first, then the reference shape
func MatchLine(line string) (string, bool) {
	if ref, ok := MatchNetLine(line); ok {
		return ref, true
	}
	return MatchReferenceLine(line)
}

// NetReference returns the component reference embedded in a pad net name
func NetReference(name string) (string, bool) {
	m := netNameRe.FindStringSubmatch(name)
	if m == nil {
		return "", false
	}
	return m[1], true
}

func submatch(re *regexp.Regexp, line string) (string, bool) {
	m := re.FindStringSubmatch(strings.TrimRight(line, "\r\n"))
	if m == nil {
		return "", false
	}
	return m[1], true
}
