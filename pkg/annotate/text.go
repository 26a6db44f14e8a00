package annotate

import "strings"

// SplitLines splits s into lines that keep their terminators, so joining
// them reproduces s exactly
func SplitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.SplitAfter(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// JoinLines is the inverse of SplitLines
func JoinLines(lines []string) string {
	return strings.Join(lines, "")
}

// lineEnding returns the terminator of line, "\r\n", "\n" or ""
func lineEnding(line string) string {
	switch {
	case strings.HasSuffix(line, "\r\n"):
		return "\r\n"
	case strings.HasSuffix(line, "\n"):
		return "\n"
	}
	return ""
}

// replaceTail replaces old at the end of line's content, keeping the terminator
func replaceTail(line, old, repl string) string {
	eol := lineEnding(line)
	content := strings.TrimSuffix(line, eol)
	if !strings.HasSuffix(content, old) {
		return line
	}
	return strings.TrimSuffix(content, old) + repl + eol
}

// replaceQuoted replaces the first "old" with "repl", quotes included
func replaceQuoted(line, old, repl string) string {
	return strings.Replace(line, `"`+old+`"`, `"`+repl+`"`, 1)
}
