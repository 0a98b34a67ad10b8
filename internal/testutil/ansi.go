// Package testutil provides shared testing utilities used across the project.
package testutil

import (
	"regexp"
	"strings"
)

// ansiRegex matches ANSI escape codes for stripping from output.
// This pattern matches the Control Sequence Introducer (CSI) sequences which generally start with ESC [
// and end with a letter, possibly with intermediate characters.
var ansiRegex = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// StripAnsiCodes removes ANSI escape codes from a string.
// This is useful for testing CLI output without color codes interfering
// with assertions.
//
// Parameters:
//   - s: The string potentially containing ANSI escape codes.
//
// Returns:
//   - string: The input string with all ANSI escape codes removed.
func StripAnsiCodes(s string) string {
	return ansiRegex.ReplaceAllString(s, "")
}

// Lines strips ANSI codes from s and splits it into lines, dropping
// surrounding whitespace and empty lines.
func Lines(s string) []string {
	var lines []string
	for _, line := range strings.Split(StripAnsiCodes(s), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
