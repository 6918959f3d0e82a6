// Package testutil provides helpers for testing popups and rendered views.
package testutil

import (
	"regexp"
	"strings"
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// StripANSI removes SGR escape codes so rendered output can be compared.
func StripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

// AssertContains returns a failure message if output doesn't contain substr,
// or "" if it does.
func AssertContains(output, substr string) string {
	if !strings.Contains(StripANSI(output), substr) {
		return "expected output to contain " + substr
	}
	return ""
}

// AssertNotContains returns a failure message if output contains substr.
func AssertNotContains(output, substr string) string {
	if strings.Contains(StripANSI(output), substr) {
		return "expected output not to contain " + substr
	}
	return ""
}
