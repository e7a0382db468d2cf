// Package format renders collector values for display.
package format

import (
	"fmt"
	"strings"
)

// ElapsedTime renders seconds as HHH:MM:SS. Hours are padded to at least three
// digits and grow beyond that for long uptimes. Negative input renders as zero.
func ElapsedTime(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	hours := seconds / 3600
	seconds %= 3600
	minutes := seconds / 60
	seconds %= 60
	return fmt.Sprintf("%03d:%02d:%02d", hours, minutes, seconds)
}

// Percent renders a fraction in [0,1] as a percentage with one decimal.
func Percent(fraction float64) string {
	return fmt.Sprintf("%.1f%%", fraction*100)
}

// Command turns a raw cmdline (NUL separated) into a printable string.
func Command(raw string) string {
	return strings.TrimSpace(strings.ReplaceAll(raw, "\x00", " "))
}

// Truncate shortens s to maxLen runes, ending with "..." when it was cut.
func Truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen < 4 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}
