package schedule

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// hoursPattern matches estimate strings like "4h", "90m", "4.5h"
var hoursPattern = regexp.MustCompile(`^(\d+(?:\.\d+)?)\s*(m|h)?$`)

// ParseHours parses a user-supplied effort estimate into hours.
// Supported formats: "4" (hours), "4.5", "4h", "90m".
func ParseHours(s string) (float64, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return 0, fmt.Errorf("empty estimate")
	}

	matches := hoursPattern.FindStringSubmatch(s)
	if matches == nil {
		return 0, fmt.Errorf("invalid estimate format: %s (expected: 4, 4.5h, or 90m)", s)
	}

	value, err := strconv.ParseFloat(matches[1], 64)
	if err != nil {
		return 0, fmt.Errorf("invalid estimate value: %s", matches[1])
	}

	if matches[2] == "m" {
		value /= 60
	}
	if value <= 0 {
		return 0, fmt.Errorf("estimate must be positive: %s", s)
	}
	return value, nil
}

// FormatHours renders an hour count for display, e.g. "4h" or "4.5h".
func FormatHours(h float64) string {
	if h == float64(int(h)) {
		return fmt.Sprintf("%dh", int(h))
	}
	return fmt.Sprintf("%.1fh", h)
}
