// Package magnitude parses and formats human-entered magnitude strings
// such as "10G" or "2.5T".
package magnitude

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var valuePattern = regexp.MustCompile(`^(\d+(\.\d+)?)([KMGTP])?$`)

var multipliers = map[string]float64{
	"":  1,
	"K": 1e3,
	"M": 1e6,
	"G": 1e9,
	"T": 1e12,
	"P": 1e15,
}

// units ordered largest first for formatting.
var units = []struct {
	value  float64
	symbol string
}{
	{1e15, "P"},
	{1e12, "T"},
	{1e9, "G"},
	{1e6, "M"},
	{1e3, "K"},
}

// FormatError reports a magnitude string that could not be parsed.
type FormatError struct {
	Input string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("bad value %q (use a number or K/M/G/T/P suffix, e.g. 5G, 120M)", e.Input)
}

// Parse converts a human-entered magnitude string into an integer.
// Thousands separators and whitespace are stripped, the K/M/G/T/P suffixes
// are powers of 10 (1e3..1e15) and case-insensitive. Empty input and "n/a"
// parse as zero. The result is rounded to the nearest integer.
func Parse(raw string) (int64, error) {
	s := strings.TrimSpace(raw)
	if s == "" || strings.EqualFold(s, "n/a") {
		return 0, nil
	}

	s = strings.ReplaceAll(s, ",", "")
	s = strings.Join(strings.Fields(s), "")

	m := valuePattern.FindStringSubmatch(strings.ToUpper(s))
	if m == nil {
		return 0, &FormatError{Input: raw}
	}

	num, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, &FormatError{Input: raw}
	}

	return int64(math.Round(num * multipliers[m[3]])), nil
}

// Format renders an integer back into a compact magnitude string.
// Non-positive values collapse to "0"; values below 1000 render as plain
// integers. Otherwise the largest unit not exceeding the value is chosen,
// with 0, 1 or 2 decimals depending on magnitude and trailing zeros trimmed.
// Formatting is for display and is lossy by design.
func Format(n int64) string {
	if n <= 0 {
		return "0"
	}

	f := float64(n)
	for _, u := range units {
		if f < u.value {
			continue
		}
		x := f / u.value
		var s string
		switch {
		case x >= 100:
			s = strconv.FormatFloat(x, 'f', 0, 64)
		case x >= 10:
			s = strconv.FormatFloat(x, 'f', 1, 64)
		default:
			s = strconv.FormatFloat(x, 'f', 2, 64)
		}
		if strings.Contains(s, ".") {
			s = strings.TrimRight(s, "0")
			s = strings.TrimSuffix(s, ".")
		}
		return s + u.symbol
	}

	return strconv.FormatInt(n, 10)
}
