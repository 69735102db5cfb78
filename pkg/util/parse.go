package util

import (
	"math"
	"strconv"
	"strings"
)

// ParseDecimal parses a decimal string accepting a comma as the decimal
// separator ("100,50" -> 100.50). Returns (v, true) only for finite values.
func ParseDecimal(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	s = strings.ReplaceAll(s, ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// ParsePositiveDecimal parses a strictly positive decimal, comma-tolerant.
func ParsePositiveDecimal(s string) (float64, bool) {
	v, ok := ParseDecimal(s)
	if !ok || v <= 0 {
		return 0, false
	}
	return v, true
}

// ParsePositiveInt parses a strictly positive integer, tolerating a decimal
// point followed only by zeros ("3,0" -> 3).
func ParsePositiveInt(s string) (int, bool) {
	v, ok := ParseDecimal(s)
	if !ok || v <= 0 {
		return 0, false
	}
	i := int(v)
	if float64(i) != v {
		return 0, false
	}
	return i, true
}
