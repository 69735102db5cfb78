package util

import (
	"testing"
	"time"
)

func TestParseDecimalComma(t *testing.T) {
	v, ok := ParseDecimal("100,50")
	if !ok {
		t.Fatalf("expected ok")
	}
	if v != 100.50 {
		t.Fatalf("unexpected value %v", v)
	}
}

func TestParseDecimalInvalid(t *testing.T) {
	for _, s := range []string{"", "abc", "1,2,3", "NaN"} {
		if _, ok := ParseDecimal(s); ok {
			t.Fatalf("expected failure for %q", s)
		}
	}
}

func TestParsePositiveDecimal(t *testing.T) {
	if _, ok := ParsePositiveDecimal("0"); ok {
		t.Fatalf("zero must not parse")
	}
	if _, ok := ParsePositiveDecimal("-1,5"); ok {
		t.Fatalf("negative must not parse")
	}
	v, ok := ParsePositiveDecimal(" 2,25 ")
	if !ok || v != 2.25 {
		t.Fatalf("unexpected %v %v", v, ok)
	}
}

func TestParsePositiveInt(t *testing.T) {
	v, ok := ParsePositiveInt("3,0")
	if !ok || v != 3 {
		t.Fatalf("unexpected %v %v", v, ok)
	}
	if _, ok := ParsePositiveInt("2,5"); ok {
		t.Fatalf("fractional leverage must not parse")
	}
	if _, ok := ParsePositiveInt("0"); ok {
		t.Fatalf("zero must not parse")
	}
}

func TestStamps(t *testing.T) {
	ts := time.Date(2025, 3, 9, 14, 7, 5, 0, time.UTC)
	if got := DateStamp(ts); got != "2025-03-09" {
		t.Fatalf("unexpected date %q", got)
	}
	if got := TimeStamp(ts); got != "14:07" {
		t.Fatalf("unexpected time %q", got)
	}
	if got := ClockStamp(ts); got != "14:07:05" {
		t.Fatalf("unexpected clock %q", got)
	}
}
