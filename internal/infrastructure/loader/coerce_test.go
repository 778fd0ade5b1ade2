package loader

import (
	"testing"
	"time"
)

func TestParseDateDayFirst(t *testing.T) {
	t.Parallel()

	parsed := ParseDate("05/03/2024", true)
	if parsed == nil {
		t.Fatal("expected a parsed date")
	}
	want := time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC)
	if !parsed.Equal(want) {
		t.Fatalf("day-first parse = %v, want %v", parsed, want)
	}

	monthFirst := ParseDate("05/03/2024", false)
	if monthFirst == nil || !monthFirst.Equal(time.Date(2024, time.May, 3, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("month-first parse = %v", monthFirst)
	}
}

func TestParseDateISOAndGarbage(t *testing.T) {
	t.Parallel()

	if parsed := ParseDate("2024-03-05", true); parsed == nil || parsed.Day() != 5 {
		t.Fatalf("ISO parse failed: %v", parsed)
	}
	if parsed := ParseDate("not a date", true); parsed != nil {
		t.Fatalf("garbage should coerce to nil, got %v", parsed)
	}
	if parsed := ParseDate("", true); parsed != nil {
		t.Fatalf("empty should coerce to nil, got %v", parsed)
	}
}

func TestParseClock(t *testing.T) {
	t.Parallel()

	offset, ok := ParseClock("13:45:30")
	if !ok {
		t.Fatal("expected parse success")
	}
	want := 13*time.Hour + 45*time.Minute + 30*time.Second
	if offset != want {
		t.Fatalf("offset = %v, want %v", offset, want)
	}

	if _, ok := ParseClock("25:99"); ok {
		t.Fatal("invalid clock should not parse")
	}
}

func TestParseFloat(t *testing.T) {
	t.Parallel()

	if got := ParseFloat("48.85"); got == nil || *got != 48.85 {
		t.Fatalf("ParseFloat = %v", got)
	}
	if got := ParseFloat("n/a"); got != nil {
		t.Fatalf("unparseable float should coerce to nil, got %v", got)
	}
}
