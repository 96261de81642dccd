package dbtime

import (
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	cases := map[string]struct {
		hhmm    string
		minutes int
	}{
		"14:00":    {"14:00", 840},
		"14:00:00": {"14:00", 840},
		"09:05:30": {"09:05", 545},
		" 23:59 ":  {"23:59", 1439},
		"00:00":    {"00:00", 0},
	}
	for in, expect := range cases {
		tod, err := Parse(in)
		if err != nil {
			t.Fatalf("Parse(%q): %v", in, err)
		}
		if tod.HHMM() != expect.hhmm {
			t.Fatalf("Parse(%q): expected %s, got %s", in, expect.hhmm, tod.HHMM())
		}
		if tod.MinutesOfDay() != expect.minutes {
			t.Fatalf("Parse(%q): expected %d minutes, got %d", in, expect.minutes, tod.MinutesOfDay())
		}
	}

	for _, in := range []string{"25:00", "14h00", "", "14:60"} {
		if _, err := Parse(in); err == nil {
			t.Fatalf("expected Parse(%q) to fail", in)
		}
	}
}

func TestScanAndValue(t *testing.T) {
	var tod Tod
	if err := tod.Scan("16:30:00"); err != nil {
		t.Fatalf("Scan string: %v", err)
	}
	v, err := tod.Value()
	if err != nil {
		t.Fatalf("Value: %v", err)
	}
	if v != "16:30:00" {
		t.Fatalf("expected 16:30:00, got %v", v)
	}

	if err := tod.Scan([]byte("08:15")); err != nil {
		t.Fatalf("Scan bytes: %v", err)
	}
	if tod.HHMM() != "08:15" {
		t.Fatalf("expected 08:15, got %s", tod.HHMM())
	}

	if err := tod.Scan(time.Date(2025, 1, 6, 11, 45, 0, 0, time.UTC)); err != nil {
		t.Fatalf("Scan time: %v", err)
	}
	if tod.MinutesOfDay() != 11*60+45 {
		t.Fatalf("expected 705 minutes, got %d", tod.MinutesOfDay())
	}

	if err := tod.Scan(42); err == nil {
		t.Fatal("expected Scan(int) to fail")
	}
}

func TestJSONRoundTrip(t *testing.T) {
	tod, err := Parse("14:00")
	if err != nil {
		t.Fatal(err)
	}
	b, err := tod.MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != `"14:00:00"` {
		t.Fatalf("expected \"14:00:00\", got %s", b)
	}

	var back Tod
	if err := back.UnmarshalJSON(b); err != nil {
		t.Fatal(err)
	}
	if back.HHMM() != "14:00" {
		t.Fatalf("expected 14:00, got %s", back.HHMM())
	}
}
