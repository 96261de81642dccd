package constants

import (
	"testing"
	"time"
)

func TestDayFromWeekday(t *testing.T) {
	cases := map[time.Weekday]DayOfWeek{
		time.Sunday:    Dimanche,
		time.Monday:    Lundi,
		time.Tuesday:   Mardi,
		time.Wednesday: Mercredi,
		time.Thursday:  Jeudi,
		time.Friday:    Vendredi,
		time.Saturday:  Samedi,
	}
	for w, expect := range cases {
		if got := DayFromWeekday(w); got != expect {
			t.Fatalf("weekday %v: expected %s, got %s", w, expect, got)
		}
	}
}

func TestParseDayOfWeek(t *testing.T) {
	for _, in := range []string{"lundi", "LUNDI", " Lundi "} {
		d, err := ParseDayOfWeek(in)
		if err != nil {
			t.Fatalf("expected %q to parse: %v", in, err)
		}
		if d != Lundi {
			t.Fatalf("expected lundi, got %s", d)
		}
	}
	for _, in := range []string{"monday", "", "dimanchee"} {
		if _, err := ParseDayOfWeek(in); err == nil {
			t.Fatalf("expected %q to be rejected", in)
		}
	}
}

func TestParisLocation(t *testing.T) {
	loc := ParisLocation()
	if loc == nil {
		t.Fatal("expected a location")
	}
	// un lundi 14:00 UTC en hiver doit donner 15:00 à Paris
	utc := time.Date(2025, time.January, 6, 14, 0, 0, 0, time.UTC)
	paris := utc.In(loc)
	if paris.Hour() != 15 {
		t.Fatalf("expected 15h in Paris, got %dh", paris.Hour())
	}
	if DayFromWeekday(paris.Weekday()) != Lundi {
		t.Fatalf("expected lundi, got %s", DayFromWeekday(paris.Weekday()))
	}
}
