package timeshift

import (
	"fmt"
	"testing"
)

func TestTimeToMinutes(t *testing.T) {
	cases := []struct {
		in   string
		want int
		ok   bool
	}{
		{"00:00", 0, true},
		{"09:05", 545, true},
		{"23:59", 1439, true},
		{FreeTime, 0, false},
		{"", 0, false},
		{"9", 0, false},
		{"ab:cd", 0, false},
		{"12:34:56", 0, false},
	}
	for _, c := range cases {
		got, ok := TimeToMinutes(c.in)
		if ok != c.ok || got != c.want {
			t.Errorf("TimeToMinutes(%q) = (%d,%v), want (%d,%v)", c.in, got, ok, c.want, c.ok)
		}
	}
}

func TestMinutesToTimeWraps(t *testing.T) {
	cases := []struct {
		in   int
		want string
	}{
		{0, "00:00"},
		{545, "09:05"},
		{1439, "23:59"},
		{1440, "00:00"},
		{1500, "01:00"},
		{-30, "23:30"},
		{-1440, "00:00"},
	}
	for _, c := range cases {
		if got := MinutesToTime(c.in); got != c.want {
			t.Errorf("MinutesToTime(%d) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestMinutesRoundTrip(t *testing.T) {
	for h := 0; h < 24; h++ {
		for m := 0; m < 60; m++ {
			in := fmt.Sprintf("%02d:%02d", h, m)
			mins, ok := TimeToMinutes(in)
			if !ok {
				t.Fatalf("TimeToMinutes(%q) not ok", in)
			}
			if out := MinutesToTime(mins); out != in {
				t.Fatalf("round trip %q -> %d -> %q", in, mins, out)
			}
		}
	}
}

func TestWrapLaw(t *testing.T) {
	for _, x := range []int{-3000, -1441, -1, 0, 1, 720, 1439, 1440, 5000} {
		if MinutesToTime(x) != MinutesToTime(x+1440) {
			t.Errorf("wrap law broken at %d", x)
		}
	}
}
