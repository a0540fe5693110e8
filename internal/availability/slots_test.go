package availability

import "testing"

func TestParseClock(t *testing.T) {
	tests := []struct {
		in   string
		want int
		ok   bool
	}{
		{"09:00", 540, true},
		{"9:05", 545, true},
		{"00:00", 0, true},
		{"23:59", 1439, true},
		{"18:00:00", 1080, true},
		{" 10:30 ", 630, true},
		{"24:00", 0, false},
		{"12:60", 0, false},
		{"12", 0, false},
		{"", 0, false},
		{"ab:cd", 0, false},
	}

	for _, tt := range tests {
		got, ok := parseClock(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("parseClock(%q) = (%d, %v), want (%d, %v)", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestFormatClock(t *testing.T) {
	tests := []struct {
		minutes int
		want    string
	}{
		{0, "12:00 AM"},
		{540, "09:00 AM"},
		{720, "12:00 PM"},
		{750, "12:30 PM"},
		{1439, "11:59 PM"},
		{1440, "12:00 AM"}, // rolled past midnight
		{1500, "01:00 AM"},
	}

	for _, tt := range tests {
		if got := formatClock(tt.minutes); got != tt.want {
			t.Errorf("formatClock(%d) = %q, want %q", tt.minutes, got, tt.want)
		}
	}
}
