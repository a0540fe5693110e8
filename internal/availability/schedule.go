package availability

import (
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// TimeRange is one open window within a day, bounds as wall-clock "HH:MM"
// (an optional seconds component is tolerated). A range whose end is
// numerically earlier than its start crosses midnight into the next day.
// A range with an unparsable bound is inert and yields no slots.
type TimeRange struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// WeeklySchedule maps weekday names to open windows. Keys are matched
// case-insensitively and may use either the full English weekday name or
// its three-letter abbreviation ("monday" and "Mon" address the same day).
// A missing key, an empty slice, or ranges with missing bounds all mean
// "closed that day".
type WeeklySchedule map[string][]TimeRange

// BreakDate marks a calendar date, or an inclusive date range, on which the
// provider is fully closed regardless of the weekly schedule.
type BreakDate struct {
	Date    string `json:"date"`               // "2006-01-02"
	EndDate string `json:"end_date,omitempty"` // optional inclusive range end
}

// Covers reports whether the break applies to the given calendar date.
// Matching is by calendar-date equality, not weekday. An unparsable break
// date never matches.
func (b BreakDate) Covers(date time.Time) bool {
	start, err := time.ParseInLocation(dateLayout, strings.TrimSpace(b.Date), date.Location())
	if err != nil {
		return false
	}

	day := startOfDay(date)
	if b.EndDate == "" {
		return day.Equal(start)
	}

	end, err := time.ParseInLocation(dateLayout, strings.TrimSpace(b.EndDate), date.Location())
	if err != nil {
		return day.Equal(start)
	}
	return !day.Before(start) && !day.After(end)
}

// windowsFor returns the raw open windows for the target date's weekday.
// Breaks take precedence over the recurring schedule: a date covered by any
// break resolves to no windows before the weekday is even looked up.
// A date with no matching schedule entry is a normal empty result.
//
// When a schedule carries both spellings of the same day, the full name wins
// over the abbreviation, and case variants tie-break on the raw key. The
// lookup must not depend on map iteration order: identical inputs have to
// resolve to identical windows on every call.
func windowsFor(date time.Time, schedule WeeklySchedule, breaks []BreakDate) []TimeRange {
	for _, b := range breaks {
		if b.Covers(date) {
			return nil
		}
	}

	full := strings.ToLower(date.Weekday().String())

	for _, want := range []string{full, full[:3]} {
		match := ""
		found := false
		for key := range schedule {
			if strings.ToLower(strings.TrimSpace(key)) != want {
				continue
			}
			if !found || key < match {
				match = key
				found = true
			}
		}
		if found {
			return schedule[match]
		}
	}
	return nil
}

// startOfDay truncates t to midnight in its own location.
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// sameDay reports whether a and b fall on the same calendar date.
func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
