package availability_test

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/mockeefy-byte/mockeefy-sub000/internal/availability"
)

// monday is a fixed Monday used across tests: 2026-03-02.
var monday = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

// farClock returns a clock pinned well before any test date, so "today"
// past-slot exclusion never kicks in unless a test opts in explicitly.
func farClock() func() time.Time {
	return func() time.Time {
		return time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	}
}

func newResolver(opts ...availability.Option) *availability.Resolver {
	return availability.New(append([]availability.Option{availability.WithClock(farClock())}, opts...)...)
}

func bookingAt(day time.Time, startHour, startMin, endHour, endMin int, status string) availability.Booking {
	start := time.Date(day.Year(), day.Month(), day.Day(), startHour, startMin, 0, 0, time.UTC)
	end := time.Date(day.Year(), day.Month(), day.Day(), endHour, endMin, 0, 0, time.UTC)
	return availability.Booking{
		StartTime: start.Format(time.RFC3339),
		EndTime:   end.Format(time.RFC3339),
		Status:    status,
	}
}

func labels(slots []availability.Slot) []string {
	out := make([]string, len(slots))
	for i, s := range slots {
		out[i] = s.Label
	}
	return out
}

func TestResolveMorningWindow(t *testing.T) {
	schedule := availability.WeeklySchedule{
		"monday": {{From: "09:00", To: "11:00"}},
	}

	slots, err := newResolver().Resolve(monday, schedule, nil, nil, 30)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	want := []string{
		"09:00 AM - 09:30 AM",
		"09:30 AM - 10:00 AM",
		"10:00 AM - 10:30 AM",
		"10:30 AM - 11:00 AM",
	}
	if got := labels(slots); !reflect.DeepEqual(got, want) {
		t.Errorf("labels = %v, want %v", got, want)
	}
	for _, s := range slots {
		if !s.Available {
			t.Errorf("slot %s should be available", s.Label)
		}
	}
}

func TestResolveMarksBookedSlotUnavailable(t *testing.T) {
	schedule := availability.WeeklySchedule{
		"monday": {{From: "09:00", To: "11:00"}},
	}
	bookings := []availability.Booking{
		bookingAt(monday, 9, 30, 10, 0, "confirmed"),
	}

	slots, err := newResolver().Resolve(monday, schedule, nil, bookings, 30)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if len(slots) != 4 {
		t.Fatalf("got %d slots, want 4", len(slots))
	}

	for _, s := range slots {
		wantAvailable := s.Label != "09:30 AM - 10:00 AM"
		if s.Available != wantAvailable {
			t.Errorf("slot %s: available = %v, want %v", s.Label, s.Available, wantAvailable)
		}
	}
}

func TestResolveBreakDatePrecedence(t *testing.T) {
	schedule := availability.WeeklySchedule{
		"monday": {{From: "09:00", To: "11:00"}},
	}

	tests := []struct {
		name   string
		breaks []availability.BreakDate
		empty  bool
	}{
		{"single break date", []availability.BreakDate{{Date: "2026-03-02"}}, true},
		{"range covering date", []availability.BreakDate{{Date: "2026-02-28", EndDate: "2026-03-04"}}, true},
		{"range before date", []availability.BreakDate{{Date: "2026-02-20", EndDate: "2026-02-25"}}, false},
		{"other date", []availability.BreakDate{{Date: "2026-03-09"}}, false},
		{"unparsable break is inert", []availability.BreakDate{{Date: "not-a-date"}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slots, err := newResolver().Resolve(monday, schedule, tt.breaks, nil, 30)
			if err != nil {
				t.Fatalf("Resolve() error = %v", err)
			}
			if tt.empty && len(slots) != 0 {
				t.Errorf("got %d slots, want none", len(slots))
			}
			if !tt.empty && len(slots) == 0 {
				t.Errorf("got no slots, want some")
			}
		})
	}
}

func TestResolveMidnightRollover(t *testing.T) {
	schedule := availability.WeeklySchedule{
		"mon": {{From: "22:00", To: "01:00"}},
	}

	slots, err := newResolver().Resolve(monday, schedule, nil, nil, 60)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	want := []string{
		"10:00 PM - 11:00 PM",
		"11:00 PM - 12:00 AM",
		"12:00 AM - 01:00 AM",
	}
	if got := labels(slots); !reflect.DeepEqual(got, want) {
		t.Errorf("labels = %v, want %v", got, want)
	}

	// The last slot starts on the next calendar day.
	last := slots[len(slots)-1]
	if last.StartsAt.Day() != monday.Day()+1 {
		t.Errorf("last slot starts on day %d, want %d", last.StartsAt.Day(), monday.Day()+1)
	}
}

func TestResolveExcludesPastSlotsForToday(t *testing.T) {
	schedule := availability.WeeklySchedule{
		"monday": {{From: "09:00", To: "11:00"}},
	}
	clock := func() time.Time {
		return time.Date(2026, 3, 2, 10, 15, 0, 0, time.UTC)
	}

	slots, err := availability.New(availability.WithClock(clock)).Resolve(monday, schedule, nil, nil, 30)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	want := []string{"10:30 AM - 11:00 AM"}
	if got := labels(slots); !reflect.DeepEqual(got, want) {
		t.Errorf("labels = %v, want %v", got, want)
	}

	// A future date gets no exclusion from the same clock.
	nextMonday := monday.AddDate(0, 0, 7)
	slots, err = availability.New(availability.WithClock(clock)).Resolve(nextMonday, schedule, nil, nil, 30)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if len(slots) != 4 {
		t.Errorf("future date: got %d slots, want 4", len(slots))
	}
}

func TestResolveCancelledBookingDoesNotBlock(t *testing.T) {
	schedule := availability.WeeklySchedule{
		"monday": {{From: "09:00", To: "11:00"}},
	}
	bookings := []availability.Booking{
		bookingAt(monday, 9, 0, 11, 0, "cancelled"),
	}

	slots, err := newResolver().Resolve(monday, schedule, nil, bookings, 30)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	for _, s := range slots {
		if !s.Available {
			t.Errorf("slot %s blocked by a cancelled booking", s.Label)
		}
	}
}

func TestResolveAdjacentBookingDoesNotConflict(t *testing.T) {
	schedule := availability.WeeklySchedule{
		"monday": {{From: "09:00", To: "11:00"}},
	}
	// Ends exactly when the 09:00 slot starts, starts exactly when the
	// 10:30 slot ends.
	bookings := []availability.Booking{
		bookingAt(monday, 8, 0, 9, 0, "confirmed"),
		bookingAt(monday, 11, 0, 12, 0, "confirmed"),
	}

	slots, err := newResolver().Resolve(monday, schedule, nil, bookings, 30)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	for _, s := range slots {
		if !s.Available {
			t.Errorf("slot %s marked unavailable by a merely touching booking", s.Label)
		}
	}
}

func TestResolveConflictPolicy(t *testing.T) {
	schedule := availability.WeeklySchedule{
		"monday": {{From: "09:00", To: "11:00"}},
	}
	bookings := []availability.Booking{
		{StartTime: "garbage", EndTime: "garbage", Status: "confirmed"},
	}

	// Fail-open (default): a corrupt booking never blocks.
	slots, err := newResolver().Resolve(monday, schedule, nil, bookings, 30)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	for _, s := range slots {
		if !s.Available {
			t.Errorf("fail-open: slot %s blocked by corrupt booking", s.Label)
		}
	}

	// Fail-closed: a corrupt booking blocks the whole day.
	slots, err = newResolver(availability.WithConflictPolicy(availability.FailClosed)).
		Resolve(monday, schedule, nil, bookings, 30)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	for _, s := range slots {
		if s.Available {
			t.Errorf("fail-closed: slot %s should be unavailable", s.Label)
		}
	}

	// A corrupt cancelled booking is still ignored under fail-closed.
	cancelled := []availability.Booking{
		{StartTime: "garbage", EndTime: "garbage", Status: "cancelled"},
	}
	slots, err = newResolver(availability.WithConflictPolicy(availability.FailClosed)).
		Resolve(monday, schedule, nil, cancelled, 30)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	for _, s := range slots {
		if !s.Available {
			t.Errorf("fail-closed: slot %s blocked by a cancelled corrupt booking", s.Label)
		}
	}
}

func TestResolveInvalidDuration(t *testing.T) {
	schedule := availability.WeeklySchedule{
		"monday": {{From: "09:00", To: "11:00"}},
	}

	for _, d := range []int{0, -30} {
		if _, err := newResolver().Resolve(monday, schedule, nil, nil, d); !errors.Is(err, availability.ErrInvalidDuration) {
			t.Errorf("duration %d: error = %v, want ErrInvalidDuration", d, err)
		}
	}
}

func TestResolveWeekdayKeyMatching(t *testing.T) {
	tests := []struct {
		name string
		key  string
		want int
	}{
		{"full lowercase", "monday", 4},
		{"abbreviated", "mon", 4},
		{"mixed case full", "MoNdAy", 4},
		{"upper abbreviated", "MON", 4},
		{"padded", " Monday ", 4},
		{"different day", "tuesday", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			schedule := availability.WeeklySchedule{
				tt.key: {{From: "09:00", To: "11:00"}},
			}
			slots, err := newResolver().Resolve(monday, schedule, nil, nil, 30)
			if err != nil {
				t.Fatalf("Resolve() error = %v", err)
			}
			if len(slots) != tt.want {
				t.Errorf("got %d slots, want %d", len(slots), tt.want)
			}
		})
	}
}

func TestResolveDuplicateWeekdaySpellings(t *testing.T) {
	// Both spellings of the same day are valid input. The full name must win
	// over the abbreviation, and the result must not vary between calls.
	schedule := availability.WeeklySchedule{
		"monday": {{From: "09:00", To: "10:00"}},
		"mon":    {{From: "14:00", To: "15:00"}},
	}

	want := []string{"09:00 AM - 10:00 AM"}
	for i := 0; i < 50; i++ {
		slots, err := newResolver().Resolve(monday, schedule, nil, nil, 60)
		if err != nil {
			t.Fatalf("Resolve() error = %v", err)
		}
		if got := labels(slots); !reflect.DeepEqual(got, want) {
			t.Fatalf("iteration %d: labels = %v, want %v", i, got, want)
		}
	}
}

func TestResolveMalformedRangesAreInert(t *testing.T) {
	schedule := availability.WeeklySchedule{
		"monday": {
			{From: "xx:yy", To: "11:00"},
			{From: "09:00", To: ""},
			{From: "25:00", To: "26:00"},
			{From: "14:00", To: "15:00"},
		},
	}

	slots, err := newResolver().Resolve(monday, schedule, nil, nil, 30)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	want := []string{"02:00 PM - 02:30 PM", "02:30 PM - 03:00 PM"}
	if got := labels(slots); !reflect.DeepEqual(got, want) {
		t.Errorf("labels = %v, want %v", got, want)
	}
}

func TestResolveMultipleWindowsSortedChronologically(t *testing.T) {
	// Evening window listed first; output must still be chronological,
	// including across the AM/PM boundary where label ordering would lie.
	schedule := availability.WeeklySchedule{
		"monday": {
			{From: "18:00", To: "19:00"},
			{From: "08:00", To: "09:00"},
		},
	}

	slots, err := newResolver().Resolve(monday, schedule, nil, nil, 60)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	want := []string{"08:00 AM - 09:00 AM", "06:00 PM - 07:00 PM"}
	if got := labels(slots); !reflect.DeepEqual(got, want) {
		t.Errorf("labels = %v, want %v", got, want)
	}
}

func TestResolveTrailingRemainderDropped(t *testing.T) {
	schedule := availability.WeeklySchedule{
		"monday": {{From: "09:00", To: "10:45"}},
	}

	slots, err := newResolver().Resolve(monday, schedule, nil, nil, 30)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	// 09:00, 09:30, 10:00 fit; the 10:30-11:00 slot would overrun 10:45.
	if len(slots) != 3 {
		t.Errorf("got %d slots, want 3", len(slots))
	}
}

func TestResolveSlotInvariants(t *testing.T) {
	schedule := availability.WeeklySchedule{
		"monday": {
			{From: "09:00", To: "12:30"},
			{From: "14:00", To: "17:00"},
		},
	}
	bookings := []availability.Booking{
		bookingAt(monday, 10, 0, 10, 45, "pending"),
		bookingAt(monday, 15, 0, 16, 0, "confirmed"),
	}
	resolver := newResolver()

	first, err := resolver.Resolve(monday, schedule, nil, bookings, 45)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	second, err := resolver.Resolve(monday, schedule, nil, bookings, 45)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	// Idempotence: identical inputs, identical output.
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated Resolve() calls disagree")
	}

	for i, s := range first {
		// Duration consistency.
		if got := s.EndsAt.Sub(s.StartsAt); got != 45*time.Minute {
			t.Errorf("slot %s: duration = %v, want 45m", s.Label, got)
		}
		// Non-overlap and chronological ordering.
		if i > 0 && first[i].StartsAt.Before(first[i-1].EndsAt) {
			t.Errorf("slots %s and %s overlap or are out of order", first[i-1].Label, first[i].Label)
		}
	}
}

func TestResolveNoScheduleIsEmptyNotError(t *testing.T) {
	slots, err := newResolver().Resolve(monday, availability.WeeklySchedule{}, nil, nil, 30)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if len(slots) != 0 {
		t.Errorf("got %d slots, want none", len(slots))
	}
}
