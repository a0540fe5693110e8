// Package availability turns a provider's recurring weekly schedule,
// break dates, and existing bookings into the concrete bookable slots for
// one calendar date. It is a pure computation: no I/O, no state between
// calls, identical inputs always produce identical output. Fetching the
// schedule and bookings, and re-resolving when they change, is the
// caller's job.
//
// The engine only reports availability; it does not claim slots. The gap
// between "shown as available" and "booking written" must be closed by the
// booking write path (see the sessions module's unique-claim insert).
package availability

import (
	"errors"
	"sort"
	"strings"
	"time"
)

// ErrInvalidDuration is returned for a zero or negative slot duration,
// which would otherwise enumerate forever or backwards.
var ErrInvalidDuration = errors.New("slot duration must be a positive number of minutes")

// StatusCancelled is the booking status excluded from conflict detection.
const StatusCancelled = "cancelled"

// Booking is an existing reservation as the engine sees it: raw timestamps
// plus a status. Timestamps are RFC 3339; how unparsable ones are treated
// depends on the resolver's ConflictPolicy.
type Booking struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Status    string `json:"status"`
}

// ConflictPolicy decides what an unparsable booking timestamp means.
type ConflictPolicy int

const (
	// FailOpen drops bookings with unparsable timestamps from conflict
	// detection, so they never block a slot. A corrupt booking record can
	// therefore cause a double-booking to be offered.
	FailOpen ConflictPolicy = iota

	// FailClosed treats any unparsable booking as blocking the entire day:
	// every slot is marked unavailable.
	FailClosed
)

// Resolver resolves bookable slots for a single calendar date.
// The zero value is not usable; construct with New.
type Resolver struct {
	policy ConflictPolicy
	now    func() time.Time
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithConflictPolicy sets how unparsable booking timestamps are handled.
// The default is FailOpen.
func WithConflictPolicy(p ConflictPolicy) Option {
	return func(r *Resolver) { r.policy = p }
}

// WithClock overrides the wall-clock source used for past-slot exclusion
// when the target date is today. Intended for tests.
func WithClock(now func() time.Time) Option {
	return func(r *Resolver) { r.now = now }
}

// New creates a Resolver.
func New(opts ...Option) *Resolver {
	r := &Resolver{
		policy: FailOpen,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns the candidate slots for the target date, each marked
// available or conflicted, sorted by start time ascending.
//
// Resolution runs in three stages: the date is mapped to its raw open
// windows (breaks take precedence, a missing weekday is a normal empty
// result), each window is tiled with fixed-duration slots (past slots
// dropped when the date is today), and finally each slot is checked
// against the non-cancelled bookings under strict interval overlap:
// slotStart < bookingEnd && slotEnd > bookingStart. Touching intervals do
// not conflict.
//
// The only error condition is an invalid duration; malformed schedule
// ranges and break dates are inert, and malformed bookings follow the
// configured ConflictPolicy.
func (r *Resolver) Resolve(
	date time.Time,
	schedule WeeklySchedule,
	breaks []BreakDate,
	bookings []Booking,
	durationMinutes int,
) ([]Slot, error) {
	if durationMinutes <= 0 {
		return nil, ErrInvalidDuration
	}

	windows := windowsFor(date, schedule, breaks)
	slots := enumerate(date, windows, durationMinutes, r.now())
	r.markConflicts(slots, bookings)

	// Sort by the underlying instant, not the rendered label: lexical
	// ordering of "hh:mm AM/PM" strings breaks across the AM/PM boundary.
	sort.Slice(slots, func(i, j int) bool {
		return slots[i].StartsAt.Before(slots[j].StartsAt)
	})
	return slots, nil
}

// markConflicts flips Available to false on every slot that strictly
// overlaps a non-cancelled booking. Each slot transitions at most once.
func (r *Resolver) markConflicts(slots []Slot, bookings []Booking) {
	type interval struct {
		start, end time.Time
	}

	var busy []interval
	var corrupt bool

	for _, b := range bookings {
		if strings.EqualFold(strings.TrimSpace(b.Status), StatusCancelled) {
			continue
		}
		start, err1 := time.Parse(time.RFC3339, b.StartTime)
		end, err2 := time.Parse(time.RFC3339, b.EndTime)
		if err1 != nil || err2 != nil {
			corrupt = true
			continue
		}
		busy = append(busy, interval{start: start, end: end})
	}

	if corrupt && r.policy == FailClosed {
		for i := range slots {
			slots[i].Available = false
		}
		return
	}

	for i := range slots {
		for _, iv := range busy {
			if slots[i].StartsAt.Before(iv.end) && slots[i].EndsAt.After(iv.start) {
				slots[i].Available = false
				break
			}
		}
	}
}
