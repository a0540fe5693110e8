package availability

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const minutesPerDay = 24 * 60

// Slot is one bookable candidate window. Label is the display form
// ("09:00 AM - 09:30 AM"); StartsAt/EndsAt are the absolute instants built
// from the target date. Slots are value objects recomputed on every call.
type Slot struct {
	Label     string    `json:"label"`
	StartsAt  time.Time `json:"starts_at"`
	EndsAt    time.Time `json:"ends_at"`
	Available bool      `json:"available"`
}

// enumerate tiles each window with fixed-stride slots of durationMinutes,
// all provisionally available. Windows are processed independently; the
// caller sorts the concatenated result.
//
// Per window: bounds are converted to minutes since midnight, an end earlier
// than the start rolls into the next day (+1440 so the arithmetic stays
// monotonic), and slots are emitted at [cursor, cursor+duration) while the
// whole slot still fits. Trailing time shorter than the duration is dropped,
// never emitted as a short slot. When the target date is today, slots whose
// start has already passed are skipped.
func enumerate(date time.Time, windows []TimeRange, durationMinutes int, now time.Time) []Slot {
	dayStart := startOfDay(date)

	var minuteOfNow int
	today := sameDay(date, now)
	if today {
		minuteOfNow = now.Hour()*60 + now.Minute()
	}

	var slots []Slot
	for _, w := range windows {
		from, ok := parseClock(w.From)
		if !ok {
			continue
		}
		to, ok := parseClock(w.To)
		if !ok {
			continue
		}
		if to < from {
			to += minutesPerDay
		}

		for cursor := from; cursor+durationMinutes <= to; cursor += durationMinutes {
			if today && cursor < minuteOfNow {
				continue
			}
			end := cursor + durationMinutes
			slots = append(slots, Slot{
				Label:     formatClock(cursor) + " - " + formatClock(end),
				StartsAt:  dayStart.Add(time.Duration(cursor) * time.Minute),
				EndsAt:    dayStart.Add(time.Duration(end) * time.Minute),
				Available: true,
			})
		}
	}
	return slots
}

// parseClock converts "HH:MM" (or "HH:MM:SS") to minutes since midnight.
func parseClock(s string) (int, bool) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, false
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, false
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, false
	}
	return hour*60 + minute, true
}

// formatClock renders minutes since midnight as zero-padded 12-hour clock
// time with an AM/PM suffix. Offsets past midnight wrap modulo 24h.
func formatClock(minutes int) string {
	minutes %= minutesPerDay
	hour := minutes / 60
	minute := minutes % 60

	suffix := "AM"
	if hour >= 12 {
		suffix = "PM"
	}
	hour12 := hour % 12
	if hour12 == 0 {
		hour12 = 12
	}
	return fmt.Sprintf("%02d:%02d %s", hour12, minute, suffix)
}
