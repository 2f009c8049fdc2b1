// Package scheduling computes candidate appointment slots from work shifts.
// It is pure: no store access, no side effects, safe for concurrent use.
package scheduling

import (
	"sort"
	"time"

	"clinic-appointment-api/internal/domain/entity"
)

// SlotDuration is the system-wide slot length. The availability read path and
// the booking write path must share this constant or they will disagree about
// which times are bookable.
const SlotDuration = 30 * time.Minute

// Clock layouts accepted from the store. Postgres time columns scan as
// "HH:MM:SS", request payloads carry "HH:MM".
const (
	ClockLayout     = "15:04"
	clockLayoutLong = "15:04:05"
)

// ParseClock parses a wall-clock value in "HH:MM" or "HH:MM:SS" form.
func ParseClock(s string) (time.Time, error) {
	t, err := time.Parse(ClockLayout, s)
	if err == nil {
		return t, nil
	}
	return time.Parse(clockLayoutLong, s)
}

// NormalizeClock reduces a clock string to canonical "HH:MM" form.
func NormalizeClock(s string) (string, error) {
	t, err := ParseClock(s)
	if err != nil {
		return "", err
	}
	return t.Format(ClockLayout), nil
}

// ComputeSlots walks each shift from its start to its end in steps of
// slotDuration and returns every step time that is not already booked, as
// "HH:MM" strings sorted ascending. Shifts must all belong to the same doctor
// and date; that is the caller's responsibility.
//
// A slot is emitted when its start is strictly before the shift end. The slot
// may therefore extend past the shift boundary when the shift length is not a
// multiple of slotDuration; that matches the booking behavior clients already
// depend on.
//
// Shifts whose times fail to parse are skipped; shift rows are validated at
// creation, so an unparseable value here is a corrupt row, not user input.
func ComputeSlots(shifts []entity.WorkShift, bookedTimes map[string]struct{}, slotDuration time.Duration) []string {
	slots := make([]string, 0)

	for _, shift := range shifts {
		start, err := ParseClock(shift.StartTime)
		if err != nil {
			continue
		}
		end, err := ParseClock(shift.EndTime)
		if err != nil {
			continue
		}

		for current := start; current.Before(end); current = current.Add(slotDuration) {
			slot := current.Format(ClockLayout)
			if _, booked := bookedTimes[slot]; booked {
				continue
			}
			slots = append(slots, slot)
		}
	}

	sort.Strings(slots)
	return slots
}
