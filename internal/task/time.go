package task

import (
	"errors"
	"fmt"
)

// Grid geometry. Each slot is one quarter-hour cell.
const (
	SlotMinutes     = 15
	QuartersPerHour = 4
	HoursPerDay     = 24
	MinutesPerDay   = HoursPerDay * 60
)

// ErrInvalidClock reports a malformed "HH:MM" string.
var ErrInvalidClock = errors.New("time must be in HH:MM format")

// SlotStart returns the minute offset of the slot addressed by (hour, quarter).
func SlotStart(hour, quarter int) int {
	return hour*60 + quarter*SlotMinutes
}

// SlotOf returns the (hour, quarter) slot containing the given minute offset.
func SlotOf(min int) (hour, quarter int) {
	if min < 0 {
		min = 0
	}
	if min >= MinutesPerDay {
		min = MinutesPerDay - 1
	}
	return min / 60, (min % 60) / SlotMinutes
}

// ValidSlot returns true if (hour, quarter) addresses a grid cell.
func ValidSlot(hour, quarter int) bool {
	return hour >= 0 && hour < HoursPerDay && quarter >= 0 && quarter < QuartersPerHour
}

// MinutesToTime converts minutes since midnight to "HH:MM", clamping to the day.
func MinutesToTime(m int) string {
	if m < 0 {
		m = 0
	}
	if m >= MinutesPerDay {
		m = MinutesPerDay - 1
	}
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// TimeToMinutes converts "HH:MM" to minutes since midnight.
// Returns ErrInvalidClock for malformed input or out-of-range components.
func TimeToMinutes(s string) (int, error) {
	if len(s) != 5 || s[2] != ':' {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	for _, i := range []int{0, 1, 3, 4} {
		if s[i] < '0' || s[i] > '9' {
			return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
		}
	}
	hours := int(s[0]-'0')*10 + int(s[1]-'0')
	mins := int(s[3]-'0')*10 + int(s[4]-'0')
	if hours > 23 || mins > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	return hours*60 + mins, nil
}

// Intersects returns true if the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) intersect.
func Intersects(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && bStart < aEnd
}
