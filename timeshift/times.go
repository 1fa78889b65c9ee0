package timeshift

import (
	"fmt"
	"strconv"
	"strings"
)

// FreeTime is the literal sentinel for an unscheduled entry. It is
// exempt from all time arithmetic and always displayed as-is.
const FreeTime = "自由"

const minutesPerDay = 24 * 60

// TimeToMinutes converts an "HH:MM" string to minutes since midnight.
// The free sentinel and malformed input report ok=false.
func TimeToMinutes(timeStr string) (int, bool) {
	if timeStr == FreeTime || timeStr == "" {
		return 0, false
	}

	parts := strings.Split(timeStr, ":")
	if len(parts) != 2 {
		return 0, false
	}

	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, false
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, false
	}

	return hours*60 + minutes, true
}

// MinutesToTime converts minutes since midnight to a zero-padded
// "HH:MM" string. Values outside one day wrap around the clock face in
// both directions; no day-boundary carry is tracked.
func MinutesToTime(minutes int) string {
	total := minutes % minutesPerDay
	if total < 0 {
		total += minutesPerDay
	}
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}
