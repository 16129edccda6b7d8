package availability

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"slotwise/utils"
)

// DateLayout is the calendar-day format used on the wire and in storage.
const DateLayout = "2006-01-02"

// MinutesPerDay bounds a clock value; "24:00" is accepted as end of day.
const MinutesPerDay = 24 * 60

// ParseClock converts "HH:MM", "HH:MM:SS" or 12-hour "h:mm AM" into minutes
// since midnight.
func ParseClock(s string) (int, error) {
	raw := strings.ToUpper(strings.TrimSpace(s))
	if raw == "" {
		return 0, utils.ValidationError("time is required")
	}

	meridiem := ""
	for _, suffix := range []string{"AM", "PM"} {
		if strings.HasSuffix(raw, suffix) {
			meridiem = suffix
			raw = strings.TrimSpace(strings.TrimSuffix(raw, suffix))
			break
		}
	}

	parts := strings.Split(raw, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, utils.ValidationError("invalid time %q", s)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || len(parts[0]) > 2 {
		return 0, utils.ValidationError("invalid time %q", s)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || len(parts[1]) != 2 || minute < 0 || minute > 59 {
		return 0, utils.ValidationError("invalid time %q", s)
	}
	if len(parts) == 3 {
		if sec, err := strconv.Atoi(parts[2]); err != nil || sec < 0 || sec > 59 {
			return 0, utils.ValidationError("invalid time %q", s)
		}
	}

	if meridiem != "" {
		if hour < 1 || hour > 12 {
			return 0, utils.ValidationError("invalid time %q", s)
		}
		hour %= 12
		if meridiem == "PM" {
			hour += 12
		}
		return hour*60 + minute, nil
	}

	total := hour*60 + minute
	if hour < 0 || total > MinutesPerDay {
		return 0, utils.ValidationError("invalid time %q", s)
	}
	return total, nil
}

// FormatClock renders minutes since midnight as "HH:MM".
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// ParseDate returns midnight of a "YYYY-MM-DD" day in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	d, err := time.ParseInLocation(DateLayout, strings.TrimSpace(s), loc)
	if err != nil {
		return time.Time{}, utils.ValidationError("invalid date %q, expected YYYY-MM-DD", s)
	}
	return d, nil
}

// Weekday returns the day of week of a calendar day.
func Weekday(date time.Time) time.Weekday {
	return date.Weekday()
}

// At returns the instant minutes after midnight on date.
func At(date time.Time, minutes int) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location()).
		Add(time.Duration(minutes) * time.Minute)
}

// Overlaps reports whether half-open intervals [aStart,aEnd) and
// [bStart,bEnd) intersect.
func Overlaps(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && bStart < aEnd
}

// Contains reports whether m falls inside [start,end).
func Contains(start, end, m int) bool {
	return start <= m && m < end
}

// MinutesLate is the whole minutes elapsed at `at` since startTime on date,
// or 0 when the slot has not started or the schedule cannot be read.
func MinutesLate(date, startTime string, at time.Time, loc *time.Location) int {
	day, err := ParseDate(date, loc)
	if err != nil {
		return 0
	}
	start, err := ParseClock(startTime)
	if err != nil {
		return 0
	}
	late := int(at.Sub(At(day, start)) / time.Minute)
	return max(late, 0)
}
