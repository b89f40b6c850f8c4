package domain

import "time"

// DateLayout formats civil dates stored in stats.
const DateLayout = "2006-01-02"

// DayStart returns the start of the current day in the given timezone, converted to UTC.
func DayStart(now time.Time, loc *time.Location) time.Time {
	local := now.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc).UTC()
}

// NextDayStart returns the start of the next day in the given timezone, converted to UTC.
func NextDayStart(now time.Time, loc *time.Location) time.Time {
	// AddDate handles DST correctly, Add(24h) does not
	next := DayStart(now, loc).In(loc).AddDate(0, 0, 1)
	return time.Date(next.Year(), next.Month(), next.Day(), 0, 0, 0, 0, loc).UTC()
}

// DateKey returns the local civil date of now as YYYY-MM-DD.
func DateKey(now time.Time, loc *time.Location) string {
	return now.In(loc).Format(DateLayout)
}

// PreviousDateKey returns the civil date one day before now in loc.
func PreviousDateKey(now time.Time, loc *time.Location) string {
	return now.In(loc).AddDate(0, 0, -1).Format(DateLayout)
}

// ParseTimezone parses a timezone string, returning UTC as fallback.
func ParseTimezone(tz string) *time.Location {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return time.UTC
	}
	return loc
}
