package item

import "time"

// The timeline shows a single day; only the time of day of an instant
// matters. All items are placed on this fixed base date.
const (
	baseYear  = 1970
	baseMonth = time.January
	baseDay   = 1
)

// At returns hour:minute on the base day in the local zone.
// Hour 24 is the end of the day.
func At(hour, minute int) time.Time {
	return time.Date(baseYear, baseMonth, baseDay, hour, minute, 0, 0, time.Local)
}

// DayStart is 00:00 on the base day.
func DayStart() time.Time {
	return At(0, 0)
}

// DayEnd is 24:00 on the base day.
func DayEnd() time.Time {
	return At(24, 0)
}

// ClampToDay limits t to 00:00 through 24:00 of the base day.
func ClampToDay(t time.Time) time.Time {
	if t.Before(DayStart()) {
		return DayStart()
	}
	if t.After(DayEnd()) {
		return DayEnd()
	}
	return t
}

// OnBaseDay projects the wall clock of t onto the base day, truncated to
// the minute.
func OnBaseDay(t time.Time) time.Time {
	local := t.In(time.Local)
	return At(local.Hour(), local.Minute())
}

// ClockLabel formats the time of day of t, rendering the end of the base
// day as "24:00".
func ClockLabel(t time.Time) string {
	if t.Equal(DayEnd()) {
		return "24:00"
	}
	return t.In(time.Local).Format("15:04")
}

// ParseClock parses "HH:MM" onto the base day. "24:00" is accepted.
func ParseClock(s string) (time.Time, error) {
	if s == "24:00" {
		return DayEnd(), nil
	}
	t, err := time.Parse("15:04", s)
	if err != nil || len(s) != 5 {
		return time.Time{}, ErrInvalidClock
	}
	return At(t.Hour(), t.Minute()), nil
}

// Defaults returns the items seeded into an empty store.
func Defaults() []Item {
	return []Item{
		{ID: 1, Content: "Morning routine", Start: At(6, 0), End: At(7, 0), Editable: true},
		{ID: 2, Content: "Writing", Start: At(9, 0), End: At(11, 0), Editable: true},
		{ID: 3, Content: "Lunch break", Start: At(12, 0), End: At(13, 0), Editable: true},
	}
}
