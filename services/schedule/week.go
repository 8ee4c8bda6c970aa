package schedule

import (
	"time"

	"slotbook/models"
)

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

var weekdayIndex = map[string]int{
	models.Monday:    0,
	models.Tuesday:   1,
	models.Wednesday: 2,
	models.Thursday:  3,
	models.Friday:    4,
}

// MondayOf returns the Monday of the week containing t, truncated to
// midnight in t's location. Weekend reference dates resolve to the Monday of
// the week they belong to; Saturday and Sunday carry no slots of their own.
func MondayOf(t time.Time) time.Time {
	offset := int(t.Weekday()) - int(time.Monday)
	if offset < 0 {
		offset += 7 // Sunday
	}
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return day.AddDate(0, 0, -offset)
}

// ResolveDate maps a standing slot's weekday onto a concrete calendar date
// within the week starting at monday. The bool is false for weekdays outside
// the Monday-Friday grid.
func ResolveDate(monday time.Time, weekday string) (string, bool) {
	idx, ok := weekdayIndex[weekday]
	if !ok {
		return "", false
	}
	return monday.AddDate(0, 0, idx).Format(DateLayout), true
}

// IsElapsed reports whether a slot occurrence is in the past: its date is
// strictly before today, or it is today and the start instant is at or before
// now. The boundary is deliberately non-strict on the start time: a slot is
// elapsed at the exact instant it starts, not when it ends.
func IsElapsed(date string, startTime string, now time.Time) bool {
	today := now.Format(DateLayout)
	if date < today {
		return true
	}
	if date != today {
		return false
	}
	startMin, err := models.ParseClock(startTime)
	if err != nil {
		return false
	}
	nowMin := now.Hour()*60 + now.Minute()
	return startMin <= nowMin
}
