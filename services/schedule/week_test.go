package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestMondayOf(t *testing.T) {
	monday := date(2025, time.March, 3)

	assert.Equal(t, monday, MondayOf(date(2025, time.March, 3)), "Monday maps to itself")
	assert.Equal(t, monday, MondayOf(date(2025, time.March, 5)), "Wednesday maps back to Monday")
	assert.Equal(t, monday, MondayOf(date(2025, time.March, 7)), "Friday maps back to Monday")
	assert.Equal(t, monday, MondayOf(date(2025, time.March, 8)), "Saturday belongs to the week it follows")
	assert.Equal(t, monday, MondayOf(date(2025, time.March, 9)), "Sunday belongs to the week it follows")

	assert.Equal(t, date(2025, time.March, 10), MondayOf(date(2025, time.March, 10)))
}

func TestMondayOfTruncatesTime(t *testing.T) {
	at := time.Date(2025, time.March, 5, 14, 30, 12, 0, time.UTC)
	assert.Equal(t, date(2025, time.March, 3), MondayOf(at))
}

func TestResolveDate(t *testing.T) {
	monday := date(2025, time.March, 3)

	got, ok := ResolveDate(monday, "Lundi")
	assert.True(t, ok)
	assert.Equal(t, "2025-03-03", got)

	got, ok = ResolveDate(monday, "Vendredi")
	assert.True(t, ok)
	assert.Equal(t, "2025-03-07", got)

	_, ok = ResolveDate(monday, "Samedi")
	assert.False(t, ok, "weekend labels are outside the grid")

	_, ok = ResolveDate(monday, "")
	assert.False(t, ok)
}

func TestIsElapsed(t *testing.T) {
	now := time.Date(2025, time.March, 3, 9, 0, 0, 0, time.UTC)

	assert.True(t, IsElapsed("2025-03-02", "08:00", now), "past date is elapsed regardless of time")
	assert.False(t, IsElapsed("2025-03-04", "08:00", now), "future date is not elapsed")

	assert.True(t, IsElapsed("2025-03-03", "08:00", now), "started earlier today")
	assert.False(t, IsElapsed("2025-03-03", "10:00", now), "starts later today")
}

func TestIsElapsedAtExactStartInstant(t *testing.T) {
	start := time.Date(2025, time.March, 3, 8, 0, 0, 0, time.UTC)

	assert.False(t, IsElapsed("2025-03-03", "08:00", start.Add(-time.Minute)))
	assert.True(t, IsElapsed("2025-03-03", "08:00", start), "slot is elapsed at the instant it starts")
	assert.True(t, IsElapsed("2025-03-03", "08:00", start.Add(time.Minute)))
}

func TestIsElapsedIsMonotonic(t *testing.T) {
	base := time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC)

	elapsed := false
	for min := 0; min < 24*60; min += 15 {
		now := base.Add(time.Duration(min) * time.Minute)
		cur := IsElapsed("2025-03-03", "10:30", now)
		if elapsed {
			assert.True(t, cur, "a slot never reverts from elapsed as time advances (at %s)", now)
		}
		elapsed = cur
	}
	assert.True(t, elapsed)
}
