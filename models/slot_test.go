package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseClock(t *testing.T) {
	min, err := ParseClock("08:00")
	assert.NoError(t, err)
	assert.Equal(t, 480, min)

	min, err = ParseClock("23:59")
	assert.NoError(t, err)
	assert.Equal(t, 1439, min)

	min, err = ParseClock("00:00")
	assert.NoError(t, err)
	assert.Equal(t, 0, min)

	for _, bad := range []string{"", "8h00", "24:00", "10:60", "10", "aa:bb"} {
		_, err := ParseClock(bad)
		assert.Error(t, err, "input %q", bad)
	}
}

func TestTimeSlotValidate(t *testing.T) {
	ok := TimeSlot{ID: "s1", Weekday: Monday, StartTime: "08:00", EndTime: "10:00"}
	assert.NoError(t, ok.Validate())

	bad := ok
	bad.Weekday = "Dimanche"
	assert.Error(t, bad.Validate())

	bad = ok
	bad.EndTime = "08:00"
	assert.Error(t, bad.Validate(), "zero-length slots are invalid")

	bad = ok
	bad.EndTime = "07:00"
	assert.Error(t, bad.Validate())

	bad = ok
	bad.StartTime = "8am"
	assert.Error(t, bad.Validate())
}
