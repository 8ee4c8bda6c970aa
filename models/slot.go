package models

import (
	"fmt"
	"strconv"
	"strings"
)

// Weekdays a standing slot may fall on. The catalog covers Monday to Friday
// only; there are no weekend slots.
const (
	Monday    = "Lundi"
	Tuesday   = "Mardi"
	Wednesday = "Mercredi"
	Thursday  = "Jeudi"
	Friday    = "Vendredi"
)

// Weekdays lists the catalog weekdays in display order.
var Weekdays = []string{Monday, Tuesday, Wednesday, Thursday, Friday}

// TimeSlot represents a standing weekly time window ("créneau") defined once
// and reused across calendar weeks. Immutable after creation.
type TimeSlot struct {
	ID        string `bson:"id" json:"id"`
	Weekday   string `bson:"jour_semaine" json:"jour_semaine"`
	StartTime string `bson:"heure_debut" json:"heure_debut"` // "HH:MM", 24-hour
	EndTime   string `bson:"heure_fin" json:"heure_fin"`     // "HH:MM", strictly after StartTime
}

// ParseClock converts an "HH:MM" string to minutes from midnight.
func ParseClock(s string) (int, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid time %q: want HH:MM", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("invalid hour in %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid minute in %q", s)
	}
	return h*60 + m, nil
}

// Validate checks the weekday and the start/end ordering invariant.
func (s TimeSlot) Validate() error {
	valid := false
	for _, d := range Weekdays {
		if s.Weekday == d {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("invalid weekday %q", s.Weekday)
	}
	start, err := ParseClock(s.StartTime)
	if err != nil {
		return err
	}
	end, err := ParseClock(s.EndTime)
	if err != nil {
		return err
	}
	if end <= start {
		return fmt.Errorf("end time %s must be after start time %s", s.EndTime, s.StartTime)
	}
	return nil
}
