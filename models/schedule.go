package models

// Slot statuses as shown on the weekly grid.
const (
	StatusAvailable = "disponible"
	StatusReserved  = "reserve"
	StatusElapsed   = "passe"
)

// SlotView is a standing slot projected onto one concrete week: the slot,
// its resolved calendar date, a computed status, and the matching reservation
// with denormalized user and track when one exists. It is derived on every
// read and never persisted.
type SlotView struct {
	TimeSlot `bson:",inline"`

	Date        string       `json:"date"` // resolved "YYYY-MM-DD" within the viewed week
	Status      string       `json:"statut"`
	Reservation *Reservation `json:"reservation,omitempty"`
	User        *User        `json:"utilisateur,omitempty"`
	Track       *Track       `json:"filiere,omitempty"`
}

// WeekSchedule groups the derived slot views of one Monday-to-Friday week.
type WeekSchedule struct {
	WeekStart string                `json:"semaine_debut"` // the Monday, "YYYY-MM-DD"
	Days      map[string][]SlotView `json:"jours"`         // keyed by weekday name
}

// Snapshot is a point-in-time copy of the four source collections. Derivation
// and validation run over snapshots so they stay pure; only the sync store's
// mutation entry points write to the underlying collections.
type Snapshot struct {
	Slots        []TimeSlot
	Reservations []Reservation
	Users        []User
	Tracks       []Track
}
