package models

import "time"

// Reservation is the booking of one standing slot on one specific calendar
// date for one track. At most one reservation may exist per
// (creneau_id, date, filiere_id) triple.
type Reservation struct {
	ID           string    `bson:"id" json:"id"`
	UserID       string    `bson:"utilisateur_id" json:"utilisateur_id"`
	TrackID      string    `bson:"filiere_id" json:"filiere_id"`
	SlotID       string    `bson:"creneau_id" json:"creneau_id"`
	Date         string    `bson:"date" json:"date"` // "YYYY-MM-DD"
	ModuleTitle  string    `bson:"titre_module" json:"titre_module"`
	Description  string    `bson:"description" json:"description"`
	TeachingAxis string    `bson:"axe_pedagogique,omitempty" json:"axe_pedagogique,omitempty"`
	Room         string    `bson:"salle,omitempty" json:"salle,omitempty"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`
}

// ReservationInput carries the fields a teacher submits when booking a slot.
type ReservationInput struct {
	UserID       string `json:"utilisateur_id"`
	TrackID      string `json:"filiere_id"`
	SlotID       string `json:"creneau_id"`
	Date         string `json:"date"`
	ModuleTitle  string `json:"titre_module"`
	Description  string `json:"description"`
	TeachingAxis string `json:"axe_pedagogique,omitempty"`
	Room         string `json:"salle,omitempty"`
}

// ReservationUpdate carries the owner-mutable fields. User, track, slot and
// date cannot change once booked; the teacher must cancel and rebook instead.
type ReservationUpdate struct {
	ModuleTitle  *string `json:"titre_module,omitempty"`
	Description  *string `json:"description,omitempty"`
	TeachingAxis *string `json:"axe_pedagogique,omitempty"`
	Room         *string `json:"salle,omitempty"`
}

// ReservationFilter narrows reservation listings.
type ReservationFilter struct {
	TrackID  string
	DateFrom string // inclusive, "YYYY-MM-DD"
	DateTo   string // inclusive
}
