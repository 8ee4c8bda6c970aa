package models

// Track is an academic program ("filière") that partitions reservations, so
// the same weekly slot can be booked independently per track.
type Track struct {
	ID   string `bson:"id" json:"id"`
	Name string `bson:"nom" json:"nom"`
}
