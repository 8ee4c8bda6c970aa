package models

import "time"

// User roles.
const (
	RoleTeacher = "enseignant"
	RoleAdmin   = "admin"
)

// User represents a teacher or administrator account.
type User struct {
	ID           string    `bson:"id" json:"id"`
	FirstName    string    `bson:"prenom" json:"prenom"`
	LastName     string    `bson:"nom" json:"nom"`
	Email        string    `bson:"email" json:"email"`
	Role         string    `bson:"role" json:"role"` // "enseignant" or "admin"
	PasswordHash string    `bson:"passwordHash" json:"-"`
	TokenHash    string    `bson:"tokenHash,omitempty" json:"-"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`
}

// FullName returns "Prenom Nom" for display and description attribution.
func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// IsAdmin reports whether the user holds the admin role.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// UserUpdateRequest carries the mutable user fields.
type UserUpdateRequest struct {
	FirstName *string `json:"prenom,omitempty"`
	LastName  *string `json:"nom,omitempty"`
	Email     *string `json:"email,omitempty"`
	Role      *string `json:"role,omitempty"`
}
