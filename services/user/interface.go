// File: services/user/interface.go
package user

import (
	"context"

	userRepo "slotbook/database/repository/user"
	"slotbook/models"
	"slotbook/services/sync"
)

// UserService owns accounts and authentication. Accounts are created by
// administrators; teachers only sign in.
type UserService interface {
	Authenticate(ctx context.Context, email, password string) (*AuthResponse, error)
	RevokeAuthToken(ctx context.Context, userID string) error

	CreateUser(ctx context.Context, input CreateUserInput) (*models.User, error)
	UpdateUser(ctx context.Context, id string, upd models.UserUpdateRequest) (*models.User, error)
	DeleteUser(ctx context.Context, id string) error
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetAllUsers(ctx context.Context) ([]models.User, error)
}

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	Repo      userRepo.UserRepository
	Publisher *sync.Publisher
	Refresher *sync.Refresher
}

// CreateUserInput carries the fields for a new account.
type CreateUserInput struct {
	FirstName string `json:"prenom" binding:"required,max=50"`
	LastName  string `json:"nom" binding:"required,max=50"`
	Email     string `json:"email" binding:"required,email"`
	Role      string `json:"role" binding:"required,oneof=enseignant admin"`
	Password  string `json:"password" binding:"required,min=8,max=100"`
}

// AuthResponse contains the authenticated user's identity and token.
type AuthResponse struct {
	ID        string `json:"id"`
	Token     string `json:"token"`
	FirstName string `json:"prenom"`
	LastName  string `json:"nom"`
	Email     string `json:"email"`
	Role      string `json:"role"`
}
