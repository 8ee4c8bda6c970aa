// File: services/user/service.go
package user

import (
	"context"
	"errors"
	"time"

	"slotbook/models"
	"slotbook/services/sync"
	"slotbook/utils"

	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = 24 * time.Hour

var (
	// ErrInvalidCredentials covers both unknown email and wrong password so
	// responses do not leak which one failed.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrNotFound indicates the referenced user does not exist.
	ErrNotFound = errors.New("user not found")
)

// Authenticate verifies credentials and issues a JWT. The token hash is
// stored on the user record and cached in Redis for middleware lookups.
func (s *DefaultUserService) Authenticate(ctx context.Context, email, password string) (*AuthResponse, error) {
	usr, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(usr.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(usr.ID, usr.Email, usr.Role, tokenTTL)
	if err != nil {
		return nil, err
	}

	tokenHash := utils.HashToken(token)
	if err := s.Repo.SetTokenHash(ctx, usr.ID, tokenHash); err != nil {
		return nil, err
	}

	authCache := utils.GetAuthCacheClient()
	_ = authCache.Set(ctx, utils.AuthCachePrefix+usr.ID, tokenHash, utils.AuthCacheTTL).Err()

	return &AuthResponse{
		ID:        usr.ID,
		Token:     token,
		FirstName: usr.FirstName,
		LastName:  usr.LastName,
		Email:     usr.Email,
		Role:      usr.Role,
	}, nil
}

// RevokeAuthToken invalidates the user's current session.
func (s *DefaultUserService) RevokeAuthToken(ctx context.Context, userID string) error {
	if err := s.Repo.SetTokenHash(ctx, userID, ""); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrNotFound
		}
		return err
	}
	authCache := utils.GetAuthCacheClient()
	_ = authCache.Del(ctx, utils.AuthCachePrefix+userID).Err()
	return nil
}

// CreateUser registers a new account (admin operation).
func (s *DefaultUserService) CreateUser(ctx context.Context, input CreateUserInput) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	usr := models.User{
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        input.Email,
		Role:         input.Role,
		PasswordHash: string(hash),
	}

	created, err := s.Repo.Create(ctx, usr)
	if err != nil {
		return nil, err
	}

	s.Publisher.Publish(ctx, sync.CollUsers)
	s.Refresher.ScheduleRefresh(ctx)
	return created, nil
}

// UpdateUser edits account fields (admin operation).
func (s *DefaultUserService) UpdateUser(ctx context.Context, id string, upd models.UserUpdateRequest) (*models.User, error) {
	updated, err := s.Repo.Update(ctx, id, upd)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	s.Publisher.Publish(ctx, sync.CollUsers)
	s.Refresher.ScheduleRefresh(ctx)
	return updated, nil
}

// DeleteUser removes an account (admin operation).
func (s *DefaultUserService) DeleteUser(ctx context.Context, id string) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrNotFound
		}
		return err
	}

	authCache := utils.GetAuthCacheClient()
	_ = authCache.Del(ctx, utils.AuthCachePrefix+id).Err()

	s.Publisher.Publish(ctx, sync.CollUsers)
	s.Refresher.ScheduleRefresh(ctx)
	return nil
}

func (s *DefaultUserService) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	usr, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return usr, nil
}

func (s *DefaultUserService) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	usr, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return usr, nil
}

func (s *DefaultUserService) GetAllUsers(ctx context.Context) ([]models.User, error) {
	return s.Repo.List(ctx)
}
