// Package service provides the storefront business logic — session
// management and the cart/checkout flow — delegating persistence to the
// repositories.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/delarro/freshbites/internal/kvstore"
	"github.com/delarro/freshbites/internal/models"
	"github.com/delarro/freshbites/internal/repository"
	"github.com/delarro/freshbites/internal/validate"
)

// currentUserKey is the store key holding the password-stripped record
// of the logged-in user.
const currentUserKey = "current_user"

// ErrInvalidCredentials is returned by Login when the email/password
// pair matches no user. It deliberately does not say which half failed.
var ErrInvalidCredentials = errors.New("invalid email or password")

// UserStore defines the persistence operations required by the session
// manager.
type UserStore interface {
	// GetByEmail returns the user with exactly the given email, or
	// repository.ErrNotFound.
	GetByEmail(ctx context.Context, email string) (models.User, error)
	// Create registers a new user and returns it with its id assigned.
	Create(ctx context.Context, user models.User) (models.User, error)
}

// Session manages the current-user state. The state lives in the
// key-value store, not in memory, so it survives restarts and has no
// expiry.
type Session struct {
	users UserStore
	store kvstore.Store
	log   *zap.Logger
}

// NewSession constructs a session manager over the given user store and
// key-value backend.
func NewSession(users UserStore, store kvstore.Store, log *zap.Logger) *Session {
	return &Session{users: users, store: store, log: log}
}

// Register validates the registration form, hashes the password and
// creates the user. Validation failures are reported before anything is
// written. New accounts always get the user role.
func (s *Session) Register(ctx context.Context, name, email, password, confirmPassword string) (models.PublicUser, error) {
	if errs := validate.RegisterInput(name, email, password, confirmPassword); len(errs) > 0 {
		return models.PublicUser{}, errs
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.PublicUser{}, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.Create(ctx, models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         models.RoleUser,
	})
	if err != nil {
		return models.PublicUser{}, err
	}

	s.log.Info("user registered", zap.String("id", user.ID))
	return user.Public(), nil
}

// Login verifies the credentials and, on success, persists the
// password-stripped user under the current-user key.
func (s *Session) Login(ctx context.Context, email, password string) (models.PublicUser, error) {
	if errs := validate.LoginInput(email, password); len(errs) > 0 {
		return models.PublicUser{}, errs
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return models.PublicUser{}, ErrInvalidCredentials
		}
		return models.PublicUser{}, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return models.PublicUser{}, ErrInvalidCredentials
	}

	public := user.Public()
	raw, err := json.Marshal(public)
	if err != nil {
		return models.PublicUser{}, fmt.Errorf("encode current user: %w", err)
	}
	if err := s.store.Set(ctx, currentUserKey, string(raw)); err != nil {
		return models.PublicUser{}, fmt.Errorf("persist current user: %w", err)
	}

	s.log.Info("user logged in", zap.String("id", user.ID))
	return public, nil
}

// Logout clears the current-user key. Logging out with no session is
// not an error.
func (s *Session) Logout(ctx context.Context) error {
	if err := s.store.Delete(ctx, currentUserKey); err != nil && !errors.Is(err, kvstore.ErrUnavailable) {
		return err
	}
	return nil
}

// Current returns the logged-in user, if any. An absent key, missing
// backend or unreadable record all mean "nobody is logged in".
func (s *Session) Current(ctx context.Context) (models.PublicUser, bool) {
	raw, err := s.store.Get(ctx, currentUserKey)
	if err != nil {
		return models.PublicUser{}, false
	}

	var user models.PublicUser
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		s.log.Warn("discarding unreadable current-user record", zap.Error(err))
		return models.PublicUser{}, false
	}
	return user, true
}

// IsAuthenticated reports whether a user is logged in.
func (s *Session) IsAuthenticated(ctx context.Context) bool {
	_, ok := s.Current(ctx)
	return ok
}

// IsAdmin reports whether the logged-in user has the admin role.
func (s *Session) IsAdmin(ctx context.Context) bool {
	user, ok := s.Current(ctx)
	return ok && user.Role == models.RoleAdmin
}
