package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/delarro/freshbites/internal/kvstore"
	"github.com/delarro/freshbites/internal/models"
)

// Administrator account seeded on first initialization.
const (
	adminID       = "admin-id"
	adminName     = "Administrator"
	adminEmail    = "admin@admin.com"
	adminPassword = "admin1234"
)

// Users is the repository over the users collection.
type Users struct {
	store kvstore.Store
	log   *zap.Logger
}

// NewUsers creates a user repository backed by the given store.
func NewUsers(store kvstore.Store, log *zap.Logger) *Users {
	return &Users{store: store, log: log}
}

// List returns every registered user. An uninitialized or unavailable
// store yields an empty list.
func (r *Users) List(ctx context.Context) []models.User {
	users, err := loadCollection[models.User](ctx, r.store, usersKey)
	if err != nil {
		r.log.Warn("discarding unreadable users collection", zap.Error(err))
	}
	return users
}

// GetByID returns the user with the given id, or ErrNotFound.
func (r *Users) GetByID(ctx context.Context, id string) (models.User, error) {
	for _, u := range r.List(ctx) {
		if u.ID == id {
			return u, nil
		}
	}
	return models.User{}, ErrNotFound
}

// GetByEmail returns the user with exactly the given email, or
// ErrNotFound. The lookup is exact; only the uniqueness check at
// registration is case-insensitive.
func (r *Users) GetByEmail(ctx context.Context, email string) (models.User, error) {
	for _, u := range r.List(ctx) {
		if u.Email == email {
			return u, nil
		}
	}
	return models.User{}, ErrNotFound
}

// Create registers a new user. The email must be unique across users,
// compared case-insensitively. The id is assigned here.
func (r *Users) Create(ctx context.Context, user models.User) (models.User, error) {
	users := r.List(ctx)

	for _, u := range users {
		if strings.EqualFold(u.Email, user.Email) {
			return models.User{}, validationErr("email", "this email is already registered")
		}
	}

	user.ID = uuid.NewString()
	if err := saveCollection(ctx, r.store, usersKey, append(users, user)); err != nil {
		return models.User{}, err
	}
	return user, nil
}

// EnsureAdmin seeds the fixed administrator account when the users key
// has never been written. An already-initialized (even empty) users
// collection is left alone.
func (r *Users) EnsureAdmin(ctx context.Context) error {
	_, err := r.store.Get(ctx, usersKey)
	if err == nil {
		return nil
	}
	if errors.Is(err, kvstore.ErrUnavailable) {
		return nil
	}
	if !errors.Is(err, kvstore.ErrKeyNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	admin := models.User{
		ID:           adminID,
		Name:         adminName,
		Email:        adminEmail,
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
	}
	r.log.Info("seeding administrator account", zap.String("email", adminEmail))
	return saveCollection(ctx, r.store, usersKey, []models.User{admin})
}
