package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/delarro/freshbites/internal/kvstore"
	"github.com/delarro/freshbites/internal/models"
)

func newUsers(t *testing.T) (*Users, kvstore.Store) {
	t.Helper()
	store := kvstore.NewMemoryStore()
	return NewUsers(store, zap.NewNop()), store
}

func TestEnsureAdmin_SeedsOnFirstRun(t *testing.T) {
	repo, _ := newUsers(t)
	ctx := context.Background()

	require.NoError(t, repo.EnsureAdmin(ctx))

	admin, err := repo.GetByEmail(ctx, "admin@admin.com")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, admin.Role)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte("admin1234")))

	// second run leaves the collection alone
	require.NoError(t, repo.EnsureAdmin(ctx))
	assert.Len(t, repo.List(ctx), 1)
}

func TestEnsureAdmin_UnavailableBackend(t *testing.T) {
	repo := NewUsers(kvstore.Unavailable{}, zap.NewNop())
	assert.NoError(t, repo.EnsureAdmin(context.Background()))
}

func TestUserCreate_DuplicateEmail(t *testing.T) {
	repo, _ := newUsers(t)
	ctx := context.Background()

	_, err := repo.Create(ctx, models.User{Name: "Ana", Email: "ana@example.com", Role: models.RoleUser})
	require.NoError(t, err)

	_, err = repo.Create(ctx, models.User{Name: "Other", Email: "ANA@example.com", Role: models.RoleUser})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "email", verr.Field)
	assert.Len(t, repo.List(ctx), 1)
}

func TestUserLookups(t *testing.T) {
	repo, _ := newUsers(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, models.User{Name: "Ana", Email: "ana@example.com", Role: models.RoleUser})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	byID, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana", byID.Name)

	byEmail, err := repo.GetByEmail(ctx, "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)

	// email lookup is exact
	_, err = repo.GetByEmail(ctx, "ANA@example.com")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}
