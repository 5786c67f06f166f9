package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/delarro/freshbites/internal/kvstore"
	"github.com/delarro/freshbites/internal/models"
)

// Categories is the repository over the categories collection.
type Categories struct {
	store kvstore.Store
	log   *zap.Logger
}

// NewCategories creates a category repository backed by the given store.
func NewCategories(store kvstore.Store, log *zap.Logger) *Categories {
	return &Categories{store: store, log: log}
}

// List returns every category.
func (r *Categories) List(ctx context.Context) []models.Category {
	cats, err := loadCollection[models.Category](ctx, r.store, categoriesKey)
	if err != nil {
		r.log.Warn("discarding unreadable categories collection", zap.Error(err))
	}
	return cats
}

// GetByID returns the category with the given id, or ErrNotFound.
func (r *Categories) GetByID(ctx context.Context, id string) (models.Category, error) {
	for _, c := range r.List(ctx) {
		if c.ID == id {
			return c, nil
		}
	}
	return models.Category{}, ErrNotFound
}

// Create adds a new category. The name must be unique, compared
// case-insensitively.
func (r *Categories) Create(ctx context.Context, name string) (models.Category, error) {
	cats := r.List(ctx)

	for _, c := range cats {
		if strings.EqualFold(c.Name, name) {
			return models.Category{}, validationErr("name", "a category with this name already exists")
		}
	}

	cat := models.Category{ID: uuid.NewString(), Name: name}
	if err := saveCollection(ctx, r.store, categoriesKey, append(cats, cat)); err != nil {
		return models.Category{}, err
	}
	return cat, nil
}

// Update renames the category with the given id. The new name must not
// collide with any other category.
func (r *Categories) Update(ctx context.Context, id, name string) error {
	cats := r.List(ctx)

	for _, c := range cats {
		if strings.EqualFold(c.Name, name) && c.ID != id {
			return validationErr("name", "another category with this name already exists")
		}
	}

	for i, c := range cats {
		if c.ID == id {
			cats[i].Name = name
			return saveCollection(ctx, r.store, categoriesKey, cats)
		}
	}
	return ErrNotFound
}

// Delete removes the category with the given id.
func (r *Categories) Delete(ctx context.Context, id string) error {
	cats := r.List(ctx)

	kept := cats[:0]
	for _, c := range cats {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	if len(kept) == len(cats) {
		return ErrNotFound
	}
	return saveCollection(ctx, r.store, categoriesKey, kept)
}
