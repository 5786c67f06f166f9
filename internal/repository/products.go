package repository

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/delarro/freshbites/internal/kvstore"
	"github.com/delarro/freshbites/internal/models"
)

// minDescriptionLen is the minimum length of a product description,
// when one is provided at all.
const minDescriptionLen = 10

// Products is the repository over the products collection.
type Products struct {
	store kvstore.Store
	log   *zap.Logger
}

// NewProducts creates a product repository backed by the given store.
func NewProducts(store kvstore.Store, log *zap.Logger) *Products {
	return &Products{store: store, log: log}
}

// List returns every product in the catalog.
func (r *Products) List(ctx context.Context) []models.Product {
	prods, err := loadCollection[models.Product](ctx, r.store, productsKey)
	if err != nil {
		r.log.Warn("discarding unreadable products collection", zap.Error(err))
	}
	return prods
}

// GetByID returns the product with the given id, or ErrNotFound.
func (r *Products) GetByID(ctx context.Context, id string) (models.Product, error) {
	for _, p := range r.List(ctx) {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Product{}, ErrNotFound
}

// validateFields checks the field rules shared by Create and Update.
func validateFields(p models.Product) error {
	if !p.Price.IsPositive() {
		return validationErr("price", "price must be a positive number")
	}
	if p.Description != "" && utf8.RuneCountInString(p.Description) < minDescriptionLen {
		return validationErr("description", "description must be at least 10 characters")
	}
	return nil
}

// Create adds a new product. The price must be strictly positive, the
// description (when present) at least ten characters, and the name
// unique among products compared case-insensitively. The id is
// assigned here; any id on the input is ignored.
func (r *Products) Create(ctx context.Context, product models.Product) (models.Product, error) {
	if err := validateFields(product); err != nil {
		return models.Product{}, err
	}

	prods := r.List(ctx)
	for _, p := range prods {
		if strings.EqualFold(p.Name, product.Name) {
			return models.Product{}, validationErr("name", "a product with this name already exists")
		}
	}

	product.ID = uuid.NewString()
	if err := saveCollection(ctx, r.store, productsKey, append(prods, product)); err != nil {
		return models.Product{}, err
	}
	return product, nil
}

// Update replaces the fields of the product with the given id,
// re-running the same validation against all other products.
func (r *Products) Update(ctx context.Context, id string, product models.Product) error {
	if err := validateFields(product); err != nil {
		return err
	}

	prods := r.List(ctx)
	for _, p := range prods {
		if strings.EqualFold(p.Name, product.Name) && p.ID != id {
			return validationErr("name", "another product with this name already exists")
		}
	}

	for i, p := range prods {
		if p.ID == id {
			product.ID = id
			prods[i] = product
			return saveCollection(ctx, r.store, productsKey, prods)
		}
	}
	return ErrNotFound
}

// Delete removes the product with the given id.
func (r *Products) Delete(ctx context.Context, id string) error {
	prods := r.List(ctx)

	kept := prods[:0]
	for _, p := range prods {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	if len(kept) == len(prods) {
		return ErrNotFound
	}
	return saveCollection(ctx, r.store, productsKey, kept)
}

// EnsureInitialized writes an empty products collection when the key
// has never been set, so later reads distinguish "no products" from
// "never initialized".
func (r *Products) EnsureInitialized(ctx context.Context) error {
	_, err := r.store.Get(ctx, productsKey)
	if err == nil || errors.Is(err, kvstore.ErrUnavailable) {
		return nil
	}
	if !errors.Is(err, kvstore.ErrKeyNotFound) {
		return err
	}
	return saveCollection(ctx, r.store, productsKey, []models.Product{})
}
