package repository

import (
	"context"

	"rentit-backend/internal/product/domain"
)

// ProductRepository defines the interface for product data access. Lookups
// return nil, nil when no row matches; writes scoped by owner report
// whether a row was affected.
type ProductRepository interface {
	// Create inserts a new product
	Create(ctx context.Context, product *domain.Product) error

	// FindByID finds a product by its ID with the owner loaded
	FindByID(ctx context.Context, id string) (*domain.Product, error)

	// FindAll returns every product, newest first
	FindAll(ctx context.Context) ([]*domain.Product, error)

	// FindByOwner returns the products listed by one user, newest first
	FindByOwner(ctx context.Context, ownerID string) ([]*domain.Product, error)

	// Update applies columns to the product only if ownerID owns it
	Update(ctx context.Context, id, ownerID string, columns map[string]any) (bool, error)

	// ToggleAvailability flips is_available only if ownerID owns the product
	ToggleAvailability(ctx context.Context, id, ownerID string) (bool, error)

	// Delete removes the product only if ownerID owns it
	Delete(ctx context.Context, id, ownerID string) (bool, error)
}
