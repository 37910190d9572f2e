package usecase

import (
	"context"

	"rentit-backend/internal/product/domain"
	"rentit-backend/internal/product/dto"
	"rentit-backend/pkg/storage"
)

// ProductUsecase defines the interface for product business logic. Every
// mutation requires the requester to be the product owner.
type ProductUsecase interface {
	// CreateProduct validates the listing, uploads the image and stores the product
	CreateProduct(ctx context.Context, ownerID string, req *dto.CreateProductRequest, image *storage.Image) (*domain.Product, error)

	GetAllProducts(ctx context.Context) ([]*domain.Product, error)
	GetUserProducts(ctx context.Context, ownerID string) ([]*domain.Product, error)
	GetProduct(ctx context.Context, id string) (*domain.Product, error)

	// UpdateProduct applies the whitelisted fields of req
	UpdateProduct(ctx context.Context, id, requesterID string, req *dto.UpdateProductRequest) (*domain.Product, error)

	// DeleteProduct removes the product and then its image
	DeleteProduct(ctx context.Context, id, requesterID string) error

	// ToggleProduct flips the availability flag
	ToggleProduct(ctx context.Context, id, requesterID string) (*domain.Product, error)
}
