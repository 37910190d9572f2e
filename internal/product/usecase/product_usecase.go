package usecase

import (
	"context"
	"strings"

	"rentit-backend/internal/product/domain"
	"rentit-backend/internal/product/dto"
	"rentit-backend/internal/product/repository"
	"rentit-backend/pkg/apperror"
	"rentit-backend/pkg/logger"
	"rentit-backend/pkg/storage"
)

// productUsecase implements ProductUsecase interface
type productUsecase struct {
	productRepo   repository.ProductRepository
	images        storage.ImageStore
	maxImageBytes int64
	log           *logger.Logger
}

// NewProductUsecase creates a new instance of productUsecase
func NewProductUsecase(productRepo repository.ProductRepository, images storage.ImageStore, maxImageBytes int64, log *logger.Logger) ProductUsecase {
	return &productUsecase{
		productRepo:   productRepo,
		images:        images,
		maxImageBytes: maxImageBytes,
		log:           log.With("component", "product"),
	}
}

func (u *productUsecase) CreateProduct(ctx context.Context, ownerID string, req *dto.CreateProductRequest, image *storage.Image) (*domain.Product, error) {
	name := strings.TrimSpace(req.Name)
	description := strings.TrimSpace(req.Description)
	category := domain.Category(strings.ToLower(strings.TrimSpace(req.Category)))

	if name == "" || description == "" || category == "" || req.Price == nil {
		return nil, apperror.BadRequest("All fields are required")
	}
	if !category.IsValid() {
		return nil, apperror.BadRequest("Invalid category")
	}
	if *req.Price < 0 {
		return nil, apperror.BadRequest("Price must not be negative")
	}
	if err := u.validateImage(image); err != nil {
		return nil, err
	}

	uploaded, err := u.images.Upload(ctx, *image)
	if err != nil {
		return nil, apperror.Internal("Image upload failed", err)
	}

	product := &domain.Product{
		Name:          name,
		Category:      category,
		Price:         *req.Price,
		Description:   description,
		Image:         uploaded.URL,
		ImagePublicID: uploaded.PublicID,
		IsAvailable:   true,
		OwnerID:       ownerID,
	}

	if err := u.productRepo.Create(ctx, product); err != nil {
		u.removeImage(ctx, uploaded.PublicID)
		return nil, apperror.Internal("Failed to create product", err)
	}

	u.log.InfoContext(ctx, "product created", "product_id", product.ID, "owner_id", ownerID)

	// Reload so the response carries the owner.
	created, err := u.productRepo.FindByID(ctx, product.ID)
	if err != nil || created == nil {
		return product, nil
	}
	return created, nil
}

func (u *productUsecase) GetAllProducts(ctx context.Context) ([]*domain.Product, error) {
	products, err := u.productRepo.FindAll(ctx)
	if err != nil {
		return nil, apperror.Internal("Failed to fetch products", err)
	}
	return products, nil
}

func (u *productUsecase) GetUserProducts(ctx context.Context, ownerID string) ([]*domain.Product, error) {
	products, err := u.productRepo.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, apperror.Internal("Failed to fetch products", err)
	}
	return products, nil
}

func (u *productUsecase) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	product, err := u.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, apperror.Internal("Failed to fetch product", err)
	}
	if product == nil {
		return nil, apperror.NotFound("Product not found")
	}
	return product, nil
}

func (u *productUsecase) UpdateProduct(ctx context.Context, id, requesterID string, req *dto.UpdateProductRequest) (*domain.Product, error) {
	if req == nil || req.IsEmpty() {
		return nil, apperror.BadRequest("No fields to update")
	}

	columns, err := updateColumns(req)
	if err != nil {
		return nil, err
	}

	if _, err := u.getOwnedProduct(ctx, id, requesterID); err != nil {
		return nil, err
	}

	ok, err := u.productRepo.Update(ctx, id, requesterID, columns)
	if err != nil {
		return nil, apperror.Internal("Failed to update product", err)
	}
	if !ok {
		return nil, apperror.NotFound("Product not found")
	}

	return u.GetProduct(ctx, id)
}

func (u *productUsecase) DeleteProduct(ctx context.Context, id, requesterID string) error {
	product, err := u.getOwnedProduct(ctx, id, requesterID)
	if err != nil {
		return err
	}

	ok, err := u.productRepo.Delete(ctx, id, requesterID)
	if err != nil {
		return apperror.Internal("Failed to delete product", err)
	}
	if !ok {
		return apperror.NotFound("Product not found")
	}

	u.removeImage(ctx, product.ImagePublicID)
	u.log.InfoContext(ctx, "product deleted", "product_id", id, "owner_id", requesterID)
	return nil
}

func (u *productUsecase) ToggleProduct(ctx context.Context, id, requesterID string) (*domain.Product, error) {
	if _, err := u.getOwnedProduct(ctx, id, requesterID); err != nil {
		return nil, err
	}

	ok, err := u.productRepo.ToggleAvailability(ctx, id, requesterID)
	if err != nil {
		return nil, apperror.Internal("Failed to toggle product", err)
	}
	if !ok {
		return nil, apperror.NotFound("Product not found")
	}

	return u.GetProduct(ctx, id)
}

// getOwnedProduct checks existence first, then ownership.
func (u *productUsecase) getOwnedProduct(ctx context.Context, id, requesterID string) (*domain.Product, error) {
	product, err := u.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	if product.OwnerID != requesterID {
		return nil, apperror.Forbidden("You are not allowed to modify this product")
	}
	return product, nil
}

func (u *productUsecase) validateImage(image *storage.Image) error {
	if image == nil || image.Reader == nil {
		return apperror.BadRequest("Product image is required")
	}
	if !strings.HasPrefix(strings.ToLower(image.ContentType), "image/") {
		return apperror.BadRequest("Only image files are allowed")
	}
	if u.maxImageBytes > 0 && image.Size > u.maxImageBytes {
		return apperror.BadRequest("Image is too large")
	}
	return nil
}

func (u *productUsecase) removeImage(ctx context.Context, publicID string) {
	if publicID == "" {
		return
	}
	if err := u.images.Delete(ctx, publicID); err != nil {
		u.log.WarnContext(ctx, "failed to remove product image", "public_id", publicID, "error", err)
	}
}

// updateColumns validates req and maps it to column values.
func updateColumns(req *dto.UpdateProductRequest) (map[string]any, error) {
	columns := map[string]any{}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, apperror.BadRequest("Name must not be empty")
		}
		columns["name"] = name
	}
	if req.Category != nil {
		category := domain.Category(strings.ToLower(strings.TrimSpace(*req.Category)))
		if !category.IsValid() {
			return nil, apperror.BadRequest("Invalid category")
		}
		columns["category"] = string(category)
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return nil, apperror.BadRequest("Price must not be negative")
		}
		columns["price"] = *req.Price
	}
	if req.Description != nil {
		description := strings.TrimSpace(*req.Description)
		if description == "" {
			return nil, apperror.BadRequest("Description must not be empty")
		}
		columns["description"] = description
	}
	if req.IsAvailable != nil {
		columns["is_available"] = *req.IsAvailable
	}

	return columns, nil
}
