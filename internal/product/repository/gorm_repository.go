package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"rentit-backend/internal/product/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// gormProductRepository implements ProductRepository using GORM
type gormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GORM-based ProductRepository
func NewGormProductRepository(db *gorm.DB) ProductRepository {
	return &gormProductRepository{db: db}
}

func (r *gormProductRepository) Create(ctx context.Context, product *domain.Product) error {
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	now := time.Now()
	product.CreatedAt = now
	product.UpdatedAt = now

	// Owner is returned to clients but never written through a product.
	if err := r.db.WithContext(ctx).Omit("Owner").Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

func (r *gormProductRepository) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, nil
	}

	var product domain.Product
	err := r.db.WithContext(ctx).Preload("Owner").Where("id = ?", id).First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find product: %w", err)
	}
	return &product, nil
}

func (r *gormProductRepository) FindAll(ctx context.Context) ([]*domain.Product, error) {
	return r.find(r.db.WithContext(ctx))
}

func (r *gormProductRepository) FindByOwner(ctx context.Context, ownerID string) ([]*domain.Product, error) {
	if _, err := uuid.Parse(ownerID); err != nil {
		return []*domain.Product{}, nil
	}
	return r.find(r.db.WithContext(ctx).Where("owner_id = ?", ownerID))
}

func (r *gormProductRepository) find(query *gorm.DB) ([]*domain.Product, error) {
	products := []*domain.Product{}
	if err := query.Preload("Owner").Order("created_at DESC").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

func (r *gormProductRepository) Update(ctx context.Context, id, ownerID string, columns map[string]any) (bool, error) {
	values := make(map[string]any, len(columns)+1)
	for k, v := range columns {
		values[k] = v
	}
	values["updated_at"] = time.Now()

	result := r.ownedBy(ctx, id, ownerID).Updates(values)
	if result.Error != nil {
		return false, fmt.Errorf("failed to update product: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *gormProductRepository) ToggleAvailability(ctx context.Context, id, ownerID string) (bool, error) {
	result := r.ownedBy(ctx, id, ownerID).Updates(map[string]any{
		"is_available": gorm.Expr("NOT is_available"),
		"updated_at":   time.Now(),
	})
	if result.Error != nil {
		return false, fmt.Errorf("failed to toggle product: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *gormProductRepository) Delete(ctx context.Context, id, ownerID string) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Delete(&domain.Product{})
	if result.Error != nil {
		return false, fmt.Errorf("failed to delete product: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *gormProductRepository) ownedBy(ctx context.Context, id, ownerID string) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&domain.Product{}).
		Where("id = ? AND owner_id = ?", id, ownerID)
}
