package domain

import (
	"time"

	authdomain "rentit-backend/internal/auth/domain"
)

// Category is the fixed set of listing categories
type Category string

const (
	CategoryCars       Category = "cars"
	CategoryBikes      Category = "bikes"
	CategoryProperties Category = "properties"
	CategoryFurniture  Category = "furniture"
	CategoryStationary Category = "stationary"
	CategoryOthers     Category = "others"
)

var categories = []Category{
	CategoryCars,
	CategoryBikes,
	CategoryProperties,
	CategoryFurniture,
	CategoryStationary,
	CategoryOthers,
}

func (c Category) IsValid() bool {
	for _, known := range categories {
		if c == known {
			return true
		}
	}
	return false
}

// Categories returns every valid category.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// Product is a rentable listing owned by one user
type Product struct {
	ID            string           `gorm:"type:uuid;primaryKey"`
	Name          string           `gorm:"not null"`
	Category      Category         `gorm:"not null"`
	Price         float64          `gorm:"not null"`
	Description   string           `gorm:"not null"`
	Image         string           `gorm:"not null"`
	ImagePublicID string           `gorm:"column:image_public_id;not null"`
	IsAvailable   bool             `gorm:"not null"`
	OwnerID       string           `gorm:"type:uuid;index;not null"`
	Owner         *authdomain.User `gorm:"foreignKey:OwnerID"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (Product) TableName() string {
	return "products"
}
