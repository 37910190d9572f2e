package dto

import (
	"time"

	authdomain "rentit-backend/internal/auth/domain"
	"rentit-backend/internal/product/domain"
)

// CreateProductRequest is the multipart form of a new listing; the image
// travels as the "image" file part.
type CreateProductRequest struct {
	Name        string   `form:"name" binding:"required"`
	Category    string   `form:"category" binding:"required"`
	Price       *float64 `form:"price" binding:"required,gte=0"`
	Description string   `form:"description" binding:"required"`
}

// UpdateProductRequest lists every field an owner may change. Decoding
// rejects any other key.
type UpdateProductRequest struct {
	Name        *string  `json:"name,omitempty"`
	Category    *string  `json:"category,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Description *string  `json:"description,omitempty"`
	IsAvailable *bool    `json:"isAvailable,omitempty"`
}

func (r *UpdateProductRequest) IsEmpty() bool {
	return r.Name == nil && r.Category == nil && r.Price == nil && r.Description == nil && r.IsAvailable == nil
}

type ProductResponse struct {
	ID            string                 `json:"id"`
	Name          string                 `json:"name"`
	Category      domain.Category        `json:"category"`
	Price         float64                `json:"price"`
	Description   string                 `json:"description"`
	Image         string                 `json:"image"`
	ImagePublicID string                 `json:"imagePublicId"`
	IsAvailable   bool                   `json:"isAvailable"`
	OwnerID       string                 `json:"ownerId"`
	Owner         *authdomain.PublicUser `json:"owner"`
	CreatedAt     time.Time              `json:"createdAt"`
	UpdatedAt     time.Time              `json:"updatedAt"`
}

func NewProductResponse(p *domain.Product) *ProductResponse {
	return &ProductResponse{
		ID:            p.ID,
		Name:          p.Name,
		Category:      p.Category,
		Price:         p.Price,
		Description:   p.Description,
		Image:         p.Image,
		ImagePublicID: p.ImagePublicID,
		IsAvailable:   p.IsAvailable,
		OwnerID:       p.OwnerID,
		Owner:         p.Owner.Public(),
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func NewProductResponses(products []*domain.Product) []*ProductResponse {
	out := make([]*ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, NewProductResponse(p))
	}
	return out
}
