package response

import (
	"time"

	"greenmart/internal/data/entity"

	"github.com/shopspring/decimal"
)

type ProductResponse struct {
	ID          int64             `json:"id"`
	Name        string            `json:"name"`
	Description *string           `json:"description"`
	Price       decimal.Decimal   `json:"price"`
	ImageURL    *string           `json:"image_url"`
	CategoryID  *int64            `json:"category_id"`
	Category    *CategoryResponse `json:"category,omitempty"`
	SellerID    *int64            `json:"seller_id"`
	Stock       int               `json:"stock"`
	CreatedAt   time.Time         `json:"created_at"`
}

// ProductToResponse converts p. category may be nil.
func ProductToResponse(p *entity.Product, category *entity.Category) ProductResponse {
	resp := ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		ImageURL:    p.ImageURL,
		CategoryID:  p.CategoryID,
		SellerID:    p.SellerID,
		Stock:       p.Stock,
		CreatedAt:   p.CreatedAt,
	}
	if category != nil {
		c := CategoryToResponse(category)
		resp.Category = &c
	}
	return resp
}
