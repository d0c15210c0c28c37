package request

import "github.com/shopspring/decimal"

// ProductRequest creates a product. Price is a pointer so an explicit 0 can
// be told apart from a missing field.
type ProductRequest struct {
	Name        string           `json:"name" validate:"required,min=1,max=200"`
	Description *string          `json:"description,omitempty"`
	Price       *decimal.Decimal `json:"price" validate:"omitempty,gte=0"`
	ImageURL    *string          `json:"image_url,omitempty" validate:"omitempty,max=500"`
	CategoryID  *int64           `json:"category_id,omitempty" validate:"omitempty,gt=0"`
	Stock       int              `json:"stock" validate:"gte=0"`
}

// ProductUpdateRequest changes only the fields that are present.
type ProductUpdateRequest struct {
	Name        *string          `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Description *string          `json:"description,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty" validate:"omitempty,gte=0"`
	ImageURL    *string          `json:"image_url,omitempty" validate:"omitempty,max=500"`
	CategoryID  *int64           `json:"category_id,omitempty" validate:"omitempty,gt=0"`
	Stock       *int             `json:"stock,omitempty" validate:"omitempty,gte=0"`
}
