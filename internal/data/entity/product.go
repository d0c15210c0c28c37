package entity

import "github.com/shopspring/decimal"

type Product struct {
	Base
	Name        string          `db:"name"`
	Description *string         `db:"description"`
	Price       decimal.Decimal `db:"price"`
	ImageURL    *string         `db:"image_url"`
	CategoryID  *int64          `db:"category_id"`
	SellerID    *int64          `db:"seller_id"`
	Stock       int             `db:"stock"`
}

// OwnedBy reports whether the product was created by the given seller.
func (p *Product) OwnedBy(sellerID int64) bool {
	return p.SellerID != nil && *p.SellerID == sellerID
}
