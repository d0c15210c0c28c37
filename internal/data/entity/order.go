package entity

import "github.com/shopspring/decimal"

type OrderStatus string

const (
	OrderStatusPending OrderStatus = "pending"
)

type Order struct {
	Base
	CustomerName string          `db:"customer_name"`
	Email        string          `db:"email"`
	Phone        *string         `db:"phone"`
	Address      string          `db:"address"`
	Total        decimal.Decimal `db:"total"`
	Status       OrderStatus     `db:"status"`
}

// OrderItem is immutable once written; Price is the unit price at purchase time.
type OrderItem struct {
	ID        int64           `db:"id"`
	OrderID   int64           `db:"order_id"`
	ProductID int64           `db:"product_id"`
	Quantity  int             `db:"quantity"`
	Price     decimal.Decimal `db:"price"`
}

func (i OrderItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
