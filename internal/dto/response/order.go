package response

import (
	"time"

	"greenmart/internal/data/entity"

	"github.com/shopspring/decimal"
)

type OrderResponse struct {
	ID           int64               `json:"id"`
	CustomerName string              `json:"customer_name"`
	Email        string              `json:"email"`
	Phone        *string             `json:"phone"`
	Address      string              `json:"address"`
	Total        decimal.Decimal     `json:"total"`
	Status       entity.OrderStatus  `json:"status"`
	CreatedAt    time.Time           `json:"created_at"`
	Items        []OrderItemResponse `json:"items,omitempty"`
}

type OrderItemResponse struct {
	ID        int64           `json:"id"`
	OrderID   int64           `json:"order_id"`
	ProductID int64           `json:"product_id"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

func OrderToResponse(o *entity.Order, items []*entity.OrderItem) OrderResponse {
	resp := OrderResponse{
		ID:           o.ID,
		CustomerName: o.CustomerName,
		Email:        o.Email,
		Phone:        o.Phone,
		Address:      o.Address,
		Total:        o.Total,
		Status:       o.Status,
		CreatedAt:    o.CreatedAt,
	}

	if len(items) > 0 {
		resp.Items = make([]OrderItemResponse, len(items))
		for i, item := range items {
			resp.Items[i] = OrderItemResponse{
				ID:        item.ID,
				OrderID:   item.OrderID,
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				Price:     item.Price,
				Subtotal:  item.Subtotal(),
			}
		}
	}

	return resp
}
