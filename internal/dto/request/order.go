package request

type CreateOrderRequest struct {
	CustomerName string             `json:"customer_name" validate:"required,min=1,max=200"`
	Email        string             `json:"email" validate:"required,email,max=200"`
	Phone        *string            `json:"phone,omitempty" validate:"omitempty,max=50"`
	Address      string             `json:"address" validate:"required,min=1"`
	Items        []OrderLineRequest `json:"items" validate:"required,min=1,dive"`
}

type OrderLineRequest struct {
	ProductID int64 `json:"product_id" validate:"required,gt=0"`
	Quantity  int   `json:"quantity" validate:"gt=0"`
}
