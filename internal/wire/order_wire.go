package wire

import (
	"greenmart/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

// Checkout is open to guests, so order routes need no token.
func wireOrder(r chi.Router, orderHandler *adaptor.OrderHandler) {
	r.Post("/orders", orderHandler.CreateOrder)
	r.Get("/orders/{id}", orderHandler.GetOrderByID)
}
