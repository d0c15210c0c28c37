package wire

import (
	"greenmart/internal/adaptor"
	"greenmart/internal/data/entity"
	"greenmart/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAdmin(r chi.Router, adminHandler *adaptor.AdminHandler, log *zap.Logger) {
	r.Route("/admin", func(r chi.Router) {
		r.Use(middleware.Authenticated(log)) // Must be authenticated
		r.Use(middleware.Role(entity.RoleAdmin, log))

		r.Get("/products", adminHandler.GetProducts)
		r.Post("/products", adminHandler.CreateProduct)
		r.Put("/products/{id}", adminHandler.UpdateProduct)
		r.Delete("/products/{id}", adminHandler.DeleteProduct)

		r.Get("/categories", adminHandler.GetCategories)
		r.Post("/categories", adminHandler.CreateCategory)
		r.Put("/categories/{id}", adminHandler.UpdateCategory)
		r.Delete("/categories/{id}", adminHandler.DeleteCategory)

		r.Get("/orders", adminHandler.GetOrders)
		r.Get("/orders/{id}", adminHandler.GetOrderByID)
	})
}
