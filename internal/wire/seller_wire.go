package wire

import (
	"greenmart/internal/adaptor"
	"greenmart/internal/data/entity"
	"greenmart/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireSeller(r chi.Router, sellerHandler *adaptor.SellerHandler, log *zap.Logger) {
	r.Route("/seller", func(r chi.Router) {
		r.Use(middleware.Authenticated(log))
		r.Use(middleware.Role(entity.RoleSeller, log))

		r.Get("/products", sellerHandler.GetProducts)
		r.Post("/products", sellerHandler.CreateProduct)
		r.Get("/products/{id}", sellerHandler.GetProductByID)
		r.Put("/products/{id}", sellerHandler.UpdateProduct)
		r.Delete("/products/{id}", sellerHandler.DeleteProduct)
	})
}
