package wire

import (
	"greenmart/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireCatalog(r chi.Router, productHandler *adaptor.ProductHandler, categoryHandler *adaptor.CategoryHandler) {
	r.Get("/products", productHandler.GetProducts)
	r.Get("/products/{id}", productHandler.GetProductByID)
	r.Get("/categories", categoryHandler.GetCategories)
}
