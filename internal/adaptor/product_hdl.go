package adaptor

import (
	"net/http"

	"greenmart/internal/data/repository"
	"greenmart/internal/usecase"
	"greenmart/pkg/utils"

	"go.uber.org/zap"
)

// ProductHandler serves the public catalog.
type ProductHandler struct {
	service usecase.CatalogService
	log     *zap.Logger
}

func NewProductHandler(service usecase.CatalogService, log *zap.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		log:     log.With(zap.String("handler", "product")),
	}
}

// GetProducts handles GET /products?category={slug}
func (h *ProductHandler) GetProducts(w http.ResponseWriter, r *http.Request) {
	filter := repository.ProductFilter{CategorySlug: r.URL.Query().Get("category")}

	products, err := h.service.ListProducts(r.Context(), filter)
	if err != nil {
		writeServiceError(w, h.log, err, "get products")
		return
	}

	utils.ResponseSuccess(w, "Products retrieved successfully", products)
}

// GetProductByID handles GET /products/{id}
func (h *ProductHandler) GetProductByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	product, err := h.service.GetProduct(r.Context(), id, repository.Unscoped())
	if err != nil {
		writeServiceError(w, h.log, err, "get product")
		return
	}

	utils.ResponseSuccess(w, "Product retrieved successfully", product)
}
