package adaptor

import (
	"net/http"

	"greenmart/internal/data/entity"
	"greenmart/internal/data/repository"
	"greenmart/internal/dto/request"
	"greenmart/internal/usecase"
	"greenmart/pkg/middleware"
	"greenmart/pkg/utils"

	"go.uber.org/zap"
)

// SellerHandler manages the calling seller's own products. Every route sits
// behind middleware.Role(entity.RoleSeller).
type SellerHandler struct {
	service usecase.CatalogService
	log     *zap.Logger
}

func NewSellerHandler(service usecase.CatalogService, log *zap.Logger) *SellerHandler {
	return &SellerHandler{
		service: service,
		log:     log.With(zap.String("handler", "seller")),
	}
}

func (h *SellerHandler) seller(w http.ResponseWriter, r *http.Request) (*entity.User, bool) {
	user, _ := utils.GetUserFromContext(r.Context())
	user, err := middleware.RequireRole(user, entity.RoleSeller)
	if err != nil {
		writeServiceError(w, h.log, err, "seller access")
		return nil, false
	}
	return user, true
}

// GetProducts handles GET /seller/products
func (h *SellerHandler) GetProducts(w http.ResponseWriter, r *http.Request) {
	user, ok := h.seller(w, r)
	if !ok {
		return
	}

	products, err := h.service.ListProducts(r.Context(), repository.ProductFilter{SellerID: &user.ID})
	if err != nil {
		writeServiceError(w, h.log, err, "get seller products")
		return
	}

	utils.ResponseSuccess(w, "Products retrieved successfully", products)
}

// GetProductByID handles GET /seller/products/{id}
func (h *SellerHandler) GetProductByID(w http.ResponseWriter, r *http.Request) {
	user, ok := h.seller(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	product, err := h.service.GetProduct(r.Context(), id, repository.SellerScope(user.ID))
	if err != nil {
		writeServiceError(w, h.log, err, "get seller product")
		return
	}

	utils.ResponseSuccess(w, "Product retrieved successfully", product)
}

// CreateProduct handles POST /seller/products
func (h *SellerHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	user, ok := h.seller(w, r)
	if !ok {
		return
	}

	var req request.ProductRequest
	if !decodeBody(w, r, &req) {
		return
	}

	product, err := h.service.CreateProduct(r.Context(), &user.ID, &req)
	if err != nil {
		writeServiceError(w, h.log, err, "create seller product")
		return
	}

	utils.ResponseCreated(w, "Product created successfully", product)
}

// UpdateProduct handles PUT /seller/products/{id}
func (h *SellerHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	user, ok := h.seller(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req request.ProductUpdateRequest
	if !decodeBody(w, r, &req) {
		return
	}

	product, err := h.service.UpdateProduct(r.Context(), id, repository.SellerScope(user.ID), &req)
	if err != nil {
		writeServiceError(w, h.log, err, "update seller product")
		return
	}

	utils.ResponseSuccess(w, "Product updated successfully", product)
}

// DeleteProduct handles DELETE /seller/products/{id}
func (h *SellerHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	user, ok := h.seller(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteProduct(r.Context(), id, repository.SellerScope(user.ID)); err != nil {
		writeServiceError(w, h.log, err, "delete seller product")
		return
	}

	utils.ResponseSuccess(w, "Product deleted successfully", nil)
}
