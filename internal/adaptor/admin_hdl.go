package adaptor

import (
	"net/http"

	"greenmart/internal/data/repository"
	"greenmart/internal/dto/request"
	"greenmart/internal/usecase"
	"greenmart/pkg/utils"

	"go.uber.org/zap"
)

// AdminHandler serves /admin/*. Product operations here are not scoped to a
// seller.
type AdminHandler struct {
	catalog usecase.CatalogService
	orders  usecase.OrderService
	log     *zap.Logger
}

func NewAdminHandler(catalog usecase.CatalogService, orders usecase.OrderService, log *zap.Logger) *AdminHandler {
	return &AdminHandler{
		catalog: catalog,
		orders:  orders,
		log:     log.With(zap.String("handler", "admin")),
	}
}

// GetProducts handles GET /admin/products
func (h *AdminHandler) GetProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.ListProducts(r.Context(), repository.ProductFilter{
		CategorySlug: r.URL.Query().Get("category"),
	})
	if err != nil {
		writeServiceError(w, h.log, err, "get products")
		return
	}

	utils.ResponseSuccess(w, "Products retrieved successfully", products)
}

// CreateProduct handles POST /admin/products
func (h *AdminHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req request.ProductRequest
	if !decodeBody(w, r, &req) {
		return
	}

	product, err := h.catalog.CreateProduct(r.Context(), nil, &req)
	if err != nil {
		writeServiceError(w, h.log, err, "create product")
		return
	}

	utils.ResponseCreated(w, "Product created successfully", product)
}

// UpdateProduct handles PUT /admin/products/{id}
func (h *AdminHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req request.ProductUpdateRequest
	if !decodeBody(w, r, &req) {
		return
	}

	product, err := h.catalog.UpdateProduct(r.Context(), id, repository.Unscoped(), &req)
	if err != nil {
		writeServiceError(w, h.log, err, "update product")
		return
	}

	utils.ResponseSuccess(w, "Product updated successfully", product)
}

// DeleteProduct handles DELETE /admin/products/{id}
func (h *AdminHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.catalog.DeleteProduct(r.Context(), id, repository.Unscoped()); err != nil {
		writeServiceError(w, h.log, err, "delete product")
		return
	}

	utils.ResponseSuccess(w, "Product deleted successfully", nil)
}

// GetCategories handles GET /admin/categories
func (h *AdminHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalog.ListCategories(r.Context())
	if err != nil {
		writeServiceError(w, h.log, err, "get categories")
		return
	}

	utils.ResponseSuccess(w, "Categories retrieved successfully", categories)
}

// CreateCategory handles POST /admin/categories
func (h *AdminHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req request.CategoryRequest
	if !decodeBody(w, r, &req) {
		return
	}

	category, err := h.catalog.CreateCategory(r.Context(), &req)
	if err != nil {
		writeServiceError(w, h.log, err, "create category")
		return
	}

	utils.ResponseCreated(w, "Category created successfully", category)
}

// UpdateCategory handles PUT /admin/categories/{id}
func (h *AdminHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req request.CategoryUpdateRequest
	if !decodeBody(w, r, &req) {
		return
	}

	category, err := h.catalog.UpdateCategory(r.Context(), id, &req)
	if err != nil {
		writeServiceError(w, h.log, err, "update category")
		return
	}

	utils.ResponseSuccess(w, "Category updated successfully", category)
}

// DeleteCategory handles DELETE /admin/categories/{id}
func (h *AdminHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.catalog.DeleteCategory(r.Context(), id); err != nil {
		writeServiceError(w, h.log, err, "delete category")
		return
	}

	utils.ResponseSuccess(w, "Category deleted successfully", nil)
}

// GetOrders handles GET /admin/orders?page=&per_page=
func (h *AdminHandler) GetOrders(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), request.DefaultPage),
		PerPage: utils.ParseInt(query.Get("per_page"), request.DefaultPerPage),
	}

	orders, err := h.orders.ListOrders(r.Context(), req)
	if err != nil {
		writeServiceError(w, h.log, err, "get orders")
		return
	}

	utils.ResponseSuccess(w, "Orders retrieved successfully", orders)
}

// GetOrderByID handles GET /admin/orders/{id}
func (h *AdminHandler) GetOrderByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	order, err := h.orders.GetOrder(r.Context(), id)
	if err != nil {
		writeServiceError(w, h.log, err, "get order")
		return
	}

	utils.ResponseSuccess(w, "Order retrieved successfully", order)
}
