package adaptor

import (
	"net/http"

	"greenmart/internal/usecase"
	"greenmart/pkg/utils"

	"go.uber.org/zap"
)

type CategoryHandler struct {
	service usecase.CatalogService
	log     *zap.Logger
}

func NewCategoryHandler(service usecase.CatalogService, log *zap.Logger) *CategoryHandler {
	return &CategoryHandler{
		service: service,
		log:     log.With(zap.String("handler", "category")),
	}
}

// GetCategories handles GET /categories
func (h *CategoryHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.ListCategories(r.Context())
	if err != nil {
		writeServiceError(w, h.log, err, "get categories")
		return
	}

	utils.ResponseSuccess(w, "Categories retrieved successfully", categories)
}
