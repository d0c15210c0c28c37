package adaptor

import (
	"context"

	"greenmart/internal/usecase"

	"go.uber.org/zap"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	Auth     *AuthHandler
	Product  *ProductHandler
	Category *CategoryHandler
	Order    *OrderHandler
	Seller   *SellerHandler
	Admin    *AdminHandler
	Health   *HealthHandler
}

func NewHandler(service *usecase.Service, store Pinger, log *zap.Logger) *Handler {
	return &Handler{
		Auth:     NewAuthHandler(service.Auth, log),
		Product:  NewProductHandler(service.Catalog, log),
		Category: NewCategoryHandler(service.Catalog, log),
		Order:    NewOrderHandler(service.Order, log),
		Seller:   NewSellerHandler(service.Catalog, log),
		Admin:    NewAdminHandler(service.Catalog, service.Order, log),
		Health:   NewHealthHandler(store, log),
	}
}
