package usecase

import (
	"greenmart/internal/data/repository"
	"greenmart/pkg/tokens"

	"go.uber.org/zap"
)

type Service struct {
	Auth    AuthService
	Catalog CatalogService
	Order   OrderService
}

func NewService(repo *repository.Repository, tokenSvc *tokens.Service, hasher PasswordHasher, log *zap.Logger) *Service {
	return &Service{
		Auth:    NewAuthService(repo, tokenSvc, hasher, log),
		Catalog: NewCatalogService(repo, log),
		Order:   NewOrderService(repo, log),
	}
}
