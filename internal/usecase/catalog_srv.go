package usecase

import (
	"context"
	"errors"
	"fmt"

	"greenmart/internal/data/entity"
	"greenmart/internal/data/repository"
	"greenmart/internal/dto/request"
	"greenmart/internal/dto/response"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var (
	// maxPrice is the first value that no longer fits NUMERIC(12,2).
	maxPrice = decimal.New(1, 10)
	// maxOrderTotal is the first value that no longer fits NUMERIC(20,2).
	maxOrderTotal = decimal.New(1, 18)
)

type CatalogService interface {
	// Categories
	ListCategories(ctx context.Context) ([]response.CategoryResponse, error)
	CreateCategory(ctx context.Context, req *request.CategoryRequest) (*response.CategoryResponse, error)
	UpdateCategory(ctx context.Context, id int64, req *request.CategoryUpdateRequest) (*response.CategoryResponse, error)
	DeleteCategory(ctx context.Context, id int64) error

	// Products. scope limits the rows a seller can reach; admins and the
	// public listing use repository.Unscoped().
	ListProducts(ctx context.Context, filter repository.ProductFilter) ([]response.ProductResponse, error)
	GetProduct(ctx context.Context, id int64, scope repository.ProductScope) (*response.ProductResponse, error)
	CreateProduct(ctx context.Context, sellerID *int64, req *request.ProductRequest) (*response.ProductResponse, error)
	UpdateProduct(ctx context.Context, id int64, scope repository.ProductScope, req *request.ProductUpdateRequest) (*response.ProductResponse, error)
	DeleteProduct(ctx context.Context, id int64, scope repository.ProductScope) error
}

type catalogService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewCatalogService(repo *repository.Repository, log *zap.Logger) CatalogService {
	return &catalogService{
		repo: repo,
		log:  log.With(zap.String("service", "catalog")),
	}
}

func (s *catalogService) ListCategories(ctx context.Context) ([]response.CategoryResponse, error) {
	categories, err := s.repo.Category.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("get categories: %w", err)
	}

	resp := make([]response.CategoryResponse, len(categories))
	for i, c := range categories {
		resp[i] = response.CategoryToResponse(c)
	}
	return resp, nil
}

func (s *catalogService) CreateCategory(ctx context.Context, req *request.CategoryRequest) (*response.CategoryResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	category := &entity.Category{Name: req.Name, Slug: req.Slug}
	if err := s.repo.Category.Create(ctx, category); err != nil {
		if errors.Is(err, repository.ErrUniqueViolation) {
			return nil, newValidationError("slug", "Slug already exists")
		}
		return nil, fmt.Errorf("create category: %w", err)
	}

	s.log.Info("Category created", zap.Int64("category_id", category.ID), zap.String("slug", category.Slug))

	resp := response.CategoryToResponse(category)
	return &resp, nil
}

func (s *catalogService) UpdateCategory(ctx context.Context, id int64, req *request.CategoryUpdateRequest) (*response.CategoryResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	category, err := s.repo.Category.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get category: %w", err)
	}
	if category == nil {
		return nil, ErrNotFound
	}

	if req.Name != nil {
		category.Name = *req.Name
	}
	if req.Slug != nil {
		category.Slug = *req.Slug
	}

	if err := s.repo.Category.Update(ctx, category); err != nil {
		if errors.Is(err, repository.ErrUniqueViolation) {
			return nil, newValidationError("slug", "Slug already exists")
		}
		return nil, fmt.Errorf("update category: %w", err)
	}

	s.log.Info("Category updated", zap.Int64("category_id", id))

	resp := response.CategoryToResponse(category)
	return &resp, nil
}

func (s *catalogService) DeleteCategory(ctx context.Context, id int64) error {
	deleted, err := s.repo.Category.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	if !deleted {
		return ErrNotFound
	}

	s.log.Info("Category deleted", zap.Int64("category_id", id))
	return nil
}

func (s *catalogService) ListProducts(ctx context.Context, filter repository.ProductFilter) ([]response.ProductResponse, error) {
	products, err := s.repo.Product.FindAll(ctx, filter)
	if err != nil {
		s.log.Error("Failed to get products", zap.Error(err), zap.String("category", filter.CategorySlug))
		return nil, fmt.Errorf("get products: %w", err)
	}

	categories, err := s.categoryIndex(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]response.ProductResponse, len(products))
	for i, p := range products {
		resp[i] = response.ProductToResponse(p, lookupCategory(categories, p.CategoryID))
	}
	return resp, nil
}

func (s *catalogService) GetProduct(ctx context.Context, id int64, scope repository.ProductScope) (*response.ProductResponse, error) {
	product, err := s.repo.Product.FindByID(ctx, id, scope)
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	if product == nil {
		return nil, ErrNotFound
	}

	return s.productResponse(ctx, s.repo, product)
}

func (s *catalogService) CreateProduct(ctx context.Context, sellerID *int64, req *request.ProductRequest) (*response.ProductResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	if req.Price == nil {
		return nil, newValidationError("price", "This field is required")
	}
	if err := checkPrice(*req.Price); err != nil {
		return nil, err
	}
	if err := s.checkCategory(ctx, s.repo, req.CategoryID); err != nil {
		return nil, err
	}

	product := &entity.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       *req.Price,
		ImageURL:    req.ImageURL,
		CategoryID:  req.CategoryID,
		SellerID:    sellerID,
		Stock:       req.Stock,
	}

	if err := s.repo.Product.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}

	s.log.Info("Product created",
		zap.Int64("product_id", product.ID),
		zap.Int64p("seller_id", sellerID),
	)

	return s.productResponse(ctx, s.repo, product)
}

// UpdateProduct locks the row first so a concurrent order never sees a
// half-applied update or has its stock decrement overwritten.
func (s *catalogService) UpdateProduct(ctx context.Context, id int64, scope repository.ProductScope, req *request.ProductUpdateRequest) (*response.ProductResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	if req.Price != nil {
		if err := checkPrice(*req.Price); err != nil {
			return nil, err
		}
	}

	var resp *response.ProductResponse
	err := s.repo.Tx.WithinTx(ctx, func(tx *repository.Repository) error {
		locked, err := tx.Product.LockByIDs(ctx, []int64{id})
		if err != nil {
			return err
		}
		if len(locked) == 0 || !scope.Allows(locked[0]) {
			return ErrNotFound
		}
		product := locked[0]

		if req.Name != nil {
			product.Name = *req.Name
		}
		if req.Description != nil {
			product.Description = req.Description
		}
		if req.Price != nil {
			product.Price = *req.Price
		}
		if req.ImageURL != nil {
			product.ImageURL = req.ImageURL
		}
		if req.CategoryID != nil {
			if err := s.checkCategory(ctx, tx, req.CategoryID); err != nil {
				return err
			}
			product.CategoryID = req.CategoryID
		}
		if req.Stock != nil {
			product.Stock = *req.Stock
		}

		updated, err := tx.Product.Update(ctx, product, scope)
		if err != nil {
			return err
		}
		if !updated {
			return ErrNotFound
		}

		resp, err = s.productResponse(ctx, tx, product)
		return err
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) || errors.Is(err, ErrValidation) {
			return nil, err
		}
		return nil, fmt.Errorf("update product: %w", err)
	}

	s.log.Info("Product updated", zap.Int64("product_id", id))
	return resp, nil
}

func (s *catalogService) DeleteProduct(ctx context.Context, id int64, scope repository.ProductScope) error {
	deleted, err := s.repo.Product.Delete(ctx, id, scope)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if !deleted {
		return ErrNotFound
	}

	s.log.Info("Product deleted", zap.Int64("product_id", id))
	return nil
}

func (s *catalogService) checkCategory(ctx context.Context, repo *repository.Repository, categoryID *int64) error {
	if categoryID == nil {
		return nil
	}
	category, err := repo.Category.FindByID(ctx, *categoryID)
	if err != nil {
		return fmt.Errorf("get category: %w", err)
	}
	if category == nil {
		return newValidationError("category_id", fmt.Sprintf("Category %d does not exist", *categoryID))
	}
	return nil
}

func (s *catalogService) productResponse(ctx context.Context, repo *repository.Repository, p *entity.Product) (*response.ProductResponse, error) {
	var category *entity.Category
	if p.CategoryID != nil {
		c, err := repo.Category.FindByID(ctx, *p.CategoryID)
		if err != nil {
			return nil, fmt.Errorf("get category: %w", err)
		}
		category = c
	}

	resp := response.ProductToResponse(p, category)
	return &resp, nil
}

func (s *catalogService) categoryIndex(ctx context.Context) (map[int64]*entity.Category, error) {
	categories, err := s.repo.Category.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("get categories: %w", err)
	}

	index := make(map[int64]*entity.Category, len(categories))
	for _, c := range categories {
		index[c.ID] = c
	}
	return index, nil
}

func lookupCategory(index map[int64]*entity.Category, id *int64) *entity.Category {
	if id == nil {
		return nil
	}
	return index[*id]
}

// checkPrice enforces what NUMERIC(12,2) can store without rounding.
func checkPrice(price decimal.Decimal) error {
	switch {
	case price.IsNegative():
		return newValidationError("price", "Must be at least 0")
	case !price.Equal(price.Round(2)):
		return newValidationError("price", "At most 2 decimal places")
	case price.GreaterThanOrEqual(maxPrice):
		return newValidationError("price", "Price is too large")
	}
	return nil
}
