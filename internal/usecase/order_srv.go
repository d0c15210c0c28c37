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

type OrderService interface {
	PlaceOrder(ctx context.Context, req *request.CreateOrderRequest) (*response.OrderResponse, error)
	GetOrder(ctx context.Context, id int64) (*response.OrderResponse, error)

	// Admin
	ListOrders(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.OrderResponse], error)
}

type orderService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewOrderService(repo *repository.Repository, log *zap.Logger) OrderService {
	return &orderService{
		repo: repo,
		log:  log.With(zap.String("service", "order")),
	}
}

// PlaceOrder reserves stock for every line and records the order in one
// transaction. Either all lines are reserved or nothing changes.
func (s *orderService) PlaceOrder(ctx context.Context, req *request.CreateOrderRequest) (*response.OrderResponse, error) {
	if err := validate(req); err != nil {
		s.log.Warn("Create order validation failed", zap.Error(err))
		return nil, err
	}

	ids := make([]int64, len(req.Items))
	for i, line := range req.Items {
		ids[i] = line.ProductID
	}

	var (
		order *entity.Order
		items []*entity.OrderItem
	)

	err := s.repo.Tx.WithinTx(ctx, func(tx *repository.Repository) error {
		// 1. Lock every product the order touches
		locked, err := tx.Product.LockByIDs(ctx, ids)
		if err != nil {
			return err
		}
		products := make(map[int64]*entity.Product, len(locked))
		for _, p := range locked {
			products[p.ID] = p
		}

		// 2. Check stock line by line, counting repeated products together
		demand := make(map[int64]int, len(locked))
		total := decimal.Zero
		items = make([]*entity.OrderItem, 0, len(req.Items))

		for _, line := range req.Items {
			product, ok := products[line.ProductID]
			if !ok {
				return &ProductNotFoundError{ProductID: line.ProductID}
			}

			demand[product.ID] += line.Quantity
			if demand[product.ID] > product.Stock {
				return &InsufficientStockError{
					ProductID:   product.ID,
					ProductName: product.Name,
					Available:   product.Stock,
				}
			}

			// 3. Price is captured now and never recomputed
			item := &entity.OrderItem{
				ProductID: product.ID,
				Quantity:  line.Quantity,
				Price:     product.Price,
			}
			total = total.Add(item.Subtotal())
			items = append(items, item)
		}

		if total.GreaterThanOrEqual(maxOrderTotal) {
			return newValidationError("items", "Order total is too large")
		}

		// 4. Persist order, items, then stock
		order = &entity.Order{
			CustomerName: req.CustomerName,
			Email:        req.Email,
			Phone:        req.Phone,
			Address:      req.Address,
			Total:        total,
			Status:       entity.OrderStatusPending,
		}
		if err := tx.Order.Create(ctx, order); err != nil {
			return err
		}

		for _, item := range items {
			item.OrderID = order.ID
		}
		if err := tx.Order.CreateItems(ctx, items); err != nil {
			return err
		}

		for _, item := range items {
			ok, err := tx.Product.DecrementStock(ctx, item.ProductID, item.Quantity)
			if err != nil {
				return err
			}
			if !ok {
				p := products[item.ProductID]
				return &InsufficientStockError{ProductID: p.ID, ProductName: p.Name, Available: p.Stock}
			}
		}

		return nil
	})
	if err != nil {
		var stockErr *InsufficientStockError
		switch {
		case errors.As(err, &stockErr):
			s.log.Info("Order rejected, insufficient stock",
				zap.Int64("product_id", stockErr.ProductID),
				zap.Int("available", stockErr.Available),
			)
			return nil, err
		case errors.Is(err, ErrNotFound), errors.Is(err, ErrValidation):
			return nil, err
		}
		s.log.Error("Failed to place order", zap.Error(err), zap.String("email", req.Email))
		return nil, fmt.Errorf("place order: %w", err)
	}

	s.log.Info("Order placed",
		zap.Int64("order_id", order.ID),
		zap.Int("line_count", len(items)),
		zap.String("total", order.Total.StringFixed(2)),
	)

	resp := response.OrderToResponse(order, items)
	return &resp, nil
}

func (s *orderService) GetOrder(ctx context.Context, id int64) (*response.OrderResponse, error) {
	order, err := s.repo.Order.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	if order == nil {
		return nil, ErrNotFound
	}

	items, err := s.repo.Order.FindItems(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get order items: %w", err)
	}

	resp := response.OrderToResponse(order, items)
	return &resp, nil
}

func (s *orderService) ListOrders(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.OrderResponse], error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	limit := req.Limit()
	offset := req.Offset()

	orders, err := s.repo.Order.FindAll(ctx, limit, offset)
	if err != nil {
		s.log.Error("Failed to get orders",
			zap.Error(err),
			zap.Int("page", req.Page),
			zap.Int("per_page", req.PerPage),
		)
		return nil, fmt.Errorf("get orders: %w", err)
	}

	total, err := s.repo.Order.CountAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("count orders: %w", err)
	}

	data := make([]response.OrderResponse, len(orders))
	for i, o := range orders {
		data[i] = response.OrderToResponse(o, nil)
	}

	return response.NewPaginatedResponse(data, req.Page, limit, int64(total)), nil
}
