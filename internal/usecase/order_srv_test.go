package usecase

import (
	"context"
	"sync"
	"testing"

	"greenmart/internal/data/repository"
	"greenmart/internal/dto/request"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func orderFor(lines ...request.OrderLineRequest) *request.CreateOrderRequest {
	return &request.CreateOrderRequest{
		CustomerName: "Jane Doe",
		Email:        "jane@example.com",
		Phone:        ptr("555-0100"),
		Address:      "1 Garden Way",
		Items:        lines,
	}
}

func line(productID int64, quantity int) request.OrderLineRequest {
	return request.OrderLineRequest{ProductID: productID, Quantity: quantity}
}

func countOrders(t *testing.T, env *testEnv) int {
	t.Helper()
	n, err := env.repo.Order.CountAll(context.Background())
	require.NoError(t, err)
	return n
}

func TestOrderService_PlaceOrder(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	p := env.product(t, "Fern", "10.00", 5, nil)

	order, err := env.svc.Order.PlaceOrder(ctx, orderFor(line(p.ID, 2)))
	require.NoError(t, err)

	assert.Equal(t, "20.00", order.Total.StringFixed(2))
	assert.Equal(t, "pending", string(order.Status))
	require.Len(t, order.Items, 1)
	assert.Equal(t, p.ID, order.Items[0].ProductID)
	assert.Equal(t, 2, order.Items[0].Quantity)
	assert.Equal(t, "10.00", order.Items[0].Price.StringFixed(2))
	assert.Equal(t, 3, env.stockOf(t, p.ID))

	// The same order again still fits; a third one does not.
	_, err = env.svc.Order.PlaceOrder(ctx, orderFor(line(p.ID, 2)))
	require.NoError(t, err)
	assert.Equal(t, 1, env.stockOf(t, p.ID))

	_, err = env.svc.Order.PlaceOrder(ctx, orderFor(line(p.ID, 2)))
	var stockErr *InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, p.ID, stockErr.ProductID)
	assert.Equal(t, 1, stockErr.Available)
	assert.Equal(t, 1, env.stockOf(t, p.ID))
}

func TestOrderService_PriceIsSnapshot(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	p := env.product(t, "Fern", "10.00", 5, nil)

	placed, err := env.svc.Order.PlaceOrder(ctx, orderFor(line(p.ID, 1)))
	require.NoError(t, err)

	_, err = env.svc.Catalog.UpdateProduct(ctx, p.ID, repository.Unscoped(), &request.ProductUpdateRequest{Price: price("99.00")})
	require.NoError(t, err)

	got, err := env.svc.Order.GetOrder(ctx, placed.ID)
	require.NoError(t, err)
	assert.Equal(t, "10.00", got.Total.StringFixed(2))
	require.Len(t, got.Items, 1)
	assert.Equal(t, "10.00", got.Items[0].Price.StringFixed(2))
}

func TestOrderService_TotalMatchesItems(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	a := env.product(t, "Seeds", "0.10", 100, nil)
	b := env.product(t, "Bouquet", "19.99", 100, nil)
	c := env.product(t, "Pot", "3.33", 100, nil)

	order, err := env.svc.Order.PlaceOrder(ctx, orderFor(line(a.ID, 3), line(b.ID, 7), line(c.ID, 3), line(a.ID, 1)))
	require.NoError(t, err)

	sum := decimal.Zero
	for _, item := range order.Items {
		sum = sum.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	assert.True(t, sum.Equal(order.Total), "sum %s != total %s", sum, order.Total)
	assert.Equal(t, "150.32", order.Total.StringFixed(2))

	stored, err := env.svc.Order.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.True(t, stored.Total.Equal(order.Total))
	assert.Len(t, stored.Items, 4)
	assert.Equal(t, 96, env.stockOf(t, a.ID))
}

func TestOrderService_LargeTotals(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	pricey := env.product(t, "Bonsai", "6000000000.00", 2, nil)
	order, err := env.svc.Order.PlaceOrder(ctx, orderFor(line(pricey.ID, 2)))
	require.NoError(t, err)
	assert.Equal(t, "12000000000.00", order.Total.StringFixed(2))

	bulk := env.product(t, "Greenhouse", "9999999999.99", 200_000_000, nil)
	_, err = env.svc.Order.PlaceOrder(ctx, orderFor(line(bulk.ID, 200_000_000)))
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Fields, "items")
	assert.Equal(t, 200_000_000, env.stockOf(t, bulk.ID))
	assert.Equal(t, 1, countOrders(t, env))
}

func TestOrderService_InsufficientStockChangesNothing(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	a := env.product(t, "Fern", "10.00", 5, nil)
	b := env.product(t, "Rose", "5.00", 2, nil)

	tests := []struct {
		name      string
		req       *request.CreateOrderRequest
		productID int64
		available int
	}{
		{"single line over stock", orderFor(line(a.ID, 6)), a.ID, 5},
		{"second line over stock", orderFor(line(a.ID, 1), line(b.ID, 3)), b.ID, 2},
		{"repeated product over stock", orderFor(line(a.ID, 3), line(b.ID, 1), line(a.ID, 3)), a.ID, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.svc.Order.PlaceOrder(ctx, tt.req)

			var stockErr *InsufficientStockError
			require.ErrorAs(t, err, &stockErr)
			assert.Equal(t, tt.productID, stockErr.ProductID)
			assert.Equal(t, tt.available, stockErr.Available)

			assert.Equal(t, 5, env.stockOf(t, a.ID))
			assert.Equal(t, 2, env.stockOf(t, b.ID))
			assert.Zero(t, countOrders(t, env))
		})
	}
}

func TestOrderService_UnknownProduct(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	a := env.product(t, "Fern", "10.00", 5, nil)

	_, err := env.svc.Order.PlaceOrder(ctx, orderFor(line(a.ID, 1), line(404, 1)))
	assert.ErrorIs(t, err, ErrNotFound)

	var notFound *ProductNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, int64(404), notFound.ProductID)

	assert.Equal(t, 5, env.stockOf(t, a.ID))
	assert.Zero(t, countOrders(t, env))
}

func TestOrderService_Validation(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	a := env.product(t, "Fern", "10.00", 5, nil)

	tests := []struct {
		name string
		req  *request.CreateOrderRequest
	}{
		{"no items", orderFor()},
		{"zero quantity", orderFor(line(a.ID, 0))},
		{"negative quantity", orderFor(line(a.ID, -1))},
		{"bad email", func() *request.CreateOrderRequest {
			r := orderFor(line(a.ID, 1))
			r.Email = "not-an-email"
			return r
		}()},
		{"missing address", func() *request.CreateOrderRequest {
			r := orderFor(line(a.ID, 1))
			r.Address = ""
			return r
		}()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.svc.Order.PlaceOrder(ctx, tt.req)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}

	assert.Equal(t, 5, env.stockOf(t, a.ID))
}

func TestOrderService_ConcurrentOrders(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	const (
		stock  = 5
		buyers = 20
	)
	p := env.product(t, "Last ferns", "12.50", stock, nil)

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		rejected  int
	)
	for i := 0; i < buyers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := env.svc.Order.PlaceOrder(ctx, orderFor(line(p.ID, 1)))

			mu.Lock()
			defer mu.Unlock()
			var stockErr *InsufficientStockError
			switch {
			case err == nil:
				succeeded++
			case assert.ErrorAs(t, err, &stockErr):
				rejected++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, stock, succeeded)
	assert.Equal(t, buyers-stock, rejected)
	assert.Equal(t, 0, env.stockOf(t, p.ID))
	assert.Equal(t, stock, countOrders(t, env))
}

func TestOrderService_ListOrders(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	p := env.product(t, "Fern", "1.00", 100, nil)

	var ids []int64
	for i := 1; i <= 5; i++ {
		o, err := env.svc.Order.PlaceOrder(ctx, orderFor(line(p.ID, i)))
		require.NoError(t, err)
		ids = append(ids, o.ID)
	}

	page, err := env.svc.Order.ListOrders(ctx, &request.PaginatedRequest{Page: 1, PerPage: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(5), page.Pagination.Total)
	assert.Equal(t, 3, page.Pagination.TotalPages)
	require.Len(t, page.Data, 2)
	assert.Equal(t, ids[4], page.Data[0].ID)
	assert.Equal(t, ids[3], page.Data[1].ID)

	last, err := env.svc.Order.ListOrders(ctx, &request.PaginatedRequest{Page: 3, PerPage: 2})
	require.NoError(t, err)
	require.Len(t, last.Data, 1)
	assert.Equal(t, ids[0], last.Data[0].ID)

	_, err = env.svc.Order.ListOrders(ctx, &request.PaginatedRequest{Page: 0, PerPage: 2})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = env.svc.Order.ListOrders(ctx, &request.PaginatedRequest{Page: 1 << 62, PerPage: 20})
	assert.ErrorIs(t, err, ErrValidation)

	beyond, err := env.svc.Order.ListOrders(ctx, &request.PaginatedRequest{Page: request.MaxPage, PerPage: 100})
	require.NoError(t, err)
	assert.Empty(t, beyond.Data)
	assert.Equal(t, int64(5), beyond.Pagination.Total)
}

func TestOrderService_GetOrderNotFound(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.svc.Order.GetOrder(context.Background(), 12345)
	assert.ErrorIs(t, err, ErrNotFound)
}
