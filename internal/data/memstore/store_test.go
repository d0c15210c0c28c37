package memstore

import (
	"context"
	"errors"
	"sync"
	"testing"

	"greenmart/internal/data/entity"
	"greenmart/internal/data/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newProduct(t *testing.T, repo *repository.Repository, stock int) *entity.Product {
	t.Helper()
	p := &entity.Product{Name: "Fern", Price: decimal.NewFromInt(10), Stock: stock}
	require.NoError(t, repo.Product.Create(context.Background(), p))
	return p
}

func TestStore_UserEmailIsUnique(t *testing.T) {
	ctx := context.Background()
	repo := New(zap.NewNop())

	u := &entity.User{Email: "Jane@Example.com", FullName: "Jane", Role: entity.RoleBuyer, IsActive: true}
	require.NoError(t, repo.User.Create(ctx, u))
	assert.NotZero(t, u.ID)

	dup := &entity.User{Email: "jane@example.com", FullName: "Other", Role: entity.RoleBuyer}
	assert.ErrorIs(t, repo.User.Create(ctx, dup), repository.ErrUniqueViolation)

	found, err := repo.User.FindByEmail(ctx, "JANE@example.com")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, u.ID, found.ID)
	assert.Equal(t, "jane@example.com", found.Email)

	missing, err := repo.User.FindByID(ctx, 99)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestStore_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := New(zap.NewNop())
	p := newProduct(t, repo, 5)

	got, err := repo.Product.FindByID(ctx, p.ID, repository.Unscoped())
	require.NoError(t, err)
	got.Stock = 0

	again, err := repo.Product.FindByID(ctx, p.ID, repository.Unscoped())
	require.NoError(t, err)
	assert.Equal(t, 5, again.Stock)
}

func TestStore_TransactionRollback(t *testing.T) {
	ctx := context.Background()
	repo := New(zap.NewNop())
	p := newProduct(t, repo, 5)
	boom := errors.New("boom")

	err := repo.Tx.WithinTx(ctx, func(tx *repository.Repository) error {
		ok, err := tx.Product.DecrementStock(ctx, p.ID, 3)
		require.NoError(t, err)
		require.True(t, ok)

		require.NoError(t, tx.Order.Create(ctx, &entity.Order{CustomerName: "x", Total: decimal.Zero}))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := repo.Product.FindByID(ctx, p.ID, repository.Unscoped())
	require.NoError(t, err)
	assert.Equal(t, 5, got.Stock)

	n, err := repo.Order.CountAll(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestStore_NestedTransaction(t *testing.T) {
	ctx := context.Background()
	repo := New(zap.NewNop())
	p := newProduct(t, repo, 5)

	err := repo.Tx.WithinTx(ctx, func(tx *repository.Repository) error {
		_, err := tx.Product.DecrementStock(ctx, p.ID, 1)
		require.NoError(t, err)

		inner := tx.Tx.WithinTx(ctx, func(nested *repository.Repository) error {
			_, err := nested.Product.DecrementStock(ctx, p.ID, 2)
			require.NoError(t, err)
			return errors.New("undo inner")
		})
		assert.Error(t, inner)
		return nil
	})
	require.NoError(t, err)

	got, err := repo.Product.FindByID(ctx, p.ID, repository.Unscoped())
	require.NoError(t, err)
	assert.Equal(t, 4, got.Stock)
}

func TestStore_DecrementStockNeverNegative(t *testing.T) {
	ctx := context.Background()
	repo := New(zap.NewNop())
	p := newProduct(t, repo, 2)

	ok, err := repo.Product.DecrementStock(ctx, p.ID, 3)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = repo.Product.DecrementStock(ctx, p.ID, 2)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.Product.DecrementStock(ctx, 404, 1)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStore_LockByIDsSortsAndSkipsMissing(t *testing.T) {
	ctx := context.Background()
	repo := New(zap.NewNop())
	a := newProduct(t, repo, 1)
	b := newProduct(t, repo, 1)

	err := repo.Tx.WithinTx(ctx, func(tx *repository.Repository) error {
		locked, err := tx.Product.LockByIDs(ctx, []int64{b.ID, 404, a.ID, b.ID})
		require.NoError(t, err)
		require.Len(t, locked, 2)
		assert.Equal(t, a.ID, locked[0].ID)
		assert.Equal(t, b.ID, locked[1].ID)
		return nil
	})
	require.NoError(t, err)
}

func TestStore_ConcurrentTransactionsSerialise(t *testing.T) {
	ctx := context.Background()
	repo := New(zap.NewNop())
	p := newProduct(t, repo, 10)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = repo.Tx.WithinTx(ctx, func(tx *repository.Repository) error {
				locked, err := tx.Product.LockByIDs(ctx, []int64{p.ID})
				if err != nil || len(locked) == 0 || locked[0].Stock < 1 {
					return errors.New("sold out")
				}
				_, err = tx.Product.DecrementStock(ctx, p.ID, 1)
				return err
			})
		}()
	}
	wg.Wait()

	got, err := repo.Product.FindByID(ctx, p.ID, repository.Unscoped())
	require.NoError(t, err)
	assert.Equal(t, 0, got.Stock)
}

func TestStore_ScopedProductAccess(t *testing.T) {
	ctx := context.Background()
	repo := New(zap.NewNop())

	owner := int64(1)
	p := &entity.Product{Name: "Rose", Price: decimal.NewFromInt(3), Stock: 1, SellerID: &owner}
	require.NoError(t, repo.Product.Create(ctx, p))

	other := repository.SellerScope(2)

	got, err := repo.Product.FindByID(ctx, p.ID, other)
	require.NoError(t, err)
	assert.Nil(t, got)

	p.Name = "Stolen"
	updated, err := repo.Product.Update(ctx, p, other)
	require.NoError(t, err)
	assert.False(t, updated)

	deleted, err := repo.Product.Delete(ctx, p.ID, other)
	require.NoError(t, err)
	assert.False(t, deleted)

	got, err = repo.Product.FindByID(ctx, p.ID, repository.SellerScope(owner))
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Rose", got.Name)
}

func TestStore_OrderFindAllRejectsNegativeWindow(t *testing.T) {
	ctx := context.Background()
	repo := New(zap.NewNop())
	require.NoError(t, repo.Order.Create(ctx, &entity.Order{
		CustomerName: "Jane",
		Email:        "jane@example.com",
		Address:      "1 Leaf Lane",
		Total:        decimal.NewFromInt(1),
		Status:       entity.OrderStatusPending,
	}))

	_, err := repo.Order.FindAll(ctx, 20, -20)
	assert.Error(t, err)

	orders, err := repo.Order.FindAll(ctx, 20, 1<<40)
	require.NoError(t, err)
	assert.Empty(t, orders)
}
