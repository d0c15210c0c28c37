package usecase

import (
	"context"
	"testing"
	"time"

	"greenmart/internal/data/entity"
	"greenmart/internal/data/memstore"
	"greenmart/internal/data/repository"
	"greenmart/pkg/tokens"
	"greenmart/pkg/utils"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type testEnv struct {
	repo   *repository.Repository
	tokens *tokens.Service
	hasher *countingHasher
	svc    *Service
}

// countingHasher records how many password comparisons ran.
type countingHasher struct {
	*utils.PasswordHasher
	compares int
}

func (h *countingHasher) Compare(password, hash string) bool {
	h.compares++
	return h.PasswordHasher.Compare(password, hash)
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	log := zap.NewNop()
	repo := memstore.New(log)
	tokenSvc, err := tokens.NewService("test-secret", time.Hour)
	require.NoError(t, err)

	hasher := &countingHasher{PasswordHasher: utils.NewPasswordHasher(bcrypt.MinCost)}

	return &testEnv{
		repo:   repo,
		tokens: tokenSvc,
		hasher: hasher,
		svc:    NewService(repo, tokenSvc, hasher, log),
	}
}

func (e *testEnv) seller(t *testing.T, email string) *entity.User {
	t.Helper()
	u := &entity.User{
		Email:        email,
		PasswordHash: "x",
		FullName:     "Seller " + email,
		Role:         entity.RoleSeller,
		IsActive:     true,
	}
	require.NoError(t, e.repo.User.Create(context.Background(), u))
	return u
}

func (e *testEnv) product(t *testing.T, name, price string, stock int, sellerID *int64) *entity.Product {
	t.Helper()
	p := &entity.Product{
		Name:     name,
		Price:    decimal.RequireFromString(price),
		Stock:    stock,
		SellerID: sellerID,
	}
	require.NoError(t, e.repo.Product.Create(context.Background(), p))
	return p
}

func (e *testEnv) stockOf(t *testing.T, id int64) int {
	t.Helper()
	p, err := e.repo.Product.FindByID(context.Background(), id, repository.Unscoped())
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.Stock
}

func ptr[T any](v T) *T { return &v }
