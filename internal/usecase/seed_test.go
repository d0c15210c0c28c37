package usecase

import (
	"context"
	"testing"

	"greenmart/internal/data/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSeedCatalog(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	first, err := SeedCatalog(ctx, env.repo, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, SeedResult{Categories: 3, Products: 8}, first)

	again, err := SeedCatalog(ctx, env.repo, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, SeedResult{}, again)

	seeds, err := env.svc.Catalog.ListProducts(ctx, repository.ProductFilter{CategorySlug: "seeds"})
	require.NoError(t, err)
	require.Len(t, seeds, 2)
	assert.Equal(t, "Tomato Seeds Pack", seeds[0].Name)
	assert.Equal(t, "5.99", seeds[0].Price.StringFixed(2))
	assert.Equal(t, 100, seeds[0].Stock)
}
