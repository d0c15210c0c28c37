package usecase

import (
	"context"
	"fmt"

	"greenmart/internal/data/entity"
	"greenmart/internal/data/repository"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type seedProduct struct {
	name        string
	description string
	price       string
	imageURL    string
	category    string
	stock       int
}

var seedCategories = []entity.Category{
	{Name: "Plants", Slug: "plants"},
	{Name: "Flowers", Slug: "flowers"},
	{Name: "Seeds", Slug: "seeds"},
}

var seedProducts = []seedProduct{
	{"Monstera Deliciosa", "A tropical plant with distinctive split leaves. Perfect for indoor spaces.", "29.99", "https://images.unsplash.com/photo-1614594975525-e45190c55d0b?w=400", "plants", 15},
	{"Snake Plant", "Low maintenance, air-purifying succulent. Thrives in low light.", "24.99", "https://images.unsplash.com/photo-1597848212624-a19eb35e2651?w=400", "plants", 20},
	{"rose plant", "Beautiful rose plant with fragrant blooms. Perfect for gardens and gifting.", "34.99", "https://picsum.photos/seed/roseplant/400/400", "plants", 12},
	{"Red Roses Bouquet", "A dozen fresh red roses. Perfect for any occasion.", "49.99", "https://images.unsplash.com/photo-1490750967868-88aa4486c946?w=400", "flowers", 25},
	{"Sunflower Bouquet", "Bright and cheerful sunflowers to brighten your day.", "39.99", "https://images.unsplash.com/photo-1597848212624-a19eb35e2651?w=400&q=80", "flowers", 18},
	{"Mixed Wildflowers", "A colorful mix of seasonal wildflowers.", "35.99", "https://images.unsplash.com/photo-1508610048659-a06b669e3321?w=400", "flowers", 14},
	{"Tomato Seeds Pack", "Organic heirloom tomato seeds. Pack of 50.", "5.99", "https://images.unsplash.com/photo-1466692476868-aef1dfb1e735?w=400", "seeds", 100},
	{"Basil Herb Seeds", "Fresh basil seeds for kitchen gardens. Pack of 100.", "4.99", "https://images.unsplash.com/photo-1508610048659-a06b669e3321?w=400", "seeds", 80},
}

type SeedResult struct {
	Categories int
	Products   int
}

// SeedCatalog inserts the demo categories and products that are not there
// yet. Categories match on slug, products on name.
func SeedCatalog(ctx context.Context, repo *repository.Repository, log *zap.Logger) (SeedResult, error) {
	var result SeedResult

	err := repo.Tx.WithinTx(ctx, func(tx *repository.Repository) error {
		categoryIDs := make(map[string]int64, len(seedCategories))
		for _, c := range seedCategories {
			existing, err := tx.Category.FindBySlug(ctx, c.Slug)
			if err != nil {
				return err
			}
			if existing != nil {
				categoryIDs[c.Slug] = existing.ID
				continue
			}

			category := c
			if err := tx.Category.Create(ctx, &category); err != nil {
				return err
			}
			categoryIDs[c.Slug] = category.ID
			result.Categories++
		}

		current, err := tx.Product.FindAll(ctx, repository.ProductFilter{})
		if err != nil {
			return err
		}
		names := make(map[string]bool, len(current))
		for _, p := range current {
			names[p.Name] = true
		}

		for _, sp := range seedProducts {
			if names[sp.name] {
				continue
			}

			categoryID := categoryIDs[sp.category]
			product := &entity.Product{
				Name:        sp.name,
				Description: &sp.description,
				Price:       decimal.RequireFromString(sp.price),
				ImageURL:    &sp.imageURL,
				CategoryID:  &categoryID,
				Stock:       sp.stock,
			}
			if err := tx.Product.Create(ctx, product); err != nil {
				return err
			}
			result.Products++
		}
		return nil
	})
	if err != nil {
		return SeedResult{}, fmt.Errorf("seed catalog: %w", err)
	}

	log.Info("Catalog seeded",
		zap.Int("categories_added", result.Categories),
		zap.Int("products_added", result.Products),
	)
	return result, nil
}
