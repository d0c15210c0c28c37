package repository

import (
	"context"
	"errors"
	"fmt"

	"greenmart/internal/data/entity"
	"greenmart/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	FindByID(ctx context.Context, id int64) (*entity.Category, error)
	FindBySlug(ctx context.Context, slug string) (*entity.Category, error)
	FindAll(ctx context.Context) ([]*entity.Category, error)
	Update(ctx context.Context, category *entity.Category) error
	Delete(ctx context.Context, id int64) (bool, error)
}

type categoryRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewCategoryRepository(db database.Querier, log *zap.Logger) CategoryRepository {
	return &categoryRepository{
		db:  db,
		log: log.With(zap.String("repository", "category")),
	}
}

func (r *categoryRepository) Create(ctx context.Context, category *entity.Category) error {
	query := `INSERT INTO categories (name, slug) VALUES ($1, $2) RETURNING id`

	err := r.db.QueryRow(ctx, query, category.Name, category.Slug).Scan(&category.ID)
	if database.IsUniqueViolation(err) {
		return fmt.Errorf("create category %s: %w", category.Slug, ErrUniqueViolation)
	}
	if err != nil {
		r.log.Error("Failed to create category", zap.Error(err), zap.String("slug", category.Slug))
		return fmt.Errorf("create category %s: %w", category.Slug, err)
	}

	return nil
}

func (r *categoryRepository) FindByID(ctx context.Context, id int64) (*entity.Category, error) {
	var c entity.Category
	err := r.db.QueryRow(ctx, `SELECT id, name, slug FROM categories WHERE id = $1`, id).
		Scan(&c.ID, &c.Name, &c.Slug)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find category by ID", zap.Error(err), zap.Int64("category_id", id))
		return nil, fmt.Errorf("find category by ID %d: %w", id, err)
	}
	return &c, nil
}

func (r *categoryRepository) FindBySlug(ctx context.Context, slug string) (*entity.Category, error) {
	var c entity.Category
	err := r.db.QueryRow(ctx, `SELECT id, name, slug FROM categories WHERE slug = $1`, slug).
		Scan(&c.ID, &c.Name, &c.Slug)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find category by slug", zap.Error(err), zap.String("slug", slug))
		return nil, fmt.Errorf("find category by slug %s: %w", slug, err)
	}
	return &c, nil
}

func (r *categoryRepository) FindAll(ctx context.Context) ([]*entity.Category, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, slug FROM categories ORDER BY id`)
	if err != nil {
		r.log.Error("Failed to list categories", zap.Error(err))
		return nil, fmt.Errorf("find all categories: %w", err)
	}
	defer rows.Close()

	categories := []*entity.Category{}
	for rows.Next() {
		var c entity.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug); err != nil {
			r.log.Error("Failed to scan category row", zap.Error(err))
			return nil, fmt.Errorf("scan category row: %w", err)
		}
		categories = append(categories, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate category rows: %w", err)
	}

	return categories, nil
}

func (r *categoryRepository) Update(ctx context.Context, category *entity.Category) error {
	result, err := r.db.Exec(ctx,
		`UPDATE categories SET name = $2, slug = $3 WHERE id = $1`,
		category.ID, category.Name, category.Slug,
	)
	if database.IsUniqueViolation(err) {
		return fmt.Errorf("update category %d: %w", category.ID, ErrUniqueViolation)
	}
	if err != nil {
		r.log.Error("Failed to update category", zap.Error(err), zap.Int64("category_id", category.ID))
		return fmt.Errorf("update category %d: %w", category.ID, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("category %d not found", category.ID)
	}
	return nil
}

// Delete reports whether a row was removed. Products in the category keep
// existing with category_id set to NULL.
func (r *categoryRepository) Delete(ctx context.Context, id int64) (bool, error) {
	result, err := r.db.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete category", zap.Error(err), zap.Int64("category_id", id))
		return false, fmt.Errorf("delete category %d: %w", id, err)
	}
	return result.RowsAffected() > 0, nil
}
