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

// ProductScope restricts reads and writes to one seller's rows. The zero
// value is unscoped (admin access).
type ProductScope struct {
	SellerID *int64
}

func Unscoped() ProductScope { return ProductScope{} }

func SellerScope(sellerID int64) ProductScope { return ProductScope{SellerID: &sellerID} }

// Allows reports whether p is visible under the scope.
func (s ProductScope) Allows(p *entity.Product) bool {
	return s.SellerID == nil || p.OwnedBy(*s.SellerID)
}

type ProductFilter struct {
	CategorySlug string
	SellerID     *int64
}

type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	FindByID(ctx context.Context, id int64, scope ProductScope) (*entity.Product, error)
	FindAll(ctx context.Context, filter ProductFilter) ([]*entity.Product, error)
	// LockByIDs returns the existing products among ids, holding a row lock
	// on each until the surrounding transaction ends. Missing ids are skipped.
	LockByIDs(ctx context.Context, ids []int64) ([]*entity.Product, error)
	Update(ctx context.Context, product *entity.Product, scope ProductScope) (bool, error)
	Delete(ctx context.Context, id int64, scope ProductScope) (bool, error)
	// DecrementStock subtracts quantity only when enough stock is left and
	// reports whether it did.
	DecrementStock(ctx context.Context, id int64, quantity int) (bool, error)
}

type productRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewProductRepository(db database.Querier, log *zap.Logger) ProductRepository {
	return &productRepository{
		db:  db,
		log: log.With(zap.String("repository", "product")),
	}
}

const productColumns = `p.id, p.name, p.description, p.price, p.image_url, p.category_id, p.seller_id, p.stock, p.created_at`

func (r *productRepository) Create(ctx context.Context, product *entity.Product) error {
	query := `
		INSERT INTO products (name, description, price, image_url, category_id, seller_id, stock)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		product.Name,
		product.Description,
		product.Price,
		product.ImageURL,
		product.CategoryID,
		product.SellerID,
		product.Stock,
	).Scan(&product.ID, &product.CreatedAt)
	if err != nil {
		r.log.Error("Failed to create product", zap.Error(err), zap.String("name", product.Name))
		return fmt.Errorf("create product %s: %w", product.Name, err)
	}

	return nil
}

func (r *productRepository) FindByID(ctx context.Context, id int64, scope ProductScope) (*entity.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products p
		WHERE p.id = $1 AND ($2::bigint IS NULL OR p.seller_id = $2)
	`

	product, err := scanProduct(r.db.QueryRow(ctx, query, id, scope.SellerID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find product by ID", zap.Error(err), zap.Int64("product_id", id))
		return nil, fmt.Errorf("find product by ID %d: %w", id, err)
	}

	return product, nil
}

func (r *productRepository) FindAll(ctx context.Context, filter ProductFilter) ([]*entity.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products p
		LEFT JOIN categories c ON c.id = p.category_id
		WHERE ($1 = '' OR c.slug = $1)
		  AND ($2::bigint IS NULL OR p.seller_id = $2)
		ORDER BY p.id
	`

	rows, err := r.db.Query(ctx, query, filter.CategorySlug, filter.SellerID)
	if err != nil {
		r.log.Error("Failed to list products",
			zap.Error(err),
			zap.String("category", filter.CategorySlug),
		)
		return nil, fmt.Errorf("find all products: %w", err)
	}
	defer rows.Close()

	return collectProducts(rows)
}

func (r *productRepository) LockByIDs(ctx context.Context, ids []int64) ([]*entity.Product, error) {
	if len(ids) == 0 {
		return []*entity.Product{}, nil
	}

	// Locks are taken in id order so two orders touching the same products
	// cannot deadlock.
	query := `
		SELECT ` + productColumns + `
		FROM products p
		WHERE p.id = ANY($1)
		ORDER BY p.id
		FOR UPDATE
	`

	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		r.log.Error("Failed to lock products", zap.Error(err), zap.Int64s("product_ids", ids))
		return nil, fmt.Errorf("lock products: %w", err)
	}
	defer rows.Close()

	return collectProducts(rows)
}

func (r *productRepository) Update(ctx context.Context, product *entity.Product, scope ProductScope) (bool, error) {
	query := `
		UPDATE products
		SET name = $2, description = $3, price = $4, image_url = $5,
		    category_id = $6, stock = $7
		WHERE id = $1 AND ($8::bigint IS NULL OR seller_id = $8)
	`

	result, err := r.db.Exec(ctx, query,
		product.ID,
		product.Name,
		product.Description,
		product.Price,
		product.ImageURL,
		product.CategoryID,
		product.Stock,
		scope.SellerID,
	)
	if err != nil {
		r.log.Error("Failed to update product", zap.Error(err), zap.Int64("product_id", product.ID))
		return false, fmt.Errorf("update product %d: %w", product.ID, err)
	}

	return result.RowsAffected() > 0, nil
}

func (r *productRepository) Delete(ctx context.Context, id int64, scope ProductScope) (bool, error) {
	result, err := r.db.Exec(ctx,
		`DELETE FROM products WHERE id = $1 AND ($2::bigint IS NULL OR seller_id = $2)`,
		id, scope.SellerID,
	)
	if err != nil {
		r.log.Error("Failed to delete product", zap.Error(err), zap.Int64("product_id", id))
		return false, fmt.Errorf("delete product %d: %w", id, err)
	}

	return result.RowsAffected() > 0, nil
}

func (r *productRepository) DecrementStock(ctx context.Context, id int64, quantity int) (bool, error) {
	result, err := r.db.Exec(ctx,
		`UPDATE products SET stock = stock - $2 WHERE id = $1 AND stock >= $2`,
		id, quantity,
	)
	if err != nil {
		r.log.Error("Failed to decrement stock",
			zap.Error(err),
			zap.Int64("product_id", id),
			zap.Int("quantity", quantity),
		)
		return false, fmt.Errorf("decrement stock of product %d: %w", id, err)
	}

	return result.RowsAffected() == 1, nil
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.Price,
		&p.ImageURL,
		&p.CategoryID,
		&p.SellerID,
		&p.Stock,
		&p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func collectProducts(rows pgx.Rows) ([]*entity.Product, error) {
	products := []*entity.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product row: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate product rows: %w", err)
	}

	return products, nil
}
