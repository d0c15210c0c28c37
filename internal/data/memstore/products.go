package memstore

import (
	"context"
	"fmt"
	"sort"

	"greenmart/internal/data/entity"
	"greenmart/internal/data/repository"
)

type productRepo struct {
	v *view
}

func (r *productRepo) Create(ctx context.Context, product *entity.Product) error {
	return r.v.do(ctx, func(st *state) error {
		if product.Stock < 0 {
			return fmt.Errorf("create product %s: stock must be non-negative", product.Name)
		}
		st.productSeq++
		product.ID = st.productSeq
		product.CreatedAt = r.v.store.now()
		st.products[product.ID] = copyOf(product)
		return nil
	})
}

func (r *productRepo) FindByID(ctx context.Context, id int64, scope repository.ProductScope) (*entity.Product, error) {
	var found *entity.Product
	err := r.v.do(ctx, func(st *state) error {
		if p, ok := st.products[id]; ok && scope.Allows(p) {
			found = copyOf(p)
		}
		return nil
	})
	return found, err
}

func (r *productRepo) FindAll(ctx context.Context, filter repository.ProductFilter) ([]*entity.Product, error) {
	products := []*entity.Product{}
	err := r.v.do(ctx, func(st *state) error {
		var categoryID *int64
		if filter.CategorySlug != "" {
			for _, c := range st.categories {
				if c.Slug == filter.CategorySlug {
					id := c.ID
					categoryID = &id
					break
				}
			}
			if categoryID == nil {
				return nil
			}
		}

		for _, id := range sortedKeys(st.products) {
			p := st.products[id]
			if categoryID != nil && (p.CategoryID == nil || *p.CategoryID != *categoryID) {
				continue
			}
			if filter.SellerID != nil && !p.OwnedBy(*filter.SellerID) {
				continue
			}
			products = append(products, copyOf(p))
		}
		return nil
	})
	return products, err
}

// LockByIDs only reads: the caller's transaction already holds the store
// mutex.
func (r *productRepo) LockByIDs(ctx context.Context, ids []int64) ([]*entity.Product, error) {
	products := []*entity.Product{}
	err := r.v.do(ctx, func(st *state) error {
		seen := make(map[int64]bool, len(ids))
		for _, id := range ids {
			if seen[id] {
				continue
			}
			seen[id] = true
			if p, ok := st.products[id]; ok {
				products = append(products, copyOf(p))
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(products, func(i, j int) bool { return products[i].ID < products[j].ID })
	return products, nil
}

func (r *productRepo) Update(ctx context.Context, product *entity.Product, scope repository.ProductScope) (bool, error) {
	var updated bool
	err := r.v.do(ctx, func(st *state) error {
		current, ok := st.products[product.ID]
		if !ok || !scope.Allows(current) {
			return nil
		}
		if product.Stock < 0 {
			return fmt.Errorf("update product %d: stock must be non-negative", product.ID)
		}

		next := copyOf(product)
		next.SellerID = current.SellerID
		next.CreatedAt = current.CreatedAt
		st.products[product.ID] = next
		updated = true
		return nil
	})
	return updated, err
}

func (r *productRepo) Delete(ctx context.Context, id int64, scope repository.ProductScope) (bool, error) {
	var deleted bool
	err := r.v.do(ctx, func(st *state) error {
		p, ok := st.products[id]
		if !ok || !scope.Allows(p) {
			return nil
		}
		delete(st.products, id)
		deleted = true
		return nil
	})
	return deleted, err
}

func (r *productRepo) DecrementStock(ctx context.Context, id int64, quantity int) (bool, error) {
	var ok bool
	err := r.v.do(ctx, func(st *state) error {
		p, found := st.products[id]
		if !found || p.Stock < quantity {
			return nil
		}
		next := copyOf(p)
		next.Stock -= quantity
		st.products[id] = next
		ok = true
		return nil
	})
	return ok, err
}
