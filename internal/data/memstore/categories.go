package memstore

import (
	"context"
	"fmt"

	"greenmart/internal/data/entity"
	"greenmart/internal/data/repository"
)

type categoryRepo struct {
	v *view
}

func slugTaken(st *state, slug string, exceptID int64) bool {
	for _, c := range st.categories {
		if c.Slug == slug && c.ID != exceptID {
			return true
		}
	}
	return false
}

func (r *categoryRepo) Create(ctx context.Context, category *entity.Category) error {
	return r.v.do(ctx, func(st *state) error {
		if slugTaken(st, category.Slug, 0) {
			return fmt.Errorf("create category %s: %w", category.Slug, repository.ErrUniqueViolation)
		}
		st.categorySeq++
		category.ID = st.categorySeq
		st.categories[category.ID] = copyOf(category)
		return nil
	})
}

func (r *categoryRepo) FindByID(ctx context.Context, id int64) (*entity.Category, error) {
	var found *entity.Category
	err := r.v.do(ctx, func(st *state) error {
		if c, ok := st.categories[id]; ok {
			found = copyOf(c)
		}
		return nil
	})
	return found, err
}

func (r *categoryRepo) FindBySlug(ctx context.Context, slug string) (*entity.Category, error) {
	var found *entity.Category
	err := r.v.do(ctx, func(st *state) error {
		for _, c := range st.categories {
			if c.Slug == slug {
				found = copyOf(c)
				return nil
			}
		}
		return nil
	})
	return found, err
}

func (r *categoryRepo) FindAll(ctx context.Context) ([]*entity.Category, error) {
	categories := []*entity.Category{}
	err := r.v.do(ctx, func(st *state) error {
		for _, id := range sortedKeys(st.categories) {
			categories = append(categories, copyOf(st.categories[id]))
		}
		return nil
	})
	return categories, err
}

func (r *categoryRepo) Update(ctx context.Context, category *entity.Category) error {
	return r.v.do(ctx, func(st *state) error {
		if _, ok := st.categories[category.ID]; !ok {
			return fmt.Errorf("category %d not found", category.ID)
		}
		if slugTaken(st, category.Slug, category.ID) {
			return fmt.Errorf("update category %d: %w", category.ID, repository.ErrUniqueViolation)
		}
		st.categories[category.ID] = copyOf(category)
		return nil
	})
}

// Delete detaches the category's products, matching ON DELETE SET NULL.
func (r *categoryRepo) Delete(ctx context.Context, id int64) (bool, error) {
	var deleted bool
	err := r.v.do(ctx, func(st *state) error {
		if _, ok := st.categories[id]; !ok {
			return nil
		}
		delete(st.categories, id)
		for pid, p := range st.products {
			if p.CategoryID != nil && *p.CategoryID == id {
				detached := copyOf(p)
				detached.CategoryID = nil
				st.products[pid] = detached
			}
		}
		deleted = true
		return nil
	})
	return deleted, err
}
