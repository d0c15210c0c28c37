package memstore

import (
	"context"
	"fmt"

	"greenmart/internal/data/entity"
	"greenmart/internal/data/repository"
)

type userRepo struct {
	v *view
}

func (r *userRepo) Create(ctx context.Context, user *entity.User) error {
	return r.v.do(ctx, func(st *state) error {
		email := normalizeEmail(user.Email)
		for _, u := range st.users {
			if u.Email == email {
				return fmt.Errorf("create user %s: %w", user.Email, repository.ErrUniqueViolation)
			}
		}

		st.userSeq++
		user.ID = st.userSeq
		user.CreatedAt = r.v.store.now()
		stored := copyOf(user)
		stored.Email = email
		st.users[user.ID] = stored
		return nil
	})
}

func (r *userRepo) FindByID(ctx context.Context, id int64) (*entity.User, error) {
	var found *entity.User
	err := r.v.do(ctx, func(st *state) error {
		if u, ok := st.users[id]; ok {
			found = copyOf(u)
		}
		return nil
	})
	return found, err
}

func (r *userRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	email = normalizeEmail(email)

	var found *entity.User
	err := r.v.do(ctx, func(st *state) error {
		for _, u := range st.users {
			if u.Email == email {
				found = copyOf(u)
				return nil
			}
		}
		return nil
	})
	return found, err
}

func (r *userRepo) SetActive(ctx context.Context, id int64, active bool) error {
	return r.v.do(ctx, func(st *state) error {
		u, ok := st.users[id]
		if !ok {
			return fmt.Errorf("user %d not found", id)
		}
		updated := copyOf(u)
		updated.IsActive = active
		st.users[id] = updated
		return nil
	})
}
