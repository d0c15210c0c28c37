// Package memstore is an in-process implementation of the repository
// interfaces. It backs STORE=memory and the service tests.
//
// All access goes through one mutex. A transaction holds the mutex for its
// whole duration and restores a snapshot of the data when it fails, which
// gives the same serialisation guarantees as row locks in Postgres, only
// coarser.
package memstore

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"greenmart/internal/data/entity"
	"greenmart/internal/data/repository"

	"go.uber.org/zap"
)

type Store struct {
	mu   sync.Mutex
	data *state
	now  func() time.Time
	log  *zap.Logger
}

type state struct {
	users      map[int64]*entity.User
	categories map[int64]*entity.Category
	products   map[int64]*entity.Product
	orders     map[int64]*entity.Order
	items      map[int64]*entity.OrderItem

	userSeq, categorySeq, productSeq, orderSeq, itemSeq int64
}

func newState() *state {
	return &state{
		users:      map[int64]*entity.User{},
		categories: map[int64]*entity.Category{},
		products:   map[int64]*entity.Product{},
		orders:     map[int64]*entity.Order{},
		items:      map[int64]*entity.OrderItem{},
	}
}

func (s *state) clone() *state {
	c := *s
	c.users = cloneMap(s.users)
	c.categories = cloneMap(s.categories)
	c.products = cloneMap(s.products)
	c.orders = cloneMap(s.orders)
	c.items = cloneMap(s.items)
	return &c
}

// cloneMap copies the map and the structs it points to. Pointer fields of
// the structs are shared, which is fine because stored values are never
// mutated in place.
func cloneMap[T any](m map[int64]*T) map[int64]*T {
	out := make(map[int64]*T, len(m))
	for k, v := range m {
		cp := *v
		out[k] = &cp
	}
	return out
}

func NewStore(log *zap.Logger) *Store {
	return &Store{
		data: newState(),
		now:  time.Now,
		log:  log.With(zap.String("repository", "memory")),
	}
}

// New returns a Repository backed by a fresh, empty Store.
func New(log *zap.Logger) *repository.Repository {
	return NewStore(log).Repository()
}

func (s *Store) Repository() *repository.Repository {
	return (&view{store: s}).repository()
}

// view is a handle on the store. Outside a transaction every call takes the
// mutex; inside one the mutex is already held by WithinTx.
type view struct {
	store  *Store
	locked bool
}

func (v *view) repository() *repository.Repository {
	return repository.NewCustomRepository(
		&userRepo{v},
		&categoryRepo{v},
		&productRepo{v},
		&orderRepo{v},
		&transactor{v},
	)
}

func (v *view) do(ctx context.Context, fn func(st *state) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !v.locked {
		v.store.mu.Lock()
		defer v.store.mu.Unlock()
	}
	return fn(v.store.data)
}

type transactor struct {
	v *view
}

func (t *transactor) WithinTx(ctx context.Context, fn func(tx *repository.Repository) error) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	s := t.v.store
	if !t.v.locked {
		s.mu.Lock()
		defer s.mu.Unlock()
	}

	snapshot := s.data.clone()
	defer func() {
		if p := recover(); p != nil {
			s.data = snapshot
			panic(p)
		}
		if err != nil {
			s.data = snapshot
		}
	}()

	return fn((&view{store: s, locked: true}).repository())
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func sortedKeys[T any](m map[int64]*T) []int64 {
	keys := make([]int64, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

func copyOf[T any](v *T) *T {
	cp := *v
	return &cp
}
