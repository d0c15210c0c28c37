package repository

import (
	"context"
	"errors"

	"greenmart/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// ErrUniqueViolation is returned when an insert or update collides with a
// unique column (users.email, categories.slug).
var ErrUniqueViolation = errors.New("unique constraint violation")

// Transactor runs fn against a Repository bound to one transaction. fn's
// writes are committed together when it returns nil and discarded otherwise.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(tx *Repository) error) error
}

type Repository struct {
	User     UserRepository
	Category CategoryRepository
	Product  ProductRepository
	Order    OrderRepository
	Tx       Transactor

	ping func(ctx context.Context) error
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	repo := newQuerierRepository(db, log)
	repo.Tx = &pgTransactor{db: db, log: log}
	repo.ping = db.Ping
	return repo
}

// NewCustomRepository assembles a Repository from arbitrary implementations,
// e.g. the in-memory store.
func NewCustomRepository(
	user UserRepository,
	category CategoryRepository,
	product ProductRepository,
	order OrderRepository,
	tx Transactor,
) *Repository {
	return &Repository{
		User:     user,
		Category: category,
		Product:  product,
		Order:    order,
		Tx:       tx,
	}
}

// Ping checks the backing store. Stores without a connection always succeed.
func (r *Repository) Ping(ctx context.Context) error {
	if r.ping == nil {
		return nil
	}
	return r.ping(ctx)
}

func newQuerierRepository(q database.Querier, log *zap.Logger) *Repository {
	return &Repository{
		User:     NewUserRepository(q, log),
		Category: NewCategoryRepository(q, log),
		Product:  NewProductRepository(q, log),
		Order:    NewOrderRepository(q, log),
	}
}

type pgTransactor struct {
	db  database.PgxIface
	log *zap.Logger
}

// Read committed plus SELECT ... FOR UPDATE on the rows being changed is
// enough to serialise concurrent stock reservations.
func (t *pgTransactor) WithinTx(ctx context.Context, fn func(tx *Repository) error) error {
	opts := pgx.TxOptions{IsoLevel: pgx.ReadCommitted}
	return database.WithTx(ctx, t.db, opts, func(tx pgx.Tx) error {
		return fn(newTxRepository(tx, t.log))
	})
}

type savepointTransactor struct {
	tx  pgx.Tx
	log *zap.Logger
}

func (t *savepointTransactor) WithinTx(ctx context.Context, fn func(tx *Repository) error) error {
	return database.WithSavepoint(ctx, t.tx, func(tx pgx.Tx) error {
		return fn(newTxRepository(tx, t.log))
	})
}

func newTxRepository(tx pgx.Tx, log *zap.Logger) *Repository {
	repo := newQuerierRepository(tx, log)
	repo.Tx = &savepointTransactor{tx: tx, log: log}
	return repo
}
