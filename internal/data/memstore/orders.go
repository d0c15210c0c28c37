package memstore

import (
	"context"
	"fmt"
	"sort"

	"greenmart/internal/data/entity"
)

type orderRepo struct {
	v *view
}

func (r *orderRepo) Create(ctx context.Context, order *entity.Order) error {
	return r.v.do(ctx, func(st *state) error {
		st.orderSeq++
		order.ID = st.orderSeq
		order.CreatedAt = r.v.store.now()
		st.orders[order.ID] = copyOf(order)
		return nil
	})
}

func (r *orderRepo) CreateItems(ctx context.Context, items []*entity.OrderItem) error {
	return r.v.do(ctx, func(st *state) error {
		for _, item := range items {
			st.itemSeq++
			item.ID = st.itemSeq
			st.items[item.ID] = copyOf(item)
		}
		return nil
	})
}

func (r *orderRepo) FindByID(ctx context.Context, id int64) (*entity.Order, error) {
	var found *entity.Order
	err := r.v.do(ctx, func(st *state) error {
		if o, ok := st.orders[id]; ok {
			found = copyOf(o)
		}
		return nil
	})
	return found, err
}

func (r *orderRepo) FindItems(ctx context.Context, orderID int64) ([]*entity.OrderItem, error) {
	items := []*entity.OrderItem{}
	err := r.v.do(ctx, func(st *state) error {
		for _, id := range sortedKeys(st.items) {
			if it := st.items[id]; it.OrderID == orderID {
				items = append(items, copyOf(it))
			}
		}
		return nil
	})
	return items, err
}

func (r *orderRepo) FindAll(ctx context.Context, limit, offset int) ([]*entity.Order, error) {
	orders := []*entity.Order{}
	err := r.v.do(ctx, func(st *state) error {
		all := make([]*entity.Order, 0, len(st.orders))
		for _, o := range st.orders {
			all = append(all, o)
		}
		sort.Slice(all, func(i, j int) bool {
			if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
				return all[i].CreatedAt.After(all[j].CreatedAt)
			}
			return all[i].ID > all[j].ID
		})

		if offset < 0 || limit < 0 {
			return fmt.Errorf("invalid page window: limit=%d offset=%d", limit, offset)
		}
		if offset >= len(all) {
			return nil
		}
		end := len(all)
		if limit > 0 && offset+limit < end {
			end = offset + limit
		}
		for _, o := range all[offset:end] {
			orders = append(orders, copyOf(o))
		}
		return nil
	})
	return orders, err
}

func (r *orderRepo) CountAll(ctx context.Context) (int, error) {
	var n int
	err := r.v.do(ctx, func(st *state) error {
		n = len(st.orders)
		return nil
	})
	return n, err
}
