package memory

import (
	"context"
	"errors"

	"github.com/vacinas-ubs/estoque-vacinas/internal/domain"
)

// crud implementa repository.Repository[T] sobre una tabla en memoria. Los repositorios
// específicos lo embeben y agregan restricciones (unicidad, claves foráneas, CHECK).
type crud[T any] struct {
	store  *Store
	access accessor
	pick   func(*state) *table[T]
	name   string
}

func (r *crud[T]) fail(op string) error {
	if err := r.store.fault(r.name + "." + op); err != nil {
		return domain.Persistence(op+" "+r.name, err)
	}
	return nil
}

func (r *crud[T]) Create(ctx context.Context, e *T) error {
	if err := r.fail("create"); err != nil {
		return err
	}
	err := r.access(ctx, true, func(st *state) error { return r.pick(st).insert(e) })
	return domain.Persistence("insert "+r.name, err)
}

func (r *crud[T]) GetByID(ctx context.Context, id string) (*T, error) {
	if err := r.fail("get"); err != nil {
		return nil, err
	}
	var out *T
	err := r.access(ctx, false, func(st *state) error {
		out = r.pick(st).get(id)
		return nil
	})
	if err != nil {
		return nil, domain.Persistence("get "+r.name, err)
	}
	return out, nil
}

func (r *crud[T]) Update(ctx context.Context, e *T) error {
	if err := r.fail("update"); err != nil {
		return err
	}
	err := r.access(ctx, true, func(st *state) error { return r.pick(st).update(e) })
	if errors.Is(err, errNoRows) {
		return domain.ErrNotFound
	}
	return domain.Persistence("update "+r.name, err)
}

func (r *crud[T]) Delete(ctx context.Context, id string) error {
	if err := r.fail("delete"); err != nil {
		return err
	}
	err := r.access(ctx, true, func(st *state) error {
		r.pick(st).delete(id)
		return nil
	})
	return domain.Persistence("delete "+r.name, err)
}

func (r *crud[T]) list(ctx context.Context, pred func(*T) bool) ([]*T, error) {
	if err := r.fail("list"); err != nil {
		return nil, err
	}
	var out []*T
	err := r.access(ctx, false, func(st *state) error {
		out = r.pick(st).filter(pred)
		return nil
	})
	if err != nil {
		return nil, domain.Persistence("list "+r.name, err)
	}
	return out, nil
}
