package memory

import (
	"errors"
	"sort"
)

var (
	errDuplicateKey = errors.New("duplicate key value violates unique constraint")
	errNoRows       = errors.New("no rows affected")
)

// table guarda copias de las entidades por ID, recordando el orden de inserción.
type table[T any] struct {
	name string
	key  func(*T) string
	rows map[string]T
	seq  map[string]uint64
	next uint64
}

func newTable[T any](name string, key func(*T) string) *table[T] {
	return &table[T]{name: name, key: key, rows: map[string]T{}, seq: map[string]uint64{}}
}

func (t *table[T]) clone() *table[T] {
	c := &table[T]{
		name: t.name,
		key:  t.key,
		rows: make(map[string]T, len(t.rows)),
		seq:  make(map[string]uint64, len(t.seq)),
		next: t.next,
	}
	for k, v := range t.rows {
		c.rows[k] = v
	}
	for k, v := range t.seq {
		c.seq[k] = v
	}
	return c
}

func (t *table[T]) get(id string) *T {
	v, ok := t.rows[id]
	if !ok {
		return nil
	}
	return &v
}

func (t *table[T]) insert(e *T) error {
	id := t.key(e)
	if _, ok := t.rows[id]; ok {
		return errDuplicateKey
	}
	t.next++
	t.rows[id] = *e
	t.seq[id] = t.next
	return nil
}

func (t *table[T]) update(e *T) error {
	id := t.key(e)
	if _, ok := t.rows[id]; !ok {
		return errNoRows
	}
	t.rows[id] = *e
	return nil
}

func (t *table[T]) delete(id string) {
	delete(t.rows, id)
	delete(t.seq, id)
}

// filter devuelve copias de las filas que cumplen pred, en orden de inserción.
func (t *table[T]) filter(pred func(*T) bool) []*T {
	ids := make([]string, 0, len(t.rows))
	for id := range t.rows {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return t.seq[ids[i]] < t.seq[ids[j]] })
	var out []*T
	for _, id := range ids {
		v := t.rows[id]
		if pred == nil || pred(&v) {
			out = append(out, &v)
		}
	}
	return out
}

// page aplica limit/offset sobre la lista en orden inverso de inserción (más recientes primero).
func page[T any](list []*T, limit, offset int) []*T {
	n := len(list)
	rev := make([]*T, 0, n)
	for i := n - 1; i >= 0; i-- {
		rev = append(rev, list[i])
	}
	if offset >= n {
		return nil
	}
	rev = rev[offset:]
	if limit > 0 && limit < len(rev) {
		rev = rev[:limit]
	}
	return rev
}
