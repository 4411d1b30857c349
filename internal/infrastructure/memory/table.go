package memory

import (
	"slices"
	"sync"

	"github.com/jhoicas/comedor/internal/domain"
)

// table almacén en memoria con ids autoincrementales. Seguro para uso concurrente.
type table[T any] struct {
	mu     sync.RWMutex
	rows   map[int64]T
	nextID int64
	id     func(*T) *int64
}

func newTable[T any](id func(*T) *int64) *table[T] {
	return &table[T]{rows: map[int64]T{}, id: id}
}

// insert asigna id si viene en cero; un id explícito ya ocupado es conflicto.
func (t *table[T]) insert(v *T) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	id := t.id(v)
	if *id == 0 {
		t.nextID++
		*id = t.nextID
	} else if _, exists := t.rows[*id]; exists {
		return domain.ErrConflict
	}
	t.nextID = max(t.nextID, *id)
	t.rows[*id] = *v
	return nil
}

func (t *table[T]) get(id int64) (T, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	v, ok := t.rows[id]
	if !ok {
		var zero T
		return zero, domain.ErrNotFound
	}
	return v, nil
}

func (t *table[T]) update(v *T) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	id := *t.id(v)
	if _, ok := t.rows[id]; !ok {
		return domain.ErrNotFound
	}
	t.rows[id] = *v
	return nil
}

func (t *table[T]) delete(id int64) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.rows[id]; !ok {
		return domain.ErrNotFound
	}
	delete(t.rows, id)
	return nil
}

// find devuelve la primera fila (por id) que cumple match.
func (t *table[T]) find(match func(T) bool) (T, bool) {
	if rows := t.list(match); len(rows) > 0 {
		return rows[0], true
	}
	var zero T
	return zero, false
}

// list filas ordenadas por id; match nil = todas.
func (t *table[T]) list(match func(T) bool) []T {
	t.mu.RLock()
	ids := make([]int64, 0, len(t.rows))
	for id, v := range t.rows {
		if match == nil || match(v) {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	out := make([]T, 0, len(ids))
	for _, id := range ids {
		out = append(out, t.rows[id])
	}
	t.mu.RUnlock()
	return out
}
