package catalog

import (
	"context"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

type memoEntry[T any] struct {
	value     T
	fetchedAt time.Time
}

// memo caché por clave con ventana de frescura. Peticiones concurrentes a la misma
// clave comparten una sola llamada al origen; los errores no se guardan.
// invalidate abre una nueva generación: lo que traiga una llamada anterior no se
// guarda y los solicitantes nuevos no se unen a ella.
type memo[T any] struct {
	ttl   time.Duration
	now   func() time.Time
	mu    sync.Mutex
	items map[string]memoEntry[T]
	gen   uint64
	group singleflight.Group
}

func newMemo[T any](ttl time.Duration, now func() time.Time) *memo[T] {
	return &memo[T]{ttl: ttl, now: now, items: map[string]memoEntry[T]{}}
}

// get devuelve el valor fresco o lo obtiene con fetch. La llamada compartida no se
// cancela cuando un solo solicitante abandona: cada uno deja de esperar con su ctx.
func (m *memo[T]) get(ctx context.Context, key string, fetch func(context.Context) (T, error)) (T, bool, error) {
	v, gen, ok := m.fresh(key)
	if ok {
		return v, true, nil
	}
	ch := m.group.DoChan(strconv.FormatUint(gen, 10)+"|"+key, func() (any, error) {
		v, err := fetch(context.WithoutCancel(ctx))
		if err != nil {
			return v, err
		}
		m.mu.Lock()
		if m.gen == gen {
			m.items[key] = memoEntry[T]{value: v, fetchedAt: m.now()}
		}
		m.mu.Unlock()
		return v, nil
	})
	select {
	case <-ctx.Done():
		var zero T
		return zero, false, ctx.Err()
	case r := <-ch:
		if r.Err != nil {
			var zero T
			return zero, false, r.Err
		}
		return r.Val.(T), false, nil
	}
}

// fresh devuelve el valor vigente de key y la generación actual.
func (m *memo[T]) fresh(key string) (T, uint64, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.items[key]
	if !ok || m.now().Sub(e.fetchedAt) >= m.ttl {
		var zero T
		return zero, m.gen, false
	}
	return e.value, m.gen, true
}

func (m *memo[T]) invalidate() {
	m.mu.Lock()
	m.items = map[string]memoEntry[T]{}
	m.gen++
	m.mu.Unlock()
}
