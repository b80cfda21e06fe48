package catalog

import (
	"context"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

const DefaultTTL = 60 * time.Second

type snapshot[T any] struct {
	value    T
	loadedAt time.Time
}

// cache guarda resultados completos por key durante ttl. Sin invalidación parcial:
// o se devuelve el snapshot entero o se recarga todo.
type cache[T any] struct {
	ttl time.Duration
	now func() time.Time

	mu      sync.Mutex
	entries map[string]snapshot[T]
	gen     uint64

	group singleflight.Group
}

func newCache[T any](ttl time.Duration, now func() time.Time) *cache[T] {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &cache[T]{
		ttl:     ttl,
		now:     now,
		entries: map[string]snapshot[T]{},
	}
}

// get devuelve el snapshot fresco o llama a load. Cargas concurrentes de la misma
// key se colapsan en una. Los errores no se cachean.
func (c *cache[T]) get(ctx context.Context, key string, load func(context.Context) (T, error)) (T, bool, error) {
	c.mu.Lock()
	if s, ok := c.entries[key]; ok && c.now().Sub(s.loadedAt) < c.ttl {
		c.mu.Unlock()
		return s.value, true, nil
	}
	gen := c.gen
	c.mu.Unlock()

	// gen en la key: una carga iniciada antes de invalidate no se comparte con las
	// posteriores.
	flightKey := strconv.FormatUint(gen, 10) + "|" + key

	v, err, _ := c.group.Do(flightKey, func() (any, error) {
		// la carga compartida sigue aunque el request que la inició se cancele
		val, err := load(context.WithoutCancel(ctx))
		if err != nil {
			return val, err
		}

		c.mu.Lock()
		if c.gen == gen {
			c.entries[key] = snapshot[T]{value: val, loadedAt: c.now()}
		}
		c.mu.Unlock()
		return val, nil
	})
	if err != nil {
		var zero T
		return zero, false, err
	}
	return v.(T), false, nil
}

// invalidate fuerza la próxima get a recargar.
func (c *cache[T]) invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = map[string]snapshot[T]{}
	c.gen++
}
