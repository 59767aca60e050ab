package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"canvas_shop_backend/internal/cache"
	"canvas_shop_backend/internal/repositories"
	"canvas_shop_backend/pkg/utils"

	"github.com/google/uuid"
)

// Collection is the in-memory copy of one gateway resource, loaded cache-first and
// kept in step with every create, update and delete issued through it.
type Collection[T any] struct {
	name  string
	repo  repositories.CollectionRepository[T]
	cache cache.Cache
	ttl   time.Duration
	id    func(*T) *string

	// derive fills computed fields on every stored item.
	derive func(*T)
	// onChange runs after a successful mutation or load.
	onChange func()

	mu    sync.RWMutex
	items []T
}

// NewCollection binds a resource name (also its cache key) to its repository.
// id must return a pointer to the record's id field.
func NewCollection[T any](name string, repo repositories.CollectionRepository[T], c cache.Cache, ttl time.Duration, id func(*T) *string) *Collection[T] {
	return &Collection[T]{name: name, repo: repo, cache: c, ttl: ttl, id: id, items: []T{}}
}

func (c *Collection[T]) Name() string { return c.name }

// Load reads the collection from cache when present, otherwise from the gateway, and
// writes a gateway result back to the cache.
func (c *Collection[T]) Load(ctx context.Context) error {
	items, hit := c.readCache(ctx)
	if !hit {
		var err error
		items, err = c.repo.GetAll(ctx)
		if err != nil {
			return fmt.Errorf("loading %s: %w", c.name, err)
		}
		c.writeCache(ctx, items)
	}

	c.mu.Lock()
	c.items = items
	c.applyDeriveLocked()
	c.mu.Unlock()

	c.changed()
	return nil
}

// All returns a snapshot of every record.
func (c *Collection[T]) All() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

// Get returns the record with id.
func (c *Collection[T]) Get(id string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if i := c.indexLocked(id); i >= 0 {
		return c.items[i], true
	}
	var zero T
	return zero, false
}

// Find returns the first record matching fn.
func (c *Collection[T]) Find(fn func(*T) bool) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for i := range c.items {
		if fn(&c.items[i]) {
			return c.items[i], true
		}
	}
	var zero T
	return zero, false
}

// Create assigns an id when the record has none, persists it and appends it locally.
func (c *Collection[T]) Create(ctx context.Context, doc T) (T, error) {
	idp := c.id(&doc)
	if *idp == "" {
		*idp = uuid.NewString()
	}
	if err := c.repo.Create(ctx, *idp, &doc); err != nil {
		return doc, mapRepoError(err)
	}
	if c.derive != nil {
		c.derive(&doc)
	}

	c.mu.Lock()
	c.items = append(c.items, doc)
	c.mu.Unlock()

	c.Invalidate(ctx)
	c.changed()
	return doc, nil
}

// Update replaces the record with id. The local copy is only changed after the gateway accepts it.
func (c *Collection[T]) Update(ctx context.Context, id string, doc T) (T, error) {
	*c.id(&doc) = id
	if err := c.repo.Update(ctx, id, &doc); err != nil {
		return doc, mapRepoError(err)
	}
	if c.derive != nil {
		c.derive(&doc)
	}

	c.mu.Lock()
	if i := c.indexLocked(id); i >= 0 {
		c.items[i] = doc
	} else {
		c.items = append(c.items, doc)
	}
	c.mu.Unlock()

	c.Invalidate(ctx)
	c.changed()
	return doc, nil
}

func (c *Collection[T]) Delete(ctx context.Context, id string) error {
	if err := c.repo.Delete(ctx, id); err != nil {
		return mapRepoError(err)
	}

	c.mu.Lock()
	if i := c.indexLocked(id); i >= 0 {
		c.items = append(c.items[:i], c.items[i+1:]...)
	}
	c.mu.Unlock()

	c.Invalidate(ctx)
	c.changed()
	return nil
}

// Invalidate drops the cached copy. Cache failures are logged, never returned.
func (c *Collection[T]) Invalidate(ctx context.Context) {
	if err := c.cache.Delete(ctx, c.name); err != nil {
		utils.LogWarn("Cache invalidation failed", map[string]interface{}{"key": c.name, "error": err.Error()})
	}
}

// Rederive recomputes derived fields on every record.
func (c *Collection[T]) Rederive() {
	c.mu.Lock()
	c.applyDeriveLocked()
	c.mu.Unlock()
}

func (c *Collection[T]) clear() {
	c.mu.Lock()
	c.items = []T{}
	c.mu.Unlock()
}

func (c *Collection[T]) applyDeriveLocked() {
	if c.derive == nil {
		return
	}
	for i := range c.items {
		c.derive(&c.items[i])
	}
}

func (c *Collection[T]) changed() {
	if c.onChange != nil {
		c.onChange()
	}
}

func (c *Collection[T]) indexLocked(id string) int {
	for i := range c.items {
		if *c.id(&c.items[i]) == id {
			return i
		}
	}
	return -1
}

func (c *Collection[T]) readCache(ctx context.Context) ([]T, bool) {
	data, ok, err := c.cache.Get(ctx, c.name)
	if err != nil {
		utils.LogWarn("Cache read failed", map[string]interface{}{"key": c.name, "error": err.Error()})
		return nil, false
	}
	if !ok {
		return nil, false
	}
	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		utils.LogWarn("Discarding undecodable cache entry", map[string]interface{}{"key": c.name, "error": err.Error()})
		return nil, false
	}
	utils.LogDebug("Collection loaded from cache", map[string]interface{}{"key": c.name, "count": len(items)})
	return items, true
}

func (c *Collection[T]) writeCache(ctx context.Context, items []T) {
	data, err := json.Marshal(items)
	if err != nil {
		utils.LogWarn("Cache encode failed", map[string]interface{}{"key": c.name, "error": err.Error()})
		return
	}
	if err := c.cache.Set(ctx, c.name, data, c.ttl); err != nil {
		utils.LogWarn("Cache write failed", map[string]interface{}{"key": c.name, "error": err.Error()})
	}
}

func mapRepoError(err error) error {
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	case errors.Is(err, repositories.ErrDuplicateKey):
		return fmt.Errorf("%w: %v", ErrDuplicate, err)
	default:
		return err
	}
}
