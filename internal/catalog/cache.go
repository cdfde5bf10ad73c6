package catalog

import (
	"context"
	"sync"
)

// checkedLister is implemented by repositories that can serve a fallback list
// when the store is unreadable. Fallback lists are served but not kept.
type checkedLister interface {
	listChecked(ctx context.Context) ([]Product, bool, error)
}

// Cached is the storefront's view of the product list. It reads through to the
// repository once and serves from memory until Invalidate is called.
type Cached struct {
	repo Repository

	mu    sync.RWMutex
	items []Product
	valid bool
}

func NewCached(repo Repository) *Cached { return &Cached{repo: repo} }

func (c *Cached) List(ctx context.Context) ([]Product, error) {
	c.mu.RLock()
	if c.valid {
		out := append([]Product(nil), c.items...)
		c.mu.RUnlock()
		return out, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.valid {
		return append([]Product(nil), c.items...), nil
	}
	items, complete, err := c.load(ctx)
	if err != nil {
		return nil, err
	}
	if complete {
		c.items, c.valid = items, true
	}
	return append([]Product(nil), items...), nil
}

func (c *Cached) load(ctx context.Context) ([]Product, bool, error) {
	if cl, ok := c.repo.(checkedLister); ok {
		return cl.listChecked(ctx)
	}
	items, err := c.repo.List(ctx)
	return items, true, err
}

func (c *Cached) Featured(ctx context.Context) ([]Product, error) {
	ps, err := c.List(ctx)
	if err != nil {
		return nil, err
	}
	return filter(ps, func(p Product) bool { return p.IsFeatured }), nil
}

func (c *Cached) ByCategory(ctx context.Context, categoryID string) ([]Product, error) {
	ps, err := c.List(ctx)
	if err != nil {
		return nil, err
	}
	return filter(ps, func(p Product) bool { return p.Category == categoryID }), nil
}

func (c *Cached) Get(ctx context.Context, id string) (Product, bool, error) {
	ps, err := c.List(ctx)
	if err != nil {
		return Product{}, false, err
	}
	for _, p := range ps {
		if p.ID == id {
			return p, true, nil
		}
	}
	return Product{}, false, nil
}

// Invalidate drops the cached list so the next read reflects the store.
func (c *Cached) Invalidate() {
	c.mu.Lock()
	c.items, c.valid = nil, false
	c.mu.Unlock()
}
