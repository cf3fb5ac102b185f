package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/niksmo/catalog/internal/core/domain"
	"github.com/niksmo/catalog/internal/core/port"
)

var (
	ErrNotReady = errors.New("catalog is not ready")
	ErrNotFound = errors.New("product not found")
)

var _ port.CatalogLoader = (*Catalog)(nil)
var _ port.CatalogSnapshot = (*Catalog)(nil)

// Catalog holds the read-only product snapshot of the session.
//
// The snapshot is fetched at most once; every later Load returns the
// outcome of the first one.
type Catalog struct {
	fetcher port.ProductsFetcher
	once    sync.Once

	mu         sync.RWMutex
	state      domain.LoadState
	loadErr    error
	failure    string
	products   []domain.Product
	categories []string
	version    uint64
}

func New(fetcher port.ProductsFetcher) *Catalog {
	return &Catalog{fetcher: fetcher, state: domain.StateLoading}
}

func (c *Catalog) Load(ctx context.Context) error {
	c.once.Do(func() { c.load(ctx) })

	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loadErr
}

func (c *Catalog) load(ctx context.Context) {
	const op = "Catalog.Load"
	log := slog.With("op", op)

	ps, err := c.fetch(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		c.state = domain.StateFailed
		c.loadErr = fmt.Errorf("%s: %w", op, err)
		c.failure = err.Error()
		c.version++
		log.Error("failed to load products", "err", err)
		return
	}

	c.products = ps
	c.categories = domain.Categories(ps)
	c.state = domain.StateReady
	c.version++
	log.Info("products loaded",
		"nProducts", len(ps), "nCategories", len(c.categories))
}

func (c *Catalog) fetch(ctx context.Context) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return c.fetcher.FetchProducts(ctx)
}

func (c *Catalog) State() domain.LoadState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

func (c *Catalog) Version() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.version
}

// View derives the visible subset of the snapshot for f.
func (c *Catalog) View(f domain.Filter) domain.View {
	c.mu.RLock()
	defer c.mu.RUnlock()

	v := domain.View{
		State:  c.state,
		Filter: f,
	}

	switch c.state {
	case domain.StateFailed:
		v.Err = c.failure
	case domain.StateReady:
		v.Categories = c.categories
		v.Products = domain.FilterProducts(c.products, f)
		v.Total = len(c.products)
	}
	return v
}

func (c *Catalog) Product(id string) (domain.Product, error) {
	const op = "Catalog.Product"

	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.state != domain.StateReady {
		return domain.Product{}, fmt.Errorf("%s: %w", op, ErrNotReady)
	}

	for _, p := range c.products {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.Product{}, fmt.Errorf("%s: %q: %w", op, id, ErrNotFound)
}
