package port

import (
	"context"

	"github.com/niksmo/catalog/internal/core/domain"
)

type ProductsFetcher interface {
	FetchProducts(context.Context) ([]domain.Product, error)
}

type CatalogLoader interface {
	Load(context.Context) error
}

type CatalogViewer interface {
	View(domain.Filter) domain.View
	Product(id string) (domain.Product, error)
}

// CatalogSnapshot exposes the loaded snapshot together with its version,
// which changes only when the snapshot itself changes.
type CatalogSnapshot interface {
	CatalogViewer
	Version() uint64
}

type FilterSession interface {
	SetSearchTerm(string)
	SelectCategory(string)
	ClearFilters()
	Filter() domain.Filter
	View() domain.View
}

type ProductsSnapshotWriter interface {
	WriteProducts(context.Context, []domain.Product) error
}
