package httphandler

import (
	"net/http"

	"github.com/niksmo/catalog/internal/core/port"
)

type Metrics interface {
	RequestObserver
	Handler() http.Handler
}

// NewHandler assembles the catalog routes, the metrics endpoint and the
// middleware chain.
func NewHandler(catalog port.CatalogViewer, m Metrics) http.Handler {
	mux := http.NewServeMux()
	RegisterCatalog(mux, catalog)
	mux.Handle("GET /metrics", m.Handler())

	return Observe(m, AllowRead(mux))
}
