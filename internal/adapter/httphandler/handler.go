package httphandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/niksmo/catalog/internal/core/domain"
	"github.com/niksmo/catalog/internal/core/port"
	"github.com/niksmo/catalog/internal/core/service"
)

// GET / ?q=term&category=name&product=id (200 OK, 502 Bad gateway when the catalog failed to load)
// GET v1/products ?q=term&category=name (200 OK, 503 Service unavailable, 502 Bad gateway)
// GET v1/products/{id} (200 OK, 404 Not found, 503 Service unavailable)

const (
	queryParamSearch   = "q"
	queryParamCategory = "category"
	queryParamProduct  = "product"
)

type CatalogHandler struct {
	catalog port.CatalogViewer
	page    *pageRenderer
}

func RegisterCatalog(mux *http.ServeMux, catalog port.CatalogViewer) {
	h := CatalogHandler{catalog: catalog, page: newPageRenderer()}
	mux.HandleFunc("GET /{$}", h.GetPage)
	mux.HandleFunc("GET /v1/products", h.GetProducts)
	mux.HandleFunc("GET /v1/products/{id}", h.GetProduct)
}

func filterFromRequest(r *http.Request) domain.Filter {
	q := r.URL.Query()
	f := domain.DefaultFilter()
	f.SearchTerm = q.Get(queryParamSearch)
	if c := q.Get(queryParamCategory); c != "" {
		f.Category = c
	}
	return f
}

func (h CatalogHandler) GetPage(w http.ResponseWriter, r *http.Request) {
	const op = "CatalogHandler.GetPage"
	log := slog.With("op", op)

	v := h.catalog.View(filterFromRequest(r))

	data := pageData{View: v}
	if id := r.URL.Query().Get(queryParamProduct); id != "" && v.State == domain.StateReady {
		if p, err := h.catalog.Product(id); err == nil {
			data.Selected = &p
		}
	}

	status := http.StatusOK
	if v.State == domain.StateFailed {
		status = http.StatusBadGateway
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := h.page.render(w, data); err != nil {
		log.Error("failed to render page", "err", err)
		return
	}
}

func (h CatalogHandler) GetProducts(w http.ResponseWriter, r *http.Request) {
	v := h.catalog.View(filterFromRequest(r))

	switch v.State {
	case domain.StateLoading:
		writeJSON(w, http.StatusServiceUnavailable, toCatalogResponse(v))
	case domain.StateFailed:
		writeJSON(w, http.StatusBadGateway, toCatalogResponse(v))
	default:
		writeJSON(w, http.StatusOK, toCatalogResponse(v))
	}
}

func (h CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.catalog.Product(r.PathValue("id"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			writeJSON(w, http.StatusNotFound, ErrorResponse{"product not found"})
		case errors.Is(err, service.ErrNotReady):
			writeJSON(w, http.StatusServiceUnavailable, ErrorResponse{"catalog is not ready"})
		default:
			writeJSON(w, http.StatusInternalServerError, ErrorResponse{"internal error"})
		}
		return
	}
	writeJSON(w, http.StatusOK, fromDomain(p))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	const op = "httphandler.writeJSON"

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to write response body", "op", op, "err", err)
	}
}
