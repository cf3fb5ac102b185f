package service

import (
	"github.com/niksmo/catalog/internal/core/domain"
	"github.com/niksmo/catalog/internal/core/port"
)

var _ port.FilterSession = (*Session)(nil)

// Session is the filter state of a single user over a shared catalog.
//
// View is recomputed only after a filter mutation or a catalog version
// change; otherwise the last view is returned as is. Session is not safe
// for concurrent use.
type Session struct {
	catalog port.CatalogSnapshot
	filter  domain.Filter
	rev     uint64

	memo struct {
		valid          bool
		rev            uint64
		catalogVersion uint64
		view           domain.View
	}
}

func NewSession(catalog port.CatalogSnapshot) *Session {
	return &Session{catalog: catalog, filter: domain.DefaultFilter()}
}

func (s *Session) Filter() domain.Filter {
	return s.filter
}

func (s *Session) SetSearchTerm(term string) {
	if s.filter.SearchTerm == term {
		return
	}
	s.filter.SearchTerm = term
	s.rev++
}

func (s *Session) SelectCategory(category string) {
	if s.filter.Category == category {
		return
	}
	s.filter.Category = category
	s.rev++
}

func (s *Session) ClearFilters() {
	if !s.filter.Active() {
		return
	}
	s.filter = s.filter.Cleared()
	s.rev++
}

func (s *Session) View() domain.View {
	version := s.catalog.Version()
	if s.memo.valid && s.memo.rev == s.rev && s.memo.catalogVersion == version {
		return s.memo.view
	}

	s.memo.view = s.catalog.View(s.filter)
	s.memo.rev = s.rev
	s.memo.catalogVersion = version
	s.memo.valid = true
	return s.memo.view
}
