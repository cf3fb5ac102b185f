package domain

import (
	"maps"
	"slices"
	"strings"
)

// AllCategories is the reserved category value meaning no category restriction.
const AllCategories = "all"

type Filter struct {
	SearchTerm string
	Category   string
}

func DefaultFilter() Filter {
	return Filter{Category: AllCategories}
}

// Active reports whether f differs from [DefaultFilter].
func (f Filter) Active() bool {
	return f.SearchTerm != "" || f.Category != AllCategories
}

func (f Filter) Cleared() Filter {
	return DefaultFilter()
}

// Match reports whether p passes both the category and the search predicate.
func (f Filter) Match(p Product) bool {
	return f.matcher().match(p)
}

type matcher struct {
	category string
	term     string
}

func (f Filter) matcher() matcher {
	return matcher{
		category: f.Category,
		term:     strings.ToLower(f.SearchTerm),
	}
}

func (m matcher) match(p Product) bool {
	if m.category != AllCategories && m.category != p.Category {
		return false
	}
	if m.term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.Title), m.term) ||
		strings.Contains(strings.ToLower(p.Category), m.term)
}

// FilterProducts returns the products matching f in input order.
// The result never aliases ps and is non-nil.
func FilterProducts(ps []Product, f Filter) []Product {
	m := f.matcher()
	out := make([]Product, 0, len(ps))
	for _, p := range ps {
		if m.match(p) {
			out = append(out, p)
		}
	}
	return out
}

// Categories returns the distinct non-empty categories of ps in ascending order.
func Categories(ps []Product) []string {
	seen := make(map[string]struct{}, len(ps))
	for _, p := range ps {
		if p.Category == "" {
			continue
		}
		seen[p.Category] = struct{}{}
	}
	return slices.Sorted(maps.Keys(seen))
}
