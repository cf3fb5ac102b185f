package domain

// View is the render-ready state of the catalog page for one filter.
type View struct {
	State      LoadState
	Err        string
	Filter     Filter
	Categories []string
	Products   []Product
	Total      int
}

// Count is the number of visible products.
func (v View) Count() int {
	return len(v.Products)
}

// Empty reports whether a ready catalog has nothing to show for the filter.
func (v View) Empty() bool {
	return v.State == StateReady && len(v.Products) == 0
}
