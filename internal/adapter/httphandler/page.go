package httphandler

import (
	"bytes"
	_ "embed"
	"html/template"
	"io"
	"net/url"
	"slices"

	"github.com/niksmo/catalog/internal/core/domain"
)

//go:embed page.html.tmpl
var pageTemplateText string

type pageData struct {
	View     domain.View
	Selected *domain.Product
}

type pageRenderer struct {
	tmpl *template.Template
}

func newPageRenderer() *pageRenderer {
	funcs := template.FuncMap{
		"categoryTitle":  domain.CategoryTitle,
		"allCategories":  func() string { return domain.AllCategories },
		"pageURL":        pageURL,
		"searchClearURL": searchClearURL,
		"hasCategory":    slices.Contains[[]string, string],
	}
	tmpl := template.Must(template.New("page").Funcs(funcs).Parse(pageTemplateText))
	return &pageRenderer{tmpl}
}

// render buffers the page so a template error never leaves a half-written body.
func (r *pageRenderer) render(w io.Writer, data pageData) error {
	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, data); err != nil {
		return err
	}
	_, err := buf.WriteTo(w)
	return err
}

func filterValues(f domain.Filter) url.Values {
	q := url.Values{}
	if f.SearchTerm != "" {
		q.Set(queryParamSearch, f.SearchTerm)
	}
	if f.Category != domain.AllCategories {
		q.Set(queryParamCategory, f.Category)
	}
	return q
}

func pageURL(f domain.Filter, productID string) string {
	q := filterValues(f)
	if productID != "" {
		q.Set(queryParamProduct, productID)
	}
	if len(q) == 0 {
		return "/"
	}
	return "/?" + q.Encode()
}

func searchClearURL(f domain.Filter) string {
	f.SearchTerm = ""
	return pageURL(f, "")
}
