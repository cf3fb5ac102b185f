package httphandler

import "github.com/niksmo/catalog/internal/core/domain"

type (
	Product struct {
		ID          string   `json:"id"`
		Title       string   `json:"title,omitempty"`
		Category    string   `json:"category,omitempty"`
		Price       *float64 `json:"price,omitempty"`
		Image       string   `json:"image,omitempty"`
		Rating      *Rating  `json:"rating,omitempty"`
		Description string   `json:"description,omitempty"`
	}

	Rating struct {
		Rate  float64 `json:"rate"`
		Count *int    `json:"count,omitempty"`
	}
)

type CatalogResponse struct {
	State      string    `json:"state"`
	Error      string    `json:"error,omitempty"`
	SearchTerm string    `json:"search_term"`
	Category   string    `json:"category"`
	Total      int       `json:"total"`
	Count      int       `json:"count"`
	Categories []string  `json:"categories"`
	Products   []Product `json:"products"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func fromDomain(p domain.Product) Product {
	v := Product{
		ID:          p.ID,
		Title:       p.Title,
		Category:    p.Category,
		Price:       p.Price,
		Image:       p.Image,
		Description: p.Description,
	}
	if p.Rating != nil {
		v.Rating = &Rating{Rate: p.Rating.Rate, Count: p.Rating.Count}
	}
	return v
}

func toCatalogResponse(v domain.View) CatalogResponse {
	res := CatalogResponse{
		State:      v.State.String(),
		Error:      v.Err,
		SearchTerm: v.Filter.SearchTerm,
		Category:   v.Filter.Category,
		Total:      v.Total,
		Count:      v.Count(),
		Categories: make([]string, 0, len(v.Categories)),
		Products:   make([]Product, 0, len(v.Products)),
	}
	res.Categories = append(res.Categories, v.Categories...)
	for _, p := range v.Products {
		res.Products = append(res.Products, fromDomain(p))
	}
	return res
}
