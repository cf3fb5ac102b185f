package fakestore

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/niksmo/catalog/internal/core/domain"
)

// Fields are decoded leniently: a field of unexpected type becomes absent
// instead of failing the whole list.
type (
	product struct {
		ID          identifier `json:"id"`
		Title       text       `json:"title"`
		Category    text       `json:"category"`
		Price       number     `json:"price"`
		Image       text       `json:"image"`
		Rating      rating     `json:"rating"`
		Description text       `json:"description"`
	}

	rating struct {
		set   bool
		Rate  number `json:"rate"`
		Count count  `json:"count"`
	}

	identifier string
	text       string

	number struct {
		set bool
		v   float64
	}

	count struct {
		set bool
		v   int
	}
)

var null = []byte("null")

func (id *identifier) UnmarshalJSON(b []byte) error {
	var s string
	if json.Unmarshal(b, &s) == nil {
		*id = identifier(s)
		return nil
	}
	var n json.Number
	if json.Unmarshal(b, &n) == nil {
		*id = identifier(n.String())
	}
	return nil
}

func (t *text) UnmarshalJSON(b []byte) error {
	var s string
	if json.Unmarshal(b, &s) == nil {
		*t = text(s)
	}
	return nil
}

func (n *number) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, null) {
		return nil
	}
	var v float64
	if json.Unmarshal(b, &v) == nil {
		n.set, n.v = true, v
	}
	return nil
}

func (c *count) UnmarshalJSON(b []byte) error {
	var n json.Number
	if bytes.Equal(b, null) || json.Unmarshal(b, &n) != nil {
		return nil
	}
	v, err := strconv.Atoi(n.String())
	if err != nil || v < 0 {
		return nil
	}
	c.set, c.v = true, v
	return nil
}

func (r *rating) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, null) {
		return nil
	}
	type plain rating
	var v plain
	if json.Unmarshal(b, &v) != nil {
		return nil
	}
	*r = rating(v)
	r.set = true
	return nil
}

func (p product) toDomain() domain.Product {
	dp := domain.Product{
		ID:          string(p.ID),
		Title:       string(p.Title),
		Category:    string(p.Category),
		Image:       string(p.Image),
		Description: string(p.Description),
	}

	if p.Price.set {
		price := p.Price.v
		dp.Price = &price
	}

	if p.Rating.set && p.Rating.Rate.set {
		dp.Rating = &domain.Rating{Rate: p.Rating.Rate.v}
		if p.Rating.Count.set {
			c := p.Rating.Count.v
			dp.Rating.Count = &c
		}
	}
	return dp
}

func toDomain(ps []product) []domain.Product {
	out := make([]domain.Product, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.toDomain())
	}
	return out
}
