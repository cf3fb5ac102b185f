package domain

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// NotAvailable substitutes every missing or malformed product field.
const NotAvailable = "N/A"

func (p Product) TitleLabel() string {
	return orNA(p.Title)
}

func (p Product) CategoryLabel() string {
	return orNA(p.Category)
}

func (p Product) DescriptionLabel() string {
	return orNA(p.Description)
}

func (p Product) HasImage() bool {
	return p.Image != ""
}

func (p Product) PriceLabel() string {
	if p.Price == nil {
		return NotAvailable
	}
	return fmt.Sprintf("$%.2f", *p.Price)
}

// RatingLabel renders "rate (count reviews)".
func (p Product) RatingLabel() string {
	if p.Rating == nil {
		return NotAvailable
	}
	count := NotAvailable
	if p.Rating.Count != nil {
		count = strconv.Itoa(*p.Rating.Count)
	}
	rate := strconv.FormatFloat(p.Rating.Rate, 'f', -1, 64)
	return fmt.Sprintf("%s (%s reviews)", rate, count)
}

// CategoryTitle capitalizes the first letter of a category for selectors.
func CategoryTitle(category string) string {
	if category == AllCategories {
		return "All Categories"
	}
	r, size := utf8.DecodeRuneInString(category)
	if r == utf8.RuneError {
		return category
	}
	return string(unicode.ToUpper(r)) + category[size:]
}

// CategoryChip is the upper-cased category shown in the detail view.
func (p Product) CategoryChip() string {
	if p.Category == "" {
		return NotAvailable
	}
	return strings.ToUpper(p.Category)
}

func orNA(s string) string {
	if s == "" {
		return NotAvailable
	}
	return s
}
