package schema

import (
	"sync"

	"github.com/hamba/avro/v2"
)

const ProductSchemaTextV1 = `{
	"type": "record",
	"namespace": "catalog",
	"name": "product",
	"fields" : [
		{"name": "id", "type": "string"},
		{"name": "title", "type": "string"},
		{"name": "category", "type": "string"},
		{"name": "price", "type": ["null", "double"], "default": null},
		{"name": "image", "type": "string"},
		{"name": "rating", "type": ["null", {
			"type": "record",
			"name": "rating",
			"fields": [
				{"name": "rate", "type": "double"},
				{"name": "count", "type": ["null", "long"], "default": null}
			]
		}], "default": null},
		{"name": "description", "type": "string"}
	]
}`

type (
	ProductV1 struct {
		ID          string    `avro:"id"`
		Title       string    `avro:"title"`
		Category    string    `avro:"category"`
		Price       *float64  `avro:"price"`
		Image       string    `avro:"image"`
		Rating      *RatingV1 `avro:"rating"`
		Description string    `avro:"description"`
	}

	RatingV1 struct {
		Rate  float64 `avro:"rate"`
		Count *int64  `avro:"count"`
	}
)

var productV1 = sync.OnceValue(func() avro.Schema {
	return avro.MustParse(ProductSchemaTextV1)
})

// ProductV1Avro returns the parsed product schema. It panics if the
// schema text is invalid.
func ProductV1Avro() avro.Schema {
	return productV1()
}
