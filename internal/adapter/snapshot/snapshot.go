// Package snapshot stores the product catalog in an Avro object container
// file so it can be browsed without the remote endpoint.
package snapshot

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/hamba/avro/v2/ocf"
	"github.com/niksmo/catalog/internal/core/domain"
	"github.com/niksmo/catalog/internal/core/port"
	"github.com/niksmo/catalog/pkg/schema"
)

var ErrEmptyPath = errors.New("snapshot path is empty")

var _ port.ProductsFetcher = (*File)(nil)
var _ port.ProductsSnapshotWriter = (*File)(nil)

type File struct {
	path string
}

func NewFile(path string) (File, error) {
	const op = "snapshot.NewFile"
	if path == "" {
		return File{}, fmt.Errorf("%s: %w", op, ErrEmptyPath)
	}
	return File{path}, nil
}

func (f File) Path() string {
	return f.path
}

func (f File) FetchProducts(ctx context.Context) ([]domain.Product, error) {
	const op = "File.FetchProducts"
	log := slog.With("op", op, "path", f.path)

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	file, err := os.Open(f.path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.Error("failed to close file", "err", err)
		}
	}()

	ps, err := Decode(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Debug("snapshot read", "nProducts", len(ps))
	return ps, nil
}

// WriteProducts replaces the snapshot file atomically.
func (f File) WriteProducts(ctx context.Context, ps []domain.Product) (writeErr error) {
	const op = "File.WriteProducts"
	log := slog.With("op", op, "path", f.path)

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.path), ".snapshot-*")
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	defer func() {
		if writeErr == nil {
			return
		}
		_ = tmp.Close()
		if err := os.Remove(tmp.Name()); err != nil {
			log.Error("failed to remove temp file", "err", err)
		}
	}()

	if err := Encode(tmp, ps); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	log.Info("snapshot written", "nProducts", len(ps))
	return nil
}

func Encode(w io.Writer, ps []domain.Product) error {
	const op = "snapshot.Encode"

	enc, err := ocf.NewEncoderWithSchema(schema.ProductV1Avro(), w)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	for _, p := range ps {
		if err := enc.Encode(toSchema(p)); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func Decode(r io.Reader) ([]domain.Product, error) {
	const op = "snapshot.Decode"

	dec, err := ocf.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	ps := make([]domain.Product, 0)
	for dec.HasNext() {
		var v schema.ProductV1
		if err := dec.Decode(&v); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		ps = append(ps, toDomain(v))
	}

	if err := dec.Error(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return ps, nil
}

func toSchema(p domain.Product) schema.ProductV1 {
	v := schema.ProductV1{
		ID:          p.ID,
		Title:       p.Title,
		Category:    p.Category,
		Price:       p.Price,
		Image:       p.Image,
		Description: p.Description,
	}
	if p.Rating != nil {
		v.Rating = &schema.RatingV1{Rate: p.Rating.Rate}
		if p.Rating.Count != nil {
			c := int64(*p.Rating.Count)
			v.Rating.Count = &c
		}
	}
	return v
}

func toDomain(v schema.ProductV1) domain.Product {
	p := domain.Product{
		ID:          v.ID,
		Title:       v.Title,
		Category:    v.Category,
		Price:       v.Price,
		Image:       v.Image,
		Description: v.Description,
	}
	if v.Rating != nil {
		p.Rating = &domain.Rating{Rate: v.Rating.Rate}
		if v.Rating.Count != nil {
			c := int(*v.Rating.Count)
			p.Rating.Count = &c
		}
	}
	return p
}
