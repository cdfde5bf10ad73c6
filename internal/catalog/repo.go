// Package catalog holds the product catalog: the store interface, its JSON-file
// and PostgreSQL implementations, the fixed category set and a cached listing view.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/MikeMC777/khattak-mart/internal/jsonfile"
	"github.com/MikeMC777/khattak-mart/internal/validation"
)

var (
	ErrNotFound = errors.New("product not found")
)

type Repository interface {
	List(ctx context.Context) ([]Product, error)
	Get(ctx context.Context, id string) (Product, bool, error)
	ListFeatured(ctx context.Context) ([]Product, error)
	ListByCategory(ctx context.Context, categoryID string) ([]Product, error)
	Add(ctx context.Context, in Input, img Image) (Product, error)
	// Update returns the image the product carried before the write, read in
	// the same step, so callers can release exactly what was replaced.
	Update(ctx context.Context, id string, in Input, img *Image) (Product, Image, error)
	Delete(ctx context.Context, id string) (Product, error)
}

// Validate applies the product form rules and checks the category exists.
func (in Input) Validate(cats *Categories) error {
	err := validation.Struct(in)
	if err != nil && !validation.IsValidation(err) {
		return err
	}
	verr, _ := err.(*validation.Error)
	if verr == nil {
		verr = &validation.Error{}
	}
	if in.Price.IsPositive() && !validation.Cents(in.Price) {
		verr.Add("price", "Price can have at most 2 decimal places.")
	}
	if in.Category != "" && cats != nil {
		if _, ok := cats.Get(in.Category); !ok {
			verr.Add("category", fmt.Sprintf("Unknown category %q.", in.Category))
		}
	}
	return verr.OrNil()
}

func newProduct(in Input, img Image) Product {
	return Product{
		ID:          "prod-" + uuid.NewString(),
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Stock:       in.Stock,
		Category:    in.Category,
		ExpiryDate:  in.ExpiryDate,
		IsFeatured:  in.IsFeatured,
		Image: Image{
			ID:          "img-" + uuid.NewString(),
			Description: in.Name,
			ImageURL:    img.ImageURL,
			ImageHint:   img.ImageHint,
		},
	}
}

func merge(p Product, in Input, img *Image) Product {
	p.Name = in.Name
	p.Description = in.Description
	p.Price = in.Price
	p.Stock = in.Stock
	p.Category = in.Category
	p.ExpiryDate = in.ExpiryDate
	p.IsFeatured = in.IsFeatured
	if img != nil {
		p.Image.ImageURL = img.ImageURL
		if img.ImageHint != "" {
			p.Image.ImageHint = img.ImageHint
		}
	}
	return p
}

func filter(ps []Product, keep func(Product) bool) []Product {
	out := make([]Product, 0, len(ps))
	for _, p := range ps {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}

// JSONRepo keeps the catalog in a single JSON file. The mutex serializes the
// read-modify-write cycle so concurrent mutations never lose each other's writes.
type JSONRepo struct {
	mu     sync.Mutex
	file   *jsonfile.Collection[Product]
	cats   *Categories
	logger *zap.Logger
}

func NewJSONRepo(path string, cats *Categories, logger *zap.Logger) *JSONRepo {
	return &JSONRepo{file: jsonfile.New[Product](path), cats: cats, logger: logger}
}

// read falls back to an empty catalog when the file cannot be read, and
// reports false when it did.
func (r *JSONRepo) read() ([]Product, bool) {
	ps, err := r.file.Load()
	if err != nil {
		r.logger.Error("could not read products, starting with empty list", zap.Error(err))
		return ps, false
	}
	return ps, true
}

func (r *JSONRepo) List(ctx context.Context) ([]Product, error) {
	ps, _, err := r.listChecked(ctx)
	return ps, err
}

func (r *JSONRepo) listChecked(ctx context.Context) ([]Product, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ps, ok := r.read()
	return ps, ok, nil
}

func (r *JSONRepo) Get(ctx context.Context, id string) (Product, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ps, _ := r.read()
	for _, p := range ps {
		if p.ID == id {
			return p, true, nil
		}
	}
	return Product{}, false, nil
}

func (r *JSONRepo) ListFeatured(ctx context.Context) ([]Product, error) {
	ps, _ := r.List(ctx)
	return filter(ps, func(p Product) bool { return p.IsFeatured }), nil
}

func (r *JSONRepo) ListByCategory(ctx context.Context, categoryID string) ([]Product, error) {
	ps, _ := r.List(ctx)
	return filter(ps, func(p Product) bool { return p.Category == categoryID }), nil
}

func (r *JSONRepo) Add(ctx context.Context, in Input, img Image) (Product, error) {
	if err := in.Validate(r.cats); err != nil {
		return Product{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	ps, err := r.file.Load()
	if err != nil {
		return Product{}, fmt.Errorf("add product: %w", err)
	}
	p := newProduct(in, img)
	if err := r.file.Save(append([]Product{p}, ps...)); err != nil {
		return Product{}, fmt.Errorf("add product: %w", err)
	}
	return p, nil
}

func (r *JSONRepo) Update(ctx context.Context, id string, in Input, img *Image) (Product, Image, error) {
	if err := in.Validate(r.cats); err != nil {
		return Product{}, Image{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	ps, err := r.file.Load()
	if err != nil {
		return Product{}, Image{}, fmt.Errorf("update product: %w", err)
	}
	for i := range ps {
		if ps[i].ID != id {
			continue
		}
		prev := ps[i].Image
		ps[i] = merge(ps[i], in, img)
		if err := r.file.Save(ps); err != nil {
			return Product{}, Image{}, fmt.Errorf("update product: %w", err)
		}
		return ps[i], prev, nil
	}
	return Product{}, Image{}, ErrNotFound
}

func (r *JSONRepo) Delete(ctx context.Context, id string) (Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ps, err := r.file.Load()
	if err != nil {
		return Product{}, fmt.Errorf("delete product: %w", err)
	}
	for i, p := range ps {
		if p.ID != id {
			continue
		}
		rest := append(ps[:i:i], ps[i+1:]...)
		if err := r.file.Save(rest); err != nil {
			return Product{}, fmt.Errorf("delete product: %w", err)
		}
		return p, nil
	}
	return Product{}, ErrNotFound
}
