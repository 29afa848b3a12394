package catalog

import (
	"encoding/json"
	"fmt"
	"os"

	pkgerrors "github.com/peasmarket/storefront/pkg/errors"
)

// Repository serves the backend's fixed product list. The list is loaded once
// at startup and never changes; there is no persistence behind it.
type Repository struct {
	products []Product
	byID     map[int64]int
}

// NewRepository loads the seed file and indexes it by product id.
func NewRepository(seedPath string) (*Repository, error) {
	raw, err := os.ReadFile(seedPath)
	if err != nil {
		return nil, fmt.Errorf("reading catalog seed: %w", err)
	}
	return NewRepositoryFromJSON(raw)
}

// NewRepositoryFromJSON builds a repository from an in-memory seed document.
func NewRepositoryFromJSON(raw []byte) (*Repository, error) {
	var products []Product
	if err := json.Unmarshal(raw, &products); err != nil {
		return nil, fmt.Errorf("parsing catalog seed: %w", err)
	}

	byID := make(map[int64]int, len(products))
	for i, p := range products {
		if p.Price.IsNegative() {
			return nil, fmt.Errorf("product %d has negative price %s", p.ID, p.Price)
		}
		if _, dup := byID[p.ID]; dup {
			return nil, fmt.Errorf("duplicate product id %d in catalog seed", p.ID)
		}
		byID[p.ID] = i
	}

	return &Repository{products: products, byID: byID}, nil
}

// List returns the full catalog in seed order.
func (r *Repository) List() []Product {
	out := make([]Product, len(r.products))
	copy(out, r.products)
	return out
}

// FindByID returns the product with the given id.
func (r *Repository) FindByID(id int64) (Product, error) {
	idx, ok := r.byID[id]
	if !ok {
		return Product{}, pkgerrors.New(pkgerrors.CodeNotFound, "Product not found")
	}
	return r.products[idx], nil
}

// Len reports the catalog size.
func (r *Repository) Len() int {
	return len(r.products)
}
