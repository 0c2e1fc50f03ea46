package catalog

import (
	"context"
	"strings"
	"sync"
)

// InMemory serves catalog snapshots from a fixed data set. Lookups return
// (zero, false) for unknown ids and slugs; callers render a not-found state
// rather than treating that as an error.
type InMemory struct {
	mu         sync.RWMutex
	categories []Category
	products   []Product
}

func NewInMemory(categories []Category, products []Product) *InMemory {
	return &InMemory{categories: categories, products: products}
}

func (m *InMemory) ListCategories(ctx context.Context) ([]Category, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Category, len(m.categories))
	copy(out, m.categories)
	return out, nil
}

func (m *InMemory) GetCategory(ctx context.Context, slug string) (Category, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, c := range m.categories {
		if c.Slug == slug {
			return c, true, nil
		}
	}
	return Category{}, false, nil
}

func (m *InMemory) ListProducts(ctx context.Context) ([]Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Product, len(m.products))
	copy(out, m.products)
	return out, nil
}

func (m *InMemory) ListProductsByCategory(ctx context.Context, categoryID string) ([]Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []Product
	for _, p := range m.products {
		if p.CategoryID == categoryID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *InMemory) GetProduct(ctx context.Context, id string) (Product, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, p := range m.products {
		if p.ID == id {
			return p, true, nil
		}
	}
	return Product{}, false, nil
}

func (m *InMemory) GetProductBySlug(ctx context.Context, slug string) (Product, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, p := range m.products {
		if p.Slug == slug {
			return p, true, nil
		}
	}
	return Product{}, false, nil
}

func (m *InMemory) ListFeaturedProducts(ctx context.Context) ([]Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []Product
	for _, p := range m.products {
		if p.IsFeatured {
			out = append(out, p)
		}
	}
	return out, nil
}

// SearchProducts matches the query case-insensitively against product name,
// description and category name.
func (m *InMemory) SearchProducts(ctx context.Context, query string) ([]Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	q := strings.ToLower(query)
	var out []Product
	for _, p := range m.products {
		if strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.Description), q) ||
			strings.Contains(strings.ToLower(p.Category), q) {
			out = append(out, p)
		}
	}
	return out, nil
}
