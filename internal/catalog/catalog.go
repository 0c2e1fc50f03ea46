package catalog

import "context"

// Category groups products for browsing.
type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Slug  string `json:"slug"`
	Image string `json:"image,omitempty"`
}

// Product is a catalog snapshot. Prices are in paise.
type Product struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Slug          string  `json:"slug"`
	Description   string  `json:"description"`
	Price         int64   `json:"price"`
	OriginalPrice int64   `json:"original_price"`
	Discount      int     `json:"discount"` // percent off OriginalPrice
	Category      string  `json:"category"`
	CategoryID    string  `json:"category_id"`
	Image         string  `json:"image,omitempty"`
	Stock         int     `json:"stock"`
	Unit          string  `json:"unit"`
	Vendor        string  `json:"vendor,omitempty"`
	Rating        float64 `json:"rating"`
	Reviews       int     `json:"reviews"`
	IsFeatured    bool    `json:"is_featured"`
}

// Provider exposes read-only catalog snapshots. The cart and order core
// references products by id and never mutates them.
type Provider interface {
	ListCategories(ctx context.Context) ([]Category, error)
	GetCategory(ctx context.Context, slug string) (Category, bool, error)
	ListProducts(ctx context.Context) ([]Product, error)
	ListProductsByCategory(ctx context.Context, categoryID string) ([]Product, error)
	GetProduct(ctx context.Context, id string) (Product, bool, error)
	GetProductBySlug(ctx context.Context, slug string) (Product, bool, error)
	ListFeaturedProducts(ctx context.Context) ([]Product, error)
	SearchProducts(ctx context.Context, query string) ([]Product, error)
}
