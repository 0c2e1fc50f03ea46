package catalog

// Fixture returns the demo catalog the storefront ships with. Prices are in
// paise (12000 = ₹120.00).
func Fixture() ([]Category, []Product) {
	categories := []Category{
		{ID: "1", Name: "Fruits & Vegetables", Slug: "fruits-vegetables"},
		{ID: "2", Name: "Dairy & Eggs", Slug: "dairy-eggs"},
		{ID: "3", Name: "Bakery", Slug: "bakery"},
		{ID: "4", Name: "Beverages", Slug: "beverages"},
		{ID: "5", Name: "Snacks", Slug: "snacks"},
		{ID: "6", Name: "Household", Slug: "household"},
	}

	products := []Product{
		{
			ID:            "1",
			Name:          "Fresh Organic Apples",
			Slug:          "fresh-organic-apples",
			Description:   "Sweet and juicy organic apples, perfect for snacking or baking.",
			Price:         12000,
			OriginalPrice: 15000,
			Discount:      20,
			Category:      "Fruits & Vegetables",
			CategoryID:    "1",
			Stock:         50,
			Unit:          "kg",
			Vendor:        "Organic Farms",
			Rating:        4.5,
			Reviews:       28,
			IsFeatured:    true,
		},
		{
			ID:            "2",
			Name:          "Whole Milk",
			Slug:          "whole-milk",
			Description:   "Fresh whole milk from grass-fed cows.",
			Price:         6000,
			OriginalPrice: 6000,
			Category:      "Dairy & Eggs",
			CategoryID:    "2",
			Stock:         30,
			Unit:          "liter",
			Vendor:        "Happy Dairy",
			Rating:        4.7,
			Reviews:       42,
			IsFeatured:    true,
		},
		{
			ID:            "3",
			Name:          "Whole Wheat Bread",
			Slug:          "whole-wheat-bread",
			Description:   "Freshly baked whole wheat bread, perfect for sandwiches.",
			Price:         4000,
			OriginalPrice: 4500,
			Discount:      11,
			Category:      "Bakery",
			CategoryID:    "3",
			Stock:         20,
			Unit:          "loaf",
			Vendor:        "Sunshine Bakery",
			Rating:        4.3,
			Reviews:       18,
			IsFeatured:    true,
		},
		{
			ID:            "4",
			Name:          "Orange Juice",
			Slug:          "orange-juice",
			Description:   "Freshly squeezed orange juice with no added sugar.",
			Price:         8000,
			OriginalPrice: 10000,
			Discount:      20,
			Category:      "Beverages",
			CategoryID:    "4",
			Stock:         25,
			Unit:          "liter",
			Vendor:        "Fresh Squeeze",
			Rating:        4.6,
			Reviews:       32,
			IsFeatured:    true,
		},
		{
			ID:            "5",
			Name:          "Potato Chips",
			Slug:          "potato-chips",
			Description:   "Crunchy potato chips with a hint of sea salt.",
			Price:         3000,
			OriginalPrice: 3500,
			Discount:      14,
			Category:      "Snacks",
			CategoryID:    "5",
			Stock:         40,
			Unit:          "pack",
			Vendor:        "Crunchy Delights",
			Rating:        4.2,
			Reviews:       24,
		},
		{
			ID:            "6",
			Name:          "Laundry Detergent",
			Slug:          "laundry-detergent",
			Description:   "Powerful laundry detergent that removes tough stains.",
			Price:         18000,
			OriginalPrice: 20000,
			Discount:      10,
			Category:      "Household",
			CategoryID:    "6",
			Stock:         15,
			Unit:          "bottle",
			Vendor:        "Clean Home",
			Rating:        4.4,
			Reviews:       36,
		},
		{
			ID:            "7",
			Name:          "Bananas",
			Slug:          "bananas",
			Description:   "Ripe and sweet bananas, perfect for a quick snack.",
			Price:         5000,
			OriginalPrice: 6000,
			Discount:      17,
			Category:      "Fruits & Vegetables",
			CategoryID:    "1",
			Stock:         60,
			Unit:          "dozen",
			Vendor:        "Tropical Farms",
			Rating:        4.5,
			Reviews:       22,
			IsFeatured:    true,
		},
		{
			ID:            "8",
			Name:          "Greek Yogurt",
			Slug:          "greek-yogurt",
			Description:   "Creamy Greek yogurt, high in protein and probiotics.",
			Price:         9000,
			OriginalPrice: 9000,
			Category:      "Dairy & Eggs",
			CategoryID:    "2",
			Stock:         35,
			Unit:          "cup",
			Vendor:        "Happy Dairy",
			Rating:        4.8,
			Reviews:       48,
			IsFeatured:    true,
		},
	}

	return categories, products
}
