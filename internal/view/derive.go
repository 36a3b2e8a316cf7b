package view

import (
	"math"

	"github.com/velora/storefront_api/internal/models"
)

// CategoryAll is the sentinel selection meaning no category filter is applied.
const CategoryAll = "all"

// PreviewLimit caps the product excerpt rendered per category section. The
// grouping itself is unbounded; only the excerpt is capped.
const PreviewLimit = 8

// FilterByCategory returns the products whose category equals selected,
// preserving the original order. Selecting CategoryAll (or an empty
// selection) returns the snapshot itself.
func FilterByCategory(products []models.Product, selected string) []models.Product {
	if selected == "" || selected == CategoryAll {
		return products
	}
	filtered := make([]models.Product, 0, len(products))
	for _, p := range products {
		if p.Category == selected {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

// GroupByCategory maps every known category id to the subsequence of products
// carrying that category, regardless of the current selection. Products whose
// category matches no known id are left out of every bucket.
func GroupByCategory(products []models.Product, categories []models.Category) map[string][]models.Product {
	grouped := make(map[string][]models.Product, len(categories))
	for _, c := range categories {
		grouped[c.ID] = []models.Product{}
	}
	for _, p := range products {
		if bucket, ok := grouped[p.Category]; ok {
			grouped[p.Category] = append(bucket, p)
		}
	}
	return grouped
}

// DiscountPercent computes the displayed discount percentage, rounding half
// away from zero. A missing or zero original price means no discount, and an
// original price below the current price clamps to zero rather than rendering
// a negative discount.
func DiscountPercent(p *models.Product) int {
	if p.OriginalPrice == nil || *p.OriginalPrice == 0 {
		return 0
	}
	orig := float64(*p.OriginalPrice)
	pct := math.Round((orig - float64(p.Price)) / orig * 100)
	if pct < 0 {
		return 0
	}
	return int(pct)
}

// OnlyFeatured returns the products flagged as featured under either of the
// catalog's flag spellings, preserving the original order.
func OnlyFeatured(products []models.Product) []models.Product {
	featured := make([]models.Product, 0, len(products))
	for _, p := range products {
		if p.IsFeaturedProduct() {
			featured = append(featured, p)
		}
	}
	return featured
}

// CanAddToCart reports whether the product is purchasable. Absent or zero
// stock means unavailable.
func CanAddToCart(p *models.Product) bool {
	return p.StockQuantity != nil && *p.StockQuantity > 0
}

// Preview returns at most the first PreviewLimit products for rendering.
func Preview(products []models.Product) []models.Product {
	if len(products) <= PreviewLimit {
		return products
	}
	return products[:PreviewLimit]
}
