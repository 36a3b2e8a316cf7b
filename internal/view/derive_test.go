package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velora/storefront_api/internal/models"
)

func intPtr(v int) *int { return &v }

func sampleProducts() []models.Product {
	return []models.Product{
		{ID: "1", Category: "dresses", Price: 1000, StockQuantity: intPtr(5)},
		{ID: "2", Category: "tops", Price: 500, OriginalPrice: intPtr(1000), StockQuantity: intPtr(0)},
		{ID: "3", Category: "dresses", Price: 2000, StockQuantity: intPtr(2)},
		{ID: "4", Category: "unknown-cat", Price: 300},
		{ID: "5", Price: 700, StockQuantity: intPtr(1)}, // no category
	}
}

func sampleCategories() []models.Category {
	return []models.Category{
		{ID: "dresses", Name: "Dresses"},
		{ID: "tops", Name: "Tops"},
		{ID: "bottoms", Name: "Bottoms"},
	}
}

func TestFilterByCategory_All(t *testing.T) {
	products := sampleProducts()

	filtered := FilterByCategory(products, CategoryAll)
	assert.Equal(t, products, filtered, "selecting all must yield the identical list")

	// Empty selection behaves like the sentinel.
	assert.Equal(t, products, FilterByCategory(products, ""))
}

func TestFilterByCategory_Subsequence(t *testing.T) {
	products := sampleProducts()

	filtered := FilterByCategory(products, "dresses")
	require.Len(t, filtered, 2)
	assert.Equal(t, "1", filtered[0].ID)
	assert.Equal(t, "3", filtered[1].ID, "original order must be preserved")
}

func TestFilterByCategory_NoMatches(t *testing.T) {
	filtered := FilterByCategory(sampleProducts(), "bottoms")
	assert.Empty(t, filtered)
}

func TestGroupByCategory_Partition(t *testing.T) {
	products := sampleProducts()
	categories := sampleCategories()

	grouped := GroupByCategory(products, categories)

	require.Len(t, grouped, 3, "every known category gets a bucket")
	assert.Len(t, grouped["dresses"], 2)
	assert.Len(t, grouped["tops"], 1)
	assert.Empty(t, grouped["bottoms"])

	// Products with unknown or empty categories appear in no bucket.
	seen := map[string]int{}
	for _, bucket := range grouped {
		for _, p := range bucket {
			seen[p.ID]++
		}
	}
	assert.NotContains(t, seen, "4")
	assert.NotContains(t, seen, "5")
	for id, n := range seen {
		assert.Equal(t, 1, n, "product %s must appear in exactly one bucket", id)
	}
}

func TestGroupByCategory_ComputedRegardlessOfSelection(t *testing.T) {
	// Grouping takes no selection input at all; buckets exist even for
	// categories with zero products.
	grouped := GroupByCategory(nil, sampleCategories())
	require.Len(t, grouped, 3)
	for _, bucket := range grouped {
		assert.Empty(t, bucket)
	}
}

func TestDiscountPercent(t *testing.T) {
	tests := []struct {
		name     string
		price    int
		original *int
		want     int
	}{
		{"no original price", 1000, nil, 0},
		{"zero original price", 1000, intPtr(0), 0},
		{"half off", 500, intPtr(1000), 50},
		{"rounds down", 200, intPtr(300), 33},
		{"rounds half away from zero", 875, intPtr(1000), 13},
		{"negative clamps to zero", 1000, intPtr(500), 0},
		{"full price", 1000, intPtr(1000), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &models.Product{ID: "x", Price: tt.price, OriginalPrice: tt.original}
			got := DiscountPercent(p)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, DiscountPercent(p), "must be pure")
		})
	}
}

func TestOnlyFeatured(t *testing.T) {
	flag := true
	products := []models.Product{
		{ID: "1", Featured: true},
		{ID: "2"},
		{ID: "3", IsFeatured: &flag},
	}

	featured := OnlyFeatured(products)
	require.Len(t, featured, 2)
	assert.Equal(t, "1", featured[0].ID)
	assert.Equal(t, "3", featured[1].ID, "both flag spellings count, order preserved")
}

func TestCanAddToCart(t *testing.T) {
	assert.False(t, CanAddToCart(&models.Product{ID: "a"}))
	assert.False(t, CanAddToCart(&models.Product{ID: "b", StockQuantity: intPtr(0)}))
	assert.True(t, CanAddToCart(&models.Product{ID: "c", StockQuantity: intPtr(1)}))
	assert.True(t, CanAddToCart(&models.Product{ID: "d", StockQuantity: intPtr(99)}))
}

func TestPreview_CapsAtLimit(t *testing.T) {
	var products []models.Product
	for i := 0; i < PreviewLimit+4; i++ {
		products = append(products, models.Product{ID: string(rune('a' + i))})
	}

	preview := Preview(products)
	require.Len(t, preview, PreviewLimit)
	assert.Equal(t, products[:PreviewLimit], preview, "excerpt keeps the original order")

	short := products[:3]
	assert.Equal(t, short, Preview(short), "short lists pass through untouched")
}
