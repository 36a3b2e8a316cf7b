package models

import "time"

// Product represents a product record as returned by the upstream catalog.
// Products are owned by the upstream service and never persisted here; the
// JSON tags mirror the upstream wire shape.
type Product struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Category      string     `json:"category,omitempty"`
	Price         int        `json:"price"`
	OriginalPrice *int       `json:"original_price,omitempty"`
	StockQuantity *int       `json:"stock_quantity,omitempty"`
	Featured      bool       `json:"featured,omitempty"`
	IsFeatured    *bool      `json:"is_featured,omitempty"`
	ImageURL      string     `json:"image_url,omitempty"`
	CreatedAt     *time.Time `json:"created_at,omitempty"`
}

// IsFeaturedProduct reports whether either of the upstream featured flags is set.
// The catalog sends `featured` or `is_featured` depending on the record's age.
func (p *Product) IsFeaturedProduct() bool {
	if p.Featured {
		return true
	}
	return p.IsFeatured != nil && *p.IsFeatured
}
