package models

import "time"

// Category is a known storefront category. The count column is display-only
// and is refreshed opportunistically; it is not guaranteed to match the
// actual number of products upstream.
type Category struct {
	ID          string    `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description,omitempty"`
	Icon        string    `db:"icon" json:"icon,omitempty"`
	Count       int       `db:"count" json:"count"`
	SortOrder   int       `db:"sort_order" json:"-"`
	CreatedAt   time.Time `db:"created_at" json:"-"`
	UpdatedAt   time.Time `db:"updated_at" json:"-"`
}
