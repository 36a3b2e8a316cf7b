package cartsink

import "github.com/velora/storefront_api/internal/models"

// AddItemRequest is the payload sent to the cart service. The storefront
// always adds a single unit with no size or colour selection; the nullable
// fields are serialized explicitly so the cart service sees them unset.
type AddItemRequest struct {
	Product       models.Product `json:"product"`
	Quantity      int            `json:"quantity"`
	SelectedSize  *string        `json:"selectedSize"`
	SelectedColor *string        `json:"selectedColor"`
}
