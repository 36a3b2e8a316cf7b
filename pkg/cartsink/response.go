package cartsink

// AddItemResponse is the cart service's acknowledgement of an add request.
type AddItemResponse struct {
	Success   bool   `json:"success"`
	CartID    string `json:"cartId,omitempty"`
	ItemCount int    `json:"itemCount,omitempty"`
}
