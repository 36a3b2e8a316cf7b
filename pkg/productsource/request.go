package productsource

// Query describes a product-list request. The boolean flags map to the
// featured=true and inStock=true query parameters; they are only sent when
// set.
type Query struct {
	Category string
	Search   string
	Featured bool
	InStock  bool
}
