package service

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/velora/storefront_api/internal/models"
	"github.com/velora/storefront_api/internal/view"
	"github.com/velora/storefront_api/pkg/cartsink"
	"github.com/velora/storefront_api/pkg/productsource"
)

// Filter values accepted on the browse query.
const (
	FilterFeatured = "featured"
	FilterInStock  = "in-stock"
)

// ProductLister fetches product lists from the upstream catalog.
type ProductLister interface {
	ListProducts(ctx context.Context, q productsource.Query) ([]models.Product, error)
}

// CartAdder forwards add-to-cart requests to the cart service.
type CartAdder interface {
	AddItem(ctx context.Context, req cartsink.AddItemRequest) (*cartsink.AddItemResponse, error)
}

// CategoryStore reads the known-category catalog and maintains its
// display-only counts.
type CategoryStore interface {
	GetAll() ([]models.Category, error)
	UpdateCount(id string, count int) error
}

// BrowseQuery carries the storefront browse parameters. Only Search and
// Filter changes trigger a re-fetch; Category seeds the initial selection and
// Sort is accepted as a pass-through, neither re-fetches.
type BrowseQuery struct {
	Search   string
	Filter   string
	Sort     string
	Category string
}

// ProductView is a product decorated with the derived display values.
type ProductView struct {
	models.Product
	DiscountPercent int    `json:"discountPercent"`
	CanAddToCart    bool   `json:"canAddToCart"`
	Href            string `json:"href"`
}

// BrowseView is the rendered state of the browsing surface for one session.
type BrowseView struct {
	Products         []ProductView `json:"products"`
	SelectedCategory string        `json:"selectedCategory"`
	Total            int           `json:"total"`
	Loading          bool          `json:"loading"`
	NoResults        bool          `json:"noResults"`
}

// CategorySection is one category's slot in the shop-by-category view: the
// category metadata plus a capped product excerpt. Total is the uncapped
// bucket size.
type CategorySection struct {
	Category models.Category `json:"category"`
	Products []ProductView   `json:"products"`
	Total    int             `json:"total"`
	Href     string          `json:"href"`
}

// StorefrontService drives the category-scoped product view model: fetching
// and replacing product snapshots, category selection, derived display values
// and add-to-cart forwarding.
type StorefrontService struct {
	source       ProductLister
	cart         CartAdder
	categories   CategoryStore
	scope        string
	loadingDelay time.Duration
}

// NewStorefrontService constructs a StorefrontService. scope is the fixed
// category constant sent upstream for this view; delay is the fixed duration
// of the selection loading affordance.
func NewStorefrontService(source ProductLister, cart CartAdder, categories CategoryStore, scope string, delay time.Duration) *StorefrontService {
	return &StorefrontService{
		source:       source,
		cart:         cart,
		categories:   categories,
		scope:        scope,
		loadingDelay: delay,
	}
}

// Browse renders the browsing view for the session. A fetch is issued only
// when the search or filter differ from the last fetched query; category and
// sort changes never re-fetch. Fetch failures are logged and leave the prior
// snapshot in place, and responses from superseded fetches are discarded.
func (s *StorefrontService) Browse(ctx context.Context, sess *view.Session, q BrowseQuery) *BrowseView {
	if sess.NeedsRefresh(q.Search, q.Filter) {
		seq := sess.BeginFetch(q.Search, q.Filter)
		products, err := s.source.ListProducts(ctx, productsource.Query{
			Category: s.scope,
			Search:   q.Search,
			Featured: q.Filter == FilterFeatured,
			InStock:  q.Filter == FilterInStock,
		})
		if err != nil {
			// Fail soft: the visitor sees the stale or empty list, never an
			// error state.
			log.Error().Err(err).Str("session_id", sess.ID).Msg("product fetch failed")
		} else if !sess.ApplyProducts(seq, products) {
			log.Debug().Str("session_id", sess.ID).Uint64("seq", seq).Msg("stale product response discarded")
		}
	}

	products, selected := sess.Snapshot()
	if q.Filter == FilterFeatured {
		// Older catalog deployments ignore the featured query parameter.
		products = view.OnlyFeatured(products)
	}
	filtered := view.FilterByCategory(products, selected)

	return &BrowseView{
		Products:         productViews(filtered),
		SelectedCategory: selected,
		Total:            len(filtered),
		Loading:          sess.Loading(),
		NoResults:        selected != view.CategoryAll && len(products) > 0 && len(filtered) == 0,
	}
}

// SelectCategory switches the session's selection, raising the loading
// affordance for the fixed delay. A rapid second selection wins.
func (s *StorefrontService) SelectCategory(sess *view.Session, categoryID string) {
	sess.SelectCategory(categoryID, s.loadingDelay)
}

// ResetSelection returns the session to the unfiltered view. This backs the
// "no results" affordance.
func (s *StorefrontService) ResetSelection(sess *view.Session) {
	sess.ResetSelection()
}

// AddToCart looks the product up in the session's current snapshot and, when
// found and purchasable, forwards a quantity-1 add request to the cart
// service. Unknown or out-of-stock products are silently dropped: no error is
// surfaced and no cart mutation happens.
func (s *StorefrontService) AddToCart(ctx context.Context, sess *view.Session, productID string) {
	products, _ := sess.Snapshot()

	var found *models.Product
	for i := range products {
		if products[i].ID == productID {
			found = &products[i]
			break
		}
	}
	if found == nil || !view.CanAddToCart(found) {
		log.Debug().Str("session_id", sess.ID).Str("product_id", productID).Msg("cart add dropped: unknown or ineligible product")
		return
	}

	if _, err := s.cart.AddItem(ctx, cartsink.AddItemRequest{
		Product:  *found,
		Quantity: 1,
	}); err != nil {
		log.Error().Err(err).Str("session_id", sess.ID).Str("product_id", productID).Msg("cart sink request failed")
	}
}

// GroupedView renders the shop-by-category overview: every known category
// with its product excerpt, computed over the session's snapshot regardless
// of the current selection.
func (s *StorefrontService) GroupedView(sess *view.Session) ([]CategorySection, error) {
	categories, err := s.categories.GetAll()
	if err != nil {
		return nil, err
	}

	products, _ := sess.Snapshot()
	grouped := view.GroupByCategory(products, categories)

	sections := make([]CategorySection, 0, len(categories))
	for _, c := range categories {
		bucket := grouped[c.ID]
		sections = append(sections, CategorySection{
			Category: c,
			Products: productViews(view.Preview(bucket)),
			Total:    len(bucket),
			Href:     "/womens/" + c.ID,
		})
	}
	return sections, nil
}

func productViews(products []models.Product) []ProductView {
	views := make([]ProductView, 0, len(products))
	for i := range products {
		p := products[i]
		views = append(views, ProductView{
			Product:         p,
			DiscountPercent: view.DiscountPercent(&p),
			CanAddToCart:    view.CanAddToCart(&p),
			Href:            "/shop/" + p.ID,
		})
	}
	return views
}
