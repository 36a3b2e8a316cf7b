package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/velora/storefront_api/internal/cache"
	"github.com/velora/storefront_api/internal/sse"
	"github.com/velora/storefront_api/internal/utils"
	"github.com/velora/storefront_api/internal/view"
	"github.com/velora/storefront_api/pkg/productsource"
)

// Marketing section names served by the storefront.
const (
	SectionNewArrivals  = "new-arrivals"
	SectionCategoryGrid = "category-grid"
)

// SectionPayload is a rendered marketing section as cached and served.
type SectionPayload struct {
	Name        string            `json:"name"`
	Products    []ProductView     `json:"products,omitempty"`
	Categories  []CategorySection `json:"categories,omitempty"`
	RefreshedAt time.Time         `json:"refreshedAt"`
}

// SectionCache is the cache the section service reads and writes.
type SectionCache interface {
	Get(ctx context.Context, name string, out any) error
	Set(ctx context.Context, name string, payload any) error
}

// SectionService assembles the storefront marketing sections (new arrivals,
// shop-by-category grid) from the product source and serves them cache-first.
type SectionService struct {
	source     ProductLister
	categories CategoryStore
	cache      SectionCache
	notifier   sse.SectionNotifier
	scope      string
}

// NewSectionService constructs a SectionService.
func NewSectionService(source ProductLister, categories CategoryStore, sectionCache SectionCache, notifier sse.SectionNotifier, scope string) *SectionService {
	if notifier == nil {
		notifier = &sse.NopNotifier{}
	}
	return &SectionService{
		source:     source,
		categories: categories,
		cache:      sectionCache,
		notifier:   notifier,
		scope:      scope,
	}
}

// GetSection returns a section, serving the cached copy when fresh and
// rebuilding it otherwise.
func (s *SectionService) GetSection(ctx context.Context, name string) (*SectionPayload, error) {
	switch name {
	case SectionNewArrivals, SectionCategoryGrid:
	default:
		return nil, utils.ErrUnknownSection
	}

	var payload SectionPayload
	err := s.cache.Get(ctx, name, &payload)
	if err == nil {
		return &payload, nil
	}
	if !errors.Is(err, cache.ErrMiss) {
		log.Warn().Err(err).Str("section", name).Msg("section cache read failed, rebuilding")
	}
	return s.Refresh(ctx, name)
}

// Refresh rebuilds a section from the product source, stores it in the cache
// and notifies connected SSE clients.
func (s *SectionService) Refresh(ctx context.Context, name string) (*SectionPayload, error) {
	var payload *SectionPayload
	var err error
	switch name {
	case SectionNewArrivals:
		payload, err = s.buildNewArrivals(ctx)
	case SectionCategoryGrid:
		payload, err = s.buildCategoryGrid(ctx)
	default:
		return nil, utils.ErrUnknownSection
	}
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, name, payload); err != nil {
		// Serve the freshly built section even when caching fails.
		log.Warn().Err(err).Str("section", name).Msg("section cache write failed")
	}
	s.notifier.NotifySectionRefreshed(name, sectionItemCount(payload))
	return payload, nil
}

// RefreshAll rebuilds every section. Used by the refresh worker.
func (s *SectionService) RefreshAll(ctx context.Context) error {
	var lastErr error
	for _, name := range []string{SectionNewArrivals, SectionCategoryGrid} {
		if _, err := s.Refresh(ctx, name); err != nil {
			log.Error().Err(err).Str("section", name).Msg("section refresh failed")
			lastErr = err
		}
	}
	return lastErr
}

func (s *SectionService) buildNewArrivals(ctx context.Context) (*SectionPayload, error) {
	products, err := s.source.ListProducts(ctx, productsource.Query{
		Category: s.scope,
		Featured: true,
	})
	if err != nil {
		return nil, err
	}
	return &SectionPayload{
		Name:        SectionNewArrivals,
		Products:    productViews(view.Preview(products)),
		RefreshedAt: time.Now(),
	}, nil
}

func (s *SectionService) buildCategoryGrid(ctx context.Context) (*SectionPayload, error) {
	categories, err := s.categories.GetAll()
	if err != nil {
		return nil, err
	}
	products, err := s.source.ListProducts(ctx, productsource.Query{Category: s.scope})
	if err != nil {
		return nil, err
	}

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

		// The count column is display-only; refresh it best effort.
		if c.Count != len(bucket) {
			if err := s.categories.UpdateCount(c.ID, len(bucket)); err != nil {
				log.Warn().Err(err).Str("category_id", c.ID).Msg("failed to refresh category count")
			}
		}
	}

	return &SectionPayload{
		Name:        SectionCategoryGrid,
		Categories:  sections,
		RefreshedAt: time.Now(),
	}, nil
}

func sectionItemCount(p *SectionPayload) int {
	if len(p.Categories) > 0 {
		return len(p.Categories)
	}
	return len(p.Products)
}
