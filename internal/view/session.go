package view

import (
	"sync"
	"time"

	"github.com/velora/storefront_api/internal/models"
)

// Session holds the browsing view state for one storefront visitor: the last
// fetched product snapshot, the selected category and the transient loading
// affordance shown while a selection settles.
//
// The product slice is replaced wholesale on every applied fetch and is
// treated as immutable afterwards, so derived views are computed over stable
// snapshots.
type Session struct {
	ID string

	mu               sync.Mutex
	products         []models.Product
	selectedCategory string

	// Refresh trigger: only search and filter changes re-issue a fetch.
	fetched    bool
	lastSearch string
	lastFilter string

	// Monotonic fetch sequencing; responses carrying a stale sequence are
	// discarded so a slow earlier request cannot overwrite a newer one.
	fetchSeq uint64

	loading   bool
	selectGen uint64
	loadTimer *time.Timer

	lastSeen time.Time
	closed   bool
}

// NewSession creates a session with the selection defaulted from the page's
// category query parameter. An empty default selects CategoryAll.
func NewSession(id, defaultCategory string) *Session {
	if defaultCategory == "" {
		defaultCategory = CategoryAll
	}
	return &Session{
		ID:               id,
		selectedCategory: defaultCategory,
		lastSeen:         time.Now(),
	}
}

// Snapshot returns the current product snapshot and selection.
func (s *Session) Snapshot() ([]models.Product, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.products, s.selectedCategory
}

// Loading reports whether the selection loading affordance is active.
func (s *Session) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// NeedsRefresh reports whether a fetch should be issued for the given query.
// Only search and filter participate; category and sort changes never
// re-fetch.
func (s *Session) NeedsRefresh(search, filter string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.fetched || search != s.lastSearch || filter != s.lastFilter
}

// BeginFetch records the query being fetched and returns the sequence number
// the eventual response must present to be applied. The trigger values are
// recorded up front so a failed fetch is not retried until they change again.
func (s *Session) BeginFetch(search, filter string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fetched = true
	s.lastSearch = search
	s.lastFilter = filter
	s.fetchSeq++
	return s.fetchSeq
}

// ApplyProducts replaces the product snapshot if seq is still the latest
// issued fetch. It returns false when the response is stale and was dropped.
func (s *Session) ApplyProducts(seq uint64, products []models.Product) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || seq != s.fetchSeq {
		return false
	}
	if products == nil {
		products = []models.Product{}
	}
	s.products = products
	return true
}

// SelectCategory switches the selection and raises the loading affordance for
// the fixed delay. A rapid second selection restarts the timer with the new
// target; the last write wins.
func (s *Session) SelectCategory(id string, delay time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.selectedCategory = id
	s.loading = true
	s.selectGen++
	gen := s.selectGen
	if s.loadTimer != nil {
		s.loadTimer.Stop()
	}
	s.loadTimer = time.AfterFunc(delay, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		// A superseded or torn-down selection must not clear the flag.
		if s.closed || gen != s.selectGen {
			return
		}
		s.loading = false
	})
}

// ResetSelection returns the selection to CategoryAll. Used by the "no
// results" affordance.
func (s *Session) ResetSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.selectedCategory = CategoryAll
}

// Touch marks the session as recently used.
func (s *Session) Touch() {
	s.mu.Lock()
	s.lastSeen = time.Now()
	s.mu.Unlock()
}

// ExpiredSince reports whether the session has been idle since before cutoff.
func (s *Session) ExpiredSince(cutoff time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen.Before(cutoff)
}

// Close tears the session down and stops the pending loading timer so no
// callback acts on a discarded view.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	if s.loadTimer != nil {
		s.loadTimer.Stop()
		s.loadTimer = nil
	}
	s.loading = false
}
