package client

import (
	"context"
	"sync"

	"github.com/shafvantalat/ecom/internal/models"
)

// State is a snapshot of the catalog store.
type State struct {
	Products   []models.Product
	Categories []string
	Filters    Filters
	Pagination Pagination
	Loading    bool
	Err        error
}

// Store holds catalog browsing state for a UI: the current filter set, the
// fetched page of products, and the in-use categories. Mutations and fetch
// completions are serialized under one mutex so views always observe a
// consistent snapshot.
type Store struct {
	client *Client

	mu       sync.Mutex
	state    State
	fetchSeq uint64
}

func NewStore(c *Client) *Store {
	return &Store{
		client: c,
		state: State{
			Products:   []models.Product{},
			Categories: []string{},
			Filters:    Filters{Sort: "newest", Page: 1, Limit: 12},
			Pagination: Pagination{Current: 1, Pages: 1, Limit: 12},
		},
	}
}

// State returns a copy of the current state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.state
	snapshot.Products = append([]models.Product(nil), s.state.Products...)
	snapshot.Categories = append([]string(nil), s.state.Categories...)
	return snapshot
}

// SetFilters replaces the filter set, resets to the first page, and reloads
// the listing.
func (s *Store) SetFilters(ctx context.Context, f Filters) error {
	s.mu.Lock()
	f.Page = 1
	if f.Limit == 0 {
		f.Limit = s.state.Filters.Limit
	}
	s.state.Filters = f
	s.mu.Unlock()

	return s.LoadProducts(ctx)
}

// SetPage moves to the given page and reloads the listing.
func (s *Store) SetPage(ctx context.Context, page int64) error {
	s.mu.Lock()
	if page < 1 {
		page = 1
	}
	s.state.Filters.Page = page
	s.mu.Unlock()

	return s.LoadProducts(ctx)
}

// ClearFilters resets every filter to its default and reloads the listing.
func (s *Store) ClearFilters(ctx context.Context) error {
	s.mu.Lock()
	limit := s.state.Filters.Limit
	s.state.Filters = Filters{Sort: "newest", Page: 1, Limit: limit}
	s.mu.Unlock()

	return s.LoadProducts(ctx)
}

// LoadProducts fetches the listing for the current filters. Responses that
// complete after a newer fetch has started are discarded, so rapid filter
// changes cannot leave stale results on screen.
func (s *Store) LoadProducts(ctx context.Context) error {
	s.mu.Lock()
	s.fetchSeq++
	seq := s.fetchSeq
	filters := s.state.Filters
	s.state.Loading = true
	s.state.Err = nil
	s.mu.Unlock()

	products, pagination, err := s.client.Products(ctx, filters)

	s.mu.Lock()
	defer s.mu.Unlock()

	if seq != s.fetchSeq {
		// A newer fetch owns the state now.
		return nil
	}

	s.state.Loading = false
	if err != nil {
		s.state.Err = err
		return err
	}

	s.state.Products = products
	s.state.Pagination = pagination
	return nil
}

// LoadCategories fetches the categories currently in use.
func (s *Store) LoadCategories(ctx context.Context) error {
	categories, err := s.client.Categories(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.state.Err = err
		return err
	}

	s.state.Categories = categories
	return nil
}
