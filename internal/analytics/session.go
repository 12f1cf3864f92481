package analytics

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"retail-bi/internal/dataset"
	"retail-bi/internal/filter"

	"github.com/rs/zerolog/log"
)

// Page names one dashboard screen.
type Page string

const (
	PageDashboard Page = "dashboard"
	PageOrders    Page = "orders"
	PageCustomers Page = "customers"
	PageInventory Page = "inventory"
	PageStores    Page = "stores"
)

// Pages lists every page in navigation order.
var Pages = []Page{PageDashboard, PageOrders, PageCustomers, PageInventory, PageStores}

var ErrUnknownPage = errors.New("unknown page")

// ParsePage resolves a page name, case-insensitively.
func ParsePage(s string) (Page, error) {
	p := Page(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Pages {
		if p == known {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPage, s)
}

// Render computes the view of page p from ds under st. year selects the
// dashboard's twelve-month series; 0 means the latest year in the data.
func Render(ds *dataset.Dataset, p Page, st *filter.State, year int, now time.Time) (any, error) {
	in := Input{Data: ds, Filter: st}
	switch p {
	case PageDashboard:
		if year == 0 {
			year = ds.LatestYear()
		}
		return Dashboard(in, year), nil
	case PageOrders:
		return Orders(in), nil
	case PageCustomers:
		return Customers(in), nil
	case PageInventory:
		return Inventory(in), nil
	case PageStores:
		return Stores(in, now), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPage, p)
	}
}

// Session is the navigation state of one user: the active page and its
// filter. Activating a page discards the previous page's filter.
//
// Writes are serialised and the last one wins; the mutex only exists because
// transports may deliver calls on different goroutines.
type Session struct {
	mu     sync.Mutex
	data   *dataset.Dataset
	year   int
	active Page
	state  *filter.State
}

// NewSession opens a session on the dashboard page.
func NewSession(ds *dataset.Dataset, year int) *Session {
	return &Session{
		data:   ds,
		year:   year,
		active: PageDashboard,
		state:  filter.New(),
	}
}

// Activate navigates to p with a fresh default filter.
func (s *Session) Activate(p Page) error {
	if _, err := ParsePage(string(p)); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = p
	s.state = filter.New()
	log.Debug().Str("page", string(p)).Msg("Page activated")
	return nil
}

// Active returns the current page.
func (s *Session) Active() Page {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// Filter returns a copy of the active page's filter. Changing it does not
// affect the session.
func (s *Session) Filter() filter.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.state.Clone()
}

// Update applies fn to the active filter. If fn fails the filter is left unchanged.
func (s *Session) Update(fn func(*filter.State) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.state.Clone()
	if err := fn(next); err != nil {
		return err
	}
	s.state = next
	return nil
}

// Reset restores the active page's filter to its defaults.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Reset()
}

// Render recomputes the active page under its current filter.
func (s *Session) Render(now time.Time) (Page, any, error) {
	s.mu.Lock()
	page, st := s.active, s.state.Clone()
	s.mu.Unlock()

	start := time.Now()
	v, err := Render(s.data, page, st, s.year, now)
	if err != nil {
		return page, nil, err
	}
	log.Debug().Str("page", string(page)).Dur("elapsed", time.Since(start)).Msg("View computed")
	return page, v, nil
}

// Data returns the dataset the session reads from.
func (s *Session) Data() *dataset.Dataset {
	return s.data
}

// Year returns the configured dashboard year; 0 means the latest year in the data.
func (s *Session) Year() int {
	return s.year
}
