// Package filter holds the user's active view selection.
package filter

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"retail-bi/internal/dataset"

	"github.com/rs/zerolog/log"
)

// Granularity is the calendar resolution of time-series views.
type Granularity string

const (
	Day     Granularity = "day"
	Month   Granularity = "month"
	Quarter Granularity = "quarter"
	Year    Granularity = "year"
)

// Granularities lists every supported resolution, finest first.
var Granularities = []Granularity{Day, Month, Quarter, Year}

// ErrUnknownGranularity is returned when parsing an unsupported resolution.
var ErrUnknownGranularity = errors.New("unknown time granularity")

// ParseGranularity parses a resolution name. The empty string means Month.
func ParseGranularity(s string) (Granularity, error) {
	if s == "" {
		return Month, nil
	}
	g := Granularity(strings.ToLower(strings.TrimSpace(s)))
	if !slices.Contains(Granularities, g) {
		return "", fmt.Errorf("%w: %q", ErrUnknownGranularity, s)
	}
	return g, nil
}

// DateRange bounds a selection by calendar day, inclusive on both ends.
// A nil bound is unset.
type DateRange struct {
	From *time.Time `json:"from,omitempty"`
	To   *time.Time `json:"to,omitempty"`
}

// IsSet reports whether either bound is present.
func (r DateRange) IsSet() bool {
	return r.From != nil || r.To != nil
}

// State is the filter selection of one page. Empty code lists mean "no restriction".
type State struct {
	DateRange   DateRange   `json:"date_range"`
	Locations   []string    `json:"locations"`
	Customers   []string    `json:"customers"`
	Products    []string    `json:"products"`
	Stores      []string    `json:"stores"`
	Granularity Granularity `json:"granularity"`
}

// New returns a State with every field at its default.
func New() *State {
	s := &State{}
	s.Reset()
	return s
}

// Clone returns a copy of s that shares no slices or bounds with it.
func (s *State) Clone() *State {
	c := *s
	// Bounds are stored as whole UTC days, so truncating only copies them.
	c.DateRange = DateRange{From: truncateDay(s.DateRange.From), To: truncateDay(s.DateRange.To)}
	c.Locations = clone(s.Locations)
	c.Customers = clone(s.Customers)
	c.Products = clone(s.Products)
	c.Stores = clone(s.Stores)
	return &c
}

// SetDateRange replaces both bounds. Either may be nil.
func (s *State) SetDateRange(from, to *time.Time) {
	s.DateRange = DateRange{From: truncateDay(from), To: truncateDay(to)}
}

// SetLocations replaces the location selection.
func (s *State) SetLocations(codes []string) { s.Locations = clone(codes) }

// SetCustomers replaces the customer selection.
func (s *State) SetCustomers(codes []string) { s.Customers = clone(codes) }

// SetProducts replaces the product selection.
func (s *State) SetProducts(codes []string) { s.Products = clone(codes) }

// SetStores replaces the store selection.
func (s *State) SetStores(codes []string) { s.Stores = clone(codes) }

// SetGranularity replaces the time-series resolution.
func (s *State) SetGranularity(g Granularity) { s.Granularity = g }

// Reset restores every field to its default: no selections, no date range, monthly buckets.
func (s *State) Reset() {
	*s = State{
		Locations:   []string{},
		Customers:   []string{},
		Products:    []string{},
		Stores:      []string{},
		Granularity: Month,
	}
}

// IsDefault reports whether the state restricts nothing.
func (s *State) IsDefault() bool {
	return !s.DateRange.IsSet() &&
		len(s.Locations) == 0 &&
		len(s.Customers) == 0 &&
		len(s.Products) == 0 &&
		len(s.Stores) == 0
}

// InRange reports whether the day falls inside the date range. Only the bounds
// that are set are checked. A key that is not a valid date is never excluded,
// since it cannot be compared to a bound.
func (s *State) InRange(dateKey string) bool {
	if !s.DateRange.IsSet() {
		return true
	}
	d, err := time.Parse(dataset.DateLayout, dateKey)
	if err != nil {
		return true
	}
	if s.DateRange.From != nil && d.Before(*s.DateRange.From) {
		return false
	}
	if s.DateRange.To != nil && d.After(*s.DateRange.To) {
		return false
	}
	return true
}

func (s *State) AllowsLocation(code string) bool { return allows(s.Locations, code) }
func (s *State) AllowsCustomer(code string) bool { return allows(s.Customers, code) }
func (s *State) AllowsProduct(code string) bool  { return allows(s.Products, code) }
func (s *State) AllowsStore(code string) bool    { return allows(s.Stores, code) }

func allows(selected []string, code string) bool {
	return len(selected) == 0 || slices.Contains(selected, code)
}

func clone(codes []string) []string {
	if codes == nil {
		return []string{}
	}
	return slices.Clone(codes)
}

func truncateDay(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return &d
}

// ParseDateBound interprets a user-supplied date bound. Empty or malformed
// input yields nil, which leaves the bound unset rather than failing the view.
func ParseDateBound(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range []string{dataset.DateLayout, time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return truncateDay(&t)
		}
	}
	log.Debug().Str("value", s).Msg("Ignoring unparseable date bound")
	return nil
}
