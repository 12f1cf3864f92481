package filter

import (
	"errors"
	"fmt"
	"slices"
)

// ClearableFields are the names Params.Clear accepts.
var ClearableFields = []string{"date_range", "locations", "customers", "products", "stores"}

var ErrUnknownField = errors.New("unknown filter field")

// ApplyPresent is Apply restricted to the fields p actually carries. Absent
// fields keep their current value. Fields named in p.Clear are reset to no
// restriction first, so a field both cleared and supplied takes the supplied
// value. Nothing is changed when p is rejected.
func (p Params) ApplyPresent(s *State) error {
	var g Granularity
	if p.Granularity != "" {
		var err error
		if g, err = ParseGranularity(p.Granularity); err != nil {
			return err
		}
	}
	for _, f := range p.Clear {
		if !slices.Contains(ClearableFields, f) {
			return fmt.Errorf("%w %q, use one of %v", ErrUnknownField, f, ClearableFields)
		}
	}

	for _, f := range p.Clear {
		switch f {
		case "date_range":
			s.SetDateRange(nil, nil)
		case "locations":
			s.SetLocations(nil)
		case "customers":
			s.SetCustomers(nil)
		case "products":
			s.SetProducts(nil)
		case "stores":
			s.SetStores(nil)
		}
	}

	if g != "" {
		s.SetGranularity(g)
	}
	if p.From != "" || p.To != "" {
		s.SetDateRange(ParseDateBound(p.From), ParseDateBound(p.To))
	}
	if len(p.Locations) > 0 {
		s.SetLocations(SplitCodes(p.Locations))
	}
	if len(p.Customers) > 0 {
		s.SetCustomers(SplitCodes(p.Customers))
	}
	if len(p.Products) > 0 {
		s.SetProducts(SplitCodes(p.Products))
	}
	if len(p.Stores) > 0 {
		s.SetStores(SplitCodes(p.Stores))
	}
	return nil
}
