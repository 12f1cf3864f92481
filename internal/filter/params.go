package filter

import "strings"

// Params is the untyped form of a filter selection as it arrives from a
// query string, command-line flags or tool arguments.
type Params struct {
	From        string   `json:"from,omitempty" jsonschema:"inclusive lower date bound, YYYY-MM-DD"`
	To          string   `json:"to,omitempty" jsonschema:"inclusive upper date bound, YYYY-MM-DD"`
	Locations   []string `json:"locations,omitempty" jsonschema:"location codes, e.g. HN"`
	Customers   []string `json:"customers,omitempty" jsonschema:"customer codes, e.g. KH001"`
	Products    []string `json:"products,omitempty" jsonschema:"product codes, e.g. SP001"`
	Stores      []string `json:"stores,omitempty" jsonschema:"store codes, e.g. CH001"`
	Granularity string   `json:"granularity,omitempty" jsonschema:"time-series resolution"`

	// Clear names fields to drop before the others are applied. Only
	// ApplyPresent reads it; Apply replaces every field anyway.
	Clear []string `json:"clear,omitempty" jsonschema:"fields to reset to no restriction before the rest is applied"`
}

// Apply writes every field of p into s through the State mutators.
// Only an unknown granularity is rejected; bad dates leave their bound unset.
func (p Params) Apply(s *State) error {
	g, err := ParseGranularity(p.Granularity)
	if err != nil {
		return err
	}
	s.SetDateRange(ParseDateBound(p.From), ParseDateBound(p.To))
	s.SetLocations(SplitCodes(p.Locations))
	s.SetCustomers(SplitCodes(p.Customers))
	s.SetProducts(SplitCodes(p.Products))
	s.SetStores(SplitCodes(p.Stores))
	s.SetGranularity(g)
	return nil
}

// State builds a fresh State from p.
func (p Params) State() (*State, error) {
	s := New()
	if err := p.Apply(s); err != nil {
		return nil, err
	}
	return s, nil
}

// SplitCodes flattens comma-separated entries and drops blanks, so that
// "HN,HCM" and ["HN", "HCM"] select the same codes.
func SplitCodes(values []string) []string {
	out := []string{}
	for _, v := range values {
		for _, code := range strings.Split(v, ",") {
			if code = strings.TrimSpace(code); code != "" {
				out = append(out, code)
			}
		}
	}
	return out
}
