package dataset

import (
	"fmt"
)

// Dataset holds every entity collection. It is built once and never mutated,
// so it may be shared between readers without locking.
type Dataset struct {
	Times     []TimeDim   `json:"times"`
	Locations []Location  `json:"locations"`
	Products  []Product   `json:"products"`
	Customers []Customer  `json:"customers"`
	Stores    []Store     `json:"stores"`
	Orders    []Order     `json:"orders"`
	Inventory []Inventory `json:"inventory"`
}

// Index provides constant-time lookups of dimension rows by code.
type Index struct {
	Times     map[string]TimeDim
	Locations map[string]Location
	Products  map[string]Product
	Customers map[string]Customer
	Stores    map[string]Store
}

// Index builds key lookups for every dimension. When a code repeats, the
// first row wins.
func (d *Dataset) Index() Index {
	return Index{
		Times:     indexBy(d.Times, func(t TimeDim) string { return t.Key }),
		Locations: indexBy(d.Locations, func(l Location) string { return l.Code }),
		Products:  indexBy(d.Products, func(p Product) string { return p.Code }),
		Customers: indexBy(d.Customers, func(c Customer) string { return c.Code }),
		Stores:    indexBy(d.Stores, func(s Store) string { return s.Code }),
	}
}

func indexBy[T any](rows []T, key func(T) string) map[string]T {
	m := make(map[string]T, len(rows))
	for _, r := range rows {
		k := key(r)
		if _, exists := m[k]; !exists {
			m[k] = r
		}
	}
	return m
}

// Option is a code and display name pair for a filter control.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// DimensionOptions lists the selectable values of every filterable dimension.
type DimensionOptions struct {
	Locations []Option `json:"locations"`
	Customers []Option `json:"customers"`
	Products  []Option `json:"products"`
	Stores    []Option `json:"stores"`
}

// Options returns the filter option lists in dimension order.
func (d *Dataset) Options() DimensionOptions {
	opts := DimensionOptions{
		Locations: make([]Option, 0, len(d.Locations)),
		Customers: make([]Option, 0, len(d.Customers)),
		Products:  make([]Option, 0, len(d.Products)),
		Stores:    make([]Option, 0, len(d.Stores)),
	}
	for _, l := range d.Locations {
		opts.Locations = append(opts.Locations, Option{Value: l.Code, Label: l.Name})
	}
	for _, c := range d.Customers {
		opts.Customers = append(opts.Customers, Option{Value: c.Code, Label: c.Name})
	}
	for _, p := range d.Products {
		opts.Products = append(opts.Products, Option{Value: p.Code, Label: p.Description})
	}
	for _, s := range d.Stores {
		opts.Stores = append(opts.Stores, Option{Value: s.Code, Label: s.Code})
	}
	return opts
}

// DanglingRef describes a foreign key that does not resolve.
type DanglingRef struct {
	Entity string `json:"entity"`
	Row    int    `json:"row"`
	Field  string `json:"field"`
	Key    string `json:"key"`
}

func (r DanglingRef) String() string {
	return fmt.Sprintf("%s[%d].%s=%q", r.Entity, r.Row, r.Field, r.Key)
}

// Dangling reports every foreign key without a matching dimension row.
// Dangling references are legal; callers use this for diagnostics only.
func (d *Dataset) Dangling() []DanglingRef {
	idx := d.Index()
	var refs []DanglingRef

	check := func(entity string, row int, field, key string, ok bool) {
		if !ok {
			refs = append(refs, DanglingRef{Entity: entity, Row: row, Field: field, Key: key})
		}
	}

	for i, c := range d.Customers {
		_, ok := idx.Locations[c.LocationCode]
		check("customer", i, "location_code", c.LocationCode, ok)
	}
	for i, s := range d.Stores {
		_, ok := idx.Locations[s.LocationCode]
		check("store", i, "location_code", s.LocationCode, ok)
	}
	for i, o := range d.Orders {
		_, ok := idx.Times[o.DateKey]
		check("order", i, "date_key", o.DateKey, ok)
		_, ok = idx.Customers[o.CustomerCode]
		check("order", i, "customer_code", o.CustomerCode, ok)
		_, ok = idx.Products[o.ProductCode]
		check("order", i, "product_code", o.ProductCode, ok)
	}
	for i, inv := range d.Inventory {
		_, ok := idx.Times[inv.DateKey]
		check("inventory", i, "date_key", inv.DateKey, ok)
		_, ok = idx.Stores[inv.StoreCode]
		check("inventory", i, "store_code", inv.StoreCode, ok)
		_, ok = idx.Products[inv.ProductCode]
		check("inventory", i, "product_code", inv.ProductCode, ok)
	}
	return refs
}

// LatestYear returns the most recent year of the time dimension, or 0 when it is empty.
func (d *Dataset) LatestYear() int {
	latest := 0
	for _, t := range d.Times {
		if t.Year > latest {
			latest = t.Year
		}
	}
	return latest
}
