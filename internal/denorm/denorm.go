// Package denorm joins fact rows to the dimension rows they reference.
//
// Every join produces one enriched record per input row, in input order.
// A foreign key that does not resolve yields a Ref with Found set to false;
// it is never an error and never alters the fact's own fields.
package denorm

import (
	"encoding/json"

	"retail-bi/internal/dataset"
)

// Ref is the outcome of resolving one foreign key.
type Ref[T any] struct {
	Key   string
	Value T
	Found bool
}

// Get returns the referenced row and whether it exists.
func (r Ref[T]) Get() (T, bool) {
	return r.Value, r.Found
}

// MarshalJSON encodes the referenced row, or null when it was not found.
func (r Ref[T]) MarshalJSON() ([]byte, error) {
	if !r.Found {
		return []byte("null"), nil
	}
	return json.Marshal(r.Value)
}

func resolve[T any](lookup map[string]T, key string) Ref[T] {
	v, ok := lookup[key]
	return Ref[T]{Key: key, Value: v, Found: ok}
}

// Order is an order joined to its customer, product and day.
type Order struct {
	dataset.Order
	Customer Ref[dataset.Customer] `json:"customer"`
	Product  Ref[dataset.Product]  `json:"product"`
	Time     Ref[dataset.TimeDim]  `json:"time"`
}

// Inventory is a goods-received row joined to its store, product and day.
type Inventory struct {
	dataset.Inventory
	Store   Ref[dataset.Store]   `json:"store"`
	Product Ref[dataset.Product] `json:"product"`
	Time    Ref[dataset.TimeDim] `json:"time"`
}

// Customer is a customer joined to its location.
type Customer struct {
	dataset.Customer
	Location Ref[dataset.Location] `json:"location"`
}

// Store is a store joined to its location.
type Store struct {
	dataset.Store
	Location Ref[dataset.Location] `json:"location"`
}

// Orders enriches order facts.
func Orders(facts []dataset.Order, idx dataset.Index) []Order {
	out := make([]Order, len(facts))
	for i, f := range facts {
		out[i] = Order{
			Order:    f,
			Customer: resolve(idx.Customers, f.CustomerCode),
			Product:  resolve(idx.Products, f.ProductCode),
			Time:     resolve(idx.Times, f.DateKey),
		}
	}
	return out
}

// InventoryRows enriches inventory facts.
func InventoryRows(facts []dataset.Inventory, idx dataset.Index) []Inventory {
	out := make([]Inventory, len(facts))
	for i, f := range facts {
		out[i] = Inventory{
			Inventory: f,
			Store:     resolve(idx.Stores, f.StoreCode),
			Product:   resolve(idx.Products, f.ProductCode),
			Time:      resolve(idx.Times, f.DateKey),
		}
	}
	return out
}

// Customers enriches customer rows with their location.
func Customers(rows []dataset.Customer, idx dataset.Index) []Customer {
	out := make([]Customer, len(rows))
	for i, c := range rows {
		out[i] = Customer{Customer: c, Location: resolve(idx.Locations, c.LocationCode)}
	}
	return out
}

// Stores enriches store rows with their location.
func Stores(rows []dataset.Store, idx dataset.Index) []Store {
	out := make([]Store, len(rows))
	for i, s := range rows {
		out[i] = Store{Store: s, Location: resolve(idx.Locations, s.LocationCode)}
	}
	return out
}

// Enriched holds every enriched projection of one dataset snapshot.
type Enriched struct {
	Orders    []Order
	Inventory []Inventory
	Customers []Customer
	Stores    []Store
}

// All runs every join over the dataset. The result is derived data: callers
// recompute it instead of holding on to it.
func All(ds *dataset.Dataset) Enriched {
	idx := ds.Index()
	return Enriched{
		Orders:    Orders(ds.Orders, idx),
		Inventory: InventoryRows(ds.Inventory, idx),
		Customers: Customers(ds.Customers, idx),
		Stores:    Stores(ds.Stores, idx),
	}
}
