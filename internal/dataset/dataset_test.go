package dataset

import (
	"errors"
	"reflect"
	"testing"
	"time"
)

func TestGenerate_Invariants(t *testing.T) {
	ds := Generate(GeneratorConfig{Seed: 42})

	if len(ds.Times) != 1095 {
		t.Fatalf("Expected 1095 days, got %d", len(ds.Times))
	}
	if ds.Times[0].Key != "2022-01-01" {
		t.Errorf("Expected first day 2022-01-01, got %s", ds.Times[0].Key)
	}
	if len(ds.Orders) != 1000 || len(ds.Inventory) != 500 {
		t.Fatalf("Expected 1000 orders and 500 inventory rows, got %d and %d", len(ds.Orders), len(ds.Inventory))
	}

	for _, tm := range ds.Times {
		if tm.Quarter != (tm.Month+2)/3 {
			t.Fatalf("Quarter mismatch for %s: month %d quarter %d", tm.Key, tm.Month, tm.Quarter)
		}
	}
	for i, o := range ds.Orders {
		if o.Total.IsNegative() {
			t.Fatalf("Order %d has negative total %s", i, o.Total)
		}
	}
	for i, inv := range ds.Inventory {
		if inv.Quantity < 1 || inv.Quantity > 50 {
			t.Fatalf("Inventory %d quantity out of range: %d", i, inv.Quantity)
		}
	}

	if refs := ds.Dangling(); len(refs) != 0 {
		t.Errorf("Generated dataset should have no dangling references, got %v", refs)
	}
}

func TestGenerate_FactsFollowDimensions(t *testing.T) {
	ds := Generate(GeneratorConfig{Seed: 7, Orders: 50, InventoryRows: 50})
	idx := ds.Index()

	for i, o := range ds.Orders {
		c := idx.Customers[o.CustomerCode]
		if o.LocationCode != c.LocationCode {
			t.Errorf("Order %d location %s, customer lives in %s", i, o.LocationCode, c.LocationCode)
		}
		p := idx.Products[o.ProductCode]
		if !o.Total.Mod(p.UnitPrice).IsZero() {
			t.Errorf("Order %d total %s is not a multiple of unit price %s", i, o.Total, p.UnitPrice)
		}
	}
	for i, inv := range ds.Inventory {
		if inv.LocationCode != idx.Stores[inv.StoreCode].LocationCode {
			t.Errorf("Inventory %d location does not match its store", i)
		}
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	a := Generate(GeneratorConfig{Seed: 99})
	b := Generate(GeneratorConfig{Seed: 99})

	if !reflect.DeepEqual(a, b) {
		t.Error("Equal seeds should produce identical datasets")
	}

	c := Generate(GeneratorConfig{Seed: 100})
	if reflect.DeepEqual(a.Orders, c.Orders) {
		t.Error("Different seeds should produce different orders")
	}
}

func TestGenerate_CustomRange(t *testing.T) {
	ds := Generate(GeneratorConfig{
		Seed:  1,
		Start: time.Date(2023, time.March, 30, 15, 0, 0, 0, time.UTC),
		Days:  3,
	})

	want := []string{"2023-03-30", "2023-03-31", "2023-04-01"}
	for i, key := range want {
		if ds.Times[i].Key != key {
			t.Errorf("Day %d: expected %s, got %s", i, key, ds.Times[i].Key)
		}
	}
	if ds.Times[2].Quarter != 2 {
		t.Errorf("Expected April to be Q2, got Q%d", ds.Times[2].Quarter)
	}
}

func TestQuarterOf(t *testing.T) {
	tests := []struct {
		month, quarter int
	}{
		{1, 1}, {3, 1}, {4, 2}, {6, 2}, {7, 3}, {9, 3}, {10, 4}, {12, 4},
	}
	for _, tt := range tests {
		if got := QuarterOf(tt.month); got != tt.quarter {
			t.Errorf("QuarterOf(%d) = %d, want %d", tt.month, got, tt.quarter)
		}
	}
}

func TestIndex_FirstRowWins(t *testing.T) {
	ds := &Dataset{
		Locations: []Location{
			{Code: "HN", Name: "first"},
			{Code: "HN", Name: "second"},
		},
	}
	if got := ds.Index().Locations["HN"].Name; got != "first" {
		t.Errorf("Expected first row to win, got %s", got)
	}
}

func TestDangling(t *testing.T) {
	ds := &Dataset{
		Locations: []Location{{Code: "HN"}},
		Customers: []Customer{{Code: "C1", LocationCode: "XX"}},
		Orders:    []Order{{DateKey: "2022-01-01", CustomerCode: "C1", ProductCode: "P1"}},
	}

	refs := ds.Dangling()
	want := []string{
		`customer[0].location_code="XX"`,
		`order[0].date_key="2022-01-01"`,
		`order[0].product_code="P1"`,
	}
	if len(refs) != len(want) {
		t.Fatalf("Expected %d dangling refs, got %d: %v", len(want), len(refs), refs)
	}
	for i, w := range want {
		if refs[i].String() != w {
			t.Errorf("Ref %d: expected %s, got %s", i, w, refs[i].String())
		}
	}
}

func TestOptions(t *testing.T) {
	ds := Generate(GeneratorConfig{Seed: 3, Orders: 1, InventoryRows: 1})
	opts := ds.Options()

	if len(opts.Locations) != 5 || opts.Locations[0] != (Option{Value: "HN", Label: "Hà Nội"}) {
		t.Errorf("Unexpected location options: %v", opts.Locations)
	}
	if len(opts.Products) != 10 || opts.Products[0].Label != "Áo thun nam" {
		t.Errorf("Unexpected product options: %v", opts.Products)
	}
	if len(opts.Stores) != 8 || opts.Stores[7].Label != "CH008" {
		t.Errorf("Unexpected store options: %v", opts.Stores)
	}
	if len(opts.Customers) != 10 {
		t.Errorf("Expected 10 customer options, got %d", len(opts.Customers))
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	dir := t.TempDir()
	ds := Generate(GeneratorConfig{Seed: 5, Orders: 20, InventoryRows: 10})

	if err := Save(dir, "fixture", ds); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(dir, "fixture")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(loaded.Orders) != len(ds.Orders) {
		t.Fatalf("Expected %d orders, got %d", len(ds.Orders), len(loaded.Orders))
	}
	for i := range ds.Orders {
		if !loaded.Orders[i].Total.Equal(ds.Orders[i].Total) {
			t.Errorf("Order %d total: expected %s, got %s", i, ds.Orders[i].Total, loaded.Orders[i].Total)
		}
	}
	if !reflect.DeepEqual(loaded.Inventory, ds.Inventory) {
		t.Error("Inventory did not survive the round trip")
	}
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(t.TempDir(), "nope")
	if !errors.Is(err, ErrSnapshotNotFound) {
		t.Errorf("Expected ErrSnapshotNotFound, got %v", err)
	}
}

func TestLatestYear(t *testing.T) {
	ds := Generate(GeneratorConfig{Seed: 1, Orders: 1, InventoryRows: 1})
	if got := ds.LatestYear(); got != 2024 {
		t.Errorf("Expected latest year 2024, got %d", got)
	}
	if got := (&Dataset{}).LatestYear(); got != 0 {
		t.Errorf("Expected 0 for empty dataset, got %d", got)
	}
}
