package analytics

import (
	"math"
	"time"

	"retail-bi/internal/dataset"
	"retail-bi/internal/denorm"

	"github.com/shopspring/decimal"
)

// StorePerformance is one row of the store comparison table.
type StorePerformance struct {
	StoreCode string  `json:"store_code"`
	Inventory int     `json:"inventory"`
	AgeYears  float64 `json:"age_years"`
	Location  string  `json:"location"`
}

type StoresView struct {
	ByLocation       []Count            `json:"by_location"`
	InventoryByStore []Point            `json:"inventory_by_store"`
	Performance      []StorePerformance `json:"performance"`
	Rows             []denorm.Store     `json:"rows"`
}

// Stores filters stores by location and code. Inventory totals cover every
// goods-received row of a surviving store; store age is measured at now.
func Stores(in Input, now time.Time) StoresView {
	st := in.state()
	idx := in.Data.Index()

	rows := where(denorm.Stores(in.Data.Stores, idx), func(s denorm.Store) bool {
		return st.AllowsLocation(s.LocationCode) && st.AllowsStore(s.Code)
	})
	surviving := make(map[string]bool, len(rows))
	for _, s := range rows {
		surviving[s.Code] = true
	}

	received := where(in.Data.Inventory, func(r dataset.Inventory) bool { return surviving[r.StoreCode] })
	totals := make(map[string]int, len(rows))
	for _, r := range received {
		totals[r.StoreCode] += r.Quantity
	}

	v := StoresView{
		ByLocation: countBy(rows, func(s denorm.Store) (string, string) {
			return s.LocationCode, locationLabel(idx, s.LocationCode)
		}),
		InventoryByStore: sumBy(received, func(r dataset.Inventory) (string, string) {
			return r.StoreCode, r.StoreCode
		}, func(r dataset.Inventory) decimal.Decimal { return quantity(r.Quantity) }),
		Performance: make([]StorePerformance, 0, len(rows)),
		Rows:        rows,
	}
	for _, s := range rows {
		location := s.LocationCode
		if l, ok := s.Location.Get(); ok {
			location = l.Name
		}
		v.Performance = append(v.Performance, StorePerformance{
			StoreCode: s.Code,
			Inventory: totals[s.Code],
			AgeYears:  ageYears(s.OpenedOn, now),
			Location:  location,
		})
	}
	return v
}

const daysPerYear = 365.25

// ageYears is the time from the opening date to now in years, rounded to one
// decimal place. Unparseable or future dates give 0.
func ageYears(openedOn string, now time.Time) float64 {
	opened, err := time.Parse(dataset.DateLayout, openedOn)
	if err != nil || now.Before(opened) {
		return 0
	}
	years := now.Sub(opened).Hours() / 24 / daysPerYear
	return math.Round(years*10) / 10
}
