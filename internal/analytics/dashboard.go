package analytics

import (
	"retail-bi/internal/dataset"
	"retail-bi/internal/denorm"

	"github.com/shopspring/decimal"
)

// Totals are the headline figures of the dashboard.
type Totals struct {
	Sales     decimal.Decimal `json:"sales"`
	Orders    int             `json:"orders"`
	Customers int             `json:"customers"`
	Products  int             `json:"products"`
	Stores    int             `json:"stores"`
}

type DashboardView struct {
	Year            int     `json:"year"`
	Totals          Totals  `json:"totals"`
	SalesByMonth    []Point `json:"sales_by_month"`
	SalesByLocation []Point `json:"sales_by_location"`
	TopProducts     []Point `json:"top_products"`
	TopCustomers    []Point `json:"top_customers"`
}

// Dashboard summarises orders passing the date and location filters.
// SalesByMonth always has twelve points for year; SalesByLocation has one
// point per selectable location, zero when it sold nothing. The top lists rank
// every product and every customer of a selectable location, so ties keep
// dimension order and items without sales can still fill them.
func Dashboard(in Input, year int) DashboardView {
	st := in.state()
	orders := where(denorm.Orders(in.Data.Orders, in.Data.Index()), func(o denorm.Order) bool {
		return st.InRange(o.DateKey) && st.AllowsLocation(o.LocationCode)
	})

	customerDims := where(in.Data.Customers, func(c dataset.Customer) bool {
		return st.AllowsLocation(c.LocationCode)
	})

	v := DashboardView{
		Year:         year,
		SalesByMonth: FixedMonths(orders, year),
		TopProducts:  TopN(sumOver(in.Data.Products, productKey, orders, productGroup, orderTotal), dashboardTopN),
		TopCustomers: TopN(sumOver(customerDims, customerKey, orders, customerGroup, orderTotal), dashboardTopN),
	}

	customers := map[string]struct{}{}
	byLocation := map[string]decimal.Decimal{}
	for _, o := range orders {
		v.Totals.Sales = v.Totals.Sales.Add(o.Total)
		customers[o.CustomerCode] = struct{}{}
		byLocation[o.LocationCode] = byLocation[o.LocationCode].Add(o.Total)
	}
	v.Totals.Orders = len(orders)
	v.Totals.Customers = len(customers)
	v.Totals.Products = len(in.Data.Products)
	v.Totals.Stores = len(in.Data.Stores)

	v.SalesByLocation = make([]Point, 0, len(in.Data.Locations))
	for _, l := range in.Data.Locations {
		if !st.AllowsLocation(l.Code) {
			continue
		}
		v.SalesByLocation = append(v.SalesByLocation, Point{Key: l.Code, Label: l.Name, Value: byLocation[l.Code]})
	}
	return v
}

func orderTotal(o denorm.Order) decimal.Decimal { return o.Total }

func productKey(p dataset.Product) (string, string) { return p.Code, p.Description }
func customerKey(c dataset.Customer) (string, string) { return c.Code, c.Name }

func productGroup(o denorm.Order) (string, string) {
	if p, ok := o.Product.Get(); ok {
		return p.Code, p.Description
	}
	return o.ProductCode, o.ProductCode
}

func customerGroup(o denorm.Order) (string, string) {
	if c, ok := o.Customer.Get(); ok {
		return c.Code, c.Name
	}
	return o.CustomerCode, o.CustomerCode
}

func locationLabel(idx dataset.Index, code string) string {
	if l, ok := idx.Locations[code]; ok {
		return l.Name
	}
	return code
}
