package analytics

import (
	"retail-bi/internal/denorm"
	"retail-bi/internal/filter"
)

type OrdersView struct {
	Granularity     filter.Granularity `json:"granularity"`
	SalesByTime     []Point            `json:"sales_by_time"`
	SalesByLocation []Point            `json:"sales_by_location"`
	Rows            []denorm.Order     `json:"rows"`
}

// Orders applies the date, location, customer and product filters to the
// enriched orders and buckets their sales at the filter's granularity.
func Orders(in Input) OrdersView {
	st := in.state()
	idx := in.Data.Index()
	rows := where(denorm.Orders(in.Data.Orders, idx), func(o denorm.Order) bool {
		return st.InRange(o.DateKey) &&
			st.AllowsLocation(o.LocationCode) &&
			st.AllowsCustomer(o.CustomerCode) &&
			st.AllowsProduct(o.ProductCode)
	})

	return OrdersView{
		Granularity: st.Granularity,
		SalesByTime: ObservedBuckets(rows, st.Granularity),
		SalesByLocation: sumBy(rows, func(o denorm.Order) (string, string) {
			return o.LocationCode, locationLabel(idx, o.LocationCode)
		}, orderTotal),
		Rows: rows,
	}
}
