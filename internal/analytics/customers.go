package analytics

import (
	"retail-bi/internal/denorm"
)

type CustomersView struct {
	TypeDistribution []Count           `json:"type_distribution"`
	ByLocation       []Count           `json:"by_location"`
	TopByValue       []Point           `json:"top_by_value"`
	Rows             []denorm.Customer `json:"rows"`
}

// Customers filters customers by location and code. The value ranking sums
// every order placed by the surviving selection, regardless of date.
func Customers(in Input) CustomersView {
	st := in.state()
	idx := in.Data.Index()

	rows := where(denorm.Customers(in.Data.Customers, idx), func(c denorm.Customer) bool {
		return st.AllowsLocation(c.LocationCode) && st.AllowsCustomer(c.Code)
	})
	orders := where(denorm.Orders(in.Data.Orders, idx), func(o denorm.Order) bool {
		return st.AllowsLocation(o.LocationCode) && st.AllowsCustomer(o.CustomerCode)
	})

	return CustomersView{
		TypeDistribution: countBy(rows, func(c denorm.Customer) (string, string) {
			return string(c.Type), string(c.Type)
		}),
		ByLocation: countBy(rows, func(c denorm.Customer) (string, string) {
			if l, ok := c.Location.Get(); ok {
				return l.Code, l.Name
			}
			return c.LocationCode, c.LocationCode
		}),
		TopByValue: TopN(sumBy(orders, customerGroup, orderTotal), pageTopN),
		Rows:       rows,
	}
}
