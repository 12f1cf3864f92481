package analytics

import (
	"retail-bi/internal/denorm"

	"github.com/shopspring/decimal"
)

type InventoryView struct {
	ByStore   []Point            `json:"by_store"`
	ByProduct []Point            `json:"by_product"`
	Rows      []denorm.Inventory `json:"rows"`
}

// Inventory applies the date, location, product and store filters to the
// goods-received rows. ByStore ranks every store; ByProduct keeps the top ten.
func Inventory(in Input) InventoryView {
	st := in.state()
	rows := where(denorm.InventoryRows(in.Data.Inventory, in.Data.Index()), func(r denorm.Inventory) bool {
		return st.InRange(r.DateKey) &&
			st.AllowsLocation(r.LocationCode) &&
			st.AllowsProduct(r.ProductCode) &&
			st.AllowsStore(r.StoreCode)
	})

	byStore := sumBy(rows, func(r denorm.Inventory) (string, string) {
		return r.StoreCode, r.StoreCode
	}, receivedQuantity)
	byProduct := sumBy(rows, func(r denorm.Inventory) (string, string) {
		if p, ok := r.Product.Get(); ok {
			return p.Code, p.Description
		}
		return r.ProductCode, r.ProductCode
	}, receivedQuantity)

	return InventoryView{
		ByStore:   TopN(byStore, 0),
		ByProduct: TopN(byProduct, pageTopN),
		Rows:      rows,
	}
}

func receivedQuantity(r denorm.Inventory) decimal.Decimal { return quantity(r.Quantity) }
