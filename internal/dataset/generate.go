package dataset

import (
	"math/rand/v2"
	"time"

	"github.com/shopspring/decimal"
)

// GeneratorConfig controls synthetic dataset generation.
type GeneratorConfig struct {
	Seed          int64 // 0 seeds from the clock
	Start         time.Time
	Days          int
	Orders        int
	InventoryRows int
}

// DefaultGeneratorConfig returns three years of daily data from 2022-01-01.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		Start:         time.Date(2022, time.January, 1, 0, 0, 0, 0, time.UTC),
		Days:          1095,
		Orders:        1000,
		InventoryRows: 500,
	}
}

func (c GeneratorConfig) withDefaults() GeneratorConfig {
	def := DefaultGeneratorConfig()
	if c.Start.IsZero() {
		c.Start = def.Start
	}
	if c.Days <= 0 {
		c.Days = def.Days
	}
	if c.Orders < 0 {
		c.Orders = 0
	}
	if c.InventoryRows < 0 {
		c.InventoryRows = 0
	}
	if c.Seed == 0 {
		c.Seed = time.Now().UnixNano()
	}
	return c
}

// Generate builds a complete dataset. Dimension tables are fixed; facts are
// drawn from a PCG source so equal seeds yield equal datasets.
func Generate(cfg GeneratorConfig) *Dataset {
	cfg = cfg.withDefaults()
	rng := rand.New(rand.NewPCG(uint64(cfg.Seed), uint64(cfg.Seed)^0x9e3779b97f4a7c15))

	ds := &Dataset{
		Times:     generateTimes(cfg.Start, cfg.Days),
		Locations: defaultLocations(),
		Products:  defaultProducts(),
		Customers: defaultCustomers(),
		Stores:    defaultStores(),
	}

	ds.Inventory = make([]Inventory, 0, cfg.InventoryRows)
	for i := 0; i < cfg.InventoryRows; i++ {
		day := ds.Times[rng.IntN(len(ds.Times))]
		store := ds.Stores[rng.IntN(len(ds.Stores))]
		product := ds.Products[rng.IntN(len(ds.Products))]

		ds.Inventory = append(ds.Inventory, Inventory{
			DateKey:      day.Key,
			StoreCode:    store.Code,
			ProductCode:  product.Code,
			LocationCode: store.LocationCode,
			Quantity:     rng.IntN(50) + 1,
		})
	}

	ds.Orders = make([]Order, 0, cfg.Orders)
	for i := 0; i < cfg.Orders; i++ {
		day := ds.Times[rng.IntN(len(ds.Times))]
		customer := ds.Customers[rng.IntN(len(ds.Customers))]
		product := ds.Products[rng.IntN(len(ds.Products))]
		quantity := int64(rng.IntN(5) + 1)

		ds.Orders = append(ds.Orders, Order{
			DateKey:      day.Key,
			CustomerCode: customer.Code,
			ProductCode:  product.Code,
			LocationCode: customer.LocationCode,
			Total:        product.UnitPrice.Mul(decimal.NewFromInt(quantity)),
		})
	}

	return ds
}

func generateTimes(start time.Time, days int) []TimeDim {
	start = time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	times := make([]TimeDim, 0, days)
	for i := 0; i < days; i++ {
		times = append(times, NewTimeDim(start.AddDate(0, 0, i)))
	}
	return times
}

func defaultLocations() []Location {
	return []Location{
		{Code: "HN", Name: "Hà Nội", Region: "Miền Bắc"},
		{Code: "HCM", Name: "Hồ Chí Minh", Region: "Miền Nam"},
		{Code: "DN", Name: "Đà Nẵng", Region: "Miền Trung"},
		{Code: "HP", Name: "Hải Phòng", Region: "Miền Bắc"},
		{Code: "CT", Name: "Cần Thơ", Region: "Miền Nam"},
	}
}

func defaultProducts() []Product {
	p := func(code, desc, size string, weight int, price int64) Product {
		return Product{Code: code, Description: desc, Size: size, WeightGrams: weight, UnitPrice: decimal.NewFromInt(price)}
	}
	return []Product{
		p("SP001", "Áo thun nam", "M", 200, 250000),
		p("SP002", "Áo sơ mi nữ", "S", 180, 350000),
		p("SP003", "Quần jean nam", "L", 500, 450000),
		p("SP004", "Đầm dạ hội", "M", 400, 1250000),
		p("SP005", "Giày thể thao", "42", 700, 850000),
		p("SP006", "Túi xách nữ", "Standard", 300, 950000),
		p("SP007", "Đồng hồ nam", "Standard", 150, 2250000),
		p("SP008", "Kính mát", "Standard", 50, 550000),
		p("SP009", "Vòng tay", "Standard", 20, 350000),
		p("SP010", "Mũ thời trang", "Standard", 100, 250000),
	}
}

func defaultCustomers() []Customer {
	return []Customer{
		{Code: "KH001", Name: "Nguyễn Văn A", Type: VIP, LocationCode: "HN"},
		{Code: "KH002", Name: "Trần Thị B", Type: Standard, LocationCode: "HCM"},
		{Code: "KH003", Name: "Lê Văn C", Type: VIP, LocationCode: "DN"},
		{Code: "KH004", Name: "Phạm Thị D", Type: Standard, LocationCode: "HP"},
		{Code: "KH005", Name: "Hoàng Văn E", Type: VIP, LocationCode: "CT"},
		{Code: "KH006", Name: "Ngô Thị F", Type: Standard, LocationCode: "HN"},
		{Code: "KH007", Name: "Đỗ Văn G", Type: VIP, LocationCode: "HCM"},
		{Code: "KH008", Name: "Bùi Thị H", Type: Standard, LocationCode: "DN"},
		{Code: "KH009", Name: "Trương Văn I", Type: VIP, LocationCode: "HP"},
		{Code: "KH010", Name: "Mai Thị K", Type: Standard, LocationCode: "CT"},
	}
}

func defaultStores() []Store {
	return []Store{
		{Code: "CH001", LocationCode: "HN", Phone: "0123456789", OpenedOn: "2020-01-01"},
		{Code: "CH002", LocationCode: "HCM", Phone: "0123456790", OpenedOn: "2020-02-15"},
		{Code: "CH003", LocationCode: "DN", Phone: "0123456791", OpenedOn: "2020-03-20"},
		{Code: "CH004", LocationCode: "HP", Phone: "0123456792", OpenedOn: "2020-05-10"},
		{Code: "CH005", LocationCode: "CT", Phone: "0123456793", OpenedOn: "2020-06-25"},
		{Code: "CH006", LocationCode: "HN", Phone: "0123456794", OpenedOn: "2021-01-15"},
		{Code: "CH007", LocationCode: "HCM", Phone: "0123456795", OpenedOn: "2021-03-05"},
		{Code: "CH008", LocationCode: "DN", Phone: "0123456796", OpenedOn: "2021-05-20"},
	}
}
