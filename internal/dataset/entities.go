package dataset

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the layout of every date key in the dataset.
const DateLayout = "2006-01-02"

// TimeDim is one calendar day of the time dimension.
type TimeDim struct {
	Key     string `json:"date_key"`
	Month   int    `json:"month"`
	Quarter int    `json:"quarter"`
	Year    int    `json:"year"`
}

// Date parses the day key.
func (t TimeDim) Date() (time.Time, error) {
	return time.Parse(DateLayout, t.Key)
}

// NewTimeDim derives the month, quarter and year attributes of a day.
func NewTimeDim(d time.Time) TimeDim {
	month := int(d.Month())
	return TimeDim{
		Key:     d.Format(DateLayout),
		Month:   month,
		Quarter: QuarterOf(month),
		Year:    d.Year(),
	}
}

// QuarterOf returns ceil(month/3).
func QuarterOf(month int) int {
	return (month + 2) / 3
}

// Location is a city the business operates in.
type Location struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	Region string `json:"region"`
}

// Product is a catalogue item. UnitPrice is expressed in whole currency units.
type Product struct {
	Code        string          `json:"code"`
	Description string          `json:"description"`
	Size        string          `json:"size"`
	WeightGrams int             `json:"weight_grams"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// CustomerType classifies customers for loyalty reporting.
type CustomerType string

const (
	// VIP customers receive priority treatment.
	VIP CustomerType = "VIP"
	// Standard is every other customer.
	Standard CustomerType = "Standard"
)

type Customer struct {
	Code         string       `json:"code"`
	Name         string       `json:"name"`
	Type         CustomerType `json:"type"`
	LocationCode string       `json:"location_code"`
}

type Store struct {
	Code         string `json:"code"`
	LocationCode string `json:"location_code"`
	Phone        string `json:"phone"`
	OpenedOn     string `json:"opened_on"`
}

// Order is a sales fact. It has no key of its own; its identity is its position.
type Order struct {
	DateKey      string          `json:"date_key"`
	CustomerCode string          `json:"customer_code"`
	ProductCode  string          `json:"product_code"`
	LocationCode string          `json:"location_code"`
	Total        decimal.Decimal `json:"total"`
}

// Inventory is a goods-received fact for one store and product on one day.
type Inventory struct {
	DateKey      string `json:"date_key"`
	StoreCode    string `json:"store_code"`
	ProductCode  string `json:"product_code"`
	LocationCode string `json:"location_code"`
	Quantity     int    `json:"quantity"`
}
