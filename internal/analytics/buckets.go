package analytics

import (
	"cmp"
	"fmt"
	"slices"

	"retail-bi/internal/dataset"
	"retail-bi/internal/denorm"
	"retail-bi/internal/filter"

	"github.com/shopspring/decimal"
)

// BucketKey identifies one calendar bucket. Fields finer than the bucket's
// granularity are zero, so keys of one granularity order chronologically.
type BucketKey struct {
	Year    int
	Quarter int
	Month   int
	Day     int
}

// Compare orders keys chronologically.
func (k BucketKey) Compare(o BucketKey) int {
	if c := cmp.Compare(k.Year, o.Year); c != 0 {
		return c
	}
	if c := cmp.Compare(k.Quarter, o.Quarter); c != 0 {
		return c
	}
	if c := cmp.Compare(k.Month, o.Month); c != 0 {
		return c
	}
	return cmp.Compare(k.Day, o.Day)
}

// BucketFor snaps a day to its bucket at granularity g.
func BucketFor(t dataset.TimeDim, g filter.Granularity) BucketKey {
	switch g {
	case filter.Year:
		return BucketKey{Year: t.Year}
	case filter.Quarter:
		return BucketKey{Year: t.Year, Quarter: t.Quarter}
	case filter.Day:
		day := 0
		if d, err := t.Date(); err == nil {
			day = d.Day()
		}
		return BucketKey{Year: t.Year, Quarter: t.Quarter, Month: t.Month, Day: day}
	default: // month
		return BucketKey{Year: t.Year, Quarter: t.Quarter, Month: t.Month}
	}
}

// ID is a stable machine key, e.g. "2024-03-05", "2024-03", "2024-Q1" or "2024".
func (k BucketKey) ID(g filter.Granularity) string {
	switch g {
	case filter.Year:
		return fmt.Sprintf("%d", k.Year)
	case filter.Quarter:
		return fmt.Sprintf("%d-Q%d", k.Year, k.Quarter)
	case filter.Day:
		return fmt.Sprintf("%d-%02d-%02d", k.Year, k.Month, k.Day)
	default:
		return fmt.Sprintf("%d-%02d", k.Year, k.Month)
	}
}

// Label is the display form: "5/3/2024", "3/2024", "Q1/2024" or "2024".
func (k BucketKey) Label(g filter.Granularity) string {
	switch g {
	case filter.Year:
		return fmt.Sprintf("%d", k.Year)
	case filter.Quarter:
		return fmt.Sprintf("Q%d/%d", k.Quarter, k.Year)
	case filter.Day:
		return fmt.Sprintf("%d/%d/%d", k.Day, k.Month, k.Year)
	default:
		return fmt.Sprintf("%d/%d", k.Month, k.Year)
	}
}

// ObservedBuckets is the time-series policy of the orders page: one point per
// bucket that holds at least one order, in chronological order. Orders whose
// date has no time dimension row are left out.
func ObservedBuckets(orders []denorm.Order, g filter.Granularity) []Point {
	sums := map[BucketKey]decimal.Decimal{}
	var keys []BucketKey
	for _, o := range orders {
		day, ok := o.Time.Get()
		if !ok {
			continue
		}
		k := BucketFor(day, g)
		acc, seen := sums[k]
		if !seen {
			keys = append(keys, k)
		}
		sums[k] = acc.Add(o.Total)
	}
	slices.SortFunc(keys, BucketKey.Compare)

	out := make([]Point, 0, len(keys))
	for _, k := range keys {
		out = append(out, Point{Key: k.ID(g), Label: k.Label(g), Value: sums[k]})
	}
	return out
}

var monthNames = [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// FixedMonths is the time-series policy of the dashboard: always twelve
// points for the given year, zero where no order fell in the month. Orders
// without a time dimension row count toward no month.
func FixedMonths(orders []denorm.Order, year int) []Point {
	var sums [12]decimal.Decimal
	for _, o := range orders {
		day, ok := o.Time.Get()
		if !ok || day.Year != year || day.Month < 1 || day.Month > 12 {
			continue
		}
		sums[day.Month-1] = sums[day.Month-1].Add(o.Total)
	}

	out := make([]Point, 12)
	for i := range out {
		out[i] = Point{
			Key:   BucketKey{Year: year, Month: i + 1}.ID(filter.Month),
			Label: monthNames[i],
			Value: sums[i],
		}
	}
	return out
}
