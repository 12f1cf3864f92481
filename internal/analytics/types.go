// Package analytics computes the grouped summaries behind every dashboard page.
//
// Views are pure: they join the dataset, apply the filter and reduce, and
// hold no state between calls.
package analytics

import (
	"retail-bi/internal/dataset"
	"retail-bi/internal/filter"

	"github.com/shopspring/decimal"
)

// Point is one group of a summed measure.
type Point struct {
	Key   string          `json:"key"`
	Label string          `json:"label"`
	Value decimal.Decimal `json:"value"`
}

// Count is one group of a record count.
type Count struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Count int    `json:"count"`
}

// Input is what every view is computed from.
type Input struct {
	Data   *dataset.Dataset
	Filter *filter.State
}

func (in Input) state() *filter.State {
	if in.Filter == nil {
		return filter.New()
	}
	return in.Filter
}

const (
	dashboardTopN = 5
	pageTopN      = 10
)
