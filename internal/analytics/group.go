package analytics

import (
	"slices"

	"github.com/shopspring/decimal"
)

// tally accumulates per-key values and remembers the order keys were first seen.
type tally[V any] struct {
	keys   []string
	labels map[string]string
	values map[string]V
}

func newTally[V any]() *tally[V] {
	return &tally[V]{labels: map[string]string{}, values: map[string]V{}}
}

func (t *tally[V]) add(key, label string, merge func(V) V) {
	v, seen := t.values[key]
	if !seen {
		t.keys = append(t.keys, key)
		t.labels[key] = label
	}
	t.values[key] = merge(v)
}

// sumBy groups rows by key in first-seen order and sums value per group.
func sumBy[R any](rows []R, key func(R) (string, string), value func(R) decimal.Decimal) []Point {
	return sumInto(newTally[decimal.Decimal](), rows, key, value)
}

// sumOver is sumBy starting from one zero group per seed, in seed order.
// Seeds without rows stay in the result; keys outside the seeds follow them.
func sumOver[S, R any](seeds []S, seedKey func(S) (string, string), rows []R, key func(R) (string, string), value func(R) decimal.Decimal) []Point {
	t := newTally[decimal.Decimal]()
	for _, s := range seeds {
		k, label := seedKey(s)
		t.add(k, label, func(acc decimal.Decimal) decimal.Decimal { return acc })
	}
	return sumInto(t, rows, key, value)
}

func sumInto[R any](t *tally[decimal.Decimal], rows []R, key func(R) (string, string), value func(R) decimal.Decimal) []Point {
	for _, r := range rows {
		k, label := key(r)
		v := value(r)
		t.add(k, label, func(acc decimal.Decimal) decimal.Decimal { return acc.Add(v) })
	}
	out := make([]Point, 0, len(t.keys))
	for _, k := range t.keys {
		out = append(out, Point{Key: k, Label: t.labels[k], Value: t.values[k]})
	}
	return out
}

// countBy groups rows by key in first-seen order and counts each group.
func countBy[R any](rows []R, key func(R) (string, string)) []Count {
	t := newTally[int]()
	for _, r := range rows {
		k, label := key(r)
		t.add(k, label, func(acc int) int { return acc + 1 })
	}
	out := make([]Count, 0, len(t.keys))
	for _, k := range t.keys {
		out = append(out, Count{Key: k, Label: t.labels[k], Count: t.values[k]})
	}
	return out
}

// TopN ranks points by descending value and keeps the first n. Equal values
// keep their input order. n <= 0 keeps every point.
func TopN(points []Point, n int) []Point {
	ranked := slices.Clone(points)
	slices.SortStableFunc(ranked, func(a, b Point) int {
		return b.Value.Cmp(a.Value)
	})
	if n > 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	if ranked == nil {
		ranked = []Point{}
	}
	return ranked
}

func where[T any](rows []T, keep func(T) bool) []T {
	out := make([]T, 0, len(rows))
	for _, r := range rows {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

func quantity(q int) decimal.Decimal {
	return decimal.NewFromInt(int64(q))
}
