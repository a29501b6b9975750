// Package aggregation reduces rows into the summary statistics shown on
// dashboards and reports. Every function is pure and total: empty input
// yields empty or zero output, never a panic.
package aggregation

import (
	"math"
	"sort"
	"time"
)

// CountBy counts rows per key. Keys without rows are absent from the result.
func CountBy[R any, K comparable](rows []R, keyFn func(R) K) map[K]int {
	counts := make(map[K]int)
	for _, r := range rows {
		counts[keyFn(r)]++
	}
	return counts
}

// KeyCount is one entry of a counted key set.
type KeyCount[K comparable] struct {
	Key   K   `json:"key"`
	Count int `json:"count"`
}

// SortedCounts returns counts ordered by key using less.
func SortedCounts[K comparable](counts map[K]int, less func(a, b K) bool) []KeyCount[K] {
	out := make([]KeyCount[K], 0, len(counts))
	for k, c := range counts {
		out = append(out, KeyCount[K]{Key: k, Count: c})
	}
	sort.Slice(out, func(i, j int) bool { return less(out[i].Key, out[j].Key) })
	return out
}

// TopN returns at most n rows ordered by rankFn descending. Rows with equal
// rank keep their original relative order.
func TopN[R any, N ~int | ~int64 | ~float64](rows []R, rankFn func(R) N, n int) []R {
	if n <= 0 || len(rows) == 0 {
		return []R{}
	}
	ranked := append([]R(nil), rows...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return rankFn(ranked[i]) > rankFn(ranked[j])
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// Ratio divides numerator by denominator, returning 0 for a zero denominator.
func Ratio(numerator, denominator float64) float64 {
	if denominator == 0 {
		return 0
	}
	return numerator / denominator
}

// PercentOf expresses value as a percentage of max, clamped to [0, 100].
// A zero max yields 0.
func PercentOf(value, max float64) float64 {
	if max == 0 {
		return 0
	}
	return clamp(value/max*100, 0, 100)
}

// MonthOverMonthGrowth is the percentage change between the two most recent
// points of series. Fewer than two points, or a zero previous value, yield 0.
func MonthOverMonthGrowth(series []int, mostRecentFirst bool) float64 {
	if len(series) < 2 {
		return 0
	}
	var current, previous int
	if mostRecentFirst {
		current, previous = series[0], series[1]
	} else {
		current, previous = series[len(series)-1], series[len(series)-2]
	}
	if previous == 0 {
		return 0
	}
	return float64(current-previous) / float64(previous) * 100
}

// Round rounds v to the given number of decimal places.
func Round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

// MonthKey truncates a date to its "YYYY-MM" bucket.
func MonthKey(t time.Time) string {
	return t.Format("2006-01")
}

// MonthRange returns the n month keys ending with the month containing end,
// oldest first.
func MonthRange(end time.Time, n int) []string {
	if n <= 0 {
		return []string{}
	}
	first := time.Date(end.Year(), end.Month(), 1, 0, 0, 0, 0, end.Location())
	keys := make([]string, n)
	for i := 0; i < n; i++ {
		keys[n-1-i] = MonthKey(first.AddDate(0, -i, 0))
	}
	return keys
}

// SeriesFor reads counts for keys in order. Missing keys are reported as 0;
// callers use this only when a zero-filled chart axis is wanted.
func SeriesFor(counts map[string]int, keys []string) []int {
	out := make([]int, len(keys))
	for i, k := range keys {
		out[i] = counts[k]
	}
	return out
}

func clamp(v, lo, hi float64) float64 {
	switch {
	case math.IsNaN(v):
		return lo
	case v < lo:
		return lo
	case v > hi:
		return hi
	}
	return v
}
