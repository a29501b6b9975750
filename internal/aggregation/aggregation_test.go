package aggregation

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

const floatTolerance = 1e-9

type visit struct {
	id     int
	doctor string
	count  int
	month  time.Time
}

func TestCountBy_Empty(t *testing.T) {
	got := CountBy([]visit{}, func(v visit) string { return v.doctor })
	assert.Empty(t, got)
}

func TestCountBy_SingleKey(t *testing.T) {
	rows := []visit{{doctor: "a"}, {doctor: "a"}, {doctor: "a"}}
	got := CountBy(rows, func(v visit) string { return v.doctor })
	assert.Equal(t, map[string]int{"a": 3}, got)
}

func TestCountBy_MonthlyTrendOmitsEmptyMonths(t *testing.T) {
	rows := []visit{
		{month: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)},
		{month: time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)},
		{month: time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)},
	}
	got := CountBy(rows, func(v visit) string { return MonthKey(v.month) })
	assert.Equal(t, map[string]int{"2024-01": 2, "2024-03": 1}, got)
}

func TestSortedCounts(t *testing.T) {
	got := SortedCounts(map[string]int{"2024-03": 1, "2024-01": 2}, func(a, b string) bool { return a < b })
	assert.Equal(t, []KeyCount[string]{{Key: "2024-01", Count: 2}, {Key: "2024-03", Count: 1}}, got)
}

func TestTopN_StableAndBounded(t *testing.T) {
	rows := []visit{
		{id: 1, count: 4},
		{id: 2, count: 9},
		{id: 3, count: 4},
		{id: 4, count: 1},
		{id: 5, count: 4},
	}

	got := TopN(rows, func(v visit) int { return v.count }, 3)

	var ids []int
	for _, v := range got {
		ids = append(ids, v.id)
	}
	assert.Equal(t, []int{2, 1, 3}, ids)
	assert.Equal(t, 1, rows[0].id, "input must not be reordered")
}

func TestTopN_Edges(t *testing.T) {
	rows := []visit{{id: 1, count: 2}, {id: 2, count: 3}}
	rank := func(v visit) int { return v.count }

	assert.Empty(t, TopN(rows, rank, 0))
	assert.Empty(t, TopN([]visit{}, rank, 5))
	assert.Len(t, TopN(rows, rank, 10), 2)
}

func TestRatio(t *testing.T) {
	assert.Equal(t, 5.0, Ratio(50, 10))
	assert.Equal(t, 0.0, Ratio(50, 0))
	assert.Equal(t, 0.0, Ratio(0, 0))
	assert.Equal(t, 0.0, Ratio(-3, 0))
}

func TestPercentOf(t *testing.T) {
	assert.Equal(t, 0.0, PercentOf(12, 0))
	assert.Equal(t, 50.0, PercentOf(5, 10))
	assert.Equal(t, 100.0, PercentOf(10, 10))
	assert.Equal(t, 100.0, PercentOf(11, 10))
	assert.Equal(t, 0.0, PercentOf(-1, 10))

	for max := 1; max <= 50; max++ {
		for v := 0; v <= max; v++ {
			p := PercentOf(float64(v), float64(max))
			assert.GreaterOrEqual(t, p, 0.0)
			assert.LessOrEqual(t, p, 100.0)
		}
	}
	assert.LessOrEqual(t, PercentOf(0.3, 0.1+0.2), 100.0)
}

func TestMonthOverMonthGrowth(t *testing.T) {
	assert.InDelta(t, -50.0, MonthOverMonthGrowth([]int{5, 10}, true), floatTolerance)
	assert.InDelta(t, 100.0, MonthOverMonthGrowth([]int{5, 10}, false), floatTolerance)
	assert.Equal(t, 0.0, MonthOverMonthGrowth([]int{10}, true))
	assert.Equal(t, 0.0, MonthOverMonthGrowth(nil, true))
	assert.Equal(t, 0.0, MonthOverMonthGrowth([]int{5, 0}, true))
	assert.InDelta(t, 25.0, MonthOverMonthGrowth([]int{3, 8, 10}, false), floatTolerance)
	assert.False(t, math.IsInf(MonthOverMonthGrowth([]int{7, 0}, true), 0))
}

func TestMonthRange(t *testing.T) {
	end := time.Date(2024, 2, 29, 15, 0, 0, 0, time.UTC)
	assert.Equal(t, []string{"2023-11", "2023-12", "2024-01", "2024-02"}, MonthRange(end, 4))
	assert.Empty(t, MonthRange(end, 0))
}

func TestSeriesFor(t *testing.T) {
	counts := map[string]int{"2024-01": 2, "2024-03": 1}
	assert.Equal(t, []int{2, 0, 1}, SeriesFor(counts, []string{"2024-01", "2024-02", "2024-03"}))
}

func TestRound(t *testing.T) {
	assert.Equal(t, 33.33, Round(100.0/3.0, 2))
	assert.Equal(t, 5.0, Round(5, 1))
}
