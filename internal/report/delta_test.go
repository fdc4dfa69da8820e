package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testPeriods = Periods{CurrentMonth: "2025-07", PreviousMonth: "2025-06", DayCutoff: 15}

func TestComputeDeltas(t *testing.T) {
	t.Run("group present in both periods", func(t *testing.T) {
		rows := []ComparisonRow{
			{GroupID: "7", GroupName: "Alice", Period: "2025-07", Count: 10, Amount: 50000},
			{GroupID: "7", GroupName: "Alice", Period: "2025-06", Count: 8, Amount: 40000},
		}
		results := ComputeDeltas(testPeriods, rows)
		require.Len(t, results, 1)

		res := results[0]
		assert.Equal(t, "7", res.GroupID)
		assert.Equal(t, int64(2), res.CountChange)
		assert.Equal(t, float64(10000), res.AmountChange)
		assert.Equal(t, float64(25), res.CountChangePercent)
		assert.Equal(t, float64(25), res.AmountChangePercent)
	})

	t.Run("newly active group gets zero baseline", func(t *testing.T) {
		rows := []ComparisonRow{
			{GroupID: "x", GroupName: "X", Period: "2025-07", Count: 5, Amount: 25000},
		}
		results := ComputeDeltas(testPeriods, rows)
		require.Len(t, results, 1)

		res := results[0]
		assert.Equal(t, int64(0), res.PreviousCount)
		assert.Equal(t, float64(0), res.PreviousAmount)
		assert.Equal(t, int64(5), res.CountChange)
		assert.Equal(t, float64(25000), res.AmountChange)
		assert.Equal(t, float64(100), res.CountChangePercent)
		assert.Equal(t, float64(100), res.AmountChangePercent)
	})

	t.Run("inactive group still emits a row", func(t *testing.T) {
		rows := []ComparisonRow{
			{GroupID: "y", GroupName: "Y", Period: "2025-06", Count: 4, Amount: 20000},
		}
		results := ComputeDeltas(testPeriods, rows)
		require.Len(t, results, 1)

		res := results[0]
		assert.Equal(t, int64(0), res.CurrentCount)
		assert.Equal(t, int64(-4), res.CountChange)
		assert.Equal(t, float64(-20000), res.AmountChange)
		assert.Equal(t, float64(-100), res.CountChangePercent)
		assert.Equal(t, float64(-100), res.AmountChangePercent)
	})

	t.Run("zero to zero is no change", func(t *testing.T) {
		rows := []ComparisonRow{
			{GroupID: "z", Period: "2025-07", Count: 0, Amount: 0},
			{GroupID: "z", Period: "2025-06", Count: 0, Amount: 0},
		}
		results := ComputeDeltas(testPeriods, rows)
		require.Len(t, results, 1)
		assert.Equal(t, float64(0), results[0].CountChangePercent)
		assert.Equal(t, float64(0), results[0].AmountChangePercent)
	})

	t.Run("grouping is by id, not display name", func(t *testing.T) {
		rows := []ComparisonRow{
			{GroupID: "1", GroupName: "John Smith", Period: "2025-07", Count: 3, Amount: 100},
			{GroupID: "2", GroupName: "John Smith", Period: "2025-07", Count: 9, Amount: 900},
		}
		results := ComputeDeltas(testPeriods, rows)
		assert.Len(t, results, 2)
	})

	t.Run("input is not mutated and calls are idempotent", func(t *testing.T) {
		rows := []ComparisonRow{
			{GroupID: "7", GroupName: "Alice", Period: "2025-07", Count: 10, Amount: 50000},
			{GroupID: "7", GroupName: "Alice", Period: "2025-06", Count: 8, Amount: 40000},
		}
		first := ComputeDeltas(testPeriods, rows)
		second := ComputeDeltas(testPeriods, rows)
		assert.Equal(t, first, second)
		assert.Equal(t, int64(10), rows[0].Count)
		assert.Equal(t, PeriodKey("2025-06"), rows[1].Period)
	})

	t.Run("empty input yields empty output", func(t *testing.T) {
		results := ComputeDeltas(testPeriods, nil)
		assert.Empty(t, results)
	})
}
