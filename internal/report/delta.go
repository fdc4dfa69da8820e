package report

import (
	"context"
	"math"
)

// Dimension selects how aggregate rows are grouped
type Dimension string

const (
	ByAgent   Dimension = "agent"
	BySegment Dimension = "segment"
)

// AggregateQuery describes one aggregation request to the data source
type AggregateQuery struct {
	Periods  Periods
	GroupBy  Dimension
	Segments []string
	TeamIDs  []int64
}

// ComparisonRow is one pre-aggregated row per (grouping key, period)
type ComparisonRow struct {
	GroupID   string
	GroupName string
	Period    PeriodKey
	Count     int64
	Amount    float64
}

// AggregateSource supplies per-period aggregates; the repository implements
// it against Postgres. Zero rows is a valid result, not an error.
type AggregateSource interface {
	FetchAggregates(ctx context.Context, q AggregateQuery) ([]ComparisonRow, error)
}

// ComparisonResult carries both periods' raw metrics for one grouping key
// plus the derived absolute and percentage changes
type ComparisonResult struct {
	GroupID             string  `json:"group_id"`
	GroupName           string  `json:"group_name"`
	CurrentCount        int64   `json:"current_count"`
	CurrentAmount       float64 `json:"current_amount"`
	PreviousCount       int64   `json:"previous_count"`
	PreviousAmount      float64 `json:"previous_amount"`
	CountChange         int64   `json:"count_change"`
	AmountChange        float64 `json:"amount_change"`
	CountChangePercent  float64 `json:"count_change_percent"`
	AmountChangePercent float64 `json:"amount_change_percent"`
}

// ComputeDeltas turns matched current/previous rows into one result per
// grouping key. A key active in only one period still yields a result, with
// the missing period's metrics taken as zero. Grouping is by GroupID, never
// by display name. The input slice is not modified, and output order follows
// first appearance of each key in the input.
func ComputeDeltas(periods Periods, rows []ComparisonRow) []ComparisonResult {
	type pair struct {
		current  *ComparisonRow
		previous *ComparisonRow
		name     string
	}

	order := make([]string, 0, len(rows))
	groups := make(map[string]*pair, len(rows))

	for i := range rows {
		row := rows[i]
		g, ok := groups[row.GroupID]
		if !ok {
			g = &pair{name: row.GroupName}
			groups[row.GroupID] = g
			order = append(order, row.GroupID)
		}
		switch row.Period {
		case periods.CurrentMonth:
			g.current = &row
		case periods.PreviousMonth:
			g.previous = &row
		}
	}

	results := make([]ComparisonResult, 0, len(order))
	for _, id := range order {
		g := groups[id]
		res := ComparisonResult{GroupID: id, GroupName: g.name}
		if g.current != nil {
			res.CurrentCount = g.current.Count
			res.CurrentAmount = g.current.Amount
		}
		if g.previous != nil {
			res.PreviousCount = g.previous.Count
			res.PreviousAmount = g.previous.Amount
		}
		res.CountChange = res.CurrentCount - res.PreviousCount
		res.AmountChange = res.CurrentAmount - res.PreviousAmount
		res.CountChangePercent = percentChange(float64(res.CurrentCount), float64(res.PreviousCount))
		res.AmountChangePercent = percentChange(res.CurrentAmount, res.PreviousAmount)
		results = append(results, res)
	}
	return results
}

// percentChange applies one convention everywhere: a zero baseline with a
// non-zero current value reports 100 * sign(current) instead of an undefined
// spike, and zero-to-zero reports no change.
func percentChange(current, previous float64) float64 {
	if previous == 0 {
		if current == 0 {
			return 0
		}
		if current > 0 {
			return 100
		}
		return -100
	}
	return (current - previous) / math.Abs(previous) * 100
}
