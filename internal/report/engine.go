package report

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

// Engine runs the three comparison reports on top of an AggregateSource.
// It is stateless; every call resolves its own periods from the request.
type Engine struct {
	source AggregateSource
	log    *logrus.Logger
}

// NewEngine initializes a new report engine
func NewEngine(source AggregateSource, log *logrus.Logger) *Engine {
	return &Engine{source: source, log: log}
}

// MonthlyComparison produces per-agent current-vs-previous month results,
// optionally restricted to segments and teams
func (e *Engine) MonthlyComparison(ctx context.Context, anchor string, now time.Time, segments []string, teamIDs []int64) ([]ComparisonResult, error) {
	periods := ResolvePeriods(anchor, now)
	rows, err := e.fetch(ctx, "monthly-comparison", AggregateQuery{
		Periods:  periods,
		GroupBy:  ByAgent,
		Segments: segments,
		TeamIDs:  teamIDs,
	})
	if err != nil {
		return nil, err
	}
	return ComputeDeltas(periods, rows), nil
}

// SegmentComparison produces per-segment current-vs-previous month results
func (e *Engine) SegmentComparison(ctx context.Context, anchor string, now time.Time) ([]ComparisonResult, error) {
	periods := ResolvePeriods(anchor, now)
	rows, err := e.fetch(ctx, "segment-comparison", AggregateQuery{
		Periods: periods,
		GroupBy: BySegment,
	})
	if err != nil {
		return nil, err
	}
	return ComputeDeltas(periods, rows), nil
}

// TrendsSummary collapses all activity into a single overall row per period
// and applies the same delta math as the grouped reports
func (e *Engine) TrendsSummary(ctx context.Context, anchor string, now time.Time) (ComparisonResult, error) {
	periods := ResolvePeriods(anchor, now)
	rows, err := e.fetch(ctx, "trends-summary", AggregateQuery{
		Periods: periods,
		GroupBy: BySegment,
	})
	if err != nil {
		return ComparisonResult{}, err
	}

	totals := collapse(periods, rows)
	results := ComputeDeltas(periods, totals)
	if len(results) == 0 {
		return ComparisonResult{GroupID: "total", GroupName: "total"}, nil
	}
	return results[0], nil
}

func (e *Engine) fetch(ctx context.Context, variant string, q AggregateQuery) ([]ComparisonRow, error) {
	rows, err := e.source.FetchAggregates(ctx, q)
	if err != nil {
		e.log.WithFields(logrus.Fields{
			"report":         variant,
			"current_month":  q.Periods.CurrentMonth,
			"previous_month": q.Periods.PreviousMonth,
		}).Errorf("aggregation fetch failed: %v", err)
		return nil, fmt.Errorf("failed to fetch aggregates: %w", err)
	}
	return rows, nil
}

// collapse sums all groups into one "total" row per period
func collapse(periods Periods, rows []ComparisonRow) []ComparisonRow {
	byPeriod := map[PeriodKey]*ComparisonRow{}
	for _, row := range rows {
		total, ok := byPeriod[row.Period]
		if !ok {
			total = &ComparisonRow{GroupID: "total", GroupName: "total", Period: row.Period}
			byPeriod[row.Period] = total
		}
		total.Count += row.Count
		total.Amount += row.Amount
	}

	// Stable order: current first, then previous
	out := make([]ComparisonRow, 0, 2)
	for _, key := range []PeriodKey{periods.CurrentMonth, periods.PreviousMonth} {
		if total, ok := byPeriod[key]; ok {
			out = append(out, *total)
		}
	}
	return out
}
