package repository

import (
	"context"
	"fmt"

	"github.com/leadbank/crm-service/internal/report"
	"github.com/lib/pq"
)

// Aggregation queries behind the report engine. Both group loan applications
// by period with the day-of-month cutoff applied to each month, so a
// month-to-date comparison covers the same number of days on both sides.
// NULL array parameters mean "no restriction".
const aggregateByAgentQuery = `
	SELECT l.agent_id::text, u.username, to_char(l.created_at, 'YYYY-MM') AS period,
	       COUNT(*), COALESCE(SUM(l.amount), 0)
	FROM crm.loan_applications l
	JOIN crm.users u ON u.id = l.agent_id
	WHERE to_char(l.created_at, 'YYYY-MM') IN ($1, $2)
	  AND EXTRACT(DAY FROM l.created_at) <= $3
	  AND ($4::text[] IS NULL OR l.segment = ANY($4))
	  AND ($5::bigint[] IS NULL OR l.team_id = ANY($5))
	GROUP BY l.agent_id, u.username, period`

const aggregateBySegmentQuery = `
	SELECT l.segment, l.segment, to_char(l.created_at, 'YYYY-MM') AS period,
	       COUNT(*), COALESCE(SUM(l.amount), 0)
	FROM crm.loan_applications l
	WHERE to_char(l.created_at, 'YYYY-MM') IN ($1, $2)
	  AND EXTRACT(DAY FROM l.created_at) <= $3
	  AND ($4::text[] IS NULL OR l.segment = ANY($4))
	  AND ($5::bigint[] IS NULL OR l.team_id = ANY($5))
	GROUP BY l.segment, period`

// FetchAggregates implements report.AggregateSource over Postgres
func (r *Repository) FetchAggregates(ctx context.Context, q report.AggregateQuery) ([]report.ComparisonRow, error) {
	query := aggregateByAgentQuery
	if q.GroupBy == report.BySegment {
		query = aggregateBySegmentQuery
	}

	var segments interface{}
	if len(q.Segments) > 0 {
		segments = pq.Array(q.Segments)
	}
	var teamIDs interface{}
	if len(q.TeamIDs) > 0 {
		teamIDs = pq.Array(q.TeamIDs)
	}

	rows, err := r.db.QueryContext(ctx, query,
		string(q.Periods.CurrentMonth), string(q.Periods.PreviousMonth), q.Periods.DayCutoff,
		segments, teamIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch aggregates: %w", err)
	}
	defer rows.Close()

	result := []report.ComparisonRow{}
	for rows.Next() {
		var row report.ComparisonRow
		var period string
		if err := rows.Scan(&row.GroupID, &row.GroupName, &period, &row.Count, &row.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan aggregate row: %w", err)
		}
		row.Period = report.PeriodKey(period)
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read aggregates: %w", err)
	}
	return result, nil
}
