package service

import (
	"context"
	"time"

	"github.com/leadbank/crm-service/internal/report"
)

// MonthlyComparison runs the per-agent month-over-month report
func (s *Service) MonthlyComparison(ctx context.Context, anchor string, segments []string, teamIDs []int64) ([]report.ComparisonResult, error) {
	return s.engine.MonthlyComparison(ctx, anchor, time.Now(), segments, teamIDs)
}

// SegmentComparison runs the per-segment month-over-month report
func (s *Service) SegmentComparison(ctx context.Context, anchor string) ([]report.ComparisonResult, error) {
	return s.engine.SegmentComparison(ctx, anchor, time.Now())
}

// TrendsSummary runs the collapsed overall month-over-month report
func (s *Service) TrendsSummary(ctx context.Context, anchor string) (report.ComparisonResult, error) {
	return s.engine.TrendsSummary(ctx, anchor, time.Now())
}
