package application

import (
	"context"

	"github.com/viralforge/courierdesk/internal/domain"
)

func (s *Service) Report(ctx context.Context, filters domain.ReportFilters) ([]domain.CourierEntry, error) {
	entries, err := s.entries.List(ctx)
	if err != nil {
		return nil, err
	}
	return domain.FilterEntries(entries, filters), nil
}

// ExportReportCSV renders the filtered report as a downloadable CSV and
// returns the dated file name alongside the payload.
func (s *Service) ExportReportCSV(ctx context.Context, filters domain.ReportFilters) (string, string, error) {
	rows, err := s.Report(ctx, filters)
	if err != nil {
		return "", "", err
	}
	return domain.ExportFileName(s.nowFn()), domain.ExportCSV(rows), nil
}
