package usecase

import (
	"context"

	"github.com/iho/ledgerbatch/internal/domain"
)

// ReportUseCase answers queries over the operation report.
type ReportUseCase struct {
	reportRepo ReportRepository
}

// NewReportUseCase creates a new ReportUseCase.
func NewReportUseCase(reportRepo ReportRepository) *ReportUseCase {
	return &ReportUseCase{reportRepo: reportRepo}
}

// ListAll returns every report line in the order it was written.
func (uc *ReportUseCase) ListAll(ctx context.Context) ([]string, error) {
	return uc.reportRepo.ListAll(ctx)
}

// ListByDate returns the report lines timestamped between startDate 00:00:00
// and endDate 23:59:59 inclusive. Dates use the yyyy-MM-dd form; a malformed
// date yields an error wrapping domain.ErrInvalidDate.
func (uc *ReportUseCase) ListByDate(ctx context.Context, startDate, endDate string) ([]string, error) {
	start, end, err := domain.DayBounds(startDate, endDate)
	if err != nil {
		return nil, err
	}

	return uc.reportRepo.ListBetween(ctx, start, end)
}
