package service

import (
	"context"

	"github.com/Prodbylino/shiftflow/internal/schedule/domain"
	"github.com/Prodbylino/shiftflow/internal/schedule/repository"
	"github.com/Prodbylino/shiftflow/pkg/caller"
	"github.com/Prodbylino/shiftflow/pkg/logger"
)

// AnalyticsService runs the three reporting operations. Each one
// authorizes the caller and validates its window before any query
// executes: anonymous callers are rejected, authenticated callers may
// only target themselves, the privileged service caller must name a
// target owner.
type AnalyticsService struct {
	analyticsRepo *repository.AnalyticsRepository
	logger        *logger.Logger
}

// NewAnalyticsService creates a new analytics service
func NewAnalyticsService(analyticsRepo *repository.AnalyticsRepository, log *logger.Logger) *AnalyticsService {
	return &AnalyticsService{
		analyticsRepo: analyticsRepo,
		logger:        log,
	}
}

// MonthlySummary aggregates shift counts and hours per organization
// for one calendar month
func (s *AnalyticsService) MonthlySummary(ctx context.Context, targetOwner string, year, month int) ([]*repository.OrganizationSummary, error) {
	owner, err := caller.FromContext(ctx).ResolveOwner(targetOwner)
	if err != nil {
		return nil, err
	}

	window, err := domain.MonthWindow(year, month)
	if err != nil {
		return nil, err
	}

	return s.analyticsRepo.Summarize(ctx, owner, window)
}

// FinancialYearSummary aggregates shift counts and hours per
// organization for the financial year starting July 1 of fyStartYear
func (s *AnalyticsService) FinancialYearSummary(ctx context.Context, targetOwner string, fyStartYear int) ([]*repository.OrganizationSummary, error) {
	owner, err := caller.FromContext(ctx).ResolveOwner(targetOwner)
	if err != nil {
		return nil, err
	}

	window, err := domain.FinancialYearWindow(fyStartYear)
	if err != nil {
		return nil, err
	}

	return s.analyticsRepo.Summarize(ctx, owner, window)
}

// ShiftsByFinancialYear lists individual shifts in the financial year,
// chronologically, annotated with organization and hours worked
func (s *AnalyticsService) ShiftsByFinancialYear(ctx context.Context, targetOwner string, fyStartYear int) ([]*repository.AnnotatedShift, error) {
	owner, err := caller.FromContext(ctx).ResolveOwner(targetOwner)
	if err != nil {
		return nil, err
	}

	window, err := domain.FinancialYearWindow(fyStartYear)
	if err != nil {
		return nil, err
	}

	return s.analyticsRepo.ListShifts(ctx, owner, window)
}
