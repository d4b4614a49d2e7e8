package repository

import (
	"context"
	"fmt"

	"github.com/Prodbylino/shiftflow/pkg/database"
)

// PreflightViolations holds counts of rows that would break the
// hardened integrity constraints
type PreflightViolations struct {
	CrossTenantShifts int64 `db:"cross_tenant_shifts"`
	NonPositiveShifts int64 `db:"non_positive_shifts"`
}

// Any reports whether any violations were found
func (v PreflightViolations) Any() bool {
	return v.CrossTenantShifts > 0 || v.NonPositiveShifts > 0
}

// Error describes the violations with a remediation hint
func (v PreflightViolations) Error() string {
	return fmt.Sprintf(
		"cannot apply integrity constraints: %d shift(s) reference another owner's organization, %d shift(s) have non-positive duration; repair or remove these rows before migrating",
		v.CrossTenantShifts, v.NonPositiveShifts,
	)
}

// PreflightRepository checks existing data against the constraints the
// hardening migration is about to introduce
type PreflightRepository struct {
	db *database.DB
}

// NewPreflightRepository creates a new preflight repository
func NewPreflightRepository(db *database.DB) *PreflightRepository {
	return &PreflightRepository{db: db}
}

// Check counts rows violating the hardened constraints. The same
// counts guard the migration itself; running them here gives the
// operator the numbers before anything is applied.
func (r *PreflightRepository) Check(ctx context.Context) (*PreflightViolations, error) {
	var exists bool
	if err := r.db.GetContext(ctx, &exists,
		`SELECT EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name = 'shifts')`,
	); err != nil {
		return nil, err
	}
	if !exists {
		// Fresh database: nothing to violate.
		return &PreflightViolations{}, nil
	}

	query := `
		SELECT
			(SELECT COUNT(*) FROM shifts s
			 WHERE NOT EXISTS (
				SELECT 1 FROM organizations o
				WHERE o.id = s.organization_id AND o.user_id = s.user_id
			 )) AS cross_tenant_shifts,
			(SELECT COUNT(*) FROM shifts
			 WHERE (COALESCE(end_date, date) + end_time) <= (date + start_time)
			) AS non_positive_shifts
	`

	var v PreflightViolations
	if err := r.db.GetContext(ctx, &v, query); err != nil {
		return nil, err
	}

	return &v, nil
}
