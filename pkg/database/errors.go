package database

import (
	"strings"

	"github.com/lib/pq"

	"github.com/Prodbylino/shiftflow/pkg/errors"
)

// MapPQError converts a PostgreSQL error to an AppError with meaningful messages.
// Returns nil if the error is not a pq.Error.
func MapPQError(err error) *errors.AppError {
	pqErr, ok := err.(*pq.Error)
	if !ok {
		return nil
	}

	switch pqErr.Code {
	// Check constraint violation (23514)
	case "23514":
		return mapCheckConstraint(pqErr)

	// Unique constraint violation (23505)
	case "23505":
		return errors.Conflict(formatConstraintMessage(pqErr))

	// Foreign key violation (23503)
	case "23503":
		return mapForeignKey(pqErr)

	// Not null violation (23502)
	case "23502":
		col := pqErr.Column
		if col == "" {
			col = "required field"
		}
		return errors.Validation(map[string]string{
			col: "must not be empty",
		})

	default:
		return nil
	}
}

// mapCheckConstraint maps specific CHECK constraint names to user-friendly messages.
func mapCheckConstraint(pqErr *pq.Error) *errors.AppError {
	constraint := pqErr.Constraint

	switch {
	case strings.Contains(constraint, "positive_duration"):
		return errors.Validation(map[string]string{
			"end_time": "shift must end strictly after it starts; overnight shifts need an explicit end_date",
		})

	case strings.Contains(constraint, "end_after_start"):
		return errors.Validation(map[string]string{
			"end_date": "must not precede the start date",
		})

	case strings.Contains(constraint, "rate_nonnegative"):
		return errors.Validation(map[string]string{
			"hourly_rate": "must not be negative",
		})

	default:
		return errors.BadRequest("data validation failed: " + constraint)
	}
}

// mapForeignKey maps foreign key violations. The composite
// (organization_id, user_id) reference makes a cross-tenant attachment
// indistinguishable from a missing organization, which is intended.
func mapForeignKey(pqErr *pq.Error) *errors.AppError {
	if strings.Contains(pqErr.Constraint, "organization") {
		return errors.BadRequest("organization does not exist for this user")
	}
	return errors.BadRequest("referenced record does not exist")
}

// formatConstraintMessage creates a user-friendly message for unique constraint violations.
func formatConstraintMessage(pqErr *pq.Error) string {
	constraint := pqErr.Constraint

	switch {
	case strings.Contains(constraint, "profiles_pkey"):
		return "a profile for this identity already exists"
	case strings.Contains(constraint, "organizations_id_user_id"):
		return "an organization with this identifier already exists for this user"
	default:
		return "a record with these values already exists"
	}
}
