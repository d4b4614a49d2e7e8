package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Prodbylino/shiftflow/internal/schedule/domain"
	"github.com/Prodbylino/shiftflow/pkg/database"
	"github.com/Prodbylino/shiftflow/pkg/errors"
)

// Shift is a scheduled work interval attached to an organization.
// EndDate is nil for same-day shifts; a shift crossing midnight must
// carry an explicit EndDate.
type Shift struct {
	ID             string    `db:"id" json:"id"`
	UserID         string    `db:"user_id" json:"user_id"`
	OrganizationID string    `db:"organization_id" json:"organization_id"`
	Title          string    `db:"title" json:"title"`
	Date           string    `db:"date" json:"date"`                   // DATE as YYYY-MM-DD
	EndDate        *string   `db:"end_date" json:"end_date,omitempty"` // DATE as YYYY-MM-DD
	StartTime      string    `db:"start_time" json:"start_time"`       // TIME as HH:MM:SS
	EndTime        string    `db:"end_time" json:"end_time"`           // TIME as HH:MM:SS
	Notes          *string   `db:"notes" json:"notes,omitempty"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

// Interval returns the shift's time interval for validation and arithmetic
func (s *Shift) Interval() domain.Interval {
	endDate := ""
	if s.EndDate != nil {
		endDate = *s.EndDate
	}
	return domain.Interval{
		Date:      s.Date,
		EndDate:   endDate,
		StartTime: s.StartTime,
		EndTime:   s.EndTime,
	}
}

// ShiftListParams holds filters for listing shifts
type ShiftListParams struct {
	OrganizationID *string
	From           *string // inclusive date YYYY-MM-DD
	To             *string // exclusive date YYYY-MM-DD
	Page           int
	PerPage        int
}

// ShiftRepository handles shift persistence with owner-guarded statements
type ShiftRepository struct {
	db *database.DB
}

// NewShiftRepository creates a new shift repository
func NewShiftRepository(db *database.DB) *ShiftRepository {
	return &ShiftRepository{db: db}
}

const shiftColumns = `
	id, user_id, organization_id, title,
	date::text AS date, end_date::text AS end_date,
	start_time::text AS start_time, end_time::text AS end_time,
	notes, created_at, updated_at
`

// Create creates a shift owned by ownerID. The interval is validated
// before the insert; the database constraints back the same rules.
func (r *ShiftRepository) Create(ctx context.Context, ownerID string, shift *Shift) error {
	if err := shift.Interval().Validate(); err != nil {
		return err
	}

	if shift.ID == "" {
		shift.ID = uuid.New().String()
	}
	shift.UserID = ownerID

	query := `
		INSERT INTO shifts (id, user_id, organization_id, title, date, end_date, start_time, end_time, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRowxContext(ctx, query,
		shift.ID, ownerID, shift.OrganizationID, shift.Title,
		shift.Date, shift.EndDate, shift.StartTime, shift.EndTime, shift.Notes,
	).Scan(&shift.CreatedAt, &shift.UpdatedAt)
	if err != nil {
		if appErr := database.MapPQError(err); appErr != nil {
			return appErr
		}
		return err
	}

	return nil
}

// GetByID returns the shift if it exists and belongs to ownerID
func (r *ShiftRepository) GetByID(ctx context.Context, ownerID, id string) (*Shift, error) {
	var shift Shift

	query := `SELECT ` + shiftColumns + ` FROM shifts WHERE id = $1 AND user_id = $2`
	err := r.db.GetContext(ctx, &shift, query, id, ownerID)
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("shift")
	}
	if err != nil {
		return nil, err
	}

	return &shift, nil
}

// List returns shifts owned by ownerID matching the given filters,
// chronologically ordered, along with the unpaginated total.
func (r *ShiftRepository) List(ctx context.Context, ownerID string, params ShiftListParams) ([]*Shift, int64, error) {
	whereClause := "WHERE user_id = $1"
	args := []interface{}{ownerID}
	argNum := 2

	if params.OrganizationID != nil {
		whereClause += fmt.Sprintf(" AND organization_id = $%d", argNum)
		args = append(args, *params.OrganizationID)
		argNum++
	}
	if params.From != nil {
		whereClause += fmt.Sprintf(" AND date >= $%d", argNum)
		args = append(args, *params.From)
		argNum++
	}
	if params.To != nil {
		whereClause += fmt.Sprintf(" AND date < $%d", argNum)
		args = append(args, *params.To)
		argNum++
	}

	var total int64
	countQuery := "SELECT COUNT(*) FROM shifts " + whereClause
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, err
	}

	if params.PerPage <= 0 {
		params.PerPage = 50
	}
	if params.Page <= 0 {
		params.Page = 1
	}
	offset := (params.Page - 1) * params.PerPage

	query := `SELECT ` + shiftColumns + ` FROM shifts ` + whereClause +
		fmt.Sprintf(" ORDER BY date, start_time LIMIT $%d OFFSET $%d", argNum, argNum+1)
	args = append(args, params.PerPage, offset)

	var shifts []*Shift
	if err := r.db.SelectContext(ctx, &shifts, query, args...); err != nil {
		return nil, 0, err
	}

	return shifts, total, nil
}

// Update updates a shift owned by ownerID
func (r *ShiftRepository) Update(ctx context.Context, ownerID string, shift *Shift) error {
	if err := shift.Interval().Validate(); err != nil {
		return err
	}

	query := `
		UPDATE shifts
		SET organization_id = $3, title = $4, date = $5, end_date = $6,
		    start_time = $7, end_time = $8, notes = $9, updated_at = NOW()
		WHERE id = $1 AND user_id = $2
	`
	result, err := r.db.ExecContext(ctx, query,
		shift.ID, ownerID, shift.OrganizationID, shift.Title,
		shift.Date, shift.EndDate, shift.StartTime, shift.EndTime, shift.Notes,
	)
	if err != nil {
		if appErr := database.MapPQError(err); appErr != nil {
			return appErr
		}
		return err
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		return errors.NotFound("shift")
	}

	return nil
}

// Delete deletes a shift owned by ownerID
func (r *ShiftRepository) Delete(ctx context.Context, ownerID, id string) error {
	query := `DELETE FROM shifts WHERE id = $1 AND user_id = $2`
	result, err := r.db.ExecContext(ctx, query, id, ownerID)
	if err != nil {
		return err
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		return errors.NotFound("shift")
	}

	return nil
}
