package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/Prodbylino/shiftflow/pkg/database"
	"github.com/Prodbylino/shiftflow/pkg/errors"
)

// Organization is a workplace owned by exactly one profile
type Organization struct {
	ID         string    `db:"id" json:"id"`
	UserID     string    `db:"user_id" json:"user_id"`
	Name       string    `db:"name" json:"name"`
	Color      string    `db:"color" json:"color"`
	HourlyRate float64   `db:"hourly_rate" json:"hourly_rate"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

// OrganizationRepository handles organization persistence.
// Every statement carries the owner predicate; a row belonging to
// another owner behaves exactly like a row that does not exist.
type OrganizationRepository struct {
	db *database.DB
}

// NewOrganizationRepository creates a new organization repository
func NewOrganizationRepository(db *database.DB) *OrganizationRepository {
	return &OrganizationRepository{db: db}
}

// Create creates an organization owned by ownerID
func (r *OrganizationRepository) Create(ctx context.Context, ownerID string, org *Organization) error {
	if org.ID == "" {
		org.ID = uuid.New().String()
	}
	if org.Color == "" {
		org.Color = "#4F46E5"
	}
	org.UserID = ownerID

	query := `
		INSERT INTO organizations (id, user_id, name, color, hourly_rate)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRowxContext(ctx, query,
		org.ID, ownerID, org.Name, org.Color, org.HourlyRate,
	).Scan(&org.CreatedAt, &org.UpdatedAt)
	if err != nil {
		if appErr := database.MapPQError(err); appErr != nil {
			return appErr
		}
		return err
	}

	return nil
}

// GetByID returns the organization if it exists and belongs to ownerID
func (r *OrganizationRepository) GetByID(ctx context.Context, ownerID, id string) (*Organization, error) {
	var org Organization

	query := `
		SELECT id, user_id, name, color, hourly_rate, created_at, updated_at
		FROM organizations
		WHERE id = $1 AND user_id = $2
	`
	err := r.db.GetContext(ctx, &org, query, id, ownerID)
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("organization")
	}
	if err != nil {
		return nil, err
	}

	return &org, nil
}

// List returns all organizations owned by ownerID
func (r *OrganizationRepository) List(ctx context.Context, ownerID string) ([]*Organization, error) {
	var orgs []*Organization

	query := `
		SELECT id, user_id, name, color, hourly_rate, created_at, updated_at
		FROM organizations
		WHERE user_id = $1
		ORDER BY name
	`
	if err := r.db.SelectContext(ctx, &orgs, query, ownerID); err != nil {
		return nil, err
	}

	return orgs, nil
}

// Update updates an organization owned by ownerID
func (r *OrganizationRepository) Update(ctx context.Context, ownerID string, org *Organization) error {
	query := `
		UPDATE organizations
		SET name = $3, color = $4, hourly_rate = $5, updated_at = NOW()
		WHERE id = $1 AND user_id = $2
	`
	result, err := r.db.ExecContext(ctx, query,
		org.ID, ownerID, org.Name, org.Color, org.HourlyRate,
	)
	if err != nil {
		if appErr := database.MapPQError(err); appErr != nil {
			return appErr
		}
		return err
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		return errors.NotFound("organization")
	}

	return nil
}

// Delete deletes an organization owned by ownerID.
// Its shifts are removed by ON DELETE CASCADE.
func (r *OrganizationRepository) Delete(ctx context.Context, ownerID, id string) error {
	query := `DELETE FROM organizations WHERE id = $1 AND user_id = $2`
	result, err := r.db.ExecContext(ctx, query, id, ownerID)
	if err != nil {
		return err
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		return errors.NotFound("organization")
	}

	return nil
}
