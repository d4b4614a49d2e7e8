package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/Prodbylino/shiftflow/pkg/database"
	"github.com/Prodbylino/shiftflow/pkg/errors"
)

// Profile is the schedule-side record for an external identity
type Profile struct {
	ID        string    `db:"id" json:"id"`
	Email     string    `db:"email" json:"email"`
	FullName  *string   `db:"full_name" json:"full_name,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// ProfileRepository handles profile persistence
type ProfileRepository struct {
	db *database.DB
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db *database.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// Get returns the profile owned by ownerID
func (r *ProfileRepository) Get(ctx context.Context, ownerID string) (*Profile, error) {
	var profile Profile

	query := `
		SELECT id, email, full_name, created_at, updated_at
		FROM profiles
		WHERE id = $1
	`
	err := r.db.GetContext(ctx, &profile, query, ownerID)
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("profile")
	}
	if err != nil {
		return nil, err
	}

	return &profile, nil
}

// Update updates the profile's contact fields. The owner guard doubles
// as the row selector; zero rows means not found or not permitted.
func (r *ProfileRepository) Update(ctx context.Context, ownerID string, email string, fullName *string) (*Profile, error) {
	var profile Profile

	query := `
		UPDATE profiles
		SET email = $2, full_name = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING id, email, full_name, created_at, updated_at
	`
	err := r.db.GetContext(ctx, &profile, query, ownerID, email, fullName)
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("profile")
	}
	if err != nil {
		if appErr := database.MapPQError(err); appErr != nil {
			return nil, appErr
		}
		return nil, err
	}

	return &profile, nil
}

// Provision creates the profile for a newly created identity. Delivery
// can repeat, so this is an upsert: email always reflects the latest
// delivery, full_name is only filled when previously empty, and
// updated_at is refreshed either way.
func (r *ProfileRepository) Provision(ctx context.Context, userID, email, fullName string) error {
	query := `
		INSERT INTO profiles (id, email, full_name)
		VALUES ($1, $2, NULLIF($3, ''))
		ON CONFLICT (id) DO UPDATE SET
			email = EXCLUDED.email,
			full_name = COALESCE(NULLIF(profiles.full_name, ''), EXCLUDED.full_name),
			updated_at = NOW()
	`
	_, err := r.db.ExecContext(ctx, query, userID, email, fullName)
	if err != nil {
		if appErr := database.MapPQError(err); appErr != nil {
			return appErr
		}
		return err
	}

	return nil
}

// RefreshEmail updates the email after an upstream identity change
func (r *ProfileRepository) RefreshEmail(ctx context.Context, userID, email string) error {
	query := `UPDATE profiles SET email = $2, updated_at = NOW() WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, userID, email)
	if err != nil {
		return err
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		return errors.NotFound("profile")
	}

	return nil
}

// Delete removes the profile after the upstream identity is gone.
// Organizations and shifts go with it via ON DELETE CASCADE.
func (r *ProfileRepository) Delete(ctx context.Context, userID string) error {
	query := `DELETE FROM profiles WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, userID)
	if err != nil {
		return err
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		return errors.NotFound("profile")
	}

	return nil
}
