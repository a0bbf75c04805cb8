package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jekabolt/wedding-rsvp/internal/dependency"
	"github.com/jekabolt/wedding-rsvp/internal/entity"
	gerr "github.com/jekabolt/wedding-rsvp/internal/errors"
)

const rsvpColumns = `id, email, name, number_of_guests, attending, submitted_at, last_checked_at, created_at, updated_at`

type rsvpStore struct {
	*SQLStore
}

// RSVPs returns an object implementing RSVPs interface
func (ms *SQLStore) RSVPs() dependency.RSVPs {
	return &rsvpStore{
		SQLStore: ms,
	}
}

// rsvpRow mirrors the rsvp table. A NULL name marks a lookup-only placeholder.
type rsvpRow struct {
	ID             string         `db:"id"`
	Email          string         `db:"email"`
	Name           sql.NullString `db:"name"`
	NumberOfGuests sql.NullInt32  `db:"number_of_guests"`
	Attending      sql.NullBool   `db:"attending"`
	SubmittedAt    sql.NullTime   `db:"submitted_at"`
	LastCheckedAt  sql.NullTime   `db:"last_checked_at"`
	CreatedAt      time.Time      `db:"created_at"`
	UpdatedAt      sql.NullTime   `db:"updated_at"`
}

func nullTimePtr(nt sql.NullTime) *time.Time {
	if !nt.Valid {
		return nil
	}
	t := nt.Time.UTC()
	return &t
}

func (r *rsvpRow) toEntity() *entity.RSVP {
	rsvp := &entity.RSVP{
		ID:            r.ID,
		Kind:          entity.RSVPKindPlaceholder,
		Email:         r.Email,
		LastCheckedAt: nullTimePtr(r.LastCheckedAt),
		CreatedAt:     r.CreatedAt.UTC(),
		UpdatedAt:     nullTimePtr(r.UpdatedAt),
	}
	if r.Name.Valid {
		rsvp.Kind = entity.RSVPKindSubmitted
		rsvp.Submission = &entity.Submission{
			Name:           r.Name.String,
			NumberOfGuests: int(r.NumberOfGuests.Int32),
			Attending:      r.Attending.Bool,
			SubmittedAt:    r.SubmittedAt.Time.UTC(),
		}
	}
	return rsvp
}

func submissionParams(si *entity.SubmissionInsert) map[string]any {
	sub := si.Submission()
	return map[string]any{
		"email":          si.Email,
		"name":           sub.Name,
		"numberOfGuests": sub.NumberOfGuests,
		"attending":      sub.Attending,
		"submittedAt":    sub.SubmittedAt.UTC(),
	}
}

func (rs *rsvpStore) GetRSVPByEmail(ctx context.Context, email string) (*entity.RSVP, error) {
	query := `SELECT ` + rsvpColumns + ` FROM rsvp WHERE email = :email`
	row, err := QueryNamedOne[rsvpRow](ctx, rs.DB(), query, map[string]any{
		"email": email,
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, gerr.ErrRSVPNotFound
		}
		return nil, fmt.Errorf("failed to get rsvp by email: %w", err)
	}
	return row.toEntity(), nil
}

func (rs *rsvpStore) AddPlaceholder(ctx context.Context, email string, checkedAt time.Time) (*entity.RSVP, error) {
	row := rsvpRow{
		ID:            uuid.NewString(),
		Email:         email,
		LastCheckedAt: sql.NullTime{Time: checkedAt.UTC(), Valid: true},
		CreatedAt:     rs.Now(),
	}
	_, err := ExecNamed(ctx, rs.DB(), `INSERT INTO rsvp (id, email, last_checked_at, created_at)
		VALUES (:id, :email, :lastCheckedAt, :createdAt)`, map[string]any{
		"id":            row.ID,
		"email":         row.Email,
		"lastCheckedAt": row.LastCheckedAt.Time,
		"createdAt":     row.CreatedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to add rsvp placeholder: %w", err)
	}
	return row.toEntity(), nil
}

func (rs *rsvpStore) TouchLastChecked(ctx context.Context, email string, checkedAt time.Time) error {
	_, err := ExecNamed(ctx, rs.DB(), `UPDATE rsvp SET last_checked_at = :lastCheckedAt WHERE email = :email`, map[string]any{
		"email":         email,
		"lastCheckedAt": checkedAt.UTC(),
	})
	if err != nil {
		return fmt.Errorf("failed to update rsvp last checked: %w", err)
	}
	return nil
}

func (rs *rsvpStore) AddSubmission(ctx context.Context, si *entity.SubmissionInsert) (*entity.RSVP, error) {
	if err := si.ValidateSubmissionInsert(); err != nil {
		return nil, fmt.Errorf("invalid submission: %w", err)
	}
	params := submissionParams(si)
	params["id"] = uuid.NewString()
	params["createdAt"] = rs.Now()

	_, err := ExecNamed(ctx, rs.DB(), `INSERT INTO rsvp (id, email, name, number_of_guests, attending, submitted_at, created_at)
		VALUES (:id, :email, :name, :numberOfGuests, :attending, :submittedAt, :createdAt)`, params)
	if err != nil {
		return nil, fmt.Errorf("failed to add rsvp: %w", err)
	}
	return rs.GetRSVPByEmail(ctx, si.Email)
}

func (rs *rsvpStore) OverwriteSubmission(ctx context.Context, si *entity.SubmissionInsert, updatedAt time.Time) (*entity.RSVP, error) {
	if err := si.ValidateSubmissionInsert(); err != nil {
		return nil, fmt.Errorf("invalid submission: %w", err)
	}
	params := submissionParams(si)
	params["updatedAt"] = updatedAt.UTC()

	_, err := ExecNamed(ctx, rs.DB(), `UPDATE rsvp SET
			name = :name,
			number_of_guests = :numberOfGuests,
			attending = :attending,
			submitted_at = :submittedAt,
			updated_at = :updatedAt
		WHERE email = :email`, params)
	if err != nil {
		return nil, fmt.Errorf("failed to update rsvp: %w", err)
	}
	return rs.GetRSVPByEmail(ctx, si.Email)
}

func (rs *rsvpStore) ListRSVPs(ctx context.Context) ([]entity.RSVP, error) {
	// IS NULL ordering keeps nulls last on every dialect
	query := `SELECT ` + rsvpColumns + ` FROM rsvp
		ORDER BY submitted_at IS NULL, submitted_at DESC, last_checked_at IS NULL, last_checked_at DESC, email`
	rows, err := QueryListNamed[rsvpRow](ctx, rs.DB(), query, map[string]any{})
	if err != nil {
		return nil, fmt.Errorf("failed to list rsvps: %w", err)
	}
	rsvps := make([]entity.RSVP, 0, len(rows))
	for _, r := range rows {
		rsvps = append(rsvps, *r.toEntity())
	}
	return rsvps, nil
}
