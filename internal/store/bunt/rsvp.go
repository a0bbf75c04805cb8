package bunt

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jekabolt/wedding-rsvp/internal/dependency"
	"github.com/jekabolt/wedding-rsvp/internal/entity"
	gerr "github.com/jekabolt/wedding-rsvp/internal/errors"
	"github.com/tidwall/buntdb"
)

const keyPrefix = "rsvp:"

func rsvpKey(email string) string {
	return keyPrefix + email
}

// record is the JSON document stored per email.
type record struct {
	ID            string             `json:"id"`
	Kind          entity.RSVPKind    `json:"kind"`
	Email         string             `json:"email"`
	Submission    *entity.Submission `json:"submission,omitempty"`
	LastCheckedAt *time.Time         `json:"last_checked_at,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     *time.Time         `json:"updated_at,omitempty"`
}

func (r *record) String() string {
	bs, _ := json.Marshal(r)
	return string(bs)
}

func recordFromString(s string) (*record, error) {
	r := &record{}
	if err := json.Unmarshal([]byte(s), r); err != nil {
		return nil, fmt.Errorf("can't decode rsvp record: %w", err)
	}
	return r, nil
}

func (r *record) toEntity() *entity.RSVP {
	return &entity.RSVP{
		ID:            r.ID,
		Kind:          r.Kind,
		Email:         r.Email,
		Submission:    r.Submission,
		LastCheckedAt: r.LastCheckedAt,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

func utcPtr(t time.Time) *time.Time {
	u := t.UTC()
	return &u
}

// RSVPs returns an object implementing RSVPs interface
func (b *BuntDB) RSVPs() dependency.RSVPs {
	return b
}

func (b *BuntDB) get(tx *buntdb.Tx, email string) (*record, error) {
	s, err := tx.Get(rsvpKey(email))
	if err != nil {
		if errors.Is(err, buntdb.ErrNotFound) {
			return nil, gerr.ErrRSVPNotFound
		}
		return nil, fmt.Errorf("can't get rsvp: %w", err)
	}
	return recordFromString(s)
}

func (b *BuntDB) GetRSVPByEmail(ctx context.Context, email string) (*entity.RSVP, error) {
	var r *record
	err := b.view(func(tx *buntdb.Tx) error {
		var err error
		r, err = b.get(tx, email)
		return err
	})
	if err != nil {
		return nil, err
	}
	return r.toEntity(), nil
}

func (b *BuntDB) AddPlaceholder(ctx context.Context, email string, checkedAt time.Time) (*entity.RSVP, error) {
	r := &record{
		ID:            uuid.NewString(),
		Kind:          entity.RSVPKindPlaceholder,
		Email:         email,
		LastCheckedAt: utcPtr(checkedAt),
		CreatedAt:     b.Now(),
	}
	err := b.update(func(tx *buntdb.Tx) error {
		if _, err := tx.Get(rsvpKey(email)); err == nil {
			return fmt.Errorf("rsvp for %s already exists", email)
		}
		_, _, err := tx.Set(rsvpKey(email), r.String(), nil)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to add rsvp placeholder: %w", err)
	}
	return r.toEntity(), nil
}

func (b *BuntDB) TouchLastChecked(ctx context.Context, email string, checkedAt time.Time) error {
	err := b.update(func(tx *buntdb.Tx) error {
		r, err := b.get(tx, email)
		if err != nil {
			return err
		}
		r.LastCheckedAt = utcPtr(checkedAt)
		_, _, err = tx.Set(rsvpKey(email), r.String(), nil)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to update rsvp last checked: %w", err)
	}
	return nil
}

func (b *BuntDB) AddSubmission(ctx context.Context, si *entity.SubmissionInsert) (*entity.RSVP, error) {
	if err := si.ValidateSubmissionInsert(); err != nil {
		return nil, fmt.Errorf("invalid submission: %w", err)
	}
	sub := si.Submission()
	sub.SubmittedAt = sub.SubmittedAt.UTC()
	r := &record{
		ID:         uuid.NewString(),
		Kind:       entity.RSVPKindSubmitted,
		Email:      si.Email,
		Submission: sub,
		CreatedAt:  b.Now(),
	}
	err := b.update(func(tx *buntdb.Tx) error {
		if _, err := tx.Get(rsvpKey(si.Email)); err == nil {
			return fmt.Errorf("rsvp for %s already exists", si.Email)
		}
		_, _, err := tx.Set(rsvpKey(si.Email), r.String(), nil)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to add rsvp: %w", err)
	}
	return r.toEntity(), nil
}

func (b *BuntDB) OverwriteSubmission(ctx context.Context, si *entity.SubmissionInsert, updatedAt time.Time) (*entity.RSVP, error) {
	if err := si.ValidateSubmissionInsert(); err != nil {
		return nil, fmt.Errorf("invalid submission: %w", err)
	}
	var r *record
	err := b.update(func(tx *buntdb.Tx) error {
		var err error
		r, err = b.get(tx, si.Email)
		if err != nil {
			return err
		}
		sub := si.Submission()
		sub.SubmittedAt = sub.SubmittedAt.UTC()
		r.Kind = entity.RSVPKindSubmitted
		r.Submission = sub
		r.UpdatedAt = utcPtr(updatedAt)
		_, _, err = tx.Set(rsvpKey(si.Email), r.String(), nil)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update rsvp: %w", err)
	}
	return r.toEntity(), nil
}

func (b *BuntDB) ListRSVPs(ctx context.Context) ([]entity.RSVP, error) {
	var rsvps []entity.RSVP
	err := b.view(func(tx *buntdb.Tx) error {
		var decodeErr error
		err := tx.AscendKeys(keyPrefix+"*", func(_, value string) bool {
			r, err := recordFromString(value)
			if err != nil {
				decodeErr = err
				return false
			}
			rsvps = append(rsvps, *r.toEntity())
			return true
		})
		if err != nil {
			return err
		}
		return decodeErr
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list rsvps: %w", err)
	}
	sortRSVPs(rsvps)
	return rsvps, nil
}

// sortRSVPs orders by submitted_at descending with placeholders last, then by
// last_checked_at descending, then by email.
func sortRSVPs(rsvps []entity.RSVP) {
	sort.SliceStable(rsvps, func(i, j int) bool {
		a, b := rsvps[i], rsvps[j]
		if a.IsSubmission() != b.IsSubmission() {
			return a.IsSubmission()
		}
		if a.IsSubmission() && !a.Submission.SubmittedAt.Equal(b.Submission.SubmittedAt) {
			return a.Submission.SubmittedAt.After(b.Submission.SubmittedAt)
		}
		if (a.LastCheckedAt == nil) != (b.LastCheckedAt == nil) {
			return a.LastCheckedAt != nil
		}
		if a.LastCheckedAt != nil && !a.LastCheckedAt.Equal(*b.LastCheckedAt) {
			return a.LastCheckedAt.After(*b.LastCheckedAt)
		}
		return a.Email < b.Email
	})
}
