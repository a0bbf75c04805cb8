package entity

import (
	"fmt"
	"time"

	"github.com/asaskevich/govalidator"
)

// MaxGuests is the upper bound of the guest selector.
const MaxGuests = 6

// RSVPKind tags a stored record as a real response or a lookup-only placeholder.
type RSVPKind string

const (
	RSVPKindPlaceholder RSVPKind = "placeholder"
	RSVPKindSubmitted   RSVPKind = "submitted"
)

// Submission is the part of a record filled in by the guest.
type Submission struct {
	Name           string    `json:"name"`
	NumberOfGuests int       `json:"number_of_guests"`
	Attending      bool      `json:"attending"`
	SubmittedAt    time.Time `json:"submitted_at"`
}

// RSVP is one stored record. Submission is non-nil iff Kind is RSVPKindSubmitted.
type RSVP struct {
	ID            string
	Kind          RSVPKind
	Email         string
	Submission    *Submission
	LastCheckedAt *time.Time
	CreatedAt     time.Time
	UpdatedAt     *time.Time
}

func (r *RSVP) IsSubmission() bool {
	return r.Kind == RSVPKindSubmitted && r.Submission != nil
}

// IsLookupOnly reports whether the guest looked their email up but never responded.
func (r *RSVP) IsLookupOnly() bool {
	return r.Kind == RSVPKindPlaceholder && r.LastCheckedAt != nil
}

// Guests returns the guest count that should be displayed, zero for declines and placeholders.
func (r *RSVP) Guests() int {
	if !r.IsSubmission() || !r.Submission.Attending {
		return 0
	}
	return r.Submission.NumberOfGuests
}

// SubmissionInsert is a submission as received from a guest, before it is stored.
type SubmissionInsert struct {
	Name           string    `valid:"required"`
	Email          string    `valid:"required"`
	NumberOfGuests int       `valid:"-"`
	Attending      bool      `valid:"-"`
	SubmittedAt    time.Time `valid:"-"`
}

// ValidateSubmissionInsert is the last sanity check before a submission reaches a store.
func (si *SubmissionInsert) ValidateSubmissionInsert() error {
	if _, err := govalidator.ValidateStruct(si); err != nil {
		return err
	}
	if si.NumberOfGuests < 0 || si.NumberOfGuests > MaxGuests {
		return fmt.Errorf("number of guests %d is out of range [0, %d]", si.NumberOfGuests, MaxGuests)
	}
	return nil
}

// Submission converts the insert into the stored submission payload.
func (si *SubmissionInsert) Submission() *Submission {
	guests := si.NumberOfGuests
	if !si.Attending {
		guests = 0
	}
	return &Submission{
		Name:           si.Name,
		NumberOfGuests: guests,
		Attending:      si.Attending,
		SubmittedAt:    si.SubmittedAt,
	}
}

// SubmitOutcome tells whether a submission created a new record or overwrote an existing one.
type SubmitOutcome int

const (
	SubmitCreated SubmitOutcome = iota + 1
	SubmitUpdated
)

func (o SubmitOutcome) String() string {
	switch o {
	case SubmitCreated:
		return "created"
	case SubmitUpdated:
		return "updated"
	}
	return "unknown"
}
