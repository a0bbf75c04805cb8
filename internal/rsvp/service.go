// Package rsvp holds the RSVP rules: lookups are logged as placeholders,
// submissions are upserted by normalized email.
package rsvp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jekabolt/wedding-rsvp/internal/dependency"
	"github.com/jekabolt/wedding-rsvp/internal/entity"
	gerr "github.com/jekabolt/wedding-rsvp/internal/errors"
	"github.com/jekabolt/wedding-rsvp/internal/form"
)

// Service implements lookup, submit and listing on top of a repository.
type Service struct {
	repo     dependency.Repository
	notifier dependency.Notifier
	now      func() time.Time
}

type Option func(*Service)

// WithNotifier sends every stored submission to n.
func WithNotifier(n dependency.Notifier) Option {
	return func(s *Service) {
		s.notifier = n
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func New(repo dependency.Repository, opts ...Option) *Service {
	s := &Service{
		repo: repo,
		now:  time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Lookup returns the record stored for email, placeholders included. A first lookup
// stores a placeholder and returns gerr.ErrRSVPNotFound.
func (s *Service) Lookup(ctx context.Context, email string) (*entity.RSVP, error) {
	if err := form.ValidateEmail(email); err != nil {
		return nil, err
	}
	email = form.NormalizeEmail(email)
	now := s.now().UTC()

	var found *entity.RSVP
	err := s.repo.Tx(ctx, func(ctx context.Context, rep dependency.Repository) error {
		found = nil
		rsvp, err := rep.RSVPs().GetRSVPByEmail(ctx, email)
		if errors.Is(err, gerr.ErrRSVPNotFound) {
			_, err = rep.RSVPs().AddPlaceholder(ctx, email, now)
			return err
		}
		if err != nil {
			return err
		}
		if err := rep.RSVPs().TouchLastChecked(ctx, email, now); err != nil {
			return err
		}
		rsvp.LastCheckedAt = &now
		found = rsvp
		return nil
	})
	if err != nil {
		slog.Default().ErrorContext(ctx, "can't look up rsvp",
			slog.String("err", err.Error()),
		)
		return nil, gerr.NewStoreError(gerr.OpLookup, err)
	}
	if found == nil {
		slog.Default().InfoContext(ctx, "rsvp lookup without a record, placeholder stored")
		return nil, gerr.ErrRSVPNotFound
	}
	return found, nil
}

// Submit stores a guest's response. An existing record for the same email, placeholder
// or not, is overwritten in full; otherwise a new record is created.
func (s *Service) Submit(ctx context.Context, req *form.SubmitRSVPRequest, submittedAt time.Time) (entity.SubmitOutcome, *entity.RSVP, error) {
	if err := req.Validate(); err != nil {
		return 0, nil, err
	}
	now := s.now().UTC()
	if submittedAt.IsZero() {
		submittedAt = now
	}
	si := &entity.SubmissionInsert{
		Name:           req.Name,
		Email:          form.NormalizeEmail(req.Email),
		NumberOfGuests: req.NumberOfGuests,
		Attending:      req.Attending,
		SubmittedAt:    submittedAt.UTC(),
	}
	if !si.Attending {
		si.NumberOfGuests = 0
	}

	var (
		outcome entity.SubmitOutcome
		stored  *entity.RSVP
	)
	err := s.repo.Tx(ctx, func(ctx context.Context, rep dependency.Repository) error {
		outcome, stored = 0, nil
		_, err := rep.RSVPs().GetRSVPByEmail(ctx, si.Email)
		switch {
		case errors.Is(err, gerr.ErrRSVPNotFound):
			outcome = entity.SubmitCreated
			stored, err = rep.RSVPs().AddSubmission(ctx, si)
			return err
		case err != nil:
			return err
		}
		outcome = entity.SubmitUpdated
		stored, err = rep.RSVPs().OverwriteSubmission(ctx, si, now)
		return err
	})
	if err != nil {
		op := gerr.OpCreate
		if outcome == entity.SubmitUpdated {
			op = gerr.OpUpdate
		}
		slog.Default().ErrorContext(ctx, "can't store rsvp",
			slog.String("err", err.Error()),
			slog.String("op", string(op)),
		)
		return 0, nil, gerr.NewStoreError(op, err)
	}

	slog.Default().InfoContext(ctx, "rsvp stored",
		slog.String("outcome", outcome.String()),
		slog.Bool("attending", stored.Submission.Attending),
	)
	s.notify(ctx, stored)
	return outcome, stored, nil
}

func (s *Service) notify(ctx context.Context, rsvp *entity.RSVP) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.SendRSVPConfirmation(ctx, rsvp); err != nil {
		slog.Default().ErrorContext(ctx, "can't send rsvp confirmation",
			slog.String("err", err.Error()),
		)
	}
}

// ListAll returns every record, submissions first by submitted_at descending, then placeholders.
func (s *Service) ListAll(ctx context.Context) ([]entity.RSVP, error) {
	rsvps, err := s.repo.RSVPs().ListRSVPs(ctx)
	if err != nil {
		slog.Default().ErrorContext(ctx, "can't list rsvps",
			slog.String("err", err.Error()),
		)
		return nil, gerr.NewStoreError(gerr.OpList, err)
	}
	return rsvps, nil
}

// Ping reports whether the record store is reachable.
func (s *Service) Ping(ctx context.Context) error {
	if err := s.repo.Ping(ctx); err != nil {
		return fmt.Errorf("store unavailable: %w", err)
	}
	return nil
}
