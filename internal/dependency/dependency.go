package dependency

import (
	"context"
	"database/sql"
	"time"

	"github.com/jekabolt/wedding-rsvp/internal/entity"
	"github.com/jekabolt/wedding-rsvp/internal/form"
	"github.com/jmoiron/sqlx"
	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

//go:generate mockery --with-expecter --case underscore --all --output=./mocks

type (
	ContextStore interface {
		Tx(ctx context.Context, fn func(ctx context.Context, store Repository) error) error
	}

	RSVPs interface {
		// GetRSVPByEmail returns the record stored under a normalized email or gerr.ErrRSVPNotFound.
		GetRSVPByEmail(ctx context.Context, email string) (*entity.RSVP, error)
		// AddPlaceholder stores a lookup-only record for an email that has none.
		AddPlaceholder(ctx context.Context, email string, checkedAt time.Time) (*entity.RSVP, error)
		// TouchLastChecked refreshes last_checked_at of an existing record.
		TouchLastChecked(ctx context.Context, email string, checkedAt time.Time) error
		// AddSubmission stores a new full record.
		AddSubmission(ctx context.Context, si *entity.SubmissionInsert) (*entity.RSVP, error)
		// OverwriteSubmission replaces every submission field of an existing record and sets updated_at.
		OverwriteSubmission(ctx context.Context, si *entity.SubmissionInsert, updatedAt time.Time) (*entity.RSVP, error)
		// ListRSVPs returns all records, submitted_at descending with nulls last.
		ListRSVPs(ctx context.Context) ([]entity.RSVP, error)
	}

	Repository interface {
		ContextStore
		RSVPs() RSVPs
		Now() time.Time
		InTx() bool
		Ping(ctx context.Context) error
		Close()
	}

	// DB represents database interface.
	DB interface {
		BeginTxx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error)
		ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)

		// sqlx methods
		GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
		QueryRowxContext(ctx context.Context, query string, args ...interface{}) *sqlx.Row
		QueryxContext(ctx context.Context, query string, args ...interface{}) (*sqlx.Rows, error)
		SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
		Rebind(query string) string
		DriverName() string
	}

	// Sender is implemented by *sendgrid.Client.
	Sender interface {
		SendWithContext(ctx context.Context, email *mail.SGMailV3) (*rest.Response, error)
	}

	// Notifier is told about every stored submission.
	Notifier interface {
		SendRSVPConfirmation(ctx context.Context, rsvp *entity.RSVP) error
	}

	Mailer interface {
		Notifier
		Start(ctx context.Context) error
		Stop() error
	}

	// RSVPService is what the handlers need from internal/rsvp.
	RSVPService interface {
		Lookup(ctx context.Context, email string) (*entity.RSVP, error)
		Submit(ctx context.Context, req *form.SubmitRSVPRequest, submittedAt time.Time) (entity.SubmitOutcome, *entity.RSVP, error)
		ListAll(ctx context.Context) ([]entity.RSVP, error)
		Ping(ctx context.Context) error
	}

	RateLimiter interface {
		CheckLookup(ip string) error
		CheckSubmit(ip, email string) error
	}
)
