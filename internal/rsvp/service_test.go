package rsvp

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jekabolt/wedding-rsvp/internal/dependency"
	"github.com/jekabolt/wedding-rsvp/internal/dependency/mocks"
	"github.com/jekabolt/wedding-rsvp/internal/entity"
	gerr "github.com/jekabolt/wedding-rsvp/internal/errors"
	"github.com/jekabolt/wedding-rsvp/internal/form"
	"github.com/jekabolt/wedding-rsvp/internal/store/bunt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, time.June, 13, 15, 0, 0, 0, time.UTC)

// brokenRepo fails every store call with errStore.
type brokenRepo struct {
	*bunt.BuntDB
}

var errStore = errors.New("disk on fire")

func (b brokenRepo) Tx(ctx context.Context, f func(context.Context, dependency.Repository) error) error {
	return errStore
}

func (b brokenRepo) RSVPs() dependency.RSVPs {
	return brokenRSVPs{}
}

type brokenRSVPs struct {
	dependency.RSVPs
}

func (brokenRSVPs) ListRSVPs(context.Context) ([]entity.RSVP, error) {
	return nil, errStore
}

func newTestService(t *testing.T, opts ...Option) (*Service, *bunt.BuntDB) {
	t.Helper()
	db, err := bunt.New(bunt.Config{Path: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(db.Close)
	opts = append([]Option{WithClock(func() time.Time { return testNow })}, opts...)
	return New(db, opts...), db
}

func TestSubmit_CreateThenUpdateIsCaseInsensitive(t *testing.T) {
	s, _ := newTestService(t)
	ctx := context.Background()

	outcome, created, err := s.Submit(ctx, &form.SubmitRSVPRequest{
		Name:           "Ann",
		Email:          "A@X.com",
		NumberOfGuests: 2,
		Attending:      true,
	}, time.Time{})
	require.NoError(t, err)
	assert.Equal(t, entity.SubmitCreated, outcome)
	assert.Equal(t, "a@x.com", created.Email)
	assert.Nil(t, created.UpdatedAt)
	assert.True(t, testNow.Equal(created.Submission.SubmittedAt))

	outcome, updated, err := s.Submit(ctx, &form.SubmitRSVPRequest{
		Name:           "Ann",
		Email:          "a@x.com",
		NumberOfGuests: 3,
		Attending:      true,
	}, testNow.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, entity.SubmitUpdated, outcome)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, 3, updated.Guests())
	require.NotNil(t, updated.UpdatedAt)

	all, err := s.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, 3, all[0].Submission.NumberOfGuests)
}

func TestLookup_PlaceholderLifecycle(t *testing.T) {
	s, _ := newTestService(t)
	ctx := context.Background()

	_, _, err := s.Submit(ctx, &form.SubmitRSVPRequest{
		Name: "Ann", Email: "a@x.com", NumberOfGuests: 1, Attending: true,
	}, testNow)
	require.NoError(t, err)

	_, err = s.Lookup(ctx, "new@x.com")
	assert.ErrorIs(t, err, gerr.ErrRSVPNotFound)
	assert.Equal(t, 404, gerr.HTTPStatus(err))

	all, err := s.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "a@x.com", all[0].Email)
	assert.Equal(t, "new@x.com", all[1].Email)
	assert.Equal(t, entity.RSVPKindPlaceholder, all[1].Kind)
	assert.Nil(t, all[1].Submission)

	// the placeholder is found on the second lookup
	got, err := s.Lookup(ctx, " NEW@x.com ")
	require.NoError(t, err)
	assert.Equal(t, entity.RSVPKindPlaceholder, got.Kind)
	assert.True(t, got.IsLookupOnly())
	require.NotNil(t, got.LastCheckedAt)
	assert.True(t, testNow.Equal(*got.LastCheckedAt))
}

func TestLookup_FoundSubmission(t *testing.T) {
	s, _ := newTestService(t)
	ctx := context.Background()

	_, _, err := s.Submit(ctx, &form.SubmitRSVPRequest{
		Name: "Bo", Email: "bo@x.com", NumberOfGuests: 4, Attending: true,
	}, testNow.Add(-time.Hour))
	require.NoError(t, err)

	got, err := s.Lookup(ctx, "Bo@X.com")
	require.NoError(t, err)
	require.True(t, got.IsSubmission())
	assert.Equal(t, "Bo", got.Submission.Name)
	assert.Equal(t, 4, got.Guests())
	require.NotNil(t, got.LastCheckedAt)
}

func TestLookup_InvalidEmail(t *testing.T) {
	s, db := newTestService(t)
	ctx := context.Background()

	for _, email := range []string{"", "   ", "not-an-email", "a@b"} {
		_, err := s.Lookup(ctx, email)
		assert.ErrorIs(t, err, gerr.ErrValidation, email)
		assert.Equal(t, "Please enter a valid email address", gerr.UserMessage(err))
	}

	all, err := db.ListRSVPs(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestSubmit_PlaceholderBecomesSubmission(t *testing.T) {
	s, _ := newTestService(t)
	ctx := context.Background()

	_, err := s.Lookup(ctx, "c@x.com")
	require.ErrorIs(t, err, gerr.ErrRSVPNotFound)

	outcome, got, err := s.Submit(ctx, &form.SubmitRSVPRequest{
		Name: "Cy", Email: "c@x.com", NumberOfGuests: 2, Attending: true,
	}, testNow)
	require.NoError(t, err)
	assert.Equal(t, entity.SubmitUpdated, outcome)
	assert.True(t, got.IsSubmission())
	require.NotNil(t, got.LastCheckedAt)
}

func TestSubmit_DeclineClearsGuests(t *testing.T) {
	s, _ := newTestService(t)
	ctx := context.Background()

	_, _, err := s.Submit(ctx, &form.SubmitRSVPRequest{
		Name: "Di", Email: "d@x.com", NumberOfGuests: 5, Attending: true,
	}, testNow)
	require.NoError(t, err)

	_, got, err := s.Submit(ctx, &form.SubmitRSVPRequest{
		Name: "Di", Email: "d@x.com", NumberOfGuests: 5, Attending: false,
	}, testNow)
	require.NoError(t, err)
	assert.False(t, got.Submission.Attending)
	assert.Equal(t, 0, got.Submission.NumberOfGuests)
	assert.Equal(t, 0, got.Guests())
}

func TestSubmit_Validation(t *testing.T) {
	s, _ := newTestService(t)
	ctx := context.Background()

	tests := []struct {
		name string
		req  form.SubmitRSVPRequest
		msg  string
	}{
		{"missing name", form.SubmitRSVPRequest{Email: "a@x.com", NumberOfGuests: 1, Attending: true}, "Name and email are required"},
		{"bad email", form.SubmitRSVPRequest{Name: "A", Email: "nope", NumberOfGuests: 1, Attending: true}, "Please enter a valid email address"},
		{"too many guests", form.SubmitRSVPRequest{Name: "A", Email: "a@x.com", NumberOfGuests: 7, Attending: true}, "Please choose between 1 and 6 guests"},
		{"no guests", form.SubmitRSVPRequest{Name: "A", Email: "a@x.com", Attending: true}, "Please choose between 1 and 6 guests"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req
			_, _, err := s.Submit(ctx, &req, testNow)
			require.ErrorIs(t, err, gerr.ErrValidation)
			assert.Equal(t, tt.msg, gerr.UserMessage(err))
		})
	}
}

func TestSubmit_Notifies(t *testing.T) {
	n := mocks.NewNotifier(t)
	s, _ := newTestService(t, WithNotifier(n))
	ctx := context.Background()

	var sent *entity.RSVP
	n.EXPECT().SendRSVPConfirmation(mock.Anything, mock.Anything).
		Run(func(_ context.Context, rsvp *entity.RSVP) { sent = rsvp }).
		Return(errors.New("smtp down")).Once()

	// lookups never notify
	_, err := s.Lookup(ctx, "e@x.com")
	require.ErrorIs(t, err, gerr.ErrRSVPNotFound)

	_, got, err := s.Submit(ctx, &form.SubmitRSVPRequest{
		Name: "Ed", Email: "e@x.com", NumberOfGuests: 1, Attending: true,
	}, testNow)
	require.NoError(t, err, "notifier failures must not fail the submission")
	require.NotNil(t, sent)
	assert.Equal(t, got.ID, sent.ID)
	assert.Equal(t, "Ed", sent.Submission.Name)
}

func TestStoreFailures(t *testing.T) {
	db, err := bunt.New(bunt.Config{Path: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(db.Close)
	s := New(brokenRepo{db}, WithClock(func() time.Time { return testNow }))
	ctx := context.Background()

	_, err = s.Lookup(ctx, "a@x.com")
	var se *gerr.StoreError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, gerr.OpLookup, se.Op)
	assert.ErrorIs(t, err, errStore)
	assert.Equal(t, "Failed to look up RSVP. Please try again.", gerr.UserMessage(err))

	_, _, err = s.Submit(ctx, &form.SubmitRSVPRequest{Name: "A", Email: "a@x.com", NumberOfGuests: 1, Attending: true}, testNow)
	require.ErrorAs(t, err, &se)
	assert.Equal(t, gerr.OpCreate, se.Op)
	assert.Equal(t, 500, gerr.HTTPStatus(err))

	_, err = s.ListAll(ctx)
	require.ErrorAs(t, err, &se)
	assert.Equal(t, gerr.OpList, se.Op)
	assert.Equal(t, "Failed to fetch RSVPs", gerr.UserMessage(err))
}

func TestPing(t *testing.T) {
	s, _ := newTestService(t)
	assert.NoError(t, s.Ping(context.Background()))
}
