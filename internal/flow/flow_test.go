package flow

import (
	"testing"
	"time"

	"github.com/jekabolt/wedding-rsvp/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func submitted(email string, guests int, attending bool) *entity.RSVP {
	return &entity.RSVP{
		Kind:  entity.RSVPKindSubmitted,
		Email: email,
		Submission: &entity.Submission{
			Name:           "Jo",
			NumberOfGuests: guests,
			Attending:      attending,
			SubmittedAt:    time.Date(2026, time.May, 1, 0, 0, 0, 0, time.UTC),
		},
	}
}

func TestTransition_LookupFoundSubmission(t *testing.T) {
	rec := submitted("jo@x.com", 2, true)
	s, err := Transition(Initial(), Event{Kind: LookupFound, Record: rec})
	require.NoError(t, err)
	assert.Equal(t, StepView, s.Step)
	assert.Same(t, rec, s.Record)

	s, err = Transition(s, Event{Kind: Edit})
	require.NoError(t, err)
	assert.Equal(t, StepForm, s.Step)
	assert.Equal(t, ModeEdit, s.Mode)
	assert.Equal(t, Fields{Name: "Jo", Email: "jo@x.com", NumberOfGuests: 2, Attending: true}, s.Fields)
	assert.True(t, s.ShowGuests())
}

func TestTransition_LookupFoundPlaceholderOpensNewForm(t *testing.T) {
	now := time.Now()
	s, err := Transition(Initial(), Event{Kind: LookupFound, Record: &entity.RSVP{
		Kind:          entity.RSVPKindPlaceholder,
		Email:         "ph@x.com",
		LastCheckedAt: &now,
	}})
	require.NoError(t, err)
	assert.Equal(t, StepForm, s.Step)
	assert.Equal(t, ModeNew, s.Mode)
	assert.Equal(t, DefaultFields("ph@x.com"), s.Fields)
}

func TestTransition_LookupNotFoundAndFailed(t *testing.T) {
	s, err := Transition(Initial(), Event{Kind: LookupNotFound, Email: "new@x.com"})
	require.NoError(t, err)
	assert.Equal(t, StepForm, s.Step)
	assert.Equal(t, ModeNew, s.Mode)
	assert.Equal(t, "new@x.com", s.Fields.Email)

	s, err = Transition(Initial(), Event{Kind: LookupFailed, Email: "bad", Err: "Please enter a valid email address"})
	require.NoError(t, err)
	assert.Equal(t, StepLookup, s.Step)
	assert.Equal(t, "bad", s.LookupEmail)
	assert.Equal(t, "Please enter a valid email address", s.Error)
}

func TestTransition_SubmitMessages(t *testing.T) {
	form, err := Transition(Initial(), Event{Kind: NewResponse})
	require.NoError(t, err)

	s, err := Transition(form, Event{Kind: SubmitSucceeded, Record: submitted("jo@x.com", 2, true)})
	require.NoError(t, err)
	assert.Equal(t, StepSuccess, s.Step)
	assert.Equal(t, MsgAttending, s.Message)

	s, err = Transition(form, Event{Kind: SubmitSucceeded, Record: submitted("jo@x.com", 0, false)})
	require.NoError(t, err)
	assert.Equal(t, MsgDeclining, s.Message)
}

func TestTransition_SubmitFailedKeepsFields(t *testing.T) {
	form, err := Transition(Initial(), Event{Kind: LookupNotFound, Email: "jo@x.com"})
	require.NoError(t, err)

	in := Fields{Name: "", Email: "jo@x.com", NumberOfGuests: 3, Attending: false}
	s, err := Transition(form, Event{Kind: SubmitFailed, Fields: in, Err: "Name and email are required"})
	require.NoError(t, err)
	assert.Equal(t, StepForm, s.Step)
	assert.Equal(t, ModeNew, s.Mode)
	assert.Equal(t, in, s.Fields)
	assert.Equal(t, "Name and email are required", s.Error)
	assert.False(t, s.ShowGuests())
}

func TestTransition_StartOver(t *testing.T) {
	for _, from := range []State{
		{Step: StepView, Record: submitted("a@x.com", 1, true)},
		{Step: StepForm, Mode: ModeNew},
		{Step: StepSuccess, Message: MsgDeclining},
	} {
		s, err := Transition(from, Event{Kind: StartOver})
		require.NoError(t, err)
		assert.Equal(t, Initial(), s)
	}
}

func TestTransition_Invalid(t *testing.T) {
	tests := []struct {
		name string
		from State
		ev   Event
	}{
		{"start over on lookup", Initial(), Event{Kind: StartOver}},
		{"edit on lookup", Initial(), Event{Kind: Edit}},
		{"found without record", Initial(), Event{Kind: LookupFound}},
		{"submit on view", State{Step: StepView, Record: submitted("a@x.com", 1, true)}, Event{Kind: SubmitSucceeded}},
		{"lookup on success", State{Step: StepSuccess}, Event{Kind: LookupNotFound}},
		{"edit without record", State{Step: StepView}, Event{Kind: Edit}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Transition(tt.from, tt.ev)
			assert.ErrorIs(t, err, ErrInvalidTransition)
			assert.Equal(t, tt.from, s)
		})
	}
}

func TestFieldsFromDecline(t *testing.T) {
	f := FieldsFromRSVP(submitted("a@x.com", 0, false))
	assert.False(t, f.Attending)
	assert.Equal(t, 1, f.NumberOfGuests)
}

func TestGuestOptions(t *testing.T) {
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6}, GuestOptions())
}
