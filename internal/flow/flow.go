// Package flow is the guest-facing RSVP state machine. The server-rendered page carries
// the State in hidden form fields, so every request starts from a decoded State and
// produces the next one.
package flow

import (
	"errors"
	"fmt"

	"github.com/jekabolt/wedding-rsvp/internal/entity"
)

type Step string

const (
	StepLookup  Step = "lookup"
	StepView    Step = "view"
	StepForm    Step = "form"
	StepSuccess Step = "success"
)

type Mode string

const (
	ModeNew  Mode = "new"
	ModeEdit Mode = "edit"
)

type EventKind int

const (
	LookupFound EventKind = iota + 1
	LookupNotFound
	LookupFailed
	NewResponse
	Edit
	SubmitSucceeded
	SubmitFailed
	StartOver
)

var eventNames = map[EventKind]string{
	LookupFound:     "lookup_found",
	LookupNotFound:  "lookup_not_found",
	LookupFailed:    "lookup_failed",
	NewResponse:     "new_response",
	Edit:            "edit",
	SubmitSucceeded: "submit_succeeded",
	SubmitFailed:    "submit_failed",
	StartOver:       "start_over",
}

func (k EventKind) String() string {
	if n, ok := eventNames[k]; ok {
		return n
	}
	return fmt.Sprintf("event(%d)", int(k))
}

const (
	MsgAttending = "Thank you. We look forward to celebrating with you."
	MsgDeclining = "Thank you for letting us know."
)

var ErrInvalidTransition = errors.New("invalid rsvp flow transition")

// Fields are the form inputs shown in StepForm and kept across failed submits.
type Fields struct {
	Name           string
	Email          string
	NumberOfGuests int
	Attending      bool
}

// DefaultFields is the blank form: attending with one guest.
func DefaultFields(email string) Fields {
	return Fields{
		Email:          email,
		NumberOfGuests: 1,
		Attending:      true,
	}
}

// FieldsFromRSVP pre-fills the form from a stored submission.
func FieldsFromRSVP(r *entity.RSVP) Fields {
	if !r.IsSubmission() {
		return DefaultFields(r.Email)
	}
	f := Fields{
		Name:           r.Submission.Name,
		Email:          r.Email,
		NumberOfGuests: r.Submission.NumberOfGuests,
		Attending:      r.Submission.Attending,
	}
	if f.NumberOfGuests < 1 {
		f.NumberOfGuests = 1
	}
	return f
}

// State is everything the page needs to render one step.
type State struct {
	Step Step
	Mode Mode
	// LookupEmail is the value of the lookup input.
	LookupEmail string
	// Record is the submission shown in StepView.
	Record  *entity.RSVP
	Fields  Fields
	Error   string
	Message string
}

// Initial is the state of a fresh page load.
func Initial() State {
	return State{Step: StepLookup}
}

// ShowGuests reports whether the guest selector is visible.
func (s State) ShowGuests() bool {
	return s.Step == StepForm && s.Fields.Attending
}

// Event drives one transition. Only the fields relevant to Kind are read.
type Event struct {
	Kind EventKind
	// Email is the looked up address for LookupNotFound and NewResponse.
	Email string
	// Record is set for LookupFound, Edit and SubmitSucceeded.
	Record *entity.RSVP
	// Fields are the submitted inputs for SubmitFailed.
	Fields Fields
	Err    string
}

// Transition returns the state that follows s on e, or ErrInvalidTransition.
func Transition(s State, e Event) (State, error) {
	if e.Kind == StartOver && s.Step != StepLookup {
		return Initial(), nil
	}

	switch s.Step {
	case StepLookup:
		switch e.Kind {
		case LookupFound:
			if e.Record == nil {
				break
			}
			if e.Record.IsSubmission() {
				return State{Step: StepView, LookupEmail: e.Record.Email, Record: e.Record}, nil
			}
			return newForm(e.Record.Email), nil
		case LookupNotFound:
			return newForm(e.Email), nil
		case LookupFailed:
			return State{Step: StepLookup, LookupEmail: e.Email, Error: e.Err}, nil
		case NewResponse:
			return newForm(e.Email), nil
		}
	case StepView:
		if e.Kind == Edit && s.Record != nil {
			return State{
				Step:        StepForm,
				Mode:        ModeEdit,
				LookupEmail: s.LookupEmail,
				Record:      s.Record,
				Fields:      FieldsFromRSVP(s.Record),
			}, nil
		}
	case StepForm:
		switch e.Kind {
		case SubmitSucceeded:
			msg := MsgDeclining
			if e.Record != nil && e.Record.IsSubmission() && e.Record.Submission.Attending {
				msg = MsgAttending
			}
			return State{Step: StepSuccess, Record: e.Record, Message: msg}, nil
		case SubmitFailed:
			next := s
			next.Fields = e.Fields
			next.Error = e.Err
			return next, nil
		}
	}
	return s, fmt.Errorf("%w: %s on %s", ErrInvalidTransition, e.Kind, s.Step)
}

func newForm(email string) State {
	return State{
		Step:        StepForm,
		Mode:        ModeNew,
		LookupEmail: email,
		Fields:      DefaultFields(email),
	}
}

// GuestOptions are the choices of the guest selector.
func GuestOptions() []int {
	opts := make([]int, 0, entity.MaxGuests)
	for i := 1; i <= entity.MaxGuests; i++ {
		opts = append(opts, i)
	}
	return opts
}
