package frontend

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jekabolt/wedding-rsvp/internal/entity"
	gerr "github.com/jekabolt/wedding-rsvp/internal/errors"
	"github.com/jekabolt/wedding-rsvp/internal/flow"
	"github.com/jekabolt/wedding-rsvp/internal/form"
	"github.com/jekabolt/wedding-rsvp/internal/middleware"
)

// Pages registers the server-rendered invitation page and its RSVP flow. Every POST
// decodes the flow state from hidden fields, applies one event and renders the result.
func (s *Server) Pages(r chi.Router) {
	r.Get("/", s.index)
	r.Route("/rsvp", func(r chi.Router) {
		r.Post("/lookup", s.lookupPage)
		r.Post("/new", s.newPage)
		r.Post("/edit", s.editPage)
		r.Post("/submit", s.submitPage)
		r.Post("/reset", s.resetPage)
	})
}

func (s *Server) index(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, r, http.StatusOK, flow.Initial())
}

func (s *Server) lookupPage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	email := strings.TrimSpace(r.PostFormValue("email"))
	from := flow.Initial()

	if err := s.limiter.CheckLookup(middleware.GetClientIP(ctx)); err != nil {
		s.apply(w, r, from, flow.Event{Kind: flow.LookupFailed, Email: email, Err: gerr.UserMessage(err)}, gerr.HTTPStatus(err))
		return
	}

	rsvp, err := s.rsvps.Lookup(ctx, email)
	switch {
	case err == nil:
		s.apply(w, r, from, flow.Event{Kind: flow.LookupFound, Record: rsvp}, http.StatusOK)
	case errors.Is(err, gerr.ErrRSVPNotFound):
		s.apply(w, r, from, flow.Event{Kind: flow.LookupNotFound, Email: form.NormalizeEmail(email)}, http.StatusOK)
	default:
		s.apply(w, r, from, flow.Event{Kind: flow.LookupFailed, Email: email, Err: gerr.UserMessage(err)}, gerr.HTTPStatus(err))
	}
}

func (s *Server) newPage(w http.ResponseWriter, r *http.Request) {
	email := strings.TrimSpace(r.PostFormValue("email"))
	if form.ValidateEmail(email) == nil {
		email = form.NormalizeEmail(email)
	}
	s.apply(w, r, flow.Initial(), flow.Event{Kind: flow.NewResponse, Email: email}, http.StatusOK)
}

func (s *Server) editPage(w http.ResponseWriter, r *http.Request) {
	from := flow.State{
		Step:   flow.StepView,
		Record: recordFromForm(r),
	}
	if from.Record != nil {
		from.LookupEmail = from.Record.Email
	}
	s.apply(w, r, from, flow.Event{Kind: flow.Edit}, http.StatusOK)
}

func (s *Server) submitPage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	fields := fieldsFromForm(r)
	mode := flow.ModeNew
	if flow.Mode(r.PostFormValue("mode")) == flow.ModeEdit {
		mode = flow.ModeEdit
	}
	from := flow.State{
		Step:        flow.StepForm,
		Mode:        mode,
		LookupEmail: fields.Email,
		Fields:      fields,
	}

	if err := s.limiter.CheckSubmit(middleware.GetClientIP(ctx), form.NormalizeEmail(fields.Email)); err != nil {
		s.apply(w, r, from, flow.Event{Kind: flow.SubmitFailed, Fields: fields, Err: gerr.UserMessage(err)}, gerr.HTTPStatus(err))
		return
	}

	_, rsvp, err := s.rsvps.Submit(ctx, &form.SubmitRSVPRequest{
		Name:           fields.Name,
		Email:          fields.Email,
		NumberOfGuests: fields.NumberOfGuests,
		Attending:      fields.Attending,
	}, time.Time{})
	if err != nil {
		s.apply(w, r, from, flow.Event{Kind: flow.SubmitFailed, Fields: fields, Err: gerr.UserMessage(err)}, gerr.HTTPStatus(err))
		return
	}
	s.apply(w, r, from, flow.Event{Kind: flow.SubmitSucceeded, Record: rsvp}, http.StatusOK)
}

func (s *Server) resetPage(w http.ResponseWriter, r *http.Request) {
	from := flow.State{Step: flow.Step(r.PostFormValue("step"))}
	s.apply(w, r, from, flow.Event{Kind: flow.StartOver}, http.StatusOK)
}

// apply renders the state that follows from on e. A rejected transition falls back to a fresh lookup.
func (s *Server) apply(w http.ResponseWriter, r *http.Request, from flow.State, e flow.Event, status int) {
	next, err := flow.Transition(from, e)
	if err != nil {
		slog.Default().WarnContext(r.Context(), "rejected rsvp flow transition",
			slog.String("err", err.Error()),
		)
		s.renderPage(w, r, http.StatusBadRequest, flow.Initial())
		return
	}
	s.renderPage(w, r, status, next)
}

func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, status int, st flow.State) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := s.pages.RenderIndex(w, st); err != nil {
		slog.Default().ErrorContext(r.Context(), "can't render index page",
			slog.String("err", err.Error()),
		)
	}
}

func fieldsFromForm(r *http.Request) flow.Fields {
	guests, _ := strconv.Atoi(r.PostFormValue("guests"))
	return flow.Fields{
		Name:           strings.TrimSpace(r.PostFormValue("name")),
		Email:          strings.TrimSpace(r.PostFormValue("email")),
		NumberOfGuests: guests,
		Attending:      r.PostFormValue("attending") != "no",
	}
}

// recordFromForm rebuilds the submission shown in the view step from its hidden fields.
func recordFromForm(r *http.Request) *entity.RSVP {
	f := fieldsFromForm(r)
	if f.Name == "" || f.Email == "" {
		return nil
	}
	sub := &entity.Submission{
		Name:           f.Name,
		NumberOfGuests: f.NumberOfGuests,
		Attending:      f.Attending,
	}
	if !sub.Attending {
		sub.NumberOfGuests = 0
	}
	if unix, err := strconv.ParseInt(r.PostFormValue("submitted_at"), 10, 64); err == nil {
		sub.SubmittedAt = time.Unix(unix, 0).UTC()
	}
	return &entity.RSVP{
		Kind:       entity.RSVPKindSubmitted,
		Email:      f.Email,
		Submission: sub,
	}
}
