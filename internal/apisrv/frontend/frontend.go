package frontend

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/jekabolt/wedding-rsvp/internal/dependency"
	"github.com/jekabolt/wedding-rsvp/internal/dto"
	"github.com/jekabolt/wedding-rsvp/internal/entity"
	"github.com/jekabolt/wedding-rsvp/internal/form"
	"github.com/jekabolt/wedding-rsvp/internal/middleware"
	"github.com/jekabolt/wedding-rsvp/internal/view"
)

const (
	msgSubmitted = "RSVP submitted successfully"
	msgUpdated   = "RSVP updated successfully"
)

// Server implements handlers for guest requests.
type Server struct {
	rsvps   dependency.RSVPService
	limiter dependency.RateLimiter
	pages   *view.Renderer
}

// New creates a new server with frontend handlers.
func New(rsvps dependency.RSVPService, limiter dependency.RateLimiter, pages *view.Renderer) *Server {
	return &Server{
		rsvps:   rsvps,
		limiter: limiter,
		pages:   pages,
	}
}

// JSON returns the JSON API, mounted under /api/frontend.
func (s *Server) JSON() http.Handler {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))
	r.Post("/rsvp", s.SubmitRSVP)
	r.Post("/rsvp/lookup", s.LookupRSVP)
	return r
}

func (s *Server) SubmitRSVP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req := &dto.SubmitRSVPRequest{}
	if err := render.Bind(r, req); err != nil {
		slog.Default().ErrorContext(ctx, "can't decode submit rsvp request",
			slog.String("err", err.Error()),
		)
		_ = render.Render(w, r, dto.ErrInvalidRequest(err))
		return
	}

	if err := s.limiter.CheckSubmit(middleware.GetClientIP(ctx), form.NormalizeEmail(req.Email)); err != nil {
		slog.Default().WarnContext(ctx, "rsvp submit rate limited",
			slog.String("err", err.Error()),
		)
		_ = render.Render(w, r, dto.ErrRender(err))
		return
	}

	sr, submittedAt := dto.ConvertSubmitRequestToForm(req)
	outcome, _, err := s.rsvps.Submit(ctx, sr, submittedAt)
	if err != nil {
		_ = render.Render(w, r, dto.ErrRender(err))
		return
	}

	msg := msgSubmitted
	if outcome == entity.SubmitUpdated {
		msg = msgUpdated
	}
	_ = render.Render(w, r, &dto.Result{
		Success: true,
		Message: msg,
	})
}

func (s *Server) LookupRSVP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req := &dto.LookupRSVPRequest{}
	if err := render.Bind(r, req); err != nil {
		slog.Default().ErrorContext(ctx, "can't decode lookup rsvp request",
			slog.String("err", err.Error()),
		)
		_ = render.Render(w, r, dto.ErrInvalidRequest(err))
		return
	}

	if err := s.limiter.CheckLookup(middleware.GetClientIP(ctx)); err != nil {
		slog.Default().WarnContext(ctx, "rsvp lookup rate limited",
			slog.String("err", err.Error()),
		)
		_ = render.Render(w, r, dto.ErrRender(err))
		return
	}

	rsvp, err := s.rsvps.Lookup(ctx, req.Email)
	if err != nil {
		_ = render.Render(w, r, dto.ErrRender(err))
		return
	}

	d := dto.ConvertEntityRSVPToDto(rsvp)
	_ = render.Render(w, r, &dto.LookupRSVPResponse{
		Result: dto.Result{Success: true},
		RSVP:   &d,
	})
}
