package admin

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/jekabolt/wedding-rsvp/internal/dependency"
	"github.com/jekabolt/wedding-rsvp/internal/dto"
	gerr "github.com/jekabolt/wedding-rsvp/internal/errors"
	"github.com/jekabolt/wedding-rsvp/internal/view"
)

// Server implements handlers for admin.
type Server struct {
	rsvps dependency.RSVPService
	pages *view.Renderer
}

// New creates a new server with admin handlers.
func New(rsvps dependency.RSVPService, pages *view.Renderer) *Server {
	return &Server{
		rsvps: rsvps,
		pages: pages,
	}
}

// JSON returns the JSON API, mounted under /api/admin.
func (s *Server) JSON() http.Handler {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))
	r.Get("/rsvps", s.ListRSVPs)
	return r
}

// Pages registers the HTML listing.
func (s *Server) Pages(r chi.Router) {
	r.Get("/admin/rsvps", s.listPage)
}

func (s *Server) ListRSVPs(w http.ResponseWriter, r *http.Request) {
	rsvps, err := s.rsvps.ListAll(r.Context())
	if err != nil {
		_ = render.Render(w, r, dto.ErrRender(err))
		return
	}
	_ = render.Render(w, r, &dto.ListRSVPsResponse{
		Result:  dto.Result{Success: true},
		RSVPs:   dto.ConvertEntityRSVPsToDto(rsvps),
		Summary: dto.SummarizeRSVPs(rsvps),
	})
}

func (s *Server) listPage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	status := http.StatusOK
	var (
		summary *dto.RSVPsSummary
		errMsg  string
	)
	rsvps, err := s.rsvps.ListAll(ctx)
	if err != nil {
		status = gerr.HTTPStatus(err)
		errMsg = gerr.UserMessage(err)
	} else {
		summary = dto.SummarizeRSVPs(rsvps)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := s.pages.RenderAdmin(w, summary, errMsg); err != nil {
		slog.Default().ErrorContext(ctx, "can't render admin page",
			slog.String("err", err.Error()),
		)
	}
}
