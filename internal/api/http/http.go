package httpapi

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jekabolt/wedding-rsvp/internal/apisrv/admin"
	"github.com/jekabolt/wedding-rsvp/internal/apisrv/frontend"
	clientid "github.com/jekabolt/wedding-rsvp/internal/middleware"
	"github.com/jekabolt/wedding-rsvp/internal/view"
	"github.com/jekabolt/wedding-rsvp/log"
)

const (
	requestTimeout  = 30 * time.Second
	shutdownTimeout = 10 * time.Second
)

// Config is the configuration for the http server
type Config struct {
	Port           string   `mapstructure:"port"`
	Address        string   `mapstructure:"address"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	Debug          bool     `mapstructure:"debug"`
}

// Pinger reports store health for /healthz.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server is the http server
type Server struct {
	hs   *http.Server
	ln   net.Listener
	c    *Config
	done chan struct{}
}

// New creates a new server
func New(config *Config) *Server {
	return &Server{
		c:    config,
		done: make(chan struct{}),
	}
}

// Done returns a channel that is closed when the http server exits
func (s *Server) Done() <-chan struct{} {
	return s.done
}

// Addr is the address the server listens on, nil before Start.
func (s *Server) Addr() net.Addr {
	if s.ln == nil {
		return nil
	}
	return s.ln.Addr()
}

// Handler builds the full router.
func (s *Server) Handler(frontendServer *frontend.Server, adminServer *admin.Server, health Pinger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(log.RequestLogger(slog.Default()))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(clientid.ClientIdentifier)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := health.Ping(r.Context()); err != nil {
			slog.Default().ErrorContext(r.Context(), "health check failed",
				slog.String("err", err.Error()),
			)
			http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	r.Group(func(r chi.Router) {
		r.Use(s.cors().Handler)
		r.Mount("/api/frontend", frontendServer.JSON())
		r.Mount("/api/admin", adminServer.JSON())
	})

	frontendServer.Pages(r)
	adminServer.Pages(r)
	r.Handle("/static/*", http.StripPrefix("/static/", view.Static()))

	return r
}

func (s *Server) cors() *cors.Cors {
	return cors.New(cors.Options{
		AllowOriginFunc: func(r *http.Request, origin string) bool {
			return isOriginAllowed(origin, s.c.AllowedOrigins)
		},
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
			http.MethodPost,
			http.MethodOptions,
		},
		AllowedHeaders: []string{"Accept", "Content-Type", "Content-Length", "Accept-Encoding"},
		MaxAge:         300,
		Debug:          s.c.Debug,
	})
}

func isOriginAllowed(origin string, allowedOrigins []string) bool {
	// Always allow localhost origins
	if strings.HasPrefix(origin, "http://localhost:") || strings.HasPrefix(origin, "https://localhost:") {
		return true
	}

	for _, allowedOrigin := range allowedOrigins {
		if allowedOrigin == "*" || origin == allowedOrigin {
			return true
		}
	}

	return false
}

// Start starts the server
func (s *Server) Start(ctx context.Context,
	frontendServer *frontend.Server,
	adminServer *admin.Server,
	health Pinger,
) error {
	listenerAddr := net.JoinHostPort(s.c.Address, s.c.Port)
	ln, err := net.Listen("tcp", listenerAddr)
	if err != nil {
		close(s.done)
		return fmt.Errorf("can't listen on %s: %w", listenerAddr, err)
	}
	s.ln = ln

	s.hs = &http.Server{
		Addr:              listenerAddr,
		Handler:           s.Handler(frontendServer, adminServer, health),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext: func(net.Listener) context.Context {
			return context.WithoutCancel(ctx)
		},
	}

	go func() {
		defer close(s.done)
		slog.Default().InfoContext(ctx, fmt.Sprintf("wedding-rsvp new listener on: http://%v", ln.Addr()))
		err := s.hs.Serve(ln)
		if errors.Is(err, http.ErrServerClosed) {
			slog.Default().InfoContext(ctx, "http server returned")
		} else {
			slog.Default().ErrorContext(ctx, "http server exited with an error",
				slog.String("err", err.Error()),
			)
		}
	}()

	return nil
}

// Stop gracefully shuts the server down.
func (s *Server) Stop(ctx context.Context) error {
	if s.hs == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()
	if err := s.hs.Shutdown(ctx); err != nil {
		return fmt.Errorf("can't shut down http server: %w", err)
	}
	return nil
}
