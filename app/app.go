package app

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/jekabolt/wedding-rsvp/config"
	httpapi "github.com/jekabolt/wedding-rsvp/internal/api/http"
	"github.com/jekabolt/wedding-rsvp/internal/apisrv/admin"
	"github.com/jekabolt/wedding-rsvp/internal/apisrv/frontend"
	"github.com/jekabolt/wedding-rsvp/internal/dependency"
	"github.com/jekabolt/wedding-rsvp/internal/mail"
	"github.com/jekabolt/wedding-rsvp/internal/ratelimit"
	"github.com/jekabolt/wedding-rsvp/internal/rsvp"
	"github.com/jekabolt/wedding-rsvp/internal/store"
	"github.com/jekabolt/wedding-rsvp/internal/store/bunt"
	"github.com/jekabolt/wedding-rsvp/internal/view"
	"golang.org/x/sync/errgroup"
)

// App is the main application
type App struct {
	hs       *httpapi.Server
	db       dependency.Repository
	mailer   dependency.Mailer
	limiter  *ratelimit.MultiKeyLimiter
	c        *config.Config
	done     chan struct{}
	doneOnce sync.Once
}

// New returns a new instance of App
func New(c *config.Config) *App {
	return &App{
		c:    c,
		done: make(chan struct{}),
	}
}

// Start starts the app
func (a *App) Start(ctx context.Context) error {
	var err error
	slog.Default().InfoContext(ctx, "starting wedding rsvp",
		slog.String("store", a.c.Store.Type),
	)

	a.db, err = openRepository(ctx, a.c.Store)
	if err != nil {
		slog.Default().ErrorContext(ctx, "couldn't open the rsvp store",
			slog.String("err", err.Error()),
		)
		return err
	}

	pages, err := view.New(a.c.Site)
	if err != nil {
		return fmt.Errorf("can't parse page templates: %w", err)
	}

	var opts []rsvp.Option
	if a.c.Mailer.Enabled() {
		m, err := mail.New(&a.c.Mailer, a.c.Site)
		if err != nil {
			return fmt.Errorf("can't create mailer: %w", err)
		}
		if err := m.Start(ctx); err != nil {
			return fmt.Errorf("can't start mailer: %w", err)
		}
		a.mailer = m
		opts = append(opts, rsvp.WithNotifier(m))
	} else {
		slog.Default().InfoContext(ctx, "mailer is not configured, confirmations are disabled")
	}

	rsvps := rsvp.New(a.db, opts...)
	a.limiter = ratelimit.NewCustomMultiKeyLimiter(a.c.RateLimit)

	frontendS := frontend.New(rsvps, a.limiter, pages)
	adminS := admin.New(rsvps, pages)

	// start API server
	a.hs = httpapi.New(&a.c.HTTP)
	if err = a.hs.Start(ctx, frontendS, adminS, rsvps); err != nil {
		slog.Default().ErrorContext(ctx, "cannot start http server",
			slog.String("err", err.Error()),
		)
		return err
	}

	go func() {
		<-a.hs.Done()
		a.doneOnce.Do(func() { close(a.done) })
	}()

	return nil
}

func openRepository(ctx context.Context, c config.StoreConfig) (dependency.Repository, error) {
	switch c.Type {
	case config.StoreSQL:
		db, err := store.New(ctx, c.SQL)
		if err != nil {
			return nil, fmt.Errorf("can't connect to %s: %w", c.SQL.Driver, err)
		}
		return db, nil
	case config.StoreBunt:
		db, err := bunt.New(c.Bunt)
		if err != nil {
			return nil, fmt.Errorf("can't open bunt store %s: %w", c.Bunt.Path, err)
		}
		return db, nil
	}
	return nil, fmt.Errorf("unknown store type %q", c.Type)
}

// Stop stops the application and waits for all services to exit
func (a *App) Stop(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	if a.hs != nil {
		g.Go(func() error {
			return a.hs.Stop(ctx)
		})
	}
	if a.mailer != nil {
		g.Go(a.mailer.Stop)
	}
	if a.limiter != nil {
		g.Go(func() error {
			a.limiter.Stop()
			return nil
		})
	}

	err := g.Wait()
	if a.db != nil {
		a.db.Close()
	}
	a.doneOnce.Do(func() { close(a.done) })
	return err
}

// Done returns a channel that is closed after the application has exited
func (a *App) Done() <-chan struct{} {
	return a.done
}

// Addr is the address the http server listens on.
func (a *App) Addr() string {
	if a.hs == nil || a.hs.Addr() == nil {
		return ""
	}
	return a.hs.Addr().String()
}
