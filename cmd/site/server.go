package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"strings"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	site "github.com/twelve-principles/site"
	"github.com/twelve-principles/site/internal/config"
	"github.com/twelve-principles/site/internal/content"
	"github.com/twelve-principles/site/internal/handlers"
	"github.com/twelve-principles/site/internal/i18n"
	"github.com/twelve-principles/site/internal/locale"
	mw "github.com/twelve-principles/site/internal/middleware"
	"github.com/twelve-principles/site/internal/observability"
)

// app holds everything the router needs. It is built once per process (or per test).
type app struct {
	cfg      *config.Config
	logger   *zap.Logger
	site     handlers.Site
	prefs    handlers.Preferences
	content  *content.Store
	renderer *renderer
}

func localeNames() []string {
	out := make([]string, 0, len(locale.Supported()))
	for _, l := range locale.Supported() {
		out = append(out, l.String())
	}
	return out
}

func newApp(cfg *config.Config, logger *zap.Logger) (*app, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	langs := localeNames()
	bundle, err := i18n.Load(site.Files, "locales", locale.Default.String(), langs)
	if err != nil {
		return nil, fmt.Errorf("load translations: %w", err)
	}
	pages, err := content.Load(site.Files, "content", langs)
	if err != nil {
		return nil, fmt.Errorf("load content: %w", err)
	}

	var templates fs.FS
	if cfg.Site.Dev {
		templates = os.DirFS(cfg.Site.TemplatesDir)
	} else if templates, err = fs.Sub(site.Files, "templates"); err != nil {
		return nil, fmt.Errorf("templates: %w", err)
	}
	rnd, err := newRenderer(templates, cfg.Site.Dev, funcMap(bundle, cfg.Routes))
	if err != nil {
		return nil, err
	}

	return &app{
		cfg:    cfg,
		logger: logger,
		site: handlers.Site{
			Bundle:  bundle,
			BaseURL: cfg.Site.BaseURL,
			Name:    cfg.Site.Name,
		},
		prefs:    handlers.Preferences{SecureCookies: cfg.IsProd()},
		content:  pages,
		renderer: rnd,
	}, nil
}

// routes builds the full handler. The locale layer wraps the mux rather than
// sitting inside it so that rewritten paths are matched against the locale routes.
func (a *app) routes() (http.Handler, error) {
	public, err := fs.Sub(site.Files, "public")
	if err != nil {
		return nil, fmt.Errorf("public assets: %w", err)
	}

	r := chi.NewRouter()
	r.Use(chimw.Compress(5))

	api := a.cfg.Routes.APIPrefix
	r.Route(api, func(r chi.Router) {
		r.Get("/healthz", handlers.Healthz)
		r.Post("/preferences/theme", a.prefs.Theme)
		r.Post("/preferences/locale", a.prefs.Locale)
	})

	internal := a.cfg.Routes.InternalPrefix
	r.Handle(internal+"/*", http.StripPrefix(internal, mw.AssetsWithCache(public)))

	r.Route("/{locale}", func(r chi.Router) {
		r.Get("/", a.home)
		r.Get("/principles", a.principles)
		r.Get("/principles/{n}", a.principle)
	})
	r.NotFound(a.notFound)

	filter := mw.RouteFilter{APIPrefix: api, InternalPrefix: internal}
	chain := chi.Chain(
		chimw.RequestID,
		chimw.RealIP,
		observability.InjectLogger(a.logger),
		observability.RequestLogger,
		observability.Recoverer,
		chimw.Timeout(a.cfg.Server.HandlerTimeout),
		mw.Content(filter, mw.VaryLocale, mw.LocaleRouter, mw.LocalePrefix),
	)
	return chain.Handler(r), nil
}

func (a *app) isAPI(p string) bool {
	prefix := a.cfg.Routes.APIPrefix
	return p == prefix || strings.HasPrefix(p, prefix+"/")
}

// run serves until ctx is cancelled, then shuts down within the configured timeout.
func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	a, err := newApp(cfg, logger)
	if err != nil {
		return err
	}
	handler, err := a.routes()
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           handler,
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("site listening",
			zap.String("addr", cfg.Server.Addr),
			zap.String("env", cfg.Env),
			zap.Bool("dev", cfg.Site.Dev),
			zap.String("version", version),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		logger.Info("shutting down")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})
	return g.Wait()
}
