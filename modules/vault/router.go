package vault

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/otpvault/binder"
	"github.com/dmitrymomot/otpvault/handler"
	"github.com/dmitrymomot/otpvault/pkg/account"
	"github.com/dmitrymomot/otpvault/pkg/importer"
	"github.com/dmitrymomot/otpvault/pkg/logger"
	"github.com/dmitrymomot/otpvault/pkg/totp"
)

// Healthcheck reports whether a dependency is usable.
type Healthcheck func(ctx context.Context) error

// RouterOptions configures the vault router. Keeper is required; Importer
// may be nil, which disables POST /import.
type RouterOptions struct {
	Keeper       *account.Keeper
	Importer     *importer.Importer
	Params       totp.Params
	Logger       *slog.Logger
	Healthchecks map[string]Healthcheck
	// Now replaces time.Now, for tests.
	Now func() time.Time
}

// Router creates the vault HTTP API.
func Router(opts RouterOptions) chi.Router {
	s := &service{
		keeper:   opts.Keeper,
		importer: opts.Importer,
		params:   opts.Params.GetDefaults(),
		log:      opts.Logger,
		checks:   opts.Healthchecks,
		now:      opts.Now,
	}
	if s.log == nil {
		s.log = logger.Discard()
	}
	if s.now == nil {
		s.now = time.Now
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(s.log))

	pathName := binder.Path(urlParam)
	onError := handler.WithErrorHandler[handler.Context, nameRequest](s.renderError)

	r.Get("/healthz", handler.Wrap(s.health))

	r.Route("/accounts", func(r chi.Router) {
		r.Get("/", handler.Wrap(s.list))
		r.Post("/", handler.Wrap(s.add,
			handler.WithBinders[handler.Context, addRequest](binder.JSON()),
			handler.WithErrorHandler[handler.Context, addRequest](s.renderError),
		))

		r.Route("/{name}", func(r chi.Router) {
			r.Delete("/", handler.Wrap(s.delete,
				handler.WithBinders[handler.Context, nameRequest](pathName),
				onError,
			))
			r.Get("/code", handler.Wrap(s.code,
				handler.WithBinders[handler.Context, nameRequest](pathName),
				onError,
			))
			r.Patch("/note", handler.Wrap(s.updateNote,
				handler.WithBinders[handler.Context, noteRequest](pathName, binder.JSON()),
				handler.WithErrorHandler[handler.Context, noteRequest](s.renderError),
			))
		})
	})

	r.Post("/import", handler.Wrap(s.importContent,
		handler.WithBinders[handler.Context, importRequest](binder.Text(), binder.File()),
		handler.WithErrorHandler[handler.Context, importRequest](s.renderError),
	))

	return r
}

// urlParam returns the decoded route parameter; names may contain spaces,
// colons and other escaped characters.
func urlParam(r *http.Request, key string) string {
	raw := chi.URLParam(r, key)
	if v, err := url.PathUnescape(raw); err == nil {
		return v
	}
	return raw
}

func requestLogger(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			log.DebugContext(r.Context(), "http request",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.Status()),
				logger.Duration(time.Since(start)),
			)
		})
	}
}
