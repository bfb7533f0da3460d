// Package server exposes form sessions over HTTP. Each browser session owns
// one engine; HTML clients post form controls and are redirected back to the
// page, API clients receive the session state as JSON.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-formstate/internal/config"
	"github.com/goliatone/go-formstate/pkg/formstate"
	"github.com/goliatone/go-formstate/pkg/model"
	"github.com/goliatone/go-formstate/pkg/render"
	"github.com/goliatone/go-formstate/pkg/renderers/vanilla"
	"github.com/goliatone/go-formstate/pkg/submission"
	"github.com/goliatone/go-formstate/pkg/telemetry"
	"github.com/goliatone/go-formstate/pkg/theme"
)

const shutdownGrace = 5 * time.Second

// Option customises a Server.
type Option func(*Server)

// WithLogger sets the request and engine logger.
func WithLogger(log zerolog.Logger) Option {
	return func(s *Server) {
		s.log = telemetry.Component(log, "server")
		s.baseLog = log
	}
}

// WithMetrics enables the /metrics endpoint and engine counters.
func WithMetrics(m *telemetry.Metrics) Option {
	return func(s *Server) {
		s.metrics = m
	}
}

// WithSubmitter replaces the logging collaborator that receives valid
// records. It is still wrapped for metrics.
func WithSubmitter(sub submission.Submitter) Option {
	return func(s *Server) {
		if sub != nil {
			s.submitter = sub
		}
	}
}

// WithHTMLRenderer replaces the vanilla renderer used for browser clients.
func WithHTMLRenderer(r render.Renderer) Option {
	return func(s *Server) {
		if r != nil {
			s.html = r
		}
	}
}

// WithClock overrides the time source used for session expiry.
func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		if now != nil {
			s.now = now
		}
	}
}

// Server routes form actions to per-session engines.
type Server struct {
	cfg       config.Config
	log       zerolog.Logger
	baseLog   zerolog.Logger
	metrics   *telemetry.Metrics
	submitter submission.Submitter
	html      render.Renderer
	registry  *render.Registry
	selector  *theme.Selector
	sessions  *sessionStore
	form      model.Form
	now       func() time.Time
}

// New validates cfg and wires renderers, theme selection and the session
// store.
func New(cfg config.Config, options ...Option) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &Server{
		cfg:      cfg,
		log:      zerolog.Nop(),
		baseLog:  zerolog.Nop(),
		selector: theme.NewSelector(),
		form:     model.PracticeForm(),
		now:      time.Now,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}

	if s.html == nil {
		html, err := vanilla.New()
		if err != nil {
			return nil, fmt.Errorf("server: html renderer: %w", err)
		}
		s.html = html
	}
	s.registry = render.NewRegistry()
	if err := s.registry.Register(s.html); err != nil {
		return nil, fmt.Errorf("server: %w", err)
	}
	if err := s.registry.Register(render.JSONRenderer{}); err != nil {
		return nil, fmt.Errorf("server: %w", err)
	}

	if s.submitter == nil {
		s.submitter = submission.NewLogger(s.baseLog)
	}
	s.submitter = submission.NewInstrumented(s.submitter, s.metrics)

	s.sessions = newSessionStore(cfg.SessionTTL, s.now, s.metrics, func() *session {
		return &session{engine: s.newEngine(), mode: cfg.Mode()}
	})
	return s, nil
}

func (s *Server) newEngine() *formstate.Engine {
	return formstate.New(
		formstate.WithSubmitter(s.submitter),
		formstate.WithLogger(s.baseLog),
		formstate.WithMetrics(s.metrics),
	)
}

// Handler returns the routed handler with request logging and panic
// recovery applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.Handle("POST /field", s.mutation(s.applyFieldEdit))
	mux.Handle("POST /toggle", s.mutation(s.applyToggle))
	mux.Handle("POST /rating", s.mutation(s.applyRating))
	mux.Handle("POST /submit", s.mutation(s.applySubmit))
	mux.Handle("POST /reset", s.mutation(s.applyReset))
	mux.Handle("POST /cancel", s.mutation(s.applyCancel))
	mux.Handle("POST /theme", s.mutation(s.applyTheme))
	mux.HandleFunc("GET /api/schema", s.handleSchema)
	mux.HandleFunc("POST /api/validate", s.handleValidate)
	mux.Handle("GET /metrics", s.metrics.Handler())
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return s.recoverPanics(s.logRequests(mux))
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", s.cfg.Addr).Str("theme", s.cfg.Theme).Msg("listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
		close(errChan)
	}()

	select {
	case err, ok := <-errChan:
		if ok {
			return fmt.Errorf("server: listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	s.log.Info().Msg("server stopped")
	return nil
}
