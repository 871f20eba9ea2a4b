package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/secmon-lab/timeshift/pkg/utils/logging"
	"github.com/secmon-lab/timeshift/pkg/utils/safe"
)

type Server struct {
	router           *chi.Mux
	webhook          *StravaWebhookHandler
	authUC           AuthUseCase
	postAuthRedirect string
}

type Options func(*Server)

// WithStravaWebhook mounts the push subscription endpoint at /hooks/strava
func WithStravaWebhook(handler *StravaWebhookHandler) Options {
	return func(s *Server) {
		s.webhook = handler
	}
}

// WithAuth mounts the athlete authorization flow at /auth/strava. After a
// successful callback the browser is sent to redirectTo.
func WithAuth(authUC AuthUseCase, redirectTo string) Options {
	return func(s *Server) {
		s.authUC = authUC
		s.postAuthRedirect = redirectTo
	}
}

func New(opts ...Options) *Server {
	r := chi.NewRouter()

	s := &Server{
		router:           r,
		postAuthRedirect: "/",
	}
	for _, opt := range opts {
		opt(s)
	}

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)

	r.Get("/health", healthHandler)

	if s.webhook != nil {
		r.Route("/hooks/strava", func(r chi.Router) {
			r.Get("/", s.webhook.Verify)
			r.Post("/", s.webhook.Receive)
		})
	}

	if s.authUC != nil {
		r.Route("/auth/strava", func(r chi.Router) {
			r.Get("/login", authLoginHandler(s.authUC))
			r.Get("/callback", authCallbackHandler(s.authUC, s.postAuthRedirect))
		})
	}

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// accessLogger is a middleware that logs HTTP requests
func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			logging.Default().Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
				"user_agent", r.UserAgent(),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	safe.Write(r.Context(), w, []byte("ok"))
}
