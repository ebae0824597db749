// Package mockserver is a small in-memory stand-in for the clubhub backend.
// It follows the backend's status and envelope contract closely enough to
// drive the client end to end: short-lived HS256 access tokens, rotating
// refresh tokens in an httpOnly cookie and {"data"}/{"message"} bodies.
package mockserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrijs2005/clubhub/internal/filex"
	"github.com/dmitrijs2005/clubhub/internal/logging"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	cfg       *Config
	log       logging.Logger
	store     *store
	now       func() time.Time
	uploadDir string
}

type Option func(*Server)

// WithClock replaces time.Now for token issue and verification.
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

func New(cfg *Config, log logging.Logger, opts ...Option) (*Server, error) {
	if log == nil {
		log = logging.Nop()
	}
	s := &Server{cfg: cfg, log: log, store: newStore(cfg.BcryptCost), now: time.Now}
	if cfg.UploadDir != "" {
		dir, err := filex.EnsureDir(cfg.UploadDir)
		if err != nil {
			return nil, fmt.Errorf("upload dir: %w", err)
		}
		s.uploadDir = dir
	}
	for _, o := range opts {
		o(s)
	}
	return s, nil
}

// Router builds the HTTP routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(s.requestLogger)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/login", s.login)
		r.Post("/signup", s.signup)
		r.Post("/refresh", s.refresh)
		r.Post("/logout", s.logout)
	})

	if s.uploadDir != "" {
		r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(s.uploadDir))))
	}

	r.Group(func(r chi.Router) {
		r.Use(s.authenticate)

		r.Get("/users/me", s.me)
		r.Patch("/users", s.updateProfile)
		r.Delete("/users", s.deleteAccount)
		r.Delete("/users/profile-image", s.deleteProfileImage)
		r.Patch("/users/password", s.updatePassword)

		r.Get("/clubs", s.listClubs)
		r.Post("/clubs", s.createClub)
		r.Get("/club-joins/club", s.myClubs)
		r.Route("/clubs/{clubID}", func(r chi.Router) {
			r.Get("/", s.getClub)
			r.Post("/apply", s.applyToClub)
			r.Delete("/apply", s.cancelApplication)
			r.Delete("/leave", s.leaveClub)
			r.Get("/my-status", s.myJoinStatus)
			r.Get("/applications", s.pendingApplications)
			r.Post("/applications/{userID}/approve", s.approveApplication)
			r.Post("/applications/{userID}/reject", s.rejectApplication)
			r.Get("/members", s.clubMembers)
			r.Delete("/members/{userID}", s.kickMember)
		})

		r.Get("/posts", s.listPosts)
		r.Post("/posts", s.createPost)
		r.Get("/posts/{postID}", s.getPost)
		r.Patch("/posts/{postID}", s.updatePost)
		r.Delete("/posts/{postID}", s.deletePost)
		r.Post("/posts/{postID}/like", s.toggleLike)

		r.Post("/events", s.createEvent)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "")
	})
	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info(ctx, "mock backend listening", "addr", s.cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.log.Info(ctx, "shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// NotifyContext returns a context cancelled on SIGINT, SIGTERM or SIGQUIT.
func NotifyContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
}
