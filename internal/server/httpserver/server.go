// Package httpserver exposes the AY-Code JSON API over HTTP and implements
// the two-stage access gate: token authentication followed by a fresh role
// lookup for privileged routes.
package httpserver

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/aycode/internal/logging"
	"github.com/dmitrijs2005/aycode/internal/server/models"
	"github.com/dmitrijs2005/aycode/internal/server/services"
)

// Options configures transport-level behaviour.
type Options struct {
	Address           string
	CookieSecure      bool
	ReadHeaderTimeout time.Duration
	ShutdownTimeout   time.Duration
}

type HTTPServer struct {
	opts     Options
	users    *services.UserService
	problems *services.ProblemService
	logger   logging.Logger
}

func NewHTTPServer(opts Options, l logging.Logger, us *services.UserService, ps *services.ProblemService) *HTTPServer {
	if opts.ReadHeaderTimeout <= 0 {
		opts.ReadHeaderTimeout = 5 * time.Second
	}
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = 10 * time.Second
	}
	return &HTTPServer{
		opts:     opts,
		logger:   l.With("module", "http_server"),
		users:    us,
		problems: ps,
	}
}

// Handler returns the full route table wrapped in the ambient middleware.
func (s *HTTPServer) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", s.handleHealth)

	mux.HandleFunc("POST /api/auth/register", s.handleRegister)
	mux.HandleFunc("POST /api/auth/login", s.handleLogin)
	mux.HandleFunc("POST /api/auth/logout", s.handleLogout)
	mux.Handle("GET /api/auth/me", s.authenticate(http.HandlerFunc(s.handleMe)))

	mux.HandleFunc("GET /api/problems", s.handleListProblems)
	mux.HandleFunc("GET /api/problems/{id}", s.handleGetProblem)
	mux.Handle("POST /api/problems", s.authenticate(s.requireRole(models.RoleAdmin, http.HandlerFunc(s.handleCreateProblem))))

	mux.Handle("PUT /api/admin/users/{id}/role", s.authenticate(s.requireRole(models.RoleAdmin, http.HandlerFunc(s.handleChangeRole))))

	var h http.Handler = mux
	h = s.recoverer(h)
	h = s.requestLogger(h)
	h = correlationID(h)
	return h
}

// Run listens on the configured address and serves until ctx is cancelled,
// then drains in-flight requests for at most ShutdownTimeout.
func (s *HTTPServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.opts.Address)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: s.opts.ReadHeaderTimeout,
	}

	stopped := make(chan error, 1)
	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		sctx, cancel := context.WithTimeout(context.Background(), s.opts.ShutdownTimeout)
		defer cancel()
		stopped <- srv.Shutdown(sctx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return <-stopped
}
