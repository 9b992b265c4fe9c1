package httpserver

import (
	"context"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/dmitrijs2005/aycode/internal/common"
	"github.com/dmitrijs2005/aycode/internal/server/auth"
	"github.com/dmitrijs2005/aycode/internal/server/models"
	"github.com/google/uuid"
)

type ctxKey string

const correlationIDKey ctxKey = "correlation_id"

// CorrelationID returns the request correlation id stored in ctx.
func CorrelationID(ctx context.Context) string {
	id, _ := ctx.Value(correlationIDKey).(string)
	return id
}

func correlationID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(common.CorrelationIDHeaderName)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(common.CorrelationIDHeaderName, id)

		ctx := context.WithValue(r.Context(), correlationIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

type statusWriter struct {
	http.ResponseWriter
	statusCode  int
	wroteHeader bool
}

func (w *statusWriter) WriteHeader(code int) {
	if !w.wroteHeader {
		w.statusCode = code
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	w.wroteHeader = true
	return w.ResponseWriter.Write(b)
}

func (s *HTTPServer) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ww := &statusWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(ww, r)

		// skip healthy probes
		if r.URL.Path == "/healthz" && ww.statusCode < 400 {
			return
		}

		s.logger.Info(r.Context(), "request handled",
			"correlation_id", CorrelationID(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.statusCode,
			"duration", time.Since(start),
		)
	})
}

func (s *HTTPServer) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				s.logger.Error(r.Context(), "panic recovered",
					"correlation_id", CorrelationID(r.Context()),
					"panic", rec,
					"stack", string(debug.Stack()),
				)
				s.writeError(w, r, common.ErrorInternal)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// tokenFromRequest returns the bearer token from the Authorization header
// or, when the header carries none, the session cookie.
func tokenFromRequest(r *http.Request) string {
	if h := r.Header.Get("Authorization"); h != "" {
		scheme, token, ok := strings.Cut(h, " ")
		if ok && strings.EqualFold(scheme, "Bearer") {
			if token = strings.TrimSpace(token); token != "" {
				return token
			}
		}
	}

	if c, err := r.Cookie(common.SessionCookieName); err == nil {
		return c.Value
	}

	return ""
}

// authenticate is the first gate stage. A request without a valid token is
// answered with 401 and never reaches next.
func (s *HTTPServer) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		claims, err := s.users.Authenticate(ctx, tokenFromRequest(r))
		if err != nil {
			s.logger.Info(ctx, "request not authenticated",
				"correlation_id", CorrelationID(ctx),
				"path", r.URL.Path,
				"reason", err.Error(),
			)
			s.writeError(w, r, err)
			return
		}

		ctx = auth.WithIdentity(ctx, auth.Identity{UserID: claims.UserID(), Email: claims.Email})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireRole is the second gate stage. It must run after authenticate and
// reads the caller's role from the store on every request.
func (s *HTTPServer) requireRole(role models.Role, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		id, ok := auth.IdentityFromContext(ctx)
		if !ok {
			s.writeError(w, r, common.ErrTokenMissing)
			return
		}

		user, err := s.users.Authorize(ctx, id.UserID, role)
		if err != nil {
			s.logger.Info(ctx, "request not authorized",
				"correlation_id", CorrelationID(ctx),
				"user_id", id.UserID,
				"required_role", string(role),
				"reason", err.Error(),
			)
			s.writeError(w, r, err)
			return
		}

		id.Role = user.Role
		next.ServeHTTP(w, r.WithContext(auth.WithIdentity(ctx, id)))
	})
}
