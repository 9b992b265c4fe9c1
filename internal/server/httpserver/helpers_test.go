package httpserver

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmitrijs2005/aycode/internal/common"
	"github.com/dmitrijs2005/aycode/internal/logging"
	"github.com/dmitrijs2005/aycode/internal/server/auth"
	"github.com/dmitrijs2005/aycode/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/aycode/internal/server/repositories/repotest"
	"github.com/dmitrijs2005/aycode/internal/server/services"
	"github.com/stretchr/testify/require"
	"github.com/thejerf/abtime"
	"golang.org/x/crypto/bcrypt"
)

var issuedAt = time.Unix(1700000000, 0)

type fixture struct {
	t      *testing.T
	db     *sql.DB
	clock  *abtime.ManualTime
	tokens *auth.TokenManager
	users  *services.UserService
	server *HTTPServer
	h      http.Handler
}

func newFixture(t *testing.T, opts Options) *fixture {
	t.Helper()

	db := repotest.OpenSQLite(t)
	clock := abtime.NewManualAtTime(issuedAt)

	tokens, err := auth.NewTokenManager([]byte("http-test-key"), time.Hour, clock)
	require.NoError(t, err)
	hasher, err := auth.NewPasswordHasher(bcrypt.MinCost)
	require.NoError(t, err)

	m := repomanager.NewSQLiteRepositoryManager()
	us := services.NewUserService(db, m, tokens, hasher, 2*time.Second, logging.Nop())
	ps := services.NewProblemService(db, m, 2*time.Second, logging.Nop())

	srv := NewHTTPServer(opts, logging.Nop(), us, ps)

	return &fixture{t: t, db: db, clock: clock, tokens: tokens, users: us, server: srv, h: srv.Handler()}
}

type reqOpt func(*http.Request)

func withBearer(token string) reqOpt {
	return func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+token) }
}

func withCookie(token string) reqOpt {
	return func(r *http.Request) { r.AddCookie(&http.Cookie{Name: common.SessionCookieName, Value: token}) }
}

func (f *fixture) do(method, path string, body any, opts ...reqOpt) *httptest.ResponseRecorder {
	f.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(f.t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, o := range opts {
		o(req)
	}

	rec := httptest.NewRecorder()
	f.h.ServeHTTP(rec, req)
	return rec
}

func registration(email string) map[string]any {
	return map[string]any{
		"name":         "Alice",
		"email":        email,
		"phonenumber":  "5550100",
		"dateofbirth":  "1990-01-01",
		"password":     "correct horse",
		"gender":       "female",
		"subscription": "free",
	}
}

// register creates a user and returns its id.
func (f *fixture) register(email string) string {
	f.t.Helper()

	rec := f.do(http.MethodPost, "/api/auth/register", registration(email))
	require.Equal(f.t, http.StatusCreated, rec.Code, rec.Body.String())

	var id string
	require.NoError(f.t, f.db.QueryRow(`SELECT id FROM users WHERE email = ?`, email).Scan(&id))
	return id
}

// login returns the session cookie issued for email.
func (f *fixture) login(email string) *http.Cookie {
	f.t.Helper()

	rec := f.do(http.MethodPost, "/api/auth/login", map[string]any{"email": email, "password": "correct horse"})
	require.Equal(f.t, http.StatusOK, rec.Code, rec.Body.String())

	return sessionCookie(f.t, rec)
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == common.SessionCookieName {
			return c
		}
	}
	t.Fatal("no session cookie in response")
	return nil
}

const unauthorizedBody = `{"error":"unauthorized"}`
