package httpapi

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/gophblog/internal/server/auth"
	"github.com/dmitrijs2005/gophblog/internal/server/cookie"
	"github.com/dmitrijs2005/gophblog/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gophblog/internal/server/services"
)

type authFixture struct {
	server *Server
	mock   sqlmock.Sqlmock
	db     *sql.DB
	tokens *auth.Service
	codec  *cookie.Codec
}

// newAuthServer wires a Server whose session layer runs against sqlmock, so
// middleware tests exercise the real codec, token service and users repo.
func newAuthServer(t *testing.T) *authFixture {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}

	s := newBareServer()
	m := repomanager.NewPostgresRepositoryManager()
	tokens := auth.NewService(m.Users(db), []byte(s.cfg.SecretKey), time.Hour)
	codec, err := cookie.NewCodec(make([]byte, 32))
	if err != nil {
		t.Fatalf("NewCodec error: %v", err)
	}
	s.auth = services.NewAuthService(db, m, tokens, codec)
	return &authFixture{server: s, mock: mock, db: db, tokens: tokens, codec: codec}
}

func TestRequireAuth_MissingCookie(t *testing.T) {
	f := newAuthServer(t)
	defer f.db.Close()

	handler := f.server.requireAuth(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("handler must not run")
	})
	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/x", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRequireAuth_GarbageCookie(t *testing.T) {
	f := newAuthServer(t)
	defer f.db.Close()

	handler := f.server.requireAuth(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("handler must not run")
	})
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "garbage"})
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRequireAuth_ValidCookie(t *testing.T) {
	f := newAuthServer(t)
	defer f.db.Close()

	// Issuing advances the counter; validating reads it back.
	f.mock.ExpectQuery(`UPDATE\s+users\s+SET\s+token_version`).
		WithArgs("u-1").
		WillReturnRows(sqlmock.NewRows([]string{"token_version"}).AddRow(int64(1)))
	f.mock.ExpectQuery(`SELECT\s+token_version,\s*token_revoked\s+FROM\s+users`).
		WithArgs("u-1").
		WillReturnRows(sqlmock.NewRows([]string{"token_version", "token_revoked"}).AddRow(int64(1), false))

	token, err := f.tokens.Issue(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	sealed, err := f.codec.Seal(token)
	if err != nil {
		t.Fatalf("Seal error: %v", err)
	}

	var gotSubject string
	handler := f.server.requireAuth(func(w http.ResponseWriter, r *http.Request) {
		gotSubject = subjectID(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: sealed})
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if gotSubject != "u-1" {
		t.Fatalf("expected subject u-1, got %q", gotSubject)
	}
}

func TestMaybeAuth_AnonymousPasses(t *testing.T) {
	f := newAuthServer(t)
	defer f.db.Close()

	ran := false
	handler := f.server.maybeAuth(func(w http.ResponseWriter, r *http.Request) {
		ran = true
		if id := subjectID(r.Context()); id != "" {
			t.Fatalf("expected empty subject, got %q", id)
		}
	})
	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/x", nil))

	if !ran {
		t.Fatalf("handler did not run for anonymous request")
	}
}

func TestMaybeAuth_InvalidCookieRejected(t *testing.T) {
	f := newAuthServer(t)
	defer f.db.Close()

	handler := f.server.maybeAuth(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("handler must not run with an invalid cookie")
	})
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "garbage"})
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestSessionCookie_Attributes(t *testing.T) {
	s := newBareServer()
	s.cfg.CookieSecure = true
	s.cfg.CookieSameSite = "strict"

	c := s.sessionCookie("value", 3600)
	if c.Name != sessionCookieName || c.Value != "value" {
		t.Fatalf("unexpected cookie: %+v", c)
	}
	if !c.HttpOnly || !c.Secure || c.SameSite != http.SameSiteStrictMode {
		t.Fatalf("cookie attributes wrong: %+v", c)
	}

	cleared := s.sessionCookie("", -1)
	if cleared.MaxAge != -1 || cleared.Value != "" {
		t.Fatalf("clearing cookie wrong: %+v", cleared)
	}
}

func TestWithCORS(t *testing.T) {
	s := newBareServer()
	s.cfg.AllowedOrigins = []string{"http://allowed.example"}

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := s.withCORS(next)

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "http://allowed.example")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Header().Get("Access-Control-Allow-Origin") != "http://allowed.example" {
		t.Fatalf("allowed origin not echoed")
	}
	if rec.Header().Get("Access-Control-Allow-Credentials") != "true" {
		t.Fatalf("credentials header missing")
	}

	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "http://evil.example")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Fatalf("foreign origin must not be echoed")
	}

	req = httptest.NewRequest(http.MethodOptions, "/x", nil)
	req.Header.Set("Origin", "http://allowed.example")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("preflight expected 204, got %d", rec.Code)
	}
}
