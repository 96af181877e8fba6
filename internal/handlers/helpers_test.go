package handlers

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"docscabinet/internal/auth"
	mw "docscabinet/internal/middleware"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

func sqlErrNoRows() error { return sql.ErrNoRows }

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v any) error {
	t.Helper()
	return json.NewDecoder(rec.Body).Decode(v)
}

func uniqueViolation() error { return &pgconn.PgError{Code: "23505"} }

// testEnv wires the handlers behind the real router and auth middleware,
// backed by a mocked database.
type testEnv struct {
	router http.Handler
	mock   sqlmock.Sqlmock
	issuer *auth.Issuer
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	issuer := auth.NewIssuer("test-secret", tokenTTL)
	h := NewHandler(sqlx.NewDb(db, "sqlmock"), issuer, quietLogger())

	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		r.Use(mw.Authenticate(issuer))

		r.Get("/api/users", h.Users.List)
		r.Get("/api/users/{id}", h.Users.Get)
		r.Put("/api/users/{id}", h.Users.Update)
		r.Delete("/api/users/{id}", h.Users.Delete)
		r.Get("/api/users/{id}/documents", h.Users.ListDocuments)

		r.Post("/api/documents", h.Documents.Create)
		r.Get("/api/documents", h.Documents.List)
		r.Get("/api/documents/{id}", h.Documents.Get)
		r.Put("/api/documents/{id}", h.Documents.Update)
		r.Delete("/api/documents/{id}", h.Documents.Delete)

		r.Get("/api/search/users", h.Users.Search)
		r.Get("/api/search/documents", h.Documents.Search)
	})

	return &testEnv{router: r, mock: mock, issuer: issuer}
}

// do performs a request as the given principal.
func (e *testEnv) do(t *testing.T, method, target string, body any, as auth.Principal) *httptest.ResponseRecorder {
	t.Helper()

	var rd *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	} else {
		rd = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, rd)
	req.Header.Set("Content-Type", "application/json")

	tok, err := e.issuer.Issue(as)
	require.NoError(t, err)
	req.Header.Set(mw.AuthHeader, tok)

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}
