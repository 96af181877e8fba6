package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"docscabinet/internal/auth"
)

func authedServer(t *testing.T, issuer *auth.Issuer) http.Handler {
	t.Helper()
	return Authenticate(issuer)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, ok := PrincipalFrom(r)
		if !ok {
			t.Fatal("principal missing from context")
		}
		_ = json.NewEncoder(w).Encode(p)
	}))
}

func errorKind(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return body["error"]
}

func TestAuthenticateMissingToken(t *testing.T) {
	issuer := auth.NewIssuer("secret", time.Hour)
	h := authedServer(t, issuer)

	req := httptest.NewRequest(http.MethodGet, "/api/documents", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status: got %d, want 401", rec.Code)
	}
	if kind := errorKind(t, rec); kind != "MissingTokenError" {
		t.Fatalf("error kind: got %s", kind)
	}
}

func TestAuthenticateInvalidToken(t *testing.T) {
	issuer := auth.NewIssuer("secret", time.Hour)
	h := authedServer(t, issuer)

	req := httptest.NewRequest(http.MethodGet, "/api/documents", nil)
	req.Header.Set(AuthHeader, "garbage.token.value")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status: got %d, want 401", rec.Code)
	}
	if kind := errorKind(t, rec); kind != "InvalidTokenError" {
		t.Fatalf("error kind: got %s", kind)
	}
}

func TestAuthenticateWrongSecret(t *testing.T) {
	other := auth.NewIssuer("other-secret", time.Hour)
	tok, err := other.Issue(auth.Principal{UserID: 1})
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	h := authedServer(t, auth.NewIssuer("secret", time.Hour))
	req := httptest.NewRequest(http.MethodGet, "/api/documents", nil)
	req.Header.Set(AuthHeader, tok)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status: got %d, want 401", rec.Code)
	}
	if kind := errorKind(t, rec); kind != "InvalidTokenError" {
		t.Fatalf("error kind: got %s", kind)
	}
}

func TestAuthenticateExpiredToken(t *testing.T) {
	issuer := auth.NewIssuer("secret", time.Hour)

	// Same secret, negative lifetime: expired the moment it was signed.
	expired, err := auth.NewIssuer("secret", -time.Minute).Issue(auth.Principal{UserID: 1})
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	h := authedServer(t, issuer)
	req := httptest.NewRequest(http.MethodGet, "/api/documents", nil)
	req.Header.Set(AuthHeader, expired)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status: got %d, want 401", rec.Code)
	}
	if kind := errorKind(t, rec); kind != "ExpiredTokenError" {
		t.Fatalf("error kind: got %s", kind)
	}
}

func TestAuthenticateValidTokenYieldsPrincipal(t *testing.T) {
	issuer := auth.NewIssuer("secret", time.Hour)
	want := auth.Principal{UserID: 0, RoleID: 0, FirstName: "Lagbaja", LastName: "Anonymous"}
	tok, err := issuer.Issue(want)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	h := authedServer(t, issuer)
	req := httptest.NewRequest(http.MethodGet, "/api/documents", nil)
	req.Header.Set(AuthHeader, tok)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}
	var got auth.Principal
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode principal: %v", err)
	}
	if got != want {
		t.Fatalf("principal: got %+v, want %+v", got, want)
	}
}
