package handlers

import (
	"net/http"
	"strconv"

	"docscabinet/internal/auth"
	"docscabinet/internal/store"

	"github.com/go-chi/chi/v5"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	Auth      *AuthHandler
	Users     *UserHandler
	Documents *DocumentHandler
}

func NewHandler(db *sqlx.DB, issuer *auth.Issuer, log *logrus.Logger) *Handler {
	users := store.NewUsers(db)
	documents := store.NewDocuments(db)

	return &Handler{
		Auth:      &AuthHandler{Users: users, Issuer: issuer, Log: log},
		Users:     &UserHandler{Users: users, Documents: documents, Log: log},
		Documents: &DocumentHandler{Documents: documents, Log: log},
	}
}

const (
	defaultLimit = 20
	maxLimit     = 100
)

// pageParams reads ?limit and ?offset with defaults; junk values fall back
// to the defaults rather than erroring.
func pageParams(r *http.Request) (limit, offset int) {
	limit = defaultLimit
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 {
		limit = v
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("offset")); err == nil && v > 0 {
		offset = v
	}
	return limit, offset
}

func idParam(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil
}
