package handlers

import (
	"net/http"
	"testing"
	"time"

	"docscabinet/internal/auth"
	"docscabinet/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func TestGetUserOmitsPasswordSecret(t *testing.T) {
	e := newTestEnv(t)
	now := time.Now()

	e.mock.ExpectQuery(`SELECT (.+) FROM users WHERE id = \$1`).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows(userCols).
			AddRow(int64(3), "ada@example.com", "Ada", "Obi", "$2a$10$secret", int64(1), now, now))

	rec := e.do(t, http.MethodGet, "/api/users/3", nil, auth.Principal{UserID: 1, RoleID: 1})
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, decodeBody(t, rec, &body))
	require.NotContains(t, body, "password")
	require.NotContains(t, body, "password_hash")
	require.Equal(t, "ada@example.com", body["username"])
}

func TestGetUserNotFound(t *testing.T) {
	e := newTestEnv(t)

	e.mock.ExpectQuery(`SELECT (.+) FROM users WHERE id = \$1`).
		WithArgs(int64(99)).
		WillReturnError(sqlErrNoRows())

	rec := e.do(t, http.MethodGet, "/api/users/99", nil, auth.Principal{UserID: 1, RoleID: 1})
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "UserNotFoundError", decodeError(t, rec))
}

func TestUpdateUserSelfOnly(t *testing.T) {
	e := newTestEnv(t)

	rec := e.do(t, http.MethodPut, "/api/users/3",
		map[string]string{"firstName": "Hijack"},
		auth.Principal{UserID: 1, RoleID: 1})

	require.Equal(t, http.StatusForbidden, rec.Code)
	require.Equal(t, "ForbiddenError", decodeError(t, rec))
	// Nothing may touch the database on a forbidden update.
	require.NoError(t, e.mock.ExpectationsWereMet())
}

func TestUpdateUserSelf(t *testing.T) {
	e := newTestEnv(t)
	now := time.Now()

	e.mock.ExpectQuery(`SELECT (.+) FROM users WHERE id = \$1`).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows(userCols).
			AddRow(int64(3), "ada@example.com", "Ada", "Obi", "hash", int64(1), now, now))
	e.mock.ExpectExec(`UPDATE users SET first_name = \$1, last_name = \$2, password_hash = \$3`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	rec := e.do(t, http.MethodPut, "/api/users/3",
		map[string]string{"firstName": "Adaeze"},
		auth.Principal{UserID: 3, RoleID: 1})

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, decodeBody(t, rec, &body))
	require.Equal(t, "Adaeze", body["firstName"])
	require.Equal(t, "Obi", body["lastName"])
}

func TestDeleteUserSelf(t *testing.T) {
	e := newTestEnv(t)

	e.mock.ExpectExec(`DELETE FROM users WHERE id = \$1`).
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	rec := e.do(t, http.MethodDelete, "/api/users/3", nil, auth.Principal{UserID: 3, RoleID: 1})
	require.Equal(t, http.StatusNoContent, rec.Code)
}

func TestDeleteUserByAdmin(t *testing.T) {
	e := newTestEnv(t)

	e.mock.ExpectExec(`DELETE FROM users WHERE id = \$1`).
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	admin := auth.Principal{UserID: 1, RoleID: models.RoleAdmin}
	rec := e.do(t, http.MethodDelete, "/api/users/3", nil, admin)
	require.Equal(t, http.StatusNoContent, rec.Code)
}

func TestDeleteUserForbiddenForOtherRegular(t *testing.T) {
	e := newTestEnv(t)

	rec := e.do(t, http.MethodDelete, "/api/users/3", nil, auth.Principal{UserID: 1, RoleID: models.RoleRegular})
	require.Equal(t, http.StatusForbidden, rec.Code)
	require.Equal(t, "ForbiddenError", decodeError(t, rec))
}

func TestListUserDocumentsScopedToViewer(t *testing.T) {
	e := newTestEnv(t)
	now := time.Now()

	cols := []string{"id", "title", "content", "access", "owner_id", "categories", "tags", "created_at", "updated_at"}
	e.mock.ExpectQuery(`SELECT (.+) FROM documents d JOIN users u ON u.id = d.owner_id WHERE (.+) AND d.owner_id = \$3`).
		WithArgs(int64(9), int64(1), int64(3), 20, 0).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow(int64(1), "Shared", "x", "public", int64(3), "{}", "{}", now, now))

	rec := e.do(t, http.MethodGet, "/api/users/3/documents", nil, auth.Principal{UserID: 9, RoleID: 1})
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, e.mock.ExpectationsWereMet())
}

func TestSearchUsers(t *testing.T) {
	e := newTestEnv(t)
	now := time.Now()

	e.mock.ExpectQuery(`SELECT (.+) FROM users WHERE username ILIKE`).
		WithArgs("ada", 20, 0).
		WillReturnRows(sqlmock.NewRows(userCols).
			AddRow(int64(3), "ada@example.com", "Ada", "Obi", "hash", int64(1), now, now))

	rec := e.do(t, http.MethodGet, "/api/search/users?q=ada", nil, auth.Principal{UserID: 1, RoleID: 1})
	require.Equal(t, http.StatusOK, rec.Code)

	var users []map[string]any
	require.NoError(t, decodeBody(t, rec, &users))
	require.Len(t, users, 1)
}
