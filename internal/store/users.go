package store

import (
	"context"
	"database/sql"
	"errors"

	"docscabinet/internal/apperr"
	"docscabinet/internal/models"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
)

const pgUniqueViolation = "23505"

type Users struct {
	db *sqlx.DB
}

func NewUsers(db *sqlx.DB) *Users {
	return &Users{db: db}
}

// ByUsername resolves a username to the stored record, password secret
// included. Callers must never serialize the result as-is.
func (s *Users) ByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	err := s.db.GetContext(ctx, &u, `
		SELECT id, username, first_name, last_name, password_hash, role_id, created_at, updated_at
		FROM users
		WHERE username = $1
	`, username)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.New(apperr.NonExistentUser)
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.Server, err)
	}
	return &u, nil
}

func (s *Users) ByID(ctx context.Context, id int64) (*models.User, error) {
	var u models.User
	err := s.db.GetContext(ctx, &u, `
		SELECT id, username, first_name, last_name, password_hash, role_id, created_at, updated_at
		FROM users
		WHERE id = $1
	`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.New(apperr.UserNotFound)
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.Server, err)
	}
	return &u, nil
}

// Create inserts u and fills in its generated fields.
func (s *Users) Create(ctx context.Context, u *models.User) error {
	err := s.db.QueryRowxContext(ctx, `
		INSERT INTO users (username, first_name, last_name, password_hash, role_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`, u.Username, u.FirstName, u.LastName, u.Password, u.RoleID).
		Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return apperr.New(apperr.UserAlreadyExists)
	}
	if err != nil {
		return apperr.Wrap(apperr.Server, err)
	}
	return nil
}

func (s *Users) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	users := []models.User{}
	err := s.db.SelectContext(ctx, &users, `
		SELECT id, username, first_name, last_name, password_hash, role_id, created_at, updated_at
		FROM users
		ORDER BY id
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, apperr.Wrap(apperr.Server, err)
	}
	return users, nil
}

func (s *Users) Search(ctx context.Context, query string, limit, offset int) ([]models.User, error) {
	users := []models.User{}
	err := s.db.SelectContext(ctx, &users, `
		SELECT id, username, first_name, last_name, password_hash, role_id, created_at, updated_at
		FROM users
		WHERE username ILIKE '%' || $1 || '%'
		ORDER BY id
		LIMIT $2 OFFSET $3
	`, query, limit, offset)
	if err != nil {
		return nil, apperr.Wrap(apperr.Server, err)
	}
	return users, nil
}

func (s *Users) Update(ctx context.Context, u *models.User) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE users
		SET first_name = $1, last_name = $2, password_hash = $3, updated_at = now()
		WHERE id = $4
	`, u.FirstName, u.LastName, u.Password, u.ID)
	if err != nil {
		return apperr.Wrap(apperr.Server, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.New(apperr.UserNotFound)
	}
	return nil
}

func (s *Users) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return apperr.Wrap(apperr.Server, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.New(apperr.UserNotFound)
	}
	return nil
}
