package store

import (
	"context"
	"database/sql"
	"errors"

	"docscabinet/internal/apperr"
	"docscabinet/internal/models"

	"github.com/jmoiron/sqlx"
)

type Documents struct {
	db *sqlx.DB
}

func NewDocuments(db *sqlx.DB) *Documents {
	return &Documents{db: db}
}

// visibleWhere is the SQL form of the read side of the access policy:
// public, owned by the viewer, or role-shared with the viewer. The
// placeholders are the viewer's user id and role id.
const visibleWhere = `(d.access = 'public' OR d.owner_id = $1 OR (d.access = 'role' AND u.role_id = $2))`

func (s *Documents) Create(ctx context.Context, d *models.Document) error {
	err := s.db.QueryRowxContext(ctx, `
		INSERT INTO documents (title, content, access, owner_id, categories, tags)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`, d.Title, d.Content, d.Access, d.OwnerID, d.Categories, d.Tags).
		Scan(&d.ID, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return apperr.Wrap(apperr.Server, err)
	}
	return nil
}

// ByID fetches a document together with its owner's role id, which the
// access policy needs for role-shared reads.
func (s *Documents) ByID(ctx context.Context, id int64) (*models.Document, error) {
	var d models.Document
	err := s.db.GetContext(ctx, &d, `
		SELECT d.id, d.title, d.content, d.access, d.owner_id, d.categories, d.tags,
		       d.created_at, d.updated_at, u.role_id AS owner_role_id
		FROM documents d
		JOIN users u ON u.id = d.owner_id
		WHERE d.id = $1
	`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.New(apperr.DocumentNotFound)
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.Server, err)
	}
	return &d, nil
}

// ListVisible returns the newest documents the viewer may read.
func (s *Documents) ListVisible(ctx context.Context, viewerID, viewerRoleID int64, limit, offset int) ([]models.Document, error) {
	docs := []models.Document{}
	err := s.db.SelectContext(ctx, &docs, `
		SELECT d.id, d.title, d.content, d.access, d.owner_id, d.categories, d.tags,
		       d.created_at, d.updated_at
		FROM documents d
		JOIN users u ON u.id = d.owner_id
		WHERE `+visibleWhere+`
		ORDER BY d.created_at DESC
		LIMIT $3 OFFSET $4
	`, viewerID, viewerRoleID, limit, offset)
	if err != nil {
		return nil, apperr.Wrap(apperr.Server, err)
	}
	return docs, nil
}

// ListByOwner returns ownerID's documents that the viewer may read.
func (s *Documents) ListByOwner(ctx context.Context, ownerID, viewerID, viewerRoleID int64, limit, offset int) ([]models.Document, error) {
	docs := []models.Document{}
	err := s.db.SelectContext(ctx, &docs, `
		SELECT d.id, d.title, d.content, d.access, d.owner_id, d.categories, d.tags,
		       d.created_at, d.updated_at
		FROM documents d
		JOIN users u ON u.id = d.owner_id
		WHERE `+visibleWhere+` AND d.owner_id = $3
		ORDER BY d.created_at DESC
		LIMIT $4 OFFSET $5
	`, viewerID, viewerRoleID, ownerID, limit, offset)
	if err != nil {
		return nil, apperr.Wrap(apperr.Server, err)
	}
	return docs, nil
}

// Search matches visible documents by title substring.
func (s *Documents) Search(ctx context.Context, query string, viewerID, viewerRoleID int64, limit, offset int) ([]models.Document, error) {
	docs := []models.Document{}
	err := s.db.SelectContext(ctx, &docs, `
		SELECT d.id, d.title, d.content, d.access, d.owner_id, d.categories, d.tags,
		       d.created_at, d.updated_at
		FROM documents d
		JOIN users u ON u.id = d.owner_id
		WHERE `+visibleWhere+` AND d.title ILIKE '%' || $3 || '%'
		ORDER BY d.created_at DESC
		LIMIT $4 OFFSET $5
	`, viewerID, viewerRoleID, query, limit, offset)
	if err != nil {
		return nil, apperr.Wrap(apperr.Server, err)
	}
	return docs, nil
}

func (s *Documents) Update(ctx context.Context, d *models.Document) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE documents
		SET title = $1, content = $2, access = $3, categories = $4, tags = $5, updated_at = now()
		WHERE id = $6
	`, d.Title, d.Content, d.Access, d.Categories, d.Tags, d.ID)
	if err != nil {
		return apperr.Wrap(apperr.Server, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.New(apperr.DocumentNotFound)
	}
	return nil
}

func (s *Documents) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM documents WHERE id = $1`, id)
	if err != nil {
		return apperr.Wrap(apperr.Server, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.New(apperr.DocumentNotFound)
	}
	return nil
}
