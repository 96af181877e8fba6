package models

import (
	"time"

	"github.com/lib/pq"
)

// AccessLevel is the per-document visibility classification.
type AccessLevel string

const (
	AccessPublic  AccessLevel = "public"
	AccessPrivate AccessLevel = "private"
	AccessRole    AccessLevel = "role"
)

func (a AccessLevel) Valid() bool {
	switch a {
	case AccessPublic, AccessPrivate, AccessRole:
		return true
	}
	return false
}

type Document struct {
	ID         int64          `db:"id" json:"id"`
	Title      string         `db:"title" json:"title"`
	Content    string         `db:"content" json:"content"`
	Access     AccessLevel    `db:"access" json:"access"`
	OwnerID    int64          `db:"owner_id" json:"ownerId"`
	Categories pq.StringArray `db:"categories" json:"categories"`
	Tags       pq.StringArray `db:"tags" json:"tags"`
	CreatedAt  time.Time      `db:"created_at" json:"createdAt"`
	UpdatedAt  time.Time      `db:"updated_at" json:"updatedAt"`

	// OwnerRoleID is joined in by the document store for access checks.
	// It is never part of the response body.
	OwnerRoleID int64 `db:"owner_role_id" json:"-"`
}
