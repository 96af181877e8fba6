package auth

import (
	"docscabinet/internal/apperr"
	"docscabinet/internal/models"
)

type Operation string

const (
	OpRead   Operation = "read"
	OpUpdate Operation = "update"
	OpDelete Operation = "delete"
)

// Resource is the slice of a document the access decision needs: who owns
// it, that owner's role, and its access level.
type Resource struct {
	OwnerID     int64
	OwnerRoleID int64
	Access      models.AccessLevel
}

// Authorize decides whether p may perform op on res.
//
// The owner is always allowed. Non-owners may only read, and only when the
// document is public or shares the owner's role. There is no admin bypass.
func Authorize(p Principal, res Resource, op Operation) error {
	if p.UserID == res.OwnerID {
		return nil
	}

	if op != OpRead {
		return apperr.New(apperr.Forbidden)
	}

	switch res.Access {
	case models.AccessPublic:
		return nil
	case models.AccessRole:
		if p.RoleID == res.OwnerRoleID {
			return nil
		}
	}
	return apperr.New(apperr.Forbidden)
}
