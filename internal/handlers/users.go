package handlers

import (
	"net/http"

	"docscabinet/internal/apperr"
	"docscabinet/internal/auth"
	"docscabinet/internal/middleware"
	"docscabinet/internal/models"
	"docscabinet/internal/store"
	"docscabinet/internal/utils"

	"github.com/sirupsen/logrus"
)

type UserHandler struct {
	Users     *store.Users
	Documents *store.Documents
	Log       *logrus.Logger
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := pageParams(r)

	users, err := h.Users.List(r.Context(), limit, offset)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, users)
}

func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		utils.Error(w, apperr.New(apperr.UserNotFound))
		return
	}

	u, err := h.Users.ByID(r.Context(), id)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, u)
}

type updateUserReq struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Password  *string `json:"password"`
}

// Update modifies the caller's own profile. Nobody edits another account.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		utils.Error(w, apperr.New(apperr.UserNotFound))
		return
	}

	principal, _ := middleware.PrincipalFrom(r)
	if principal.UserID != id {
		utils.Error(w, apperr.New(apperr.Forbidden))
		return
	}

	var req updateUserReq
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		return
	}

	u, err := h.Users.ByID(r.Context(), id)
	if err != nil {
		utils.Error(w, err)
		return
	}

	if req.FirstName != nil {
		u.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		u.LastName = *req.LastName
	}
	if req.Password != nil {
		if *req.Password == "" {
			utils.Error(w, apperr.New(apperr.MissingPassword))
			return
		}
		hash, err := auth.HashPassword(*req.Password)
		if err != nil {
			h.Log.WithError(err).Error("password hashing failed")
			utils.Error(w, apperr.Wrap(apperr.Server, err))
			return
		}
		u.Password = hash
	}

	if err := h.Users.Update(r.Context(), u); err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, u)
}

// Delete removes an account. Allowed for the account itself and for
// admins; deletion cascades to the account's documents.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		utils.Error(w, apperr.New(apperr.UserNotFound))
		return
	}

	principal, _ := middleware.PrincipalFrom(r)
	if principal.UserID != id && principal.RoleID != models.RoleAdmin {
		utils.Error(w, apperr.New(apperr.Forbidden))
		return
	}

	if err := h.Users.Delete(r.Context(), id); err != nil {
		utils.Error(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListDocuments returns the target user's documents that the caller may
// read.
func (h *UserHandler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		utils.Error(w, apperr.New(apperr.UserNotFound))
		return
	}

	principal, _ := middleware.PrincipalFrom(r)
	limit, offset := pageParams(r)

	docs, err := h.Documents.ListByOwner(r.Context(), id, principal.UserID, principal.RoleID, limit, offset)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, docs)
}

func (h *UserHandler) Search(w http.ResponseWriter, r *http.Request) {
	limit, offset := pageParams(r)

	users, err := h.Users.Search(r.Context(), r.URL.Query().Get("q"), limit, offset)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, users)
}
