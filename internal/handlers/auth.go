package handlers

import (
	"net/http"

	"docscabinet/internal/apperr"
	"docscabinet/internal/auth"
	"docscabinet/internal/models"
	"docscabinet/internal/store"
	"docscabinet/internal/utils"

	"github.com/sirupsen/logrus"
)

type AuthHandler struct {
	Users  *store.Users
	Issuer *auth.Issuer
	Log    *logrus.Logger
}

type loginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type signUpReq struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Username  string `json:"username"`
	Password  string `json:"password"`
}

// sessionResp pairs the public user info with a freshly signed token. The
// user field intentionally mirrors the token claims.
type sessionResp struct {
	User  auth.Principal `json:"user"`
	Token string         `json:"token"`
}

// Login runs the login pipeline: input validation, user lookup, password
// verification, token issuance. Each step fails fast.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		return
	}

	if err := auth.ValidateLogin(req.Username, req.Password); err != nil {
		utils.Error(w, err)
		return
	}

	u, err := h.Users.ByUsername(r.Context(), req.Username)
	if err != nil {
		utils.Error(w, err)
		return
	}

	if err := auth.VerifyPassword(u.Password, req.Password); err != nil {
		utils.Error(w, err)
		return
	}

	principal := auth.Principal{
		UserID:    u.ID,
		RoleID:    u.RoleID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}

	token, err := h.Issuer.Issue(principal)
	if err != nil {
		h.Log.WithError(err).Error("token signing failed")
		utils.Error(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, sessionResp{User: principal, Token: token})
}

// SignUp creates a regular-role account and logs it in immediately.
func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req signUpReq
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		return
	}

	if err := validateSignUp(req); err != nil {
		utils.Error(w, err)
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		h.Log.WithError(err).Error("password hashing failed")
		utils.Error(w, apperr.Wrap(apperr.Server, err))
		return
	}

	u := &models.User{
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  hash,
		RoleID:    models.RoleRegular,
	}

	if err := h.Users.Create(r.Context(), u); err != nil {
		utils.Error(w, err)
		return
	}

	principal := auth.Principal{
		UserID:    u.ID,
		RoleID:    u.RoleID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}

	token, err := h.Issuer.Issue(principal)
	if err != nil {
		h.Log.WithError(err).Error("token signing failed")
		utils.Error(w, err)
		return
	}

	utils.JSON(w, http.StatusCreated, sessionResp{User: principal, Token: token})
}

func validateSignUp(req signUpReq) error {
	switch {
	case req.FirstName == "":
		return apperr.New(apperr.MissingFirstName)
	case req.LastName == "":
		return apperr.New(apperr.MissingLastName)
	case req.Username == "":
		return apperr.New(apperr.MissingUsername)
	case req.Password == "":
		return apperr.New(apperr.MissingPassword)
	case !auth.ValidEmail(req.Username):
		return apperr.New(apperr.InvalidUsername)
	}
	return nil
}
