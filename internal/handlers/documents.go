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

type DocumentHandler struct {
	Documents *store.Documents
	Log       *logrus.Logger
}

type createDocumentReq struct {
	Title      string             `json:"title"`
	Content    string             `json:"content"`
	Access     models.AccessLevel `json:"access"`
	Categories []string           `json:"categories"`
	Tags       []string           `json:"tags"`
}

func (h *DocumentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createDocumentReq
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		return
	}

	if req.Access == "" {
		req.Access = models.AccessPrivate
	}
	if err := validateDocumentInput(req.Title, req.Content, req.Access); err != nil {
		utils.Error(w, err)
		return
	}

	principal, _ := middleware.PrincipalFrom(r)

	doc := &models.Document{
		Title:      req.Title,
		Content:    req.Content,
		Access:     req.Access,
		OwnerID:    principal.UserID,
		Categories: req.Categories,
		Tags:       req.Tags,
	}
	if doc.Categories == nil {
		doc.Categories = []string{}
	}
	if doc.Tags == nil {
		doc.Tags = []string{}
	}

	if err := h.Documents.Create(r.Context(), doc); err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, doc)
}

func (h *DocumentHandler) List(w http.ResponseWriter, r *http.Request) {
	principal, _ := middleware.PrincipalFrom(r)
	limit, offset := pageParams(r)

	docs, err := h.Documents.ListVisible(r.Context(), principal.UserID, principal.RoleID, limit, offset)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, docs)
}

func (h *DocumentHandler) Get(w http.ResponseWriter, r *http.Request) {
	doc, err := h.fetchAuthorized(r, auth.OpRead)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, doc)
}

type updateDocumentReq struct {
	Title      *string             `json:"title"`
	Content    *string             `json:"content"`
	Access     *models.AccessLevel `json:"access"`
	Categories *[]string           `json:"categories"`
	Tags       *[]string           `json:"tags"`
}

func (h *DocumentHandler) Update(w http.ResponseWriter, r *http.Request) {
	doc, err := h.fetchAuthorized(r, auth.OpUpdate)
	if err != nil {
		utils.Error(w, err)
		return
	}

	var req updateDocumentReq
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		return
	}

	if req.Title != nil {
		doc.Title = *req.Title
	}
	if req.Content != nil {
		doc.Content = *req.Content
	}
	if req.Access != nil {
		doc.Access = *req.Access
	}
	if req.Categories != nil {
		doc.Categories = *req.Categories
	}
	if req.Tags != nil {
		doc.Tags = *req.Tags
	}

	if err := validateDocumentInput(doc.Title, doc.Content, doc.Access); err != nil {
		utils.Error(w, err)
		return
	}

	if err := h.Documents.Update(r.Context(), doc); err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, doc)
}

func (h *DocumentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	doc, err := h.fetchAuthorized(r, auth.OpDelete)
	if err != nil {
		utils.Error(w, err)
		return
	}

	if err := h.Documents.Delete(r.Context(), doc.ID); err != nil {
		utils.Error(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *DocumentHandler) Search(w http.ResponseWriter, r *http.Request) {
	principal, _ := middleware.PrincipalFrom(r)
	limit, offset := pageParams(r)

	docs, err := h.Documents.Search(r.Context(), r.URL.Query().Get("q"), principal.UserID, principal.RoleID, limit, offset)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, docs)
}

// fetchAuthorized loads the target document and runs the access policy
// for op against the caller.
func (h *DocumentHandler) fetchAuthorized(r *http.Request, op auth.Operation) (*models.Document, error) {
	id, ok := idParam(r)
	if !ok {
		return nil, apperr.New(apperr.DocumentNotFound)
	}

	doc, err := h.Documents.ByID(r.Context(), id)
	if err != nil {
		return nil, err
	}

	principal, _ := middleware.PrincipalFrom(r)
	res := auth.Resource{
		OwnerID:     doc.OwnerID,
		OwnerRoleID: doc.OwnerRoleID,
		Access:      doc.Access,
	}
	if err := auth.Authorize(principal, res, op); err != nil {
		return nil, err
	}
	return doc, nil
}

func validateDocumentInput(title, content string, access models.AccessLevel) error {
	switch {
	case title == "":
		return apperr.New(apperr.MissingTitle)
	case content == "":
		return apperr.New(apperr.MissingContent)
	case !access.Valid():
		return apperr.New(apperr.InvalidAccessLevel)
	}
	return nil
}
