package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/yatra/backend/internal/domain"
)

// Comments is the comment service as seen by the HTTP layer.
type Comments interface {
	Create(ctx context.Context, userID string, req *domain.CommentRequest) (*domain.Comment, error)
	ListForPlace(ctx context.Context, placeID string, page, limit int) (*domain.CommentPage, error)
	ListForUser(ctx context.Context, userID string, page, limit int) (*domain.CommentPage, error)
	Update(ctx context.Context, userID, id string, u *domain.CommentUpdate) (*domain.Comment, error)
	Delete(ctx context.Context, userID, id string) error
	AdminDelete(ctx context.Context, id string) error
	ToggleLike(ctx context.Context, userID, id string) (*domain.LikeResult, error)
}

// CommentHandler handles place discussion endpoints.
type CommentHandler struct {
	svc Comments
}

// NewCommentHandler creates a new CommentHandler.
func NewCommentHandler(svc Comments) *CommentHandler {
	return &CommentHandler{svc: svc}
}

type commentResponse struct {
	Message string          `json:"message,omitempty"`
	Comment *domain.Comment `json:"comment"`
}

// Create handles POST /api/comments.
func (h *CommentHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, _, err := caller(r)
	if err != nil {
		Error(w, err)
		return
	}

	var req domain.CommentRequest
	if err := DecodeJSON(r, &req); err != nil {
		Error(w, err)
		return
	}

	comment, err := h.svc.Create(r.Context(), userID, &req)
	if err != nil {
		Error(w, err)
		return
	}
	JSON(w, http.StatusCreated, commentResponse{Message: "Comment posted successfully", Comment: comment})
}

// ListForPlace handles GET /api/comments/place/{placeId}.
func (h *CommentHandler) ListForPlace(w http.ResponseWriter, r *http.Request) {
	page, err := h.svc.ListForPlace(r.Context(), chi.URLParam(r, "placeId"),
		queryInt(r, "page", 1), queryInt(r, "limit", 10))
	if err != nil {
		Error(w, err)
		return
	}
	JSON(w, http.StatusOK, page)
}

// ListMine handles GET /api/comments/user.
func (h *CommentHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID, _, err := caller(r)
	if err != nil {
		Error(w, err)
		return
	}

	page, err := h.svc.ListForUser(r.Context(), userID, queryInt(r, "page", 1), queryInt(r, "limit", 10))
	if err != nil {
		Error(w, err)
		return
	}
	JSON(w, http.StatusOK, page)
}

// Update handles PUT /api/comments/{id}.
func (h *CommentHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, _, err := caller(r)
	if err != nil {
		Error(w, err)
		return
	}

	var u domain.CommentUpdate
	if err := DecodeJSON(r, &u); err != nil {
		Error(w, err)
		return
	}

	comment, err := h.svc.Update(r.Context(), userID, chi.URLParam(r, "id"), &u)
	if err != nil {
		Error(w, err)
		return
	}
	JSON(w, http.StatusOK, commentResponse{Message: "Comment updated successfully", Comment: comment})
}

// Delete handles DELETE /api/comments/{id}.
func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, _, err := caller(r)
	if err != nil {
		Error(w, err)
		return
	}

	if err := h.svc.Delete(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		Error(w, err)
		return
	}
	JSON(w, http.StatusOK, map[string]bool{"success": true})
}

// AdminDelete handles DELETE /api/comments/{id}/admin.
func (h *CommentHandler) AdminDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.AdminDelete(r.Context(), chi.URLParam(r, "id")); err != nil {
		Error(w, err)
		return
	}
	JSON(w, http.StatusOK, map[string]bool{"success": true})
}

// Like handles POST /api/comments/{id}/like.
func (h *CommentHandler) Like(w http.ResponseWriter, r *http.Request) {
	userID, _, err := caller(r)
	if err != nil {
		Error(w, err)
		return
	}

	result, err := h.svc.ToggleLike(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		Error(w, err)
		return
	}
	JSON(w, http.StatusOK, result)
}
