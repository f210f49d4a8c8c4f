package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/yatra/backend/internal/domain"
)

// Reviews is the review service as seen by the HTTP layer.
type Reviews interface {
	Create(ctx context.Context, userID string, req *domain.ReviewRequest) (*domain.Review, error)
	ListForPlace(ctx context.Context, placeID string, sort domain.ReviewSort, page, limit int) (*domain.ReviewPage, error)
	ListForUser(ctx context.Context, userID string, page, limit int) (*domain.ReviewPage, error)
	Update(ctx context.Context, userID, id string, u *domain.ReviewUpdate) (*domain.Review, error)
	Delete(ctx context.Context, userID, id string) error
	AdminDelete(ctx context.Context, id string) error
	ToggleHelpful(ctx context.Context, userID, id string) (*domain.HelpfulResult, error)
}

// ReviewHandler handles review endpoints.
type ReviewHandler struct {
	svc Reviews
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(svc Reviews) *ReviewHandler {
	return &ReviewHandler{svc: svc}
}

type reviewResponse struct {
	Message string         `json:"message,omitempty"`
	Review  *domain.Review `json:"review"`
}

// Create handles POST /api/reviews.
func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, _, err := caller(r)
	if err != nil {
		Error(w, err)
		return
	}

	var req domain.ReviewRequest
	if err := DecodeJSON(r, &req); err != nil {
		Error(w, err)
		return
	}

	review, err := h.svc.Create(r.Context(), userID, &req)
	if err != nil {
		Error(w, err)
		return
	}
	JSON(w, http.StatusCreated, reviewResponse{Message: "Review created successfully", Review: review})
}

// ListForPlace handles GET /api/reviews/place/{placeId}.
func (h *ReviewHandler) ListForPlace(w http.ResponseWriter, r *http.Request) {
	sort := domain.ReviewSort(r.URL.Query().Get("sort"))
	page, err := h.svc.ListForPlace(r.Context(), chi.URLParam(r, "placeId"), sort,
		queryInt(r, "page", 1), queryInt(r, "limit", 10))
	if err != nil {
		Error(w, err)
		return
	}
	JSON(w, http.StatusOK, page)
}

// ListMine handles GET /api/reviews/user.
func (h *ReviewHandler) ListMine(w http.ResponseWriter, r *http.Request) {
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

// Update handles PUT /api/reviews/{id}.
func (h *ReviewHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, _, err := caller(r)
	if err != nil {
		Error(w, err)
		return
	}

	var u domain.ReviewUpdate
	if err := DecodeJSON(r, &u); err != nil {
		Error(w, err)
		return
	}

	review, err := h.svc.Update(r.Context(), userID, chi.URLParam(r, "id"), &u)
	if err != nil {
		Error(w, err)
		return
	}
	JSON(w, http.StatusOK, reviewResponse{Message: "Review updated successfully", Review: review})
}

// Delete handles DELETE /api/reviews/{id}.
func (h *ReviewHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

// AdminDelete handles DELETE /api/reviews/{id}/admin.
func (h *ReviewHandler) AdminDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.AdminDelete(r.Context(), chi.URLParam(r, "id")); err != nil {
		Error(w, err)
		return
	}
	JSON(w, http.StatusOK, map[string]bool{"success": true})
}

// Helpful handles POST /api/reviews/{id}/helpful.
func (h *ReviewHandler) Helpful(w http.ResponseWriter, r *http.Request) {
	userID, _, err := caller(r)
	if err != nil {
		Error(w, err)
		return
	}

	result, err := h.svc.ToggleHelpful(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		Error(w, err)
		return
	}
	JSON(w, http.StatusOK, result)
}
