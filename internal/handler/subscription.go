package handler

import (
	"context"
	"net/http"

	"github.com/yatra/backend/internal/domain"
)

// Subscriptions is the subscription service as seen by the HTTP layer.
type Subscriptions interface {
	Plans() []domain.Plan
	Subscribe(ctx context.Context, userID string, req *domain.SubscribeRequest) (*domain.SubscriptionResponse, error)
	Status(ctx context.Context, userID string) (*domain.SubscriptionStatus, error)
	Cancel(ctx context.Context, userID string) (*domain.SubscriptionResponse, error)
}

// SubscriptionHandler handles plan and subscription endpoints.
type SubscriptionHandler struct {
	svc Subscriptions
}

// NewSubscriptionHandler creates a new SubscriptionHandler.
func NewSubscriptionHandler(svc Subscriptions) *SubscriptionHandler {
	return &SubscriptionHandler{svc: svc}
}

// Plans handles GET /api/subscription/plans.
func (h *SubscriptionHandler) Plans(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, map[string][]domain.Plan{"plans": h.svc.Plans()})
}

// Subscribe handles POST /api/subscription/subscribe.
func (h *SubscriptionHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	userID, _, err := caller(r)
	if err != nil {
		Error(w, err)
		return
	}

	var req domain.SubscribeRequest
	if err := DecodeJSON(r, &req); err != nil {
		Error(w, err)
		return
	}

	resp, err := h.svc.Subscribe(r.Context(), userID, &req)
	if err != nil {
		Error(w, err)
		return
	}

	JSON(w, http.StatusOK, resp)
}

// Status handles GET /api/subscription/status.
func (h *SubscriptionHandler) Status(w http.ResponseWriter, r *http.Request) {
	userID, _, err := caller(r)
	if err != nil {
		Error(w, err)
		return
	}

	status, err := h.svc.Status(r.Context(), userID)
	if err != nil {
		Error(w, err)
		return
	}

	JSON(w, http.StatusOK, status)
}

// Cancel handles DELETE /api/subscription/cancel.
func (h *SubscriptionHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	userID, _, err := caller(r)
	if err != nil {
		Error(w, err)
		return
	}

	resp, err := h.svc.Cancel(r.Context(), userID)
	if err != nil {
		Error(w, err)
		return
	}

	JSON(w, http.StatusOK, resp)
}
