package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/yatra/backend/internal/domain"
	"github.com/yatra/backend/internal/pricing"
)

// Bookings is the booking service as seen by the HTTP layer.
type Bookings interface {
	Quote(ctx context.Context, userID string, req *domain.QuoteRequest) (*pricing.Quote, error)
	Create(ctx context.Context, userID string, req *domain.CreateBookingRequest) (*domain.Booking, error)
	ListForUser(ctx context.Context, userID string, page, limit int, status string) (*domain.BookingPage, error)
	ListAll(ctx context.Context, f domain.BookingFilter) (*domain.BookingPage, error)
	Get(ctx context.Context, userID, role, id string) (*domain.Booking, error)
	CancelByUser(ctx context.Context, userID, id string, req *domain.UserStatusRequest) (*domain.Booking, error)
	AdminUpdate(ctx context.Context, id string, u domain.AdminUpdate) (*domain.Booking, error)
	Stats(ctx context.Context) (*domain.BookingStats, error)
}

// BookingHandler handles booking endpoints for travellers and admins.
type BookingHandler struct {
	svc Bookings
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(svc Bookings) *BookingHandler {
	return &BookingHandler{svc: svc}
}

type bookingResponse struct {
	Message string          `json:"message,omitempty"`
	Booking *domain.Booking `json:"booking"`
}

// Quote handles POST /api/bookings/quote.
func (h *BookingHandler) Quote(w http.ResponseWriter, r *http.Request) {
	userID, _, err := caller(r)
	if err != nil {
		Error(w, err)
		return
	}

	var req domain.QuoteRequest
	if err := DecodeJSON(r, &req); err != nil {
		Error(w, err)
		return
	}

	quote, err := h.svc.Quote(r.Context(), userID, &req)
	if err != nil {
		Error(w, err)
		return
	}

	JSON(w, http.StatusOK, quote)
}

// Create handles POST /api/bookings.
func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, _, err := caller(r)
	if err != nil {
		Error(w, err)
		return
	}

	var req domain.CreateBookingRequest
	if err := DecodeJSON(r, &req); err != nil {
		Error(w, err)
		return
	}

	booking, err := h.svc.Create(r.Context(), userID, &req)
	if err != nil {
		Error(w, err)
		return
	}

	JSON(w, http.StatusCreated, bookingResponse{Message: "Booking created successfully", Booking: booking})
}

// ListMine handles GET /api/bookings/user.
func (h *BookingHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID, _, err := caller(r)
	if err != nil {
		Error(w, err)
		return
	}

	page, err := h.svc.ListForUser(r.Context(), userID,
		queryInt(r, "page", 1),
		queryInt(r, "limit", 10),
		r.URL.Query().Get("status"),
	)
	if err != nil {
		Error(w, err)
		return
	}

	JSON(w, http.StatusOK, page)
}

// Get handles GET /api/bookings/{id}.
func (h *BookingHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, role, err := caller(r)
	if err != nil {
		Error(w, err)
		return
	}

	booking, err := h.svc.Get(r.Context(), userID, role, chi.URLParam(r, "id"))
	if err != nil {
		Error(w, err)
		return
	}

	JSON(w, http.StatusOK, bookingResponse{Booking: booking})
}

// UpdateStatus handles PUT /api/bookings/{id}/status. Travellers may only
// cancel their own pending bookings.
func (h *BookingHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	userID, _, err := caller(r)
	if err != nil {
		Error(w, err)
		return
	}

	var req domain.UserStatusRequest
	if err := DecodeJSON(r, &req); err != nil {
		Error(w, err)
		return
	}

	booking, err := h.svc.CancelByUser(r.Context(), userID, chi.URLParam(r, "id"), &req)
	if err != nil {
		Error(w, err)
		return
	}

	JSON(w, http.StatusOK, bookingResponse{Message: "Booking cancelled successfully", Booking: booking})
}

// ListAll handles GET /api/bookings/all (admin only).
func (h *BookingHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := domain.BookingFilter{
		UserID:        q.Get("userId"),
		DestinationID: q.Get("destinationId"),
		Status:        domain.BookingStatus(q.Get("status")),
		Page:          queryInt(r, "page", 1),
		Limit:         queryInt(r, "limit", 10),
	}

	var err error
	if f.CreatedFrom, err = queryDate(q.Get("startDate"), "startDate", false); err != nil {
		Error(w, err)
		return
	}
	if f.CreatedTo, err = queryDate(q.Get("endDate"), "endDate", true); err != nil {
		Error(w, err)
		return
	}

	page, err := h.svc.ListAll(r.Context(), f)
	if err != nil {
		Error(w, err)
		return
	}

	JSON(w, http.StatusOK, page)
}

// Stats handles GET /api/bookings/stats (admin only).
func (h *BookingHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.Stats(r.Context())
	if err != nil {
		Error(w, err)
		return
	}
	JSON(w, http.StatusOK, stats)
}

// AdminUpdate handles PUT /api/bookings/{id}/admin (admin only).
func (h *BookingHandler) AdminUpdate(w http.ResponseWriter, r *http.Request) {
	var req domain.AdminUpdate
	if err := DecodeJSON(r, &req); err != nil {
		Error(w, err)
		return
	}

	booking, err := h.svc.AdminUpdate(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		Error(w, err)
		return
	}

	JSON(w, http.StatusOK, bookingResponse{Message: "Booking updated successfully", Booking: booking})
}

// queryDate parses an optional date filter. A bare YYYY-MM-DD upper bound
// covers the whole day.
func queryDate(raw, field string, endOfDay bool) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	t, err := domain.ParseTripDate(field, raw)
	if err != nil {
		return nil, err
	}
	if endOfDay && len(raw) == len("2006-01-02") {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}
