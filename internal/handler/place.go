package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/yatra/backend/internal/domain"
)

// Places serves destination and place content and its administration.
type Places interface {
	Destination(ctx context.Context, id string) (*domain.DestinationSummary, error)
	Place(ctx context.Context, id string) (*domain.PlaceDetail, error)
	ListDestinations(ctx context.Context, f domain.DestinationFilter) (*domain.DestinationPage, error)
	Regions(ctx context.Context) ([]string, error)
	PlacesByDestination(ctx context.Context, destinationID string, page, limit int) (*domain.PlacePage, error)
	SearchPlaces(ctx context.Context, query string, page, limit int) (*domain.PlacePage, error)
	FeaturedPlaces(ctx context.Context, limit int) ([]domain.PlaceSummary, error)
	CreateDestination(ctx context.Context, req *domain.DestinationRequest) (*domain.Destination, error)
	UpdateDestination(ctx context.Context, id string, u *domain.DestinationUpdate) (*domain.Destination, error)
	DeleteDestination(ctx context.Context, id string) error
	CreatePlace(ctx context.Context, req *domain.PlaceRequest) (*domain.Place, error)
	UpdatePlace(ctx context.Context, id string, u *domain.PlaceUpdate) (*domain.Place, error)
	DeletePlace(ctx context.Context, id string) error
}

// PlaceHandler handles destination and place endpoints.
type PlaceHandler struct {
	svc Places
}

// NewPlaceHandler creates a new PlaceHandler.
func NewPlaceHandler(svc Places) *PlaceHandler {
	return &PlaceHandler{svc: svc}
}

// ListDestinations handles GET /api/destinations.
func (h *PlaceHandler) ListDestinations(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	featured, _ := strconv.ParseBool(q.Get("featured"))
	f := domain.DestinationFilter{
		Region:   q.Get("region"),
		Search:   q.Get("search"),
		Featured: featured,
		Page:     queryInt(r, "page", 1),
		Limit:    queryInt(r, "limit", 10),
	}

	page, err := h.svc.ListDestinations(r.Context(), f)
	if err != nil {
		Error(w, err)
		return
	}
	JSON(w, http.StatusOK, page)
}

// Regions handles GET /api/destinations/regions.
func (h *PlaceHandler) Regions(w http.ResponseWriter, r *http.Request) {
	regions, err := h.svc.Regions(r.Context())
	if err != nil {
		Error(w, err)
		return
	}
	JSON(w, http.StatusOK, map[string][]string{"regions": regions})
}

// Destination handles GET /api/destinations/{id}.
func (h *PlaceHandler) Destination(w http.ResponseWriter, r *http.Request) {
	summary, err := h.svc.Destination(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		Error(w, err)
		return
	}
	JSON(w, http.StatusOK, summary)
}

// PlacesByDestination handles GET /api/places/destination/{id}.
func (h *PlaceHandler) PlacesByDestination(w http.ResponseWriter, r *http.Request) {
	page, err := h.svc.PlacesByDestination(r.Context(), chi.URLParam(r, "id"),
		queryInt(r, "page", 1), queryInt(r, "limit", 10))
	if err != nil {
		Error(w, err)
		return
	}
	JSON(w, http.StatusOK, page)
}

// Search handles GET /api/places/search?q=.
func (h *PlaceHandler) Search(w http.ResponseWriter, r *http.Request) {
	page, err := h.svc.SearchPlaces(r.Context(), r.URL.Query().Get("q"),
		queryInt(r, "page", 1), queryInt(r, "limit", 10))
	if err != nil {
		Error(w, err)
		return
	}
	JSON(w, http.StatusOK, page)
}

// Featured handles GET /api/places/featured.
func (h *PlaceHandler) Featured(w http.ResponseWriter, r *http.Request) {
	places, err := h.svc.FeaturedPlaces(r.Context(), queryInt(r, "limit", 6))
	if err != nil {
		Error(w, err)
		return
	}
	JSON(w, http.StatusOK, map[string][]domain.PlaceSummary{"places": places})
}

// Place handles GET /api/places/{id}. Routed behind the subscription gate.
func (h *PlaceHandler) Place(w http.ResponseWriter, r *http.Request) {
	detail, err := h.svc.Place(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		Error(w, err)
		return
	}
	JSON(w, http.StatusOK, detail)
}

// CreateDestination handles POST /api/admin/destinations.
func (h *PlaceHandler) CreateDestination(w http.ResponseWriter, r *http.Request) {
	var req domain.DestinationRequest
	if err := DecodeJSON(r, &req); err != nil {
		Error(w, err)
		return
	}

	d, err := h.svc.CreateDestination(r.Context(), &req)
	if err != nil {
		Error(w, err)
		return
	}
	JSON(w, http.StatusCreated, map[string]*domain.Destination{"destination": d})
}

// UpdateDestination handles PUT /api/admin/destinations/{id}.
func (h *PlaceHandler) UpdateDestination(w http.ResponseWriter, r *http.Request) {
	var u domain.DestinationUpdate
	if err := DecodeJSON(r, &u); err != nil {
		Error(w, err)
		return
	}

	d, err := h.svc.UpdateDestination(r.Context(), chi.URLParam(r, "id"), &u)
	if err != nil {
		Error(w, err)
		return
	}
	JSON(w, http.StatusOK, map[string]*domain.Destination{"destination": d})
}

// DeleteDestination handles DELETE /api/admin/destinations/{id}.
func (h *PlaceHandler) DeleteDestination(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteDestination(r.Context(), chi.URLParam(r, "id")); err != nil {
		Error(w, err)
		return
	}
	JSON(w, http.StatusOK, map[string]bool{"success": true})
}

// CreatePlace handles POST /api/admin/places.
func (h *PlaceHandler) CreatePlace(w http.ResponseWriter, r *http.Request) {
	var req domain.PlaceRequest
	if err := DecodeJSON(r, &req); err != nil {
		Error(w, err)
		return
	}

	p, err := h.svc.CreatePlace(r.Context(), &req)
	if err != nil {
		Error(w, err)
		return
	}
	JSON(w, http.StatusCreated, map[string]*domain.Place{"place": p})
}

// UpdatePlace handles PUT /api/admin/places/{id}.
func (h *PlaceHandler) UpdatePlace(w http.ResponseWriter, r *http.Request) {
	var u domain.PlaceUpdate
	if err := DecodeJSON(r, &u); err != nil {
		Error(w, err)
		return
	}

	p, err := h.svc.UpdatePlace(r.Context(), chi.URLParam(r, "id"), &u)
	if err != nil {
		Error(w, err)
		return
	}
	JSON(w, http.StatusOK, map[string]*domain.Place{"place": p})
}

// DeletePlace handles DELETE /api/admin/places/{id}.
func (h *PlaceHandler) DeletePlace(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeletePlace(r.Context(), chi.URLParam(r, "id")); err != nil {
		Error(w, err)
		return
	}
	JSON(w, http.StatusOK, map[string]bool{"success": true})
}
