package service

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/yatra/backend/internal/domain"
)

const (
	defaultFeaturedLimit = 6
	maxFeaturedLimit     = 24
	defaultCurrency      = "INR"
)

// DestinationCache holds public destination summaries. Get returns nil, nil
// on a miss.
type DestinationCache interface {
	GetDestination(ctx context.Context, id string) (*domain.DestinationSummary, error)
	SetDestination(ctx context.Context, summary *domain.DestinationSummary) error
	DeleteDestination(ctx context.Context, id string) error
}

// PlaceService serves destination and place content and its administration.
type PlaceService struct {
	places   CatalogueStore
	cache    DestinationCache
	validate *validator.Validate
	now      func() time.Time
}

// NewPlaceService creates a new PlaceService. cache may be nil.
func NewPlaceService(places CatalogueStore, cache DestinationCache) *PlaceService {
	return &PlaceService{
		places:   places,
		cache:    cache,
		validate: newValidator(),
		now:      time.Now,
	}
}

// Destination returns the public summary of a destination.
func (s *PlaceService) Destination(ctx context.Context, id string) (*domain.DestinationSummary, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetDestination(ctx, id); err == nil && cached != nil {
			return cached, nil
		} else if err != nil {
			log.Printf("⚠️  Destination cache read failed for %s: %v", id, err)
		}
	}

	dest, err := s.places.FindDestination(ctx, id)
	if err != nil {
		return nil, domain.ErrInternal("failed to find destination", err)
	}
	if dest == nil || !dest.IsActive {
		return nil, domain.ErrNotFound("destination not found")
	}

	places, err := s.places.ListPlaceSummaries(ctx, id)
	if err != nil {
		return nil, domain.ErrInternal("failed to list places", err)
	}
	summary := &domain.DestinationSummary{Destination: dest, Places: places}

	if s.cache != nil {
		if err := s.cache.SetDestination(ctx, summary); err != nil {
			log.Printf("⚠️  Destination cache write failed for %s: %v", id, err)
		}
	}
	return summary, nil
}

// ListDestinations returns one page of active destinations.
func (s *PlaceService) ListDestinations(ctx context.Context, f domain.DestinationFilter) (*domain.DestinationPage, error) {
	f.Page, f.Limit = pageBounds(f.Page, f.Limit)

	destinations, total, err := s.places.ListDestinations(ctx, f)
	if err != nil {
		return nil, domain.ErrInternal("failed to list destinations", err)
	}
	return &domain.DestinationPage{
		Destinations:      destinations,
		TotalPages:        domain.PageCount(total, f.Limit),
		CurrentPage:       f.Page,
		TotalDestinations: total,
	}, nil
}

// Regions returns the distinct regions that have active destinations.
func (s *PlaceService) Regions(ctx context.Context) ([]string, error) {
	regions, err := s.places.Regions(ctx)
	if err != nil {
		return nil, domain.ErrInternal("failed to list regions", err)
	}
	return regions, nil
}

// PlacesByDestination returns one page of an active destination's places.
func (s *PlaceService) PlacesByDestination(ctx context.Context, destinationID string, page, limit int) (*domain.PlacePage, error) {
	dest, err := s.places.FindDestination(ctx, destinationID)
	if err != nil {
		return nil, domain.ErrInternal("failed to find destination", err)
	}
	if dest == nil || !dest.IsActive {
		return nil, domain.ErrNotFound("destination not found")
	}
	return s.listPlaces(ctx, domain.PlaceFilter{DestinationID: destinationID, Page: page, Limit: limit})
}

// SearchPlaces matches active places by name or description.
func (s *PlaceService) SearchPlaces(ctx context.Context, query string, page, limit int) (*domain.PlacePage, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, domain.ErrValidation("search query is required")
	}
	result, err := s.listPlaces(ctx, domain.PlaceFilter{Search: query, Page: page, Limit: limit})
	if err != nil {
		return nil, err
	}
	result.SearchQuery = query
	return result, nil
}

// FeaturedPlaces returns the best rated featured places.
func (s *PlaceService) FeaturedPlaces(ctx context.Context, limit int) ([]domain.PlaceSummary, error) {
	if limit < 1 {
		limit = defaultFeaturedLimit
	}
	if limit > maxFeaturedLimit {
		limit = maxFeaturedLimit
	}
	places, err := s.places.FeaturedPlaces(ctx, limit)
	if err != nil {
		return nil, domain.ErrInternal("failed to list featured places", err)
	}
	return places, nil
}

// Place returns the full detail of a place. Callers must have passed the
// subscription gate.
func (s *PlaceService) Place(ctx context.Context, id string) (*domain.PlaceDetail, error) {
	place, err := s.places.FindPlace(ctx, id)
	if err != nil {
		return nil, domain.ErrInternal("failed to find place", err)
	}
	if place == nil || !place.IsActive {
		return nil, domain.ErrNotFound("place not found")
	}

	dest, err := s.places.FindDestination(ctx, place.DestinationID)
	if err != nil {
		return nil, domain.ErrInternal("failed to find destination", err)
	}
	place.NightlyRate = place.Rate()
	return &domain.PlaceDetail{Place: place, Destination: dest}, nil
}

// CreateDestination adds a destination (admin only).
func (s *PlaceService) CreateDestination(ctx context.Context, req *domain.DestinationRequest) (*domain.Destination, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, validationError(err)
	}

	d := &domain.Destination{
		ID:          uuid.New().String(),
		Name:        strings.TrimSpace(req.Name),
		Region:      strings.TrimSpace(req.Region),
		Description: req.Description,
		Image:       req.Image,
		Featured:    req.Featured,
		IsActive:    true,
		CreatedAt:   s.now(),
	}
	if err := s.places.CreateDestination(ctx, d); err != nil {
		return nil, domain.ErrInternal("failed to create destination", err)
	}

	log.Printf("🗺️  Destination created: id=%s name=%q", d.ID, d.Name)
	return d, nil
}

// UpdateDestination edits a destination (admin only).
func (s *PlaceService) UpdateDestination(ctx context.Context, id string, u *domain.DestinationUpdate) (*domain.Destination, error) {
	if err := s.validate.Struct(u); err != nil {
		return nil, validationError(err)
	}

	d, err := s.activeDestination(ctx, id)
	if err != nil {
		return nil, err
	}
	u.Apply(d)

	if err := s.places.UpdateDestination(ctx, d); err != nil {
		return nil, persistError("failed to update destination", err)
	}
	s.forget(ctx, id)
	return d, nil
}

// DeleteDestination hides a destination and its places (admin only).
func (s *PlaceService) DeleteDestination(ctx context.Context, id string) error {
	if err := s.places.DeactivateDestination(ctx, id); err != nil {
		return persistError("failed to delete destination", err)
	}
	s.forget(ctx, id)
	log.Printf("🗺️  Destination deactivated: id=%s", id)
	return nil
}

// CreatePlace adds a place to an active destination (admin only).
func (s *PlaceService) CreatePlace(ctx context.Context, req *domain.PlaceRequest) (*domain.Place, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, validationError(err)
	}
	if _, err := s.placeDestination(ctx, req.DestinationID); err != nil {
		return nil, err
	}

	currency := strings.ToUpper(req.Currency)
	if currency == "" {
		currency = defaultCurrency
	}
	p := &domain.Place{
		ID:            uuid.New().String(),
		DestinationID: req.DestinationID,
		Name:          strings.TrimSpace(req.Name),
		Description:   req.Description,
		Images:        nonNil(req.Images),
		Culture:       req.Culture,
		BestTime:      req.BestTime,
		NightlyRate:   req.NightlyRate,
		Currency:      currency,
		Featured:      req.Featured,
		IsActive:      true,
		CreatedAt:     s.now(),
	}
	if err := s.places.CreatePlace(ctx, p); err != nil {
		return nil, domain.ErrInternal("failed to create place", err)
	}

	s.forget(ctx, p.DestinationID)
	log.Printf("🏝️  Place created: id=%s destination=%s", p.ID, p.DestinationID)
	return p, nil
}

// UpdatePlace edits a place (admin only). Moving it to another destination
// requires that destination to be active.
func (s *PlaceService) UpdatePlace(ctx context.Context, id string, u *domain.PlaceUpdate) (*domain.Place, error) {
	if err := s.validate.Struct(u); err != nil {
		return nil, validationError(err)
	}
	if err := u.Validate(); err != nil {
		return nil, err
	}

	p, err := s.places.FindPlace(ctx, id)
	if err != nil {
		return nil, domain.ErrInternal("failed to find place", err)
	}
	if p == nil || !p.IsActive {
		return nil, domain.ErrNotFound("place not found")
	}
	previous := p.DestinationID

	u.Apply(p)
	if p.DestinationID != previous {
		if _, err := s.placeDestination(ctx, p.DestinationID); err != nil {
			return nil, err
		}
	}
	p.Currency = strings.ToUpper(p.Currency)

	if err := s.places.UpdatePlace(ctx, p); err != nil {
		return nil, persistError("failed to update place", err)
	}
	s.forget(ctx, previous)
	if p.DestinationID != previous {
		s.forget(ctx, p.DestinationID)
	}
	return p, nil
}

// DeletePlace hides a place (admin only).
func (s *PlaceService) DeletePlace(ctx context.Context, id string) error {
	p, err := s.places.FindPlace(ctx, id)
	if err != nil {
		return domain.ErrInternal("failed to find place", err)
	}
	if p == nil || !p.IsActive {
		return domain.ErrNotFound("place not found")
	}
	if err := s.places.DeactivatePlace(ctx, id); err != nil {
		return persistError("failed to delete place", err)
	}
	s.forget(ctx, p.DestinationID)
	log.Printf("🏝️  Place deactivated: id=%s", id)
	return nil
}

func (s *PlaceService) listPlaces(ctx context.Context, f domain.PlaceFilter) (*domain.PlacePage, error) {
	f.Page, f.Limit = pageBounds(f.Page, f.Limit)

	places, total, err := s.places.ListPlaces(ctx, f)
	if err != nil {
		return nil, domain.ErrInternal("failed to list places", err)
	}
	return &domain.PlacePage{
		Places:      places,
		TotalPages:  domain.PageCount(total, f.Limit),
		CurrentPage: f.Page,
		TotalPlaces: total,
	}, nil
}

func (s *PlaceService) activeDestination(ctx context.Context, id string) (*domain.Destination, error) {
	d, err := s.places.FindDestination(ctx, id)
	if err != nil {
		return nil, domain.ErrInternal("failed to find destination", err)
	}
	if d == nil || !d.IsActive {
		return nil, domain.ErrNotFound("destination not found")
	}
	return d, nil
}

// placeDestination resolves the destination a place is being attached to.
// A missing one is a bad request rather than a 404 on the place.
func (s *PlaceService) placeDestination(ctx context.Context, id string) (*domain.Destination, error) {
	d, err := s.activeDestination(ctx, id)
	if err != nil && domain.HasCode(err, http.StatusNotFound) {
		return nil, domain.ErrValidationFields(map[string]string{"destinationId": "unknown destination"})
	}
	return d, err
}

func (s *PlaceService) forget(ctx context.Context, destinationID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeleteDestination(ctx, destinationID); err != nil {
		log.Printf("⚠️  Destination cache invalidation failed for %s: %v", destinationID, err)
	}
}

func nonNil(ss []string) []string {
	if ss == nil {
		return []string{}
	}
	return ss
}
