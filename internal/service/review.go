package service

import (
	"context"
	"log"
	"math"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/yatra/backend/internal/domain"
)

// ReviewService manages traveller reviews and the place ratings derived from
// them.
type ReviewService struct {
	reviews  ReviewStore
	places   PlaceStore
	stays    StayChecker
	cache    DestinationCache
	validate *validator.Validate
	now      func() time.Time
}

// NewReviewService creates a new ReviewService. cache may be nil.
func NewReviewService(reviews ReviewStore, places PlaceStore, stays StayChecker, cache DestinationCache) *ReviewService {
	return &ReviewService{
		reviews:  reviews,
		places:   places,
		stays:    stays,
		cache:    cache,
		validate: newValidator(),
		now:      time.Now,
	}
}

// Create stores the caller's review of a place. A user may hold one active
// review per place; it is marked verified when they have stayed there.
func (s *ReviewService) Create(ctx context.Context, userID string, req *domain.ReviewRequest) (*domain.Review, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, validationError(err)
	}

	place, err := s.activePlace(ctx, req.PlaceID)
	if err != nil {
		return nil, err
	}

	reviewed, err := s.reviews.HasReviewed(ctx, userID, place.ID)
	if err != nil {
		return nil, domain.ErrInternal("failed to check existing review", err)
	}
	if reviewed {
		return nil, domain.ErrBadRequest("you have already reviewed this place")
	}

	verified, err := s.stays.HasStayed(ctx, userID, place.ID)
	if err != nil {
		log.Printf("⚠️  Stay check failed for user %s place %s: %v", userID, place.ID, err)
	}

	now := s.now()
	rv := &domain.Review{
		ID:        uuid.New().String(),
		UserID:    userID,
		PlaceID:   place.ID,
		Rating:    req.Rating,
		Title:     strings.TrimSpace(req.Title),
		Text:      strings.TrimSpace(req.Text),
		Images:    nonNil(req.Images),
		Verified:  verified,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.reviews.Create(ctx, rv); err != nil {
		return nil, domain.ErrInternal("failed to create review", err)
	}

	log.Printf("⭐ Review created: id=%s user=%s place=%s rating=%d", rv.ID, userID, place.ID, rv.Rating)
	s.forget(ctx, place.DestinationID)
	return rv, nil
}

// ListForPlace returns one page of a place's reviews with its rating
// summary.
func (s *ReviewService) ListForPlace(ctx context.Context, placeID string, sort domain.ReviewSort, page, limit int) (*domain.ReviewPage, error) {
	if sort == "" {
		sort = domain.SortNewest
	}
	if !sort.Valid() {
		return nil, domain.ErrValidation("invalid sort order")
	}
	if _, err := s.activePlace(ctx, placeID); err != nil {
		return nil, err
	}

	result, err := s.list(ctx, domain.ReviewFilter{PlaceID: placeID, Sort: sort, Page: page, Limit: limit})
	if err != nil {
		return nil, err
	}

	counts, err := s.reviews.RatingCounts(ctx, placeID)
	if err != nil {
		return nil, domain.ErrInternal("failed to aggregate ratings", err)
	}
	avg := averageRating(counts)
	result.AverageRating = &avg
	result.RatingDistribution = domain.RatingDistribution(counts)
	return result, nil
}

// ListForUser returns one page of the caller's own reviews, newest first.
func (s *ReviewService) ListForUser(ctx context.Context, userID string, page, limit int) (*domain.ReviewPage, error) {
	return s.list(ctx, domain.ReviewFilter{UserID: userID, Sort: domain.SortNewest, Page: page, Limit: limit})
}

// Update edits one of the caller's reviews.
func (s *ReviewService) Update(ctx context.Context, userID, id string, u *domain.ReviewUpdate) (*domain.Review, error) {
	if err := s.validate.Struct(u); err != nil {
		return nil, validationError(err)
	}

	rv, err := s.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	ratingChanged := u.Apply(rv)
	rv.Title = strings.TrimSpace(rv.Title)
	rv.Text = strings.TrimSpace(rv.Text)
	rv.UpdatedAt = s.now()

	if err := s.reviews.Update(ctx, rv); err != nil {
		return nil, persistError("failed to update review", err)
	}
	if ratingChanged {
		s.forgetPlace(ctx, rv.PlaceID)
	}
	return rv, nil
}

// Delete removes one of the caller's reviews.
func (s *ReviewService) Delete(ctx context.Context, userID, id string) error {
	rv, err := s.owned(ctx, userID, id)
	if err != nil {
		return err
	}
	return s.deactivate(ctx, rv)
}

// AdminDelete removes any review (admin only).
func (s *ReviewService) AdminDelete(ctx context.Context, id string) error {
	rv, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	if err := s.deactivate(ctx, rv); err != nil {
		return err
	}
	log.Printf("🛡️  Review removed by admin: id=%s", id)
	return nil
}

// ToggleHelpful marks a review helpful for the caller, or clears an existing
// mark. Authors cannot mark their own reviews.
func (s *ReviewService) ToggleHelpful(ctx context.Context, userID, id string) (*domain.HelpfulResult, error) {
	rv, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if rv.UserID == userID {
		return nil, domain.ErrBadRequest("you cannot mark your own review as helpful")
	}

	result, err := s.reviews.ToggleHelpful(ctx, id, userID)
	if err != nil {
		return nil, domain.ErrInternal("failed to update helpful mark", err)
	}
	return result, nil
}

func (s *ReviewService) list(ctx context.Context, f domain.ReviewFilter) (*domain.ReviewPage, error) {
	f.Page, f.Limit = pageBounds(f.Page, f.Limit)

	reviews, total, err := s.reviews.List(ctx, f)
	if err != nil {
		return nil, domain.ErrInternal("failed to list reviews", err)
	}
	return &domain.ReviewPage{
		Reviews:      reviews,
		TotalPages:   domain.PageCount(total, f.Limit),
		CurrentPage:  f.Page,
		TotalReviews: total,
	}, nil
}

func (s *ReviewService) deactivate(ctx context.Context, rv *domain.Review) error {
	if err := s.reviews.Deactivate(ctx, rv); err != nil {
		return persistError("failed to delete review", err)
	}
	s.forgetPlace(ctx, rv.PlaceID)
	return nil
}

func (s *ReviewService) find(ctx context.Context, id string) (*domain.Review, error) {
	rv, err := s.reviews.FindByID(ctx, id)
	if err != nil {
		return nil, domain.ErrInternal("failed to find review", err)
	}
	if rv == nil {
		return nil, domain.ErrNotFound("review not found")
	}
	return rv, nil
}

// owned hides other users' reviews behind a not-found.
func (s *ReviewService) owned(ctx context.Context, userID, id string) (*domain.Review, error) {
	rv, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if rv.UserID != userID {
		return nil, domain.ErrNotFound("review not found")
	}
	return rv, nil
}

func (s *ReviewService) activePlace(ctx context.Context, id string) (*domain.Place, error) {
	place, err := s.places.FindPlace(ctx, id)
	if err != nil {
		return nil, domain.ErrInternal("failed to find place", err)
	}
	if place == nil || !place.IsActive {
		return nil, domain.ErrNotFound("place not found")
	}
	return place, nil
}

// forgetPlace drops the cached summary holding a place, whose rating moved.
func (s *ReviewService) forgetPlace(ctx context.Context, placeID string) {
	if s.cache == nil {
		return
	}
	place, err := s.places.FindPlace(ctx, placeID)
	if err != nil || place == nil {
		return
	}
	s.forget(ctx, place.DestinationID)
}

func (s *ReviewService) forget(ctx context.Context, destinationID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeleteDestination(ctx, destinationID); err != nil {
		log.Printf("⚠️  Destination cache invalidation failed for %s: %v", destinationID, err)
	}
}

// averageRating is the mean star value rounded to one decimal, 0 with no
// reviews.
func averageRating(counts map[int]int64) float64 {
	var sum, n int64
	for rating, count := range counts {
		sum += int64(rating) * count
		n += count
	}
	if n == 0 {
		return 0
	}
	return math.Round(float64(sum)/float64(n)*10) / 10
}
