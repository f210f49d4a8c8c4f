package service

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yatra/backend/internal/domain"
)

type reviewMocks struct {
	reviews *MockReviewStore
	places  *MockPlaceStore
	stays   *MockStayChecker
	cache   *MockDestinationCache
}

func newTestReviewService() (*ReviewService, reviewMocks) {
	m := reviewMocks{
		reviews: &MockReviewStore{},
		places:  &MockPlaceStore{},
		stays:   &MockStayChecker{},
		cache:   &MockDestinationCache{},
	}
	svc := NewReviewService(m.reviews, m.places, m.stays, m.cache)
	svc.now = func() time.Time { return fixedNow }
	return svc, m
}

func reviewRequest() *domain.ReviewRequest {
	return &domain.ReviewRequest{
		PlaceID: "place-baga",
		Rating:  4,
		Title:   "Lovely beach",
		Text:    "Clean sand and friendly shacks all along.",
	}
}

func storedReview() *domain.Review {
	return &domain.Review{ID: "rv-1", UserID: "user-1", PlaceID: "place-baga", Rating: 4, Title: "Lovely beach",
		Text: "Clean sand and friendly shacks.", IsActive: true}
}

func TestReviewService_Create(t *testing.T) {
	svc, m := newTestReviewService()
	ctx := context.Background()

	m.places.On("FindPlace", ctx, "place-baga").Return(beachPlace(), nil).Once()
	m.reviews.On("HasReviewed", ctx, "user-1", "place-baga").Return(false, nil).Once()
	m.stays.On("HasStayed", ctx, "user-1", "place-baga").Return(true, nil).Once()
	m.reviews.On("Create", ctx, mock.MatchedBy(func(rv *domain.Review) bool {
		return rv.Verified && rv.Rating == 4 && rv.IsActive && rv.Images != nil
	})).Return(nil).Once()
	m.cache.On("DeleteDestination", ctx, "dest-goa").Return(nil).Once()

	rv, err := svc.Create(ctx, "user-1", reviewRequest())
	require.NoError(t, err)
	assert.NotEmpty(t, rv.ID)
	assert.Equal(t, fixedNow, rv.CreatedAt)
	m.reviews.AssertExpectations(t)
	m.cache.AssertExpectations(t)
}

func TestReviewService_Create_StayCheckFailureIsUnverified(t *testing.T) {
	svc, m := newTestReviewService()
	ctx := context.Background()

	m.places.On("FindPlace", ctx, "place-baga").Return(beachPlace(), nil).Once()
	m.reviews.On("HasReviewed", ctx, "user-1", "place-baga").Return(false, nil).Once()
	m.stays.On("HasStayed", ctx, "user-1", "place-baga").Return(false, errors.New("timeout")).Once()
	m.reviews.On("Create", ctx, mock.MatchedBy(func(rv *domain.Review) bool { return !rv.Verified })).Return(nil).Once()
	m.cache.On("DeleteDestination", ctx, "dest-goa").Return(nil).Once()

	_, err := svc.Create(ctx, "user-1", reviewRequest())
	require.NoError(t, err)
	m.reviews.AssertExpectations(t)
}

func TestReviewService_Create_Rejections(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name     string
		mutate   func(*domain.ReviewRequest)
		setup    func(m reviewMocks)
		wantCode int
	}{
		{
			name:     "rating out of range",
			mutate:   func(r *domain.ReviewRequest) { r.Rating = 6 },
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "short text",
			mutate:   func(r *domain.ReviewRequest) { r.Text = "meh" },
			wantCode: http.StatusBadRequest,
		},
		{
			name: "unknown place",
			setup: func(m reviewMocks) {
				m.places.On("FindPlace", ctx, "place-baga").Return(nil, nil).Once()
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "already reviewed",
			setup: func(m reviewMocks) {
				m.places.On("FindPlace", ctx, "place-baga").Return(beachPlace(), nil).Once()
				m.reviews.On("HasReviewed", ctx, "user-1", "place-baga").Return(true, nil).Once()
			},
			wantCode: http.StatusBadRequest,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			svc, m := newTestReviewService()
			if tc.setup != nil {
				tc.setup(m)
			}
			req := reviewRequest()
			if tc.mutate != nil {
				tc.mutate(req)
			}

			rv, err := svc.Create(ctx, "user-1", req)
			require.Error(t, err)
			assert.Nil(t, rv)
			assert.True(t, domain.HasCode(err, tc.wantCode))
			m.reviews.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestReviewService_ListForPlace(t *testing.T) {
	svc, m := newTestReviewService()
	ctx := context.Background()

	m.places.On("FindPlace", ctx, "place-baga").Return(beachPlace(), nil).Once()
	m.reviews.On("List", ctx, domain.ReviewFilter{PlaceID: "place-baga", Sort: domain.SortHelpful, Page: 1, Limit: 10}).
		Return([]*domain.Review{storedReview()}, int64(3), nil).Once()
	m.reviews.On("RatingCounts", ctx, "place-baga").Return(map[int]int64{5: 1, 4: 1, 2: 1}, nil).Once()

	page, err := svc.ListForPlace(ctx, "place-baga", domain.SortHelpful, 0, 0)
	require.NoError(t, err)
	require.NotNil(t, page.AverageRating)
	assert.Equal(t, 3.7, *page.AverageRating)
	assert.Equal(t, []domain.RatingCount{
		{Rating: 1, Count: 0}, {Rating: 2, Count: 1}, {Rating: 3, Count: 0}, {Rating: 4, Count: 1}, {Rating: 5, Count: 1},
	}, page.RatingDistribution)
	assert.Equal(t, 1, page.TotalPages)
}

func TestReviewService_ListForPlace_BadSort(t *testing.T) {
	svc, m := newTestReviewService()

	_, err := svc.ListForPlace(context.Background(), "place-baga", "loudest", 1, 10)
	assert.True(t, domain.HasCode(err, http.StatusBadRequest))
	m.reviews.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestReviewService_ListForUser(t *testing.T) {
	svc, m := newTestReviewService()
	ctx := context.Background()

	m.reviews.On("List", ctx, domain.ReviewFilter{UserID: "user-1", Sort: domain.SortNewest, Page: 2, Limit: 5}).
		Return([]*domain.Review{}, int64(6), nil).Once()

	page, err := svc.ListForUser(ctx, "user-1", 2, 5)
	require.NoError(t, err)
	assert.Nil(t, page.AverageRating)
	assert.Equal(t, 2, page.TotalPages)
}

func TestReviewService_Update(t *testing.T) {
	t.Run("rating change refreshes cache", func(t *testing.T) {
		svc, m := newTestReviewService()
		ctx := context.Background()

		m.reviews.On("FindByID", ctx, "rv-1").Return(storedReview(), nil).Once()
		m.reviews.On("Update", ctx, mock.MatchedBy(func(rv *domain.Review) bool { return rv.Rating == 2 })).Return(nil).Once()
		m.places.On("FindPlace", ctx, "place-baga").Return(beachPlace(), nil).Once()
		m.cache.On("DeleteDestination", ctx, "dest-goa").Return(nil).Once()

		rating := 2
		rv, err := svc.Update(ctx, "user-1", "rv-1", &domain.ReviewUpdate{Rating: &rating})
		require.NoError(t, err)
		assert.Equal(t, fixedNow, rv.UpdatedAt)
		m.cache.AssertExpectations(t)
	})

	t.Run("other users review is hidden", func(t *testing.T) {
		svc, m := newTestReviewService()
		ctx := context.Background()

		m.reviews.On("FindByID", ctx, "rv-1").Return(storedReview(), nil).Once()

		title := "Hijacked"
		_, err := svc.Update(ctx, "user-2", "rv-1", &domain.ReviewUpdate{Title: &title})
		assert.True(t, domain.HasCode(err, http.StatusNotFound))
		m.reviews.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestReviewService_Delete(t *testing.T) {
	svc, m := newTestReviewService()
	ctx := context.Background()

	m.reviews.On("FindByID", ctx, "rv-1").Return(storedReview(), nil).Once()
	m.reviews.On("Deactivate", ctx, mock.Anything).Return(nil).Once()
	m.places.On("FindPlace", ctx, "place-baga").Return(beachPlace(), nil).Once()
	m.cache.On("DeleteDestination", ctx, "dest-goa").Return(nil).Once()

	require.NoError(t, svc.Delete(ctx, "user-1", "rv-1"))
	m.reviews.AssertExpectations(t)
}

func TestReviewService_AdminDelete(t *testing.T) {
	svc, m := newTestReviewService()
	ctx := context.Background()

	m.reviews.On("FindByID", ctx, "rv-1").Return(storedReview(), nil).Once()
	m.reviews.On("Deactivate", ctx, mock.Anything).Return(nil).Once()
	m.places.On("FindPlace", ctx, "place-baga").Return(beachPlace(), nil).Once()
	m.cache.On("DeleteDestination", ctx, "dest-goa").Return(nil).Once()

	require.NoError(t, svc.AdminDelete(ctx, "rv-1"))
	m.reviews.AssertExpectations(t)
}

func TestReviewService_ToggleHelpful(t *testing.T) {
	t.Run("other user", func(t *testing.T) {
		svc, m := newTestReviewService()
		ctx := context.Background()

		m.reviews.On("FindByID", ctx, "rv-1").Return(storedReview(), nil).Once()
		m.reviews.On("ToggleHelpful", ctx, "rv-1", "user-2").
			Return(&domain.HelpfulResult{IsHelpful: true, HelpfulCount: 1}, nil).Once()

		got, err := svc.ToggleHelpful(ctx, "user-2", "rv-1")
		require.NoError(t, err)
		assert.True(t, got.IsHelpful)
	})

	t.Run("own review", func(t *testing.T) {
		svc, m := newTestReviewService()
		ctx := context.Background()

		m.reviews.On("FindByID", ctx, "rv-1").Return(storedReview(), nil).Once()

		_, err := svc.ToggleHelpful(ctx, "user-1", "rv-1")
		assert.True(t, domain.HasCode(err, http.StatusBadRequest))
		m.reviews.AssertNotCalled(t, "ToggleHelpful", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestAverageRating(t *testing.T) {
	assert.Equal(t, 0.0, averageRating(nil))
	assert.Equal(t, 4.5, averageRating(map[int]int64{4: 1, 5: 1}))
	assert.Equal(t, 1.0, averageRating(map[int]int64{1: 7}))
}
