package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/yatra/backend/internal/domain"
)

func TestReviewHandler_Create(t *testing.T) {
	svc := &MockReviews{}
	svc.On("Create", mock.Anything, "u1", &domain.ReviewRequest{
		PlaceID: "p1", Rating: 5, Title: "Superb", Text: "Would stay again any time.",
	}).Return(&domain.Review{ID: "rv-1", Rating: 5}, nil).Once()

	rec := serve(t, request{
		method: http.MethodPost, pattern: "/api/reviews", path: "/api/reviews",
		body:   `{"placeId":"p1","rating":5,"title":"Superb","text":"Would stay again any time."}`,
		userID: "u1", role: domain.RoleUser,
	}, NewReviewHandler(svc).Create)

	assert.Equal(t, http.StatusCreated, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "Review created successfully", body["message"])
	assert.Equal(t, "rv-1", body["review"].(map[string]any)["id"])
	svc.AssertExpectations(t)
}

func TestReviewHandler_Create_Unauthenticated(t *testing.T) {
	rec := serve(t, request{method: http.MethodPost, pattern: "/api/reviews", path: "/api/reviews", body: `{}`},
		NewReviewHandler(&MockReviews{}).Create)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestReviewHandler_ListForPlace(t *testing.T) {
	avg := 4.5
	svc := &MockReviews{}
	svc.On("ListForPlace", mock.Anything, "p1", domain.SortRatingHigh, 1, 10).Return(&domain.ReviewPage{
		Reviews: []*domain.Review{}, AverageRating: &avg,
		RatingDistribution: domain.RatingDistribution(map[int]int64{4: 1, 5: 1}),
	}, nil).Once()

	rec := serve(t, request{
		method: http.MethodGet, pattern: "/api/reviews/place/{placeId}", path: "/api/reviews/place/p1?sort=rating-high",
	}, NewReviewHandler(svc).ListForPlace)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, 4.5, body["averageRating"])
	assert.Len(t, body["ratingDistribution"], 5)
}

func TestReviewHandler_OwnerActions(t *testing.T) {
	svc := &MockReviews{}
	svc.On("ListForUser", mock.Anything, "u1", 2, 10).Return(&domain.ReviewPage{Reviews: []*domain.Review{}}, nil).Once()
	rating := 3
	svc.On("Update", mock.Anything, "u1", "rv-1", &domain.ReviewUpdate{Rating: &rating}).
		Return(&domain.Review{ID: "rv-1", Rating: 3}, nil).Once()
	svc.On("Delete", mock.Anything, "u1", "rv-9").Return(domain.ErrNotFound("review not found")).Once()
	svc.On("ToggleHelpful", mock.Anything, "u1", "rv-2").Return(&domain.HelpfulResult{IsHelpful: true, HelpfulCount: 4}, nil).Once()
	h := NewReviewHandler(svc)

	rec := serve(t, request{
		method: http.MethodGet, pattern: "/api/reviews/user", path: "/api/reviews/user?page=2", userID: "u1", role: domain.RoleUser,
	}, h.ListMine)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = serve(t, request{
		method: http.MethodPut, pattern: "/api/reviews/{id}", path: "/api/reviews/rv-1", body: `{"rating":3}`,
		userID: "u1", role: domain.RoleUser,
	}, h.Update)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Review updated successfully", decode(t, rec)["message"])

	rec = serve(t, request{
		method: http.MethodDelete, pattern: "/api/reviews/{id}", path: "/api/reviews/rv-9", userID: "u1", role: domain.RoleUser,
	}, h.Delete)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = serve(t, request{
		method: http.MethodPost, pattern: "/api/reviews/{id}/helpful", path: "/api/reviews/rv-2/helpful",
		userID: "u1", role: domain.RoleUser,
	}, h.Helpful)
	assert.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, true, body["isHelpful"])
	assert.Equal(t, float64(4), body["helpfulCount"])
	svc.AssertExpectations(t)
}

func TestReviewHandler_AdminDelete(t *testing.T) {
	svc := &MockReviews{}
	svc.On("AdminDelete", mock.Anything, "rv-1").Return(nil).Once()

	rec := serve(t, request{
		method: http.MethodDelete, pattern: "/api/reviews/{id}/admin", path: "/api/reviews/rv-1/admin",
		userID: "a1", role: domain.RoleAdmin,
	}, NewReviewHandler(svc).AdminDelete)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, decode(t, rec)["success"])
}
