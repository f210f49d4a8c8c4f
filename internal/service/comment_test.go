package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yatra/backend/internal/domain"
)

func newTestCommentService() (*CommentService, *MockCommentStore, *MockPlaceStore) {
	comments := &MockCommentStore{}
	places := &MockPlaceStore{}
	svc := NewCommentService(comments, places)
	svc.now = func() time.Time { return fixedNow }
	return svc, comments, places
}

func strPtr(s string) *string { return &s }

func TestCommentService_Create(t *testing.T) {
	t.Run("top level", func(t *testing.T) {
		svc, comments, places := newTestCommentService()
		ctx := context.Background()

		places.On("FindPlace", ctx, "place-baga").Return(beachPlace(), nil).Once()
		comments.On("Create", ctx, mock.MatchedBy(func(c *domain.Comment) bool {
			return c.ParentID == nil && c.Text == "Best sunsets" && c.IsActive
		})).Return(nil).Once()

		c, err := svc.Create(ctx, "user-1", &domain.CommentRequest{PlaceID: "place-baga", Text: "  Best sunsets "})
		require.NoError(t, err)
		assert.False(t, c.IsReply())
		comments.AssertExpectations(t)
	})

	t.Run("reply to reply joins the root thread", func(t *testing.T) {
		svc, comments, places := newTestCommentService()
		ctx := context.Background()

		places.On("FindPlace", ctx, "place-baga").Return(beachPlace(), nil).Once()
		comments.On("FindByID", ctx, "c-reply").
			Return(&domain.Comment{ID: "c-reply", PlaceID: "place-baga", ParentID: strPtr("c-root")}, nil).Once()
		comments.On("Create", ctx, mock.Anything).Return(nil).Once()

		c, err := svc.Create(ctx, "user-1", &domain.CommentRequest{PlaceID: "place-baga", Text: "Agreed", ParentCommentID: "c-reply"})
		require.NoError(t, err)
		require.NotNil(t, c.ParentID)
		assert.Equal(t, "c-root", *c.ParentID)
	})

	t.Run("parent on another place", func(t *testing.T) {
		svc, comments, places := newTestCommentService()
		ctx := context.Background()

		places.On("FindPlace", ctx, "place-baga").Return(beachPlace(), nil).Once()
		comments.On("FindByID", ctx, "c-x").Return(&domain.Comment{ID: "c-x", PlaceID: "place-munnar"}, nil).Once()

		_, err := svc.Create(ctx, "user-1", &domain.CommentRequest{PlaceID: "place-baga", Text: "Hi", ParentCommentID: "c-x"})
		assert.True(t, domain.HasCode(err, http.StatusBadRequest))
		comments.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("whitespace only", func(t *testing.T) {
		svc, comments, _ := newTestCommentService()

		_, err := svc.Create(context.Background(), "user-1", &domain.CommentRequest{PlaceID: "place-baga", Text: "   "})
		assert.True(t, domain.HasCode(err, http.StatusBadRequest))
		comments.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("missing parent", func(t *testing.T) {
		svc, comments, places := newTestCommentService()
		ctx := context.Background()

		places.On("FindPlace", ctx, "place-baga").Return(beachPlace(), nil).Once()
		comments.On("FindByID", ctx, "gone").Return(nil, nil).Once()

		_, err := svc.Create(ctx, "user-1", &domain.CommentRequest{PlaceID: "place-baga", Text: "Hi", ParentCommentID: "gone"})
		assert.True(t, domain.HasCode(err, http.StatusNotFound))
	})
}

func TestCommentService_ListForPlace_AttachesReplies(t *testing.T) {
	svc, comments, places := newTestCommentService()
	ctx := context.Background()

	places.On("FindPlace", ctx, "place-baga").Return(beachPlace(), nil).Once()
	roots := []*domain.Comment{{ID: "c1"}, {ID: "c2"}}
	comments.On("ListTopLevel", ctx, domain.CommentFilter{PlaceID: "place-baga", Page: 1, Limit: 10}).
		Return(roots, int64(2), nil).Once()
	comments.On("Replies", ctx, []string{"c1", "c2"}).
		Return(map[string][]*domain.Comment{"c1": {{ID: "r1", ParentID: strPtr("c1")}}}, nil).Once()

	page, err := svc.ListForPlace(ctx, "place-baga", 0, 0)
	require.NoError(t, err)
	require.Len(t, page.Comments, 2)
	assert.Len(t, page.Comments[0].Replies, 1)
	assert.Empty(t, page.Comments[1].Replies)
	assert.Equal(t, int64(2), page.TotalComments)
}

func TestCommentService_ListForUser(t *testing.T) {
	svc, comments, _ := newTestCommentService()
	ctx := context.Background()

	comments.On("ListByUser", ctx, domain.CommentFilter{UserID: "user-1", Page: 1, Limit: 100}).
		Return([]*domain.Comment{}, int64(0), nil).Once()

	page, err := svc.ListForUser(ctx, "user-1", 1, 1000)
	require.NoError(t, err)
	assert.Equal(t, 0, page.TotalPages)
}

func TestCommentService_Update(t *testing.T) {
	t.Run("marks edited", func(t *testing.T) {
		svc, comments, _ := newTestCommentService()
		ctx := context.Background()

		comments.On("FindByID", ctx, "c1").Return(&domain.Comment{ID: "c1", UserID: "user-1", Text: "old"}, nil).Once()
		comments.On("UpdateText", ctx, mock.MatchedBy(func(c *domain.Comment) bool {
			return c.Text == "new" && c.IsEdited && c.EditedAt != nil
		})).Return(nil).Once()

		c, err := svc.Update(ctx, "user-1", "c1", &domain.CommentUpdate{Text: "new"})
		require.NoError(t, err)
		assert.Equal(t, fixedNow, *c.EditedAt)
	})

	t.Run("not the author", func(t *testing.T) {
		svc, comments, _ := newTestCommentService()
		ctx := context.Background()

		comments.On("FindByID", ctx, "c1").Return(&domain.Comment{ID: "c1", UserID: "user-1"}, nil).Once()

		_, err := svc.Update(ctx, "user-2", "c1", &domain.CommentUpdate{Text: "new"})
		assert.True(t, domain.HasCode(err, http.StatusNotFound))
		comments.AssertNotCalled(t, "UpdateText", mock.Anything, mock.Anything)
	})
}

func TestCommentService_Delete(t *testing.T) {
	svc, comments, _ := newTestCommentService()
	ctx := context.Background()

	comments.On("FindByID", ctx, "c1").Return(&domain.Comment{ID: "c1", UserID: "user-1"}, nil).Twice()
	comments.On("Deactivate", ctx, "c1").Return(nil).Twice()

	require.NoError(t, svc.Delete(ctx, "user-1", "c1"))
	require.NoError(t, svc.AdminDelete(ctx, "c1"))
	comments.AssertExpectations(t)
}

func TestCommentService_ToggleLike(t *testing.T) {
	svc, comments, _ := newTestCommentService()
	ctx := context.Background()

	comments.On("FindByID", ctx, "c1").Return(&domain.Comment{ID: "c1", UserID: "user-1"}, nil).Once()
	comments.On("ToggleLike", ctx, "c1", "user-2").Return(&domain.LikeResult{IsLiked: true, LikesCount: 3}, nil).Once()

	got, err := svc.ToggleLike(ctx, "user-2", "c1")
	require.NoError(t, err)
	assert.Equal(t, 3, got.LikesCount)
}
