package service

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/yatra/backend/internal/domain"
)

// CommentService runs place discussions. Threads are one level deep: a
// reply to a reply joins the thread of the top-level comment.
type CommentService struct {
	comments CommentStore
	places   PlaceStore
	validate *validator.Validate
	now      func() time.Time
}

// NewCommentService creates a new CommentService.
func NewCommentService(comments CommentStore, places PlaceStore) *CommentService {
	return &CommentService{
		comments: comments,
		places:   places,
		validate: newValidator(),
		now:      time.Now,
	}
}

// Create posts a comment, or a reply when ParentCommentID is set.
func (s *CommentService) Create(ctx context.Context, userID string, req *domain.CommentRequest) (*domain.Comment, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, validationError(err)
	}
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, domain.ErrValidationFields(map[string]string{"text": "is required"})
	}

	place, err := s.places.FindPlace(ctx, req.PlaceID)
	if err != nil {
		return nil, domain.ErrInternal("failed to find place", err)
	}
	if place == nil || !place.IsActive {
		return nil, domain.ErrNotFound("place not found")
	}

	now := s.now()
	c := &domain.Comment{
		ID:        uuid.New().String(),
		UserID:    userID,
		PlaceID:   place.ID,
		Text:      text,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if req.ParentCommentID != "" {
		parent, err := s.comments.FindByID(ctx, req.ParentCommentID)
		if err != nil {
			return nil, domain.ErrInternal("failed to find parent comment", err)
		}
		if parent == nil {
			return nil, domain.ErrNotFound("parent comment not found")
		}
		if parent.PlaceID != place.ID {
			return nil, domain.ErrValidation("parent comment belongs to another place")
		}
		root := parent.ThreadRoot()
		c.ParentID = &root
	}

	if err := s.comments.Create(ctx, c); err != nil {
		return nil, domain.ErrInternal("failed to create comment", err)
	}
	log.Printf("💬 Comment created: id=%s user=%s place=%s", c.ID, userID, place.ID)
	return c, nil
}

// ListForPlace returns one page of a place's top-level comments, each with
// its replies.
func (s *CommentService) ListForPlace(ctx context.Context, placeID string, page, limit int) (*domain.CommentPage, error) {
	place, err := s.places.FindPlace(ctx, placeID)
	if err != nil {
		return nil, domain.ErrInternal("failed to find place", err)
	}
	if place == nil || !place.IsActive {
		return nil, domain.ErrNotFound("place not found")
	}

	f := domain.CommentFilter{PlaceID: placeID}
	f.Page, f.Limit = pageBounds(page, limit)

	comments, total, err := s.comments.ListTopLevel(ctx, f)
	if err != nil {
		return nil, domain.ErrInternal("failed to list comments", err)
	}

	ids := make([]string, 0, len(comments))
	for _, c := range comments {
		ids = append(ids, c.ID)
	}
	replies, err := s.comments.Replies(ctx, ids)
	if err != nil {
		return nil, domain.ErrInternal("failed to list replies", err)
	}
	for _, c := range comments {
		c.Replies = replies[c.ID]
	}

	return commentPage(comments, total, f), nil
}

// ListForUser returns one page of the caller's comments, newest first.
func (s *CommentService) ListForUser(ctx context.Context, userID string, page, limit int) (*domain.CommentPage, error) {
	f := domain.CommentFilter{UserID: userID}
	f.Page, f.Limit = pageBounds(page, limit)

	comments, total, err := s.comments.ListByUser(ctx, f)
	if err != nil {
		return nil, domain.ErrInternal("failed to list comments", err)
	}
	return commentPage(comments, total, f), nil
}

// Update edits the text of one of the caller's comments.
func (s *CommentService) Update(ctx context.Context, userID, id string, u *domain.CommentUpdate) (*domain.Comment, error) {
	if err := s.validate.Struct(u); err != nil {
		return nil, validationError(err)
	}
	text := strings.TrimSpace(u.Text)
	if text == "" {
		return nil, domain.ErrValidationFields(map[string]string{"text": "is required"})
	}

	c, err := s.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	now := s.now()
	c.Text = text
	c.IsEdited = true
	c.EditedAt = &now
	c.UpdatedAt = now

	if err := s.comments.UpdateText(ctx, c); err != nil {
		return nil, persistError("failed to update comment", err)
	}
	return c, nil
}

// Delete removes one of the caller's comments and its replies.
func (s *CommentService) Delete(ctx context.Context, userID, id string) error {
	if _, err := s.owned(ctx, userID, id); err != nil {
		return err
	}
	if err := s.comments.Deactivate(ctx, id); err != nil {
		return persistError("failed to delete comment", err)
	}
	return nil
}

// AdminDelete removes any comment and its replies (admin only).
func (s *CommentService) AdminDelete(ctx context.Context, id string) error {
	if _, err := s.find(ctx, id); err != nil {
		return err
	}
	if err := s.comments.Deactivate(ctx, id); err != nil {
		return persistError("failed to delete comment", err)
	}
	log.Printf("🛡️  Comment removed by admin: id=%s", id)
	return nil
}

// ToggleLike likes a comment for the caller, or removes an existing like.
func (s *CommentService) ToggleLike(ctx context.Context, userID, id string) (*domain.LikeResult, error) {
	if _, err := s.find(ctx, id); err != nil {
		return nil, err
	}
	result, err := s.comments.ToggleLike(ctx, id, userID)
	if err != nil {
		return nil, domain.ErrInternal("failed to update like", err)
	}
	return result, nil
}

func (s *CommentService) find(ctx context.Context, id string) (*domain.Comment, error) {
	c, err := s.comments.FindByID(ctx, id)
	if err != nil {
		return nil, domain.ErrInternal("failed to find comment", err)
	}
	if c == nil {
		return nil, domain.ErrNotFound("comment not found")
	}
	return c, nil
}

func (s *CommentService) owned(ctx context.Context, userID, id string) (*domain.Comment, error) {
	c, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.UserID != userID {
		return nil, domain.ErrNotFound("comment not found")
	}
	return c, nil
}

func commentPage(comments []*domain.Comment, total int64, f domain.CommentFilter) *domain.CommentPage {
	return &domain.CommentPage{
		Comments:      comments,
		TotalPages:    domain.PageCount(total, f.Limit),
		CurrentPage:   f.Page,
		TotalComments: total,
	}
}
