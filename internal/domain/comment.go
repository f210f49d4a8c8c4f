package domain

import "time"

// Comment is a discussion post on a place. Threads are one level deep:
// ParentID, when set, always names a top-level comment.
type Comment struct {
	ID         string     `json:"id"`
	UserID     string     `json:"userId"`
	PlaceID    string     `json:"placeId"`
	ParentID   *string    `json:"parentCommentId"`
	Author     *Author    `json:"user,omitempty"`
	Text       string     `json:"text"`
	LikesCount int        `json:"likesCount"`
	IsEdited   bool       `json:"isEdited"`
	EditedAt   *time.Time `json:"editedAt,omitempty"`
	IsActive   bool       `json:"-"`
	Replies    []*Comment `json:"replies,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

// IsReply reports whether c belongs to another comment's thread.
func (c *Comment) IsReply() bool {
	return c.ParentID != nil && *c.ParentID != ""
}

// ThreadRoot is the top-level comment a reply to c should hang off.
func (c *Comment) ThreadRoot() string {
	if c.IsReply() {
		return *c.ParentID
	}
	return c.ID
}

// CommentRequest is the input for POST /api/comments.
type CommentRequest struct {
	PlaceID         string `json:"placeId" validate:"required"`
	Text            string `json:"text" validate:"required,min=1,max=500"`
	ParentCommentID string `json:"parentCommentId"`
}

// CommentUpdate is the input for PUT /api/comments/{id}.
type CommentUpdate struct {
	Text string `json:"text" validate:"required,min=1,max=500"`
}

// CommentFilter selects active comments by place (top-level only) or by
// author.
type CommentFilter struct {
	PlaceID string
	UserID  string
	Page    int
	Limit   int
}

// Offset converts the 1-based page into a row offset.
func (f CommentFilter) Offset() int {
	return offset(f.Page, f.Limit)
}

// CommentPage is one page of comments.
type CommentPage struct {
	Comments      []*Comment `json:"comments"`
	TotalPages    int        `json:"totalPages"`
	CurrentPage   int        `json:"currentPage"`
	TotalComments int64      `json:"totalComments"`
}

// LikeResult is the outcome of toggling a like.
type LikeResult struct {
	IsLiked    bool `json:"isLiked"`
	LikesCount int  `json:"likesCount"`
}
