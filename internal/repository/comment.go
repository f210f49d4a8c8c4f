package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yatra/backend/internal/domain"
)

const commentSelect = `
	SELECT c.id, c.user_id, c.place_id, c.parent_id, c.text, c.likes_count, c.is_edited, c.edited_at,
		c.is_active, c.created_at, c.updated_at, u.name, u.profile_image
	FROM comments c JOIN users u ON u.id = c.user_id`

// CommentRepository handles database operations for comments.
type CommentRepository struct {
	db *pgxpool.Pool
}

// NewCommentRepository creates a new CommentRepository.
func NewCommentRepository(db *pgxpool.Pool) *CommentRepository {
	return &CommentRepository{db: db}
}

// Create inserts a new comment.
func (r *CommentRepository) Create(ctx context.Context, c *domain.Comment) error {
	query := `
		INSERT INTO comments (id, user_id, place_id, parent_id, text, likes_count, is_edited, is_active,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := r.db.Exec(ctx, query,
		c.ID, c.UserID, c.PlaceID, c.ParentID, c.Text, c.LikesCount, c.IsEdited, c.IsActive,
		c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}
	return nil
}

// FindByID returns an active comment with its author, or nil.
func (r *CommentRepository) FindByID(ctx context.Context, id string) (*domain.Comment, error) {
	c, err := scanComment(r.db.QueryRow(ctx, commentSelect+` WHERE c.id = $1 AND c.is_active`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find comment: %w", err)
	}
	return c, nil
}

// ListTopLevel returns one page of a place's active top-level comments,
// newest first.
func (r *CommentRepository) ListTopLevel(ctx context.Context, f domain.CommentFilter) ([]*domain.Comment, int64, error) {
	const where = ` WHERE c.place_id = $1 AND c.parent_id IS NULL AND c.is_active`
	return r.list(ctx, where, f, f.PlaceID)
}

// ListByUser returns one page of a user's active comments, newest first.
func (r *CommentRepository) ListByUser(ctx context.Context, f domain.CommentFilter) ([]*domain.Comment, int64, error) {
	const where = ` WHERE c.user_id = $1 AND c.is_active`
	return r.list(ctx, where, f, f.UserID)
}

// Replies returns the active replies to the given comments, oldest first,
// grouped by parent ID.
func (r *CommentRepository) Replies(ctx context.Context, parentIDs []string) (map[string][]*domain.Comment, error) {
	replies := map[string][]*domain.Comment{}
	if len(parentIDs) == 0 {
		return replies, nil
	}

	rows, err := r.db.Query(ctx, commentSelect+` WHERE c.parent_id = ANY($1) AND c.is_active ORDER BY c.created_at ASC`, parentIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query replies: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan reply row: %w", err)
		}
		replies[*c.ParentID] = append(replies[*c.ParentID], c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to query replies: %w", err)
	}
	return replies, nil
}

// UpdateText persists an edited comment body.
func (r *CommentRepository) UpdateText(ctx context.Context, c *domain.Comment) error {
	query := `
		UPDATE comments SET text = $1, is_edited = TRUE, edited_at = $2, updated_at = $2
		WHERE id = $3 AND is_active
	`
	tag, err := r.db.Exec(ctx, query, c.Text, c.EditedAt, c.ID)
	if err != nil {
		return fmt.Errorf("failed to update comment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound("comment not found")
	}
	return nil
}

// Deactivate hides a comment together with its replies.
func (r *CommentRepository) Deactivate(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE comments SET is_active = FALSE, updated_at = NOW()
		WHERE (id = $1 OR parent_id = $1) AND is_active
	`, id)
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound("comment not found")
	}
	return nil
}

// ToggleLike adds the user's like, or removes it if present, and returns the
// resulting state.
func (r *CommentRepository) ToggleLike(ctx context.Context, commentID, userID string) (*domain.LikeResult, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	liked, err := toggleMark(ctx, tx, "comment_likes", "comment_id", commentID, userID)
	if err != nil {
		return nil, err
	}

	var count int
	err = tx.QueryRow(ctx, `
		UPDATE comments SET likes_count = (SELECT COUNT(*) FROM comment_likes WHERE comment_id = $1)
		WHERE id = $1
		RETURNING likes_count
	`, commentID).Scan(&count)
	if err != nil {
		return nil, fmt.Errorf("failed to count likes: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit like: %w", err)
	}
	return &domain.LikeResult{IsLiked: liked, LikesCount: count}, nil
}

func (r *CommentRepository) list(ctx context.Context, where string, f domain.CommentFilter, key string) ([]*domain.Comment, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM comments c`+where, key).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count comments: %w", err)
	}

	rows, err := r.db.Query(ctx, commentSelect+where+` ORDER BY c.created_at DESC LIMIT $2 OFFSET $3`, key, f.Limit, f.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query comments: %w", err)
	}
	defer rows.Close()

	comments := []*domain.Comment{}
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan comment row: %w", err)
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to query comments: %w", err)
	}
	return comments, total, nil
}

func scanComment(row scanner) (*domain.Comment, error) {
	var c domain.Comment
	var author domain.Author
	err := row.Scan(
		&c.ID, &c.UserID, &c.PlaceID, &c.ParentID, &c.Text, &c.LikesCount, &c.IsEdited, &c.EditedAt,
		&c.IsActive, &c.CreatedAt, &c.UpdatedAt, &author.Name, &author.ProfileImage,
	)
	if err != nil {
		return nil, err
	}
	author.ID = c.UserID
	c.Author = &author
	return &c, nil
}
