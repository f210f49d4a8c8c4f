package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yatra/backend/internal/domain"
)

const reviewSelect = `
	SELECT rv.id, rv.user_id, rv.place_id, rv.rating, rv.title, rv.text, rv.images, rv.helpful_count,
		rv.verified, rv.is_active, rv.created_at, rv.updated_at, u.name, u.profile_image
	FROM reviews rv JOIN users u ON u.id = rv.user_id`

// refreshRating recomputes a place's rating from its active reviews.
const refreshRating = `
	UPDATE places SET
		average_rating = COALESCE((SELECT ROUND(AVG(rating)::numeric, 1) FROM reviews WHERE place_id = $1 AND is_active), 0),
		review_count = (SELECT COUNT(*) FROM reviews WHERE place_id = $1 AND is_active)
	WHERE id = $1`

// ReviewRepository handles database operations for reviews.
type ReviewRepository struct {
	db *pgxpool.Pool
}

// NewReviewRepository creates a new ReviewRepository.
func NewReviewRepository(db *pgxpool.Pool) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// Create inserts a review and refreshes the place rating in one transaction.
func (r *ReviewRepository) Create(ctx context.Context, rv *domain.Review) error {
	return r.withRating(ctx, rv.PlaceID, func(tx pgx.Tx) error {
		query := `
			INSERT INTO reviews (id, user_id, place_id, rating, title, text, images, helpful_count,
				verified, is_active, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		`
		_, err := tx.Exec(ctx, query,
			rv.ID, rv.UserID, rv.PlaceID, rv.Rating, rv.Title, rv.Text, rv.Images, rv.HelpfulCount,
			rv.Verified, rv.IsActive, rv.CreatedAt, rv.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to create review: %w", err)
		}
		return nil
	})
}

// Update persists a review's content and refreshes the place rating.
func (r *ReviewRepository) Update(ctx context.Context, rv *domain.Review) error {
	return r.withRating(ctx, rv.PlaceID, func(tx pgx.Tx) error {
		query := `
			UPDATE reviews SET rating = $1, title = $2, text = $3, images = $4, updated_at = $5
			WHERE id = $6 AND is_active
		`
		tag, err := tx.Exec(ctx, query, rv.Rating, rv.Title, rv.Text, rv.Images, rv.UpdatedAt, rv.ID)
		if err != nil {
			return fmt.Errorf("failed to update review: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return domain.ErrNotFound("review not found")
		}
		return nil
	})
}

// Deactivate hides a review and refreshes the place rating.
func (r *ReviewRepository) Deactivate(ctx context.Context, rv *domain.Review) error {
	return r.withRating(ctx, rv.PlaceID, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `UPDATE reviews SET is_active = FALSE, updated_at = NOW() WHERE id = $1 AND is_active`, rv.ID)
		if err != nil {
			return fmt.Errorf("failed to delete review: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return domain.ErrNotFound("review not found")
		}
		return nil
	})
}

// FindByID returns an active review with its author, or nil.
func (r *ReviewRepository) FindByID(ctx context.Context, id string) (*domain.Review, error) {
	rv, err := scanReview(r.db.QueryRow(ctx, reviewSelect+` WHERE rv.id = $1 AND rv.is_active`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find review: %w", err)
	}
	return rv, nil
}

// HasReviewed reports whether the user already holds an active review of the
// place.
func (r *ReviewRepository) HasReviewed(ctx context.Context, userID, placeID string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM reviews WHERE user_id = $1 AND place_id = $2 AND is_active)`
	if err := r.db.QueryRow(ctx, query, userID, placeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check review: %w", err)
	}
	return exists, nil
}

// List returns one page of active reviews matching f.
func (r *ReviewRepository) List(ctx context.Context, f domain.ReviewFilter) ([]*domain.Review, int64, error) {
	var conds []string
	var args []any
	if f.PlaceID != "" {
		args = append(args, f.PlaceID)
		conds = append(conds, fmt.Sprintf("rv.place_id = $%d", len(args)))
	}
	if f.UserID != "" {
		args = append(args, f.UserID)
		conds = append(conds, fmt.Sprintf("rv.user_id = $%d", len(args)))
	}
	where := " WHERE " + strings.Join(append(conds, "rv.is_active"), " AND ")

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM reviews rv`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count reviews: %w", err)
	}

	query := fmt.Sprintf(`%s%s ORDER BY %s LIMIT $%d OFFSET $%d`,
		reviewSelect, where, reviewOrder(f.Sort), len(args)+1, len(args)+2)
	args = append(args, f.Limit, f.Offset())

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query reviews: %w", err)
	}
	defer rows.Close()

	reviews := []*domain.Review{}
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan review row: %w", err)
		}
		reviews = append(reviews, rv)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to query reviews: %w", err)
	}
	return reviews, total, nil
}

// RatingCounts returns how many active reviews of a place carry each rating.
func (r *ReviewRepository) RatingCounts(ctx context.Context, placeID string) (map[int]int64, error) {
	rows, err := r.db.Query(ctx, `
		SELECT rating, COUNT(*) FROM reviews
		WHERE place_id = $1 AND is_active
		GROUP BY rating
	`, placeID)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate ratings: %w", err)
	}
	defer rows.Close()

	counts := map[int]int64{}
	for rows.Next() {
		var rating int
		var count int64
		if err := rows.Scan(&rating, &count); err != nil {
			return nil, fmt.Errorf("failed to scan rating count: %w", err)
		}
		counts[rating] = count
	}
	return counts, rows.Err()
}

// ToggleHelpful adds the user's helpful mark, or removes it if present, and
// returns the resulting state.
func (r *ReviewRepository) ToggleHelpful(ctx context.Context, reviewID, userID string) (*domain.HelpfulResult, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	marked, err := toggleMark(ctx, tx, "review_helpful", "review_id", reviewID, userID)
	if err != nil {
		return nil, err
	}

	var count int
	err = tx.QueryRow(ctx, `
		UPDATE reviews SET helpful_count = (SELECT COUNT(*) FROM review_helpful WHERE review_id = $1)
		WHERE id = $1
		RETURNING helpful_count
	`, reviewID).Scan(&count)
	if err != nil {
		return nil, fmt.Errorf("failed to count helpful marks: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit helpful mark: %w", err)
	}
	return &domain.HelpfulResult{IsHelpful: marked, HelpfulCount: count}, nil
}

func (r *ReviewRepository) withRating(ctx context.Context, placeID string, fn func(pgx.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(tx); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, refreshRating, placeID); err != nil {
		return fmt.Errorf("failed to refresh place rating: %w", err)
	}
	return tx.Commit(ctx)
}

// toggleMark deletes the (owner, user) row from a mark table, inserting it
// instead when there was none. It reports whether the mark now exists.
func toggleMark(ctx context.Context, tx pgx.Tx, table, ownerColumn, ownerID, userID string) (bool, error) {
	del := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND user_id = $2`, table, ownerColumn)
	tag, err := tx.Exec(ctx, del, ownerID, userID)
	if err != nil {
		return false, fmt.Errorf("failed to remove mark: %w", err)
	}
	if tag.RowsAffected() > 0 {
		return false, nil
	}

	ins := fmt.Sprintf(`INSERT INTO %s (%s, user_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`, table, ownerColumn)
	if _, err := tx.Exec(ctx, ins, ownerID, userID); err != nil {
		return false, fmt.Errorf("failed to add mark: %w", err)
	}
	return true, nil
}

func reviewOrder(s domain.ReviewSort) string {
	switch s {
	case domain.SortOldest:
		return "rv.created_at ASC"
	case domain.SortRatingHigh:
		return "rv.rating DESC, rv.created_at DESC"
	case domain.SortRatingLow:
		return "rv.rating ASC, rv.created_at DESC"
	case domain.SortHelpful:
		return "rv.helpful_count DESC, rv.created_at DESC"
	}
	return "rv.created_at DESC"
}

func scanReview(row scanner) (*domain.Review, error) {
	var rv domain.Review
	var author domain.Author
	err := row.Scan(
		&rv.ID, &rv.UserID, &rv.PlaceID, &rv.Rating, &rv.Title, &rv.Text, &rv.Images, &rv.HelpfulCount,
		&rv.Verified, &rv.IsActive, &rv.CreatedAt, &rv.UpdatedAt, &author.Name, &author.ProfileImage,
	)
	if err != nil {
		return nil, err
	}
	author.ID = rv.UserID
	rv.Author = &author
	return &rv, nil
}
