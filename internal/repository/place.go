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

const destinationColumns = `id, name, region, description, image, featured, is_active, created_at`

const placeColumns = `id, destination_id, name, description, images, culture, best_time,
	nightly_rate, currency, featured, average_rating::float8, review_count, is_active, created_at`

const placeSummaryColumns = `id, destination_id, name, description, images, nightly_rate, currency,
	featured, average_rating::float8, review_count`

// PlaceRepository handles database operations for destinations and places.
type PlaceRepository struct {
	db *pgxpool.Pool
}

// NewPlaceRepository creates a new PlaceRepository.
func NewPlaceRepository(db *pgxpool.Pool) *PlaceRepository {
	return &PlaceRepository{db: db}
}

// FindDestination returns a destination by ID, or nil if it does not exist.
func (r *PlaceRepository) FindDestination(ctx context.Context, id string) (*domain.Destination, error) {
	row := r.db.QueryRow(ctx, `SELECT `+destinationColumns+` FROM destinations WHERE id = $1`, id)
	d, err := scanDestination(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find destination: %w", err)
	}
	return d, nil
}

// ListDestinations returns one page of active destinations, featured first.
func (r *PlaceRepository) ListDestinations(ctx context.Context, f domain.DestinationFilter) ([]*domain.Destination, int64, error) {
	where, args := destinationWhere(f)

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM destinations`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count destinations: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM destinations%s ORDER BY featured DESC, created_at DESC LIMIT $%d OFFSET $%d`,
		destinationColumns, where, len(args)+1, len(args)+2)
	args = append(args, f.Limit, f.Offset())

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query destinations: %w", err)
	}
	defer rows.Close()

	destinations := []*domain.Destination{}
	for rows.Next() {
		d, err := scanDestination(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan destination row: %w", err)
		}
		destinations = append(destinations, d)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to query destinations: %w", err)
	}
	return destinations, total, nil
}

// Regions returns the distinct regions of active destinations.
func (r *PlaceRepository) Regions(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, `
		SELECT DISTINCT region FROM destinations
		WHERE is_active AND region <> ''
		ORDER BY region
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query regions: %w", err)
	}
	defer rows.Close()

	regions := []string{}
	for rows.Next() {
		var region string
		if err := rows.Scan(&region); err != nil {
			return nil, fmt.Errorf("failed to scan region: %w", err)
		}
		regions = append(regions, region)
	}
	return regions, rows.Err()
}

// CreateDestination inserts a new destination.
func (r *PlaceRepository) CreateDestination(ctx context.Context, d *domain.Destination) error {
	query := `INSERT INTO destinations (` + destinationColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.db.Exec(ctx, query, d.ID, d.Name, d.Region, d.Description, d.Image, d.Featured, d.IsActive, d.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create destination: %w", err)
	}
	return nil
}

// UpdateDestination persists the editable fields of a destination.
func (r *PlaceRepository) UpdateDestination(ctx context.Context, d *domain.Destination) error {
	query := `
		UPDATE destinations SET name = $1, region = $2, description = $3, image = $4, featured = $5
		WHERE id = $6
	`
	tag, err := r.db.Exec(ctx, query, d.Name, d.Region, d.Description, d.Image, d.Featured, d.ID)
	if err != nil {
		return fmt.Errorf("failed to update destination: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound("destination not found")
	}
	return nil
}

// DeactivateDestination hides a destination and all of its places.
func (r *PlaceRepository) DeactivateDestination(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `UPDATE destinations SET is_active = FALSE WHERE id = $1 AND is_active`, id)
	if err != nil {
		return fmt.Errorf("failed to deactivate destination: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound("destination not found")
	}
	if _, err := tx.Exec(ctx, `UPDATE places SET is_active = FALSE WHERE destination_id = $1`, id); err != nil {
		return fmt.Errorf("failed to deactivate places: %w", err)
	}
	return tx.Commit(ctx)
}

// FindPlace returns a place by ID, or nil if it does not exist.
func (r *PlaceRepository) FindPlace(ctx context.Context, id string) (*domain.Place, error) {
	p, err := scanPlace(r.db.QueryRow(ctx, `SELECT `+placeColumns+` FROM places WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find place: %w", err)
	}
	return p, nil
}

// ListPlaceSummaries returns every active place of a destination, featured
// and best rated first.
func (r *PlaceRepository) ListPlaceSummaries(ctx context.Context, destinationID string) ([]domain.PlaceSummary, error) {
	query := `SELECT ` + placeSummaryColumns + ` FROM places
		WHERE destination_id = $1 AND is_active
		ORDER BY featured DESC, average_rating DESC, name`
	return r.querySummaries(ctx, query, destinationID)
}

// ListPlaces returns one page of active places matching f.
func (r *PlaceRepository) ListPlaces(ctx context.Context, f domain.PlaceFilter) ([]domain.PlaceSummary, int64, error) {
	where, args := placeWhere(f)

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM places`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count places: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM places%s ORDER BY featured DESC, average_rating DESC, name LIMIT $%d OFFSET $%d`,
		placeSummaryColumns, where, len(args)+1, len(args)+2)
	args = append(args, f.Limit, f.Offset())

	places, err := r.querySummaries(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return places, total, nil
}

// FeaturedPlaces returns up to limit featured places, best rated first.
func (r *PlaceRepository) FeaturedPlaces(ctx context.Context, limit int) ([]domain.PlaceSummary, error) {
	query := `SELECT ` + placeSummaryColumns + ` FROM places
		WHERE featured AND is_active
		ORDER BY average_rating DESC, review_count DESC
		LIMIT $1`
	return r.querySummaries(ctx, query, limit)
}

// CreatePlace inserts a new place.
func (r *PlaceRepository) CreatePlace(ctx context.Context, p *domain.Place) error {
	query := `
		INSERT INTO places (id, destination_id, name, description, images, culture, best_time,
			nightly_rate, currency, featured, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err := r.db.Exec(ctx, query,
		p.ID, p.DestinationID, p.Name, p.Description, p.Images, p.Culture, p.BestTime,
		p.NightlyRate, p.Currency, p.Featured, p.IsActive, p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create place: %w", err)
	}
	return nil
}

// UpdatePlace persists the editable fields of a place. Ratings are owned by
// the review repository.
func (r *PlaceRepository) UpdatePlace(ctx context.Context, p *domain.Place) error {
	query := `
		UPDATE places SET destination_id = $1, name = $2, description = $3, images = $4, culture = $5,
			best_time = $6, nightly_rate = $7, currency = $8, featured = $9
		WHERE id = $10
	`
	tag, err := r.db.Exec(ctx, query,
		p.DestinationID, p.Name, p.Description, p.Images, p.Culture,
		p.BestTime, p.NightlyRate, p.Currency, p.Featured, p.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update place: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound("place not found")
	}
	return nil
}

// DeactivatePlace hides a place.
func (r *PlaceRepository) DeactivatePlace(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `UPDATE places SET is_active = FALSE WHERE id = $1 AND is_active`, id)
	if err != nil {
		return fmt.Errorf("failed to deactivate place: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound("place not found")
	}
	return nil
}

func (r *PlaceRepository) querySummaries(ctx context.Context, query string, args ...any) ([]domain.PlaceSummary, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query places: %w", err)
	}
	defer rows.Close()

	places := []domain.PlaceSummary{}
	for rows.Next() {
		var p domain.PlaceSummary
		err := rows.Scan(
			&p.ID, &p.DestinationID, &p.Name, &p.Description, &p.Images, &p.NightlyRate, &p.Currency,
			&p.Featured, &p.AverageRating, &p.ReviewCount,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan place row: %w", err)
		}
		if p.NightlyRate == 0 {
			p.NightlyRate = domain.DefaultNightlyRate
		}
		places = append(places, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to query places: %w", err)
	}
	return places, nil
}

func destinationWhere(f domain.DestinationFilter) (string, []any) {
	conds := []string{"is_active"}
	var args []any
	add := func(cond string, v any) {
		args = append(args, v)
		conds = append(conds, strings.ReplaceAll(cond, "$n", fmt.Sprintf("$%d", len(args))))
	}

	if f.Region != "" {
		add("region = $n", f.Region)
	}
	if f.Featured {
		conds = append(conds, "featured")
	}
	if f.Search != "" {
		add("(name ILIKE $n OR description ILIKE $n)", likePattern(f.Search))
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func placeWhere(f domain.PlaceFilter) (string, []any) {
	conds := []string{"is_active"}
	var args []any
	add := func(cond string, v any) {
		args = append(args, v)
		conds = append(conds, strings.ReplaceAll(cond, "$n", fmt.Sprintf("$%d", len(args))))
	}

	if f.DestinationID != "" {
		add("destination_id = $n", f.DestinationID)
	}
	if f.Featured {
		conds = append(conds, "featured")
	}
	if f.Search != "" {
		add("(name ILIKE $n OR description ILIKE $n)", likePattern(f.Search))
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// likePattern wraps s for a substring ILIKE match with wildcards escaped.
func likePattern(s string) string {
	s = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(strings.TrimSpace(s))
	return "%" + s + "%"
}

func scanDestination(row scanner) (*domain.Destination, error) {
	var d domain.Destination
	err := row.Scan(&d.ID, &d.Name, &d.Region, &d.Description, &d.Image, &d.Featured, &d.IsActive, &d.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func scanPlace(row scanner) (*domain.Place, error) {
	var p domain.Place
	err := row.Scan(
		&p.ID, &p.DestinationID, &p.Name, &p.Description, &p.Images, &p.Culture, &p.BestTime,
		&p.NightlyRate, &p.Currency, &p.Featured, &p.AverageRating, &p.ReviewCount, &p.IsActive, &p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
