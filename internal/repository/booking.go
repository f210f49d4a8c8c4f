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

const bookingColumns = `id, user_id, destination_id, place_id, start_date, end_date, adults, children,
	budget, package_type, contact_sealed, status, payment_status, total_amount, notes, created_at, updated_at`

// BookingRepository handles database operations for bookings.
type BookingRepository struct {
	db *pgxpool.Pool
}

// NewBookingRepository creates a new BookingRepository.
func NewBookingRepository(db *pgxpool.Pool) *BookingRepository {
	return &BookingRepository{db: db}
}

// Create inserts a new booking. Contact info must already be sealed.
func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	query := `
		INSERT INTO bookings (` + bookingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	`
	d := b.Details
	_, err := r.db.Exec(ctx, query,
		b.ID, b.UserID, b.DestinationID, b.PlaceID,
		d.StartDate, d.EndDate, d.NumberOfPeople.Adults, d.NumberOfPeople.Children,
		d.Budget, string(d.PackageType), b.SealedContact,
		string(b.Status), string(b.PaymentStatus), b.TotalAmount, b.Notes,
		b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}
	return nil
}

// FindByID returns a booking by ID, or nil if it does not exist.
func (r *BookingRepository) FindByID(ctx context.Context, id string) (*domain.Booking, error) {
	row := r.db.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = $1`, id)
	b, err := scanBooking(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find booking: %w", err)
	}
	return b, nil
}

// List returns one page of bookings matching f, newest first, with the total
// number of matches.
func (r *BookingRepository) List(ctx context.Context, f domain.BookingFilter) ([]*domain.Booking, int64, error) {
	where, args := bookingWhere(f)

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM bookings`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count bookings: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM bookings%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		bookingColumns, where, len(args)+1, len(args)+2)
	args = append(args, f.Limit, f.Offset())

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query bookings: %w", err)
	}
	defer rows.Close()

	bookings := []*domain.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan booking row: %w", err)
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to query bookings: %w", err)
	}
	return bookings, total, nil
}

// Update persists the mutable fields of a booking.
func (r *BookingRepository) Update(ctx context.Context, b *domain.Booking) error {
	query := `
		UPDATE bookings SET status = $1, payment_status = $2, notes = $3, updated_at = $4
		WHERE id = $5
	`
	tag, err := r.db.Exec(ctx, query, string(b.Status), string(b.PaymentStatus), b.Notes, b.UpdatedAt, b.ID)
	if err != nil {
		return fmt.Errorf("failed to update booking: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound("booking not found")
	}
	return nil
}

// Stats aggregates counts per status, revenue of confirmed and completed
// bookings, and per-month figures for the last twelve months.
func (r *BookingRepository) Stats(ctx context.Context) (*domain.BookingStats, error) {
	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'pending'),
			COUNT(*) FILTER (WHERE status = 'confirmed'),
			COUNT(*) FILTER (WHERE status = 'cancelled'),
			COUNT(*) FILTER (WHERE status = 'completed'),
			COALESCE(SUM(total_amount) FILTER (WHERE status IN ('confirmed', 'completed')), 0)
		FROM bookings
	`
	var s domain.BookingStats
	err := r.db.QueryRow(ctx, query).Scan(
		&s.TotalBookings, &s.PendingBookings, &s.ConfirmedBookings,
		&s.CancelledBookings, &s.CompletedBookings, &s.TotalRevenue,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate bookings: %w", err)
	}

	monthly := `
		SELECT
			EXTRACT(YEAR FROM created_at)::INT AS year,
			EXTRACT(MONTH FROM created_at)::INT AS month,
			COUNT(*),
			COALESCE(SUM(total_amount) FILTER (WHERE status IN ('confirmed', 'completed')), 0)
		FROM bookings
		WHERE created_at >= date_trunc('month', NOW()) - INTERVAL '11 months'
		GROUP BY year, month
		ORDER BY year, month
	`
	rows, err := r.db.Query(ctx, monthly)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate monthly bookings: %w", err)
	}
	defer rows.Close()

	s.Monthly = []domain.MonthlyBookings{}
	for rows.Next() {
		var m domain.MonthlyBookings
		if err := rows.Scan(&m.Year, &m.Month, &m.Count, &m.Revenue); err != nil {
			return nil, fmt.Errorf("failed to scan monthly bookings: %w", err)
		}
		s.Monthly = append(s.Monthly, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to aggregate monthly bookings: %w", err)
	}
	return &s, nil
}

// HasStayed reports whether the user holds a confirmed or completed booking
// of the place.
func (r *BookingRepository) HasStayed(ctx context.Context, userID, placeID string) (bool, error) {
	query := `
		SELECT EXISTS(SELECT 1 FROM bookings
			WHERE user_id = $1 AND place_id = $2 AND status IN ($3, $4))
	`
	var exists bool
	err := r.db.QueryRow(ctx, query, userID, placeID,
		string(domain.BookingConfirmed), string(domain.BookingCompleted)).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check stay: %w", err)
	}
	return exists, nil
}

func bookingWhere(f domain.BookingFilter) (string, []any) {
	var conds []string
	var args []any
	add := func(cond string, v any) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if f.UserID != "" {
		add("user_id = $%d", f.UserID)
	}
	if f.DestinationID != "" {
		add("destination_id = $%d", f.DestinationID)
	}
	if f.Status != "" {
		add("status = $%d", string(f.Status))
	}
	if f.CreatedFrom != nil {
		add("created_at >= $%d", *f.CreatedFrom)
	}
	if f.CreatedTo != nil {
		add("created_at <= $%d", *f.CreatedTo)
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func scanBooking(row scanner) (*domain.Booking, error) {
	var b domain.Booking
	var pkg, status, payment string
	d := &b.Details
	err := row.Scan(
		&b.ID, &b.UserID, &b.DestinationID, &b.PlaceID,
		&d.StartDate, &d.EndDate, &d.NumberOfPeople.Adults, &d.NumberOfPeople.Children,
		&d.Budget, &pkg, &b.SealedContact, &status, &payment, &b.TotalAmount, &b.Notes,
		&b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	d.PackageType = domain.PackageType(pkg)
	b.Status = domain.BookingStatus(status)
	b.PaymentStatus = domain.PaymentStatus(payment)
	return &b, nil
}
