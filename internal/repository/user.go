package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yatra/backend/internal/domain"
)

const userColumns = `id, name, email, phone, password, auth_provider, google_id, role, profile_image,
	is_subscribed, plan_type, subscription_expiry, created_at, updated_at`

// UserRepository handles database operations for users.
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user into the database.
func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	query := `
		INSERT INTO users (id, name, email, phone, password, auth_provider, google_id, role, profile_image,
			is_subscribed, plan_type, subscription_expiry, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`
	_, err := r.db.Exec(ctx, query,
		u.ID, u.Name, u.Email, u.Phone, u.Password, u.AuthProvider, u.GoogleID, u.Role, u.ProfileImage,
		u.Subscription.IsSubscribed, planTypeArg(u.Subscription.PlanType), u.Subscription.ExpiryDate,
		u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// FindByEmail returns a user by email address.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

// FindByID returns a user by ID.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

// FindByGoogleID returns the user linked to a Google account subject.
func (r *UserRepository) FindByGoogleID(ctx context.Context, googleID string) (*domain.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE google_id = $1`, googleID)
}

// Exists checks if a user with the given email already exists.
func (r *UserRepository) Exists(ctx context.Context, email string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`
	var exists bool
	err := r.db.QueryRow(ctx, query, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check user existence: %w", err)
	}
	return exists, nil
}

// ListAll returns all users ordered by creation date.
func (r *UserRepository) ListAll(ctx context.Context) ([]*domain.User, error) {
	rows, err := r.db.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	users := []*domain.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// UpdateSubscription overwrites the subscription columns of a user.
func (r *UserRepository) UpdateSubscription(ctx context.Context, id string, s domain.SubscriptionState) error {
	query := `
		UPDATE users
		SET is_subscribed = $1, plan_type = $2, subscription_expiry = $3, updated_at = NOW()
		WHERE id = $4
	`
	tag, err := r.db.Exec(ctx, query, s.IsSubscribed, planTypeArg(s.PlanType), s.ExpiryDate, id)
	if err != nil {
		return fmt.Errorf("failed to update subscription: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound("user not found")
	}
	return nil
}

// expireLapsedQuery matches on the expiry alone so rows whose flag was
// already cleared still lose their stale plan and expiry.
const expireLapsedQuery = `
	UPDATE users
	SET is_subscribed = FALSE, plan_type = NULL, subscription_expiry = NULL, updated_at = NOW()
	WHERE subscription_expiry < $1
`

// ExpireLapsed clears the subscription of every user whose expiry is
// before now and returns how many rows changed.
func (r *UserRepository) ExpireLapsed(ctx context.Context, now time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, expireLapsedQuery, now)
	if err != nil {
		return 0, fmt.Errorf("failed to expire subscriptions: %w", err)
	}
	return tag.RowsAffected(), nil
}

// UpdateProfile overwrites the self-editable profile columns of a user.
func (r *UserRepository) UpdateProfile(ctx context.Context, u *domain.User) error {
	query := `
		UPDATE users SET name = $1, phone = $2, profile_image = $3, updated_at = $4
		WHERE id = $5
	`
	tag, err := r.db.Exec(ctx, query, u.Name, u.Phone, u.ProfileImage, u.UpdatedAt, u.ID)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound("user not found")
	}
	return nil
}

// LinkGoogle attaches a Google account to an existing user.
func (r *UserRepository) LinkGoogle(ctx context.Context, id, googleID, profileImage string) error {
	query := `
		UPDATE users
		SET google_id = $1, auth_provider = $2,
			profile_image = CASE WHEN profile_image = '' THEN $3 ELSE profile_image END,
			updated_at = NOW()
		WHERE id = $4
	`
	_, err := r.db.Exec(ctx, query, googleID, domain.AuthProviderGoogle, profileImage, id)
	if err != nil {
		return fmt.Errorf("failed to link google account: %w", err)
	}
	return nil
}

// Delete removes a user by ID. Their bookings cascade.
func (r *UserRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

func (r *UserRepository) findOne(ctx context.Context, query string, args ...any) (*domain.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return u, nil
}

func scanUser(row scanner) (*domain.User, error) {
	var u domain.User
	var plan *string
	err := row.Scan(
		&u.ID, &u.Name, &u.Email, &u.Phone, &u.Password, &u.AuthProvider, &u.GoogleID, &u.Role, &u.ProfileImage,
		&u.Subscription.IsSubscribed, &plan, &u.Subscription.ExpiryDate, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if plan != nil {
		p := domain.PlanType(*plan)
		u.Subscription.PlanType = &p
	}
	return &u, nil
}

func planTypeArg(p *domain.PlanType) *string {
	if p == nil {
		return nil
	}
	s := string(*p)
	return &s
}
