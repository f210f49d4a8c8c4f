package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// scanner is satisfied by both pgx.Row and pgx.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// NewDB creates a new PostgreSQL connection pool.
func NewDB(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	config.MaxConns = 10
	config.MinConns = 2

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return pool, nil
}

// RunMigrations creates the schema if it does not exist yet.
func RunMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	query := `
		CREATE TABLE IF NOT EXISTS users (
			id                  TEXT PRIMARY KEY,
			name                TEXT NOT NULL,
			email               TEXT NOT NULL UNIQUE,
			phone               TEXT NOT NULL DEFAULT '',
			password            TEXT NOT NULL DEFAULT '',
			auth_provider       TEXT NOT NULL DEFAULT 'local',
			google_id           TEXT UNIQUE,
			role                TEXT NOT NULL DEFAULT 'user',
			profile_image       TEXT NOT NULL DEFAULT '',
			is_subscribed       BOOLEAN NOT NULL DEFAULT FALSE,
			plan_type           TEXT,
			subscription_expiry TIMESTAMPTZ,
			created_at          TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at          TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS idx_users_email ON users(email);

		CREATE TABLE IF NOT EXISTS destinations (
			id          TEXT PRIMARY KEY,
			name        TEXT NOT NULL,
			region      TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			image       TEXT NOT NULL DEFAULT '',
			featured    BOOLEAN NOT NULL DEFAULT FALSE,
			is_active   BOOLEAN NOT NULL DEFAULT TRUE,
			created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS idx_destinations_region ON destinations(region);

		CREATE TABLE IF NOT EXISTS places (
			id             TEXT PRIMARY KEY,
			destination_id TEXT NOT NULL REFERENCES destinations(id),
			name           TEXT NOT NULL,
			description    TEXT NOT NULL DEFAULT '',
			images         TEXT[] NOT NULL DEFAULT '{}',
			culture        TEXT NOT NULL DEFAULT '',
			best_time      TEXT NOT NULL DEFAULT '',
			nightly_rate   BIGINT NOT NULL DEFAULT 0 CHECK (nightly_rate >= 0),
			currency       TEXT NOT NULL DEFAULT 'INR',
			featured       BOOLEAN NOT NULL DEFAULT FALSE,
			average_rating NUMERIC(2,1) NOT NULL DEFAULT 0,
			review_count   INT NOT NULL DEFAULT 0,
			is_active      BOOLEAN NOT NULL DEFAULT TRUE,
			created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS idx_places_destination_id ON places(destination_id);
		CREATE INDEX IF NOT EXISTS idx_places_rating ON places(average_rating DESC);

		CREATE TABLE IF NOT EXISTS bookings (
			id             TEXT PRIMARY KEY,
			user_id        TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			destination_id TEXT NOT NULL REFERENCES destinations(id),
			place_id       TEXT NOT NULL REFERENCES places(id),
			start_date     TIMESTAMPTZ NOT NULL,
			end_date       TIMESTAMPTZ NOT NULL,
			adults         INT NOT NULL,
			children       INT NOT NULL DEFAULT 0,
			budget         DOUBLE PRECISION NOT NULL DEFAULT 0,
			package_type   TEXT NOT NULL,
			contact_sealed TEXT NOT NULL,
			status         TEXT NOT NULL DEFAULT 'pending',
			payment_status TEXT NOT NULL DEFAULT 'pending',
			total_amount   BIGINT NOT NULL,
			notes          TEXT NOT NULL DEFAULT '',
			created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at     TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			CHECK (end_date > start_date),
			CHECK (adults >= 1 AND children >= 0),
			CHECK (total_amount >= 0)
		);
		CREATE INDEX IF NOT EXISTS idx_bookings_user_id ON bookings(user_id, created_at DESC);
		CREATE INDEX IF NOT EXISTS idx_bookings_status ON bookings(status);
		CREATE INDEX IF NOT EXISTS idx_bookings_created_at ON bookings(created_at);

		CREATE TABLE IF NOT EXISTS reviews (
			id            TEXT PRIMARY KEY,
			user_id       TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			place_id      TEXT NOT NULL REFERENCES places(id),
			rating        INT NOT NULL CHECK (rating BETWEEN 1 AND 5),
			title         TEXT NOT NULL,
			text          TEXT NOT NULL,
			images        TEXT[] NOT NULL DEFAULT '{}',
			helpful_count INT NOT NULL DEFAULT 0,
			verified      BOOLEAN NOT NULL DEFAULT FALSE,
			is_active     BOOLEAN NOT NULL DEFAULT TRUE,
			created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE UNIQUE INDEX IF NOT EXISTS idx_reviews_user_place ON reviews(user_id, place_id) WHERE is_active;
		CREATE INDEX IF NOT EXISTS idx_reviews_place ON reviews(place_id, created_at DESC);

		CREATE TABLE IF NOT EXISTS review_helpful (
			review_id TEXT NOT NULL REFERENCES reviews(id) ON DELETE CASCADE,
			user_id   TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			PRIMARY KEY (review_id, user_id)
		);

		CREATE TABLE IF NOT EXISTS comments (
			id          TEXT PRIMARY KEY,
			user_id     TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			place_id    TEXT NOT NULL REFERENCES places(id),
			parent_id   TEXT REFERENCES comments(id) ON DELETE CASCADE,
			text        TEXT NOT NULL,
			likes_count INT NOT NULL DEFAULT 0,
			is_edited   BOOLEAN NOT NULL DEFAULT FALSE,
			edited_at   TIMESTAMPTZ,
			is_active   BOOLEAN NOT NULL DEFAULT TRUE,
			created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS idx_comments_place ON comments(place_id, parent_id, created_at DESC);
		CREATE INDEX IF NOT EXISTS idx_comments_user ON comments(user_id, created_at DESC);

		CREATE TABLE IF NOT EXISTS comment_likes (
			comment_id TEXT NOT NULL REFERENCES comments(id) ON DELETE CASCADE,
			user_id    TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			PRIMARY KEY (comment_id, user_id)
		);
	`
	_, err := pool.Exec(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}
