package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yatra/backend/internal/domain"
)

func TestExpireLapsedQuery_MatchesOnExpiryAlone(t *testing.T) {
	assert.Contains(t, expireLapsedQuery, "WHERE subscription_expiry < $1")
	assert.NotContains(t, expireLapsedQuery, "is_subscribed AND")
}

// Needs a live server: POSTGRES_TEST_URL=postgres://localhost/yatra_test go test ./internal/repository
func TestUserRepository_ExpireLapsedClearsStaleRows(t *testing.T) {
	url := os.Getenv("POSTGRES_TEST_URL")
	if url == "" {
		t.Skip("POSTGRES_TEST_URL not set")
	}

	ctx := context.Background()
	pool, err := NewDB(ctx, url)
	require.NoError(t, err)
	defer pool.Close()
	require.NoError(t, RunMigrations(ctx, pool))

	repo := NewUserRepository(pool)
	now := time.Now().UTC()
	past := now.Add(-time.Hour)
	plan := domain.PlanMonthly

	// Flag already cleared but plan and expiry left behind.
	u := &domain.User{
		ID:        uuid.New().String(),
		Name:      "Stale",
		Email:     uuid.New().String() + "@example.com",
		Role:      domain.RoleUser,
		CreatedAt: now,
		UpdatedAt: now,
		Subscription: domain.SubscriptionState{
			IsSubscribed: false,
			PlanType:     &plan,
			ExpiryDate:   &past,
		},
	}
	require.NoError(t, repo.Create(ctx, u))
	defer repo.Delete(ctx, u.ID)

	_, err = repo.ExpireLapsed(ctx, now)
	require.NoError(t, err)

	got, err := repo.FindByID(ctx, u.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.False(t, got.Subscription.IsSubscribed)
	assert.Nil(t, got.Subscription.PlanType)
	assert.Nil(t, got.Subscription.ExpiryDate)
}
