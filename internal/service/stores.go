package service

import (
	"context"

	"github.com/yatra/backend/internal/domain"
)

// UserStore is the persistence surface the services need for users.
// Find methods return nil, nil when nothing matches.
type UserStore interface {
	Create(ctx context.Context, u *domain.User) error
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByGoogleID(ctx context.Context, googleID string) (*domain.User, error)
	Exists(ctx context.Context, email string) (bool, error)
	ListAll(ctx context.Context) ([]*domain.User, error)
	UpdateSubscription(ctx context.Context, id string, s domain.SubscriptionState) error
	LinkGoogle(ctx context.Context, id, googleID, profileImage string) error
	UpdateProfile(ctx context.Context, u *domain.User) error
	Delete(ctx context.Context, id string) error
}

// BookingStore persists bookings.
type BookingStore interface {
	Create(ctx context.Context, b *domain.Booking) error
	FindByID(ctx context.Context, id string) (*domain.Booking, error)
	List(ctx context.Context, f domain.BookingFilter) ([]*domain.Booking, int64, error)
	Update(ctx context.Context, b *domain.Booking) error
	Stats(ctx context.Context) (*domain.BookingStats, error)
}

// StayChecker reports whether a user has stayed at a place.
type StayChecker interface {
	HasStayed(ctx context.Context, userID, placeID string) (bool, error)
}

// PlaceStore reads destinations and places.
type PlaceStore interface {
	FindDestination(ctx context.Context, id string) (*domain.Destination, error)
	FindPlace(ctx context.Context, id string) (*domain.Place, error)
	ListPlaceSummaries(ctx context.Context, destinationID string) ([]domain.PlaceSummary, error)
}

// CatalogueStore is PlaceStore plus the browsing and admin writes.
// Write methods return a not-found AppError when the row is missing.
type CatalogueStore interface {
	PlaceStore
	ListDestinations(ctx context.Context, f domain.DestinationFilter) ([]*domain.Destination, int64, error)
	Regions(ctx context.Context) ([]string, error)
	ListPlaces(ctx context.Context, f domain.PlaceFilter) ([]domain.PlaceSummary, int64, error)
	FeaturedPlaces(ctx context.Context, limit int) ([]domain.PlaceSummary, error)
	CreateDestination(ctx context.Context, d *domain.Destination) error
	UpdateDestination(ctx context.Context, d *domain.Destination) error
	DeactivateDestination(ctx context.Context, id string) error
	CreatePlace(ctx context.Context, p *domain.Place) error
	UpdatePlace(ctx context.Context, p *domain.Place) error
	DeactivatePlace(ctx context.Context, id string) error
}

// ReviewStore persists reviews and keeps place ratings in step with them.
type ReviewStore interface {
	Create(ctx context.Context, rv *domain.Review) error
	Update(ctx context.Context, rv *domain.Review) error
	Deactivate(ctx context.Context, rv *domain.Review) error
	FindByID(ctx context.Context, id string) (*domain.Review, error)
	HasReviewed(ctx context.Context, userID, placeID string) (bool, error)
	List(ctx context.Context, f domain.ReviewFilter) ([]*domain.Review, int64, error)
	RatingCounts(ctx context.Context, placeID string) (map[int]int64, error)
	ToggleHelpful(ctx context.Context, reviewID, userID string) (*domain.HelpfulResult, error)
}

// CommentStore persists comments.
type CommentStore interface {
	Create(ctx context.Context, c *domain.Comment) error
	FindByID(ctx context.Context, id string) (*domain.Comment, error)
	ListTopLevel(ctx context.Context, f domain.CommentFilter) ([]*domain.Comment, int64, error)
	ListByUser(ctx context.Context, f domain.CommentFilter) ([]*domain.Comment, int64, error)
	Replies(ctx context.Context, parentIDs []string) (map[string][]*domain.Comment, error)
	UpdateText(ctx context.Context, c *domain.Comment) error
	Deactivate(ctx context.Context, id string) error
	ToggleLike(ctx context.Context, commentID, userID string) (*domain.LikeResult, error)
}

// EventPublisher delivers booking lifecycle events.
type EventPublisher interface {
	Publish(ctx context.Context, event domain.BookingEvent) error
}

// Sealer encrypts values at rest. aad binds a ciphertext to its owner record.
type Sealer interface {
	SealJSON(v any, aad string) (string, error)
	OpenJSON(encoded, aad string, v any) error
}
