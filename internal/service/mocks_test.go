package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/yatra/backend/internal/domain"
)

type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) Create(ctx context.Context, u *domain.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *MockUserStore) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserStore) FindByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserStore) FindByGoogleID(ctx context.Context, googleID string) (*domain.User, error) {
	args := m.Called(ctx, googleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserStore) Exists(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserStore) ListAll(ctx context.Context) ([]*domain.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*domain.User), args.Error(1)
}

func (m *MockUserStore) UpdateSubscription(ctx context.Context, id string, s domain.SubscriptionState) error {
	return m.Called(ctx, id, s).Error(0)
}

func (m *MockUserStore) LinkGoogle(ctx context.Context, id, googleID, profileImage string) error {
	return m.Called(ctx, id, googleID, profileImage).Error(0)
}

func (m *MockUserStore) UpdateProfile(ctx context.Context, u *domain.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *MockUserStore) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type MockBookingStore struct {
	mock.Mock
}

func (m *MockBookingStore) Create(ctx context.Context, b *domain.Booking) error {
	return m.Called(ctx, b).Error(0)
}

func (m *MockBookingStore) FindByID(ctx context.Context, id string) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingStore) List(ctx context.Context, f domain.BookingFilter) ([]*domain.Booking, int64, error) {
	args := m.Called(ctx, f)
	return args.Get(0).([]*domain.Booking), args.Get(1).(int64), args.Error(2)
}

func (m *MockBookingStore) Update(ctx context.Context, b *domain.Booking) error {
	return m.Called(ctx, b).Error(0)
}

func (m *MockBookingStore) Stats(ctx context.Context) (*domain.BookingStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BookingStats), args.Error(1)
}

type MockPlaceStore struct {
	mock.Mock
}

func (m *MockPlaceStore) FindDestination(ctx context.Context, id string) (*domain.Destination, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Destination), args.Error(1)
}

func (m *MockPlaceStore) FindPlace(ctx context.Context, id string) (*domain.Place, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Place), args.Error(1)
}

func (m *MockPlaceStore) ListPlaceSummaries(ctx context.Context, destinationID string) ([]domain.PlaceSummary, error) {
	args := m.Called(ctx, destinationID)
	return args.Get(0).([]domain.PlaceSummary), args.Error(1)
}

func (m *MockPlaceStore) ListDestinations(ctx context.Context, f domain.DestinationFilter) ([]*domain.Destination, int64, error) {
	args := m.Called(ctx, f)
	return args.Get(0).([]*domain.Destination), args.Get(1).(int64), args.Error(2)
}

func (m *MockPlaceStore) Regions(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockPlaceStore) ListPlaces(ctx context.Context, f domain.PlaceFilter) ([]domain.PlaceSummary, int64, error) {
	args := m.Called(ctx, f)
	return args.Get(0).([]domain.PlaceSummary), args.Get(1).(int64), args.Error(2)
}

func (m *MockPlaceStore) FeaturedPlaces(ctx context.Context, limit int) ([]domain.PlaceSummary, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]domain.PlaceSummary), args.Error(1)
}

func (m *MockPlaceStore) CreateDestination(ctx context.Context, d *domain.Destination) error {
	return m.Called(ctx, d).Error(0)
}

func (m *MockPlaceStore) UpdateDestination(ctx context.Context, d *domain.Destination) error {
	return m.Called(ctx, d).Error(0)
}

func (m *MockPlaceStore) DeactivateDestination(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockPlaceStore) CreatePlace(ctx context.Context, p *domain.Place) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockPlaceStore) UpdatePlace(ctx context.Context, p *domain.Place) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockPlaceStore) DeactivatePlace(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type MockStayChecker struct {
	mock.Mock
}

func (m *MockStayChecker) HasStayed(ctx context.Context, userID, placeID string) (bool, error) {
	args := m.Called(ctx, userID, placeID)
	return args.Bool(0), args.Error(1)
}

type MockReviewStore struct {
	mock.Mock
}

func (m *MockReviewStore) Create(ctx context.Context, rv *domain.Review) error {
	return m.Called(ctx, rv).Error(0)
}

func (m *MockReviewStore) Update(ctx context.Context, rv *domain.Review) error {
	return m.Called(ctx, rv).Error(0)
}

func (m *MockReviewStore) Deactivate(ctx context.Context, rv *domain.Review) error {
	return m.Called(ctx, rv).Error(0)
}

func (m *MockReviewStore) FindByID(ctx context.Context, id string) (*domain.Review, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Review), args.Error(1)
}

func (m *MockReviewStore) HasReviewed(ctx context.Context, userID, placeID string) (bool, error) {
	args := m.Called(ctx, userID, placeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockReviewStore) List(ctx context.Context, f domain.ReviewFilter) ([]*domain.Review, int64, error) {
	args := m.Called(ctx, f)
	return args.Get(0).([]*domain.Review), args.Get(1).(int64), args.Error(2)
}

func (m *MockReviewStore) RatingCounts(ctx context.Context, placeID string) (map[int]int64, error) {
	args := m.Called(ctx, placeID)
	return args.Get(0).(map[int]int64), args.Error(1)
}

func (m *MockReviewStore) ToggleHelpful(ctx context.Context, reviewID, userID string) (*domain.HelpfulResult, error) {
	args := m.Called(ctx, reviewID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.HelpfulResult), args.Error(1)
}

type MockCommentStore struct {
	mock.Mock
}

func (m *MockCommentStore) Create(ctx context.Context, c *domain.Comment) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCommentStore) FindByID(ctx context.Context, id string) (*domain.Comment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Comment), args.Error(1)
}

func (m *MockCommentStore) ListTopLevel(ctx context.Context, f domain.CommentFilter) ([]*domain.Comment, int64, error) {
	args := m.Called(ctx, f)
	return args.Get(0).([]*domain.Comment), args.Get(1).(int64), args.Error(2)
}

func (m *MockCommentStore) ListByUser(ctx context.Context, f domain.CommentFilter) ([]*domain.Comment, int64, error) {
	args := m.Called(ctx, f)
	return args.Get(0).([]*domain.Comment), args.Get(1).(int64), args.Error(2)
}

func (m *MockCommentStore) Replies(ctx context.Context, parentIDs []string) (map[string][]*domain.Comment, error) {
	args := m.Called(ctx, parentIDs)
	return args.Get(0).(map[string][]*domain.Comment), args.Error(1)
}

func (m *MockCommentStore) UpdateText(ctx context.Context, c *domain.Comment) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCommentStore) Deactivate(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockCommentStore) ToggleLike(ctx context.Context, commentID, userID string) (*domain.LikeResult, error) {
	args := m.Called(ctx, commentID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LikeResult), args.Error(1)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, event domain.BookingEvent) error {
	return m.Called(ctx, event).Error(0)
}

type MockSubscriptionReader struct {
	mock.Mock
}

func (m *MockSubscriptionReader) Current(ctx context.Context, userID string) (domain.SubscriptionState, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(domain.SubscriptionState), args.Error(1)
}

type MockGoogleVerifier struct {
	mock.Mock
}

func (m *MockGoogleVerifier) Verify(ctx context.Context, credential string) (*GoogleIdentity, error) {
	args := m.Called(ctx, credential)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*GoogleIdentity), args.Error(1)
}
