package handler

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/yatra/backend/internal/domain"
	"github.com/yatra/backend/internal/pricing"
)

type MockAuth struct {
	mock.Mock
}

func (m *MockAuth) Register(ctx context.Context, req *domain.RegisterRequest) (*domain.LoginResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LoginResponse), args.Error(1)
}

func (m *MockAuth) Login(ctx context.Context, req *domain.LoginRequest) (*domain.LoginResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LoginResponse), args.Error(1)
}

func (m *MockAuth) GoogleLogin(ctx context.Context, req *domain.GoogleLoginRequest) (*domain.LoginResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LoginResponse), args.Error(1)
}

func (m *MockAuth) GetUserByID(ctx context.Context, id string) (*domain.UserResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserResponse), args.Error(1)
}

func (m *MockAuth) UpdateProfile(ctx context.Context, id string, req *domain.UpdateProfileRequest) (*domain.UserResponse, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserResponse), args.Error(1)
}

func (m *MockAuth) ListUsers(ctx context.Context) ([]*domain.UserResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.UserResponse), args.Error(1)
}

func (m *MockAuth) CreateUser(ctx context.Context, req *domain.CreateUserRequest) (*domain.UserResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserResponse), args.Error(1)
}

func (m *MockAuth) DeleteUser(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type MockSubscriptions struct {
	mock.Mock
}

func (m *MockSubscriptions) Plans() []domain.Plan {
	return m.Called().Get(0).([]domain.Plan)
}

func (m *MockSubscriptions) Subscribe(ctx context.Context, userID string, req *domain.SubscribeRequest) (*domain.SubscriptionResponse, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SubscriptionResponse), args.Error(1)
}

func (m *MockSubscriptions) Status(ctx context.Context, userID string) (*domain.SubscriptionStatus, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SubscriptionStatus), args.Error(1)
}

func (m *MockSubscriptions) Cancel(ctx context.Context, userID string) (*domain.SubscriptionResponse, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SubscriptionResponse), args.Error(1)
}

type MockBookings struct {
	mock.Mock
}

func (m *MockBookings) Quote(ctx context.Context, userID string, req *domain.QuoteRequest) (*pricing.Quote, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pricing.Quote), args.Error(1)
}

func (m *MockBookings) Create(ctx context.Context, userID string, req *domain.CreateBookingRequest) (*domain.Booking, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookings) ListForUser(ctx context.Context, userID string, page, limit int, status string) (*domain.BookingPage, error) {
	args := m.Called(ctx, userID, page, limit, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BookingPage), args.Error(1)
}

func (m *MockBookings) ListAll(ctx context.Context, f domain.BookingFilter) (*domain.BookingPage, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BookingPage), args.Error(1)
}

func (m *MockBookings) Get(ctx context.Context, userID, role, id string) (*domain.Booking, error) {
	args := m.Called(ctx, userID, role, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookings) CancelByUser(ctx context.Context, userID, id string, req *domain.UserStatusRequest) (*domain.Booking, error) {
	args := m.Called(ctx, userID, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookings) AdminUpdate(ctx context.Context, id string, u domain.AdminUpdate) (*domain.Booking, error) {
	args := m.Called(ctx, id, u)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookings) Stats(ctx context.Context) (*domain.BookingStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BookingStats), args.Error(1)
}

type MockPlaces struct {
	mock.Mock
}

func (m *MockPlaces) Destination(ctx context.Context, id string) (*domain.DestinationSummary, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DestinationSummary), args.Error(1)
}

func (m *MockPlaces) Place(ctx context.Context, id string) (*domain.PlaceDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PlaceDetail), args.Error(1)
}

func (m *MockPlaces) ListDestinations(ctx context.Context, f domain.DestinationFilter) (*domain.DestinationPage, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DestinationPage), args.Error(1)
}

func (m *MockPlaces) Regions(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockPlaces) PlacesByDestination(ctx context.Context, destinationID string, page, limit int) (*domain.PlacePage, error) {
	args := m.Called(ctx, destinationID, page, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PlacePage), args.Error(1)
}

func (m *MockPlaces) SearchPlaces(ctx context.Context, query string, page, limit int) (*domain.PlacePage, error) {
	args := m.Called(ctx, query, page, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PlacePage), args.Error(1)
}

func (m *MockPlaces) FeaturedPlaces(ctx context.Context, limit int) ([]domain.PlaceSummary, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PlaceSummary), args.Error(1)
}

func (m *MockPlaces) CreateDestination(ctx context.Context, req *domain.DestinationRequest) (*domain.Destination, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Destination), args.Error(1)
}

func (m *MockPlaces) UpdateDestination(ctx context.Context, id string, u *domain.DestinationUpdate) (*domain.Destination, error) {
	args := m.Called(ctx, id, u)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Destination), args.Error(1)
}

func (m *MockPlaces) DeleteDestination(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockPlaces) CreatePlace(ctx context.Context, req *domain.PlaceRequest) (*domain.Place, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Place), args.Error(1)
}

func (m *MockPlaces) UpdatePlace(ctx context.Context, id string, u *domain.PlaceUpdate) (*domain.Place, error) {
	args := m.Called(ctx, id, u)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Place), args.Error(1)
}

func (m *MockPlaces) DeletePlace(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type MockReviews struct {
	mock.Mock
}

func (m *MockReviews) Create(ctx context.Context, userID string, req *domain.ReviewRequest) (*domain.Review, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Review), args.Error(1)
}

func (m *MockReviews) ListForPlace(ctx context.Context, placeID string, sort domain.ReviewSort, page, limit int) (*domain.ReviewPage, error) {
	args := m.Called(ctx, placeID, sort, page, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReviewPage), args.Error(1)
}

func (m *MockReviews) ListForUser(ctx context.Context, userID string, page, limit int) (*domain.ReviewPage, error) {
	args := m.Called(ctx, userID, page, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReviewPage), args.Error(1)
}

func (m *MockReviews) Update(ctx context.Context, userID, id string, u *domain.ReviewUpdate) (*domain.Review, error) {
	args := m.Called(ctx, userID, id, u)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Review), args.Error(1)
}

func (m *MockReviews) Delete(ctx context.Context, userID, id string) error {
	return m.Called(ctx, userID, id).Error(0)
}

func (m *MockReviews) AdminDelete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockReviews) ToggleHelpful(ctx context.Context, userID, id string) (*domain.HelpfulResult, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.HelpfulResult), args.Error(1)
}

type MockComments struct {
	mock.Mock
}

func (m *MockComments) Create(ctx context.Context, userID string, req *domain.CommentRequest) (*domain.Comment, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Comment), args.Error(1)
}

func (m *MockComments) ListForPlace(ctx context.Context, placeID string, page, limit int) (*domain.CommentPage, error) {
	args := m.Called(ctx, placeID, page, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CommentPage), args.Error(1)
}

func (m *MockComments) ListForUser(ctx context.Context, userID string, page, limit int) (*domain.CommentPage, error) {
	args := m.Called(ctx, userID, page, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CommentPage), args.Error(1)
}

func (m *MockComments) Update(ctx context.Context, userID, id string, u *domain.CommentUpdate) (*domain.Comment, error) {
	args := m.Called(ctx, userID, id, u)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Comment), args.Error(1)
}

func (m *MockComments) Delete(ctx context.Context, userID, id string) error {
	return m.Called(ctx, userID, id).Error(0)
}

func (m *MockComments) AdminDelete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockComments) ToggleLike(ctx context.Context, userID, id string) (*domain.LikeResult, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LikeResult), args.Error(1)
}

type MockPinger struct {
	mock.Mock
}

func (m *MockPinger) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
