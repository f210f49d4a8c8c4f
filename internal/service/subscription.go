package service

import (
	"context"
	"log"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/yatra/backend/internal/domain"
)

// SubscriptionService owns the subscription fields of user records. Every
// read goes through resolve so expiry is applied the same way everywhere.
type SubscriptionService struct {
	users    UserStore
	plans    domain.PlanCatalogue
	validate *validator.Validate
	now      func() time.Time
}

// NewSubscriptionService creates a new SubscriptionService.
func NewSubscriptionService(users UserStore, plans domain.PlanCatalogue) *SubscriptionService {
	return &SubscriptionService{
		users:    users,
		plans:    plans,
		validate: newValidator(),
		now:      time.Now,
	}
}

// Plans returns the subscription catalogue.
func (s *SubscriptionService) Plans() []domain.Plan {
	return s.plans.All()
}

// Subscribe starts (or restarts) a plan for the user from now.
func (s *SubscriptionService) Subscribe(ctx context.Context, userID string, req *domain.SubscribeRequest) (*domain.SubscriptionResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, validationError(err)
	}
	plan := domain.PlanType(req.PlanType)
	if _, ok := s.plans.Get(plan); !ok {
		return nil, domain.ErrValidation("invalid plan type")
	}

	user, err := s.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	state := domain.NewSubscriptionState(plan, s.now())
	if err := s.users.UpdateSubscription(ctx, user.ID, state); err != nil {
		return nil, persistError("failed to activate subscription", err)
	}

	log.Printf("💳 Subscription activated: user=%s plan=%s expires=%s", user.ID, plan, state.ExpiryDate.Format(time.RFC3339))
	return &domain.SubscriptionResponse{
		Message:      "Subscription activated successfully",
		Subscription: state,
	}, nil
}

// Status reports the user's subscription, clearing it first if it lapsed.
func (s *SubscriptionService) Status(ctx context.Context, userID string) (*domain.SubscriptionStatus, error) {
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	state, err := s.resolve(ctx, user)
	if err != nil {
		return nil, err
	}
	status := state.StatusAt(s.now())
	return &status, nil
}

// Cancel clears the subscription immediately. There is no grace period and
// no refund.
func (s *SubscriptionService) Cancel(ctx context.Context, userID string) (*domain.SubscriptionResponse, error) {
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	state, err := s.resolve(ctx, user)
	if err != nil {
		return nil, err
	}
	if !state.Active(s.now()) {
		return nil, domain.ErrValidation("no active subscription found")
	}

	if err := s.users.UpdateSubscription(ctx, user.ID, domain.SubscriptionState{}); err != nil {
		return nil, persistError("failed to cancel subscription", err)
	}

	log.Printf("💳 Subscription cancelled: user=%s", user.ID)
	return &domain.SubscriptionResponse{
		Message:      "Subscription cancelled successfully",
		Subscription: domain.SubscriptionState{},
	}, nil
}

// Current returns the user's subscription state with expiry applied.
func (s *SubscriptionService) Current(ctx context.Context, userID string) (domain.SubscriptionState, error) {
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return domain.SubscriptionState{}, err
	}
	return s.resolve(ctx, user)
}

// CheckAccess returns the caller's status when they may see subscriber-only
// content and ErrSubscriptionRequired otherwise.
func (s *SubscriptionService) CheckAccess(ctx context.Context, userID string) (domain.SubscriptionStatus, error) {
	state, err := s.Current(ctx, userID)
	if err != nil {
		return domain.SubscriptionStatus{}, err
	}
	now := s.now()
	if !state.Active(now) {
		return domain.SubscriptionStatus{}, domain.ErrSubscriptionRequired()
	}
	return state.StatusAt(now), nil
}

// resolve clears and persists a lapsed subscription. Repeated calls after
// expiry are no-ops because the cleared state has no expiry.
func (s *SubscriptionService) resolve(ctx context.Context, user *domain.User) (domain.SubscriptionState, error) {
	if !user.Subscription.IsExpired(s.now()) {
		return user.Subscription, nil
	}

	cleared := domain.SubscriptionState{}
	if err := s.users.UpdateSubscription(ctx, user.ID, cleared); err != nil {
		return domain.SubscriptionState{}, persistError("failed to expire subscription", err)
	}
	log.Printf("⏰ Subscription expired: user=%s", user.ID)
	user.Subscription = cleared
	return cleared, nil
}

func (s *SubscriptionService) findUser(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, domain.ErrInternal("failed to find user", err)
	}
	if user == nil {
		return nil, domain.ErrNotFound("user not found")
	}
	return user, nil
}

// persistError keeps AppErrors raised by a store (e.g. not found) and wraps
// anything else as an internal error.
func persistError(msg string, err error) error {
	if appErr, ok := domain.AsAppError(err); ok {
		return appErr
	}
	return domain.ErrInternal(msg, err)
}
