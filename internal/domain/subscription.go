package domain

import "time"

// PlanType identifies a subscription plan in the catalogue.
type PlanType string

const (
	PlanMonthly PlanType = "monthly"
	PlanYearly  PlanType = "yearly"
)

// Valid reports whether p is a plan users can subscribe to.
func (p PlanType) Valid() bool {
	return p == PlanMonthly || p == PlanYearly
}

// ExpiryFrom returns when a plan bought at start lapses. Calendar arithmetic:
// a monthly plan bought on the 15th expires on the 15th of the next month.
func (p PlanType) ExpiryFrom(start time.Time) time.Time {
	if p == PlanYearly {
		return start.AddDate(1, 0, 0)
	}
	return start.AddDate(0, 1, 0)
}

// SubscriptionState is the subscription part of a user record.
type SubscriptionState struct {
	IsSubscribed bool       `json:"isSubscribed"`
	PlanType     *PlanType  `json:"planType"`
	ExpiryDate   *time.Time `json:"expiryDate"`
}

// NewSubscriptionState builds an active state for plan starting at now.
func NewSubscriptionState(plan PlanType, now time.Time) SubscriptionState {
	expiry := plan.ExpiryFrom(now)
	return SubscriptionState{
		IsSubscribed: true,
		PlanType:     &plan,
		ExpiryDate:   &expiry,
	}
}

// IsExpired reports whether the state carries an expiry that lies before now.
// Every reader of subscription state must go through this predicate.
func (s SubscriptionState) IsExpired(now time.Time) bool {
	return s.ExpiryDate != nil && s.ExpiryDate.Before(now)
}

// Active reports whether the holder is entitled to subscriber content at now.
func (s SubscriptionState) Active(now time.Time) bool {
	return s.IsSubscribed && !s.IsExpired(now)
}

// Tier returns the plan name used for discount lookups, or "" when unset.
func (s SubscriptionState) Tier() string {
	if s.PlanType == nil {
		return ""
	}
	return string(*s.PlanType)
}

// DaysRemaining rounds the time left up to whole days; 0 without an expiry.
func (s SubscriptionState) DaysRemaining(now time.Time) int {
	if s.ExpiryDate == nil {
		return 0
	}
	left := s.ExpiryDate.Sub(now)
	if left <= 0 {
		return 0
	}
	const day = 24 * time.Hour
	days := int(left / day)
	if left%day != 0 {
		days++
	}
	return days
}

// SubscriptionStatus is the response of GET /api/subscription/status.
type SubscriptionStatus struct {
	IsSubscribed  bool       `json:"isSubscribed"`
	PlanType      *PlanType  `json:"planType"`
	ExpiryDate    *time.Time `json:"expiryDate"`
	DaysRemaining int        `json:"daysRemaining"`
}

// StatusAt summarises the state as seen at now.
func (s SubscriptionState) StatusAt(now time.Time) SubscriptionStatus {
	return SubscriptionStatus{
		IsSubscribed:  s.Active(now),
		PlanType:      s.PlanType,
		ExpiryDate:    s.ExpiryDate,
		DaysRemaining: s.DaysRemaining(now),
	}
}

// SubscribeRequest is the input for POST /api/subscription/subscribe.
type SubscribeRequest struct {
	PlanType string `json:"planType" validate:"required,oneof=monthly yearly"`
}

// SubscriptionResponse wraps a subscription state with a user-facing message.
type SubscriptionResponse struct {
	Message      string            `json:"message"`
	Subscription SubscriptionState `json:"subscription"`
}
