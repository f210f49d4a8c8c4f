package contextkeys

type contextKey string

// Values stored by middleware.Auth for the authenticated caller.
const (
	UserID    contextKey = "userID"
	UserEmail contextKey = "userEmail"
	UserRole  contextKey = "userRole"
	// Subscription holds the domain.SubscriptionStatus resolved by the access gate.
	Subscription contextKey = "subscription"
)
