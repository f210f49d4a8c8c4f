package middleware

import (
	"context"
	"net/http"

	"github.com/yatra/backend/internal/contextkeys"
	"github.com/yatra/backend/internal/domain"
	"github.com/yatra/backend/internal/handler"
)

// AccessChecker decides whether a user may see subscriber-only content.
type AccessChecker interface {
	CheckAccess(ctx context.Context, userID string) (domain.SubscriptionStatus, error)
}

// RequireSubscription gates subscriber-only routes. It re-reads the
// subscription on every request, so a plan that lapsed since login is
// refused immediately. Must be used AFTER Auth.
func RequireSubscription(checker AccessChecker, metrics *Metrics) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, _ := r.Context().Value(contextkeys.UserID).(string)
			if userID == "" {
				handler.Error(w, domain.ErrUnauthorized("authentication required"))
				return
			}

			status, err := checker.CheckAccess(r.Context(), userID)
			if err != nil {
				if appErr, ok := domain.AsAppError(err); ok && appErr.SubscriptionRequired {
					metrics.gateDenied()
				}
				handler.Error(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), contextkeys.Subscription, status)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
