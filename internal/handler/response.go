package handler

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/yatra/backend/internal/contextkeys"
	"github.com/yatra/backend/internal/domain"
)

// errorBody is the wire shape of every error response.
type errorBody struct {
	Error                string            `json:"error"`
	SubscriptionRequired bool              `json:"subscriptionRequired,omitempty"`
	Errors               map[string]string `json:"errors,omitempty"`
}

// JSON writes a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Printf("failed to encode JSON response: %v", err)
		}
	}
}

// Error writes an error JSON response, using AppError status codes when available.
// Internal causes are logged, never sent.
func Error(w http.ResponseWriter, err error) {
	if appErr, ok := domain.AsAppError(err); ok {
		if appErr.Code >= http.StatusInternalServerError {
			log.Printf("internal error: %v", appErr)
			JSON(w, appErr.Code, errorBody{Error: "internal server error"})
			return
		}
		JSON(w, appErr.Code, errorBody{
			Error:                appErr.Message,
			SubscriptionRequired: appErr.SubscriptionRequired,
			Errors:               appErr.Fields,
		})
		return
	}
	log.Printf("unhandled error: %v", err)
	JSON(w, http.StatusInternalServerError, errorBody{Error: "internal server error"})
}

// DecodeJSON decodes a JSON request body into the given struct.
func DecodeJSON(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return domain.ErrBadRequest("invalid JSON body")
	}
	return nil
}

// caller returns the authenticated user ID and role set by middleware.Auth.
func caller(r *http.Request) (id, role string, err error) {
	id, _ = r.Context().Value(contextkeys.UserID).(string)
	role, _ = r.Context().Value(contextkeys.UserRole).(string)
	if id == "" {
		return "", "", domain.ErrUnauthorized("authentication required")
	}
	return id, role, nil
}

// queryInt reads a positive integer query parameter, falling back to def.
func queryInt(r *http.Request, key string, def int) int {
	v, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil || v < 1 {
		return def
	}
	return v
}
