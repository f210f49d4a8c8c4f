package service

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"google.golang.org/api/idtoken"
	"google.golang.org/api/option"
)

// GoogleIdentity is what a verified Google ID token tells us about a user.
type GoogleIdentity struct {
	Subject       string
	Email         string
	EmailVerified bool
	Name          string
	Picture       string
}

// GoogleVerifier checks a Google ID token issued to the browser.
type GoogleVerifier interface {
	Verify(ctx context.Context, credential string) (*GoogleIdentity, error)
}

// IDTokenVerifier validates ID tokens against Google's published keys.
type IDTokenVerifier struct {
	clientID  string
	validator *idtoken.Validator
}

// NewIDTokenVerifier creates a verifier for tokens minted for clientID.
func NewIDTokenVerifier(ctx context.Context, clientID string) (*IDTokenVerifier, error) {
	v, err := idtoken.NewValidator(ctx, option.WithHTTPClient(&http.Client{Timeout: 10 * time.Second}))
	if err != nil {
		return nil, fmt.Errorf("failed to create id token validator: %w", err)
	}
	return &IDTokenVerifier{clientID: clientID, validator: v}, nil
}

// Verify validates the token signature, expiry and audience.
func (v *IDTokenVerifier) Verify(ctx context.Context, credential string) (*GoogleIdentity, error) {
	payload, err := v.validator.Validate(ctx, credential, v.clientID)
	if err != nil {
		return nil, fmt.Errorf("invalid google credential: %w", err)
	}

	id := &GoogleIdentity{Subject: payload.Subject}
	if s, ok := payload.Claims["email"].(string); ok {
		id.Email = s
	}
	if b, ok := payload.Claims["email_verified"].(bool); ok {
		id.EmailVerified = b
	}
	if s, ok := payload.Claims["name"].(string); ok {
		id.Name = s
	}
	if s, ok := payload.Claims["picture"].(string); ok {
		id.Picture = s
	}
	return id, nil
}
