package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Auth providers a user record can originate from.
const (
	AuthProviderLocal  = "local"
	AuthProviderGoogle = "google"
)

// Roles.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents a registered traveller or administrator.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone,omitempty"`
	Password     string    `json:"-"` // bcrypt hash, empty for Google accounts
	AuthProvider string    `json:"authProvider"`
	GoogleID     *string   `json:"-"`
	Role         string    `json:"role"`
	ProfileImage string    `json:"profileImage,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`

	Subscription SubscriptionState `json:"subscription"`
}

// RegisterRequest is the validated input for self-service sign-up.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Phone    string `json:"phone" validate:"omitempty,min=7,max=20"`
}

// LoginRequest is the validated input for logging in.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// GoogleLoginRequest carries the ID token issued to the browser by Google.
type GoogleLoginRequest struct {
	Credential string `json:"credential" validate:"required"`
}

// LoginResponse is the API response after successful authentication.
type LoginResponse struct {
	Token string        `json:"token"`
	User  *UserResponse `json:"user"`
}

// JWTClaims represents the JWT payload.
type JWTClaims struct {
	Sub   string `json:"sub"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// UpdateProfileRequest is the input for PUT /api/auth/profile. Omitted
// fields are left unchanged.
type UpdateProfileRequest struct {
	Name         *string `json:"name" validate:"omitempty,min=2,max=50"`
	Phone        *string `json:"phone" validate:"omitempty,min=7,max=20"`
	ProfileImage *string `json:"profileImage" validate:"omitempty,url"`
}

// Apply copies the supplied fields onto u.
func (r UpdateProfileRequest) Apply(u *User) {
	if r.Name != nil {
		u.Name = strings.TrimSpace(*r.Name)
	}
	if r.Phone != nil {
		u.Phone = *r.Phone
	}
	if r.ProfileImage != nil {
		u.ProfileImage = *r.ProfileImage
	}
}

// CreateUserRequest is the validated input for an admin creating a user.
type CreateUserRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"omitempty,oneof=user admin"`
}

// UserResponse is the safe API response for a user (no password).
type UserResponse struct {
	ID           string             `json:"id"`
	Name         string             `json:"name"`
	Email        string             `json:"email"`
	Phone        string             `json:"phone,omitempty"`
	Role         string             `json:"role"`
	AuthProvider string             `json:"authProvider"`
	ProfileImage string             `json:"profileImage,omitempty"`
	Subscription SubscriptionStatus `json:"subscription"`
	CreatedAt    time.Time          `json:"createdAt"`
}

// ToResponse renders u for API output with its subscription evaluated at now.
func (u *User) ToResponse(now time.Time) *UserResponse {
	return &UserResponse{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		Phone:        u.Phone,
		Role:         u.Role,
		AuthProvider: u.AuthProvider,
		ProfileImage: u.ProfileImage,
		Subscription: u.Subscription.StatusAt(now),
		CreatedAt:    u.CreatedAt,
	}
}

// NewUserID generates a new UUID for a user.
func NewUserID() string {
	return uuid.New().String()
}
