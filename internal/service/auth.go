package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/yatra/backend/internal/domain"
)

const tokenTTL = 7 * 24 * time.Hour

// AuthService handles authentication, JWT, and user management.
type AuthService struct {
	jwtSecret     string
	adminEmail    string
	adminPassword string
	users         UserStore
	google        GoogleVerifier
	validate      *validator.Validate
	now           func() time.Time
}

// NewAuthService creates a new AuthService. google may be nil, in which case
// Google sign-in is rejected.
func NewAuthService(jwtSecret, adminEmail, adminPassword string, users UserStore, google GoogleVerifier) *AuthService {
	return &AuthService{
		jwtSecret:     jwtSecret,
		adminEmail:    adminEmail,
		adminPassword: adminPassword,
		users:         users,
		google:        google,
		validate:      newValidator(),
		now:           time.Now,
	}
}

// SeedAdmin creates the default admin user if it doesn't exist.
func (s *AuthService) SeedAdmin(ctx context.Context) error {
	if s.adminEmail == "" || s.adminPassword == "" {
		log.Println("⚠️  ADMIN_EMAIL/ADMIN_PASSWORD not set, skipping admin seed")
		return nil
	}

	exists, err := s.users.Exists(ctx, s.adminEmail)
	if err != nil {
		return fmt.Errorf("failed to check admin existence: %w", err)
	}
	if exists {
		log.Printf("✅ Admin user already exists (%s)", s.adminEmail)
		return nil
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(s.adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	now := s.now()
	admin := &domain.User{
		ID:           domain.NewUserID(),
		Name:         "Administrator",
		Email:        s.adminEmail,
		Password:     string(hashedPassword),
		AuthProvider: domain.AuthProviderLocal,
		Role:         domain.RoleAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.Create(ctx, admin); err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	log.Printf("✅ Admin user created (%s)", s.adminEmail)
	return nil
}

// Register creates a local account and logs it in.
func (s *AuthService) Register(ctx context.Context, req *domain.RegisterRequest) (*domain.LoginResponse, error) {
	req.Email = normalizeEmail(req.Email)
	if err := s.validate.Struct(req); err != nil {
		return nil, validationError(err)
	}

	user, err := s.createLocalUser(ctx, req.Name, req.Email, req.Phone, req.Password, domain.RoleUser)
	if err != nil {
		return nil, err
	}
	return s.issueToken(user)
}

// Login validates credentials against the database and returns a JWT token.
func (s *AuthService) Login(ctx context.Context, req *domain.LoginRequest) (*domain.LoginResponse, error) {
	req.Email = normalizeEmail(req.Email)
	if err := s.validate.Struct(req); err != nil {
		return nil, validationError(err)
	}

	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, domain.ErrInternal("failed to find user", err)
	}
	if user == nil || user.Password == "" {
		return nil, domain.ErrUnauthorized("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, domain.ErrUnauthorized("invalid credentials")
	}

	return s.issueToken(user)
}

// GoogleLogin signs in with a Google ID token. Unknown identities get a new
// account; an existing local account with the same verified email is linked.
func (s *AuthService) GoogleLogin(ctx context.Context, req *domain.GoogleLoginRequest) (*domain.LoginResponse, error) {
	if s.google == nil {
		return nil, domain.ErrBadRequest("google sign-in is not configured")
	}
	if err := s.validate.Struct(req); err != nil {
		return nil, validationError(err)
	}

	identity, err := s.google.Verify(ctx, req.Credential)
	if err != nil {
		return nil, domain.ErrUnauthorized("invalid google credential")
	}
	if identity.Email == "" || !identity.EmailVerified {
		return nil, domain.ErrUnauthorized("google account email is not verified")
	}

	user, err := s.users.FindByGoogleID(ctx, identity.Subject)
	if err != nil {
		return nil, domain.ErrInternal("failed to find user", err)
	}
	if user != nil {
		return s.issueToken(user)
	}

	email := normalizeEmail(identity.Email)
	user, err = s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, domain.ErrInternal("failed to find user", err)
	}
	if user != nil {
		if err := s.users.LinkGoogle(ctx, user.ID, identity.Subject, identity.Picture); err != nil {
			return nil, domain.ErrInternal("failed to link google account", err)
		}
		log.Printf("🔗 Linked Google account to user %s", user.ID)
		return s.issueToken(user)
	}

	name := identity.Name
	if name == "" {
		name = strings.SplitN(email, "@", 2)[0]
	}
	now := s.now()
	googleID := identity.Subject
	user = &domain.User{
		ID:           domain.NewUserID(),
		Name:         name,
		Email:        email,
		AuthProvider: domain.AuthProviderGoogle,
		GoogleID:     &googleID,
		Role:         domain.RoleUser,
		ProfileImage: identity.Picture,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, domain.ErrInternal("failed to create user", err)
	}
	return s.issueToken(user)
}

// VerifyToken validates a JWT token and returns the claims.
func (s *AuthService) VerifyToken(tokenStr string) (*domain.JWTClaims, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		return nil, domain.ErrUnauthorized("invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, domain.ErrUnauthorized("invalid token claims")
	}

	return &domain.JWTClaims{
		Sub:   getClaimString(claims, "sub"),
		Email: getClaimString(claims, "email"),
		Role:  getClaimString(claims, "role"),
	}, nil
}

func getClaimString(claims jwt.MapClaims, key string) string {
	if v, ok := claims[key].(string); ok {
		return v
	}
	return ""
}

// ListUsers returns all users (admin only).
func (s *AuthService) ListUsers(ctx context.Context) ([]*domain.UserResponse, error) {
	users, err := s.users.ListAll(ctx)
	if err != nil {
		return nil, domain.ErrInternal("failed to list users", err)
	}

	now := s.now()
	responses := make([]*domain.UserResponse, len(users))
	for i, u := range users {
		responses[i] = u.ToResponse(now)
	}
	return responses, nil
}

// CreateUser creates a new user with bcrypt password (admin only).
func (s *AuthService) CreateUser(ctx context.Context, req *domain.CreateUserRequest) (*domain.UserResponse, error) {
	req.Email = normalizeEmail(req.Email)
	if err := s.validate.Struct(req); err != nil {
		return nil, validationError(err)
	}

	role := req.Role
	if role == "" {
		role = domain.RoleUser
	}

	user, err := s.createLocalUser(ctx, req.Name, req.Email, "", req.Password, role)
	if err != nil {
		return nil, err
	}
	return user.ToResponse(s.now()), nil
}

// DeleteUser removes a user by ID (admin only).
func (s *AuthService) DeleteUser(ctx context.Context, id string) error {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return domain.ErrInternal("failed to find user", err)
	}
	if user == nil {
		return domain.ErrNotFound("user not found")
	}
	if user.Role == domain.RoleAdmin {
		return domain.ErrBadRequest("cannot delete admin user")
	}

	if err := s.users.Delete(ctx, id); err != nil {
		return domain.ErrInternal("failed to delete user", err)
	}
	return nil
}

// GetUserByID returns a user profile by ID (for /api/auth/me).
func (s *AuthService) GetUserByID(ctx context.Context, id string) (*domain.UserResponse, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, domain.ErrInternal("failed to find user", err)
	}
	if user == nil {
		return nil, domain.ErrNotFound("user not found")
	}
	return user.ToResponse(s.now()), nil
}

// UpdateProfile applies the caller's own name, phone or picture change.
func (s *AuthService) UpdateProfile(ctx context.Context, id string, req *domain.UpdateProfileRequest) (*domain.UserResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, validationError(err)
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, domain.ErrInternal("failed to find user", err)
	}
	if user == nil {
		return nil, domain.ErrNotFound("user not found")
	}

	req.Apply(user)
	user.UpdatedAt = s.now()
	if err := s.users.UpdateProfile(ctx, user); err != nil {
		return nil, persistError("failed to update profile", err)
	}

	log.Printf("👤 Profile updated: %s", user.ID)
	return user.ToResponse(s.now()), nil
}

func (s *AuthService) createLocalUser(ctx context.Context, name, email, phone, password, role string) (*domain.User, error) {
	exists, err := s.users.Exists(ctx, email)
	if err != nil {
		return nil, domain.ErrInternal("failed to check user", err)
	}
	if exists {
		return nil, domain.ErrBadRequest("email already registered")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, domain.ErrInternal("failed to hash password", err)
	}

	now := s.now()
	user := &domain.User{
		ID:           domain.NewUserID(),
		Name:         strings.TrimSpace(name),
		Email:        email,
		Phone:        phone,
		Password:     string(hashedPassword),
		AuthProvider: domain.AuthProviderLocal,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, domain.ErrInternal("failed to create user", err)
	}
	return user, nil
}

func (s *AuthService) issueToken(user *domain.User) (*domain.LoginResponse, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"role":  user.Role,
		"exp":   now.Add(tokenTTL).Unix(),
		"iat":   now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return nil, domain.ErrInternal("failed to sign token", err)
	}

	return &domain.LoginResponse{
		Token: signed,
		User:  user.ToResponse(now),
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
