package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"snack_factory_backend/internal/models"
	"snack_factory_backend/internal/repositories"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 6

// --- Data Transfer Objects (DTOs) ---

// RegisterRequest DTO
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
}

// LoginRequest DTO
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// EnsureAdminRequest describes the account the admin tool creates or promotes.
type EnsureAdminRequest struct {
	Name     string
	Email    string
	Phone    string
	Password string
}

// AuthResponse DTO
type AuthResponse struct {
	Token string            `json:"token"`
	User  models.PublicUser `json:"user"`
}

// TokenIssuer signs bearer tokens for a user id.
type TokenIssuer interface {
	Generate(userID string) (string, error)
}

// --- AuthService Interface ---
type AuthService interface {
	Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error)
	Login(ctx context.Context, req LoginRequest) (*AuthResponse, error)
	GetUserProfile(ctx context.Context, userID string) (*models.User, error)
	IsAdmin(ctx context.Context, userID string) (bool, error)
	// EnsureAdmin creates the account as an admin, or promotes it when the email is taken.
	EnsureAdmin(ctx context.Context, req EnsureAdminRequest) (user *models.User, created bool, err error)
}

// --- authService Implementation ---
type authService struct {
	authRepo repositories.AuthRepository
	db       *sql.DB
	tokens   TokenIssuer
}

// NewAuthService creates a new instance of AuthService.
// tokens may be nil for callers that never issue tokens, such as the admin tool.
func NewAuthService(authRepo repositories.AuthRepository, db *sql.DB, tokens TokenIssuer) AuthService {
	return &authService{authRepo: authRepo, db: db, tokens: tokens}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *authService) issue(user *models.User) (*AuthResponse, error) {
	if s.tokens == nil {
		return nil, errors.New("token issuer not configured")
	}
	token, err := s.tokens.Generate(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}
	return &AuthResponse{Token: token, User: user.Public()}, nil
}

func (s *authService) newUser(name, email, phone, password string, isAdmin bool) (*models.User, error) {
	name, phone = strings.TrimSpace(name), strings.TrimSpace(phone)
	if name == "" || email == "" || phone == "" || password == "" {
		return nil, validationError("name, email, phone and password are required")
	}
	if len(password) < minPasswordLength {
		return nil, validationError("password must be at least %d characters", minPasswordLength)
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	return &models.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		Phone:        phone,
		PasswordHash: string(hashed),
		IsAdmin:      isAdmin,
	}, nil
}

func (s *authService) createUser(ctx context.Context, user *models.User) error {
	if err := s.authRepo.CreateUser(ctx, s.db, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return ErrEmailExists
		}
		return fmt.Errorf("failed to register user: %w", err)
	}
	return nil
}

// Register creates a non-admin account and signs the caller in.
func (s *authService) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	email := normalizeEmail(req.Email)
	if email != "" {
		if _, err := s.authRepo.FindUserByEmail(ctx, s.db, email); err == nil {
			return nil, ErrEmailExists
		} else if !errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("failed to check email: %w", err)
		}
	}

	user, err := s.newUser(req.Name, email, req.Phone, req.Password, false)
	if err != nil {
		return nil, err
	}
	if err := s.createUser(ctx, user); err != nil {
		return nil, err
	}
	return s.issue(user)
}

// Login checks the password. Unknown emails and wrong passwords are indistinguishable.
func (s *authService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	user, err := s.authRepo.FindUserByEmail(ctx, s.db, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login attempt failed: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return s.issue(user)
}

// GetUserProfile retrieves a user's profile by their ID.
func (s *authService) GetUserProfile(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.authRepo.FindUserByID(ctx, s.db, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to retrieve user profile: %w", err)
	}
	user.PasswordHash = ""
	return user, nil
}

func (s *authService) IsAdmin(ctx context.Context, userID string) (bool, error) {
	user, err := s.GetUserProfile(ctx, userID)
	if err != nil {
		return false, err
	}
	return user.IsAdmin, nil
}

func (s *authService) EnsureAdmin(ctx context.Context, req EnsureAdminRequest) (*models.User, bool, error) {
	email := normalizeEmail(req.Email)
	if email == "" {
		return nil, false, validationError("email is required")
	}

	existing, err := s.authRepo.FindUserByEmail(ctx, s.db, email)
	switch {
	case err == nil:
		if !existing.IsAdmin {
			if err := s.authRepo.SetAdmin(ctx, s.db, existing.ID, true); err != nil {
				return nil, false, fmt.Errorf("failed to promote %s: %w", email, err)
			}
			existing.IsAdmin = true
		}
		existing.PasswordHash = ""
		return existing, false, nil
	case !errors.Is(err, repositories.ErrNotFound):
		return nil, false, fmt.Errorf("failed to look up %s: %w", email, err)
	}

	user, err := s.newUser(req.Name, email, req.Phone, req.Password, true)
	if err != nil {
		return nil, false, err
	}
	if err := s.createUser(ctx, user); err != nil {
		return nil, false, err
	}
	user.PasswordHash = ""
	return user, true, nil
}
