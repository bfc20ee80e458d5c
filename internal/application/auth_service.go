package application

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/staynest/service-rental/internal/domain"
	userDomain "github.com/staynest/service-rental/internal/domain/user"
	"github.com/staynest/service-rental/internal/platform/auth"
)

// RegisterRequest is the request DTO for account registration.
type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Address   string `json:"address"`
}

// LoginRequest is the request DTO for authentication.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest is the request DTO for token renewal.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// UserDTO is the API response representation of an account.
type UserDTO struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Address   string    `json:"address"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// AuthResponse bundles the account with its issued tokens.
type AuthResponse struct {
	User   UserDTO         `json:"user"`
	Tokens *auth.TokenPair `json:"tokens"`
}

// AuthService handles registration, login and token renewal.
type AuthService struct {
	users  userDomain.UserRepository
	tokens *auth.JWTManager
	logger *zap.Logger
}

// NewAuthService creates a new AuthService.
func NewAuthService(users userDomain.UserRepository, tokens *auth.JWTManager, logger *zap.Logger) *AuthService {
	return &AuthService{users: users, tokens: tokens, logger: logger}
}

// Register creates a new account and issues its first token pair.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u, err := userDomain.NewUser(req.Email, string(hash), req.FirstName, req.LastName, req.Address)
	if err != nil {
		return nil, err
	}

	if err := s.users.Save(ctx, u); err != nil {
		return nil, err
	}

	pair, err := s.tokens.Generate(u.ID(), u.Email(), string(u.Role()))
	if err != nil {
		return nil, err
	}

	s.logger.Info("user registered", zap.String("user_id", u.ID().String()))

	return &AuthResponse{User: toUserDTO(u), Tokens: pair}, nil
}

// Login verifies credentials and issues a token pair. The same error is
// returned for an unknown email and a wrong password.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	u, err := s.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.NewForbiddenError("invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash()), []byte(req.Password)); err != nil {
		return nil, domain.NewForbiddenError("invalid email or password")
	}

	pair, err := s.tokens.Generate(u.ID(), u.Email(), string(u.Role()))
	if err != nil {
		return nil, err
	}

	return &AuthResponse{User: toUserDTO(u), Tokens: pair}, nil
}

// Refresh exchanges a valid refresh token for a new token pair.
func (s *AuthService) Refresh(ctx context.Context, req RefreshRequest) (*auth.TokenPair, error) {
	pair, err := s.tokens.Refresh(req.RefreshToken)
	if err != nil {
		return nil, domain.NewForbiddenError("invalid refresh token")
	}
	return pair, nil
}

// GetMe returns the authenticated user's account.
func (s *AuthService) GetMe(ctx context.Context, userID uuid.UUID) (*UserDTO, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	dto := toUserDTO(u)
	return &dto, nil
}

func toUserDTO(u *userDomain.User) UserDTO {
	return UserDTO{
		ID:        u.ID(),
		Email:     u.Email(),
		FirstName: u.FirstName(),
		LastName:  u.LastName(),
		Address:   u.Address(),
		Role:      string(u.Role()),
		CreatedAt: u.CreatedAt(),
	}
}
