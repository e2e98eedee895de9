package services

import (
	"context"

	"github.com/Lazycharm/Careerpilot-sub001/internal/auth"
	"github.com/Lazycharm/Careerpilot-sub001/internal/config"
	"github.com/Lazycharm/Careerpilot-sub001/internal/domain/user"
	"github.com/Lazycharm/Careerpilot-sub001/internal/pkg/errors"
	"github.com/Lazycharm/Careerpilot-sub001/internal/pkg/logger"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles registration, login and token refresh
type AuthService struct {
	repo   user.Repository
	cfg    config.AuthConfig
	logger *logger.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(repo user.Repository, cfg config.AuthConfig, log *logger.Logger) *AuthService {
	return &AuthService{
		repo:   repo,
		cfg:    cfg,
		logger: log,
	}
}

// Register creates a new account and returns the user with a token pair
func (s *AuthService) Register(ctx context.Context, email, password string, fullName *string) (*user.User, auth.TokenPair, error) {
	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return nil, auth.TokenPair{}, errors.Conflict("An account with this email already exists")
	} else if !errors.IsNotFound(err) {
		return nil, auth.TokenPair{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cfg.BCryptCost)
	if err != nil {
		return nil, auth.TokenPair{}, errors.Internal("Failed to hash password", err)
	}

	u := &user.User{
		Email:        email,
		FullName:     fullName,
		PasswordHash: string(hash),
		Role:         user.RoleUser,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		s.logger.ErrorWithErr(err, "Failed to create user")
		return nil, auth.TokenPair{}, err
	}

	tokens, err := auth.MintTokens(u.ID, u.Email, u.Role, s.cfg.JWTSecret, s.cfg.AccessTokenExpiry, s.cfg.RefreshTokenExpiry)
	if err != nil {
		return nil, auth.TokenPair{}, errors.Internal("Failed to mint tokens", err)
	}

	s.logger.WithFields(map[string]interface{}{
		"user_id": u.ID,
		"email":   u.Email,
	}).Info("User registered")

	return u, tokens, nil
}

// Login verifies credentials and returns the user with a token pair
func (s *AuthService) Login(ctx context.Context, email, password string) (*user.User, auth.TokenPair, error) {
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, auth.TokenPair{}, errors.Unauthorized("Invalid email or password")
		}
		return nil, auth.TokenPair{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, auth.TokenPair{}, errors.Unauthorized("Invalid email or password")
	}

	tokens, err := auth.MintTokens(u.ID, u.Email, u.Role, s.cfg.JWTSecret, s.cfg.AccessTokenExpiry, s.cfg.RefreshTokenExpiry)
	if err != nil {
		return nil, auth.TokenPair{}, errors.Internal("Failed to mint tokens", err)
	}

	return u, tokens, nil
}

// Refresh exchanges a refresh token for a new token pair
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (auth.TokenPair, error) {
	claims, err := auth.ParseClaims(refreshToken, s.cfg.JWTSecret)
	if err != nil {
		return auth.TokenPair{}, errors.Unauthorized("Invalid or expired refresh token")
	}

	u, err := s.repo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.IsNotFound(err) {
			return auth.TokenPair{}, errors.Unauthorized("Account no longer exists")
		}
		return auth.TokenPair{}, err
	}

	return auth.MintTokens(u.ID, u.Email, u.Role, s.cfg.JWTSecret, s.cfg.AccessTokenExpiry, s.cfg.RefreshTokenExpiry)
}

// GetUser retrieves the account for an authenticated user ID
func (s *AuthService) GetUser(ctx context.Context, userID int64) (*user.User, error) {
	return s.repo.GetByID(ctx, userID)
}
