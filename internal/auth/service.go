package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/metsukeai/metsuke-api/internal/config"
	"github.com/metsukeai/metsuke-api/internal/models"
	"github.com/metsukeai/metsuke-api/internal/repository"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

// TokenPair is what a successful login or refresh hands back.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Service implements the backend-session identity model: bcrypt password
// hashes, short-lived JWT access tokens, and a rotating refresh token
// persisted on the user row.
type Service struct {
	users repository.UserRepository
	cfg   *config.Config
}

func NewService(users repository.UserRepository, cfg *config.Config) *Service {
	return &Service{users: users, cfg: cfg}
}

// Register creates the account and its implicit profile, then issues tokens.
func (s *Service) Register(ctx context.Context, email, password, fullName string) (*models.User, TokenPair, error) {
	if existing, err := s.users.GetByEmail(ctx, email); err == nil && existing != nil {
		return nil, TokenPair{}, fmt.Errorf("email %s is already registered", email)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, TokenPair{}, fmt.Errorf("failed to hash password: %w", err)
	}

	refreshToken, refreshExpiry := s.newRefreshToken()

	user := &models.User{
		Email:              email,
		PasswordHash:       string(hash),
		FullName:           fullName,
		SubscriptionTier:   models.TierFree,
		RefreshToken:       refreshToken,
		RefreshTokenExpiry: refreshExpiry,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, TokenPair{}, err
	}

	accessToken, err := s.newAccessToken(user)
	if err != nil {
		return nil, TokenPair{}, err
	}

	return user, TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// Login verifies the password and rotates the refresh token.
func (s *Service) Login(ctx context.Context, email, password string) (*models.User, TokenPair, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, TokenPair{}, ErrInvalidCredentials
		}
		return nil, TokenPair{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, TokenPair{}, ErrInvalidCredentials
	}

	return s.issueTokens(ctx, user)
}

// Refresh exchanges a valid refresh token for a new token pair.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*models.User, TokenPair, error) {
	user, err := s.users.GetByRefreshToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, TokenPair{}, ErrInvalidToken
		}
		return nil, TokenPair{}, err
	}

	return s.issueTokens(ctx, user)
}

// ValidateAccessToken parses the JWT and returns the subject user id.
func (s *Service) ValidateAccessToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidToken
	}

	userID, ok := claims["sub"].(string)
	if !ok || userID == "" {
		return "", ErrInvalidToken
	}

	return userID, nil
}

func (s *Service) issueTokens(ctx context.Context, user *models.User) (*models.User, TokenPair, error) {
	accessToken, err := s.newAccessToken(user)
	if err != nil {
		return nil, TokenPair{}, err
	}

	refreshToken, refreshExpiry := s.newRefreshToken()
	if err := s.users.UpdateRefreshToken(ctx, user.ID, refreshToken, refreshExpiry); err != nil {
		return nil, TokenPair{}, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return user, TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

func (s *Service) newAccessToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"tier":  user.SubscriptionTier,
		"exp":   time.Now().Add(s.cfg.AccessTokenDuration).Unix(),
		"iat":   time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

func (s *Service) newRefreshToken() (string, time.Time) {
	return uuid.New().String(), time.Now().Add(s.cfg.RefreshTokenDuration)
}
