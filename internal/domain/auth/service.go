package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/unibazaar/unibazaar-api/internal/domain/user"
	"github.com/unibazaar/unibazaar-api/internal/pkg/jwt"
	"github.com/unibazaar/unibazaar-api/internal/pkg/password"
)

// Service handles authentication business logic
type Service struct {
	userRepo   user.Repository
	jwtService *jwt.Service
	tokens     TokenStore
}

// NewService creates auth service
func NewService(userRepo user.Repository, jwtService *jwt.Service, tokens TokenStore) *Service {
	return &Service{
		userRepo:   userRepo,
		jwtService: jwtService,
		tokens:     tokens,
	}
}

// Register creates a student account. Admin accounts are provisioned out of
// band, not through the public API.
func (s *Service) Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error) {
	req.Email = normalizeEmail(req.Email)

	existing, _ := s.userRepo.GetByEmail(ctx, req.Email)
	if existing != nil {
		return nil, ErrEmailAlreadyExists
	}

	hash, err := password.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	u := &user.User{
		ID:           uuid.New(),
		Email:        req.Email,
		PasswordHash: hash,
		Role:         user.RoleStudent,
		Campus:       strings.TrimSpace(req.Campus),
	}

	if err := s.userRepo.Create(ctx, u); err != nil {
		if errors.Is(err, user.ErrEmailAlreadyExists) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, err
	}

	return s.generateTokens(ctx, u)
}

// Login authenticates a user
func (s *Service) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	req.Email = normalizeEmail(req.Email)

	u, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil || u == nil {
		return nil, ErrInvalidCredentials
	}

	if !password.Verify(req.Password, u.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	if u.IsBanned {
		return nil, ErrUserBanned
	}

	return s.generateTokens(ctx, u)
}

// Refresh rotates a refresh token and issues a new token pair
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*AuthResponse, error) {
	if refreshToken == "" {
		return nil, ErrRefreshTokenRequired
	}

	if _, err := s.jwtService.ValidateRefreshToken(refreshToken); err != nil {
		return nil, ErrInvalidRefreshToken
	}

	refreshHash := jwt.HashRefreshToken(refreshToken)
	userID, err := s.tokens.Lookup(ctx, refreshHash)
	if err != nil {
		return nil, ErrInvalidRefreshToken
	}

	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil || u == nil {
		return nil, ErrUserNotFound
	}
	if u.IsBanned {
		return nil, ErrUserBanned
	}

	// Rotation: the presented token is spent whether or not issuing succeeds.
	_ = s.tokens.Delete(ctx, refreshHash)

	return s.generateTokens(ctx, u)
}

// Logout invalidates a refresh token
func (s *Service) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	return s.tokens.Delete(ctx, jwt.HashRefreshToken(refreshToken))
}

// GetCurrentUser returns the authenticated user's profile
func (s *Service) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*UserResponse, error) {
	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil || u == nil {
		return nil, ErrUserNotFound
	}

	return &UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Role:      string(u.Role),
		Campus:    u.Campus,
		CreatedAt: u.CreatedAt,
	}, nil
}

func (s *Service) generateTokens(ctx context.Context, u *user.User) (*AuthResponse, error) {
	accessToken, err := s.jwtService.GenerateAccessToken(u.ID, string(u.Role), u.Campus, u.IsBanned)
	if err != nil {
		return nil, err
	}

	refreshToken, _, expiresAt, err := s.jwtService.GenerateRefreshToken(u.ID)
	if err != nil {
		return nil, err
	}

	refreshHash := jwt.HashRefreshToken(refreshToken)
	if err := s.tokens.Save(ctx, refreshHash, u.ID, time.Until(expiresAt)); err != nil {
		return nil, err
	}

	return &AuthResponse{
		User: UserResponse{
			ID:        u.ID,
			Email:     u.Email,
			Role:      string(u.Role),
			Campus:    u.Campus,
			CreatedAt: u.CreatedAt,
		},
		Tokens: TokensResponse{
			AccessToken:  accessToken,
			RefreshToken: refreshToken,
			ExpiresIn:    int(s.jwtService.GetAccessTTL().Seconds()),
		},
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
