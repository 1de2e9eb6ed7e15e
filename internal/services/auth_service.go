package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/klubbkatalog/backend/internal/auth"
	"github.com/klubbkatalog/backend/internal/models"
	"go.uber.org/zap"
)

// UsersRepository is the interface that wraps methods for users table data access.
type UsersRepository interface {
	// Create inserts a new admin user.
	Create(ctx context.Context, user *models.User) error
	// GetByUsername returns the user for the username, or models.ErrUserNotFound.
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	// GetByID returns the user for the id, or models.ErrUserNotFound.
	GetByID(ctx context.Context, id int) (*models.User, error)
}

type authService struct {
	userRepo UsersRepository
	logger   *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo UsersRepository, logger *zap.Logger) *authService {
	return &authService{
		userRepo: userRepo,
		logger:   logger,
	}
}

// Login checks the credentials and returns the matching user. An unknown
// username and a wrong password both come back as
// models.ErrInvalidCredentials so the client cannot tell them apart.
func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (*models.User, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" {
		return nil, models.ErrInvalidCredentials
	}

	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if err == models.ErrUserNotFound {
			return nil, models.ErrInvalidCredentials
		}
		s.logger.Error("failed to look up user for login", zap.Error(err))
		return nil, fmt.Errorf("failed to log in: %w", err)
	}

	ok, err := auth.VerifyPassword(req.Password, user.PasswordHash)
	if err != nil {
		s.logger.Error("failed to verify password", zap.Error(err), zap.Int("user_id", user.ID))
		return nil, fmt.Errorf("failed to log in: %w", err)
	}
	if !ok {
		return nil, models.ErrInvalidCredentials
	}

	return user, nil
}

// GetUser returns the user for an authenticated session's user id.
func (s *authService) GetUser(ctx context.Context, id int) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if err == models.ErrUserNotFound {
			return nil, err
		}
		s.logger.Error("failed to get user", zap.Error(err), zap.Int("id", id))
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// CreateAdmin provisions an admin account. Used by the createadmin
// command only; there is no registration endpoint.
func (s *authService) CreateAdmin(ctx context.Context, username, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, models.NewValidationError("username", "username is required")
	}
	if password == "" {
		return nil, models.NewValidationError("password", "password is required")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		s.logger.Error("failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("failed to create admin: %w", err)
	}

	user := &models.User{
		Username:     username,
		PasswordHash: hash,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		s.logger.Error("failed to create admin", zap.Error(err))
		return nil, fmt.Errorf("failed to create admin: %w", err)
	}

	s.logger.Info("admin user created", zap.Int("id", user.ID), zap.String("username", user.Username))
	return user, nil
}
