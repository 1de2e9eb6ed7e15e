package services

import (
	"context"
	"fmt"

	"github.com/klubbkatalog/backend/internal/models"
	"github.com/klubbkatalog/backend/internal/validation"
	"go.uber.org/zap"
)

// ClubsRepository is the interface that wraps methods for clubs table data access.
type ClubsRepository interface {
	// Insert stores a new club submission. Implementations must leave the
	// validated flag at its pending default regardless of the struct value.
	Insert(ctx context.Context, club *models.Club) error
	// ListValidated returns all published clubs, newest first.
	ListValidated(ctx context.Context) ([]models.Club, error)
	// ListPending returns all unvalidated clubs, newest first.
	ListPending(ctx context.Context) ([]models.Club, error)
	// Municipalities returns the distinct municipalities of published clubs.
	Municipalities(ctx context.Context) ([]string, error)
	// Validate flips one pending club to validated and returns the updated
	// row, or models.ErrClubNotFound if no pending club matched the id.
	Validate(ctx context.Context, id int) (*models.Club, error)
	// DeletePending deletes one pending club (reviews cascade), or returns
	// models.ErrClubNotFound if no pending club matched the id.
	DeletePending(ctx context.Context, id int) error
}

type clubsService struct {
	repo   ClubsRepository
	logger *zap.Logger
}

// NewClubsService creates a new clubs service
func NewClubsService(repo ClubsRepository, logger *zap.Logger) *clubsService {
	return &clubsService{
		repo:   repo,
		logger: logger,
	}
}

// Submit validates a club submission and stores it as pending. Whatever
// the caller claims, a new club is never born validated.
func (s *clubsService) Submit(ctx context.Context, req *models.ClubCreateRequest) (*models.Club, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	club := &models.Club{
		Name:         req.Name,
		Municipality: req.Municipality,
		Address:      req.Address,
		Phone:        req.Phone,
		Email:        req.Email,
		OrgNumber:    req.OrgNumber,
		Description:  req.Description,
		Validated:    false,
	}

	if err := s.repo.Insert(ctx, club); err != nil {
		s.logger.Error("failed to submit club", zap.Error(err))
		return nil, fmt.Errorf("failed to submit club: %w", err)
	}

	s.logger.Info("club submitted", zap.Int("id", club.ID), zap.String("name", club.Name))
	return club, nil
}

// ListPublic returns the published clubs for the public directory.
func (s *clubsService) ListPublic(ctx context.Context) ([]models.Club, error) {
	clubs, err := s.repo.ListValidated(ctx)
	if err != nil {
		s.logger.Error("failed to list published clubs", zap.Error(err))
		return nil, fmt.Errorf("failed to list clubs: %w", err)
	}
	return clubs, nil
}

// ListPending returns the moderation queue for admins.
func (s *clubsService) ListPending(ctx context.Context) ([]models.Club, error) {
	clubs, err := s.repo.ListPending(ctx)
	if err != nil {
		s.logger.Error("failed to list pending clubs", zap.Error(err))
		return nil, fmt.Errorf("failed to list pending clubs: %w", err)
	}
	return clubs, nil
}

// Municipalities returns the distinct municipalities of published clubs.
func (s *clubsService) Municipalities(ctx context.Context) ([]string, error) {
	municipalities, err := s.repo.Municipalities(ctx)
	if err != nil {
		s.logger.Error("failed to list municipalities", zap.Error(err))
		return nil, fmt.Errorf("failed to list municipalities: %w", err)
	}
	return municipalities, nil
}

// Validate publishes one pending club. Calling it again for the same id
// returns models.ErrClubNotFound and changes nothing.
func (s *clubsService) Validate(ctx context.Context, id int) (*models.Club, error) {
	club, err := s.repo.Validate(ctx, id)
	if err != nil {
		if err != models.ErrClubNotFound {
			s.logger.Error("failed to validate club", zap.Error(err), zap.Int("id", id))
		}
		return nil, err
	}

	s.logger.Info("club validated", zap.Int("id", club.ID), zap.String("name", club.Name))
	return club, nil
}

// Reject deletes one pending club and, through the cascade, its reviews.
// Published clubs cannot be rejected.
func (s *clubsService) Reject(ctx context.Context, id int) error {
	if err := s.repo.DeletePending(ctx, id); err != nil {
		if err != models.ErrClubNotFound {
			s.logger.Error("failed to reject club", zap.Error(err), zap.Int("id", id))
		}
		return err
	}

	s.logger.Info("club rejected", zap.Int("id", id))
	return nil
}
