package services

import (
	"context"
	"fmt"

	"github.com/klubbkatalog/backend/internal/models"
	"github.com/klubbkatalog/backend/internal/validation"
	"go.uber.org/zap"
)

// ReviewsRepository is the interface that wraps methods for reviews table data access.
type ReviewsRepository interface {
	// Insert stores a new review. A club id that fails the foreign key
	// check surfaces as models.ErrClubNotFound.
	Insert(ctx context.Context, review *models.Review) error
	// ListByClub returns all reviews for a club, newest first.
	ListByClub(ctx context.Context, clubID int) ([]models.Review, error)
}

type reviewsService struct {
	repo   ReviewsRepository
	logger *zap.Logger
}

// NewReviewsService creates a new reviews service
func NewReviewsService(repo ReviewsRepository, logger *zap.Logger) *reviewsService {
	return &reviewsService{
		repo:   repo,
		logger: logger,
	}
}

// Submit validates a review and stores it. Validation is structural
// only; whether the club exists is the storage layer's call.
func (s *reviewsService) Submit(ctx context.Context, clubID int, req *models.ReviewCreateRequest) (*models.Review, error) {
	if clubID <= 0 {
		return nil, models.NewValidationError("clubId", "clubId must be a positive integer")
	}
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	review := &models.Review{
		ClubID:     clubID,
		Rating:     req.Rating,
		Comment:    req.Comment,
		AuthorName: req.AuthorName,
	}

	if err := s.repo.Insert(ctx, review); err != nil {
		if err != models.ErrClubNotFound {
			s.logger.Error("failed to submit review", zap.Error(err), zap.Int("club_id", clubID))
		}
		return nil, fmt.Errorf("failed to submit review: %w", err)
	}

	s.logger.Info("review submitted", zap.Int("id", review.ID), zap.Int("club_id", clubID))
	return review, nil
}

// ListByClub returns the reviews for a club, newest first.
func (s *reviewsService) ListByClub(ctx context.Context, clubID int) ([]models.Review, error) {
	reviews, err := s.repo.ListByClub(ctx, clubID)
	if err != nil {
		s.logger.Error("failed to list reviews", zap.Error(err), zap.Int("club_id", clubID))
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	return reviews, nil
}
