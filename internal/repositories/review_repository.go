package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
	"github.com/klubbkatalog/backend/internal/models"
	"go.uber.org/zap"
)

// MySQL error number for a foreign key constraint failure on insert.
const mysqlErrNoReferencedRow = 1452

type reviewsRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewReviewsRepository creates a new reviews repository
func NewReviewsRepository(db *sql.DB, logger *zap.Logger) *reviewsRepository {
	return &reviewsRepository{
		db:     db,
		logger: logger,
	}
}

// Insert stores a new review. The foreign key is the referential check:
// a club id with no club row fails here, not in validation, and is
// reported as models.ErrClubNotFound.
func (r *reviewsRepository) Insert(ctx context.Context, review *models.Review) error {
	query := `
		INSERT INTO reviews (club_id, rating, comment, author_name)
		VALUES (?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		review.ClubID,
		review.Rating,
		review.Comment,
		review.AuthorName,
	)
	if err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlErrNoReferencedRow {
			return models.ErrClubNotFound
		}
		r.logger.Error("failed to insert review", zap.Error(err), zap.Int("club_id", review.ClubID))
		return fmt.Errorf("failed to insert review: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		r.logger.Error("failed to get last insert id", zap.Error(err))
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	review.ID = int(id)
	return nil
}

// ListByClub returns all reviews for a club, newest first.
func (r *reviewsRepository) ListByClub(ctx context.Context, clubID int) ([]models.Review, error) {
	query := `
		SELECT id, club_id, rating, COALESCE(comment, ''), author_name, created_at
		FROM reviews
		WHERE club_id = ?
		ORDER BY created_at DESC, id DESC
	`

	rows, err := r.db.QueryContext(ctx, query, clubID)
	if err != nil {
		r.logger.Error("failed to query reviews", zap.Error(err), zap.Int("club_id", clubID))
		return nil, fmt.Errorf("failed to query reviews: %w", err)
	}
	defer rows.Close()

	var reviews []models.Review
	for rows.Next() {
		var review models.Review
		if err := rows.Scan(
			&review.ID,
			&review.ClubID,
			&review.Rating,
			&review.Comment,
			&review.AuthorName,
			&review.CreatedAt,
		); err != nil {
			r.logger.Error("failed to scan review", zap.Error(err))
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		reviews = append(reviews, review)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("error iterating rows", zap.Error(err))
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return reviews, nil
}
