package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/klubbkatalog/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// setupReviewsTestRepository creates a reviews repository with a mock database
func setupReviewsTestRepository(t *testing.T) (*reviewsRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	repo := NewReviewsRepository(db, zap.NewNop())

	cleanup := func() {
		db.Close()
	}

	return repo, mock, cleanup
}

func TestReviewsRepository_Insert(t *testing.T) {
	tests := []struct {
		name          string
		review        *models.Review
		setupMock     func(sqlmock.Sqlmock)
		expectedError error
		expectedID    int
	}{
		{
			name: "success",
			review: &models.Review{
				ClubID:     1,
				Rating:     5,
				Comment:    "great club",
				AuthorName: "Kari",
			},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO reviews`).
					WithArgs(1, 5, "great club", "Kari").
					WillReturnResult(sqlmock.NewResult(4, 1))
			},
			expectedID: 4,
		},
		{
			name: "unknown club id",
			review: &models.Review{
				ClubID:     999,
				Rating:     3,
				AuthorName: "Ola",
			},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO reviews`).
					WithArgs(999, 3, "", "Ola").
					WillReturnError(&mysql.MySQLError{Number: 1452, Message: "Cannot add or update a child row"})
			},
			expectedError: models.ErrClubNotFound,
		},
		{
			name: "database error",
			review: &models.Review{
				ClubID:     1,
				Rating:     4,
				AuthorName: "Ola",
			},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO reviews`).
					WillReturnError(errors.New("database error"))
			},
			expectedError: errors.New("failed to insert review"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupReviewsTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			err := repo.Insert(context.Background(), tt.review)
			if tt.expectedError != nil {
				require.Error(t, err)
				if errors.Is(tt.expectedError, models.ErrClubNotFound) {
					assert.ErrorIs(t, err, models.ErrClubNotFound)
				}
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expectedID, tt.review.ID)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestReviewsRepository_ListByClub(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		repo, mock, cleanup := setupReviewsTestRepository(t)
		defer cleanup()

		now := time.Now()
		rows := sqlmock.NewRows([]string{"id", "club_id", "rating", "comment", "author_name", "created_at"}).
			AddRow(2, 1, 4, "", "Ola", now).
			AddRow(1, 1, 5, "great club", "Kari", now.Add(-time.Hour))

		mock.ExpectQuery(`WHERE club_id = \?`).
			WithArgs(1).
			WillReturnRows(rows)

		reviews, err := repo.ListByClub(context.Background(), 1)
		require.NoError(t, err)
		require.Len(t, reviews, 2)
		assert.Equal(t, "Ola", reviews[0].AuthorName)
		assert.Empty(t, reviews[0].Comment)
		assert.Equal(t, 5, reviews[1].Rating)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no reviews", func(t *testing.T) {
		repo, mock, cleanup := setupReviewsTestRepository(t)
		defer cleanup()

		mock.ExpectQuery(`WHERE club_id = \?`).
			WithArgs(2).
			WillReturnRows(sqlmock.NewRows([]string{"id", "club_id", "rating", "comment", "author_name", "created_at"}))

		reviews, err := repo.ListByClub(context.Background(), 2)
		require.NoError(t, err)
		assert.Empty(t, reviews)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("database error", func(t *testing.T) {
		repo, mock, cleanup := setupReviewsTestRepository(t)
		defer cleanup()

		mock.ExpectQuery(`WHERE club_id = \?`).
			WithArgs(3).
			WillReturnError(errors.New("database error"))

		reviews, err := repo.ListByClub(context.Background(), 3)
		assert.Error(t, err)
		assert.Nil(t, reviews)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
