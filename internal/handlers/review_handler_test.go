package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/klubbkatalog/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// stubReviewsService is a hand-written stub of ReviewsService
type stubReviewsService struct {
	submitFunc     func(ctx context.Context, clubID int, req *models.ReviewCreateRequest) (*models.Review, error)
	listByClubFunc func(ctx context.Context, clubID int) ([]models.Review, error)
}

func (s *stubReviewsService) Submit(ctx context.Context, clubID int, req *models.ReviewCreateRequest) (*models.Review, error) {
	return s.submitFunc(ctx, clubID, req)
}

func (s *stubReviewsService) ListByClub(ctx context.Context, clubID int) ([]models.Review, error) {
	return s.listByClubFunc(ctx, clubID)
}

func newReviewsTestRouter(t *testing.T, svc ReviewsService) chi.Router {
	t.Helper()
	r := chi.NewRouter()
	NewReviewsHandler(svc, zap.NewNop()).RegisterRoutes(r)
	return r
}

func TestReviewsHandler_ListByClub(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &stubReviewsService{
			listByClubFunc: func(ctx context.Context, clubID int) ([]models.Review, error) {
				return []models.Review{{ID: 1, ClubID: clubID, Rating: 5, AuthorName: "Kari"}}, nil
			},
		}
		router := newReviewsTestRouter(t, svc)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/clubs/1/reviews", nil))

		assert.Equal(t, http.StatusOK, rec.Code)

		var reviews []models.Review
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&reviews))
		require.Len(t, reviews, 1)
		assert.Equal(t, "Kari", reviews[0].AuthorName)
	})

	t.Run("no reviews is an empty array, not null", func(t *testing.T) {
		svc := &stubReviewsService{
			listByClubFunc: func(ctx context.Context, clubID int) ([]models.Review, error) {
				return nil, nil
			},
		}
		router := newReviewsTestRouter(t, svc)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/clubs/1/reviews", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, "[]", rec.Body.String())
	})

	t.Run("non-numeric club id", func(t *testing.T) {
		router := newReviewsTestRouter(t, &stubReviewsService{
			listByClubFunc: func(ctx context.Context, clubID int) ([]models.Review, error) {
				t.Fatal("ListByClub must not be called for a non-numeric id")
				return nil, nil
			},
		})

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/clubs/abc/reviews", nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "clubId must be a positive integer", decodeErrorBody(t, rec))
	})

	t.Run("service error", func(t *testing.T) {
		svc := &stubReviewsService{
			listByClubFunc: func(ctx context.Context, clubID int) ([]models.Review, error) {
				return nil, errors.New("database error")
			},
		}
		router := newReviewsTestRouter(t, svc)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/clubs/1/reviews", nil))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestReviewsHandler_Submit(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		svc := &stubReviewsService{
			submitFunc: func(ctx context.Context, clubID int, req *models.ReviewCreateRequest) (*models.Review, error) {
				return &models.Review{ID: 1, ClubID: clubID, Rating: req.Rating, AuthorName: req.AuthorName}, nil
			},
		}
		router := newReviewsTestRouter(t, svc)

		body := `{"rating":5,"comment":"great club","authorName":"Kari"}`
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/clubs/1/reviews", bytes.NewBufferString(body)))

		assert.Equal(t, http.StatusCreated, rec.Code)

		var review models.Review
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&review))
		assert.Equal(t, 1, review.ClubID)
		assert.Equal(t, 5, review.Rating)
	})

	t.Run("malformed json", func(t *testing.T) {
		router := newReviewsTestRouter(t, &stubReviewsService{})

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/clubs/1/reviews", bytes.NewBufferString("{not json")))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "invalid request body", decodeErrorBody(t, rec))
	})

	t.Run("validation error", func(t *testing.T) {
		svc := &stubReviewsService{
			submitFunc: func(ctx context.Context, clubID int, req *models.ReviewCreateRequest) (*models.Review, error) {
				return nil, models.NewValidationError("rating", "rating must be between 1 and 5")
			},
		}
		router := newReviewsTestRouter(t, svc)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/clubs/1/reviews", bytes.NewBufferString(`{"rating":9}`)))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "rating must be between 1 and 5", decodeErrorBody(t, rec))
	})

	t.Run("non-positive club id in path", func(t *testing.T) {
		router := newReviewsTestRouter(t, &stubReviewsService{})

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/clubs/0/reviews", bytes.NewBufferString(`{"rating":5,"authorName":"Kari"}`)))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "clubId must be a positive integer", decodeErrorBody(t, rec))
	})

	t.Run("unknown club id is a storage failure", func(t *testing.T) {
		svc := &stubReviewsService{
			submitFunc: func(ctx context.Context, clubID int, req *models.ReviewCreateRequest) (*models.Review, error) {
				return nil, models.ErrClubNotFound
			},
		}
		router := newReviewsTestRouter(t, svc)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/clubs/999/reviews", bytes.NewBufferString(`{"rating":5,"authorName":"Kari"}`)))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "failed to submit review", decodeErrorBody(t, rec))
	})
}
