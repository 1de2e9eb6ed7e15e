package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/klubbkatalog/backend/internal/models"
	"go.uber.org/zap"
)

// ReviewsService is the interface that wraps methods for reviews business logic.
type ReviewsService interface {
	// Submit validates and stores a review for the club. A
	// *models.ValidationError marks a malformed request; a club id that
	// fails the foreign key check surfaces as a storage error.
	Submit(ctx context.Context, clubID int, req *models.ReviewCreateRequest) (*models.Review, error)
	// ListByClub returns the reviews for a club, newest first.
	ListByClub(ctx context.Context, clubID int) ([]models.Review, error)
}

// ReviewsHandler handles HTTP requests for reviews
type ReviewsHandler struct {
	BaseHandler
	service ReviewsService
}

// NewReviewsHandler creates a new reviews handler
func NewReviewsHandler(svc ReviewsService, logger *zap.Logger) *ReviewsHandler {
	return &ReviewsHandler{
		BaseHandler: BaseHandler{logger: logger},
		service:     svc,
	}
}

// RegisterRoutes registers all review handler routes
func (h *ReviewsHandler) RegisterRoutes(r chi.Router) {
	r.Get("/clubs/{id}/reviews", h.ListByClub)
	r.Post("/clubs/{id}/reviews", h.Submit)
}

// ListByClub handles GET /api/clubs/{id}/reviews
// @Summary List reviews for a club
// @Description Get all reviews for a club, newest first
// @Tags reviews
// @Produce json
// @Param id path int true "Club ID"
// @Success 200 {array} models.Review
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/clubs/{id}/reviews [get]
func (h *ReviewsHandler) ListByClub(w http.ResponseWriter, r *http.Request) {
	clubID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || clubID <= 0 {
		h.respondError(w, http.StatusBadRequest, "clubId must be a positive integer")
		return
	}

	reviews, err := h.service.ListByClub(r.Context(), clubID)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, "failed to fetch reviews")
		return
	}

	if reviews == nil {
		reviews = []models.Review{}
	}
	h.respondJSON(w, http.StatusOK, reviews)
}

// Submit handles POST /api/clubs/{id}/reviews
// @Summary Submit a review
// @Description Leave a star rating and optional comment on a club
// @Tags reviews
// @Accept json
// @Produce json
// @Param id path int true "Club ID"
// @Param review body models.ReviewCreateRequest true "Review fields"
// @Success 201 {object} models.Review
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/clubs/{id}/reviews [post]
func (h *ReviewsHandler) Submit(w http.ResponseWriter, r *http.Request) {
	clubID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || clubID <= 0 {
		h.respondError(w, http.StatusBadRequest, "clubId must be a positive integer")
		return
	}

	var req models.ReviewCreateRequest
	if err := h.decodeJSON(r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	review, err := h.service.Submit(r.Context(), clubID, &req)
	if err != nil {
		var vErr *models.ValidationError
		if errors.As(err, &vErr) {
			h.respondError(w, http.StatusBadRequest, vErr.Message)
			return
		}
		// Includes the foreign key failure for an unknown club: a
		// storage-class error, deliberately distinct from validation.
		h.logger.Error("failed to submit review", zap.Error(err), zap.Int("club_id", clubID))
		h.respondError(w, http.StatusInternalServerError, "failed to submit review")
		return
	}

	h.respondJSON(w, http.StatusCreated, review)
}
