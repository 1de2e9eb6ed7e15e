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

// ClubsService is the interface that wraps methods for clubs business logic.
type ClubsService interface {
	// Submit validates and stores a new club as pending. A
	// *models.ValidationError marks a malformed request.
	Submit(ctx context.Context, req *models.ClubCreateRequest) (*models.Club, error)
	// ListPublic returns published clubs, newest first.
	ListPublic(ctx context.Context) ([]models.Club, error)
	// ListPending returns unvalidated clubs, newest first.
	ListPending(ctx context.Context) ([]models.Club, error)
	// Municipalities returns the distinct municipalities of published clubs.
	Municipalities(ctx context.Context) ([]string, error)
	// Validate publishes one pending club or returns models.ErrClubNotFound.
	Validate(ctx context.Context, id int) (*models.Club, error)
	// Reject deletes one pending club or returns models.ErrClubNotFound.
	Reject(ctx context.Context, id int) error
}

// ClubsHandler handles HTTP requests for clubs
type ClubsHandler struct {
	BaseHandler
	service ClubsService
}

// NewClubsHandler creates a new clubs handler
func NewClubsHandler(svc ClubsService, logger *zap.Logger) *ClubsHandler {
	return &ClubsHandler{
		BaseHandler: BaseHandler{logger: logger},
		service:     svc,
	}
}

// RegisterRoutes registers all club handler routes. requireAuth gates
// the moderation endpoints.
func (h *ClubsHandler) RegisterRoutes(r chi.Router, requireAuth func(http.Handler) http.Handler) {
	r.Get("/clubs", h.ListPublic)
	r.Post("/clubs", h.Submit)
	r.Get("/municipalities", h.Municipalities)
	r.Group(func(r chi.Router) {
		r.Use(requireAuth)
		r.Get("/clubs/pending", h.ListPending)
		r.Post("/clubs/{id}/validate", h.Validate)
		r.Delete("/clubs/{id}", h.Reject)
	})
}

// ListPublic handles GET /api/clubs
// @Summary List published clubs
// @Description Get all validated clubs, newest first, with review count and average rating
// @Tags clubs
// @Produce json
// @Success 200 {array} models.Club
// @Failure 500 {object} map[string]string
// @Router /api/clubs [get]
func (h *ClubsHandler) ListPublic(w http.ResponseWriter, r *http.Request) {
	clubs, err := h.service.ListPublic(r.Context())
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, "failed to fetch clubs")
		return
	}

	if clubs == nil {
		clubs = []models.Club{}
	}
	h.respondJSON(w, http.StatusOK, clubs)
}

// Municipalities handles GET /api/municipalities
// @Summary List municipalities
// @Description Get the distinct municipalities of published clubs
// @Tags clubs
// @Produce json
// @Success 200 {array} string
// @Failure 500 {object} map[string]string
// @Router /api/municipalities [get]
func (h *ClubsHandler) Municipalities(w http.ResponseWriter, r *http.Request) {
	municipalities, err := h.service.Municipalities(r.Context())
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, "failed to fetch municipalities")
		return
	}

	if municipalities == nil {
		municipalities = []string{}
	}
	h.respondJSON(w, http.StatusOK, municipalities)
}

// Submit handles POST /api/clubs
// @Summary Submit a new club
// @Description Submit a club for moderation. The club starts unvalidated no matter what the body says.
// @Tags clubs
// @Accept json
// @Produce json
// @Param club body models.ClubCreateRequest true "Club fields"
// @Success 201 {object} models.Club
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/clubs [post]
func (h *ClubsHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req models.ClubCreateRequest
	if err := h.decodeJSON(r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	club, err := h.service.Submit(r.Context(), &req)
	if err != nil {
		var vErr *models.ValidationError
		if errors.As(err, &vErr) {
			h.respondError(w, http.StatusBadRequest, vErr.Message)
			return
		}
		h.logger.Error("failed to submit club", zap.Error(err))
		h.respondError(w, http.StatusInternalServerError, "failed to submit club")
		return
	}

	h.respondJSON(w, http.StatusCreated, club)
}

// ListPending handles GET /api/clubs/pending
// @Summary List pending clubs
// @Description Get the moderation queue of unvalidated clubs, newest first. Admin only.
// @Tags moderation
// @Produce json
// @Success 200 {array} models.Club
// @Failure 401 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/clubs/pending [get]
func (h *ClubsHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	clubs, err := h.service.ListPending(r.Context())
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, "failed to fetch pending clubs")
		return
	}

	if clubs == nil {
		clubs = []models.Club{}
	}
	h.respondJSON(w, http.StatusOK, clubs)
}

// Validate handles POST /api/clubs/{id}/validate
// @Summary Validate a club
// @Description Publish a pending club. Validating an unknown or already validated club is a 404. Admin only.
// @Tags moderation
// @Produce json
// @Param id path int true "Club ID"
// @Success 200 {object} models.Club
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/clubs/{id}/validate [post]
func (h *ClubsHandler) Validate(w http.ResponseWriter, r *http.Request) {
	id, ok := h.clubID(w, r)
	if !ok {
		return
	}

	club, err := h.service.Validate(r.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrClubNotFound) {
			h.respondError(w, http.StatusNotFound, "club not found or already validated")
			return
		}
		h.respondError(w, http.StatusInternalServerError, "failed to validate club")
		return
	}

	h.respondJSON(w, http.StatusOK, club)
}

// Reject handles DELETE /api/clubs/{id}
// @Summary Reject a club
// @Description Delete a pending club and its reviews. Published clubs cannot be deleted. Admin only.
// @Tags moderation
// @Produce json
// @Param id path int true "Club ID"
// @Success 200 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/clubs/{id} [delete]
func (h *ClubsHandler) Reject(w http.ResponseWriter, r *http.Request) {
	id, ok := h.clubID(w, r)
	if !ok {
		return
	}

	if err := h.service.Reject(r.Context(), id); err != nil {
		if errors.Is(err, models.ErrClubNotFound) {
			h.respondError(w, http.StatusNotFound, "club not found or already validated")
			return
		}
		h.respondError(w, http.StatusInternalServerError, "failed to delete club")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]string{"message": "club deleted successfully"})
}

// clubID parses the {id} path parameter. A non-numeric id can never
// match a club, so it gets the same 404 as an unknown one.
func (h *ClubsHandler) clubID(w http.ResponseWriter, r *http.Request) (int, bool) {
	idParam := chi.URLParam(r, "id")
	id, err := strconv.Atoi(idParam)
	if err != nil || id <= 0 {
		h.respondError(w, http.StatusNotFound, "club not found or already validated")
		return 0, false
	}
	return id, true
}
