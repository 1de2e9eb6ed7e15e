package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/klubbkatalog/backend/internal/middleware"
	"github.com/klubbkatalog/backend/internal/models"
	"github.com/klubbkatalog/backend/internal/session"
	"go.uber.org/zap"
)

// AuthService is the interface that wraps methods for authentication business logic.
type AuthService interface {
	// Login checks the credentials and returns the matching user, or
	// models.ErrInvalidCredentials.
	Login(ctx context.Context, req *models.LoginRequest) (*models.User, error)
	// GetUser returns the user for an authenticated session's user id.
	GetUser(ctx context.Context, id int) (*models.User, error)
}

// AuthHandler handles login, logout and session introspection
type AuthHandler struct {
	BaseHandler
	service    AuthService
	sessions   session.Store
	sessionTTL time.Duration
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(svc AuthService, sessions session.Store, sessionTTL time.Duration, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		BaseHandler: BaseHandler{logger: logger},
		service:     svc,
		sessions:    sessions,
		sessionTTL:  sessionTTL,
	}
}

// RegisterRoutes registers all auth handler routes. requireAuth gates
// the introspection endpoint.
func (h *AuthHandler) RegisterRoutes(r chi.Router, requireAuth func(http.Handler) http.Handler) {
	r.Post("/login", h.Login)
	r.Post("/logout", h.Logout)
	r.Group(func(r chi.Router) {
		r.Use(requireAuth)
		r.Get("/user", h.User)
	})
}

// Login handles POST /api/login
// @Summary Log in
// @Description Establish an admin session. Sets an HttpOnly session cookie.
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body models.LoginRequest true "Username and password"
// @Success 200 {object} models.User
// @Failure 401 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := h.decodeJSON(r, &req); err != nil {
		h.respondError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	user, err := h.service.Login(r.Context(), &req)
	if err != nil {
		if errors.Is(err, models.ErrInvalidCredentials) {
			h.respondError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		h.logger.Error("login failed", zap.Error(err))
		h.respondError(w, http.StatusInternalServerError, "failed to log in")
		return
	}

	sess, err := h.sessions.Create(r.Context(), user.ID, h.sessionTTL)
	if err != nil {
		h.logger.Error("failed to create session", zap.Error(err), zap.Int("user_id", user.ID))
		h.respondError(w, http.StatusInternalServerError, "failed to log in")
		return
	}

	http.SetCookie(w, h.sessionCookie(sess.ID, h.sessionTTL))
	h.respondJSON(w, http.StatusOK, user)
}

// Logout handles POST /api/logout
// @Summary Log out
// @Description Destroy the current session and clear the cookie
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(session.CookieName); err == nil && cookie.Value != "" {
		if err := h.sessions.Delete(r.Context(), cookie.Value); err != nil {
			h.logger.Error("failed to delete session", zap.Error(err))
			h.respondError(w, http.StatusInternalServerError, "failed to log out")
			return
		}
	}

	http.SetCookie(w, h.sessionCookie("", -time.Hour))
	h.respondJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

// User handles GET /api/user
// @Summary Current user
// @Description Introspect the session and return the logged-in user
// @Tags auth
// @Produce json
// @Success 200 {object} models.User
// @Failure 401 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/user [get]
func (h *AuthHandler) User(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	user, err := h.service.GetUser(r.Context(), userID)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			// Session outlived its user; treat as logged out.
			h.respondError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		h.respondError(w, http.StatusInternalServerError, "failed to get user")
		return
	}

	h.respondJSON(w, http.StatusOK, user)
}

func (h *AuthHandler) sessionCookie(value string, ttl time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     session.CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}
