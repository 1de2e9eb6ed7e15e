package session

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/klubbkatalog/backend/internal/models"
	"go.uber.org/zap"
)

// MySQLStore persists sessions in the sessions table so logins survive
// process restarts and multiple instances share one view.
type MySQLStore struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewMySQLStore creates a database-backed session store
func NewMySQLStore(db *sql.DB, logger *zap.Logger) *MySQLStore {
	return &MySQLStore{
		db:     db,
		logger: logger,
	}
}

// Create registers a new session for the user
func (s *MySQLStore) Create(ctx context.Context, userID int, ttl time.Duration) (*Session, error) {
	sess := &Session{
		ID:        uuid.New().String(),
		UserID:    userID,
		ExpiresAt: time.Now().Add(ttl),
	}

	query := `
		INSERT INTO sessions (id, user_id, expires_at)
		VALUES (?, ?, ?)
	`

	if _, err := s.db.ExecContext(ctx, query, sess.ID, sess.UserID, sess.ExpiresAt); err != nil {
		s.logger.Error("failed to create session", zap.Error(err), zap.Int("user_id", userID))
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return sess, nil
}

// Get returns the session for the id. Expired sessions are deleted lazily
// and reported as not found.
func (s *MySQLStore) Get(ctx context.Context, id string) (*Session, error) {
	query := `
		SELECT id, user_id, expires_at
		FROM sessions
		WHERE id = ?
	`

	sess := &Session{}
	err := s.db.QueryRowContext(ctx, query, id).Scan(&sess.ID, &sess.UserID, &sess.ExpiresAt)
	if err == sql.ErrNoRows {
		return nil, models.ErrSessionNotFound
	}
	if err != nil {
		s.logger.Error("failed to get session", zap.Error(err))
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	if time.Now().After(sess.ExpiresAt) {
		// Best effort cleanup; an expired session is not found either way
		if err := s.Delete(ctx, id); err != nil {
			s.logger.Warn("failed to delete expired session", zap.Error(err))
		}
		return nil, models.ErrSessionNotFound
	}

	return sess, nil
}

// Delete removes the session; deleting an unknown id is not an error
func (s *MySQLStore) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM sessions WHERE id = ?`

	if _, err := s.db.ExecContext(ctx, query, id); err != nil {
		s.logger.Error("failed to delete session", zap.Error(err))
		return fmt.Errorf("failed to delete session: %w", err)
	}

	return nil
}

// DeleteExpired removes all sessions past their expiry. Called
// periodically from main.
func (s *MySQLStore) DeleteExpired(ctx context.Context) (int64, error) {
	query := `DELETE FROM sessions WHERE expires_at < ?`

	res, err := s.db.ExecContext(ctx, query, time.Now())
	if err != nil {
		s.logger.Error("failed to delete expired sessions", zap.Error(err))
		return 0, fmt.Errorf("failed to delete expired sessions: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return n, nil
}
