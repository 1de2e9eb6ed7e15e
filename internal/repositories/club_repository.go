package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/klubbkatalog/backend/internal/models"
	"go.uber.org/zap"
)

// clubSelectColumns is shared by every club query so the aggregate
// review fields are always present on returned rows.
const clubSelectColumns = `
	c.id, c.name, c.municipality, c.address, c.phone, c.email, c.org_number,
	COALESCE(c.description, ''), c.validated, c.created_at,
	COUNT(r.id), COALESCE(AVG(r.rating), 0)
`

type clubsRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewClubsRepository creates a new clubs repository
func NewClubsRepository(db *sql.DB, logger *zap.Logger) *clubsRepository {
	return &clubsRepository{
		db:     db,
		logger: logger,
	}
}

// Insert stores a new club submission. The validated column is never
// written here; the schema default keeps every submission pending.
func (r *clubsRepository) Insert(ctx context.Context, club *models.Club) error {
	query := `
		INSERT INTO clubs (name, municipality, address, phone, email, org_number, description)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		club.Name,
		club.Municipality,
		club.Address,
		club.Phone,
		club.Email,
		club.OrgNumber,
		club.Description,
	)
	if err != nil {
		r.logger.Error("failed to insert club", zap.Error(err))
		return fmt.Errorf("failed to insert club: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		r.logger.Error("failed to get last insert id", zap.Error(err))
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	club.ID = int(id)
	club.Validated = false
	return nil
}

// ListValidated returns all published clubs, newest first, with their
// review count and average rating.
func (r *clubsRepository) ListValidated(ctx context.Context) ([]models.Club, error) {
	return r.list(ctx, true)
}

// ListPending returns all unvalidated clubs, newest first.
func (r *clubsRepository) ListPending(ctx context.Context) ([]models.Club, error) {
	return r.list(ctx, false)
}

func (r *clubsRepository) list(ctx context.Context, validated bool) ([]models.Club, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM clubs c
		LEFT JOIN reviews r ON r.club_id = c.id
		WHERE c.validated = ?
		GROUP BY c.id
		ORDER BY c.created_at DESC, c.id DESC
	`, clubSelectColumns)

	rows, err := r.db.QueryContext(ctx, query, validated)
	if err != nil {
		r.logger.Error("failed to query clubs", zap.Error(err), zap.Bool("validated", validated))
		return nil, fmt.Errorf("failed to query clubs: %w", err)
	}
	defer rows.Close()

	var clubs []models.Club
	for rows.Next() {
		club, err := scanClub(rows)
		if err != nil {
			r.logger.Error("failed to scan club", zap.Error(err))
			return nil, fmt.Errorf("failed to scan club: %w", err)
		}
		clubs = append(clubs, *club)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("error iterating rows", zap.Error(err))
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return clubs, nil
}

// GetByID returns one club with its review aggregates.
func (r *clubsRepository) GetByID(ctx context.Context, id int) (*models.Club, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM clubs c
		LEFT JOIN reviews r ON r.club_id = c.id
		WHERE c.id = ?
		GROUP BY c.id
	`, clubSelectColumns)

	club, err := scanClub(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, models.ErrClubNotFound
	}
	if err != nil {
		r.logger.Error("failed to query club by id", zap.Error(err), zap.Int("id", id))
		return nil, fmt.Errorf("failed to query club: %w", err)
	}

	return club, nil
}

// Municipalities returns the distinct municipalities of published clubs.
func (r *clubsRepository) Municipalities(ctx context.Context) ([]string, error) {
	query := `
		SELECT DISTINCT municipality
		FROM clubs
		WHERE validated = TRUE
		ORDER BY municipality
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("failed to query municipalities", zap.Error(err))
		return nil, fmt.Errorf("failed to query municipalities: %w", err)
	}
	defer rows.Close()

	var municipalities []string
	for rows.Next() {
		var m string
		if err := rows.Scan(&m); err != nil {
			r.logger.Error("failed to scan municipality", zap.Error(err))
			return nil, fmt.Errorf("failed to scan municipality: %w", err)
		}
		municipalities = append(municipalities, m)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("error iterating rows", zap.Error(err))
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return municipalities, nil
}

// Validate flips exactly one pending club to validated and returns the
// updated row. The conditional WHERE makes racing validate/reject calls
// safe: at most one of them affects the row, the loser sees
// models.ErrClubNotFound.
func (r *clubsRepository) Validate(ctx context.Context, id int) (*models.Club, error) {
	query := `
		UPDATE clubs
		SET validated = TRUE
		WHERE id = ? AND validated = FALSE
	`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		r.logger.Error("failed to validate club", zap.Error(err), zap.Int("id", id))
		return nil, fmt.Errorf("failed to validate club: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		r.logger.Error("failed to get rows affected", zap.Error(err))
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return nil, models.ErrClubNotFound
	}

	return r.GetByID(ctx, id)
}

// DeletePending deletes exactly one pending club; its reviews go with it
// via the foreign key cascade. Validated clubs are untouchable through
// this path.
func (r *clubsRepository) DeletePending(ctx context.Context, id int) error {
	query := `
		DELETE FROM clubs
		WHERE id = ? AND validated = FALSE
	`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		r.logger.Error("failed to delete club", zap.Error(err), zap.Int("id", id))
		return fmt.Errorf("failed to delete club: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		r.logger.Error("failed to get rows affected", zap.Error(err))
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return models.ErrClubNotFound
	}

	return nil
}

// rowScanner covers *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...any) error
}

func scanClub(row rowScanner) (*models.Club, error) {
	var club models.Club
	err := row.Scan(
		&club.ID,
		&club.Name,
		&club.Municipality,
		&club.Address,
		&club.Phone,
		&club.Email,
		&club.OrgNumber,
		&club.Description,
		&club.Validated,
		&club.CreatedAt,
		&club.ReviewCount,
		&club.AverageRating,
	)
	if err != nil {
		return nil, err
	}
	return &club, nil
}
