package services

import (
	"context"
	"errors"
	"testing"

	"github.com/klubbkatalog/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// mockClubsRepository is a hand-written mock of ClubsRepository
type mockClubsRepository struct {
	insertFunc         func(ctx context.Context, club *models.Club) error
	listValidatedFunc  func(ctx context.Context) ([]models.Club, error)
	listPendingFunc    func(ctx context.Context) ([]models.Club, error)
	municipalitiesFunc func(ctx context.Context) ([]string, error)
	validateFunc       func(ctx context.Context, id int) (*models.Club, error)
	deletePendingFunc  func(ctx context.Context, id int) error

	insertCalls int
}

func (m *mockClubsRepository) Insert(ctx context.Context, club *models.Club) error {
	m.insertCalls++
	return m.insertFunc(ctx, club)
}

func (m *mockClubsRepository) ListValidated(ctx context.Context) ([]models.Club, error) {
	return m.listValidatedFunc(ctx)
}

func (m *mockClubsRepository) ListPending(ctx context.Context) ([]models.Club, error) {
	return m.listPendingFunc(ctx)
}

func (m *mockClubsRepository) Municipalities(ctx context.Context) ([]string, error) {
	return m.municipalitiesFunc(ctx)
}

func (m *mockClubsRepository) Validate(ctx context.Context, id int) (*models.Club, error) {
	return m.validateFunc(ctx, id)
}

func (m *mockClubsRepository) DeletePending(ctx context.Context, id int) error {
	return m.deletePendingFunc(ctx, id)
}

func validClubRequest() *models.ClubCreateRequest {
	return &models.ClubCreateRequest{
		Name:         "Oslo FK",
		Municipality: "Oslo",
		Address:      "Gate 1",
		Phone:        "12345678",
		Email:        "post@oslofk.no",
		OrgNumber:    "987654321",
	}
}

func TestClubsService_Submit(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		repo := &mockClubsRepository{
			insertFunc: func(ctx context.Context, club *models.Club) error {
				club.ID = 1
				return nil
			},
		}
		service := NewClubsService(repo, zap.NewNop())

		club, err := service.Submit(context.Background(), validClubRequest())
		require.NoError(t, err)
		assert.Equal(t, 1, club.ID)
		assert.False(t, club.Validated)
		assert.Equal(t, 1, repo.insertCalls)
	})

	t.Run("validation failure never reaches the repository", func(t *testing.T) {
		repo := &mockClubsRepository{
			insertFunc: func(ctx context.Context, club *models.Club) error {
				t.Fatal("Insert must not be called for an invalid request")
				return nil
			},
		}
		service := NewClubsService(repo, zap.NewNop())

		req := validClubRequest()
		req.Email = "not-an-email"

		club, err := service.Submit(context.Background(), req)
		require.Error(t, err)
		assert.Nil(t, club)

		var vErr *models.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, "email", vErr.Field)
		assert.Zero(t, repo.insertCalls)
	})

	t.Run("missing required field", func(t *testing.T) {
		repo := &mockClubsRepository{}
		service := NewClubsService(repo, zap.NewNop())

		req := validClubRequest()
		req.Municipality = ""

		_, err := service.Submit(context.Background(), req)
		var vErr *models.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, "municipality", vErr.Field)
	})

	t.Run("repository error", func(t *testing.T) {
		repo := &mockClubsRepository{
			insertFunc: func(ctx context.Context, club *models.Club) error {
				return errors.New("database error")
			},
		}
		service := NewClubsService(repo, zap.NewNop())

		club, err := service.Submit(context.Background(), validClubRequest())
		assert.Error(t, err)
		assert.Nil(t, club)
	})
}

func TestClubsService_ListPublic(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		repo := &mockClubsRepository{
			listValidatedFunc: func(ctx context.Context) ([]models.Club, error) {
				return []models.Club{{ID: 1, Name: "Oslo FK", Validated: true}}, nil
			},
		}
		service := NewClubsService(repo, zap.NewNop())

		clubs, err := service.ListPublic(context.Background())
		require.NoError(t, err)
		require.Len(t, clubs, 1)
		assert.True(t, clubs[0].Validated)
	})

	t.Run("repository error", func(t *testing.T) {
		repo := &mockClubsRepository{
			listValidatedFunc: func(ctx context.Context) ([]models.Club, error) {
				return nil, errors.New("database error")
			},
		}
		service := NewClubsService(repo, zap.NewNop())

		clubs, err := service.ListPublic(context.Background())
		assert.Error(t, err)
		assert.Nil(t, clubs)
	})
}

func TestClubsService_Validate(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		repo := &mockClubsRepository{
			validateFunc: func(ctx context.Context, id int) (*models.Club, error) {
				return &models.Club{ID: id, Name: "Oslo FK", Validated: true}, nil
			},
		}
		service := NewClubsService(repo, zap.NewNop())

		club, err := service.Validate(context.Background(), 1)
		require.NoError(t, err)
		assert.True(t, club.Validated)
	})

	t.Run("already validated club is reported not found", func(t *testing.T) {
		repo := &mockClubsRepository{
			validateFunc: func(ctx context.Context, id int) (*models.Club, error) {
				return nil, models.ErrClubNotFound
			},
		}
		service := NewClubsService(repo, zap.NewNop())

		club, err := service.Validate(context.Background(), 1)
		assert.ErrorIs(t, err, models.ErrClubNotFound)
		assert.Nil(t, club)
	})
}

func TestClubsService_Reject(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		var deletedID int
		repo := &mockClubsRepository{
			deletePendingFunc: func(ctx context.Context, id int) error {
				deletedID = id
				return nil
			},
		}
		service := NewClubsService(repo, zap.NewNop())

		require.NoError(t, service.Reject(context.Background(), 3))
		assert.Equal(t, 3, deletedID)
	})

	t.Run("validated club cannot be rejected", func(t *testing.T) {
		repo := &mockClubsRepository{
			deletePendingFunc: func(ctx context.Context, id int) error {
				return models.ErrClubNotFound
			},
		}
		service := NewClubsService(repo, zap.NewNop())

		err := service.Reject(context.Background(), 3)
		assert.ErrorIs(t, err, models.ErrClubNotFound)
	})
}

func TestClubsService_Municipalities(t *testing.T) {
	repo := &mockClubsRepository{
		municipalitiesFunc: func(ctx context.Context) ([]string, error) {
			return []string{"Bergen", "Oslo"}, nil
		},
	}
	service := NewClubsService(repo, zap.NewNop())

	municipalities, err := service.Municipalities(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Bergen", "Oslo"}, municipalities)
}

func TestClubsService_ListPending(t *testing.T) {
	repo := &mockClubsRepository{
		listPendingFunc: func(ctx context.Context) ([]models.Club, error) {
			return []models.Club{{ID: 2, Name: "Ny Klubb"}}, nil
		},
	}
	service := NewClubsService(repo, zap.NewNop())

	clubs, err := service.ListPending(context.Background())
	require.NoError(t, err)
	require.Len(t, clubs, 1)
	assert.False(t, clubs[0].Validated)
}
