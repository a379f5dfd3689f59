package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"pokedex/models"
)

type UserStore struct {
	mock.Mock
}

func (m *UserStore) Create(ctx context.Context, user *models.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *UserStore) GetByEmail(ctx context.Context, email string) (models.User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(models.User), args.Error(1)
}

func (m *UserStore) GetByID(ctx context.Context, id uuid.UUID) (models.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.User), args.Error(1)
}

func (m *UserStore) ListFavorites(ctx context.Context, userID uuid.UUID) ([]models.Pokemon, error) {
	args := m.Called(ctx, userID)
	list, _ := args.Get(0).([]models.Pokemon)
	return list, args.Error(1)
}

func (m *UserStore) ToggleFavorite(ctx context.Context, userID uuid.UUID, pokemonID int) (bool, error) {
	args := m.Called(ctx, userID, pokemonID)
	return args.Bool(0), args.Error(1)
}

type PokemonStore struct {
	mock.Mock
}

func (m *PokemonStore) GetByID(ctx context.Context, id int) (models.Pokemon, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.Pokemon), args.Error(1)
}

func (m *PokemonStore) Save(ctx context.Context, pokemon *models.Pokemon) error {
	return m.Called(ctx, pokemon).Error(0)
}

type TeamStore struct {
	mock.Mock
}

func (m *TeamStore) Create(ctx context.Context, team *models.Team, fetched []models.Pokemon) error {
	return m.Called(ctx, team, fetched).Error(0)
}

func (m *TeamStore) GetByID(ctx context.Context, teamID, userID uuid.UUID) (models.Team, error) {
	args := m.Called(ctx, teamID, userID)
	return args.Get(0).(models.Team), args.Error(1)
}

func (m *TeamStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Team, error) {
	args := m.Called(ctx, userID)
	list, _ := args.Get(0).([]models.Team)
	return list, args.Error(1)
}

var (
	_ models.UserStore    = (*UserStore)(nil)
	_ models.PokemonStore = (*PokemonStore)(nil)
	_ models.TeamStore    = (*TeamStore)(nil)
)
