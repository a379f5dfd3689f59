package models

import (
	"context"

	"github.com/google/uuid"
)

// UserStore defines persistence operations for users and their favorites.
type UserStore interface {
	Create(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	// ListFavorites returns favorites ordered by ascending pokemon id. An
	// unknown user yields an empty list.
	ListFavorites(ctx context.Context, userID uuid.UUID) ([]Pokemon, error)
	// ToggleFavorite flips the favorite relation and returns the new state.
	// The pokemon row must already be cached.
	ToggleFavorite(ctx context.Context, userID uuid.UUID, pokemonID int) (bool, error)
}

// PokemonStore is the local cache of catalog entries.
type PokemonStore interface {
	GetByID(ctx context.Context, id int) (Pokemon, error)
	// Save inserts the row unless it already exists.
	Save(ctx context.Context, pokemon *Pokemon) error
}

type TeamStore interface {
	// Create persists newly fetched pokemon rows and the team with its member
	// links atomically.
	Create(ctx context.Context, team *Team, fetched []Pokemon) error
	GetByID(ctx context.Context, teamID, userID uuid.UUID) (Team, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Team, error)
}
