package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"pokedex/models"
)

const (
	addedToFavorites     = "Added to favorites"
	removedFromFavorites = "Removed from favorites"
)

type ToggleResult struct {
	PokemonID  int    `json:"pokemonId"`
	IsFavorite bool   `json:"isFavorite"`
	Message    string `json:"message"`
}

// Favorites manages the user <-> pokemon favorite relation.
type Favorites struct {
	users models.UserStore
	sync  *CatalogSync
	log   zerolog.Logger
}

func NewFavorites(users models.UserStore, sync *CatalogSync, log zerolog.Logger) *Favorites {
	return &Favorites{
		users: users,
		sync:  sync,
		log:   log.With().Str("service", "favorites").Logger(),
	}
}

// Toggle caches the pokemon if needed and flips its favorite state for the user.
func (f *Favorites) Toggle(ctx context.Context, pokemonID int, userID uuid.UUID) (ToggleResult, error) {
	if _, err := f.sync.Ensure(ctx, pokemonID); err != nil {
		return ToggleResult{}, err
	}

	favorite, err := f.users.ToggleFavorite(ctx, userID, pokemonID)
	if err != nil {
		return ToggleResult{}, err
	}

	result := ToggleResult{PokemonID: pokemonID, IsFavorite: favorite, Message: removedFromFavorites}
	if favorite {
		result.Message = addedToFavorites
	}

	f.log.Debug().
		Str("user_id", userID.String()).
		Int("pokemon_id", pokemonID).
		Bool("favorite", favorite).
		Msg("favorite toggled")

	return result, nil
}

// List returns the user's favorites by ascending id. Unknown users get an
// empty list.
func (f *Favorites) List(ctx context.Context, userID uuid.UUID) ([]PokemonSummary, error) {
	favorites, err := f.users.ListFavorites(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}

	out := make([]PokemonSummary, 0, len(favorites))
	for _, p := range favorites {
		out = append(out, PokemonSummary{ID: p.ID, Name: p.Name, Image: p.Image})
	}
	return out, nil
}
