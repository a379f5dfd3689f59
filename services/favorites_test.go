package services

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"pokedex/mocks"
	"pokedex/models"
	"pokedex/pokeapi"
)

func newFavoritesFixture(t *testing.T) (*Favorites, *mocks.Catalog, *memPokemonStore, uuid.UUID) {
	t.Helper()

	userID := uuid.New()
	pokemon := newMemPokemonStore()
	users := newMemUserStore(pokemon, models.User{ID: userID, Email: "ash@pokedex.dev", IsActive: true})
	catalog := new(mocks.Catalog)
	sync := NewCatalogSync(pokemon, catalog, zerolog.Nop())

	return NewFavorites(users, sync, zerolog.Nop()), catalog, pokemon, userID
}

func TestFavorites_ToggleTwiceRestoresState(t *testing.T) {
	favorites, catalog, pokemon, userID := newFavoritesFixture(t)
	catalog.On("GetPokemon", mock.Anything, "25").
		Return(catalogPokemon(25, "pikachu", stats(35, 55, 40, 50, 50, 90), "electric"), nil).Once()
	ctx := context.Background()

	added, err := favorites.Toggle(ctx, 25, userID)
	require.NoError(t, err)
	assert.Equal(t, ToggleResult{PokemonID: 25, IsFavorite: true, Message: "Added to favorites"}, added)

	list, err := favorites.List(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, []PokemonSummary{{ID: 25, Name: "pikachu", Image: pokeapi.ArtworkURL(25)}}, list)

	removed, err := favorites.Toggle(ctx, 25, userID)
	require.NoError(t, err)
	assert.Equal(t, ToggleResult{PokemonID: 25, IsFavorite: false, Message: "Removed from favorites"}, removed)

	list, err = favorites.List(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, list)

	// the cached row outlives the favorite
	_, err = pokemon.GetByID(ctx, 25)
	assert.NoError(t, err)
	catalog.AssertExpectations(t)
}

func TestFavorites_ListOrderedByID(t *testing.T) {
	favorites, catalog, _, userID := newFavoritesFixture(t)
	for _, p := range []*pokeapi.Pokemon{
		catalogPokemon(150, "mewtwo", stats(106, 110, 90, 154, 90, 130), "psychic"),
		catalogPokemon(7, "squirtle", stats(44, 48, 65, 50, 64, 43), "water"),
		catalogPokemon(25, "pikachu", stats(35, 55, 40, 50, 50, 90), "electric"),
	} {
		catalog.On("GetPokemon", mock.Anything, strconv.Itoa(p.ID)).Return(p, nil)
		_, err := favorites.Toggle(context.Background(), p.ID, userID)
		require.NoError(t, err)
	}

	list, err := favorites.List(context.Background(), userID)

	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []int{7, 25, 150}, []int{list[0].ID, list[1].ID, list[2].ID})
}

func TestFavorites_UnknownPokemonCreatesNothing(t *testing.T) {
	favorites, catalog, pokemon, userID := newFavoritesFixture(t)
	catalog.On("GetPokemon", mock.Anything, "99999").Return(nil, &pokeapi.NotFoundError{URL: "x"})

	_, err := favorites.Toggle(context.Background(), 99999, userID)

	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.Zero(t, pokemon.saves)
	list, err := favorites.List(context.Background(), userID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestFavorites_ListUnknownUser(t *testing.T) {
	favorites, _, _, _ := newFavoritesFixture(t)

	list, err := favorites.List(context.Background(), uuid.New())

	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestFavorites_StoreErrorsPropagate(t *testing.T) {
	dbDown := errors.New("connection refused")
	userID := uuid.New()

	pokemon := new(mocks.PokemonStore)
	pokemon.On("GetByID", mock.Anything, 25).Return(models.Pokemon{ID: 25, Name: "pikachu"}, nil)
	users := new(mocks.UserStore)
	users.On("ToggleFavorite", mock.Anything, userID, 25).Return(false, dbDown).Once()
	users.On("ToggleFavorite", mock.Anything, mock.Anything, 25).Return(false, models.ErrNotFound).Once()
	users.On("ListFavorites", mock.Anything, userID).Return(nil, dbDown)

	catalog := new(mocks.Catalog)
	favorites := NewFavorites(users, NewCatalogSync(pokemon, catalog, zerolog.Nop()), zerolog.Nop())

	_, err := favorites.Toggle(context.Background(), 25, userID)
	assert.ErrorIs(t, err, dbDown)

	_, err = favorites.Toggle(context.Background(), 25, uuid.New())
	assert.ErrorIs(t, err, models.ErrNotFound)

	_, err = favorites.List(context.Background(), userID)
	assert.ErrorIs(t, err, dbDown)

	users.AssertExpectations(t)
	catalog.AssertNotCalled(t, "GetPokemon", mock.Anything, mock.Anything)
}
