package services

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"pokedex/models"
	"pokedex/pokeapi"
)

// memPokemonStore is an in-memory models.PokemonStore.
type memPokemonStore struct {
	mu    sync.Mutex
	rows  map[int]models.Pokemon
	saves int
}

func newMemPokemonStore(rows ...models.Pokemon) *memPokemonStore {
	s := &memPokemonStore{rows: map[int]models.Pokemon{}}
	for _, r := range rows {
		s.rows[r.ID] = r
	}
	return s
}

func (s *memPokemonStore) GetByID(_ context.Context, id int) (models.Pokemon, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.rows[id]
	if !ok {
		return models.Pokemon{}, models.ErrNotFound
	}
	return row, nil
}

func (s *memPokemonStore) Save(_ context.Context, p *models.Pokemon) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saves++
	if _, ok := s.rows[p.ID]; !ok {
		s.rows[p.ID] = *p
	}
	return nil
}

// memUserStore keeps favorites as a set per user and checks the pokemon
// cache like the foreign key would.
type memUserStore struct {
	mu        sync.Mutex
	pokemon   *memPokemonStore
	users     map[uuid.UUID]models.User
	favorites map[uuid.UUID]map[int]bool
}

func newMemUserStore(pokemon *memPokemonStore, users ...models.User) *memUserStore {
	s := &memUserStore{
		pokemon:   pokemon,
		users:     map[uuid.UUID]models.User{},
		favorites: map[uuid.UUID]map[int]bool{},
	}
	for _, u := range users {
		s.users[u.ID] = u
	}
	return s
}

func (s *memUserStore) Create(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == user.Email {
			return models.ErrDuplicateEmail
		}
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	s.users[user.ID] = *user
	return nil
}

func (s *memUserStore) GetByEmail(_ context.Context, email string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return models.User{}, models.ErrNotFound
}

func (s *memUserStore) GetByID(_ context.Context, id uuid.UUID) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return models.User{}, models.ErrNotFound
	}
	return u, nil
}

func (s *memUserStore) ListFavorites(ctx context.Context, userID uuid.UUID) ([]models.Pokemon, error) {
	s.mu.Lock()
	ids := make([]int, 0, len(s.favorites[userID]))
	for id := range s.favorites[userID] {
		ids = append(ids, id)
	}
	s.mu.Unlock()

	sort.Ints(ids)

	out := []models.Pokemon{}
	for _, id := range ids {
		row, err := s.pokemon.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, nil
}

func (s *memUserStore) ToggleFavorite(ctx context.Context, userID uuid.UUID, pokemonID int) (bool, error) {
	if _, err := s.pokemon.GetByID(ctx, pokemonID); err != nil {
		return false, fmt.Errorf("pokemon %d is not cached: %w", pokemonID, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[userID]; !ok {
		return false, models.ErrNotFound
	}
	favs := s.favorites[userID]
	if favs == nil {
		favs = map[int]bool{}
		s.favorites[userID] = favs
	}
	if favs[pokemonID] {
		delete(favs, pokemonID)
		return false, nil
	}
	favs[pokemonID] = true
	return true, nil
}

func stats(hp, atk, def, spa, spd, spe int) models.Stats {
	return models.Stats{HP: hp, Attack: atk, Defense: def, SpAttack: spa, SpDefense: spd, Speed: spe}
}

// catalogPokemon builds a remote record with stats listed in the catalog's
// usual order.
func catalogPokemon(id int, name string, s models.Stats, types ...string) *pokeapi.Pokemon {
	p := &pokeapi.Pokemon{ID: id, Name: name}
	for i, t := range types {
		p.Types = append(p.Types, pokeapi.TypeSlot{Slot: i + 1, Type: pokeapi.NamedResource{Name: t}})
	}
	for _, n := range models.StatNames {
		p.Stats = append(p.Stats, pokeapi.StatEntry{BaseStat: s.Get(n), Stat: pokeapi.NamedResource{Name: n}})
	}
	return p
}

func resource(id int, name, kind string) pokeapi.NamedResource {
	return pokeapi.NamedResource{Name: name, URL: fmt.Sprintf("https://pokeapi.co/api/v2/%s/%d/", kind, id)}
}
