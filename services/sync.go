package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"pokedex/models"
)

// SyncFailure records one pokemon id that could not be brought into the cache.
type SyncFailure struct {
	PokemonID int
	Err       error
}

// SyncError lists every id that failed to sync. It matches
// models.ErrNotFound when all ids are unknown to the catalog and
// models.ErrUpstreamUnavailable otherwise.
type SyncError struct {
	Failures []SyncFailure
}

func (e *SyncError) Error() string {
	parts := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		parts = append(parts, fmt.Sprintf("%d (%v)", f.PokemonID, f.Err))
	}
	return "failed to sync pokemon: " + strings.Join(parts, ", ")
}

func (e *SyncError) Unwrap() error {
	for _, f := range e.Failures {
		if !errors.Is(f.Err, models.ErrNotFound) {
			return models.ErrUpstreamUnavailable
		}
	}
	return models.ErrNotFound
}

func (e *SyncError) FailedIDs() []int {
	ids := make([]int, 0, len(e.Failures))
	for _, f := range e.Failures {
		ids = append(ids, f.PokemonID)
	}
	return ids
}

// CatalogSync keeps the local cache populated from the remote catalog.
type CatalogSync struct {
	pokemon models.PokemonStore
	catalog Catalog
	log     zerolog.Logger
}

func NewCatalogSync(pokemon models.PokemonStore, catalog Catalog, log zerolog.Logger) *CatalogSync {
	return &CatalogSync{
		pokemon: pokemon,
		catalog: catalog,
		log:     log.With().Str("service", "catalog_sync").Logger(),
	}
}

// Ensure returns the cached record for id, fetching and persisting it first
// when it is missing.
func (s *CatalogSync) Ensure(ctx context.Context, id int) (models.Pokemon, error) {
	cached, err := s.pokemon.GetByID(ctx, id)
	if err == nil {
		return cached, nil
	}
	if !errors.Is(err, models.ErrNotFound) {
		return models.Pokemon{}, fmt.Errorf("failed to look up pokemon %d: %w", id, err)
	}

	row, err := s.fetch(ctx, id)
	if err != nil {
		return models.Pokemon{}, err
	}

	if err := s.pokemon.Save(ctx, &row); err != nil {
		s.log.Error().Err(err).Int("pokemon_id", id).Msg("failed to cache pokemon")
		return models.Pokemon{}, err
	}

	s.log.Info().Int("pokemon_id", row.ID).Str("name", row.Name).Msg("pokemon cached")
	return row, nil
}

// Resolve splits ids into rows already cached and rows fetched from the
// catalog. Fetched rows are not persisted. Every id that cannot be fetched
// is reported through a *SyncError.
func (s *CatalogSync) Resolve(ctx context.Context, ids []int) (cached, fetched []models.Pokemon, err error) {
	var failures []SyncFailure

	for _, id := range ids {
		row, err := s.pokemon.GetByID(ctx, id)
		if err == nil {
			cached = append(cached, row)
			continue
		}
		if !errors.Is(err, models.ErrNotFound) {
			return nil, nil, fmt.Errorf("failed to look up pokemon %d: %w", id, err)
		}

		row, err = s.fetch(ctx, id)
		if err != nil {
			failures = append(failures, SyncFailure{PokemonID: id, Err: err})
			continue
		}
		fetched = append(fetched, row)
	}

	if len(failures) > 0 {
		return cached, fetched, &SyncError{Failures: failures}
	}
	return cached, fetched, nil
}

func (s *CatalogSync) fetch(ctx context.Context, id int) (models.Pokemon, error) {
	detail, err := s.catalog.GetPokemon(ctx, strconv.Itoa(id))
	if err != nil {
		s.log.Warn().Err(err).Int("pokemon_id", id).Msg("failed to fetch pokemon from catalog")
		return models.Pokemon{}, err
	}
	return detail.ToModel(), nil
}
