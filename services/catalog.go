package services

import (
	"context"

	"pokedex/pokeapi"
)

// Catalog is the read-only remote Pokémon catalog.
type Catalog interface {
	ListPokemon(ctx context.Context, limit, offset int) ([]pokeapi.NamedResource, error)
	GetPokemon(ctx context.Context, idOrName string) (*pokeapi.Pokemon, error)
	GetSpecies(ctx context.Context, idOrName string) (*pokeapi.Species, error)
	GetEvolutionChain(ctx context.Context, id int) (*pokeapi.EvolutionChain, error)
	ListByType(ctx context.Context, typeName string) ([]pokeapi.NamedResource, error)
}

var _ Catalog = (*pokeapi.Client)(nil)

// PokemonSummary is the list representation of a Pokémon.
type PokemonSummary struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image"`
}

func summaryOf(r pokeapi.NamedResource) PokemonSummary {
	id := r.ID()
	return PokemonSummary{ID: id, Name: r.Name, Image: pokeapi.ArtworkURL(id)}
}

func summariesOf(resources []pokeapi.NamedResource) []PokemonSummary {
	out := make([]PokemonSummary, 0, len(resources))
	for _, r := range resources {
		out = append(out, summaryOf(r))
	}
	return out
}
