// Package mocks holds testify mocks for the interfaces consumed by services
// and handlers.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"pokedex/pokeapi"
)

type Catalog struct {
	mock.Mock
}

func (m *Catalog) ListPokemon(ctx context.Context, limit, offset int) ([]pokeapi.NamedResource, error) {
	args := m.Called(ctx, limit, offset)
	list, _ := args.Get(0).([]pokeapi.NamedResource)
	return list, args.Error(1)
}

func (m *Catalog) GetPokemon(ctx context.Context, idOrName string) (*pokeapi.Pokemon, error) {
	args := m.Called(ctx, idOrName)
	p, _ := args.Get(0).(*pokeapi.Pokemon)
	return p, args.Error(1)
}

func (m *Catalog) GetSpecies(ctx context.Context, idOrName string) (*pokeapi.Species, error) {
	args := m.Called(ctx, idOrName)
	s, _ := args.Get(0).(*pokeapi.Species)
	return s, args.Error(1)
}

func (m *Catalog) GetEvolutionChain(ctx context.Context, id int) (*pokeapi.EvolutionChain, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*pokeapi.EvolutionChain)
	return c, args.Error(1)
}

func (m *Catalog) ListByType(ctx context.Context, typeName string) ([]pokeapi.NamedResource, error) {
	args := m.Called(ctx, typeName)
	list, _ := args.Get(0).([]pokeapi.NamedResource)
	return list, args.Error(1)
}
