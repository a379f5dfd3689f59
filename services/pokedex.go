package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"pokedex/models"
	"pokedex/pokeapi"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100

	searchIndexSize   = 10000
	searchResultLimit = 20
)

// Descriptions are only kept for these languages.
var descriptionLanguages = map[string]bool{"es": true, "en": true, "de": true}

var flavorTextCleaner = strings.NewReplacer("\n", " ", "\f", " ")

type NamedStat struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

type PokemonDetail struct {
	ID           int               `json:"id"`
	Name         string            `json:"name"`
	Image        string            `json:"image"`
	Types        []string          `json:"types"`
	Cry          string            `json:"cry"`
	Stats        []NamedStat       `json:"stats"`
	Descriptions map[string]string `json:"descriptions"`
	Evolutions   []PokemonSummary  `json:"evolutions"`
}

// Pokedex proxies catalog browsing.
type Pokedex struct {
	catalog Catalog
	log     zerolog.Logger
}

func NewPokedex(catalog Catalog, log zerolog.Logger) *Pokedex {
	return &Pokedex{
		catalog: catalog,
		log:     log.With().Str("service", "pokedex").Logger(),
	}
}

// List returns a page of the catalog. Out of range limits fall back to the
// default page size or are capped.
func (p *Pokedex) List(ctx context.Context, limit, offset int) ([]PokemonSummary, error) {
	if limit <= 0 {
		limit = DefaultPageSize
	}
	limit = min(limit, MaxPageSize)
	offset = max(offset, 0)

	page, err := p.catalog.ListPokemon(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	return summariesOf(page), nil
}

// Search matches term as a case-insensitive substring of every catalog name
// and returns the first matches.
func (p *Pokedex) Search(ctx context.Context, term string) ([]PokemonSummary, error) {
	term = strings.ToLower(strings.TrimSpace(term))

	index, err := p.catalog.ListPokemon(ctx, searchIndexSize, 0)
	if err != nil {
		return nil, err
	}

	out := []PokemonSummary{}
	for _, r := range index {
		if !strings.Contains(r.Name, term) {
			continue
		}
		out = append(out, summaryOf(r))
		if len(out) == searchResultLimit {
			break
		}
	}
	return out, nil
}

func (p *Pokedex) FindByType(ctx context.Context, typeName string) ([]PokemonSummary, error) {
	list, err := p.catalog.ListByType(ctx, typeName)
	if err != nil {
		return nil, err
	}
	return summariesOf(list), nil
}

// FindOne returns the full detail of a pokemon by id or name, including
// localized descriptions and its evolution line.
func (p *Pokedex) FindOne(ctx context.Context, term string) (PokemonDetail, error) {
	var (
		pokemon *pokeapi.Pokemon
		species *pokeapi.Species
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		pokemon, err = p.catalog.GetPokemon(gctx, term)
		return err
	})
	g.Go(func() error {
		var err error
		species, err = p.catalog.GetSpecies(gctx, term)
		return err
	})
	if err := g.Wait(); err != nil {
		return PokemonDetail{}, err
	}

	var evolutions []PokemonSummary
	if chainID := species.EvolutionChainID(); chainID > 0 {
		chain, err := p.catalog.GetEvolutionChain(ctx, chainID)
		if err != nil {
			return PokemonDetail{}, err
		}
		evolutions = summariesOf(chain.FirstBranch())
	}
	if evolutions == nil {
		evolutions = []PokemonSummary{}
	}

	base := pokemon.BaseStats()
	stats := make([]NamedStat, 0, len(models.StatNames))
	for _, name := range models.StatNames {
		stats = append(stats, NamedStat{Name: name, Value: base.Get(name)})
	}

	return PokemonDetail{
		ID:           pokemon.ID,
		Name:         pokemon.Name,
		Image:        pokeapi.ArtworkURL(pokemon.ID),
		Types:        pokemon.TypeNames(),
		Cry:          pokemon.Cries.Latest,
		Stats:        stats,
		Descriptions: descriptionsOf(species),
		Evolutions:   evolutions,
	}, nil
}

// descriptionsOf keeps the last flavor text per supported language.
func descriptionsOf(species *pokeapi.Species) map[string]string {
	out := map[string]string{}
	for _, entry := range species.FlavorTextEntries {
		lang := entry.Language.Name
		if descriptionLanguages[lang] {
			out[lang] = flavorTextCleaner.Replace(entry.FlavorText)
		}
	}
	return out
}
