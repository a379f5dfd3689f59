package pokeapi

import (
	"fmt"
	"strconv"
	"strings"

	"pokedex/models"
)

const artworkURLFormat = "https://raw.githubusercontent.com/PokeAPI/sprites/master/sprites/pokemon/other/official-artwork/%d.png"

// ArtworkURL returns the official artwork image for a catalog id.
func ArtworkURL(id int) string {
	return fmt.Sprintf(artworkURLFormat, id)
}

type NamedResource struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// ID extracts the trailing numeric id from the resource URL, e.g.
// https://pokeapi.co/api/v2/pokemon/25/ -> 25. Returns 0 when absent.
func (r NamedResource) ID() int {
	return idFromURL(r.URL)
}

func idFromURL(url string) int {
	segments := strings.Split(strings.TrimRight(url, "/"), "/")
	id, err := strconv.Atoi(segments[len(segments)-1])
	if err != nil {
		return 0
	}
	return id
}

type Page struct {
	Count    int             `json:"count"`
	Next     *string         `json:"next"`
	Previous *string         `json:"previous"`
	Results  []NamedResource `json:"results"`
}

type Pokemon struct {
	ID      int           `json:"id"`
	Name    string        `json:"name"`
	Sprites Sprites       `json:"sprites"`
	Types   []TypeSlot    `json:"types"`
	Stats   []StatEntry   `json:"stats"`
	Cries   Cries         `json:"cries"`
	Species NamedResource `json:"species"`
}

type Sprites struct {
	FrontDefault string `json:"front_default"`
	Other        struct {
		OfficialArtwork struct {
			FrontDefault string `json:"front_default"`
		} `json:"official-artwork"`
	} `json:"other"`
}

type TypeSlot struct {
	Slot int           `json:"slot"`
	Type NamedResource `json:"type"`
}

type StatEntry struct {
	BaseStat int           `json:"base_stat"`
	Stat     NamedResource `json:"stat"`
}

type Cries struct {
	Latest string `json:"latest"`
	Legacy string `json:"legacy"`
}

// TypeNames returns the type names in slot order.
func (p *Pokemon) TypeNames() []string {
	names := make([]string, 0, len(p.Types))
	for _, t := range p.Types {
		names = append(names, t.Type.Name)
	}
	return names
}

// BaseStats maps the stat list onto named stats by stat name, so the
// position of an entry in the response does not matter.
func (p *Pokemon) BaseStats() models.Stats {
	var s models.Stats
	for _, e := range p.Stats {
		s.Set(e.Stat.Name, e.BaseStat)
	}
	return s
}

// Image prefers the official artwork and falls back to the default sprite.
func (p *Pokemon) Image() string {
	if art := p.Sprites.Other.OfficialArtwork.FrontDefault; art != "" {
		return art
	}
	if p.Sprites.FrontDefault != "" {
		return p.Sprites.FrontDefault
	}
	return ArtworkURL(p.ID)
}

// ToModel converts catalog detail into a cache row.
func (p *Pokemon) ToModel() models.Pokemon {
	return models.Pokemon{
		ID:    p.ID,
		Name:  p.Name,
		Image: p.Image(),
		Types: p.TypeNames(),
		Stats: p.BaseStats(),
	}
}

type Species struct {
	ID                int          `json:"id"`
	Name              string       `json:"name"`
	EvolutionChain    ResourceLink `json:"evolution_chain"`
	FlavorTextEntries []FlavorText `json:"flavor_text_entries"`
}

type ResourceLink struct {
	URL string `json:"url"`
}

// EvolutionChainID returns the id of the species' evolution chain, or 0.
func (s *Species) EvolutionChainID() int {
	return idFromURL(s.EvolutionChain.URL)
}

type FlavorText struct {
	FlavorText string        `json:"flavor_text"`
	Language   NamedResource `json:"language"`
}

type EvolutionChain struct {
	ID    int       `json:"id"`
	Chain ChainLink `json:"chain"`
}

type ChainLink struct {
	Species   NamedResource `json:"species"`
	EvolvesTo []ChainLink   `json:"evolves_to"`
}

// FirstBranch flattens the chain by always following the first evolution.
// Branching families such as eevee only show one line.
func (c *EvolutionChain) FirstBranch() []NamedResource {
	var out []NamedResource
	link := &c.Chain
	for link != nil {
		out = append(out, link.Species)
		if len(link.EvolvesTo) == 0 {
			break
		}
		link = &link.EvolvesTo[0]
	}
	return out
}

type Type struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Pokemon []struct {
		Slot    int           `json:"slot"`
		Pokemon NamedResource `json:"pokemon"`
	} `json:"pokemon"`
}
