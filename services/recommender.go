package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"pokedex/models"
	"pokedex/pokeapi"
)

const (
	candidateSampleSize = 8
	recommendationCount = 3
)

// Shuffler permutes n elements in place through swap.
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

// lockedRand makes a *rand.Rand safe to share between requests.
type lockedRand struct {
	mu sync.Mutex
	r  *rand.Rand
}

func (l *lockedRand) Shuffle(n int, swap func(i, j int)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.r.Shuffle(n, swap)
}

// NewRandomShuffler returns a goroutine-safe shuffler seeded with seed.
func NewRandomShuffler(seed uint64) Shuffler {
	return &lockedRand{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

type Recommendation struct {
	ID       int          `json:"id"`
	Name     string       `json:"name"`
	Image    string       `json:"image"`
	Stats    models.Stats `json:"stats"`
	Distance float64      `json:"distance"`
}

// Recommender suggests pokemon of the same primary type with the closest
// base stats.
type Recommender struct {
	catalog  Catalog
	shuffler Shuffler
	log      zerolog.Logger
}

// NewRecommender builds a Recommender. A nil shuffler gets a time-seeded one.
func NewRecommender(catalog Catalog, shuffler Shuffler, log zerolog.Logger) *Recommender {
	if shuffler == nil {
		shuffler = NewRandomShuffler(uint64(time.Now().UnixNano()))
	}
	return &Recommender{
		catalog:  catalog,
		shuffler: shuffler,
		log:      log.With().Str("service", "recommender").Logger(),
	}
}

// Recommend samples up to eight pokemon sharing the reference's primary type
// and returns the three nearest by Euclidean stat distance, nearest first.
func (r *Recommender) Recommend(ctx context.Context, pokemonID int) ([]Recommendation, error) {
	ref, err := r.catalog.GetPokemon(ctx, strconv.Itoa(pokemonID))
	if err != nil {
		return nil, err
	}

	types := ref.TypeNames()
	if len(types) == 0 {
		return []Recommendation{}, nil
	}

	pool, err := r.catalog.ListByType(ctx, types[0])
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(pool))
	for _, p := range pool {
		if p.Name != ref.Name {
			names = append(names, p.Name)
		}
	}
	sample := r.sample(names)

	candidates := make([]*pokeapi.Pokemon, len(sample))
	g, gctx := errgroup.WithContext(ctx)
	for i, name := range sample {
		g.Go(func() error {
			p, err := r.catalog.GetPokemon(gctx, name)
			if err != nil {
				if errors.Is(err, models.ErrNotFound) {
					return fmt.Errorf("%w: candidate %s disappeared: %v", models.ErrUpstreamUnavailable, name, err)
				}
				return err
			}
			candidates[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		r.log.Warn().Err(err).Int("pokemon_id", pokemonID).Msg("failed to fetch candidates")
		return nil, fmt.Errorf("failed to fetch candidates: %w", err)
	}

	refStats := ref.BaseStats()
	recs := make([]Recommendation, 0, len(candidates))
	for _, c := range candidates {
		stats := c.BaseStats()
		recs = append(recs, Recommendation{
			ID:       c.ID,
			Name:     c.Name,
			Image:    c.Image(),
			Stats:    stats,
			Distance: refStats.Distance(stats),
		})
	}

	sort.SliceStable(recs, func(i, j int) bool { return recs[i].Distance < recs[j].Distance })
	if len(recs) > recommendationCount {
		recs = recs[:recommendationCount]
	}

	return recs, nil
}

func (r *Recommender) sample(names []string) []string {
	r.shuffler.Shuffle(len(names), func(i, j int) { names[i], names[j] = names[j], names[i] })
	if len(names) > candidateSampleSize {
		names = names[:candidateSampleSize]
	}
	return names
}
