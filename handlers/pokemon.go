package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"pokedex/middleware"
	"pokedex/services"
)

type PokedexService interface {
	List(ctx context.Context, limit, offset int) ([]services.PokemonSummary, error)
	Search(ctx context.Context, term string) ([]services.PokemonSummary, error)
	FindByType(ctx context.Context, typeName string) ([]services.PokemonSummary, error)
	FindOne(ctx context.Context, term string) (services.PokemonDetail, error)
}

type RecommendService interface {
	Recommend(ctx context.Context, pokemonID int) ([]services.Recommendation, error)
}

type FavoritesService interface {
	Toggle(ctx context.Context, pokemonID int, userID uuid.UUID) (services.ToggleResult, error)
	List(ctx context.Context, userID uuid.UUID) ([]services.PokemonSummary, error)
}

type PokemonHandler struct {
	pokedex     PokedexService
	recommender RecommendService
	favorites   FavoritesService
	log         zerolog.Logger
}

func NewPokemonHandler(pokedex PokedexService, recommender RecommendService, favorites FavoritesService, log zerolog.Logger) *PokemonHandler {
	return &PokemonHandler{
		pokedex:     pokedex,
		recommender: recommender,
		favorites:   favorites,
		log:         log.With().Str("handler", "pokemon").Logger(),
	}
}

func (h *PokemonHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit")
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	offset, err := queryInt(r, "offset")
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	list, err := h.pokedex.List(r.Context(), limit, offset)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *PokemonHandler) Search(w http.ResponseWriter, r *http.Request) {
	list, err := h.pokedex.Search(r.Context(), chi.URLParam(r, "term"))
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *PokemonHandler) FindByType(w http.ResponseWriter, r *http.Request) {
	list, err := h.pokedex.FindByType(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *PokemonHandler) FindOne(w http.ResponseWriter, r *http.Request) {
	detail, err := h.pokedex.FindOne(r.Context(), chi.URLParam(r, "term"))
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

func (h *PokemonHandler) Recommendations(w http.ResponseWriter, r *http.Request) {
	id, err := pokemonIDParam(r, "id")
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	recs, err := h.recommender.Recommend(r.Context(), id)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, recs)
}

func (h *PokemonHandler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	id, err := pokemonIDParam(r, "id")
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	result, err := h.favorites.Toggle(r.Context(), id, user.ID)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *PokemonHandler) Favorites(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	list, err := h.favorites.List(r.Context(), user.ID)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// queryInt returns 0 when the parameter is absent.
func queryInt(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, validationError("%s must be an integer", name)
	}
	return n, nil
}
