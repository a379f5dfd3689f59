package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"pokedex/middleware"
	"pokedex/models"
	"pokedex/services"
)

type TeamService interface {
	Create(ctx context.Context, name string, memberIDs []int, userID uuid.UUID) (models.Team, error)
	Find(ctx context.Context, teamID, userID uuid.UUID) (models.Team, error)
	List(ctx context.Context, userID uuid.UUID) ([]models.Team, error)
	Analyze(ctx context.Context, teamID, userID uuid.UUID) (services.Analysis, error)
}

type TeamHandler struct {
	teams TeamService
	log   zerolog.Logger
}

func NewTeamHandler(teams TeamService, log zerolog.Logger) *TeamHandler {
	return &TeamHandler{
		teams: teams,
		log:   log.With().Str("handler", "teams").Logger(),
	}
}

type createTeamRequest struct {
	Name     string `json:"name"`
	Pokemons []int  `json:"pokemons"`
}

func (req *createTeamRequest) validate() error {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return validationError("name is required")
	}
	if len(req.Pokemons) < models.MinTeamSize || len(req.Pokemons) > models.MaxTeamSize {
		return validationError("pokemons must contain between %d and %d ids", models.MinTeamSize, models.MaxTeamSize)
	}
	for _, id := range req.Pokemons {
		if id <= 0 {
			return validationError("pokemon ids must be positive integers")
		}
	}
	return nil
}

func (h *TeamHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	var req createTeamRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.log, err)
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, h.log, err)
		return
	}

	team, err := h.teams.Create(r.Context(), req.Name, req.Pokemons, user.ID)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, team)
}

func (h *TeamHandler) List(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	teams, err := h.teams.List(r.Context(), user.ID)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, teams)
}

func (h *TeamHandler) Find(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	teamID, err := uuidParam(r, "id")
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	team, err := h.teams.Find(r.Context(), teamID, user.ID)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, team)
}

func (h *TeamHandler) Analysis(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	teamID, err := uuidParam(r, "id")
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	analysis, err := h.teams.Analyze(r.Context(), teamID, user.ID)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, analysis)
}
