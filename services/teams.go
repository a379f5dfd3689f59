package services

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"pokedex/models"
)

// Teams builds, loads and analyzes user teams.
type Teams struct {
	teams models.TeamStore
	sync  *CatalogSync
	log   zerolog.Logger
}

func NewTeams(teams models.TeamStore, sync *CatalogSync, log zerolog.Logger) *Teams {
	return &Teams{
		teams: teams,
		sync:  sync,
		log:   log.With().Str("service", "teams").Logger(),
	}
}

// Create syncs every member into the cache and persists the team. If any
// member cannot be synced nothing is written and the *SyncError names the
// failed ids.
func (t *Teams) Create(ctx context.Context, name string, memberIDs []int, userID uuid.UUID) (models.Team, error) {
	ids := uniqueIDs(memberIDs)
	if len(ids) < models.MinTeamSize || len(ids) > models.MaxTeamSize {
		return models.Team{}, fmt.Errorf("%w: a team needs between %d and %d pokemon",
			models.ErrValidation, models.MinTeamSize, models.MaxTeamSize)
	}

	cached, fetched, err := t.sync.Resolve(ctx, ids)
	if err != nil {
		var syncErr *SyncError
		if errors.As(err, &syncErr) {
			t.log.Warn().
				Str("user_id", userID.String()).
				Ints("failed_ids", syncErr.FailedIDs()).
				Msg("team not created, members failed to sync")
		}
		return models.Team{}, err
	}

	members := make([]models.Pokemon, 0, len(cached)+len(fetched))
	members = append(members, cached...)
	members = append(members, fetched...)
	sort.Slice(members, func(i, j int) bool { return members[i].ID < members[j].ID })
	sort.Slice(fetched, func(i, j int) bool { return fetched[i].ID < fetched[j].ID })

	team := models.Team{
		Name:    name,
		UserID:  userID,
		Members: members,
	}
	if err := t.teams.Create(ctx, &team, fetched); err != nil {
		t.log.Error().Err(err).Str("user_id", userID.String()).Msg("failed to persist team")
		return models.Team{}, err
	}

	t.log.Info().
		Str("team_id", team.ID.String()).
		Str("user_id", userID.String()).
		Int("members", len(members)).
		Int("newly_cached", len(fetched)).
		Msg("team created")

	return team, nil
}

func (t *Teams) Find(ctx context.Context, teamID, userID uuid.UUID) (models.Team, error) {
	return t.teams.GetByID(ctx, teamID, userID)
}

func (t *Teams) List(ctx context.Context, userID uuid.UUID) ([]models.Team, error) {
	teams, err := t.teams.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if teams == nil {
		teams = []models.Team{}
	}
	return teams, nil
}

func (t *Teams) Analyze(ctx context.Context, teamID, userID uuid.UUID) (Analysis, error) {
	team, err := t.teams.GetByID(ctx, teamID, userID)
	if err != nil {
		return Analysis{}, err
	}
	return Analyze(team), nil
}

func uniqueIDs(ids []int) []int {
	seen := make(map[int]struct{}, len(ids))
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
