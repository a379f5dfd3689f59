package database

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"pokedex/models"
)

var _ models.TeamStore = (*TeamRepository)(nil)

type TeamRepository struct {
	db *gorm.DB
}

func NewTeamRepository(db *gorm.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) Create(ctx context.Context, team *models.Team, fetched []models.Pokemon) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(fetched) > 0 {
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&fetched).Error; err != nil {
				return fmt.Errorf("failed to cache pokemon: %w", err)
			}
		}

		// Members only need their join rows; the pokemon rows exist by now.
		return tx.Omit("Members.*").Create(team).Error
	})
	if err != nil {
		return fmt.Errorf("failed to create team: %w", err)
	}
	return nil
}

func (r *TeamRepository) GetByID(ctx context.Context, teamID, userID uuid.UUID) (models.Team, error) {
	var team models.Team
	err := r.db.WithContext(ctx).
		Preload("Members", orderByPokemonID).
		Where("id = ? AND user_id = ?", teamID, userID).
		First(&team).Error
	if err != nil {
		return models.Team{}, notFound(err)
	}
	return team, nil
}

func (r *TeamRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Team, error) {
	var teams []models.Team
	err := r.db.WithContext(ctx).
		Preload("Members", orderByPokemonID).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&teams).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	return teams, nil
}
