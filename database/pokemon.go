package database

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"pokedex/models"
)

var _ models.PokemonStore = (*PokemonRepository)(nil)

type PokemonRepository struct {
	db *gorm.DB
}

func NewPokemonRepository(db *gorm.DB) *PokemonRepository {
	return &PokemonRepository{db: db}
}

func (r *PokemonRepository) GetByID(ctx context.Context, id int) (models.Pokemon, error) {
	var pokemon models.Pokemon
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&pokemon).Error; err != nil {
		return models.Pokemon{}, notFound(err)
	}
	return pokemon, nil
}

// Save never overwrites an existing row; cached records are immutable.
func (r *PokemonRepository) Save(ctx context.Context, pokemon *models.Pokemon) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(pokemon).Error
	if err != nil {
		return fmt.Errorf("failed to save pokemon %d: %w", pokemon.ID, err)
	}
	return nil
}
