package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"pokedex/models"
)

const uniqueViolation = "23505"

var _ models.UserStore = (*UserRepository)(nil)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return models.ErrDuplicateEmail
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return models.User{}, notFound(err)
	}
	return user, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return models.User{}, notFound(err)
	}
	return user, nil
}

func (r *UserRepository) ListFavorites(ctx context.Context, userID uuid.UUID) ([]models.Pokemon, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Preload("Favorites", orderByPokemonID).
		Where("id = ?", userID).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return []models.Pokemon{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}

	if user.Favorites == nil {
		return []models.Pokemon{}, nil
	}
	return user.Favorites, nil
}

// ToggleFavorite locks the user row for the duration of the transaction so
// concurrent toggles by the same user are serialized.
func (r *UserRepository) ToggleFavorite(ctx context.Context, userID uuid.UUID, pokemonID int) (bool, error) {
	var favorite bool

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", userID).First(&user).Error; err != nil {
			return notFound(err)
		}

		var count int64
		if err := tx.Table("user_favorites").
			Where("user_id = ? AND pokemon_id = ?", userID, pokemonID).
			Count(&count).Error; err != nil {
			return err
		}

		if count > 0 {
			favorite = false
			return tx.Exec("DELETE FROM user_favorites WHERE user_id = ? AND pokemon_id = ?", userID, pokemonID).Error
		}

		favorite = true
		return tx.Exec("INSERT INTO user_favorites (user_id, pokemon_id) VALUES (?, ?)", userID, pokemonID).Error
	})
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return false, err
		}
		return false, fmt.Errorf("failed to toggle favorite: %w", err)
	}

	return favorite, nil
}

func orderByPokemonID(db *gorm.DB) *gorm.DB {
	return db.Order("pokemons.id ASC")
}
