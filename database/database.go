package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"pokedex/models"
)

const (
	DemoEmail    = "ash@pokedex.dev"
	DemoName     = "Ash"
	demoPassword = "pikachu123"
)

// Open connects to postgres and migrates the schema.
func Open(dsn string, log zerolog.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: NewGormLogger(log),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.User{}, &models.Pokemon{}, &models.Team{}); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

// Seed creates the demo user if it does not exist yet. It reports whether a
// user was created.
func Seed(ctx context.Context, db *gorm.DB, log zerolog.Logger) (bool, error) {
	var count int64
	if err := db.WithContext(ctx).Model(&models.User{}).Where("email = ?", DemoEmail).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to look up demo user: %w", err)
	}
	if count > 0 {
		return false, nil
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		return false, err
	}

	user := models.User{
		Email:        DemoEmail,
		Name:         DemoName,
		PasswordHash: string(hashedPassword),
		IsActive:     true,
	}
	if err := db.WithContext(ctx).Create(&user).Error; err != nil {
		return false, fmt.Errorf("failed to create demo user: %w", err)
	}

	log.Info().Str("email", DemoEmail).Msg("demo user created")
	return true, nil
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.ErrNotFound
	}
	return err
}
