package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"pokedex/models"
)

// TokenIssuer signs and verifies bearer tokens carrying a user id.
type TokenIssuer interface {
	Generate(userID uuid.UUID) (string, error)
	Parse(token string) (uuid.UUID, error)
}

type Session struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Name  string    `json:"name"`
	Token string    `json:"token"`
}

type Auth struct {
	users      models.UserStore
	tokens     TokenIssuer
	bcryptCost int
	log        zerolog.Logger
}

func NewAuth(users models.UserStore, tokens TokenIssuer, log zerolog.Logger) *Auth {
	return &Auth{
		users:      users,
		tokens:     tokens,
		bcryptCost: bcrypt.DefaultCost,
		log:        log.With().Str("service", "auth").Logger(),
	}
}

func (a *Auth) Register(ctx context.Context, email, password, name string) (Session, error) {
	email = normalizeEmail(email)

	hash, err := bcrypt.GenerateFromPassword([]byte(password), a.bcryptCost)
	if err != nil {
		return Session{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		Email:        email,
		Name:         strings.TrimSpace(name),
		PasswordHash: string(hash),
		IsActive:     true,
	}
	if err := a.users.Create(ctx, &user); err != nil {
		if errors.Is(err, models.ErrDuplicateEmail) {
			a.log.Info().Msg("registration rejected, email taken")
			return Session{}, err
		}
		a.log.Error().Err(err).Msg("failed to create user")
		return Session{}, err
	}

	a.log.Info().Str("user_id", user.ID.String()).Msg("user registered")
	return a.session(user)
}

// Login checks credentials. Every failure is reported as ErrUnauthorized so
// callers cannot tell unknown emails from wrong passwords.
func (a *Auth) Login(ctx context.Context, email, password string) (Session, error) {
	user, err := a.users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return Session{}, fmt.Errorf("%w: invalid credentials", models.ErrUnauthorized)
		}
		return Session{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return Session{}, fmt.Errorf("%w: invalid credentials", models.ErrUnauthorized)
	}
	if !user.IsActive {
		return Session{}, fmt.Errorf("%w: user is inactive", models.ErrUnauthorized)
	}

	return a.session(user)
}

// Authenticate resolves a bearer token to an active user.
func (a *Auth) Authenticate(ctx context.Context, token string) (models.User, error) {
	userID, err := a.tokens.Parse(token)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %v", models.ErrUnauthorized, err)
	}

	user, err := a.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return models.User{}, fmt.Errorf("%w: token is not valid", models.ErrUnauthorized)
		}
		return models.User{}, err
	}
	if !user.IsActive {
		return models.User{}, fmt.Errorf("%w: user is inactive", models.ErrUnauthorized)
	}

	return user, nil
}

func (a *Auth) session(user models.User) (Session, error) {
	token, err := a.tokens.Generate(user.ID)
	if err != nil {
		return Session{}, fmt.Errorf("failed to generate token: %w", err)
	}
	return Session{ID: user.ID, Email: user.Email, Name: user.Name, Token: token}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
