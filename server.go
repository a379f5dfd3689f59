package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"pokedex/config"
	"pokedex/database"
	"pokedex/handlers"
	"pokedex/middleware"
	"pokedex/pokeapi"
	"pokedex/services"
)

const shutdownTimeout = 10 * time.Second

var _ services.TokenIssuer = (*middleware.TokenManager)(nil)

func runServer(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	db, err := database.Open(cfg.Database.DSN, log)
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql handle: %w", err)
	}
	defer sqlDB.Close()

	users := database.NewUserRepository(db)
	pokemon := database.NewPokemonRepository(db)
	teams := database.NewTeamRepository(db)

	catalog := pokeapi.NewClient(
		pokeapi.WithBaseURL(cfg.PokeAPI.BaseURL),
		pokeapi.WithTimeout(cfg.PokeAPI.Timeout),
		pokeapi.WithRateLimit(cfg.PokeAPI.RatePerSecond),
		pokeapi.WithUserAgent(cfg.PokeAPI.UserAgent),
	)

	tokens := middleware.NewTokenManager(cfg.JWT.Secret, cfg.JWT.TTL, clockwork.NewRealClock())
	sync := services.NewCatalogSync(pokemon, catalog, log)
	auth := services.NewAuth(users, tokens, log)

	router := handlers.NewRouter(handlers.RouterConfig{
		Auth: handlers.NewAuthHandler(auth, log),
		Pokemon: handlers.NewPokemonHandler(
			services.NewPokedex(catalog, log),
			services.NewRecommender(catalog, nil, log),
			services.NewFavorites(users, sync, log),
			log,
		),
		Teams:         handlers.NewTeamHandler(services.NewTeams(teams, sync, log), log),
		Authenticator: auth,
		CORSOrigins:   cfg.HTTP.CORSOrigins,
		Log:           log,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.HTTP.Port,
		Handler:      router,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down: %w", err)
	}
	return nil
}
