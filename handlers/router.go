package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"github.com/rs/zerolog"

	"pokedex/middleware"
)

type RouterConfig struct {
	Auth          *AuthHandler
	Pokemon       *PokemonHandler
	Teams         *TeamHandler
	Authenticator middleware.Authenticator
	CORSOrigins   []string
	Log           zerolog.Logger
}

// NewRouter wires every route. Favorites and teams require a bearer token.
func NewRouter(cfg RouterConfig) http.Handler {
	router := chi.NewRouter()
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(middleware.RequestLogger(cfg.Log))
	router.Use(chimiddleware.Recoverer)

	router.Get("/health", Health)

	router.Post("/auth/register", cfg.Auth.Register)
	router.Post("/auth/login", cfg.Auth.Login)

	router.Route("/pokemon", func(r chi.Router) {
		r.Get("/", cfg.Pokemon.List)
		r.Get("/search/{term}", cfg.Pokemon.Search)
		r.Get("/type/{name}", cfg.Pokemon.FindByType)
		r.Get("/{term}", cfg.Pokemon.FindOne)
		r.Get("/{id}/recommendations", cfg.Pokemon.Recommendations)

		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthMiddleware(cfg.Authenticator))
			r.Post("/favorite/{id}", cfg.Pokemon.ToggleFavorite)
			r.Get("/favorites/all", cfg.Pokemon.Favorites)
		})
	})

	router.Route("/teams", func(r chi.Router) {
		r.Use(middleware.AuthMiddleware(cfg.Authenticator))
		r.Post("/", cfg.Teams.Create)
		r.Get("/", cfg.Teams.List)
		r.Get("/{id}", cfg.Teams.Find)
		r.Get("/{id}/analysis", cfg.Teams.Analysis)
	})

	return cors.New(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}).Handler(router)
}

func Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
