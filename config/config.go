package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Log      Log      `envPrefix:"LOG_"`
	HTTP     HTTP     `envPrefix:"HTTP_"`
	Database Database `envPrefix:"DATABASE_"`
	JWT      JWT      `envPrefix:"JWT_"`
	PokeAPI  PokeAPI  `envPrefix:"POKEAPI_"`
}

type Log struct {
	Level  string `env:"LEVEL" envDefault:"info"`
	Pretty bool   `env:"PRETTY" envDefault:"false"`
}

type HTTP struct {
	Port         string        `env:"PORT" envDefault:"3000"`
	ReadTimeout  time.Duration `env:"READ_TIMEOUT" envDefault:"15s"`
	WriteTimeout time.Duration `env:"WRITE_TIMEOUT" envDefault:"60s"`
	CORSOrigins  []string      `env:"CORS_ORIGINS" envDefault:"*" envSeparator:","`
}

type Database struct {
	DSN string `env:"DSN" envDefault:"postgresql://postgres@localhost:5432/pokedex?sslmode=disable"`
}

type JWT struct {
	Secret string        `env:"SECRET" envDefault:"change-me-in-production"`
	TTL    time.Duration `env:"TTL" envDefault:"2h"`
}

type PokeAPI struct {
	BaseURL       string        `env:"BASE_URL" envDefault:"https://pokeapi.co/api/v2"`
	Timeout       time.Duration `env:"TIMEOUT" envDefault:"10s"`
	RatePerSecond float64       `env:"RATE_PER_SECOND" envDefault:"20"`
	UserAgent     string        `env:"USER_AGENT" envDefault:"pokedex-backend/1.0"`
}

// Load reads an optional .env file and then the process environment.
// Variables already present in the environment win over the file.
func Load(files ...string) (*Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load env file: %w", err)
	}

	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &cfg, nil
}
