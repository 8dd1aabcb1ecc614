package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// New reads configuration from environment variables (loading a .env file
// from the working directory first, if one exists) and unmarshals them into a
// struct of type T. Variables already set in the environment win over the file.
func New[T any]() (T, error) {
	var cfg T
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return cfg, fmt.Errorf("load .env: %w", err)
	}

	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}

	return cfg, nil
}
