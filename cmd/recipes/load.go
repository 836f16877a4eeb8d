package main

import (
	"os"

	"github.com/vango-dev/recipes/internal/config"
	"github.com/vango-dev/recipes/internal/errors"
)

// loadConfig reads path, or the nearest recipes.json when path is empty.
// Without a file the defaults are used. The environment is applied and the
// result validated.
func loadConfig(path string) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if path != "" {
		cfg, err = config.LoadFile(path)
	} else {
		cfg, err = config.LoadFromWorkingDir()
		if errors.CodeOf(err) == "E101" {
			cfg, err = config.New(), nil
		}
	}
	if err != nil {
		return nil, err
	}

	cfg.ApplyEnv(os.Getenv)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
