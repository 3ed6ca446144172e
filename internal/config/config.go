// Package config loads CLI defaults from the environment. Flags override
// anything set here.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds the match-runner settings sourced from CONVEYOR_* variables.
type Config struct {
	Games   int    `env:"CONVEYOR_GAMES" envDefault:"1"`
	Seed    uint64 `env:"CONVEYOR_SEED" envDefault:"1"`
	Depth   int    `env:"CONVEYOR_DEPTH" envDefault:"2"`
	Horizon int    `env:"CONVEYOR_HORIZON" envDefault:"10"`
	Pool    string `env:"CONVEYOR_POOL"`
	P0      string `env:"CONVEYOR_P0" envDefault:"greedy"`
	P1      string `env:"CONVEYOR_P1" envDefault:"lookahead"`
	Verbose bool   `env:"CONVEYOR_VERBOSE" envDefault:"false"`
}

// Load parses the environment into a Config.
func Load() (Config, error) {
	var c Config
	if err := env.Parse(&c); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return c, nil
}
