package config

import (
	"errors"
	"fmt"
	"os"

	"fish-toolbox/internal/belief"
	"fish-toolbox/internal/card"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned when the table described by a config cannot be dealt.
var ErrInvalidConfig = errors.New("invalid game configuration")

// GameConfig holds the table shape and run options for a game of Fish.
type GameConfig struct {
	Players      int  `yaml:"players"`
	Teams        int  `yaml:"teams"`
	Cards        int  `yaml:"cards"`
	Humans       int  `yaml:"humans"`
	MaxTurns     int  `yaml:"max_turns"`
	AssertSanity bool `yaml:"assert_sanity"`
	UseColor     bool `yaml:"use_color"`
}

// Default returns the reference deal: six players, two teams, the full deck.
func Default() *GameConfig {
	return &GameConfig{
		Players:      6,
		Teams:        2,
		Cards:        card.StandardDeckSize,
		Humans:       1,
		MaxTurns:     500,
		AssertSanity: false,
		UseColor:     true,
	}
}

// Load reads and validates the game configuration from a YAML file. Keys
// missing from the file keep their Default values.
func Load(path string) (*GameConfig, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the deck splits into whole books and whole hands.
func (c *GameConfig) Validate() error {
	if err := c.Params().Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	switch {
	case c.Teams < 2:
		return fmt.Errorf("%w: need at least two teams", ErrInvalidConfig)
	case c.Cards%card.BookSize != 0:
		return fmt.Errorf("%w: %d cards do not form whole books of %d", ErrInvalidConfig, c.Cards, card.BookSize)
	case c.Humans < 0 || c.Humans > c.Players:
		return fmt.Errorf("%w: %d humans at a table of %d", ErrInvalidConfig, c.Humans, c.Players)
	case c.MaxTurns < 1:
		return fmt.Errorf("%w: max_turns must be positive", ErrInvalidConfig)
	}
	return nil
}

// Params converts the table shape for the belief engine.
func (c *GameConfig) Params() belief.Params {
	return belief.Params{Players: c.Players, Teams: c.Teams, Cards: c.Cards}
}

// Books returns every book in play.
func (c *GameConfig) Books() []card.Book {
	return card.Books(c.Cards)
}

// Copy returns an independent copy of the configuration.
func (c *GameConfig) Copy() *GameConfig {
	cp := *c
	return &cp
}
