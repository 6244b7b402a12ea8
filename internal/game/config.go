package game

import "fmt"

// Config holds the immutable per-hand parameters
type Config struct {
	NumPlayers            int
	InitialChips          int
	BaseBet               int
	MinRaise              int
	CompareCostMultiplier int
	AccuseCostMultiplier  int
	MaxRounds             int

	// BaseBetDistribution optionally replaces the uniform ante with an
	// explicit per-seat distribution, used when short stacks split the
	// table ante unevenly. Must be NumPlayers long when set.
	BaseBetDistribution []int
}

// DefaultConfig returns the standard three-seat game parameters
func DefaultConfig() Config {
	return Config{
		NumPlayers:            3,
		InitialChips:          300,
		BaseBet:               10,
		MinRaise:              10,
		CompareCostMultiplier: 2,
		AccuseCostMultiplier:  10,
		MaxRounds:             100,
	}
}

// Validate checks the configuration for consistency
func (c Config) Validate() error {
	if c.NumPlayers < 2 {
		return fmt.Errorf("at least 2 players required, got %d", c.NumPlayers)
	}
	if c.NumPlayers > 17 {
		// 52 cards deal at most 17 three-card hands
		return fmt.Errorf("at most 17 players fit one deck, got %d", c.NumPlayers)
	}
	if c.BaseBet <= 0 {
		return fmt.Errorf("base bet must be positive, got %d", c.BaseBet)
	}
	if c.MinRaise <= 0 {
		return fmt.Errorf("min raise must be positive, got %d", c.MinRaise)
	}
	if c.CompareCostMultiplier <= 0 {
		return fmt.Errorf("compare cost multiplier must be positive, got %d", c.CompareCostMultiplier)
	}
	if c.AccuseCostMultiplier <= 0 {
		return fmt.Errorf("accuse cost multiplier must be positive, got %d", c.AccuseCostMultiplier)
	}
	if c.MaxRounds <= 0 {
		return fmt.Errorf("max rounds must be positive, got %d", c.MaxRounds)
	}
	if c.BaseBetDistribution != nil && len(c.BaseBetDistribution) != c.NumPlayers {
		return fmt.Errorf("base bet distribution length %d does not match %d players",
			len(c.BaseBetDistribution), c.NumPlayers)
	}
	return nil
}
