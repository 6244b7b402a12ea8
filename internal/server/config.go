package server

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// ServerConfig represents the complete server configuration
type ServerConfig struct {
	Server ServerSettings `hcl:"server,block"`
	Table  TableConfig    `hcl:"table,block"`
	Bots   []BotConfig    `hcl:"bot,block"`
}

// ServerSettings contains server-level configuration
type ServerSettings struct {
	Address            string `hcl:"address,optional"`
	Port               int    `hcl:"port,optional"`
	LogLevel           string `hcl:"log_level,optional"`
	DecisionTimeoutSec int    `hcl:"decision_timeout_seconds,optional"`
	VoteTimeoutSec     int    `hcl:"vote_timeout_seconds,optional"`
}

// TableConfig defines the tournament parameters
type TableConfig struct {
	Name          string `hcl:"name,label"`
	Players       int    `hcl:"players,optional"`
	InitialChips  int    `hcl:"initial_chips,optional"`
	BaseBet       int    `hcl:"base_bet,optional"`
	MinRaise      int    `hcl:"min_raise,optional"`
	MaxRounds     int    `hcl:"max_rounds,optional"`
	MaxHands      int    `hcl:"max_hands,optional"`
	AnteInterval  int    `hcl:"ante_interval,optional"`
	AnteIncrement int    `hcl:"ante_increment,optional"`
	Seed          int64  `hcl:"seed,optional"`
}

// BotConfig seats a built-in strategy instead of waiting for a remote
// client
type BotConfig struct {
	Name     string `hcl:"name,label"`
	Strategy string `hcl:"strategy"`
	Seat     int    `hcl:"seat,optional"`
}

// DefaultServerConfig returns default server configuration
func DefaultServerConfig() *ServerConfig {
	return &ServerConfig{
		Server: ServerSettings{
			Address:            "localhost",
			Port:               8080,
			LogLevel:           "info",
			DecisionTimeoutSec: 30,
			VoteTimeoutSec:     30,
		},
		Table: TableConfig{
			Name:          "main",
			Players:       3,
			InitialChips:  300,
			BaseBet:       10,
			MinRaise:      10,
			MaxRounds:     100,
			AnteInterval:  5,
			AnteIncrement: 20,
		},
	}
}

// LoadServerConfig loads server configuration from an HCL file. A missing
// file yields the defaults.
func LoadServerConfig(filename string) (*ServerConfig, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultServerConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config ServerConfig
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	defaults := DefaultServerConfig()
	if config.Server.Address == "" {
		config.Server.Address = defaults.Server.Address
	}
	if config.Server.Port == 0 {
		config.Server.Port = defaults.Server.Port
	}
	if config.Server.LogLevel == "" {
		config.Server.LogLevel = defaults.Server.LogLevel
	}
	if config.Server.DecisionTimeoutSec == 0 {
		config.Server.DecisionTimeoutSec = defaults.Server.DecisionTimeoutSec
	}
	if config.Server.VoteTimeoutSec == 0 {
		config.Server.VoteTimeoutSec = defaults.Server.VoteTimeoutSec
	}

	if config.Table.Players == 0 {
		config.Table.Players = defaults.Table.Players
	}
	if config.Table.InitialChips == 0 {
		config.Table.InitialChips = defaults.Table.InitialChips
	}
	if config.Table.BaseBet == 0 {
		config.Table.BaseBet = defaults.Table.BaseBet
	}
	if config.Table.MinRaise == 0 {
		config.Table.MinRaise = defaults.Table.MinRaise
	}
	if config.Table.MaxRounds == 0 {
		config.Table.MaxRounds = defaults.Table.MaxRounds
	}

	// An omitted seat defaults to the bot's declaration index, so seat 0
	// on a later bot reads as omitted. Collisions are caught by Validate.
	for i := range config.Bots {
		if config.Bots[i].Seat == 0 && i > 0 {
			config.Bots[i].Seat = i
		}
	}

	return &config, nil
}

// Validate validates the server configuration
func (c *ServerConfig) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}
	if c.Table.Players < 2 || c.Table.Players > 17 {
		return fmt.Errorf("table %s: players must be between 2 and 17", c.Table.Name)
	}
	if c.Table.InitialChips <= 0 {
		return fmt.Errorf("table %s: initial chips must be positive", c.Table.Name)
	}
	if c.Table.BaseBet <= 0 {
		return fmt.Errorf("table %s: base bet must be positive", c.Table.Name)
	}
	if len(c.Bots) > c.Table.Players {
		return fmt.Errorf("table %s: %d bots for %d seats", c.Table.Name, len(c.Bots), c.Table.Players)
	}

	validStrategies := map[string]bool{
		"fold": true,
		"call": true,
		"rand": true,
		"llm":  true,
	}
	seats := make(map[int]string)
	for _, bot := range c.Bots {
		if !validStrategies[bot.Strategy] {
			return fmt.Errorf("bot %s: invalid strategy %s", bot.Name, bot.Strategy)
		}
		if bot.Seat < 0 || bot.Seat >= c.Table.Players {
			return fmt.Errorf("bot %s: seat %d out of range", bot.Name, bot.Seat)
		}
		if other, ok := seats[bot.Seat]; ok {
			return fmt.Errorf("bot %s: seat %d already taken by %s", bot.Name, bot.Seat, other)
		}
		seats[bot.Seat] = bot.Name
	}
	return nil
}

// GetServerAddress returns the full listen address
func (c *ServerConfig) GetServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Address, c.Server.Port)
}

// RemoteSeats returns the seats not claimed by configured bots, in order
func (c *ServerConfig) RemoteSeats() []int {
	taken := make(map[int]bool)
	for _, bot := range c.Bots {
		taken[bot.Seat] = true
	}
	var seats []int
	for i := 0; i < c.Table.Players; i++ {
		if !taken[i] {
			seats = append(seats, i)
		}
	}
	return seats
}
