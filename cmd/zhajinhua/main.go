package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"

	"github.com/cardforge/zhajinhua/internal/agent"
	"github.com/cardforge/zhajinhua/internal/arena"
	"github.com/cardforge/zhajinhua/internal/display"
	"github.com/cardforge/zhajinhua/internal/game"
)

type CLI struct {
	Players       int      `short:"p" help:"Number of seats at the table" default:"3"`
	Chips         int      `help:"Starting chips per seat" default:"300"`
	BaseBet       int      `help:"Starting per-seat ante and dark bet unit" default:"10"`
	MinRaise      int      `help:"Minimum raise increment" default:"10"`
	MaxRounds     int      `help:"Actions per hand before a forced showdown" default:"100"`
	Hands         int      `short:"n" help:"Stop after this many hands (0 plays to a single winner)" default:"0"`
	AnteInterval  int      `help:"Hands between ante escalations (0 disables)" default:"5"`
	AnteIncrement int      `help:"Chips added to the table ante each escalation" default:"20"`
	Seed          int64    `short:"s" help:"RNG seed (0 uses the clock)" default:"0"`
	Agents        []string `short:"a" help:"Per-seat strategies: fold, call, rand, llm" default:"rand"`
	LogLevel      string   `help:"Log level (debug, info, warn, error)" default:"info"`
	Quiet         bool     `short:"q" help:"Suppress the per-hand table rendering"`
}

func main() {
	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("zhajinhua"),
		kong.Description("Run a local zhajinhua tournament between scripted or LLM agents."))

	// Optional .env for LLM credentials.
	_ = godotenv.Load()

	level, err := log.ParseLevel(cli.LogLevel)
	if err != nil {
		log.Fatal("Invalid log level", "level", cli.LogLevel)
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Level:           level,
	})

	seed := cli.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	agents, err := buildAgents(cli, rng)
	if err != nil {
		log.Fatal("Failed to build agents", "error", err)
	}

	opts := arena.Options{
		Game: game.Config{
			NumPlayers:            cli.Players,
			InitialChips:          cli.Chips,
			BaseBet:               cli.BaseBet,
			MinRaise:              cli.MinRaise,
			CompareCostMultiplier: 2,
			AccuseCostMultiplier:  10,
			MaxRounds:             cli.MaxRounds,
		},
		MaxHands:      cli.Hands,
		AnteInterval:  cli.AnteInterval,
		AnteIncrement: cli.AnteIncrement,
	}
	if !cli.Quiet {
		opts.Events = game.SinkFunc(printEvent)
	}

	tournament, err := arena.New(rng, logger, opts, agents)
	if err != nil {
		log.Fatal("Failed to create tournament", "error", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	logger.Info("Tournament starting", "players", cli.Players, "chips", cli.Chips, "seed", seed)
	winner, err := tournament.Run(ctx)
	if err != nil {
		log.Fatal("Tournament failed", "error", err)
	}

	fmt.Println()
	chips := tournament.Chips()
	if winner != game.NoSeat {
		fmt.Println(display.WinnerStyle.Render(
			fmt.Sprintf("Seat %d wins the table with %d chips after %d hands",
				winner, chips[winner], tournament.HandsPlayed())))
	} else {
		fmt.Printf("Stopped after %d hands; stacks: %v\n", tournament.HandsPlayed(), chips)
	}
	kctx.Exit(0)
}

// buildAgents maps strategy names to seats. A single name applies to
// every seat.
func buildAgents(cli CLI, rng *rand.Rand) ([]agent.Agent, error) {
	names := cli.Agents
	if len(names) == 1 && cli.Players > 1 {
		expanded := make([]string, cli.Players)
		for i := range expanded {
			expanded[i] = names[0]
		}
		names = expanded
	}
	if len(names) != cli.Players {
		return nil, fmt.Errorf("%d strategies for %d seats", len(names), cli.Players)
	}

	agents := make([]agent.Agent, len(names))
	for i, name := range names {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "fold":
			agents[i] = agent.Folder{}
		case "call":
			agents[i] = agent.Caller{}
		case "rand":
			agents[i] = agent.NewRandom(rng.Int63())
		case "llm":
			llm, err := agent.NewLLM(agent.LLMConfig{})
			if err != nil {
				return nil, err
			}
			agents[i] = llm
		default:
			return nil, fmt.Errorf("unknown strategy %q", name)
		}
	}
	return agents, nil
}

// printEvent renders engine events to stdout as the tournament plays
func printEvent(e game.Event) {
	switch ev := e.(type) {
	case game.HandStartEvent:
		fmt.Println(display.HeaderStyle.Render(
			fmt.Sprintf(" New hand: %d players, pot %d, seat %d leads ", ev.Players, ev.Pot, ev.StartPlayer)))
	case game.ActionEvent:
		fmt.Println(display.RenderAction(ev.Action, ev.PotAfter))
	case game.CompareEvent:
		outcome := fmt.Sprintf("seat %d eliminated", ev.Loser)
		if ev.Loser == game.NoSeat {
			outcome = "nobody eliminated"
		}
		fmt.Printf("compare: seat %d vs seat %d, %s\n", ev.Attacker, ev.Defender, outcome)
	case game.HandEndEvent:
		if ev.Winner == game.NoSeat {
			fmt.Println("hand over: no survivor, pot forfeited")
		} else {
			fmt.Println(display.WinnerStyle.Render(
				fmt.Sprintf("hand over: seat %d takes %d", ev.Winner, ev.Pot)))
		}
	}
}
