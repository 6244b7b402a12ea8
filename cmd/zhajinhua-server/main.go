package main

import (
	"context"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"

	"github.com/cardforge/zhajinhua/internal/server"
)

type CLI struct {
	Config   string `short:"c" help:"Path to the HCL server configuration" default:"zhajinhua.hcl"`
	Addr     string `help:"Override the configured listen address"`
	Port     int    `help:"Override the configured listen port"`
	Seed     int64  `short:"s" help:"RNG seed (0 uses the clock)" default:"0"`
	LogLevel string `help:"Override the configured log level"`
}

func main() {
	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("zhajinhua-server"),
		kong.Description("Host a zhajinhua tournament for remote websocket agents."))

	// Optional .env for LLM bot credentials.
	_ = godotenv.Load()

	cfg, err := server.LoadServerConfig(cli.Config)
	if err != nil {
		log.Fatal("Failed to load configuration", "path", cli.Config, "error", err)
	}
	if cli.Addr != "" {
		cfg.Server.Address = cli.Addr
	}
	if cli.Port != 0 {
		cfg.Server.Port = cli.Port
	}
	if cli.LogLevel != "" {
		cfg.Server.LogLevel = cli.LogLevel
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal("Invalid configuration", "error", err)
	}

	level, err := log.ParseLevel(cfg.Server.LogLevel)
	if err != nil {
		log.Fatal("Invalid log level", "level", cfg.Server.LogLevel)
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

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		logger.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	srv := server.NewServer(cfg, logger, rng)
	if err := srv.Run(ctx); err != nil && err != context.Canceled {
		log.Fatal("Server error", "error", err)
	}
	kctx.Exit(0)
}
