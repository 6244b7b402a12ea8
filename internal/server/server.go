package server

import (
	"context"
	"fmt"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"

	"github.com/cardforge/zhajinhua/internal/agent"
	"github.com/cardforge/zhajinhua/internal/arena"
	"github.com/cardforge/zhajinhua/internal/game"
)

// Server hosts a single zhajinhua tournament over websockets. Configured
// bots take their seats immediately; the remaining seats are handed to
// remote clients in connection order. Once every seat is filled the
// tournament runs and every engine event is broadcast to the clients.
type Server struct {
	cfg    *ServerConfig
	logger *log.Logger
	clock  quartz.Clock
	rng    *rand.Rand

	upgrader websocket.Upgrader

	mu           sync.Mutex
	connections  map[int]*Connection
	pendingSeats []int
	ready        chan struct{}
	readyOnce    sync.Once
}

// NewServer creates a tournament server from a validated configuration
func NewServer(cfg *ServerConfig, logger *log.Logger, rng *rand.Rand) *Server {
	if rng == nil {
		panic("rng is required for server creation")
	}
	return &Server{
		cfg:    cfg,
		logger: logger.WithPrefix("server"),
		clock:  quartz.NewReal(),
		rng:    rng,
		upgrader: websocket.Upgrader{
			CheckOrigin:     func(r *http.Request) bool { return true },
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		connections:  make(map[int]*Connection),
		pendingSeats: cfg.RemoteSeats(),
		ready:        make(chan struct{}),
	}
}

// Run serves websocket clients and plays the tournament to completion.
// It returns once the tournament ends or the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/health", s.handleHealth)

	httpServer := &http.Server{
		Addr:    s.cfg.GetServerAddress(),
		Handler: mux,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info("Listening", "addr", httpServer.Addr, "remoteSeats", len(s.pendingSeats))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	g.Go(func() error {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = httpServer.Shutdown(shutdownCtx)
			s.closeConnections()
		}()

		// No remote seats configured means an all-bot table.
		if len(s.pendingSeats) == 0 {
			s.markReady()
		}
		select {
		case <-s.ready:
		case <-ctx.Done():
			return ctx.Err()
		}
		return s.runTournament(ctx)
	})

	return g.Wait()
}

// runTournament builds the agent roster and plays the arena to the end
func (s *Server) runTournament(ctx context.Context) error {
	agents, err := s.buildAgents()
	if err != nil {
		return err
	}

	opts := arena.Options{
		Game: game.Config{
			NumPlayers:            s.cfg.Table.Players,
			InitialChips:          s.cfg.Table.InitialChips,
			BaseBet:               s.cfg.Table.BaseBet,
			MinRaise:              s.cfg.Table.MinRaise,
			CompareCostMultiplier: 2,
			AccuseCostMultiplier:  10,
			MaxRounds:             s.cfg.Table.MaxRounds,
		},
		MaxHands:      s.cfg.Table.MaxHands,
		AnteInterval:  s.cfg.Table.AnteInterval,
		AnteIncrement: s.cfg.Table.AnteIncrement,
		Events: game.SinkFunc(func(e game.Event) {
			s.broadcastEvent(e)
		}),
	}

	tournament, err := arena.New(s.rng, s.logger, opts, agents)
	if err != nil {
		return err
	}

	s.logger.Info("Starting tournament", "table", s.cfg.Table.Name, "players", s.cfg.Table.Players)
	winner, err := tournament.Run(ctx)
	if err != nil {
		return err
	}

	if msg, merr := NewMessage(MessageTypeGameOver, GameOverData{
		Winner: winner,
		Chips:  tournament.Chips(),
		Hands:  tournament.HandsPlayed(),
	}); merr == nil {
		s.broadcast(msg)
	}
	return nil
}

// buildAgents assembles one agent per seat from bots and connections
func (s *Server) buildAgents() ([]agent.Agent, error) {
	agents := make([]agent.Agent, s.cfg.Table.Players)

	for _, bot := range s.cfg.Bots {
		switch bot.Strategy {
		case "fold":
			agents[bot.Seat] = agent.Folder{}
		case "call":
			agents[bot.Seat] = agent.Caller{}
		case "rand":
			agents[bot.Seat] = agent.NewRandom(s.rng.Int63())
		case "llm":
			llm, err := agent.NewLLM(agent.LLMConfig{})
			if err != nil {
				return nil, fmt.Errorf("bot %s: %w", bot.Name, err)
			}
			agents[bot.Seat] = llm
		default:
			return nil, fmt.Errorf("bot %s: unknown strategy %s", bot.Name, bot.Strategy)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for seat, conn := range s.connections {
		na := NewNetworkAgent(seat, conn, s.logger,
			s.cfg.Server.DecisionTimeoutSec, s.cfg.Server.VoteTimeoutSec, s.clock)
		conn.SetAgent(na)
		agents[seat] = na
	}

	for seat, a := range agents {
		if a == nil {
			return nil, fmt.Errorf("seat %d has no agent", seat)
		}
	}
	return agents, nil
}

// handleWebSocket seats a connecting client
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("Failed to upgrade connection", "error", err)
		return
	}

	s.mu.Lock()
	if len(s.pendingSeats) == 0 {
		s.mu.Unlock()
		s.logger.Warn("Rejecting connection, table is full")
		_ = ws.Close()
		return
	}
	seat := s.pendingSeats[0]
	s.pendingSeats = s.pendingSeats[1:]
	conn := NewConnection(ws, seat, s.logger)
	s.connections[seat] = conn
	remaining := len(s.pendingSeats)
	s.mu.Unlock()

	conn.Start()
	if msg, err := NewMessage(MessageTypeWelcome, WelcomeData{
		Seat:         seat,
		Players:      s.cfg.Table.Players,
		InitialChips: s.cfg.Table.InitialChips,
	}); err == nil {
		_ = conn.Send(msg)
	}
	s.logger.Info("Client seated", "seat", seat, "waitingFor", remaining)

	if remaining == 0 {
		s.markReady()
	}
}

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprintf(w, "OK")
}

func (s *Server) markReady() {
	s.readyOnce.Do(func() { close(s.ready) })
}

// broadcastEvent wraps an engine event for the wire
func (s *Server) broadcastEvent(e game.Event) {
	msg, err := NewMessage(MessageTypeGameEvent, GameEventData{
		Event: e.EventType().String(),
		Data:  e,
	})
	if err != nil {
		s.logger.Error("Failed to encode game event", "error", err)
		return
	}
	s.broadcast(msg)
}

// broadcast sends a message to every connected client
func (s *Server) broadcast(msg *Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for seat, conn := range s.connections {
		if err := conn.Send(msg); err != nil {
			s.logger.Debug("Failed to send to client", "seat", seat, "error", err)
		}
	}
}

func (s *Server) closeConnections() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, conn := range s.connections {
		_ = conn.Close()
	}
}
