// Package ws hosts a single table over websocket for a standalone
// presentation client. One goroutine owns the match; connections only
// exchange messages with it through channels.
package ws

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"net/http"
	"strconv"
	"time"

	"narcos/internal/app"
	"narcos/internal/bot"
	"narcos/internal/domain"
	"narcos/internal/table"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"golang.org/x/sync/errgroup"
)

var (
	ErrServerBusy    = errors.New("table command queue is full")
	ErrUnknownOp     = errors.New("unknown op")
	ErrInvalidPlayer = errors.New("invalid player")
)

// Client ops.
const (
	OpRestart   = "restart"
	OpDrawHand  = "draw_hand"
	OpPlaceCard = "place_card"
	OpAdvance   = "advance"
)

// EventWelcome is sent once to every new connection.
const EventWelcome app.EventKind = "welcome"

const sendBuffer = 256

// Options configures a Server.
type Options struct {
	Rules      domain.Rules
	NumPlayers int
	// TickRate is the loop frequency in Hz.
	TickRate int
	// Bots lets agents play every seat without a connected client.
	Bots bool
	// InsecureSkipVerify accepts websocket upgrades from any origin.
	InsecureSkipVerify bool
	Clock              app.Clock
	Rand               *rand.Rand
}

// Message is the wire envelope for both directions.
type Message struct {
	Kind    app.EventKind `json:"kind"`
	Payload any           `json:"payload,omitempty"`
}

// Command is a client request.
type Command struct {
	Op     string        `json:"op"`
	CardID domain.CardID `json:"card_id,omitempty"`
	Slot   int           `json:"slot,omitempty"`
}

// WelcomePayload tells a client who it plays and what the table looks like.
type WelcomePayload struct {
	Player int              `json:"player"`
	State  domain.TurnState `json:"state"`
	Hand   []table.Card     `json:"hand"`
	View   domain.View      `json:"view"`
}

type client struct {
	player int
	send   chan Message
}

type request struct {
	client *client
	join   bool
	leave  bool
	cmd    Command
}

// Server runs one match and fans its events out to websocket clients.
type Server struct {
	opts  Options
	match *app.Match
	bots  map[int]*bot.Agent

	clients map[*client]struct{}
	reqs    chan request
	done    chan struct{}
}

// NewServer builds a server with an unstarted match.
func NewServer(opts Options) (*Server, error) {
	if opts.TickRate <= 0 {
		opts.TickRate = 30
	}
	if opts.Clock == nil {
		opts.Clock = app.SystemClock()
	}
	m, err := app.NewMatch(opts.Rules, opts.NumPlayers, opts.Clock, opts.Rand)
	if err != nil {
		return nil, err
	}
	return &Server{
		opts:    opts,
		match:   m,
		bots:    make(map[int]*bot.Agent),
		clients: make(map[*client]struct{}),
		reqs:    make(chan request, 64),
		done:    make(chan struct{}),
	}, nil
}

// Handler routes /ws and /healthz.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.serveWS)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return mux
}

// Run starts the match and owns it until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	defer close(s.done)
	s.broadcast(ctx, s.match.Start())

	ticker := time.NewTicker(time.Second / time.Duration(s.opts.TickRate))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case req := <-s.reqs:
			s.handle(ctx, req)
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

// submit queues a request for the loop. Leave requests block until the loop
// takes them so a client is never left registered.
func (s *Server) submit(ctx context.Context, req request) error {
	if req.leave {
		select {
		case s.reqs <- req:
		case <-s.done:
		}
		return nil
	}
	select {
	case s.reqs <- req:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		return ErrServerBusy
	}
}

func (s *Server) handle(ctx context.Context, req request) {
	c := req.client
	switch {
	case req.join:
		s.clients[c] = struct{}{}
		delete(s.bots, c.player)
		slog.InfoContext(ctx, "player connected", "player", c.player)
		s.sendTo(ctx, c, Message{Kind: EventWelcome, Payload: WelcomePayload{
			Player: c.player,
			State:  s.match.State(),
			Hand:   s.match.Hand(c.player),
			View:   s.match.View(),
		}})
		return
	case req.leave:
		delete(s.clients, c)
		close(c.send)
		slog.InfoContext(ctx, "player disconnected", "player", c.player)
		return
	}

	events, err := s.command(c.player, req.cmd)
	if err != nil {
		slog.DebugContext(ctx, "command rejected", "player", c.player, "op", req.cmd.Op, "err", err)
		s.sendTo(ctx, c, Message{Kind: app.EventGameError, Payload: app.GameErrorPayload{Player: c.player, Message: err.Error()}})
		return
	}
	if req.cmd.Op == OpRestart {
		for _, agent := range s.bots {
			agent.Reset()
		}
	}
	s.broadcast(ctx, events)
}

func (s *Server) command(player int, cmd Command) ([]app.Event, error) {
	switch cmd.Op {
	case OpRestart:
		return s.match.Start(), nil
	case OpDrawHand:
		return s.match.DrawHand(player)
	case OpPlaceCard:
		return s.match.PlaceCard(player, cmd.CardID, cmd.Slot)
	case OpAdvance:
		return s.match.Advance(player)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownOp, cmd.Op)
}

func (s *Server) tick(ctx context.Context) {
	if s.opts.Bots {
		s.playBots(ctx)
	}
	events, err := s.match.Step()
	if err != nil {
		slog.ErrorContext(ctx, "step failed", "err", err)
	}
	if n := s.match.TakeDropped(); n > 0 {
		slog.DebugContext(ctx, "intents skipped for missing table entities", "count", n)
	}
	s.broadcast(ctx, events)
}

func (s *Server) connected(player int) bool {
	for c := range s.clients {
		if c.player == player {
			return true
		}
	}
	return false
}

func (s *Server) playBots(ctx context.Context) {
	player := s.match.State().ActivePlayer
	if s.connected(player) {
		return
	}
	agent, ok := s.bots[player]
	if !ok {
		var err error
		agent, err = bot.NewAgent(player - 1)
		if err != nil {
			slog.ErrorContext(ctx, "failed to create bot", "player", player, "err", err)
			return
		}
		s.bots[player] = agent
		slog.InfoContext(ctx, "bot seated", "player", player, "bot", agent.Name)
	}
	events, err := agent.TakeTurn(s.match, player)
	s.broadcast(ctx, events)
	if err != nil {
		slog.WarnContext(ctx, "bot turn failed", "player", player, "err", err)
	}
}

func (s *Server) broadcast(ctx context.Context, events []app.Event) {
	for _, ev := range events {
		msg := Message{Kind: ev.Kind, Payload: ev.Payload}
		for c := range s.clients {
			if len(ev.Recipients) > 0 && !containsPlayer(ev.Recipients, c.player) {
				continue
			}
			s.sendTo(ctx, c, msg)
		}
	}
}

func containsPlayer(players []int, player int) bool {
	for _, p := range players {
		if p == player {
			return true
		}
	}
	return false
}

func (s *Server) sendTo(ctx context.Context, c *client, msg Message) {
	select {
	case c.send <- msg:
	default:
		slog.WarnContext(ctx, "send buffer full, message dropped", "player", c.player, "kind", msg.Kind)
	}
}

func (s *Server) serveWS(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	player, err := strconv.Atoi(r.URL.Query().Get("player"))
	if err != nil || player < 1 || player > s.match.NumPlayers() {
		http.Error(w, ErrInvalidPlayer.Error(), http.StatusBadRequest)
		return
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: s.opts.InsecureSkipVerify,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to accept", "err", err)
		return
	}
	defer conn.CloseNow()

	c := &client{player: player, send: make(chan Message, sendBuffer)}
	if err := s.submit(ctx, request{client: c, join: true}); err != nil {
		conn.Close(websocket.StatusTryAgainLater, err.Error())
		return
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		defer s.submit(context.Background(), request{client: c, leave: true})
		for {
			var cmd Command
			if err := wsjson.Read(ctx, conn, &cmd); err != nil {
				return err
			}
			if err := s.submit(ctx, request{client: c, cmd: cmd}); err != nil {
				slog.WarnContext(ctx, "command dropped", "player", player, "err", err)
			}
		}
	})
	eg.Go(func() error {
		for {
			select {
			case <-ctx.Done():
				return nil
			case msg, ok := <-c.send:
				if !ok {
					return nil
				}
				if err := wsjson.Write(ctx, conn, msg); err != nil {
					return err
				}
			}
		}
	})

	if err := eg.Wait(); err != nil && websocket.CloseStatus(err) != websocket.StatusNormalClosure {
		slog.DebugContext(ctx, "connection closed", "player", player, "err", err)
	}
}
