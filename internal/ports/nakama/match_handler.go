package nakama

import (
	"context"
	"database/sql"
	"math/rand"
	"strconv"
	"time"

	"narcos/internal/app"
	"narcos/internal/bot"
	"narcos/internal/config"
	"narcos/internal/domain"
	"narcos/internal/ports"

	"github.com/heroiclabs/nakama-common/runtime"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

// MatchState holds the authoritative runtime state for the Nakama match handler.
type MatchState struct {
	Seats     [MaxSeats]string            `json:"seats"`      // User IDs, empty string means seat is empty
	OwnerSeat int                         `json:"owner_seat"` // Seat index of the match owner
	Tick      int64                       `json:"tick"`
	TickRate  int                         `json:"tick_rate"`
	Players   []string                    `json:"players"` // User ID of each player index; Players[0] is player 1
	Presences map[string]runtime.Presence `json:"-"`       // Map UserId -> Presence for targeted messaging
	Match     *app.Match                  `json:"-"`       // Running game (nil while in lobby)

	BotsEnabled          bool                  `json:"bots_enabled"`
	BotMinDelay          int                   `json:"bot_min_delay"`       // Min seconds a bot waits before acting
	BotMaxDelay          int                   `json:"bot_max_delay"`       // Max seconds a bot waits before acting
	BotAutoFillDelay     int                   `json:"bot_auto_fill_delay"` // Seconds before a solo lobby is filled with bots
	BotWaitUntil         int64                 `json:"bot_wait_until"`      // Tick when the active bot should act
	LastSinglePlayerTick int64                 `json:"last_single_player_tick"`
	Bots                 map[string]*bot.Agent `json:"-"` // Agents by user ID; absent humans get a stand-in

	Economy ports.EconomyPort  `json:"-"`
	wallet  []ports.WalletUpdate // bank movements waiting for the end of the tick
}

func (ms *MatchState) GetOpenSeatsCount() int {
	count := 0
	for _, seat := range ms.Seats {
		if seat == "" {
			count++
		}
	}
	return count
}

func (ms *MatchState) GetOccupiedSeatCount() int {
	return MaxSeats - ms.GetOpenSeatsCount()
}

func (ms *MatchState) GetHumanPlayerCount() int {
	count := 0
	for _, seat := range ms.Seats {
		if seat != "" && !isBotUserId(seat) {
			count++
		}
	}
	return count
}

func (ms *MatchState) started() bool {
	return ms.Match != nil && ms.Match.Started()
}

// playerOf returns the player index of a user, or 0 when the user is not playing.
func (ms *MatchState) playerOf(userID string) int {
	for i, id := range ms.Players {
		if id == userID {
			return i + 1
		}
	}
	return 0
}

// userOf returns the user ID playing as player.
func (ms *MatchState) userOf(player int) string {
	if player < 1 || player > len(ms.Players) {
		return ""
	}
	return ms.Players[player-1]
}

func (ms *MatchState) seatOf(userID string) int {
	for i, id := range ms.Seats {
		if id == userID {
			return i
		}
	}
	return -1
}

func (ms *MatchState) secondsToTicks(sec int) int64 {
	return int64(sec) * int64(ms.TickRate)
}

// isBotUserId reports whether the given user id represents a bot seat.
func isBotUserId(userId string) bool {
	return bot.IsBot(userId)
}

// isHumanSeat reports whether the seat index belongs to a human player.
func isHumanSeat(seats []string, seatIndex int) bool {
	if seatIndex < 0 || seatIndex >= len(seats) {
		return false
	}
	userId := seats[seatIndex]
	return userId != "" && !isBotUserId(userId)
}

// findFirstHumanSeat returns the first seat index with a human occupant or -1 if none exist.
func findFirstHumanSeat(seats []string) int {
	for i := range seats {
		if isHumanSeat(seats, i) {
			return i
		}
	}
	return -1
}

// NewMatch is the factory function registered with Nakama.
func NewMatch(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule) (runtime.Match, error) {
	return &matchHandler{}, nil
}

type matchHandler struct{}

// MatchInit is called when the match is created.
func (mh *matchHandler) MatchInit(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, params map[string]interface{}) (interface{}, int, string) {
	logger.Debug("MatchInit: Initializing match handler.")

	state := &MatchState{
		TickRate:  config.GetTickRate(),
		Presences: make(map[string]runtime.Presence),
		OwnerSeat: -1,
		Bots:      make(map[string]*bot.Agent),
	}
	if nk != nil {
		state.Economy = NewNakamaEconomyAdapter(nk)
	}

	env, _ := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string)
	state.BotsEnabled = env[envBotsEnabled] == "true"
	state.BotMinDelay = envInt(env, envBotMinDelay, 1)
	state.BotMaxDelay = envInt(env, envBotMaxDelay, 3)
	state.BotAutoFillDelay = envInt(env, envBotAutoFillDelay, int(config.GetBotAutoFillDelay()/time.Second))
	if state.BotMaxDelay < state.BotMinDelay {
		state.BotMaxDelay = state.BotMinDelay
	}

	label, err := matchLabel(state)
	if err != nil {
		logger.Error("MatchInit: Failed to marshal label: %v", err)
		return nil, 0, ""
	}
	return state, state.TickRate, label
}

func envInt(env map[string]string, key string, def int) int {
	if val, ok := env[key]; ok {
		if i, err := strconv.Atoi(val); err == nil && i > 0 {
			return i
		}
	}
	return def
}

func (mh *matchHandler) MatchJoinAttempt(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presence runtime.Presence, metadata map[string]string) (interface{}, bool, string) {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state, false, "state not found"
	}

	if matchState.started() {
		// Only players of the running game may come back.
		if matchState.playerOf(presence.GetUserId()) == 0 {
			return state, false, "Game in progress"
		}
		return state, true, ""
	}

	// Allow join if there is an empty seat or a bot to replace.
	if matchState.GetOpenSeatsCount() <= 0 {
		hasBot := false
		for _, seat := range matchState.Seats {
			if isBotUserId(seat) {
				hasBot = true
				break
			}
		}
		if !hasBot {
			return state, false, "Match full"
		}
	}

	return state, true, ""
}

func (mh *matchHandler) MatchJoin(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchJoin: state not found")
		return state
	}

	for _, p := range presences {
		userID := p.GetUserId()
		matchState.Presences[userID] = p

		if matchState.seatOf(userID) >= 0 {
			// Reconnect: retire the stand-in and resend the private hand.
			delete(matchState.Bots, userID)
			if player := matchState.playerOf(userID); player > 0 && matchState.started() {
				logger.Info("MatchJoin: User %s rejoined as player %d.", userID, player)
				mh.broadcastEvent(ctx, matchState, dispatcher, logger, app.Event{
					Kind:       app.EventHandDealt,
					Payload:    app.HandDealtPayload{Player: player, Cards: matchState.Match.Hand(player)},
					Recipients: []int{player},
				})
			}
			continue
		}

		// Assign seat: try empty seats first, then bots.
		assigned := false
		for i, seatUserId := range matchState.Seats {
			if seatUserId == "" {
				matchState.Seats[i] = userID
				assigned = true
				break
			}
		}
		if !assigned && !matchState.started() {
			for i, seatUserId := range matchState.Seats {
				if isBotUserId(seatUserId) {
					logger.Info("MatchJoin: Replacing bot %s with human %s in seat %d", seatUserId, userID, i)
					delete(matchState.Bots, seatUserId)
					matchState.Seats[i] = userID
					assigned = true
					break
				}
			}
		}
		if !assigned {
			logger.Warn("MatchJoin: User %s joined but no seat (empty or bot) was available.", userID)
		}
	}

	// Ensure owner seat is assigned to a human player only.
	if !isHumanSeat(matchState.Seats[:], matchState.OwnerSeat) {
		matchState.OwnerSeat = findFirstHumanSeat(matchState.Seats[:])
		if matchState.OwnerSeat >= 0 {
			logger.Debug("MatchJoin: Owner set to human seat %d.", matchState.OwnerSeat)
		}
	}

	mh.updateLabel(matchState, dispatcher, logger)
	mh.broadcastMatchState(matchState, dispatcher, logger)

	return matchState
}

// MatchLeave is called when one or more players leave the match. Seats of a
// running game are kept so a stand-in bot can play them until the user rejoins.
func (mh *matchHandler) MatchLeave(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchLeave: state not found")
		return state
	}

	for _, p := range presences {
		userID := p.GetUserId()
		delete(matchState.Presences, userID)

		if matchState.started() {
			logger.Info("MatchLeave: User %s left a running game, a bot takes over.", userID)
			continue
		}
		if seat := matchState.seatOf(userID); seat >= 0 {
			matchState.Seats[seat] = ""
			logger.Debug("MatchLeave: User %s left, seat %d freed.", userID, seat)
		}
	}

	if len(matchState.Presences) == 0 {
		logger.Info("MatchLeave: Terminating match with no humans.")
		return nil
	}

	if !isHumanSeat(matchState.Seats[:], matchState.OwnerSeat) || matchState.Presences[matchState.Seats[matchState.OwnerSeat]] == nil {
		matchState.OwnerSeat = -1
		for i, userID := range matchState.Seats {
			if _, ok := matchState.Presences[userID]; ok && isHumanSeat(matchState.Seats[:], i) {
				matchState.OwnerSeat = i
				break
			}
		}
		logger.Debug("MatchLeave: Owner set to seat %d.", matchState.OwnerSeat)
	}

	mh.updateLabel(matchState, dispatcher, logger)
	mh.broadcastMatchState(matchState, dispatcher, logger)

	return matchState
}

func (mh *matchHandler) MatchLoop(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, messages []runtime.MatchData) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state
	}

	matchState.Tick = tick

	for _, msg := range messages {
		switch msg.GetOpCode() {
		case OpStartGame:
			mh.handleStartGame(ctx, matchState, dispatcher, logger, msg)
		case OpDrawHand, OpPlaceCard, OpAdvance:
			mh.handleCommand(ctx, matchState, dispatcher, logger, msg)
		default:
			logger.Warn("MatchLoop: Unknown opcode received: %d", msg.GetOpCode())
		}
	}

	if matchState.BotsEnabled {
		mh.autoFillBots(matchState, dispatcher, logger)
	}
	mh.playBots(ctx, matchState, dispatcher, logger)

	if matchState.started() {
		events, err := matchState.Match.Step()
		if err != nil {
			logger.Error("MatchLoop: Step failed: %v", err)
		}
		if n := matchState.Match.TakeDropped(); n > 0 {
			logger.Debug("MatchLoop: Skipped %d intents for missing table entities.", n)
		}
		for _, ev := range events {
			mh.broadcastEvent(ctx, matchState, dispatcher, logger, ev)
		}
	}

	mh.flushWallet(ctx, matchState, logger)
	return matchState
}

// autoFillBots fills a solo lobby with bots after the auto-fill delay.
func (mh *matchHandler) autoFillBots(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	if state.started() || state.GetHumanPlayerCount() != 1 {
		state.LastSinglePlayerTick = 0
		return
	}
	if state.LastSinglePlayerTick == 0 {
		state.LastSinglePlayerTick = state.Tick
		logger.Debug("autoFillBots: Single player detected, starting auto-fill timer.")
	}
	if state.Tick-state.LastSinglePlayerTick < state.secondsToTicks(state.BotAutoFillDelay) {
		return
	}

	added := false
	for i, seat := range state.Seats {
		if seat != "" {
			continue
		}
		agent, err := bot.NewSeatAgent(i, func(userID string) bool { return state.seatOf(userID) >= 0 })
		if err != nil {
			logger.Error("autoFillBots: Failed to create bot agent for seat %d: %v", i, err)
			continue
		}
		state.Seats[i] = agent.ID
		state.Bots[agent.ID] = agent
		logger.Info("autoFillBots: Added bot %s (%s) to seat %d", agent.Name, agent.ID, i)
		added = true
	}
	if added {
		mh.updateLabel(state, dispatcher, logger)
		mh.broadcastMatchState(state, dispatcher, logger)
	}
	state.LastSinglePlayerTick = 0
}

// agentFor returns the agent playing for userID: bots always, humans only
// while disconnected from a running game.
func (mh *matchHandler) agentFor(state *MatchState, userID string, player int, logger runtime.Logger) *bot.Agent {
	if userID == "" {
		return nil
	}
	if _, connected := state.Presences[userID]; connected && !isBotUserId(userID) {
		return nil
	}
	if agent, ok := state.Bots[userID]; ok {
		return agent
	}
	agent, err := bot.NewAgent(player - 1)
	if err != nil {
		logger.Error("agentFor: Failed to create agent for %s: %v", userID, err)
		return nil
	}
	if !isBotUserId(userID) {
		logger.Info("agentFor: Bot %s stands in for %s.", agent.Name, userID)
	}
	agent.ID = userID
	state.Bots[userID] = agent
	return agent
}

// playBots lets the agent of the active player act once its wait elapsed.
func (mh *matchHandler) playBots(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	if !state.started() {
		return
	}
	st := state.Match.State()
	if !st.Phase.RequiresInput() {
		return
	}
	userID := state.userOf(st.ActivePlayer)
	agent := mh.agentFor(state, userID, st.ActivePlayer, logger)
	if agent == nil {
		state.BotWaitUntil = 0
		return
	}

	if state.BotWaitUntil == 0 {
		delay := rand.Intn(state.BotMaxDelay-state.BotMinDelay+1) + state.BotMinDelay
		state.BotWaitUntil = state.Tick + state.secondsToTicks(delay)
		logger.Debug("playBots: Agent for %s (player %d) will act at tick %d (current %d)", userID, st.ActivePlayer, state.BotWaitUntil, state.Tick)
	}
	if state.Tick < state.BotWaitUntil {
		return
	}

	events, err := agent.TakeTurn(state.Match, st.ActivePlayer)
	for _, ev := range events {
		mh.broadcastEvent(ctx, state, dispatcher, logger, ev)
	}
	if err != nil {
		logger.Warn("playBots: Agent for %s failed: %v", userID, err)
	}
}

func (mh *matchHandler) handleStartGame(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()
	senderSeat := state.seatOf(senderID)

	logger.Info("StartGame: Request received from %s (seat=%d, owner_seat=%d, occupied=%d)", senderID, senderSeat, state.OwnerSeat, state.GetOccupiedSeatCount())

	if _, err := decodeCommand(msg.GetData()); err != nil {
		logger.Warn("StartGame: Invalid request from %s: %v", senderID, err)
		return
	}
	if senderSeat != state.OwnerSeat {
		logger.Warn("StartGame: User %s tried to start game but is not owner (owner_seat=%d)", senderID, state.OwnerSeat)
		return
	}
	if state.started() {
		logger.Warn("StartGame: Game already running.")
		return
	}

	var players []string
	for _, userID := range state.Seats {
		if userID != "" {
			players = append(players, userID)
		}
	}
	match, err := app.NewMatch(config.GetRules(), len(players), app.SystemClock(), nil)
	if err != nil {
		logger.Warn("StartGame: Cannot start with %d players: %v", len(players), err)
		mh.sendError(state, dispatcher, logger, senderID, 0, err.Error())
		return
	}

	state.Players = players
	state.Match = match
	state.BotWaitUntil = 0
	for _, agent := range state.Bots {
		agent.Reset()
	}
	events := match.Start()

	mh.updateLabel(state, dispatcher, logger)
	mh.broadcastMatchState(state, dispatcher, logger)
	for _, ev := range events {
		mh.broadcastEvent(ctx, state, dispatcher, logger, ev)
	}

	logger.Info("StartGame: Game started with %d players.", len(players))
}

func (mh *matchHandler) handleCommand(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()
	player := state.playerOf(senderID)
	if !state.started() || player == 0 {
		logger.Warn("handleCommand: %s sent op %d outside a game.", senderID, msg.GetOpCode())
		mh.sendError(state, dispatcher, logger, senderID, player, app.ErrNotStarted.Error())
		return
	}

	cmd, err := decodeCommand(msg.GetData())
	if err != nil {
		mh.sendError(state, dispatcher, logger, senderID, player, err.Error())
		return
	}

	var events []app.Event
	switch msg.GetOpCode() {
	case OpDrawHand:
		events, err = state.Match.DrawHand(player)
	case OpPlaceCard:
		events, err = state.Match.PlaceCard(player, domain.CardID(stringField(cmd, "card_id")), intField(cmd, "slot"))
	case OpAdvance:
		events, err = state.Match.Advance(player)
	}
	if err != nil {
		logger.Warn("handleCommand: User %s (player %d) op %d rejected: %v", senderID, player, msg.GetOpCode(), err)
		mh.sendError(state, dispatcher, logger, senderID, player, err.Error())
		return
	}

	for _, ev := range events {
		mh.broadcastEvent(ctx, state, dispatcher, logger, ev)
	}
}

// broadcastEvent handles the conversion and dispatching of app events to Nakama.
func (mh *matchHandler) broadcastEvent(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, ev app.Event) {
	opCode, ok := opCodeFor(ev.Kind)
	if !ok {
		logger.Warn("Unknown event kind: %v", ev.Kind)
		return
	}
	bytes, err := encodeEvent(ev)
	if err != nil {
		logger.Error("Failed to marshal event %v: %v", ev.Kind, err)
		return
	}

	switch ev.Kind {
	case app.EventPhaseChanged:
		state.BotWaitUntil = 0
		mh.updateLabel(state, dispatcher, logger)
	case app.EventBankChanged:
		if p, ok := ev.Payload.(domain.BankChanged); ok {
			queueWallet(ctx, state, p)
		}
	}

	// Determine recipients (default to broadcast)
	var recipients []runtime.Presence
	if len(ev.Recipients) > 0 {
		for _, player := range ev.Recipients {
			if p, ok := state.Presences[state.userOf(player)]; ok {
				recipients = append(recipients, p)
			}
		}

		// Targeted events for bots or absent players are not broadcast to everyone else.
		if len(recipients) == 0 {
			return
		}
	}

	dispatcher.BroadcastMessage(opCode, bytes, recipients, nil, true)
}

// queueWallet records a bank movement of a human player for the wallet.
func queueWallet(ctx context.Context, state *MatchState, p domain.BankChanged) {
	userID := state.userOf(p.Player)
	if userID == "" || isBotUserId(userID) || p.Delta == 0 {
		return
	}
	reason := "sale"
	if p.Delta < 0 {
		reason = "bribe"
	}
	state.wallet = append(state.wallet, ports.WalletUpdate{
		UserID: userID,
		Amount: p.Delta,
		Metadata: map[string]interface{}{
			"match_id": ctx.Value(runtime.RUNTIME_CTX_MATCH_ID),
			"reason":   reason,
			"balance":  p.Balance,
		},
	})
}

func (mh *matchHandler) flushWallet(ctx context.Context, state *MatchState, logger runtime.Logger) {
	if len(state.wallet) == 0 {
		return
	}
	updates := state.wallet
	state.wallet = nil
	if state.Economy == nil {
		return
	}
	if err := state.Economy.UpdateBalances(ctx, updates); err != nil {
		logger.Error("Failed to update balances: %v", err)
		return
	}

	seen := make(map[string]bool, len(updates))
	for _, u := range updates {
		if seen[u.UserID] {
			continue
		}
		seen[u.UserID] = true
		balance, err := state.Economy.GetBalance(ctx, u.UserID)
		if err != nil {
			logger.Warn("flushWallet: Failed to read wallet of %s: %v", u.UserID, err)
			continue
		}
		logger.Debug("flushWallet: Wallet of %s holds %d %s.", u.UserID, balance, WalletCurrency)
	}
}

// sendError sends a GameError event to a specific user.
func (mh *matchHandler) sendError(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, userID string, player int, message string) {
	bytes, err := encodeEvent(app.Event{
		Kind:    app.EventGameError,
		Payload: app.GameErrorPayload{Player: player, Message: message},
	})
	if err != nil {
		logger.Error("Failed to marshal GameError: %v", err)
		return
	}

	presence, ok := state.Presences[userID]
	if !ok {
		logger.Warn("Cannot send error to %s: Presence not found", userID)
		return
	}

	dispatcher.BroadcastMessage(OpGameError, bytes, []runtime.Presence{presence}, nil, true)
}

func (mh *matchHandler) broadcastMatchState(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	bytes, err := encodeMatchState(state)
	if err != nil {
		logger.Error("Failed to marshal match state: %v", err)
		return
	}
	dispatcher.BroadcastMessage(OpMatchState, bytes, nil, nil, true)
}

func encodeMatchState(state *MatchState) ([]byte, error) {
	var bank []int64
	snapshot := map[string]any{
		"owner_seat": state.OwnerSeat,
		"tick":       state.Tick,
		"phase":      "lobby",
		"turn":       0,
	}
	if state.started() {
		st := state.Match.State()
		bank = st.Bank
		snapshot["phase"] = st.Phase.String()
		snapshot["turn"] = st.Turn
		snapshot["active_player"] = st.ActivePlayer
	}

	seats := make([]any, 0, MaxSeats)
	players := make([]any, 0, MaxSeats)
	for i, userID := range state.Seats {
		seats = append(seats, userID)
		if userID == "" {
			continue
		}
		displayName := userID
		if p, ok := state.Presences[userID]; ok {
			displayName = p.GetUsername()
		} else if name := bot.DisplayName(userID); name != "" {
			displayName = name
		}
		entry := map[string]any{
			"user_id":      userID,
			"seat":         i,
			"display_name": displayName,
			"is_owner":     i == state.OwnerSeat,
			"is_bot":       isBotUserId(userID),
		}
		if player := state.playerOf(userID); player > 0 {
			entry["player"] = player
			if player <= len(bank) {
				entry["bank"] = bank[player-1]
			}
		}
		players = append(players, entry)
	}
	snapshot["seats"] = seats
	snapshot["players"] = players

	s, err := structpb.NewStruct(snapshot)
	if err != nil {
		return nil, err
	}
	return proto.Marshal(s)
}

// matchLabel renders the label quick match queries run against.
func matchLabel(state *MatchState) (string, error) {
	open, phase, turn := state.GetOpenSeatsCount(), "lobby", 0
	if state.started() {
		st := state.Match.State()
		open, phase, turn = 0, st.Phase.String(), st.Turn
	}
	label, err := structpb.NewStruct(map[string]any{
		"open":  open,
		"game":  GameLabel,
		"phase": phase,
		"turn":  turn,
	})
	if err != nil {
		return "", err
	}
	b, err := (&protojson.MarshalOptions{EmitUnpopulated: true}).Marshal(label)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (mh *matchHandler) updateLabel(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	label, err := matchLabel(state)
	if err != nil {
		logger.Error("UpdateLabel: Failed to marshal: %v", err)
		return
	}
	if err := dispatcher.MatchLabelUpdate(label); err != nil {
		logger.Error("UpdateLabel: Failed to update: %v", err)
	}
}

func (mh *matchHandler) MatchTerminate(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, graceSeconds int) interface{} {
	logger.Debug("MatchTerminate: Match terminated, grace %d seconds.", graceSeconds)
	if matchState, ok := state.(*MatchState); ok {
		mh.flushWallet(ctx, matchState, logger)
	}
	return state
}

func (mh *matchHandler) MatchSignal(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, data string) (interface{}, string) {
	return state, ""
}
