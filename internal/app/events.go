package app

import (
	"narcos/internal/domain"
	"narcos/internal/table"
)

// EventKind identifies emitted events for host dispatch.
type EventKind string

const (
	EventGameStarted    EventKind = "game_started"
	EventHandDealt      EventKind = "hand_dealt"
	EventCardPlaced     EventKind = "card_placed"
	EventPhaseChanged   EventKind = "phase_changed"
	EventPlayerSwitched EventKind = "player_switched"
	EventChipDropped    EventKind = "chip_dropped"
	EventChipMoved      EventKind = "chip_moved"
	EventChipDiscarded  EventKind = "chip_discarded"
	EventCardRetired    EventKind = "card_retired"
	EventEventDrawn     EventKind = "event_card_drawn"
	EventEffectApplied  EventKind = "effect_applied"
	EventBankChanged    EventKind = "bank_changed"
	EventGameError      EventKind = "game_error"
)

// Event is an app event with optional targeted recipients.
type Event struct {
	Kind       EventKind
	Payload    any
	Recipients []int // player indices; empty means broadcast
}

type GameStartedPayload struct {
	NumPlayers int          `json:"num_players"`
	Phase      domain.Phase `json:"phase"`
	Player     int          `json:"player"`
	Turn       int          `json:"turn"`
}

type HandDealtPayload struct {
	Player int          `json:"player"`
	Cards  []table.Card `json:"cards"`
}

type CardPlacedPayload struct {
	Player int        `json:"player"`
	Card   table.Card `json:"card"`
}

type PhaseChangedPayload struct {
	From   domain.Phase `json:"from"`
	To     domain.Phase `json:"to"`
	Player int          `json:"player"`
	Turn   int          `json:"turn"`
}

type PlayerSwitchedPayload struct {
	Player int `json:"player"`
	Turn   int `json:"turn"`
}

// ChipDroppedPayload carries the chip the table created for a DropChip intent.
type ChipDroppedPayload struct {
	Chip domain.TableChip `json:"chip"`
}

type GameErrorPayload struct {
	Player  int    `json:"player"`
	Message string `json:"message"`
}

// intentEvent wraps a resolver intent. DropChip payloads are replaced with
// ChipDroppedPayload once the table has minted the chip.
func intentEvent(in domain.Intent) (Event, bool) {
	switch v := in.(type) {
	case domain.DropChip:
		return Event{Kind: EventChipDropped, Payload: v}, true
	case domain.MoveChip:
		return Event{Kind: EventChipMoved, Payload: v}, true
	case domain.DiscardChip:
		return Event{Kind: EventChipDiscarded, Payload: v}, true
	case domain.RetireCard:
		return Event{Kind: EventCardRetired, Payload: v}, true
	case domain.DrawEventCard:
		return Event{Kind: EventEventDrawn, Payload: v}, true
	case domain.EffectApplied:
		return Event{Kind: EventEffectApplied, Payload: v}, true
	case domain.BankChanged:
		return Event{Kind: EventBankChanged, Payload: v}, true
	}
	return Event{}, false
}
