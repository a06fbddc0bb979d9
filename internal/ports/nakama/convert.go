package nakama

import (
	"errors"
	"fmt"

	"narcos/internal/app"
	"narcos/internal/domain"
	"narcos/internal/table"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

var errUnknownPayload = errors.New("unknown event payload")

var eventOpCodes = map[app.EventKind]int64{
	app.EventGameStarted:    OpGameStarted,
	app.EventHandDealt:      OpHandDealt,
	app.EventCardPlaced:     OpCardPlaced,
	app.EventPhaseChanged:   OpPhaseChanged,
	app.EventPlayerSwitched: OpPlayerSwitched,
	app.EventChipDropped:    OpChipDropped,
	app.EventChipMoved:      OpChipMoved,
	app.EventChipDiscarded:  OpChipDiscarded,
	app.EventCardRetired:    OpCardRetired,
	app.EventEventDrawn:     OpEventCardDrawn,
	app.EventEffectApplied:  OpEffectApplied,
	app.EventBankChanged:    OpBankChanged,
	app.EventGameError:      OpGameError,
}

// opCodeFor returns the server op code an event kind is sent with.
func opCodeFor(kind app.EventKind) (int64, bool) {
	op, ok := eventOpCodes[kind]
	return op, ok
}

// encodeEvent marshals an event payload as a protobuf Struct.
func encodeEvent(ev app.Event) ([]byte, error) {
	fields, err := eventFields(ev.Payload)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ev.Kind, err)
	}
	s, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ev.Kind, err)
	}
	return proto.Marshal(s)
}

func eventFields(payload any) (map[string]any, error) {
	switch p := payload.(type) {
	case app.GameStartedPayload:
		return map[string]any{
			"num_players": p.NumPlayers,
			"phase":       p.Phase.String(),
			"player":      p.Player,
			"turn":        p.Turn,
		}, nil
	case app.HandDealtPayload:
		cards := make([]any, 0, len(p.Cards))
		for _, c := range p.Cards {
			cards = append(cards, cardFields(c))
		}
		return map[string]any{"player": p.Player, "cards": cards}, nil
	case app.CardPlacedPayload:
		return map[string]any{"player": p.Player, "card": cardFields(p.Card)}, nil
	case app.PhaseChangedPayload:
		return map[string]any{
			"from":        p.From.String(),
			"to":          p.To.String(),
			"description": p.To.Description(),
			"player":      p.Player,
			"turn":        p.Turn,
		}, nil
	case app.PlayerSwitchedPayload:
		return map[string]any{"player": p.Player, "turn": p.Turn}, nil
	case app.ChipDroppedPayload:
		return chipFields(p.Chip), nil
	case app.GameErrorPayload:
		return map[string]any{"player": p.Player, "message": p.Message}, nil
	case domain.DropChip:
		return map[string]any{
			"type":   string(p.Type),
			"area":   p.Area.String(),
			"player": p.Player,
			"turn":   p.Turn,
		}, nil
	case domain.MoveChip:
		return map[string]any{
			"id":     string(p.Chip),
			"area":   p.Area.String(),
			"player": p.Player,
			"turn":   p.Turn,
		}, nil
	case domain.DiscardChip:
		return map[string]any{"id": string(p.Chip)}, nil
	case domain.RetireCard:
		return map[string]any{"id": string(p.Card), "pile": string(p.Pile)}, nil
	case domain.DrawEventCard:
		return map[string]any{
			"id":     string(p.Card),
			"kind":   string(p.Kind),
			"player": p.Player,
			"slot":   p.Slot,
		}, nil
	case domain.EffectApplied:
		return map[string]any{
			"kind":       string(p.Effect.Kind),
			"owner":      p.Effect.Owner,
			"applied_at": p.Effect.AppliedAt,
			"duration":   p.Effect.Duration,
		}, nil
	case domain.BankChanged:
		return map[string]any{
			"player":  p.Player,
			"delta":   p.Delta,
			"balance": p.Balance,
		}, nil
	}
	return nil, fmt.Errorf("%w: %T", errUnknownPayload, payload)
}

func cardFields(c table.Card) map[string]any {
	return map[string]any{
		"id":       string(c.ID),
		"kind":     string(c.Kind),
		"owner":    c.Owner,
		"slot":     c.Slot,
		"location": string(c.Location),
	}
}

func chipFields(c domain.TableChip) map[string]any {
	return map[string]any{
		"id":              string(c.ID),
		"type":            string(c.Type),
		"area":            c.Area.String(),
		"player":          c.Owner,
		"production_turn": c.ProductionTurn,
		"sales_turn":      c.SalesTurn,
		"sort_key":        c.SortKey,
	}
}

// decodeCommand parses a client message body. Clients send JSON objects; an
// empty body is an empty command.
func decodeCommand(data []byte) (*structpb.Struct, error) {
	cmd := &structpb.Struct{Fields: map[string]*structpb.Value{}}
	if len(data) == 0 {
		return cmd, nil
	}
	if err := protojson.Unmarshal(data, cmd); err != nil {
		return nil, fmt.Errorf("invalid command payload: %w", err)
	}
	return cmd, nil
}

func stringField(s *structpb.Struct, key string) string {
	return s.GetFields()[key].GetStringValue()
}

func intField(s *structpb.Struct, key string) int {
	return int(s.GetFields()[key].GetNumberValue())
}
