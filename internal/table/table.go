package table

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/google/uuid"

	"narcos/internal/domain"
)

var (
	ErrCardNotInHand = errors.New("card not in hand")
	ErrSlotTaken     = errors.New("slot already taken")
	ErrNoFreeSlot    = errors.New("no free table slot")
	ErrInvalidSlot   = errors.New("invalid table slot")
	ErrUnknownPlayer = errors.New("unknown player")
)

// TableSlots is the number of slots a player can place cards on.
const TableSlots = 5

// Location is where a card currently sits.
type Location string

const (
	LocationDeck         Location = "deck"
	LocationHand         Location = "hand"
	LocationTable        Location = "table"
	LocationEventPile    Location = "event_pile"
	LocationDiscard      Location = "discard"
	LocationEventDiscard Location = "event_discard"
)

// Card is a card entity of the table.
type Card struct {
	ID       domain.CardID   `json:"id"`
	Kind     domain.CardKind `json:"kind"`
	Owner    int             `json:"owner,omitempty"`
	Slot     int             `json:"slot,omitempty"`
	Location Location        `json:"location"`
}

type areaKey struct {
	owner int
	area  domain.Area
}

// Table is the headless presentation store: it owns every card and chip
// entity, realizes the resolver's intents and answers snapshot queries.
// It is not safe for concurrent use.
type Table struct {
	numPlayers int
	handSize   int
	rng        *rand.Rand

	cards map[domain.CardID]*Card
	deck  []domain.CardID // drawn from the end

	eventPile    []domain.PileCard
	eventDiscard []domain.CardID
	discard      []domain.CardID

	chips   map[domain.ChipID]*domain.TableChip
	order   []domain.ChipID
	nextKey map[areaKey]float64
}

// New builds a table for numPlayers with shuffled main and event decks.
// A nil rng falls back to a time seeded source.
func New(numPlayers int, rules domain.Rules, rng *rand.Rand) *Table {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	t := &Table{
		numPlayers: numPlayers,
		handSize:   rules.HandSize,
		rng:        rng,
		cards:      make(map[domain.CardID]*Card),
		chips:      make(map[domain.ChipID]*domain.TableChip),
		nextKey:    make(map[areaKey]float64),
	}

	for _, kind := range domain.ShuffleDeck(domain.NewDeck(numPlayers), rng) {
		c := t.newCard(kind, LocationDeck)
		t.deck = append(t.deck, c.ID)
	}
	events := domain.ShuffleDeck(domain.NewEventDeck(numPlayers), rng)
	for i, kind := range events {
		c := t.newCard(kind, LocationEventPile)
		t.eventPile = append(t.eventPile, domain.PileCard{ID: c.ID, Kind: kind, SortKey: float64(i)})
	}
	return t
}

func (t *Table) newCard(kind domain.CardKind, loc Location) *Card {
	c := &Card{ID: domain.CardID(uuid.NewString()), Kind: kind, Location: loc}
	t.cards[c.ID] = c
	return c
}

// NumPlayers returns the number of seats at the table.
func (t *Table) NumPlayers() int { return t.numPlayers }

// DrawHand deals cards from the main deck until the player holds a full
// hand. The discard pile is shuffled back when the deck runs out.
func (t *Table) DrawHand(player int) ([]Card, error) {
	if err := t.checkPlayer(player); err != nil {
		return nil, err
	}
	var dealt []Card
	for len(t.handIDs(player)) < t.handSize {
		if len(t.deck) == 0 && !t.recycleDiscard() {
			break
		}
		id := t.deck[len(t.deck)-1]
		t.deck = t.deck[:len(t.deck)-1]
		c := t.cards[id]
		c.Location = LocationHand
		c.Owner = player
		dealt = append(dealt, *c)
	}
	return dealt, nil
}

func (t *Table) recycleDiscard() bool {
	if len(t.discard) == 0 {
		return false
	}
	t.rng.Shuffle(len(t.discard), func(i, j int) { t.discard[i], t.discard[j] = t.discard[j], t.discard[i] })
	for _, id := range t.discard {
		c := t.cards[id]
		c.Location, c.Owner, c.Slot = LocationDeck, 0, 0
	}
	t.deck = append(t.deck, t.discard...)
	t.discard = nil
	return true
}

// Hand returns the player's hand ordered by card kind.
func (t *Table) Hand(player int) []Card {
	var out []Card
	for _, id := range t.handIDs(player) {
		out = append(out, *t.cards[id])
	}
	return out
}

func (t *Table) handIDs(player int) []domain.CardID {
	var ids []domain.CardID
	for id, c := range t.cards {
		if c.Location == LocationHand && c.Owner == player {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool {
		a, b := t.cards[ids[i]], t.cards[ids[j]]
		if a.Kind != b.Kind {
			return a.Kind < b.Kind
		}
		return a.ID < b.ID
	})
	return ids
}

// PlaceCard moves a card from the player's hand onto a table slot. Slot 0
// picks the lowest free slot.
func (t *Table) PlaceCard(player int, id domain.CardID, slot int) (Card, error) {
	if err := t.checkPlayer(player); err != nil {
		return Card{}, err
	}
	c, ok := t.cards[id]
	if !ok || c.Location != LocationHand || c.Owner != player {
		return Card{}, fmt.Errorf("%w: %s", ErrCardNotInHand, id)
	}
	if c.Kind.Category() == domain.CategoryEvent {
		return Card{}, fmt.Errorf("%w: event cards are drawn, not placed", ErrInvalidSlot)
	}

	taken := t.takenSlots(player)
	switch {
	case slot == 0:
		for s := 1; s <= TableSlots; s++ {
			if !taken[s] {
				slot = s
				break
			}
		}
		if slot == 0 {
			return Card{}, ErrNoFreeSlot
		}
	case slot < 1 || slot > TableSlots:
		return Card{}, fmt.Errorf("%w: %d", ErrInvalidSlot, slot)
	case taken[slot]:
		return Card{}, fmt.Errorf("%w: %d", ErrSlotTaken, slot)
	}

	c.Location = LocationTable
	c.Slot = slot
	return *c, nil
}

func (t *Table) takenSlots(player int) map[int]bool {
	taken := make(map[int]bool)
	for _, c := range t.cards {
		if c.Location == LocationTable && c.Owner == player {
			taken[c.Slot] = true
		}
	}
	return taken
}

// Apply realizes one intent. It reports false when the intent names an
// entity the table does not hold; such intents change nothing.
func (t *Table) Apply(in domain.Intent) bool {
	switch v := in.(type) {
	case domain.DropChip:
		_, ok := t.Drop(v)
		return ok

	case domain.MoveChip:
		chip, ok := t.chips[v.Chip]
		if !ok {
			return false
		}
		chip.Area = v.Area
		chip.SortKey = t.stackKey(chip.Owner, v.Area)
		if v.Area == domain.AreaSales {
			chip.SalesTurn = v.Turn
		}
		return true

	case domain.DiscardChip:
		if _, ok := t.chips[v.Chip]; !ok {
			return false
		}
		delete(t.chips, v.Chip)
		for i, id := range t.order {
			if id == v.Chip {
				t.order = append(t.order[:i], t.order[i+1:]...)
				break
			}
		}
		return true

	case domain.RetireCard:
		c, ok := t.cards[v.Card]
		if !ok || c.Location != LocationTable {
			return false
		}
		c.Slot = 0
		if v.Pile == domain.PileEventDiscard {
			c.Location = LocationEventDiscard
			t.eventDiscard = append(t.eventDiscard, c.ID)
			if len(t.eventPile) == 0 {
				t.recycleEvents()
			}
		} else {
			c.Location = LocationDiscard
			t.discard = append(t.discard, c.ID)
		}
		return true

	case domain.DrawEventCard:
		idx := -1
		for i, pc := range t.eventPile {
			if pc.ID == v.Card {
				idx = i
				break
			}
		}
		if idx < 0 {
			return false
		}
		t.eventPile = append(t.eventPile[:idx], t.eventPile[idx+1:]...)
		c := t.cards[v.Card]
		c.Location, c.Owner, c.Slot = LocationTable, v.Player, v.Slot
		if len(t.eventPile) == 0 {
			t.recycleEvents()
		}
		return true

	case domain.BankChanged, domain.EffectApplied:
		return true
	}
	return false
}

// Drop creates the chip a DropChip intent asks for and returns it.
func (t *Table) Drop(v domain.DropChip) (domain.TableChip, bool) {
	if t.checkPlayer(v.Player) != nil {
		return domain.TableChip{}, false
	}
	chip := &domain.TableChip{
		ID:             domain.ChipID(uuid.NewString()),
		Type:           v.Type,
		Area:           v.Area,
		Owner:          v.Player,
		ProductionTurn: v.Turn,
		SortKey:        t.stackKey(v.Player, v.Area),
	}
	if v.Area == domain.AreaSales {
		chip.SalesTurn = v.Turn
	}
	t.chips[chip.ID] = chip
	t.order = append(t.order, chip.ID)
	return *chip, true
}

// recycleEvents shuffles the event discard pile back under a fresh pile.
func (t *Table) recycleEvents() {
	if len(t.eventDiscard) == 0 {
		return
	}
	t.rng.Shuffle(len(t.eventDiscard), func(i, j int) {
		t.eventDiscard[i], t.eventDiscard[j] = t.eventDiscard[j], t.eventDiscard[i]
	})
	for i, id := range t.eventDiscard {
		c := t.cards[id]
		c.Location, c.Owner = LocationEventPile, 0
		t.eventPile = append(t.eventPile, domain.PileCard{ID: id, Kind: c.Kind, SortKey: float64(i)})
	}
	t.eventDiscard = nil
}

// stackKey returns the next position on an area's stacking axis.
func (t *Table) stackKey(owner int, area domain.Area) float64 {
	k := areaKey{owner: owner, area: area}
	key := t.nextKey[k]
	t.nextKey[k] = key + 1
	return key
}

// View returns the snapshot the resolver consumes: table cards in slot
// order, chips in creation order and the undrawn event pile.
func (t *Table) View() domain.View {
	var v domain.View
	for _, c := range t.cards {
		if c.Location == LocationTable {
			v.Cards = append(v.Cards, domain.TableCard{ID: c.ID, Kind: c.Kind, Owner: c.Owner, Slot: c.Slot})
		}
	}
	sort.Slice(v.Cards, func(i, j int) bool {
		if v.Cards[i].Owner != v.Cards[j].Owner {
			return v.Cards[i].Owner < v.Cards[j].Owner
		}
		return v.Cards[i].Slot < v.Cards[j].Slot
	})
	for _, id := range t.order {
		v.Chips = append(v.Chips, *t.chips[id])
	}
	v.EventPile = append(v.EventPile, t.eventPile...)
	return v
}

// Chips counts the player's chips of one type in an area.
func (t *Table) Chips(player int, area domain.Area, typ domain.ChipType) int {
	n := 0
	for _, c := range t.chips {
		if c.Owner == player && c.Area == area && c.Type == typ {
			n++
		}
	}
	return n
}

// Card returns a copy of the card with the given id.
func (t *Table) Card(id domain.CardID) (Card, bool) {
	c, ok := t.cards[id]
	if !ok {
		return Card{}, false
	}
	return *c, true
}

// DeckSize returns the number of undrawn main deck cards.
func (t *Table) DeckSize() int { return len(t.deck) }

func (t *Table) checkPlayer(player int) error {
	if player < 1 || player > t.numPlayers {
		return fmt.Errorf("%w: %d", ErrUnknownPlayer, player)
	}
	return nil
}
