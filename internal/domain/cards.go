package domain

import "fmt"

// CardKind identifies what a card does when it resolves.
type CardKind string

const (
	CardCocaine     CardKind = "cocaine"
	CardMarijuana   CardKind = "marijuana"
	CardTruck       CardKind = "truck"
	CardTrain       CardKind = "train"
	CardExport      CardKind = "export"
	CardLocalMarket CardKind = "local_market"
	CardDrought     CardKind = "drought"
	CardAttack      CardKind = "attack"
	CardEspionage   CardKind = "espionage"
	CardPoliceBribe CardKind = "police_bribe"
	CardBigDeal     CardKind = "big_deal"
)

// Category groups card kinds by the phase that consumes them.
type Category int

const (
	CategoryUnknown Category = iota
	CategoryProduction
	CategoryTransport
	CategorySales
	CategoryEvent
)

// Category returns the phase family k belongs to.
func (k CardKind) Category() Category {
	switch k {
	case CardCocaine, CardMarijuana:
		return CategoryProduction
	case CardTruck, CardTrain:
		return CategoryTransport
	case CardExport, CardLocalMarket:
		return CategorySales
	case CardDrought, CardAttack, CardEspionage, CardPoliceBribe, CardBigDeal:
		return CategoryEvent
	default:
		return CategoryUnknown
	}
}

// Chip returns the chip type a production card drops.
func (k CardKind) Chip() (ChipType, bool) {
	switch k {
	case CardCocaine:
		return ChipCocaine, true
	case CardMarijuana:
		return ChipCannabis, true
	default:
		return "", false
	}
}

// Effect returns the status effect an event card registers.
func (k CardKind) Effect() (EffectKind, bool) {
	switch k {
	case CardDrought:
		return EffectDrought, true
	case CardAttack:
		return EffectAttack, true
	case CardEspionage:
		return EffectEspionage, true
	case CardPoliceBribe:
		return EffectPoliceBribe, true
	case CardBigDeal:
		return EffectBigDeal, true
	default:
		return "", false
	}
}

// ChipType is the resource a chip represents.
type ChipType string

const (
	// ChipCocaine is resource A: it wins ties in pick order.
	ChipCocaine ChipType = "cocaine"
	// ChipCannabis is resource B.
	ChipCannabis ChipType = "cannabis"
)

// Area is a per-player chip holding zone.
type Area int

const (
	AreaProduction Area = 1
	AreaSales      Area = 2
)

func (a Area) String() string {
	switch a {
	case AreaProduction:
		return "production"
	case AreaSales:
		return "sales"
	default:
		return "none"
	}
}

func (a Area) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *Area) UnmarshalText(text []byte) error {
	switch string(text) {
	case "production":
		*a = AreaProduction
	case "sales":
		*a = AreaSales
	default:
		return fmt.Errorf("unknown area %q", text)
	}
	return nil
}

// Pile is where a retired card goes.
type Pile string

const (
	PileDiscard      Pile = "discard"
	PileEventDiscard Pile = "event_discard"
)

// EventSlot is the table slot an event card is drawn onto.
const EventSlot = 6
