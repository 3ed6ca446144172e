package game

import "fmt"

// --- Enums ---

type Icon int

const (
	IconNone Icon = iota
	IconGear
	IconSpark
	IconChip
	IconHeart
)

func (i Icon) String() string {
	switch i {
	case IconGear:
		return "Gear"
	case IconSpark:
		return "Spark"
	case IconChip:
		return "Chip"
	case IconHeart:
		return "Heart"
	default:
		return "None"
	}
}

// IconSet is a bitmask of icons a card counts as for adjacency checks.
type IconSet uint8

func (s IconSet) Has(i Icon) bool {
	if i == IconNone {
		return false
	}
	return s&(1<<uint(i)) != 0
}

func (s IconSet) Intersects(other IconSet) bool {
	return s&other != 0
}

func (s IconSet) Count() int {
	n := 0
	for i := IconGear; i <= IconHeart; i++ {
		if s.Has(i) {
			n++
		}
	}
	return n
}

func (s IconSet) With(i Icon) IconSet {
	if i == IconNone {
		return s
	}
	return s | 1<<uint(i)
}

// AllIcons is the set containing every icon.
const AllIcons = IconSet(1<<uint(IconGear) | 1<<uint(IconSpark) | 1<<uint(IconChip) | 1<<uint(IconHeart))

type CardKind int

const (
	KindCenter CardKind = iota
	KindExit
	KindTrap
)

func (k CardKind) String() string {
	switch k {
	case KindCenter:
		return "CENTER"
	case KindExit:
		return "EXIT"
	case KindTrap:
		return "TRAP"
	default:
		return "Unknown"
	}
}

type Side int

const (
	SideLeft Side = iota
	SideRight
)

func (s Side) String() string {
	if s == SideLeft {
		return "LEFT"
	}
	return "RIGHT"
}

type DrawSource int

const (
	DrawDeck DrawSource = iota
	DrawMarket
)

func (d DrawSource) String() string {
	if d == DrawDeck {
		return "DECK"
	}
	return "MARKET"
}

// --- Card definition (static, from the catalog) ---

// CardDef is an immutable card definition. Definitions are created once at
// catalog construction and shared by reference everywhere.
type CardDef struct {
	Name    string
	Icon    Icon
	Kind    CardKind
	Spec    EffectSpec
	Trigger TriggerKind // traps only; TriggerNone otherwise
}

func (c *CardDef) String() string {
	return c.Name
}

// --- CardInstance (runtime card in a zone) ---

// CardInstance is the single runtime incarnation of a physical card. Exactly
// one instance per card exists across all zones; zone transfers move the
// pointer, never copy it.
type CardInstance struct {
	Def    *CardDef
	FaceUp bool

	// Effect-local state. Cleared whenever the card leaves a row.
	MarkedTurn      int  // delayed-payoff mark (Patience Circuit); 0 = unmarked
	LastCenterScore int  // most recent center score (Copycat input)
	MimicIcon       Icon // adopted icon (Mimic); IconNone = own icon
	EveryIcon       bool // counts as all icons (Hollow Frame)

	// centerCredited is true while this card has been credited for its
	// current center occupancy. Cleared whenever the card is observed
	// outside a center slot.
	centerCredited bool
}

func (ci *CardInstance) String() string {
	if ci == nil {
		return "(empty)"
	}
	if !ci.FaceUp {
		return "face-down card"
	}
	return fmt.Sprintf("%s (%s)", ci.Def.Name, ci.Def.Icon)
}

// Icons returns the set of icons this card counts as for adjacency purposes.
// A face-down card exposes no icon.
func (ci *CardInstance) Icons() IconSet {
	if !ci.FaceUp {
		return 0
	}
	if ci.EveryIcon {
		return AllIcons
	}
	if ci.MimicIcon != IconNone {
		return IconSet(0).With(ci.MimicIcon)
	}
	return IconSet(0).With(ci.Def.Icon)
}

// reset clears all effect-local state. Called when the card leaves a row.
func (ci *CardInstance) reset() {
	ci.MarkedTurn = 0
	ci.LastCenterScore = 0
	ci.MimicIcon = IconNone
	ci.EveryIcon = false
	ci.centerCredited = false
}

// clone produces an independent copy sharing only the immutable definition.
func (ci *CardInstance) clone() *CardInstance {
	c := *ci
	return &c
}

// --- Actions ---

// PlayAction is the play decision for one turn: which hand card, which edge,
// and whether to set it face-down (legal only for traps).
type PlayAction struct {
	HandIndex int
	Side      Side
	FaceDown  bool
}

func (a PlayAction) String() string {
	fd := ""
	if a.FaceDown {
		fd = " face-down"
	}
	return fmt.Sprintf("play hand[%d] %s%s", a.HandIndex, a.Side, fd)
}

// DrawOption is one legal way to draw: the deck top or a specific market slot.
type DrawOption struct {
	Source      DrawSource
	MarketIndex int
}

func (d DrawOption) String() string {
	if d.Source == DrawDeck {
		return "draw DECK"
	}
	return fmt.Sprintf("draw MARKET[%d]", d.MarketIndex)
}

// Phase is the turn-pipeline step the state is waiting on. Each turn accepts
// exactly one play, then one draw, then the turn advance; a step with no
// legal option may be passed over, but calls out of order fail with
// ErrIllegalAction and leave the state untouched.
type Phase int

const (
	PhasePlay Phase = iota // awaiting the active player's play
	PhaseDraw              // play resolved; awaiting the draw
	PhaseEnd               // draw resolved; awaiting the turn advance
)

func (p Phase) String() string {
	switch p {
	case PhasePlay:
		return "PLAY"
	case PhaseDraw:
		return "DRAW"
	default:
		return "END"
	}
}

// --- Decision protocol ---

type ChoiceKind int

const (
	ChoicePushDirection ChoiceKind = iota // direction to self-push the center card
	ChoiceMarketPick                      // pick a market card (magnet, rewinder)
	ChoiceSwapTarget                      // pick an opponent row card to swap with
	ChoiceFaceDownSwap                    // pick a face-down row card, or skip
	ChoiceDiscardPick                     // pick a hand card to discard
	ChoiceTrashPick                       // pick a market card to trash
	ChoiceEdgePick                        // pick an edge card of your row to push out
	ChoicePlaceSide                       // pick the side to place a pulled card
)

func (k ChoiceKind) String() string {
	switch k {
	case ChoicePushDirection:
		return "push-direction"
	case ChoiceMarketPick:
		return "market-pick"
	case ChoiceSwapTarget:
		return "swap-target"
	case ChoiceFaceDownSwap:
		return "face-down-swap"
	case ChoiceDiscardPick:
		return "discard-pick"
	case ChoiceTrashPick:
		return "trash-pick"
	case ChoiceEdgePick:
		return "edge-pick"
	case ChoicePlaceSide:
		return "place-side"
	default:
		return "Unknown"
	}
}

// Option is a single selectable answer to a ChoiceRequest. It is a comparable
// value so submitted choices can be checked against the offered set exactly.
type Option struct {
	Side   Side // direction and edge choices
	Index  int  // index-based picks (hand, market, row position)
	Player int  // row owner for cross-row targets
	Skip   bool // decline an optional effect
}

func (o Option) String() string {
	if o.Skip {
		return "skip"
	}
	return fmt.Sprintf("{side:%s idx:%d p:%d}", o.Side, o.Index, o.Player)
}

// SideOption builds a direction/edge option.
func SideOption(s Side) Option { return Option{Side: s} }

// IndexOption builds an index-based option.
func IndexOption(i int) Option { return Option{Index: i} }

// ChoiceRequest is the suspension record for an effect decision: the kind of
// choice, the player who must answer, and the exact enumerated legal options.
type ChoiceRequest struct {
	Kind    ChoiceKind
	Player  int
	Options []Option
	Prompt  string
}

// Offers reports whether o is one of the offered options.
func (r *ChoiceRequest) Offers(o Option) bool {
	for _, c := range r.Options {
		if c == o {
			return true
		}
	}
	return false
}

// Chooser is the decision-protocol seam. Whenever resolution needs a choice it
// cannot make unilaterally, it calls the owning player's Chooser with the
// exact option set and resumes from the single returned option. Baseline
// agents, the search agent, and interactive drivers all satisfy it.
type Chooser interface {
	ChooseOption(state *GameState, req *ChoiceRequest) (Option, error)
}
