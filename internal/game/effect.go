package game

// EffectOp enumerates every effect computation in the catalog. Effects are a
// closed tagged variant interpreted by the resolver, so each effect's timing
// and choice requirements are enumerable rather than ad hoc per card.
type EffectOp int

const (
	OpNone EffectOp = iota

	// Center ops
	OpScore        // score Points
	OpLonerBonus   // score Points if neither neighbor shares an icon, else 0
	OpCopycat      // score the lower of the neighbors' last center scores
	OpSiphon       // score Points; opponent scores OppPoints
	OpJealousy     // score Points per opponent row card sharing an icon
	OpSequence     // score Points if own row shows 3 distinct icons, else AltPoints
	OpKickback     // score Points, then self-push one slot toward a chosen edge
	OpPatience     // mark the current turn; at game end score elapsed turns
	OpSwapOpponent // score Points; swap this card with a chosen opponent row card
	OpVoidSlots    // score Points per empty row slot across both rows
	OpBuddy        // score Points if own row has exactly 2 cards, else 0
	OpMimic        // score Points; adopt the left neighbor's icon
	OpTugOfWar     // score Points; a full opponent row must push out an edge card
	OpHollowFrame  // score 0; this card counts as every icon
	OpEchoParity   // score Points if the turn counter is even, else 0
	OpOneShot      // score Points; remove this card from the game
	OpEmbargo      // score Points; lock the market for the opponent's next turn
	OpScavenge     // may swap this card with any face-down row card
	OpMagnet       // score Points; pull a market card into an adjacent slot
	OpHotPotato    // score Points; this card goes to the opponent's hand

	// Exit ops
	OpExitScore // score Points when pushed out
	OpSpiteExit // opponent must push out an edge card (no triggers for it)
	OpBoomerang // return to owner's hand; unplayable next turn
	OpDonate    // goes to the opponent's hand instead of the market
	OpRewind    // take a chosen market card to hand; this card goes to market

	// Trap ops (fire once on reveal)
	OpTrapCancel   // cancel the triggering score; owner scores Points
	OpTrapRedirect // the drawn market card goes to the owner's hand instead
	OpTrapSnare    // the played card goes to the market instead of the row
	OpTrapMirror   // owner scores the same amount as the triggering score
)

// EffectSpec is the full, data-only description of a card's effect.
type EffectSpec struct {
	Op        EffectOp
	Points    int // primary score amount
	OppPoints int // score granted to the opponent (OpSiphon)
	AltPoints int // fallback score (OpSequence)
}

// TriggerKind enumerates the event conditions that reveal a face-down trap.
// All conditions concern actions by the trap owner's opponent.
type TriggerKind int

const (
	TriggerNone           TriggerKind = iota
	TriggerOppScored                  // opponent scored from a center effect
	TriggerOppMarketDraw              // opponent took a card from the market
	TriggerOppIconPlay                // opponent played a card sharing an icon with the owner's center card
	TriggerOppCenterScore             // opponent's center card scored
)

func (t TriggerKind) String() string {
	switch t {
	case TriggerOppScored:
		return "opponent-scored"
	case TriggerOppMarketDraw:
		return "opponent-market-draw"
	case TriggerOppIconPlay:
		return "opponent-icon-play"
	case TriggerOppCenterScore:
		return "opponent-center-score"
	default:
		return "none"
	}
}
