package game

const (
	RowSize        = 3
	HandLimit      = 2
	MarketSize     = 3
	StartingHand   = 2
	DefaultHorizon = 10

	// centerRetriggerCap bounds consecutive center re-evaluations per play.
	// The chain is implicitly bounded by the cards available to push through
	// the row; exceeding the cap signals a resolver defect.
	centerRetriggerCap = 32
)

// PlayerState holds one player's hand, row, and score.
type PlayerState struct {
	Hand  []*CardInstance
	Row   []*CardInstance
	Score int
}

func (p *PlayerState) clone() *PlayerState {
	c := &PlayerState{Score: p.Score}
	c.Hand = make([]*CardInstance, len(p.Hand))
	for i, ci := range p.Hand {
		c.Hand[i] = ci.clone()
	}
	c.Row = make([]*CardInstance, len(p.Row))
	for i, ci := range p.Row {
		c.Row[i] = ci.clone()
	}
	return c
}

// ActiveEffectKind names the timed effects that can persist across steps.
type ActiveEffectKind int

const (
	EffectEmbargo  ActiveEffectKind = iota // market locked for the owner's opponent
	EffectCooldown                         // named card unplayable by its owner
)

func (k ActiveEffectKind) String() string {
	if k == EffectEmbargo {
		return "embargo"
	}
	return "cooldown"
}

// ActiveEffect is a timed effect record. It is live while ExpiresTurn is zero
// or strictly greater than the current turn counter; liveness is always
// computed from this comparison, never from list membership.
type ActiveEffect struct {
	Kind        ActiveEffectKind
	Player      int    // owning player
	CardName    string // cooldown target card
	ExpiresTurn int    // 0 = no expiry
}

// Live reports whether the effect is still in force at the given turn.
func (e ActiveEffect) Live(turn int) bool {
	return e.ExpiresTurn == 0 || e.ExpiresTurn > turn
}

// GameState is the complete state of one game. It is created once from the
// catalog and a shuffle seed, mutated exclusively by the Engine, and becomes
// terminal once the turn counter passes the horizon.
type GameState struct {
	Players [2]*PlayerState
	Market  []*CardInstance
	Deck    []*CardInstance // drawn from the head
	Trash   []*CardInstance // face-down, out of circulation
	Removed []*CardInstance // permanently removed from the game

	Turn    int   // 1-based; one tick per full round
	Current int   // side to move (0 or 1)
	Phase   Phase // turn-pipeline step the state is waiting on
	Horizon int   // game ends when Turn would exceed this

	Active []ActiveEffect

	Over   bool
	Winner int // 0, 1, or -1 (tie / undecided)

	// Ledger records total points credited per card name.
	Ledger map[string]int
}

func newGameState(horizon int) *GameState {
	if horizon <= 0 {
		horizon = DefaultHorizon
	}
	return &GameState{
		Players: [2]*PlayerState{{}, {}},
		Turn:    1,
		Horizon: horizon,
		Winner:  -1,
		Ledger:  make(map[string]int),
	}
}

// Opponent returns the index of the other player.
func (gs *GameState) Opponent(player int) int {
	return 1 - player
}

// CenterCard returns the player's center card, which exists iff the row has
// exactly three cards.
func (gs *GameState) CenterCard(player int) *CardInstance {
	row := gs.Players[player].Row
	if len(row) != RowSize {
		return nil
	}
	return row[RowSize/2]
}

// HasEmbargo reports whether an opposing embargo currently locks the market
// for the given player.
func (gs *GameState) HasEmbargo(player int) bool {
	for _, e := range gs.Active {
		if e.Kind == EffectEmbargo && e.Player != player && e.Live(gs.Turn) {
			return true
		}
	}
	return false
}

// CooldownBlocked reports whether the named card is currently unplayable by
// the given player.
func (gs *GameState) CooldownBlocked(player int, name string) bool {
	for _, e := range gs.Active {
		if e.Kind == EffectCooldown && e.Player == player && e.CardName == name && e.Live(gs.Turn) {
			return true
		}
	}
	return false
}

// Clone produces a fully independent deep copy. Card definitions remain
// shared by reference; every instance is copied. Search agents evaluate
// candidate moves against clones so no hypothetical future aliases the live
// state.
func (gs *GameState) Clone() *GameState {
	c := &GameState{
		Turn:    gs.Turn,
		Current: gs.Current,
		Phase:   gs.Phase,
		Horizon: gs.Horizon,
		Over:    gs.Over,
		Winner:  gs.Winner,
	}
	for i, p := range gs.Players {
		c.Players[i] = p.clone()
	}
	c.Market = cloneCards(gs.Market)
	c.Deck = cloneCards(gs.Deck)
	c.Trash = cloneCards(gs.Trash)
	c.Removed = cloneCards(gs.Removed)
	c.Active = append([]ActiveEffect(nil), gs.Active...)
	c.Ledger = make(map[string]int, len(gs.Ledger))
	for k, v := range gs.Ledger {
		c.Ledger[k] = v
	}
	return c
}

func cloneCards(cards []*CardInstance) []*CardInstance {
	if cards == nil {
		return nil
	}
	out := make([]*CardInstance, len(cards))
	for i, ci := range cards {
		out[i] = ci.clone()
	}
	return out
}

// AllInstances returns every card instance across all zones of both players.
// The result's length never changes during a game except through permanent
// removal, and no instance ever appears twice.
func (gs *GameState) AllInstances() []*CardInstance {
	var out []*CardInstance
	for _, p := range gs.Players {
		out = append(out, p.Hand...)
		out = append(out, p.Row...)
	}
	out = append(out, gs.Market...)
	out = append(out, gs.Deck...)
	out = append(out, gs.Trash...)
	return out
}

// credit applies points to a player's score and the per-card ledger.
func (gs *GameState) credit(player int, cardName string, points int) {
	gs.Players[player].Score += points
	if points != 0 {
		gs.Ledger[cardName] += points
	}
}

// finish settles delayed payoffs and records the winner. Higher score wins;
// ties break toward the larger row; a full tie has no winner.
func (gs *GameState) finish() {
	for pi, p := range gs.Players {
		for _, ci := range p.Row {
			if ci.MarkedTurn > 0 {
				gs.credit(pi, ci.Def.Name, gs.Turn-ci.MarkedTurn)
			}
		}
	}
	gs.Over = true
	p0, p1 := gs.Players[0], gs.Players[1]
	switch {
	case p0.Score > p1.Score:
		gs.Winner = 0
	case p1.Score > p0.Score:
		gs.Winner = 1
	case len(p0.Row) > len(p1.Row):
		gs.Winner = 0
	case len(p1.Row) > len(p0.Row):
		gs.Winner = 1
	default:
		gs.Winner = -1
	}
}
