package game

import (
	"fmt"

	"conveyor/internal/log"
)

// Engine applies plays, pushes, triggers, and timed effects to a GameState.
// It is the single simulator: the match driver, the external session, and the
// search agents all drive this same implementation, against live or cloned
// state, so there is no second resolution path to drift.
type Engine struct {
	State    *GameState
	Events   log.EventLogger
	choosers [2]Chooser

	// Per-resolution scratch consumed by the play and draw paths.
	snared     bool
	redirectTo int // player whose hand receives the intercepted draw; -1 = none
}

// NewEngine wires an engine over the given state. A nil logger discards
// events.
func NewEngine(state *GameState, choosers [2]Chooser, events log.EventLogger) *Engine {
	if events == nil {
		events = log.DiscardLogger{}
	}
	return &Engine{State: state, Events: events, choosers: choosers, redirectTo: -1}
}

// LegalActions enumerates every legal play for the given player, in fixed
// order: hand index, then side (LEFT before RIGHT), then face-up before
// face-down. Cooldown-blocked cards are excluded.
func (e *Engine) LegalActions(player int) []PlayAction {
	gs := e.State
	if gs.Over {
		return nil
	}
	var out []PlayAction
	for i, ci := range gs.Players[player].Hand {
		if gs.CooldownBlocked(player, ci.Def.Name) {
			continue
		}
		for _, side := range []Side{SideLeft, SideRight} {
			out = append(out, PlayAction{HandIndex: i, Side: side})
			if ci.Def.Kind == KindTrap {
				out = append(out, PlayAction{HandIndex: i, Side: side, FaceDown: true})
			}
		}
	}
	return out
}

// LegalDraws enumerates every legal draw for the given player: the deck top
// if the deck is non-empty, and each market slot unless an opposing embargo
// locks the market.
func (e *Engine) LegalDraws(player int) []DrawOption {
	gs := e.State
	if gs.Over {
		return nil
	}
	var out []DrawOption
	if len(gs.Deck) > 0 {
		out = append(out, DrawOption{Source: DrawDeck})
	}
	if !gs.HasEmbargo(player) {
		for i := range gs.Market {
			out = append(out, DrawOption{Source: DrawMarket, MarketIndex: i})
		}
	}
	return out
}

// ApplyPlay resolves the active player's play: the card leaves the hand,
// opposing traps get their look, the card enters the row at the chosen edge,
// any overflow push resolves, and center occupancy is re-evaluated to a fixed
// point. An illegal action fails before any mutation.
func (e *Engine) ApplyPlay(action PlayAction) error {
	gs := e.State
	if gs.Over {
		return illegalf("game is over")
	}
	if gs.Phase != PhasePlay {
		return illegalf("wrong phase: the play for this turn was already made")
	}
	player := gs.Current
	p := gs.Players[player]
	if action.HandIndex < 0 || action.HandIndex >= len(p.Hand) {
		return illegalf("hand index %d out of range", action.HandIndex)
	}
	card := p.Hand[action.HandIndex]
	if action.FaceDown && card.Def.Kind != KindTrap {
		return illegalf("%s is not a trap and cannot be played face-down", card.Def.Name)
	}
	if gs.CooldownBlocked(player, card.Def.Name) {
		return illegalf("%s cannot be played this turn", card.Def.Name)
	}
	gs.Phase = PhaseDraw

	p.Hand = append(p.Hand[:action.HandIndex], p.Hand[action.HandIndex+1:]...)
	card.FaceUp = !action.FaceDown
	e.Events.Log(log.NewPlayEvent(gs.Turn, player, card.Def.Name, action.Side.String(), action.FaceDown))

	// The play may spring an opposing Snare before the card reaches the row.
	e.snared = false
	if err := e.fireTraps(trapEvent{kind: trapEventPlay, player: player, card: card}); err != nil {
		return err
	}
	if e.snared {
		e.snared = false
		e.Events.Log(log.GameEvent{
			Turn: gs.Turn, Player: player, Type: log.EventSnared, Card: card.Def.Name,
			Details: fmt.Sprintf("%s is snared and diverted to the market", card.Def.Name),
		})
		card.reset()
		return e.addToMarket(player, card)
	}

	var ejected *CardInstance
	if action.Side == SideLeft {
		p.Row = append([]*CardInstance{card}, p.Row...)
		if len(p.Row) > RowSize {
			ejected = p.Row[len(p.Row)-1]
			p.Row = p.Row[:len(p.Row)-1]
		}
	} else {
		p.Row = append(p.Row, card)
		if len(p.Row) > RowSize {
			ejected = p.Row[0]
			p.Row = p.Row[1:]
		}
	}
	e.noteRowChanged(player)
	if ejected != nil {
		e.Events.Log(log.GameEvent{
			Turn: gs.Turn, Player: player, Type: log.EventPush, Card: ejected.Def.Name,
			Details: fmt.Sprintf("%s is pushed out", ejected),
		})
		if err := e.handleEjected(player, ejected); err != nil {
			return err
		}
	}
	return e.evaluateCenters(player)
}

// ApplyDraw resolves the active player's draw from the deck top or a specific
// market slot, including trap interception and hand-limit enforcement. The
// play step must already be resolved, or have no legal option.
func (e *Engine) ApplyDraw(opt DrawOption) error {
	gs := e.State
	if gs.Over {
		return illegalf("game is over")
	}
	player := gs.Current
	p := gs.Players[player]

	switch gs.Phase {
	case PhaseDraw:
	case PhasePlay:
		if len(e.LegalActions(player)) > 0 {
			return illegalf("wrong phase: the play step is pending")
		}
	default:
		return illegalf("wrong phase: the draw for this turn was already made")
	}

	switch opt.Source {
	case DrawDeck:
		if len(gs.Deck) == 0 {
			return illegalf("deck is empty")
		}
		card := gs.Deck[0]
		gs.Deck = gs.Deck[1:]
		card.FaceUp = true
		p.Hand = append(p.Hand, card)
		e.Events.Log(log.NewDrawEvent(gs.Turn, player, "DECK"))

	case DrawMarket:
		if gs.HasEmbargo(player) {
			return illegalf("market is locked by an embargo")
		}
		if opt.MarketIndex < 0 || opt.MarketIndex >= len(gs.Market) {
			return illegalf("market index %d out of range", opt.MarketIndex)
		}
		card := gs.Market[opt.MarketIndex]
		gs.Market = append(gs.Market[:opt.MarketIndex], gs.Market[opt.MarketIndex+1:]...)
		e.Events.Log(log.GameEvent{
			Turn: gs.Turn, Player: player, Type: log.EventMarketDraw, Card: card.Def.Name,
			Details: fmt.Sprintf("P%d takes %s from the market", player+1, card.Def.Name),
		})
		e.redirectTo = -1
		if err := e.fireTraps(trapEvent{kind: trapEventMarketDraw, player: player, card: card}); err != nil {
			return err
		}
		if to := e.redirectTo; to >= 0 {
			e.redirectTo = -1
			gs.Players[to].Hand = append(gs.Players[to].Hand, card)
			e.Events.Log(log.GameEvent{
				Turn: gs.Turn, Player: to, Type: log.EventRedirect, Card: card.Def.Name,
				Details: fmt.Sprintf("%s is redirected to P%d's hand", card.Def.Name, to+1),
			})
			if err := e.enforceHandLimit(to, ""); err != nil {
				return err
			}
		} else {
			p.Hand = append(p.Hand, card)
		}

	default:
		return illegalf("unknown draw source")
	}

	gs.Phase = PhaseEnd
	return e.enforceHandLimit(player, "")
}

// EndTurn refills the market from the deck head and advances the turn. Every
// pipeline step with a legal option must be resolved first. The counter ticks
// once per full round; expired timed effects are swept lazily (liveness is
// always recomputed from expiry, never from membership). The game finishes
// when the counter would exceed the horizon.
func (e *Engine) EndTurn() error {
	gs := e.State
	if gs.Over {
		return illegalf("game is over")
	}
	switch gs.Phase {
	case PhaseDraw:
		if len(e.LegalDraws(gs.Current)) > 0 {
			return illegalf("wrong phase: the draw step is pending")
		}
	case PhasePlay:
		if len(e.LegalActions(gs.Current)) > 0 || len(e.LegalDraws(gs.Current)) > 0 {
			return illegalf("wrong phase: the play step is pending")
		}
	}
	gs.Phase = PhasePlay
	e.refillMarket()
	gs.Current = gs.Opponent(gs.Current)
	if gs.Current == 0 {
		gs.Turn++
		live := gs.Active[:0]
		for _, a := range gs.Active {
			if a.Live(gs.Turn) {
				live = append(live, a)
			}
		}
		gs.Active = live
		if gs.Turn > gs.Horizon {
			gs.finish()
			e.Events.Log(log.NewGameEndEvent(gs.Turn, gs.Winner, resultString(gs)))
		}
	}
	return nil
}

func resultString(gs *GameState) string {
	if gs.Winner < 0 {
		return fmt.Sprintf("tie %d-%d", gs.Players[0].Score, gs.Players[1].Score)
	}
	return fmt.Sprintf("P%d wins %d-%d", gs.Winner+1,
		gs.Players[gs.Winner].Score, gs.Players[gs.Opponent(gs.Winner)].Score)
}

func (e *Engine) refillMarket() {
	gs := e.State
	for len(gs.Market) < MarketSize && len(gs.Deck) > 0 {
		card := gs.Deck[0]
		gs.Deck = gs.Deck[1:]
		card.FaceUp = true
		gs.Market = append(gs.Market, card)
	}
}

// --- Center occupancy ---

// noteRowChanged clears the credited flag of every card in the row that is
// not currently occupying a center slot. A card keeps its credit only while
// it stays centered; leaving the middle ends the occupancy and makes a later
// return a fresh trigger.
func (e *Engine) noteRowChanged(player int) {
	row := e.State.Players[player].Row
	for i, ci := range row {
		if len(row) == RowSize && i == RowSize/2 {
			continue
		}
		ci.centerCredited = false
	}
}

// evaluateCenters re-derives center occupancy after row mutations. An
// un-credited face-up CENTER card in a middle slot fires once per occupancy;
// effects may mutate either row, so evaluation repeats until a fixed point.
// The cap guards against effect combinations that would otherwise loop;
// exceeding it is a defect, not a truncation.
func (e *Engine) evaluateCenters(first int) error {
	for n := 0; n < centerRetriggerCap; n++ {
		fired, err := e.fireCenterOnce(first)
		if err != nil {
			return err
		}
		if fired {
			continue
		}
		fired, err = e.fireCenterOnce(e.State.Opponent(first))
		if err != nil {
			return err
		}
		if !fired {
			return nil
		}
	}
	return defectf("center re-trigger cap (%d) exceeded", centerRetriggerCap)
}

func (e *Engine) fireCenterOnce(player int) (bool, error) {
	center := e.State.CenterCard(player)
	if center == nil || !center.FaceUp || center.Def.Kind != KindCenter || center.centerCredited {
		return false, nil
	}
	center.centerCredited = true
	if err := e.resolveCenter(player, center); err != nil {
		return false, err
	}
	return true, nil
}

// resolveCenter runs one center trigger: the effect computation, the score
// credit, the trap window, and finally any deferred pushes or hand-offs the
// effect produced.
func (e *Engine) resolveCenter(player int, card *CardInstance) error {
	points, after, err := e.applyCenterOp(player, card)
	if err != nil {
		return err
	}
	card.LastCenterScore = points
	e.State.credit(player, card.Def.Name, points)
	e.Events.Log(log.NewCenterScoreEvent(e.State.Turn, player, card.Def.Name, points))
	if points > 0 {
		if err := e.fireTraps(trapEvent{kind: trapEventScore, player: player, card: card, points: points}); err != nil {
			return err
		}
	}
	if after != nil {
		return after()
	}
	return nil
}

// applyCenterOp interprets a center effect spec. Row mutations happen inline;
// push-out handling and forced discards are returned as a deferred step so
// they run after the score is credited and traps have fired, matching the
// trigger ordering of the turn pipeline.
func (e *Engine) applyCenterOp(player int, card *CardInstance) (int, func() error, error) {
	gs := e.State
	p := gs.Players[player]
	opp := gs.Opponent(player)
	spec := card.Def.Spec

	switch spec.Op {
	case OpScore:
		return spec.Points, nil, nil

	case OpLonerBonus:
		mine := card.Icons()
		if p.Row[0].Icons().Intersects(mine) || p.Row[2].Icons().Intersects(mine) {
			return 0, nil, nil
		}
		return spec.Points, nil, nil

	case OpCopycat:
		left, right := p.Row[0].LastCenterScore, p.Row[2].LastCenterScore
		return min(left, right), nil, nil

	case OpSiphon:
		gs.Players[opp].Score += spec.OppPoints
		return spec.Points, nil, nil

	case OpJealousy:
		count := 0
		for _, c := range gs.Players[opp].Row {
			if c.Icons().Intersects(card.Icons()) {
				count++
			}
		}
		return spec.Points * count, nil, nil

	case OpSequence:
		var union IconSet
		for _, c := range p.Row {
			union |= c.Icons()
		}
		if union.Count() == 3 {
			return spec.Points, nil, nil
		}
		return spec.AltPoints, nil, nil

	case OpKickback:
		// The center of a full row always has a neighbor on each side.
		req := &ChoiceRequest{
			Kind:    ChoicePushDirection,
			Player:  player,
			Options: []Option{SideOption(SideLeft), SideOption(SideRight)},
			Prompt:  "Choose which direction to push " + card.Def.Name,
		}
		opt, err := e.choose(player, req)
		if err != nil {
			return 0, nil, err
		}
		var displaced *CardInstance
		if opt.Side == SideLeft {
			displaced = p.Row[0]
			p.Row = []*CardInstance{card, p.Row[2]}
		} else {
			displaced = p.Row[2]
			p.Row = []*CardInstance{p.Row[0], card}
		}
		e.noteRowChanged(player)
		e.Events.Log(log.GameEvent{
			Turn: gs.Turn, Player: player, Type: log.EventPush, Card: displaced.Def.Name,
			Details: fmt.Sprintf("%s pushes %s out", card.Def.Name, displaced),
		})
		return spec.Points, func() error { return e.handleEjected(player, displaced) }, nil

	case OpPatience:
		card.MarkedTurn = gs.Turn
		return 0, nil, nil

	case OpSwapOpponent:
		oppRow := gs.Players[opp].Row
		if len(oppRow) == 0 {
			return spec.Points, nil, nil
		}
		options := make([]Option, len(oppRow))
		for i := range oppRow {
			options[i] = IndexOption(i)
		}
		req := &ChoiceRequest{
			Kind:    ChoiceSwapTarget,
			Player:  player,
			Options: options,
			Prompt:  "Choose which opponent card to swap with",
		}
		opt, err := e.choose(player, req)
		if err != nil {
			return 0, nil, err
		}
		target := oppRow[opt.Index]
		oppRow[opt.Index] = card
		p.Row[RowSize/2] = target
		e.Events.Log(log.GameEvent{
			Turn: gs.Turn, Player: player, Type: log.EventSwap, Card: card.Def.Name,
			Details: fmt.Sprintf("%s swaps with %s", card.Def.Name, target),
		})
		e.noteRowChanged(player)
		e.noteRowChanged(opp)
		return spec.Points, nil, nil

	case OpVoidSlots:
		empty := (RowSize - len(gs.Players[0].Row)) + (RowSize - len(gs.Players[1].Row))
		return spec.Points * empty, nil, nil

	case OpBuddy:
		if len(p.Row) == 2 {
			return spec.Points, nil, nil
		}
		return 0, nil, nil

	case OpMimic:
		left := p.Row[0]
		if left.FaceUp && left.Def.Icon != IconNone {
			card.MimicIcon = left.Def.Icon
		}
		return spec.Points, nil, nil

	case OpTugOfWar:
		if len(gs.Players[opp].Row) == RowSize {
			return spec.Points, func() error { return e.forceEdgeEject(opp, true) }, nil
		}
		return spec.Points, nil, nil

	case OpHollowFrame:
		card.EveryIcon = true
		return 0, nil, nil

	case OpEchoParity:
		if gs.Turn%2 == 0 {
			return spec.Points, nil, nil
		}
		return 0, nil, nil

	case OpOneShot:
		p.Row = []*CardInstance{p.Row[0], p.Row[2]}
		e.noteRowChanged(player)
		card.reset()
		gs.Removed = append(gs.Removed, card)
		e.Events.Log(log.GameEvent{
			Turn: gs.Turn, Player: player, Type: log.EventRemoved, Card: card.Def.Name,
			Details: fmt.Sprintf("%s is removed from the game", card.Def.Name),
		})
		return spec.Points, nil, nil

	case OpEmbargo:
		// The lock must cover the opponent's next turn, which falls in the
		// next round when the owner moves second.
		expiry := gs.Turn + 1
		if player == 1 {
			expiry = gs.Turn + 2
		}
		gs.Active = append(gs.Active, ActiveEffect{Kind: EffectEmbargo, Player: player, ExpiresTurn: expiry})
		e.Events.Log(log.GameEvent{
			Turn: gs.Turn, Player: player, Type: log.EventEmbargo, Card: card.Def.Name,
			Details: fmt.Sprintf("P%d locks the market", player+1),
		})
		return spec.Points, nil, nil

	case OpScavenge:
		var options []Option
		for pi, pl := range gs.Players {
			for i, c := range pl.Row {
				if !c.FaceUp {
					options = append(options, Option{Player: pi, Index: i})
				}
			}
		}
		if len(options) == 0 {
			return 0, nil, nil
		}
		options = append(options, Option{Skip: true})
		req := &ChoiceRequest{
			Kind:    ChoiceFaceDownSwap,
			Player:  player,
			Options: options,
			Prompt:  "Choose a face-down card to swap with, or skip",
		}
		opt, err := e.choose(player, req)
		if err != nil {
			return 0, nil, err
		}
		if opt.Skip {
			return 0, nil, nil
		}
		target := gs.Players[opt.Player].Row[opt.Index]
		gs.Players[opt.Player].Row[opt.Index] = card
		p.Row[RowSize/2] = target
		e.Events.Log(log.GameEvent{
			Turn: gs.Turn, Player: player, Type: log.EventSwap, Card: card.Def.Name,
			Details: fmt.Sprintf("%s swaps with a face-down card", card.Def.Name),
		})
		e.noteRowChanged(player)
		e.noteRowChanged(opt.Player)
		return 0, nil, nil

	case OpMagnet:
		if len(gs.Market) == 0 {
			return spec.Points, nil, nil
		}
		mOptions := make([]Option, len(gs.Market))
		for i := range gs.Market {
			mOptions[i] = IndexOption(i)
		}
		mOpt, err := e.choose(player, &ChoiceRequest{
			Kind:    ChoiceMarketPick,
			Player:  player,
			Options: mOptions,
			Prompt:  "Choose which market card to pull",
		})
		if err != nil {
			return 0, nil, err
		}
		sOpt, err := e.choose(player, &ChoiceRequest{
			Kind:    ChoicePlaceSide,
			Player:  player,
			Options: []Option{SideOption(SideLeft), SideOption(SideRight)},
			Prompt:  "Choose which side to place the card",
		})
		if err != nil {
			return 0, nil, err
		}
		pulled := gs.Market[mOpt.Index]
		gs.Market = append(gs.Market[:mOpt.Index], gs.Market[mOpt.Index+1:]...)
		pulled.FaceUp = true
		var displaced *CardInstance
		if sOpt.Side == SideLeft {
			displaced = p.Row[0]
			p.Row = []*CardInstance{pulled, card, p.Row[2]}
		} else {
			displaced = p.Row[2]
			p.Row = []*CardInstance{p.Row[0], card, pulled}
		}
		e.noteRowChanged(player)
		e.Events.Log(log.GameEvent{
			Turn: gs.Turn, Player: player, Type: log.EventPush, Card: displaced.Def.Name,
			Details: fmt.Sprintf("%s displaces %s", card.Def.Name, displaced),
		})
		// The displaced card goes straight back to the market, no exit trigger.
		displaced.reset()
		if err := e.addToMarket(player, displaced); err != nil {
			return 0, nil, err
		}
		return spec.Points, nil, nil

	case OpHotPotato:
		p.Row = []*CardInstance{p.Row[0], p.Row[2]}
		e.noteRowChanged(player)
		card.reset()
		card.FaceUp = true
		name := card.Def.Name
		gs.Players[opp].Hand = append(gs.Players[opp].Hand, card)
		e.Events.Log(log.GameEvent{
			Turn: gs.Turn, Player: player, Type: log.EventHandOff, Card: name,
			Details: fmt.Sprintf("%s lands in P%d's hand", name, opp+1),
		})
		return spec.Points, func() error { return e.enforceHandLimit(opp, name) }, nil

	default:
		return 0, nil, defectf("unhandled center op %d for %s", spec.Op, card.Def.Name)
	}
}

// --- Pushes and ejections ---

// handleEjected processes a card removed from a row by a push. A face-down
// trap is trashed unrevealed with no effect; a face-up EXIT card resolves its
// exit effect against the owner's state first; then the card is handed to the
// market unless the effect re-routes it.
func (e *Engine) handleEjected(owner int, card *CardInstance) error {
	gs := e.State
	if !card.FaceUp {
		card.reset()
		gs.Trash = append(gs.Trash, card)
		e.Events.Log(log.GameEvent{
			Turn: gs.Turn, Player: owner, Type: log.EventMarketTrash, Card: card.Def.Name,
			Details: "a face-down card is trashed unrevealed",
		})
		return nil
	}

	if card.Def.Kind == KindExit {
		spec := card.Def.Spec
		switch spec.Op {
		case OpExitScore:
			gs.credit(owner, card.Def.Name, spec.Points)
			e.Events.Log(log.NewExitScoreEvent(gs.Turn, owner, card.Def.Name, spec.Points))

		case OpSpiteExit:
			if err := e.forceEdgeEject(gs.Opponent(owner), false); err != nil {
				return err
			}

		case OpBoomerang:
			card.reset()
			gs.Players[owner].Hand = append(gs.Players[owner].Hand, card)
			gs.Active = append(gs.Active, ActiveEffect{
				Kind: EffectCooldown, Player: owner, CardName: card.Def.Name, ExpiresTurn: gs.Turn + 2,
			})
			e.Events.Log(log.GameEvent{
				Turn: gs.Turn, Player: owner, Type: log.EventReturnToHand, Card: card.Def.Name,
				Details: fmt.Sprintf("%s returns to P%d's hand", card.Def.Name, owner+1),
			})
			return e.enforceHandLimit(owner, "")

		case OpDonate:
			opp := gs.Opponent(owner)
			card.reset()
			gs.Players[opp].Hand = append(gs.Players[opp].Hand, card)
			e.Events.Log(log.GameEvent{
				Turn: gs.Turn, Player: owner, Type: log.EventHandOff, Card: card.Def.Name,
				Details: fmt.Sprintf("%s is donated to P%d's hand", card.Def.Name, opp+1),
			})
			return e.enforceHandLimit(opp, "")

		case OpRewind:
			if len(gs.Market) > 0 {
				options := make([]Option, len(gs.Market))
				for i := range gs.Market {
					options[i] = IndexOption(i)
				}
				opt, err := e.choose(owner, &ChoiceRequest{
					Kind:    ChoiceMarketPick,
					Player:  owner,
					Options: options,
					Prompt:  "Choose which market card to take",
				})
				if err != nil {
					return err
				}
				taken := gs.Market[opt.Index]
				gs.Market = append(gs.Market[:opt.Index], gs.Market[opt.Index+1:]...)
				gs.Players[owner].Hand = append(gs.Players[owner].Hand, taken)
				e.Events.Log(log.GameEvent{
					Turn: gs.Turn, Player: owner, Type: log.EventMarketDraw, Card: taken.Def.Name,
					Details: fmt.Sprintf("%s retrieves %s from the market", card.Def.Name, taken.Def.Name),
				})
				if err := e.enforceHandLimit(owner, ""); err != nil {
					return err
				}
			}
		}
	}

	card.reset()
	return e.addToMarket(owner, card)
}

// forceEdgeEject makes the given player remove an edge card of their choice.
// With triggers, the ejected card gets full exit handling; without, it goes
// straight to the market.
func (e *Engine) forceEdgeEject(player int, withTriggers bool) error {
	gs := e.State
	row := gs.Players[player].Row
	if len(row) == 0 {
		return nil
	}
	options := []Option{SideOption(SideLeft)}
	if len(row) > 1 {
		options = append(options, SideOption(SideRight))
	}
	opt, err := e.choose(player, &ChoiceRequest{
		Kind:    ChoiceEdgePick,
		Player:  player,
		Options: options,
		Prompt:  "Choose which edge card to push out",
	})
	if err != nil {
		return err
	}
	var card *CardInstance
	if opt.Side == SideLeft {
		card = row[0]
		gs.Players[player].Row = row[1:]
	} else {
		card = row[len(row)-1]
		gs.Players[player].Row = row[:len(row)-1]
	}
	e.noteRowChanged(player)
	e.Events.Log(log.GameEvent{
		Turn: gs.Turn, Player: player, Type: log.EventPush, Card: card.Def.Name,
		Details: fmt.Sprintf("P%d is forced to push out %s", player+1, card),
	})
	if withTriggers {
		return e.handleEjected(player, card)
	}
	card.reset()
	return e.addToMarket(player, card)
}

// addToMarket appends a card to the market face-up and enforces the cap; the
// actor who caused the overflow chooses the card to trash.
func (e *Engine) addToMarket(actor int, card *CardInstance) error {
	gs := e.State
	card.FaceUp = true
	gs.Market = append(gs.Market, card)
	e.Events.Log(log.GameEvent{
		Turn: gs.Turn, Player: actor, Type: log.EventToMarket, Card: card.Def.Name,
		Details: fmt.Sprintf("%s joins the market", card.Def.Name),
	})
	return e.enforceMarketCap(actor)
}

func (e *Engine) enforceMarketCap(actor int) error {
	gs := e.State
	for len(gs.Market) > MarketSize {
		options := make([]Option, len(gs.Market))
		for i := range gs.Market {
			options[i] = IndexOption(i)
		}
		opt, err := e.choose(actor, &ChoiceRequest{
			Kind:    ChoiceTrashPick,
			Player:  actor,
			Options: options,
			Prompt:  "Choose which market card to trash",
		})
		if err != nil {
			return err
		}
		trashed := gs.Market[opt.Index]
		gs.Market = append(gs.Market[:opt.Index], gs.Market[opt.Index+1:]...)
		trashed.reset()
		gs.Trash = append(gs.Trash, trashed)
		e.Events.Log(log.GameEvent{
			Turn: gs.Turn, Player: actor, Type: log.EventMarketTrash, Card: trashed.Def.Name,
			Details: fmt.Sprintf("%s is trashed", trashed.Def.Name),
		})
	}
	return nil
}

// enforceHandLimit makes the player discard down to the hand cap within the
// same step. A protected card name (a card just received) is excluded from
// the discard options while any alternative exists.
func (e *Engine) enforceHandLimit(player int, protected string) error {
	gs := e.State
	p := gs.Players[player]
	for len(p.Hand) > HandLimit {
		var options []Option
		for i, ci := range p.Hand {
			if protected != "" && ci.Def.Name == protected {
				continue
			}
			options = append(options, IndexOption(i))
		}
		if len(options) == 0 {
			for i := range p.Hand {
				options = append(options, IndexOption(i))
			}
		}
		opt, err := e.choose(player, &ChoiceRequest{
			Kind:    ChoiceDiscardPick,
			Player:  player,
			Options: options,
			Prompt:  "Choose which card to discard (hand limit is 2)",
		})
		if err != nil {
			return err
		}
		card := p.Hand[opt.Index]
		p.Hand = append(p.Hand[:opt.Index], p.Hand[opt.Index+1:]...)
		card.reset()
		gs.Trash = append(gs.Trash, card)
		e.Events.Log(log.GameEvent{
			Turn: gs.Turn, Player: player, Type: log.EventDiscard, Card: card.Def.Name,
			Details: fmt.Sprintf("P%d discards %s", player+1, card.Def.Name),
		})
	}
	return nil
}

// --- Traps ---

type trapEventKind int

const (
	trapEventScore trapEventKind = iota
	trapEventMarketDraw
	trapEventPlay
)

// trapEvent is a resolver-emitted event a face-down trap may react to.
type trapEvent struct {
	kind   trapEventKind
	player int // acting player
	card   *CardInstance
	points int
}

// fireTraps checks the non-acting player's face-down traps against the event.
// A matching trap flips face-up, resolves its one-time effect, and thereafter
// behaves as a normal face-up card.
func (e *Engine) fireTraps(ev trapEvent) error {
	gs := e.State
	owner := gs.Opponent(ev.player)
	row := append([]*CardInstance(nil), gs.Players[owner].Row...)
	for _, trap := range row {
		if trap.FaceUp || trap.Def.Kind != KindTrap {
			continue
		}
		if !e.trapMatches(trap, owner, ev) {
			continue
		}
		trap.FaceUp = true
		e.Events.Log(log.NewTrapRevealEvent(gs.Turn, owner, trap.Def.Name))

		switch trap.Def.Spec.Op {
		case OpTrapCancel:
			gs.Players[ev.player].Score -= ev.points
			gs.credit(owner, trap.Def.Name, trap.Def.Spec.Points)
			e.Events.Log(log.GameEvent{
				Turn: gs.Turn, Player: owner, Type: log.EventScoreCancel, Card: trap.Def.Name,
				Points:  ev.points,
				Details: fmt.Sprintf("%s cancels %d points", trap.Def.Name, ev.points),
			})
		case OpTrapMirror:
			gs.credit(owner, trap.Def.Name, ev.points)
			e.Events.Log(log.GameEvent{
				Turn: gs.Turn, Player: owner, Type: log.EventCenterScore, Card: trap.Def.Name,
				Points:  ev.points,
				Details: fmt.Sprintf("%s mirrors %d points", trap.Def.Name, ev.points),
			})
		case OpTrapRedirect:
			e.redirectTo = owner
		case OpTrapSnare:
			e.snared = true
		}
	}
	return nil
}

func (e *Engine) trapMatches(trap *CardInstance, owner int, ev trapEvent) bool {
	switch trap.Def.Trigger {
	case TriggerOppScored, TriggerOppCenterScore:
		return ev.kind == trapEventScore && ev.points > 0
	case TriggerOppMarketDraw:
		return ev.kind == trapEventMarketDraw
	case TriggerOppIconPlay:
		if ev.kind != trapEventPlay {
			return false
		}
		center := e.State.CenterCard(owner)
		if center == nil {
			return false
		}
		return ev.card.Icons().Intersects(center.Icons())
	default:
		return false
	}
}

// --- Choice routing ---

// choose routes a ChoiceRequest to the owning player's Chooser and validates
// the answer against the offered set. Invalid answers are never coerced.
func (e *Engine) choose(player int, req *ChoiceRequest) (Option, error) {
	if len(req.Options) == 0 {
		return Option{}, defectf("empty option set for %s choice", req.Kind)
	}
	opt, err := e.choosers[player].ChooseOption(e.State, req)
	if err != nil {
		return Option{}, err
	}
	if !req.Offers(opt) {
		return Option{}, protocolf("option %s is not in the offered %s set", opt, req.Kind)
	}
	return opt, nil
}
