package game

import (
	"golang.org/x/exp/rand"

	"conveyor/internal/log"
)

// Player drives one seat: the turn-level play and draw decisions, plus the
// effect-level choices the resolver asks for mid-resolution.
type Player interface {
	Chooser
	Name() string
	ChooseAction(state *GameState, legal []PlayAction) (PlayAction, error)
	ChooseDraw(state *GameState, legal []DrawOption) (DrawOption, error)
}

// MatchConfig controls match construction.
type MatchConfig struct {
	Pool      []string // card names drawn from the catalog; empty = every card
	Seed      uint64   // shuffle seed
	NoShuffle bool     // keep catalog order (tests)
	Horizon   int      // rounds to play; 0 = DefaultHorizon
	Logger    log.EventLogger
}

// Match runs one game between two players over a single engine.
type Match struct {
	eng     *Engine
	players [2]Player
}

// NewMatch builds the deck from the catalog (optionally restricted to a named
// pool), shuffles, deals the opening hands, and fills the market. Unknown
// pool names fail construction.
func NewMatch(cfg MatchConfig, p0, p1 Player) (*Match, error) {
	catalog := BuiltinCatalog()
	var defs []*CardDef
	if len(cfg.Pool) > 0 {
		for _, name := range cfg.Pool {
			def, err := catalog.Lookup(name)
			if err != nil {
				return nil, err
			}
			defs = append(defs, def)
		}
	} else {
		defs = catalog.Defs()
	}

	state := newGameState(cfg.Horizon)
	for _, def := range defs {
		state.Deck = append(state.Deck, &CardInstance{Def: def})
	}
	if !cfg.NoShuffle {
		rng := rand.New(rand.NewSource(cfg.Seed))
		rng.Shuffle(len(state.Deck), func(i, j int) {
			state.Deck[i], state.Deck[j] = state.Deck[j], state.Deck[i]
		})
	}

	for i := 0; i < StartingHand; i++ {
		for _, p := range state.Players {
			if len(state.Deck) == 0 {
				break
			}
			card := state.Deck[0]
			state.Deck = state.Deck[1:]
			card.FaceUp = true
			p.Hand = append(p.Hand, card)
		}
	}

	m := &Match{players: [2]Player{p0, p1}}
	m.eng = NewEngine(state, [2]Chooser{p0, p1}, cfg.Logger)
	m.eng.refillMarket()
	return m, nil
}

// Engine exposes the match's engine, mainly for tests and external drivers.
func (m *Match) Engine() *Engine {
	return m.eng
}

// Run plays the match to completion and returns the final state. A player
// with no legal play (empty hand, everything on cooldown) skips the play
// step; a player with no legal draw skips the draw step.
func (m *Match) Run() (*GameState, error) {
	gs := m.eng.State
	for !gs.Over {
		player := gs.Current
		m.eng.Events.Log(log.NewTurnEvent(gs.Turn, player))

		if legal := m.eng.LegalActions(player); len(legal) > 0 {
			action, err := m.players[player].ChooseAction(gs, legal)
			if err != nil {
				return nil, err
			}
			if err := m.eng.ApplyPlay(action); err != nil {
				return nil, err
			}
		}

		if legal := m.eng.LegalDraws(player); len(legal) > 0 {
			opt, err := m.players[player].ChooseDraw(gs, legal)
			if err != nil {
				return nil, err
			}
			if err := m.eng.ApplyDraw(opt); err != nil {
				return nil, err
			}
		}

		if err := m.eng.EndTurn(); err != nil {
			return nil, err
		}
	}
	return gs, nil
}
