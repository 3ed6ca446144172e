package agent

import (
	"math"

	"conveyor/internal/game"
)

// Lookahead is a depth-bounded two-player minimax over the play space. Every
// candidate is applied through the same engine the live game uses, on a
// disposable clone of the state; there is no private simulation of effect
// semantics anywhere in the search. Effect-level sub-choices and the draw
// step resolve with the greedy heuristics, which keeps the branching factor
// at the play level.
//
// The agent is deterministic: enumeration order is fixed and ties keep the
// first candidate, so identical state, depth, and catalog produce the
// identical action.
type Lookahead struct {
	depth  int
	greedy *Greedy
}

// NewLookahead builds a lookahead agent searching the given number of plies.
// Depths below 1 fall back to 2.
func NewLookahead(depth int) *Lookahead {
	if depth < 1 {
		depth = 2
	}
	return &Lookahead{depth: depth, greedy: NewGreedy()}
}

func (a *Lookahead) Name() string { return "lookahead" }

func (a *Lookahead) ChooseAction(gs *game.GameState, legal []game.PlayAction) (game.PlayAction, error) {
	if len(legal) == 0 {
		return game.PlayAction{}, game.ErrIllegalAction
	}
	me := gs.Current
	best := legal[0]
	bestValue := math.Inf(-1)
	for _, action := range legal {
		child, err := a.simulateTurn(gs, action)
		if err != nil {
			return game.PlayAction{}, err
		}
		v, err := a.search(child, a.depth-1, me)
		if err != nil {
			return game.PlayAction{}, err
		}
		if v > bestValue {
			best, bestValue = action, v
		}
	}
	return best, nil
}

func (a *Lookahead) ChooseDraw(gs *game.GameState, legal []game.DrawOption) (game.DrawOption, error) {
	return a.greedy.ChooseDraw(gs, legal)
}

func (a *Lookahead) ChooseOption(gs *game.GameState, req *game.ChoiceRequest) (game.Option, error) {
	return a.greedy.policy.ChooseOption(gs, req)
}

// search evaluates a position to the given remaining depth. The side to move
// maximizes its own outcome, so plies belonging to the viewpoint player
// maximize the heuristic and opposing plies minimize it.
func (a *Lookahead) search(gs *game.GameState, depth, viewpoint int) (float64, error) {
	if depth <= 0 || gs.Over {
		return evaluate(gs, viewpoint), nil
	}
	mover := gs.Current
	eng := game.NewEngine(gs, [2]game.Chooser{a.greedy.policy, a.greedy.policy}, nil)
	legal := eng.LegalActions(mover)
	if len(legal) == 0 {
		child, err := a.simulateSkip(gs)
		if err != nil {
			return 0, err
		}
		return a.search(child, depth-1, viewpoint)
	}

	best := math.Inf(-1)
	if mover != viewpoint {
		best = math.Inf(1)
	}
	for _, action := range legal {
		child, err := a.simulateTurn(gs, action)
		if err != nil {
			return 0, err
		}
		v, err := a.search(child, depth-1, viewpoint)
		if err != nil {
			return 0, err
		}
		if mover == viewpoint {
			if v > best {
				best = v
			}
		} else if v < best {
			best = v
		}
	}
	return best, nil
}

// simulateTurn clones the state and runs one full turn for the side to move:
// the candidate play, a heuristic draw, and the turn advance.
func (a *Lookahead) simulateTurn(gs *game.GameState, action game.PlayAction) (*game.GameState, error) {
	sim := gs.Clone()
	eng := game.NewEngine(sim, [2]game.Chooser{a.greedy.policy, a.greedy.policy}, nil)
	if err := eng.ApplyPlay(action); err != nil {
		return nil, err
	}
	if legal := eng.LegalDraws(sim.Current); len(legal) > 0 {
		opt, err := a.greedy.ChooseDraw(sim, legal)
		if err != nil {
			return nil, err
		}
		if err := eng.ApplyDraw(opt); err != nil {
			return nil, err
		}
	}
	if err := eng.EndTurn(); err != nil {
		return nil, err
	}
	return sim, nil
}

// simulateSkip advances a turn for a mover with no legal play.
func (a *Lookahead) simulateSkip(gs *game.GameState) (*game.GameState, error) {
	sim := gs.Clone()
	eng := game.NewEngine(sim, [2]game.Chooser{a.greedy.policy, a.greedy.policy}, nil)
	if legal := eng.LegalDraws(sim.Current); len(legal) > 0 {
		opt, err := a.greedy.ChooseDraw(sim, legal)
		if err != nil {
			return nil, err
		}
		if err := eng.ApplyDraw(opt); err != nil {
			return nil, err
		}
	}
	if err := eng.EndTurn(); err != nil {
		return nil, err
	}
	return sim, nil
}

// evaluate scores a leaf from one player's viewpoint: the score differential
// plus small weights for hand and row material, plus the points waiting on
// exposed exit cards that the next pushes will realize.
func evaluate(gs *game.GameState, viewpoint int) float64 {
	opp := gs.Opponent(viewpoint)
	mine, theirs := gs.Players[viewpoint], gs.Players[opp]
	v := float64(mine.Score - theirs.Score)
	v += 0.1 * float64(len(mine.Hand)-len(theirs.Hand))
	v += 0.05 * float64(len(mine.Row)-len(theirs.Row))
	v += exitPotential(mine.Row) - exitPotential(theirs.Row)
	return v
}

func exitPotential(row []*game.CardInstance) float64 {
	var v float64
	for i, ci := range row {
		if i != 0 && i != len(row)-1 {
			continue
		}
		if ci.FaceUp && ci.Def.Kind == game.KindExit && ci.Def.Spec.Op == game.OpExitScore {
			v += 0.25 * float64(ci.Def.Spec.Points)
		}
	}
	return v
}
