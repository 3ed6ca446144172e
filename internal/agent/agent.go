// Package agent provides the players for the assembly line game: a seeded
// random baseline, a one-step greedy baseline, and a depth-bounded minimax
// lookahead. All three answer effect-level choices through the same decision
// seam the engine resolves with, and the search agents evaluate candidate
// moves by applying them through the real engine on cloned states.
package agent

import (
	"fmt"

	"conveyor/internal/game"
)

// New constructs an agent by name: "random", "greedy", or "lookahead".
func New(name string, seed uint64, depth int) (game.Player, error) {
	switch name {
	case "random":
		return NewRandom(seed), nil
	case "greedy":
		return NewGreedy(), nil
	case "lookahead":
		return NewLookahead(depth), nil
	default:
		return nil, fmt.Errorf("unknown agent %q (want random, greedy, or lookahead)", name)
	}
}

// cardValue is a coarse static estimate of a card's worth, used to rank
// market picks, discards, and displaced cards. It keys off the effect op so
// it generalizes to any catalog, not just the stock one.
func cardValue(def *game.CardDef) float64 {
	switch def.Spec.Op {
	case game.OpOneShot, game.OpEchoParity:
		return 3
	case game.OpScore:
		if def.Spec.Points >= 2 {
			return 3
		}
		return 1
	case game.OpExitScore:
		return 2.5
	case game.OpLonerBonus, game.OpSequence:
		return 2
	case game.OpTrapCancel, game.OpTrapRedirect, game.OpTrapSnare, game.OpTrapMirror:
		return 2
	case game.OpSiphon, game.OpKickback, game.OpMagnet:
		return 1.5
	case game.OpHollowFrame, game.OpScavenge, game.OpVoidSlots, game.OpDonate, game.OpHotPotato:
		return 0.5
	default:
		return 1
	}
}

// instanceValue values a runtime card; a face-down card is an unknown and
// gets the baseline.
func instanceValue(ci *game.CardInstance) float64 {
	if !ci.FaceUp {
		return 1
	}
	return cardValue(ci.Def)
}
