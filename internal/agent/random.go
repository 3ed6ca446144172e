package agent

import (
	"golang.org/x/exp/rand"

	"conveyor/internal/game"
)

// Random picks uniformly among legal actions, draws, and choice options.
// Seeded, so runs are reproducible.
type Random struct {
	rng *rand.Rand
}

func NewRandom(seed uint64) *Random {
	return &Random{rng: rand.New(rand.NewSource(seed))}
}

func (a *Random) Name() string { return "random" }

func (a *Random) ChooseAction(_ *game.GameState, legal []game.PlayAction) (game.PlayAction, error) {
	if len(legal) == 0 {
		return game.PlayAction{}, game.ErrIllegalAction
	}
	return legal[a.rng.Intn(len(legal))], nil
}

func (a *Random) ChooseDraw(_ *game.GameState, legal []game.DrawOption) (game.DrawOption, error) {
	if len(legal) == 0 {
		return game.DrawOption{}, game.ErrIllegalAction
	}
	return legal[a.rng.Intn(len(legal))], nil
}

func (a *Random) ChooseOption(_ *game.GameState, req *game.ChoiceRequest) (game.Option, error) {
	return req.Options[a.rng.Intn(len(req.Options))], nil
}
