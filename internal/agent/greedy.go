package agent

import (
	"math"

	"conveyor/internal/game"
)

// deckEstimate is the assumed value of an unseen deck card when weighing draw
// sources.
const deckEstimate = 1.5

// Greedy evaluates every legal play by applying it through the engine on a
// cloned state and ranking by own score delta minus opponent score delta.
// Sub-choices inside the evaluation are resolved by the same metric one step
// further: each offered option is tried on its own replay of the candidate
// play. Ties keep the first candidate, so the agent is deterministic: the
// legal set is enumerated in fixed order (hand index, then LEFT before RIGHT,
// then face-up before face-down).
type Greedy struct {
	policy choicePolicy
	plan   []game.Option // sub-choices committed for the chosen play
}

func NewGreedy() *Greedy { return &Greedy{} }

func (a *Greedy) Name() string { return "greedy" }

func (a *Greedy) ChooseAction(gs *game.GameState, legal []game.PlayAction) (game.PlayAction, error) {
	if len(legal) == 0 {
		return game.PlayAction{}, game.ErrIllegalAction
	}
	best := legal[0]
	bestValue := 0.0
	var bestPlan []game.Option
	haveBest := false
	for _, action := range legal {
		v, plan, err := a.evaluatePlay(gs, action)
		if err != nil {
			return game.PlayAction{}, err
		}
		if !haveBest || v > bestValue {
			best, bestValue, bestPlan, haveBest = action, v, plan, true
		}
	}
	a.plan = bestPlan
	return best, nil
}

// evaluatePlay applies the candidate on a clone, resolving own-seat
// sub-choices by metric maximization, and measures the score differential it
// produces. The winning sub-choices are returned so the live resolution can
// replay them.
func (a *Greedy) evaluatePlay(gs *game.GameState, action game.PlayAction) (float64, []game.Option, error) {
	me := gs.Current
	mc := &metricChooser{base: gs, action: action, me: me, policy: a.policy}
	sim := gs.Clone()
	var choosers [2]game.Chooser
	choosers[me] = mc
	choosers[gs.Opponent(me)] = a.policy
	eng := game.NewEngine(sim, choosers, nil)
	if err := eng.ApplyPlay(action); err != nil {
		return 0, nil, err
	}
	return playMetric(gs, sim, me), mc.committed, nil
}

// playMetric is the greedy ranking metric: own score delta minus opponent
// score delta between the pre-play snapshot and a resolved clone.
func playMetric(base, sim *game.GameState, me int) float64 {
	opp := base.Opponent(me)
	own := float64(sim.Players[me].Score - base.Players[me].Score)
	theirs := float64(sim.Players[opp].Score - base.Players[opp].Score)
	return own - theirs
}

// metricChooser resolves the acting seat's sub-choices during evaluation.
// Each offered option is tried by replaying the candidate play from the
// pre-play snapshot with the options committed so far plus that option
// forced; choices past the forced one fall back to the static policy, so
// exactly one step is searched per decision.
type metricChooser struct {
	base      *game.GameState
	action    game.PlayAction
	me        int
	policy    choicePolicy
	committed []game.Option
}

func (c *metricChooser) ChooseOption(gs *game.GameState, req *game.ChoiceRequest) (game.Option, error) {
	if req.Player != c.me {
		return c.policy.ChooseOption(gs, req)
	}
	best := req.Options[0]
	if len(req.Options) > 1 {
		bestValue := math.Inf(-1)
		for _, opt := range req.Options {
			v, err := c.tryOption(opt)
			if err != nil {
				return game.Option{}, err
			}
			if v > bestValue {
				best, bestValue = opt, v
			}
		}
	}
	c.committed = append(c.committed, best)
	return best, nil
}

func (c *metricChooser) tryOption(opt game.Option) (float64, error) {
	script := append(append([]game.Option(nil), c.committed...), opt)
	forced := &scriptChooser{script: script, policy: c.policy}
	sim := c.base.Clone()
	var choosers [2]game.Chooser
	choosers[c.me] = forced
	choosers[c.base.Opponent(c.me)] = c.policy
	eng := game.NewEngine(sim, choosers, nil)
	if err := eng.ApplyPlay(c.action); err != nil {
		return 0, err
	}
	return playMetric(c.base, sim, c.me), nil
}

// scriptChooser replays a fixed option sequence for one seat, falling back to
// the static policy once the script runs out or stops matching the offered
// set.
type scriptChooser struct {
	script []game.Option
	pos    int
	policy choicePolicy
}

func (c *scriptChooser) ChooseOption(gs *game.GameState, req *game.ChoiceRequest) (game.Option, error) {
	if c.pos < len(c.script) {
		opt := c.script[c.pos]
		c.pos++
		if req.Offers(opt) {
			return opt, nil
		}
	}
	return c.policy.ChooseOption(gs, req)
}

// ChooseDraw weighs each visible market card against a flat estimate for the
// unseen deck top. The deck option is enumerated first, so on a tie the deck
// wins.
func (a *Greedy) ChooseDraw(gs *game.GameState, legal []game.DrawOption) (game.DrawOption, error) {
	if len(legal) == 0 {
		return game.DrawOption{}, game.ErrIllegalAction
	}
	best := legal[0]
	bestValue := -1.0
	for _, opt := range legal {
		v := deckEstimate
		if opt.Source == game.DrawMarket {
			v = instanceValue(gs.Market[opt.MarketIndex])
		}
		if v > bestValue {
			best, bestValue = opt, v
		}
	}
	return best, nil
}

// ChooseOption replays the sub-choices committed while evaluating the chosen
// play. Choices arising outside that plan (opponent-driven effects, the
// post-draw discard) fall back to the static policy.
func (a *Greedy) ChooseOption(gs *game.GameState, req *game.ChoiceRequest) (game.Option, error) {
	if len(a.plan) > 0 {
		opt := a.plan[0]
		a.plan = a.plan[1:]
		if req.Offers(opt) {
			return opt, nil
		}
		a.plan = nil
	}
	return a.policy.ChooseOption(gs, req)
}

// choicePolicy answers effect-level choices with static one-step heuristics.
// It is stateless and deterministic, which keeps greedy evaluation and the
// lookahead's sub-choice resolution reproducible.
type choicePolicy struct{}

func (choicePolicy) ChooseOption(gs *game.GameState, req *game.ChoiceRequest) (game.Option, error) {
	p := gs.Players[req.Player]

	switch req.Kind {
	case game.ChoicePushDirection, game.ChoicePlaceSide:
		// Displace the weaker neighbor.
		if instanceValue(p.Row[0]) <= instanceValue(p.Row[len(p.Row)-1]) {
			return game.SideOption(game.SideLeft), nil
		}
		return game.SideOption(game.SideRight), nil

	case game.ChoiceEdgePick:
		// Forced to give up an edge card; give up the weaker one.
		best := req.Options[0]
		bestValue := edgeValue(p.Row, best.Side)
		for _, opt := range req.Options[1:] {
			if v := edgeValue(p.Row, opt.Side); v < bestValue {
				best, bestValue = opt, v
			}
		}
		return best, nil

	case game.ChoiceMarketPick:
		best := req.Options[0]
		bestValue := instanceValue(gs.Market[best.Index])
		for _, opt := range req.Options[1:] {
			if v := instanceValue(gs.Market[opt.Index]); v > bestValue {
				best, bestValue = opt, v
			}
		}
		return best, nil

	case game.ChoiceTrashPick:
		// Keep the market strong for later draws.
		best := req.Options[0]
		bestValue := instanceValue(gs.Market[best.Index])
		for _, opt := range req.Options[1:] {
			if v := instanceValue(gs.Market[opt.Index]); v < bestValue {
				best, bestValue = opt, v
			}
		}
		return best, nil

	case game.ChoiceDiscardPick:
		best := req.Options[0]
		bestValue := instanceValue(p.Hand[best.Index])
		for _, opt := range req.Options[1:] {
			if v := instanceValue(p.Hand[opt.Index]); v < bestValue {
				best, bestValue = opt, v
			}
		}
		return best, nil

	case game.ChoiceSwapTarget:
		oppRow := gs.Players[gs.Opponent(req.Player)].Row
		best := req.Options[0]
		bestValue := instanceValue(oppRow[best.Index])
		for _, opt := range req.Options[1:] {
			if v := instanceValue(oppRow[opt.Index]); v > bestValue {
				best, bestValue = opt, v
			}
		}
		return best, nil

	case game.ChoiceFaceDownSwap:
		// Stealing an opposing face-down card beats skipping; swapping
		// within the own row does not.
		for _, opt := range req.Options {
			if !opt.Skip && opt.Player != req.Player {
				return opt, nil
			}
		}
		for _, opt := range req.Options {
			if opt.Skip {
				return opt, nil
			}
		}
		return req.Options[0], nil

	default:
		return req.Options[0], nil
	}
}

func edgeValue(row []*game.CardInstance, side game.Side) float64 {
	if side == game.SideLeft {
		return instanceValue(row[0])
	}
	return instanceValue(row[len(row)-1])
}
