package game

import (
	"errors"
	"testing"

	"conveyor/internal/log"
)

func TestNoCenterTriggerBelowFullRow(t *testing.T) {
	eng, logger := newTestEngine(nil, nil)
	eng.State.Players[0].Hand = []*CardInstance{inst(t, "Calibration Unit")}

	if err := eng.ApplyPlay(PlayAction{HandIndex: 0, Side: SideLeft}); err != nil {
		t.Fatal(err)
	}
	if got := eng.State.Players[0].Score; got != 0 {
		t.Fatalf("score = %d, want 0 (no center in a 1-card row)", got)
	}
	if events := logger.EventsOfType(log.EventCenterScore); len(events) != 0 {
		t.Fatalf("got %d center score events, want 0", len(events))
	}
}

func TestCenterFiresWhenRowFills(t *testing.T) {
	eng, _ := newTestEngine(nil, nil)
	p := eng.State.Players[0]
	p.Row = []*CardInstance{inst(t, "Void"), inst(t, "Calibration Unit")}
	p.Hand = []*CardInstance{inst(t, "Hollow Frame")}

	if err := eng.ApplyPlay(PlayAction{HandIndex: 0, Side: SideRight}); err != nil {
		t.Fatal(err)
	}
	if got := p.Score; got != 2 {
		t.Fatalf("score = %d, want 2 from Calibration Unit at center", got)
	}
	if got := p.Row[1].LastCenterScore; got != 2 {
		t.Fatalf("LastCenterScore = %d, want 2", got)
	}
}

// Playing an exit card next to Kickback scores both: Kickback fires at
// center, self-pushes toward the new card, and the displaced exit card
// scores on its way out. The row ends up exactly where it started.
func TestKickbackPushesExitCardOut(t *testing.T) {
	c0 := newScriptedChooser(t, SideOption(SideRight))
	eng, _ := newTestEngine(c0, nil)
	gs := eng.State
	p := gs.Players[0]
	p.Row = []*CardInstance{inst(t, "Calibration Unit"), inst(t, "Kickback")}
	p.Hand = []*CardInstance{inst(t, "Farewell Unit")}

	if err := eng.ApplyPlay(PlayAction{HandIndex: 0, Side: SideRight}); err != nil {
		t.Fatal(err)
	}
	if got := p.Score; got != 5 {
		t.Fatalf("score = %d, want 5 (Kickback 2 + Farewell Unit 3)", got)
	}
	if !sameNames(rowNames(p.Row), "Calibration Unit", "Kickback") {
		t.Fatalf("row = %v, want [Calibration Unit Kickback]", rowNames(p.Row))
	}
	if len(gs.Market) != 1 || gs.Market[0].Def.Name != "Farewell Unit" {
		t.Fatalf("market = %v, want [Farewell Unit]", rowNames(gs.Market))
	}
	if gs.Ledger["Kickback"] != 2 || gs.Ledger["Farewell Unit"] != 3 {
		t.Fatalf("ledger = %v, want Kickback:2 Farewell Unit:3", gs.Ledger)
	}
}

// Once a push empties the center, Kickback's occupancy credit is gone;
// refilling the row re-centers it and fires a fresh, independent trigger.
func TestKickbackFiresAgainAfterRowRefills(t *testing.T) {
	c0 := newScriptedChooser(t, SideOption(SideRight), SideOption(SideRight))
	eng, _ := newTestEngine(c0, nil)
	gs := eng.State
	p := gs.Players[0]
	p.Row = []*CardInstance{inst(t, "Calibration Unit"), inst(t, "Kickback")}
	p.Hand = []*CardInstance{inst(t, "Farewell Unit")}

	if err := eng.ApplyPlay(PlayAction{HandIndex: 0, Side: SideRight}); err != nil {
		t.Fatal(err)
	}
	if got := p.Score; got != 5 {
		t.Fatalf("score = %d, want 5 after the first trigger", got)
	}

	// Take the pushed-out card back and come around to the next turn.
	if err := eng.ApplyDraw(DrawOption{Source: DrawMarket, MarketIndex: 0}); err != nil {
		t.Fatal(err)
	}
	if err := eng.EndTurn(); err != nil {
		t.Fatal(err)
	}
	if err := eng.EndTurn(); err != nil {
		t.Fatal(err)
	}

	if err := eng.ApplyPlay(PlayAction{HandIndex: 0, Side: SideRight}); err != nil {
		t.Fatal(err)
	}
	if got := p.Score; got != 10 {
		t.Fatalf("score = %d, want 10 after the second trigger", got)
	}
	if gs.Ledger["Kickback"] != 4 || gs.Ledger["Farewell Unit"] != 6 {
		t.Fatalf("ledger = %v, want Kickback:4 Farewell Unit:6", gs.Ledger)
	}
	if !sameNames(rowNames(p.Row), "Calibration Unit", "Kickback") {
		t.Fatalf("row = %v, want [Calibration Unit Kickback]", rowNames(p.Row))
	}
}

func TestOverflowEjectsOppositeEdge(t *testing.T) {
	eng, _ := newTestEngine(nil, nil)
	gs := eng.State
	p := gs.Players[0]
	p.Row = []*CardInstance{inst(t, "Hollow Frame"), credited(t, "Calibration Unit"), inst(t, "Void")}
	p.Hand = []*CardInstance{inst(t, "Patience Circuit")}

	if err := eng.ApplyPlay(PlayAction{HandIndex: 0, Side: SideLeft}); err != nil {
		t.Fatal(err)
	}
	if !sameNames(rowNames(p.Row), "Patience Circuit", "Hollow Frame", "Calibration Unit") {
		t.Fatalf("row = %v", rowNames(p.Row))
	}
	if len(gs.Market) != 1 || gs.Market[0].Def.Name != "Void" {
		t.Fatalf("market = %v, want the ejected Void", rowNames(gs.Market))
	}
	// The new center is Hollow Frame, which scores 0 but adopts every icon.
	if got := gs.CenterCard(0); got.Icons() != AllIcons {
		t.Fatalf("center icons = %v, want every icon", got.Icons())
	}
}

func TestFaceDownCardTrashedUnrevealedOnPush(t *testing.T) {
	eng, logger := newTestEngine(nil, nil)
	gs := eng.State
	p := gs.Players[0]
	p.Row = []*CardInstance{faceDown(t, "Tripwire"), credited(t, "Calibration Unit"), inst(t, "Void")}
	p.Hand = []*CardInstance{inst(t, "Patience Circuit")}

	if err := eng.ApplyPlay(PlayAction{HandIndex: 0, Side: SideRight}); err != nil {
		t.Fatal(err)
	}
	if len(gs.Trash) != 1 || gs.Trash[0].Def.Name != "Tripwire" {
		t.Fatalf("trash = %v, want the unrevealed Tripwire", rowNames(gs.Trash))
	}
	if len(gs.Market) != 0 {
		t.Fatalf("market = %v, want empty (trap never reaches the market)", rowNames(gs.Market))
	}
	if events := logger.EventsOfType(log.EventTrapReveal); len(events) != 0 {
		t.Fatal("a pushed-out trap must not reveal")
	}
}

func TestEmbargoBlocksExactlyOneOpposingTurn(t *testing.T) {
	t.Run("played by first player", func(t *testing.T) {
		eng, _ := newTestEngine(nil, nil)
		gs := eng.State
		gs.Players[0].Row = []*CardInstance{inst(t, "Void"), inst(t, "Embargo"), inst(t, "Hollow Frame")}

		if err := eng.evaluateCenters(0); err != nil {
			t.Fatal(err)
		}
		if !gs.HasEmbargo(1) {
			t.Fatal("opponent should be locked on their upcoming turn")
		}
		if gs.HasEmbargo(0) {
			t.Fatal("the owner is never locked")
		}
		if err := eng.EndTurn(); err != nil { // to player 1
			t.Fatal(err)
		}
		if !gs.HasEmbargo(1) {
			t.Fatal("lock must hold through the opponent's turn")
		}
		if err := eng.EndTurn(); err != nil { // back to player 0, next round
			t.Fatal(err)
		}
		if gs.HasEmbargo(1) {
			t.Fatal("lock must lapse after one opposing turn")
		}
	})

	t.Run("played by second player", func(t *testing.T) {
		eng, _ := newTestEngine(nil, nil)
		gs := eng.State
		gs.Current = 1
		gs.Players[1].Row = []*CardInstance{inst(t, "Void"), inst(t, "Embargo"), inst(t, "Hollow Frame")}

		if err := eng.evaluateCenters(1); err != nil {
			t.Fatal(err)
		}
		if err := eng.EndTurn(); err != nil { // to player 0, next round
			t.Fatal(err)
		}
		if !gs.HasEmbargo(0) {
			t.Fatal("lock must cover the opponent's next turn across the round boundary")
		}
		if err := eng.EndTurn(); err != nil { // to player 1
			t.Fatal(err)
		}
		if err := eng.EndTurn(); err != nil { // to player 0 again
			t.Fatal(err)
		}
		if gs.HasEmbargo(0) {
			t.Fatal("lock must lapse after one opposing turn")
		}
	})
}

func TestEmbargoRemovesMarketDraws(t *testing.T) {
	eng, _ := newTestEngine(nil, nil)
	gs := eng.State
	gs.Market = []*CardInstance{inst(t, "Void")}
	gs.Deck = []*CardInstance{inst(t, "Calibration Unit")}
	gs.Active = append(gs.Active, ActiveEffect{Kind: EffectEmbargo, Player: 1, ExpiresTurn: 2})

	draws := eng.LegalDraws(0)
	if len(draws) != 1 || draws[0].Source != DrawDeck {
		t.Fatalf("draws = %v, want deck only under embargo", draws)
	}
	err := eng.ApplyDraw(DrawOption{Source: DrawMarket, MarketIndex: 0})
	if !errors.Is(err, ErrIllegalAction) {
		t.Fatalf("err = %v, want ErrIllegalAction", err)
	}
}

func TestMarketOverflowTrashesActorChoice(t *testing.T) {
	eng, _ := newTestEngine(nil, nil)
	gs := eng.State
	gs.Market = []*CardInstance{inst(t, "Void"), inst(t, "Mimic"), inst(t, "Copycat")}
	p := gs.Players[0]
	p.Row = []*CardInstance{inst(t, "Hollow Frame"), credited(t, "Calibration Unit"), inst(t, "Buddy System")}
	p.Hand = []*CardInstance{inst(t, "Patience Circuit")}

	if err := eng.ApplyPlay(PlayAction{HandIndex: 0, Side: SideLeft}); err != nil {
		t.Fatal(err)
	}
	if len(gs.Market) != MarketSize {
		t.Fatalf("market size = %d, want %d", len(gs.Market), MarketSize)
	}
	if len(gs.Trash) != 1 || gs.Trash[0].Def.Name != "Void" {
		t.Fatalf("trash = %v, want the first-option Void", rowNames(gs.Trash))
	}
}

func TestDrawEnforcesHandLimit(t *testing.T) {
	eng, _ := newTestEngine(nil, nil)
	gs := eng.State
	p := gs.Players[0]
	p.Hand = []*CardInstance{inst(t, "Void"), inst(t, "Mimic")}
	gs.Deck = []*CardInstance{inst(t, "Calibration Unit")}
	gs.Phase = PhaseDraw // mid-turn, the play step already resolved

	if err := eng.ApplyDraw(DrawOption{Source: DrawDeck}); err != nil {
		t.Fatal(err)
	}
	if len(p.Hand) != HandLimit {
		t.Fatalf("hand size = %d, want %d", len(p.Hand), HandLimit)
	}
	if len(gs.Trash) != 1 || gs.Trash[0].Def.Name != "Void" {
		t.Fatalf("trash = %v, want the discarded Void", rowNames(gs.Trash))
	}
}

// One play, one draw, one advance per turn; calls out of order are rejected
// without touching the state.
func TestTurnPhaseGate(t *testing.T) {
	eng, _ := newTestEngine(nil, nil)
	gs := eng.State
	gs.Players[0].Hand = []*CardInstance{inst(t, "Void"), inst(t, "Mimic")}
	gs.Deck = []*CardInstance{inst(t, "Calibration Unit"), inst(t, "Copycat")}

	if err := eng.ApplyDraw(DrawOption{Source: DrawDeck}); !errors.Is(err, ErrIllegalAction) {
		t.Fatalf("draw before play: err = %v, want ErrIllegalAction", err)
	}
	if err := eng.ApplyPlay(PlayAction{HandIndex: 0, Side: SideLeft}); err != nil {
		t.Fatal(err)
	}
	if err := eng.ApplyPlay(PlayAction{HandIndex: 0, Side: SideLeft}); !errors.Is(err, ErrIllegalAction) {
		t.Fatalf("second play: err = %v, want ErrIllegalAction", err)
	}
	if len(gs.Players[0].Row) != 1 {
		t.Fatalf("row = %v, want only the first play", rowNames(gs.Players[0].Row))
	}
	if err := eng.ApplyDraw(DrawOption{Source: DrawDeck}); err != nil {
		t.Fatal(err)
	}
	if err := eng.ApplyDraw(DrawOption{Source: DrawDeck}); !errors.Is(err, ErrIllegalAction) {
		t.Fatalf("second draw: err = %v, want ErrIllegalAction", err)
	}
	if len(gs.Players[0].Hand) != HandLimit {
		t.Fatalf("hand size = %d, want %d", len(gs.Players[0].Hand), HandLimit)
	}
	if err := eng.EndTurn(); err != nil {
		t.Fatal(err)
	}
	// The next player has no hand, so the empty play step is passed over and
	// the draw is accepted directly.
	if err := eng.ApplyDraw(DrawOption{Source: DrawMarket, MarketIndex: 0}); err != nil {
		t.Fatal(err)
	}
}

func TestEndTurnRequiresDrawStep(t *testing.T) {
	eng, _ := newTestEngine(nil, nil)
	gs := eng.State
	gs.Players[0].Hand = []*CardInstance{inst(t, "Void")}
	gs.Deck = []*CardInstance{inst(t, "Calibration Unit")}

	if err := eng.ApplyPlay(PlayAction{HandIndex: 0, Side: SideLeft}); err != nil {
		t.Fatal(err)
	}
	if err := eng.EndTurn(); !errors.Is(err, ErrIllegalAction) {
		t.Fatalf("err = %v, want ErrIllegalAction while a draw is pending", err)
	}
	if err := eng.ApplyDraw(DrawOption{Source: DrawDeck}); err != nil {
		t.Fatal(err)
	}
	if err := eng.EndTurn(); err != nil {
		t.Fatal(err)
	}
	if gs.Current != 1 {
		t.Fatalf("current = %d, want 1", gs.Current)
	}
}

func TestIllegalPlaysRejectedWithoutMutation(t *testing.T) {
	eng, _ := newTestEngine(nil, nil)
	gs := eng.State
	gs.Players[0].Hand = []*CardInstance{inst(t, "Calibration Unit")}

	err := eng.ApplyPlay(PlayAction{HandIndex: 5, Side: SideLeft})
	if !errors.Is(err, ErrIllegalAction) {
		t.Fatalf("err = %v, want ErrIllegalAction", err)
	}
	err = eng.ApplyPlay(PlayAction{HandIndex: 0, Side: SideLeft, FaceDown: true})
	if !errors.Is(err, ErrIllegalAction) {
		t.Fatalf("face-down non-trap: err = %v, want ErrIllegalAction", err)
	}
	if len(gs.Players[0].Hand) != 1 || len(gs.Players[0].Row) != 0 {
		t.Fatal("rejected plays must leave the state untouched")
	}
}

// A chooser answering outside the offered set is a protocol violation, never
// a silent coercion.
func TestOutOfSetChoiceIsProtocolViolation(t *testing.T) {
	bad := badChooser{}
	eng, _ := newTestEngine(bad, bad)
	p := eng.State.Players[0]
	p.Row = []*CardInstance{inst(t, "Calibration Unit"), inst(t, "Kickback")}
	p.Hand = []*CardInstance{inst(t, "Farewell Unit")}

	err := eng.ApplyPlay(PlayAction{HandIndex: 0, Side: SideRight})
	if !errors.Is(err, ErrProtocolViolation) {
		t.Fatalf("err = %v, want ErrProtocolViolation", err)
	}
}

type badChooser struct{}

func (badChooser) ChooseOption(_ *GameState, _ *ChoiceRequest) (Option, error) {
	return Option{Index: 99}, nil
}

func TestLegalActionsOrderAndFaceDown(t *testing.T) {
	eng, _ := newTestEngine(nil, nil)
	p := eng.State.Players[0]
	p.Hand = []*CardInstance{inst(t, "Calibration Unit"), inst(t, "Tripwire")}

	legal := eng.LegalActions(0)
	want := []PlayAction{
		{HandIndex: 0, Side: SideLeft},
		{HandIndex: 0, Side: SideRight},
		{HandIndex: 1, Side: SideLeft},
		{HandIndex: 1, Side: SideLeft, FaceDown: true},
		{HandIndex: 1, Side: SideRight},
		{HandIndex: 1, Side: SideRight, FaceDown: true},
	}
	if len(legal) != len(want) {
		t.Fatalf("got %d actions, want %d", len(legal), len(want))
	}
	for i := range want {
		if legal[i] != want[i] {
			t.Fatalf("legal[%d] = %v, want %v", i, legal[i], want[i])
		}
	}
}
