package game

import "testing"

func TestCloneIsIndependent(t *testing.T) {
	gs := newGameState(0)
	gs.Players[0].Hand = []*CardInstance{inst(t, "Calibration Unit")}
	gs.Players[1].Row = []*CardInstance{inst(t, "Void")}
	gs.Market = []*CardInstance{inst(t, "Mimic")}
	gs.Deck = []*CardInstance{inst(t, "Copycat")}
	gs.Active = []ActiveEffect{{Kind: EffectEmbargo, Player: 0, ExpiresTurn: 2}}
	gs.Ledger["Calibration Unit"] = 2

	c := gs.Clone()
	c.Players[0].Hand[0].FaceUp = false
	c.Players[0].Score = 99
	c.Market[0].MimicIcon = IconHeart
	c.Active[0].ExpiresTurn = 9
	c.Ledger["Calibration Unit"] = 7

	if !gs.Players[0].Hand[0].FaceUp {
		t.Fatal("clone mutation leaked into the original hand card")
	}
	if gs.Players[0].Score != 0 {
		t.Fatal("clone mutation leaked into the original score")
	}
	if gs.Market[0].MimicIcon != IconNone {
		t.Fatal("clone mutation leaked into the original market card")
	}
	if gs.Active[0].ExpiresTurn != 2 {
		t.Fatal("clone mutation leaked into the original active effects")
	}
	if gs.Ledger["Calibration Unit"] != 2 {
		t.Fatal("clone mutation leaked into the original ledger")
	}
	if c.Players[0].Hand[0].Def != gs.Players[0].Hand[0].Def {
		t.Fatal("definitions must stay shared by reference")
	}
}

func TestActiveEffectLivenessBoundary(t *testing.T) {
	e := ActiveEffect{Kind: EffectCooldown, ExpiresTurn: 3}
	if !e.Live(2) {
		t.Fatal("expiry 3 must be live at turn 2")
	}
	if e.Live(3) {
		t.Fatal("expiry 3 must be inert at turn 3 (strictly-greater boundary)")
	}
	forever := ActiveEffect{Kind: EffectEmbargo}
	if !forever.Live(100) {
		t.Fatal("zero expiry never lapses")
	}
}

func TestWinnerTiebreaks(t *testing.T) {
	gs := newGameState(0)
	gs.Players[0].Score = 3
	gs.Players[1].Score = 3
	gs.Players[1].Row = []*CardInstance{inst(t, "Void")}
	gs.finish()
	if gs.Winner != 1 {
		t.Fatalf("winner = %d, want 1 on the row-count tiebreak", gs.Winner)
	}

	gs2 := newGameState(0)
	gs2.Players[0].Score = 5
	gs2.Players[1].Score = 3
	gs2.Players[1].Row = []*CardInstance{inst(t, "Void"), inst(t, "Mimic")}
	gs2.finish()
	if gs2.Winner != 0 {
		t.Fatalf("winner = %d, want 0 (score beats row count)", gs2.Winner)
	}

	gs3 := newGameState(0)
	gs3.finish()
	if gs3.Winner != -1 {
		t.Fatalf("winner = %d, want -1 on a full tie", gs3.Winner)
	}
}

func TestCenterCardRequiresFullRow(t *testing.T) {
	gs := newGameState(0)
	gs.Players[0].Row = []*CardInstance{inst(t, "Void"), inst(t, "Mimic")}
	if gs.CenterCard(0) != nil {
		t.Fatal("a 2-card row has no center")
	}
	gs.Players[0].Row = append(gs.Players[0].Row, inst(t, "Copycat"))
	if got := gs.CenterCard(0); got == nil || got.Def.Name != "Mimic" {
		t.Fatalf("center = %v, want the middle Mimic", got)
	}
}
