package game

import (
	"errors"
	"testing"
)

func TestNewMatchSetup(t *testing.T) {
	m, err := NewMatch(MatchConfig{Seed: 7}, firstPlayer{}, firstPlayer{})
	if err != nil {
		t.Fatal(err)
	}
	gs := m.Engine().State
	for i, p := range gs.Players {
		if len(p.Hand) != StartingHand {
			t.Fatalf("player %d hand = %d cards, want %d", i, len(p.Hand), StartingHand)
		}
	}
	if len(gs.Market) != MarketSize {
		t.Fatalf("market = %d cards, want %d", len(gs.Market), MarketSize)
	}
	total := len(gs.AllInstances()) + len(gs.Removed)
	if total != len(BuiltinCatalog().Defs()) {
		t.Fatalf("instances = %d, want one per catalog card", total)
	}
}

func TestNewMatchRejectsUnknownPoolCard(t *testing.T) {
	_, err := NewMatch(MatchConfig{Pool: []string{"Calibration Unit", "No Such Bot"}}, firstPlayer{}, firstPlayer{})
	if !errors.Is(err, ErrCatalog) {
		t.Fatalf("err = %v, want ErrCatalog", err)
	}
}

func TestMatchRunsToCompletion(t *testing.T) {
	m, err := NewMatch(MatchConfig{Seed: 11, Horizon: 6}, firstPlayer{}, firstPlayer{})
	if err != nil {
		t.Fatal(err)
	}
	final, err := m.Run()
	if err != nil {
		t.Fatal(err)
	}
	if !final.Over {
		t.Fatal("match must finish")
	}
	if final.Turn != 7 {
		t.Fatalf("final turn = %d, want horizon+1", final.Turn)
	}
	if final.Winner < -1 || final.Winner > 1 {
		t.Fatalf("winner = %d out of range", final.Winner)
	}
	// Conservation: every card is still in exactly one zone, except
	// permanently removed ones.
	total := len(final.AllInstances()) + len(final.Removed)
	if total != len(BuiltinCatalog().Defs()) {
		t.Fatalf("instances = %d, want one per catalog card", total)
	}
}

func TestMatchShuffleIsSeeded(t *testing.T) {
	m1, err := NewMatch(MatchConfig{Seed: 3}, firstPlayer{}, firstPlayer{})
	if err != nil {
		t.Fatal(err)
	}
	m2, err := NewMatch(MatchConfig{Seed: 3}, firstPlayer{}, firstPlayer{})
	if err != nil {
		t.Fatal(err)
	}
	d1 := rowNames(m1.Engine().State.Deck)
	d2 := rowNames(m2.Engine().State.Deck)
	if !sameNames(d1, d2...) {
		t.Fatal("identical seeds must deal identical decks")
	}
}
