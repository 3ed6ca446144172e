package log

import (
	"strings"
	"testing"
)

func TestMemoryLoggerAssignsSequence(t *testing.T) {
	l := NewMemoryLogger()
	l.Log(NewTurnEvent(1, 0))
	l.Log(NewCenterScoreEvent(1, 0, "Calibration Unit", 2))
	l.Log(NewCenterScoreEvent(1, 1, "Void", 4))

	events := l.Events()
	if len(events) != 3 {
		t.Fatalf("got %d events, want 3", len(events))
	}
	for i, e := range events {
		if e.Seq != i+1 {
			t.Fatalf("event %d has seq %d, want %d", i, e.Seq, i+1)
		}
	}
	scores := l.EventsOfType(EventCenterScore)
	if len(scores) != 2 || scores[0].Card != "Calibration Unit" {
		t.Fatalf("scores = %v", scores)
	}
	if last := l.LastEvent(); last.Card != "Void" {
		t.Fatalf("last event = %v", last)
	}
}

func TestPlayEventHidesFaceDownCard(t *testing.T) {
	e := NewPlayEvent(3, 1, "Snare", "RIGHT", true)
	if e.Card != "" {
		t.Fatalf("Card = %q, want empty for a face-down play", e.Card)
	}
	if strings.Contains(e.Details, "Snare") {
		t.Fatalf("details = %q, must not name the set card", e.Details)
	}
	if up := NewPlayEvent(3, 1, "Snare", "RIGHT", false); up.Card != "Snare" {
		t.Fatalf("Card = %q, want the named card for a face-up play", up.Card)
	}
}

func TestTextLoggerWritesLines(t *testing.T) {
	var sb strings.Builder
	l := NewTextLogger(&sb)
	l.Log(NewCenterScoreEvent(3, 1, "Kickback", 2))

	out := sb.String()
	if !strings.Contains(out, "P2") || !strings.Contains(out, "Kickback") {
		t.Fatalf("output = %q, want the player tag and card name", out)
	}
	if len(l.Events()) != 1 {
		t.Fatal("text logger must also record events")
	}
}
