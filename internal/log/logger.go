package log

import (
	"fmt"
	"io"
	"strings"
)

// EventLogger is the interface for recording game events.
type EventLogger interface {
	Log(event GameEvent)
	Events() []GameEvent
}

// --- MemoryLogger: stores events in memory for test assertions ---

type MemoryLogger struct {
	events []GameEvent
	seq    int
}

func NewMemoryLogger() *MemoryLogger {
	return &MemoryLogger{}
}

func (l *MemoryLogger) Log(event GameEvent) {
	l.seq++
	event.Seq = l.seq
	l.events = append(l.events, event)
}

func (l *MemoryLogger) Events() []GameEvent {
	return l.events
}

// EventsOfType returns all events matching the given type.
func (l *MemoryLogger) EventsOfType(t EventType) []GameEvent {
	var result []GameEvent
	for _, e := range l.events {
		if e.Type == t {
			result = append(result, e)
		}
	}
	return result
}

// LastEvent returns the most recent event, or a zero event if none.
func (l *MemoryLogger) LastEvent() GameEvent {
	if len(l.events) == 0 {
		return GameEvent{}
	}
	return l.events[len(l.events)-1]
}

// --- DiscardLogger: drops everything (search simulations) ---

type DiscardLogger struct{}

func (DiscardLogger) Log(GameEvent)       {}
func (DiscardLogger) Events() []GameEvent { return nil }

// --- TextLogger: writes human-readable lines to an io.Writer ---

type TextLogger struct {
	MemoryLogger
	w io.Writer
}

func NewTextLogger(w io.Writer) *TextLogger {
	return &TextLogger{w: w}
}

func (l *TextLogger) Log(event GameEvent) {
	l.MemoryLogger.Log(event)
	fmt.Fprintln(l.w, FormatEvent(event))
}

// --- Formatting ---

// playerName returns "P1" or "P2" for display.
func playerName(p int) string {
	return fmt.Sprintf("P%d", p+1)
}

// FormatEvent formats a single event as a human-readable line.
func FormatEvent(e GameEvent) string {
	return fmt.Sprintf("T%-2d %s %-12s| %s", e.Turn, playerName(e.Player), e.Type, e.Details)
}

// FormatAll formats all events as a multi-line string.
func FormatAll(events []GameEvent) string {
	var sb strings.Builder
	for _, e := range events {
		sb.WriteString(FormatEvent(e))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// --- Helper constructors for common events ---

func NewTurnEvent(turn, player int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Player:  player,
		Type:    EventNewTurn,
		Details: fmt.Sprintf("=== Turn %d (%s) ===", turn, playerName(player)),
	}
}

func NewPlayEvent(turn, player int, card, side string, faceDown bool) GameEvent {
	detail := fmt.Sprintf("%s plays %s to %s", playerName(player), card, side)
	if faceDown {
		// The event stream is visible to both seats; a set card stays hidden.
		detail = fmt.Sprintf("%s sets a card face-down to %s", playerName(player), side)
		card = ""
	}
	return GameEvent{Turn: turn, Player: player, Type: EventPlay, Card: card, Details: detail}
}

func NewCenterScoreEvent(turn, player int, card string, points int) GameEvent {
	return GameEvent{
		Turn: turn, Player: player, Type: EventCenterScore, Card: card, Points: points,
		Details: fmt.Sprintf("%s scores %d from %s at center", playerName(player), points, card),
	}
}

func NewExitScoreEvent(turn, player int, card string, points int) GameEvent {
	return GameEvent{
		Turn: turn, Player: player, Type: EventExitScore, Card: card, Points: points,
		Details: fmt.Sprintf("%s scores %d from %s on exit", playerName(player), points, card),
	}
}

func NewTrapRevealEvent(turn, player int, card string) GameEvent {
	return GameEvent{
		Turn: turn, Player: player, Type: EventTrapReveal, Card: card,
		Details: fmt.Sprintf("%s reveals %s", playerName(player), card),
	}
}

func NewDrawEvent(turn, player int, source string) GameEvent {
	return GameEvent{
		Turn: turn, Player: player, Type: EventDraw,
		Details: fmt.Sprintf("%s draws from %s", playerName(player), source),
	}
}

func NewGameEndEvent(turn, winner int, result string) GameEvent {
	return GameEvent{Turn: turn, Player: winner, Type: EventGameEnd, Details: result}
}
