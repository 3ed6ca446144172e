package game

import (
	"sync"

	"conveyor/internal/log"
)

// Session exposes the engine through a suspend/resume surface for external
// drivers that cannot answer decisions synchronously. A step (play or draw)
// either runs to completion or suspends at a ChoiceRequest; ResolveChoice
// resumes it with the chosen option. While suspended, the state is read-only
// to the caller and no other step may start.
//
// Resolution runs on a driving goroutine per step; the suspension is a
// channel handoff, so the engine itself stays synchronous and identical to
// the one the agents search with.
type Session struct {
	mu      sync.Mutex
	eng     *Engine
	pending *ChoiceRequest

	reqCh    chan *ChoiceRequest
	answerCh chan Option
	doneCh   chan error
}

// NewSession wraps a state in a session. A nil logger discards events.
func NewSession(state *GameState, events log.EventLogger) *Session {
	s := &Session{
		reqCh:    make(chan *ChoiceRequest),
		answerCh: make(chan Option),
		doneCh:   make(chan error),
	}
	ch := sessionChooser{s}
	s.eng = NewEngine(state, [2]Chooser{ch, ch}, events)
	return s
}

// sessionChooser parks the driving goroutine on the session's channels until
// the external caller resolves the choice.
type sessionChooser struct{ s *Session }

func (c sessionChooser) ChooseOption(_ *GameState, req *ChoiceRequest) (Option, error) {
	c.s.reqCh <- req
	return <-c.s.answerCh, nil
}

func (s *Session) run(step func() error) error {
	go func() { s.doneCh <- step() }()
	return s.wait()
}

// wait blocks until the driving goroutine either suspends at a choice or
// finishes the step.
func (s *Session) wait() error {
	select {
	case req := <-s.reqCh:
		s.pending = req
		return nil
	case err := <-s.doneCh:
		s.pending = nil
		return err
	}
}

// ApplyAction plays a card for the side to move. If resolution reaches a
// decision point it suspends: ApplyAction returns nil, CurrentChoiceRequest
// reports the pending request, and ResolveChoice resumes.
func (s *Session) ApplyAction(action PlayAction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending != nil {
		return protocolf("a choice is pending; resolve it before acting")
	}
	return s.run(func() error { return s.eng.ApplyPlay(action) })
}

// ApplyDraw draws for the side to move, suspending on any decision point the
// draw produces (a trap interception or a forced discard).
func (s *Session) ApplyDraw(opt DrawOption) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending != nil {
		return protocolf("a choice is pending; resolve it before drawing")
	}
	return s.run(func() error { return s.eng.ApplyDraw(opt) })
}

// EndTurn refills the market and advances the turn. It never suspends.
func (s *Session) EndTurn() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending != nil {
		return protocolf("a choice is pending; resolve it before ending the turn")
	}
	return s.eng.EndTurn()
}

// ResolveChoice answers the pending ChoiceRequest and resumes resolution.
// With no pending request, or an option outside the offered set, it is a
// protocol violation and the state is untouched.
func (s *Session) ResolveChoice(opt Option) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending == nil {
		return protocolf("no choice is pending")
	}
	if !s.pending.Offers(opt) {
		return protocolf("option %s is not in the offered %s set", opt, s.pending.Kind)
	}
	s.pending = nil
	s.answerCh <- opt
	return s.wait()
}

// CurrentChoiceRequest returns the pending request, or nil when resolution is
// not suspended.
func (s *Session) CurrentChoiceRequest() *ChoiceRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}

// LegalActions enumerates legal plays for the given player.
func (s *Session) LegalActions(player int) []PlayAction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.eng.LegalActions(player)
}

// LegalDraws enumerates legal draws for the given player.
func (s *Session) LegalDraws(player int) []DrawOption {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.eng.LegalDraws(player)
}

// State exposes the underlying game state. Callers must treat it as
// read-only.
func (s *Session) State() *GameState {
	return s.eng.State
}

// IsTerminal reports whether the game is over.
func (s *Session) IsTerminal() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.eng.State.Over
}

// Winner returns the winning player index, or -1 for a tie or an unfinished
// game.
func (s *Session) Winner() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.eng.State.Winner
}
