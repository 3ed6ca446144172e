package game

import (
	"testing"

	"conveyor/internal/log"
)

// inst builds a fresh face-up instance of a catalog card.
func inst(t *testing.T, name string) *CardInstance {
	t.Helper()
	def, err := BuiltinCatalog().Lookup(name)
	if err != nil {
		t.Fatalf("lookup %q: %v", name, err)
	}
	return &CardInstance{Def: def, FaceUp: true}
}

// faceDown builds a face-down instance (a set trap).
func faceDown(t *testing.T, name string) *CardInstance {
	t.Helper()
	ci := inst(t, name)
	ci.FaceUp = false
	return ci
}

// credited builds an instance already credited for its current center
// occupancy, so scenario setup does not re-fire it.
func credited(t *testing.T, name string) *CardInstance {
	t.Helper()
	ci := inst(t, name)
	ci.centerCredited = true
	return ci
}

// firstChooser always takes the first offered option.
type firstChooser struct{}

func (firstChooser) ChooseOption(_ *GameState, req *ChoiceRequest) (Option, error) {
	return req.Options[0], nil
}

// scriptedChooser answers choices from a fixed queue, then falls back to the
// first offered option. A scripted option that is not offered fails the test.
type scriptedChooser struct {
	t      *testing.T
	script []Option
	pos    int
}

func newScriptedChooser(t *testing.T, opts ...Option) *scriptedChooser {
	return &scriptedChooser{t: t, script: opts}
}

func (c *scriptedChooser) ChooseOption(_ *GameState, req *ChoiceRequest) (Option, error) {
	if c.pos >= len(c.script) {
		return req.Options[0], nil
	}
	opt := c.script[c.pos]
	c.pos++
	if !req.Offers(opt) {
		c.t.Fatalf("scripted option %s not offered for %s choice", opt, req.Kind)
	}
	return opt, nil
}

// newTestEngine builds an engine over a fresh empty state with a memory
// logger. Nil choosers default to firstChooser.
func newTestEngine(c0, c1 Chooser) (*Engine, *log.MemoryLogger) {
	if c0 == nil {
		c0 = firstChooser{}
	}
	if c1 == nil {
		c1 = firstChooser{}
	}
	logger := log.NewMemoryLogger()
	return NewEngine(newGameState(0), [2]Chooser{c0, c1}, logger), logger
}

// rowNames flattens a row to card names for comparisons.
func rowNames(row []*CardInstance) []string {
	names := make([]string, len(row))
	for i, ci := range row {
		names[i] = ci.Def.Name
	}
	return names
}

func sameNames(a []string, b ...string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// firstPlayer is a full Player that always takes the first legal action,
// draw, and option.
type firstPlayer struct{ firstChooser }

func (firstPlayer) Name() string { return "first" }

func (firstPlayer) ChooseAction(_ *GameState, legal []PlayAction) (PlayAction, error) {
	return legal[0], nil
}

func (firstPlayer) ChooseDraw(_ *GameState, legal []DrawOption) (DrawOption, error) {
	return legal[0], nil
}
