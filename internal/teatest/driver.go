// Package teatest drives bubbletea models synchronously in tests.
//
// A Driver calls Update directly and drains the returned Cmds in the test
// goroutine's order, so key sequences produce deterministic state without a
// tea.Program. Timer-driven Cmds (cursor blink, spinner ticks) are run with a
// short timeout and dropped when they do not return promptly.
package teatest

import (
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// MaxDrainDepth bounds how many chained Cmds one Send may drain.
const MaxDrainDepth = 100

// cmdTimeout separates immediate Cmds (service calls, message factories,
// fake study partners) from cursor blink Cmds, which block for ~530ms.
// Spinner ticks are recognised by type instead, since they fire at 100ms.
const cmdTimeout = 20 * time.Millisecond

// Driver is a synchronous test harness for any tea.Model.
type Driver struct {
	T     *testing.T
	Model tea.Model

	// Quitting is set when a tea.QuitMsg is drained. The runtime normally
	// swallows that message, so the driver records it itself.
	Quitting bool

	// Dropped counts Cmds that timed out or produced timer messages.
	Dropped int
}

// Option configures the Driver during construction.
type Option func(*Driver)

// New creates a Driver for model. Call DrainInit afterwards to run Init.
func New(t *testing.T, model tea.Model, opts ...Option) *Driver {
	t.Helper()
	d := &Driver{T: t, Model: model}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// WithSize sends an initial WindowSizeMsg before anything else.
func WithSize(w, h int) Option {
	return func(d *Driver) {
		d.T.Helper()
		updated, _ := d.Model.Update(tea.WindowSizeMsg{Width: w, Height: h})
		d.Model = updated
	}
}

// DrainInit runs the model's Init command and everything it leads to.
func (d *Driver) DrainInit() {
	d.T.Helper()
	d.drain(d.Model.Init(), 0)
}

// Send dispatches msg through Update and drains the resulting Cmds.
func (d *Driver) Send(msg tea.Msg) {
	d.T.Helper()
	if d.Quitting {
		return
	}
	updated, cmd := d.Model.Update(msg)
	d.Model = updated
	d.drain(cmd, 0)
}

// ── keys ─────────────────────────────────────────────────────────────────────

// PressKey sends a single rune key.
func (d *Driver) PressKey(r rune) {
	d.T.Helper()
	if r == ' ' {
		d.PressSpace()
		return
	}
	d.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
}

// PressType sends a non-rune key such as tea.KeyEnter or tea.KeyPgDown.
func (d *Driver) PressType(t tea.KeyType) {
	d.T.Helper()
	d.Send(tea.KeyMsg{Type: t})
}

func (d *Driver) PressSpace() {
	d.T.Helper()
	d.Send(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
}

func (d *Driver) PressEnter()     { d.T.Helper(); d.PressType(tea.KeyEnter) }
func (d *Driver) PressEsc()       { d.T.Helper(); d.PressType(tea.KeyEsc) }
func (d *Driver) PressCtrlC()     { d.T.Helper(); d.PressType(tea.KeyCtrlC) }
func (d *Driver) PressUp()        { d.T.Helper(); d.PressType(tea.KeyUp) }
func (d *Driver) PressDown()      { d.T.Helper(); d.PressType(tea.KeyDown) }
func (d *Driver) PressBackspace() { d.T.Helper(); d.PressType(tea.KeyBackspace) }

// Type sends s one rune at a time.
func (d *Driver) Type(s string) {
	d.T.Helper()
	for _, r := range s {
		d.PressKey(r)
	}
}

// View returns the model's rendered output.
func (d *Driver) View() string {
	return d.Model.View()
}

// ── draining ─────────────────────────────────────────────────────────────────

func (d *Driver) drain(cmd tea.Cmd, depth int) {
	d.T.Helper()
	if cmd == nil {
		return
	}
	if depth >= MaxDrainDepth {
		d.T.Logf("teatest.Driver: drain depth limit (%d) reached", MaxDrainDepth)
		return
	}

	msg, ok := runWithTimeout(cmd)
	if !ok || isTimerMsg(msg) {
		d.Dropped++
		return
	}
	if msg == nil {
		return
	}

	switch msg := msg.(type) {
	case tea.BatchMsg:
		for _, sub := range msg {
			d.drain(sub, depth+1)
		}
		return
	case tea.QuitMsg:
		d.Quitting = true
		updated, _ := d.Model.Update(msg)
		d.Model = updated
		return
	}

	updated, next := d.Model.Update(msg)
	d.Model = updated
	d.drain(next, depth+1)
}

// runWithTimeout runs cmd on its own goroutine and reports false when it
// does not finish within cmdTimeout.
func runWithTimeout(cmd tea.Cmd) (tea.Msg, bool) {
	ch := make(chan tea.Msg, 1)
	go func() {
		ch <- cmd()
	}()
	select {
	case msg := <-ch:
		return msg, true
	case <-time.After(cmdTimeout):
		return nil, false
	}
}

// isTimerMsg matches the animation messages of bubbles components: cursor
// blinks and spinner ticks. Feeding them back would schedule another timer.
func isTimerMsg(msg tea.Msg) bool {
	if msg == nil {
		return false
	}
	t := fmt.Sprintf("%T", msg)
	return strings.Contains(t, "link") || t == "spinner.TickMsg"
}
