package cli

import (
	"testing"

	"github.com/alexanderramin/roadmap/internal/teatest"
)

// TestDriver wraps teatest.Driver with access to the appModel's view stack.
type TestDriver struct {
	*teatest.Driver
}

// NewTestDriver builds the appModel for app at 120x40 and drains Init.
func NewTestDriver(t *testing.T, app *App) *TestDriver {
	t.Helper()
	d := teatest.New(t, newAppModel(app), teatest.WithSize(120, 40))
	d.DrainInit()
	return &TestDriver{Driver: d}
}

func (d *TestDriver) appModel() appModel {
	return d.Model.(appModel)
}

// ActiveViewID returns the ViewID of the top view on the stack.
func (d *TestDriver) ActiveViewID() ViewID {
	m := d.appModel()
	v := m.activeView()
	if v == nil {
		return ViewID(-1)
	}
	return v.ID()
}

func (d *TestDriver) ViewStackLen() int {
	return len(d.appModel().viewStack)
}

func (d *TestDriver) State() *SharedState {
	return d.appModel().state
}

func (d *TestDriver) IsQuitting() bool {
	return d.Quitting
}

// Dashboard returns the dashboard view at the bottom of the stack.
func (d *TestDriver) Dashboard() *dashboardView {
	d.T.Helper()
	return d.appModel().viewStack[0].(*dashboardView)
}

// Detail returns the active view as a detail view, failing the test when
// another view is on top.
func (d *TestDriver) Detail() *detailView {
	d.T.Helper()
	m := d.appModel()
	v, ok := m.activeView().(*detailView)
	if !ok {
		d.T.Fatalf("active view is %v, not the detail view", m.activeView().ID())
	}
	return v
}
