package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/alexanderramin/roadmap/internal/domain"
	"github.com/alexanderramin/roadmap/internal/roadmap"
)

// UnitOption customizes a unit built by NewTestUnit.
type UnitOption func(*domain.Unit)

func WithPhase(p domain.Phase) UnitOption {
	return func(u *domain.Unit) { u.Phase = p }
}

func WithCertification() UnitOption {
	return func(u *domain.Unit) { u.RequiresCertification = true }
}

func WithTitle(title string) UnitOption {
	return func(u *domain.Unit) { u.Title = title }
}

// WithChecklist adds one item per flag, with ids d<day>-<n>, and re-derives the status.
func WithChecklist(done ...bool) UnitOption {
	return func(u *domain.Unit) {
		u.Checklist = nil
		for i, d := range done {
			u.Checklist = append(u.Checklist, domain.ChecklistItem{
				ID:   fmt.Sprintf("d%d-%d", u.Index, i+1),
				Text: fmt.Sprintf("Task %d", i+1),
				Done: d,
			})
		}
		u.Rederive()
	}
}

func WithObjectives(objs ...string) UnitOption {
	return func(u *domain.Unit) { u.LearningObjectives = objs }
}

// NewTestUnit builds a Foundation day with one open checklist item.
func NewTestUnit(day int, opts ...UnitOption) domain.Unit {
	u := domain.Unit{
		Index:              day,
		Title:              fmt.Sprintf("Test Day %d", day),
		Phase:              domain.PhaseFoundation,
		Status:             domain.StatusNotStarted,
		LearningObjectives: []string{"Objective"},
	}
	WithChecklist(false)(&u)
	for _, opt := range opts {
		opt(&u)
	}
	return u
}

// SequentialIDs returns a generator minting item-1, item-2, ...
func SequentialIDs() func() string {
	var n atomic.Int64
	return func() string {
		return fmt.Sprintf("item-%d", n.Add(1))
	}
}

// NewTestStore builds a Store over units with deterministic item ids.
func NewTestStore(t *testing.T, units ...domain.Unit) *roadmap.Store {
	t.Helper()
	s, err := roadmap.NewStore(units, roadmap.WithIDGenerator(SequentialIDs()))
	if err != nil {
		t.Fatalf("building test store: %v", err)
	}
	return s
}

// NewSeededTestStore builds the built-in plan with deterministic item ids.
func NewSeededTestStore(t *testing.T) *roadmap.Store {
	t.Helper()
	return NewTestStore(t, roadmap.Seed()...)
}
