// Package roadmap owns the day-by-day study plan and every operation that
// mutates it. A Store is single-owner: callers serialize access (the CLI runs
// one command per process, the TUI mutates only from its Update loop).
package roadmap

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/roadmap/internal/domain"
	"github.com/google/uuid"
)

// ErrUnknownUnit is returned by lookups that callers want to surface.
// Store mutations themselves never fail; they report "changed" instead.
var ErrUnknownUnit = errors.New("unknown day")

// Store holds the fixed, ordered unit collection.
type Store struct {
	units []domain.Unit
	pos   map[int]int // unit index -> position in units
	newID func() string
}

// Option configures a Store.
type Option func(*Store)

// WithIDGenerator overrides how fresh checklist item ids are minted.
func WithIDGenerator(gen func() string) Option {
	return func(s *Store) {
		if gen != nil {
			s.newID = gen
		}
	}
}

func defaultItemID() string {
	return "custom-" + uuid.NewString()
}

// NewStore copies units into a new Store, preserving their order.
// Unit indexes must be unique.
func NewStore(units []domain.Unit, opts ...Option) (*Store, error) {
	s := &Store{
		units: make([]domain.Unit, 0, len(units)),
		pos:   make(map[int]int, len(units)),
		newID: defaultItemID,
	}
	for _, opt := range opts {
		opt(s)
	}
	for _, u := range units {
		if _, dup := s.pos[u.Index]; dup {
			return nil, fmt.Errorf("duplicate day index %d", u.Index)
		}
		s.pos[u.Index] = len(s.units)
		s.units = append(s.units, u.Clone())
	}
	return s, nil
}

// NewSeededStore returns a Store holding the built-in 60-day plan.
func NewSeededStore(opts ...Option) *Store {
	s, err := NewStore(Seed(), opts...)
	if err != nil {
		panic(fmt.Sprintf("roadmap: seeding store: %v", err))
	}
	return s
}

func (s *Store) unit(index int) *domain.Unit {
	i, ok := s.pos[index]
	if !ok {
		return nil
	}
	return &s.units[i]
}

// Len returns the number of units.
func (s *Store) Len() int { return len(s.units) }

// Get returns a copy of the unit with the given index.
func (s *Store) Get(index int) (domain.Unit, bool) {
	u := s.unit(index)
	if u == nil {
		return domain.Unit{}, false
	}
	return u.Clone(), true
}

// Lookup is Get with an error for callers that report unknown days.
func (s *Store) Lookup(index int) (domain.Unit, error) {
	u, ok := s.Get(index)
	if !ok {
		return domain.Unit{}, fmt.Errorf("day %d: %w", index, ErrUnknownUnit)
	}
	return u, nil
}

// Units returns copies of all units in roadmap order.
func (s *Store) Units() []domain.Unit {
	out := make([]domain.Unit, len(s.units))
	for i := range s.units {
		out[i] = s.units[i].Clone()
	}
	return out
}

// SetStatus overrides the status verbatim. The override holds until the
// next checklist mutation re-derives it.
func (s *Store) SetStatus(index int, status domain.Status) bool {
	u := s.unit(index)
	if u == nil {
		return false
	}
	u.Status = status
	return true
}

// ToggleChecklistItem flips one item and re-derives the status.
func (s *Store) ToggleChecklistItem(index int, itemID string) bool {
	u := s.unit(index)
	if u == nil {
		return false
	}
	i := u.ItemIndex(itemID)
	if i < 0 {
		return false
	}
	u.Checklist[i].Done = !u.Checklist[i].Done
	u.Rederive()
	return true
}

// AddChecklistItem appends a new open item. Blank text is rejected.
func (s *Store) AddChecklistItem(index int, text string) (domain.ChecklistItem, bool) {
	u := s.unit(index)
	text = strings.TrimSpace(text)
	if u == nil || text == "" {
		return domain.ChecklistItem{}, false
	}
	item := domain.ChecklistItem{ID: s.freshID(u), Text: text}
	u.Checklist = append(u.Checklist, item)
	u.Rederive()
	return item, true
}

func (s *Store) freshID(u *domain.Unit) string {
	base := s.newID()
	id := base
	for n := 2; u.HasItem(id); n++ {
		id = fmt.Sprintf("%s-%d", base, n)
	}
	return id
}

// RemoveChecklistItem deletes one item and re-derives the status.
func (s *Store) RemoveChecklistItem(index int, itemID string) bool {
	u := s.unit(index)
	if u == nil {
		return false
	}
	i := u.ItemIndex(itemID)
	if i < 0 {
		return false
	}
	u.Checklist = append(u.Checklist[:i:i], u.Checklist[i+1:]...)
	u.Rederive()
	return true
}

// SetNotes overwrites the free-text notes.
func (s *Store) SetNotes(index int, text string) bool {
	u := s.unit(index)
	if u == nil {
		return false
	}
	u.Notes = text
	return true
}

// SetTimeSpent records hours spent. Negative values are ignored.
func (s *Store) SetTimeSpent(index int, hours float64) bool {
	u := s.unit(index)
	if u == nil || hours < 0 {
		return false
	}
	u.TimeSpentHours = domain.Float64Ptr(hours)
	return true
}

// SetConfidence records a 0-5 self-assessment.
func (s *Store) SetConfidence(index int, level int) bool {
	u := s.unit(index)
	if u == nil || level < 0 || level > 5 {
		return false
	}
	u.ConfidenceLevel = domain.IntPtr(level)
	return true
}
