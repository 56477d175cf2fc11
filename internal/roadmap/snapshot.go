package roadmap

import "github.com/alexanderramin/roadmap/internal/domain"

// ProgressOf returns the persisted shape of one unit.
func (s *Store) ProgressOf(index int) (domain.Progress, bool) {
	u := s.unit(index)
	if u == nil {
		return domain.Progress{}, false
	}
	return u.Progress(), true
}

// Snapshot returns the progress of every unit in roadmap order.
func (s *Store) Snapshot() []domain.Progress {
	out := make([]domain.Progress, len(s.units))
	for i := range s.units {
		out[i] = s.units[i].Progress()
	}
	return out
}

// Restore applies saved progress over the current units and returns how many
// were applied. Entries for unknown days are skipped.
func (s *Store) Restore(saved []domain.Progress) int {
	applied := 0
	for _, p := range saved {
		if u := s.unit(p.Index); u != nil {
			u.Apply(p)
			applied++
		}
	}
	return applied
}
