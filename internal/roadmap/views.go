package roadmap

import (
	"math"

	"github.com/alexanderramin/roadmap/internal/domain"
)

// Stats is the header summary of the roadmap.
type Stats struct {
	Total      int
	Done       int
	InProgress int
	NotStarted int

	CertTotal int
	CertDone  int

	ProgressPct     int
	CertCoveragePct int

	HoursLogged   float64
	RatedDays     int     // units with a confidence level set
	AvgConfidence float64 // mean over RatedDays; 0 when none
}

// Board is the filtered view partitioned into status columns.
type Board struct {
	NotStarted []domain.Unit
	InProgress []domain.Unit
	Done       []domain.Unit
}

// Column returns the bucket for status.
func (b Board) Column(status domain.Status) []domain.Unit {
	switch status {
	case domain.StatusInProgress:
		return b.InProgress
	case domain.StatusDone:
		return b.Done
	default:
		return b.NotStarted
	}
}

// percent is round(100*num/den), defined as 0 for an empty denominator.
func percent(num, den int) int {
	if den == 0 {
		return 0
	}
	return int(math.Round(100 * float64(num) / float64(den)))
}

// ProgressPercent is the share of units marked Done.
func (s *Store) ProgressPercent() int {
	return s.Stats().ProgressPct
}

// CertificationCoveragePercent is the share of certification-tagged units
// marked Done; 0 when no unit carries the tag.
func (s *Store) CertificationCoveragePercent() int {
	return s.Stats().CertCoveragePct
}

// Stats computes all header counters in one pass.
func (s *Store) Stats() Stats {
	st := Stats{Total: len(s.units)}
	for i := range s.units {
		u := &s.units[i]
		switch u.Status {
		case domain.StatusDone:
			st.Done++
		case domain.StatusInProgress:
			st.InProgress++
		default:
			st.NotStarted++
		}
		st.HoursLogged += domain.Float64OrZero(u.TimeSpentHours)
		if u.ConfidenceLevel != nil {
			st.RatedDays++
			st.AvgConfidence += float64(domain.IntOrZero(u.ConfidenceLevel))
		}
		if u.RequiresCertification {
			st.CertTotal++
			if u.Status == domain.StatusDone {
				st.CertDone++
			}
		}
	}
	st.ProgressPct = percent(st.Done, st.Total)
	st.CertCoveragePct = percent(st.CertDone, st.CertTotal)
	if st.RatedDays > 0 {
		st.AvgConfidence /= float64(st.RatedDays)
	}
	return st
}

// FilteredView returns units whose title contains search (case-insensitive)
// and which pass mode, in roadmap order.
func (s *Store) FilteredView(search string, mode domain.FilterMode) []domain.Unit {
	out := make([]domain.Unit, 0, len(s.units))
	for i := range s.units {
		u := &s.units[i]
		if u.TitleContains(search) && mode.Matches(u) {
			out = append(out, u.Clone())
		}
	}
	return out
}

// GroupedByStatus partitions FilteredView into status columns, keeping
// roadmap order inside each column.
func (s *Store) GroupedByStatus(search string, mode domain.FilterMode) Board {
	var b Board
	for _, u := range s.FilteredView(search, mode) {
		switch u.Status {
		case domain.StatusDone:
			b.Done = append(b.Done, u)
		case domain.StatusInProgress:
			b.InProgress = append(b.InProgress, u)
		default:
			b.NotStarted = append(b.NotStarted, u)
		}
	}
	return b
}
