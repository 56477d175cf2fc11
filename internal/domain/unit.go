package domain

import "strings"

// ChecklistItem is one independently completable sub-task of a Unit.
// IDs are unique within their unit only.
type ChecklistItem struct {
	ID   string
	Text string
	Done bool
}

// Unit is one tracked day of the roadmap. Index is the lookup key and never
// changes; LearningObjectives are fixed at creation.
type Unit struct {
	Index                 int
	Title                 string
	Phase                 Phase
	RequiresCertification bool
	Status                Status

	TimeSpentHours  *float64
	ConfidenceLevel *int

	LearningObjectives []string
	Checklist          []ChecklistItem
	Notes              string
}

// DeriveStatus computes a unit's status from its checklist alone:
// empty or nothing done is NotStarted, everything done is Done,
// anything in between is InProgress.
func DeriveStatus(checklist []ChecklistItem) Status {
	if len(checklist) == 0 {
		return StatusNotStarted
	}
	done := 0
	for _, item := range checklist {
		if item.Done {
			done++
		}
	}
	switch {
	case done == len(checklist):
		return StatusDone
	case done > 0:
		return StatusInProgress
	default:
		return StatusNotStarted
	}
}

// Rederive overwrites Status with the checklist-derived value, discarding
// any manual override.
func (u *Unit) Rederive() {
	u.Status = DeriveStatus(u.Checklist)
}

// ItemIndex returns the position of the checklist item with the given id, or -1.
func (u *Unit) ItemIndex(itemID string) int {
	for i := range u.Checklist {
		if u.Checklist[i].ID == itemID {
			return i
		}
	}
	return -1
}

// HasItem reports whether the checklist already contains itemID.
func (u *Unit) HasItem(itemID string) bool {
	return u.ItemIndex(itemID) >= 0
}

// CompletedItems counts checklist items marked done.
func (u *Unit) CompletedItems() int {
	n := 0
	for _, item := range u.Checklist {
		if item.Done {
			n++
		}
	}
	return n
}

// TitleContains is the case-insensitive substring match used by search.
func (u *Unit) TitleContains(search string) bool {
	return strings.Contains(strings.ToLower(u.Title), strings.ToLower(search))
}

// Clone returns a deep copy so callers cannot mutate store-owned slices.
func (u Unit) Clone() Unit {
	c := u
	if u.TimeSpentHours != nil {
		v := *u.TimeSpentHours
		c.TimeSpentHours = &v
	}
	if u.ConfidenceLevel != nil {
		v := *u.ConfidenceLevel
		c.ConfidenceLevel = &v
	}
	if u.LearningObjectives != nil {
		c.LearningObjectives = append([]string(nil), u.LearningObjectives...)
	}
	if u.Checklist != nil {
		c.Checklist = append([]ChecklistItem(nil), u.Checklist...)
	}
	return c
}
