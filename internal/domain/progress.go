package domain

// Progress is the mutable part of a unit, as persisted between runs.
// Title, phase, tags and objectives always come from the seed.
type Progress struct {
	Index           int
	Status          Status
	TimeSpentHours  *float64
	ConfidenceLevel *int
	Checklist       []ChecklistItem
	Notes           string
}

// Progress extracts the persisted shape of u.
func (u Unit) Progress() Progress {
	c := u.Clone()
	return Progress{
		Index:           c.Index,
		Status:          c.Status,
		TimeSpentHours:  c.TimeSpentHours,
		ConfidenceLevel: c.ConfidenceLevel,
		Checklist:       c.Checklist,
		Notes:           c.Notes,
	}
}

// Apply overwrites u's mutable fields with p. The status is taken verbatim
// so a saved manual override survives.
func (u *Unit) Apply(p Progress) {
	u.Status = p.Status
	u.Notes = p.Notes
	u.TimeSpentHours = nil
	if p.TimeSpentHours != nil {
		u.TimeSpentHours = Float64Ptr(*p.TimeSpentHours)
	}
	u.ConfidenceLevel = nil
	if p.ConfidenceLevel != nil {
		u.ConfidenceLevel = IntPtr(*p.ConfidenceLevel)
	}
	u.Checklist = append([]ChecklistItem(nil), p.Checklist...)
}
