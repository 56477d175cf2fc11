package domain

import (
	"fmt"
	"strings"
)

type Phase string

const (
	PhaseFoundation Phase = "Foundation"
	PhaseAutomation Phase = "Automation"
	PhaseProject    Phase = "Project"
)

// Phases lists every phase in roadmap order.
var Phases = []Phase{PhaseFoundation, PhaseAutomation, PhaseProject}

// ParsePhase accepts the display name in any case.
func ParsePhase(s string) (Phase, error) {
	for _, p := range Phases {
		if strings.EqualFold(string(p), strings.TrimSpace(s)) {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown phase %q (want Foundation, Automation or Project)", s)
}

// IsAutomationTrack reports whether the phase belongs to the hands-on track.
func (p Phase) IsAutomationTrack() bool {
	return p == PhaseAutomation || p == PhaseProject
}

type Status string

const (
	StatusNotStarted Status = "Not Started"
	StatusInProgress Status = "In Progress"
	StatusDone       Status = "Done"
)

// Statuses lists every status in board column order.
var Statuses = []Status{StatusNotStarted, StatusInProgress, StatusDone}

// ParseStatus accepts display names ("In Progress") and snake-case
// forms ("in_progress"), case-insensitively.
func ParseStatus(s string) (Status, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.NewReplacer("_", " ", "-", " ").Replace(norm)
	for _, st := range Statuses {
		if strings.ToLower(string(st)) == norm {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown status %q (want not_started, in_progress or done)", s)
}

// Next cycles NotStarted -> InProgress -> Done -> NotStarted.
func (s Status) Next() Status {
	switch s {
	case StatusNotStarted:
		return StatusInProgress
	case StatusInProgress:
		return StatusDone
	default:
		return StatusNotStarted
	}
}

type FilterMode string

const (
	FilterAll               FilterMode = "all"
	FilterCertificationOnly FilterMode = "istqb"
	FilterAutomationTrack   FilterMode = "automation"
)

// FilterModes lists the filter modes in the order the dashboard cycles them.
var FilterModes = []FilterMode{FilterAll, FilterCertificationOnly, FilterAutomationTrack}

// ParseFilterMode maps user input to a FilterMode. The empty string means All.
func ParseFilterMode(s string) (FilterMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return FilterAll, nil
	case "istqb", "cert", "certification":
		return FilterCertificationOnly, nil
	case "automation", "auto":
		return FilterAutomationTrack, nil
	}
	return "", fmt.Errorf("unknown filter %q (want all, istqb or automation)", s)
}

// Next cycles through FilterModes.
func (f FilterMode) Next() FilterMode {
	for i, m := range FilterModes {
		if m == f {
			return FilterModes[(i+1)%len(FilterModes)]
		}
	}
	return FilterAll
}

// Label is the human-facing name of the filter.
func (f FilterMode) Label() string {
	switch f {
	case FilterCertificationOnly:
		return "ISTQB Only"
	case FilterAutomationTrack:
		return "Automation Track"
	default:
		return "All"
	}
}

// Matches reports whether u passes the filter.
func (f FilterMode) Matches(u *Unit) bool {
	switch f {
	case FilterCertificationOnly:
		return u.RequiresCertification
	case FilterAutomationTrack:
		return u.Phase.IsAutomationTrack()
	default:
		return true
	}
}
