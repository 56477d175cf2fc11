package service

import (
	"context"

	"github.com/alexanderramin/roadmap/internal/domain"
	"github.com/alexanderramin/roadmap/internal/roadmap"
)

// RoadmapService owns the in-memory roadmap and persists every change.
// Mutations report whether anything changed; an unknown day or item is a
// silent no-op, and the error is only ever a persistence failure.
type RoadmapService interface {
	// Load applies saved progress over the seeded plan.
	Load(ctx context.Context) error

	Units() []domain.Unit
	Get(day int) (domain.Unit, error)
	Stats() roadmap.Stats
	FilteredView(search string, mode domain.FilterMode) []domain.Unit
	GroupedByStatus(search string, mode domain.FilterMode) roadmap.Board

	SetStatus(ctx context.Context, day int, status domain.Status) (bool, error)
	ToggleItem(ctx context.Context, day int, itemID string) (bool, error)
	AddItem(ctx context.Context, day int, text string) (domain.ChecklistItem, bool, error)
	RemoveItem(ctx context.Context, day int, itemID string) (bool, error)
	SetNotes(ctx context.Context, day int, text string) (bool, error)
	SetTimeSpent(ctx context.Context, day int, hours float64) (bool, error)
	SetConfidence(ctx context.Context, day int, level int) (bool, error)
}

// CredentialService manages the stored API key.
type CredentialService interface {
	// Credential returns the saved key, or "" when none is saved.
	Credential(ctx context.Context) (string, error)
	Set(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
