package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/alexanderramin/roadmap/internal/db"
	"github.com/alexanderramin/roadmap/internal/domain"
	"github.com/alexanderramin/roadmap/internal/repository"
	"github.com/alexanderramin/roadmap/internal/roadmap"
)

type roadmapService struct {
	mu       sync.Mutex
	store    *roadmap.Store
	progress repository.ProgressRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

// NewRoadmapService wraps store. The service becomes its only owner.
func NewRoadmapService(store *roadmap.Store, progress repository.ProgressRepo, uow db.UnitOfWork, observers ...UseCaseObserver) RoadmapService {
	return &roadmapService{
		store:    store,
		progress: progress,
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *roadmapService) Load(ctx context.Context) error {
	saved, err := s.progress.List(ctx)
	if err != nil {
		return fmt.Errorf("loading saved progress: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	applied := s.store.Restore(saved)
	s.observer.ObserveUseCase(ctx, UseCaseEvent{Name: "load", Changed: applied > 0})
	return nil
}

func (s *roadmapService) Units() []domain.Unit {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Units()
}

func (s *roadmapService) Get(day int) (domain.Unit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Lookup(day)
}

func (s *roadmapService) Stats() roadmap.Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Stats()
}

func (s *roadmapService) FilteredView(search string, mode domain.FilterMode) []domain.Unit {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.FilteredView(search, mode)
}

func (s *roadmapService) GroupedByStatus(search string, mode domain.FilterMode) roadmap.Board {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.GroupedByStatus(search, mode)
}

func (s *roadmapService) SetStatus(ctx context.Context, day int, status domain.Status) (bool, error) {
	return s.mutate(ctx, "set_status", day, func() bool { return s.store.SetStatus(day, status) })
}

func (s *roadmapService) ToggleItem(ctx context.Context, day int, itemID string) (bool, error) {
	return s.mutate(ctx, "toggle_item", day, func() bool { return s.store.ToggleChecklistItem(day, itemID) })
}

func (s *roadmapService) AddItem(ctx context.Context, day int, text string) (domain.ChecklistItem, bool, error) {
	var item domain.ChecklistItem
	changed, err := s.mutate(ctx, "add_item", day, func() bool {
		var ok bool
		item, ok = s.store.AddChecklistItem(day, text)
		return ok
	})
	return item, changed, err
}

func (s *roadmapService) RemoveItem(ctx context.Context, day int, itemID string) (bool, error) {
	return s.mutate(ctx, "remove_item", day, func() bool { return s.store.RemoveChecklistItem(day, itemID) })
}

func (s *roadmapService) SetNotes(ctx context.Context, day int, text string) (bool, error) {
	return s.mutate(ctx, "set_notes", day, func() bool { return s.store.SetNotes(day, text) })
}

func (s *roadmapService) SetTimeSpent(ctx context.Context, day int, hours float64) (bool, error) {
	return s.mutate(ctx, "set_time_spent", day, func() bool { return s.store.SetTimeSpent(day, hours) })
}

func (s *roadmapService) SetConfidence(ctx context.Context, day int, level int) (bool, error) {
	return s.mutate(ctx, "set_confidence", day, func() bool { return s.store.SetConfidence(day, level) })
}

// mutate applies op under the lock and, when it changed the day, saves that
// day's progress in one transaction. A failed save leaves memory ahead of
// disk until the next successful save of the same day.
func (s *roadmapService) mutate(ctx context.Context, name string, day int, op func() bool) (bool, error) {
	start := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()

	changed := op()
	var err error
	if changed {
		err = s.persist(ctx, day)
	}
	s.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:     name,
		Day:      day,
		Duration: time.Since(start),
		Changed:  changed,
		Err:      err,
	})
	return changed, err
}

func (s *roadmapService) persist(ctx context.Context, day int) error {
	p, ok := s.store.ProgressOf(day)
	if !ok {
		return nil
	}
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteProgressRepo(tx).Save(ctx, p)
	})
	if err != nil {
		return fmt.Errorf("saving day %d: %w", day, err)
	}
	return nil
}
