package repository

import (
	"context"
	"errors"

	"github.com/alexanderramin/roadmap/internal/domain"
)

// ErrNotFound is wrapped by repositories when a row does not exist.
var ErrNotFound = errors.New("not found")

// SettingsRepo is the local key/value store.
type SettingsRepo interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// ProgressRepo persists the mutable part of each roadmap day.
type ProgressRepo interface {
	Save(ctx context.Context, p domain.Progress) error
	Get(ctx context.Context, day int) (*domain.Progress, error)
	List(ctx context.Context) ([]domain.Progress, error)
	Delete(ctx context.Context, day int) error
}
