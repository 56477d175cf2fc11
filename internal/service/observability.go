package service

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// UseCaseEvent captures lightweight execution telemetry for a service use case.
type UseCaseEvent struct {
	Name     string
	Day      int
	Duration time.Duration
	Changed  bool
	Err      error
}

// UseCaseObserver receives use-case execution events.
type UseCaseObserver interface {
	ObserveUseCase(ctx context.Context, event UseCaseEvent)
}

// NoopUseCaseObserver ignores all events.
type NoopUseCaseObserver struct{}

func (NoopUseCaseObserver) ObserveUseCase(context.Context, UseCaseEvent) {}

type zapUseCaseObserver struct {
	log *zap.Logger
}

// NewZapUseCaseObserver logs service use-case events through log.
func NewZapUseCaseObserver(log *zap.Logger) UseCaseObserver {
	if log == nil {
		return NoopUseCaseObserver{}
	}
	return &zapUseCaseObserver{log: log.Named("service")}
}

func (o *zapUseCaseObserver) ObserveUseCase(_ context.Context, event UseCaseEvent) {
	fields := []zap.Field{
		zap.String("use_case", event.Name),
		zap.Int("day", event.Day),
		zap.Int64("duration_ms", event.Duration.Milliseconds()),
		zap.Bool("changed", event.Changed),
	}
	if event.Err != nil {
		o.log.Error("service_use_case", append(fields, zap.Error(event.Err))...)
		return
	}
	o.log.Debug("service_use_case", fields...)
}

func useCaseObserverOrNoop(observers []UseCaseObserver) UseCaseObserver {
	for _, obs := range observers {
		if obs != nil {
			return obs
		}
	}
	return NoopUseCaseObserver{}
}
